// Copyright 2018 Fabian Wenzelmann
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package photomosaic

import (
	"image"
)

// PatchDivision represents the division of an image into square patches.
//
// Patches are not stored in the fashion (x, y) but (y, x). That means each
// entry in the division describes one row of the image.
// The Get method does this correctly.
type PatchDivision [][]image.Rectangle

// Get returns the rectangle at position div[y][x], that is the patch in
// row y and column x.
func (div PatchDivision) Get(x, y int) image.Rectangle {
	return div[y][x]
}

// Rows returns the number of rows.
func (div PatchDivision) Rows() int {
	return len(div)
}

// Cols returns the number of columns.
func (div PatchDivision) Cols() int {
	if len(div) == 0 {
		return 0
	}
	return len(div[0])
}

// Covered returns the area covered by all patches. Pixels of bounds outside
// of that area are not part of any patch.
func (div PatchDivision) Covered() image.Rectangle {
	if div.Rows() == 0 || div.Cols() == 0 {
		return image.Rectangle{}
	}
	return div[0][0].Union(div[div.Rows()-1][div.Cols()-1])
}

// DividePatches divides bounds into patches of size × size pixels, starting
// at the top left corner. Remaining pixels on the right and bottom that
// don't fill a whole patch are discarded. The result is empty if size is not
// positive or bounds is smaller than a single patch.
func DividePatches(bounds image.Rectangle, size int) PatchDivision {
	if size <= 0 || bounds.Empty() {
		return nil
	}
	numRows, numCols := bounds.Dy()/size, bounds.Dx()/size
	if numRows == 0 || numCols == 0 {
		return nil
	}
	res := make(PatchDivision, numRows)
	for i := 0; i < numRows; i++ {
		res[i] = make([]image.Rectangle, numCols)
		for j := 0; j < numCols; j++ {
			x0 := bounds.Min.X + j*size
			y0 := bounds.Min.Y + i*size
			res[i][j] = image.Rect(x0, y0, x0+size, y0+size)
		}
	}
	return res
}

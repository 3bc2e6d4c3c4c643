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
	"github.com/pkg/errors"
)

// PlacementGrid records which tile was placed on which patch. It is indexed by
// patch coordinates (column x, row y).
//
// A cell is unset until its patch has been processed; after that it holds the
// identifier of the placed tile and can't be changed.
type PlacementGrid struct {
	width, height int
	cells         []string
	set           []bool
}

// NewPlacementGrid returns an empty grid with the given number of columns and
// rows. Negative values are treated as 0.
func NewPlacementGrid(width, height int) *PlacementGrid {
	width, height = IntMax(width, 0), IntMax(height, 0)
	return &PlacementGrid{
		width:  width,
		height: height,
		cells:  make([]string, width*height),
		set:    make([]bool, width*height),
	}
}

// Width returns the number of columns.
func (grid *PlacementGrid) Width() int {
	return grid.width
}

// Height returns the number of rows.
func (grid *PlacementGrid) Height() int {
	return grid.height
}

// Valid returns true if (x, y) is a cell of the grid.
func (grid *PlacementGrid) Valid(x, y int) bool {
	return x >= 0 && y >= 0 && x < grid.width && y < grid.height
}

// Get returns the tile placed at (x, y) and true, or "" and false if the cell
// is unset or not in the grid.
func (grid *PlacementGrid) Get(x, y int) (string, bool) {
	if !grid.Valid(x, y) {
		return "", false
	}
	i := y*grid.width + x
	return grid.cells[i], grid.set[i]
}

// Set places the tile id at (x, y). It fails if the cell is not in the grid
// or was already set.
func (grid *PlacementGrid) Set(x, y int, id string) error {
	if !grid.Valid(x, y) {
		return errors.Errorf("cell (%d, %d) not in %dx%d grid", x, y, grid.width, grid.height)
	}
	i := y*grid.width + x
	if grid.set[i] {
		return errors.Wrapf(ErrCellOccupied, "cell (%d, %d) holds %q", x, y, grid.cells[i])
	}
	grid.cells[i] = id
	grid.set[i] = true
	return nil
}

// Count returns how many cells of the square box of side boxSize centered at
// (x, y) hold id. The box reaches from -boxSize/2 to +boxSize/2 (truncating
// division) in both directions and is clipped to the grid, unset cells never
// match.
func (grid *PlacementGrid) Count(id string, x, y, boxSize int) int {
	half := boxSize / 2
	res := 0
	for dy := -half; dy <= half; dy++ {
		for dx := -half; dx <= half; dx++ {
			if placed, ok := grid.Get(x+dx, y+dy); ok && placed == id {
				res++
			}
		}
	}
	return res
}

// Rows returns a copy of the grid as rows of tile ids, unset cells are "".
func (grid *PlacementGrid) Rows() [][]string {
	res := make([][]string, grid.height)
	for y := range res {
		res[y] = make([]string, grid.width)
		copy(res[y], grid.cells[y*grid.width:(y+1)*grid.width])
	}
	return res
}

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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDividePatches(t *testing.T) {
	div := DividePatches(image.Rect(0, 0, 10, 9), 4)
	require.Equal(t, 2, div.Rows())
	require.Equal(t, 2, div.Cols())
	require.Equal(t, image.Rect(4, 0, 8, 4), div.Get(1, 0))
	require.Equal(t, image.Rect(0, 4, 4, 8), div.Get(0, 1))
	require.Equal(t, image.Rect(0, 0, 8, 8), div.Covered())

	div = DividePatches(image.Rect(2, 2, 10, 10), 4)
	require.Equal(t, image.Rect(6, 6, 10, 10), div.Get(1, 1))
	require.Equal(t, image.Rect(2, 2, 10, 10), div.Covered())
}

func TestDividePatchesEmpty(t *testing.T) {
	require.Nil(t, DividePatches(image.Rect(0, 0, 3, 8), 4))
	require.Nil(t, DividePatches(image.Rect(0, 0, 8, 8), 0))
	require.Nil(t, DividePatches(image.Rectangle{}, 4))
	var div PatchDivision
	require.Equal(t, 0, div.Cols())
	require.Equal(t, image.Rectangle{}, div.Covered())
}

func TestAverageColor(t *testing.T) {
	img := quadrantImage()
	require.Equal(t, red, AverageColor(img, image.Rect(0, 0, 2, 2)))
	// half red and half green
	require.Equal(t, NewRGB(127, 127, 0), AverageColor(img, image.Rect(0, 0, 4, 2)))
	// clipped to the image
	require.Equal(t, white, AverageColor(img, image.Rect(2, 2, 10, 10)))
	require.Equal(t, RGB{}, AverageColor(img, image.Rect(5, 5, 8, 8)))
}

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

	"golang.org/x/image/draw"
)

// This file contains the pixel buffer operations the composer needs: copying
// an arbitrary image into an owned buffer and overwriting rectangular areas
// of that buffer.

// ToRGBA copies img into a new *image.RGBA whose bounds start at (0, 0).
// The result never shares pixel memory with img.
func ToRGBA(img image.Image) *image.RGBA {
	bounds := img.Bounds()
	res := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(res, res.Bounds(), img, bounds.Min, draw.Src)
	return res
}

// OverwriteRegion replaces the pixels of area in dst by the pixels of src,
// starting at the top left corner of src. Pixels of area not covered by src
// remain unchanged.
func OverwriteRegion(dst *image.RGBA, area image.Rectangle, src image.Image) {
	draw.Draw(dst, area, src, src.Bounds().Min, draw.Src)
}

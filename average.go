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

// AverageColor computes the average color of area in img. Each channel is
// the truncated mean over all pixels of the area. The average of an empty
// area is black.
func AverageColor(img image.Image, area image.Rectangle) RGB {
	area = area.Intersect(img.Bounds())
	if area.Empty() {
		return RGB{}
	}
	// just to be sure we use big integers, depending on the image size we might
	// get problems
	var r, g, b uint64
	numPixels := uint64(area.Dx() * area.Dy())
	if rgba, ok := img.(*image.RGBA); ok {
		for y := area.Min.Y; y < area.Max.Y; y++ {
			offset := rgba.PixOffset(area.Min.X, y)
			row := rgba.Pix[offset : offset+4*area.Dx()]
			for i := 0; i < len(row); i += 4 {
				r += uint64(row[i])
				g += uint64(row[i+1])
				b += uint64(row[i+2])
			}
		}
	} else {
		for y := area.Min.Y; y < area.Max.Y; y++ {
			for x := area.Min.X; x < area.Max.X; x++ {
				rgb := ConvertRGB(img.At(x, y))
				r += uint64(rgb.R)
				g += uint64(rgb.G)
				b += uint64(rgb.B)
			}
		}
	}
	return RGB{R: uint8(r / numPixels), G: uint8(g / numPixels), B: uint8(b / numPixels)}
}

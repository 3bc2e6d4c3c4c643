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
	"fmt"
	"image"
)

// NumQuadrants is the number of parts a Signature is made of.
const NumQuadrants = 4

// Quadrant positions inside a Signature.
const (
	TopLeft = iota
	TopRight
	BottomLeft
	BottomRight
)

// Signature is the fingerprint of an image region: the average color of each
// of its four quadrants in the order top-left, top-right, bottom-left and
// bottom-right.
//
// Signatures are only compared position-wise, that is quadrant i of one
// signature is compared to quadrant i of another one.
type Signature [NumQuadrants]RGB

func (s Signature) String() string {
	return fmt.Sprintf("[TL=%v TR=%v BL=%v BR=%v]", s[TopLeft], s[TopRight],
		s[BottomLeft], s[BottomRight])
}

// Quadrants returns the four rectangles a region is split into, in signature
// order. Width and height are halved with integer division, so odd dimensions
// put the extra column into the right and the extra row into the bottom
// quadrants.
func Quadrants(bounds image.Rectangle) [NumQuadrants]image.Rectangle {
	origin := bounds.Min
	halfX := origin.X + bounds.Dx()/2
	halfY := origin.Y + bounds.Dy()/2
	return [NumQuadrants]image.Rectangle{
		image.Rect(origin.X, origin.Y, halfX, halfY),
		image.Rect(halfX, origin.Y, bounds.Max.X, halfY),
		image.Rect(origin.X, halfY, halfX, bounds.Max.Y),
		image.Rect(halfX, halfY, bounds.Max.X, bounds.Max.Y),
	}
}

// ComputeSignature computes the signature of an image region.
//
// Each quadrant color is the truncated mean of each channel. An empty quadrant
// (the region is less than two pixels wide or high) gets the color black.
func ComputeSignature(img image.Image) Signature {
	var res Signature
	for i, r := range Quadrants(img.Bounds()) {
		res[i] = AverageColor(img, r)
	}
	return res
}

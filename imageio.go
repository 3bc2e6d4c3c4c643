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
	"path/filepath"

	"github.com/disintegration/imaging"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// DefaultJPGQuality is the JPEG quality used when storing images.
const DefaultJPGQuality = 100

// DecodeImage reads the image file at path. The format is detected from the
// content, the EXIF orientation of JPEG files is applied.
func DecodeImage(path string) (image.Image, error) {
	return imaging.Open(path, imaging.AutoOrientation(true))
}

// EncodeImage writes img to path. The format is chosen by the file extension
// (jpg, png, gif, tif or bmp), jpgQuality is only used for JPEG files and
// must be between 1 and 100.
func EncodeImage(path string, img image.Image, jpgQuality int) error {
	if _, formatErr := imaging.FormatFromFilename(path); formatErr != nil {
		return errors.Wrapf(formatErr, "unsupported output file %s", filepath.Base(path))
	}
	if saveErr := imaging.Save(img, path, imaging.JPEGQuality(jpgQuality)); saveErr != nil {
		return errors.Wrapf(saveErr, "can't write image %s", path)
	}
	log.WithField("path", path).Debug("Wrote image")
	return nil
}

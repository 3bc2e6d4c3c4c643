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

var (
	// ErrInvalidImage is returned if the source image can't be decoded.
	ErrInvalidImage = errors.New("not a valid image")

	// ErrMissingDatabase is returned if the tile database file does not exist.
	ErrMissingDatabase = errors.New("tile database does not exist")

	// ErrMalformedRecord describes a database record that can't be parsed.
	// Loading a database never fails with it, such records are skipped and a
	// warning is logged.
	ErrMalformedRecord = errors.New("malformed database record")

	// ErrEmptyTileSet is returned if there are no tiles to select from.
	ErrEmptyTileSet = errors.New("no tiles to select from")

	// ErrTileDecode is returned if a selected tile can't be loaded.
	ErrTileDecode = errors.New("can't load tile image")

	// ErrTileSize is returned if a tile image doesn't have the patch size.
	ErrTileSize = errors.New("tile image does not match the patch size")

	// ErrCellOccupied is returned when a placement grid cell is set twice.
	ErrCellOccupied = errors.New("placement grid cell already set")

	// ErrInvalidConfig is returned for invalid configuration values.
	ErrInvalidConfig = errors.New("invalid configuration")
)

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
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// TileLoader loads the pixel data of a database tile given its identifier.
type TileLoader interface {
	LoadTile(id string) (image.Image, error)
}

// TileLoaderFunc is a function that implements TileLoader.
type TileLoaderFunc func(id string) (image.Image, error)

// LoadTile calls f(id).
func (f TileLoaderFunc) LoadTile(id string) (image.Image, error) {
	return f(id)
}

// FSTileLoader loads tiles from the filesystem, the identifier of a tile is
// its path. Relative paths are resolved against Root (or the current
// directory if Root is empty).
type FSTileLoader struct {
	Root string
}

// NewFSTileLoader returns a loader resolving relative tile paths against root.
func NewFSTileLoader(root string) FSTileLoader {
	return FSTileLoader{Root: root}
}

// Path returns the file path of the tile id.
func (loader FSTileLoader) Path(id string) string {
	if filepath.IsAbs(id) || loader.Root == "" {
		return id
	}
	return filepath.Join(loader.Root, id)
}

// LoadTile decodes the image file of the tile.
func (loader FSTileLoader) LoadTile(id string) (image.Image, error) {
	return DecodeImage(loader.Path(id))
}

// tileCache caches decoded tiles during one mosaic build. The same tile is
// usually placed many times and decoding it again each time is expensive.
// There is no eviction, the cache is dropped with the build.
//
// A tileCache is not safe for concurrent use.
type tileCache struct {
	loader       TileLoader
	content      map[string]image.Image
	hits, misses int
}

func newTileCache(loader TileLoader) *tileCache {
	return &tileCache{
		loader:  loader,
		content: make(map[string]image.Image),
	}
}

// get returns the tile from the cache, loading it on a miss.
func (cache *tileCache) get(id string) (image.Image, error) {
	if img, has := cache.content[id]; has {
		cache.hits++
		return img, nil
	}
	cache.misses++
	img, err := cache.loader.LoadTile(id)
	if err != nil {
		return nil, errors.Wrapf(ErrTileDecode, "%s: %v", id, err)
	}
	cache.content[id] = img
	return img, nil
}

// PlacementFunc is called by the Composer each time a tile was placed on the
// patch in column x and row y.
type PlacementFunc func(x, y int, id string)

// Mosaic is the result of a mosaic build: the composed image and the grid of
// tiles placed on each patch.
type Mosaic struct {
	Image     *image.RGBA
	Grid      *PlacementGrid
	PatchSize int
}

// Composer creates mosaics by replacing each patch of a source image by the
// best matching database tile.
//
// Patches are processed one after another in row-major order (all columns of
// row 0, then row 1 and so on). This order matters: the uniqueness penalty of
// a patch depends on the tiles placed on the patches before it. Once placed a
// tile is never revisited.
type Composer struct {
	// Tiles are the candidates, the first of two equally good tiles wins.
	Tiles []TileEntry

	// Loader is used to get the pixels of selected tiles. Each tile must be
	// exactly PatchSize × PatchSize pixels.
	Loader TileLoader

	// PatchSize is the width and height of the patches.
	PatchSize int

	// Matcher selects the tile for each patch.
	Matcher Matcher

	// Progress is called after each patch, may be nil.
	Progress ProgressFunc

	// OnPlace is called after each placement, may be nil.
	OnPlace PlacementFunc
}

// NewComposer returns a composer with the default metric.
func NewComposer(tiles []TileEntry, loader TileLoader, patchSize, uniqueBox int) *Composer {
	return &Composer{
		Tiles:     tiles,
		Loader:    loader,
		PatchSize: patchSize,
		Matcher:   NewMatcher(uniqueBox),
	}
}

// Compose creates the mosaic for source. The source is copied into a new
// buffer that is then overwritten patch by patch, source itself is never
// modified.
//
// The dimensions of source should be divisible by PatchSize, remaining pixels
// on the right and bottom keep the source pixels.
func (c *Composer) Compose(source image.Image) (*Mosaic, error) {
	if c.PatchSize <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "patch size must be positive, got %d", c.PatchSize)
	}
	if len(c.Tiles) == 0 {
		return nil, ErrEmptyTileSet
	}
	if c.Loader == nil {
		return nil, errors.Wrap(ErrInvalidConfig, "no tile loader given")
	}
	progress := c.Progress
	if progress == nil {
		progress = ProgressIgnore
	}
	buffer := ToRGBA(source)
	bounds := buffer.Bounds()
	division := DividePatches(bounds, c.PatchSize)
	cols, rows := division.Cols(), division.Rows()
	logger := log.WithFields(log.Fields{
		"run":     uuid.New().String(),
		"columns": cols,
		"rows":    rows,
		"tiles":   len(c.Tiles),
	})
	if division.Covered() != bounds {
		logger.WithFields(log.Fields{
			"width":  bounds.Dx(),
			"height": bounds.Dy(),
			"patch":  c.PatchSize,
		}).Warn("Image size is not a multiple of the patch size, the remaining pixels are not replaced")
	}
	logger.Debug("Composing mosaic")
	start := time.Now()
	grid := NewPlacementGrid(cols, rows)
	cache := newTileCache(c.Loader)
	done := 0
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if err := c.placeTile(buffer, division.Get(x, y), grid, cache, x, y); err != nil {
				return nil, err
			}
			done++
			progress(done)
		}
	}
	logger.WithFields(log.Fields{
		"duration":    time.Since(start),
		"cache-hits":  cache.hits,
		"cache-loads": cache.misses,
	}).Debug("Mosaic composed")
	return &Mosaic{Image: buffer, Grid: grid, PatchSize: c.PatchSize}, nil
}

func (c *Composer) placeTile(buffer *image.RGBA, area image.Rectangle,
	grid *PlacementGrid, cache *tileCache, x, y int) error {
	signature := ComputeSignature(buffer.SubImage(area))
	best, selectErr := c.Matcher.Select(signature, c.Tiles, grid, x, y)
	if selectErr != nil {
		return selectErr
	}
	id := c.Tiles[best].ID
	if setErr := grid.Set(x, y, id); setErr != nil {
		return setErr
	}
	if c.OnPlace != nil {
		c.OnPlace(x, y, id)
	}
	tile, tileErr := cache.get(id)
	if tileErr != nil {
		return tileErr
	}
	tileBounds := tile.Bounds()
	if tileBounds.Dx() != c.PatchSize || tileBounds.Dy() != c.PatchSize {
		return errors.Wrapf(ErrTileSize, "%s is %dx%d, patch size is %d", id,
			tileBounds.Dx(), tileBounds.Dy(), c.PatchSize)
	}
	OverwriteRegion(buffer, area, tile)
	return nil
}

// BuildMosaic creates the mosaic of source using the default metric, see
// Composer for details.
func BuildMosaic(source image.Image, tiles []TileEntry, loader TileLoader,
	patchSize, uniqueBox int) (*Mosaic, error) {
	return NewComposer(tiles, loader, patchSize, uniqueBox).Compose(source)
}

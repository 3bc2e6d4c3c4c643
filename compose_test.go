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
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
)

// mapLoader serves uniform tiles of the given colors and counts the loads.
type mapLoader struct {
	size   int
	colors map[string]RGB
	loads  map[string]int
}

func newMapLoader(size int, colors map[string]RGB) *mapLoader {
	return &mapLoader{size: size, colors: colors, loads: make(map[string]int)}
}

func (l *mapLoader) LoadTile(id string) (image.Image, error) {
	l.loads[id]++
	c, has := l.colors[id]
	if !has {
		return nil, errors.Errorf("no tile %s", id)
	}
	return uniformImage(l.size, l.size, c), nil
}

func gradientImage(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, NewRGB(uint8(x*20), uint8(y*20), 100))
		}
	}
	return img
}

func TestComposeSingleTile(t *testing.T) {
	tileColor := NewRGB(10, 10, 10)
	tiles := []TileEntry{NewTileEntry("tile", uniformSignature(tileColor))}
	loader := newMapLoader(4, map[string]RGB{"tile": tileColor})
	source := gradientImage(8, 8)
	before := ToRGBA(source)

	mosaic, err := BuildMosaic(source, tiles, loader, 4, 3)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 8), mosaic.Image.Bounds())
	requireUniform(t, mosaic.Image, mosaic.Image.Bounds(), tileColor)
	require.Equal(t, [][]string{{"tile", "tile"}, {"tile", "tile"}}, mosaic.Grid.Rows())
	require.Equal(t, 1, loader.loads["tile"])
	require.Equal(t, before.Pix, source.Pix)
}

func TestComposeSetsEachCellOnce(t *testing.T) {
	colors := map[string]RGB{
		"black": NewRGB(0, 0, 0),
		"gray":  NewRGB(128, 128, 128),
		"white": white,
		"red":   red,
	}
	var tiles []TileEntry
	for _, id := range []string{"black", "gray", "white", "red"} {
		tiles = append(tiles, NewTileEntry(id, uniformSignature(colors[id])))
	}
	composer := NewComposer(tiles, newMapLoader(2, colors), 2, 5)
	placed := make(map[[2]int]int)
	var order [][2]int
	composer.OnPlace = func(x, y int, id string) {
		placed[[2]int{x, y}]++
		order = append(order, [2]int{x, y})
	}
	progress := 0
	composer.Progress = func(num int) { progress = num }

	mosaic, err := composer.Compose(gradientImage(12, 8))
	require.NoError(t, err)
	require.Equal(t, 6, mosaic.Grid.Width())
	require.Equal(t, 4, mosaic.Grid.Height())
	require.Len(t, placed, 24)
	for cell, n := range placed {
		require.Equal(t, 1, n, "cell %v", cell)
		_, ok := mosaic.Grid.Get(cell[0], cell[1])
		require.True(t, ok)
	}
	// row-major order
	require.Equal(t, [2]int{0, 0}, order[0])
	require.Equal(t, [2]int{5, 0}, order[5])
	require.Equal(t, [2]int{0, 1}, order[6])
	require.Equal(t, 24, progress)
}

func TestComposePenalizesRepeats(t *testing.T) {
	colors := map[string]RGB{
		"a": NewRGB(9, 9, 9),
		"b": NewRGB(11, 11, 11),
	}
	tiles := []TileEntry{
		NewTileEntry("a", uniformSignature(colors["a"])),
		NewTileEntry("b", uniformSignature(colors["b"])),
	}
	source := uniformImage(8, 4, NewRGB(10, 10, 10))

	mosaic, err := BuildMosaic(source, tiles, newMapLoader(4, colors), 4, 3)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a", "b"}}, mosaic.Grid.Rows())
	requireUniform(t, mosaic.Image, image.Rect(0, 0, 4, 4), colors["a"])
	requireUniform(t, mosaic.Image, image.Rect(4, 0, 8, 4), colors["b"])

	// without a box the first tile is used everywhere
	mosaic, err = BuildMosaic(source, tiles, newMapLoader(4, colors), 4, 0)
	require.NoError(t, err)
	require.Equal(t, [][]string{{"a", "a"}}, mosaic.Grid.Rows())
}

func TestComposeRemainingPixels(t *testing.T) {
	tileColor := NewRGB(10, 10, 10)
	tiles := []TileEntry{NewTileEntry("tile", uniformSignature(tileColor))}
	source := uniformImage(10, 9, white)

	mosaic, err := BuildMosaic(source, tiles, newMapLoader(4, map[string]RGB{"tile": tileColor}), 4, 3)
	require.NoError(t, err)
	require.Equal(t, 2, mosaic.Grid.Width())
	require.Equal(t, 2, mosaic.Grid.Height())
	requireUniform(t, mosaic.Image, image.Rect(0, 0, 8, 8), tileColor)
	requireUniform(t, mosaic.Image, image.Rect(8, 0, 10, 9), white)
	requireUniform(t, mosaic.Image, image.Rect(0, 8, 10, 9), white)
}

func TestComposeSourceOffset(t *testing.T) {
	tileColor := NewRGB(1, 2, 3)
	tiles := []TileEntry{NewTileEntry("tile", uniformSignature(tileColor))}
	source := uniformImage(12, 12, white).SubImage(image.Rect(4, 4, 12, 12))

	mosaic, err := BuildMosaic(source, tiles, newMapLoader(4, map[string]RGB{"tile": tileColor}), 4, 3)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 8), mosaic.Image.Bounds())
	requireUniform(t, mosaic.Image, mosaic.Image.Bounds(), tileColor)
}

func TestComposeErrors(t *testing.T) {
	tiles := []TileEntry{NewTileEntry("tile", Signature{})}
	source := gradientImage(8, 8)

	_, err := BuildMosaic(source, nil, newMapLoader(4, nil), 4, 3)
	require.ErrorIs(t, err, ErrEmptyTileSet)

	_, err = BuildMosaic(source, tiles, newMapLoader(4, nil), 0, 3)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = BuildMosaic(source, tiles, nil, 4, 3)
	require.ErrorIs(t, err, ErrInvalidConfig)

	_, err = BuildMosaic(source, tiles, newMapLoader(4, nil), 4, 3)
	require.ErrorIs(t, err, ErrTileDecode)

	_, err = BuildMosaic(source, tiles, newMapLoader(3, map[string]RGB{"tile": white}), 4, 3)
	require.ErrorIs(t, err, ErrTileSize)
}

func TestFSTileLoader(t *testing.T) {
	dir := t.TempDir()
	c := NewRGB(50, 60, 70)
	require.NoError(t, EncodeImage(filepath.Join(dir, "tile.png"), uniformImage(4, 4, c), DefaultJPGQuality))

	loader := NewFSTileLoader(dir)
	require.Equal(t, filepath.Join(dir, "tile.png"), loader.Path("tile.png"))
	require.Equal(t, "/abs/tile.png", loader.Path("/abs/tile.png"))
	img, err := loader.LoadTile("tile.png")
	require.NoError(t, err)
	requireUniform(t, img, img.Bounds(), c)

	_, err = loader.LoadTile("missing.png")
	require.Error(t, err)
}

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
	"math"
)

// DefaultUniqueBox is the default side length of the uniqueness box.
const DefaultUniqueBox = 21

// PenaltyStep is the amount the uniqueness penalty grows by for each
// occurrence of a tile inside the uniqueness box.
const PenaltyStep = 0.5

// UniquenessPenalty returns 1 + 0.5 * n where n is the number of cells in the
// uniqueness box around (x, y) that already hold id. See PlacementGrid.Count
// for the exact shape of the box.
func UniquenessPenalty(id string, x, y int, grid *PlacementGrid, boxSize int) float64 {
	return 1.0 + PenaltyStep*float64(grid.Count(id, x, y, boxSize))
}

// Matcher selects tiles for patches. It multiplies the metric value between
// patch and tile signature with the uniqueness penalty of the tile and selects
// the tile with the smallest score.
//
// A Matcher has no state, the zero value uses SignatureDistance and a
// uniqueness box of size 0.
type Matcher struct {
	Metric    SignatureMetric
	UniqueBox int
}

// NewMatcher returns a matcher using SignatureDistance and the given
// uniqueness box.
func NewMatcher(uniqueBox int) Matcher {
	return Matcher{Metric: SignatureDistance, UniqueBox: uniqueBox}
}

// Score returns the score of placing tile on the patch (x, y) with the given
// signature.
func (m Matcher) Score(query Signature, tile TileEntry, grid *PlacementGrid, x, y int) float64 {
	metric := m.Metric
	if metric == nil {
		metric = SignatureDistance
	}
	return metric(query, tile.Signature) * UniquenessPenalty(tile.ID, x, y, grid, m.UniqueBox)
}

// Select returns the index of the candidate with the strictly smallest score,
// so the first of several equally good candidates wins.
// If there are no candidates ErrEmptyTileSet is returned.
func (m Matcher) Select(query Signature, candidates []TileEntry, grid *PlacementGrid, x, y int) (int, error) {
	if len(candidates) == 0 {
		return -1, ErrEmptyTileSet
	}
	best := -1
	bestScore := math.Inf(1)
	for i, tile := range candidates {
		score := m.Score(query, tile, grid, x, y)
		if best < 0 || score < bestScore {
			best, bestScore = i, score
		}
	}
	return best, nil
}

// SelectBestTile returns the identifier of the best tile for the patch (x, y)
// with the query signature, using SignatureDistance and the uniqueness box
// of the given size.
func SelectBestTile(query Signature, candidates []TileEntry, grid *PlacementGrid,
	x, y, uniqueBoxSize int) (string, error) {
	i, err := NewMatcher(uniqueBoxSize).Select(query, candidates, grid, x, y)
	if err != nil {
		return "", err
	}
	return candidates[i].ID, nil
}

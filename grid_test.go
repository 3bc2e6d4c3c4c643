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
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPlacementGridSet(t *testing.T) {
	grid := NewPlacementGrid(3, 2)
	require.Equal(t, 3, grid.Width())
	require.Equal(t, 2, grid.Height())

	_, ok := grid.Get(2, 1)
	require.False(t, ok)
	require.NoError(t, grid.Set(2, 1, "a"))
	id, ok := grid.Get(2, 1)
	require.True(t, ok)
	require.Equal(t, "a", id)

	require.ErrorIs(t, grid.Set(2, 1, "b"), ErrCellOccupied)
	id, _ = grid.Get(2, 1)
	require.Equal(t, "a", id)

	require.Error(t, grid.Set(3, 0, "a"))
	require.Error(t, grid.Set(0, -1, "a"))
	_, ok = grid.Get(-1, 0)
	require.False(t, ok)

	require.Equal(t, [][]string{{"", "", ""}, {"", "", "a"}}, grid.Rows())
}

func TestPlacementGridEmptyID(t *testing.T) {
	// an empty identifier is still a placement
	grid := NewPlacementGrid(1, 1)
	require.NoError(t, grid.Set(0, 0, ""))
	require.ErrorIs(t, grid.Set(0, 0, ""), ErrCellOccupied)
	require.Equal(t, 1, grid.Count("", 0, 0, 1))
}

func TestPlacementGridCount(t *testing.T) {
	grid := NewPlacementGrid(5, 5)
	require.NoError(t, grid.Set(0, 0, "a"))
	require.NoError(t, grid.Set(1, 1, "a"))
	require.NoError(t, grid.Set(2, 2, "b"))
	require.NoError(t, grid.Set(4, 4, "a"))

	require.Equal(t, 2, grid.Count("a", 1, 1, 3))
	require.Equal(t, 1, grid.Count("a", 2, 2, 3))
	require.Equal(t, 3, grid.Count("a", 2, 2, 5))
	require.Equal(t, 0, grid.Count("c", 2, 2, 5))

	// truncating division: 2 and 3 span the same box, 0 and 1 only the cell
	require.Equal(t, grid.Count("a", 2, 2, 3), grid.Count("a", 2, 2, 2))
	require.Equal(t, 0, grid.Count("a", 2, 2, 1))
	require.Equal(t, 1, grid.Count("a", 1, 1, 1))
	require.Equal(t, 1, grid.Count("a", 1, 1, 0))

	// clipped at the border
	require.Equal(t, 2, grid.Count("a", 0, 0, 2))
	require.Equal(t, 1, grid.Count("a", 0, 0, 1))
	require.Equal(t, 3, grid.Count("a", 4, 4, 21))
}

func TestNewPlacementGridNegative(t *testing.T) {
	grid := NewPlacementGrid(-1, 2)
	require.Equal(t, 0, grid.Width())
	require.False(t, grid.Valid(0, 0))
}

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
	"bytes"
	"path/filepath"
	"testing"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/stretchr/testify/require"
)

func TestExpandPath(t *testing.T) {
	path, err := ExpandPath("/base", "images")
	require.NoError(t, err)
	require.Equal(t, filepath.Join("/base", "images"), path)

	path, err = ExpandPath("/base", "/abs/../images")
	require.NoError(t, err)
	require.Equal(t, "/images", path)

	home, err := homedir.Dir()
	require.NoError(t, err)
	path, err = ExpandPath("/base", "~/Pictures")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(home, "Pictures"), path)

	path, err = ExpandPath("", "images")
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(path))
}

func TestIntMinMax(t *testing.T) {
	require.Equal(t, -3, IntMin(4, 2, -3, 7))
	require.Equal(t, 7, IntMax(4, 2, -3, 7))
	require.Equal(t, 4, IntMin(4))
}

func TestStdProgressFunc(t *testing.T) {
	var buf bytes.Buffer
	progress := StdProgressFunc(&buf, "Tiles", 4, 2)
	for i := 1; i <= 4; i++ {
		progress(i)
	}
	require.Equal(t, "Tiles: 2 of 4 (50.0%)\nTiles: 4 of 4 (100.0%)\n", buf.String())

	buf.Reset()
	progress = StdProgressFunc(&buf, "", 3, 2)
	progress(3)
	require.Equal(t, "Progress: 3 of 3 (100.0%)\n", buf.String())
}

func TestProgressStep(t *testing.T) {
	require.Equal(t, 1, ProgressStep(0))
	require.Equal(t, 5, ProgressStep(50))
	require.Equal(t, 100, ProgressStep(100000))
}

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
	"io"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line     string
		expected []string
	}{
		{"", []string{}},
		{"   ", []string{}},
		{"pwd", []string{"pwd"}},
		{"  db   load  tiles.csv ", []string{"db", "load", "tiles.csv"}},
		{`cd "my pictures"`, []string{"cd", "my pictures"}},
		{`cd "say \"hi\""`, []string{"cd", `say "hi"`}},
		{`cd a\\b`, []string{"cd", `a\b`}},
		{`mosaic ""`, []string{"mosaic", ""}},
		{"set\tbox 3", []string{"set", "box", "3"}},
	}
	for _, test := range tests {
		res, err := ParseCommand(test.line)
		require.NoError(t, err, test.line)
		require.Equal(t, test.expected, res, test.line)
	}

	res, err := ParseCommand("# a comment")
	require.NoError(t, err)
	require.Empty(t, res)

	for _, line := range []string{`cd "open`, `cd a"b`, `cd \x`, `cd \`, `cd "a\`} {
		_, err := ParseCommand(line)
		require.ErrorIs(t, err, ErrParseCommand, line)
	}
}

func readAll(t *testing.T, r io.Reader) string {
	t.Helper()
	content, err := io.ReadAll(r)
	require.NoError(t, err)
	return string(content)
}

func TestParameterized(t *testing.T) {
	script := "db load $1\nmosaic $2 $10"
	args := []string{"tiles.csv", "in.jpg", "3", "4", "5", "6", "7", "8", "9", "out"}
	r, err := Parameterized(strings.NewReader(script), args...)
	require.NoError(t, err)
	require.Equal(t, "db load tiles.csv\nmosaic in.jpg out", readAll(t, r))

	r = ParameterizedFromStrings([]string{"db load $1", "mosaic $2 $3"}, "a.csv", "b.jpg", "out")
	require.Equal(t, "db load a.csv\nmosaic b.jpg out", readAll(t, r))
}

func newTestState(t *testing.T) (*ExecutorState, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	state, err := NewExecutorState(strings.NewReader(""), &out)
	require.NoError(t, err)
	return state, &out
}

func TestSetAndStats(t *testing.T) {
	state, out := newTestState(t)
	require.NoError(t, SetVarCommand(state, "patch", "8"))
	require.NoError(t, SetVarCommand(state, "box", "0"))
	require.NoError(t, SetVarCommand(state, "metric", "Manhattan"))
	require.NoError(t, SetVarCommand(state, "scaled", "false"))
	require.NoError(t, SetVarCommand(state, "interp", "0"))
	require.Equal(t, 8, state.PatchSize)
	require.Equal(t, 0, state.UniqueBox)
	require.Equal(t, "manhattan", state.Metric)
	require.False(t, state.WriteScaled)

	require.Error(t, SetVarCommand(state, "patch", "0"))
	require.Error(t, SetVarCommand(state, "box", "-1"))
	require.Error(t, SetVarCommand(state, "jpeg-quality", "0"))
	require.Error(t, SetVarCommand(state, "metric", "cosine"))
	require.Error(t, SetVarCommand(state, "unknown", "1"))
	require.Error(t, SetVarCommand(state, "patch"))
	require.Equal(t, 8, state.PatchSize)

	require.NoError(t, StatsCommand(state, "patch"))
	require.Equal(t, "patch ==> 8\n", out.String())
	require.NoError(t, StatsCommand(state, "interp"))
	require.Contains(t, out.String(), "interp ==> nearest neighbor")
	require.Error(t, StatsCommand(state, "unknown"))

	out.Reset()
	require.NoError(t, StatsCommand(state))
	require.Len(t, strings.Split(strings.TrimSpace(out.String()), "\n"), len(state.variables()))
}

func TestCdCommand(t *testing.T) {
	state, out := newTestState(t)
	dir := t.TempDir()
	require.NoError(t, CdCommand(state, dir))
	require.NoError(t, PwdCommand(state))
	require.Equal(t, dir+"\n", out.String())

	writeTestImage(t, filepath.Join(dir, "sub", "a.png"), uniformImage(1, 1, red))
	require.NoError(t, CdCommand(state, "sub"))
	require.Equal(t, filepath.Join(dir, "sub"), state.WorkingDir)
	require.Error(t, CdCommand(state, "a.png"))
	require.Error(t, CdCommand(state, "missing"))
	require.ErrorIs(t, CdCommand(state), ErrCmdSyntaxErr)
}

func TestExecuteScript(t *testing.T) {
	dir := t.TempDir()
	tileColor := NewRGB(200, 100, 50)
	setupTiles(t, dir, 4, tileColor)
	writeTestImage(t, filepath.Join(dir, "images", "source.png"), gradientImage(8, 8))

	var out bytes.Buffer
	script := ParameterizedFromStrings([]string{
		"cd $1",
		"set patch 4",
		"set width 8",
		"set verbose false",
		"# tiles are relative to the working directory",
		"db load db4x4.csv",
		"db",
		"mosaic images/source.png out",
	}, dir)
	handler := ScriptHandler{Source: script, Out: &out}
	require.True(t, Execute(handler, DefaultCommands))
	require.Contains(t, out.String(), "1 tiles loaded")
	require.Contains(t, out.String(), "Placed 2x2 tiles")

	mosaic, err := DecodeImage(filepath.Join(dir, "out", "MOSAIC_OUTPUT_source.png"))
	require.NoError(t, err)
	requireUniform(t, mosaic, mosaic.Bounds(), tileColor)
}

func TestExecuteScriptStops(t *testing.T) {
	var out bytes.Buffer
	handler := ScriptHandler{Source: ReaderFromCmdLines([]string{"unknown", "pwd"}), Out: &out}
	require.False(t, Execute(handler, DefaultCommands))
	require.Empty(t, out.String())

	// a mosaic without tiles fails
	handler = ScriptHandler{Source: ReaderFromCmdLines([]string{"mosaic in.jpg"}), Out: &out}
	require.False(t, Execute(handler, DefaultCommands))

	handler = ScriptHandler{Source: ReaderFromCmdLines([]string{`cd "open`}), Out: &out}
	require.False(t, Execute(handler, DefaultCommands))
}

func TestHelpCommand(t *testing.T) {
	state, out := newTestState(t)
	require.NoError(t, HelpCommand(state))
	for _, name := range []string{"pwd", "cd", "stats", "set", "db", "mosaic", "help"} {
		require.Contains(t, out.String(), DefaultCommands[name].Usage)
	}
	out.Reset()
	require.NoError(t, HelpCommand(state, "mosaic"))
	require.Contains(t, out.String(), "sqeuclid")
	require.Error(t, HelpCommand(state, "unknown"))
}

func TestPredefinedScripts(t *testing.T) {
	for name, script := range PredefinedScripts {
		for _, line := range strings.Split(script, "\n") {
			parsed, err := ParseCommand(line)
			require.NoError(t, err, name)
			require.NotEmpty(t, parsed, name)
			_, has := DefaultCommands[parsed[0]]
			require.True(t, has, "%s: %s", name, line)
		}
	}
}

func TestMatchCommand(t *testing.T) {
	dir := t.TempDir()
	state, out := newTestState(t)
	state.Tiles = []TileEntry{
		NewTileEntry("red", uniformSignature(red)),
		NewTileEntry("quadrants", Signature{red, green, blue, white}),
	}
	require.ErrorIs(t, MatchCommand(state), ErrCmdSyntaxErr)

	path := filepath.Join(dir, "q.png")
	writeTestImage(t, path, quadrantImage())
	require.NoError(t, MatchCommand(state, path, "1"))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	require.Equal(t, "0.00 quadrants", lines[1])

	require.Error(t, MatchCommand(state, path, "0"))
	state.Tiles = nil
	require.ErrorIs(t, MatchCommand(state, path), ErrEmptyTileSet)
}

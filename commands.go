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
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

var (
	// ErrCmdSyntaxErr is returned by a CommandFunc if the syntax for the command
	// is invalid.
	ErrCmdSyntaxErr = errors.New("invalid command syntax")

	// ErrParseCommand is returned by ParseCommand for malformed lines.
	ErrParseCommand = errors.New("error parsing command line")
)

// ExecutorState is the state during a CommandHandler execution, see that
// type for more details of the workflow.
//
// The variables in the state are shared among the executions of the command
// functions.
type ExecutorState struct {
	// WorkingDir is the current directory. It must always be an absolute path.
	WorkingDir string

	// Tiles are the tiles of the loaded database.
	Tiles []TileEntry

	// Database is the path of the loaded database, empty if none is loaded.
	Database string

	// NumRoutines is the number of go routines used when building databases.
	NumRoutines int

	// Verbose is true if detailed output should be generated.
	Verbose bool

	// In is the source to read commands from (line by line).
	In io.Reader

	// Out is used to write state information.
	Out io.Writer

	// Option / config part

	// Width is the width and height the source images are scaled to.
	Width int

	// PatchSize is the size of patches and tiles.
	PatchSize int

	// UniqueBox is the size of the uniqueness box.
	UniqueBox int

	// JPGQuality is the quality between 1 and 100 used when storing images.
	JPGQuality int

	// InterPQuality selects the interpolation function, see GetInterP.
	InterPQuality uint

	// Metric is the name of the signature metric.
	Metric string

	// WriteScaled controls if the scaled source image is written by mosaic.
	WriteScaled bool
}

// NewExecutorState returns a state with the default configuration and the
// current directory as working directory.
func NewExecutorState(in io.Reader, out io.Writer) (*ExecutorState, error) {
	dir, err := filepath.Abs(".")
	if err != nil {
		return nil, errors.Wrap(err, "unable to retrieve working directory")
	}
	cfg := DefaultConfig()
	return &ExecutorState{
		WorkingDir:    dir,
		NumRoutines:   IntMax(1, runtime.NumCPU()),
		Verbose:       true,
		In:            in,
		Out:           out,
		Width:         cfg.Width,
		PatchSize:     cfg.PatchSize,
		UniqueBox:     cfg.UniqueBox,
		JPGQuality:    cfg.JPGQuality,
		InterPQuality: cfg.InterPQuality,
		Metric:        cfg.Metric,
		WriteScaled:   cfg.WriteScaled,
	}, nil
}

// GetPath returns the absolute path given some other path, relative paths are
// relative to the working directory. See ExpandPath.
func (state *ExecutorState) GetPath(path string) (string, error) {
	return ExpandPath(state.WorkingDir, path)
}

// Config returns a mosaic config for the input image using the current
// variables.
func (state *ExecutorState) Config(input, outDir string) Config {
	cfg := DefaultConfig()
	cfg.Input = input
	cfg.OutputDir = outDir
	cfg.Width = state.Width
	cfg.PatchSize = state.PatchSize
	cfg.UniqueBox = state.UniqueBox
	cfg.Database = state.Database
	cfg.TileRoot = state.WorkingDir
	cfg.JPGQuality = state.JPGQuality
	cfg.InterPQuality = state.InterPQuality
	cfg.Metric = state.Metric
	cfg.WriteScaled = state.WriteScaled
	return cfg
}

// CommandFunc is a function that is applied to the current states and
// arguments to that command.
type CommandFunc func(state *ExecutorState, args ...string) error

// Command a command consists of a function to actually execute the command
// and some information about the command.
type Command struct {
	Exec        CommandFunc
	Usage       string
	Description string
}

// CommandMap maps command names to Commands.
type CommandMap map[string]Command

// DefaultCommands contains all commands of the mosaic shell.
var DefaultCommands CommandMap

// CommandHandler together with Execute implements a high-level command
// execution loop. CommandFuncs are applied to the current state until there
// are no more commands to execute (no more input).
//
// A command has the form "COMMAND ARG1 ... ARGN" where COMMAND is the command
// name and ARG1 to ARGN are the arguments for the command.
//
// Execute first creates the state by calling Init and then calls Start.
// For each line read from the state's reader Before is called, then the line
// is parsed and the command is looked up and executed. Afterwards After is
// called.
// OnParseErr, OnInvalidCmd and OnError are called if the line can't be parsed,
// the command does not exist or the command failed. They return true if the
// execution should continue despite the error. Commands return
// ErrCmdSyntaxErr if they're called with wrong arguments.
// OnScanErr is called if there is an error while reading a command line.
type CommandHandler interface {
	Init() (*ExecutorState, error)
	Start(s *ExecutorState)
	Before(s *ExecutorState)
	After(s *ExecutorState)
	OnParseErr(s *ExecutorState, err error) bool
	OnInvalidCmd(s *ExecutorState, cmd string) bool
	OnSuccess(s *ExecutorState, cmd Command)
	OnError(s *ExecutorState, err error, cmd Command) bool
	OnScanErr(s *ExecutorState, err error)
}

// Execute implements the high-level execution loop as described in the
// documentation of CommandHandler. commandMap is used to lookup commands.
// It returns false if the execution was stopped because of an error.
func Execute(handler CommandHandler, commandMap CommandMap) bool {
	state, initErr := handler.Init()
	if initErr != nil {
		log.WithError(initErr).Error("Can't initialize shell")
		return false
	}
	handler.Start(state)
	scanner := bufio.NewScanner(state.In)
	for scanner.Scan() {
		handler.Before(state)
		if !executeLine(handler, commandMap, state, scanner.Text()) {
			return false
		}
		handler.After(state)
	}
	if scanErr := scanner.Err(); scanErr != nil {
		handler.OnScanErr(state, scanErr)
		return false
	}
	return true
}

func executeLine(handler CommandHandler, commandMap CommandMap, state *ExecutorState, line string) bool {
	parsedCmd, parseErr := ParseCommand(line)
	if parseErr != nil {
		return handler.OnParseErr(state, parseErr)
	}
	if len(parsedCmd) == 0 {
		return true
	}
	name := parsedCmd[0]
	cmd, ok := commandMap[name]
	if !ok {
		return handler.OnInvalidCmd(state, name)
	}
	if execErr := cmd.Exec(state, parsedCmd[1:]...); execErr != nil {
		return handler.OnError(state, execErr, cmd)
	}
	handler.OnSuccess(state, cmd)
	return true
}

// states of the ParseCommand automaton
const (
	parseSpace = iota
	parsePlain
	parsePlainEscape
	parseQuoted
	parseQuotedEscape
)

// ParseCommand parses a command of the form "COMMAND ARG1 ... ARGN".
// Arguments might be enclosed in quotes, so foo "bar bar" is the command foo
// with the single argument bar bar. Inside and outside of quotes \" and \\
// are escaped quotes and backslashes.
// Lines starting with # are comments and yield no command.
func ParseCommand(s string) ([]string, error) {
	if strings.HasPrefix(strings.TrimSpace(s), "#") {
		return nil, nil
	}
	res := make([]string, 0)
	r := []rune(s)
	state := parseSpace
	var current []rune
	for _, c := range r {
		switch state {
		case parseSpace:
			switch c {
			case ' ', '\t':
			case '\\':
				state = parsePlainEscape
			case '"':
				state = parseQuoted
			default:
				current = append(current, c)
				state = parsePlain
			}
		case parsePlain:
			switch c {
			case ' ', '\t':
				res = append(res, string(current))
				current = nil
				state = parseSpace
			case '\\':
				state = parsePlainEscape
			case '"':
				return nil, ErrParseCommand
			default:
				current = append(current, c)
			}
		case parsePlainEscape, parseQuotedEscape:
			if c != '\\' && c != '"' {
				return nil, ErrParseCommand
			}
			current = append(current, c)
			if state == parsePlainEscape {
				state = parsePlain
			} else {
				state = parseQuoted
			}
		case parseQuoted:
			switch c {
			case '"':
				res = append(res, string(current))
				current = nil
				state = parseSpace
			case '\\':
				state = parseQuotedEscape
			default:
				current = append(current, c)
			}
		}
	}
	switch state {
	case parsePlainEscape, parseQuoted, parseQuotedEscape:
		return nil, ErrParseCommand
	}
	if len(current) > 0 {
		res = append(res, string(current))
	}
	return res, nil
}

// PwdCommand is a command that prints the current working directory.
func PwdCommand(state *ExecutorState, args ...string) error {
	fmt.Fprintln(state.Out, state.WorkingDir)
	return nil
}

func (state *ExecutorState) variables() map[string]interface{} {
	db := state.Database
	if db == "" {
		db = "<none>"
	}
	return map[string]interface{}{
		"routines":     state.NumRoutines,
		"verbose":      state.Verbose,
		"width":        state.Width,
		"patch":        state.PatchSize,
		"box":          state.UniqueBox,
		"jpeg-quality": state.JPGQuality,
		"interp":       InterPString(GetInterP(state.InterPQuality)),
		"metric":       state.Metric,
		"scaled":       state.WriteScaled,
		"database":     fmt.Sprintf("%s (%d tiles)", db, len(state.Tiles)),
	}
}

// StatsCommand is a command that prints variable / value pairs.
func StatsCommand(state *ExecutorState, args ...string) error {
	m := state.variables()
	if len(args) == 1 {
		val, has := m[args[0]]
		if !has {
			return errors.Errorf("unknown variable %s", args[0])
		}
		fmt.Fprintf(state.Out, "%s ==> %v\n", args[0], val)
		return nil
	}
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, variable := range keys {
		fmt.Fprintf(state.Out, "%s ==> %v\n", variable, m[variable])
	}
	return nil
}

func parsePositive(name, value string) (int, error) {
	val, parseErr := strconv.Atoi(value)
	if parseErr != nil || val <= 0 {
		return -1, errors.Errorf("invalid value for %s (must be positive int): %s", name, value)
	}
	return val, nil
}

// SetVarCommand sets a variable to a new value.
func SetVarCommand(state *ExecutorState, args ...string) error {
	if len(args) != 2 {
		return errors.New("invalid set syntax: requires variable and value, for a list of variables use \"stats\"")
	}
	name, valueStr := args[0], args[1]
	switch name {
	case "routines", "width", "patch":
		val, err := parsePositive(name, valueStr)
		if err != nil {
			return err
		}
		switch name {
		case "routines":
			state.NumRoutines = val
		case "width":
			state.Width = val
		default:
			state.PatchSize = val
		}
	case "box":
		val, parseErr := strconv.Atoi(valueStr)
		if parseErr != nil || val < 0 {
			return errors.Errorf("invalid value for box (must be int >= 0): %s", valueStr)
		}
		state.UniqueBox = val
	case "verbose", "scaled":
		val, parseErr := strconv.ParseBool(valueStr)
		if parseErr != nil {
			return errors.Errorf("invalid value for %s (must be true or false): %s", name, valueStr)
		}
		if name == "verbose" {
			state.Verbose = val
		} else {
			state.WriteScaled = val
		}
	case "jpeg-quality":
		val, parseErr := strconv.Atoi(valueStr)
		if parseErr != nil || val < 1 || val > 100 {
			return errors.Errorf("invalid value for jpeg-quality (must be int between 1 and 100): %s", valueStr)
		}
		state.JPGQuality = val
	case "interp":
		val, parseErr := strconv.ParseUint(valueStr, 10, 32)
		if parseErr != nil {
			return errors.Errorf("invalid value for interp (must be int >= 0): %s", valueStr)
		}
		state.InterPQuality = uint(val)
	case "metric":
		if _, has := GetSignatureMetric(valueStr); !has {
			return errors.Errorf("unknown metric %q, valid metrics: %s", valueStr,
				strings.Join(GetSignatureMetricNames(), " "))
		}
		state.Metric = strings.ToLower(valueStr)
	default:
		return errors.Errorf("invalid variable %q, for a list use \"stats\"", name)
	}
	return nil
}

// CdCommand is a command that changes the current directory.
func CdCommand(state *ExecutorState, args ...string) error {
	if len(args) != 1 {
		return ErrCmdSyntaxErr
	}
	path, pathErr := state.GetPath(args[0])
	if pathErr != nil {
		return errors.Wrap(pathErr, "changing directory failed")
	}
	fi, statErr := os.Stat(path)
	if statErr != nil {
		return errors.Wrap(statErr, "changing directory failed")
	}
	if !fi.IsDir() {
		return errors.Errorf("changing directory failed: %q is not a directory", path)
	}
	state.WorkingDir = path
	return nil
}

// DatabaseCommand administrates the tile database.
// Without arguments it prints the number of loaded tiles, "db list" prints
// all tiles. "db load [file]" loads a database, the default is the database
// for the current patch size. "db build <images> <out> [recursive]" creates
// tiles of the current patch size for all images and appends them to the
// database in out.
func DatabaseCommand(state *ExecutorState, args ...string) error {
	if len(args) == 0 {
		fmt.Fprintf(state.Out, "%d tiles loaded\n", len(state.Tiles))
		return nil
	}
	switch args[0] {
	case "list":
		if len(args) != 1 {
			return ErrCmdSyntaxErr
		}
		for _, tile := range state.Tiles {
			fmt.Fprintln(state.Out, tile.ID)
		}
		return nil
	case "load":
		return loadDatabaseCommand(state, args[1:]...)
	case "build":
		return buildDatabaseCommand(state, args[1:]...)
	default:
		return ErrCmdSyntaxErr
	}
}

func loadDatabaseCommand(state *ExecutorState, args ...string) error {
	var path string
	switch len(args) {
	case 0:
		path = filepath.Join(DefaultDatabaseDir, DatabaseFileName(state.PatchSize, "csv"))
	case 1:
		path = args[0]
	default:
		return ErrCmdSyntaxErr
	}
	path, pathErr := state.GetPath(path)
	if pathErr != nil {
		return pathErr
	}
	tiles, loadErr := LoadTileDatabase(path)
	if loadErr != nil {
		return loadErr
	}
	state.Tiles, state.Database = tiles, path
	fmt.Fprintf(state.Out, "Loaded %d tiles from %s\n", len(tiles), path)
	return nil
}

func buildDatabaseCommand(state *ExecutorState, args ...string) error {
	if len(args) < 2 || len(args) > 3 {
		return ErrCmdSyntaxErr
	}
	recursive := false
	if len(args) == 3 {
		var boolErr error
		recursive, boolErr = strconv.ParseBool(args[2])
		if boolErr != nil {
			return ErrCmdSyntaxErr
		}
	}
	input, inErr := state.GetPath(args[0])
	if inErr != nil {
		return inErr
	}
	out, outErr := state.GetPath(args[1])
	if outErr != nil {
		return outErr
	}
	opts := BuildOptions{
		Input:       input,
		OutputDir:   out,
		Width:       state.PatchSize,
		Recursive:   recursive,
		Resizer:     NewNfntResizer(GetInterP(state.InterPQuality)),
		JPGQuality:  state.JPGQuality,
		NumRoutines: state.NumRoutines,
	}
	stats, buildErr := BuildDatabase(opts)
	if buildErr != nil {
		return buildErr
	}
	fmt.Fprintf(state.Out, "Created %d tiles (skipped %d, failed %d) in %s\n",
		stats.Created, stats.Skipped, stats.Failed, stats.Database)
	return nil
}

// MosaicCommand creates a mosaic of the input image with the loaded tiles.
// Usage example: mosaic in.jpg out/
func MosaicCommand(state *ExecutorState, args ...string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrCmdSyntaxErr
	}
	if len(state.Tiles) == 0 {
		return errors.Wrap(ErrEmptyTileSet, "no tiles loaded, use \"db load\" first")
	}
	input, inErr := state.GetPath(args[0])
	if inErr != nil {
		return inErr
	}
	outArg := "."
	if len(args) == 2 {
		outArg = args[1]
	}
	out, outErr := state.GetPath(outArg)
	if outErr != nil {
		return outErr
	}
	cfg := state.Config(input, out)
	if state.Verbose {
		numPatches := (cfg.Width / IntMax(1, cfg.PatchSize)) * (cfg.Width / IntMax(1, cfg.PatchSize))
		cfg.Progress = StdProgressFunc(state.Out, "", numPatches, ProgressStep(numPatches))
	}
	mosaic, runErr := RunWithTiles(cfg, state.Tiles)
	if runErr != nil {
		return runErr
	}
	fmt.Fprintf(state.Out, "Placed %dx%d tiles, mosaic written to %s\n",
		mosaic.Grid.Width(), mosaic.Grid.Height(), cfg.OutputPath())
	return nil
}

// MatchCommand prints the k (default 10) loaded tiles whose signatures are
// closest to the signature of an image, using the current metric.
func MatchCommand(state *ExecutorState, args ...string) error {
	if len(args) < 1 || len(args) > 2 {
		return ErrCmdSyntaxErr
	}
	k := 10
	if len(args) == 2 {
		var parseErr error
		if k, parseErr = parsePositive("k", args[1]); parseErr != nil {
			return parseErr
		}
	}
	if len(state.Tiles) == 0 {
		return errors.Wrap(ErrEmptyTileSet, "no tiles loaded, use \"db load\" first")
	}
	path, pathErr := state.GetPath(args[0])
	if pathErr != nil {
		return pathErr
	}
	img, decodeErr := DecodeImage(path)
	if decodeErr != nil {
		return errors.Wrapf(ErrInvalidImage, "%s: %v", path, decodeErr)
	}
	metric, has := GetSignatureMetric(state.Metric)
	if !has {
		return errors.Errorf("unknown metric %q", state.Metric)
	}
	sig := ComputeSignature(img)
	fmt.Fprintln(state.Out, "Signature:", sig)
	for _, entry := range (Matcher{Metric: metric}).Rank(sig, state.Tiles, k) {
		fmt.Fprintf(state.Out, "%.2f %s\n", entry.Value, entry.ID)
	}
	return nil
}

// HelpCommand prints the usage of all commands or of a single command.
func HelpCommand(state *ExecutorState, args ...string) error {
	if len(args) == 1 {
		cmd, has := DefaultCommands[args[0]]
		if !has {
			return errors.Errorf("unknown command %q", args[0])
		}
		fmt.Fprintf(state.Out, "%s\n\n%s\n", cmd.Usage, cmd.Description)
		return nil
	}
	names := make([]string, 0, len(DefaultCommands))
	for name := range DefaultCommands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintln(state.Out, DefaultCommands[name].Usage)
	}
	return nil
}

func init() {
	DefaultCommands = make(map[string]Command, 10)
	DefaultCommands["pwd"] = Command{
		Exec:        PwdCommand,
		Usage:       "pwd",
		Description: "Show current working directory.",
	}
	DefaultCommands["stats"] = Command{
		Exec:        StatsCommand,
		Usage:       "stats [var]",
		Description: "Show value of variables that can be changed via set, if var is given only value of that variable.",
	}
	DefaultCommands["set"] = Command{
		Exec:  SetVarCommand,
		Usage: "set <variable> <value>",
		Description: "Set value for a variable. Variables are routines, verbose," +
			" width, patch, box, jpeg-quality, interp, metric and scaled.",
	}
	DefaultCommands["cd"] = Command{
		Exec:        CdCommand,
		Usage:       "cd <dir>",
		Description: "Change working directory to the specified directory.",
	}
	DefaultCommands["db"] = Command{
		Exec:  DatabaseCommand,
		Usage: "db [list] or db load [file] or db build <images> <out> [recursive]",
		Description: "Controls the tile database.\n\n\"list\" prints all loaded tiles." +
			" \"load\" loads the tiles of a database file (db/db<patch>x<patch>.csv" +
			" by default), files ending with .db, .sqlite or .sqlite3 are SQLite" +
			" databases. \"build\" scales all images (or a single image) to" +
			" patch x patch tiles written to out and appends them to the database" +
			" in out. Existing tiles are skipped.",
	}
	DefaultCommands["mosaic"] = Command{
		Exec:  MosaicCommand,
		Usage: "mosaic <in> [out-dir]",
		Description: "Creates a mosaic of in with the loaded tiles. The image is" +
			" scaled to width x width, each patch x patch area is replaced by the" +
			" tile with the closest signature, tiles already used in the box around" +
			" a patch are penalized. Valid metrics: " +
			strings.Join(GetSignatureMetricNames(), " "),
	}
	DefaultCommands["match"] = Command{
		Exec:  MatchCommand,
		Usage: "match <image> [k]",
		Description: "Prints the k (default 10) loaded tiles closest to the" +
			" signature of image, using the current metric.",
	}
	DefaultCommands["help"] = Command{
		Exec:        HelpCommand,
		Usage:       "help [command]",
		Description: "Show all commands or the description of a command.",
	}
}

// ReplHandler implements CommandHandler by reading commands from stdin and
// writing output to stdout.
type ReplHandler struct{}

func (h ReplHandler) Init() (*ExecutorState, error) {
	return NewExecutorState(os.Stdin, os.Stdout)
}

func (h ReplHandler) Start(s *ExecutorState) {
	fmt.Fprintln(s.Out, "Welcome to the photomosaic shell, type \"help\" for a list of commands")
	fmt.Fprint(s.Out, ">>> ")
}

func (h ReplHandler) Before(s *ExecutorState) {}

func (h ReplHandler) After(s *ExecutorState) {
	fmt.Fprint(s.Out, ">>> ")
}

func (h ReplHandler) OnParseErr(s *ExecutorState, err error) bool {
	fmt.Fprintln(s.Out, "Syntax error:", err)
	return true
}

func (h ReplHandler) OnInvalidCmd(s *ExecutorState, cmd string) bool {
	fmt.Fprintf(s.Out, "Invalid command %q\n", cmd)
	return true
}

func (h ReplHandler) OnSuccess(s *ExecutorState, cmd Command) {}

func (h ReplHandler) OnError(s *ExecutorState, err error, cmd Command) bool {
	if errors.Cause(err) == ErrCmdSyntaxErr {
		fmt.Fprintln(s.Out, "Invalid syntax for command.")
		fmt.Fprintln(s.Out, "Usage:", cmd.Usage)
	} else {
		fmt.Fprintln(s.Out, "Error while executing command:", err)
	}
	return true
}

func (h ReplHandler) OnScanErr(s *ExecutorState, err error) {
	fmt.Fprintln(s.Out, "Error while reading:", err)
}

// ScriptHandler implements CommandHandler. It reads commands from Source,
// writes output to Out (stdout if nil) and stops whenever an error is
// encountered.
type ScriptHandler struct {
	Source io.Reader
	Out    io.Writer
}

// NewScriptHandler returns a new script handler that reads input from the given
// source.
func NewScriptHandler(source io.Reader) ScriptHandler {
	return ScriptHandler{Source: source}
}

func (h ScriptHandler) Init() (*ExecutorState, error) {
	out := h.Out
	if out == nil {
		out = os.Stdout
	}
	return NewExecutorState(h.Source, out)
}

func (h ScriptHandler) Start(s *ExecutorState) {}

func (h ScriptHandler) Before(s *ExecutorState) {}

func (h ScriptHandler) After(s *ExecutorState) {}

func (h ScriptHandler) OnParseErr(s *ExecutorState, err error) bool {
	log.WithError(err).Error("Syntax error")
	return false
}

func (h ScriptHandler) OnInvalidCmd(s *ExecutorState, cmd string) bool {
	log.WithField("command", cmd).Error("Invalid command")
	return false
}

func (h ScriptHandler) OnSuccess(s *ExecutorState, cmd Command) {}

func (h ScriptHandler) OnError(s *ExecutorState, err error, cmd Command) bool {
	if errors.Cause(err) == ErrCmdSyntaxErr {
		log.WithField("usage", cmd.Usage).Error("Invalid syntax for command")
	} else {
		log.WithError(err).Error("Error while executing command")
	}
	return false
}

func (h ScriptHandler) OnScanErr(s *ExecutorState, err error) {
	log.WithError(err).Error("Error while reading script")
}

// ScriptHandlerFromCmds is a function to create a script handler from
// a predefined set of lines. This allows us for easy execution of predefined
// scripts.
func ScriptHandlerFromCmds(lines []string) ScriptHandler {
	return NewScriptHandler(ReaderFromCmdLines(lines))
}

// ReaderFromCmdLines returns a reader for a script source that reads the
// content of the combined lines.
func ReaderFromCmdLines(lines []string) io.Reader {
	return strings.NewReader(strings.Join(lines, "\n"))
}

func argsReplacer(args []string) *strings.Replacer {
	// replace $10 before $1
	replaceArgs := make([]string, 0, 2*len(args))
	for i := len(args) - 1; i >= 0; i-- {
		replaceArgs = append(replaceArgs, fmt.Sprintf("$%d", i+1), args[i])
	}
	return strings.NewReplacer(replaceArgs...)
}

// Parameterized is used to transform parameterized commands into executable
// commands, that means replacing variables $i with the provided argument.
// Example:
// The command "db load $1" can be called with one argument that will replace
// the placeholder $1.
//
// The whole reader is read before the replacement.
func Parameterized(r io.Reader, args ...string) (io.Reader, error) {
	replacer := argsReplacer(args)
	lines := make([]string, 0, 20)
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		lines = append(lines, replacer.Replace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return ReaderFromCmdLines(lines), nil
}

// ParameterizedFromStrings replaces the placeholders in each command by args,
// see Parameterized.
func ParameterizedFromStrings(commands []string, args ...string) io.Reader {
	replacer := argsReplacer(args)
	lines := make([]string, 0, len(commands))
	for _, line := range commands {
		lines = append(lines, replacer.Replace(line))
	}
	return ReaderFromCmdLines(lines)
}

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
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// TileEntry is a database tile: the identifier of the tile (the path of the
// tile image) and its precomputed signature.
type TileEntry struct {
	ID        string
	Signature Signature
}

// NewTileEntry returns a new tile entry.
func NewTileEntry(id string, signature Signature) TileEntry {
	return TileEntry{ID: id, Signature: signature}
}

// TileRecordWriter appends tiles to a tile database.
type TileRecordWriter interface {
	WriteTile(entry TileEntry) error
	Close() error
}

// This file contains the CSV database format. Each line has five fields:
// the tile path and the four quadrant colors as packed integers.
// Colors are written as signed 32 bit integers with alpha 0xff (0xffRRGGBB),
// when reading everything but the lowest 24 bits is ignored.

// CSVRecordFields is the number of fields in each CSV database record.
const CSVRecordFields = 1 + NumQuadrants

// DatabaseFileName returns the default file name of the database for tiles of
// the given width and format (for example "csv"), like "db32x32.csv".
func DatabaseFileName(width int, ext string) string {
	return fmt.Sprintf("db%dx%d.%s", width, width, ext)
}

// FormatPackedColor returns the packed representation of c used in the CSV
// database.
func FormatPackedColor(c RGB) string {
	return strconv.FormatInt(int64(int32(0xff000000|c.Packed())), 10)
}

// ParsePackedColor parses a color written by FormatPackedColor. Unsigned
// values like 0xRRGGBB written in decimal are accepted as well.
func ParsePackedColor(s string) (RGB, error) {
	v, err := strconv.ParseInt(strings.TrimSpace(s), 10, 64)
	if err != nil {
		return RGB{}, err
	}
	if v < -(1<<31) || v >= (1<<32) {
		return RGB{}, errors.Errorf("color value %d out of range", v)
	}
	return UnpackRGB(uint32(v)), nil
}

// ParseTileRecord parses the fields of a single CSV record. The error wraps
// ErrMalformedRecord.
func ParseTileRecord(fields []string) (TileEntry, error) {
	if len(fields) != CSVRecordFields {
		return TileEntry{}, errors.Wrapf(ErrMalformedRecord,
			"expected %d fields, got %d", CSVRecordFields, len(fields))
	}
	var sig Signature
	for i := range sig {
		c, parseErr := ParsePackedColor(fields[i+1])
		if parseErr != nil {
			return TileEntry{}, errors.Wrapf(ErrMalformedRecord, "quadrant %d: %v", i, parseErr)
		}
		sig[i] = c
	}
	return NewTileEntry(fields[0], sig), nil
}

// ReadCSVDatabase reads all tiles from r. Malformed records are skipped and
// logged, they never make the whole read fail. Errors from the reader itself
// are returned.
func ReadCSVDatabase(r io.Reader) ([]TileEntry, error) {
	reader := csv.NewReader(r)
	// we check the number of fields ourselves
	reader.FieldsPerRecord = -1
	reader.ReuseRecord = true
	reader.LazyQuotes = true
	res := make([]TileEntry, 0, 100)
	for {
		fields, readErr := reader.Read()
		if readErr == io.EOF {
			break
		}
		if readErr != nil {
			var parseErr *csv.ParseError
			if errors.As(readErr, &parseErr) {
				log.WithError(readErr).Warn("Invalid database entry, skipping")
				continue
			}
			return nil, readErr
		}
		entry, entryErr := ParseTileRecord(fields)
		if entryErr != nil {
			line, _ := reader.FieldPos(0)
			log.WithFields(log.Fields{
				log.ErrorKey: entryErr,
				"line":       line,
				"record":     strings.Join(fields, ","),
			}).Warn("Invalid database entry, skipping")
			continue
		}
		res = append(res, entry)
	}
	return res, nil
}

// LoadCSVDatabase reads the CSV database at path. If the file does not exist
// an error wrapping ErrMissingDatabase is returned.
func LoadCSVDatabase(path string) ([]TileEntry, error) {
	f, openErr := os.Open(path)
	if openErr != nil {
		if os.IsNotExist(openErr) {
			return nil, errors.Wrap(ErrMissingDatabase, path)
		}
		return nil, openErr
	}
	defer f.Close()
	return ReadCSVDatabase(f)
}

// CSVTileWriter writes tiles as CSV records. Every record is flushed
// immediately, so an aborted database build keeps all tiles written so far.
type CSVTileWriter struct {
	w      *csv.Writer
	closer io.Closer
}

// NewCSVTileWriter returns a writer writing to w. If w is an io.Closer it is
// closed by Close.
func NewCSVTileWriter(w io.Writer) *CSVTileWriter {
	closer, _ := w.(io.Closer)
	return &CSVTileWriter{w: csv.NewWriter(w), closer: closer}
}

// AppendCSVDatabase opens the CSV database at path for appending, creating
// it if required.
func AppendCSVDatabase(path string) (*CSVTileWriter, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, err
	}
	return NewCSVTileWriter(f), nil
}

// WriteTile writes a single record.
func (w *CSVTileWriter) WriteTile(entry TileEntry) error {
	record := make([]string, CSVRecordFields)
	record[0] = entry.ID
	for i, c := range entry.Signature {
		record[i+1] = FormatPackedColor(c)
	}
	if err := w.w.Write(record); err != nil {
		return err
	}
	w.w.Flush()
	return w.w.Error()
}

// Close flushes the writer and closes the underlying file.
func (w *CSVTileWriter) Close() error {
	w.w.Flush()
	flushErr := w.w.Error()
	if w.closer != nil {
		if closeErr := w.closer.Close(); closeErr != nil && flushErr == nil {
			return closeErr
		}
	}
	return flushErr
}

// IsSQLiteDatabase returns true if path names an SQLite tile database (based
// on the file extension), otherwise the CSV format is used.
func IsSQLiteDatabase(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".db", ".sqlite", ".sqlite3":
		return true
	default:
		return false
	}
}

// LoadTileDatabase loads all tiles from the database at path, choosing the
// format by the file extension. If the database does not exist an error
// wrapping ErrMissingDatabase is returned.
func LoadTileDatabase(path string) ([]TileEntry, error) {
	if IsSQLiteDatabase(path) {
		return LoadSQLiteDatabase(path)
	}
	return LoadCSVDatabase(path)
}

// OpenTileWriter opens the database at path for appending, choosing the
// format by the file extension.
func OpenTileWriter(path string) (TileRecordWriter, error) {
	if IsSQLiteDatabase(path) {
		return OpenSQLiteTileWriter(path)
	}
	return AppendCSVDatabase(path)
}

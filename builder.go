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
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

// This file contains the creation of tile databases: Images are scaled to
// squares, written to an output directory and their signatures are appended
// to a database file.

// BufferSize is the size of channel buffers used by worker pools.
var BufferSize = 1000

// BuildOptions configures BuildDatabase.
type BuildOptions struct {
	// Input is either a directory containing images or a single image.
	Input string

	// OutputDir is the directory the scaled tiles are written to, it is created
	// if it does not exist.
	OutputDir string

	// Width is the width and height of the tiles.
	Width int

	// Database is the path of the database file. If empty
	// OutputDir/db<Width>x<Width>.csv is used.
	Database string

	// Recursive enables scanning sub directories of Input.
	Recursive bool

	// Filter decides which files are considered images, defaults to
	// CommonImages.
	Filter SupportedImageFunc

	// Resizer scales the images, defaults to DefaultResizer.
	Resizer ImageResizer

	// JPGQuality is the quality of the written tiles, defaults to
	// DefaultJPGQuality.
	JPGQuality int

	// NumRoutines is the number of images processed concurrently.
	NumRoutines int

	// Progress is called after each processed image, may be nil.
	Progress ProgressFunc
}

// DatabasePath returns the database file used for the options.
func (opts *BuildOptions) DatabasePath() string {
	if opts.Database != "" {
		return opts.Database
	}
	return filepath.Join(opts.OutputDir, DatabaseFileName(opts.Width, "csv"))
}

// BuildStats summarizes a database build.
type BuildStats struct {
	Database string
	Created  int
	Skipped  int
	Failed   int
}

// TileFileName returns the file name of the tile created from source, like
// "32x32_cat.jpg" for source "pictures/cat.png".
func TileFileName(width int, source string) string {
	base := filepath.Base(source)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	return fmt.Sprintf("%dx%d_%s.jpg", width, width, base)
}

// ListImages returns all files in root accepted by filter. If root is a file
// it is returned as the only element (regardless of the filter).
func ListImages(root string, recursive bool, filter SupportedImageFunc) ([]string, error) {
	if filter == nil {
		filter = CommonImages
	}
	info, statErr := os.Stat(root)
	if statErr != nil {
		return nil, statErr
	}
	if !info.IsDir() {
		return []string{root}, nil
	}
	if recursive {
		return listImagesRecursive(root, filter)
	}
	return listImagesNonRecursive(root, filter)
}

func listImagesRecursive(root string, filter SupportedImageFunc) ([]string, error) {
	var res []string
	walkFunc := func(path string, info os.FileInfo, err error) error {
		switch {
		case err != nil:
			return err
		case !info.IsDir() && filter(filepath.Ext(path)):
			res = append(res, path)
			return nil
		default:
			return nil
		}
	}
	if err := filepath.Walk(root, walkFunc); err != nil {
		return nil, err
	}
	return res, nil
}

func listImagesNonRecursive(root string, filter SupportedImageFunc) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	var res []string
	for _, entry := range entries {
		if !entry.IsDir() && filter(filepath.Ext(entry.Name())) {
			res = append(res, filepath.Join(root, entry.Name()))
		}
	}
	return res, nil
}

type buildJob struct {
	index        int
	source, tile string
}

type buildResult struct {
	index int
	entry TileEntry
	err   error
}

// processTile scales the source image, writes the tile and computes its
// signature. The signature is computed from the scaled image, not from the
// (lossy) written file.
func processTile(job buildJob, opts *BuildOptions) buildResult {
	img, decodeErr := DecodeImage(job.source)
	if decodeErr != nil {
		return buildResult{index: job.index, err: errors.Wrapf(ErrInvalidImage, "%s: %v", job.source, decodeErr)}
	}
	scaled := ScaleSquare(opts.Resizer, img, opts.Width)
	if writeErr := EncodeImage(job.tile, scaled, opts.JPGQuality); writeErr != nil {
		return buildResult{index: job.index, err: writeErr}
	}
	return buildResult{
		index: job.index,
		entry: NewTileEntry(job.tile, ComputeSignature(scaled)),
	}
}

// BuildDatabase creates tiles for all images in opts.Input and appends them to
// the database. Images whose tile file already exists are skipped, thus the
// same input can be processed again to add new images only. Images that
// can't be read or written are skipped with a warning.
//
// Images are processed concurrently but the records are written in the order
// of the input files.
func BuildDatabase(opts BuildOptions) (*BuildStats, error) {
	if opts.Width <= 0 {
		return nil, errors.Wrapf(ErrInvalidConfig, "tile width must be positive, got %d", opts.Width)
	}
	if opts.Resizer == nil {
		opts.Resizer = DefaultResizer
	}
	if opts.JPGQuality <= 0 {
		opts.JPGQuality = DefaultJPGQuality
	}
	if opts.NumRoutines <= 0 {
		opts.NumRoutines = IntMax(1, runtime.NumCPU())
	}
	progress := opts.Progress
	if progress == nil {
		progress = ProgressIgnore
	}
	files, listErr := ListImages(opts.Input, opts.Recursive, opts.Filter)
	if listErr != nil {
		return nil, errors.Wrapf(listErr, "can't read input %s", opts.Input)
	}
	if mkErr := os.MkdirAll(opts.OutputDir, 0755); mkErr != nil {
		return nil, errors.Wrapf(mkErr, "can't create output directory %s", opts.OutputDir)
	}
	stats := &BuildStats{Database: opts.DatabasePath()}
	writer, openErr := OpenTileWriter(stats.Database)
	if openErr != nil {
		return nil, errors.Wrapf(openErr, "unable to open %s", stats.Database)
	}

	logger := log.WithFields(log.Fields{
		"run":      uuid.New().String(),
		"database": stats.Database,
		"width":    opts.Width,
	})
	logger.WithField("files", len(files)).Info("Building tile database")

	// skip existing tiles before starting any work, a tile claimed by an
	// earlier file of this run counts as existing
	jobList := make([]buildJob, 0, len(files))
	claimed := make(map[string]bool, len(files))
	for _, file := range files {
		tile := filepath.Join(opts.OutputDir, TileFileName(opts.Width, file))
		_, statErr := os.Stat(tile)
		if statErr == nil || claimed[tile] {
			logger.WithFields(log.Fields{
				"tile":   tile,
				"source": file,
			}).Warn("Skipping already existing tile")
			stats.Skipped++
			continue
		}
		claimed[tile] = true
		jobList = append(jobList, buildJob{index: len(jobList), source: file, tile: tile})
	}

	jobs := make(chan buildJob, BufferSize)
	results := make(chan buildResult, BufferSize)
	for w := 0; w < opts.NumRoutines; w++ {
		go func() {
			for next := range jobs {
				results <- processTile(next, &opts)
			}
		}()
	}
	go func() {
		for _, job := range jobList {
			jobs <- job
		}
		close(jobs)
	}()

	// write results in input order, results that arrive early wait in pending
	pending := make(map[int]buildResult)
	next := 0
	var writeErr error
	for done := 0; done < len(jobList); done++ {
		res := <-results
		pending[res.index] = res
		for {
			current, has := pending[next]
			if !has {
				break
			}
			delete(pending, next)
			next++
			if current.err != nil {
				logger.WithError(current.err).Warn("Skipping image")
				stats.Failed++
				continue
			}
			if writeErr != nil {
				// keep draining the workers, nothing is written anymore
				continue
			}
			if writeErr = writer.WriteTile(current.entry); writeErr != nil {
				continue
			}
			stats.Created++
			logger.WithField("tile", current.entry.ID).Info("Successfully created tile")
		}
		progress(done + 1)
	}
	closeErr := writer.Close()
	if writeErr != nil {
		return stats, errors.Wrapf(writeErr, "can't write to %s", stats.Database)
	}
	if closeErr != nil {
		return stats, closeErr
	}
	logger.WithFields(log.Fields{
		"created": stats.Created,
		"skipped": stats.Skipped,
		"failed":  stats.Failed,
	}).Info("Tile database written")
	return stats, nil
}

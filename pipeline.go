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
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
)

const (
	// DefaultWidth is the default width (and height) the source image is
	// scaled to.
	DefaultWidth = 1024

	// DefaultPatchSize is the default size of the patches (and tiles).
	DefaultPatchSize = 32

	// DefaultInterPQuality selects Mitchell-Netravali, see GetInterP.
	DefaultInterPQuality = 3

	// DefaultScaledPrefix is prepended to the name of the scaled source image.
	DefaultScaledPrefix = "SCALED_ORIGINAL_"

	// DefaultOutputPrefix is prepended to the name of the mosaic.
	DefaultOutputPrefix = "MOSAIC_OUTPUT_"

	// DefaultDatabaseDir is the directory databases are looked up in if no
	// database is given.
	DefaultDatabaseDir = "db"
)

// Config describes a single mosaic build.
type Config struct {
	// Input is the source image.
	Input string

	// Width is the width and height the source is scaled to.
	Width int

	// PatchSize is the width and height of the patches, the tiles in the
	// database must have exactly that size.
	PatchSize int

	// UniqueBox is the size of the box around a patch in which repeated tiles
	// are penalized.
	UniqueBox int

	// Database is the tile database, if empty
	// DefaultDatabaseDir/db<PatchSize>x<PatchSize>.csv is used.
	Database string

	// TileRoot is the directory relative tile paths of the database are
	// resolved against. If empty they're relative to the working directory.
	TileRoot string

	// OutputDir is the directory the mosaic (and the scaled source) is written
	// to.
	OutputDir string

	// ScaledPrefix is prepended to the file name of the scaled source image.
	ScaledPrefix string

	// OutputPrefix is prepended to the file name of the mosaic.
	OutputPrefix string

	// WriteScaled controls if the scaled source is written.
	WriteScaled bool

	// JPGQuality is the quality between 1 and 100 used when storing images.
	JPGQuality int

	// InterPQuality is passed to GetInterP when scaling the source.
	InterPQuality uint

	// Metric is the name of the signature metric, see GetSignatureMetric.
	Metric string

	// Progress is called after each patch, may be nil.
	Progress ProgressFunc
}

// DefaultConfig returns a config with all default values, only Input must be
// set.
func DefaultConfig() Config {
	return Config{
		Width:         DefaultWidth,
		PatchSize:     DefaultPatchSize,
		UniqueBox:     DefaultUniqueBox,
		OutputDir:     ".",
		ScaledPrefix:  DefaultScaledPrefix,
		OutputPrefix:  DefaultOutputPrefix,
		WriteScaled:   true,
		JPGQuality:    DefaultJPGQuality,
		InterPQuality: DefaultInterPQuality,
		Metric:        DefaultMetricName,
	}
}

// Validate returns an error wrapping ErrInvalidConfig if a value is not
// usable.
func (cfg *Config) Validate() error {
	switch {
	case cfg.Input == "":
		return errors.Wrap(ErrInvalidConfig, "no input image given")
	case cfg.Width <= 0:
		return errors.Wrapf(ErrInvalidConfig, "width must be positive, got %d", cfg.Width)
	case cfg.PatchSize <= 0:
		return errors.Wrapf(ErrInvalidConfig, "patch size must be positive, got %d", cfg.PatchSize)
	case cfg.PatchSize > cfg.Width:
		return errors.Wrapf(ErrInvalidConfig, "patch size %d is greater than width %d", cfg.PatchSize, cfg.Width)
	case cfg.UniqueBox < 0:
		return errors.Wrapf(ErrInvalidConfig, "uniqueness box must not be negative, got %d", cfg.UniqueBox)
	case cfg.JPGQuality < 1 || cfg.JPGQuality > 100:
		return errors.Wrapf(ErrInvalidConfig, "jpeg quality must be between 1 and 100, got %d", cfg.JPGQuality)
	}
	if _, has := GetSignatureMetric(cfg.Metric); !has {
		return errors.Wrapf(ErrInvalidConfig, "unknown metric %q", cfg.Metric)
	}
	return nil
}

// DatabasePath returns the tile database used by the config.
func (cfg *Config) DatabasePath() string {
	if cfg.Database != "" {
		return cfg.Database
	}
	return filepath.Join(DefaultDatabaseDir, DatabaseFileName(cfg.PatchSize, "csv"))
}

// ScaledPath returns the path of the scaled source image.
func (cfg *Config) ScaledPath() string {
	return filepath.Join(cfg.OutputDir, cfg.ScaledPrefix+filepath.Base(cfg.Input))
}

// OutputPath returns the path of the mosaic.
func (cfg *Config) OutputPath() string {
	return filepath.Join(cfg.OutputDir, cfg.OutputPrefix+filepath.Base(cfg.Input))
}

// Run creates the mosaic described by cfg: The input is scaled to a
// Width × Width square, each patch is replaced by a tile of the database and
// the result is written to cfg.OutputPath().
func Run(cfg Config) (*Mosaic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dbPath := cfg.DatabasePath()
	tiles, dbErr := LoadTileDatabase(dbPath)
	if dbErr != nil {
		return nil, dbErr
	}
	log.WithFields(log.Fields{
		"database": dbPath,
		"tiles":    len(tiles),
	}).Info("Loaded tile database")
	return RunWithTiles(cfg, tiles)
}

// RunWithTiles works as Run but uses the given tiles instead of loading the
// database.
func RunWithTiles(cfg Config, tiles []TileEntry) (*Mosaic, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if len(tiles) == 0 {
		return nil, errors.Wrapf(ErrEmptyTileSet, "no tiles for %s", cfg.Input)
	}
	logger := log.WithFields(log.Fields{
		"run":   uuid.New().String(),
		"input": cfg.Input,
	})
	img, decodeErr := DecodeImage(cfg.Input)
	if decodeErr != nil {
		return nil, errors.Wrapf(ErrInvalidImage, "%s: %v", cfg.Input, decodeErr)
	}
	resizer := NewNfntResizer(GetInterP(cfg.InterPQuality))
	scaled := ScaleSquare(resizer, img, cfg.Width)
	if cfg.Width%cfg.PatchSize != 0 {
		logger.WithFields(log.Fields{
			"width": cfg.Width,
			"patch": cfg.PatchSize,
		}).Warn("Width is not a multiple of the patch size")
	}
	if mkErr := os.MkdirAll(cfg.OutputDir, 0755); mkErr != nil {
		return nil, errors.Wrapf(mkErr, "can't create output directory %s", cfg.OutputDir)
	}
	if cfg.WriteScaled {
		if err := EncodeImage(cfg.ScaledPath(), scaled, cfg.JPGQuality); err != nil {
			return nil, err
		}
		logger.WithField("path", cfg.ScaledPath()).Info("Wrote scaled image")
	}

	metric, _ := GetSignatureMetric(cfg.Metric)
	composer := NewComposer(tiles, NewFSTileLoader(cfg.TileRoot), cfg.PatchSize, cfg.UniqueBox)
	composer.Matcher.Metric = metric
	composer.Progress = cfg.Progress
	mosaic, composeErr := composer.Compose(scaled)
	if composeErr != nil {
		return nil, composeErr
	}
	if err := EncodeImage(cfg.OutputPath(), mosaic.Image, cfg.JPGQuality); err != nil {
		return nil, err
	}
	logger.WithField("path", cfg.OutputPath()).Info("Wrote mosaic")
	return mosaic, nil
}

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

package main

import (
	"fmt"
	"os"

	"github.com/erik-h/photomosaic"
	"github.com/spf13/pflag"

	log "github.com/sirupsen/logrus"
)

func main() {
	cfg, verbose := parseFlags()
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	if err := cfg.Validate(); err != nil {
		log.WithError(err).Fatal("Configuration error")
	}
	numPatches := (cfg.Width / cfg.PatchSize) * (cfg.Width / cfg.PatchSize)
	cfg.Progress = photomosaic.LoggerProgressFunc("Placed tiles", numPatches,
		photomosaic.ProgressStep(numPatches))
	mosaic, err := photomosaic.Run(*cfg)
	if err != nil {
		log.WithError(err).Fatal("Can't create mosaic")
	}
	log.WithFields(log.Fields{
		"columns": mosaic.Grid.Width(),
		"rows":    mosaic.Grid.Height(),
		"output":  cfg.OutputPath(),
	}).Info("Done")
}

// parseFlags defines and parses command-line flags. The input image is either
// given by --input or as the only positional argument.
func parseFlags() (*photomosaic.Config, bool) {
	cfg := photomosaic.DefaultConfig()
	var verbose bool

	pflag.StringVarP(&cfg.Input, "input", "i", "", "Path to the source image.")
	pflag.IntVarP(&cfg.Width, "width", "w", cfg.Width, "Width and height the source image is scaled to.")
	pflag.IntVarP(&cfg.PatchSize, "patch", "p", cfg.PatchSize, "Width and height of the patches, must match the tile size of the database.")
	pflag.IntVarP(&cfg.UniqueBox, "box", "b", cfg.UniqueBox, "Size of the box around a patch in which repeated tiles are penalized.")
	pflag.StringVarP(&cfg.Database, "database", "d", "", "Tile database (default db/db<patch>x<patch>.csv).")
	pflag.StringVar(&cfg.TileRoot, "tiles", "", "Directory relative tile paths are resolved against.")
	pflag.StringVarP(&cfg.OutputDir, "output", "o", cfg.OutputDir, "Directory the mosaic is written to.")
	pflag.StringVar(&cfg.ScaledPrefix, "scaled-prefix", cfg.ScaledPrefix, "File name prefix of the scaled source image.")
	pflag.StringVar(&cfg.OutputPrefix, "output-prefix", cfg.OutputPrefix, "File name prefix of the mosaic.")
	pflag.BoolVar(&cfg.WriteScaled, "write-scaled", cfg.WriteScaled, "Write the scaled source image.")
	pflag.IntVarP(&cfg.JPGQuality, "quality", "q", cfg.JPGQuality, "JPEG quality between 1 and 100.")
	pflag.UintVar(&cfg.InterPQuality, "interp", cfg.InterPQuality, "Interpolation quality used for scaling (0 to 5).")
	pflag.StringVarP(&cfg.Metric, "metric", "m", cfg.Metric, "Signature metric, one of sqeuclid, euclid, manhattan or chessboard.")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "Enable debug output.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [image]\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if cfg.Input == "" && pflag.NArg() == 1 {
		cfg.Input = pflag.Arg(0)
	}
	var err error
	if cfg.Input != "" {
		if cfg.Input, err = photomosaic.ExpandPath("", cfg.Input); err != nil {
			log.WithError(err).Fatal("Invalid input path")
		}
	}
	if cfg.Database != "" {
		if cfg.Database, err = photomosaic.ExpandPath("", cfg.Database); err != nil {
			log.WithError(err).Fatal("Invalid database path")
		}
	}
	if cfg.OutputDir, err = photomosaic.ExpandPath("", cfg.OutputDir); err != nil {
		log.WithError(err).Fatal("Invalid output path")
	}
	return &cfg, verbose
}

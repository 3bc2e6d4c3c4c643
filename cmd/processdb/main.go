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
	"runtime"

	"github.com/erik-h/photomosaic"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/pflag"

	log "github.com/sirupsen/logrus"
)

func main() {
	opts, interP, verbose := parseFlags()
	if verbose {
		log.SetLevel(log.DebugLevel)
	}
	if opts.Input == "" || opts.OutputDir == "" {
		pflag.Usage()
		os.Exit(1)
	}
	opts.Resizer = photomosaic.NewNfntResizer(photomosaic.GetInterP(interP))
	stats, err := photomosaic.BuildDatabase(*opts)
	if err != nil {
		log.WithError(err).Fatal("Can't build tile database")
	}
	log.WithFields(log.Fields{
		"database": stats.Database,
		"created":  stats.Created,
		"skipped":  stats.Skipped,
		"failed":   stats.Failed,
	}).Info("Done")
}

// parseFlags defines and parses command-line flags. The input (directory or
// single image) and the output directory may also be given as positional
// arguments.
func parseFlags() (*photomosaic.BuildOptions, uint, bool) {
	opts := &photomosaic.BuildOptions{}
	var interP uint
	var verbose bool

	pflag.StringVarP(&opts.Input, "input", "i", "", "Directory containing the images or a single image.")
	pflag.StringVarP(&opts.OutputDir, "output", "o", "", "Directory the tiles and the database are written to.")
	pflag.IntVarP(&opts.Width, "width", "w", photomosaic.DefaultPatchSize, "Width and height of the tiles.")
	pflag.StringVarP(&opts.Database, "database", "d", "", "Database file (default <output>/db<width>x<width>.csv).")
	pflag.BoolVarP(&opts.Recursive, "recursive", "r", false, "Scan sub directories of the input.")
	pflag.IntVarP(&opts.JPGQuality, "quality", "q", photomosaic.DefaultJPGQuality, "JPEG quality of the tiles between 1 and 100.")
	pflag.UintVar(&interP, "interp", photomosaic.DefaultInterPQuality, "Interpolation quality used for scaling (0 to 5).")
	pflag.IntVarP(&opts.NumRoutines, "cpu-cores", "c", runtime.NumCPU(), "Number of images processed concurrently.")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "Enable debug output.")

	pflag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: %s [flags] [input] [output]\n", os.Args[0])
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if opts.Input == "" && pflag.NArg() > 0 {
		opts.Input = pflag.Arg(0)
	}
	if opts.OutputDir == "" && pflag.NArg() > 1 {
		opts.OutputDir = pflag.Arg(1)
	}
	// tile paths in the database are relative if the output directory is
	for _, path := range []*string{&opts.Input, &opts.OutputDir, &opts.Database} {
		expanded, err := homedir.Expand(*path)
		if err != nil {
			log.WithError(err).Fatal("Invalid path")
		}
		*path = expanded
	}
	return opts, interP, verbose
}

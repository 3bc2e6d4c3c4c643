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
	"io"
	"os"
	"sort"

	"github.com/erik-h/photomosaic"
	"github.com/spf13/pflag"

	log "github.com/sirupsen/logrus"
)

// Without arguments an interactive shell is started. With --script the
// commands are read from a file, with --run a predefined script is executed.
// Remaining arguments replace the placeholders $1, $2, ... of the script.
func main() {
	var scriptFile, predefined string
	var verbose bool
	pflag.StringVarP(&scriptFile, "script", "s", "", "Execute the commands of the file.")
	pflag.StringVarP(&predefined, "run", "r", "", "Execute a predefined script.")
	pflag.BoolVarP(&verbose, "verbose", "v", false, "Enable debug output.")
	pflag.Usage = func() {
		names := make([]string, 0, len(photomosaic.PredefinedScripts))
		for name := range photomosaic.PredefinedScripts {
			names = append(names, name)
		}
		sort.Strings(names)
		fmt.Fprintf(os.Stderr, "Usage: %s [--script FILE | --run SCRIPT] [args...]\n", os.Args[0])
		fmt.Fprintln(os.Stderr, "Predefined scripts:", names)
		pflag.PrintDefaults()
	}
	pflag.Parse()
	if verbose {
		log.SetLevel(log.DebugLevel)
	}

	var source io.Reader
	switch {
	case scriptFile != "" && predefined != "":
		pflag.Usage()
		os.Exit(1)
	case scriptFile != "":
		f, openErr := os.Open(scriptFile)
		if openErr != nil {
			log.WithError(openErr).Fatal("Can't open script")
		}
		defer f.Close()
		source = f
	case predefined != "":
		script, has := photomosaic.PredefinedScripts[predefined]
		if !has {
			log.WithField("script", predefined).Fatal("Unknown predefined script")
		}
		source = photomosaic.ReaderFromCmdLines([]string{script})
	default:
		photomosaic.Execute(photomosaic.ReplHandler{}, photomosaic.DefaultCommands)
		return
	}
	if pflag.NArg() > 0 {
		var paramErr error
		source, paramErr = photomosaic.Parameterized(source, pflag.Args()...)
		if paramErr != nil {
			log.WithError(paramErr).Fatal("Can't read script")
		}
	}
	if !photomosaic.Execute(photomosaic.NewScriptHandler(source), photomosaic.DefaultCommands) {
		os.Exit(1)
	}
}

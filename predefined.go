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

// This file contains some predefined scripts that can be executed. This way
// we have some easy way to create mosaics without requiring the user to know
// any details.

var (
	// RunSimple loads the database for the current patch size from
	// db/db<patch>x<patch>.csv and creates the mosaic of the first argument in
	// the directory given by the second argument.
	//
	// Example usage: RunSimple input.jpg ./output/
	RunSimple = `db load
mosaic $1 $2`

	// BuildAndRun builds a tile database with patch size $3 from the images in
	// $1, the tiles and the database are written to $2. Then it creates the
	// mosaic of $4 in directory $5.
	//
	// Example usage: BuildAndRun ~/Pictures/ ./tiles/ 32 input.jpg ./output/
	BuildAndRun = `set patch $3
db build $1 $2
db load $2/db$3x$3.csv
mosaic $4 $5`

	// CompareMetrics is similar to RunSimple but generates one mosaic for each
	// metric, each in its own sub directory of $2.
	//
	// Example usage: CompareMetrics input.jpg ./output/
	CompareMetrics = `db load
set scaled false
set metric sqeuclid
mosaic $1 $2/sqeuclid
set metric manhattan
mosaic $1 $2/manhattan
set metric chessboard
mosaic $1 $2/chessboard`
)

// PredefinedScripts maps the names of the predefined scripts to their code.
var PredefinedScripts = map[string]string{
	"RunSimple":      RunSimple,
	"BuildAndRun":    BuildAndRun,
	"CompareMetrics": CompareMetrics,
}

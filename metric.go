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
	"math"
	"sort"
	"strings"
)

// SignatureMetric compares two signatures. The smaller the value the more
// equal the signatures are considered. Values must be ≥ 0 and 0 for equal
// signatures.
type SignatureMetric func(a, b Signature) float64

// channelDiffs returns the 12 per channel differences of two signatures.
func channelDiffs(a, b Signature) [3 * NumQuadrants]float64 {
	var res [3 * NumQuadrants]float64
	for i := 0; i < NumQuadrants; i++ {
		res[3*i] = float64(a[i].R) - float64(b[i].R)
		res[3*i+1] = float64(a[i].G) - float64(b[i].G)
		res[3*i+2] = float64(a[i].B) - float64(b[i].B)
	}
	return res
}

// SignatureDistance is the distance of two signatures in the 12 dimensional
// space spanned by the four quadrant colors: the sum of the squared channel
// differences. No square root is taken.
func SignatureDistance(a, b Signature) float64 {
	var sum int64
	for i := 0; i < NumQuadrants; i++ {
		dr := int64(a[i].R) - int64(b[i].R)
		dg := int64(a[i].G) - int64(b[i].G)
		db := int64(a[i].B) - int64(b[i].B)
		sum += dr*dr + dg*dg + db*db
	}
	return float64(sum)
}

// EuclideanDistance returns the square root of SignatureDistance.
func EuclideanDistance(a, b Signature) float64 {
	return math.Sqrt(SignatureDistance(a, b))
}

// ManhattanDistance returns the sum of the absolute channel differences.
func ManhattanDistance(a, b Signature) float64 {
	var res float64
	for _, d := range channelDiffs(a, b) {
		res += math.Abs(d)
	}
	return res
}

// ChessboardDistance is the max over all absolute channel differences,
// see https://reference.wolfram.com/language/ref/ChessboardDistance.html
func ChessboardDistance(a, b Signature) float64 {
	res := 0.0
	for _, d := range channelDiffs(a, b) {
		res = math.Max(res, math.Abs(d))
	}
	return res
}

// DefaultMetricName is the name of SignatureDistance in the metric registry.
const DefaultMetricName = "sqeuclid"

var signatureMetrics = map[string]SignatureMetric{
	DefaultMetricName: SignatureDistance,
	"euclid":          EuclideanDistance,
	"manhattan":       ManhattanDistance,
	"chessboard":      ChessboardDistance,
}

// RegisterSignatureMetric is used to register a named signature metric. It
// will only add the metric if the name does not exist yet. The result is true
// if the metric was successfully registered and false otherwise.
// All names are transformed to lowercase.
func RegisterSignatureMetric(name string, metric SignatureMetric) bool {
	name = strings.ToLower(name)
	if _, has := signatureMetrics[name]; has {
		return false
	}
	signatureMetrics[name] = metric
	return true
}

// GetSignatureMetricNames returns the sorted names of all registered metrics.
func GetSignatureMetricNames() []string {
	res := make([]string, 0, len(signatureMetrics))
	for key := range signatureMetrics {
		res = append(res, key)
	}
	sort.Strings(res)
	return res
}

// GetSignatureMetric returns a registered metric and true, or nil and false
// if there is no metric with that name.
func GetSignatureMetric(name string) (SignatureMetric, bool) {
	metric, has := signatureMetrics[strings.ToLower(name)]
	return metric, has
}

// Package stats computes descriptive statistics over numeric samples:
// summary bundles, linear-interpolation percentiles, IQR outlier fences
// and fixed size bands.
package stats

import (
	"errors"
	"math"
	"sort"

	"gonum.org/v1/gonum/stat"
)

// ErrEmptyInput reports a statistics computation invoked on zero elements.
// All entry points in this package fail on empty input; none return a
// zeroed bundle.
var ErrEmptyInput = errors.New("statistics: empty input")

// Bundle is an immutable summary of a numeric sample.
type Bundle struct {
	Count    int     `json:"total"`
	Mean     float64 `json:"mean"`
	Median   float64 `json:"median"`
	Mode     float64 `json:"mode"`
	StdDev   float64 `json:"std_dev"`
	Variance float64 `json:"variance"`
	Min      float64 `json:"min"`
	Max      float64 `json:"max"`
	Range    float64 `json:"range"`
	P5       float64 `json:"p5"`
	P10      float64 `json:"p10"`
	P25      float64 `json:"p25"`
	P50      float64 `json:"p50"`
	P75      float64 `json:"p75"`
	P90      float64 `json:"p90"`
	P95      float64 `json:"p95"`
	IQR      float64 `json:"iqr"`
	CV       float64 `json:"cv_pct"`
}

// Describe computes a Bundle over values. The sample is not modified.
func Describe(values []float64) (Bundle, error) {
	if len(values) == 0 {
		return Bundle{}, ErrEmptyInput
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	mean := stat.Mean(sorted, nil)
	variance := popVariance(sorted, mean)
	std := math.Sqrt(variance)

	b := Bundle{
		Count:    len(values),
		Mean:     mean,
		Mode:     mode(values),
		StdDev:   std,
		Variance: variance,
		Min:      sorted[0],
		Max:      sorted[len(sorted)-1],
		Range:    sorted[len(sorted)-1] - sorted[0],
		P5:       percentileSorted(sorted, 5),
		P10:      percentileSorted(sorted, 10),
		P25:      percentileSorted(sorted, 25),
		P50:      percentileSorted(sorted, 50),
		P75:      percentileSorted(sorted, 75),
		P90:      percentileSorted(sorted, 90),
		P95:      percentileSorted(sorted, 95),
	}
	b.Median = b.P50
	b.IQR = b.P75 - b.P25
	if mean != 0 {
		b.CV = std / mean * 100
	}
	return b, nil
}

// Percentile returns the p-th percentile (0..100) of values using linear
// interpolation between closest ranks: rank = p/100*(n-1) on the sorted
// sample. This is the method every percentile in this package uses.
func Percentile(values []float64, p float64) (float64, error) {
	if len(values) == 0 {
		return 0, ErrEmptyInput
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)
	return percentileSorted(sorted, p), nil
}

func percentileSorted(sorted []float64, p float64) float64 {
	if len(sorted) == 1 {
		return sorted[0]
	}
	rank := p / 100 * float64(len(sorted)-1)
	lo := int(math.Floor(rank))
	if lo >= len(sorted)-1 {
		return sorted[len(sorted)-1]
	}
	frac := rank - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

// popVariance is the population variance (divide by n), matching the
// reference values the original analysis was computed with.
func popVariance(values []float64, mean float64) float64 {
	var sum float64
	for _, v := range values {
		d := v - mean
		sum += d * d
	}
	return sum / float64(len(values))
}

// mode returns the most frequent value; ties break to the value seen
// first in input order.
func mode(values []float64) float64 {
	counts := make(map[float64]int, len(values))
	best := values[0]
	bestN := 0
	for _, v := range values {
		counts[v]++
		if counts[v] > bestN {
			best, bestN = v, counts[v]
		}
	}
	return best
}

// Floats converts an integer sample to float64 for the statistics entry
// points.
func Floats(values []int) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = float64(v)
	}
	return out
}

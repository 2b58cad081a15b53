// Package validate compares computed genome statistics against
// literature-sourced expected values and classifies enrichment of codon
// usage. All functions are stateless and side-effect free.
package validate

import "math"

// Comparison modes.
const (
	ModeTolerance = "tolerance"
	ModeRange     = "range"
)

// Status labels.
const (
	StatusOK             = "OK"
	StatusOutOfTolerance = "OUT OF TOLERANCE"
	StatusWithinRange    = "WITHIN RANGE"
	StatusOutOfRange     = "OUT OF RANGE"
)

// Result is the verdict of a single comparison.
type Result struct {
	Parameter    string  `json:"parameter"`
	Mode         string  `json:"mode"`
	Observed     float64 `json:"observed"`
	Expected     float64 `json:"expected,omitempty"`
	Diff         float64 `json:"diff,omitempty"`
	DeviationPct float64 `json:"deviation_pct,omitempty"`
	Tolerance    float64 `json:"tolerance,omitempty"`
	RangeMin     float64 `json:"range_min,omitempty"`
	RangeMax     float64 `json:"range_max,omitempty"`
	Pass         bool    `json:"pass"`
	Status       string  `json:"status"`
	Source       string  `json:"source,omitempty"`
	Note         string  `json:"note,omitempty"`
}

// Value validates observed against expected with an absolute tolerance.
// A difference exactly equal to the tolerance passes.
func Value(name string, observed, expected, tolerance float64) Result {
	diff := math.Abs(observed - expected)
	r := Result{
		Parameter: name,
		Mode:      ModeTolerance,
		Observed:  observed,
		Expected:  expected,
		Diff:      diff,
		Tolerance: tolerance,
		Pass:      diff <= tolerance,
	}
	if expected != 0 {
		r.DeviationPct = diff / expected * 100
	}
	if r.Pass {
		r.Status = StatusOK
	} else {
		r.Status = StatusOutOfTolerance
	}
	return r
}

// Range validates lo <= observed <= hi, inclusive at both ends.
func Range(name string, observed, lo, hi float64) Result {
	r := Result{
		Parameter: name,
		Mode:      ModeRange,
		Observed:  observed,
		RangeMin:  lo,
		RangeMax:  hi,
		Pass:      lo <= observed && observed <= hi,
	}
	if r.Pass {
		r.Status = StatusWithinRange
	} else {
		r.Status = StatusOutOfRange
	}
	return r
}

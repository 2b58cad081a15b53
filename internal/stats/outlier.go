package stats

import "sort"

// DefaultFenceMultiplier is the conventional IQR fence multiplier.
const DefaultFenceMultiplier = 1.5

// OutlierReport describes IQR-based outlier fences over a sample.
type OutlierReport struct {
	Q1         float64 `json:"q1"`
	Q3         float64 `json:"q3"`
	IQR        float64 `json:"iqr"`
	LowerFence float64 `json:"lower_fence"`
	UpperFence float64 `json:"upper_fence"`
	NumBelow   int     `json:"num_below"`
	NumAbove   int     `json:"num_above"`
	Total      int     `json:"total_outliers"`
	Percent    float64 `json:"outlier_pct"`
}

// Outliers computes IQR fences at Q1-k*IQR and Q3+k*IQR and counts values
// strictly outside them. Quartiles use the same percentile method as
// Describe. k=0 degenerates to counting everything outside [Q1, Q3].
func Outliers(values []float64, k float64) (OutlierReport, error) {
	if len(values) == 0 {
		return OutlierReport{}, ErrEmptyInput
	}

	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	q1 := percentileSorted(sorted, 25)
	q3 := percentileSorted(sorted, 75)
	iqr := q3 - q1

	r := OutlierReport{
		Q1:         q1,
		Q3:         q3,
		IQR:        iqr,
		LowerFence: q1 - k*iqr,
		UpperFence: q3 + k*iqr,
	}
	for _, v := range sorted {
		switch {
		case v < r.LowerFence:
			r.NumBelow++
		case v > r.UpperFence:
			r.NumAbove++
		}
	}
	r.Total = r.NumBelow + r.NumAbove
	r.Percent = float64(r.Total) / float64(len(values)) * 100
	return r, nil
}

package stats

import "math"

// Band is a half-open, lower-inclusive size band [Lo, Hi). The last band
// is unbounded (Hi is +Inf).
type Band struct {
	Name  string
	Label string
	Lo    int
	Hi    float64
}

// SizeBands are the five CDS length bands, ordered, contiguous and
// non-overlapping. A length of exactly 300 falls in the second band.
func SizeBands() []Band {
	return []Band{
		{Name: "very_small", Label: "< 300 bp", Lo: 0, Hi: 300},
		{Name: "small", Label: "300-600 bp", Lo: 300, Hi: 600},
		{Name: "medium", Label: "600-1200 bp", Lo: 600, Hi: 1200},
		{Name: "large", Label: "1200-2400 bp", Lo: 1200, Hi: 2400},
		{Name: "very_large", Label: "> 2400 bp", Lo: 2400, Hi: math.Inf(1)},
	}
}

// BandCount is the membership of one band: indices into the input sample,
// the member count and its share of the population.
type BandCount struct {
	Band    Band
	Members []int
	Count   int
	Percent float64
}

// Categorize assigns each length to exactly one size band and returns the
// per-band membership in band order. Percentages are zero when the input
// is empty.
func Categorize(lengths []int) []BandCount {
	bands := SizeBands()
	out := make([]BandCount, len(bands))
	for i, b := range bands {
		out[i].Band = b
	}

	for idx, n := range lengths {
		for i, b := range bands {
			if n >= b.Lo && float64(n) < b.Hi {
				out[i].Members = append(out[i].Members, idx)
				break
			}
		}
	}

	total := len(lengths)
	for i := range out {
		out[i].Count = len(out[i].Members)
		if total > 0 {
			out[i].Percent = float64(out[i].Count) / float64(total) * 100
		}
	}
	return out
}

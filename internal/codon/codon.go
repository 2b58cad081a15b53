// Package codon counts codon occurrences across a genome and codon usage
// within annotated coding sequences.
package codon

import (
	"github.com/unsaac-bioinfo/genostat/internal/extract"
	"github.com/unsaac-bioinfo/genostat/internal/genbank"
)

// StopCodons are the three bacterial translation terminators.
var StopCodons = []string{"TAA", "TAG", "TGA"}

// Start is the canonical start codon.
const Start = "ATG"

// Count returns every position (0-based) at which codon occurs in seq,
// scanning all offsets. Overlapping occurrences are counted.
func Count(seq, codon string) []int {
	var positions []int
	if len(codon) == 0 || len(seq) < len(codon) {
		return positions
	}
	for i := 0; i+len(codon) <= len(seq); i++ {
		if seq[i:i+len(codon)] == codon {
			positions = append(positions, i)
		}
	}
	return positions
}

// DensityPerKB is occurrences per kilobase of sequence.
func DensityPerKB(count, seqLen int) float64 {
	if seqLen == 0 {
		return 0
	}
	return float64(count) / float64(seqLen) * 1000
}

// Usage is the occurrence summary for one codon within a group.
type Usage struct {
	Total        int     `json:"total"`
	DensityPerKB float64 `json:"density_per_kb"`
	Percent      float64 `json:"proportion_pct"`
}

// GenomeStopUsage counts each stop codon across the whole genome, in all
// offsets and the forward orientation, and reports each codon's share of
// the total stop count.
func GenomeStopUsage(rec *genbank.Record) (map[string]Usage, int) {
	counts := make(map[string]int, len(StopCodons))
	total := 0
	for _, c := range StopCodons {
		n := len(Count(rec.Sequence, c))
		counts[c] = n
		total += n
	}

	usage := make(map[string]Usage, len(StopCodons))
	for _, c := range StopCodons {
		u := Usage{
			Total:        counts[c],
			DensityPerKB: DensityPerKB(counts[c], rec.Length()),
		}
		if total > 0 {
			u.Percent = float64(counts[c]) / float64(total) * 100
		}
		usage[c] = u
	}
	return usage, total
}

// TerminalCodon returns the last codon of a CDS in coding orientation, or
// "" when the feature is shorter than one codon.
func TerminalCodon(rec *genbank.Record, f genbank.Feature) string {
	if f.Length() < 3 {
		return ""
	}
	seq := f.Extract(rec.Sequence)
	return seq[len(seq)-3:]
}

// CDSStopUsage counts the terminal codon of every CDS feature, keyed by
// stop codon. CDS ending in a non-stop codon are tallied under "other".
func CDSStopUsage(rec *genbank.Record) (map[string]Usage, int) {
	counts := make(map[string]int, len(StopCodons)+1)
	total := 0
	for _, f := range rec.FeaturesOfKind("CDS") {
		term := TerminalCodon(rec, f)
		if term == "" {
			continue
		}
		total++
		switch term {
		case "TAA", "TAG", "TGA":
			counts[term]++
		default:
			counts["other"]++
		}
	}

	usage := make(map[string]Usage, len(counts))
	for c, n := range counts {
		u := Usage{Total: n}
		if total > 0 {
			u.Percent = float64(n) / float64(total) * 100
		}
		usage[c] = u
	}
	for _, c := range StopCodons {
		if _, ok := usage[c]; !ok {
			usage[c] = Usage{}
		}
	}
	return usage, total
}

// ATGReport summarizes start-codon occurrence against annotation.
type ATGReport struct {
	Total           int     `json:"total_atg"`
	DensityPerKB    float64 `json:"density_per_kb"`
	TotalCDS        int     `json:"total_cds"`
	RatioPerCDS     float64 `json:"ratio_atg_vs_cds"`
	EstimatedExtra  int     `json:"atg_non_coding_estimated"`
}

// ATG counts every ATG in the genome and relates it to the annotated CDS
// population: most ATG triplets are not functional gene starts.
func ATG(rec *genbank.Record, cds []extract.CDSRecord) ATGReport {
	total := len(Count(rec.Sequence, Start))
	r := ATGReport{
		Total:        total,
		DensityPerKB: DensityPerKB(total, rec.Length()),
		TotalCDS:     len(cds),
	}
	if len(cds) > 0 {
		r.RatioPerCDS = float64(total) / float64(len(cds))
		r.EstimatedExtra = total - len(cds)
	}
	return r
}

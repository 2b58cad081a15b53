package validate

// Class is the evolutionary-preference classification of a codon.
type Class string

const (
	ClassPreferred Class = "preferred"
	ClassNeutral   Class = "neutral"
	ClassAvoided   Class = "avoided"
)

// Thresholds are the enrichment cutoffs. Enrichment strictly above
// Preferred classifies as preferred, strictly below Avoided as avoided,
// and the inclusive band in between as neutral.
type Thresholds struct {
	Preferred float64 `yaml:"preferred"`
	Avoided   float64 `yaml:"avoided"`
}

// DefaultThresholds returns the conventional 1.2/0.8 cutoffs.
func DefaultThresholds() Thresholds {
	return Thresholds{Preferred: 1.2, Avoided: 0.8}
}

// EnrichmentCall relates a codon's usage within annotated coding regions
// to its baseline across the whole genome.
type EnrichmentCall struct {
	Codon       string  `json:"codon"`
	SubsetPct   float64 `json:"cds_pct"`
	BaselinePct float64 `json:"genome_pct"`
	Enrichment  float64 `json:"enrichment"`
	Class       Class   `json:"class"`
}

// Enrich computes subset/baseline enrichment and classifies it. A zero
// baseline yields zero enrichment (avoided) rather than a division error.
func Enrich(codon string, subsetPct, baselinePct float64, th Thresholds) EnrichmentCall {
	call := EnrichmentCall{
		Codon:       codon,
		SubsetPct:   subsetPct,
		BaselinePct: baselinePct,
	}
	if baselinePct > 0 {
		call.Enrichment = subsetPct / baselinePct
	}
	switch {
	case call.Enrichment > th.Preferred:
		call.Class = ClassPreferred
	case call.Enrichment < th.Avoided:
		call.Class = ClassAvoided
	default:
		call.Class = ClassNeutral
	}
	return call
}

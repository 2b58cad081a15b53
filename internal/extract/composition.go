package extract

import "github.com/unsaac-bioinfo/genostat/internal/genbank"

// NucleotideCount is the count and genome share of one base.
type NucleotideCount struct {
	Count   int     `json:"total"`
	Percent float64 `json:"pct"`
}

// Composition is the per-base composition of a genome.
type Composition struct {
	A NucleotideCount `json:"A"`
	T NucleotideCount `json:"T"`
	G NucleotideCount `json:"G"`
	C NucleotideCount `json:"C"`
	N NucleotideCount `json:"N"`
}

// Compose counts A/T/G/C/N over the genome sequence.
func Compose(rec *genbank.Record) Composition {
	var a, t, g, c, n int
	for i := 0; i < len(rec.Sequence); i++ {
		switch rec.Sequence[i] {
		case 'A':
			a++
		case 'T':
			t++
		case 'G':
			g++
		case 'C':
			c++
		case 'N':
			n++
		}
	}
	total := rec.Length()
	pct := func(x int) float64 {
		if total == 0 {
			return 0
		}
		return float64(x) / float64(total) * 100
	}
	return Composition{
		A: NucleotideCount{a, pct(a)},
		T: NucleotideCount{t, pct(t)},
		G: NucleotideCount{g, pct(g)},
		C: NucleotideCount{c, pct(c)},
		N: NucleotideCount{n, pct(n)},
	}
}

// GCPercent returns the GC content of a sequence as a percentage.
// Returns 0 for an empty sequence.
func GCPercent(seq string) float64 {
	if len(seq) == 0 {
		return 0
	}
	var gc int
	for i := 0; i < len(seq); i++ {
		switch seq[i] {
		case 'G', 'C', 'g', 'c':
			gc++
		}
	}
	return float64(gc) / float64(len(seq)) * 100
}

// CodingRegions reports the coding/non-coding base split given the summed
// CDS lengths and the genome size.
type CodingRegions struct {
	CodingBP       int     `json:"coding_bp"`
	NonCodingBP    int     `json:"non_coding_bp"`
	CodingPercent  float64 `json:"coding_pct"`
	NonCodingPct   float64 `json:"non_coding_pct"`
}

// Coding sums CDS lengths against the genome size.
func Coding(records []CDSRecord, genomeBP int) CodingRegions {
	var coding int
	for _, r := range records {
		coding += r.LengthNT
	}
	cr := CodingRegions{CodingBP: coding, NonCodingBP: genomeBP - coding}
	if genomeBP > 0 {
		cr.CodingPercent = float64(coding) / float64(genomeBP) * 100
		cr.NonCodingPct = 100 - cr.CodingPercent
	}
	return cr
}

// GeneDensity is gene density in the conventional genomic units.
type GeneDensity struct {
	GenesPerMB float64 `json:"genes_per_mb"`
	GenesPerKB float64 `json:"genes_per_kb"`
	BPPerGene  float64 `json:"bp_per_gene"`
}

// Density computes gene density over the genome.
func Density(geneCount, genomeBP int) GeneDensity {
	if genomeBP == 0 {
		return GeneDensity{}
	}
	d := GeneDensity{
		GenesPerMB: float64(geneCount) / float64(genomeBP) * 1_000_000,
		GenesPerKB: float64(geneCount) / float64(genomeBP) * 1000,
	}
	if geneCount > 0 {
		d.BPPerGene = float64(genomeBP) / float64(geneCount)
	}
	return d
}

// StrandSplit is the distribution of features between strands.
type StrandSplit struct {
	Plus       int     `json:"strand_plus"`
	Minus      int     `json:"strand_minus"`
	PlusPct    float64 `json:"plus_pct"`
	MinusPct   float64 `json:"minus_pct"`
}

// SplitByStrand counts features per strand from their orientations.
func SplitByStrand(strands []genbank.Strand) StrandSplit {
	var s StrandSplit
	for _, st := range strands {
		if st == genbank.StrandReverse {
			s.Minus++
		} else {
			s.Plus++
		}
	}
	total := s.Plus + s.Minus
	if total > 0 {
		s.PlusPct = float64(s.Plus) / float64(total) * 100
		s.MinusPct = float64(s.Minus) / float64(total) * 100
	}
	return s
}

// CDSStrands returns the strand of each CDS record.
func CDSStrands(records []CDSRecord) []genbank.Strand {
	out := make([]genbank.Strand, len(records))
	for i, r := range records {
		out[i] = r.Strand
	}
	return out
}

// GeneStrands returns the strand of each gene record.
func GeneStrands(records []GeneRecord) []genbank.Strand {
	out := make([]genbank.Strand, len(records))
	for i, r := range records {
		out[i] = r.Strand
	}
	return out
}

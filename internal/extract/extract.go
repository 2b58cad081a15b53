// Package extract derives per-feature records and genome-level
// composition figures from an annotated genome record.
package extract

import (
	"fmt"

	"github.com/unsaac-bioinfo/genostat/internal/genbank"
)

// MalformedFeatureError reports a feature with an invalid coordinate
// interval. Extraction aborts rather than producing a negative length.
type MalformedFeatureError struct {
	Kind     string
	LocusTag string
	Start    int
	End      int
	GenomeBP int
}

func (e *MalformedFeatureError) Error() string {
	tag := e.LocusTag
	if tag == "" {
		tag = "?"
	}
	return fmt.Sprintf("malformed %s feature %s: interval [%d, %d) outside genome of %d bp",
		e.Kind, tag, e.Start, e.End, e.GenomeBP)
}

// CDSRecord is the derived record for one CDS feature. Computed once,
// never mutated.
type CDSRecord struct {
	LocusTag  genbank.Qualifier
	Gene      genbank.Qualifier
	Product   genbank.Qualifier
	ProteinID genbank.Qualifier
	Start     int
	End       int
	LengthNT  int
	LengthAA  int
	Strand    genbank.Strand
	GCPercent float64
}

// GeneRecord is the raw tuple kept for gene-kind features.
type GeneRecord struct {
	LocusTag genbank.Qualifier
	Start    int
	End      int
	Length   int
	Strand   genbank.Strand
}

// CDSRecords walks the record in feature order and derives one CDSRecord
// per CDS feature. It is a pure function over the record.
func CDSRecords(rec *genbank.Record) ([]CDSRecord, error) {
	var out []CDSRecord
	for _, f := range rec.Features {
		if f.Kind != "CDS" {
			continue
		}
		if err := checkLocation(rec, f); err != nil {
			return nil, err
		}
		length := f.Length()
		out = append(out, CDSRecord{
			LocusTag:  f.Qualifier("locus_tag"),
			Gene:      f.Qualifier("gene"),
			Product:   f.Qualifier("product"),
			ProteinID: f.Qualifier("protein_id"),
			Start:     f.Start,
			End:       f.End,
			LengthNT:  length,
			LengthAA:  length / 3,
			Strand:    f.Strand,
			GCPercent: GCPercent(f.Extract(rec.Sequence)),
		})
	}
	return out, nil
}

// GeneRecords derives the gene-kind tuples in feature order.
func GeneRecords(rec *genbank.Record) ([]GeneRecord, error) {
	var out []GeneRecord
	for _, f := range rec.Features {
		if f.Kind != "gene" {
			continue
		}
		if err := checkLocation(rec, f); err != nil {
			return nil, err
		}
		out = append(out, GeneRecord{
			LocusTag: f.Qualifier("locus_tag"),
			Start:    f.Start,
			End:      f.End,
			Length:   f.Length(),
			Strand:   f.Strand,
		})
	}
	return out, nil
}

func checkLocation(rec *genbank.Record, f genbank.Feature) error {
	if f.Start < 0 || f.Start > f.End || f.End > rec.Length() {
		return &MalformedFeatureError{
			Kind:     f.Kind,
			LocusTag: f.Qualifier("locus_tag").Or(""),
			Start:    f.Start,
			End:      f.End,
			GenomeBP: rec.Length(),
		}
	}
	return nil
}

// NTLengths returns the nucleotide lengths of the given CDS records.
func NTLengths(records []CDSRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.LengthNT
	}
	return out
}

// AALengths returns the amino-acid lengths of the given CDS records.
func AALengths(records []CDSRecord) []int {
	out := make([]int, len(records))
	for i, r := range records {
		out[i] = r.LengthAA
	}
	return out
}

// MultipleOf3 counts CDS nucleotide lengths that are complete codon
// multiples. Compliance is counted, not enforced.
func MultipleOf3(lengths []int) (multiples int, pct float64) {
	for _, n := range lengths {
		if n%3 == 0 {
			multiples++
		}
	}
	if len(lengths) > 0 {
		pct = float64(multiples) / float64(len(lengths)) * 100
	}
	return multiples, pct
}

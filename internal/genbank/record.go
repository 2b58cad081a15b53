// Package genbank provides an immutable model of an annotated genome
// record and a loader that reads GenBank flat files.
package genbank

import (
	"errors"
	"strings"
)

// ErrMissingInput reports that a required input file is absent.
var ErrMissingInput = errors.New("missing input file")

// Strand is the orientation of a feature relative to the reference.
type Strand int8

const (
	StrandForward Strand = 1
	StrandReverse Strand = -1
)

// String returns "+" or "-".
func (s Strand) String() string {
	if s == StrandReverse {
		return "-"
	}
	return "+"
}

// Qualifier is a feature qualifier value that is either known or absent.
// It replaces the "NA"/"Unknown" string sentinels of the raw annotation.
type Qualifier struct {
	value string
	known bool
}

// Known returns a qualifier holding v.
func Known(v string) Qualifier { return Qualifier{value: v, known: true} }

// Unknown returns an absent qualifier.
func Unknown() Qualifier { return Qualifier{} }

// Value returns the qualifier value and whether it is known.
func (q Qualifier) Value() (string, bool) { return q.value, q.known }

// Or returns the qualifier value, or def when absent.
func (q Qualifier) Or(def string) string {
	if q.known {
		return q.value
	}
	return def
}

// Feature is a single annotated interval on the genome. Start/End form a
// half-open, 0-based interval [Start, End).
type Feature struct {
	Kind       string
	Start      int
	End        int
	Strand     Strand
	Qualifiers map[string][]string
}

// Length returns End - Start.
func (f Feature) Length() int { return f.End - f.Start }

// Qualifier returns the first value of the named qualifier.
func (f Feature) Qualifier(name string) Qualifier {
	vs := f.Qualifiers[name]
	if len(vs) == 0 || vs[0] == "" {
		return Unknown()
	}
	return Known(vs[0])
}

// Extract returns the feature sequence in coding orientation: the genome
// slice for forward features, its reverse complement for reverse features.
// The interval must lie within the genome.
func (f Feature) Extract(genome string) string {
	s := genome[f.Start:f.End]
	if f.Strand == StrandReverse {
		return ReverseComplement(s)
	}
	return s
}

// Record is an annotated genome record. Immutable once loaded.
type Record struct {
	ID          string
	Description string
	Sequence    string
	Features    []Feature
}

// Length returns the genome length in base pairs.
func (r *Record) Length() int { return len(r.Sequence) }

// FeaturesOfKind returns the features of the given kind in record order.
func (r *Record) FeaturesOfKind(kind string) []Feature {
	var out []Feature
	for _, f := range r.Features {
		if f.Kind == kind {
			out = append(out, f)
		}
	}
	return out
}

var complement = map[byte]byte{
	'A': 'T', 'T': 'A', 'G': 'C', 'C': 'G',
	'a': 't', 't': 'a', 'g': 'c', 'c': 'g',
	'N': 'N', 'n': 'n',
}

// ReverseComplement returns the reverse complement of a DNA sequence.
// Bases without a defined complement are preserved.
func ReverseComplement(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := len(s) - 1; i >= 0; i-- {
		if c, ok := complement[s[i]]; ok {
			b.WriteByte(c)
		} else {
			b.WriteByte(s[i])
		}
	}
	return b.String()
}

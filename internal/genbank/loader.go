package genbank

import (
	"fmt"
	"io"
	"os"
	"strings"

	poly "github.com/bebop/poly/io/genbank"
)

// Load reads a GenBank flat file into a Record. Format parsing is
// delegated to poly; the result is converted into the immutable model.
func Load(path string) (*Record, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrMissingInput, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	gb, err := poly.Read(path)
	if err != nil {
		return nil, fmt.Errorf("parse genbank %s: %w", path, err)
	}
	return fromPoly(&gb), nil
}

// Parse reads a GenBank record from r.
func Parse(r io.Reader) (*Record, error) {
	gb, err := poly.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parse genbank: %w", err)
	}
	return fromPoly(&gb), nil
}

// fromPoly converts a parsed poly record into the package model.
func fromPoly(gb *poly.Genbank) *Record {
	rec := &Record{
		ID:          recordID(gb),
		Description: strings.TrimSuffix(gb.Meta.Definition, "."),
		Sequence:    strings.ToUpper(gb.Sequence),
		Features:    make([]Feature, 0, len(gb.Features)),
	}

	for _, f := range gb.Features {
		strand := StrandForward
		if f.Location.Complement {
			strand = StrandReverse
		}

		quals := make(map[string][]string, len(f.Attributes))
		for name, vals := range f.Attributes {
			quals[name] = []string{vals}
		}

		rec.Features = append(rec.Features, Feature{
			Kind:       f.Type,
			Start:      f.Location.Start,
			End:        f.Location.End,
			Strand:     strand,
			Qualifiers: quals,
		})
	}

	return rec
}

func recordID(gb *poly.Genbank) string {
	if gb.Meta.Version != "" {
		return gb.Meta.Version
	}
	if gb.Meta.Accession != "" {
		return gb.Meta.Accession
	}
	return gb.Meta.Locus.Name
}

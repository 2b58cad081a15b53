package validate

import (
	_ "embed"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

//go:embed reference.yaml
var defaultReferenceYAML []byte

// Expectation is one literature-sourced expected value. A non-empty Range
// takes precedence over Expected/Tolerance.
type Expectation struct {
	Expected  float64   `yaml:"expected"`
	Tolerance float64   `yaml:"tolerance"`
	Range     []float64 `yaml:"range,flow"`
	Source    string    `yaml:"source"`
	Note      string    `yaml:"note"`
}

// HasRange reports whether the expectation is an inclusive range check.
func (e Expectation) HasRange() bool { return len(e.Range) == 2 }

// Reference is the table of expected literature values, keyed by
// parameter name. It is configuration data, not logic; callers may load a
// replacement table from file.
type Reference map[string]Expectation

// Default returns the embedded reference table for E. coli K-12 MG1655.
func Default() Reference {
	ref, err := parseReference(defaultReferenceYAML)
	if err != nil {
		panic(fmt.Sprintf("embedded reference table: %v", err))
	}
	return ref
}

// LoadFile loads a reference table from a YAML file.
func LoadFile(path string) (Reference, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read reference table: %w", err)
	}
	ref, err := parseReference(data)
	if err != nil {
		return nil, fmt.Errorf("parse reference table %s: %w", path, err)
	}
	return ref, nil
}

func parseReference(data []byte) (Reference, error) {
	var ref Reference
	if err := yaml.Unmarshal(data, &ref); err != nil {
		return nil, err
	}
	for name, e := range ref {
		if len(e.Range) != 0 && len(e.Range) != 2 {
			return nil, fmt.Errorf("parameter %s: range must have exactly two bounds", name)
		}
	}
	return ref, nil
}

// Check validates observed against the named expectation, using a range
// check when the expectation declares one and a tolerance check
// otherwise.
func (r Reference) Check(name string, observed float64) (Result, error) {
	e, ok := r[name]
	if !ok {
		return Result{}, fmt.Errorf("no expectation for parameter %q", name)
	}
	var res Result
	if e.HasRange() {
		res = Range(name, observed, e.Range[0], e.Range[1])
	} else {
		res = Value(name, observed, e.Expected, e.Tolerance)
	}
	res.Source = e.Source
	res.Note = e.Note
	return res, nil
}

// Parameters returns the parameter names in sorted order.
func (r Reference) Parameters() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

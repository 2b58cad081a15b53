package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueWithinTolerance(t *testing.T) {
	r := Value("genome_size_bp", 4641652, 4641652, 100)
	assert.True(t, r.Pass)
	assert.Equal(t, StatusOK, r.Status)
	assert.Equal(t, ModeTolerance, r.Mode)
	assert.Zero(t, r.Diff)
}

func TestValueBoundary(t *testing.T) {
	// A difference exactly equal to the tolerance passes.
	r := Value("x", 110, 100, 10)
	assert.True(t, r.Pass)
	assert.Equal(t, 10.0, r.Diff)
	assert.Equal(t, 10.0, r.DeviationPct)

	r = Value("x", 110.01, 100, 10)
	assert.False(t, r.Pass)
	assert.Equal(t, StatusOutOfTolerance, r.Status)
}

func TestValueZeroExpected(t *testing.T) {
	r := Value("x", 5, 0, 1)
	assert.False(t, r.Pass)
	assert.Zero(t, r.DeviationPct)
}

func TestRangeInclusive(t *testing.T) {
	for _, observed := range []float64{85, 87.5, 90} {
		r := Range("coding_pct", observed, 85, 90)
		assert.True(t, r.Pass, "observed=%v", observed)
		assert.Equal(t, StatusWithinRange, r.Status)
	}
	for _, observed := range []float64{84.99, 90.01} {
		r := Range("coding_pct", observed, 85, 90)
		assert.False(t, r.Pass, "observed=%v", observed)
		assert.Equal(t, StatusOutOfRange, r.Status)
	}
}

func TestEnrichBoundaries(t *testing.T) {
	th := DefaultThresholds()

	cases := []struct {
		subset, baseline float64
		want             Class
	}{
		{60, 50, ClassNeutral},   // 1.2 exactly: neutral
		{60.5, 50, ClassPreferred},
		{40, 50, ClassNeutral},   // 0.8 exactly: neutral
		{39.5, 50, ClassAvoided},
		{50, 50, ClassNeutral},
		{10, 0, ClassAvoided},    // zero baseline: enrichment 0
	}
	for _, c := range cases {
		call := Enrich("TAA", c.subset, c.baseline, th)
		assert.Equal(t, c.want, call.Class, "subset=%v baseline=%v", c.subset, c.baseline)
	}
}

func TestDefaultReference(t *testing.T) {
	ref := Default()
	require.NotEmpty(t, ref)

	params := ref.Parameters()
	assert.Contains(t, params, "genome_size_bp")
	assert.Contains(t, params, "stop_taa_cds_pct")

	// Parameters with a range use a range check.
	res, err := ref.Check("coding_pct", 87)
	require.NoError(t, err)
	assert.Equal(t, ModeRange, res.Mode)
	assert.True(t, res.Pass)
	assert.NotEmpty(t, res.Source)

	// Tolerance parameters use a tolerance check.
	res, err = ref.Check("gc_content_pct", 50.79)
	require.NoError(t, err)
	assert.Equal(t, ModeTolerance, res.Mode)
	assert.True(t, res.Pass)
}

func TestCheckUnknownParameter(t *testing.T) {
	_, err := Default().Check("no_such_parameter", 1)
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ref.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"my_param:\n  expected: 10\n  tolerance: 2\n  source: \"unit test\"\n"), 0644))

	ref, err := LoadFile(path)
	require.NoError(t, err)

	res, err := ref.Check("my_param", 11)
	require.NoError(t, err)
	assert.True(t, res.Pass)
	assert.Equal(t, "unit test", res.Source)
}

func TestLoadFileErrors(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("p:\n  range: [1, 2, 3]\n"), 0644))
	_, err = LoadFile(bad)
	assert.ErrorContains(t, err, "exactly two bounds")
}

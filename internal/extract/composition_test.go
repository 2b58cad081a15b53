package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsaac-bioinfo/genostat/internal/genbank"
)

func TestCompose(t *testing.T) {
	rec := &genbank.Record{Sequence: "AATTGGCCNN"}
	c := Compose(rec)

	assert.Equal(t, 2, c.A.Count)
	assert.Equal(t, 2, c.T.Count)
	assert.Equal(t, 2, c.G.Count)
	assert.Equal(t, 2, c.C.Count)
	assert.Equal(t, 2, c.N.Count)
	assert.Equal(t, 20.0, c.A.Percent)
}

func TestGCPercent(t *testing.T) {
	assert.Equal(t, 50.0, GCPercent("ATGC"))
	assert.Equal(t, 100.0, GCPercent("gcGC"))
	assert.Equal(t, 0.0, GCPercent("ATAT"))
	assert.Equal(t, 0.0, GCPercent(""))
}

func TestCoding(t *testing.T) {
	cds, err := CDSRecords(testRecord())
	require.NoError(t, err)

	r := Coding(cds, 30)
	assert.Equal(t, 18, r.CodingBP)
	assert.Equal(t, 12, r.NonCodingBP)
	assert.Equal(t, 60.0, r.CodingPercent)
	assert.Equal(t, 40.0, r.NonCodingPct)

	// A zero-size genome yields zero percentages, not NaN.
	r = Coding(nil, 0)
	assert.Zero(t, r.CodingPercent)
}

func TestDensity(t *testing.T) {
	d := Density(4500, 4_500_000)
	assert.Equal(t, 1000.0, d.GenesPerMB)
	assert.Equal(t, 1.0, d.GenesPerKB)
	assert.Equal(t, 1000.0, d.BPPerGene)

	assert.Zero(t, Density(10, 0))
	assert.Zero(t, Density(0, 100).BPPerGene)
}

func TestSplitByStrand(t *testing.T) {
	s := SplitByStrand([]genbank.Strand{
		genbank.StrandForward, genbank.StrandForward, genbank.StrandReverse,
	})
	assert.Equal(t, 2, s.Plus)
	assert.Equal(t, 1, s.Minus)
	assert.InDelta(t, 66.67, s.PlusPct, 0.01)
	assert.InDelta(t, 33.33, s.MinusPct, 0.01)

	assert.Zero(t, SplitByStrand(nil).PlusPct)
}

func TestStrandAccessors(t *testing.T) {
	cds, err := CDSRecords(testRecord())
	require.NoError(t, err)
	genes, err := GeneRecords(testRecord())
	require.NoError(t, err)

	assert.Equal(t, []genbank.Strand{genbank.StrandForward, genbank.StrandReverse}, CDSStrands(cds))
	assert.Equal(t, []genbank.Strand{genbank.StrandForward, genbank.StrandReverse}, GeneStrands(genes))
}

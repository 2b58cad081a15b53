package codon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/unsaac-bioinfo/genostat/internal/genbank"
)

func TestCountAllOffsets(t *testing.T) {
	// TAA at positions 0 and 3, not codon-aligned scanning only.
	assert.Equal(t, []int{0, 3}, Count("TAATAACC", "TAA"))
	// Overlapping occurrences count: AAA in AAAA at 0 and 1.
	assert.Equal(t, []int{0, 1}, Count("AAAA", "AAA"))
	assert.Empty(t, Count("AT", "TAA"))
	assert.Empty(t, Count("ATGATG", ""))
}

func TestDensityPerKB(t *testing.T) {
	assert.Equal(t, 2.0, DensityPerKB(2, 1000))
	assert.Equal(t, 0.0, DensityPerKB(5, 0))
}

func TestGenomeStopUsage(t *testing.T) {
	rec := &genbank.Record{Sequence: "TAATAGTGATAA"}
	usage, total := GenomeStopUsage(rec)

	assert.Equal(t, 4, total)
	assert.Equal(t, 2, usage["TAA"].Total)
	assert.Equal(t, 1, usage["TAG"].Total)
	assert.Equal(t, 1, usage["TGA"].Total)
	assert.Equal(t, 50.0, usage["TAA"].Percent)
	assert.InDelta(t, 1.0/12*1000, usage["TAG"].DensityPerKB, 1e-9)
}

func TestTerminalCodon(t *testing.T) {
	rec := &genbank.Record{Sequence: "ATGAAATAACCCGGGTTATTTCAT"}

	fwd := genbank.Feature{Kind: "CDS", Start: 0, End: 9, Strand: genbank.StrandForward}
	assert.Equal(t, "TAA", TerminalCodon(rec, fwd))

	// [15,24) reverse reads ATGAAATAA in coding orientation.
	rev := genbank.Feature{Kind: "CDS", Start: 15, End: 24, Strand: genbank.StrandReverse}
	assert.Equal(t, "TAA", TerminalCodon(rec, rev))

	short := genbank.Feature{Kind: "CDS", Start: 0, End: 2, Strand: genbank.StrandForward}
	assert.Equal(t, "", TerminalCodon(rec, short))
}

func TestCDSStopUsage(t *testing.T) {
	rec := &genbank.Record{
		Sequence: "ATGAAATAACCCGGGTTATTTCATATGCCCGGG",
		Features: []genbank.Feature{
			{Kind: "CDS", Start: 0, End: 9, Strand: genbank.StrandForward},   // ...TAA
			{Kind: "CDS", Start: 15, End: 24, Strand: genbank.StrandReverse}, // ...TAA
			{Kind: "CDS", Start: 24, End: 33, Strand: genbank.StrandForward}, // ...GGG
			{Kind: "gene", Start: 0, End: 9, Strand: genbank.StrandForward},
		},
	}

	usage, total := CDSStopUsage(rec)
	assert.Equal(t, 3, total)
	assert.Equal(t, 2, usage["TAA"].Total)
	assert.Equal(t, 1, usage["other"].Total)
	assert.InDelta(t, 66.67, usage["TAA"].Percent, 0.01)

	// Every stop codon is represented even when unused.
	_, ok := usage["TAG"]
	require.True(t, ok)
	assert.Zero(t, usage["TAG"].Total)
}

func TestATG(t *testing.T) {
	rec := &genbank.Record{Sequence: strings.Repeat("ATGC", 5)} // 5 ATG in 20 bp
	report := ATG(rec, nil)

	assert.Equal(t, 5, report.Total)
	assert.Equal(t, 250.0, report.DensityPerKB)
	assert.Zero(t, report.TotalCDS)
	assert.Zero(t, report.RatioPerCDS)
	assert.Zero(t, report.EstimatedExtra)
}

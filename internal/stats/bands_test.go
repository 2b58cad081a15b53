package stats

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSizeBandsContiguous(t *testing.T) {
	bands := SizeBands()
	require.Len(t, bands, 5)

	assert.Equal(t, 0, bands[0].Lo)
	for i := 1; i < len(bands); i++ {
		assert.Equal(t, float64(bands[i].Lo), bands[i-1].Hi)
	}
	assert.True(t, math.IsInf(bands[len(bands)-1].Hi, 1))
}

func TestCategorize(t *testing.T) {
	lengths := []int{90, 150, 300, 600, 900, 1200, 2400, 3000, 4500}
	counts := Categorize(lengths)
	require.Len(t, counts, 5)

	assert.Equal(t, 2, counts[0].Count) // 90, 150
	assert.Equal(t, 1, counts[1].Count) // 300
	assert.Equal(t, 2, counts[2].Count) // 600, 900
	assert.Equal(t, 1, counts[3].Count) // 1200
	assert.Equal(t, 3, counts[4].Count) // 2400, 3000, 4500

	total := 0
	var pct float64
	for _, c := range counts {
		total += c.Count
		pct += c.Percent
	}
	assert.Equal(t, len(lengths), total)
	assert.InDelta(t, 100.0, pct, 1e-9)
}

func TestCategorizeBoundaries(t *testing.T) {
	// Lower bounds are inclusive, upper bounds exclusive.
	counts := Categorize([]int{299, 300, 599, 600, 2399, 2400})
	assert.Equal(t, 1, counts[0].Count)
	assert.Equal(t, 2, counts[1].Count)
	assert.Equal(t, 1, counts[2].Count)
	assert.Equal(t, 1, counts[3].Count)
	assert.Equal(t, 1, counts[4].Count)
}

func TestCategorizeMembersIndexInput(t *testing.T) {
	counts := Categorize([]int{4500, 100})
	assert.Equal(t, []int{1}, counts[0].Members)
	assert.Equal(t, []int{0}, counts[4].Members)
}

func TestCategorizeEmpty(t *testing.T) {
	counts := Categorize(nil)
	require.Len(t, counts, 5)
	for _, c := range counts {
		assert.Zero(t, c.Count)
		assert.Zero(t, c.Percent)
	}
}

package stats

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sample mirrors a small CDS length distribution.
var sample = []float64{90, 150, 300, 600, 900, 1200, 2400, 3000, 4500}

func TestDescribe(t *testing.T) {
	b, err := Describe(sample)
	require.NoError(t, err)

	assert.Equal(t, 9, b.Count)
	assert.Equal(t, 900.0, b.Median)
	assert.Equal(t, 90.0, b.Min)
	assert.Equal(t, 4500.0, b.Max)
	assert.Equal(t, 4410.0, b.Range)
	assert.InDelta(t, 1460.0, b.Mean, 1e-9)

	// Median and P50 are the same statistic.
	assert.Equal(t, b.P50, b.Median)
	// IQR is exactly P75 - P25.
	assert.Equal(t, b.P75-b.P25, b.IQR)
	// StdDev squares back to the variance.
	assert.InDelta(t, b.Variance, b.StdDev*b.StdDev, 1e-6)
}

func TestDescribePercentilesOrdered(t *testing.T) {
	b, err := Describe(sample)
	require.NoError(t, err)

	ps := []float64{b.Min, b.P5, b.P10, b.P25, b.P50, b.P75, b.P90, b.P95, b.Max}
	for i := 1; i < len(ps); i++ {
		assert.LessOrEqual(t, ps[i-1], ps[i])
	}
}

func TestDescribeEmpty(t *testing.T) {
	_, err := Describe(nil)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Percentile(nil, 50)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestDescribeDoesNotMutateInput(t *testing.T) {
	in := []float64{3, 1, 2}
	_, err := Describe(in)
	require.NoError(t, err)
	assert.Equal(t, []float64{3, 1, 2}, in)
}

func TestPercentileLinearInterpolation(t *testing.T) {
	values := []float64{10, 20, 30, 40}

	p, err := Percentile(values, 50)
	require.NoError(t, err)
	assert.Equal(t, 25.0, p)

	p, err = Percentile(values, 0)
	require.NoError(t, err)
	assert.Equal(t, 10.0, p)

	p, err = Percentile(values, 100)
	require.NoError(t, err)
	assert.Equal(t, 40.0, p)
}

func TestPercentileSingleElement(t *testing.T) {
	for _, q := range []float64{0, 25, 50, 100} {
		p, err := Percentile([]float64{42}, q)
		require.NoError(t, err)
		assert.Equal(t, 42.0, p)
	}
}

func TestModeFirstEncounteredTie(t *testing.T) {
	b, err := Describe([]float64{5, 3, 5, 3})
	require.NoError(t, err)
	assert.Equal(t, 5.0, b.Mode)

	b, err = Describe([]float64{3, 5, 3, 5})
	require.NoError(t, err)
	assert.Equal(t, 3.0, b.Mode)
}

func TestCVZeroMean(t *testing.T) {
	b, err := Describe([]float64{-1, 1})
	require.NoError(t, err)
	assert.Equal(t, 0.0, b.CV)
}

func TestVarianceIsPopulation(t *testing.T) {
	b, err := Describe([]float64{2, 4})
	require.NoError(t, err)
	// Population variance of {2,4} is 1 (sample variance would be 2).
	assert.InDelta(t, 1.0, b.Variance, 1e-9)
}

func TestBundleJSONRoundTrip(t *testing.T) {
	b, err := Describe(sample)
	require.NoError(t, err)

	data, err := json.Marshal(b)
	require.NoError(t, err)

	var got Bundle
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, b, got)
}

func TestFloats(t *testing.T) {
	assert.Equal(t, []float64{1, 2, 3}, Floats([]int{1, 2, 3}))
	assert.Empty(t, Floats(nil))
}

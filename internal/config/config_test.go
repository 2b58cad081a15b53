package config

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	c := Default()
	assert.Equal(t, filepath.Join("data", "raw", "ecoli_k12_mg1655.gbk"), c.InputFile)
	assert.Equal(t, "results", c.ResultsDir)
	assert.Equal(t, 5*time.Minute, c.StageTimeout)
	assert.Equal(t, 1.5, c.OutlierMultiplier)
	assert.Equal(t, 1.2, c.Enrichment.Preferred)
	assert.Equal(t, 0.8, c.Enrichment.Avoided)
	assert.Empty(t, c.StorePath)
}

func TestFromViper(t *testing.T) {
	v := viper.New()
	v.Set("input", "other.gbk")
	v.Set("results", "out")
	v.Set("stage_timeout", "90s")
	v.Set("outlier_multiplier", 3.0)
	v.Set("enrichment.preferred", 1.5)
	v.Set("store", "runs.duckdb")

	c := FromViper(v)
	assert.Equal(t, "other.gbk", c.InputFile)
	assert.Equal(t, "out", c.ResultsDir)
	assert.Equal(t, 90*time.Second, c.StageTimeout)
	assert.Equal(t, 3.0, c.OutlierMultiplier)
	assert.Equal(t, 1.5, c.Enrichment.Preferred)
	// Unset keys keep the defaults.
	assert.Equal(t, 0.8, c.Enrichment.Avoided)
	assert.Equal(t, "runs.duckdb", c.StorePath)
}

func TestDirs(t *testing.T) {
	c := Default()
	c.ResultsDir = filepath.Join(t.TempDir(), "results")

	assert.Equal(t, filepath.Join(c.ResultsDir, "tables"), c.TablesDir())
	assert.Equal(t, filepath.Join(c.ResultsDir, "figures"), c.FiguresDir())

	require.NoError(t, c.EnsureDirs())
	assert.DirExists(t, c.TablesDir())
	assert.DirExists(t, c.FiguresDir())
}

func TestReference(t *testing.T) {
	c := Default()
	ref, err := c.Reference()
	require.NoError(t, err)
	assert.NotEmpty(t, ref)

	c.ReferenceFile = filepath.Join(t.TempDir(), "missing.yaml")
	_, err = c.Reference()
	assert.Error(t, err)
}

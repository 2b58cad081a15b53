// Package config carries the explicit configuration object passed into
// every component. There is no process-wide mutable state: commands build
// a Config once and hand it down.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/unsaac-bioinfo/genostat/internal/stats"
	"github.com/unsaac-bioinfo/genostat/internal/validate"
)

// Config is the full runtime configuration.
type Config struct {
	// InputFile is the GenBank record every analysis stage reads.
	InputFile string
	// ResultsDir is the root of the artifact tree (tables/, figures/).
	ResultsDir string
	// StageTimeout bounds each pipeline stage.
	StageTimeout time.Duration
	// OutlierMultiplier is the IQR fence multiplier k.
	OutlierMultiplier float64
	// Enrichment holds the preference classifier cutoffs.
	Enrichment validate.Thresholds
	// ReferenceFile optionally overrides the embedded literature table.
	ReferenceFile string
	// StorePath optionally enables the DuckDB results store.
	StorePath string
	// NCBIEmail and NCBIAPIKey identify download requests to E-utilities.
	NCBIEmail  string
	NCBIAPIKey string
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		InputFile:         filepath.Join("data", "raw", "ecoli_k12_mg1655.gbk"),
		ResultsDir:        "results",
		StageTimeout:      5 * time.Minute,
		OutlierMultiplier: stats.DefaultFenceMultiplier,
		Enrichment:        validate.DefaultThresholds(),
	}
}

// FromViper builds a Config from viper settings layered over the
// defaults, then picks up NCBI credentials from the environment (a .env
// file is honored when present).
func FromViper(v *viper.Viper) Config {
	c := Default()
	if s := v.GetString("input"); s != "" {
		c.InputFile = s
	}
	if s := v.GetString("results"); s != "" {
		c.ResultsDir = s
	}
	if d := v.GetDuration("stage_timeout"); d > 0 {
		c.StageTimeout = d
	}
	if k := v.GetFloat64("outlier_multiplier"); k > 0 {
		c.OutlierMultiplier = k
	}
	if t := v.GetFloat64("enrichment.preferred"); t > 0 {
		c.Enrichment.Preferred = t
	}
	if t := v.GetFloat64("enrichment.avoided"); t > 0 {
		c.Enrichment.Avoided = t
	}
	if s := v.GetString("reference_table"); s != "" {
		c.ReferenceFile = s
	}
	if s := v.GetString("store"); s != "" {
		c.StorePath = s
	}

	godotenv.Load()
	c.NCBIEmail = os.Getenv("NCBI_EMAIL")
	c.NCBIAPIKey = os.Getenv("NCBI_API_KEY")
	return c
}

// TablesDir is where JSON/CSV artifacts go.
func (c Config) TablesDir() string { return filepath.Join(c.ResultsDir, "tables") }

// FiguresDir is where chart images go.
func (c Config) FiguresDir() string { return filepath.Join(c.ResultsDir, "figures") }

// EnsureDirs creates the artifact tree.
func (c Config) EnsureDirs() error {
	for _, dir := range []string{c.TablesDir(), c.FiguresDir()} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create results directory %s: %w", dir, err)
		}
	}
	return nil
}

// Reference returns the literature table: the configured file when set,
// the embedded default otherwise.
func (c Config) Reference() (validate.Reference, error) {
	if c.ReferenceFile != "" {
		return validate.LoadFile(c.ReferenceFile)
	}
	return validate.Default(), nil
}

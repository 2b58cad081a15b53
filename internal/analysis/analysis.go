// Package analysis implements the pipeline stages: genome statistics,
// gene size distribution, codon usage, literature validation, figures and
// the consolidated report. Each stage loads its inputs, computes, and
// writes JSON/CSV artifacts under the results tree.
package analysis

import (
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/unsaac-bioinfo/genostat/internal/config"
	"github.com/unsaac-bioinfo/genostat/internal/extract"
	"github.com/unsaac-bioinfo/genostat/internal/genbank"
	"github.com/unsaac-bioinfo/genostat/internal/pipeline"
	"github.com/unsaac-bioinfo/genostat/internal/stats"
	"github.com/unsaac-bioinfo/genostat/internal/validate"
)

// Artifact file names, one set per stage.
const (
	GenomeStatsJSON      = "genome_statistics.json"
	GenomeStatsSummary   = "genome_statistics_summary.csv"
	CDSDetailCSV         = "cds_detailed_info.csv"
	CDSSizesCSV          = "cds_size_distribution.csv"
	GeneDistJSON         = "gene_size_distribution_analysis.json"
	AllGenesCSV          = "all_genes_with_sizes.csv"
	SizeCategoriesCSV    = "gene_size_categories.csv"
	ExtremeGenesCSV      = "extreme_genes.csv"
	ATGJSON              = "atg_analysis.json"
	ATGSummaryCSV        = "atg_summary.csv"
	StopCodonsJSON       = "stop_codons_analysis.json"
	StopCodonsSummaryCSV = "stop_codons_summary.csv"
	CodonValidationJSON  = "validation_results.json"
	CodonValidationCSV   = "validation_summary.csv"
	PreferencesCSV       = "stop_codons_preferences.csv"
	GenomeValidationJSON = "genome_validation_results.json"
	GenomeValidationCSV  = "genome_validation_summary.csv"
	GeneSizeFigure       = "gene_size_distribution.png"
	StopCodonsFigure     = "stop_codons_comparison.png"
	ATGFigure            = "atg_distribution.png"
	OverviewFigure       = "genome_overview.png"
	FinalReport          = "REPORT.md"
)

// Analyzer builds and runs the analysis stages for one configuration.
type Analyzer struct {
	cfg  config.Config
	log  *zap.Logger
	load func() (*genbank.Record, error)
}

// New creates an analyzer.
func New(cfg config.Config) *Analyzer {
	a := &Analyzer{cfg: cfg, log: zap.NewNop()}
	a.load = func() (*genbank.Record, error) { return genbank.Load(a.cfg.InputFile) }
	return a
}

// SetLogger sets the logger used by all stages.
func (a *Analyzer) SetLogger(l *zap.Logger) { a.log = l }

func (a *Analyzer) table(name string) string  { return filepath.Join(a.cfg.TablesDir(), name) }
func (a *Analyzer) figure(name string) string { return filepath.Join(a.cfg.FiguresDir(), name) }
func (a *Analyzer) reportPath() string        { return filepath.Join(a.cfg.ResultsDir, FinalReport) }

// loadRecord loads the configured GenBank input.
func (a *Analyzer) loadRecord() (*genbank.Record, error) {
	return a.load()
}

// Stages returns the full stage graph in declaration order. The four
// analysis stages are independent of each other and run concurrently;
// validation, figures and the report wait on their declared inputs.
func (a *Analyzer) Stages() []pipeline.Stage {
	stages := []pipeline.Stage{
		{
			Name:  "genome-stats",
			Desc:  "genome composition, density and size statistics",
			Needs: []string{a.cfg.InputFile},
			Makes: []string{
				a.table(GenomeStatsJSON), a.table(GenomeStatsSummary),
				a.table(CDSDetailCSV), a.table(CDSSizesCSV),
			},
			Run: a.runGenomeStats,
		},
		{
			Name:  "gene-distribution",
			Desc:  "CDS size distribution, bands, outliers and extremes",
			Needs: []string{a.cfg.InputFile},
			Makes: []string{
				a.table(GeneDistJSON), a.table(AllGenesCSV),
				a.table(SizeCategoriesCSV), a.table(ExtremeGenesCSV),
			},
			Run: a.runGeneDistribution,
		},
		{
			Name:  "atg",
			Desc:  "start codon occurrence vs annotated CDS",
			Needs: []string{a.cfg.InputFile},
			Makes: []string{a.table(ATGJSON), a.table(ATGSummaryCSV)},
			Run:   a.runATG,
		},
		{
			Name:  "stop-codons",
			Desc:  "stop codon usage, whole genome vs CDS terminal codons",
			Needs: []string{a.cfg.InputFile},
			Makes: []string{a.table(StopCodonsJSON), a.table(StopCodonsSummaryCSV)},
			Run:   a.runStopCodons,
		},
		{
			Name:  "validate-codons",
			Desc:  "codon results vs literature",
			Needs: []string{a.table(ATGJSON), a.table(StopCodonsJSON)},
			Makes: []string{
				a.table(CodonValidationJSON), a.table(CodonValidationCSV),
				a.table(PreferencesCSV),
			},
			Run: a.runValidateCodons,
		},
		{
			Name:  "validate-genome",
			Desc:  "genome statistics vs literature",
			Needs: []string{a.table(GenomeStatsJSON)},
			Makes: []string{a.table(GenomeValidationJSON), a.table(GenomeValidationCSV)},
			Run:   a.runValidateGenome,
		},
		{
			Name: "figures",
			Desc: "chart rendering from stage artifacts",
			Needs: []string{
				a.table(GenomeStatsJSON), a.table(ATGJSON),
				a.table(StopCodonsJSON), a.table(AllGenesCSV),
			},
			Makes: []string{
				a.figure(GeneSizeFigure), a.figure(StopCodonsFigure),
				a.figure(ATGFigure), a.figure(OverviewFigure),
			},
			Run: a.runFigures,
		},
		{
			Name: "report",
			Desc: "consolidated markdown report",
			Needs: []string{
				a.table(GenomeStatsJSON), a.table(GeneDistJSON),
				a.table(ATGJSON), a.table(StopCodonsJSON),
				a.table(CodonValidationJSON), a.table(GenomeValidationJSON),
			},
			Makes: []string{a.reportPath()},
			Run:   a.runReport,
		},
	}

	if a.cfg.StorePath != "" {
		stages = append(stages, pipeline.Stage{
			Name: "store",
			Desc: "append run results to the DuckDB store",
			Needs: []string{
				a.cfg.InputFile,
				a.table(CodonValidationJSON), a.table(GenomeValidationJSON),
			},
			Makes: []string{a.cfg.StorePath},
			Run:   a.runStore,
		})
	}

	return stages
}

// Shared document fragments.

// GenomeInfo identifies the analyzed record.
type GenomeInfo struct {
	ID          string  `json:"id"`
	Description string  `json:"description,omitempty"`
	SizeBP      int     `json:"size_bp"`
	GCPercent   float64 `json:"gc_pct,omitempty"`
}

// FeatureStats summarizes one feature population.
type FeatureStats struct {
	Total   int                 `json:"total"`
	Sizes   stats.Bundle        `json:"size_stats"`
	Strands extract.StrandSplit `json:"strand_split"`
}

// Metadata stamps validation documents.
type Metadata struct {
	ValidatedAt string `json:"validated_at"`
	GenomeID    string `json:"genome_id"`
}

func newMetadata(genomeID string) Metadata {
	return Metadata{ValidatedAt: time.Now().Format(time.RFC3339), GenomeID: genomeID}
}

// ValidationDoc is the document shape of both validation stages.
type ValidationDoc struct {
	Metadata    Metadata                  `json:"metadata"`
	Checks      []validate.Result         `json:"validations"`
	Preferences []validate.EnrichmentCall `json:"evolutionary_preferences,omitempty"`
}

package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/unsaac-bioinfo/genostat/internal/codon"
	"github.com/unsaac-bioinfo/genostat/internal/report"
	"github.com/unsaac-bioinfo/genostat/internal/validate"
)

func (a *Analyzer) runValidateCodons(ctx context.Context) error {
	ref, err := a.cfg.Reference()
	if err != nil {
		return err
	}

	var atg ATGDoc
	if err := report.ReadJSON(a.table(ATGJSON), &atg); err != nil {
		return err
	}
	var stops StopCodonsDoc
	if err := report.ReadJSON(a.table(StopCodonsJSON), &stops); err != nil {
		return err
	}

	checks := []struct {
		parameter string
		observed  float64
	}{
		{"total_cds", float64(atg.ATG.TotalCDS)},
		{"atg_cds_ratio", atg.ATG.RatioPerCDS},
		{"stop_taa_cds_pct", stops.CDSUsage["TAA"].Percent},
		{"stop_tag_cds_pct", stops.CDSUsage["TAG"].Percent},
		{"stop_tga_cds_pct", stops.CDSUsage["TGA"].Percent},
	}

	doc := ValidationDoc{Metadata: newMetadata(atg.Genome.ID)}
	for _, c := range checks {
		res, err := ref.Check(c.parameter, c.observed)
		if err != nil {
			return fmt.Errorf("codon validation: %w", err)
		}
		doc.Checks = append(doc.Checks, res)
	}
	for _, c := range codon.StopCodons {
		doc.Preferences = append(doc.Preferences, validate.Enrich(
			c, stops.CDSUsage[c].Percent, stops.GenomeUsage[c].Percent, a.cfg.Enrichment))
	}

	a.logVerdicts("codon validation", doc.Checks)

	if err := report.WriteJSON(a.table(CodonValidationJSON), doc); err != nil {
		return err
	}
	if err := report.WriteCSV(a.table(CodonValidationCSV), validationHeader, validationRows(doc.Checks)); err != nil {
		return err
	}

	prefRows := make([][]string, len(doc.Preferences))
	for i, p := range doc.Preferences {
		prefRows[i] = []string{
			p.Codon, report.Ftoa(p.SubsetPct), report.Ftoa(p.BaselinePct),
			report.Ftoa(p.Enrichment), string(p.Class),
		}
	}
	return report.WriteCSV(a.table(PreferencesCSV),
		[]string{"codon", "cds_pct", "genome_pct", "enrichment", "class"}, prefRows)
}

func (a *Analyzer) runValidateGenome(ctx context.Context) error {
	ref, err := a.cfg.Reference()
	if err != nil {
		return err
	}

	var gs GenomeStatsDoc
	if err := report.ReadJSON(a.table(GenomeStatsJSON), &gs); err != nil {
		return err
	}

	checks := []struct {
		parameter string
		observed  float64
	}{
		{"genome_size_bp", float64(gs.Genome.SizeBP)},
		{"gc_content_pct", gs.Genome.GCPercent},
		{"coding_pct", gs.Regions.CodingPercent},
		{"gene_density_per_mb", gs.Density.GenesPerMB},
		{"mean_cds_size_bp", gs.CDS.Sizes.Mean},
		{"strand_balance_pct", gs.CDS.Strands.PlusPct},
		{"total_cds", float64(gs.CDS.Total)},
	}

	doc := ValidationDoc{Metadata: newMetadata(gs.Genome.ID)}
	for _, c := range checks {
		res, err := ref.Check(c.parameter, c.observed)
		if err != nil {
			return fmt.Errorf("genome validation: %w", err)
		}
		doc.Checks = append(doc.Checks, res)
	}

	a.logVerdicts("genome validation", doc.Checks)

	if err := report.WriteJSON(a.table(GenomeValidationJSON), doc); err != nil {
		return err
	}
	return report.WriteCSV(a.table(GenomeValidationCSV), validationHeader, validationRows(doc.Checks))
}

func (a *Analyzer) logVerdicts(what string, checks []validate.Result) {
	pass := 0
	for _, c := range checks {
		if c.Pass {
			pass++
		} else {
			a.log.Warn(what+" mismatch",
				zap.String("parameter", c.Parameter),
				zap.Float64("observed", c.Observed),
				zap.String("status", c.Status))
		}
	}
	a.log.Info(what+" complete", zap.Int("pass", pass), zap.Int("total", len(checks)))
}

var validationHeader = []string{
	"parameter", "mode", "observed", "expected", "range_min", "range_max",
	"status", "pass", "source",
}

func validationRows(checks []validate.Result) [][]string {
	rows := make([][]string, len(checks))
	for i, c := range checks {
		expected, rangeMin, rangeMax := "", "", ""
		if c.Mode == validate.ModeTolerance {
			expected = report.Ftoa(c.Expected)
		} else {
			rangeMin = report.Ftoa(c.RangeMin)
			rangeMax = report.Ftoa(c.RangeMax)
		}
		rows[i] = []string{
			c.Parameter, c.Mode, report.Ftoa(c.Observed),
			expected, rangeMin, rangeMax,
			c.Status, fmt.Sprintf("%t", c.Pass), c.Source,
		}
	}
	return rows
}

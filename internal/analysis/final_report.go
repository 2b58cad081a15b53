package analysis

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/unsaac-bioinfo/genostat/internal/codon"
	"github.com/unsaac-bioinfo/genostat/internal/report"
	"github.com/unsaac-bioinfo/genostat/internal/validate"
)

func (a *Analyzer) runReport(ctx context.Context) error {
	var gs GenomeStatsDoc
	if err := report.ReadJSON(a.table(GenomeStatsJSON), &gs); err != nil {
		return err
	}
	var dist GeneDistDoc
	if err := report.ReadJSON(a.table(GeneDistJSON), &dist); err != nil {
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
	var codonVal ValidationDoc
	if err := report.ReadJSON(a.table(CodonValidationJSON), &codonVal); err != nil {
		return err
	}
	var genomeVal ValidationDoc
	if err := report.ReadJSON(a.table(GenomeValidationJSON), &genomeVal); err != nil {
		return err
	}

	var b strings.Builder
	w := func(format string, args ...any) { fmt.Fprintf(&b, format+"\n", args...) }

	w("# Genome Analysis Report")
	w("")
	w("- **Genome:** %s", gs.Genome.ID)
	w("- **Description:** %s", gs.Genome.Description)
	w("- **Generated:** %s", time.Now().Format("2006-01-02 15:04 MST"))
	w("")

	w("## Genome overview")
	w("")
	w("| Metric | Value |")
	w("| --- | --- |")
	w("| Size | %d bp |", gs.Genome.SizeBP)
	w("| GC content | %.2f %% |", gs.Genome.GCPercent)
	w("| Annotated genes | %d |", gs.Genes.Total)
	w("| Annotated CDS | %d |", gs.CDS.Total)
	w("| Coding fraction | %.2f %% |", gs.Regions.CodingPercent)
	w("| Gene density | %.1f genes/Mb |", gs.Density.GenesPerMB)
	w("| CDS strand split | %d (+) / %d (-) |", gs.CDS.Strands.Plus, gs.CDS.Strands.Minus)
	w("")

	w("## CDS size distribution")
	w("")
	w("Mean %.1f bp, median %.1f bp, range %.0f-%.0f bp (n=%d).",
		dist.NTStats.Mean, dist.NTStats.Median, dist.NTStats.Min, dist.NTStats.Max, dist.TotalCDS)
	w("%d CDS (%.2f %%) fall outside the IQR fences [%.1f, %.1f].",
		dist.Outliers.Total, dist.Outliers.Percent,
		dist.Outliers.LowerFence, dist.Outliers.UpperFence)
	w("%d of %d CDS lengths (%.2f %%) are complete codon multiples.",
		dist.Multiples, dist.TotalCDS, dist.MultiplePct)
	w("")
	w("| Band | Count | Share |")
	w("| --- | --- | --- |")
	for _, band := range dist.Bands {
		w("| %s | %d | %.2f %% |", band.Label, band.Count, band.Percent)
	}
	w("")

	w("## Start and stop codons")
	w("")
	w("The genome contains %d ATG triplets (%.2f per kb), %.1f per annotated CDS;",
		atg.ATG.Total, atg.ATG.DensityPerKB, atg.ATG.RatioPerCDS)
	w("an estimated %d lie outside functional gene starts.", atg.ATG.EstimatedExtra)
	w("")
	w("| Codon | Genome count | Genome share | CDS terminal share | Preference |")
	w("| --- | --- | --- | --- | --- |")
	prefs := make(map[string]validate.EnrichmentCall, len(codonVal.Preferences))
	for _, p := range codonVal.Preferences {
		prefs[p.Codon] = p
	}
	for _, c := range codon.StopCodons {
		w("| %s | %d | %.2f %% | %.2f %% | %s |",
			c, stops.GenomeUsage[c].Total, stops.GenomeUsage[c].Percent,
			stops.CDSUsage[c].Percent, prefs[c].Class)
	}
	w("")

	w("## Literature validation")
	w("")
	w("| Parameter | Observed | Expectation | Status |")
	w("| --- | --- | --- | --- |")
	for _, res := range append(genomeVal.Checks, codonVal.Checks...) {
		w("| %s | %.2f | %s | %s |", res.Parameter, res.Observed, expectation(res), res.Status)
	}
	w("")
	pass, total := passCount(genomeVal.Checks)
	cp, ct := passCount(codonVal.Checks)
	w("%d of %d genome checks and %d of %d codon checks agree with the literature.",
		pass, total, cp, ct)

	if err := os.WriteFile(a.reportPath(), []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("write %s: %w", a.reportPath(), err)
	}
	return nil
}

func expectation(r validate.Result) string {
	if r.Mode == validate.ModeRange {
		return fmt.Sprintf("%.2f-%.2f", r.RangeMin, r.RangeMax)
	}
	return fmt.Sprintf("%.2f +/- %.2f", r.Expected, r.Tolerance)
}

func passCount(checks []validate.Result) (pass, total int) {
	for _, c := range checks {
		if c.Pass {
			pass++
		}
	}
	return pass, len(checks)
}

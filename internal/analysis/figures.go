package analysis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/unsaac-bioinfo/genostat/internal/codon"
	"github.com/unsaac-bioinfo/genostat/internal/plot"
	"github.com/unsaac-bioinfo/genostat/internal/report"
)

// sizeHistogramBins matches the binning of the published distribution
// figures.
const sizeHistogramBins = 50

func (a *Analyzer) runFigures(ctx context.Context) error {
	if err := a.geneSizeFigure(); err != nil {
		return err
	}
	if err := a.stopCodonsFigure(); err != nil {
		return err
	}
	if err := a.atgFigure(); err != nil {
		return err
	}
	return a.overviewFigure()
}

func (a *Analyzer) geneSizeFigure() error {
	header, rows, err := report.ReadCSV(a.table(AllGenesCSV))
	if err != nil {
		return err
	}
	cells, err := report.Column(header, rows, "length_nt")
	if err != nil {
		return fmt.Errorf("%s: %w", AllGenesCSV, err)
	}
	lengths := make([]float64, len(cells))
	for i, c := range cells {
		lengths[i], err = strconv.ParseFloat(c, 64)
		if err != nil {
			return fmt.Errorf("%s row %d: %w", AllGenesCSV, i+1, err)
		}
	}
	return plot.Histogram(a.figure(GeneSizeFigure),
		"CDS size distribution", "length (bp)", lengths, sizeHistogramBins)
}

func (a *Analyzer) stopCodonsFigure() error {
	var stops StopCodonsDoc
	if err := report.ReadJSON(a.table(StopCodonsJSON), &stops); err != nil {
		return err
	}
	genomePct := make([]float64, len(codon.StopCodons))
	cdsPct := make([]float64, len(codon.StopCodons))
	for i, c := range codon.StopCodons {
		genomePct[i] = stops.GenomeUsage[c].Percent
		cdsPct[i] = stops.CDSUsage[c].Percent
	}
	return plot.PairedBars(a.figure(StopCodonsFigure),
		"Stop codon usage: genome baseline vs CDS terminal", "% of stops",
		codon.StopCodons, "genome", genomePct, "CDS", cdsPct)
}

func (a *Analyzer) atgFigure() error {
	var atg ATGDoc
	if err := report.ReadJSON(a.table(ATGJSON), &atg); err != nil {
		return err
	}
	labels := []string{"ATG in genome", "annotated CDS", "non-coding ATG (est.)"}
	values := []float64{
		float64(atg.ATG.Total),
		float64(atg.ATG.TotalCDS),
		float64(atg.ATG.EstimatedExtra),
	}
	return plot.Bar(a.figure(ATGFigure),
		"ATG occurrence vs annotation", "count", labels, values)
}

func (a *Analyzer) overviewFigure() error {
	var gs GenomeStatsDoc
	if err := report.ReadJSON(a.table(GenomeStatsJSON), &gs); err != nil {
		return err
	}
	labels := []string{"A", "T", "G", "C"}
	values := []float64{
		gs.Composition.A.Percent,
		gs.Composition.T.Percent,
		gs.Composition.G.Percent,
		gs.Composition.C.Percent,
	}
	return plot.Bar(a.figure(OverviewFigure),
		fmt.Sprintf("%s nucleotide composition", gs.Genome.ID),
		"% of genome", labels, values)
}

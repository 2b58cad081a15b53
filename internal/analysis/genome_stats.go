package analysis

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/unsaac-bioinfo/genostat/internal/extract"
	"github.com/unsaac-bioinfo/genostat/internal/report"
	"github.com/unsaac-bioinfo/genostat/internal/stats"
)

// GenomeStatsDoc is the genome-stats stage artifact.
type GenomeStatsDoc struct {
	Genome      GenomeInfo            `json:"genome"`
	Composition extract.Composition   `json:"nucleotide_composition"`
	Genes       FeatureStats          `json:"genes"`
	CDS         FeatureStats          `json:"cds"`
	CDSGC       stats.Bundle          `json:"cds_gc"`
	Density     extract.GeneDensity   `json:"gene_density"`
	Regions     extract.CodingRegions `json:"coding_regions"`
}

func (a *Analyzer) runGenomeStats(ctx context.Context) error {
	rec, err := a.loadRecord()
	if err != nil {
		return err
	}

	cds, err := extract.CDSRecords(rec)
	if err != nil {
		return err
	}
	genes, err := extract.GeneRecords(rec)
	if err != nil {
		return err
	}

	cdsSizes, err := stats.Describe(stats.Floats(extract.NTLengths(cds)))
	if err != nil {
		return fmt.Errorf("CDS sizes: %w", err)
	}
	geneLengths := make([]int, len(genes))
	for i, g := range genes {
		geneLengths[i] = g.Length
	}
	geneSizes, err := stats.Describe(stats.Floats(geneLengths))
	if err != nil {
		return fmt.Errorf("gene sizes: %w", err)
	}
	gcValues := make([]float64, len(cds))
	for i, r := range cds {
		gcValues[i] = r.GCPercent
	}
	cdsGC, err := stats.Describe(gcValues)
	if err != nil {
		return fmt.Errorf("CDS GC: %w", err)
	}

	doc := GenomeStatsDoc{
		Genome: GenomeInfo{
			ID:          rec.ID,
			Description: rec.Description,
			SizeBP:      rec.Length(),
			GCPercent:   extract.GCPercent(rec.Sequence),
		},
		Composition: extract.Compose(rec),
		Genes: FeatureStats{
			Total:   len(genes),
			Sizes:   geneSizes,
			Strands: extract.SplitByStrand(extract.GeneStrands(genes)),
		},
		CDS: FeatureStats{
			Total:   len(cds),
			Sizes:   cdsSizes,
			Strands: extract.SplitByStrand(extract.CDSStrands(cds)),
		},
		CDSGC:   cdsGC,
		Density: extract.Density(len(genes), rec.Length()),
		Regions: extract.Coding(cds, rec.Length()),
	}

	a.log.Info("genome statistics computed",
		zap.String("genome", rec.ID),
		zap.Int("size_bp", doc.Genome.SizeBP),
		zap.Int("genes", doc.Genes.Total),
		zap.Int("cds", doc.CDS.Total))

	if err := report.WriteJSON(a.table(GenomeStatsJSON), doc); err != nil {
		return err
	}
	if err := report.WriteCSV(a.table(GenomeStatsSummary), []string{"metric", "value"}, genomeSummaryRows(doc)); err != nil {
		return err
	}
	if err := report.WriteCSV(a.table(CDSDetailCSV), report.CDSHeader, report.CDSRows(cds)); err != nil {
		return err
	}

	sizeRows := make([][]string, len(cds))
	for i, r := range cds {
		sizeRows[i] = []string{r.LocusTag.Or(report.NAValue), report.Itoa(r.LengthNT)}
	}
	return report.WriteCSV(a.table(CDSSizesCSV), []string{"locus_tag", "length_nt"}, sizeRows)
}

func genomeSummaryRows(doc GenomeStatsDoc) [][]string {
	return [][]string{
		{"genome_id", doc.Genome.ID},
		{"genome_size_bp", report.Itoa(doc.Genome.SizeBP)},
		{"gc_content_pct", report.Ftoa(doc.Genome.GCPercent)},
		{"total_genes", report.Itoa(doc.Genes.Total)},
		{"total_cds", report.Itoa(doc.CDS.Total)},
		{"mean_gene_size_bp", report.Ftoa(doc.Genes.Sizes.Mean)},
		{"mean_cds_size_bp", report.Ftoa(doc.CDS.Sizes.Mean)},
		{"median_cds_size_bp", report.Ftoa(doc.CDS.Sizes.Median)},
		{"mean_cds_gc_pct", report.Ftoa(doc.CDSGC.Mean)},
		{"coding_pct", report.Ftoa(doc.Regions.CodingPercent)},
		{"non_coding_pct", report.Ftoa(doc.Regions.NonCodingPct)},
		{"genes_per_mb", report.Ftoa(doc.Density.GenesPerMB)},
		{"bp_per_gene", report.Ftoa(doc.Density.BPPerGene)},
		{"cds_strand_plus", report.Itoa(doc.CDS.Strands.Plus)},
		{"cds_strand_minus", report.Itoa(doc.CDS.Strands.Minus)},
		{"cds_strand_plus_pct", report.Ftoa(doc.CDS.Strands.PlusPct)},
	}
}

package analysis

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/unsaac-bioinfo/genostat/internal/extract"
	"github.com/unsaac-bioinfo/genostat/internal/report"
	"github.com/unsaac-bioinfo/genostat/internal/stats"
)

// extremeGeneCount is how many genes land in each extreme list.
const extremeGeneCount = 10

// BandSummary is one size band's share of the CDS population.
type BandSummary struct {
	Name    string  `json:"name"`
	Label   string  `json:"label"`
	Count   int     `json:"count"`
	Percent float64 `json:"pct"`
}

// CDSSummary is the compact CDS identity used in the extremes lists.
type CDSSummary struct {
	LocusTag string `json:"locus_tag"`
	Gene     string `json:"gene"`
	Product  string `json:"product"`
	LengthNT int    `json:"length_nt"`
	LengthAA int    `json:"length_aa"`
	Strand   string `json:"strand"`
}

// GeneDistDoc is the gene-distribution stage artifact.
type GeneDistDoc struct {
	GenomeID    string              `json:"genome_id"`
	TotalCDS    int                 `json:"total_cds"`
	NTStats     stats.Bundle        `json:"nt_stats"`
	AAStats     stats.Bundle        `json:"aa_stats"`
	Bands       []BandSummary       `json:"size_bands"`
	Outliers    stats.OutlierReport `json:"outliers"`
	Multiples   int                 `json:"multiple_of_3"`
	MultiplePct float64             `json:"multiple_of_3_pct"`
	Smallest    []CDSSummary        `json:"smallest_genes"`
	Largest     []CDSSummary        `json:"largest_genes"`
}

func (a *Analyzer) runGeneDistribution(ctx context.Context) error {
	rec, err := a.loadRecord()
	if err != nil {
		return err
	}
	cds, err := extract.CDSRecords(rec)
	if err != nil {
		return err
	}

	ntLengths := extract.NTLengths(cds)
	ntStats, err := stats.Describe(stats.Floats(ntLengths))
	if err != nil {
		return err
	}
	aaStats, err := stats.Describe(stats.Floats(extract.AALengths(cds)))
	if err != nil {
		return err
	}
	outliers, err := stats.Outliers(stats.Floats(ntLengths), a.cfg.OutlierMultiplier)
	if err != nil {
		return err
	}

	bands := stats.Categorize(ntLengths)
	summaries := make([]BandSummary, len(bands))
	for i, b := range bands {
		summaries[i] = BandSummary{
			Name:    b.Band.Name,
			Label:   b.Band.Label,
			Count:   b.Count,
			Percent: b.Percent,
		}
	}

	multiples, multiplePct := extract.MultipleOf3(ntLengths)
	bySize := sortedBySize(cds)
	smallest := summarize(bySize[:min(extremeGeneCount, len(bySize))])
	largest := summarize(tail(bySize, extremeGeneCount))

	doc := GeneDistDoc{
		GenomeID:    rec.ID,
		TotalCDS:    len(cds),
		NTStats:     ntStats,
		AAStats:     aaStats,
		Bands:       summaries,
		Outliers:    outliers,
		Multiples:   multiples,
		MultiplePct: multiplePct,
		Smallest:    smallest,
		Largest:     largest,
	}

	a.log.Info("gene size distribution computed",
		zap.Int("cds", len(cds)),
		zap.Float64("mean_nt", ntStats.Mean),
		zap.Int("outliers", outliers.Total))

	if err := report.WriteJSON(a.table(GeneDistJSON), doc); err != nil {
		return err
	}
	if err := report.WriteCSV(a.table(AllGenesCSV), report.CDSHeader, report.CDSRows(cds)); err != nil {
		return err
	}

	bandRows := make([][]string, len(summaries))
	for i, b := range summaries {
		bandRows[i] = []string{b.Name, b.Label, report.Itoa(b.Count), report.Ftoa(b.Percent)}
	}
	if err := report.WriteCSV(a.table(SizeCategoriesCSV),
		[]string{"category", "range", "count", "pct"}, bandRows); err != nil {
		return err
	}

	extremeHeader := []string{"kind", "locus_tag", "gene", "product", "length_nt", "length_aa", "strand"}
	var extremeRows [][]string
	for _, g := range smallest {
		extremeRows = append(extremeRows, extremeRow("smallest", g))
	}
	for _, g := range largest {
		extremeRows = append(extremeRows, extremeRow("largest", g))
	}
	return report.WriteCSV(a.table(ExtremeGenesCSV), extremeHeader, extremeRows)
}

func extremeRow(kind string, g CDSSummary) []string {
	return []string{
		kind, g.LocusTag, g.Gene, g.Product,
		report.Itoa(g.LengthNT), report.Itoa(g.LengthAA), g.Strand,
	}
}

// sortedBySize orders CDS records by nucleotide length ascending, keeping
// genome order among equals.
func sortedBySize(cds []extract.CDSRecord) []extract.CDSRecord {
	out := append([]extract.CDSRecord(nil), cds...)
	sort.SliceStable(out, func(i, j int) bool { return out[i].LengthNT < out[j].LengthNT })
	return out
}

func summarize(cds []extract.CDSRecord) []CDSSummary {
	out := make([]CDSSummary, len(cds))
	for i, r := range cds {
		out[i] = CDSSummary{
			LocusTag: r.LocusTag.Or(report.NAValue),
			Gene:     r.Gene.Or(report.NAValue),
			Product:  r.Product.Or(report.UnknownValue),
			LengthNT: r.LengthNT,
			LengthAA: r.LengthAA,
			Strand:   r.Strand.String(),
		}
	}
	return out
}

func tail(cds []extract.CDSRecord, n int) []extract.CDSRecord {
	if len(cds) <= n {
		return cds
	}
	return cds[len(cds)-n:]
}

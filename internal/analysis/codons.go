package analysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/unsaac-bioinfo/genostat/internal/codon"
	"github.com/unsaac-bioinfo/genostat/internal/extract"
	"github.com/unsaac-bioinfo/genostat/internal/report"
)

// ATGDoc is the atg stage artifact.
type ATGDoc struct {
	Genome GenomeInfo      `json:"genome"`
	ATG    codon.ATGReport `json:"atg"`
}

func (a *Analyzer) runATG(ctx context.Context) error {
	rec, err := a.loadRecord()
	if err != nil {
		return err
	}
	cds, err := extract.CDSRecords(rec)
	if err != nil {
		return err
	}

	doc := ATGDoc{
		Genome: GenomeInfo{ID: rec.ID, SizeBP: rec.Length()},
		ATG:    codon.ATG(rec, cds),
	}

	a.log.Info("ATG analysis computed",
		zap.Int("total_atg", doc.ATG.Total),
		zap.Float64("ratio_per_cds", doc.ATG.RatioPerCDS))

	if err := report.WriteJSON(a.table(ATGJSON), doc); err != nil {
		return err
	}
	rows := [][]string{
		{"genome_id", doc.Genome.ID},
		{"genome_size_bp", report.Itoa(doc.Genome.SizeBP)},
		{"total_atg", report.Itoa(doc.ATG.Total)},
		{"atg_density_per_kb", report.Ftoa(doc.ATG.DensityPerKB)},
		{"total_cds", report.Itoa(doc.ATG.TotalCDS)},
		{"ratio_atg_vs_cds", report.Ftoa(doc.ATG.RatioPerCDS)},
		{"atg_non_coding_estimated", report.Itoa(doc.ATG.EstimatedExtra)},
	}
	return report.WriteCSV(a.table(ATGSummaryCSV), []string{"metric", "value"}, rows)
}

// StopCodonsDoc is the stop-codons stage artifact. Genome usage counts
// every occurrence at any offset; CDS usage counts annotated terminal
// codons only.
type StopCodonsDoc struct {
	Genome      GenomeInfo             `json:"genome"`
	GenomeUsage map[string]codon.Usage `json:"genome_usage"`
	GenomeTotal int                    `json:"genome_total_stops"`
	CDSUsage    map[string]codon.Usage `json:"cds_usage"`
	CDSTotal    int                    `json:"cds_total"`
}

func (a *Analyzer) runStopCodons(ctx context.Context) error {
	rec, err := a.loadRecord()
	if err != nil {
		return err
	}

	genomeUsage, genomeTotal := codon.GenomeStopUsage(rec)
	cdsUsage, cdsTotal := codon.CDSStopUsage(rec)

	doc := StopCodonsDoc{
		Genome:      GenomeInfo{ID: rec.ID, SizeBP: rec.Length()},
		GenomeUsage: genomeUsage,
		GenomeTotal: genomeTotal,
		CDSUsage:    cdsUsage,
		CDSTotal:    cdsTotal,
	}

	a.log.Info("stop codon usage computed",
		zap.Int("genome_total", genomeTotal),
		zap.Int("cds_total", cdsTotal))

	if err := report.WriteJSON(a.table(StopCodonsJSON), doc); err != nil {
		return err
	}

	header := []string{"codon", "genome_total", "genome_density_per_kb", "genome_pct", "cds_total", "cds_pct"}
	rows := make([][]string, 0, len(codon.StopCodons))
	for _, c := range codon.StopCodons {
		g := genomeUsage[c]
		u := cdsUsage[c]
		rows = append(rows, []string{
			c,
			report.Itoa(g.Total), report.Ftoa(g.DensityPerKB), report.Ftoa(g.Percent),
			report.Itoa(u.Total), report.Ftoa(u.Percent),
		})
	}
	return report.WriteCSV(a.table(StopCodonsSummaryCSV), header, rows)
}

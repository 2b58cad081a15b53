package analysis

import (
	"context"

	"go.uber.org/zap"

	"github.com/unsaac-bioinfo/genostat/internal/extract"
	"github.com/unsaac-bioinfo/genostat/internal/report"
	"github.com/unsaac-bioinfo/genostat/internal/store"
)

func (a *Analyzer) runStore(ctx context.Context) error {
	rec, err := a.loadRecord()
	if err != nil {
		return err
	}
	cds, err := extract.CDSRecords(rec)
	if err != nil {
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

	st, err := store.Open(a.cfg.StorePath)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.WriteCDSRecords(rec.ID, cds); err != nil {
		return err
	}
	if err := st.WriteValidations(rec.ID, genomeVal.Metadata.ValidatedAt, "genome", genomeVal.Checks); err != nil {
		return err
	}
	if err := st.WriteValidations(rec.ID, codonVal.Metadata.ValidatedAt, "codons", codonVal.Checks); err != nil {
		return err
	}

	a.log.Info("results stored",
		zap.String("path", a.cfg.StorePath),
		zap.Int("cds_rows", len(cds)),
		zap.Int("validation_rows", len(genomeVal.Checks)+len(codonVal.Checks)))
	return nil
}

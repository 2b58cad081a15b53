package store

import (
	"context"
	"database/sql/driver"
	"fmt"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/unsaac-bioinfo/genostat/internal/extract"
	"github.com/unsaac-bioinfo/genostat/internal/validate"
)

// WriteCDSRecords replaces the stored CDS rows for a genome with the
// given records, batch-inserted through the Appender API.
func (s *Store) WriteCDSRecords(genomeID string, records []extract.CDSRecord) error {
	if _, err := s.db.Exec("DELETE FROM cds_records WHERE genome_id=?", genomeID); err != nil {
		return fmt.Errorf("clear cds records: %w", err)
	}
	if len(records) == 0 {
		return nil
	}

	appender, closeConn, err := s.appender("cds_records")
	if err != nil {
		return err
	}
	defer closeConn()
	defer appender.Close()

	for _, r := range records {
		if err := appender.AppendRow(
			genomeID,
			r.LocusTag.Or(""), r.Gene.Or(""), r.Product.Or(""),
			int64(r.Start), int64(r.End),
			int64(r.LengthNT), int64(r.LengthAA),
			r.Strand.String(), r.GCPercent,
		); err != nil {
			return fmt.Errorf("append cds record: %w", err)
		}
	}
	return appender.Flush()
}

// WriteValidations replaces the stored verdicts for a genome and scope
// ("genome" or "codons").
func (s *Store) WriteValidations(genomeID, validatedAt, scope string, checks []validate.Result) error {
	if _, err := s.db.Exec("DELETE FROM validations WHERE genome_id=? AND scope=?", genomeID, scope); err != nil {
		return fmt.Errorf("clear validations: %w", err)
	}
	if len(checks) == 0 {
		return nil
	}

	appender, closeConn, err := s.appender("validations")
	if err != nil {
		return err
	}
	defer closeConn()
	defer appender.Close()

	for _, c := range checks {
		if err := appender.AppendRow(
			genomeID, validatedAt, scope,
			c.Parameter, c.Observed, c.Status, c.Pass,
		); err != nil {
			return fmt.Errorf("append validation: %w", err)
		}
	}
	return appender.Flush()
}

func (s *Store) appender(table string) (*goduckdb.Appender, func() error, error) {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return nil, nil, fmt.Errorf("get connection: %w", err)
	}

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", table)
		return err
	}); err != nil {
		conn.Close()
		return nil, nil, fmt.Errorf("create appender: %w", err)
	}
	return appender, conn.Close, nil
}

// StoredCDS is one row of the cds_records table.
type StoredCDS struct {
	GenomeID  string
	LocusTag  string
	Gene      string
	Product   string
	Start     int64
	End       int64
	LengthNT  int64
	LengthAA  int64
	Strand    string
	GCPercent float64
}

// LookupCDS returns the stored rows for one locus tag.
func (s *Store) LookupCDS(genomeID, locusTag string) ([]StoredCDS, error) {
	rows, err := s.db.Query(`SELECT
		genome_id, locus_tag, gene, product, start, stop,
		length_nt, length_aa, strand, gc_pct
		FROM cds_records
		WHERE genome_id=? AND locus_tag=?`, genomeID, locusTag)
	if err != nil {
		return nil, fmt.Errorf("query cds: %w", err)
	}
	defer rows.Close()

	var out []StoredCDS
	for rows.Next() {
		var r StoredCDS
		if err := rows.Scan(
			&r.GenomeID, &r.LocusTag, &r.Gene, &r.Product, &r.Start, &r.End,
			&r.LengthNT, &r.LengthAA, &r.Strand, &r.GCPercent,
		); err != nil {
			return nil, fmt.Errorf("scan cds: %w", err)
		}
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate cds: %w", err)
	}
	return out, nil
}

// CountCDS returns how many CDS rows a genome has.
func (s *Store) CountCDS(genomeID string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM cds_records WHERE genome_id=?", genomeID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count cds: %w", err)
	}
	return n, nil
}

// FailedValidations returns the parameters that did not pass for a genome,
// across both scopes.
func (s *Store) FailedValidations(genomeID string) ([]string, error) {
	rows, err := s.db.Query(`SELECT parameter FROM validations
		WHERE genome_id=? AND NOT pass ORDER BY parameter`, genomeID)
	if err != nil {
		return nil, fmt.Errorf("query validations: %w", err)
	}
	defer rows.Close()

	var out []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan validation: %w", err)
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate validations: %w", err)
	}
	return out, nil
}

// Package store persists analysis results in DuckDB so runs can be
// queried and compared after the fact. Rows are append-only; re-running a
// genome replaces its rows.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection holding per-run analysis results.
type Store struct {
	db   *sql.DB
	path string
}

// Open opens or creates a DuckDB database at the given path.
// Use an empty string for an in-memory database.
func Open(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create store directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying *sql.DB for direct access.
func (s *Store) DB() *sql.DB {
	return s.db
}

// ensureSchema creates tables if they don't exist.
func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS cds_records (
		genome_id VARCHAR,
		locus_tag VARCHAR,
		gene VARCHAR,
		product VARCHAR,
		start BIGINT,
		stop BIGINT,
		length_nt BIGINT,
		length_aa BIGINT,
		strand VARCHAR,
		gc_pct DOUBLE
	)`); err != nil {
		return err
	}
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS validations (
		genome_id VARCHAR,
		validated_at VARCHAR,
		scope VARCHAR,
		parameter VARCHAR,
		observed DOUBLE,
		status VARCHAR,
		pass BOOLEAN
	)`)
	return err
}

// Package duckdb persists finished report runs in a DuckDB database so the
// per-chromosome counts stay queryable with SQL after the run.
package duckdb

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/marcboeker/go-duckdb"
)

// Store manages a DuckDB connection for persisting report results.
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
			return nil, fmt.Errorf("create database directory: %w", err)
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
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS chrom_feature_counts (
		run_at TIMESTAMP,
		chrom VARCHAR,
		chrom_length_bp BIGINT,
		n_gene BIGINT,
		n_exon_unique BIGINT,
		n_trna BIGINT,
		n_snorna BIGINT,
		gene_per_mb DOUBLE,
		exon_unique_per_mb DOUBLE,
		trna_per_mb DOUBLE,
		snorna_per_mb DOUBLE,
		PRIMARY KEY (run_at, chrom)
	)`); err != nil {
		return err
	}

	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS run_stats (
		run_at TIMESTAMP PRIMARY KEY,
		gff_path VARCHAR,
		dropped_seqids BIGINT,
		excluded_lines BIGINT
	)`)
	return err
}

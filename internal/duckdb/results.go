package duckdb

import (
	"context"
	"database/sql/driver"
	"fmt"
	"time"

	goduckdb "github.com/marcboeker/go-duckdb"

	"github.com/inodb/gffstats/internal/summary"
)

// RunStats carries the run-level totals stored alongside the counts.
type RunStats struct {
	GFFPath       string
	DroppedSeqids int
	ExcludedLines int64
}

// WriteRun batch-inserts one finished run: every summary row under the same
// run_at timestamp, plus a run_stats row. Rows are appended via the
// Appender API.
func (s *Store) WriteRun(runAt time.Time, rows []summary.Row, stats RunStats) error {
	conn, err := s.db.Conn(context.Background())
	if err != nil {
		return fmt.Errorf("get connection: %w", err)
	}
	defer conn.Close()

	var appender *goduckdb.Appender
	if err := conn.Raw(func(driverConn any) error {
		var err error
		appender, err = goduckdb.NewAppenderFromConn(driverConn.(driver.Conn), "", "chrom_feature_counts")
		return err
	}); err != nil {
		return fmt.Errorf("create appender: %w", err)
	}

	for _, r := range rows {
		if err := appender.AppendRow(
			runAt, r.Chrom, r.LengthBP,
			r.Genes, r.UniqueExons, r.TRNAs, r.SnoRNAs,
			r.GenePerMb, r.ExonPerMb, r.TRNAPerMb, r.SnoRNAPerMb,
		); err != nil {
			appender.Close()
			return fmt.Errorf("append row for %s: %w", r.Chrom, err)
		}
	}
	if err := appender.Close(); err != nil {
		return fmt.Errorf("flush appender: %w", err)
	}

	if _, err := s.db.Exec(
		`INSERT INTO run_stats (run_at, gff_path, dropped_seqids, excluded_lines) VALUES (?, ?, ?, ?)`,
		runAt, stats.GFFPath, stats.DroppedSeqids, stats.ExcludedLines,
	); err != nil {
		return fmt.Errorf("insert run stats: %w", err)
	}

	return nil
}

// CountRuns returns the number of stored runs.
func (s *Store) CountRuns() (int64, error) {
	var n int64
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM run_stats`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count runs: %w", err)
	}
	return n, nil
}

// RowsForRun reads back the summary rows stored for a run, in gene density
// descending order with chromosome ascending as tie-break, matching the
// report table order.
func (s *Store) RowsForRun(runAt time.Time) ([]summary.Row, error) {
	rows, err := s.db.Query(`SELECT chrom, chrom_length_bp, n_gene, n_exon_unique, n_trna, n_snorna,
		gene_per_mb, exon_unique_per_mb, trna_per_mb, snorna_per_mb
		FROM chrom_feature_counts WHERE run_at = ?
		ORDER BY gene_per_mb DESC, chrom ASC`, runAt)
	if err != nil {
		return nil, fmt.Errorf("query run rows: %w", err)
	}
	defer rows.Close()

	var out []summary.Row
	for rows.Next() {
		var r summary.Row
		if err := rows.Scan(&r.Chrom, &r.LengthBP, &r.Genes, &r.UniqueExons, &r.TRNAs, &r.SnoRNAs,
			&r.GenePerMb, &r.ExonPerMb, &r.TRNAPerMb, &r.SnoRNAPerMb); err != nil {
			return nil, fmt.Errorf("scan run row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

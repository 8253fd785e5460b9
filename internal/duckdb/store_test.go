package duckdb

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inodb/gffstats/internal/summary"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleRows() []summary.Row {
	return []summary.Row{
		{
			Chrom: "chrI", LengthBP: 230218,
			Genes: 117, UniqueExons: 130, TRNAs: 2, SnoRNAs: 3,
			GenePerMb: 508.214, ExonPerMb: 564.6822, TRNAPerMb: 8.6874, SnoRNAPerMb: 13.0311,
		},
		{
			Chrom: "chrII", LengthBP: 813184,
			Genes: 456, UniqueExons: 480, TRNAs: 13, SnoRNAs: 8,
			GenePerMb: 560.759, ExonPerMb: 590.2722, TRNAPerMb: 15.9866, SnoRNAPerMb: 9.8379,
		},
	}
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.NotNil(t, s.DB())
}

func TestWriteRunRoundTrip(t *testing.T) {
	s := openInMemory(t)

	runAt := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	stats := RunStats{GFFPath: "data/test.gff.gz", DroppedSeqids: 1, ExcludedLines: 3}
	require.NoError(t, s.WriteRun(runAt, sampleRows(), stats))

	n, err := s.CountRuns()
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	rows, err := s.RowsForRun(runAt)
	require.NoError(t, err)
	require.Len(t, rows, 2)

	// Read back in gene density descending order
	assert.Equal(t, "chrII", rows[0].Chrom)
	assert.Equal(t, "chrI", rows[1].Chrom)
	assert.Equal(t, int64(117), rows[1].Genes)
	assert.InDelta(t, 508.214, rows[1].GenePerMb, 1e-9)
}

func TestWriteRunMultipleRunsKeptApart(t *testing.T) {
	s := openInMemory(t)

	first := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)
	second := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.WriteRun(first, sampleRows(), RunStats{GFFPath: "a.gff"}))
	require.NoError(t, s.WriteRun(second, sampleRows()[:1], RunStats{GFFPath: "b.gff"}))

	n, err := s.CountRuns()
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	rows, err := s.RowsForRun(second)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestOpenCreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.duckdb")
	s, err := Open(path)
	require.NoError(t, err)
	defer s.Close()

	require.NoError(t, s.WriteRun(time.Now().UTC(), sampleRows(), RunStats{}))
}

// Package output provides the report sinks: summary table, dropped-seqid
// list and console report.
package output

import (
	"bufio"
	"io"
	"strconv"
	"strings"

	"github.com/inodb/gffstats/internal/summary"
)

// TableWriter writes the summary table in tab-delimited format.
type TableWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTableWriter creates a new tab-delimited summary table writer.
func NewTableWriter(w io.Writer) *TableWriter {
	return &TableWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"chrom",
			"chrom_length_bp",
			"n_gene",
			"n_exon_unique",
			"n_tRNA",
			"n_snoRNA",
			"gene_per_Mb",
			"exon_unique_per_Mb",
			"tRNA_per_Mb",
			"snoRNA_per_Mb",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TableWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single summary row.
func (tw *TableWriter) Write(r summary.Row) error {
	values := []string{
		r.Chrom,
		strconv.FormatInt(r.LengthBP, 10),
		strconv.FormatInt(r.Genes, 10),
		strconv.FormatInt(r.UniqueExons, 10),
		strconv.FormatInt(r.TRNAs, 10),
		strconv.FormatInt(r.SnoRNAs, 10),
		formatDensity(r.GenePerMb),
		formatDensity(r.ExonPerMb),
		formatDensity(r.TRNAPerMb),
		formatDensity(r.SnoRNAPerMb),
	}

	_, err := tw.w.WriteString(strings.Join(values, "\t") + "\n")
	return err
}

// WriteAll writes the header followed by every row.
func (tw *TableWriter) WriteAll(rows []summary.Row) error {
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, r := range rows {
		if err := tw.Write(r); err != nil {
			return err
		}
	}
	return tw.Flush()
}

// Flush flushes any buffered data to the underlying writer.
func (tw *TableWriter) Flush() error {
	return tw.w.Flush()
}

// formatDensity renders a density value as fixed 4-decimal point text.
// Values are already rounded by the summary builder.
func formatDensity(v float64) string {
	return strconv.FormatFloat(v, 'f', 4, 64)
}

package output

import (
	"fmt"
	"io"

	"github.com/inodb/gffstats/internal/summary"
)

// ConsoleReport holds the figures printed to the terminal at the end of a
// run: the dropped/excluded totals and the top of the summary table.
type ConsoleReport struct {
	DroppedSeqids int
	ExcludedLines int64
	Rows          []summary.Row
	Top           int
}

// WriteTo renders the report. The table section reuses the tab-delimited
// row format so numbers match the summary file exactly.
func (r ConsoleReport) WriteTo(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Number of dropped seqids: %d\n", r.DroppedSeqids); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Number of excluded feature lines: %d\n", r.ExcludedLines); err != nil {
		return err
	}

	top := r.Top
	if top <= 0 {
		top = 5
	}
	if top > len(r.Rows) {
		top = len(r.Rows)
	}

	if _, err := fmt.Fprintf(w, "\nTop %d rows of results:\n", top); err != nil {
		return err
	}

	tw := NewTableWriter(w)
	if err := tw.WriteHeader(); err != nil {
		return err
	}
	for _, row := range r.Rows[:top] {
		if err := tw.Write(row); err != nil {
			return err
		}
	}
	return tw.Flush()
}

package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsoleReport(t *testing.T) {
	var buf bytes.Buffer
	report := ConsoleReport{
		DroppedSeqids: 2,
		ExcludedLines: 7,
		Rows:          testRows,
		Top:           5,
	}
	require.NoError(t, report.WriteTo(&buf))

	out := buf.String()
	assert.Contains(t, out, "Number of dropped seqids: 2")
	assert.Contains(t, out, "Number of excluded feature lines: 7")
	// Top is capped at the number of rows available
	assert.Contains(t, out, "Top 2 rows of results:")
	assert.Contains(t, out, "chrI\t230218")
	assert.Contains(t, out, "chrII\t813184")
}

func TestConsoleReportTopLimitsRows(t *testing.T) {
	var buf bytes.Buffer
	report := ConsoleReport{
		Rows: testRows,
		Top:  1,
	}
	require.NoError(t, report.WriteTo(&buf))

	out := buf.String()
	assert.Contains(t, out, "Top 1 rows of results:")
	assert.Contains(t, out, "chrI\t")
	assert.NotContains(t, out, "chrII\t")
}

func TestConsoleReportDefaultTop(t *testing.T) {
	var buf bytes.Buffer
	report := ConsoleReport{Rows: testRows}
	require.NoError(t, report.WriteTo(&buf))

	// Zero Top falls back to 5, capped by available rows: two totals, a
	// blank line, the title, the header and both rows.
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 7)
}

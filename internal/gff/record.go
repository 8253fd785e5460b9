// Package gff provides GFF3 file parsing functionality.
package gff

// Record is a single GFF3 feature line, reduced to the fields this tool
// consumes. Coordinates are 1-based inclusive, as in the file.
type Record struct {
	Seqid  string
	Source string
	Type   string
	Start  int64
	End    int64
	Strand string
}

// RecordReader is the interface for readers that yield annotation records.
type RecordReader interface {
	// Next reads the next record.
	// Returns nil, nil when there are no more records.
	Next() (*Record, error)

	// Close closes the reader and releases resources.
	Close() error

	// LineNumber returns the current line number being processed.
	LineNumber() int
}

package gff

import (
	"bufio"
	"compress/gzip"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// ErrMalformedRecord marks a GFF3 line whose coordinate fields cannot be
// trusted. Callers treat it as fatal rather than skipping the line.
var ErrMalformedRecord = errors.New("malformed gff record")

// Parser reads feature records from a GFF3 file.
type Parser struct {
	reader     *bufio.Reader
	file       *os.File
	gzipReader *gzip.Reader
	lineNumber int
}

// NewParser creates a new GFF3 parser for the given file.
// Supports both plain and gzipped (.gff.gz) files, detected by magic bytes.
func NewParser(path string) (*Parser, error) {
	if path == "-" {
		return NewParserFromReader(os.Stdin), nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open gff file: %w", err)
	}

	p := &Parser{file: file}

	// Check for gzip magic bytes
	buf := make([]byte, 2)
	_, err = file.Read(buf)
	if err != nil && err != io.EOF {
		file.Close()
		return nil, fmt.Errorf("read gff file: %w", err)
	}

	// Seek back to beginning
	if _, err := file.Seek(0, 0); err != nil {
		file.Close()
		return nil, fmt.Errorf("seek gff file: %w", err)
	}

	// Check for gzip magic number (0x1f, 0x8b)
	if buf[0] == 0x1f && buf[1] == 0x8b {
		p.gzipReader, err = gzip.NewReader(file)
		if err != nil {
			file.Close()
			return nil, fmt.Errorf("create gzip reader: %w", err)
		}
		p.reader = bufio.NewReader(p.gzipReader)
	} else {
		p.reader = bufio.NewReader(file)
	}

	return p, nil
}

// NewParserFromReader creates a parser from an io.Reader (e.g., stdin).
func NewParserFromReader(r io.Reader) *Parser {
	return &Parser{reader: bufio.NewReader(r)}
}

// Next reads the next feature record from the GFF3 file.
// Comment lines, blank lines and lines with fewer than 9 fields are skipped.
// Returns nil, nil when there are no more records.
func (p *Parser) Next() (*Record, error) {
	for {
		line, err := p.reader.ReadString('\n')
		if err != nil {
			if err == io.EOF {
				if line == "" {
					return nil, nil
				}
				// Fall through to parse a final line without a newline.
			} else {
				return nil, fmt.Errorf("read gff line: %w", err)
			}
		}
		p.lineNumber++

		line = strings.TrimRight(line, "\r\n")
		if line == "" || strings.HasPrefix(line, "#") {
			if err == io.EOF {
				return nil, nil
			}
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 9 {
			if err == io.EOF {
				return nil, nil
			}
			continue
		}

		return p.parseFields(fields)
	}
}

// parseFields converts one tab-split GFF3 line into a Record.
func (p *Parser) parseFields(fields []string) (*Record, error) {
	start, err := strconv.ParseInt(fields[3], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid start %q: %w", p.lineNumber, fields[3], ErrMalformedRecord)
	}

	end, err := strconv.ParseInt(fields[4], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("line %d: invalid end %q: %w", p.lineNumber, fields[4], ErrMalformedRecord)
	}

	if start < 1 || end < start {
		return nil, fmt.Errorf("line %d: invalid interval %d-%d: %w", p.lineNumber, start, end, ErrMalformedRecord)
	}

	return &Record{
		Seqid:  fields[0],
		Source: fields[1],
		Type:   fields[2],
		Start:  start,
		End:    end,
		Strand: fields[6],
	}, nil
}

// LineNumber returns the current line number being processed.
func (p *Parser) LineNumber() int {
	return p.lineNumber
}

// Close closes the parser and underlying file.
func (p *Parser) Close() error {
	if p.gzipReader != nil {
		p.gzipReader.Close()
	}
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}

// Package reference loads the chromosome-length table.
package reference

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// ErrMalformed marks an unusable chromosome-length table.
var ErrMalformed = errors.New("malformed chromosome reference")

// Table maps chromosome identifier to length in base pairs. It is built once
// at startup and read-only afterwards.
type Table map[string]int64

// Has reports whether the chromosome is present in the table.
func (t Table) Has(chrom string) bool {
	_, ok := t[chrom]
	return ok
}

// Chromosomes returns the chromosome identifiers in ascending order.
func (t Table) Chromosomes() []string {
	chroms := make([]string, 0, len(t))
	for c := range t {
		chroms = append(chroms, c)
	}
	sort.Strings(chroms)
	return chroms
}

// Load reads a chromosome-length table from a tab-separated file with a
// "chrom\tlength_bp" header. Duplicate chromosomes keep the first occurrence;
// a warning is logged for the rest.
func Load(path string, logger *zap.Logger) (Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open chromosome sizes file: %w", err)
	}
	defer f.Close()

	t, err := Parse(f, logger)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return t, nil
}

// Parse reads the table content.
func Parse(r io.Reader, logger *zap.Logger) (Table, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	scanner := bufio.NewScanner(r)

	// Header row
	if !scanner.Scan() {
		if err := scanner.Err(); err != nil {
			return nil, fmt.Errorf("read header: %w", err)
		}
		return nil, fmt.Errorf("empty table: %w", ErrMalformed)
	}
	header := strings.Split(strings.TrimRight(scanner.Text(), "\r\n"), "\t")
	if len(header) < 2 || header[0] != "chrom" || header[1] != "length_bp" {
		return nil, fmt.Errorf("unexpected header %q: %w", scanner.Text(), ErrMalformed)
	}

	t := make(Table)
	lineNum := 1
	for scanner.Scan() {
		lineNum++
		line := strings.TrimRight(scanner.Text(), "\r\n")
		if line == "" {
			continue
		}

		fields := strings.Split(line, "\t")
		if len(fields) < 2 {
			return nil, fmt.Errorf("line %d: expected 2 columns, found %d: %w", lineNum, len(fields), ErrMalformed)
		}

		chrom := fields[0]
		length, err := strconv.ParseInt(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("line %d: invalid length %q: %w", lineNum, fields[1], ErrMalformed)
		}
		if length <= 0 {
			return nil, fmt.Errorf("line %d: non-positive length %d for %s: %w", lineNum, length, chrom, ErrMalformed)
		}

		if _, ok := t[chrom]; ok {
			logger.Warn("duplicate chromosome in reference table, keeping first occurrence",
				zap.String("chrom", chrom),
				zap.Int("line", lineNum))
			continue
		}
		t[chrom] = length
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan table: %w", err)
	}

	return t, nil
}

// Package summary joins aggregated counts with chromosome lengths and
// derives per-Mb densities.
package summary

import (
	"math"
	"sort"

	"github.com/inodb/gffstats/internal/count"
	"github.com/inodb/gffstats/internal/reference"
)

// Row is one summary-table line: raw counts plus densities per million
// base pairs, rounded to 4 decimal places.
type Row struct {
	Chrom        string
	LengthBP     int64
	Genes        int64
	UniqueExons  int64
	TRNAs        int64
	SnoRNAs      int64
	GenePerMb    float64
	ExonPerMb    float64
	TRNAPerMb    float64
	SnoRNAPerMb  float64
}

// CounterSource yields the finished counters for a chromosome.
// *count.Aggregator satisfies it.
type CounterSource interface {
	Counters(chrom string) count.Counters
}

// Build produces one row per reference chromosome, including all-zero rows
// for chromosomes with no observed features. Rows are ordered by gene
// density descending, with chromosome identifier ascending as the
// tie-break so equal densities sort deterministically.
func Build(ref reference.Table, src CounterSource) []Row {
	rows := make([]Row, 0, len(ref))
	for chrom, length := range ref {
		c := src.Counters(chrom)
		mb := float64(length) / 1e6
		rows = append(rows, Row{
			Chrom:       chrom,
			LengthBP:    length,
			Genes:       c.Genes,
			UniqueExons: c.UniqueExons,
			TRNAs:       c.TRNAs,
			SnoRNAs:     c.SnoRNAs,
			GenePerMb:   round4(float64(c.Genes) / mb),
			ExonPerMb:   round4(float64(c.UniqueExons) / mb),
			TRNAPerMb:   round4(float64(c.TRNAs) / mb),
			SnoRNAPerMb: round4(float64(c.SnoRNAs) / mb),
		})
	}

	sort.Slice(rows, func(i, j int) bool {
		if rows[i].GenePerMb != rows[j].GenePerMb {
			return rows[i].GenePerMb > rows[j].GenePerMb
		}
		return rows[i].Chrom < rows[j].Chrom
	})

	return rows
}

// round4 rounds half away from zero to 4 decimal places.
func round4(x float64) float64 {
	return math.Round(x*1e4) / 1e4
}

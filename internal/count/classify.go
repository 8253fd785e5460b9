// Package count implements feature classification and per-chromosome
// aggregation over a GFF3 record stream.
package count

import "github.com/inodb/gffstats/internal/gff"

// Class is the counting bucket a record belongs to.
type Class int

const (
	// Irrelevant records match none of the recognized feature types and
	// contribute to no counter.
	Irrelevant Class = iota
	Gene
	ExonLike
	TRNA
	SnoRNA
)

// String returns the class name for logging.
func (c Class) String() string {
	switch c {
	case Gene:
		return "gene"
	case ExonLike:
		return "exon-like"
	case TRNA:
		return "tRNA"
	case SnoRNA:
		return "snoRNA"
	default:
		return "irrelevant"
	}
}

// Classify maps a record's feature type to its counting bucket.
// Matching is case-sensitive and exact: "Gene" or "mRNA" are Irrelevant.
func Classify(r *gff.Record) Class {
	switch r.Type {
	case "gene":
		return Gene
	case "exon", "noncoding_exon", "CDS":
		return ExonLike
	case "tRNA":
		return TRNA
	case "snoRNA":
		return SnoRNA
	default:
		return Irrelevant
	}
}

package count

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/inodb/gffstats/internal/gff"
	"github.com/inodb/gffstats/internal/reference"
)

// span is the dedup identity for exon-like features, scoped per chromosome.
type span struct {
	start, end int64
	strand     string
}

// Counters holds the tallies for one chromosome.
type Counters struct {
	Genes       int64
	UniqueExons int64
	TRNAs       int64
	SnoRNAs     int64
}

// Aggregator consumes classified records and maintains per-chromosome
// counters, the exon-like dedup sets, and the dropped-seqid bookkeeping.
// It is built for a single pass; after ConsumeAll the accessors are
// read-only views of the finished run.
type Aggregator struct {
	ref           reference.Table
	counters      map[string]*Counters
	exonSpans     map[string]map[span]struct{}
	droppedSeqids map[string]struct{}
	excludedLines int64
	logger        *zap.Logger
}

// NewAggregator creates an aggregator over the given reference table.
// Every reference chromosome gets a counter entry up front, so chromosomes
// with no matching records still appear with zero counts.
func NewAggregator(ref reference.Table) *Aggregator {
	a := &Aggregator{
		ref:           ref,
		counters:      make(map[string]*Counters, len(ref)),
		exonSpans:     make(map[string]map[span]struct{}, len(ref)),
		droppedSeqids: make(map[string]struct{}),
		logger:        zap.NewNop(),
	}
	for chrom := range ref {
		a.counters[chrom] = &Counters{}
		a.exonSpans[chrom] = make(map[span]struct{})
	}
	return a
}

// SetLogger sets the logger for per-record diagnostics.
func (a *Aggregator) SetLogger(l *zap.Logger) {
	a.logger = l
}

// Add routes one record into the counters.
//
// A record whose seqid is absent from the reference table increments the
// excluded-line counter and is never classified. Gene/tRNA/snoRNA records
// are unconditional tallies; exon-like records count once per distinct
// (start, end, strand) triple per chromosome, however many of the
// contributing types produced the triple.
func (a *Aggregator) Add(r *gff.Record) {
	if !a.ref.Has(r.Seqid) {
		a.excludedLines++
		if _, seen := a.droppedSeqids[r.Seqid]; !seen {
			a.droppedSeqids[r.Seqid] = struct{}{}
			a.logger.Debug("seqid not in reference table, excluding its lines",
				zap.String("seqid", r.Seqid))
		}
		return
	}

	c := a.counters[r.Seqid]
	switch Classify(r) {
	case Gene:
		c.Genes++
	case TRNA:
		c.TRNAs++
	case SnoRNA:
		c.SnoRNAs++
	case ExonLike:
		k := span{r.Start, r.End, r.Strand}
		spans := a.exonSpans[r.Seqid]
		if _, dup := spans[k]; dup {
			return
		}
		spans[k] = struct{}{}
		c.UniqueExons++
	}
}

// ConsumeAll drains the reader through Add. A read error (including a
// malformed coordinate field) aborts the pass.
func (a *Aggregator) ConsumeAll(reader gff.RecordReader) error {
	for {
		r, err := reader.Next()
		if err != nil {
			return fmt.Errorf("process annotation stream: %w", err)
		}
		if r == nil {
			break
		}
		a.Add(r)
	}

	a.logger.Info("annotation pass complete",
		zap.Int("chromosomes", len(a.counters)),
		zap.Int("dropped_seqids", len(a.droppedSeqids)),
		zap.Int64("excluded_lines", a.excludedLines))
	return nil
}

// Counters returns the counters for one chromosome, or zeros for a
// chromosome the aggregator never saw in the reference.
func (a *Aggregator) Counters(chrom string) Counters {
	if c, ok := a.counters[chrom]; ok {
		return *c
	}
	return Counters{}
}

// DroppedSeqids returns the distinct unknown seqids in ascending order.
func (a *Aggregator) DroppedSeqids() []string {
	seqids := make([]string, 0, len(a.droppedSeqids))
	for s := range a.droppedSeqids {
		seqids = append(seqids, s)
	}
	sort.Strings(seqids)
	return seqids
}

// ExcludedLines returns the total number of lines skipped for unknown seqid.
// Repeated lines for the same seqid each count.
func (a *Aggregator) ExcludedLines() int64 {
	return a.excludedLines
}

package count

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/inodb/gffstats/internal/gff"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		featureType string
		want        Class
	}{
		{"gene", Gene},
		{"exon", ExonLike},
		{"noncoding_exon", ExonLike},
		{"CDS", ExonLike},
		{"tRNA", TRNA},
		{"snoRNA", SnoRNA},
		{"mRNA", Irrelevant},
		{"chromosome", Irrelevant},
		// Matching is case-sensitive
		{"Gene", Irrelevant},
		{"cds", Irrelevant},
		{"trna", Irrelevant},
		{"", Irrelevant},
	}

	for _, tt := range tests {
		t.Run(tt.featureType, func(t *testing.T) {
			r := &gff.Record{Type: tt.featureType}
			assert.Equal(t, tt.want, Classify(r))
		})
	}
}

func TestClassString(t *testing.T) {
	assert.Equal(t, "gene", Gene.String())
	assert.Equal(t, "exon-like", ExonLike.String())
	assert.Equal(t, "irrelevant", Irrelevant.String())
}

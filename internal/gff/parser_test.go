package gff

import (
	"compress/gzip"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleGFF = `##gff-version 3
# saccharomyces_cerevisiae
chrI	sgd	gene	335	649	.	+	.	ID=YAL069W
chrI	sgd	exon	335	649	.	+	.	Parent=YAL069W
chrI	sgd	CDS	335	649	.	+	0	Parent=YAL069W

chrII	sgd	tRNA	1000	1072	.	-	.	ID=tA(AGC)B
`

func readAll(t *testing.T, p *Parser) []*Record {
	t.Helper()
	var records []*Record
	for {
		r, err := p.Next()
		require.NoError(t, err)
		if r == nil {
			return records
		}
		records = append(records, r)
	}
}

func TestParserSkipsCommentsAndBlankLines(t *testing.T) {
	p := NewParserFromReader(strings.NewReader(sampleGFF))
	records := readAll(t, p)

	require.Len(t, records, 4)
	assert.Equal(t, "chrI", records[0].Seqid)
	assert.Equal(t, "gene", records[0].Type)
	assert.Equal(t, int64(335), records[0].Start)
	assert.Equal(t, int64(649), records[0].End)
	assert.Equal(t, "+", records[0].Strand)
	assert.Equal(t, "tRNA", records[3].Type)
	assert.Equal(t, "-", records[3].Strand)
}

func TestParserSkipsShortLines(t *testing.T) {
	input := "chrI\tsgd\tgene\n" +
		"chrI\tsgd\tgene\t1\t100\t.\t+\t.\tID=g1\n"
	p := NewParserFromReader(strings.NewReader(input))
	records := readAll(t, p)

	require.Len(t, records, 1)
	assert.Equal(t, "gene", records[0].Type)
}

func TestParserFinalLineWithoutNewline(t *testing.T) {
	input := "chrI\tsgd\tgene\t1\t100\t.\t+\t.\tID=g1"
	p := NewParserFromReader(strings.NewReader(input))
	records := readAll(t, p)

	require.Len(t, records, 1)
}

func TestParserMalformedStartIsFatal(t *testing.T) {
	input := "chrI\tsgd\tgene\tabc\t100\t.\t+\t.\tID=g1\n"
	p := NewParserFromReader(strings.NewReader(input))

	_, err := p.Next()
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRecord)
	assert.Contains(t, err.Error(), "line 1")
}

func TestParserInvertedIntervalIsFatal(t *testing.T) {
	input := "chrI\tsgd\tgene\t200\t100\t.\t+\t.\tID=g1\n"
	p := NewParserFromReader(strings.NewReader(input))

	_, err := p.Next()
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

func TestNewParserPlainFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gff")
	require.NoError(t, os.WriteFile(path, []byte(sampleGFF), 0644))

	p, err := NewParser(path)
	require.NoError(t, err)
	defer p.Close()

	records := readAll(t, p)
	assert.Len(t, records, 4)
}

func TestNewParserGzippedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.gff.gz")
	f, err := os.Create(path)
	require.NoError(t, err)
	gw := gzip.NewWriter(f)
	_, err = gw.Write([]byte(sampleGFF))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, f.Close())

	p, err := NewParser(path)
	require.NoError(t, err)
	defer p.Close()

	records := readAll(t, p)
	assert.Len(t, records, 4)
}

func TestNewParserMissingFile(t *testing.T) {
	_, err := NewParser(filepath.Join(t.TempDir(), "nope.gff"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "open gff file")
}

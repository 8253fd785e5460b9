package output

import (
	"bufio"
	"io"
)

// WriteDroppedSeqids writes one seqid per line. The caller supplies the
// seqids already sorted; this writer does not reorder them.
func WriteDroppedSeqids(w io.Writer, seqids []string) error {
	bw := bufio.NewWriter(w)
	for _, s := range seqids {
		if _, err := bw.WriteString(s + "\n"); err != nil {
			return err
		}
	}
	return bw.Flush()
}

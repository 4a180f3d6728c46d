// Package output provides tabular output formatters.
package output

import (
	"bufio"
	"fmt"
	"io"
	"math/big"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ARU-life-sciences/gffplot/internal/duckdb"
)

// TabWriter writes per-sequence summaries in tab-delimited format.
type TabWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewTabWriter creates a new tab-delimited writer.
func NewTabWriter(w io.Writer) *TabWriter {
	return &TabWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"#seq_id",
			"features",
			"max_end_bp",
			"forward",
			"reverse",
			"unknown",
		},
	}
}

// WriteHeader writes the header line.
func (tw *TabWriter) WriteHeader() error {
	_, err := tw.w.WriteString(strings.Join(tw.columns, "\t") + "\n")
	return err
}

// Write writes a single summary line.
func (tw *TabWriter) Write(s duckdb.SequenceSummary) error {
	fields := []string{
		s.SeqID,
		fmt.Sprint(s.Features),
		humanize.BigComma(new(big.Int).SetUint64(s.MaxEnd)),
		fmt.Sprint(s.Forward),
		fmt.Sprint(s.Reverse),
		fmt.Sprint(s.Unknown),
	}
	_, err := tw.w.WriteString(strings.Join(fields, "\t") + "\n")
	return err
}

// Flush flushes any buffered data.
func (tw *TabWriter) Flush() error {
	return tw.w.Flush()
}

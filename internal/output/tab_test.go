package output

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARU-life-sciences/gffplot/internal/duckdb"
)

func TestTabWriter_WriteHeader(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Flush())

	assert.Equal(t, "#seq_id\tfeatures\tmax_end_bp\tforward\treverse\tunknown\n", buf.String())
}

func TestTabWriter_Write(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)

	require.NoError(t, w.WriteHeader())
	require.NoError(t, w.Write(duckdb.SequenceSummary{
		SeqID: "chrM", Features: 37, MaxEnd: 16569, Forward: 28, Reverse: 9,
	}))
	require.NoError(t, w.Write(duckdb.SequenceSummary{
		SeqID: "contig_7", Features: 1, MaxEnd: 1234567, Unknown: 1,
	}))
	require.NoError(t, w.Write(duckdb.SequenceSummary{
		SeqID: "huge", Features: 1, MaxEnd: math.MaxUint64, Forward: 1,
	}))
	require.NoError(t, w.Flush())

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "chrM\t37\t16,569\t28\t9\t0", lines[1])
	assert.Equal(t, "contig_7\t1\t1,234,567\t0\t0\t1", lines[2])
	assert.Equal(t, "huge\t1\t18,446,744,073,709,551,615\t1\t0\t0", lines[3])
}

func TestTabWriter_NothingBeforeFlush(t *testing.T) {
	var buf bytes.Buffer
	w := NewTabWriter(&buf)
	require.NoError(t, w.WriteHeader())
	assert.Zero(t, buf.Len())
}

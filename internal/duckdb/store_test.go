package duckdb

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARU-life-sciences/gffplot/internal/annotation"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleStore() *annotation.Store {
	st := annotation.NewStore()
	st.Add("contig_2", annotation.Row{
		Label: "16S ribosomal RNA: partial", Source: "barrnap:0.9", FeatureType: "rRNA",
		Start: 10, End: 1200, Strand: annotation.StrandReverse,
	})
	st.Add("contig_1", annotation.Row{
		Label: "Description: 5S", Source: "cmscan", FeatureType: "ncRNA",
		Start: 1600, End: 1720, Strand: annotation.StrandForward,
	})
	st.Add("contig_1", annotation.Row{
		Label: "tRNA: GCA", Source: "tRNAscan-SE", FeatureType: "tRNA",
		Start: 100, End: 171, Strand: annotation.StrandUnknown,
	})
	return st
}

func TestOpenClose(t *testing.T) {
	s := openInMemory(t)
	assert.Equal(t, "", s.Path())
}

func TestOpen_CreatesDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "features.duckdb")
	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestWriteStoreAndFeatures(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteStore(sampleStore()))

	rows, err := s.Features("contig_1")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// insertion order is preserved, not position order
	assert.Equal(t, uint64(1600), rows[0].Start)
	assert.Equal(t, annotation.StrandForward, rows[0].Strand)
	assert.Equal(t, "tRNA: GCA", rows[1].Label)
	assert.Equal(t, annotation.StrandUnknown, rows[1].Strand)

	rows, err = s.Features("missing")
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestSummaries(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteStore(sampleStore()))

	sums, err := s.Summaries()
	require.NoError(t, err)
	require.Len(t, sums, 2)

	assert.Equal(t, SequenceSummary{SeqID: "contig_1", Features: 2, MaxEnd: 1720, Forward: 1, Unknown: 1}, sums[0])
	assert.Equal(t, SequenceSummary{SeqID: "contig_2", Features: 1, MaxEnd: 1200, Reverse: 1}, sums[1])
}

func TestWriteStore_PositionsAboveInt64(t *testing.T) {
	s := openInMemory(t)
	st := annotation.NewStore()
	st.Add("huge", annotation.Row{
		Label: "Description: far", Source: "cmscan", FeatureType: "ncRNA",
		Start: 1 << 63, End: math.MaxUint64, Strand: annotation.StrandForward,
	})
	require.NoError(t, s.WriteStore(st))

	rows, err := s.Features("huge")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, uint64(1<<63), rows[0].Start)
	assert.Equal(t, uint64(math.MaxUint64), rows[0].End)

	sums, err := s.Summaries()
	require.NoError(t, err)
	require.Len(t, sums, 1)
	assert.Equal(t, uint64(math.MaxUint64), sums[0].MaxEnd)
}

func TestWriteStore_Empty(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteStore(annotation.NewStore()))

	sums, err := s.Summaries()
	require.NoError(t, err)
	assert.Empty(t, sums)
}

func TestClearFeatures(t *testing.T) {
	s := openInMemory(t)
	require.NoError(t, s.WriteStore(sampleStore()))
	require.NoError(t, s.ClearFeatures())

	sums, err := s.Summaries()
	require.NoError(t, err)
	assert.Empty(t, sums)

	// rewriting after a clear must not collide on the primary key
	require.NoError(t, s.WriteStore(sampleStore()))
}

func TestRecordInput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "in.gff3")
	require.NoError(t, os.WriteFile(path, []byte("##gff-version 3\n"), 0o644))

	fp, err := StatFile(path)
	require.NoError(t, err)
	assert.Equal(t, int64(16), fp.Size)

	s := openInMemory(t)
	require.NoError(t, s.RecordInput(fp, 3))

	inputs, err := s.Inputs()
	require.NoError(t, err)
	require.Len(t, inputs, 1)
	assert.Equal(t, path, inputs[0].Path)
	assert.Equal(t, int64(16), inputs[0].Size)
	assert.Equal(t, int64(3), inputs[0].Features)
	assert.WithinDuration(t, fp.ModTime, inputs[0].ModTime, 1e6)
}

func TestStatFile_Missing(t *testing.T) {
	_, err := StatFile(filepath.Join(t.TempDir(), "nope"))
	assert.True(t, os.IsNotExist(err))
}

package document

import (
	"bytes"
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARU-life-sciences/gffplot/internal/annotation"
	"github.com/ARU-life-sciences/gffplot/internal/gff"
	"github.com/ARU-life-sciences/gffplot/internal/plot"
)

const twoContigs = `##gff-version 3
contig_1	cmscan	ncRNA	10	500	.	+	.	description=first
contig_2	cmscan	ncRNA	20	800	.	-	.	description=second
`

var baselineRe = regexp.MustCompile(`<line class='baseline' x1='35' y1='(\d+)' x2='1165' y2='(\d+)'`)

func renderGFF(t *testing.T, input string) string {
	t.Helper()
	store, err := annotation.Normalize(gff.NewParserFromReader(strings.NewReader(input)))
	require.NoError(t, err)

	d, err := plot.Layout(context.Background(), store, plot.DefaultConfig())
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, Write(&buf, d, plot.DefaultConfig()))
	return buf.String()
}

func TestWrite_EndToEnd(t *testing.T) {
	doc := renderGFF(t, twoContigs)

	assert.True(t, strings.HasPrefix(doc, "<!DOCTYPE html>"))
	assert.True(t, strings.HasSuffix(strings.TrimSpace(doc), "</html>"))
	assert.Equal(t, 1, strings.Count(doc, "<svg "))
	assert.Equal(t, 1, strings.Count(doc, "</svg>"))
	assert.Contains(t, doc, "<svg width='1200' height='400'")

	baselines := baselineRe.FindAllStringSubmatch(doc, -1)
	require.Len(t, baselines, 2)
	assert.Equal(t, "165", baselines[0][1])
	assert.Equal(t, "365", baselines[1][1])

	// the sequence read second is the top subplot
	top := strings.Index(doc, ">contig_2</text>")
	bottom := strings.Index(doc, ">contig_1</text>")
	require.NotEqual(t, -1, top)
	require.NotEqual(t, -1, bottom)
	assert.Less(t, top, bottom)
	assert.Contains(t, doc, "<text x='35' y='15' font-weight='bold' class='small' font-family='monospace'>contig_2</text>")
	assert.Contains(t, doc, "<text x='35' y='215' font-weight='bold' class='small' font-family='monospace'>contig_1</text>")
}

func TestWrite_Shell(t *testing.T) {
	doc := renderGFF(t, twoContigs)

	for _, want := range []string{
		"<title>Annotated Mito</title>",
		"<div id='tooltip'",
		"function showTooltip(evt, text)",
		"function hideTooltip()",
		"function addTextOnClick(evt, text)",
		"<g id='textGroup'></g>",
	} {
		assert.Contains(t, doc, want)
	}

	assert.Equal(t, 4, strings.Count(doc, "<marker "))
	cfg := plot.DefaultConfig()
	for i, s := range annotation.Sources() {
		assert.Contains(t, doc, "<marker id='"+s.MarkerID()+"'")
		assert.Contains(t, doc, "fill='"+cfg.Palette[i]+"'")
	}
	assert.Less(t, strings.Index(doc, "point_orf"), strings.Index(doc, "point_cmscan"))
	assert.Less(t, strings.Index(doc, "point_trna"), strings.Index(doc, "point_rrna"))
}

func TestRender_EscapesTitle(t *testing.T) {
	cfg := plot.DefaultConfig()
	cfg.Title = "mito <draft>"

	doc, err := Render(&plot.Diagram{Width: 1200}, cfg)
	require.NoError(t, err)
	assert.Contains(t, string(doc), "<title>mito &lt;draft&gt;</title>")
	assert.Contains(t, string(doc), "height='0'")
}

func TestRender_InvalidConfig(t *testing.T) {
	cfg := plot.DefaultConfig()
	cfg.Palette[0] = ""

	_, err := Render(&plot.Diagram{}, cfg)
	assert.ErrorContains(t, err, "palette")
}

type failingWriter struct{}

func (failingWriter) Write([]byte) (int, error) { return 0, errors.New("disk full") }

func TestWrite_PropagatesWriteError(t *testing.T) {
	err := Write(failingWriter{}, &plot.Diagram{Width: 1200}, plot.DefaultConfig())
	assert.ErrorContains(t, err, "disk full")
}

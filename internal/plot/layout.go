// Package plot lays out normalized annotations as SVG subplots, one per sequence.
package plot

import (
	"context"
	"encoding/json"
	"fmt"
	"html"
	"math"
	"runtime"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ARU-life-sciences/gffplot/internal/annotation"
)

// Subplot is the rendered markup for one sequence.
type Subplot struct {
	SeqID  string
	Index  int // 1-based; the baseline sits at SubplotHeight*Index - Margin
	Markup string
}

// Diagram is the full set of subplots in draw order.
type Diagram struct {
	Width    int
	Height   int
	Subplots []Subplot
}

// Markup concatenates the subplots in draw order.
func (d *Diagram) Markup() string {
	var b strings.Builder
	for _, s := range d.Subplots {
		b.WriteString(s.Markup)
	}
	return b.String()
}

// Option configures Layout.
type Option func(*layoutOptions)

type layoutOptions struct {
	jitter  Jitter
	workers int
	logger  *zap.Logger
}

// WithJitter replaces the random vertical jitter source.
func WithJitter(j Jitter) Option {
	return func(o *layoutOptions) { o.jitter = j }
}

// WithWorkers bounds how many sequences are laid out concurrently.
// Zero or less means runtime.GOMAXPROCS(0).
func WithWorkers(n int) Option {
	return func(o *layoutOptions) { o.workers = n }
}

// WithLogger sets the logger for debug messages.
func WithLogger(l *zap.Logger) Option {
	return func(o *layoutOptions) { o.logger = l }
}

// Layout renders every sequence in store as a subplot.
//
// Sequences are walked in reverse store order, so the store's first sequence
// gets the last subplot index and is drawn at the bottom. Subplots are
// returned top to bottom.
func Layout(ctx context.Context, store *annotation.Store, cfg Config, opts ...Option) (*Diagram, error) {
	o := layoutOptions{
		jitter: NewRandomJitter(),
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.workers <= 0 {
		o.workers = runtime.GOMAXPROCS(0)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid layout config: %w", err)
	}

	ids := store.SeqIDs()
	subplots := make([]Subplot, len(ids))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(o.workers)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			el := len(ids) - i
			sl := subplotLayout{cfg: cfg, jitter: o.jitter, el: el}
			markup, err := sl.render(id, store.Rows(id))
			if err != nil {
				return err
			}
			subplots[el-1] = Subplot{SeqID: id, Index: el, Markup: markup}
			o.logger.Debug("laid out sequence",
				zap.String("seq_id", id),
				zap.Int("subplot", el),
				zap.Int("features", len(store.Rows(id))))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Diagram{
		Width:    cfg.Width,
		Height:   cfg.SubplotHeight * len(ids),
		Subplots: subplots,
	}, nil
}

// subplotLayout draws one sequence band.
type subplotLayout struct {
	cfg    Config
	jitter Jitter
	el     int
}

func (sl subplotLayout) baseline() float64 {
	return float64(sl.cfg.SubplotHeight*sl.el - sl.cfg.Margin)
}

func (sl subplotLayout) render(seqID string, rows []annotation.Row) (string, error) {
	cfg := sl.cfg
	dataMin, dataMax, err := DataRange(seqID, rows)
	if err != nil {
		return "", err
	}

	x1 := float64(cfg.Margin)
	x2 := float64(cfg.Width - cfg.Margin)
	y := sl.baseline()

	var b strings.Builder

	fmt.Fprintf(&b, "\n<line class='baseline' x1='%s' y1='%s' x2='%s' y2='%s' stroke='black' style='stroke-width: 3;' />\n",
		coord(x1), coord(y), coord(x2), coord(y))

	yMid := y - float64(cfg.MidlineOffset)
	fmt.Fprintf(&b, "<line class='midline' x1='%s' y1='%s' x2='%s' y2='%s' stroke='black' stroke-dasharray='4' style='stroke-width: 1;' />\n",
		coord(x1), coord(yMid), coord(x2), coord(yMid))

	yLabel := y - float64(cfg.SubplotHeight) + float64(cfg.Margin+cfg.LabelOffset)
	fmt.Fprintf(&b, "<text x='%s' y='%s' font-weight='bold' class='small' font-family='monospace'>%s</text>\n",
		coord(x1), coord(yLabel), html.EscapeString(seqID))

	for _, r := range rows {
		sl.renderFeature(&b, r, dataMin, dataMax, x1, x2)
	}
	b.WriteString("\n")

	for i := 0; i < tickCount; i++ {
		value := math.Round(dataMax / float64(tickCount-1) * float64(i))
		x := x1
		if i != 0 {
			x = Scale(value, dataMin, dataMax, x1, x2)
		}
		fmt.Fprintf(&b, "<text class='small tick' x='%s' y='%s' text-anchor='middle' font-family='monospace'>%s bp</text>\n",
			coord(x), coord(y+tickLabelOffset), strconv.FormatFloat(value, 'f', -1, 64))
	}

	return b.String(), nil
}

func (sl subplotLayout) renderFeature(b *strings.Builder, r annotation.Row, dataMin, dataMax, vizMin, vizMax float64) {
	start := Scale(float64(r.Start), dataMin, dataMax, vizMin, vizMax)
	end := Scale(float64(r.End), dataMin, dataMax, vizMin, vizMax)
	if r.Strand == annotation.StrandReverse {
		start, end = end, start
	}

	marker := ""
	if src, ok := annotation.LookupSource(r.Source); ok {
		marker = fmt.Sprintf(" marker-end='url(#%s)'", src.MarkerID())
	}

	lo, hi := sl.jitterBand(r.Strand)
	y := sl.jitter.Between(lo, hi)

	hover := jsAttr(HoverText(r))
	click := jsAttr(r.Label)

	fmt.Fprintf(b, "<line class='feature' x1='%s' y1='%s' x2='%s' y2='%s' stroke='black' style='stroke-width: 3;'%s onmousemove='showTooltip(evt, %s);' onmouseout='hideTooltip();' onclick='addTextOnClick(evt, %s);'/>",
		coord(start), coord(y), coord(end), coord(y), marker, hover, click)
	// markers do not receive pointer events; the circle stands in for the arrowhead
	fmt.Fprintf(b, "<circle r='5' fill='transparent' cx='%s' cy='%s' onmousemove='showTooltip(evt, %s);' onmouseout='hideTooltip();'></circle>",
		coord(end), coord(y), hover)
}

// jitterBand returns the absolute y range a feature on strand may occupy.
func (sl subplotLayout) jitterBand(s annotation.Strand) (lo, hi float64) {
	y := sl.baseline()
	if s == annotation.StrandReverse {
		return y - float64(sl.cfg.reverseBandHigh()), y - reverseBandLow
	}
	return y - forwardBandHigh, y - forwardBandLow
}

// HoverText is the tooltip HTML for a row: the bold label followed by its range.
func HoverText(r annotation.Row) string {
	lines := strings.Split(r.Label, "\n")
	for i, l := range lines {
		lines[i] = html.EscapeString(l)
	}
	return fmt.Sprintf("<b>%s</b><br/>%s &rarr; %s bp",
		strings.Join(lines, "<br/>"), FormatBP(r.Start), FormatBP(r.End))
}

// jsAttr renders s as a JavaScript string literal escaped for a single-quoted
// attribute value.
func jsAttr(s string) string {
	lit, _ := json.Marshal(s)
	return html.EscapeString(string(lit))
}

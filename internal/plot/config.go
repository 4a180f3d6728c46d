package plot

import (
	"fmt"

	"github.com/ARU-life-sciences/gffplot/internal/annotation"
)

// Fixed offsets inside a subplot, in pixels above the baseline.
const (
	forwardBandLow  = 10
	forwardBandHigh = 70
	reverseBandLow  = 80
	reverseBandPad  = 25 // gap kept between the reverse band and the subplot top margin
	tickLabelOffset = 15 // tick labels sit below the baseline
	tickCount       = 6
)

// Config holds the drawing geometry. It is passed by value and never mutated
// by the layout engine.
type Config struct {
	Width         int
	SubplotHeight int
	Margin        int
	MidlineOffset int
	LabelOffset   int
	Palette       [4]string // one colour per annotation.Source, in Sources() order
	Title         string
}

// DefaultConfig returns the standard 1200px wide layout.
func DefaultConfig() Config {
	return Config{
		Width:         1200,
		SubplotHeight: 200,
		Margin:        35,
		MidlineOffset: 75,
		LabelOffset:   15,
		//        ORFs       cmscan     tRNA       rRNA
		Palette: [4]string{"#26547c", "#ef476f", "#ffd166", "#06d6a0"},
		Title:   "Annotated Mito",
	}
}

// Validate reports geometries that cannot be drawn.
func (c Config) Validate() error {
	if c.Margin < 0 {
		return fmt.Errorf("margin must not be negative, got %d", c.Margin)
	}
	if c.Width <= 2*c.Margin {
		return fmt.Errorf("width %d leaves no drawing range with margin %d", c.Width, c.Margin)
	}
	if c.reverseBandHigh() <= reverseBandLow {
		return fmt.Errorf("subplot height %d is too small for margin %d", c.SubplotHeight, c.Margin)
	}
	if c.MidlineOffset < 0 || c.MidlineOffset >= c.SubplotHeight-c.Margin {
		return fmt.Errorf("midline offset %d is outside the subplot", c.MidlineOffset)
	}
	for i, col := range c.Palette {
		if col == "" {
			return fmt.Errorf("palette colour %d (%s) is empty", i, annotation.Source(i))
		}
	}
	return nil
}

// reverseBandHigh is the top of the reverse-strand jitter band, above the baseline.
func (c Config) reverseBandHigh() int {
	return c.SubplotHeight - c.Margin - reverseBandPad
}

// Color returns the palette entry for a source.
func (c Config) Color(s annotation.Source) string {
	return c.Palette[int(s)]
}

package plot

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ARU-life-sciences/gffplot/internal/annotation"
)

func TestScale_Boundaries(t *testing.T) {
	ranges := []struct {
		dataMin, dataMax, vizMin, vizMax float64
	}{
		{0, 16569, 35, 1165},
		{0, 1, 0, 100},
		{100, 250000, 35, 1165},
		{-50, 50, 10, 20},
	}
	for _, r := range ranges {
		assert.Equal(t, r.vizMin, Scale(r.dataMin, r.dataMin, r.dataMax, r.vizMin, r.vizMax))
		assert.InDelta(t, r.vizMax, Scale(r.dataMax, r.dataMin, r.dataMax, r.vizMin, r.vizMax), 1e-9)
	}
}

func TestScale_Linear(t *testing.T) {
	assert.Equal(t, 600.0, Scale(500, 0, 1000, 35, 1165))
	assert.Equal(t, 50.0, Scale(5, 0, 10, 0, 100))
}

func TestScale_Unclamped(t *testing.T) {
	assert.Equal(t, 200.0, Scale(20, 0, 10, 0, 100))
	assert.Equal(t, -100.0, Scale(-10, 0, 10, 0, 100))
}

func TestFormatBP(t *testing.T) {
	tests := []struct {
		n    uint64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{16569, "16,569"},
		{1234567, "1,234,567"},
		{100000000, "100,000,000"},
		{1 << 63, "9,223,372,036,854,775,808"},
		{math.MaxUint64, "18,446,744,073,709,551,615"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatBP(tt.n))
	}
}

func TestDataRange(t *testing.T) {
	rows := []annotation.Row{{Start: 1, End: 900}, {Start: 10, End: 80}}
	lo, hi, err := DataRange("c1", rows)
	require.NoError(t, err)
	assert.Equal(t, 0.0, lo)
	assert.Equal(t, 900.0, hi)

	_, _, err = DataRange("empty", nil)
	var de *DegenerateRangeError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, "empty", de.SeqID)
}

func TestCoord(t *testing.T) {
	assert.Equal(t, "165", coord(165))
	assert.Equal(t, "35.5", coord(35.5))
	assert.Equal(t, "1.23", coord(1.23456))
}

func TestConfig_Validate(t *testing.T) {
	require.NoError(t, DefaultConfig().Validate())

	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"negative margin", func(c *Config) { c.Margin = -1 }},
		{"narrow width", func(c *Config) { c.Width = 70 }},
		{"short subplot", func(c *Config) { c.SubplotHeight = 120 }},
		{"midline outside", func(c *Config) { c.MidlineOffset = 500 }},
		{"empty colour", func(c *Config) { c.Palette[3] = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := DefaultConfig()
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

func TestConfig_CopiesDoNotSharePalette(t *testing.T) {
	a := DefaultConfig()
	b := a
	b.Palette[0] = "#000000"
	assert.Equal(t, "#26547c", a.Palette[0])
}

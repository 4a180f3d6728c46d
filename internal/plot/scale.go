package plot

import (
	"fmt"
	"math"
	"math/big"
	"strconv"

	"github.com/dustin/go-humanize"

	"github.com/ARU-life-sciences/gffplot/internal/annotation"
)

// Scale maps x from [dataMin, dataMax] onto [vizMin, vizMax].
// Values outside the data range land outside the drawing range; the caller
// must ensure dataMax > dataMin.
func Scale(x, dataMin, dataMax, vizMin, vizMax float64) float64 {
	return (vizMax-vizMin)*((x-dataMin)/(dataMax-dataMin)) + vizMin
}

// DegenerateRangeError is returned when a sequence's data range is empty.
type DegenerateRangeError struct {
	SeqID string
	Min   uint64
	Max   uint64
}

func (e *DegenerateRangeError) Error() string {
	return fmt.Sprintf("sequence %q: cannot scale degenerate range [%d, %d]", e.SeqID, e.Min, e.Max)
}

// DataRange returns the x data range for a sequence: zero to the largest end
// coordinate of any of its rows.
func DataRange(seqID string, rows []annotation.Row) (lo, hi float64, err error) {
	end := annotation.MaxEnd(rows)
	if end == 0 {
		return 0, 0, &DegenerateRangeError{SeqID: seqID, Min: 0, Max: end}
	}
	return 0, float64(end), nil
}

// FormatBP renders a base-pair count with thousands separators, e.g. 1,234,567.
func FormatBP(n uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(n))
}

// coord formats a pixel coordinate, trimmed to two decimals.
func coord(f float64) string {
	return strconv.FormatFloat(math.Round(f*100)/100, 'f', -1, 64)
}

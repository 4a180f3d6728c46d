package plot

import "math/rand"

// Jitter supplies the vertical offset of each drawn feature.
// Implementations must be safe for concurrent use.
type Jitter interface {
	// Between returns a value in [lo, hi].
	Between(lo, hi float64) float64
}

type randomJitter struct{}

// NewRandomJitter returns an unseeded uniform jitter source.
func NewRandomJitter() Jitter {
	return randomJitter{}
}

func (randomJitter) Between(lo, hi float64) float64 {
	return lo + rand.Float64()*(hi-lo)
}

package ga

import (
	"math/rand"
)

// Rand is the uniform random source consumed by every stochastic operator.
type Rand interface {
	// Int returns a uniform integer in [lo, hi).
	Int(lo, hi int) int
	// Float64 returns a uniform float in [0, 1).
	Float64() float64
}

// SeededRand is a Rand backed by math/rand with an explicit seed
type SeededRand struct {
	rng *rand.Rand
}

// NewRand creates a deterministic random source
func NewRand(seed int64) *SeededRand {
	return &SeededRand{rng: rand.New(rand.NewSource(seed))}
}

// Int returns a uniform integer in [lo, hi). It returns lo when hi <= lo.
func (s *SeededRand) Int(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + s.rng.Intn(hi-lo)
}

// Float64 returns a uniform float in [0, 1)
func (s *SeededRand) Float64() float64 {
	return s.rng.Float64()
}

// Float64Range returns a uniform float in [lo, hi)
func Float64Range(r Rand, lo, hi float64) float64 {
	return lo + r.Float64()*(hi-lo)
}

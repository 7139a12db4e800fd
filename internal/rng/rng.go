// Package rng provides the random capability used by the simulator.
package rng

import (
	"math/rand"
	"time"
)

// Source supplies uniform reals and integer ranges.
type Source interface {
	// Float64 returns a uniform value in [0, 1).
	Float64() float64
	// IntRange returns a uniform value in [lo, hi). Callers guarantee lo < hi.
	IntRange(lo, hi int) int
}

// Choose returns a uniformly selected element of items. items must not be empty.
func Choose[T any](src Source, items []T) T {
	return items[src.IntRange(0, len(items))]
}

// Rand is a Source backed by math/rand.
type Rand struct {
	rnd *rand.Rand
}

// New returns a Rand seeded with the current time.
func New() *Rand {
	return NewSeeded(time.Now().UnixNano())
}

// NewSeeded returns a Rand with a fixed seed.
func NewSeeded(seed int64) *Rand {
	return &Rand{rnd: rand.New(rand.NewSource(seed))}
}

// Float64 implements Source.
func (r *Rand) Float64() float64 {
	return r.rnd.Float64()
}

// IntRange implements Source.
func (r *Rand) IntRange(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	return lo + r.rnd.Intn(hi-lo)
}

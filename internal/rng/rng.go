// Package rng provides the randomness abstraction used by question
// generation, boss selection and loot rolls.
//
// Every consumer takes a Source explicitly instead of reaching for a
// process-wide generator, so tests can script the exact draws.
package rng

import (
	"math/rand/v2"
	"time"
)

//go:generate go tool mockgen -destination=mocks/mock_source.go -package=mocks . Source

// Source yields uniform floats in [0, 1).
//
// Implementations are not required to be safe for concurrent use.
type Source interface {
	Float64() float64
}

// PCG is the default Source backed by math/rand/v2.
type PCG struct {
	r *rand.Rand
}

// New returns a PCG source. A zero seed derives one from the clock.
func New(seed uint64) *PCG {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &PCG{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// Float64 implements Source.
func (p *PCG) Float64() float64 {
	return p.r.Float64()
}

// IntRange returns an integer uniformly drawn from [lo, hi].
// Draws outside [0, 1) coming from a misbehaving source are clamped into range.
func IntRange(src Source, lo, hi int) int {
	if hi <= lo {
		return lo
	}
	n := int(src.Float64() * float64(hi-lo+1))
	n = max(0, min(n, hi-lo))
	return lo + n
}

// Pick returns a uniformly chosen element of items.
// It consumes exactly one draw, even for a single item, so seeded
// sequences stay aligned whatever the slice length.
// Panics on an empty slice.
func Pick[T any](src Source, items []T) T {
	if len(items) == 0 {
		panic("rng: Pick called with no items")
	}
	i := int(src.Float64() * float64(len(items)))
	return items[max(0, min(i, len(items)-1))]
}

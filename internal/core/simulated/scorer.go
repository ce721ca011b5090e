// Package simulated is the single source of synthetic confidence values.
// Nothing outside this package draws random numbers; the deterministic pipeline
// receives a Scorer and never mixes these values into its own calculations.
package simulated

import (
	"math/rand/v2"
	"sync"
)

// Scorer returns a value in the closed range [lo, hi].
type Scorer interface {
	Between(lo, hi int) int
}

type randomScorer struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandom returns a Scorer backed by a process-seeded generator.
func NewRandom() Scorer {
	return &randomScorer{rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}
}

// NewSeeded returns a reproducible Scorer.
func NewSeeded(seed uint64) Scorer {
	return &randomScorer{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (s *randomScorer) Between(lo, hi int) int {
	if hi <= lo {
		return lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.IntN(hi-lo+1)
}

// Fixed always returns v clamped into the requested range.
type Fixed int

func (f Fixed) Between(lo, hi int) int {
	v := int(f)
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

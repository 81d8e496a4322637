// Package decor draws decorative numbers: discount badges and rating counts
// that are shown to shoppers but carry no business authority.
//
// Views take a Source instead of calling a global generator so tests can pin
// the values:
//
//	src := decor.New(config.DecorSeed())       // production: seeded or random
//	src := decor.Fixed(10)                      // tests: always 10 (clamped)
//	pct := src.Between(5, 24)
package decor

import (
	"sync"

	"github.com/brianvoe/gofakeit/v7"
)

// Source yields an integer in the inclusive range [lo, hi].
type Source interface {
	Between(lo, hi int) int
}

// Random is a Source backed by a gofakeit PCG generator.
type Random struct {
	mu    sync.Mutex
	faker *gofakeit.Faker
}

// New returns a Random source. Seed 0 picks a random seed; any other seed
// makes the sequence reproducible.
func New(seed uint64) *Random {
	return &Random{faker: gofakeit.New(seed)}
}

func (r *Random) Between(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.faker.IntRange(lo, hi)
}

// Fixed always yields its own value, clamped into the requested range.
type Fixed int

func (f Fixed) Between(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	return clamp(int(f), lo, hi)
}

// Sequence replays values in order and then repeats the last one.
// Each value is clamped into the requested range.
type Sequence struct {
	mu     sync.Mutex
	values []int
	next   int
}

func NewSequence(values ...int) *Sequence {
	return &Sequence{values: values}
}

func (s *Sequence) Between(lo, hi int) int {
	if hi < lo {
		lo, hi = hi, lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.values) == 0 {
		return lo
	}
	v := s.values[s.next]
	if s.next < len(s.values)-1 {
		s.next++
	}
	return clamp(v, lo, hi)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

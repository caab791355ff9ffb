// Package rng provides the seedable random source shared by every map generator.
package rng

import (
	"math/rand"
)

// Source is a seeded pseudo-random generator. Every draw advances the shared
// sequence, so the order and count of calls is part of a generator's output.
// A Source is not safe for concurrent use.
type Source struct {
	seed int64
	rand *rand.Rand
}

// New creates a Source seeded with seed.
func New(seed int64) *Source {
	return &Source{
		seed: seed,
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Seed returns the seed the source was created with.
func (s *Source) Seed() int64 {
	return s.seed
}

// Reseed restarts the sequence from seed.
func (s *Source) Reseed(seed int64) {
	s.seed = seed
	s.rand = rand.New(rand.NewSource(seed))
}

// RandomRange returns a value in [min, maxExclusive).
// When the range is empty min is returned without consuming a draw.
func (s *Source) RandomRange(min, maxExclusive int) int {
	if maxExclusive <= min {
		return min
	}
	return min + s.rand.Intn(maxExclusive-min)
}

// Intn returns a value in [0, n). n <= 0 returns 0.
func (s *Source) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return s.rand.Intn(n)
}

// Percent rolls a d100, returning a value in [1, 100].
func (s *Source) Percent() int {
	return 1 + s.rand.Intn(100)
}

// Rolld100 reports whether a d100 roll lands at or under chance.
func (s *Source) Rolld100(chance int) bool {
	return s.Percent() <= chance
}

// Bool returns a fair coin flip.
func (s *Source) Bool() bool {
	return s.rand.Intn(2) == 0
}

// Shuffle randomizes the order of n elements using swap.
func (s *Source) Shuffle(n int, swap func(i, j int)) {
	s.rand.Shuffle(n, swap)
}

// Pick returns a uniformly chosen element of items. It panics on an empty slice.
func Pick[T any](s *Source, items []T) T {
	return items[s.Intn(len(items))]
}

package rng

import "math/rand"

// Generator provides a simple random number
type Generator interface {
	// Intn will return a random number up to but not including n
	Intn(n int) int
}

// Shuffle performs a Fisher-Yates shuffle of n elements using gen
func Shuffle(gen Generator, n int, swap func(i, j int)) {
	for j := n - 1; j > 0; j-- {
		swap(gen.Intn(j+1), j)
	}
}

// Seeded is a deterministic generator
// This should only be used by tests
type Seeded struct {
	r *rand.Rand
}

// NewSeeded returns a generator that always produces the same sequence for seed
func NewSeeded(seed int64) *Seeded {
	return &Seeded{r: rand.New(rand.NewSource(seed))} // nolint:gosec
}

// Intn returns a random number from 0 <= x < n
func (s *Seeded) Intn(n int) int {
	return s.r.Intn(n)
}

package sampler

import (
	"math/rand"

	"golang.org/x/exp/slices"
)

// Sampler draws reproducible random samples without replacement. The same seed
// and input values always produce the same sample.
type Sampler struct {
	rand *rand.Rand
}

func New(seed int64) *Sampler {
	return &Sampler{
		rand: rand.New(rand.NewSource(seed)),
	}
}

// Sample returns n values drawn without replacement. The input is sorted
// before shuffling so the result does not depend on the caller's ordering.
// If n >= len(values) all values are returned (sorted).
func (s *Sampler) Sample(values []string, n int) []string {
	sorted := slices.Clone(values)
	slices.Sort(sorted)

	if n >= len(sorted) {
		return sorted
	}

	s.rand.Shuffle(len(sorted), func(i, j int) {
		sorted[i], sorted[j] = sorted[j], sorted[i]
	})
	return sorted[:n]
}

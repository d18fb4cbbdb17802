package sampler

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func testValues(n int) []string {
	values := make([]string, n)
	for i := range values {
		values[i] = fmt.Sprintf("%d", 100+i)
	}
	return values
}

func TestSampleIsReproducible(t *testing.T) {
	values := testValues(1000)

	first := New(42).Sample(values, 50)
	second := New(42).Sample(values, 50)

	assert.Equal(t, first, second)
}

func TestSampleIsInputOrderIndependent(t *testing.T) {
	values := testValues(100)
	reversed := make([]string, len(values))
	for i, v := range values {
		reversed[len(values)-1-i] = v
	}

	assert.Equal(t, New(42).Sample(values, 10), New(42).Sample(reversed, 10))
}

func TestSampleWithoutReplacement(t *testing.T) {
	sample := New(42).Sample(testValues(100), 30)

	assert.Len(t, sample, 30)
	seen := make(map[string]struct{})
	for _, v := range sample {
		_, dup := seen[v]
		assert.False(t, dup, "value %s sampled twice", v)
		seen[v] = struct{}{}
	}
}

func TestSampleLargerThanPopulation(t *testing.T) {
	values := []string{"3", "1", "2"}

	sample := New(42).Sample(values, 10)
	assert.Equal(t, []string{"1", "2", "3"}, sample)
	// the input is not mutated
	assert.Equal(t, []string{"3", "1", "2"}, values)
}

func TestDifferentSeedsDiffer(t *testing.T) {
	values := testValues(1000)

	assert.NotEqual(t, New(1).Sample(values, 50), New(2).Sample(values, 50))
}

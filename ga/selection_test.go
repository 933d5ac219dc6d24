package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSampleParents_SingleNonZero(t *testing.T) {
	pop := []*Agent{{Score: 1}, {Score: 2}, {Score: 3}}
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < 100; i++ {
		a, b := SampleParents(rng, pop, []float64{0, 1, 0})
		assert.Same(t, pop[1], a)
		assert.Same(t, pop[1], b)
	}
}

func TestSampleParents_FollowsProbabilities(t *testing.T) {
	pop := []*Agent{{}, {}, {}}
	probs := []float64{0.2, 0.8, 0}
	rng := rand.New(rand.NewSource(42))

	counts := map[*Agent]int{}
	const draws = 10000
	for i := 0; i < draws/2; i++ {
		a, b := SampleParents(rng, pop, probs)
		counts[a]++
		counts[b]++
	}
	assert.Zero(t, counts[pop[2]])
	assert.InDelta(t, 0.2, float64(counts[pop[0]])/draws, 0.03)
	assert.InDelta(t, 0.8, float64(counts[pop[1]])/draws, 0.03)
}

func TestSampleIndex_ShortTotalFallsBackToLastNonZero(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 200; i++ {
		idx := sampleIndex(rng, []float64{0.0, 1e-9, 0})
		assert.Equal(t, 1, idx)
	}
}

package ga

import "math/rand"

// SampleParents draws two parents independently, with replacement, weighted by probabilities.
// Both draws may return the same agent; cloning plus mutation is a valid outcome.
func SampleParents(rng *rand.Rand, population []*Agent, probabilities []float64) (*Agent, *Agent) {
	a := population[sampleIndex(rng, probabilities)]
	b := population[sampleIndex(rng, probabilities)]
	return a, b
}

// sampleIndex picks an index by inverse CDF.
func sampleIndex(rng *rand.Rand, probabilities []float64) int {
	u := rng.Float64()
	cumulative := 0.0
	last := 0
	for i, p := range probabilities {
		if p <= 0 {
			continue
		}
		cumulative += p
		last = i
		if u < cumulative {
			return i
		}
	}
	// Rounding can leave the total a hair under 1.
	return last
}

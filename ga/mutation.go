package ga

import "math/rand"

// Mutator adds Gaussian noise to a random subset of weights.
type Mutator struct {
	Rate  float64 // Probability that a single weight is perturbed
	Power float64 // Standard deviation of the noise
}

// Mutate returns a perturbed copy of ws; ws itself is left untouched.
func (m Mutator) Mutate(rng *rand.Rand, ws WeightSet) WeightSet {
	out := ws.Clone()
	for _, w := range out {
		rows, cols := w.Dims()
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if rng.Float64() < m.Rate {
					w.Set(r, c, w.At(r, c)+rng.NormFloat64()*m.Power)
				}
			}
		}
	}
	return out
}

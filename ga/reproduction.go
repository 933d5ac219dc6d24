package ga

import (
	"fmt"
	"math/rand"
)

// Reproduction builds the next generation's weights from the current population.
// It keeps no state between calls; all randomness comes from the rng passed in.
type Reproduction struct {
	Scorer    Scorer
	Crossover Crossover
	Mutator   Mutator
}

// NewReproduction wires the operators named in the config.
func NewReproduction(fitness FitnessConfig, repro ReproductionConfig) (*Reproduction, error) {
	scorer, err := NewScorer(fitness)
	if err != nil {
		return nil, err
	}
	crossover, err := NewCrossover(repro.Crossover)
	if err != nil {
		return nil, err
	}
	return &Reproduction{
		Scorer:    scorer,
		Crossover: crossover,
		Mutator:   Mutator{Rate: repro.MutationRate, Power: repro.MutationPower},
	}, nil
}

// Repopulate returns len(population) weight sets: the survivors of culling,
// ranked by score, followed by numOffspring mutated children.
// Callers hand them back to agents by position; which agent receives which
// set carries no meaning.
func (r *Reproduction) Repopulate(rng *rand.Rand, population []*Agent, numOffspring int) ([]WeightSet, error) {
	if len(population) == 0 {
		return nil, fmt.Errorf("%w: population is empty", ErrConfiguration)
	}
	if numOffspring < 0 || numOffspring > len(population) {
		return nil, fmt.Errorf("%w: num_offspring %d must be within [0, %d]", ErrConfiguration, numOffspring, len(population))
	}

	// 1-2. Fitness and selection probabilities
	probabilities := Softmax(fitnesses(r.Scorer, population))

	// 3. Offspring
	children := make([]WeightSet, 0, numOffspring)
	for i := 0; i < numOffspring; i++ {
		parentA, parentB := SampleParents(rng, population, probabilities)
		child, err := r.Crossover.Combine(rng, parentA.Brain.Weights(), parentB.Brain.Weights())
		if err != nil {
			return nil, fmt.Errorf("crossover for child %d: %w", i, err)
		}
		children = append(children, r.Mutator.Mutate(rng, child))
	}

	// 4. Survivors
	survivors, err := Cull(population, len(population)-numOffspring)
	if err != nil {
		return nil, err
	}

	// 5. Survivors first, then children
	return append(survivors, children...), nil
}

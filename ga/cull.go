package ga

import (
	"fmt"
	"sort"
)

// Cull ranks the population by raw score (descending, ties in population order)
// and returns the weights of the top numSurvivors agents.
// The returned sets are the agents' own, not copies.
func Cull(population []*Agent, numSurvivors int) ([]WeightSet, error) {
	if numSurvivors < 0 || numSurvivors > len(population) {
		return nil, fmt.Errorf("%w: cannot keep %d survivors out of %d agents", ErrConfiguration, numSurvivors, len(population))
	}

	ranked := make([]*Agent, len(population))
	copy(ranked, population)
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})

	survivors := make([]WeightSet, 0, numSurvivors)
	for _, a := range ranked[:numSurvivors] {
		survivors = append(survivors, a.Brain.Weights())
	}
	return survivors, nil
}

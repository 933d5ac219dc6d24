package ga

import (
	"fmt"
	"math/rand"
	"strings"

	"gonum.org/v1/gonum/mat"
)

// Crossover combines two shape-compatible parents into one child.
// The child never aliases parent storage.
type Crossover interface {
	Combine(rng *rand.Rand, a, b WeightSet) (WeightSet, error)
}

// UniformCrossover picks every weight independently from either parent with p=0.5.
// Draws run matrix by matrix, row-major inside each matrix.
type UniformCrossover struct{}

// Combine implements Crossover.
func (UniformCrossover) Combine(rng *rand.Rand, a, b WeightSet) (WeightSet, error) {
	if err := checkCompatible(a, b); err != nil {
		return nil, err
	}
	child := make(WeightSet, len(a))
	for i := range a {
		rows, cols := a[i].Dims()
		m := mat.NewDense(rows, cols, nil)
		for r := 0; r < rows; r++ {
			for c := 0; c < cols; c++ {
				if rng.Float64() < 0.5 {
					m.Set(r, c, a[i].At(r, c))
				} else {
					m.Set(r, c, b[i].At(r, c))
				}
			}
		}
		child[i] = m
	}
	return child, nil
}

// LayerCrossover copies each whole matrix from one parent, one coin per layer.
type LayerCrossover struct{}

// Combine implements Crossover.
func (LayerCrossover) Combine(rng *rand.Rand, a, b WeightSet) (WeightSet, error) {
	if err := checkCompatible(a, b); err != nil {
		return nil, err
	}
	child := make(WeightSet, len(a))
	for i := range a {
		if rng.Float64() < 0.5 {
			child[i] = mat.DenseCopyOf(a[i])
		} else {
			child[i] = mat.DenseCopyOf(b[i])
		}
	}
	return child, nil
}

// NewCrossover returns the operator registered under name ("uniform" or "layer").
func NewCrossover(name string) (Crossover, error) {
	switch strings.ToLower(name) {
	case "", "uniform":
		return UniformCrossover{}, nil
	case "layer":
		return LayerCrossover{}, nil
	default:
		return nil, fmt.Errorf("%w: unknown crossover %q", ErrConfiguration, name)
	}
}

package nn

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"

	"github.com/baldhumanity/snake-ga/ga"
)

// Network is a dense feed-forward network without biases.
// Layer i computes act_i(values · W_i) where W_i is inputs x outputs.
type Network struct {
	Neurons         []int
	ActivationNames []string
	activations     []ActivationType
	weights         ga.WeightSet
}

// New builds a network with N(0, 1) weights for the given layer layout.
// It needs exactly one activation per layer transition.
func New(rng *rand.Rand, neurons []int, activations []string) (*Network, error) {
	ws, err := ga.NewRandomWeightSet(rng, neurons)
	if err != nil {
		return nil, err
	}
	return FromWeights(ws, activations)
}

// FromWeights wraps an existing weight set, used to replay a saved champion.
func FromWeights(ws ga.WeightSet, activations []string) (*Network, error) {
	if len(ws) == 0 {
		return nil, fmt.Errorf("%w: empty weight set", ga.ErrConfiguration)
	}
	if len(activations) != len(ws) {
		return nil, fmt.Errorf("%w: %d activations for %d layer transitions", ga.ErrConfiguration, len(activations), len(ws))
	}

	fns := make([]ActivationType, len(activations))
	for i, name := range activations {
		fn, err := GetActivation(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ga.ErrConfiguration, err)
		}
		fns[i] = fn
	}

	shapes := ws.Shapes()
	neurons := []int{shapes[0].Rows}
	for i, s := range shapes {
		if i > 0 && shapes[i-1].Cols != s.Rows {
			return nil, fmt.Errorf("%w: layer %d takes %d inputs but layer %d gives %d", ga.ErrShapeMismatch, i, s.Rows, i-1, shapes[i-1].Cols)
		}
		neurons = append(neurons, s.Cols)
	}

	return &Network{
		Neurons:         neurons,
		ActivationNames: append([]string(nil), activations...),
		activations:     fns,
		weights:         ws.Clone(),
	}, nil
}

// Predict runs the forward pass.
func (n *Network) Predict(inputs []float64) ([]float64, error) {
	if len(inputs) != n.Neurons[0] {
		return nil, fmt.Errorf("mismatch between input count (%d) and network input size (%d)", len(inputs), n.Neurons[0])
	}

	values := mat.NewVecDense(len(inputs), append([]float64(nil), inputs...))
	for i, w := range n.weights {
		_, cols := w.Dims()
		out := mat.NewVecDense(cols, nil)
		// Row vector times W is W^T times column vector.
		out.MulVec(w.T(), values)
		n.activations[i](out.RawVector().Data)
		values = out
	}

	result := make([]float64, values.Len())
	copy(result, values.RawVector().Data)
	return result, nil
}

// Weights returns the network's own weight set. Callers must not modify it.
func (n *Network) Weights() ga.WeightSet {
	return n.weights
}

// SetWeights replaces the weights with a copy of ws.
func (n *Network) SetWeights(ws ga.WeightSet) error {
	if !n.weights.Compatible(ws) {
		return fmt.Errorf("%w: network is %v, got %v", ga.ErrShapeMismatch, n.weights.Shapes(), ws.Shapes())
	}
	n.weights = ws.Clone()
	return nil
}

// Factory returns a ga.BrainFactory producing networks for the given layout.
func Factory(neurons []int, activations []string) ga.BrainFactory {
	return func(rng *rand.Rand) (ga.Brain, error) {
		return New(rng, neurons, activations)
	}
}

package nn

import (
	"fmt"
	"math"
)

// ActivationType applies a layer activation to values in place.
type ActivationType func(values []float64)

// ActivationFunctions maps names to layer activations so configs can refer to them.
var ActivationFunctions = map[string]ActivationType{
	"relu":     ReLU,
	"softmax":  Softmax,
	"sigmoid":  Sigmoid,
	"tanh":     Tanh,
	"identity": Identity,
}

// GetActivation retrieves an activation function by name.
func GetActivation(name string) (ActivationType, error) {
	if fn, ok := ActivationFunctions[name]; ok {
		return fn, nil
	}
	return nil, fmt.Errorf("unknown activation function: %s", name)
}

// ReLU clamps negatives to zero.
func ReLU(values []float64) {
	for i, v := range values {
		values[i] = math.Max(0, v)
	}
}

// Softmax normalizes values into a probability distribution, max-stabilized.
func Softmax(values []float64) {
	if len(values) == 0 {
		return
	}
	maxVal := values[0]
	for _, v := range values[1:] {
		if v > maxVal {
			maxVal = v
		}
	}
	sum := 0.0
	for i, v := range values {
		values[i] = math.Exp(v - maxVal)
		sum += values[i]
	}
	for i := range values {
		values[i] /= sum
	}
}

// Sigmoid is the logistic function.
func Sigmoid(values []float64) {
	for i, v := range values {
		values[i] = 1.0 / (1.0 + math.Exp(-v))
	}
}

// Tanh activation function.
func Tanh(values []float64) {
	for i, v := range values {
		values[i] = math.Tanh(v)
	}
}

// Identity leaves values unchanged.
func Identity(values []float64) {}

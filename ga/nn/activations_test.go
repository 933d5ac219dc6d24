package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivations(t *testing.T) {
	v := []float64{-2, 0, 3}
	ReLU(v)
	assert.Equal(t, []float64{0, 0, 3}, v)

	v = []float64{0}
	Sigmoid(v)
	assert.Equal(t, 0.5, v[0])

	v = []float64{0, 1}
	Tanh(v)
	assert.InDelta(t, math.Tanh(1), v[1], 1e-12)

	v = []float64{1000, 1000}
	Softmax(v)
	assert.InDelta(t, 0.5, v[0], 1e-12)
	assert.InDelta(t, 0.5, v[1], 1e-12)
}

func TestGetActivation(t *testing.T) {
	for name := range ActivationFunctions {
		fn, err := GetActivation(name)
		require.NoError(t, err)
		assert.NotNil(t, fn)
	}
	_, err := GetActivation("gelu")
	assert.Error(t, err)
}

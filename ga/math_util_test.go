package ga

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStatistics(t *testing.T) {
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 5.0, Mean(values), 1e-12)
	assert.InDelta(t, math.Sqrt(32.0/7.0), Stdev(values), 1e-12)
	assert.Equal(t, 9.0, MaxFloat(values))
	assert.Equal(t, 7, ArgMax(values))

	assert.Equal(t, 0.0, Mean(nil))
	assert.Equal(t, 0.0, Stdev([]float64{3}))
	assert.True(t, math.IsInf(MaxFloat(nil), -1))
	assert.Equal(t, -1, ArgMax(nil))
}

func TestArgMax_FirstOnTies(t *testing.T) {
	assert.Equal(t, 1, ArgMax([]float64{0.1, 0.4, 0.4, 0.1}))
}

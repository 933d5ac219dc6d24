package ga

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/mat"
)

// Shape is the (rows, cols) dimension pair of one weight matrix.
// Rows are the layer's inputs, cols its outputs.
type Shape struct {
	Rows int
	Cols int
}

// String returns the shape as "RxC".
func (s Shape) String() string {
	return fmt.Sprintf("%dx%d", s.Rows, s.Cols)
}

// WeightSet holds a network's learnable parameters, one matrix per layer transition.
// The shapes are fixed when the network is built and never change afterwards.
type WeightSet []*mat.Dense

// NewWeightSet allocates a zero-valued WeightSet for a layer layout such as
// []int{18, 16, 4} (two matrices: 18x16 and 16x4).
func NewWeightSet(neurons []int) (WeightSet, error) {
	if len(neurons) < 2 {
		return nil, fmt.Errorf("%w: need at least two layers, got %d", ErrConfiguration, len(neurons))
	}
	ws := make(WeightSet, len(neurons)-1)
	for i := 0; i < len(neurons)-1; i++ {
		if neurons[i] <= 0 || neurons[i+1] <= 0 {
			return nil, fmt.Errorf("%w: layer sizes must be positive, got %v", ErrConfiguration, neurons)
		}
		ws[i] = mat.NewDense(neurons[i], neurons[i+1], nil)
	}
	return ws, nil
}

// NewRandomWeightSet draws every weight from N(0, 1).
func NewRandomWeightSet(rng *rand.Rand, neurons []int) (WeightSet, error) {
	ws, err := NewWeightSet(neurons)
	if err != nil {
		return nil, err
	}
	for _, m := range ws {
		raw := m.RawMatrix()
		for r := 0; r < raw.Rows; r++ {
			row := raw.Data[r*raw.Stride : r*raw.Stride+raw.Cols]
			for c := range row {
				row[c] = rng.NormFloat64()
			}
		}
	}
	return ws, nil
}

// Shapes returns the dimensions of every matrix in order.
func (ws WeightSet) Shapes() []Shape {
	shapes := make([]Shape, len(ws))
	for i, m := range ws {
		r, c := m.Dims()
		shapes[i] = Shape{Rows: r, Cols: c}
	}
	return shapes
}

// Len returns the total number of scalar weights.
func (ws WeightSet) Len() int {
	n := 0
	for _, m := range ws {
		r, c := m.Dims()
		n += r * c
	}
	return n
}

// Compatible reports whether both sets have the same number of matrices
// with identical dimensions.
func (ws WeightSet) Compatible(other WeightSet) bool {
	if len(ws) != len(other) {
		return false
	}
	for i := range ws {
		r1, c1 := ws[i].Dims()
		r2, c2 := other[i].Dims()
		if r1 != r2 || c1 != c2 {
			return false
		}
	}
	return true
}

// Clone returns a deep copy that shares no storage with ws.
func (ws WeightSet) Clone() WeightSet {
	if ws == nil {
		return nil
	}
	out := make(WeightSet, len(ws))
	for i, m := range ws {
		out[i] = mat.DenseCopyOf(m)
	}
	return out
}

// Equal reports value equality: compatible shapes and identical entries.
func (ws WeightSet) Equal(other WeightSet) bool {
	if !ws.Compatible(other) {
		return false
	}
	for i := range ws {
		if !mat.Equal(ws[i], other[i]) {
			return false
		}
	}
	return true
}

// checkCompatible returns ErrShapeMismatch describing the first differing matrix.
func checkCompatible(a, b WeightSet) error {
	if a.Compatible(b) {
		return nil
	}
	return fmt.Errorf("%w: %v vs %v", ErrShapeMismatch, a.Shapes(), b.Shapes())
}

package ga

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUniformCrossover_PicksEachWeightFromOneParent(t *testing.T) {
	ones := filled([]int{2, 3}, 1)
	zeros := filled([]int{2, 3}, 0)

	child, err := UniformCrossover{}.Combine(rand.New(rand.NewSource(7)), ones, zeros)
	require.NoError(t, err)

	// Same seed, same draw order: row-major over the single matrix.
	rng := rand.New(rand.NewSource(7))
	for r := 0; r < 2; r++ {
		for c := 0; c < 3; c++ {
			want := 0.0
			if rng.Float64() < 0.5 {
				want = 1
			}
			assert.Equal(t, want, child[0].At(r, c), "entry (%d,%d)", r, c)
		}
	}
}

func TestUniformCrossover_IdenticalParents(t *testing.T) {
	parent, err := NewRandomWeightSet(rand.New(rand.NewSource(1)), []int{4, 3, 2})
	require.NoError(t, err)

	child, err := UniformCrossover{}.Combine(rand.New(rand.NewSource(2)), parent, parent.Clone())
	require.NoError(t, err)
	assert.True(t, child.Equal(parent))
}

func TestUniformCrossover_ChildDoesNotAlias(t *testing.T) {
	a := filled([]int{2, 2}, 1)
	b := filled([]int{2, 2}, 2)

	child, err := UniformCrossover{}.Combine(rand.New(rand.NewSource(9)), a, b)
	require.NoError(t, err)
	child[0].Set(0, 0, 100)
	child[0].Set(1, 1, 100)

	assert.True(t, a.Equal(filled([]int{2, 2}, 1)))
	assert.True(t, b.Equal(filled([]int{2, 2}, 2)))
}

func TestLayerCrossover_CopiesWholeMatrices(t *testing.T) {
	a := filled([]int{3, 4, 2, 2}, 1)
	b := filled([]int{3, 4, 2, 2}, 2)

	child, err := LayerCrossover{}.Combine(rand.New(rand.NewSource(11)), a, b)
	require.NoError(t, err)
	require.True(t, child.Compatible(a))

	for i, m := range child {
		v := m.At(0, 0)
		assert.Contains(t, []float64{1, 2}, v)
		r, c := m.Dims()
		for x := 0; x < r; x++ {
			for y := 0; y < c; y++ {
				assert.Equal(t, v, m.At(x, y), "matrix %d mixes parents", i)
			}
		}
		assert.NotSame(t, a[i], m)
		assert.NotSame(t, b[i], m)
	}
}

func TestCrossover_ShapeMismatch(t *testing.T) {
	a := filled([]int{2, 3}, 1)
	b := filled([]int{3, 2}, 1)
	rng := rand.New(rand.NewSource(1))

	for _, op := range []Crossover{UniformCrossover{}, LayerCrossover{}} {
		_, err := op.Combine(rng, a, b)
		assert.ErrorIs(t, err, ErrShapeMismatch)
	}
}

func TestNewCrossover(t *testing.T) {
	op, err := NewCrossover("")
	require.NoError(t, err)
	assert.IsType(t, UniformCrossover{}, op)

	op, err = NewCrossover("Layer")
	require.NoError(t, err)
	assert.IsType(t, LayerCrossover{}, op)

	_, err = NewCrossover("two-point")
	assert.ErrorIs(t, err, ErrConfiguration)
}

package ga

import (
	"gonum.org/v1/gonum/mat"
)

// stubBrain carries weights without a forward pass.
type stubBrain struct {
	ws WeightSet
}

func (b *stubBrain) Predict(inputs []float64) ([]float64, error) {
	return nil, nil
}

func (b *stubBrain) Weights() WeightSet {
	return b.ws
}

func (b *stubBrain) SetWeights(ws WeightSet) error {
	if err := checkCompatible(b.ws, ws); err != nil {
		return err
	}
	b.ws = ws.Clone()
	return nil
}

// filled returns a weight set for neurons with every entry set to v.
func filled(neurons []int, v float64) WeightSet {
	ws, err := NewWeightSet(neurons)
	if err != nil {
		panic(err)
	}
	for _, m := range ws {
		r, c := m.Dims()
		for i := 0; i < r; i++ {
			for j := 0; j < c; j++ {
				m.Set(i, j, v)
			}
		}
	}
	return ws
}

func agentWithScore(score int, ws WeightSet) *Agent {
	return &Agent{Brain: &stubBrain{ws: ws}, Score: score}
}

func allEntries(ws WeightSet) []float64 {
	var out []float64
	for _, m := range ws {
		r, _ := m.Dims()
		for i := 0; i < r; i++ {
			out = append(out, mat.Row(nil, i, m)...)
		}
	}
	return out
}

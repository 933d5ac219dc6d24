package ga

import (
	"fmt"
	"math"
	"strings"
)

// StallSentinel is the fitness given to agents that stalled out.
// It is low enough that softmax assigns them effectively zero probability
// next to any agent that made progress.
const StallSentinel = -1e9

// Scorer turns an agent's raw episode metrics into a comparable fitness value.
type Scorer interface {
	Fitness(a *Agent) float64
}

// RawScore uses the food eaten as fitness, unmodified.
type RawScore struct{}

// Fitness returns a.Score.
func (RawScore) Fitness(a *Agent) float64 {
	return float64(a.Score)
}

// ShapedScore rewards food and survival time and penalizes wandering without food.
type ShapedScore struct {
	ScoreWeight     float64
	TimeAliveWeight float64
	StallWeight     float64
	StallLimit      int
}

// Fitness computes score*ScoreWeight + steps*TimeAliveWeight - stall*StallWeight,
// or StallSentinel once the agent reached the stall limit.
func (s ShapedScore) Fitness(a *Agent) float64 {
	if a.StepsWithoutFood >= s.StallLimit {
		return StallSentinel
	}
	f := float64(a.Score)*s.ScoreWeight +
		float64(a.Steps)*s.TimeAliveWeight -
		float64(a.StepsWithoutFood)*s.StallWeight
	if math.IsNaN(f) {
		return StallSentinel
	}
	return f
}

// NewScorer builds the scorer named by cfg.Type ("raw" or "shaped").
func NewScorer(cfg FitnessConfig) (Scorer, error) {
	switch strings.ToLower(cfg.Type) {
	case "", "raw":
		return RawScore{}, nil
	case "shaped":
		return ShapedScore{
			ScoreWeight:     cfg.ScoreWeight,
			TimeAliveWeight: cfg.TimeAliveWeight,
			StallWeight:     cfg.StallWeight,
			StallLimit:      cfg.StallLimit,
		}, nil
	default:
		return nil, fmt.Errorf("%w: unknown fitness type %q", ErrConfiguration, cfg.Type)
	}
}

// Softmax converts scores into a probability distribution.
// The maximum is subtracted before exponentiating, so large scores do not
// overflow and equal scores (including all-sentinel ones) give exactly 1/n.
func Softmax(scores []float64) []float64 {
	probs := make([]float64, len(scores))
	if len(scores) == 0 {
		return probs
	}
	maxScore := MaxFloat(scores)
	sum := 0.0
	for i, s := range scores {
		probs[i] = math.Exp(s - maxScore)
		sum += probs[i]
	}
	for i := range probs {
		probs[i] /= sum
	}
	return probs
}

// fitnesses scores every agent with s.
func fitnesses(s Scorer, population []*Agent) []float64 {
	out := make([]float64, len(population))
	for i, a := range population {
		out[i] = s.Fitness(a)
	}
	return out
}

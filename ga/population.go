package ga

import (
	"context"
	"fmt"
	"math/rand"
	"time"
)

// Brain is the decision network an agent carries.
type Brain interface {
	Predict(inputs []float64) ([]float64, error)
	Weights() WeightSet
	SetWeights(ws WeightSet) error
}

// BrainFactory creates a freshly initialized brain for one population slot.
type BrainFactory func(rng *rand.Rand) (Brain, error)

// Agent is one population slot: a brain plus the metrics of its latest episode.
// The environment side resets the metrics at the start of each episode.
type Agent struct {
	Brain            Brain
	Score            int // Food eaten
	Steps            int
	StepsWithoutFood int
	Alive            bool
}

// ResetMetrics clears the episode counters and marks the agent alive.
func (a *Agent) ResetMetrics() {
	a.Score = 0
	a.Steps = 0
	a.StepsWithoutFood = 0
	a.Alive = true
}

// EpisodeResult summarizes one episode run over the whole population.
type EpisodeResult struct {
	Won   bool // An agent reached the maximum obtainable score
	Ticks int
}

// EpisodeFunc plays one episode for every agent and leaves the final metrics on them.
type EpisodeFunc func(ctx context.Context, agents []*Agent) (EpisodeResult, error)

// Champion is the best performer seen during a run.
type Champion struct {
	Weights     WeightSet
	Activations []string // One per matrix in Weights
	Score       int
	Fitness     float64
	Generation  int
}

// Population holds the state of the evolutionary process.
type Population struct {
	Config       *Config
	Agents       []*Agent
	Reproduction *Reproduction
	Reporters    *ReporterSet
	Generation   int
	Best         *Champion // Best agent found so far, by raw score

	rng *rand.Rand
}

// NewPopulation creates PopSize agents with brains from newBrain.
func NewPopulation(config *Config, rng *rand.Rand, newBrain BrainFactory) (*Population, error) {
	if config.Population.PopSize <= 0 {
		return nil, fmt.Errorf("%w: pop_size must be positive", ErrConfiguration)
	}
	reproduction, err := NewReproduction(config.Fitness, config.Reproduction)
	if err != nil {
		return nil, fmt.Errorf("failed to create reproduction: %w", err)
	}

	agents := make([]*Agent, config.Population.PopSize)
	for i := range agents {
		brain, err := newBrain(rng)
		if err != nil {
			return nil, fmt.Errorf("failed to create brain %d: %w", i, err)
		}
		agents[i] = &Agent{Brain: brain, Alive: true}
	}

	return &Population{
		Config:       config,
		Agents:       agents,
		Reproduction: reproduction,
		Reporters:    NewReporterSet(),
		rng:          rng,
	}, nil
}

// RunGeneration evaluates the population with episode and, unless the run is
// over, replaces every agent's weights with the next generation's.
// Returns the champion if it won the game or met the fitness threshold, otherwise nil.
// On error no agent's weights have been changed.
func (p *Population) RunGeneration(ctx context.Context, episode EpisodeFunc) (*Champion, error) {
	p.Generation++
	start := time.Now()

	// 1. Evaluate
	result, err := episode(ctx, p.Agents)
	if err != nil {
		return nil, fmt.Errorf("episode failed in generation %d: %w", p.Generation, err)
	}

	// 2. Track best
	scores := make([]float64, len(p.Agents))
	for i, a := range p.Agents {
		scores[i] = float64(a.Score)
	}
	fits := fitnesses(p.Reproduction.Scorer, p.Agents)
	current := p.findBestAgent()
	if current != nil && (p.Best == nil || current.Score > p.Best.Score) {
		p.Best = &Champion{
			Weights:     current.Brain.Weights().Clone(),
			Activations: append([]string(nil), p.Config.Network.Activations...),
			Score:       current.Score,
			Fitness:     p.Reproduction.Scorer.Fitness(current),
			Generation:  p.Generation,
		}
		p.Reporters.Champion(p.Best)
	}

	stats := GenerationStats{
		Generation:   p.Generation,
		BestScore:    MaxFloat(scores),
		MeanScore:    Mean(scores),
		StdevScore:   Stdev(scores),
		BestFitness:  MaxFloat(fits),
		MeanFitness:  Mean(fits),
		AliveAtEnd:   p.countAlive(),
		Ticks:        result.Ticks,
		Won:          result.Won,
		PopSize:      len(p.Agents),
		NumOffspring: p.Config.Population.NumOffspring,
	}

	// 3. Termination
	if result.Won || p.thresholdMet() {
		stats.Duration = time.Since(start)
		p.Reporters.GenerationEnd(stats)
		return p.Best, nil
	}

	// 4. Reproduce
	next, err := p.Reproduction.Repopulate(p.rng, p.Agents, p.Config.Population.NumOffspring)
	if err != nil {
		return nil, fmt.Errorf("reproduction failed in generation %d: %w", p.Generation, err)
	}
	if len(next) != len(p.Agents) {
		return nil, fmt.Errorf("%w: repopulate returned %d weight sets for %d agents", ErrConfiguration, len(next), len(p.Agents))
	}
	for i, ws := range next {
		if !ws.Compatible(p.Agents[0].Brain.Weights()) {
			return nil, fmt.Errorf("weight set %d: %w", i, ErrShapeMismatch)
		}
	}

	// 5. Hand weights back by position
	for i, a := range p.Agents {
		if err := a.Brain.SetWeights(next[i]); err != nil {
			return nil, fmt.Errorf("assigning weights to agent %d: %w", i, err)
		}
	}

	stats.Duration = time.Since(start)
	p.Reporters.GenerationEnd(stats)
	return nil, nil
}

// GenerationHook is called after every completed generation. A non-nil
// error stops Run and is returned.
type GenerationHook func(p *Population) error

// Run calls RunGeneration until a winner appears, generations are exhausted
// or ctx is cancelled. A non-positive generations value uses the config.
// afterGeneration may be nil.
func (p *Population) Run(ctx context.Context, episode EpisodeFunc, generations int, afterGeneration GenerationHook) (*Champion, error) {
	if generations <= 0 {
		generations = p.Config.Population.Generations
	}
	for g := 0; g < generations; g++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		winner, err := p.RunGeneration(ctx, episode)
		if err != nil {
			return nil, err
		}
		if afterGeneration != nil {
			if err := afterGeneration(p); err != nil {
				return winner, err
			}
		}
		if winner != nil {
			return winner, nil
		}
	}
	return nil, nil
}

// findBestAgent returns the highest scoring agent, first one on ties.
func (p *Population) findBestAgent() *Agent {
	var best *Agent
	for _, a := range p.Agents {
		if best == nil || a.Score > best.Score {
			best = a
		}
	}
	return best
}

func (p *Population) countAlive() int {
	n := 0
	for _, a := range p.Agents {
		if a.Alive {
			n++
		}
	}
	return n
}

func (p *Population) thresholdMet() bool {
	cfg := p.Config.Population
	if cfg.NoFitnessTermination || cfg.FitnessThreshold <= 0 || p.Best == nil {
		return false
	}
	return float64(p.Best.Score) >= cfg.FitnessThreshold
}

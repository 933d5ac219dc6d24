package ga

import (
	"context"
	"errors"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReporter struct {
	stats     []GenerationStats
	champions []*Champion
}

func (r *recordingReporter) GenerationEnd(s GenerationStats) {
	r.stats = append(r.stats, s)
}

func (r *recordingReporter) Champion(c *Champion) {
	r.champions = append(r.champions, c)
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Population.PopSize = 4
	cfg.Population.NumOffspring = 2
	cfg.Population.Generations = 3
	cfg.Network.Neurons = []int{3, 2}
	cfg.Network.Activations = []string{"softmax"}
	cfg.applyDerived()
	return cfg
}

func stubFactory(neurons []int) BrainFactory {
	return func(rng *rand.Rand) (Brain, error) {
		ws, err := NewRandomWeightSet(rng, neurons)
		if err != nil {
			return nil, err
		}
		return &stubBrain{ws: ws}, nil
	}
}

// scriptedEpisode assigns fixed scores by position and kills everyone.
func scriptedEpisode(result EpisodeResult, scores ...int) EpisodeFunc {
	return func(ctx context.Context, agents []*Agent) (EpisodeResult, error) {
		for i, a := range agents {
			a.ResetMetrics()
			a.Score = scores[i]
			a.Alive = false
		}
		return result, nil
	}
}

func newTestPopulation(t *testing.T, cfg *Config) (*Population, *recordingReporter) {
	t.Helper()
	pop, err := NewPopulation(cfg, rand.New(rand.NewSource(1)), stubFactory(cfg.Network.Neurons))
	require.NoError(t, err)
	rec := &recordingReporter{}
	pop.Reporters.Add(rec)
	return pop, rec
}

func TestRunGeneration_ReplacesWeightsAndTracksChampion(t *testing.T) {
	pop, rec := newTestPopulation(t, testConfig())
	before := make([]WeightSet, len(pop.Agents))
	for i, a := range pop.Agents {
		before[i] = a.Brain.Weights().Clone()
	}

	winner, err := pop.RunGeneration(context.Background(), scriptedEpisode(EpisodeResult{Ticks: 12}, 0, 10, -5, 5))
	require.NoError(t, err)
	assert.Nil(t, winner)
	assert.Equal(t, 1, pop.Generation)

	require.NotNil(t, pop.Best)
	assert.Equal(t, 10, pop.Best.Score)
	assert.Equal(t, 1, pop.Best.Generation)
	assert.True(t, pop.Best.Weights.Equal(before[1]))
	assert.Equal(t, []string{"softmax"}, pop.Best.Activations)

	// Survivors land in the first slots, best first.
	assert.True(t, pop.Agents[0].Brain.Weights().Equal(before[1]))
	assert.True(t, pop.Agents[1].Brain.Weights().Equal(before[3]))
	for _, a := range pop.Agents {
		assert.True(t, a.Brain.Weights().Compatible(before[0]))
	}

	require.Len(t, rec.stats, 1)
	s := rec.stats[0]
	assert.Equal(t, 1, s.Generation)
	assert.Equal(t, 10.0, s.BestScore)
	assert.Equal(t, 2.5, s.MeanScore)
	assert.Equal(t, 12, s.Ticks)
	assert.Equal(t, 0, s.AliveAtEnd)
	assert.Equal(t, 4, s.PopSize)
	require.Len(t, rec.champions, 1)
}

func TestRunGeneration_ChampionOnlyOnStrictImprovement(t *testing.T) {
	pop, rec := newTestPopulation(t, testConfig())
	ctx := context.Background()

	_, err := pop.RunGeneration(ctx, scriptedEpisode(EpisodeResult{}, 3, 1, 0, 0))
	require.NoError(t, err)
	_, err = pop.RunGeneration(ctx, scriptedEpisode(EpisodeResult{}, 3, 3, 2, 0))
	require.NoError(t, err)
	assert.Len(t, rec.champions, 1)
	assert.Equal(t, 1, pop.Best.Generation)

	_, err = pop.RunGeneration(ctx, scriptedEpisode(EpisodeResult{}, 0, 4, 0, 0))
	require.NoError(t, err)
	assert.Len(t, rec.champions, 2)
	assert.Equal(t, 4, pop.Best.Score)
	assert.Equal(t, 3, pop.Best.Generation)
}

func TestRunGeneration_WinStopsBeforeReproduction(t *testing.T) {
	pop, rec := newTestPopulation(t, testConfig())
	before := pop.Agents[2].Brain.Weights().Clone()

	winner, err := pop.RunGeneration(context.Background(), scriptedEpisode(EpisodeResult{Won: true}, 0, 0, 168, 0))
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, 168, winner.Score)
	assert.True(t, winner.Weights.Equal(before))
	assert.True(t, pop.Agents[2].Brain.Weights().Equal(before))
	require.Len(t, rec.stats, 1)
	assert.True(t, rec.stats[0].Won)
}

func TestRunGeneration_FitnessThreshold(t *testing.T) {
	cfg := testConfig()
	cfg.Population.FitnessThreshold = 5
	pop, _ := newTestPopulation(t, cfg)

	winner, err := pop.RunGeneration(context.Background(), scriptedEpisode(EpisodeResult{}, 1, 6, 0, 0))
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, 6, winner.Score)

	cfg = testConfig()
	cfg.Population.FitnessThreshold = 5
	cfg.Population.NoFitnessTermination = true
	pop, _ = newTestPopulation(t, cfg)
	winner, err = pop.RunGeneration(context.Background(), scriptedEpisode(EpisodeResult{}, 1, 6, 0, 0))
	require.NoError(t, err)
	assert.Nil(t, winner)
}

func TestRunGeneration_EpisodeErrorLeavesWeights(t *testing.T) {
	pop, rec := newTestPopulation(t, testConfig())
	before := pop.Agents[0].Brain.Weights().Clone()
	boom := errors.New("boom")

	_, err := pop.RunGeneration(context.Background(), func(context.Context, []*Agent) (EpisodeResult, error) {
		return EpisodeResult{}, boom
	})
	assert.ErrorIs(t, err, boom)
	assert.True(t, pop.Agents[0].Brain.Weights().Equal(before))
	assert.Empty(t, rec.stats)
}

func TestRun_StopsAfterGenerations(t *testing.T) {
	pop, rec := newTestPopulation(t, testConfig())

	var seen []int
	hook := func(p *Population) error {
		seen = append(seen, p.Generation)
		return nil
	}

	winner, err := pop.Run(context.Background(), scriptedEpisode(EpisodeResult{}, 1, 2, 3, 4), 0, hook)
	require.NoError(t, err)
	assert.Nil(t, winner)
	assert.Equal(t, 3, pop.Generation)
	assert.Len(t, rec.stats, 3)
	assert.Equal(t, []int{1, 2, 3}, seen)
}

func TestRun_HookSeesWinningGeneration(t *testing.T) {
	pop, _ := newTestPopulation(t, testConfig())
	calls := 0
	hook := func(p *Population) error {
		calls++
		return nil
	}

	winner, err := pop.Run(context.Background(), scriptedEpisode(EpisodeResult{Won: true}, 0, 9, 0, 0), 5, hook)
	require.NoError(t, err)
	require.NotNil(t, winner)
	assert.Equal(t, 1, calls)
	assert.Equal(t, 1, pop.Generation)
}

func TestRun_HookErrorStops(t *testing.T) {
	pop, _ := newTestPopulation(t, testConfig())
	stop := errors.New("disk full")

	_, err := pop.Run(context.Background(), scriptedEpisode(EpisodeResult{}, 1, 2, 3, 4), 5, func(*Population) error {
		return stop
	})
	assert.ErrorIs(t, err, stop)
	assert.Equal(t, 1, pop.Generation)
}

func TestRun_Cancelled(t *testing.T) {
	pop, _ := newTestPopulation(t, testConfig())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pop.Run(ctx, scriptedEpisode(EpisodeResult{}, 1, 2, 3, 4), 5, nil)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 0, pop.Generation)
}

func TestNewPopulation_Invalid(t *testing.T) {
	cfg := testConfig()
	cfg.Population.PopSize = 0
	_, err := NewPopulation(cfg, rand.New(rand.NewSource(1)), stubFactory(cfg.Network.Neurons))
	assert.ErrorIs(t, err, ErrConfiguration)

	cfg = testConfig()
	cfg.Reproduction.Crossover = "bogus"
	_, err = NewPopulation(cfg, rand.New(rand.NewSource(1)), stubFactory(cfg.Network.Neurons))
	assert.ErrorIs(t, err, ErrConfiguration)
}

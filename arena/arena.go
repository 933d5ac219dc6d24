// Package arena plays one episode for a whole population.
// agents[i] always plays in envs[i]; nothing is keyed by identity.
package arena

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/baldhumanity/snake-ga/ga"
	"github.com/baldhumanity/snake-ga/snake"
)

// Frame is what an Observer sees after an agent's move.
type Frame struct {
	Tick  int
	Index int
	Env   *snake.Env
}

// Observer is a presentation sink. It cannot affect the episode.
type Observer func(f Frame)

// Arena runs episodes over index-aligned agent and environment slices.
type Arena struct {
	envs     []*snake.Env
	maxTicks int
	observer Observer
	pace     time.Duration
}

// Option configures an Arena.
type Option func(*Arena)

// WithMaxTicks caps the number of ticks per episode. 0 means no cap.
func WithMaxTicks(n int) Option {
	return func(a *Arena) { a.maxTicks = n }
}

// WithObserver registers a sink called after every move, optionally sleeping
// pace between ticks.
func WithObserver(o Observer, pace time.Duration) Option {
	return func(a *Arena) {
		a.observer = o
		a.pace = pace
	}
}

// New returns an arena over envs.
func New(envs []*snake.Env, opts ...Option) *Arena {
	a := &Arena{envs: envs}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Run is a ga.EpisodeFunc. It resets every environment, then ticks until all
// agents are dead, one of them wins, the tick cap is hit or ctx is done.
// A win ends the episode immediately, even mid-tick.
func (a *Arena) Run(ctx context.Context, agents []*ga.Agent) (ga.EpisodeResult, error) {
	if len(agents) != len(a.envs) {
		return ga.EpisodeResult{}, fmt.Errorf("%w: %d agents for %d environments", ga.ErrConfiguration, len(agents), len(a.envs))
	}

	for i, env := range a.envs {
		env.Reset()
		agents[i].ResetMetrics()
	}

	result := ga.EpisodeResult{}
	for alive := len(agents); alive > 0; {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if a.maxTicks > 0 && result.Ticks >= a.maxTicks {
			break
		}
		result.Ticks++

		alive = 0
		for i, agent := range agents {
			if !agent.Alive {
				continue
			}
			env := a.envs[i]
			a.step(agent, env)
			if a.observer != nil {
				a.observer(Frame{Tick: result.Ticks, Index: i, Env: env})
			}
			if env.Won() {
				result.Won = true
				return result, nil
			}
			if agent.Alive {
				alive++
			}
		}

		if a.pace > 0 {
			time.Sleep(a.pace)
		}
	}
	return result, nil
}

// step lets one agent act once. A failing or NaN-producing network only kills its own agent.
func (a *Arena) step(agent *ga.Agent, env *snake.Env) {
	out, err := agent.Brain.Predict(env.Observe())
	if err != nil || hasNaN(out) || len(out) == 0 {
		agent.Alive = false
		return
	}
	env.Step(ga.ArgMax(out))
	agent.Score = env.Score
	agent.Steps = env.Steps
	agent.StepsWithoutFood = env.StepsWithoutFood
	agent.Alive = env.Alive()
}

func hasNaN(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) {
			return true
		}
	}
	return false
}

// Play runs a single agent in env until it dies, wins or maxTicks pass.
// Used to replay a saved champion.
func Play(ctx context.Context, brain ga.Brain, env *snake.Env, maxTicks int, observer Observer, pace time.Duration) (ga.EpisodeResult, *ga.Agent, error) {
	agent := &ga.Agent{Brain: brain}
	a := New([]*snake.Env{env}, WithMaxTicks(maxTicks), WithObserver(observer, pace))
	res, err := a.Run(ctx, []*ga.Agent{agent})
	return res, agent, err
}

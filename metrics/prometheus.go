// Package metrics exposes training progress as Prometheus metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/baldhumanity/snake-ga/ga"
)

// Reporter holds all Prometheus metrics and implements ga.Reporter.
type Reporter struct {
	Generation    prometheus.Gauge
	BestScore     prometheus.Gauge
	MeanScore     prometheus.Gauge
	BestFitness   prometheus.Gauge
	ChampionScore prometheus.Gauge
	AliveAtEnd    prometheus.Gauge

	GenerationsTotal prometheus.Counter
	WinsTotal        prometheus.Counter
	TicksTotal       prometheus.Counter

	GenerationDuration prometheus.Histogram
}

// NewReporter creates the metrics and registers them with reg.
func NewReporter(reg prometheus.Registerer) *Reporter {
	r := &Reporter{
		Generation: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snake_ga_generation",
			Help: "Number of the last finished generation",
		}),
		BestScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snake_ga_best_score",
			Help: "Best food score in the last generation",
		}),
		MeanScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snake_ga_mean_score",
			Help: "Mean food score in the last generation",
		}),
		BestFitness: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snake_ga_best_fitness",
			Help: "Best fitness in the last generation",
		}),
		ChampionScore: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snake_ga_champion_score",
			Help: "Score of the best agent seen in the run",
		}),
		AliveAtEnd: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "snake_ga_alive_at_end",
			Help: "Agents still alive when the last episode stopped",
		}),
		GenerationsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_ga_generations_total",
			Help: "Total number of generations run",
		}),
		WinsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_ga_wins_total",
			Help: "Total number of episodes ending in a win",
		}),
		TicksTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "snake_ga_ticks_total",
			Help: "Total number of simulated ticks",
		}),
		GenerationDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "snake_ga_generation_duration_seconds",
			Help:    "Wall time per generation in seconds",
			Buckets: prometheus.DefBuckets,
		}),
	}

	reg.MustRegister(
		r.Generation, r.BestScore, r.MeanScore, r.BestFitness, r.ChampionScore, r.AliveAtEnd,
		r.GenerationsTotal, r.WinsTotal, r.TicksTotal, r.GenerationDuration,
	)
	return r
}

// GenerationEnd implements ga.Reporter.
func (r *Reporter) GenerationEnd(s ga.GenerationStats) {
	r.Generation.Set(float64(s.Generation))
	r.BestScore.Set(s.BestScore)
	r.MeanScore.Set(s.MeanScore)
	r.BestFitness.Set(s.BestFitness)
	r.AliveAtEnd.Set(float64(s.AliveAtEnd))
	r.GenerationsTotal.Inc()
	r.TicksTotal.Add(float64(s.Ticks))
	if s.Won {
		r.WinsTotal.Inc()
	}
	r.GenerationDuration.Observe(s.Duration.Seconds())
}

// Champion implements ga.Reporter.
func (r *Reporter) Champion(c *ga.Champion) {
	r.ChampionScore.Set(float64(c.Score))
}

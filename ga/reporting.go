package ga

import "time"

// GenerationStats summarizes one finished generation.
type GenerationStats struct {
	Generation   int
	BestScore    float64
	MeanScore    float64
	StdevScore   float64
	BestFitness  float64
	MeanFitness  float64
	AliveAtEnd   int
	Ticks        int
	Won          bool
	PopSize      int
	NumOffspring int
	Duration     time.Duration
}

// Reporter receives progress events from a Population.
type Reporter interface {
	GenerationEnd(stats GenerationStats)
	Champion(c *Champion)
}

// ReporterSet fans events out to every registered reporter in order.
type ReporterSet struct {
	reporters []Reporter
}

// NewReporterSet returns an empty set.
func NewReporterSet() *ReporterSet {
	return &ReporterSet{}
}

// Add registers r.
func (rs *ReporterSet) Add(r Reporter) {
	rs.reporters = append(rs.reporters, r)
}

// GenerationEnd implements Reporter.
func (rs *ReporterSet) GenerationEnd(stats GenerationStats) {
	for _, r := range rs.reporters {
		r.GenerationEnd(stats)
	}
}

// Champion implements Reporter.
func (rs *ReporterSet) Champion(c *Champion) {
	for _, r := range rs.reporters {
		r.Champion(c)
	}
}

// Package store persists run history and champions.
package store

import (
	"context"
	"time"

	"github.com/baldhumanity/snake-ga/ga"
)

// Run describes one training run.
type Run struct {
	ID           string
	StartedAt    time.Time
	Seed         int64
	PopSize      int
	NumOffspring int
	Neurons      []int
	Activations  []string
}

// Store defines persistence operations for runs, generation stats and champions.
type Store interface {
	Init(ctx context.Context) error
	SaveRun(ctx context.Context, run Run) error
	GetRun(ctx context.Context, id string) (Run, bool, error)
	SaveGeneration(ctx context.Context, runID string, stats ga.GenerationStats) error
	ListGenerations(ctx context.Context, runID string) ([]ga.GenerationStats, error)
	SaveChampion(ctx context.Context, runID string, c *ga.Champion) error
	GetChampion(ctx context.Context, runID string) (*ga.Champion, bool, error)
	Close() error
}

package store

import (
	"context"
	"fmt"

	"github.com/baldhumanity/snake-ga/ga"
)

func NewStore(kind, sqlitePath string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "sqlite":
		return NewSQLiteStore(sqlitePath), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

// Reporter records every generation and champion of one run into a Store.
// ga.Reporter has no error return, so failures go to OnError.
type Reporter struct {
	Store   Store
	RunID   string
	OnError func(err error)
}

// GenerationEnd implements ga.Reporter.
func (r *Reporter) GenerationEnd(stats ga.GenerationStats) {
	if err := r.Store.SaveGeneration(context.Background(), r.RunID, stats); err != nil {
		r.fail(fmt.Errorf("save generation %d: %w", stats.Generation, err))
	}
}

// Champion implements ga.Reporter.
func (r *Reporter) Champion(c *ga.Champion) {
	if err := r.Store.SaveChampion(context.Background(), r.RunID, c); err != nil {
		r.fail(fmt.Errorf("save champion: %w", err))
	}
}

func (r *Reporter) fail(err error) {
	if r.OnError != nil {
		r.OnError(err)
	}
}

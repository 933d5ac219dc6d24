package store

import (
	"context"
	"errors"
	"sync"

	"github.com/baldhumanity/snake-ga/ga"
)

var errNotInitialized = errors.New("store is not initialized")

type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	runs        map[string]Run
	generations map[string][]ga.GenerationStats
	champions   map[string]*ga.Champion
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.runs = make(map[string]Run)
	s.generations = make(map[string][]ga.GenerationStats)
	s.champions = make(map[string]*ga.Champion)
	return nil
}

func (s *MemoryStore) SaveRun(_ context.Context, run Run) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.runs[run.ID] = run
	return nil
}

func (s *MemoryStore) GetRun(_ context.Context, id string) (Run, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return Run{}, false, errNotInitialized
	}
	run, ok := s.runs[id]
	return run, ok, nil
}

func (s *MemoryStore) SaveGeneration(_ context.Context, runID string, stats ga.GenerationStats) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	s.generations[runID] = append(s.generations[runID], stats)
	return nil
}

func (s *MemoryStore) ListGenerations(_ context.Context, runID string) ([]ga.GenerationStats, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, errNotInitialized
	}
	return append([]ga.GenerationStats(nil), s.generations[runID]...), nil
}

func (s *MemoryStore) SaveChampion(_ context.Context, runID string, c *ga.Champion) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.initialized {
		return errNotInitialized
	}
	copied := *c
	copied.Weights = c.Weights.Clone()
	copied.Activations = append([]string(nil), c.Activations...)
	s.champions[runID] = &copied
	return nil
}

func (s *MemoryStore) GetChampion(_ context.Context, runID string) (*ga.Champion, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.initialized {
		return nil, false, errNotInitialized
	}
	c, ok := s.champions[runID]
	if !ok {
		return nil, false, nil
	}
	copied := *c
	copied.Weights = c.Weights.Clone()
	copied.Activations = append([]string(nil), c.Activations...)
	return &copied, true, nil
}

func (s *MemoryStore) Close() error {
	return nil
}

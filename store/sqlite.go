package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/baldhumanity/snake-ga/ga"

	_ "modernc.org/sqlite"
)

type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}

	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveRun(ctx context.Context, run Run) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO runs (id, started_at, seed, pop_size, num_offspring, neurons, activations)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			started_at = excluded.started_at,
			seed = excluded.seed,
			pop_size = excluded.pop_size,
			num_offspring = excluded.num_offspring,
			neurons = excluded.neurons,
			activations = excluded.activations
	`, run.ID, run.StartedAt.UnixNano(), run.Seed, run.PopSize, run.NumOffspring,
		joinInts(run.Neurons), strings.Join(run.Activations, " "))
	return err
}

func (s *SQLiteStore) GetRun(ctx context.Context, id string) (Run, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return Run{}, false, err
	}

	var (
		run         Run
		startedAt   int64
		neurons     string
		activations string
	)
	err = db.QueryRowContext(ctx, `
		SELECT id, started_at, seed, pop_size, num_offspring, neurons, activations
		FROM runs WHERE id = ?
	`, id).Scan(&run.ID, &startedAt, &run.Seed, &run.PopSize, &run.NumOffspring, &neurons, &activations)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Run{}, false, nil
		}
		return Run{}, false, err
	}

	run.StartedAt = time.Unix(0, startedAt)
	run.Neurons, err = splitInts(neurons)
	if err != nil {
		return Run{}, false, fmt.Errorf("decode neurons for run %s: %w", id, err)
	}
	run.Activations = strings.Fields(activations)
	return run, true, nil
}

func (s *SQLiteStore) SaveGeneration(ctx context.Context, runID string, st ga.GenerationStats) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO generations (
			run_id, generation, best_score, mean_score, stdev_score,
			best_fitness, mean_fitness, alive_at_end, ticks, won,
			pop_size, num_offspring, duration_ns
		)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id, generation) DO UPDATE SET
			best_score = excluded.best_score,
			mean_score = excluded.mean_score,
			stdev_score = excluded.stdev_score,
			best_fitness = excluded.best_fitness,
			mean_fitness = excluded.mean_fitness,
			alive_at_end = excluded.alive_at_end,
			ticks = excluded.ticks,
			won = excluded.won,
			pop_size = excluded.pop_size,
			num_offspring = excluded.num_offspring,
			duration_ns = excluded.duration_ns
	`, runID, st.Generation, st.BestScore, st.MeanScore, st.StdevScore,
		st.BestFitness, st.MeanFitness, st.AliveAtEnd, st.Ticks, st.Won,
		st.PopSize, st.NumOffspring, int64(st.Duration))
	return err
}

func (s *SQLiteStore) ListGenerations(ctx context.Context, runID string) ([]ga.GenerationStats, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `
		SELECT generation, best_score, mean_score, stdev_score,
			best_fitness, mean_fitness, alive_at_end, ticks, won,
			pop_size, num_offspring, duration_ns
		FROM generations WHERE run_id = ? ORDER BY generation
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ga.GenerationStats
	for rows.Next() {
		var (
			st       ga.GenerationStats
			duration int64
		)
		if err := rows.Scan(&st.Generation, &st.BestScore, &st.MeanScore, &st.StdevScore,
			&st.BestFitness, &st.MeanFitness, &st.AliveAtEnd, &st.Ticks, &st.Won,
			&st.PopSize, &st.NumOffspring, &duration); err != nil {
			return nil, err
		}
		st.Duration = time.Duration(duration)
		out = append(out, st)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) SaveChampion(ctx context.Context, runID string, c *ga.Champion) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}

	payload, err := ga.EncodeWeightSet(c.Weights)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO champions (run_id, score, fitness, generation, activations, payload)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_id) DO UPDATE SET
			score = excluded.score,
			activations = excluded.activations,
			fitness = excluded.fitness,
			generation = excluded.generation,
			payload = excluded.payload
	`, runID, c.Score, c.Fitness, c.Generation, strings.Join(c.Activations, " "), payload)
	return err
}

func (s *SQLiteStore) GetChampion(ctx context.Context, runID string) (*ga.Champion, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, false, err
	}

	var (
		c           ga.Champion
		activations string
		payload     []byte
	)
	err = db.QueryRowContext(ctx, `
		SELECT score, fitness, generation, activations, payload FROM champions WHERE run_id = ?
	`, runID).Scan(&c.Score, &c.Fitness, &c.Generation, &activations, &payload)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, err
	}

	c.Weights, err = ga.DecodeWeightSet(payload)
	if err != nil {
		return nil, false, fmt.Errorf("decode champion %s: %w", runID, err)
	}
	if activations != "" {
		c.Activations = strings.Fields(activations)
	}
	return &c, true, nil
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			started_at INTEGER NOT NULL,
			seed INTEGER NOT NULL,
			pop_size INTEGER NOT NULL,
			num_offspring INTEGER NOT NULL,
			neurons TEXT NOT NULL,
			activations TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS generations (
			run_id TEXT NOT NULL,
			generation INTEGER NOT NULL,
			best_score REAL NOT NULL,
			mean_score REAL NOT NULL,
			stdev_score REAL NOT NULL,
			best_fitness REAL NOT NULL,
			mean_fitness REAL NOT NULL,
			alive_at_end INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			won BOOLEAN NOT NULL,
			pop_size INTEGER NOT NULL,
			num_offspring INTEGER NOT NULL,
			duration_ns INTEGER NOT NULL,
			PRIMARY KEY (run_id, generation)
		);
		CREATE TABLE IF NOT EXISTS champions (
			run_id TEXT PRIMARY KEY,
			score INTEGER NOT NULL,
			fitness REAL NOT NULL,
			generation INTEGER NOT NULL,
			activations TEXT NOT NULL DEFAULT '',
			payload BLOB NOT NULL
		);
	`)
	return err
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, " ")
}

func splitInts(s string) ([]int, error) {
	fields := strings.Fields(s)
	out := make([]int, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

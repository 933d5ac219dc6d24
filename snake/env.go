// Package snake implements the grid world the agents play in.
package snake

import (
	"fmt"
	"math/rand"
)

// Cell values of the grid snapshot.
const (
	Empty = 0
	Head  = 1
	Body  = 2
	Food  = 3
	Wall  = 4
)

// Actions the snake can take.
const (
	Up = iota
	Down
	Left
	Right
	NumActions
)

// Point is a (row, col) grid position.
type Point struct {
	Row int
	Col int
}

func (p Point) add(d Point) Point {
	return Point{Row: p.Row + d.Row, Col: p.Col + d.Col}
}

var directions = [NumActions]Point{
	Up:    {Row: -1},
	Down:  {Row: 1},
	Left:  {Col: -1},
	Right: {Col: 1},
}

// Config holds the game parameters.
type Config struct {
	Rows       int
	Cols       int
	MaxFood    int // Food items on the board at once
	StallLimit int // Steps without food before the snake starves
	WinScore   int // 0 means every free cell eaten
}

// Env is one snake game. Call Reset before the first Step.
type Env struct {
	cfg Config
	rng *rand.Rand

	grid    [][]int
	head    Point
	body    []Point // Front is the segment right behind the head
	food    []Point
	prevDir Point

	Score            int
	Steps            int
	StepsWithoutFood int
	alive            bool
}

// New validates cfg and returns an environment drawing food positions from rng.
func New(cfg Config, rng *rand.Rand) (*Env, error) {
	if cfg.Rows <= 4 || cfg.Cols <= 4 {
		return nil, fmt.Errorf("grid size must be at least 5x5, got %dx%d", cfg.Rows, cfg.Cols)
	}
	if cfg.MaxFood <= 0 {
		return nil, fmt.Errorf("max food must be at least 1, got %d", cfg.MaxFood)
	}
	if cfg.StallLimit <= 0 {
		return nil, fmt.Errorf("stall limit must be positive, got %d", cfg.StallLimit)
	}
	if cfg.WinScore <= 0 {
		cfg.WinScore = (cfg.Rows-2)*(cfg.Cols-2) - 1
	}
	return &Env{cfg: cfg, rng: rng}, nil
}

// Reset starts a new episode with the head in the centre and fresh food.
func (e *Env) Reset() {
	e.head = Point{Row: e.cfg.Rows / 2, Col: e.cfg.Cols / 2}
	e.body = e.body[:0]
	e.food = e.food[:0]
	e.prevDir = Point{}
	e.Score = 0
	e.Steps = 0
	e.StepsWithoutFood = 0
	e.alive = true

	e.updateGrid()
	e.spawnFood(e.cfg.MaxFood)
}

// Alive reports whether the snake is still playing.
func (e *Env) Alive() bool {
	return e.alive
}

// Won reports whether the maximum obtainable score was reached.
func (e *Env) Won() bool {
	return e.Score >= e.cfg.WinScore
}

// Step applies action and reports whether the snake survived it.
// A reversal into the snake's own neck keeps the previous direction instead.
func (e *Env) Step(action int) bool {
	if !e.alive {
		return false
	}
	e.Steps++
	e.StepsWithoutFood++

	if e.StepsWithoutFood >= e.cfg.StallLimit {
		return e.die()
	}

	dir := e.actionToDirection(action)
	next := e.head.add(dir)

	if e.grid[next.Row][next.Col] == Wall {
		return e.die()
	}
	if e.onBody(next) {
		return e.die()
	}

	e.body = append([]Point{e.head}, e.body...)
	e.head = next

	if idx := e.foodIndex(next); idx >= 0 {
		e.food = append(e.food[:idx], e.food[idx+1:]...)
		e.Score++
		e.StepsWithoutFood = 0
		e.updateGrid()
		e.spawnFood(1)
	} else {
		e.body = e.body[:len(e.body)-1]
		e.updateGrid()
	}
	return true
}

// Grid returns a copy of the current board.
func (e *Env) Grid() [][]int {
	out := make([][]int, len(e.grid))
	for r, row := range e.grid {
		out[r] = append([]int(nil), row...)
	}
	return out
}

// Length is the number of cells the snake occupies.
func (e *Env) Length() int {
	return len(e.body) + 1
}

func (e *Env) die() bool {
	e.alive = false
	return false
}

func (e *Env) actionToDirection(action int) Point {
	if action < 0 || action >= NumActions {
		action = Up
	}
	dir := directions[action]
	if e.prevDir.Row == -dir.Row && e.prevDir.Col == -dir.Col {
		dir = e.prevDir
	}
	e.prevDir = dir
	return dir
}

func (e *Env) onBody(p Point) bool {
	for _, b := range e.body {
		if b == p {
			return true
		}
	}
	return false
}

func (e *Env) foodIndex(p Point) int {
	for i, f := range e.food {
		if f == p {
			return i
		}
	}
	return -1
}

// updateGrid redraws walls, snake and food.
func (e *Env) updateGrid() {
	if len(e.grid) != e.cfg.Rows {
		e.grid = make([][]int, e.cfg.Rows)
		for r := range e.grid {
			e.grid[r] = make([]int, e.cfg.Cols)
		}
	}
	for r := range e.grid {
		for c := range e.grid[r] {
			if r == 0 || c == 0 || r == e.cfg.Rows-1 || c == e.cfg.Cols-1 {
				e.grid[r][c] = Wall
			} else {
				e.grid[r][c] = Empty
			}
		}
	}
	e.grid[e.head.Row][e.head.Col] = Head
	for _, b := range e.body {
		e.grid[b.Row][b.Col] = Body
	}
	for _, f := range e.food {
		e.grid[f.Row][f.Col] = Food
	}
}

// spawnFood places up to n food items on empty cells.
// A full board gets no new food.
func (e *Env) spawnFood(n int) {
	for i := 0; i < n; i++ {
		var open []Point
		for r := range e.grid {
			for c, v := range e.grid[r] {
				if v == Empty {
					open = append(open, Point{Row: r, Col: c})
				}
			}
		}
		if len(open) == 0 {
			return
		}
		p := open[e.rng.Intn(len(open))]
		e.food = append(e.food, p)
		e.grid[p.Row][p.Col] = Food
	}
}

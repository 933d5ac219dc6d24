package snake

// NumInputs is the length of the vector returned by Observe.
const NumInputs = 4*3 + 2 + NumActions

// Observe returns the sensor vector fed to an agent's network:
//   - per direction (up, down, left, right): 1/distance to the wall,
//     1 if the body lies in that line, 1 if food lies in that line
//   - sign of the row and column offset to the nearest food
//   - one-hot of the previous direction (all zero before the first move)
func (e *Env) Observe() []float64 {
	obs := make([]float64, 0, NumInputs)

	for _, dir := range directions {
		dist := 0
		body, food := 0.0, 0.0
		p := e.head
		for {
			p = p.add(dir)
			dist++
			cell := e.grid[p.Row][p.Col]
			if cell == Wall {
				break
			}
			if cell == Body {
				body = 1
			}
			if cell == Food {
				food = 1
			}
		}
		obs = append(obs, 1/float64(dist), body, food)
	}

	dRow, dCol := 0.0, 0.0
	if f, ok := e.nearestFood(); ok {
		dRow = sign(f.Row - e.head.Row)
		dCol = sign(f.Col - e.head.Col)
	}
	obs = append(obs, dRow, dCol)

	for _, dir := range directions {
		if e.prevDir == dir {
			obs = append(obs, 1)
		} else {
			obs = append(obs, 0)
		}
	}
	return obs
}

// nearestFood returns the food item with the smallest Manhattan distance to the head.
func (e *Env) nearestFood() (Point, bool) {
	best, bestDist := Point{}, -1
	for _, f := range e.food {
		d := abs(f.Row-e.head.Row) + abs(f.Col-e.head.Col)
		if bestDist < 0 || d < bestDist {
			best, bestDist = f, d
		}
	}
	return best, bestDist >= 0
}

func sign(v int) float64 {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

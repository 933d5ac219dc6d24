package snake

import (
	"fmt"
	"io"
	"strings"
)

var cellGlyphs = map[int]byte{
	Empty: '.',
	Head:  '@',
	Body:  'o',
	Food:  '*',
	Wall:  '#',
}

// Render writes one text frame: a header line followed by the grid.
func Render(w io.Writer, grid [][]int, score, generation int) error {
	var b strings.Builder
	fmt.Fprintf(&b, "SCORE: %d  GENERATION: %d\n", score, generation)
	for _, row := range grid {
		for _, v := range row {
			g, ok := cellGlyphs[v]
			if !ok {
				g = '?'
			}
			b.WriteByte(g)
		}
		b.WriteByte('\n')
	}
	_, err := io.WriteString(w, b.String())
	return err
}

// clearScreen moves the cursor home and clears the terminal.
const clearScreen = "\x1b[H\x1b[2J"

// Renderer draws successive frames to one writer. With redraw set every
// frame first clears the screen, so a terminal shows it in place.
type Renderer struct {
	w      io.Writer
	redraw bool
}

// NewRenderer returns a Renderer writing to w.
func NewRenderer(w io.Writer, redraw bool) *Renderer {
	return &Renderer{w: w, redraw: redraw}
}

// Draw writes one frame.
func (r *Renderer) Draw(grid [][]int, score, generation int) error {
	if r.redraw {
		if _, err := io.WriteString(r.w, clearScreen); err != nil {
			return err
		}
	}
	return Render(r.w, grid, score, generation)
}

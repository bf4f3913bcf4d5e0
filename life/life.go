/*
Package life steps Conway's Game of Life over a packed bit-grid.

The board is a torus: neighborhoods wrap both axes through the grid's own
coordinate wrapping. It is the canonical producer of frames for the
bitvideo encoder.
*/
package life

import (
	"math/rand"

	"github.com/wmarlow/bitvideo/bitgrid"
)

// Life holds the current board plus a shadow board written during Step and
// swapped in afterwards.
type Life struct {
	cells  *bitgrid.Grid
	shadow *bitgrid.Grid
}

// New returns a simulation with all cells initially dead.
func New(width, height int) *Life {
	return &Life{
		cells:  bitgrid.New(width, height),
		shadow: bitgrid.New(width, height),
	}
}

// Width returns the board width in cells.
func (l *Life) Width() int { return l.cells.Width() }

// Height returns the board height in cells.
func (l *Life) Height() int { return l.cells.Height() }

// Get reports whether the cell at (x, y) is alive. Coordinates wrap.
func (l *Life) Get(x, y int) bool { return l.cells.Get(x, y) }

// Set writes the cell at (x, y) and returns its previous state.
// Coordinates wrap.
func (l *Life) Set(x, y int, alive bool) bool { return l.cells.Set(x, y, alive) }

// Clear kills every cell.
func (l *Life) Clear() {
	l.cells.Clear()
	l.shadow.Clear()
}

// Randomize clears the board and revives each cell with probability 1/2.
func (l *Life) Randomize(rnd *rand.Rand) {
	l.Clear()
	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			if rnd.Intn(2) == 1 {
				l.cells.Set(x, y, true)
			}
		}
	}
}

// Grid returns the live board. Mutating it mutates the simulation.
func (l *Life) Grid() *bitgrid.Grid { return l.cells }

// Step advances the simulation one generation and returns the number of
// cells that changed. Once it returns 0 the board is stable forever.
func (l *Life) Step() int {
	changed := 0

	for y := 0; y < l.Height(); y++ {
		for x := 0; x < l.Width(); x++ {
			liveCount := 0
			for dy := -1; dy <= 1; dy++ {
				for dx := -1; dx <= 1; dx++ {
					if dx == 0 && dy == 0 {
						continue
					}
					if l.cells.Get(x+dx, y+dy) {
						liveCount++
					}
				}
			}

			var alive bool
			if l.cells.Get(x, y) {
				// Continues to live
				alive = liveCount == 2 || liveCount == 3
			} else {
				// Lives, as if by reproduction
				alive = liveCount == 3
			}

			l.shadow.Set(x, y, alive)
			if l.cells.Get(x, y) != alive {
				changed++
			}
		}
	}

	l.cells, l.shadow = l.shadow, l.cells

	return changed
}

// WriteRightGlider writes a right-facing glider with its top-left corner at
// (x, y):
//
//	.O.
//	..O
//	OOO
func (l *Life) WriteRightGlider(x, y int) {
	l.Set(x+0, y+0, false)
	l.Set(x+1, y+0, true)
	l.Set(x+2, y+0, false)

	l.Set(x+0, y+1, false)
	l.Set(x+1, y+1, false)
	l.Set(x+2, y+1, true)

	l.Set(x+0, y+2, true)
	l.Set(x+1, y+2, true)
	l.Set(x+2, y+2, true)
}

// WriteLeftGlider writes a left-facing glider with its top-left corner at
// (x, y):
//
//	.O.
//	O..
//	OOO
func (l *Life) WriteLeftGlider(x, y int) {
	l.Set(x+0, y+0, false)
	l.Set(x+1, y+0, true)
	l.Set(x+2, y+0, false)

	l.Set(x+0, y+1, true)
	l.Set(x+1, y+1, false)
	l.Set(x+2, y+1, false)

	l.Set(x+0, y+2, true)
	l.Set(x+1, y+2, true)
	l.Set(x+2, y+2, true)
}

/*
Package bitgrid implements a fixed-size rectangular grid of booleans packed
eight cells per byte, row-major.

Coordinates wrap around both axes (the grid is a torus), which is convenient
for simulations; code that needs the canonical layout walks 0..Width and
0..Height and never observes the wrapping.
*/
package bitgrid

import (
	"bytes"
	"fmt"
	"math"
)

// MaxDimension is the largest supported width or height.
const MaxDimension = math.MaxInt16

// Grid is a packed W x H boolean matrix. Bit (x, y) lives at byte
// x/8 + y*ceil(W/8), bit offset x%8. The zero-size grid is valid but has no
// addressable cells.
//
// A Grid is never resized after construction.
type Grid struct {
	buf    []byte
	width  int16
	height int16
}

// New returns a zero-filled grid. It panics if either dimension is negative
// or exceeds MaxDimension; sizes are expected to be validated at the
// boundary that produced them.
func New(width, height int) *Grid {
	if width < 0 || width > MaxDimension || height < 0 || height > MaxDimension {
		panic(fmt.Sprintf("bitgrid: dimensions %dx%d out of range", width, height))
	}

	return &Grid{
		buf:    make([]byte, ((width+7)/8)*height),
		width:  int16(width),
		height: int16(height),
	}
}

// Width returns the grid width in cells.
func (g *Grid) Width() int { return int(g.width) }

// Height returns the grid height in cells.
func (g *Grid) Height() int { return int(g.height) }

// IsEmpty reports whether every cell is unset.
func (g *Grid) IsEmpty() bool {
	for _, b := range g.buf {
		if b != 0 {
			return false
		}
	}
	return true
}

// Get reports whether the cell at (x, y) is set. Coordinates wrap.
func (g *Grid) Get(x, y int) bool {
	idx, bit := g.idx(x, y)
	return g.buf[idx]&(1<<bit) != 0
}

// Set writes the cell at (x, y) and returns its previous value.
// Coordinates wrap.
func (g *Grid) Set(x, y int, v bool) bool {
	idx, bit := g.idx(x, y)
	mask := byte(1) << bit

	old := g.buf[idx]&mask != 0
	g.buf[idx] &^= mask
	if v {
		g.buf[idx] |= mask
	}

	return old
}

// Flip toggles the cell at (x, y) and returns its previous value.
// Coordinates wrap.
func (g *Grid) Flip(x, y int) bool {
	idx, bit := g.idx(x, y)
	mask := byte(1) << bit

	old := g.buf[idx]&mask != 0
	g.buf[idx] ^= mask

	return old
}

// Clear unsets every cell.
func (g *Grid) Clear() {
	for i := range g.buf {
		g.buf[i] = 0
	}
}

// Bytes returns the packed backing buffer. The slice aliases the grid:
// writing to it mutates cells directly, which is how bulk copies avoid
// per-pixel cost.
func (g *Grid) Bytes() []byte { return g.buf }

// Clone returns an independent copy of the grid.
func (g *Grid) Clone() *Grid {
	c := &Grid{
		buf:    make([]byte, len(g.buf)),
		width:  g.width,
		height: g.height,
	}
	copy(c.buf, g.buf)
	return c
}

// Equal reports whether both grids have identical dimensions and cells.
func (g *Grid) Equal(o *Grid) bool {
	return g.width == o.width && g.height == o.height && bytes.Equal(g.buf, o.buf)
}

// idx maps wrapped coordinates to a byte index and bit offset.
func (g *Grid) idx(x, y int) (int, uint) {
	w, h := int(g.width), int(g.height)
	x = ((x % w) + w) % w
	y = ((y % h) + h) % h

	return x/8 + y*((w+7)/8), uint(x % 8)
}

package bitgrid

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIdx32x1(t *testing.T) {
	t.Parallel()

	tests := []struct {
		x   int
		idx int
		bit uint
	}{
		{x: 0, idx: 0, bit: 0},
		{x: 1, idx: 0, bit: 1},
		{x: 4, idx: 0, bit: 4},
		{x: 8, idx: 1, bit: 0},
		{x: 12, idx: 1, bit: 4},
		{x: 16, idx: 2, bit: 0},
		{x: 17, idx: 2, bit: 1},
		// Wrapped coordinates address the same cells.
		{x: 0 + 32, idx: 0, bit: 0},
		{x: 1 + 32, idx: 0, bit: 1},
		{x: 8 + 32, idx: 1, bit: 0},
		{x: 17 + 32, idx: 2, bit: 1},
		{x: -1, idx: 3, bit: 7},
		{x: -32, idx: 0, bit: 0},
	}

	g := New(32, 1)
	for _, tc := range tests {
		t.Run(fmt.Sprintf("x=%d", tc.x), func(t *testing.T) {
			idx, bit := g.idx(tc.x, 0)
			require.Equal(t, tc.idx, idx)
			require.Equal(t, tc.bit, bit)

			// Must not panic.
			_ = g.Get(tc.x, 0)
		})
	}
}

func TestIdx1x32(t *testing.T) {
	t.Parallel()

	tests := []struct {
		y   int
		idx int
	}{
		{y: 0, idx: 0},
		{y: 1, idx: 1},
		{y: 4, idx: 4},
		{y: 17, idx: 17},
		{y: 0 + 32, idx: 0},
		{y: 17 + 32, idx: 17},
		{y: -1, idx: 31},
	}

	g := New(1, 32)
	for _, tc := range tests {
		t.Run(fmt.Sprintf("y=%d", tc.y), func(t *testing.T) {
			idx, bit := g.idx(0, tc.y)
			require.Equal(t, tc.idx, idx)
			require.Equal(t, uint(0), bit)

			_ = g.Get(0, tc.y)
		})
	}
}

func TestGetSet(t *testing.T) {
	t.Parallel()

	g := New(16, 16)
	require.True(t, g.IsEmpty())

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			require.True(t, g.IsEmpty())
			require.False(t, g.Get(x, y))

			require.False(t, g.Set(x, y, true))
			require.False(t, g.IsEmpty())
			require.True(t, g.Get(x, y))

			require.True(t, g.Set(x, y, false))
			require.False(t, g.Get(x, y))
		}
	}
}

func TestSetReturnsPrevious(t *testing.T) {
	t.Parallel()

	g := New(4, 4)

	require.False(t, g.Set(0, 0, true))
	require.True(t, g.Set(0, 0, true))
	require.True(t, g.Set(0, 0, false))
	require.False(t, g.Set(0, 0, false))
}

func TestFlip(t *testing.T) {
	t.Parallel()

	g := New(16, 16)

	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			require.False(t, g.Flip(x, y))
		}
	}

	require.False(t, g.IsEmpty())
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			require.True(t, g.Get(x, y))
		}
	}
}

func TestByteLayout(t *testing.T) {
	t.Parallel()

	g := New(16, 16)
	for y := 0; y < g.Height(); y++ {
		for x := 0; x < g.Width(); x++ {
			g.Set(x, y, true)
		}
	}

	byteLen := g.Width() * g.Height() / 8
	require.Len(t, g.Bytes(), byteLen)
	for _, b := range g.Bytes() {
		require.Equal(t, byte(0xff), b)
	}
}

func TestRaggedRowPadding(t *testing.T) {
	t.Parallel()

	// 9 columns pack into 2 bytes per row; the 7 pad bits stay zero.
	g := New(9, 4)
	require.Len(t, g.Bytes(), 8)

	g.Set(8, 0, true)
	require.Equal(t, byte(0x01), g.Bytes()[1])
}

func TestCloneAndEqual(t *testing.T) {
	t.Parallel()

	g := New(20, 10)
	g.Set(3, 7, true)
	g.Set(19, 9, true)

	c := g.Clone()
	require.True(t, g.Equal(c))

	c.Flip(0, 0)
	require.False(t, g.Equal(c))

	// Clone is independent storage.
	require.False(t, g.Get(0, 0))
}

func TestClear(t *testing.T) {
	t.Parallel()

	g := New(8, 8)
	for i := 0; i < 8; i++ {
		g.Set(i, i, true)
	}
	require.False(t, g.IsEmpty())

	g.Clear()
	require.True(t, g.IsEmpty())
}

func TestNewPanicsOutOfRange(t *testing.T) {
	t.Parallel()

	require.Panics(t, func() { New(-1, 4) })
	require.Panics(t, func() { New(4, MaxDimension+1) })
}

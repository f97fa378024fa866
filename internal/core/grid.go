package core

import (
	"errors"
	"fmt"
)

// ErrOutOfBounds reports a coordinate outside the grid extent.
var ErrOutOfBounds = errors.New("coordinate out of bounds")

// Coord is an integer grid position.
type Coord struct {
	X, Y int
}

// ByteGrid stores a 2D grid of byte-sized cell values in row-major order. It
// holds two generations: the committed one visible through Get and Cells, and
// a staging one written by Stage and published by Swap.
type ByteGrid struct {
	W, H int
	cur  []uint8
	nxt  []uint8
}

// NewByteGrid allocates a grid with the given dimensions.
func NewByteGrid(w, h int) *ByteGrid {
	if w <= 0 {
		w = 1
	}
	if h <= 0 {
		h = 1
	}
	total := w * h
	return &ByteGrid{W: w, H: h, cur: make([]uint8, total), nxt: make([]uint8, total)}
}

// Cells exposes the committed generation so callers can read values directly.
func (g *ByteGrid) Cells() []uint8 { return g.cur }

// Index returns the linear slice index for coordinates (x, y).
func (g *ByteGrid) Index(x, y int) int { return y*g.W + x }

// Contains reports whether c lies inside [0,W)x[0,H).
func (g *ByteGrid) Contains(c Coord) bool {
	return c.X >= 0 && c.X < g.W && c.Y >= 0 && c.Y < g.H
}

// Get returns the committed value at c.
func (g *ByteGrid) Get(c Coord) (uint8, error) {
	if !g.Contains(c) {
		return 0, fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, c.X, c.Y, g.W, g.H)
	}
	return g.cur[g.Index(c.X, c.Y)], nil
}

// Set writes v straight into the committed generation.
func (g *ByteGrid) Set(c Coord, v uint8) error {
	if !g.Contains(c) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, c.X, c.Y, g.W, g.H)
	}
	g.cur[g.Index(c.X, c.Y)] = v
	return nil
}

// Stage writes v into the staging generation. It stays invisible to Get until
// Swap is called; staging the same coordinate twice keeps the last value.
func (g *ByteGrid) Stage(c Coord, v uint8) error {
	if !g.Contains(c) {
		return fmt.Errorf("%w: (%d,%d) outside %dx%d", ErrOutOfBounds, c.X, c.Y, g.W, g.H)
	}
	g.nxt[g.Index(c.X, c.Y)] = v
	return nil
}

// Swap publishes the staging generation. The previous committed buffer becomes
// the staging buffer for the next tick.
func (g *ByteGrid) Swap() {
	g.cur, g.nxt = g.nxt, g.cur
}

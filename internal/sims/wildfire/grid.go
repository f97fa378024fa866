package wildfire

import (
	"fmt"

	"wildfire/internal/core"
)

// Grid is the double-buffered vegetation grid. Reads see the committed
// generation; Stage writes land in the staging generation until Swap.
type Grid struct {
	bytes *core.ByteGrid
	hood  core.Neighborhood
}

// NewGrid allocates a w*h grid of Green cells using the given neighbourhood
// (nil means core.Moore).
func NewGrid(w, h int, hood core.Neighborhood) *Grid {
	if hood == nil {
		hood = core.Moore{}
	}
	return &Grid{bytes: core.NewByteGrid(w, h), hood: hood}
}

// Size returns the grid extent.
func (g *Grid) Size() core.Size { return core.Size{W: g.bytes.W, H: g.bytes.H} }

// Cells exposes the committed generation, one State per byte in row-major order.
func (g *Grid) Cells() []uint8 { return g.bytes.Cells() }

// Get returns the committed state at c.
func (g *Grid) Get(c core.Coord) (State, error) {
	v, err := g.bytes.Get(c)
	return State(v), err
}

// Cell returns the committed cell at c.
func (g *Grid) Cell(c core.Coord) (Cell, error) {
	s, err := g.Get(c)
	if err != nil {
		return Cell{}, err
	}
	return Cell{State: s, Coord: c}, nil
}

// Neighbors appends the neighbourhood of c to dst.
func (g *Grid) Neighbors(c core.Coord, dst []core.Coord) []core.Coord {
	return g.hood.Neighbors(c, g.bytes.W, g.bytes.H, dst)
}

// Stage writes s for c into the staging generation.
func (g *Grid) Stage(c core.Coord, s State) error {
	if !s.Valid() {
		panic(fmt.Sprintf("wildfire: staging invalid state %d at (%d,%d)", uint8(s), c.X, c.Y))
	}
	return g.bytes.Stage(c, uint8(s))
}

// Set writes s for c straight into the committed generation.
func (g *Grid) Set(c core.Coord, s State) error {
	if !s.Valid() {
		return fmt.Errorf("%w: state %d at (%d,%d)", ErrInvalidConfiguration, uint8(s), c.X, c.Y)
	}
	return g.bytes.Set(c, uint8(s))
}

// Swap publishes the staging generation.
func (g *Grid) Swap() { g.bytes.Swap() }

// Census counts the committed generation.
func (g *Grid) Census() Census {
	var c Census
	for _, v := range g.bytes.Cells() {
		c.add(State(v))
	}
	return c
}

// checkNeighborhood fails if the neighbourhood of any cell reaches outside
// the extent.
func (g *Grid) checkNeighborhood() error {
	w, h := g.bytes.W, g.bytes.H
	var buf []core.Coord
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := core.Coord{X: x, Y: y}
			buf = g.Neighbors(c, buf[:0])
			for _, n := range buf {
				if !g.bytes.Contains(n) {
					return fmt.Errorf("neighbour (%d,%d) of (%d,%d): %w", n.X, n.Y, x, y, core.ErrOutOfBounds)
				}
			}
		}
	}
	return nil
}

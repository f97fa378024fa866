package core

// Neighborhood computes the neighbour coordinates of c on a w*h grid.
// Implementations append to dst and return the extended slice.
type Neighborhood interface {
	Neighbors(c Coord, w, h int, dst []Coord) []Coord
}

// mooreOffsets lists N, NE, E, SE, S, SW, W, NW with y growing downwards.
var mooreOffsets = [8]Coord{
	{X: 0, Y: -1},
	{X: 1, Y: -1},
	{X: 1, Y: 0},
	{X: 1, Y: 1},
	{X: 0, Y: 1},
	{X: -1, Y: 1},
	{X: -1, Y: 0},
	{X: -1, Y: -1},
}

// Moore is the 8-connected neighbourhood with clipped borders: coordinates
// outside the grid are dropped, there is no wraparound.
type Moore struct{}

// Neighbors implements Neighborhood.
func (Moore) Neighbors(c Coord, w, h int, dst []Coord) []Coord {
	for _, off := range mooreOffsets {
		nx := c.X + off.X
		ny := c.Y + off.Y
		if nx < 0 || nx >= w || ny < 0 || ny >= h {
			continue
		}
		dst = append(dst, Coord{X: nx, Y: ny})
	}
	return dst
}

// Neighbors returns the clipped Moore neighbourhood of c on g.
func (g *ByteGrid) Neighbors(c Coord, dst []Coord) []Coord {
	return Moore{}.Neighbors(c, g.W, g.H, dst)
}

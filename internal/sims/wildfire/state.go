package wildfire

import (
	"fmt"

	"wildfire/internal/core"
)

// State is the vegetation state of a single cell.
type State uint8

const (
	Green State = iota
	Burning
	Empty

	stateCount
)

// Valid reports whether s is one of the three vegetation states.
func (s State) Valid() bool { return s < stateCount }

func (s State) String() string {
	switch s {
	case Green:
		return "green"
	case Burning:
		return "burning"
	case Empty:
		return "empty"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Cell pairs a state with its position on the grid.
type Cell struct {
	State State
	Coord core.Coord
}

// Census counts cells per state.
type Census struct {
	Green   int
	Burning int
	Empty   int
}

// Total returns the number of counted cells.
func (c Census) Total() int { return c.Green + c.Burning + c.Empty }

func (c *Census) add(s State) {
	switch s {
	case Green:
		c.Green++
	case Burning:
		c.Burning++
	default:
		c.Empty++
	}
}

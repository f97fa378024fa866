package core

import (
	"errors"
	"fmt"
	"image/color"
	"sort"
)

// ErrUnknownSim is returned by Lookup for unregistered names.
var ErrUnknownSim = errors.New("unknown sim")

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sim defines the minimal contract a cellular automaton must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	Cells() []uint8
}

// Pauser is implemented by sims that own their pause gate.
type Pauser interface {
	TogglePause() bool
	Paused() bool
	// Advance moves one generation regardless of the gate.
	Advance()
}

// PaletteProvider maps cell values to colors for rendering.
type PaletteProvider interface {
	Palette() []color.RGBA
}

// Igniter accepts manual cell edits from input handling.
type Igniter interface {
	Ignite(c Coord) error
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}

// Lookup returns the factory registered under name.
func Lookup(name string) (Factory, error) {
	f, ok := sims[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (have %v)", ErrUnknownSim, name, Names())
	}
	return f, nil
}

// Names lists registered sims in sorted order.
func Names() []string {
	names := make([]string, 0, len(sims))
	for name := range sims {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

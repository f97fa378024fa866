package core

import "sync/atomic"

// PauseGate is a running/paused flag consulted once per tick. The zero value is
// running.
type PauseGate struct {
	paused atomic.Bool
}

// Toggle flips the gate once and reports whether it is now paused.
func (p *PauseGate) Toggle() bool {
	for {
		old := p.paused.Load()
		if p.paused.CompareAndSwap(old, !old) {
			return !old
		}
	}
}

// Paused reports the current state.
func (p *PauseGate) Paused() bool { return p.paused.Load() }

// Resume forces the gate back to running.
func (p *PauseGate) Resume() { p.paused.Store(false) }

package core

import (
	"testing"
	"time"
)

func TestFixedStepDue(t *testing.T) {
	fs := NewFixedStep(10)
	clock := time.Unix(0, 0)
	fs.now = func() time.Time { return clock }

	if got := fs.Due(); got != 1 {
		t.Fatalf("first call should release the primed tick, got %d", got)
	}
	clock = clock.Add(50 * time.Millisecond)
	if got := fs.Due(); got != 0 {
		t.Fatalf("half a tick elapsed, got %d", got)
	}
	clock = clock.Add(50 * time.Millisecond)
	if got := fs.Due(); got != 1 {
		t.Fatalf("one tick elapsed, got %d", got)
	}
	clock = clock.Add(10 * time.Second)
	if got := fs.Due(); got != maxCatchUp {
		t.Fatalf("stall should be capped at %d, got %d", maxCatchUp, got)
	}
	if got := fs.Due(); got != 0 {
		t.Fatalf("backlog should be dropped after a capped catch-up, got %d", got)
	}
}

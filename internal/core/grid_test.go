package core

import (
	"errors"
	"testing"
)

func TestMooreCornerHasThreeNeighbors(t *testing.T) {
	g := NewByteGrid(4, 3)
	got := g.Neighbors(Coord{}, nil)
	if len(got) != 3 {
		t.Fatalf("corner neighbors = %v, expected 3 entries", got)
	}
	for _, c := range got {
		if !g.Contains(c) {
			t.Fatalf("neighbor %v lies outside the grid", c)
		}
	}
}

func TestMooreNeighborCounts(t *testing.T) {
	g := NewByteGrid(5, 5)
	cases := []struct {
		c    Coord
		want int
	}{
		{Coord{X: 2, Y: 2}, 8},
		{Coord{X: 0, Y: 2}, 5},
		{Coord{X: 4, Y: 4}, 3},
		{Coord{X: 2, Y: 0}, 5},
	}
	for _, tc := range cases {
		if got := len(g.Neighbors(tc.c, nil)); got != tc.want {
			t.Fatalf("neighbors of %v = %d, expected %d", tc.c, got, tc.want)
		}
	}

	single := NewByteGrid(1, 1)
	if got := single.Neighbors(Coord{}, nil); len(got) != 0 {
		t.Fatalf("1x1 grid should have no neighbors, got %v", got)
	}
}

func TestMooreOrderIsStable(t *testing.T) {
	g := NewByteGrid(3, 3)
	got := g.Neighbors(Coord{X: 1, Y: 1}, nil)
	want := []Coord{
		{X: 1, Y: 0}, {X: 2, Y: 0}, {X: 2, Y: 1}, {X: 2, Y: 2},
		{X: 1, Y: 2}, {X: 0, Y: 2}, {X: 0, Y: 1}, {X: 0, Y: 0},
	}
	if len(got) != len(want) {
		t.Fatalf("got %d neighbors, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("neighbor %d = %v, expected %v", i, got[i], want[i])
		}
	}
}

func TestGetOutOfBounds(t *testing.T) {
	g := NewByteGrid(2, 2)
	for _, c := range []Coord{{X: -1, Y: 0}, {X: 0, Y: -1}, {X: 2, Y: 0}, {X: 0, Y: 2}} {
		if _, err := g.Get(c); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Get(%v) err = %v, expected ErrOutOfBounds", c, err)
		}
		if err := g.Stage(c, 1); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Stage(%v) err = %v, expected ErrOutOfBounds", c, err)
		}
		if err := g.Set(c, 1); !errors.Is(err, ErrOutOfBounds) {
			t.Fatalf("Set(%v) err = %v, expected ErrOutOfBounds", c, err)
		}
	}
}

func TestStageInvisibleUntilSwap(t *testing.T) {
	g := NewByteGrid(2, 2)
	c := Coord{X: 1, Y: 1}
	if err := g.Set(c, 1); err != nil {
		t.Fatal(err)
	}
	if err := g.Stage(c, 2); err != nil {
		t.Fatal(err)
	}
	if err := g.Stage(c, 3); err != nil {
		t.Fatal(err)
	}
	if v, _ := g.Get(c); v != 1 {
		t.Fatalf("staged value leaked before swap: got %d", v)
	}

	g.Swap()
	if v, _ := g.Get(c); v != 3 {
		t.Fatalf("after swap got %d, expected last staged value 3", v)
	}

	// The old committed buffer is now the staging buffer.
	if err := g.Stage(c, 0); err != nil {
		t.Fatal(err)
	}
	if v, _ := g.Get(c); v != 3 {
		t.Fatalf("second stage leaked before swap: got %d", v)
	}
}

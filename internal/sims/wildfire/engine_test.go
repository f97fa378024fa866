package wildfire

import (
	"errors"
	"slices"
	"testing"

	"wildfire/internal/core"
)

func fillWith(s State) SeedFunc {
	return func(core.Coord) State { return s }
}

func testConfig(w, h int) Config {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return cfg
}

func TestCenterFireSpreadsToRing(t *testing.T) {
	cfg := testConfig(3, 3)
	cfg.Params.FireChance = 0

	center := core.Coord{X: 1, Y: 1}
	e, err := New(cfg, func(c core.Coord) State {
		if c == center {
			return Burning
		}
		return Green
	})
	if err != nil {
		t.Fatal(err)
	}

	if !e.Tick() {
		t.Fatal("running engine should apply a generation")
	}

	for y := 0; y < 3; y++ {
		for x := 0; x < 3; x++ {
			c := core.Coord{X: x, Y: y}
			got, err := e.State(c)
			if err != nil {
				t.Fatal(err)
			}
			want := Burning
			if c == center {
				want = Empty
			}
			if got != want {
				t.Fatalf("cell (%d,%d) = %v, expected %v", x, y, got, want)
			}
		}
	}
	if e.Generation() != 1 {
		t.Fatalf("generation = %d, expected 1", e.Generation())
	}
}

func TestBurningAlwaysBurnsOut(t *testing.T) {
	cfg := testConfig(16, 9)
	cfg.Params.RegrowChance = 0
	e, err := New(cfg, fillWith(Burning))
	if err != nil {
		t.Fatal(err)
	}
	e.Tick()
	if census := e.Census(); census.Empty != 16*9 {
		t.Fatalf("census after one tick = %+v, expected every cell empty", census)
	}
}

func TestSingleCellGrid(t *testing.T) {
	cfg := testConfig(1, 1)
	cfg.Params.FireChance = 1
	e, err := New(cfg, fillWith(Green))
	if err != nil {
		t.Fatal(err)
	}
	e.Tick()
	if got, _ := e.State(core.Coord{}); got != Burning {
		t.Fatalf("lone green cell with certain ignition became %v", got)
	}

	cfg.Params.FireChance = 0
	e, err = New(cfg, fillWith(Green))
	if err != nil {
		t.Fatal(err)
	}
	for i := 0; i < 50; i++ {
		e.Tick()
	}
	if got, _ := e.State(core.Coord{}); got != Green {
		t.Fatalf("lone green cell without ignition became %v", got)
	}
}

func TestPauseToggleAndTick(t *testing.T) {
	cfg := testConfig(8, 8)
	cfg.Params.FireChance = 0.5
	cfg.Params.RegrowChance = 0.5
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}

	if e.Paused() {
		t.Fatal("engine should start running")
	}
	e.TogglePause()
	e.TogglePause()
	if e.Paused() {
		t.Fatal("two toggles should restore running")
	}

	if !e.TogglePause() {
		t.Fatal("toggle should report paused")
	}
	before := slices.Clone(e.Cells())
	for i := 0; i < 10; i++ {
		if e.Tick() {
			t.Fatal("paused tick reported progress")
		}
	}
	if !slices.Equal(before, e.Cells()) {
		t.Fatal("paused ticks changed the committed generation")
	}
	if e.Generation() != 0 {
		t.Fatalf("paused ticks advanced the generation counter to %d", e.Generation())
	}

	e.Advance()
	if e.Generation() != 1 {
		t.Fatal("Advance should apply a generation while paused")
	}
	if !e.Paused() {
		t.Fatal("Advance must not touch the pause gate")
	}
}

// stepInOrder applies one generation visiting cells in order, drawing from a
// per-cell source so the draws do not depend on the visit order.
func stepInOrder(t *testing.T, g *Grid, rule Rule, order []core.Coord) {
	t.Helper()
	var buf []core.Coord
	var states []State
	for _, c := range order {
		cur, err := g.Get(c)
		if err != nil {
			t.Fatal(err)
		}
		buf = g.Neighbors(c, buf[:0])
		states = states[:0]
		for _, n := range buf {
			s, err := g.Get(n)
			if err != nil {
				t.Fatal(err)
			}
			states = append(states, s)
		}
		src := fixedSource((c.X*7+c.Y*13)%5 == 0)
		if err := g.Stage(c, rule.Next(cur, states, src)); err != nil {
			t.Fatal(err)
		}
	}
	g.Swap()
}

func TestUpdateOrderDoesNotMatter(t *testing.T) {
	const w, h = 12, 10
	seed := RandomFill(0.5, 0.1, 5)
	initial := make([]State, 0, w*h)
	var order []core.Coord
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := core.Coord{X: x, Y: y}
			initial = append(initial, seed(c))
			order = append(order, c)
		}
	}
	build := func() *Grid {
		g := NewGrid(w, h, nil)
		for i, c := range order {
			if err := g.Set(c, initial[i]); err != nil {
				t.Fatal(err)
			}
		}
		return g
	}

	rule := Rule{FireChance: 0.5, RegrowChance: 0.5}
	forward := build()
	reverse := build()
	reversed := slices.Clone(order)
	slices.Reverse(reversed)

	for gen := 0; gen < 5; gen++ {
		stepInOrder(t, forward, rule, order)
		stepInOrder(t, reverse, rule, reversed)
		if !slices.Equal(forward.Cells(), reverse.Cells()) {
			t.Fatalf("generation %d differs between forward and reverse traversal", gen+1)
		}
	}
}

func TestFireFrontAdvancesOneCellPerTick(t *testing.T) {
	cfg := testConfig(6, 1)
	cfg.Params.FireChance = 0
	cfg.Params.RegrowChance = 0
	e, err := New(cfg, func(c core.Coord) State {
		if c.X == 0 {
			return Burning
		}
		return Green
	})
	if err != nil {
		t.Fatal(err)
	}
	for step := 1; step < 6; step++ {
		e.Tick()
		for x := 0; x < 6; x++ {
			got, _ := e.State(core.Coord{X: x})
			want := Green
			switch {
			case x < step:
				want = Empty
			case x == step:
				want = Burning
			}
			if got != want {
				t.Fatalf("tick %d cell %d = %v, expected %v", step, x, got, want)
			}
		}
	}
}

func TestWorkerCountDoesNotChangeResult(t *testing.T) {
	run := func(workers int) []uint8 {
		cfg := testConfig(40, 33)
		cfg.Seed = 11
		cfg.Params.FireChance = 0.05
		cfg.Params.RegrowChance = 0.2
		cfg.Params.Bands = 6
		cfg.Params.Workers = workers
		e, err := New(cfg, nil)
		if err != nil {
			t.Fatal(err)
		}
		for i := 0; i < 25; i++ {
			e.Tick()
		}
		return slices.Clone(e.Cells())
	}
	serial := run(1)
	if !slices.Equal(serial, run(4)) {
		t.Fatal("4 workers diverged from a serial run")
	}
	if !slices.Equal(serial, run(0)) {
		t.Fatal("GOMAXPROCS workers diverged from a serial run")
	}
}

func TestResetDeterministic(t *testing.T) {
	cfg := testConfig(32, 24)
	cfg.Seed = 99
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	initial := slices.Clone(e.Cells())
	for i := 0; i < 5; i++ {
		e.Tick()
	}
	e.Reset(0)
	if !slices.Equal(initial, e.Cells()) {
		t.Fatal("Reset with config seed not deterministic")
	}
	if e.Generation() != 0 {
		t.Fatal("Reset should clear the generation counter")
	}

	e.Reset(777)
	seeded := slices.Clone(e.Cells())
	e.Reset(777)
	if !slices.Equal(seeded, e.Cells()) {
		t.Fatal("Reset with explicit seed not deterministic")
	}
	if slices.Equal(initial, seeded) {
		t.Fatal("different seeds should produce different initial grids")
	}
}

func TestInitialGreenFraction(t *testing.T) {
	cfg, err := PresetConfig(PresetMoore)
	if err != nil {
		t.Fatal(err)
	}
	e, err := New(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	census := e.Census()
	if census.Total() != 600*800 {
		t.Fatalf("census covers %d cells, expected %d", census.Total(), 600*800)
	}
	frac := float64(census.Green) / float64(census.Total())
	if frac < 0.29 || frac > 0.31 {
		t.Fatalf("green fraction %.3f, expected about 0.3", frac)
	}
	if census.Burning != 0 {
		t.Fatalf("preset should not seed burning cells, got %d", census.Burning)
	}
}

type leftOnlyHood struct{}

func (leftOnlyHood) Neighbors(c core.Coord, w, h int, dst []core.Coord) []core.Coord {
	return append(dst, core.Coord{X: c.X - 1, Y: c.Y})
}

// jumpHood gives the interior cell (1,2) a neighbour two columns west.
type jumpHood struct{}

func (jumpHood) Neighbors(c core.Coord, w, h int, dst []core.Coord) []core.Coord {
	if c.X == 1 && c.Y == 2 {
		return append(dst, core.Coord{X: c.X - 2, Y: c.Y})
	}
	return dst
}

func TestNewRejectsInteriorNeighborOutsideGrid(t *testing.T) {
	cfg := testConfig(5, 5)
	cfg.Neighborhood = jumpHood{}
	_, err := New(cfg, nil)
	if !errors.Is(err, ErrInvalidConfiguration) || !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("err = %v, expected ErrInvalidConfiguration wrapping ErrOutOfBounds", err)
	}
}

func TestNewRejectsBadConfiguration(t *testing.T) {
	bad := []func(*Config){
		func(c *Config) { c.Width = 0 },
		func(c *Config) { c.Height = -3 },
		func(c *Config) { c.Params.FireChance = 1.5 },
		func(c *Config) { c.Params.RegrowChance = -0.1 },
		func(c *Config) { c.Params.Bands = 0 },
		func(c *Config) { c.Params.InitialGreen = 0.8; c.Params.InitialBurning = 0.4 },
	}
	for i, mutate := range bad {
		cfg := testConfig(4, 4)
		mutate(&cfg)
		if _, err := New(cfg, nil); !errors.Is(err, ErrInvalidConfiguration) {
			t.Fatalf("case %d: err = %v, expected ErrInvalidConfiguration", i, err)
		}
	}

	cfg := testConfig(4, 4)
	cfg.Neighborhood = leftOnlyHood{}
	_, err := New(cfg, nil)
	if !errors.Is(err, ErrInvalidConfiguration) || !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("mismatched neighbourhood err = %v, expected ErrInvalidConfiguration wrapping ErrOutOfBounds", err)
	}

	if _, err := New(testConfig(2, 2), fillWith(State(9))); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("invalid seed state err = %v, expected ErrInvalidConfiguration", err)
	}
}

func TestStateOutOfBounds(t *testing.T) {
	e, err := New(testConfig(3, 3), nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := e.State(core.Coord{X: 3, Y: 0}); !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("err = %v, expected ErrOutOfBounds", err)
	}
	if err := e.Ignite(core.Coord{X: -1}); !errors.Is(err, core.ErrOutOfBounds) {
		t.Fatalf("ignite err = %v, expected ErrOutOfBounds", err)
	}
	if err := e.Ignite(core.Coord{X: 1, Y: 1}); err != nil {
		t.Fatal(err)
	}
	if got, _ := e.State(core.Coord{X: 1, Y: 1}); got != Burning {
		t.Fatalf("ignited cell = %v", got)
	}
}

func TestSplitBands(t *testing.T) {
	bands := splitBands(10, 4)
	if len(bands) != 4 {
		t.Fatalf("got %d bands, expected 4", len(bands))
	}
	next := 0
	for _, b := range bands {
		if b.y0 != next || b.y1 <= b.y0 {
			t.Fatalf("band %+v does not continue at row %d", b, next)
		}
		next = b.y1
	}
	if next != 10 {
		t.Fatalf("bands end at %d, expected 10", next)
	}
	if got := len(splitBands(3, 8)); got != 3 {
		t.Fatalf("more bands than rows: got %d, expected 3", got)
	}
}

func TestRegisteredFactories(t *testing.T) {
	factory, err := core.Lookup("wildfire")
	if err != nil {
		t.Fatal(err)
	}
	sim, err := factory(map[string]string{"w": "20", "h": "10"})
	if err != nil {
		t.Fatal(err)
	}
	if sim.Size() != (core.Size{W: 20, H: 10}) {
		t.Fatalf("size = %+v", sim.Size())
	}
	if sim.Name() != "wildfire" {
		t.Fatalf("name = %q, expected wildfire", sim.Name())
	}
	if _, ok := sim.(core.Pauser); !ok {
		t.Fatal("wildfire engine should own its pause gate")
	}

	factory, err = core.Lookup("wildfire-moore")
	if err != nil {
		t.Fatal(err)
	}
	moore, err := factory(map[string]string{"w": "8", "h": "6"})
	if err != nil {
		t.Fatal(err)
	}
	if moore.Name() != "wildfire-moore" {
		t.Fatalf("name = %q, expected wildfire-moore", moore.Name())
	}
	if _, err := factory(map[string]string{"fire_chance": "2"}); !errors.Is(err, ErrInvalidConfiguration) {
		t.Fatalf("err = %v, expected ErrInvalidConfiguration", err)
	}
	if _, err := core.Lookup("nope"); !errors.Is(err, core.ErrUnknownSim) {
		t.Fatalf("err = %v, expected ErrUnknownSim", err)
	}
}

func TestSetFloatParameterClamps(t *testing.T) {
	e, err := New(testConfig(4, 4), nil)
	if err != nil {
		t.Fatal(err)
	}
	if !e.SetFloatParameter("fire_chance", 3) {
		t.Fatal("fire_chance should be adjustable")
	}
	if got := e.Rule().FireChance; got != 1 {
		t.Fatalf("fire chance = %v, expected clamp to 1", got)
	}
	if !e.SetFloatParameter("regrow_chance", -1) || e.Rule().RegrowChance != 0 {
		t.Fatalf("regrow chance = %v, expected clamp to 0", e.Rule().RegrowChance)
	}
	if e.SetFloatParameter("bands", 0.5) {
		t.Fatal("unknown float key accepted")
	}
	if !e.SetIntParameter("workers", 3) || e.Config().Params.Workers != 3 {
		t.Fatal("workers should be adjustable")
	}
	if e.SetIntParameter("workers", -1) {
		t.Fatal("negative workers accepted")
	}

	snap := e.Parameters()
	p, ok := snap.Lookup("fire_chance")
	if !ok || p.Value != "1" {
		t.Fatalf("snapshot fire_chance = %+v", p)
	}
}

package wildfire

import (
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"wildfire/internal/core"
)

// SeedFunc assigns the initial state of a cell. The engine calls it once per
// coordinate in row-major order on every reset.
type SeedFunc func(c core.Coord) State

// RandomFill seeds cells Burning with probability burning, Green with
// probability green and Empty otherwise.
func RandomFill(green, burning float64, seed int64) SeedFunc {
	rng := core.NewRNG(seed).Source()
	return func(core.Coord) State {
		r := rng.Float64()
		switch {
		case r < burning:
			return Burning
		case r < burning+green:
			return Green
		default:
			return Empty
		}
	}
}

// band is a horizontal slice of rows evaluated by one goroutine with its own
// generator.
type band struct {
	y0, y1 int
	rng    *core.RNG

	coords []core.Coord
	states []State
}

// Engine advances a Grid one generation per tick.
type Engine struct {
	name string
	cfg  Config
	rule Rule
	grid *Grid
	gate core.PauseGate

	seed  SeedFunc
	bands []band

	generation int
}

// New validates cfg and returns an engine seeded by seed. A nil seed fills the
// grid randomly from cfg.Params.InitialGreen and InitialBurning.
func New(cfg Config, seed SeedFunc) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	grid := NewGrid(cfg.Width, cfg.Height, cfg.Neighborhood)
	if err := grid.checkNeighborhood(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfiguration, err)
	}
	e := &Engine{
		name:  "wildfire",
		cfg:   cfg,
		rule:  Rule{FireChance: cfg.Params.FireChance, RegrowChance: cfg.Params.RegrowChance},
		grid:  grid,
		seed:  seed,
		bands: splitBands(cfg.Height, cfg.Params.Bands),
	}
	if err := e.reset(cfg.Seed); err != nil {
		return nil, err
	}
	return e, nil
}

func splitBands(height, n int) []band {
	if n > height {
		n = height
	}
	rows := (height + n - 1) / n
	bands := make([]band, 0, n)
	for y := 0; y < height; y += rows {
		y1 := y + rows
		if y1 > height {
			y1 = height
		}
		bands = append(bands, band{y0: y, y1: y1})
	}
	return bands
}

// Name returns the registry name the engine was built under.
func (e *Engine) Name() string { return e.name }

// Size reports the grid dimensions.
func (e *Engine) Size() core.Size { return e.grid.Size() }

// Cells exposes the committed generation.
func (e *Engine) Cells() []uint8 { return e.grid.Cells() }

// Grid exposes the underlying grid.
func (e *Engine) Grid() *Grid { return e.grid }

// Config returns the active configuration.
func (e *Engine) Config() Config { return e.cfg }

// Rule returns the active transition rule.
func (e *Engine) Rule() Rule { return e.rule }

// State returns the committed state at c.
func (e *Engine) State(c core.Coord) (State, error) { return e.grid.Get(c) }

// Census counts the committed generation.
func (e *Engine) Census() Census { return e.grid.Census() }

// Generation returns the number of generations applied since the last reset.
func (e *Engine) Generation() int { return e.generation }

// TogglePause flips the pause gate and reports whether the engine is now paused.
func (e *Engine) TogglePause() bool { return e.gate.Toggle() }

// Paused reports the gate state.
func (e *Engine) Paused() bool { return e.gate.Paused() }

// Ignite sets the cell at c Burning in the committed generation.
func (e *Engine) Ignite(c core.Coord) error { return e.grid.Set(c, Burning) }

// Reset reseeds the grid and the band generators. A zero seed reuses the
// configured one.
func (e *Engine) Reset(seed int64) {
	if err := e.reset(seed); err != nil {
		panic(err)
	}
}

func (e *Engine) reset(seed int64) error {
	effective := seed
	if effective == 0 {
		effective = e.cfg.Seed
	}
	master := core.NewRNG(effective)
	fill := e.seed
	if fill == nil {
		fill = RandomFill(e.cfg.Params.InitialGreen, e.cfg.Params.InitialBurning, master.Source().Int64())
	}
	size := e.grid.Size()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			c := core.Coord{X: x, Y: y}
			if err := e.grid.Set(c, fill(c)); err != nil {
				return err
			}
		}
	}
	for i := range e.bands {
		e.bands[i].rng = master.Spawn()
	}
	e.generation = 0
	return nil
}

// Step implements core.Sim.
func (e *Engine) Step() { e.Tick() }

// Tick advances one generation unless the engine is paused. It reports whether
// a generation was applied.
func (e *Engine) Tick() bool {
	if e.gate.Paused() {
		return false
	}
	e.Advance()
	return true
}

// Advance applies one generation regardless of the pause gate.
func (e *Engine) Advance() {
	workers := e.cfg.Params.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	var g errgroup.Group
	g.SetLimit(workers)
	for i := range e.bands {
		b := &e.bands[i]
		g.Go(func() error { return e.sweep(b) })
	}
	if err := g.Wait(); err != nil {
		panic(fmt.Sprintf("wildfire: grid and neighbourhood disagree: %v", err))
	}
	e.grid.Swap()
	e.generation++
}

// sweep stages the next state of every cell in b. It only reads the committed
// generation and only writes rows owned by b.
func (e *Engine) sweep(b *band) error {
	w := e.grid.Size().W
	for y := b.y0; y < b.y1; y++ {
		for x := 0; x < w; x++ {
			c := core.Coord{X: x, Y: y}
			cur, err := e.grid.Get(c)
			if err != nil {
				return err
			}
			b.coords = e.grid.Neighbors(c, b.coords[:0])
			b.states = b.states[:0]
			for _, n := range b.coords {
				s, err := e.grid.Get(n)
				if err != nil {
					return fmt.Errorf("neighbour of (%d,%d): %w", x, y, err)
				}
				b.states = append(b.states, s)
			}
			if err := e.grid.Stage(c, e.rule.Next(cur, b.states, b.rng)); err != nil {
				return err
			}
		}
	}
	return nil
}

func init() {
	register := func(name, preset string) {
		core.Register(name, func(m map[string]string) (core.Sim, error) {
			merged := map[string]string{"preset": preset}
			for k, v := range m {
				merged[k] = v
			}
			cfg, err := FromMap(merged)
			if err != nil {
				return nil, err
			}
			e, err := New(cfg, nil)
			if err != nil {
				return nil, err
			}
			e.name = name
			return e, nil
		})
	}
	register("wildfire", PresetTilemap)
	register("wildfire-moore", PresetMoore)
}

//go:build ebiten

package app

import (
	"image/color"
	"log"
	"time"

	"wildfire/internal/core"
	"wildfire/internal/render"
	"wildfire/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	hud     *ui.HUD

	onColor  color.Color
	offColor color.Color

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided simulation. seed is what the R key
// resets to; zero keeps the sim's configured seed.
func New(sim core.Sim, scale, hudWidth int, seed int64) *Game {
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(sim, hudWidth),
		onColor:  color.White,
		offColor: color.Black,
		scale:    scale,
		hudWidth: hudWidth,
		seed:     seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

func (g *Game) togglePause() {
	if p, ok := g.sim.(core.Pauser); ok {
		p.TogglePause()
		return
	}
	g.paused = !g.paused
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.togglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.igniteAtCursor()
	}

	size := g.sim.Size()
	g.hud.Update(size.W * g.scale)

	pauser, owned := g.sim.(core.Pauser)
	switch {
	case g.tickOnce && owned:
		pauser.Advance()
	case g.tickOnce || !g.paused:
		g.sim.Step()
	}
	g.tickOnce = false
	return nil
}

func (g *Game) igniteAtCursor() {
	igniter, ok := g.sim.(core.Igniter)
	if !ok || g.scale <= 0 {
		return
	}
	mx, my := ebiten.CursorPosition()
	size := g.sim.Size()
	if mx < 0 || my < 0 || mx >= size.W*g.scale || my >= size.H*g.scale {
		return
	}
	if err := igniter.Ignite(core.Coord{X: mx / g.scale, Y: my / g.scale}); err != nil {
		log.Printf("ignite: %v", err)
	}
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	if p, ok := g.sim.(core.PaletteProvider); ok {
		g.painter.BlitPalette(screen, g.sim.Cells(), p.Palette(), g.scale)
	} else {
		g.painter.Blit(screen, g.sim.Cells(), g.onColor, g.offColor, g.scale)
	}
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}

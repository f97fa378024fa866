package term

import (
	"bytes"
	"errors"
	"fmt"
	"time"

	"github.com/jroimartin/gocui"
	"github.com/logrusorgru/aurora"

	"wildfire/internal/core"
	"wildfire/internal/sims/wildfire"
)

const (
	viewField  = "field"
	viewStatus = "status"
	viewConfig = "configuration"
	viewHelp   = "help"

	leftColumnWidth = 30
	minWindowHeight = 16
	frameInterval   = 50 * time.Millisecond
)

type keyBinding struct {
	key      interface{}
	name     string
	descr    string
	handler  func(v *gocui.View) error
	viewName string
}

// Viewer draws a wildfire engine in the terminal and forwards key presses to it.
type Viewer struct {
	eng   *wildfire.Engine
	g     *gocui.Gui
	keys  []keyBinding
	fill  Fillers
	clock *core.FixedStep
	seed  int64

	lastTick time.Duration
	done     chan struct{}
}

// NewViewer creates the terminal UI. tps sets the simulation rate.
func NewViewer(eng *wildfire.Engine, tps int, seed int64) (*Viewer, error) {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return nil, fmt.Errorf("term: %w", err)
	}
	g.Mouse = true
	v := &Viewer{
		eng:   eng,
		g:     g,
		fill:  ColorFillers(),
		clock: core.NewFixedStep(tps),
		seed:  seed,
		done:  make(chan struct{}),
	}
	v.keys = []keyBinding{
		{gocui.KeyCtrlC, "^C", "Exit", v.cmdQuit, ""},
		{gocui.KeySpace, "SPACE", "Pause", v.cmdPause, ""},
		{'n', "N", "Step", v.cmdStep, ""},
		{'r', "R", "Reset", v.cmdReset, ""},
		{'s', "S", "Reseed", v.cmdReseed, ""},
		{'i', "I", "Ignite centre", v.cmdIgniteCentre, ""},
		{gocui.MouseLeft, "MOUSE", "Ignite cell", v.cmdIgniteCursor, viewField},
	}
	g.SetManagerFunc(v.layout)
	for _, kb := range v.keys {
		h := kb.handler
		if err := g.SetKeybinding(kb.viewName, kb.key, gocui.ModNone, func(_ *gocui.Gui, view *gocui.View) error { return h(view) }); err != nil {
			g.Close()
			return nil, fmt.Errorf("term: bind %s: %w", kb.name, err)
		}
	}
	return v, nil
}

// Run blocks until the user quits.
func (v *Viewer) Run() error {
	defer v.g.Close()
	go v.pump()
	defer close(v.done)
	if err := v.g.MainLoop(); err != nil && !errors.Is(err, gocui.ErrQuit) {
		return err
	}
	return nil
}

// pump schedules frames on the gocui loop; ticks and drawing both happen
// there so the engine is only touched from one goroutine.
func (v *Viewer) pump() {
	t := time.NewTicker(frameInterval)
	defer t.Stop()
	for {
		select {
		case <-v.done:
			return
		case <-t.C:
			v.g.Update(v.frame)
		}
	}
}

func (v *Viewer) frame(g *gocui.Gui) error {
	if n := v.clock.Due(); n > 0 {
		start := time.Now()
		for i := 0; i < n; i++ {
			v.eng.Tick()
		}
		v.lastTick = time.Since(start) / time.Duration(n)
	}
	v.redraw(g)
	return nil
}

func (v *Viewer) redraw(g *gocui.Gui) {
	v.renderField(g)
	v.renderStatus(g)
}

func (v *Viewer) renderField(g *gocui.Gui) {
	view, err := g.View(viewField)
	if err != nil {
		return
	}
	view.Clear()
	maxW, maxH := view.Size()
	size := v.eng.Size()
	out, cropped := renderField(v.eng.Cells(), size.W, size.H, maxW, maxH, v.fill)
	view.Title = "Forest"
	if cropped {
		view.Title = fmt.Sprintf("Forest (showing %dx%d of %dx%d)", min(maxW, size.W), min(maxH, size.H), size.W, size.H)
	}
	_, _ = fmt.Fprint(view, out)
}

func (v *Viewer) renderStatus(g *gocui.Gui) {
	view, err := g.View(viewStatus)
	if err != nil {
		return
	}
	view.Clear()
	census := v.eng.Census()
	mode := aurora.Cyan("running").String()
	if v.eng.Paused() {
		mode = aurora.Red("paused").String()
	}
	_, _ = fmt.Fprintln(view, prop("Generation", "%d", v.eng.Generation()))
	_, _ = fmt.Fprintln(view, prop("Mode", "%s", mode))
	_, _ = fmt.Fprintln(view, prop("Green", "%d", census.Green))
	_, _ = fmt.Fprintln(view, prop("Burning", "%d", census.Burning))
	_, _ = fmt.Fprintln(view, prop("Empty", "%d", census.Empty))
	_, _ = fmt.Fprintln(view, prop("Tick time", "%v", v.lastTick.Round(time.Microsecond)))
}

func (v *Viewer) renderConfiguration(view *gocui.View) {
	view.Clear()
	cfg := v.eng.Config()
	rule := v.eng.Rule()
	_, _ = fmt.Fprintln(view, prop("Preset", "%s", cfg.Preset))
	_, _ = fmt.Fprintln(view, prop("Dimension", "%d x %d", cfg.Width, cfg.Height))
	_, _ = fmt.Fprintln(view, prop("Ignition", "%g", rule.FireChance))
	_, _ = fmt.Fprintln(view, prop("Regrowth", "%g", rule.RegrowChance))
	_, _ = fmt.Fprintln(view, prop("Interval", "%v", v.clock.Interval()))
	_, _ = fmt.Fprintln(view, prop("Seed", "%d", v.seed))
}

func prop(name, format string, values ...interface{}) string {
	return " " + aurora.Green(name).String() + ": " + fmt.Sprintf(format, values...)
}

func (v *Viewer) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()
	if maxY < minWindowHeight || maxX <= leftColumnWidth+2 {
		for _, name := range []string{viewConfig, viewStatus, viewField, viewHelp} {
			_ = g.DeleteView(name)
		}
		return nil
	}

	split := (maxY - 3) / 2
	if view, err := g.SetView(viewConfig, 0, 0, leftColumnWidth, split); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		view.Title = "Configuration"
		v.renderConfiguration(view)
	}
	if view, err := g.SetView(viewStatus, 0, split+1, leftColumnWidth, maxY-3); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		view.Title = "Status"
	}
	if view, err := g.SetView(viewField, leftColumnWidth+1, 0, maxX-1, maxY-3); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		view.Title = "Forest"
	}
	if view, err := g.SetView(viewHelp, -1, maxY-3, maxX, maxY-1); err != nil {
		if !errors.Is(err, gocui.ErrUnknownView) {
			return err
		}
		view.Frame = false
		var b bytes.Buffer
		b.WriteString("KEYS: ")
		for i, k := range v.keys {
			if i != 0 {
				b.WriteString(", ")
			}
			b.WriteString(aurora.Green(k.name).String())
			b.WriteString(": ")
			b.WriteString(k.descr)
		}
		_, _ = fmt.Fprintln(view, b.String())
	}
	v.redraw(g)
	return nil
}

func (v *Viewer) cmdQuit(_ *gocui.View) error {
	return gocui.ErrQuit
}

func (v *Viewer) cmdPause(_ *gocui.View) error {
	v.eng.TogglePause()
	return nil
}

func (v *Viewer) cmdStep(_ *gocui.View) error {
	v.eng.Advance()
	return nil
}

func (v *Viewer) cmdReset(_ *gocui.View) error {
	v.eng.Reset(v.seed)
	return nil
}

func (v *Viewer) cmdReseed(_ *gocui.View) error {
	v.seed = time.Now().UnixNano()
	v.eng.Reset(v.seed)
	if view, err := v.g.View(viewConfig); err == nil {
		v.renderConfiguration(view)
	}
	return nil
}

func (v *Viewer) cmdIgniteCentre(_ *gocui.View) error {
	size := v.eng.Size()
	return v.eng.Ignite(core.Coord{X: size.W / 2, Y: size.H / 2})
}

func (v *Viewer) cmdIgniteCursor(view *gocui.View) error {
	cx, cy := view.Cursor()
	ox, oy := view.Origin()
	if err := v.eng.Ignite(core.Coord{X: cx + ox, Y: cy + oy}); err != nil && !errors.Is(err, core.ErrOutOfBounds) {
		return err
	}
	return nil
}

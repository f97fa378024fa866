//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"

	"wildfire/internal/core"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

var (
	panelColor  = color.RGBA{R: 16, G: 16, B: 20, A: 255}
	titleColor  = color.RGBA{R: 200, G: 200, B: 210, A: 255}
	labelColor  = color.RGBA{R: 220, G: 220, B: 230, A: 255}
	dimColor    = color.RGBA{R: 160, G: 160, B: 170, A: 255}
	pausedColor = color.RGBA{R: 255, G: 120, B: 90, A: 255}
)

// HUD renders the parameter panel to the right of the simulation view.
type HUD struct {
	sim        core.Sim
	width      int
	panel      *ebiten.Image
	lastHeight int
	snapshot   core.ParameterSnapshot

	controls     []controlState
	intSetter    core.IntParameterSetter
	floatSetter  core.FloatParameterSetter
	panelOffsetX int
	title        string

	pixel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width < 0 {
		width = 0
	}
	h := &HUD{sim: sim, width: width, title: buildTitle(sim)}
	if width > 0 {
		h.pixel = ebiten.NewImage(1, 1)
		h.pixel.Fill(color.White)
	}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		for _, ctrl := range provider.ParameterControls() {
			h.controls = append(h.controls, controlState{control: ctrl, value: "--"})
		}
		layoutControls(h.controls, width)
	}
	h.intSetter, _ = sim.(core.IntParameterSetter)
	h.floatSetter, _ = sim.(core.FloatParameterSetter)
	return h
}

// Update refreshes the cached parameter snapshot from the simulation and handles
// HUD interactions.
func (h *HUD) Update(panelOffsetX int) {
	if h == nil {
		return
	}
	h.panelOffsetX = panelOffsetX
	provider, ok := h.sim.(parameterProvider)
	if !ok {
		h.snapshot = core.ParameterSnapshot{}
		return
	}
	h.snapshot = provider.Parameters()
	refreshValues(h.controls, h.snapshot)
	h.handleInput()
}

// Draw paints the HUD panel anchored to the right edge of the simulation view.
func (h *HUD) Draw(screen *ebiten.Image, offsetX int, scale int) {
	if h == nil || h.width <= 0 {
		return
	}
	if scale <= 0 {
		scale = 1
	}
	height := h.sim.Size().H * scale
	if height <= 0 {
		return
	}
	if h.panel == nil || h.lastHeight != height {
		h.panel = ebiten.NewImage(h.width, height)
		h.lastHeight = height
	}
	h.panel.Fill(panelColor)
	h.drawControls()
	h.drawStatus()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	screen.DrawImage(h.panel, op)
}

func buildTitle(sim core.Sim) string {
	if sim == nil || sim.Name() == "" {
		return "Controls"
	}
	name := sim.Name()
	return fmt.Sprintf("%s%s Controls", strings.ToUpper(name[:1]), name[1:])
}

func (h *HUD) handleInput() {
	if len(h.controls) == 0 || !inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		return
	}
	mx, my := ebiten.CursorPosition()
	if mx < h.panelOffsetX {
		return
	}
	px := mx - h.panelOffsetX
	for i := range h.controls {
		state := &h.controls[i]
		if !state.hasValue {
			continue
		}
		switch {
		case state.minus.contains(px, my):
			h.apply(state, -1)
			return
		case state.plus.contains(px, my):
			h.apply(state, 1)
			return
		}
	}
}

func (h *HUD) apply(state *controlState, direction int) {
	next, changed := target(state, direction)
	if !changed {
		return
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		v := int(math.Round(next))
		if h.intSetter != nil && h.intSetter.SetIntParameter(state.control.Key, v) {
			state.intValue = v
			state.floatValue = float64(v)
			state.value = strconv.Itoa(v)
		}
	case core.ParamTypeFloat:
		if h.floatSetter != nil && h.floatSetter.SetFloatParameter(state.control.Key, next) {
			state.floatValue = next
			state.value = formatFloat(state.control, next)
		}
	}
}

func (h *HUD) canAdjust(state *controlState, direction int) bool {
	if !state.hasValue {
		return false
	}
	switch state.control.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return false
		}
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return false
		}
	default:
		return false
	}
	_, changed := target(state, direction)
	return changed
}

func (h *HUD) drawControls() {
	face := basicfont.Face7x13
	text.Draw(h.panel, h.title, face, panelPadding, panelPadding+headerBaseline, titleColor)
	for i := range h.controls {
		state := &h.controls[i]
		labelY := state.top + labelBaseline
		text.Draw(h.panel, state.control.Label, face, panelPadding, labelY, labelColor)

		valueColor := labelColor
		if !state.hasValue {
			valueColor = dimColor
		}
		valueWidth := text.BoundString(face, state.value).Dx()
		text.Draw(h.panel, state.value, face, state.minus.x0-buttonGap-valueWidth, labelY, valueColor)

		h.drawButton(state.minus, "-", h.canAdjust(state, -1))
		h.drawButton(state.plus, "+", h.canAdjust(state, 1))
	}
}

func (h *HUD) drawStatus() {
	face := basicfont.Face7x13
	y := controlsTop + len(h.controls)*lineHeight + statusSpacing
	if p, ok := h.sim.(core.Pauser); ok && p.Paused() {
		text.Draw(h.panel, "PAUSED (space to resume)", face, panelPadding, y, pausedColor)
		y += statusSpacing
	}
	for _, line := range statusLines(h.snapshot) {
		text.Draw(h.panel, line, face, panelPadding, y, dimColor)
		y += statusSpacing
	}
}

func (h *HUD) drawButton(r rect, label string, enabled bool) {
	if h.pixel == nil {
		return
	}
	bg := color.RGBA{R: 54, G: 56, B: 64, A: 255}
	fg := color.RGBA{R: 230, G: 230, B: 240, A: 255}
	if !enabled {
		bg = color.RGBA{R: 32, G: 34, B: 40, A: 255}
		fg = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(r.x1-r.x0), float64(r.y1-r.y0))
	op.GeoM.Translate(float64(r.x0), float64(r.y0))
	op.ColorScale.ScaleWithColor(bg)
	h.panel.DrawImage(h.pixel, op)

	face := basicfont.Face7x13
	bounds := text.BoundString(face, label)
	x := r.x0 + (r.x1-r.x0-bounds.Dx())/2
	y := r.y0 + (r.y1-r.y0-bounds.Dy())/2 + bounds.Dy()
	text.Draw(h.panel, label, face, x, y, fg)
}

package ui

import (
	"math"
	"strconv"

	"wildfire/internal/core"
)

const statusGroup = "Status"

// controlState tracks one adjustable parameter and its button geometry.
type controlState struct {
	control core.ParameterControl
	value   string

	intValue   int
	floatValue float64
	hasValue   bool

	top   int
	minus rect
	plus  rect
}

type rect struct{ x0, y0, x1, y1 int }

func (r rect) contains(x, y int) bool {
	return x >= r.x0 && x < r.x1 && y >= r.y0 && y < r.y1
}

// layoutControls stacks controls below the header, buttons right-aligned.
func layoutControls(controls []controlState, width int) {
	for i := range controls {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plus := rect{width - panelPadding - buttonSize, buttonY, width - panelPadding, buttonY + buttonSize}
		minus := rect{plus.x0 - buttonGap - buttonSize, buttonY, plus.x0 - buttonGap, buttonY + buttonSize}
		controls[i].top = top
		controls[i].minus = minus
		controls[i].plus = plus
	}
}

// refreshValues copies the snapshot values into the control states.
func refreshValues(controls []controlState, snap core.ParameterSnapshot) {
	for i := range controls {
		state := &controls[i]
		state.hasValue = false
		state.value = "--"
		param, ok := snap.Lookup(state.control.Key)
		if !ok {
			continue
		}
		switch state.control.Type {
		case core.ParamTypeInt:
			parsed, err := strconv.Atoi(param.Value)
			if err != nil {
				continue
			}
			state.intValue = parsed
			state.floatValue = float64(parsed)
			state.value = strconv.Itoa(parsed)
			state.hasValue = true
		case core.ParamTypeFloat:
			parsed, err := strconv.ParseFloat(param.Value, 64)
			if err != nil {
				continue
			}
			state.floatValue = parsed
			state.value = formatFloat(state.control, parsed)
			state.hasValue = true
		}
	}
}

// target returns the value one step in direction, clamped to the control
// bounds, and whether it differs from the current value.
func target(state *controlState, direction int) (float64, bool) {
	ctrl := state.control
	step := ctrl.Step
	current := state.floatValue
	if ctrl.Type == core.ParamTypeInt {
		step = math.Max(1, math.Round(step))
	} else if step <= 0 {
		step = 0.05
	}
	next := current + float64(direction)*step
	if ctrl.HasMin && next < ctrl.Min {
		next = ctrl.Min
	}
	if ctrl.HasMax && next > ctrl.Max {
		next = ctrl.Max
	}
	return next, math.Abs(next-current) > 1e-12
}

func formatFloat(ctrl core.ParameterControl, value float64) string {
	step := ctrl.Step
	if step <= 0 {
		step = 0.05
	}
	precision := 1
	switch {
	case step < 0.001:
		precision = 4
	case step < 0.01:
		precision = 3
	case step < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(value, 'f', precision, 64)
}

// statusLines renders the status group as "Label: value" rows.
func statusLines(snap core.ParameterSnapshot) []string {
	for _, group := range snap.Groups {
		if group.Name != statusGroup {
			continue
		}
		lines := make([]string, 0, len(group.Params))
		for _, p := range group.Params {
			lines = append(lines, p.Label+": "+p.Value)
		}
		return lines
	}
	return nil
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	statusSpacing  = 16
	controlsTop    = panelPadding + headerBaseline + 14
)

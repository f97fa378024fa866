package wildfire

import (
	"math"

	"wildfire/internal/core"
)

// Parameters reports the active configuration grouped for the HUD.
func (e *Engine) Parameters() core.ParameterSnapshot {
	params := e.cfg.Params
	census := e.Census()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", e.cfg.Width),
				core.IntParam("h", "Height", e.cfg.Height),
				core.Int64Param("seed", "Seed", e.cfg.Seed),
			},
		},
		{
			Name: "Fire",
			Params: []core.Parameter{
				core.FloatParam("fire_chance", "Ignition chance", e.rule.FireChance),
				core.FloatParam("regrow_chance", "Regrowth chance", e.rule.RegrowChance),
			},
		},
		{
			Name: "Seeding",
			Params: []core.Parameter{
				core.FloatParam("initial_green", "Initial green", params.InitialGreen),
				core.FloatParam("initial_burning", "Initial burning", params.InitialBurning),
			},
		},
		{
			Name: "Scheduling",
			Params: []core.Parameter{
				core.IntParam("bands", "Bands", len(e.bands)),
				core.IntParam("workers", "Workers", params.Workers),
			},
		},
		{
			Name: "Status",
			Params: []core.Parameter{
				core.IntParam("generation", "Generation", e.generation),
				core.BoolParam("paused", "Paused", e.Paused()),
				core.IntParam("green", "Green", census.Green),
				core.IntParam("burning", "Burning", census.Burning),
				core.IntParam("empty", "Empty", census.Empty),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable parameters.
func (e *Engine) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "fire_chance", Label: "Ignition", Type: core.ParamTypeFloat, Step: 0.0005, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "regrow_chance", Label: "Regrowth", Type: core.ParamTypeFloat, Step: 0.005, Min: 0, Max: 1, HasMin: true, HasMax: true},
		{Key: "workers", Label: "Workers", Type: core.ParamTypeInt, Step: 1, Min: 0, Max: 64, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a probability, clamped to [0,1].
func (e *Engine) SetFloatParameter(key string, value float64) bool {
	if math.IsNaN(value) {
		return false
	}
	value = math.Max(0, math.Min(1, value))
	switch key {
	case "fire_chance":
		e.cfg.Params.FireChance = value
		e.rule.FireChance = value
	case "regrow_chance":
		e.cfg.Params.RegrowChance = value
		e.rule.RegrowChance = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates the worker limit. The band layout is fixed at
// construction so results stay reproducible.
func (e *Engine) SetIntParameter(key string, value int) bool {
	if key != "workers" || value < 0 {
		return false
	}
	e.cfg.Params.Workers = value
	return true
}

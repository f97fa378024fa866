package wildfire

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strconv"

	"wildfire/internal/core"
)

// ErrInvalidConfiguration rejects configs that cannot produce an engine.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// Preset names.
const (
	PresetTilemap = "tilemap"
	PresetMoore   = "moore"
)

// Params holds the tunable probabilities and scheduling knobs.
type Params struct {
	FireChance     float64
	RegrowChance   float64
	InitialGreen   float64
	InitialBurning float64

	// Bands is the number of row bands, each with its own generator. Results
	// depend on the seed and Bands only.
	Bands int
	// Workers bounds concurrent band evaluation; <= 0 uses GOMAXPROCS.
	Workers int
}

// Config controls the wildfire grid.
type Config struct {
	Width  int
	Height int

	Seed   int64
	Preset string

	Params Params

	// Neighborhood defaults to core.Moore.
	Neighborhood core.Neighborhood
}

var presets = map[string]Config{
	PresetTilemap: {
		Width:  256,
		Height: 256,
		Preset: PresetTilemap,
		Params: Params{InitialGreen: 0.5},
	},
	PresetMoore: {
		Width:  600,
		Height: 800,
		Preset: PresetMoore,
		Params: Params{InitialGreen: 0.3},
	},
}

// Presets lists the available preset names.
func Presets() []string {
	names := make([]string, 0, len(presets))
	for name := range presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// DefaultConfig returns the tilemap preset.
func DefaultConfig() Config {
	cfg, _ := PresetConfig(PresetTilemap)
	return cfg
}

// PresetConfig returns the named preset with default probabilities.
func PresetConfig(name string) (Config, error) {
	p, ok := presets[name]
	if !ok {
		return Config{}, fmt.Errorf("%w: unknown preset %q (have %v)", ErrInvalidConfiguration, name, Presets())
	}
	p.Seed = 1337
	p.Params.FireChance = 0.001
	p.Params.RegrowChance = 0.01
	p.Params.Bands = 8
	return p, nil
}

// Validate reports the first problem with c.
func (c Config) Validate() error {
	if c.Width <= 0 || c.Height <= 0 {
		return fmt.Errorf("%w: grid %dx%d must be at least 1x1", ErrInvalidConfiguration, c.Width, c.Height)
	}
	probs := []struct {
		key string
		v   float64
	}{
		{"fire_chance", c.Params.FireChance},
		{"regrow_chance", c.Params.RegrowChance},
		{"initial_green", c.Params.InitialGreen},
		{"initial_burning", c.Params.InitialBurning},
	}
	for _, p := range probs {
		if math.IsNaN(p.v) || p.v < 0 || p.v > 1 {
			return fmt.Errorf("%w: %s=%v outside [0,1]", ErrInvalidConfiguration, p.key, p.v)
		}
	}
	if c.Params.InitialGreen+c.Params.InitialBurning > 1 {
		return fmt.Errorf("%w: initial_green+initial_burning exceeds 1", ErrInvalidConfiguration)
	}
	if c.Params.Bands < 1 {
		return fmt.Errorf("%w: bands=%d must be positive", ErrInvalidConfiguration, c.Params.Bands)
	}
	return nil
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// The preset key is applied first, the remaining keys override it.
func FromMap(cfg map[string]string) (Config, error) {
	c := DefaultConfig()
	if cfg == nil {
		return c, nil
	}
	if v, ok := cfg["preset"]; ok {
		p, err := PresetConfig(v)
		if err != nil {
			return Config{}, err
		}
		c = p
	}
	for _, key := range sortedKeys(cfg) {
		if key == "preset" {
			continue
		}
		if err := c.Apply(key, cfg[key]); err != nil {
			return Config{}, err
		}
	}
	return c, nil
}

// Apply sets a single key to the parsed value.
func (c *Config) Apply(key, value string) error {
	bad := func(err error) error {
		return fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfiguration, key, value, err)
	}
	switch key {
	case "w", "h", "bands", "workers":
		parsed, err := strconv.Atoi(value)
		if err != nil {
			return bad(err)
		}
		switch key {
		case "w":
			c.Width = parsed
		case "h":
			c.Height = parsed
		case "bands":
			c.Params.Bands = parsed
		default:
			c.Params.Workers = parsed
		}
	case "seed":
		parsed, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return bad(err)
		}
		c.Seed = parsed
	case "fire_chance", "regrow_chance", "initial_green", "initial_burning":
		parsed, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return bad(err)
		}
		switch key {
		case "fire_chance":
			c.Params.FireChance = parsed
		case "regrow_chance":
			c.Params.RegrowChance = parsed
		case "initial_green":
			c.Params.InitialGreen = parsed
		default:
			c.Params.InitialBurning = parsed
		}
	default:
		return fmt.Errorf("%w: unknown key %q", ErrInvalidConfiguration, key)
	}
	return nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

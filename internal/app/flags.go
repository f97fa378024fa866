package app

import (
	"flag"
	"fmt"
	"strconv"
	"strings"
)

// Overrides collects repeatable key=value flags passed to the sim factory.
type Overrides map[string]string

func (o Overrides) String() string {
	parts := make([]string, 0, len(o))
	for k, v := range o {
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, ",")
}

// Set parses a single key=value pair.
func (o Overrides) Set(value string) error {
	key, val, ok := strings.Cut(value, "=")
	if !ok || key == "" {
		return fmt.Errorf("override %q is not key=value", value)
	}
	o[key] = val
	return nil
}

// Config represents the command-line parameters for the application.
type Config struct {
	Sim      string
	Scale    int
	TPS      int
	Seed     int64
	HUDWidth int
	Set      Overrides
}

// NewConfig returns a Config populated with sensible defaults.
func NewConfig() *Config {
	return &Config{Sim: "wildfire", Scale: 3, TPS: 30, Seed: 0, HUDWidth: 220, Set: Overrides{}}
}

// Bind attaches the configuration to the provided FlagSet.
func (c *Config) Bind(fs *flag.FlagSet) {
	fs.StringVar(&c.Sim, "sim", c.Sim, "simulation to run")
	fs.IntVar(&c.Scale, "scale", c.Scale, "pixel scale multiplier")
	fs.IntVar(&c.TPS, "tps", c.TPS, "ticks per second")
	fs.Int64Var(&c.Seed, "seed", c.Seed, "simulation seed (0 keeps the preset or -set seed)")
	fs.IntVar(&c.HUDWidth, "hud", c.HUDWidth, "width of the parameter panel in pixels (0 hides it)")
	fs.Var(c.Set, "set", "sim parameter override in key=value form (repeatable)")
}

// FactoryArgs returns the overrides handed to the sim factory. A non-zero
// -seed fills the seed key unless -set already names one.
func (c *Config) FactoryArgs() map[string]string {
	args := make(map[string]string, len(c.Set)+1)
	for k, v := range c.Set {
		args[k] = v
	}
	if _, ok := args["seed"]; !ok && c.Seed != 0 {
		args["seed"] = strconv.FormatInt(c.Seed, 10)
	}
	return args
}

package main

import (
	"log"
	"strings"

	"github.com/integrii/flaggy"

	"wildfire/internal/sims/wildfire"
	"wildfire/internal/term"
)

func main() {
	preset := wildfire.PresetTilemap
	cfg := wildfire.DefaultConfig()
	cfg.Width = 0
	cfg.Height = 0
	tps := 10

	flaggy.SetName("fireterm")
	flaggy.SetDescription("Forest fire cellular automaton in the terminal")
	flaggy.DefaultParser.ShowHelpOnUnexpected = true
	flaggy.String(&preset, "p", "preset", "Grid preset ["+strings.Join(wildfire.Presets(), "|")+"]")
	flaggy.Int(&cfg.Width, "x", "width", "Width of the grid (0 keeps the preset)")
	flaggy.Int(&cfg.Height, "y", "height", "Height of the grid (0 keeps the preset)")
	flaggy.Int64(&cfg.Seed, "s", "seed", "Seed for the initial grid and the draws")
	flaggy.Float64(&cfg.Params.FireChance, "f", "fire", "Spontaneous ignition probability")
	flaggy.Float64(&cfg.Params.RegrowChance, "g", "regrow", "Regrowth probability")
	flaggy.Int(&cfg.Params.Bands, "b", "bands", "Row bands with independent generators")
	flaggy.Int(&cfg.Params.Workers, "w", "workers", "Concurrent bands (0 uses all CPUs)")
	flaggy.Int(&tps, "t", "tps", "Ticks per second")
	flaggy.Parse()

	base, err := wildfire.PresetConfig(preset)
	if err != nil {
		flaggy.ShowHelpAndExit(err.Error())
	}
	if cfg.Width == 0 {
		cfg.Width = base.Width
	}
	if cfg.Height == 0 {
		cfg.Height = base.Height
	}
	cfg.Preset = base.Preset
	cfg.Params.InitialGreen = base.Params.InitialGreen

	eng, err := wildfire.New(cfg, nil)
	if err != nil {
		log.Fatalf("fireterm: %v", err)
	}
	v, err := term.NewViewer(eng, tps, cfg.Seed)
	if err != nil {
		log.Fatalf("fireterm: %v", err)
	}
	if err := v.Run(); err != nil {
		log.Fatalf("fireterm: %v", err)
	}
}

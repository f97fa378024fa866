//go:build ebiten

package main

import (
	"errors"
	"flag"
	"log"

	"wildfire/internal/app"
	"wildfire/internal/core"
	_ "wildfire/internal/sims/wildfire"

	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	factory, err := core.Lookup(cfg.Sim)
	if err != nil {
		log.Fatal(err)
	}

	sim, err := factory(cfg.FactoryArgs())
	if err != nil {
		log.Fatalf("build %s: %v", cfg.Sim, err)
	}

	// Zero makes R reset to the seed the sim was built with.
	game := app.New(sim, cfg.Scale, cfg.HUDWidth, 0)
	size := sim.Size()

	ebiten.SetWindowTitle("wildfire - " + sim.Name())
	ebiten.SetTPS(cfg.TPS)
	ebiten.SetWindowSize(size.W*cfg.Scale+cfg.HUDWidth, size.H*cfg.Scale)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.Fatal(err)
	}
}

package main

import (
	"context"
	"fmt"
	"image/png"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"github.com/urfave/cli"

	"wildfire/internal/render"
	"wildfire/internal/sims/wildfire"
)

func main() {
	app := cli.NewApp()
	app.Name = "firesweep"
	app.Usage = "run headless wildfire scenarios across seeds and probabilities"
	app.Flags = []cli.Flag{
		cli.StringFlag{Name: "preset", Value: wildfire.PresetTilemap, Usage: "grid preset (" + strings.Join(wildfire.Presets(), ", ") + ")"},
		cli.IntFlag{Name: "width", Usage: "grid width, 0 keeps the preset"},
		cli.IntFlag{Name: "height", Usage: "grid height, 0 keeps the preset"},
		cli.IntFlag{Name: "steps", Value: 500, Usage: "generations per scenario"},
		cli.StringFlag{Name: "seeds", Value: "1,2,3", Usage: "comma separated seeds"},
		cli.StringFlag{Name: "fire", Value: "0.001", Usage: "comma separated ignition probabilities"},
		cli.StringFlag{Name: "regrow", Value: "0.01", Usage: "comma separated regrowth probabilities"},
		cli.IntFlag{Name: "workers", Value: runtime.NumCPU(), Usage: "parallel scenarios"},
		cli.StringFlag{Name: "snapshot", Usage: "write the final grid of the first scenario to this PNG file"},
		cli.BoolFlag{Name: "verbose", Usage: "log every finished scenario"},
	}
	app.Action = run

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(c *cli.Context) error {
	logger := log.NewLogfmtLogger(log.NewSyncWriter(os.Stderr))
	logger = log.With(logger, "ts", log.DefaultTimestampUTC)
	allow := level.AllowInfo()
	if c.Bool("verbose") {
		allow = level.AllowDebug()
	}
	logger = level.NewFilter(logger, allow)

	spec, err := buildSpec(c)
	if err != nil {
		return cli.NewExitError(err.Error(), 2)
	}
	level.Info(logger).Log("msg", "sweep starting", "preset", spec.Base.Preset, "width", spec.Base.Width, "height", spec.Base.Height,
		"scenarios", len(spec.Seeds)*len(spec.FireChances)*len(spec.RegrowChances), "steps", spec.Steps)

	results, err := wildfire.Sweep(context.Background(), spec, logger)
	if err != nil {
		return cli.NewExitError(err.Error(), 1)
	}

	out := log.NewLogfmtLogger(os.Stdout)
	for _, r := range results {
		out.Log("seed", r.Seed, "fire", r.FireChance, "regrow", r.RegrowChance, "steps", r.StepsSimulated,
			"green", r.Final.Green, "burning", r.Final.Burning, "empty", r.Final.Empty,
			"peak_burning", r.PeakBurning, "peak_step", r.PeakBurningStep, "burns", r.BurnEvents,
			"mean_green", strconv.FormatFloat(r.MeanGreen, 'f', 4, 64))
	}

	if path := c.String("snapshot"); path != "" {
		if err := writeSnapshot(path, spec); err != nil {
			return cli.NewExitError(err.Error(), 1)
		}
		level.Info(logger).Log("msg", "snapshot written", "path", path)
	}
	return nil
}

func buildSpec(c *cli.Context) (wildfire.SweepSpec, error) {
	base, err := wildfire.PresetConfig(c.String("preset"))
	if err != nil {
		return wildfire.SweepSpec{}, err
	}
	if w := c.Int("width"); w != 0 {
		base.Width = w
	}
	if h := c.Int("height"); h != 0 {
		base.Height = h
	}
	seeds, err := parseInts(c.String("seeds"))
	if err != nil {
		return wildfire.SweepSpec{}, fmt.Errorf("seeds: %w", err)
	}
	fires, err := parseFloats(c.String("fire"))
	if err != nil {
		return wildfire.SweepSpec{}, fmt.Errorf("fire: %w", err)
	}
	regrows, err := parseFloats(c.String("regrow"))
	if err != nil {
		return wildfire.SweepSpec{}, fmt.Errorf("regrow: %w", err)
	}
	return wildfire.SweepSpec{
		Base:          base,
		Seeds:         seeds,
		FireChances:   fires,
		RegrowChances: regrows,
		Steps:         c.Int("steps"),
		Workers:       c.Int("workers"),
	}, nil
}

func writeSnapshot(path string, spec wildfire.SweepSpec) error {
	cfg := spec.Base
	if len(spec.Seeds) > 0 {
		cfg.Seed = spec.Seeds[0]
	}
	if len(spec.FireChances) > 0 {
		cfg.Params.FireChance = spec.FireChances[0]
	}
	if len(spec.RegrowChances) > 0 {
		cfg.Params.RegrowChance = spec.RegrowChances[0]
	}
	_, eng, err := wildfire.RunScenario(cfg, spec.Steps)
	if err != nil {
		return err
	}
	size := eng.Size()
	img, err := render.Image(eng.Cells(), size.W, size.H, eng.Palette())
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseInts(s string) ([]int64, error) {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func parseFloats(s string) ([]float64, error) {
	parts := splitList(s)
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty list")
	}
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

package wildfire

import (
	"context"
	"fmt"
	"runtime"
	"sort"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	"golang.org/x/sync/errgroup"
)

// ScenarioResult captures telemetry from a deterministic headless run.
type ScenarioResult struct {
	Seed         int64
	FireChance   float64
	RegrowChance float64

	// StepsSimulated reports how many generations were applied.
	StepsSimulated int
	// Final is the census after the last generation.
	Final Census
	// PeakBurning is the largest number of simultaneously burning cells.
	PeakBurning     int
	PeakBurningStep int
	// BurnEvents counts cell-generations spent burning; each burning cell lasts
	// exactly one generation so this equals the number of ignitions.
	BurnEvents int
	// MeanGreen is the average green fraction over all simulated generations.
	MeanGreen float64
}

func (r ScenarioResult) String() string {
	return fmt.Sprintf("seed=%d fire=%g regrow=%g steps=%d green=%d burning=%d empty=%d peak=%d@%d burns=%d mean_green=%.3f",
		r.Seed, r.FireChance, r.RegrowChance, r.StepsSimulated, r.Final.Green, r.Final.Burning, r.Final.Empty,
		r.PeakBurning, r.PeakBurningStep, r.BurnEvents, r.MeanGreen)
}

// RunScenario builds an engine from cfg, advances it steps generations and
// returns the census telemetry. The engine is returned for snapshots.
func RunScenario(cfg Config, steps int) (ScenarioResult, *Engine, error) {
	e, err := New(cfg, nil)
	if err != nil {
		return ScenarioResult{}, nil, err
	}
	result := ScenarioResult{
		Seed:         cfg.Seed,
		FireChance:   cfg.Params.FireChance,
		RegrowChance: cfg.Params.RegrowChance,
	}
	total := float64(cfg.Width * cfg.Height)
	greenSum := 0.0
	for step := 1; step <= steps; step++ {
		e.Advance()
		c := e.Census()
		result.StepsSimulated = step
		result.BurnEvents += c.Burning
		if c.Burning > result.PeakBurning {
			result.PeakBurning = c.Burning
			result.PeakBurningStep = step
		}
		greenSum += float64(c.Green) / total
	}
	result.Final = e.Census()
	if steps > 0 {
		result.MeanGreen = greenSum / float64(steps)
	}
	return result, e, nil
}

// SweepSpec describes a grid of scenarios: every seed is run against every
// (fire, regrow) pair.
type SweepSpec struct {
	Base          Config
	Seeds         []int64
	FireChances   []float64
	RegrowChances []float64
	Steps         int
	Workers       int
}

func (s SweepSpec) configs() []Config {
	fires := s.FireChances
	if len(fires) == 0 {
		fires = []float64{s.Base.Params.FireChance}
	}
	regrows := s.RegrowChances
	if len(regrows) == 0 {
		regrows = []float64{s.Base.Params.RegrowChance}
	}
	seeds := s.Seeds
	if len(seeds) == 0 {
		seeds = []int64{s.Base.Seed}
	}
	var out []Config
	for _, fire := range fires {
		for _, regrow := range regrows {
			for _, seed := range seeds {
				cfg := s.Base
				cfg.Seed = seed
				cfg.Params.FireChance = fire
				cfg.Params.RegrowChance = regrow
				// Scenarios already run in parallel.
				cfg.Params.Workers = 1
				out = append(out, cfg)
			}
		}
	}
	return out
}

// Sweep runs every scenario of spec on a bounded worker pool. Results are
// ordered by fire chance, regrow chance and seed.
func Sweep(ctx context.Context, spec SweepSpec, logger log.Logger) ([]ScenarioResult, error) {
	if logger == nil {
		logger = log.NewNopLogger()
	}
	cfgs := spec.configs()
	for _, cfg := range cfgs {
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
	}
	workers := spec.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	results := make([]ScenarioResult, len(cfgs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for i, cfg := range cfgs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, _, err := RunScenario(cfg, spec.Steps)
			if err != nil {
				return err
			}
			results[i] = res
			level.Debug(logger).Log("msg", "scenario done", "seed", res.Seed, "fire", res.FireChance, "regrow", res.RegrowChance, "burns", res.BurnEvents)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(a, b int) bool {
		ra, rb := results[a], results[b]
		if ra.FireChance != rb.FireChance {
			return ra.FireChance < rb.FireChance
		}
		if ra.RegrowChance != rb.RegrowChance {
			return ra.RegrowChance < rb.RegrowChance
		}
		return ra.Seed < rb.Seed
	})
	level.Info(logger).Log("msg", "sweep finished", "scenarios", len(results), "steps", spec.Steps, "workers", workers)
	return results, nil
}

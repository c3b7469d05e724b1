package main

import (
	"math"
	"sync"

	"github.com/pthm-cable/fftocean/config"
	"github.com/pthm-cable/fftocean/ocean"
	"github.com/pthm-cable/fftocean/telemetry"
)

// Target is the sea state the calibration aims for.
type Target struct {
	Hs           float64 // Significant wave height
	FoamCoverage float64 // Fraction of cells carrying foam
}

// SeedPair is one pair of random field seeds.
type SeedPair struct {
	A, B uint32
}

// FitnessEvaluator runs headless simulations and scores them against a target.
type FitnessEvaluator struct {
	params     *ParamVector
	target     Target
	ticks      int32
	warmup     int32
	seeds      []SeedPair
	baseConfig *config.Config

	mu       sync.Mutex
	lastRun  telemetry.WindowStats
	failures int
}

// NewFitnessEvaluator creates a new evaluator. The first warmup ticks of
// every run are excluded from the sampled statistics.
func NewFitnessEvaluator(params *ParamVector, target Target, ticks, warmup int32, seeds []SeedPair, baseCfg *config.Config) *FitnessEvaluator {
	return &FitnessEvaluator{
		params:     params,
		target:     target,
		ticks:      ticks,
		warmup:     min(warmup, ticks-1),
		seeds:      seeds,
		baseConfig: baseCfg,
	}
}

// LastRun returns the window stats averaged over seeds for the most recent
// evaluation.
func (fe *FitnessEvaluator) LastRun() telemetry.WindowStats {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.lastRun
}

// Failures returns how many runs could not be started.
func (fe *FitnessEvaluator) Failures() int {
	fe.mu.Lock()
	defer fe.mu.Unlock()
	return fe.failures
}

// Evaluate computes the fitness for a raw parameter vector (lower = better).
func (fe *FitnessEvaluator) Evaluate(x []float64) float64 {
	results := make([]telemetry.WindowStats, len(fe.seeds))
	errs := make([]error, len(fe.seeds))
	var wg sync.WaitGroup

	for i, seed := range fe.seeds {
		wg.Add(1)
		go func(idx int, s SeedPair) {
			defer wg.Done()
			results[idx], errs[idx] = fe.runSimulation(x, s)
		}(i, seed)
	}
	wg.Wait()

	var avg telemetry.WindowStats
	ok := 0
	for i, r := range results {
		if errs[i] != nil {
			continue
		}
		avg.HsMean += r.HsMean
		avg.FoamCoverage += r.FoamCoverage
		avg.CrestMax = math.Max(avg.CrestMax, r.CrestMax)
		avg.Frames += r.Frames
		ok++
	}

	fe.mu.Lock()
	defer fe.mu.Unlock()
	fe.failures += len(fe.seeds) - ok
	if ok == 0 {
		fe.lastRun = telemetry.WindowStats{}
		return math.Inf(1)
	}
	avg.HsMean /= float64(ok)
	avg.FoamCoverage /= float64(ok)
	fe.lastRun = avg

	return fe.score(avg)
}

// score is the squared relative Hs error plus the squared coverage error.
func (fe *FitnessEvaluator) score(s telemetry.WindowStats) float64 {
	dh := s.HsMean - fe.target.Hs
	if fe.target.Hs > 0 {
		dh /= fe.target.Hs
	}
	dc := s.FoamCoverage - fe.target.FoamCoverage
	return dh*dh + dc*dc
}

// runSimulation executes a single headless run and returns its statistics
// collected as one window.
func (fe *FitnessEvaluator) runSimulation(x []float64, seed SeedPair) (telemetry.WindowStats, error) {
	cfg := fe.baseConfig.Clone()
	fe.params.ApplyToConfig(cfg, x)
	cfg.Spectrum.SeedA, cfg.Spectrum.SeedB = seed.A, seed.B
	cfg.Debug.Enabled = false

	sim, err := ocean.New(cfg, nil)
	if err != nil {
		return telemetry.WindowStats{}, err
	}
	defer sim.Close()

	dt := cfg.Time.DT
	collector := telemetry.NewCollector(float64(fe.ticks-fe.warmup)*dt, dt)
	var heights, foam []float64

	for sim.Ticks() < fe.ticks {
		f := sim.Tick(dt)
		if sim.Ticks() <= fe.warmup {
			continue
		}
		heights = f.Displacement.Channel(heights, 1)
		foam = f.Foam.Channel(foam, 0)
		collector.Record(telemetry.ComputeFieldStats(heights, foam))
	}

	return collector.Flush(sim.Ticks(), sim.Time()), nil
}

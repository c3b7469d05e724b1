package main

import (
	"math"
	"testing"

	"github.com/pthm-cable/fftocean/config"
)

func TestNormalizeRoundTrip(t *testing.T) {
	pv := NewParamVector()
	raw := []float64{25, 4, 2, 0.3}

	got := pv.Denormalize(pv.Normalize(raw))
	for i := range raw {
		if math.Abs(got[i]-raw[i]) > 1e-9 {
			t.Errorf("%s: got %v, want %v", pv.Specs[i].Name, got[i], raw[i])
		}
	}
}

func TestApplyToConfigClamps(t *testing.T) {
	pv := NewParamVector()
	cfg := config.MustLoad("")

	pv.ApplyToConfig(cfg, []float64{1000, -5, 3, 2})

	if cfg.Spectrum.Amplitude != 100 {
		t.Errorf("amplitude = %v, want 100", cfg.Spectrum.Amplitude)
	}
	if cfg.Spectrum.WindSpeed != 0.5 {
		t.Errorf("wind_speed = %v, want 0.5", cfg.Spectrum.WindSpeed)
	}
	if cfg.Surface.BubblesScale != 3 {
		t.Errorf("bubbles_scale = %v, want 3", cfg.Surface.BubblesScale)
	}
	if cfg.Surface.BubblesThreshold != 0.9 {
		t.Errorf("bubbles_threshold = %v, want 0.9", cfg.Surface.BubblesThreshold)
	}
}

func TestFromConfigMatchesDefaults(t *testing.T) {
	pv := NewParamVector()
	got := pv.FromConfig(config.MustLoad(""))
	for i, spec := range pv.Specs {
		if got[i] != spec.Default {
			t.Errorf("%s: config %v, spec default %v", spec.Name, got[i], spec.Default)
		}
	}
}

func TestEvaluateScoresRuns(t *testing.T) {
	cfg := config.MustLoad("")
	cfg.FFT.Pow = 4
	cfg.Compute.Workers = 1
	if err := cfg.Refresh(); err != nil {
		t.Fatal(err)
	}

	pv := NewParamVector()
	seeds := []SeedPair{{A: 1, B: 2}, {A: 3, B: 4}}
	fe := NewFitnessEvaluator(pv, Target{Hs: 1, FoamCoverage: 0}, 6, 2, seeds, cfg)

	fitness := fe.Evaluate(pv.FromConfig(cfg))
	if math.IsInf(fitness, 0) || math.IsNaN(fitness) {
		t.Fatalf("fitness = %v", fitness)
	}
	run := fe.LastRun()
	if run.Frames != 8 {
		t.Errorf("frames = %d, want 8 (4 sampled ticks per seed)", run.Frames)
	}
	if run.HsMean <= 0 {
		t.Errorf("hs = %v, want > 0", run.HsMean)
	}
	if fe.Failures() != 0 {
		t.Errorf("failures = %d", fe.Failures())
	}
}

func TestEvaluateCountsFailures(t *testing.T) {
	cfg := config.MustLoad("")
	cfg.FFT.Pow = 9
	cfg.Compute.MemoryBudgetMB = 1
	if err := cfg.Refresh(); err != nil {
		t.Fatal(err)
	}

	pv := NewParamVector()
	fe := NewFitnessEvaluator(pv, Target{Hs: 1}, 4, 0, []SeedPair{{A: 1, B: 1}}, cfg)

	if got := fe.Evaluate(pv.FromConfig(cfg)); !math.IsInf(got, 1) {
		t.Errorf("fitness = %v, want +Inf", got)
	}
	if fe.Failures() != 1 {
		t.Errorf("failures = %d, want 1", fe.Failures())
	}
}

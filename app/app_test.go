package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/fftocean/config"
)

func headlessConfig(t *testing.T) *config.Config {
	t.Helper()
	cfg := config.MustLoad("")
	cfg.FFT.Pow = 4
	cfg.Time.DT = 0.25
	cfg.Compute.Workers = 2
	if err := cfg.Refresh(); err != nil {
		t.Fatal(err)
	}
	return cfg
}

func TestHeadlessRunWritesWindows(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	a, err := New(headlessConfig(t), Options{
		Headless:       true,
		StatsWindowSec: 1.0,
		OutputDir:      dir,
		StepsPerUpdate: 2,
	})
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 5; i++ {
		a.UpdateHeadless()
	}
	if a.Tick() != 10 {
		t.Errorf("tick = %d, want 10", a.Tick())
	}
	a.Unload()

	data, err := os.ReadFile(filepath.Join(dir, "frames.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("frames.csv has %d lines, want header + 2 windows:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "window_end,") {
		t.Errorf("header = %q", lines[0])
	}
	if !strings.HasPrefix(lines[1], "4,") || !strings.HasPrefix(lines[2], "8,") {
		t.Errorf("window ends = %q, %q", lines[1], lines[2])
	}

	for _, name := range []string{"perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("%s: %v", name, err)
		}
	}
}

func TestHeadlessWithoutOutput(t *testing.T) {
	a, err := New(headlessConfig(t), Options{Headless: true})
	if err != nil {
		t.Fatal(err)
	}
	defer a.Unload()

	if a.sampling() {
		t.Error("headless run without outputs should not sample field stats")
	}
	a.UpdateHeadless()
	if a.Tick() != 1 {
		t.Errorf("tick = %d, want 1", a.Tick())
	}
}

func TestNewRejectsOversizedGrid(t *testing.T) {
	cfg := headlessConfig(t)
	cfg.FFT.Pow = 9
	cfg.Compute.MemoryBudgetMB = 1
	if err := cfg.Refresh(); err != nil {
		t.Fatal(err)
	}

	if _, err := New(cfg, Options{Headless: true}); err == nil {
		t.Fatal("expected capacity error")
	}
}

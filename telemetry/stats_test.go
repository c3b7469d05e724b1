package telemetry

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/fftocean/config"
)

func TestPercentile(t *testing.T) {
	tests := []struct {
		name   string
		sorted []float64
		p      float64
		want   float64
	}{
		{"empty slice", []float64{}, 0.5, 0},
		{"single element", []float64{5.0}, 0.5, 5.0},
		{"p0", []float64{1, 2, 3, 4, 5}, 0.0, 1.0},
		{"p100", []float64{1, 2, 3, 4, 5}, 1.0, 5.0},
		{"p50 odd", []float64{1, 2, 3, 4, 5}, 0.5, 3.0},
		{"p50 even", []float64{1, 2, 3, 4}, 0.5, 2.5},
		{"p10", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.1, 1.9},
		{"p90", []float64{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, 0.9, 9.1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(tt.sorted, tt.p)
			if math.Abs(got-tt.want) > 0.001 {
				t.Errorf("Percentile(%v, %v) = %v, want %v", tt.sorted, tt.p, got, tt.want)
			}
		})
	}
}

func TestComputeDistribution(t *testing.T) {
	values := []float64{1.0, 0.9, 0.8, 0.7, 0.6, 0.5, 0.4, 0.3, 0.2, 0.1}
	mean, p10, p50, p90 := ComputeDistribution(values)

	if math.Abs(mean-0.55) > 0.001 {
		t.Errorf("mean = %v, want 0.55", mean)
	}
	if math.Abs(p10-0.19) > 0.01 {
		t.Errorf("p10 = %v, want ~0.19", p10)
	}
	if math.Abs(p50-0.55) > 0.01 {
		t.Errorf("p50 = %v, want ~0.55", p50)
	}
	if math.Abs(p90-0.91) > 0.01 {
		t.Errorf("p90 = %v, want ~0.91", p90)
	}
	// Input order is left alone
	if values[0] != 1.0 {
		t.Error("expected input slice to stay unsorted")
	}

	if m, a, b, c := ComputeDistribution(nil); m != 0 || a != 0 || b != 0 || c != 0 {
		t.Error("empty slice should return all zeros")
	}
}

func TestComputeFieldStats(t *testing.T) {
	// Square wave of amplitude 0.5: σ = 0.5, Hs = 2
	heights := []float64{0.5, -0.5, 0.5, -0.5, 0.5, -0.5, 0.5, -0.5}
	foam := []float64{0, 0, 0.5, 1, 0, 0, 0, 0}

	fs := ComputeFieldStats(heights, foam)
	if math.Abs(fs.HeightMean) > 1e-12 {
		t.Errorf("expected zero mean, got %v", fs.HeightMean)
	}
	if math.Abs(fs.Hs-2) > 1e-12 {
		t.Errorf("expected Hs=2, got %v", fs.Hs)
	}
	if fs.HeightMin != -0.5 || fs.HeightMax != 0.5 {
		t.Errorf("expected extremes ±0.5, got %v %v", fs.HeightMin, fs.HeightMax)
	}
	if fs.FoamCoverage != 0.25 {
		t.Errorf("expected 25%% coverage, got %v", fs.FoamCoverage)
	}
	if math.Abs(fs.FoamMean-0.1875) > 1e-12 {
		t.Errorf("expected foam mean 0.1875, got %v", fs.FoamMean)
	}

	if empty := ComputeFieldStats(nil, nil); empty != (FieldStats{}) {
		t.Errorf("expected zero stats for empty input, got %+v", empty)
	}
}

func TestCollectorWindow(t *testing.T) {
	c := NewCollector(1.0, 0.25)
	if c.WindowDurationTicks() != 4 {
		t.Fatalf("expected 4 ticks per window, got %d", c.WindowDurationTicks())
	}

	for tick := int32(1); tick <= 4; tick++ {
		c.Record(FieldStats{Hs: float64(tick), HeightMax: float64(tick), HeightMin: -float64(tick), FoamCoverage: 0.1})
		if tick < 4 && c.ShouldFlush(tick) {
			t.Fatalf("flushed early at tick %d", tick)
		}
	}
	if !c.ShouldFlush(4) {
		t.Fatal("expected window to be complete at tick 4")
	}

	ws := c.Flush(4, 1.0)
	if ws.Frames != 4 || ws.WindowStartTick != 0 || ws.WindowEndTick != 4 {
		t.Errorf("unexpected window bounds: %+v", ws)
	}
	if math.Abs(ws.HsMean-2.5) > 1e-12 {
		t.Errorf("expected Hs mean 2.5, got %v", ws.HsMean)
	}
	if ws.CrestMax != 4 || ws.TroughMin != -4 {
		t.Errorf("expected extremes ±4, got %v %v", ws.CrestMax, ws.TroughMin)
	}

	// Next window starts empty
	next := c.Flush(8, 2.0)
	if next.Frames != 0 || next.CrestMax != 0 || next.WindowStartTick != 4 {
		t.Errorf("expected empty window after flush, got %+v", next)
	}
}

func TestOutputManagerWritesHeadersOnce(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatalf("NewOutputManager: %v", err)
	}

	for i := int32(1); i <= 3; i++ {
		if err := om.WriteStats(WindowStats{WindowEndTick: i * 10, HsMean: 1.5}); err != nil {
			t.Fatalf("WriteStats: %v", err)
		}
		if err := om.WritePerf(NewPerfCollector(4).Stats(), i*10); err != nil {
			t.Fatalf("WritePerf: %v", err)
		}
	}

	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if err := om.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	for name, header := range map[string]string{"frames.csv": "window_end,sim_time", "perf.csv": "window_end,avg_tick_us"} {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			t.Fatalf("reading %s: %v", name, err)
		}
		lines := strings.Split(strings.TrimSpace(string(data)), "\n")
		if len(lines) != 4 {
			t.Errorf("%s: expected header plus 3 rows, got %d lines", name, len(lines))
		}
		if !strings.HasPrefix(lines[0], header) {
			t.Errorf("%s: unexpected header %q", name, lines[0])
		}
		if strings.Count(string(data), header) != 1 {
			t.Errorf("%s: expected header exactly once", name)
		}
	}

	if _, err := os.Stat(filepath.Join(dir, "config.yaml")); err != nil {
		t.Errorf("expected config.yaml: %v", err)
	}
}

func TestOutputManagerDisabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager for empty dir, got %v %v", om, err)
	}
	// Nil manager accepts writes
	if err := om.WriteStats(WindowStats{}); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

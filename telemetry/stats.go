package telemetry

import (
	"log/slog"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// FieldStats summarizes one published frame.
type FieldStats struct {
	HeightMean float64
	HeightStd  float64
	HeightMin  float64
	HeightMax  float64

	// Significant wave height, 4σ of the surface elevation
	Hs float64

	FoamMean     float64
	FoamCoverage float64 // Fraction of cells with any foam
}

// ComputeFieldStats summarizes the height and foam channels of a frame.
func ComputeFieldStats(heights, foam []float64) FieldStats {
	var fs FieldStats
	if len(heights) > 0 {
		fs.HeightMean, fs.HeightStd = stat.PopMeanStdDev(heights, nil)
		fs.HeightMin = floats.Min(heights)
		fs.HeightMax = floats.Max(heights)
		fs.Hs = 4 * fs.HeightStd
	}
	if len(foam) > 0 {
		fs.FoamMean = stat.Mean(foam, nil)
		covered := 0
		for _, v := range foam {
			if v > 0 {
				covered++
			}
		}
		fs.FoamCoverage = float64(covered) / float64(len(foam))
	}
	return fs
}

// WindowStats holds aggregated field statistics for a time window.
type WindowStats struct {
	WindowStartTick int32   `csv:"-"`
	WindowEndTick   int32   `csv:"window_end"`
	SimTimeSec      float64 `csv:"sim_time"`
	Frames          int     `csv:"frames"`

	// Significant wave height over the window's frames
	HsMean float64 `csv:"hs_mean"`
	HsP10  float64 `csv:"hs_p10"`
	HsP50  float64 `csv:"hs_p50"`
	HsP90  float64 `csv:"hs_p90"`

	// Extremes of surface elevation seen during the window
	CrestMax  float64 `csv:"crest_max"`
	TroughMin float64 `csv:"trough_min"`

	FoamMean     float64 `csv:"foam_mean"`
	FoamCoverage float64 `csv:"foam_coverage"`
	FoamP90      float64 `csv:"foam_coverage_p90"`
}

// Percentile calculates the p-th percentile of a sorted slice.
// p should be in [0, 1]. Returns 0 if slice is empty.
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[n-1]
	}

	// Linear interpolation
	idx := p * float64(n-1)
	lo := int(idx)
	hi := lo + 1
	if hi >= n {
		return sorted[n-1]
	}

	frac := idx - float64(lo)
	return sorted[lo]*(1-frac) + sorted[hi]*frac
}

// ComputeDistribution calculates mean and percentiles of values.
func ComputeDistribution(values []float64) (mean, p10, p50, p90 float64) {
	n := len(values)
	if n == 0 {
		return 0, 0, 0, 0
	}

	mean = stat.Mean(values, nil)

	sorted := make([]float64, n)
	copy(sorted, values)
	sort.Float64s(sorted)

	p10 = Percentile(sorted, 0.10)
	p50 = Percentile(sorted, 0.50)
	p90 = Percentile(sorted, 0.90)

	return mean, p10, p50, p90
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartTick)),
		slog.Int("window_end", int(s.WindowEndTick)),
		slog.Float64("sim_time", s.SimTimeSec),
		slog.Int("frames", s.Frames),
		slog.Float64("hs_mean", s.HsMean),
		slog.Float64("hs_p10", s.HsP10),
		slog.Float64("hs_p50", s.HsP50),
		slog.Float64("hs_p90", s.HsP90),
		slog.Float64("crest_max", s.CrestMax),
		slog.Float64("trough_min", s.TroughMin),
		slog.Float64("foam_mean", s.FoamMean),
		slog.Float64("foam_coverage", s.FoamCoverage),
		slog.Float64("foam_coverage_p90", s.FoamP90),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats",
		"window_end", s.WindowEndTick,
		"sim_time", s.SimTimeSec,
		"frames", s.Frames,
		"hs_mean", round3(s.HsMean),
		"hs_p50", round3(s.HsP50),
		"crest_max", round3(s.CrestMax),
		"trough_min", round3(s.TroughMin),
		"foam_coverage", round3(s.FoamCoverage),
	)
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}

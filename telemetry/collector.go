package telemetry

import "math"

// Collector accumulates per-frame field statistics within time windows and
// produces WindowStats.
type Collector struct {
	windowDurationSec   float64
	windowDurationTicks int32
	dt                  float64

	// Current window tracking
	windowStartTick int32

	hs        []float64
	foamMean  []float64
	coverage  []float64
	crestMax  float64
	troughMin float64
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in simulation seconds
// dt: simulation seconds per tick
func NewCollector(windowDurationSec, dt float64) *Collector {
	ticksPerWindow := int32(windowDurationSec / dt)
	if ticksPerWindow < 1 {
		ticksPerWindow = 1
	}

	c := &Collector{
		windowDurationSec:   windowDurationSec,
		windowDurationTicks: ticksPerWindow,
		dt:                  dt,
	}
	c.reset()
	return c
}

// Record adds one frame's statistics to the current window.
func (c *Collector) Record(fs FieldStats) {
	c.hs = append(c.hs, fs.Hs)
	c.foamMean = append(c.foamMean, fs.FoamMean)
	c.coverage = append(c.coverage, fs.FoamCoverage)
	c.crestMax = math.Max(c.crestMax, fs.HeightMax)
	c.troughMin = math.Min(c.troughMin, fs.HeightMin)
}

// ShouldFlush returns true if enough ticks have passed to flush the window.
func (c *Collector) ShouldFlush(currentTick int32) bool {
	return currentTick-c.windowStartTick >= c.windowDurationTicks
}

// Flush produces a WindowStats and resets the window.
func (c *Collector) Flush(currentTick int32, simTime float64) WindowStats {
	hsMean, hsP10, hsP50, hsP90 := ComputeDistribution(c.hs)
	foamMean, _, _, _ := ComputeDistribution(c.foamMean)
	covMean, _, _, covP90 := ComputeDistribution(c.coverage)

	stats := WindowStats{
		WindowStartTick: c.windowStartTick,
		WindowEndTick:   currentTick,
		SimTimeSec:      simTime,
		Frames:          len(c.hs),

		HsMean: hsMean,
		HsP10:  hsP10,
		HsP50:  hsP50,
		HsP90:  hsP90,

		FoamMean:     foamMean,
		FoamCoverage: covMean,
		FoamP90:      covP90,
	}
	if stats.Frames > 0 {
		stats.CrestMax = c.crestMax
		stats.TroughMin = c.troughMin
	}

	c.windowStartTick = currentTick
	c.reset()

	return stats
}

func (c *Collector) reset() {
	c.hs = c.hs[:0]
	c.foamMean = c.foamMean[:0]
	c.coverage = c.coverage[:0]
	c.crestMax = math.Inf(-1)
	c.troughMin = math.Inf(1)
}

// WindowDurationTicks returns the number of ticks per window.
func (c *Collector) WindowDurationTicks() int32 {
	return c.windowDurationTicks
}

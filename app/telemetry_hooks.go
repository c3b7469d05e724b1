package app

import "log/slog"

// flushTelemetry closes the stats window once it is complete, logging it
// and writing it to the run output.
func (a *App) flushTelemetry() {
	tick := a.sim.Ticks()
	if !a.collector.ShouldFlush(tick) {
		return
	}

	stats := a.collector.Flush(tick, a.sim.Time())
	perfStats := a.perf.Stats()

	if a.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if a.output != nil {
		if err := a.output.WriteStats(stats); err != nil {
			slog.Error("failed to write stats", "error", err)
		}
		if err := a.output.WritePerf(perfStats, stats.WindowEndTick); err != nil {
			slog.Error("failed to write perf", "error", err)
		}
	}
}

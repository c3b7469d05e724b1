package ocean

import (
	"github.com/pthm-cable/fftocean/fft"
	"github.com/pthm-cable/fftocean/field"
	"github.com/pthm-cable/fftocean/spectrum"
	"github.com/pthm-cable/fftocean/surface"
	"github.com/pthm-cable/fftocean/telemetry"
)

// Tick advances time by dt·TimeScale, runs the pipeline and publishes the
// frame. The mode is decided from the debug settings of this tick alone.
func (s *Simulation) Tick(dt float64) *Frame {
	cfg := s.cfg
	s.perf.StartTick()

	s.t += dt * cfg.Time.TimeScale
	s.ticks++

	s.perf.StartPhase(telemetry.PhaseSpectrum)
	s.synth.Initial(spectrum.Params{
		Amplitude: cfg.Spectrum.Amplitude,
		WindDirX:  cfg.Derived.WindDirX,
		WindDirZ:  cfg.Derived.WindDirZ,
		WindSpeed: cfg.Spectrum.WindSpeed,
	})
	s.synth.Evolve(s.t, s.h)

	s.perf.StartPhase(telemetry.PhaseDisplacement)
	spectrum.BuildDisplacement(s.h, s.dx, s.dz, s.n, cfg.Mesh.Length, s.pool)

	s.height.Load(s.h)
	s.dispX.Load(s.dx)
	s.dispZ.Load(s.dz)

	if cfg.Debug.Enabled {
		s.runTruncated(s.debugStop())
		s.perf.StartPhase(telemetry.PhasePublish)
		s.publishSpectra()
	} else {
		s.runTruncated(s.engine.TotalPasses())
		s.synthesize()
	}

	s.frame.Tick = s.ticks
	s.frame.Time = s.t
	s.frame.Axis, s.frame.Passes = s.height.Progress()

	s.perf.EndTick()
	return &s.frame
}

// debugStop converts the debug stage and axis into an overall pass count.
// Stage 0 stops before the first pass on either axis.
func (s *Simulation) debugStop() int {
	d := s.cfg.Debug
	if d.Stage == 0 {
		return 0
	}
	if d.Horizontal {
		return s.engine.StopAfter(fft.Horizontal, d.Stage)
	}
	return s.engine.StopAfter(fft.Vertical, d.Stage)
}

// runTruncated advances the three transforms to stop passes, timing the
// row and column halves separately.
func (s *Simulation) runTruncated(stop int) {
	rows := min(stop, s.engine.PassesPerAxis())

	s.perf.StartPhase(telemetry.PhaseFFTHorizontal)
	s.height.AdvanceTo(rows)
	s.dispX.AdvanceTo(rows)
	s.dispZ.AdvanceTo(rows)

	if stop > rows {
		s.perf.StartPhase(telemetry.PhaseFFTVertical)
		s.height.AdvanceTo(stop)
		s.dispX.AdvanceTo(stop)
		s.dispZ.AdvanceTo(stop)
	}
}

// publishSpectra exposes the current, possibly unfinished, transform
// buffers as complex textures.
func (s *Simulation) publishSpectra() {
	s.frame.Mode = DebugSpectrumView
	for _, p := range []struct {
		tr  *fft.Transform
		dst *field.Texture
	}{
		{s.height, s.frame.Height},
		{s.dispX, s.frame.DisplaceX},
		{s.dispZ, s.frame.DisplaceZ},
	} {
		s.view = p.tr.Snapshot(s.view)
		s.pool.For(s.n, func(z0, z1 int) {
			p.dst.StoreComplex(s.view, z0, z1)
		})
	}
}

// synthesize takes the real parts of the finished transforms and builds the
// displacement, normal and foam textures.
func (s *Simulation) synthesize() {
	cfg := s.cfg
	s.perf.StartPhase(telemetry.PhaseSurface)

	s.hReal = s.height.Real(s.hReal)
	s.xReal = s.dispX.Real(s.xReal)
	s.zReal = s.dispZ.Real(s.zReal)

	p := surface.Params{
		Lambda:           cfg.Surface.Lambda,
		HeightScale:      cfg.Surface.HeightScale,
		BubblesScale:     cfg.Surface.BubblesScale,
		BubblesThreshold: cfg.Surface.BubblesThreshold,
		CellSpacing:      cfg.Derived.CellSpacing,
	}
	s.surf.Displacement(s.hReal, s.xReal, s.zReal, p, s.frame.Displacement)
	s.surf.NormalsAndFoam(p, s.frame.Normal, s.frame.Foam)

	s.perf.StartPhase(telemetry.PhasePublish)
	s.frame.Mode = FullSimulation
	s.pool.For(s.n, func(z0, z1 int) {
		s.frame.Height.StoreScalar(s.hReal, p.HeightScale, z0, z1)
		s.frame.DisplaceX.StoreScalar(s.xReal, p.Lambda, z0, z1)
		s.frame.DisplaceZ.StoreScalar(s.zReal, p.Lambda, z0, z1)
	})
}

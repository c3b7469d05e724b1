// Package ocean drives the per-tick pipeline: spectrum evolution,
// displacement spectra, the 2D inverse FFTs and surface synthesis, and
// publishes the resulting textures as a Frame.
package ocean

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pthm-cable/fftocean/config"
	"github.com/pthm-cable/fftocean/fft"
	"github.com/pthm-cable/fftocean/field"
	"github.com/pthm-cable/fftocean/parallel"
	"github.com/pthm-cable/fftocean/spectrum"
	"github.com/pthm-cable/fftocean/surface"
	"github.com/pthm-cable/fftocean/telemetry"
)

// ErrCapacity is returned when the field buffers for a grid would exceed
// compute.memory_budget_mb.
var ErrCapacity = errors.New("ocean: grid exceeds memory budget")

// Per-cell footprint of every buffer a Simulation allocates.
const (
	complexFields = 2 + 3 + 3*2 + 1 // gauss+H0, H/Dx/Dz, FFT ping-pong pairs, debug view
	realFields    = 3               // spatial height, dx, dz
	vec3Size      = 3 * 8           // surface working positions
	textureCount  = 6
)

// EstimateBytes returns the memory held by a Simulation of side n.
func EstimateBytes(n int) int64 {
	cells := int64(n) * int64(n)
	perCell := int64(complexFields*16 + realFields*8 + vec3Size + textureCount*field.Channels*4)
	return cells * perCell
}

// Simulation owns simulation time, the configuration in effect and every
// field buffer of the pipeline. It is not safe for concurrent use.
type Simulation struct {
	cfg  *config.Config
	pool *parallel.Pool
	perf *telemetry.PerfCollector

	n      int
	synth  *spectrum.Synthesizer
	engine *fft.Engine
	height *fft.Transform
	dispX  *fft.Transform
	dispZ  *fft.Transform
	surf   *surface.Synthesizer

	h, dx, dz []complex128
	view      []complex128

	hReal, xReal, zReal []float64

	frame Frame
	t     float64
	ticks int32
}

// New validates cfg, checks the grid against the memory budget and
// allocates the pipeline. perf may be nil.
func New(cfg *config.Config, perf *telemetry.PerfCollector) (*Simulation, error) {
	c := cfg.Clone()
	if err := c.Refresh(); err != nil {
		return nil, err
	}
	if err := checkCapacity(c); err != nil {
		return nil, err
	}

	s := &Simulation{
		cfg:  c,
		pool: parallel.NewPool(c.Compute.Workers),
		perf: perf,
	}
	if err := s.allocate(); err != nil {
		s.pool.Close()
		return nil, err
	}

	slog.Info("ocean initialized",
		"n", s.n,
		"workers", s.pool.Workers(),
		"est_mb", EstimateBytes(s.n)>>20,
		"seed_a", c.Spectrum.SeedA,
		"seed_b", c.Spectrum.SeedB,
	)
	return s, nil
}

func checkCapacity(c *config.Config) error {
	need := EstimateBytes(c.Derived.N)
	budget := int64(c.Compute.MemoryBudgetMB) << 20
	if need > budget {
		return fmt.Errorf("%w: N=%d needs %d MB, budget %d MB",
			ErrCapacity, c.Derived.N, need>>20, c.Compute.MemoryBudgetMB)
	}
	return nil
}

// allocate (re)builds every buffer for the grid side in s.cfg and
// regenerates the random field.
func (s *Simulation) allocate() error {
	n := s.cfg.Derived.N
	engine, err := fft.NewEngine(n, s.pool)
	if err != nil {
		return fmt.Errorf("creating fft engine: %w", err)
	}

	s.n = n
	s.engine = engine
	s.synth = spectrum.NewSynthesizer(n, s.cfg.Mesh.Length, s.seed(), s.pool)
	s.height = engine.NewTransform()
	s.dispX = engine.NewTransform()
	s.dispZ = engine.NewTransform()
	s.surf = surface.NewSynthesizer(n, s.pool)

	s.h = make([]complex128, n*n)
	s.dx = make([]complex128, n*n)
	s.dz = make([]complex128, n*n)
	s.view = make([]complex128, n*n)
	s.hReal = make([]float64, n*n)
	s.xReal = make([]float64, n*n)
	s.zReal = make([]float64, n*n)

	s.frame = newFrame(n)
	return nil
}

func (s *Simulation) seed() spectrum.Seed {
	return spectrum.Seed{A: s.cfg.Spectrum.SeedA, B: s.cfg.Spectrum.SeedB}
}

// Configure applies a new configuration. Grid side or seed changes
// reallocate the buffers and regenerate the random field; everything else
// takes effect on the next tick. On error the previous configuration stays
// in effect.
func (s *Simulation) Configure(cfg *config.Config) error {
	c := cfg.Clone()
	if err := c.Refresh(); err != nil {
		return err
	}

	if c.Compute.Workers != s.cfg.Compute.Workers {
		slog.Warn("compute.workers change ignored until restart",
			"current", s.pool.Workers(), "requested", c.Compute.Workers)
	}

	regenerate := c.Derived.N != s.n ||
		c.Spectrum.SeedA != s.cfg.Spectrum.SeedA ||
		c.Spectrum.SeedB != s.cfg.Spectrum.SeedB
	if !regenerate {
		s.cfg = c
		s.synth.SetPatchLength(c.Mesh.Length)
		return nil
	}

	if err := checkCapacity(c); err != nil {
		return err
	}
	prev := s.cfg
	s.cfg = c
	if err := s.allocate(); err != nil {
		s.cfg = prev
		return err
	}

	slog.Info("ocean reconfigured",
		"n", s.n,
		"seed_a", c.Spectrum.SeedA,
		"seed_b", c.Spectrum.SeedB,
	)
	return nil
}

// Config returns a copy of the configuration in effect.
func (s *Simulation) Config() *config.Config { return s.cfg.Clone() }

// N returns the grid side.
func (s *Simulation) N() int { return s.n }

// Time returns the simulation time in seconds.
func (s *Simulation) Time() float64 { return s.t }

// SetTime moves the simulation clock without running a tick.
func (s *Simulation) SetTime(t float64) { s.t = t }

// Ticks returns the number of ticks run since New.
func (s *Simulation) Ticks() int32 { return s.ticks }

// Frame returns the most recently published frame. Its textures are
// overwritten by the next Tick.
func (s *Simulation) Frame() *Frame { return &s.frame }

// HeightSpectrum copies the H(k,t) of the last tick into dst, growing it as
// needed.
func (s *Simulation) HeightSpectrum(dst []complex128) []complex128 {
	if cap(dst) < len(s.h) {
		dst = make([]complex128, len(s.h))
	}
	dst = dst[:len(s.h)]
	copy(dst, s.h)
	return dst
}

// Close stops the worker pool.
func (s *Simulation) Close() {
	s.pool.Close()
}

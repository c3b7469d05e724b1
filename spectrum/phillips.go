package spectrum

import (
	"math"

	"github.com/pthm-cable/fftocean/field"
	"github.com/pthm-cable/fftocean/parallel"
)

// Gravity is the gravitational acceleration in m/s².
const Gravity = 9.81

// Params holds the per-tick spectrum inputs.
type Params struct {
	Amplitude float64 // Phillips A
	WindDirX  float64 // Unit wind direction
	WindDirZ  float64
	WindSpeed float64 // V
}

// Phillips returns the Phillips spectrum energy at wave vector (kx, kz):
//
//	A * exp(-1/(k*Lw)^2) / k^4 * (k̂·ŵ)^2,  Lw = V^2/g
//
// k = 0 carries no energy.
func Phillips(kx, kz float64, p Params) float64 {
	k2 := kx*kx + kz*kz
	if k2 == 0 {
		return 0
	}
	lw := p.WindSpeed * p.WindSpeed / Gravity
	kdotw := (kx*p.WindDirX + kz*p.WindDirZ) / math.Sqrt(k2)
	return p.Amplitude * math.Exp(-1/(k2*lw*lw)) / (k2 * k2) * kdotw * kdotw
}

// Dispersion returns the deep-water angular frequency for wave number k.
func Dispersion(k float64) float64 {
	return math.Sqrt(Gravity * k)
}

// Synthesizer owns the random field and the initial height spectrum H0 of
// one grid. The random field is fixed for the synthesizer's lifetime; H0 is
// re-derived from it whenever Initial is called.
type Synthesizer struct {
	n      int
	length float64
	seed   Seed
	pool   *parallel.Pool

	gauss []complex128
	h0    []complex128
}

// NewSynthesizer generates the random field for an n×n grid over a patch
// of the given side length.
func NewSynthesizer(n int, length float64, seed Seed, pool *parallel.Pool) *Synthesizer {
	s := &Synthesizer{
		n:      n,
		length: length,
		seed:   seed,
		pool:   pool,
		gauss:  make([]complex128, n*n),
		h0:     make([]complex128, n*n),
	}
	GenerateGaussian(s.gauss, n, seed, pool)
	return s
}

// N returns the grid side.
func (s *Synthesizer) N() int { return s.n }

// Seed returns the random field seed.
func (s *Synthesizer) Seed() Seed { return s.seed }

// SetPatchLength changes the physical patch length used for wave vectors.
func (s *Synthesizer) SetPatchLength(length float64) { s.length = length }

// Initial computes H0(k) = (1/√2)(ξr + iξi)√Phillips(k) for every cell.
func (s *Synthesizer) Initial(p Params) {
	n := s.n
	s.pool.For(n, func(z0, z1 int) {
		for z := z0; z < z1; z++ {
			kz := field.WaveNumber(z, n, s.length)
			for x := 0; x < n; x++ {
				kx := field.WaveNumber(x, n, s.length)
				idx := z*n + x
				amp := math.Sqrt(Phillips(kx, kz, p)) / math.Sqrt2
				s.h0[idx] = s.gauss[idx] * complex(amp, 0)
			}
		}
	})
}

// InitialSpectrum copies H0 into dst, growing it as needed.
func (s *Synthesizer) InitialSpectrum(dst []complex128) []complex128 {
	return copyInto(dst, s.h0)
}

// RandomField copies the Gaussian field into dst, growing it as needed.
func (s *Synthesizer) RandomField(dst []complex128) []complex128 {
	return copyInto(dst, s.gauss)
}

func copyInto(dst, src []complex128) []complex128 {
	if cap(dst) < len(src) {
		dst = make([]complex128, len(src))
	}
	dst = dst[:len(src)]
	copy(dst, src)
	return dst
}

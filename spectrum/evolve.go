package spectrum

import (
	"math"
	"math/cmplx"

	"github.com/pthm-cable/fftocean/field"
)

// Evolve writes H(k,t) = H0(k)·e^{iωt} + conj(H0(-k))·e^{-iωt} into dst.
// Pairing each cell with its mirror keeps conj(H(k,t)) = H(-k,t), so the
// inverse transform of H is real.
func (s *Synthesizer) Evolve(t float64, dst []complex128) {
	n := s.n
	s.pool.For(n, func(z0, z1 int) {
		for z := z0; z < z1; z++ {
			kz := field.WaveNumber(z, n, s.length)
			for x := 0; x < n; x++ {
				kx := field.WaveNumber(x, n, s.length)
				omega := Dispersion(math.Hypot(kx, kz))
				sin, cos := math.Sincos(omega * t)
				e := complex(cos, sin)

				h0 := s.h0[z*n+x]
				h0m := cmplx.Conj(s.h0[field.MirrorIndex(x, z, n)])
				dst[z*n+x] = h0*e + h0m*cmplx.Conj(e)
			}
		}
	})
}

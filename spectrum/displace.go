package spectrum

import (
	"math"

	"github.com/pthm-cable/fftocean/field"
	"github.com/pthm-cable/fftocean/parallel"
)

// BuildDisplacement derives the horizontal displacement spectra
// Dx = i·k̂x·H and Dz = i·k̂z·H from the height spectrum h. The k = 0 cell
// has no direction and gets zero in both.
func BuildDisplacement(h, dx, dz []complex128, n int, length float64, pool *parallel.Pool) {
	pool.For(n, func(z0, z1 int) {
		for z := z0; z < z1; z++ {
			kz := field.WaveNumber(z, n, length)
			for x := 0; x < n; x++ {
				idx := z*n + x
				kx := field.WaveNumber(x, n, length)
				k := math.Hypot(kx, kz)
				if k == 0 {
					dx[idx] = 0
					dz[idx] = 0
					continue
				}
				hv := h[idx]
				dx[idx] = complex(0, kx/k) * hv
				dz[idx] = complex(0, kz/k) * hv
			}
		}
	})
}

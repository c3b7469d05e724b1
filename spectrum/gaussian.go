// Package spectrum builds the frequency-domain ocean fields: the Gaussian
// random seed field, the Phillips height spectrum and its time evolution,
// and the horizontal displacement spectra.
package spectrum

import (
	"math"

	"github.com/pthm-cable/fftocean/parallel"
)

// minUniform keeps the Box-Muller log away from zero.
const minUniform = 1e-6

// Seed is the per-process seed pair of the random field.
type Seed struct {
	A, B uint32
}

// hashCell mixes a cell coordinate and the seed pair into 64 bits.
// The result depends on nothing else, so cells can be filled in any order.
func hashCell(x, z int, seed Seed) uint64 {
	h := uint64(uint32(x)) | uint64(uint32(z))<<32
	h ^= uint64(seed.A)*0x9E3779B97F4A7C15 ^ uint64(seed.B)*0xC2B2AE3D27D4EB4F
	return splitmix64(h)
}

func splitmix64(h uint64) uint64 {
	h += 0x9E3779B97F4A7C15
	h = (h ^ (h >> 30)) * 0xBF58476D1CE4E5B9
	h = (h ^ (h >> 27)) * 0x94D049BB133111EB
	return h ^ (h >> 31)
}

// uniform maps 32 bits to (0, 1].
func uniform(bits uint32) float64 {
	return math.Max(minUniform, (float64(bits)+1)/(1<<32))
}

// Gaussian returns the complex Gaussian sample of cell (x, z): independent
// zero-mean unit-variance real and imaginary parts.
func Gaussian(x, z int, seed Seed) complex128 {
	h := hashCell(x, z, seed)
	u1 := uniform(uint32(h >> 32))
	u2 := uniform(uint32(h))

	r := math.Sqrt(-2 * math.Log(u1))
	s, c := math.Sincos(2 * math.Pi * u2)
	return complex(r*c, r*s)
}

// GenerateGaussian fills dst (len n*n) with the random field for seed.
func GenerateGaussian(dst []complex128, n int, seed Seed, pool *parallel.Pool) {
	pool.For(n, func(z0, z1 int) {
		for z := z0; z < z1; z++ {
			row := dst[z*n : (z+1)*n]
			for x := range row {
				row[x] = Gaussian(x, z, seed)
			}
		}
	})
}

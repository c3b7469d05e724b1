// Package field holds the grid geometry shared by every stage and the
// texture format the produced fields are published in.
//
// Grids are square with side N (a power of two), stored row-major with
// idx = z*N + x. Column x runs along the horizontal FFT axis, row z along
// the vertical one.
package field

import "math"

// IsPowerOfTwo reports whether n is a positive power of two.
func IsPowerOfTwo(n int) bool {
	return n > 0 && n&(n-1) == 0
}

// Log2 returns log2(n) for a power of two n.
func Log2(n int) int {
	p := 0
	for n > 1 {
		n >>= 1
		p++
	}
	return p
}

// WaveNumber maps a grid coordinate to its wave number for a patch of the
// given length. The spectrum is centered: coord N/2 carries k = 0.
func WaveNumber(coord, n int, length float64) float64 {
	return 2 * math.Pi * float64(coord-n/2) / length
}

// WaveVector returns (kx, kz) for cell (x, z).
func WaveVector(x, z, n int, length float64) (kx, kz float64) {
	return WaveNumber(x, n, length), WaveNumber(z, n, length)
}

// Mirror returns the coordinate carrying the negated wave number.
// The Nyquist coordinate 0 mirrors onto itself.
func Mirror(coord, n int) int {
	return (n - coord) & (n - 1)
}

// MirrorIndex returns the flat index of the cell carrying -k.
func MirrorIndex(x, z, n int) int {
	return Mirror(z, n)*n + Mirror(x, n)
}

// Wrap returns coord modulo n for any integer coord.
func Wrap(coord, n int) int {
	return ((coord % n) + n) % n
}

// AlternatingSign returns (-1)^coord.
func AlternatingSign(coord int) float64 {
	if coord&1 == 0 {
		return 1
	}
	return -1
}

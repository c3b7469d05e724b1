// Package fft inverts centered N×N spectra to the spatial domain with a
// multi-pass radix-2 FFT: log2(N) passes along rows, then log2(N) passes
// along columns.
//
// Pass m (1-indexed) combines butterflies of span ns = 2^(m-1). Every pass
// is a gather: output cell x reads the two inputs base and base+N/2, where
// base = (x / 2ns)·ns + x mod ns, and weights the second by
// e^{-2πi·(x mod 2ns)/(2ns)}. Cells x and x+ns of a 2ns group form one
// butterfly (sum and difference of the same inputs). The gather indexing
// sorts the output as it goes (Stockham ordering), so the last pass already
// writes natural order and no separate bit-reversal step exists.
//
// The spectrum is centered on N/2 instead of 0, which multiplies the output
// by (-1)^coord on each axis; the final pass of each axis undoes it.
//
// All arithmetic is complex128. At N = 2^14 the accumulated relative error
// over 28 passes stays around 1e-13.
package fft

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"github.com/pthm-cable/fftocean/field"
	"github.com/pthm-cable/fftocean/parallel"
)

// ErrNotPowerOfTwo is returned for grid sides the radix-2 passes cannot split.
var ErrNotPowerOfTwo = errors.New("fft: grid side is not a power of two")

// Axis selects the transform direction.
type Axis int

const (
	Horizontal Axis = iota // along rows (x)
	Vertical               // along columns (z)
)

func (a Axis) String() string {
	if a == Horizontal {
		return "horizontal"
	}
	return "vertical"
}

// Engine holds the pass plan for one grid size. It is shared by every
// transform of that size and never mutated after construction.
type Engine struct {
	n     int
	log2n int
	pool  *parallel.Pool

	// twiddles[m-1][j] = e^{-2πi·j/(2ns)}, j in [0, 2ns)
	twiddles [][]complex128
}

// NewEngine plans transforms for an n×n grid.
func NewEngine(n int, pool *parallel.Pool) (*Engine, error) {
	if !field.IsPowerOfTwo(n) || n < 2 {
		return nil, fmt.Errorf("%w: %d", ErrNotPowerOfTwo, n)
	}

	e := &Engine{
		n:     n,
		log2n: field.Log2(n),
		pool:  pool,
	}

	e.twiddles = make([][]complex128, e.log2n)
	for m := 1; m <= e.log2n; m++ {
		span := 2 << (m - 1)
		tw := make([]complex128, span)
		for j := range tw {
			tw[j] = cmplx.Rect(1, -2*math.Pi*float64(j)/float64(span))
		}
		e.twiddles[m-1] = tw
	}

	return e, nil
}

// N returns the grid side.
func (e *Engine) N() int { return e.n }

// PassesPerAxis returns log2(N).
func (e *Engine) PassesPerAxis() int { return e.log2n }

// TotalPasses returns the pass count of a complete 2D transform.
func (e *Engine) TotalPasses() int { return 2 * e.log2n }

// StopAfter returns the overall pass count reached after m passes on axis.
// Vertical passes only start once every horizontal pass has run.
func (e *Engine) StopAfter(axis Axis, m int) int {
	m = max(0, min(m, e.log2n))
	if axis == Horizontal {
		return m
	}
	return e.log2n + m
}

// NewTransform allocates the ping-pong buffers for one field.
func (e *Engine) NewTransform() *Transform {
	return &Transform{
		e:   e,
		buf: newDoubleBuffer(e.n * e.n),
	}
}

// passRows runs horizontal pass m from src into dst.
func (e *Engine) passRows(src, dst []complex128, m int) {
	n := e.n
	half := n / 2
	ns := 1 << (m - 1)
	mask := 2*ns - 1
	tw := e.twiddles[m-1]
	last := m == e.log2n

	e.pool.For(n, func(z0, z1 int) {
		for z := z0; z < z1; z++ {
			in := src[z*n : (z+1)*n]
			out := dst[z*n : (z+1)*n]
			for x := range out {
				base := (x>>m)<<(m-1) | x&(ns-1)
				v := in[base] + tw[x&mask]*in[base+half]
				if last && x&1 == 1 {
					v = -v
				}
				out[x] = v
			}
		}
	})
}

// passColumns runs vertical pass m from src into dst.
func (e *Engine) passColumns(src, dst []complex128, m int) {
	n := e.n
	half := n / 2
	ns := 1 << (m - 1)
	mask := 2*ns - 1
	tw := e.twiddles[m-1]
	last := m == e.log2n

	e.pool.For(n, func(z0, z1 int) {
		for z := z0; z < z1; z++ {
			base := (z>>m)<<(m-1) | z&(ns-1)
			w := tw[z&mask]
			a := src[base*n : (base+1)*n]
			b := src[(base+half)*n : (base+half+1)*n]
			out := dst[z*n : (z+1)*n]
			if last && z&1 == 1 {
				for x := range out {
					out[x] = -(a[x] + w*b[x])
				}
				continue
			}
			for x := range out {
				out[x] = a[x] + w*b[x]
			}
		}
	})
}

// Package surface turns the three spatial fields of a tick (height and the
// two horizontal displacements) into the published displacement, normal and
// foam textures.
package surface

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/pthm-cable/fftocean/field"
	"github.com/pthm-cable/fftocean/parallel"
)

// Params are the tunables read by the synthesis stage.
type Params struct {
	Lambda           float64 // Horizontal choppiness
	HeightScale      float64
	BubblesScale     float64
	BubblesThreshold float64
	CellSpacing      float64 // World distance between neighbouring cells
}

// Synthesizer keeps the displaced positions of the last Displacement call
// so the normal and foam pass can read neighbours across rows.
type Synthesizer struct {
	n    int
	pool *parallel.Pool
	disp []mgl64.Vec3
}

// NewSynthesizer allocates the working set for an n×n grid.
func NewSynthesizer(n int, pool *parallel.Pool) *Synthesizer {
	return &Synthesizer{
		n:    n,
		pool: pool,
		disp: make([]mgl64.Vec3, n*n),
	}
}

// N returns the grid side.
func (s *Synthesizer) N() int { return s.n }

// Displacement combines the spatial fields into (dx·Λ, h·HeightScale, dz·Λ)
// and writes it to dst.
func (s *Synthesizer) Displacement(height, dx, dz []float64, p Params, dst *field.Texture) {
	n := s.n
	s.pool.For(n, func(z0, z1 int) {
		for i := z0 * n; i < z1*n; i++ {
			d := mgl64.Vec3{dx[i] * p.Lambda, height[i] * p.HeightScale, dz[i] * p.Lambda}
			s.disp[i] = d
			dst.SetIndex(i, float32(d[0]), float32(d[1]), float32(d[2]), 0)
		}
	})
}

// NormalsAndFoam derives unit normals and foam intensity from the
// displacement stored by the previous Displacement call. Neighbours wrap
// around the grid edges since the patch tiles.
func (s *Synthesizer) NormalsAndFoam(p Params, normal, foam *field.Texture) {
	n := s.n
	u := p.CellSpacing
	inv := 1 / (2 * u)

	s.pool.For(n, func(z0, z1 int) {
		for z := z0; z < z1; z++ {
			zm := field.Wrap(z-1, n) * n
			zp := field.Wrap(z+1, n) * n
			for x := 0; x < n; x++ {
				xm := field.Wrap(x-1, n)
				xp := field.Wrap(x+1, n)

				left := s.disp[z*n+xm]
				right := s.disp[z*n+xp]
				back := s.disp[zm+x]
				front := s.disp[zp+x]

				// Displaced neighbour positions relative to the cell
				x1 := left.Add(mgl64.Vec3{-u, 0, 0})
				x2 := right.Add(mgl64.Vec3{u, 0, 0})
				z1p := back.Add(mgl64.Vec3{0, 0, -u})
				z2p := front.Add(mgl64.Vec3{0, 0, u})

				nv := z2p.Sub(z1p).Cross(x2.Sub(x1))
				if l := nv.Len(); l > 0 {
					nv = nv.Mul(1 / l)
				} else {
					nv = mgl64.Vec3{0, 1, 0}
				}

				dxdx := (right[0] - left[0]) * inv
				dzdz := (front[2] - back[2]) * inv
				dxdz := (front[0] - back[0]) * inv
				dzdx := (right[2] - left[2]) * inv
				f := Foam(Jacobian(dxdx, dzdz, dxdz, dzdx), p)

				idx := z*n + x
				normal.SetIndex(idx, float32(nv[0]), float32(nv[1]), float32(nv[2]), 0)
				foam.SetIndex(idx, float32(f), float32(f), float32(f), 0)
			}
		}
	})
}

// Jacobian of the horizontal mapping (x, z) → (x + Dx, z + Dz). It is 1 for
// an undisturbed surface and drops toward 0 (or below, where the surface
// folds over) as neighbouring points converge.
func Jacobian(dxdx, dzdz, dxdz, dzdx float64) float64 {
	return (1+dxdx)*(1+dzdz) - dxdz*dzdx
}

// Foam maps a Jacobian to foam intensity in [0, 1]. Compression below
// BubblesThreshold gives none.
func Foam(j float64, p Params) float64 {
	compression := 1 - clamp01(j)
	return clamp01((compression - p.BubblesThreshold) * p.BubblesScale)
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}

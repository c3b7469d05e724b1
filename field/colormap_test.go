package field

import (
	"image/color"
	"testing"
)

func TestStoreScalarAndMaxAbs(t *testing.T) {
	tex := NewTexture(2)
	if tex.MaxAbs(0) != 1 {
		t.Errorf("expected unit scale for an empty texture")
	}

	tex.StoreScalar([]float64{1, -3, 0.5, 2}, -2, 0, 2)
	if v := tex.At(1, 0); v != [4]float32{6, 6, 6, 0} {
		t.Errorf("unexpected scalar texel %v", v)
	}
	if m := tex.MaxAbs(0); m != 6 {
		t.Errorf("expected max magnitude 6, got %v", m)
	}
}

func TestToRGBA(t *testing.T) {
	tex := NewTexture(2)
	tex.Set(0, 0, -1, 1, 0, 0)
	tex.Set(1, 0, 0, 0, 1, 0)
	tex.Set(0, 1, 0.5, 0, 0, 0)
	tex.Set(1, 1, 7, 0, 0, 0)

	vec := tex.ToRGBA(nil, Vector, 1)
	if vec[0] != (color.RGBA{R: 0, G: 255, B: 128, A: 255}) {
		t.Errorf("unexpected vector color %v", vec[0])
	}
	if vec[1] != (color.RGBA{R: 128, G: 128, B: 255, A: 255}) {
		t.Errorf("unexpected vector color %v", vec[1])
	}

	unit := tex.ToRGBA(vec, Unit, 1)
	if unit[2].R != 128 || unit[3].R != 255 || unit[0].R != 0 {
		t.Errorf("unexpected unit colors %v", unit)
	}

	cplx := tex.ToRGBA(nil, Complex, 2)
	if cplx[0].R != 64 || cplx[0].G != 191 {
		t.Errorf("unexpected complex color %v", cplx[0])
	}

	// The ramp brightens monotonically
	sea := tex.ToRGBA(nil, Signed, 1)
	if !(sea[0].G < sea[2].G && sea[2].G < sea[3].G) {
		t.Errorf("expected brighter colors for higher values: %v", sea)
	}
}

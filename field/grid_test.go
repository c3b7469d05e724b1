package field

import (
	"math"
	"testing"
)

func TestPowerOfTwo(t *testing.T) {
	for _, n := range []int{1, 2, 8, 1024, 1 << 14} {
		if !IsPowerOfTwo(n) {
			t.Errorf("expected %d to be a power of two", n)
		}
	}
	for _, n := range []int{0, -4, 3, 12, 1000} {
		if IsPowerOfTwo(n) {
			t.Errorf("expected %d not to be a power of two", n)
		}
	}
	if Log2(1024) != 10 || Log2(8) != 3 {
		t.Errorf("unexpected Log2 results: %d %d", Log2(1024), Log2(8))
	}
}

func TestWaveVectorCentered(t *testing.T) {
	const n = 16
	kx, kz := WaveVector(n/2, n/2, n, 10)
	if kx != 0 || kz != 0 {
		t.Errorf("expected k=(0,0) at grid center, got (%v,%v)", kx, kz)
	}

	// Symmetric about the center, mirror carries -k
	for x := 1; x < n; x++ {
		k := WaveNumber(x, n, 10)
		km := WaveNumber(Mirror(x, n), n, 10)
		if math.Abs(k+km) > 1e-12 {
			t.Errorf("x=%d: k=%v mirror k=%v not opposite", x, k, km)
		}
	}

	if Mirror(0, n) != 0 {
		t.Errorf("expected Nyquist coordinate to mirror onto itself, got %d", Mirror(0, n))
	}
	if Mirror(n/2, n) != n/2 {
		t.Errorf("expected center to mirror onto itself, got %d", Mirror(n/2, n))
	}
}

func TestMirrorIndexInvolution(t *testing.T) {
	const n = 8
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			m := MirrorIndex(x, z, n)
			mx, mz := m%n, m/n
			if MirrorIndex(mx, mz, n) != z*n+x {
				t.Fatalf("mirror of mirror of (%d,%d) is not itself", x, z)
			}
		}
	}
}

func TestWrapAndSign(t *testing.T) {
	if Wrap(-1, 8) != 7 || Wrap(8, 8) != 0 || Wrap(3, 8) != 3 {
		t.Errorf("unexpected wrap results")
	}
	if AlternatingSign(0) != 1 || AlternatingSign(3) != -1 || AlternatingSign(10) != 1 {
		t.Errorf("unexpected alternating sign")
	}
}

func TestTextureLayout(t *testing.T) {
	tex := NewTexture(4)
	tex.Set(1, 2, 1, 2, 3, 4)

	got := tex.At(1, 2)
	if got != [4]float32{1, 2, 3, 4} {
		t.Errorf("unexpected texel %v", got)
	}

	// Row-major: (1,2) lives at flat index 9
	if tex.Pix[9*Channels+2] != 3 {
		t.Errorf("expected row-major layout")
	}

	src := make([]complex128, 16)
	src[5] = complex(0.5, -0.25)
	tex.StoreComplex(src, 0, 4)
	if v := tex.At(1, 1); v[0] != 0.5 || v[1] != -0.25 || v[2] != 0 {
		t.Errorf("unexpected complex texel %v", v)
	}

	ch := tex.Channel(nil, 1)
	if len(ch) != 16 || ch[5] != -0.25 {
		t.Errorf("unexpected channel extraction %v", ch)
	}
}

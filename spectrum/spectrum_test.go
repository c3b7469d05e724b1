package spectrum

import (
	"math"
	"math/cmplx"
	"testing"

	"gonum.org/v1/gonum/stat"

	"github.com/pthm-cable/fftocean/field"
	"github.com/pthm-cable/fftocean/parallel"
)

var testSeed = Seed{A: 3, B: 11}

func testParams() Params {
	return Params{Amplitude: 1, WindDirX: 1, WindDirZ: 0, WindSpeed: 2}
}

func TestGaussianDeterministic(t *testing.T) {
	pool := parallel.NewPool(4)
	defer pool.Close()

	const n = 32
	a := make([]complex128, n*n)
	GenerateGaussian(a, n, testSeed, pool)

	// Every cell depends only on its coordinates and the seed
	for z := n - 1; z >= 0; z-- {
		for x := n - 1; x >= 0; x-- {
			if got := Gaussian(x, z, testSeed); got != a[z*n+x] {
				t.Fatalf("cell (%d,%d): pooled %v, direct %v", x, z, a[z*n+x], got)
			}
		}
	}

	if Gaussian(5, 5, testSeed) == Gaussian(5, 5, Seed{A: 4, B: 11}) {
		t.Error("expected different seeds to give different samples")
	}
	if Gaussian(5, 6, testSeed) == Gaussian(6, 5, testSeed) {
		t.Error("expected transposed cells to differ")
	}
}

func TestGaussianMoments(t *testing.T) {
	pool := parallel.NewPool(0)
	defer pool.Close()

	const n = 64
	g := make([]complex128, n*n)
	GenerateGaussian(g, n, testSeed, pool)

	re := make([]float64, len(g))
	im := make([]float64, len(g))
	for i, v := range g {
		re[i] = real(v)
		im[i] = imag(v)
		if math.IsNaN(re[i]) || math.IsInf(re[i], 0) || math.IsNaN(im[i]) || math.IsInf(im[i], 0) {
			t.Fatalf("non-finite sample at %d: %v", i, v)
		}
	}

	for name, xs := range map[string][]float64{"real": re, "imag": im} {
		mean, std := stat.MeanStdDev(xs, nil)
		if math.Abs(mean) > 0.1 {
			t.Errorf("%s part: expected mean near 0, got %.4f", name, mean)
		}
		if math.Abs(std*std-1) > 0.15 {
			t.Errorf("%s part: expected variance near 1, got %.4f", name, std*std)
		}
	}

	if r := stat.Correlation(re, im, nil); math.Abs(r) > 0.1 {
		t.Errorf("expected independent parts, correlation %.4f", r)
	}
}

func TestUniformNeverZero(t *testing.T) {
	if u := uniform(0); u <= 0 || u < minUniform {
		t.Errorf("expected uniform(0) clamped above zero, got %v", u)
	}
	if u := uniform(math.MaxUint32); u != 1 {
		t.Errorf("expected uniform(max)=1, got %v", u)
	}
}

func TestPhillips(t *testing.T) {
	p := testParams()

	if v := Phillips(0, 0, p); v != 0 {
		t.Errorf("expected no energy at k=0, got %v", v)
	}
	// Waves travelling perpendicular to the wind carry nothing
	if v := Phillips(0, 1.3, p); v != 0 {
		t.Errorf("expected zero energy across the wind, got %v", v)
	}
	// Same energy up- and down-wind
	if a, b := Phillips(0.7, 0.2, p), Phillips(-0.7, -0.2, p); a != b || a <= 0 {
		t.Errorf("expected symmetric positive energy, got %v and %v", a, b)
	}
	// Small k is damped rather than blowing up
	if v := Phillips(1e-4, 0, p); v != 0 && (math.IsInf(v, 0) || v > 1) {
		t.Errorf("expected damped energy at tiny k, got %v", v)
	}

	k := 1.5
	lw := p.WindSpeed * p.WindSpeed / Gravity
	want := p.Amplitude * math.Exp(-1/(k*lw*k*lw)) / math.Pow(k, 4)
	if got := Phillips(k, 0, p); math.Abs(got-want) > 1e-12*want {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestInitialSpectrum(t *testing.T) {
	pool := parallel.NewPool(2)
	defer pool.Close()

	const n = 16
	const length = 10.0
	s := NewSynthesizer(n, length, testSeed, pool)
	p := testParams()
	s.Initial(p)

	h0 := s.InitialSpectrum(nil)
	gauss := s.RandomField(nil)

	if c := h0[(n/2)*n+n/2]; c != 0 {
		t.Errorf("expected zero at k=0, got %v", c)
	}

	for _, cell := range [][2]int{{3, 9}, {12, 1}, {0, 0}, {15, 8}} {
		x, z := cell[0], cell[1]
		kx, kz := field.WaveVector(x, z, n, length)
		amp := math.Sqrt(Phillips(kx, kz, p)) / math.Sqrt2
		want := gauss[z*n+x] * complex(amp, 0)
		if got := h0[z*n+x]; cmplx.Abs(got-want) > 1e-15 {
			t.Errorf("cell (%d,%d): expected %v, got %v", x, z, want, got)
		}
	}
}

func TestEvolveAtTimeZero(t *testing.T) {
	pool := parallel.NewPool(2)
	defer pool.Close()

	const n = 16
	s := NewSynthesizer(n, 10, testSeed, pool)
	s.Initial(testParams())
	h0 := s.InitialSpectrum(nil)

	h := make([]complex128, n*n)
	s.Evolve(0, h)

	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			want := h0[z*n+x] + cmplx.Conj(h0[field.MirrorIndex(x, z, n)])
			if got := h[z*n+x]; cmplx.Abs(got-want) > 1e-14 {
				t.Fatalf("cell (%d,%d): H(k,0)=%v, expected %v", x, z, got, want)
			}
		}
	}
}

func TestEvolveHermitian(t *testing.T) {
	pool := parallel.NewPool(4)
	defer pool.Close()

	const n = 32
	s := NewSynthesizer(n, 25, testSeed, pool)
	s.Initial(Params{Amplitude: 4, WindDirX: 0.6, WindDirZ: 0.8, WindSpeed: 6})

	h := make([]complex128, n*n)
	for _, tm := range []float64{0, 0.37, 12.5} {
		s.Evolve(tm, h)
		for z := 0; z < n; z++ {
			for x := 0; x < n; x++ {
				a := cmplx.Conj(h[z*n+x])
				b := h[field.MirrorIndex(x, z, n)]
				if cmplx.Abs(a-b) > 1e-12*(1+cmplx.Abs(a)) {
					t.Fatalf("t=%v cell (%d,%d): conj(H(k))=%v, H(-k)=%v", tm, x, z, a, b)
				}
			}
		}
	}
}

func TestSpectrumIdempotent(t *testing.T) {
	pool := parallel.NewPool(4)
	defer pool.Close()

	const n = 32
	s := NewSynthesizer(n, 10, testSeed, pool)
	p := testParams()

	s.Initial(p)
	first := s.InitialSpectrum(nil)
	h1 := make([]complex128, n*n)
	s.Evolve(2.25, h1)

	s.Initial(p)
	second := s.InitialSpectrum(nil)
	h2 := make([]complex128, n*n)
	s.Evolve(2.25, h2)

	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("H0 differs at %d: %v vs %v", i, first[i], second[i])
		}
		if h1[i] != h2[i] {
			t.Fatalf("H differs at %d: %v vs %v", i, h1[i], h2[i])
		}
	}

	// A fresh synthesizer with the same seed reproduces the field
	other := NewSynthesizer(n, 10, testSeed, pool)
	other.Initial(p)
	third := other.InitialSpectrum(nil)
	for i := range first {
		if first[i] != third[i] {
			t.Fatalf("fresh synthesizer differs at %d", i)
		}
	}
}

func TestSmallGridScenario(t *testing.T) {
	pool := parallel.NewPool(1)
	defer pool.Close()

	// N=8, wind (1,0) at speed 2, A=1, t=0
	const n = 8
	s := NewSynthesizer(n, 10, testSeed, pool)
	s.Initial(testParams())

	h := make([]complex128, n*n)
	s.Evolve(0, h)

	if c := h[(n/2)*n+n/2]; c != 0 {
		t.Errorf("expected H at k=(0,0) to be exactly zero, got %v", c)
	}
	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			a := h[z*n+x]
			b := h[field.MirrorIndex(x, z, n)]
			if cmplx.Abs(a-cmplx.Conj(b)) > 1e-12 {
				t.Errorf("cell (%d,%d): H(k)=%v and H(-k)=%v are not conjugates", x, z, a, b)
			}
		}
	}
}

func TestBuildDisplacement(t *testing.T) {
	pool := parallel.NewPool(2)
	defer pool.Close()

	const n = 16
	const length = 8.0
	h := make([]complex128, n*n)
	for i := range h {
		h[i] = complex(float64(i%7)-3, float64(i%5)-2)
	}
	dx := make([]complex128, n*n)
	dz := make([]complex128, n*n)
	BuildDisplacement(h, dx, dz, n, length, pool)

	center := (n/2)*n + n/2
	if dx[center] != 0 || dz[center] != 0 {
		t.Errorf("expected zero displacement at k=0, got %v %v", dx[center], dz[center])
	}

	for _, cell := range [][2]int{{1, 2}, {9, 8}, {8, 3}, {0, 15}} {
		x, z := cell[0], cell[1]
		idx := z*n + x
		kx, kz := field.WaveVector(x, z, n, length)
		k := math.Hypot(kx, kz)
		wantX := complex(0, kx/k) * h[idx]
		wantZ := complex(0, kz/k) * h[idx]
		if cmplx.Abs(dx[idx]-wantX) > 1e-14 || cmplx.Abs(dz[idx]-wantZ) > 1e-14 {
			t.Errorf("cell (%d,%d): got (%v,%v), expected (%v,%v)", x, z, dx[idx], dz[idx], wantX, wantZ)
		}
	}

	// Along the x axis there is no z displacement
	if dz[(n/2)*n+3] != 0 {
		t.Errorf("expected Dz=0 on the kz=0 row, got %v", dz[(n/2)*n+3])
	}
}

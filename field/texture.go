package field

// Channels per texture cell.
const Channels = 4

// Texture is an N×N grid of 4-component float32 values, the format
// rendering collaborators read. Complex fields use (re, im, 0, 0), vector
// fields (x, y, z, 0), scalar fields (v, v, v, 0).
type Texture struct {
	N   int
	Pix []float32
}

// NewTexture allocates a zeroed texture of side n.
func NewTexture(n int) *Texture {
	return &Texture{N: n, Pix: make([]float32, n*n*Channels)}
}

// Set writes the four channels of cell (x, z).
func (t *Texture) Set(x, z int, r, g, b, a float32) {
	i := (z*t.N + x) * Channels
	t.Pix[i] = r
	t.Pix[i+1] = g
	t.Pix[i+2] = b
	t.Pix[i+3] = a
}

// SetIndex writes the four channels of the cell at flat index idx.
func (t *Texture) SetIndex(idx int, r, g, b, a float32) {
	i := idx * Channels
	t.Pix[i] = r
	t.Pix[i+1] = g
	t.Pix[i+2] = b
	t.Pix[i+3] = a
}

// At returns the four channels of cell (x, z).
func (t *Texture) At(x, z int) [Channels]float32 {
	i := (z*t.N + x) * Channels
	return [Channels]float32{t.Pix[i], t.Pix[i+1], t.Pix[i+2], t.Pix[i+3]}
}

// Row returns the channel data of row z.
func (t *Texture) Row(z int) []float32 {
	return t.Pix[z*t.N*Channels : (z+1)*t.N*Channels]
}

// Channel copies channel c of every cell into dst, growing it as needed.
func (t *Texture) Channel(dst []float64, c int) []float64 {
	n := t.N * t.N
	if cap(dst) < n {
		dst = make([]float64, n)
	}
	dst = dst[:n]
	for i := range dst {
		dst[i] = float64(t.Pix[i*Channels+c])
	}
	return dst
}

// StoreComplex writes src as (re, im, 0, 0) for rows [z0, z1).
func (t *Texture) StoreComplex(src []complex128, z0, z1 int) {
	for i := z0 * t.N; i < z1*t.N; i++ {
		v := src[i]
		t.SetIndex(i, float32(real(v)), float32(imag(v)), 0, 0)
	}
}

// Clone returns a deep copy.
func (t *Texture) Clone() *Texture {
	cp := &Texture{N: t.N, Pix: make([]float32, len(t.Pix))}
	copy(cp.Pix, t.Pix)
	return cp
}

// StoreScalar writes src·scale as (v, v, v, 0) for rows [z0, z1).
func (t *Texture) StoreScalar(src []float64, scale float64, z0, z1 int) {
	for i := z0 * t.N; i < z1*t.N; i++ {
		v := float32(src[i] * scale)
		t.SetIndex(i, v, v, v, 0)
	}
}

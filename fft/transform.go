package fft

// Transform is one field's in-progress 2D inverse FFT. Passes can be run in
// several steps; stopping early leaves the buffers untouched, so a later
// call resumes exactly where the previous one ended.
type Transform struct {
	e      *Engine
	buf    doubleBuffer
	passes int // passes executed since Load, 0..TotalPasses
}

// Load copies a spectrum into the transform and rewinds it to pass 0.
func (t *Transform) Load(spectrum []complex128) {
	copy(t.buf.current(), spectrum)
	t.passes = 0
}

// AdvanceTo runs passes until limit passes have executed in total (capped
// at TotalPasses). It never runs a pass twice; a limit at or below the
// current progress does nothing.
func (t *Transform) AdvanceTo(limit int) {
	limit = min(limit, t.e.TotalPasses())
	for t.passes < limit {
		t.step()
	}
}

// Run completes the transform.
func (t *Transform) Run() {
	t.AdvanceTo(t.e.TotalPasses())
}

// step executes the next pass and swaps the buffers.
func (t *Transform) step() {
	p := t.e.log2n
	src, dst := t.buf.current(), t.buf.scratch()
	if t.passes < p {
		t.e.passRows(src, dst, t.passes+1)
	} else {
		t.e.passColumns(src, dst, t.passes-p+1)
	}
	t.buf.swap()
	t.passes++
}

// Passes returns the number of passes executed since Load.
func (t *Transform) Passes() int { return t.passes }

// Progress returns the axis of the most recent pass and how many passes
// have run on it. Before any pass it reports (Horizontal, 0).
func (t *Transform) Progress() (Axis, int) {
	p := t.e.log2n
	if t.passes <= p {
		return Horizontal, t.passes
	}
	return Vertical, t.passes - p
}

// Done reports whether every pass has run.
func (t *Transform) Done() bool {
	return t.passes == t.e.TotalPasses()
}

// Snapshot copies the current buffer into dst, growing it as needed. On a
// truncated transform this is the intermediate field.
func (t *Transform) Snapshot(dst []complex128) []complex128 {
	src := t.buf.current()
	if cap(dst) < len(src) {
		dst = make([]complex128, len(src))
	}
	dst = dst[:len(src)]
	copy(dst, src)
	return dst
}

// Real copies the real part of the current buffer into dst, growing it as
// needed.
func (t *Transform) Real(dst []float64) []float64 {
	src := t.buf.current()
	if cap(dst) < len(src) {
		dst = make([]float64, len(src))
	}
	dst = dst[:len(src)]
	for i, v := range src {
		dst[i] = real(v)
	}
	return dst
}

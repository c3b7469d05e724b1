package fft

// doubleBuffer is the ping-pong pair a transform runs in. A pass reads
// current() and writes scratch(); swap() then makes the written buffer the
// input of the next pass. Neither slice leaves the package.
type doubleBuffer struct {
	bufs [2][]complex128
	cur  int
}

func newDoubleBuffer(size int) doubleBuffer {
	return doubleBuffer{bufs: [2][]complex128{
		make([]complex128, size),
		make([]complex128, size),
	}}
}

func (b *doubleBuffer) current() []complex128 { return b.bufs[b.cur] }

func (b *doubleBuffer) scratch() []complex128 { return b.bufs[1-b.cur] }

func (b *doubleBuffer) swap() { b.cur = 1 - b.cur }

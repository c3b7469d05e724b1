// Package parallel provides the persistent worker pool used by every grid stage.
package parallel

import (
	"runtime"
	"sync"
)

// Threshold is the minimum item count to use the workers.
// Below this, single-threaded is faster due to goroutine overhead.
const Threshold = 16

// workChunk represents a range of items for a worker to process.
type workChunk struct {
	start, end int
	fn         func(start, end int)
	done       *sync.WaitGroup
}

// Pool runs chunked parallel-for loops on a fixed set of goroutines.
// For returns only after every chunk has finished, so consecutive calls
// are ordered: writes made during one call are visible to the next.
type Pool struct {
	numWorkers int

	workChan chan workChunk
	stopChan chan struct{}
	wg       sync.WaitGroup // tracks active workers

	mu      sync.Mutex
	running bool
}

// NewPool creates a pool with the given worker count (0 = GOMAXPROCS).
// Workers are started lazily on the first parallel call.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{numWorkers: workers}
}

// Workers returns the number of worker goroutines.
func (p *Pool) Workers() int {
	return p.numWorkers
}

// start launches persistent worker goroutines.
func (p *Pool) start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running {
		return
	}

	p.workChan = make(chan workChunk, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// worker runs in a goroutine, processing chunks until stopped.
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case chunk := <-p.workChan:
			chunk.fn(chunk.start, chunk.end)
			chunk.done.Done()
		}
	}
}

// For calls fn over [0, n) split into contiguous chunks, one per worker.
// fn must only write to state owned by its own range.
func (p *Pool) For(n int, fn func(start, end int)) {
	if n <= 0 {
		return
	}
	if n < Threshold || p.numWorkers == 1 {
		fn(0, n)
		return
	}

	if !p.isRunning() {
		p.start()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	var done sync.WaitGroup
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		done.Add(1)
		p.workChan <- workChunk{start: start, end: end, fn: fn, done: &done}
	}

	// Barrier: the whole range is written before returning
	done.Wait()
}

func (p *Pool) isRunning() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.running
}

// Close signals all workers to exit and waits for them.
func (p *Pool) Close() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	close(p.stopChan)
	p.running = false
	p.mu.Unlock()

	p.wg.Wait()
}

package trail

import (
	"runtime"
	"sync"
)

// parallelThreshold is the minimum slot count to fan a pass out to the
// pool. Below this, single-threaded is faster due to goroutine overhead.
const parallelThreshold = 64

// slotRange is a half-open range of store slots for one worker, paired
// with the pass to run over it.
type slotRange struct {
	start, end int
	pass       func(start, end int)
}

// Pool runs data-parallel passes over slot ranges on persistent workers.
// Workers start once and are reused every tick. Run blocks until the whole
// range is covered, so passes from consecutive stages never overlap.
//
// Passes must be pure per-slot maps: writes only to the indices of their
// own range, no shared mutable state.
type Pool struct {
	numWorkers int

	workChan chan slotRange // sends ranges to workers
	doneChan chan struct{}  // workers signal completion
	stopChan chan struct{}  // signals workers to exit
	wg       sync.WaitGroup // tracks active workers
	running  bool           // true if workers are running
}

// NewPool creates a pool with the given worker count; workers <= 0 uses
// GOMAXPROCS. The pool starts lazily on first use.
func NewPool(workers int) *Pool {
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &Pool{numWorkers: workers}
}

// Workers returns the configured worker count.
func (p *Pool) Workers() int { return p.numWorkers }

// start launches the persistent worker goroutines.
func (p *Pool) start() {
	if p.running {
		return
	}

	p.workChan = make(chan slotRange, p.numWorkers)
	p.doneChan = make(chan struct{}, p.numWorkers)
	p.stopChan = make(chan struct{})
	p.running = true

	for i := 0; i < p.numWorkers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
}

// Stop signals all workers to exit and waits for them. Safe to call on a
// pool that never ran.
func (p *Pool) Stop() {
	if !p.running {
		return
	}

	close(p.stopChan)
	p.wg.Wait()
	close(p.workChan)
	close(p.doneChan)
	p.running = false
}

// worker processes ranges until stopped.
func (p *Pool) worker() {
	defer p.wg.Done()

	for {
		select {
		case <-p.stopChan:
			return
		case r, ok := <-p.workChan:
			if !ok {
				return
			}
			r.pass(r.start, r.end)
			p.doneChan <- struct{}{}
		}
	}
}

// Run executes pass over [0, n), splitting the range across the workers
// and blocking until every index has been covered exactly once. Small
// ranges run inline on the calling goroutine.
func (p *Pool) Run(n int, pass func(start, end int)) {
	if n <= 0 {
		return
	}
	if n < parallelThreshold {
		pass(0, n)
		return
	}

	if !p.running {
		p.start()
	}

	chunkSize := (n + p.numWorkers - 1) / p.numWorkers

	dispatched := 0
	for w := 0; w < p.numWorkers; w++ {
		start := w * chunkSize
		end := start + chunkSize
		if end > n {
			end = n
		}
		if start >= end {
			continue
		}

		p.workChan <- slotRange{start: start, end: end, pass: pass}
		dispatched++
	}

	for i := 0; i < dispatched; i++ {
		<-p.doneChan
	}
}

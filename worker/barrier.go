package worker

import "sync"

// Barrier is a cyclic rendezvous point for Phase E (spec.md §4.3: "No
// worker begins tick t+1 until all have completed tick t"). The teacher's
// per-step fan-out (task/simulet.go's prepare/update: a fresh
// sync.WaitGroup per step, joined with Wait) assumes short-lived
// goroutines spawned anew each step; our workers are long-lived for the
// whole run, so the barrier instead holds a generation channel that every
// arrival waits on and the last arrival closes, then rotates for the next
// tick.
type Barrier struct {
	mu    sync.Mutex
	n     int
	count int
	gen   chan struct{}
}

// NewBarrier creates a barrier for n participating workers.
func NewBarrier(n int) *Barrier {
	return &Barrier{n: n, gen: make(chan struct{})}
}

// Wait blocks until all n workers have called Wait for the current tick,
// then releases everyone and resets for the next tick.
func (b *Barrier) Wait() {
	b.mu.Lock()
	gen := b.gen
	b.count++
	if b.count == b.n {
		b.count = 0
		b.gen = make(chan struct{})
		b.mu.Unlock()
		close(gen)
		return
	}
	b.mu.Unlock()
	<-gen
}

package syncprim

import (
	"sync"

	"github.com/joeycumines/go-schedcore"
)

// Cond is a condition variable used together with a Lock, modeled on the
// Mesa-style monitor pattern the source material's synchronization layer
// uses: each waiter parks on its own private one-shot Semaphore, and
// Signal/Broadcast wake waiters in FIFO arrival order, not priority
// order — the same FIFO discipline Semaphore uses for its waiters.
type Cond struct {
	mu      sync.Mutex
	waiters []*Semaphore
}

// NewCond constructs an empty Cond.
func NewCond() *Cond {
	return &Cond{}
}

// Wait atomically releases lock and blocks the calling thread until
// signaled, then reacquires lock before returning. The caller must hold
// lock.
func (c *Cond) Wait(sched *schedcore.Scheduler, lock *Lock) {
	waiter := NewSemaphore(0)

	c.mu.Lock()
	c.waiters = append(c.waiters, waiter)
	c.mu.Unlock()

	lock.Release(sched)
	waiter.Down(sched)
	lock.Acquire(sched)
}

// Signal wakes at most one thread waiting on c, in FIFO arrival order.
func (c *Cond) Signal(sched *schedcore.Scheduler) {
	c.mu.Lock()
	var w *Semaphore
	if len(c.waiters) > 0 {
		w = c.waiters[0]
		c.waiters = c.waiters[1:]
	}
	c.mu.Unlock()

	if w != nil {
		w.Up(sched)
	}
}

// Broadcast wakes every thread currently waiting on c.
func (c *Cond) Broadcast(sched *schedcore.Scheduler) {
	for {
		c.mu.Lock()
		if len(c.waiters) == 0 {
			c.mu.Unlock()
			return
		}
		w := c.waiters[0]
		c.waiters = c.waiters[1:]
		c.mu.Unlock()

		w.Up(sched)
	}
}

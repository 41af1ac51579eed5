// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package syncprim provides the synchronization primitives layered on top
// of schedcore's scheduling core: counting semaphores, priority-aware
// locks with donation, and condition variables, exactly the component
// spec.md §4.I and §1 describe as "specified only through the interface
// [the core] needs" — this package depends on schedcore, never the other
// way around.
package syncprim

import (
	"sync"

	"github.com/joeycumines/go-schedcore"
)

// Semaphore is a counting semaphore with a FIFO wait list, matching the
// plain list the un-retrieved synch.c this is grounded on uses: Up always
// wakes the longest-waiting blocked thread, not the highest-priority one.
// Priority is still respected end to end because a high-priority thread
// blocked here will have donated its priority up any lock-holder chain
// that put it here in the first place (see Lock); the semaphore itself
// stays a simple FIFO queue, exactly as the source material's base
// implementation does.
type Semaphore struct {
	mu      sync.Mutex
	value   int
	waiters []*schedcore.Thread
}

// NewSemaphore constructs a Semaphore with the given initial value.
func NewSemaphore(value int) *Semaphore {
	return &Semaphore{value: value}
}

// Down waits until the semaphore's value is positive, then decrements it.
// If Down must wait, it blocks the calling thread via sched.Block and
// loops: this re-checks the value after being woken rather than trusting
// the wakeup directly, so a lost race against a higher-priority thread
// that also just became ready cannot leave this waiter permanently
// forgotten.
func (sem *Semaphore) Down(sched *schedcore.Scheduler) {
	for {
		sem.mu.Lock()
		if sem.value > 0 {
			sem.value--
			sem.mu.Unlock()
			return
		}
		sem.waiters = append(sem.waiters, sched.Current())
		sem.mu.Unlock()

		sched.Block()
	}
}

// Up increments value and, if any thread is waiting, also wakes the
// longest-waiting one so it can immediately compete for the permit just
// released (it still re-checks value itself upon waking, via Down's loop —
// Up does not hand the permit to it directly). It yields the calling
// thread immediately if the woken thread now outranks it (thread_max_yield),
// matching the immediate-preemption behavior spec.md §4.F describes for
// lock release.
func (sem *Semaphore) Up(sched *schedcore.Scheduler) {
	sem.mu.Lock()
	var woken *schedcore.Thread
	if len(sem.waiters) > 0 {
		woken = sem.waiters[0]
		sem.waiters = sem.waiters[1:]
	}
	sem.value++
	sem.mu.Unlock()

	if woken != nil {
		sched.Unblock(woken)
		sched.MaxYield()
	}
}

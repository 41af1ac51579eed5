package syncprim

import (
	"github.com/joeycumines/go-schedcore"
)

// Lock is a binary semaphore with ownership tracking and priority
// donation: acquiring a held lock donates the acquirer's effective
// priority up the chain of lock holders (schedcore.Scheduler.DonatePriority),
// and releasing it unwinds exactly the donations that were waiting on
// this lock, per spec.md §4.F.
type Lock struct {
	sem    *Semaphore
	holder *schedcore.Thread
}

// NewLock constructs an unheld Lock.
func NewLock() *Lock {
	return &Lock{sem: NewSemaphore(1)}
}

// Holder implements schedcore.LockHolder: it reports who currently holds
// the lock, or nil. It is read by the scheduler's donation walk while mu
// is held, and written only by the single thread that currently owns the
// lock's semaphore permit (Acquire/Release), so it needs no locking of
// its own beyond what the semaphore already provides.
func (l *Lock) Holder() *schedcore.Thread {
	return l.holder
}

// Acquire blocks until l is free, then takes it. If l is currently held,
// the calling thread first records l as its required lock and donates its
// priority up the chain of holders, exactly as spec.md §4.F describes for
// lock_acquire.
func (l *Lock) Acquire(sched *schedcore.Scheduler) {
	cur := sched.Current()
	assertNotHeldByCaller(l, cur)

	if l.holder != nil {
		sched.SetRequiredLock(cur, l)
		sched.DonatePriority(cur)
	}

	l.sem.Down(sched)

	sched.SetRequiredLock(cur, nil)
	l.holder = cur
}

// Release gives up l. Every donation in the holder's donations list that
// was waiting on l specifically is unlinked, the holder's effective
// priority is recomputed from whatever donations (for other locks it
// still holds) remain, and l's semaphore permit is released, waking the
// longest-waiting blocked thread (see Semaphore.Up) so it can re-contend
// for the permit.
func (l *Lock) Release(sched *schedcore.Scheduler) {
	cur := l.holder
	l.holder = nil
	sched.RemoveDonationsForLock(cur, l)
	sched.ResetPriority(cur)
	l.sem.Up(sched)
}

// IsHeldByCurrent reports whether the calling thread holds l.
func (l *Lock) IsHeldByCurrent(sched *schedcore.Scheduler) bool {
	return l.holder == sched.Current()
}

func assertNotHeldByCaller(l *Lock, cur *schedcore.Thread) {
	if l.holder == cur {
		panic(&schedcore.KernelPanic{Code: "self-deadlock", Message: "thread attempted to acquire a lock it already holds"})
	}
}

// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package schedcore

import (
	"fmt"
	"runtime"
	"sync"
)

// Scheduler is the scheduling core of a small teaching kernel: a thread
// control block table, an ordered ready list, a priority donation engine,
// and an optional MLFQS engine, all driven by an external tick source.
//
// mu is the single mutex guarding every field below and every Thread field
// reachable from allList. It stands in for "interrupts disabled": the
// original kernel this core is modeled on serializes ready-list and TCB
// mutation by disabling interrupts for the duration of the critical
// section, since everything runs on one CPU. Here, by construction, at
// most one goroutine is ever executing scheduler-visible code at a time
// (the turnstile handoff in schedule ensures only the thread holding "the turn"
// runs), except for TickHook, which plays the role of a genuine
// asynchronous timer interrupt and is the one caller that can race with
// the running thread. mu exists for that race, and is held only for brief
// bookkeeping spans, never across a park on a turnstile channel.
type Scheduler struct {
	mu sync.Mutex

	readyList *list
	allList   *list

	idleThread    *Thread
	initialThread *Thread
	current       *Thread

	// pendingPrev carries the outgoing thread across a turnstile handoff;
	// it is written under mu immediately before a turn send and read by
	// the receiving goroutine immediately after the corresponding receive,
	// which the channel operation itself happens-before-orders.
	pendingPrev *Thread

	idMu      sync.Mutex
	idCounter ThreadID

	ticks       uint64
	threadTicks uint
	idleTicks   uint64
	kernelTicks uint64

	loadAvg Fixed

	mlfqsEnabled   bool
	ticksPerSecond uint64
	timeSlice      uint
	maxThreads     uint
	logger         Logger
	processActivate func(*Thread)
	processExit     func(*Thread)

	started bool
}

// New constructs a Scheduler. Call Start before creating any threads or
// invoking TickHook.
func New(opts ...Option) *Scheduler {
	cfg := resolveConfig(opts)

	s := &Scheduler{
		mlfqsEnabled:    cfg.mlfqsEnabled,
		ticksPerSecond:  cfg.ticksPerSecond,
		timeSlice:       cfg.timeSlice,
		maxThreads:      cfg.maxThreads,
		logger:          cfg.logger,
		processActivate: cfg.processActivate,
		processExit:     cfg.processExit,
	}
	s.readyList = newList(func(t *Thread) *hook { return &t.readyHook })
	s.allList = newList(func(t *Thread) *hook { return &t.allHook })
	return s
}

func (s *Scheduler) nextID() ThreadID {
	s.idMu.Lock()
	defer s.idMu.Unlock()
	s.idCounter++
	return s.idCounter
}

// Start brings up the scheduler: it creates the initial thread (the
// Go analogue of the bootstrap thread that called thread_init) wrapping
// the calling goroutine, and the idle thread that runs whenever the ready
// list is empty. Start must be called exactly once, before any call to
// Create, Block, Yield, Exit, or TickHook.
//
// Start records the idle thread itself before returning, without waiting
// for the idle thread's goroutine to run; the idle thread is kept off the
// ready list and is only ever chosen by schedule as the fallback when the
// ready list is empty.
func (s *Scheduler) Start() {
	s.mu.Lock()
	assertf(!s.started, "double-start", "Start called twice")
	s.started = true

	initial := s.newThreadLocked("main", PriDefault)
	initial.status = StatusRunning
	s.current = initial
	s.initialThread = initial
	s.mu.Unlock()

	idle, err := s.spawnLocked("idle", PriMin, func(aux any) {
		for {
			s.Block()
		}
	}, nil)
	if err != nil {
		panic(&KernelPanic{Code: "idle-create-failed", Message: err.Error()})
	}
	s.mu.Lock()
	s.readyList.remove(idle)
	idle.status = StatusBlocked
	s.idleThread = idle
	s.mu.Unlock()
}

// newThreadLocked allocates a bare Thread (no goroutine, no ready-list
// membership) and registers it in allList. Callers must hold mu.
func (s *Scheduler) newThreadLocked(name string, priority int) *Thread {
	if len(name) > 16 {
		name = name[:16]
	}
	t := &Thread{
		name:         name,
		basePriority: priority,
		priority:     priority,
		nice:         NiceDefault,
		turn:         make(chan struct{}),
		exited:       make(chan struct{}),
		sched:        s,
	}
	t.donations = newList(func(d *Thread) *hook { return &d.donationHook })
	t.id = s.nextID()
	s.allList.pushBack(t)
	return t
}

// Create allocates a new thread named name, with base priority priority,
// running fn(aux) once scheduled, and makes it READY. It does not itself
// preempt the calling thread, but calls MaxYield afterward, matching
// spec.md §4.A ("thread_create... may cause the new thread to preempt the
// caller").
func (s *Scheduler) Create(name string, priority int, fn ThreadFunc, aux any) (ThreadID, error) {
	assertf(priority >= PriMin && priority <= PriMax, "bad-priority", "priority %d out of range", priority)
	t, err := s.spawnLocked(name, priority, fn, aux)
	if err != nil {
		return 0, err
	}
	s.MaxYield()
	return t.id, nil
}

// spawnLocked allocates a thread, starts its goroutine, and makes it
// READY, returning the *Thread directly for Start's idle-thread
// bootstrap, which needs the pointer before any public ID-based lookup
// exists.
func (s *Scheduler) spawnLocked(name string, priority int, fn ThreadFunc, aux any) (*Thread, error) {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return nil, ErrLoopNotRunning
	}
	if s.maxThreads > 0 && s.allList.size() >= int(s.maxThreads) {
		s.mu.Unlock()
		return nil, ErrAllocationFailed
	}
	t := s.newThreadLocked(name, priority)
	t.status = StatusBlocked
	t.fn = fn
	if aux == nil {
		aux = t
	}
	t.aux = aux
	s.mu.Unlock()

	go s.runThread(t)

	s.Unblock(t)
	s.logEvent(LevelInfo, "create", t.id, "thread created", map[string]any{"name": t.name, "priority": priority})
	return t, nil
}

// runThread is the trampoline every non-bootstrap thread's goroutine
// executes: it waits for its first turn, runs scheduleTail on behalf of
// the scheduler (the Go substitute for switch_entry running
// thread_schedule_tail on the new stack), invokes the thread body, and
// finally exits. It is the goroutine-and-channel analogue of
// kernel_thread in the source material.
func (s *Scheduler) runThread(t *Thread) {
	<-t.turn
	s.resumed(t)
	t.fn(t.aux)
	s.Exit()
}

// Current returns the thread presently running.
func (s *Scheduler) Current() *Thread {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Block transitions the calling thread to BLOCKED and switches away from
// it. The caller is responsible for having arranged some other thread to
// Unblock it; Block never returns until that happens. It must be called
// by the thread's own goroutine (the running thread blocking itself),
// matching spec.md §4.B's precondition that thread_block runs with the
// calling thread's own state.
func (s *Scheduler) Block() {
	s.mu.Lock()
	cur := s.current
	assertf(cur.status == StatusRunning, "bad-block", "thread %d blocked itself from status %s", cur.id, cur.status)
	cur.status = StatusBlocked
	s.schedule()
}

// Unblock transitions t from BLOCKED to READY and inserts it into the
// ready list in priority order. It does not yield the calling thread.
func (s *Scheduler) Unblock(t *Thread) {
	s.mu.Lock()
	assertf(t.status == StatusBlocked, "bad-unblock", "thread %d unblocked from status %s", t.id, t.status)
	t.status = StatusReady
	s.readyList.insertOrdered(t, lessPriority)
	s.mu.Unlock()
}

// Yield transitions the calling thread from RUNNING to READY, reinserts
// it into the ready list (unless it is the idle thread, which never sits
// on the ready list per spec.md §4.C), and switches to the next thread to
// run, which may be the caller itself if it remains highest priority.
func (s *Scheduler) Yield() {
	s.mu.Lock()
	cur := s.current
	if cur != s.idleThread {
		cur.status = StatusReady
		s.readyList.insertOrdered(cur, lessPriority)
	} else {
		cur.status = StatusReady
	}
	s.schedule()
}

// MaxYield yields the calling thread if some ready thread now outranks it,
// the small helper both Create and lock release use to implement
// immediate preemption by a newly-runnable higher-priority thread.
func (s *Scheduler) MaxYield() {
	s.mu.Lock()
	cur := s.current
	top := s.readyList.front()
	if top != nil && ComparePriority(top, cur) {
		s.mu.Unlock()
		s.Yield()
		return
	}
	s.mu.Unlock()
}

// Exit runs the optional process-exit hook, marks the calling thread
// DYING, removes it from allList, and switches away from it permanently.
// Exit never returns.
func (s *Scheduler) Exit() {
	cur := s.Current()
	if s.processExit != nil {
		s.processExit(cur)
	}

	s.mu.Lock()
	s.allList.remove(cur)
	cur.status = StatusDying
	s.logEvent(LevelInfo, "exit", cur.id, "thread exiting", nil)
	s.schedule()

	// schedule never returns here: for a dying caller it terminates this
	// goroutine via runtime.Goexit before returning control to us. This
	// line intentionally mirrors the NOT_REACHED the source material
	// places after schedule() in thread_exit.
	panic(&KernelPanic{Code: "unreachable", Message: "schedule returned into a dying thread"})
}

// schedule picks the next thread to run and switches to it. The caller
// must hold mu and must have already transitioned s.current out of
// RUNNING; schedule always releases mu before returning (or, for a dying
// caller, before the calling goroutine terminates without returning at
// all). It is the internal routine spec.md §4.D names schedule.
func (s *Scheduler) schedule() {
	cur := s.current

	if s.mlfqsEnabled {
		s.recomputeAllPrioritiesLocked()
		s.readyList.sort(lessPriority)
	}

	next := s.readyList.popFront()
	if next == nil {
		next = s.idleThread
	}

	if next == cur {
		s.mu.Unlock()
		s.resumed(cur)
		return
	}

	dying := cur.status == StatusDying
	s.pendingPrev = cur
	s.mu.Unlock()

	next.turn <- struct{}{}
	if dying {
		// This thread's goroutine is finished. runtime.Goexit runs any
		// deferred calls and terminates this goroutine without returning
		// to Exit's caller and without panicking, the Go analogue of a
		// dying thread's stack simply never being resumed.
		runtime.Goexit()
	}
	<-cur.turn
	s.resumed(cur)
}

// resumed runs on behalf of whichever goroutine just received (or, for
// the no-switch case, retained) the turn: it records s.current, resets
// the per-thread tick counter, runs the process-activation hook, and
// closes the previous thread's exited channel if it was exiting. It is the
// Go analogue of thread_schedule_tail.
func (s *Scheduler) resumed(me *Thread) {
	s.mu.Lock()
	prev := s.pendingPrev
	s.pendingPrev = nil
	s.current = me
	me.status = StatusRunning
	s.threadTicks = 0
	activate := s.processActivate
	var freed *Thread
	if prev != nil && prev != me && prev.status == StatusDying {
		freed = prev
	}
	s.mu.Unlock()

	if activate != nil {
		activate(me)
	}
	if prev != nil && prev != me {
		s.logEvent(LevelDebug, "switch", me.id, fmt.Sprintf("switched in from thread %d", prev.id), nil)
	}
	if freed != nil {
		close(freed.exited)
	}
}

// TickHook must be called once per timer period by the external timer
// device (spec.md §1's "outside this module" collaborator); it plays the
// role of a timer interrupt handler and may be called concurrently with
// the currently running thread's own goroutine. It returns true if the
// calling thread's time slice has been exhausted and the external driver
// should call Yield once it has returned from interrupt context — TickHook
// itself never switches threads, matching spec.md §4.H's
// yield_on_return contract.
func (s *Scheduler) TickHook() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ticks++
	cur := s.current
	if cur == s.idleThread {
		s.idleTicks++
	} else {
		s.kernelTicks++
	}

	if s.mlfqsEnabled {
		if cur != s.idleThread {
			cur.recentCPU = cur.recentCPU.AddInt(1)
		}
		if s.ticks%s.ticksPerSecond == 0 {
			s.recomputeLoadAvgLocked()
			s.allList.forEach(s.recomputeRecentCPULocked)
		}
		if s.ticks%4 == 0 {
			s.recomputeAllPrioritiesLocked()
			s.readyList.sort(lessPriority)
		}
	}

	s.threadTicks++
	return s.threadTicks >= s.timeSlice
}

// TicksNow reports the number of TickHook invocations observed so far.
func (s *Scheduler) TicksNow() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ticks
}

func (s *Scheduler) logEvent(level LogLevel, category string, id ThreadID, msg string, ctx map[string]any) {
	if s.logger == nil || !s.logger.IsEnabled(level) {
		return
	}
	s.logger.Log(LogEntry{Level: level, Category: category, ThreadID: id, Message: msg, Context: ctx})
}

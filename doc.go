// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

// Package schedcore implements the scheduling core of a small teaching
// kernel: a priority-ordered ready queue, recursive priority donation
// across lock-holder chains, and the 4.4BSD-style multi-level feedback
// queue scheduler (MLFQS) formula cascade.
//
// There is no real hardware underneath this package. "Interrupts disabled"
// in the source material this core is modeled on is represented here by a
// single mutex guarding the scheduler's bookkeeping (the ready list, the
// all-threads list, the donation graph, and every Thread's status/priority
// fields), and each Thread's body runs on its own goroutine, handed the
// single logical CPU by a turnstile channel rather than a raw register
// switch. See Scheduler.schedule and Scheduler.resumed in scheduler.go for
// the handoff protocol.
//
// Typical use:
//
//	sched := schedcore.New(schedcore.WithMLFQS(false))
//	sched.Start()
//	id, err := sched.Create("worker", schedcore.PriDefault, func(aux any) {
//		// thread body
//	}, nil)
package schedcore

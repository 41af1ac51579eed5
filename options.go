// Copyright 2025 Joseph Cumines
//
// Permission to use, copy, modify, and distribute this software for any
// purpose with or without fee is hereby granted, provided that this copyright
// notice appears in all copies.

package schedcore

// config holds the options resolved at New time.
type config struct {
	mlfqsEnabled   bool
	logger         Logger
	ticksPerSecond uint64
	timeSlice      uint
	maxThreads     uint
	processActivate func(*Thread)
	processExit     func(*Thread)
}

// Option configures a Scheduler at construction time.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(c *config) { f(c) }

// WithMLFQS enables the multi-level feedback queue scheduler, the Go
// analogue of the kernel command-line "-o mlfqs" argument. It must be set
// before Start and is immutable afterward, exactly as spec.md §3 describes
// mlfqs_enabled.
func WithMLFQS(enabled bool) Option {
	return optionFunc(func(c *config) { c.mlfqsEnabled = enabled })
}

// WithLogger sets the structured logger scheduling events are emitted to.
// The default is NoopLogger.
func WithLogger(logger Logger) Option {
	return optionFunc(func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	})
}

// WithTicksPerSecond overrides the timer frequency used by the MLFQS
// once-per-second recomputation. Default DefaultTicksPerSecond.
func WithTicksPerSecond(n uint64) Option {
	return optionFunc(func(c *config) {
		if n > 0 {
			c.ticksPerSecond = n
		}
	})
}

// WithTimeSlice overrides the number of ticks given to each thread before
// forced preemption. Default DefaultTimeSlice.
func WithTimeSlice(n uint) Option {
	return optionFunc(func(c *config) {
		if n > 0 {
			c.timeSlice = n
		}
	})
}

// WithMaxThreads bounds the number of simultaneously live threads (those
// registered in allList, including the initial and idle threads). Once the
// bound is reached, Create returns ErrAllocationFailed instead of spawning a
// new thread, the Go analogue of the original kernel's thread_create
// failing to palloc_get_page a new TCB/kernel stack when memory is
// exhausted. Default 0, meaning unbounded.
func WithMaxThreads(n uint) Option {
	return optionFunc(func(c *config) { c.maxThreads = n })
}

// WithProcessActivate attaches the optional user-process address-space
// activation hook, called from resumed on the newly running thread.
func WithProcessActivate(fn func(*Thread)) Option {
	return optionFunc(func(c *config) { c.processActivate = fn })
}

// WithProcessExit attaches the optional user-process teardown hook, called
// at the start of Exit.
func WithProcessExit(fn func(*Thread)) Option {
	return optionFunc(func(c *config) { c.processExit = fn })
}

func resolveConfig(opts []Option) *config {
	c := &config{
		logger:         NoopLogger{},
		ticksPerSecond: DefaultTicksPerSecond,
		timeSlice:      DefaultTimeSlice,
	}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt.apply(c)
	}
	return c
}

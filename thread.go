package schedcore

// Scheduling constants, bit-exact with spec.md §6.
const (
	PriMin     = 0
	PriDefault = 31
	PriMax     = 63

	NiceMin     = -20
	NiceDefault = 0
	NiceMax     = 20

	// DefaultTimeSlice is the default number of timer ticks given to each
	// thread before forced preemption. Overridable via WithTimeSlice.
	DefaultTimeSlice = 4

	// DefaultTicksPerSecond is the default timer frequency used by the
	// MLFQS once-per-second recomputation. Overridable via
	// WithTicksPerSecond.
	DefaultTicksPerSecond = 100
)

// ThreadID uniquely and monotonically identifies a Thread, starting at 1.
type ThreadID uint64

// Status is the lifecycle state of a Thread.
type Status int32

const (
	StatusRunning Status = iota
	StatusReady
	StatusBlocked
	StatusDying
)

func (s Status) String() string {
	switch s {
	case StatusRunning:
		return "running"
	case StatusReady:
		return "ready"
	case StatusBlocked:
		return "blocked"
	case StatusDying:
		return "dying"
	default:
		return "unknown"
	}
}

// ThreadFunc is the body of a thread created with Scheduler.Create.
type ThreadFunc func(aux any)

// Thread is a thread control block: one per scheduled thread, holding
// exactly the state spec.md §3 names. Lists never allocate wrapper nodes;
// readyHook, allHook, and donationHook are the intrusive hooks a Thread
// carries for the (at most three) lists it can be linked into at once.
type Thread struct {
	id     ThreadID
	name   string
	status Status

	basePriority int
	priority     int

	nice      int
	recentCPU Fixed

	requiredLock LockHolder
	donations    *list   // donors that have donated to this Thread, sorted descending by donor priority
	donatingTo   *Thread // holder this Thread currently donates to, nil if detached

	readyHook    hook
	allHook      hook
	donationHook hook

	// goroutine-side context switch glue (§4.E): the Go substitute for a
	// raw register-switch primitive. A send on turn resumes this thread's
	// goroutine; exited is closed by the next thread to run once this
	// thread has switched away as dying.
	turn   chan struct{}
	exited chan struct{}

	fn  ThreadFunc
	aux any

	// ExitCode is an optional payload a thread body may set before the
	// scheduler observes it as dying, for an attached process layer.
	ExitCode any

	sched *Scheduler
}

// ID returns the thread's unique identifier.
func (t *Thread) ID() ThreadID { return t.id }

// Name returns the thread's short label.
func (t *Thread) Name() string { return t.name }

// Status returns the thread's current lifecycle status.
func (t *Thread) Status() Status { return t.status }

// BasePriority returns the priority the thread deserves absent donation.
func (t *Thread) BasePriority() int { return t.basePriority }

// Priority returns the thread's current effective priority.
func (t *Thread) Priority() int { return t.priority }

// Nice returns the thread's MLFQS niceness.
func (t *Thread) Nice() int { return t.nice }

// RecentCPU returns the thread's MLFQS recent-CPU accumulator.
func (t *Thread) RecentCPU() Fixed { return t.recentCPU }

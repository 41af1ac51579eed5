package schedcore

// Stats is a point-in-time snapshot of scheduler-wide counters, per
// spec.md §3's idle_ticks/kernel_ticks/user_ticks/load_avg fields. This
// core has no user-process layer, so UserTicks is always zero; it is kept
// in the snapshot so a process layer built on top (see
// WithProcessActivate/WithProcessExit) has somewhere to report it by
// wrapping Stats.
type Stats struct {
	Ticks           uint64
	IdleTicks       uint64
	KernelTicks     uint64
	UserTicks       uint64
	LoadAvg         Fixed
	ReadyThreadCount int
	ThreadCount     int
}

// Stats returns a snapshot of the scheduler's counters.
func (s *Scheduler) Stats() Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Stats{
		Ticks:            s.ticks,
		IdleTicks:        s.idleTicks,
		KernelTicks:      s.kernelTicks,
		LoadAvg:          s.loadAvg,
		ReadyThreadCount: s.readyList.size(),
		ThreadCount:      s.allList.size(),
	}
}

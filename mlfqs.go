package schedcore

// mlfqs.go implements the 4.4BSD-style multi-level feedback queue engine
// described in spec.md §4.G: per-tick recent_cpu increment (scheduler.go's
// TickHook), per-4-tick priority recomputation, and per-second load
// average and recent_cpu recomputation, all in 17.14 fixed point.

var (
	loadAvgCoeff     = FromInt(59).Div(FromInt(60))
	readyCountCoeff  = FromInt(1).Div(FromInt(60))
	recentCPUPriDiv  = FromInt(4)
	loadAvgRecentMul = FromInt(2)
)

// recomputeAllPrioritiesLocked recomputes every thread's MLFQS priority
// from its recent_cpu and nice, clamped to [PriMin, PriMax]. Callers must
// hold mu.
func (s *Scheduler) recomputeAllPrioritiesLocked() {
	s.allList.forEach(s.recomputePriorityLocked)
}

// recomputePriorityLocked applies
//
//	priority = PRI_MAX - (recent_cpu / 4) - (nice * 2)
//
// truncated toward -Inf (fp->int floor, not round-to-nearest — the original
// thread_calculate_bsd_priority uses convert_to_int_round_down here,
// reserving round-to-nearest for the get_load_avg/get_recent_cpu reporting
// accessors), clamped to [PRI_MIN, PRI_MAX], per spec.md §4.G. The idle
// thread is exempt: its priority is fixed at PriMin so it never contends
// with real threads.
func (s *Scheduler) recomputePriorityLocked(t *Thread) {
	if t == s.idleThread {
		return
	}
	p := FromInt(PriMax).Sub(t.recentCPU.Div(recentCPUPriDiv)).Sub(FromInt(t.nice * 2))
	pi := p.Trunc()
	if pi < PriMin {
		pi = PriMin
	}
	if pi > PriMax {
		pi = PriMax
	}
	// Only the effective priority is recomputed here; base_priority is left
	// untouched, matching thread_calculate_bsd_priority setting only
	// t->priority.
	t.priority = pi
}

// recomputeLoadAvgLocked applies
//
//	load_avg = (59/60) * load_avg + (1/60) * ready_threads
//
// where ready_threads counts RUNNING and READY threads, excluding idle,
// per spec.md §4.G.
func (s *Scheduler) recomputeLoadAvgLocked() {
	ready := s.readyList.size()
	if s.current != nil && s.current != s.idleThread {
		ready++
	}
	s.loadAvg = s.loadAvg.Mul(loadAvgCoeff).Add(readyCountCoeff.MulInt(ready))
}

// recomputeRecentCPULocked applies
//
//	recent_cpu = (2*load_avg)/(2*load_avg+1) * recent_cpu + nice
//
// to every thread once per second, per spec.md §4.G. The idle thread's
// recent_cpu is never touched by the clock (it is never charged for CPU
// time) but the formula is harmless to apply since it starts and stays at
// zero.
func (s *Scheduler) recomputeRecentCPULocked(t *Thread) {
	twiceLoad := s.loadAvg.Mul(loadAvgRecentMul)
	coeff := twiceLoad.Div(twiceLoad.AddInt(1))
	t.recentCPU = coeff.Mul(t.recentCPU).AddInt(t.nice)
}

// GetLoadAvg reports the system load average as round_nearest(100*load_avg),
// per spec.md §4.G's "Reported accessors" (the original's
// thread_get_load_avg).
func (s *Scheduler) GetLoadAvg() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAvg.MulInt(100).Round()
}

// GetRecentCpu reports t's recent_cpu as round_nearest(100*recent_cpu), per
// spec.md §4.G's "Reported accessors" (the original's
// thread_get_recent_cpu).
func (s *Scheduler) GetRecentCpu(t *Thread) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.recentCPU.MulInt(100).Round()
}

// LoadAvgFixed returns the raw 17.14 fixed-point load_avg, for callers that
// need full precision rather than the rounded percent GetLoadAvg reports.
func (s *Scheduler) LoadAvgFixed() Fixed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAvg
}

// RecentCpuFixed returns t's raw 17.14 fixed-point recent_cpu, for callers
// that need full precision rather than the rounded percent GetRecentCpu
// reports.
func (s *Scheduler) RecentCpuFixed(t *Thread) Fixed {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.recentCPU
}

// GetNice returns t's niceness.
func (s *Scheduler) GetNice(t *Thread) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return t.nice
}

// SetNice sets the calling thread's niceness, immediately recomputes its
// priority, and yields if it is no longer highest priority. It is only
// meaningful when MLFQS is enabled; spec.md §4.G leaves its effect
// otherwise unspecified, and this implementation simply records the value
// so it takes effect if MLFQS is later queried, without recomputing a
// priority formula that is not in use.
func (s *Scheduler) SetNice(n int) {
	assertf(n >= NiceMin && n <= NiceMax, "bad-nice", "nice %d out of range", n)

	s.mu.Lock()
	cur := s.current
	cur.nice = n
	if s.mlfqsEnabled {
		s.recomputePriorityLocked(cur)
		s.reinsertReadyLocked(cur)
	}
	s.mu.Unlock()

	s.MaxYield()
}

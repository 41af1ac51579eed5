package schedcore_test

import (
	"testing"

	schedcore "github.com/joeycumines/go-schedcore"
	"github.com/joeycumines/go-schedcore/syncprim"
	"github.com/stretchr/testify/require"
)

// Scenario 3: donation removal on release. A(10) holds L; B(40) blocks;
// A.priority=40. A releases L; B acquires L and runs; A.priority=10.
func TestScenario3_DonationRemovalOnRelease(t *testing.T) {
	sched := schedcore.New()
	sched.Start()
	sched.SetPriority(schedcore.PriMin) // let A/B preempt main on creation

	lockL := syncprim.NewLock()
	gateA := syncprim.NewSemaphore(0)

	aCh := make(chan *schedcore.Thread, 1)
	bCh := make(chan *schedcore.Thread, 1)
	bAcquired := make(chan struct{}, 1)

	_, err := sched.Create("A", 10, func(aux any) {
		self := aux.(*schedcore.Thread)
		lockL.Acquire(sched)
		aCh <- self
		gateA.Down(sched) // wait for main's cue before releasing
		lockL.Release(sched)
	}, nil)
	require.NoError(t, err)

	a := <-aCh
	require.Equal(t, 10, a.Priority())

	_, err = sched.Create("B", 40, func(aux any) {
		self := aux.(*schedcore.Thread)
		bCh <- self
		lockL.Acquire(sched) // blocks, donates 40 to A
		bAcquired <- struct{}{}
	}, nil)
	require.NoError(t, err)

	b := <-bCh
	_ = b

	// B is now blocked on L, having donated its priority to A.
	require.Equal(t, 40, a.Priority())

	gateA.Up(sched) // let A run lockL.Release

	<-bAcquired
	require.Equal(t, 10, a.Priority())
}

// Scenario 2: donation chain of three. L1 held by A(10), acquired-wait by
// B(20), L2 held by B, acquired-wait by C(30). After C blocks on L2,
// A.priority=30, B.priority=30. After A releases L1: B becomes holder of
// L1, B.priority=30, A.priority=10. After B releases L2: C runs,
// B.priority=20.
func TestScenario2_DonationChainOfThree(t *testing.T) {
	sched := schedcore.New()
	sched.Start()
	sched.SetPriority(schedcore.PriMin)

	lock1 := syncprim.NewLock()
	lock2 := syncprim.NewLock()
	gateA := syncprim.NewSemaphore(0)
	gateB := syncprim.NewSemaphore(0)

	aCh := make(chan *schedcore.Thread, 1)
	bCh := make(chan *schedcore.Thread, 1)
	cCh := make(chan *schedcore.Thread, 1)
	cAcquired := make(chan struct{}, 1)

	_, err := sched.Create("A", 10, func(aux any) {
		self := aux.(*schedcore.Thread)
		lock1.Acquire(sched)
		aCh <- self
		gateA.Down(sched) // wait for main's cue before releasing L1
		lock1.Release(sched)
	}, nil)
	require.NoError(t, err)
	a := <-aCh

	_, err = sched.Create("B", 20, func(aux any) {
		self := aux.(*schedcore.Thread)
		lock2.Acquire(sched) // succeeds immediately, B now holds L2
		bCh <- self
		lock1.Acquire(sched) // blocks on A, donates up the chain
		gateB.Down(sched)    // wait for main's cue before releasing L2
		lock2.Release(sched)
	}, nil)
	require.NoError(t, err)
	b := <-bCh

	_, err = sched.Create("C", 30, func(aux any) {
		self := aux.(*schedcore.Thread)
		cCh <- self
		lock2.Acquire(sched) // blocks on B, donates up the chain through B to A
		cAcquired <- struct{}{}
	}, nil)
	require.NoError(t, err)
	c := <-cCh
	_ = c

	require.Equal(t, 30, a.Priority())
	require.Equal(t, 30, b.Priority())

	gateA.Up(sched) // A releases L1; B becomes its holder

	require.Equal(t, 30, b.Priority())
	require.Equal(t, 10, a.Priority())

	gateB.Up(sched) // B releases L2; C acquires it and runs
	<-cAcquired

	require.Equal(t, 20, b.Priority())
}

package syncprim_test

import (
	"testing"

	schedcore "github.com/joeycumines/go-schedcore"
	"github.com/joeycumines/go-schedcore/syncprim"
	"github.com/stretchr/testify/require"
)

func TestSemaphore_DownBlocksUntilUp(t *testing.T) {
	sched := schedcore.New()
	sched.Start()
	sched.SetPriority(schedcore.PriMin)

	sem := syncprim.NewSemaphore(0)
	var ran bool

	_, err := sched.Create("waiter", schedcore.PriDefault, func(aux any) {
		sem.Down(sched)
		ran = true
	}, nil)
	require.NoError(t, err)
	require.False(t, ran)

	sem.Up(sched)
	require.True(t, ran)
}

func TestSemaphore_FIFOWakeOrder(t *testing.T) {
	sched := schedcore.New()
	sched.Start()
	sched.SetPriority(schedcore.PriMin)

	sem := syncprim.NewSemaphore(0)
	var order []string
	done := make(chan struct{}, 2)

	for _, name := range []string{"first", "second"} {
		name := name
		_, err := sched.Create(name, schedcore.PriDefault, func(aux any) {
			sem.Down(sched)
			order = append(order, name)
			done <- struct{}{}
		}, nil)
		require.NoError(t, err)
	}

	sem.Up(sched)
	<-done
	sem.Up(sched)
	<-done

	require.Equal(t, []string{"first", "second"}, order)
}

func TestLock_MutualExclusion(t *testing.T) {
	sched := schedcore.New()
	sched.Start()
	sched.SetPriority(schedcore.PriMin)

	lock := syncprim.NewLock()
	var holder string
	results := make(chan string, 2)

	body := func(name string) schedcore.ThreadFunc {
		return func(aux any) {
			lock.Acquire(sched)
			holder = name
			results <- holder
			lock.Release(sched)
		}
	}

	_, err := sched.Create("A", schedcore.PriDefault, body("A"), nil)
	require.NoError(t, err)
	_, err = sched.Create("B", schedcore.PriDefault, body("B"), nil)
	require.NoError(t, err)

	first := <-results
	second := <-results
	require.ElementsMatch(t, []string{"A", "B"}, []string{first, second})
}

func TestCond_WaitSignal(t *testing.T) {
	sched := schedcore.New()
	sched.Start()
	sched.SetPriority(schedcore.PriMin)

	lock := syncprim.NewLock()
	cond := syncprim.NewCond()
	ready := false
	woke := make(chan struct{}, 1)

	_, err := sched.Create("waiter", schedcore.PriDefault, func(aux any) {
		lock.Acquire(sched)
		for !ready {
			cond.Wait(sched, lock)
		}
		lock.Release(sched)
		woke <- struct{}{}
	}, nil)
	require.NoError(t, err)

	lock.Acquire(sched)
	ready = true
	cond.Signal(sched)
	lock.Release(sched)

	<-woke
}

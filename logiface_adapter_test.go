package schedcore_test

import (
	"testing"

	schedcore "github.com/joeycumines/go-schedcore"
	"github.com/joeycumines/logiface"
	"github.com/stretchr/testify/require"
)

// TestLogifaceLogger_RoutesSchedulerEventsThroughWriter exercises the
// scheduler's logiface adapter end to end: a real create/exit pair must
// reach a logiface Writer with the expected category field.
func TestLogifaceLogger_RoutesSchedulerEventsThroughWriter(t *testing.T) {
	var records []*schedcore.LogifaceEvent

	logger := schedcore.NewLogifaceLoggerFunc(func(e *schedcore.LogifaceEvent) error {
		records = append(records, e)
		return nil
	}, logiface.LevelDebug)

	sched := schedcore.New(schedcore.WithLogger(logger))
	sched.Start()

	// Above main's priority, so the worker runs and exits before Create returns.
	_, err := sched.Create("worker", schedcore.PriDefault+1, func(aux any) {}, nil)
	require.NoError(t, err)

	require.NotEmpty(t, records)

	var sawCreate, sawExit bool
	for _, r := range records {
		switch r.Fields()["category"] {
		case "create":
			sawCreate = true
		case "exit":
			sawExit = true
		}
	}
	require.True(t, sawCreate, "expected a create event to reach the writer")
	require.True(t, sawExit, "expected an exit event to reach the writer")
}

package schedcore

import (
	"errors"
	"fmt"
)

// ErrAllocationFailed is returned by Create when the scheduler's
// WithMaxThreads bound (if set) has been reached, the Go analogue of the
// original kernel's thread_create failing to palloc_get_page a new TCB and
// returning TID_ERROR — here a real error value instead of a magic
// sentinel ID.
var ErrAllocationFailed = errors.New("schedcore: thread allocation failed")

// ErrLoopNotRunning is returned by operations that require Start to have
// been called first.
var ErrLoopNotRunning = errors.New("schedcore: scheduler has not been started")

// KernelPanic is the error type recovered kernel assertion failures panic
// with. In the source material this core is modeled on, a failed ASSERT
// halts the kernel; panicking with KernelPanic is the faithful Go
// analogue — these are programmer bugs, not recoverable conditions.
type KernelPanic struct {
	Code    string
	Message string
}

func (e *KernelPanic) Error() string {
	return fmt.Sprintf("schedcore: %s: %s", e.Code, e.Message)
}

func assertf(cond bool, code, format string, args ...any) {
	if !cond {
		panic(&KernelPanic{Code: code, Message: fmt.Sprintf(format, args...)})
	}
}

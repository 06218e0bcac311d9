package deferred

import (
	"fmt"
)

const (
	nilCallbackPanicMsg    = "deferred: the provided callback is nil"
	invalidOutcomePanicMsg = "deferred: the provided outcome is neither Succeeded nor Failed"
)

// HandlerFault wraps a panic that happened in a handler while it was being
// drained, so that the remaining handlers of the same drain episode can still
// run before the fault is surfaced.
type HandlerFault struct {
	v any
}

func (e *HandlerFault) Error() string {
	return fmt.Sprintf("deferred: recovered panic in a drained handler: %v", e.v)
}

// V returns the value that the handler panicked with.
func (e *HandlerFault) V() any {
	return e.v
}

func newHandlerFault(v any) *HandlerFault {
	return &HandlerFault{v: v}
}

// UncaughtFault wraps the faults of a drain episode that reached the end of
// the episode without a FaultHandler or a Logger being configured to receive
// them.
type UncaughtFault struct {
	err error
}

func (e *UncaughtFault) Error() string {
	return fmt.Sprintf("deferred: uncaught fault in a drain episode: %s", e.err)
}

func (e *UncaughtFault) Unwrap() error {
	return e.err
}

func newUncaughtFault(err error) *UncaughtFault {
	return &UncaughtFault{err: err}
}

package errorhandler

import (
	"errors"
	"fmt"
	"time"
)

// FailureEvent captures one escaped failure. It is built once on the request
// goroutine and then owned exclusively by the reporting goroutine; nothing
// mutates it after construction.
type FailureEvent struct {
	Err        error
	Stack      string
	OccurredAt time.Time
}

func newFailureEvent(err error, stack []byte) FailureEvent {
	return FailureEvent{
		Err:        err,
		Stack:      string(stack),
		OccurredAt: time.Now().UTC(),
	}
}

// Inner returns the next error in the chain, or nil when the failure is not
// wrapped.
func (e FailureEvent) Inner() error {
	return errors.Unwrap(e.Err)
}

// panicError adapts a recovered non-error panic value into the error-based
// failure path. Panicked error values are used directly instead.
type panicError struct {
	value any
}

func (p *panicError) Error() string {
	return fmt.Sprint(p.value)
}

// asError normalizes a recovered panic value to an error.
func asError(rec any) error {
	if err, ok := rec.(error); ok {
		return err
	}
	return &panicError{value: rec}
}

// typeName reports the dynamic type of a failure. Recovered non-error panics
// report the type of the panicked value rather than the adapter wrapping it.
func typeName(err error) string {
	if pe, ok := err.(*panicError); ok {
		return fmt.Sprintf("%T", pe.value)
	}
	return fmt.Sprintf("%T", err)
}

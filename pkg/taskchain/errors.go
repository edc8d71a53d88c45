package taskchain

import (
	"errors"
	"fmt"
)

// Sentinel errors for task resolution.
var (
	// ErrNilContext indicates Value() was called with a nil context.
	ErrNilContext = errors.New("context cannot be nil")
)

// TaskError wraps a failure with the identity of the task it came from.
// Op is the phase that failed: "bind", "load", "run", or "save".
type TaskError struct {
	// Group is the task's namespace, empty when the task has none.
	Group string
	// Task is the normalized task name.
	Task string
	// Op is the operation that failed.
	Op string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *TaskError) Error() string {
	if e.Group != "" {
		return fmt.Sprintf("task %s/%s: %s: %v", e.Group, e.Task, e.Op, e.Err)
	}
	return fmt.Sprintf("task %s: %s: %v", e.Task, e.Op, e.Err)
}

// Unwrap returns the underlying error for errors.Is/As support.
func (e *TaskError) Unwrap() error {
	return e.Err
}

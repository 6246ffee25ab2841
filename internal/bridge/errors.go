package bridge

import (
	"errors"
	"fmt"
)

var (
	// ErrCallFailed matches every error returned by Invoke.
	ErrCallFailed = errors.New("bridge call failed")

	// ErrUnknownOperation is the cause when no handler is registered.
	ErrUnknownOperation = errors.New("unknown operation")
)

// CallError reports a failed invocation of a named operation.
type CallError struct {
	Op  string
	Err error
}

func (e *CallError) Error() string {
	return fmt.Sprintf("invoke %q: %v", e.Op, e.Err)
}

func (e *CallError) Unwrap() error {
	return e.Err
}

// Is lets errors.Is(err, ErrCallFailed) hold for any CallError.
func (e *CallError) Is(target error) bool {
	return target == ErrCallFailed
}

package utils

import (
	"fmt"
	"runtime/debug"
)

// StackError carries the stack captured where a setup error was escalated
// to a panic.
type StackError struct {
	Err   error
	Stack []byte
}

func (e *StackError) Error() string {
	return fmt.Sprintf("error: %v\nstack:\n%s", e.Err, e.Stack)
}

func (e *StackError) Unwrap() error {
	return e.Err
}

// Panic returns res, or panics with a *StackError when err is not nil.
func Panic[T any](res T, err error) T {
	if err != nil {
		panic(&StackError{Err: err, Stack: debug.Stack()})
	}
	return res
}

package reconciler

import (
	"errors"
	"fmt"
	"runtime/debug"
)

// Fault is an error that remembers the stack where it was raised.
type Fault struct {
	msg   string
	stack []byte
}

// NewFault creates a Fault carrying the caller's stack.
func NewFault(msg string) *Fault {
	return &Fault{msg: msg, stack: debug.Stack()}
}

func (f *Fault) Error() string { return f.msg }

// Stack returns the stack captured by NewFault.
func (f *Fault) Stack() []byte { return f.stack }

// PanicError wraps a value recovered from a panicking handler.
type PanicError struct {
	Value interface{}
	stack []byte
}

func (p *PanicError) Error() string {
	return fmt.Sprintf("handler panicked: %v", p.Value)
}

// Stack returns the stack of the panicking goroutine.
func (p *PanicError) Stack() []byte { return p.stack }

type stackTracer interface {
	Stack() []byte
}

// stackOf returns the stack recorded by err or anything it wraps.
func stackOf(err error) []byte {
	var st stackTracer
	if errors.As(err, &st) {
		return st.Stack()
	}
	return nil
}

// safeCall runs fn, converting a panic into a *PanicError.
func safeCall(fn func() error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &PanicError{Value: r, stack: debug.Stack()}
		}
	}()
	return fn()
}

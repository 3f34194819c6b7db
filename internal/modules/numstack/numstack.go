package numstack

import (
	"errors"
	"fmt"
)

// ErrEmptyStack is the kind of every error returned by Peek or Pop on an empty stack.
var ErrEmptyStack = errors.New("empty stack")

// StackError names the operation that failed.
type StackError struct {
	Op   string
	Kind error
}

func (e *StackError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Kind.Error())
}

func (e *StackError) Unwrap() error { return e.Kind }

// NumberStack is a last-in-first-out stack of float64 values.
// It is not safe for concurrent use.
type NumberStack struct {
	data []float64
}

// New creates an empty NumberStack.
func New() *NumberStack {
	return &NumberStack{data: make([]float64, 0, 16)}
}

// Empty reports whether the stack holds no values.
func (s *NumberStack) Empty() bool { return len(s.data) == 0 }

// Len returns the number of values on the stack.
func (s *NumberStack) Len() int { return len(s.data) }

// Push places x on top of the stack.
func (s *NumberStack) Push(x float64) {
	s.data = append(s.data, x)
}

// Peek returns the top value without removing it.
func (s *NumberStack) Peek() (float64, error) {
	if s.Empty() {
		return 0, &StackError{Op: "peek", Kind: ErrEmptyStack}
	}
	return s.data[len(s.data)-1], nil
}

// Pop removes and returns the top value.
func (s *NumberStack) Pop() (float64, error) {
	if s.Empty() {
		return 0, &StackError{Op: "pop", Kind: ErrEmptyStack}
	}
	last := len(s.data) - 1
	x := s.data[last]
	s.data = s.data[:last]
	return x, nil
}

// Package stack provides the bounded operand stack used by the engine.
package stack

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// DefaultCapacity is the capacity used when none is configured.
const DefaultCapacity = 100

// Stack is a last-in first-out store of numbers with a fixed capacity.
type Stack interface {
	// Push adds v on top. It returns false if the stack is full.
	Push(v float64) bool
	// Pop removes and returns the top value. It returns false if the stack
	// is empty.
	Pop() (float64, bool)
	// Peek returns the top value without removing it.
	Peek() (float64, bool)
	Len() int
	Cap() int
	// Values returns a copy of the content, top first.
	Values() []float64
	// Dump renders the content without changing it.
	Dump(w io.Writer) error
}

// Bounded is a Stack backed by a slice that never grows past its capacity.
type Bounded struct {
	data     []float64
	capacity int
}

// New creates an empty stack that holds at most capacity values.
func New(capacity int) *Bounded {
	if capacity <= 0 {
		panic(fmt.Sprintf("stack capacity must be positive, got %d", capacity))
	}

	return &Bounded{
		data:     make([]float64, 0, capacity),
		capacity: capacity,
	}
}

// Push adds v on top of the stack.
func (s *Bounded) Push(v float64) bool {
	if len(s.data) >= s.capacity {
		return false
	}

	s.data = append(s.data, v)

	return true
}

// Pop removes the top value.
func (s *Bounded) Pop() (float64, bool) {
	v, ok := s.Peek()
	if !ok {
		return 0, false
	}

	s.data = s.data[:len(s.data)-1]

	return v, true
}

// Peek returns the top value.
func (s *Bounded) Peek() (float64, bool) {
	if len(s.data) == 0 {
		return 0, false
	}

	return s.data[len(s.data)-1], true
}

// Len returns the number of values on the stack.
func (s *Bounded) Len() int {
	return len(s.data)
}

// Cap returns the capacity.
func (s *Bounded) Cap() int {
	return s.capacity
}

// Values returns the content, top first.
func (s *Bounded) Values() []float64 {
	values := make([]float64, len(s.data))
	for i, v := range s.data {
		values[len(s.data)-1-i] = v
	}

	return values
}

// Dump writes the content as a table, top first.
func (s *Bounded) Dump(w io.Writer) error {
	t := table.NewWriter()
	t.SetTitle("Stack (%d/%d)", len(s.data), s.capacity)
	t.AppendHeader(table.Row{"Depth", "Value"})

	for i, v := range s.Values() {
		t.AppendRow(table.Row{i, v})
	}

	_, err := fmt.Fprintln(w, t.Render())

	return err
}

package core

import (
	"fmt"

	"github.com/pkg/errors"

	"github.com/sarchlab/stackasm/program"
)

// Runtime faults. They are always returned wrapped in a *RuntimeError.
var (
	ErrNoBegin           = errors.New("couldn't find BEGIN")
	ErrManyBegin         = errors.New("second BEGIN")
	ErrStackOverflow     = errors.New("stack overflow")
	ErrStackUnderflow    = errors.New("stack underflow")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrNegativeSqrt      = errors.New("square root of a negative number")
	ErrInvalidJumpTarget = errors.New("invalid jump target")
	ErrBadOperand        = errors.New("bad operand")
	ErrUnknownOpcode     = errors.New("unknown opcode")
	ErrInput             = errors.New("cannot read a number")
	ErrStepLimit         = errors.New("step limit exceeded")
)

// RuntimeError is a fault raised while executing the record at IP.
type RuntimeError struct {
	IP  int
	Op  program.Opcode
	Err error
}

func (e *RuntimeError) Error() string {
	if e.Op == program.OpNone {
		return fmt.Sprintf("runtime error: %v", e.Err)
	}

	return fmt.Sprintf("runtime error: instruction %d (%s): %v", e.IP, e.Op, e.Err)
}

func (e *RuntimeError) Unwrap() error {
	return e.Err
}

package core

import (
	"bufio"
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"

	"github.com/sarchlab/stackasm/program"
	"github.com/sarchlab/stackasm/stack"
)

type coreState struct {
	IP        int
	Registers [program.NumRegisters]float64
	Stack     stack.Stack
	Zero      bool
	Above     bool

	Started bool
	Halted  bool
	Steps   uint64

	Code *program.Program
}

type instEmulator struct {
	in     *bufio.Reader
	out    io.Writer
	prompt string
}

// RunInst executes one instruction record and moves the instruction
// pointer. Label markers never reach it.
func (i instEmulator) RunInst(inst program.Record, state *coreState) error {
	info, ok := program.DefaultISA.Info(inst.Op)
	if !ok {
		return errors.Wrapf(ErrUnknownOpcode, "opcode %d", int(inst.Op))
	}

	switch inst.Op {
	case program.OpPush:
		return i.runPush(inst, state)
	case program.OpPop:
		return i.runPop(inst, state)
	case program.OpTop:
		return i.runTop(inst, state)
	case program.OpAdd, program.OpSub, program.OpMul,
		program.OpDiv, program.OpMod:
		return i.runBinary(inst, info, state)
	case program.OpSqrt, program.OpAbs:
		return i.runUnary(inst, info, state)
	case program.OpCmp:
		return i.runCmp(state)
	case program.OpInput:
		return i.runInput(inst, state)
	case program.OpOutput:
		return i.runOutput(inst, state)
	case program.OpDump:
		return i.runDump(state)
	case program.OpJmp, program.OpJe, program.OpJne, program.OpJb,
		program.OpJbe, program.OpJa, program.OpJae:
		return i.runJump(inst, info, state)
	case program.OpBegin:
		return ErrManyBegin
	case program.OpEnd:
		state.Halted = true
		state.IP++
		return nil
	default:
		return errors.Wrapf(ErrUnknownOpcode, "opcode %d", int(inst.Op))
	}
}

func (i instEmulator) register(inst program.Record) (program.Register, error) {
	reg, ok := inst.Register()
	if !ok {
		return 0, errors.Wrapf(ErrBadOperand,
			"%s expects a register, got %s %s",
			inst.Op, inst.Operand, inst.OperandString())
	}

	return reg, nil
}

func (i instEmulator) runPush(inst program.Record, state *coreState) error {
	var v float64

	switch inst.Operand {
	case program.OperandRegister:
		reg, err := i.register(inst)
		if err != nil {
			return err
		}
		v = state.Registers[reg.Index()]
	case program.OperandImmediate:
		v = inst.Value
	default:
		return errors.Wrapf(ErrBadOperand, "PUSH with %s operand", inst.Operand)
	}

	if !state.Stack.Push(v) {
		return ErrStackOverflow
	}

	state.IP++

	return nil
}

func (i instEmulator) runPop(inst program.Record, state *coreState) error {
	reg, err := i.register(inst)
	if err != nil {
		return err
	}

	v, ok := state.Stack.Pop()
	if !ok {
		return ErrStackUnderflow
	}

	state.Registers[reg.Index()] = v
	state.IP++

	return nil
}

func (i instEmulator) runTop(inst program.Record, state *coreState) error {
	reg, err := i.register(inst)
	if err != nil {
		return err
	}

	v, ok := state.Stack.Peek()
	if !ok {
		return ErrStackUnderflow
	}

	state.Registers[reg.Index()] = v
	state.IP++

	return nil
}

// popPair pops the last pushed value (bottom) and then the one pushed
// before it (top).
func (i instEmulator) popPair(state *coreState) (top, bottom float64, err error) {
	bottom, ok := state.Stack.Pop()
	if !ok {
		return 0, 0, ErrStackUnderflow
	}

	top, ok = state.Stack.Pop()
	if !ok {
		return 0, 0, ErrStackUnderflow
	}

	return top, bottom, nil
}

func (i instEmulator) runBinary(
	inst program.Record,
	info program.InstInfo,
	state *coreState,
) error {
	top, bottom, err := i.popPair(state)
	if err != nil {
		return err
	}

	switch inst.Op {
	case program.OpDiv:
		if Compare(bottom, 0) == 0 {
			return ErrDivisionByZero
		}
	case program.OpMod:
		if Compare(bottom, 0) == 0 || int64(bottom) == 0 {
			return ErrDivisionByZero
		}
	}

	res := info.Binary(top, bottom)
	if !state.Stack.Push(res) {
		return ErrStackOverflow
	}

	i.setFlags(res, state)
	state.IP++

	return nil
}

func (i instEmulator) runUnary(
	inst program.Record,
	info program.InstInfo,
	state *coreState,
) error {
	v, ok := state.Stack.Pop()
	if !ok {
		return ErrStackUnderflow
	}

	if inst.Op == program.OpSqrt && Compare(v, 0) < 0 {
		return ErrNegativeSqrt
	}

	res := info.Unary(v)
	if !state.Stack.Push(res) {
		return ErrStackOverflow
	}

	i.setFlags(res, state)
	state.IP++

	return nil
}

func (i instEmulator) runCmp(state *coreState) error {
	top, bottom, err := i.popPair(state)
	if err != nil {
		return err
	}

	i.setFlags(top-bottom, state)
	state.IP++

	return nil
}

func (i instEmulator) setFlags(v float64, state *coreState) {
	c := Compare(v, 0)
	state.Zero = c == 0
	state.Above = c > 0
}

func (i instEmulator) runInput(inst program.Record, state *coreState) error {
	reg, err := i.register(inst)
	if err != nil {
		return err
	}

	if i.prompt != "" {
		fmt.Fprintln(i.out, i.prompt)
	}

	var v float64
	if _, err := fmt.Fscan(i.in, &v); err != nil {
		return errors.Wrapf(ErrInput, "INPUT %s: %v", reg, err)
	}

	state.Registers[reg.Index()] = v
	state.IP++

	return nil
}

func (i instEmulator) runOutput(inst program.Record, state *coreState) error {
	reg, err := i.register(inst)
	if err != nil {
		return err
	}

	v := state.Registers[reg.Index()]
	if _, err := fmt.Fprintln(i.out, strconv.FormatFloat(v, 'g', -1, 64)); err != nil {
		return errors.Wrapf(err, "OUTPUT %s", reg)
	}

	state.IP++

	return nil
}

func (i instEmulator) runDump(state *coreState) error {
	if err := dumpState(i.out, state); err != nil {
		return errors.Wrap(err, "DUMP")
	}

	state.IP++

	return nil
}

func (i instEmulator) runJump(
	inst program.Record,
	info program.InstInfo,
	state *coreState,
) error {
	addr, ok := inst.Address()
	if !ok {
		return errors.Wrapf(ErrBadOperand,
			"%s expects a resolved address, got %s", inst.Op, inst.Operand)
	}

	if addr < 0 || addr > state.Code.Len() {
		return errors.Wrapf(ErrInvalidJumpTarget,
			"target %d outside [0, %d]", addr, state.Code.Len())
	}

	if info.Cond(state.Zero, state.Above) {
		state.IP = addr
		return nil
	}

	state.IP++

	return nil
}

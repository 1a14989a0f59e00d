// Package core implements the engine that executes resolved programs.
package core

import (
	"io"

	"github.com/pkg/errors"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/stackasm/program"
)

// Core is a stack machine driven by an akita engine. Every tick executes
// one record of the loaded program.
type Core struct {
	*sim.TickingComponent

	engine    sim.Engine
	state     coreState
	emu       instEmulator
	stepLimit uint64
	err       error
}

// Load sets the program the core runs and resets the control state.
// Registers and the stack are kept.
func (c *Core) Load(p *program.Program) {
	c.state.Code = p
	c.state.IP = 0
	c.state.Started = false
	c.state.Halted = false
	c.state.Steps = 0
	c.err = nil

	Trace("Load", "Name", c.Name(), "Records", p.Len())
}

// Tick runs one record.
func (c *Core) Tick() (madeProgress bool) {
	madeProgress, _ = c.Step()
	return madeProgress
}

// Run executes the loaded program on the engine until it halts or faults.
func (c *Core) Run() error {
	c.TickNow()

	if err := c.engine.Run(); err != nil {
		return errors.Wrap(err, "run engine")
	}

	return c.err
}

// RunDirect executes the loaded program without going through the engine.
func (c *Core) RunDirect() error {
	for {
		progress, err := c.Step()
		if err != nil {
			return err
		}

		if !progress {
			return nil
		}
	}
}

// Step executes the record at the instruction pointer. It returns false
// once the machine has halted, either normally or with an error.
func (c *Core) Step() (bool, error) {
	if c.state.Halted {
		return false, c.err
	}

	if !c.state.Started {
		if err := c.start(); err != nil {
			return false, c.fault(c.state.IP, program.OpNone, err)
		}
	}

	if c.state.IP >= c.state.Code.Len() {
		c.state.Halted = true
		Trace("Halt", "Name", c.Name(), "Reason", "end of program")
		return false, nil
	}

	ip := c.state.IP
	inst := c.state.Code.At(ip)

	if inst.IsMarker() {
		c.state.IP++
		return true, nil
	}

	if c.stepLimit > 0 && c.state.Steps >= c.stepLimit {
		return false, c.fault(ip, inst.Op, ErrStepLimit)
	}

	if err := c.emu.RunInst(inst, &c.state); err != nil {
		return false, c.fault(ip, inst.Op, err)
	}
	c.state.Steps++

	Trace("Inst",
		"Name", c.Name(),
		"IP", ip,
		"Inst", inst.String(),
		"Zero", c.state.Zero,
		"Above", c.state.Above,
		"Depth", c.state.Stack.Len(),
	)

	return !c.state.Halted, nil
}

func (c *Core) start() error {
	if c.state.Code == nil {
		return ErrNoBegin
	}

	for i, r := range c.state.Code.Records {
		if !r.IsMarker() && r.Op == program.OpBegin {
			c.state.IP = i + 1
			c.state.Started = true
			Trace("Begin", "Name", c.Name(), "IP", c.state.IP)

			return nil
		}
	}

	return ErrNoBegin
}

func (c *Core) fault(ip int, op program.Opcode, err error) error {
	c.err = &RuntimeError{IP: ip, Op: op, Err: err}
	c.state.Halted = true

	return c.err
}

// Err returns the fault that stopped the machine, if any.
func (c *Core) Err() error {
	return c.err
}

// Halted reports whether the machine has stopped.
func (c *Core) Halted() bool {
	return c.state.Halted
}

// IP returns the instruction pointer.
func (c *Core) IP() int {
	return c.state.IP
}

// Steps returns the number of executed instructions, label markers
// excluded.
func (c *Core) Steps() uint64 {
	return c.state.Steps
}

// Register returns the value of r.
func (c *Core) Register(r program.Register) float64 {
	return c.state.Registers[r.Index()]
}

// SetRegister sets the value of r.
func (c *Core) SetRegister(r program.Register, v float64) {
	c.state.Registers[r.Index()] = v
}

// Flags returns the zero and above flags.
func (c *Core) Flags() (zero, above bool) {
	return c.state.Zero, c.state.Above
}

// StackValues returns the operand stack, top first.
func (c *Core) StackValues() []float64 {
	return c.state.Stack.Values()
}

// Dump writes the machine state the same way the DUMP instruction does.
func (c *Core) Dump(w io.Writer) error {
	return dumpState(w, &c.state)
}

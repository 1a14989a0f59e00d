package core

import (
	"bufio"
	"io"
	"os"

	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/stackasm/stack"
)

// DefaultPrompt is written before INPUT reads a number.
const DefaultPrompt = "Enter a number"

// Builder can create new cores.
type Builder struct {
	engine    sim.Engine
	freq      sim.Freq
	capacity  int
	stack     stack.Stack
	in        io.Reader
	out       io.Writer
	prompt    string
	stepLimit uint64
}

// NewBuilder returns a builder with the default settings.
func NewBuilder() Builder {
	return Builder{
		freq:     1 * sim.GHz,
		capacity: stack.DefaultCapacity,
		in:       os.Stdin,
		out:      os.Stdout,
		prompt:   DefaultPrompt,
	}
}

// WithEngine sets the engine. A serial engine is created if none is set.
func (b Builder) WithEngine(engine sim.Engine) Builder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the core.
func (b Builder) WithFreq(freq sim.Freq) Builder {
	b.freq = freq
	return b
}

// WithStackCapacity sets the capacity of the operand stack.
func (b Builder) WithStackCapacity(capacity int) Builder {
	b.capacity = capacity
	return b
}

// WithStack sets the operand stack. It overrides WithStackCapacity.
func (b Builder) WithStack(s stack.Stack) Builder {
	b.stack = s
	return b
}

// WithInput sets where INPUT reads from. A *bufio.Reader is used as is, so
// machines built over the same one share its buffer.
func (b Builder) WithInput(in io.Reader) Builder {
	b.in = in
	return b
}

// WithOutput sets where OUTPUT, DUMP and the INPUT prompt write to.
func (b Builder) WithOutput(out io.Writer) Builder {
	b.out = out
	return b
}

// WithPrompt sets the INPUT prompt. An empty prompt disables it.
func (b Builder) WithPrompt(prompt string) Builder {
	b.prompt = prompt
	return b
}

// WithStepLimit stops the machine after the given number of executed
// instructions. Zero means no limit.
func (b Builder) WithStepLimit(limit uint64) Builder {
	b.stepLimit = limit
	return b
}

// Build creates a core.
func (b Builder) Build(name string) *Core {
	if b.engine == nil {
		b.engine = sim.NewSerialEngine()
	}

	if b.freq == 0 {
		b.freq = 1 * sim.GHz
	}

	if b.in == nil {
		b.in = os.Stdin
	}

	if b.out == nil {
		b.out = os.Stdout
	}

	s := b.stack
	if s == nil {
		capacity := b.capacity
		if capacity <= 0 {
			capacity = stack.DefaultCapacity
		}
		s = stack.New(capacity)
	}

	c := &Core{
		engine:    b.engine,
		stepLimit: b.stepLimit,
	}
	c.TickingComponent = sim.NewTickingComponent(name, b.engine, b.freq, c)
	c.state = coreState{Stack: s}
	c.emu = instEmulator{
		in:     bufio.NewReader(b.in),
		out:    b.out,
		prompt: b.prompt,
	}

	return c
}

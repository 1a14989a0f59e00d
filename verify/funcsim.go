package verify

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"github.com/sarchlab/stackasm/core"
	"github.com/sarchlab/stackasm/program"
)

// FunctionalSimulator dry-runs a program with scripted input and a step
// budget, capturing its output.
type FunctionalSimulator struct {
	program  *program.Program
	inputs   []float64
	capacity int
	output   bytes.Buffer
	machine  *core.Core
}

// NewFunctionalSimulator creates a simulator for p.
func NewFunctionalSimulator(p *program.Program) *FunctionalSimulator {
	return &FunctionalSimulator{program: p}
}

// WithInputs sets the numbers INPUT instructions read, in order.
func (fs *FunctionalSimulator) WithInputs(values ...float64) *FunctionalSimulator {
	fs.inputs = values
	return fs
}

// WithStackCapacity sets the operand stack capacity of the dry run.
func (fs *FunctionalSimulator) WithStackCapacity(capacity int) *FunctionalSimulator {
	fs.capacity = capacity
	return fs
}

// Run executes the program for up to maxSteps instructions.
// Returns an error if execution fails.
func (fs *FunctionalSimulator) Run(maxSteps int) error {
	if fs.program == nil {
		return fmt.Errorf("FunctionalSimulator not properly initialized")
	}

	lines := make([]string, len(fs.inputs))
	for i, v := range fs.inputs {
		lines[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}

	fs.output.Reset()
	builder := core.NewBuilder().
		WithInput(strings.NewReader(strings.Join(lines, "\n"))).
		WithOutput(&fs.output).
		WithPrompt("").
		WithStepLimit(uint64(maxSteps))
	if fs.capacity > 0 {
		builder = builder.WithStackCapacity(fs.capacity)
	}

	fs.machine = builder.Build("FuncSim")
	fs.machine.Load(fs.program)

	return fs.machine.RunDirect()
}

// Output returns everything the program wrote during the last run.
func (fs *FunctionalSimulator) Output() string {
	return fs.output.String()
}

// GetRegisterValue returns a register after the last run.
func (fs *FunctionalSimulator) GetRegisterValue(r program.Register) float64 {
	if fs.machine == nil {
		return 0
	}

	return fs.machine.Register(r)
}

// Steps returns the number of instructions executed by the last run.
func (fs *FunctionalSimulator) Steps() uint64 {
	if fs.machine == nil {
		return 0
	}

	return fs.machine.Steps()
}

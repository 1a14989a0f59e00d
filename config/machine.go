package config

import (
	"io"
	"os"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/stackasm/core"
)

// MachineBuilder can build cores from a configuration.
type MachineBuilder struct {
	engine  sim.Engine
	freq    sim.Freq
	cfg     Config
	in      io.Reader
	out     io.Writer
	monitor *monitoring.Monitor
}

// NewMachineBuilder returns a builder that uses the default configuration.
func NewMachineBuilder() MachineBuilder {
	return MachineBuilder{
		cfg: Default(),
		in:  os.Stdin,
		out: os.Stdout,
	}
}

// WithEngine sets the engine that drives the machine.
func (b MachineBuilder) WithEngine(engine sim.Engine) MachineBuilder {
	b.engine = engine
	return b
}

// WithFreq sets the frequency of the machine. It overrides freq_ghz.
func (b MachineBuilder) WithFreq(freq sim.Freq) MachineBuilder {
	b.freq = freq
	return b
}

// WithMonitor sets the monitor that the machine registers with.
func (b MachineBuilder) WithMonitor(monitor *monitoring.Monitor) MachineBuilder {
	b.monitor = monitor
	return b
}

// WithConfig sets the configuration.
func (b MachineBuilder) WithConfig(cfg Config) MachineBuilder {
	b.cfg = cfg
	return b
}

// WithInput sets where INPUT reads from.
func (b MachineBuilder) WithInput(in io.Reader) MachineBuilder {
	b.in = in
	return b
}

// WithOutput sets where the program writes to.
func (b MachineBuilder) WithOutput(out io.Writer) MachineBuilder {
	b.out = out
	return b
}

// Build creates a machine.
func (b MachineBuilder) Build(name string) *core.Core {
	engine := b.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	freq := b.freq
	if freq == 0 {
		freq = sim.Freq(b.cfg.FreqGHz) * sim.GHz
	}

	c := core.NewBuilder().
		WithEngine(engine).
		WithFreq(freq).
		WithStackCapacity(b.cfg.StackCapacity).
		WithInput(b.in).
		WithOutput(b.out).
		WithPrompt(b.cfg.InputPrompt).
		WithStepLimit(b.cfg.StepLimit).
		Build(name)

	if b.monitor != nil {
		b.monitor.RegisterComponent(c)
	}

	return c
}

package api

import (
	"bufio"
	"io"
	"os"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/stackasm/config"
)

// DriverBuilder creates a new instance of Driver.
type DriverBuilder struct {
	engine  sim.Engine
	monitor *monitoring.Monitor
	cfg     config.Config
	in      io.Reader
	out     io.Writer
	report  io.Writer
}

// NewDriverBuilder returns a builder with the default configuration.
func NewDriverBuilder() DriverBuilder {
	return DriverBuilder{
		cfg: config.Default(),
		in:  os.Stdin,
		out: os.Stdout,
	}
}

// WithEngine sets the engine. A new serial engine is used per run if none
// is set.
func (b DriverBuilder) WithEngine(engine sim.Engine) DriverBuilder {
	b.engine = engine
	return b
}

// WithMonitor sets the monitor that every machine registers with. The
// engine set by WithEngine should be registered with the same monitor.
func (b DriverBuilder) WithMonitor(monitor *monitoring.Monitor) DriverBuilder {
	b.monitor = monitor
	return b
}

// WithConfig sets the machine configuration.
func (b DriverBuilder) WithConfig(cfg config.Config) DriverBuilder {
	b.cfg = cfg
	return b
}

// WithInput sets where programs read numbers from.
func (b DriverBuilder) WithInput(in io.Reader) DriverBuilder {
	b.in = in
	return b
}

// WithOutput sets where programs write to.
func (b DriverBuilder) WithOutput(out io.Writer) DriverBuilder {
	b.out = out
	return b
}

// WithLintReport sets where the lint report goes when lint rejects a
// program.
func (b DriverBuilder) WithLintReport(w io.Writer) DriverBuilder {
	b.report = w
	return b
}

// Build create a driver. All runs of the driver share one buffered reader
// over the input.
func (b DriverBuilder) Build(name string) Driver {
	return &driverImpl{
		name:    name,
		engine:  b.engine,
		monitor: b.monitor,
		cfg:     b.cfg,
		in:      bufio.NewReader(b.in),
		out:     b.out,
		report:  b.report,
	}
}

// Package api defines the driver that compiles and runs stack programs.
package api

import (
	"bufio"
	"io"
	"log/slog"

	"github.com/pkg/errors"
	"github.com/rs/xid"
	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"

	"github.com/sarchlab/stackasm/asm"
	"github.com/sarchlab/stackasm/config"
	"github.com/sarchlab/stackasm/program"
	"github.com/sarchlab/stackasm/verify"
)

// ErrLint is returned by Run when lint finds STRUCT issues.
var ErrLint = errors.New("program failed lint")

// Driver compiles source files into the intermediate format and runs them.
type Driver interface {
	// Compile assembles the source file src and writes the resolved
	// program to out. It returns the number of records written.
	Compile(src, out string) (int, error)

	// Run loads the intermediate file out and executes it. A non-negative
	// count must match the number of records in the file.
	Run(out string, count int) error

	// Exec assembles the source file src and executes it directly.
	Exec(src string) error
}

type driverImpl struct {
	name    string
	engine  sim.Engine
	monitor *monitoring.Monitor
	cfg     config.Config
	in      *bufio.Reader
	out     io.Writer
	report  io.Writer
}

func (d *driverImpl) Compile(src, out string) (int, error) {
	p, err := asm.AssembleFile(src)
	if err != nil {
		return 0, err
	}

	if err := program.WriteFile(out, p); err != nil {
		return 0, err
	}

	slog.Info("Compiled", "Src", src, "Out", out, "Records", p.Len())

	return p.Len(), nil
}

func (d *driverImpl) Run(out string, count int) error {
	p, err := program.ReadFile(out, count)
	if err != nil {
		return err
	}

	return d.execute(out, p)
}

func (d *driverImpl) Exec(src string) error {
	p, err := asm.AssembleFile(src)
	if err != nil {
		return err
	}

	return d.execute(src, p)
}

func (d *driverImpl) execute(file string, p *program.Program) error {
	id := xid.New().String()

	if d.cfg.Lint {
		if err := d.lint(id, p); err != nil {
			return err
		}
	}

	engine := d.engine
	if engine == nil {
		engine = sim.NewSerialEngine()
	}

	m := config.NewMachineBuilder().
		WithEngine(engine).
		WithConfig(d.cfg).
		WithInput(d.in).
		WithOutput(d.out).
		WithMonitor(d.monitor).
		Build(d.name + ".Core")
	m.Load(p)

	slog.Info("Run", "RunID", id, "File", file, "Records", p.Len(),
		"Direct", d.cfg.Direct)

	if d.cfg.Direct {
		err := m.RunDirect()
		return d.finish(id, m.Steps(), err)
	}

	err := m.Run()
	return d.finish(id, m.Steps(), err)
}

func (d *driverImpl) finish(id string, steps uint64, err error) error {
	if err != nil {
		slog.Error("Fault", "RunID", id, "Steps", steps, "Err", err)
		return err
	}

	slog.Info("Halt", "RunID", id, "Steps", steps)

	return nil
}

func (d *driverImpl) lint(id string, p *program.Program) error {
	report := verify.GenerateReport(p, 0)
	for _, issue := range report.LintIssues {
		slog.Warn("Lint", "RunID", id, "Type", issue.Type,
			"Index", issue.Index, "Message", issue.Message)
	}

	if len(report.StructIssues) == 0 {
		return nil
	}

	if d.report != nil {
		report.WriteReport(d.report)
	}

	return errors.Wrapf(ErrLint, "%d STRUCT issues", len(report.StructIssues))
}

package core

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/stackasm/program"
)

const (
	// LevelTrace is the log level of the per-instruction trace.
	LevelTrace slog.Level = slog.LevelDebug - 4

	// Epsilon is the tolerance of Compare.
	Epsilon = 1e-10
)

// Trace logs msg at LevelTrace.
func Trace(msg string, args ...any) {
	slog.Log(context.Background(), LevelTrace, msg, args...)
}

// Compare returns 1 if a exceeds b by at least Epsilon, -1 if a is below
// b by more than Epsilon and 0 otherwise.
func Compare(a, b float64) int {
	if a >= b+Epsilon {
		return 1
	}

	if a < b-Epsilon {
		return -1
	}

	return 0
}

func dumpState(w io.Writer, state *coreState) error {
	regTable := table.NewWriter()
	regTable.SetTitle("Registers")

	header := table.Row{}
	row := table.Row{}
	for _, r := range program.Registers() {
		header = append(header, r.String())
		row = append(row, state.Registers[r.Index()])
	}
	regTable.AppendHeader(header)
	regTable.AppendRow(row)

	if _, err := fmt.Fprintln(w, regTable.Render()); err != nil {
		return err
	}

	ctrlTable := table.NewWriter()
	ctrlTable.SetTitle("Control")
	ctrlTable.AppendHeader(table.Row{"IP", "Zero", "Above"})
	ctrlTable.AppendRow(table.Row{state.IP, state.Zero, state.Above})

	if _, err := fmt.Fprintln(w, ctrlTable.Render()); err != nil {
		return err
	}

	return state.Stack.Dump(w)
}

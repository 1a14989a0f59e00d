package verify

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/sarchlab/stackasm/program"
)

// VerificationReport represents a complete verification report
type VerificationReport struct {
	RecordCount   int
	LintIssues    []Issue
	StructIssues  []Issue
	FlowIssues    []Issue
	SimulationErr error
	SimulationOK  bool
	SimSteps      uint64
	SimOutput     string
}

// GenerateReport runs both lint and functional simulation, returns a report.
// The simulation is skipped when lint finds STRUCT issues or maxSimSteps is
// not positive.
func GenerateReport(p *program.Program, maxSimSteps int, inputs ...float64) *VerificationReport {
	report := &VerificationReport{
		RecordCount: p.Len(),
	}

	report.LintIssues = RunLint(p)

	for _, issue := range report.LintIssues {
		if issue.Type == IssueStruct {
			report.StructIssues = append(report.StructIssues, issue)
		} else {
			report.FlowIssues = append(report.FlowIssues, issue)
		}
	}

	if len(report.StructIssues) > 0 || maxSimSteps <= 0 {
		return report
	}

	fs := NewFunctionalSimulator(p).WithInputs(inputs...)
	report.SimulationErr = fs.Run(maxSimSteps)
	report.SimulationOK = report.SimulationErr == nil
	report.SimSteps = fs.Steps()
	report.SimOutput = fs.Output()

	return report
}

// Passed reports whether the program has no STRUCT issue and, if it was
// simulated, ran without fault.
func (r *VerificationReport) Passed() bool {
	if len(r.StructIssues) > 0 {
		return false
	}

	return r.SimulationErr == nil
}

// WriteReport writes a formatted report to a writer
func (r *VerificationReport) WriteReport(w io.Writer) {
	separator := strings.Repeat("=", 60)

	fmt.Fprintln(w, separator)
	fmt.Fprintln(w, "PROGRAM VERIFICATION REPORT")
	fmt.Fprintln(w, separator)
	fmt.Fprintf(w, "Records: %d\n", r.RecordCount)

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 1: STATIC LINT CHECKS")
	fmt.Fprintln(w, separator)

	if len(r.LintIssues) == 0 {
		fmt.Fprintln(w, "No lint issues found")
	} else {
		t := table.NewWriter()
		t.AppendHeader(table.Row{"Type", "Record", "Message"})
		for _, issue := range r.LintIssues {
			idx := "-"
			if issue.Index >= 0 {
				idx = fmt.Sprintf("#%d", issue.Index)
			}
			t.AppendRow(table.Row{issue.Type, idx, issue.Message})
		}
		fmt.Fprintln(w, t.Render())
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintln(w, "STAGE 2: FUNCTIONAL SIMULATION")
	fmt.Fprintln(w, separator)

	switch {
	case len(r.StructIssues) > 0:
		fmt.Fprintln(w, "Skipped: fix STRUCT issues first")
	case r.SimulationOK:
		fmt.Fprintf(w, "Completed in %d steps\n", r.SimSteps)
	case r.SimulationErr != nil:
		fmt.Fprintf(w, "Simulation error after %d steps: %v\n", r.SimSteps, r.SimulationErr)
	default:
		fmt.Fprintln(w, "Skipped")
	}

	fmt.Fprintln(w, "\n"+separator)
	fmt.Fprintf(w, "Lint Result: %d issues detected (%d STRUCT, %d FLOW)\n",
		len(r.LintIssues), len(r.StructIssues), len(r.FlowIssues))
	fmt.Fprintln(w, separator)
}

// SaveReportToFile saves the report to a file
func (r *VerificationReport) SaveReportToFile(filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	r.WriteReport(file)
	return nil
}

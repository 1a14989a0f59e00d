// Package verify provides static and dynamic checks of resolved programs.
//
// This package implements two complementary verification stages:
//
// 1. Static Lint (lint.go): structural and control flow checks
//   - STRUCT checks: entry marker, opcode and operand shapes, registers,
//     unresolved labels and jump targets
//   - FLOW checks: missing END, code that can never run
//
// 2. Functional Simulator (funcsim.go): a bounded dry run on the engine
//   - Executes the program with scripted input and a step budget
//   - Captures everything the program writes
//
// # Usage Example
//
//	p, _ := asm.AssembleFile("factorial.stk")
//
//	issues := verify.RunLint(p)
//	for _, issue := range issues {
//	    log.Printf("[%s] #%d: %s", issue.Type, issue.Index, issue.Message)
//	}
//
//	report := verify.GenerateReport(p, 10000)
//	report.WriteReport(os.Stdout)
package verify

// IssueType categorizes lint issues
type IssueType string

const (
	IssueStruct IssueType = "STRUCT" // The engine would fault on or misread the record
	IssueFlow   IssueType = "FLOW"   // Suspicious control flow
)

// Issue represents a single lint issue
type Issue struct {
	Type    IssueType              // STRUCT or FLOW
	Index   int                    // Record ordinal, -1 if not applicable
	Message string                 // Human-readable description
	Details map[string]interface{} // Additional structured data
}

// HasStructIssues reports whether any issue would stop the engine.
func HasStructIssues(issues []Issue) bool {
	for _, issue := range issues {
		if issue.Type == IssueStruct {
			return true
		}
	}

	return false
}

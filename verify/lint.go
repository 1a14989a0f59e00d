package verify

import (
	"fmt"

	"github.com/sarchlab/stackasm/program"
)

// RunLint performs static lint checks on a resolved program.
// Returns a list of issues found, or empty list if no issues.
func RunLint(p *program.Program) []Issue {
	var issues []Issue

	issues = append(issues, checkEntry(p)...)

	for i, r := range p.Records {
		issues = append(issues, checkRecord(p, i, r)...)
	}

	issues = append(issues, checkFlow(p)...)

	return issues
}

// checkEntry validates that there is exactly one BEGIN.
func checkEntry(p *program.Program) []Issue {
	var issues []Issue

	first := -1
	for i, r := range p.Records {
		if r.IsMarker() || r.Op != program.OpBegin {
			continue
		}

		if first < 0 {
			first = i
			continue
		}

		issues = append(issues, Issue{
			Type:    IssueStruct,
			Index:   i,
			Message: fmt.Sprintf("second BEGIN at #%d, first at #%d (MANY_BEGIN)", i, first),
			Details: map[string]interface{}{"first": first},
		})
	}

	if first < 0 {
		issues = append([]Issue{{
			Type:    IssueStruct,
			Index:   -1,
			Message: "couldn't find BEGIN (NO_BEGIN)",
		}}, issues...)
	}

	return issues
}

func checkRecord(p *program.Program, i int, r program.Record) []Issue {
	structIssue := func(format string, args ...interface{}) []Issue {
		return []Issue{{
			Type:    IssueStruct,
			Index:   i,
			Message: fmt.Sprintf(format, args...),
			Details: map[string]interface{}{"record": r.String()},
		}}
	}

	switch r.Kind {
	case program.LabelMarker:
		if r.Op != program.OpNone || r.Operand != program.OperandNone {
			return structIssue("label marker carries %s %s", r.Op, r.Operand)
		}
		return nil
	case program.Instruction:
	default:
		return structIssue("unknown record kind %d", int(r.Kind))
	}

	if !r.Op.Valid() {
		return structIssue("unknown opcode %d", int(r.Op))
	}

	switch r.Op.Category() {
	case program.CategorySingleArg:
		if r.Op == program.OpPush && r.Operand == program.OperandImmediate {
			return nil
		}
		if _, ok := r.Register(); !ok {
			return structIssue("%s needs a register operand, got %s %s",
				r.Op, r.Operand, r.OperandString())
		}
	case program.CategoryNoArg:
		if r.Operand != program.OperandNone {
			return structIssue("%s takes no operand, got %s", r.Op, r.Operand)
		}
	case program.CategoryJump:
		return checkJump(p, i, r)
	}

	return nil
}

func checkJump(p *program.Program, i int, r program.Record) []Issue {
	if r.Operand == program.OperandLabelTarget {
		return []Issue{{
			Type:    IssueStruct,
			Index:   i,
			Message: fmt.Sprintf("%s still refers to label #%v", r.Op, r.Value),
		}}
	}

	addr, ok := r.Address()
	if !ok {
		return []Issue{{
			Type:    IssueStruct,
			Index:   i,
			Message: fmt.Sprintf("%s needs a resolved address, got %s", r.Op, r.Operand),
		}}
	}

	if addr < 0 || addr > p.Len() {
		return []Issue{{
			Type:    IssueStruct,
			Index:   i,
			Message: fmt.Sprintf("%s target %d outside [0, %d]", r.Op, addr, p.Len()),
			Details: map[string]interface{}{"target": addr, "limit": p.Len()},
		}}
	}

	return nil
}

// checkFlow reports code that never runs and programs without END.
func checkFlow(p *program.Program) []Issue {
	var issues []Issue

	begin := -1
	hasEnd := false
	for i, r := range p.Records {
		if r.IsMarker() {
			continue
		}

		if r.Op == program.OpBegin && begin < 0 {
			begin = i
		}

		if r.Op == program.OpEnd {
			hasEnd = true
		}
	}

	if begin > 0 && !jumpsBefore(p, begin) {
		count := 0
		for _, r := range p.Records[:begin] {
			if !r.IsMarker() {
				count++
			}
		}

		if count > 0 {
			issues = append(issues, Issue{
				Type:    IssueFlow,
				Index:   0,
				Message: fmt.Sprintf("%d instructions before BEGIN are never executed", count),
				Details: map[string]interface{}{"begin": begin},
			})
		}
	}

	if !hasEnd {
		issues = append(issues, Issue{
			Type:    IssueFlow,
			Index:   -1,
			Message: "program has no END, it stops only by running off the end",
		})
	}

	return issues
}

// jumpsBefore reports whether some jump lands before the given ordinal.
func jumpsBefore(p *program.Program, ordinal int) bool {
	for _, r := range p.Records {
		if addr, ok := r.Address(); ok && addr < ordinal {
			return true
		}
	}

	return false
}

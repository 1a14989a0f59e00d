package program

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
)

// List writes a human readable listing of p, one row per record.
func List(w io.Writer, p *Program) error {
	t := table.NewWriter()
	t.SetTitle("Program (%d records)", p.Len())
	t.AppendHeader(table.Row{"#", "Kind", "Op", "Operand", "Value"})

	for i, r := range p.Records {
		op := r.Op.String()
		if r.IsMarker() {
			op = fmt.Sprintf("label #%s", formatValue(r.Value))
		}

		t.AppendRow(table.Row{i, r.Kind, op, r.Operand, r.OperandString()})
	}

	_, err := fmt.Fprintln(w, t.Render())

	return err
}

package program

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

// ErrCountMismatch is returned by ReadFile when the file holds a different
// number of records than the caller expects.
var ErrCountMismatch = errors.New("instruction count mismatch")

// FormatError reports a malformed line of the intermediate format.
type FormatError struct {
	Line   int
	Text   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("line %d (%q): %s", e.Line, e.Text, e.Reason)
}

// Encode writes p as one line per record:
//
//	kind opcode operand value
func Encode(w io.Writer, p *Program) error {
	bw := bufio.NewWriter(w)

	for _, r := range p.Records {
		_, err := fmt.Fprintf(bw, "%d %d %d %s\n",
			int(r.Kind), int(r.Op), int(r.Operand), formatValue(r.Value))
		if err != nil {
			return err
		}
	}

	return bw.Flush()
}

// Decode parses records written by Encode. Blank lines are ignored.
func Decode(r io.Reader) (*Program, error) {
	p := &Program{}
	scanner := bufio.NewScanner(r)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		text := scanner.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}

		rec, err := decodeLine(text)
		if err != nil {
			return nil, &FormatError{Line: lineNo, Text: text, Reason: err.Error()}
		}

		p.Records = append(p.Records, rec)
	}

	if err := scanner.Err(); err != nil {
		return nil, errors.Wrap(err, "read instructions")
	}

	return p, nil
}

func decodeLine(text string) (Record, error) {
	fields := strings.Fields(text)
	if len(fields) != 4 {
		return Record{}, fmt.Errorf("expected 4 fields, got %d", len(fields))
	}

	codes := make([]int, 3)
	for i := range codes {
		v, err := strconv.Atoi(fields[i])
		if err != nil {
			return Record{}, fmt.Errorf("field %d is not an integer code", i+1)
		}
		codes[i] = v
	}

	value, err := strconv.ParseFloat(fields[3], 64)
	if err != nil {
		return Record{}, fmt.Errorf("operand value %q is not a number", fields[3])
	}

	rec := Record{
		Kind:    RecordKind(codes[0]),
		Op:      Opcode(codes[1]),
		Operand: OperandKind(codes[2]),
		Value:   value,
	}

	if !rec.Kind.Valid() {
		return Record{}, fmt.Errorf("unknown record kind %d", codes[0])
	}

	if rec.Kind == Instruction && !rec.Op.Valid() {
		return Record{}, fmt.Errorf("unknown opcode %d", codes[1])
	}

	if rec.Kind == LabelMarker && rec.Op != OpNone {
		return Record{}, fmt.Errorf("label marker carries opcode %d", codes[1])
	}

	if !rec.Operand.Valid() {
		return Record{}, fmt.Errorf("unknown operand kind %d", codes[2])
	}

	return rec, nil
}

// WriteFile encodes p into the file at path.
func WriteFile(path string, p *Program) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}

	if err := Encode(f, p); err != nil {
		f.Close()
		return errors.Wrapf(err, "write %s", path)
	}

	return errors.Wrapf(f.Close(), "close %s", path)
}

// ReadFile decodes the program stored at path. If expected is not negative,
// the number of records must equal it.
func ReadFile(path string, expected int) (*Program, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	p, err := Decode(f)
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}

	if expected >= 0 && p.Len() != expected {
		return nil, errors.Wrapf(ErrCountMismatch,
			"%s holds %d records, expected %d", path, p.Len(), expected)
	}

	return p, nil
}

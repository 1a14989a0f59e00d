package asm

import (
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/sarchlab/stackasm/program"
)

// Lex classifies every token in place and fills in its payload. Words that
// fit no category and references to undefined labels are reported as
// UNKNOWN.
func Lex(tokens []Token, st *SymbolTable) error {
	for i := range tokens {
		t := &tokens[i]
		t.Kind = Classify(t.Word)

		switch t.Kind {
		case Mnemonic:
			info, _ := program.DefaultISA.Lookup(t.Word)
			t.Payload = float64(info.Op)
		case Register:
			reg, _ := program.LookupRegister(strings.ToUpper(t.Word))
			t.Payload = float64(reg)
		case Number:
			// Out-of-range literals saturate to ±Inf.
			v, err := strconv.ParseFloat(t.Word, 64)
			if err != nil && !errors.Is(err, strconv.ErrRange) {
				return newError(Unknown, *t)
			}
			t.Payload = v
		case LabelDef, LabelRef:
			idx, ok := st.Lookup(t.Word)
			if !ok {
				return newError(Unknown, *t)
			}
			t.Payload = float64(idx)
		default:
			return newError(Unknown, *t)
		}
	}

	return nil
}

// Emitter performs the first translation pass. It turns classified tokens
// into records and remembers, for every label, the ordinal of the record
// that follows its marker.
type Emitter struct {
	tokens    []Token
	records   []program.Record
	addresses map[int]int
}

// NewEmitter creates an emitter over lexed tokens.
func NewEmitter(tokens []Token) *Emitter {
	return &Emitter{
		tokens:    tokens,
		addresses: make(map[int]int),
	}
}

// Records returns the records emitted so far.
func (e *Emitter) Records() []program.Record {
	return e.records
}

// Addresses maps label indices to resolved instruction ordinals.
func (e *Emitter) Addresses() map[int]int {
	return e.addresses
}

// Emit walks all tokens, one group at a time.
func (e *Emitter) Emit() error {
	for i := 0; i < len(e.tokens); {
		n, err := e.emitGroup(i)
		if err != nil {
			return err
		}

		i += n
	}

	return nil
}

func (e *Emitter) emitGroup(i int) (int, error) {
	t := e.tokens[i]

	switch t.Kind {
	case Mnemonic:
		return e.emitMnemonic(i)
	case LabelDef:
		e.emitLabel(t)
		return 1, nil
	case Register, Number, LabelRef:
		return 0, newError(WrongToken, t)
	default:
		return 0, newError(Unknown, t)
	}
}

func (e *Emitter) emitMnemonic(i int) (int, error) {
	t := e.tokens[i]
	op := program.Opcode(t.Payload)

	switch op.Category() {
	case program.CategorySingleArg:
		return 2, e.emitWithArgument(i, op)
	case program.CategoryNoArg:
		return 1, e.emitNoArgument(i, op)
	case program.CategoryJump:
		return 2, e.emitJump(i, op)
	default:
		return 0, newError(Unknown, t)
	}
}

func (e *Emitter) emitWithArgument(i int, op program.Opcode) error {
	t := e.tokens[i]
	last := len(e.tokens) - 1

	if i == last {
		return newError(NeedArg, t)
	}

	// The argument would be the final word, but a program has to end with
	// END.
	if i == last-1 {
		return newError(WrongEnd, t)
	}

	arg := e.tokens[i+1]
	switch arg.Kind {
	case Register:
		e.records = append(e.records,
			program.InstReg(op, program.Register(arg.Payload)))
	case Number:
		if op != program.OpPush {
			return newError(NeedArg, t)
		}
		e.records = append(e.records, program.InstImm(op, arg.Payload))
	default:
		return newError(NeedArg, t)
	}

	return nil
}

func (e *Emitter) emitNoArgument(i int, op program.Opcode) error {
	t := e.tokens[i]
	last := len(e.tokens) - 1

	if i < last {
		next := e.tokens[i+1]
		if next.Kind != Mnemonic && next.Kind != LabelDef {
			return newError(NoArg, t)
		}
	}

	if i == last && op != program.OpEnd {
		return newError(WrongEnd, t)
	}

	e.records = append(e.records, program.Inst(op))

	return nil
}

func (e *Emitter) emitJump(i int, op program.Opcode) error {
	t := e.tokens[i]

	if i == len(e.tokens)-1 || e.tokens[i+1].Kind != LabelRef {
		return newError(NeedArg, t)
	}

	label := int(e.tokens[i+1].Payload)
	e.records = append(e.records, program.InstLabel(op, label))

	return nil
}

func (e *Emitter) emitLabel(t Token) {
	idx := int(t.Payload)
	e.records = append(e.records, program.Marker(idx))

	// Duplicate definitions share the index of the first one; only the
	// first definition places the label.
	if _, ok := e.addresses[idx]; !ok {
		e.addresses[idx] = len(e.records)
	}
}

// Resolve is the second translation pass. It rewrites every label target
// in records into the resolved address recorded in addresses.
func Resolve(records []program.Record, addresses map[int]int) error {
	for i := range records {
		r := &records[i]
		if r.Operand != program.OperandLabelTarget {
			continue
		}

		addr, ok := addresses[int(r.Value)]
		if !ok {
			return errors.Wrapf(ErrUnresolvedLabel,
				"record %d refers to label #%d", i, int(r.Value))
		}

		*r = program.InstAddr(r.Op, addr)
	}

	return nil
}

// Translate runs both passes over lexed tokens.
func Translate(tokens []Token) (*program.Program, error) {
	e := NewEmitter(tokens)
	if err := e.Emit(); err != nil {
		return nil, err
	}

	if err := Resolve(e.records, e.addresses); err != nil {
		return nil, err
	}

	return program.New(e.records...), nil
}

// Assemble translates source text into a resolved program.
func Assemble(src string) (*program.Program, error) {
	tokens := Tokenize(src)
	if len(tokens) == 0 {
		return nil, &CompileError{Code: Empty}
	}

	st := BuildSymbols(tokens)
	for _, name := range st.Duplicates() {
		slog.Warn("label defined more than once, first definition wins",
			"label", name)
	}

	if err := Lex(tokens, st); err != nil {
		return nil, err
	}

	p, err := Translate(tokens)
	if err != nil {
		return nil, err
	}

	slog.Debug("assembled",
		"tokens", len(tokens),
		"labels", st.Len(),
		"records", p.Len(),
	)

	return p, nil
}

// AssembleFile reads and assembles the source file at path.
func AssembleFile(path string) (*program.Program, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read %s", path)
	}

	return Assemble(string(src))
}

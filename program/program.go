// Package program defines the resolved instruction records exchanged between
// the assembler and the engine, and their line-oriented file format.
package program

import (
	"fmt"
	"math"
	"strconv"
)

// RecordKind tells instructions apart from label markers.
type RecordKind int

// Record kinds. The values are the codes used in the intermediate format.
const (
	Instruction RecordKind = 1
	LabelMarker RecordKind = 5
)

// Valid reports whether k is a known record kind.
func (k RecordKind) Valid() bool {
	return k == Instruction || k == LabelMarker
}

func (k RecordKind) String() string {
	switch k {
	case Instruction:
		return "Instruction"
	case LabelMarker:
		return "LabelMarker"
	default:
		return fmt.Sprintf("RecordKind(%d)", int(k))
	}
}

// OperandKind tells how the value of a record is interpreted.
type OperandKind int

// Operand kinds. The values are the codes used in the intermediate format.
const (
	OperandImmediate       OperandKind = 2
	OperandRegister        OperandKind = 3
	OperandNone            OperandKind = 4
	OperandLabelTarget     OperandKind = 6
	OperandResolvedAddress OperandKind = 7
)

// Valid reports whether k is a known operand kind.
func (k OperandKind) Valid() bool {
	switch k {
	case OperandImmediate, OperandRegister, OperandNone,
		OperandLabelTarget, OperandResolvedAddress:
		return true
	default:
		return false
	}
}

func (k OperandKind) String() string {
	switch k {
	case OperandImmediate:
		return "Immediate"
	case OperandRegister:
		return "Register"
	case OperandNone:
		return "None"
	case OperandLabelTarget:
		return "LabelTarget"
	case OperandResolvedAddress:
		return "ResolvedAddress"
	default:
		return fmt.Sprintf("OperandKind(%d)", int(k))
	}
}

// Opcode identifies an operation.
type Opcode int

// Opcodes. OpNone is carried by label markers.
const (
	OpNone Opcode = 100 + iota
	OpPush
	OpPop
	OpAdd
	OpSub
	OpMul
	OpDiv
	OpMod
	OpInput
	OpOutput
	OpDump
	OpJmp
	OpBegin
	OpEnd
	OpSqrt
	OpTop
	OpAbs
	OpCmp
	OpJe
	OpJne
	OpJb
	OpJbe
	OpJa
	OpJae
)

// Valid reports whether op is an executable opcode.
func (op Opcode) Valid() bool {
	return op >= OpPush && op <= OpJae
}

// Category returns the mnemonic category of op.
func (op Opcode) Category() Category {
	info, ok := DefaultISA.Info(op)
	if !ok {
		return CategoryNone
	}

	return info.Category
}

// IsJump reports whether op transfers control to a label.
func (op Opcode) IsJump() bool {
	return op.Category() == CategoryJump
}

func (op Opcode) String() string {
	if op == OpNone {
		return "-"
	}

	if info, ok := DefaultISA.Info(op); ok {
		return info.Mnemonic
	}

	return fmt.Sprintf("Opcode(%d)", int(op))
}

// Register names one of the seven general purpose registers.
type Register int

// Registers.
const (
	AX Register = 201 + iota
	BX
	CX
	DX
	SI
	DI
	BP
)

// NumRegisters is the number of general purpose registers.
const NumRegisters = 7

var registerNames = [NumRegisters]string{"AX", "BX", "CX", "DX", "SI", "DI", "BP"}

// Registers lists all registers in index order.
func Registers() []Register {
	regs := make([]Register, 0, NumRegisters)
	for r := AX; r <= BP; r++ {
		regs = append(regs, r)
	}

	return regs
}

// LookupRegister finds a register by its upper-case name.
func LookupRegister(name string) (Register, bool) {
	for i, n := range registerNames {
		if n == name {
			return AX + Register(i), true
		}
	}

	return 0, false
}

// Valid reports whether r names a register.
func (r Register) Valid() bool {
	return r >= AX && r <= BP
}

// Index returns the position of r in the register file.
func (r Register) Index() int {
	return int(r - AX)
}

func (r Register) String() string {
	if !r.Valid() {
		return fmt.Sprintf("Register(%d)", int(r))
	}

	return registerNames[r.Index()]
}

// Record is one resolved instruction or a label marker.
type Record struct {
	Kind    RecordKind
	Op      Opcode
	Operand OperandKind
	Value   float64
}

// Inst creates an instruction without operand.
func Inst(op Opcode) Record {
	return Record{Kind: Instruction, Op: op, Operand: OperandNone}
}

// InstReg creates an instruction with a register operand.
func InstReg(op Opcode, r Register) Record {
	return Record{
		Kind:    Instruction,
		Op:      op,
		Operand: OperandRegister,
		Value:   float64(r),
	}
}

// InstImm creates an instruction with an immediate operand.
func InstImm(op Opcode, v float64) Record {
	return Record{
		Kind:    Instruction,
		Op:      op,
		Operand: OperandImmediate,
		Value:   v,
	}
}

// InstLabel creates a jump that still refers to a label index.
func InstLabel(op Opcode, label int) Record {
	return Record{
		Kind:    Instruction,
		Op:      op,
		Operand: OperandLabelTarget,
		Value:   float64(label),
	}
}

// InstAddr creates a jump to a resolved address.
func InstAddr(op Opcode, addr int) Record {
	return Record{
		Kind:    Instruction,
		Op:      op,
		Operand: OperandResolvedAddress,
		Value:   float64(addr),
	}
}

// Marker creates the label marker of the label with the given index.
func Marker(label int) Record {
	return Record{
		Kind:    LabelMarker,
		Op:      OpNone,
		Operand: OperandNone,
		Value:   float64(label),
	}
}

// IsMarker reports whether r is a label marker.
func (r Record) IsMarker() bool {
	return r.Kind == LabelMarker
}

// Register returns the register operand of r.
func (r Record) Register() (Register, bool) {
	if r.Operand != OperandRegister {
		return 0, false
	}

	reg := Register(r.Value)
	if float64(reg) != r.Value || !reg.Valid() {
		return 0, false
	}

	return reg, true
}

// Address returns the resolved jump address of r.
func (r Record) Address() (int, bool) {
	if r.Operand != OperandResolvedAddress {
		return 0, false
	}

	if r.Value != math.Trunc(r.Value) {
		return 0, false
	}

	return int(r.Value), true
}

// OperandString renders the operand the way it would appear in source.
func (r Record) OperandString() string {
	switch r.Operand {
	case OperandRegister:
		if reg, ok := r.Register(); ok {
			return reg.String()
		}
		return formatValue(r.Value)
	case OperandImmediate:
		return formatValue(r.Value)
	case OperandLabelTarget:
		return fmt.Sprintf(":#%s", formatValue(r.Value))
	case OperandResolvedAddress:
		return fmt.Sprintf("@%s", formatValue(r.Value))
	default:
		return ""
	}
}

func (r Record) String() string {
	if r.IsMarker() {
		return fmt.Sprintf("label #%s:", formatValue(r.Value))
	}

	if r.Operand == OperandNone {
		return r.Op.String()
	}

	return r.Op.String() + " " + r.OperandString()
}

func formatValue(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// Program is the linear sequence of instruction records.
type Program struct {
	Records []Record
}

// New creates a program from records.
func New(records ...Record) *Program {
	return &Program{Records: records}
}

// Len returns the number of records, label markers included.
func (p *Program) Len() int {
	return len(p.Records)
}

// At returns the record at ordinal i.
func (p *Program) At(i int) Record {
	return p.Records[i]
}

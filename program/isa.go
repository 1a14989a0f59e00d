package program

import "strings"

// Category groups mnemonics by how many operand tokens follow them in
// source text.
type Category int

// Mnemonic categories.
const (
	CategoryNone Category = iota
	CategorySingleArg
	CategoryNoArg
	CategoryJump
)

// InstInfo describes one mnemonic of the instruction set.
type InstInfo struct {
	Mnemonic string
	Op       Opcode
	Category Category

	// Binary is set for the two-operand arithmetic opcodes.
	Binary func(top, bottom float64) float64
	// Unary is set for the one-operand arithmetic opcodes.
	Unary func(v float64) float64
	// Cond is set for the jumps. It reports whether the jump is taken for
	// the given zero and above flags.
	Cond func(zero, above bool) bool
}

// ISA is a struct that represents an Instruction Set Architecture.
type ISA struct {
	// name of the ISA.
	isaName string
	// map from mnemonic to the description of the instruction.
	nameToInfo map[string]InstInfo
	opToInfo   map[Opcode]InstInfo
}

// NewISA creates an empty instruction set.
func NewISA(name string) *ISA {
	return &ISA{
		isaName:    name,
		nameToInfo: make(map[string]InstInfo),
		opToInfo:   make(map[Opcode]InstInfo),
	}
}

// Name returns the name of the ISA.
func (isa *ISA) Name() string {
	return isa.isaName
}

// Register a new instruction to the ISA.
func (isa *ISA) registerNewInst(info InstInfo) {
	info.Mnemonic = strings.ToUpper(info.Mnemonic)
	isa.nameToInfo[info.Mnemonic] = info
	isa.opToInfo[info.Op] = info
}

// Lookup finds the instruction for a mnemonic. The comparison is case
// insensitive.
func (isa *ISA) Lookup(mnemonic string) (InstInfo, bool) {
	info, ok := isa.nameToInfo[strings.ToUpper(mnemonic)]
	return info, ok
}

// Info returns the description of an opcode.
func (isa *ISA) Info(op Opcode) (InstInfo, bool) {
	info, ok := isa.opToInfo[op]
	return info, ok
}

// Mnemonics lists every mnemonic in opcode order.
func (isa *ISA) Mnemonics() []string {
	names := make([]string, 0, len(isa.opToInfo))
	for op := OpPush; op <= OpJae; op++ {
		if info, ok := isa.opToInfo[op]; ok {
			names = append(names, info.Mnemonic)
		}
	}

	return names
}

// DefaultISA is the instruction set understood by the assembler and the
// engine.
var DefaultISA = defaultISAinit()

func defaultISAinit() *ISA {
	isa := NewISA("Stack Machine ISA")

	for _, info := range []InstInfo{
		{Mnemonic: "PUSH", Op: OpPush, Category: CategorySingleArg},
		{Mnemonic: "POP", Op: OpPop, Category: CategorySingleArg},
		{Mnemonic: "TOP", Op: OpTop, Category: CategorySingleArg},
		{Mnemonic: "INPUT", Op: OpInput, Category: CategorySingleArg},
		{Mnemonic: "OUTPUT", Op: OpOutput, Category: CategorySingleArg},

		{Mnemonic: "ADD", Op: OpAdd, Category: CategoryNoArg, Binary: instADD},
		{Mnemonic: "SUB", Op: OpSub, Category: CategoryNoArg, Binary: instSUB},
		{Mnemonic: "MUL", Op: OpMul, Category: CategoryNoArg, Binary: instMUL},
		{Mnemonic: "DIV", Op: OpDiv, Category: CategoryNoArg, Binary: instDIV},
		{Mnemonic: "MOD", Op: OpMod, Category: CategoryNoArg, Binary: instMOD},
		{Mnemonic: "SQRT", Op: OpSqrt, Category: CategoryNoArg, Unary: instSQRT},
		{Mnemonic: "ABS", Op: OpAbs, Category: CategoryNoArg, Unary: instABS},
		{Mnemonic: "CMP", Op: OpCmp, Category: CategoryNoArg, Binary: instSUB},
		{Mnemonic: "DUMP", Op: OpDump, Category: CategoryNoArg},
		{Mnemonic: "BEGIN", Op: OpBegin, Category: CategoryNoArg},
		{Mnemonic: "END", Op: OpEnd, Category: CategoryNoArg},

		{Mnemonic: "JMP", Op: OpJmp, Category: CategoryJump, Cond: condAlways},
		{Mnemonic: "JE", Op: OpJe, Category: CategoryJump, Cond: condEqual},
		{Mnemonic: "JNE", Op: OpJne, Category: CategoryJump, Cond: condNotEqual},
		{Mnemonic: "JB", Op: OpJb, Category: CategoryJump, Cond: condBelow},
		{Mnemonic: "JBE", Op: OpJbe, Category: CategoryJump, Cond: condBelowEqual},
		{Mnemonic: "JA", Op: OpJa, Category: CategoryJump, Cond: condAbove},
		{Mnemonic: "JAE", Op: OpJae, Category: CategoryJump, Cond: condAboveEqual},
	} {
		isa.registerNewInst(info)
	}

	return isa
}

package asm

// SymbolTable holds label names in the order they are first defined. The
// index of a name is its position in the table.
type SymbolTable struct {
	names []string
}

// BuildSymbols collects every label definition among tokens.
func BuildSymbols(tokens []Token) *SymbolTable {
	st := &SymbolTable{}

	for _, t := range tokens {
		if Classify(t.Word) == LabelDef {
			st.names = append(st.names, labelName(t.Word))
		}
	}

	return st
}

// Lookup returns the index of name. When a label is defined more than once
// the first definition wins.
func (st *SymbolTable) Lookup(name string) (int, bool) {
	name = labelName(name)
	for i, n := range st.names {
		if n == name {
			return i, true
		}
	}

	return 0, false
}

// Len returns the number of entries, duplicates included.
func (st *SymbolTable) Len() int {
	return len(st.names)
}

// Name returns the label at index i.
func (st *SymbolTable) Name(i int) string {
	return st.names[i]
}

// Duplicates lists the names defined more than once.
func (st *SymbolTable) Duplicates() []string {
	seen := make(map[string]int)
	var dups []string

	for _, n := range st.names {
		seen[n]++
		if seen[n] == 2 {
			dups = append(dups, n)
		}
	}

	return dups
}

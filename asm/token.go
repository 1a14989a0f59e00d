// Package asm translates assembly source into resolved instruction records.
//
// Translation runs in stages. Tokenize splits the text into words.
// BuildSymbols collects the label definitions. Lex classifies every word
// and attaches its payload. The Emitter walks the classified tokens and
// produces one record per token group, remembering where each label marker
// landed. Resolve finally rewrites every label reference into the address
// of the record that follows the label marker.
package asm

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
)

// Kind classifies a word of source text.
type Kind int

// Token kinds.
const (
	Invalid Kind = iota
	Mnemonic
	Register
	Number
	LabelDef
	LabelRef
)

func (k Kind) String() string {
	switch k {
	case Mnemonic:
		return "Mnemonic"
	case Register:
		return "Register"
	case Number:
		return "Number"
	case LabelDef:
		return "LabelDef"
	case LabelRef:
		return "LabelRef"
	default:
		return "Invalid"
	}
}

// Token is one word of source together with its classification.
type Token struct {
	Word string
	// Pos is the 1-based position of the word in the source.
	Pos  int
	Kind Kind
	// Payload is the opcode, the register, the number or the label index,
	// depending on Kind.
	Payload float64
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%s(%s)", t.Pos, t.Word, t.Kind)
}

const separators = " \t\r\n"

// Tokenize splits src into whitespace separated words in source order.
func Tokenize(src string) []Token {
	words := strings.FieldsFunc(src, func(r rune) bool {
		return strings.ContainsRune(separators, r)
	})

	tokens := make([]Token, len(words))
	for i, w := range words {
		tokens[i] = Token{Word: w, Pos: i + 1}
	}

	return tokens
}

// TokenizeReader reads r to the end and tokenizes its content.
func TokenizeReader(r io.Reader) ([]Token, error) {
	src, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Wrap(err, "read source")
	}

	return Tokenize(string(src)), nil
}

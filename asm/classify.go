package asm

import (
	"strings"

	"github.com/sarchlab/stackasm/program"
)

// Classify tells what kind of word w is. Reserved mnemonics and registers
// take precedence over every other shape, then label definitions, label
// references and numbers, in that order.
func Classify(w string) Kind {
	upper := strings.ToUpper(w)

	if _, ok := program.DefaultISA.Lookup(upper); ok {
		return Mnemonic
	}

	if _, ok := program.LookupRegister(upper); ok {
		return Register
	}

	switch {
	case isLabelDef(upper):
		return LabelDef
	case isLabelRef(upper):
		return LabelRef
	case isNumber(upper):
		return Number
	default:
		return Invalid
	}
}

// labelName strips the colon of a label definition or reference and
// normalizes the case.
func labelName(w string) string {
	w = strings.ToUpper(w)
	if strings.HasPrefix(w, ":") {
		return w[1:]
	}

	return strings.TrimSuffix(w, ":")
}

func isLabelDef(w string) bool {
	if !strings.HasSuffix(w, ":") {
		return false
	}

	return isLabelChars(w[:len(w)-1])
}

func isLabelRef(w string) bool {
	if !strings.HasPrefix(w, ":") {
		return false
	}

	return isLabelChars(w[1:])
}

func isLabelChars(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !isDigit(c) && !isLetter(c) && c != '_' {
			return false
		}
	}

	return true
}

// isNumber accepts digits with at most one decimal point that is neither
// the first nor the last character.
func isNumber(w string) bool {
	if len(w) == 0 || !isDigit(w[0]) {
		return false
	}

	seenDot := false

	for i := 0; i < len(w); i++ {
		c := w[i]
		if isDigit(c) {
			continue
		}

		if c == '.' && !seenDot && i != len(w)-1 {
			seenDot = true
			continue
		}

		return false
	}

	return true
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

package asm

import (
	"fmt"

	"github.com/pkg/errors"
)

// Code identifies the kind of a compile error.
type Code int

// Compile error codes.
const (
	Unknown Code = 300 + iota
	WrongToken
	NeedArg
	NoArg
	WrongEnd
	Empty Code = 399
)

var codeNames = map[Code]string{
	Unknown:    "UNKNOWN",
	WrongToken: "WRONG_TOKEN",
	NeedArg:    "NEED_ARG",
	NoArg:      "NO_ARG",
	WrongEnd:   "WRONG_END",
	Empty:      "EMPTY",
}

var codeText = map[Code]string{
	Unknown:    "unknown statement",
	WrongToken: "wrong statement",
	NeedArg:    "need argument after this command",
	NoArg:      "can't be any arguments after this command",
	WrongEnd:   "list can't end with this command",
	Empty:      "no statements",
}

func (c Code) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}

	return fmt.Sprintf("Code(%d)", int(c))
}

// CompileError reports the first problem found in the source.
type CompileError struct {
	Code Code
	// Pos is the 1-based position of the offending word, 0 if none.
	Pos  int
	Word string
}

func (e *CompileError) Error() string {
	if e.Pos == 0 {
		return fmt.Sprintf("compilation error: %s (%s)", codeText[e.Code], e.Code)
	}

	return fmt.Sprintf("compilation error: word %d (%q): %s (%s)",
		e.Pos, e.Word, codeText[e.Code], e.Code)
}

// Is matches compile errors by code, so that
// errors.Is(err, &CompileError{Code: NeedArg}) works.
func (e *CompileError) Is(target error) bool {
	t, ok := target.(*CompileError)
	if !ok {
		return false
	}

	return t.Code == e.Code
}

// CodeOf extracts the compile error code from err.
func CodeOf(err error) (Code, bool) {
	var ce *CompileError
	if errors.As(err, &ce) {
		return ce.Code, true
	}

	return 0, false
}

// ErrUnresolvedLabel is returned when a jump refers to a label index that
// has no recorded address. Lexing guarantees every reference names a
// defined label, so this only happens on an internal fault.
var ErrUnresolvedLabel = errors.New("internal error: unresolved label")

func newError(code Code, t Token) *CompileError {
	return &CompileError{Code: code, Pos: t.Pos, Word: t.Word}
}

package shunt

import "strconv"

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting from
// invalid input implements InputError.
type InputError interface {
	error
	// Pos returns the column of the token that caused the error, counted in
	// runes from 1.
	Pos() int
}

var (
	_ InputError = (*LexError)(nil)
	_ InputError = (*SyntaxError)(nil)
	_ InputError = (*EvalError)(nil)
)

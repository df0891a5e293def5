// Package guard checks input lines before they reach the calculator.
package guard

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/shunt"
)

// MaxLen is the longest accepted line, in runes.
const MaxLen = 255

// Line checks that a line is short enough, not blank, and has balanced
// parentheses. It returns a *LineError otherwise.
func Line(line string) error {
	if n := utf8.RuneCountInString(line); n > MaxLen {
		return &LineError{Col: MaxLen + 1, Reason: "expression is too long (" + strconv.Itoa(n) + " > " + strconv.Itoa(MaxLen) + ")"}
	}
	if strings.TrimSpace(line) == "" {
		return &LineError{Col: 1, Reason: "empty expression"}
	}
	depth, col, open := 0, 0, 0
	for _, r := range line {
		col++
		switch r {
		case '(':
			if depth == 0 {
				open = col
			}
			depth++
		case ')':
			if depth == 0 {
				return &LineError{Col: col, Reason: "missed parentheses"}
			}
			depth--
		}
	}
	if depth != 0 {
		return &LineError{Col: open, Reason: "missed parentheses"}
	}
	return nil
}

// LineError is an error from a line that fails the checks. It implements
// shunt.InputError.
type LineError struct {
	// Col is the column of the problem.
	Col int
	// Reason describes it.
	Reason string
}

func (err *LineError) Error() string {
	return strconv.Itoa(err.Col) + ": " + err.Reason
}

func (err *LineError) Pos() int {
	return err.Col
}

var _ shunt.InputError = (*LineError)(nil)

package shunt

import (
	"math"
	"strconv"
	"strings"
)

// Token is a lexical element of an expression.
type Token struct {
	// Kind is the token variant.
	Kind Kind
	// Text is the token as it appeared in the input. Synthetic tokens have
	// the text they would have had if written out.
	Text string
	// Value is the value of a number or constant token.
	Value float64
	// Pos is the column of the token in the input, counted in runes from 1.
	// The leading sentinel parenthesis has position 0, and the trailing one
	// has the position one past the last rune.
	Pos int
}

func (t Token) String() string {
	return t.Kind.String() + ":" + t.Text + "@" + strconv.Itoa(t.Pos)
}

// Kind is the variant of a token.
type Kind int8

const (
	KindNone Kind = iota

	KindNum   // Value is the number
	KindOp    // binary operator, Text is the symbol
	KindFunc  // unary function, Text is the name
	KindConst // named constant, Value is resolved
	KindOpen  // (
	KindClose // )
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "None"
	case KindNum:
		return "Num"
	case KindOp:
		return "Op"
	case KindFunc:
		return "Func"
	case KindConst:
		return "Const"
	case KindOpen:
		return "Open"
	case KindClose:
		return "Close"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Render writes a token sequence as text that Tokenize accepts. If the
// sequence is wrapped in the parentheses that Tokenize adds, they are left
// out, so that tokenizing the rendering gives back the same sequence.
//
// A number without text renders in plain decimal. Negative values are
// written as "(-x)", which Tokenize reads as a subexpression with the same
// value rather than as a single token. NaN and infinities have no textual
// form and render as invalid characters.
func Render(tokens []Token) string {
	if wrapped(tokens) {
		tokens = tokens[1 : len(tokens)-1]
	}
	var b strings.Builder
	for i, tok := range tokens {
		if i > 0 {
			b.WriteByte(' ')
		}
		switch {
		case tok.Text != "":
			b.WriteString(tok.Text)
		case tok.Kind == KindNum:
			b.WriteString(number(tok.Value))
		default:
			// Invalid tokens use invalid characters.
			b.WriteString("$" + tok.Kind.String())
		}
	}
	return b.String()
}

// number formats a value for Render. Never use exponent notation; the lexer
// doesn't read it.
func number(x float64) string {
	switch {
	case math.IsNaN(x) || math.IsInf(x, 0):
		return "$" + strconv.FormatFloat(x, 'f', -1, 64)
	case math.Signbit(x):
		return "(-" + strconv.FormatFloat(-x, 'f', -1, 64) + ")"
	default:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
}

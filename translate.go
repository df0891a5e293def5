package shunt

import "strconv"

// precedence gets the rank of an operator, function, or parenthesis token.
// The second result is false for an operator with no entry in the table or
// for any other kind of token.
func precedence(tok Token) (int, bool) {
	switch tok.Kind {
	case KindOp:
		p, ok := operators[tok.Text]
		return p, ok
	case KindFunc:
		return precFunc, true
	case KindOpen, KindClose:
		return precParen, true
	default:
		return 0, false
	}
}

// wrapped reports whether tokens carry the outer parentheses added by
// Tokenize.
func wrapped(tokens []Token) bool {
	return len(tokens) >= 2 &&
		tokens[0].Kind == KindOpen && tokens[0].Pos == 0 &&
		tokens[len(tokens)-1].Kind == KindClose
}

// Translate reorders a token sequence from infix to postfix with the
// shunting-yard algorithm. Parentheses are consumed; the result contains only
// numbers, constants, operators, and functions. The options are applied in
// order.
//
// For sequences from Tokenize, unmatched parenthesis errors name the user's
// parenthesis rather than the outer pair Tokenize adds.
func Translate(tokens []Token, opts ...TranslateOption) ([]Token, error) {
	var p translatectx
	for _, opt := range opts {
		p = opt.translateOption(p)
	}
	outer := wrapped(tokens)
	out := make([]Token, 0, len(tokens))
	var ops []Token
	// closer is the user's ")" that consumed the outer "(", and opener is
	// the user's "(" consumed by the outer ")".
	var closer, opener *Token
	for i, tok := range tokens {
		switch tok.Kind {
		case KindNum, KindConst:
			out = append(out, tok)
		case KindOpen:
			ops = append(ops, tok)
		case KindClose:
			last := outer && i == len(tokens)-1
			if last && closer != nil {
				return nil, &SyntaxError{Col: closer.Pos, Paren: ")"}
			}
			for {
				if len(ops) == 0 {
					if closer != nil {
						return nil, &SyntaxError{Col: closer.Pos, Paren: ")"}
					}
					return nil, &SyntaxError{Col: tok.Pos, Paren: ")"}
				}
				top := ops[len(ops)-1]
				ops = ops[:len(ops)-1]
				if top.Kind == KindOpen {
					switch {
					case outer && len(ops) == 0 && !last && closer == nil:
						closer = &tokens[i]
					case last && len(ops) > 0 && opener == nil:
						opener = &top
					}
					break
				}
				out = append(out, top)
			}
		case KindFunc:
			if globalfuncs[tok.Text] == nil {
				return nil, &SyntaxError{Col: tok.Pos, Token: tok.Text}
			}
			// A function is a prefix operator. Nothing to its left can be
			// its operand, so it never pops; this lets "sin cos x" nest.
			ops = append(ops, tok)
		case KindOp:
			prec, ok := precedence(tok)
			if !ok {
				return nil, &SyntaxError{Col: tok.Pos, Token: tok.Text}
			}
			for len(ops) > 0 {
				// Everything on the stack was checked when it was pushed.
				top, _ := precedence(ops[len(ops)-1])
				// Equal precedence pops, which makes operators associate
				// left to right, unless tok is right-associative.
				if top < prec || top == prec && p.rightAssoc(tok) {
					break
				}
				out = append(out, ops[len(ops)-1])
				ops = ops[:len(ops)-1]
			}
			ops = append(ops, tok)
		default:
			return nil, &SyntaxError{Col: tok.Pos, Token: tok.Text}
		}
	}
	for i := len(ops) - 1; i >= 0; i-- {
		if ops[i].Kind == KindOpen {
			return nil, unclosed(ops, outer, opener)
		}
		out = append(out, ops[i])
	}
	return out, nil
}

// unclosed builds the error for a "(" left on the stack, naming the
// outermost unmatched user parenthesis. opener is the user's "(" consumed by
// the outer ")", if any.
func unclosed(ops []Token, outer bool, opener *Token) error {
	for i, tok := range ops {
		if tok.Kind == KindOpen && !(outer && i == 0) {
			return &SyntaxError{Col: tok.Pos, Paren: "("}
		}
	}
	if opener != nil {
		return &SyntaxError{Col: opener.Pos, Paren: "("}
	}
	return &SyntaxError{Col: ops[0].Pos, Paren: "("}
}

// SyntaxError is an error indicating unmatched parentheses or a token that
// cannot appear in an expression. It implements InputError.
type SyntaxError struct {
	// Col is the position of the offending token.
	Col int
	// Paren is the unmatched parenthesis, if any.
	Paren string
	// Token is the text of an unknown operator, function, or token when
	// Paren is empty.
	Token string
}

func (err *SyntaxError) Error() string {
	switch err.Paren {
	case "(":
		return errpos(err.Col, "unmatched left parenthesis")
	case ")":
		return errpos(err.Col, "unmatched right parenthesis")
	default:
		return errpos(err.Col, "invalid token "+strconv.Quote(err.Token))
	}
}

func (err *SyntaxError) Pos() int {
	return err.Col
}

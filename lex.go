package shunt

import (
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode"
)

// Operators contains the runes which are binary operators.
const Operators = "+-*/^"

type lexer struct {
	src  io.RuneScanner
	buf  strings.Builder
	rune int
}

func lex(src io.RuneScanner) *lexer {
	return &lexer{src: src}
}

// readRune reads a rune from the src and updates the lexer's position info.
func (l *lexer) readRune() (r rune, err error) {
	r, sz, err := l.src.ReadRune()
	if sz > 0 {
		l.rune++
	}
	return r, err
}

// unreadRune unreads a rune from the src and updates the lexer's position
// info. Panics if unreading returns an error.
func (l *lexer) unreadRune() {
	if err := l.src.UnreadRune(); err != nil {
		panic(err)
	}
	l.rune--
}

// next scans the next token from the input. At the end of input, the result
// is io.EOF.
func (l *lexer) next() (Token, error) {
	defer l.buf.Reset()
	for {
		r, err := l.readRune()
		if err != nil {
			return Token{}, err
		}
		tok := Token{Pos: l.rune}
		switch {
		case unicode.IsSpace(r):
			continue
		case isDigit(r), r == '.':
			l.unreadRune()
			if err := l.scanNum(tok.Pos); err != nil {
				return tok, err
			}
			tok.Text = l.buf.String()
			// The scan admits only forms ParseFloat accepts. Out of range
			// numbers still give the right infinity.
			tok.Kind = KindNum
			tok.Value, _ = strconv.ParseFloat(tok.Text, 64)
			return tok, nil
		case isLetter(r):
			l.unreadRune()
			l.scanIdent()
			tok.Text = l.buf.String()
			if _, ok := globalfuncs[tok.Text]; ok {
				tok.Kind = KindFunc
				return tok, nil
			}
			if v, ok := constants[tok.Text]; ok {
				tok.Kind, tok.Value = KindConst, v
				return tok, nil
			}
			return tok, l.error(tok.Pos, "unknown identifier")
		case r == '(':
			tok.Kind, tok.Text = KindOpen, "("
			return tok, nil
		case r == ')':
			tok.Kind, tok.Text = KindClose, ")"
			return tok, nil
		case strings.ContainsRune(Operators, r):
			tok.Kind, tok.Text = KindOp, string(r)
			return tok, nil
		default:
			// Write the rune so that it shows up in the error message.
			l.buf.WriteRune(r)
			return tok, l.error(tok.Pos, "invalid character")
		}
	}
}

// scanNum scans a maximal run of digits and decimal points. start is the
// column of the first rune.
func (l *lexer) scanNum(start int) error {
	var dig, dot, bad bool
	for {
		r, err := l.readRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return err
		}
		if !isDigit(r) && r != '.' {
			l.unreadRune()
			break
		}
		l.buf.WriteRune(r)
		if r == '.' {
			// Keep scanning so the whole run shows up in the error.
			bad = bad || dot
			dot = true
		} else {
			dig = true
		}
	}
	if bad || !dig {
		return l.error(start, "malformed number")
	}
	return nil
}

// scanIdent scans a maximal run of letters.
func (l *lexer) scanIdent() {
	for {
		r, err := l.readRune()
		if err != nil {
			// next unreads the rune that decides ident scanning before
			// calling scanIdent, so we have scanned at least one rune.
			return
		}
		if !isLetter(r) {
			l.unreadRune()
			return
		}
		l.buf.WriteRune(r)
	}
}

func isDigit(r rune) bool {
	return '0' <= r && r <= '9'
}

func isLetter(r rune) bool {
	return 'a' <= r && r <= 'z' || 'A' <= r && r <= 'Z'
}

func (l *lexer) error(col int, reason string) error {
	return &LexError{
		Text:   l.buf.String(),
		Reason: reason,
		Col:    col,
	}
}

// Tokenize splits a line into tokens. A minus sign at the start of the line
// or directly after an open parenthesis gets a zero inserted before it, so
// that negation becomes subtraction. The whole sequence is wrapped in one
// more pair of parentheses.
func Tokenize(line string) ([]Token, error) {
	return scan(strings.NewReader(line))
}

func scan(src io.RuneScanner) ([]Token, error) {
	l := lex(src)
	tokens := []Token{{Kind: KindOpen, Text: "(", Pos: 0}}
	for {
		tok, err := l.next()
		if err != nil {
			if errors.Is(err, io.EOF) {
				break
			}
			return nil, err
		}
		if tok.Kind == KindOp && tok.Text == "-" && tokens[len(tokens)-1].Kind == KindOpen {
			tokens = append(tokens, Token{Kind: KindNum, Text: "0", Pos: tok.Pos})
		}
		tokens = append(tokens, tok)
	}
	tokens = append(tokens, Token{Kind: KindClose, Text: ")", Pos: l.rune + 1})
	return tokens, nil
}

// LexError indicates an invalid token. It implements InputError.
type LexError struct {
	// Text is the offending token or character.
	Text string
	// Reason is "invalid character", "malformed number", or
	// "unknown identifier".
	Reason string
	// Col is the column where the offending token starts.
	Col int
}

func (err *LexError) Error() string {
	return errpos(err.Col, err.Reason+": "+strconv.Quote(err.Text))
}

func (err *LexError) Pos() int {
	return err.Col
}

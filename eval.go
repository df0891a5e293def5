package shunt

import (
	"errors"
	"math"
	"strconv"
)

// machine is the operand stack for evaluating one postfix sequence.
type machine struct {
	stack []float64
}

// push puts a value on the stack.
func (m *machine) push(x float64) {
	m.stack = append(m.stack, x)
}

// pop removes the top from the stack and returns it. The second result is
// false if the stack is empty.
func (m *machine) pop() (float64, bool) {
	if len(m.stack) == 0 {
		return 0, false
	}
	r := m.stack[len(m.stack)-1]
	m.stack = m.stack[:len(m.stack)-1]
	return r, true
}

// Evaluate computes the value of a postfix token sequence, as produced by
// Translate.
func Evaluate(postfix []Token) (float64, error) {
	m := machine{stack: make([]float64, 0, len(postfix)/2+1)}
	for _, tok := range postfix {
		if err := m.step(tok); err != nil {
			return 0, err
		}
	}
	if len(m.stack) != 1 {
		col := 0
		if len(postfix) > 0 {
			col = postfix[len(postfix)-1].Pos
		}
		return 0, &EvalError{Col: col, Reason: "malformed expression"}
	}
	return m.stack[0], nil
}

// step applies one token to the stack.
func (m *machine) step(tok Token) error {
	switch tok.Kind {
	case KindNum, KindConst:
		m.push(tok.Value)
	case KindOp:
		if _, ok := operators[tok.Text]; !ok {
			return malformed(tok)
		}
		second, ok := m.pop()
		if !ok {
			return malformed(tok)
		}
		first, ok := m.pop()
		if !ok {
			return malformed(tok)
		}
		r, err := binary(tok.Text, first, second)
		if err != nil {
			return &EvalError{Col: tok.Pos, Token: tok.Text, Reason: err.Error(), err: err}
		}
		m.push(r)
	case KindFunc:
		x, ok := m.pop()
		if !ok {
			return malformed(tok)
		}
		f := globalfuncs[tok.Text]
		if f == nil {
			return malformed(tok)
		}
		r, err := f(x)
		if err != nil {
			return &EvalError{Col: tok.Pos, Token: tok.Text, Reason: err.Error(), err: err}
		}
		m.push(r)
	default:
		// Parentheses never survive a correct translation.
		return malformed(tok)
	}
	return nil
}

func binary(op string, first, second float64) (float64, error) {
	switch op {
	case "+":
		return first + second, nil
	case "-":
		return first - second, nil
	case "*":
		return first * second, nil
	case "/":
		if second == 0 {
			return 0, &DomainError{X: second, Func: "/", Reason: "division by zero"}
		}
		return first / second, nil
	case "^":
		return math.Pow(first, second), nil
	default:
		return 0, errUnknownOp
	}
}

var errUnknownOp = errors.New("unknown operator")

func malformed(tok Token) error {
	return &EvalError{Col: tok.Pos, Token: tok.Text, Reason: "malformed expression"}
}

// Eval is a shortcut to tokenize, translate, and evaluate a line. The first
// error from any stage is returned.
func Eval(line string, opts ...TranslateOption) (float64, error) {
	tokens, err := Tokenize(line)
	if err != nil {
		return 0, err
	}
	postfix, err := Translate(tokens, opts...)
	if err != nil {
		return 0, err
	}
	return Evaluate(postfix)
}

// EvalError is an error that occurs while evaluating a postfix sequence. It
// implements InputError.
type EvalError struct {
	// Col is the position of the operator or function that failed.
	Col int
	// Token is the text of that operator or function, if any.
	Token string
	// Reason describes the failure: "division by zero", "invalid tangent
	// argument", "invalid logarithm argument", or "malformed expression".
	Reason string

	err error
}

func (err *EvalError) Error() string {
	if err.Token == "" {
		return errpos(err.Col, err.Reason)
	}
	return errpos(err.Col, err.Reason+" at "+strconv.Quote(err.Token))
}

func (err *EvalError) Pos() int {
	return err.Col
}

// Unwrap returns the underlying *DomainError, if there is one.
func (err *EvalError) Unwrap() error {
	return err.err
}

// IsDomain reports whether err is an evaluation error caused by an argument
// outside an operator's or function's domain.
func IsDomain(err error) bool {
	var d *DomainError
	return errors.As(err, &d)
}

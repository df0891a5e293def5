package shunt

import (
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function of one real argument. It returns an error when the
// argument is outside the function's domain.
type Func func(x float64) (float64, error)

// Precedence ranks. Higher binds more tightly. Parentheses rank below every
// operator so that operators never pop them.
const (
	precParen = -1
	precSum   = 0
	precProd  = 1
	precPow   = 2
	precFunc  = 3
)

// operators maps each binary operator symbol to its precedence.
var operators = map[string]int{
	"+": precSum,
	"-": precSum,
	"*": precProd,
	"/": precProd,
	"^": precPow,
}

// tanEps is the distance from π/2 inside which tan refuses its argument.
const tanEps = 1e-8

var globalfuncs = map[string]Func{
	"sin": Monadic(math.Sin),
	"cos": Monadic(math.Cos),
	"tan": func(x float64) (float64, error) {
		// Only the literal neighborhood of π/2 is rejected, not every
		// asymptote.
		if math.Abs(x-constants["pi"]/2) <= tanEps {
			return 0, &DomainError{X: x, Func: "tan", Reason: "invalid tangent argument"}
		}
		return math.Tan(x), nil
	},
	"log": func(x float64) (float64, error) {
		if x <= 0 {
			return 0, &DomainError{X: x, Func: "log", Reason: "invalid logarithm argument"}
		}
		return math.Log(x), nil
	},
}

// constants holds the values of named constants. They are computed once at
// extended precision and rounded.
var constants = map[string]float64{
	"pi": niladic(bigfloat.Pi),
	"e": niladic(func(out *big.Float) *big.Float {
		var one big.Float
		one.SetFloat64(1)
		return bigfloat.Exp(out, &one)
	}),
}

// constPrec is the precision in bits used to compute constants.
const constPrec = 128

func niladic(f func(out *big.Float) *big.Float) float64 {
	r := new(big.Float).SetPrec(constPrec)
	f(r)
	v, _ := r.Float64()
	return v
}

// Monadic wraps a total function of one variable into a Func.
func Monadic(f func(float64) float64) Func {
	return func(x float64) (float64, error) {
		return f(x), nil
	}
}

// Functions returns the names of the functions the tokenizer recognizes.
func Functions() []string {
	return sortedKeys(globalfuncs)
}

// Constants returns the names of the constants the tokenizer recognizes.
func Constants() []string {
	return sortedKeys(constants)
}

// Constant returns the value of a named constant and whether it exists.
func Constant(name string) (float64, bool) {
	v, ok := constants[name]
	return v, ok
}

func sortedKeys[V any](m map[string]V) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sortstrs(names)
	return names
}

// sortstrs sorts a string slice without using package sort because that has
// reflection and allocation problems.
func sortstrs(names []string) {
	for i := 1; i < len(names); i++ {
		for j := i; j > 0 && names[j] < names[j-1]; j-- {
			names[j], names[j-1] = names[j-1], names[j]
		}
	}
}

// DomainError is returned when a function is called on an argument outside
// its domain.
type DomainError struct {
	// X is the out-of-domain argument.
	X float64
	// Func is the name of the function.
	Func string
	// Reason describes the failure.
	Reason string
}

func (err *DomainError) Error() string {
	return err.Reason
}

package shunt_test

import (
	"errors"
	"testing"

	"github.com/zephyrtronium/shunt"
)

func FuzzEval(f *testing.F) {
	f.Add("2 + 3 * 4")
	f.Add("-(1)")
	f.Add("sin cos tan log pi e")
	f.Add("((1)")
	f.Add("1.2.3")
	f.Fuzz(func(t *testing.T, s string) {
		_, err := shunt.Eval(s, shunt.RightAssocPow())
		if err == nil {
			return
		}
		var ie shunt.InputError
		if !errors.As(err, &ie) {
			t.Errorf("%q: error %#v is not an InputError", s, err)
		}
	})
}

func FuzzRender(f *testing.F) {
	f.Add("2 + 3 * 4")
	f.Add("-5 + (-(3))")
	f.Add("log(e) ^ .5")
	f.Fuzz(func(t *testing.T, s string) {
		want, err := shunt.Tokenize(s)
		if err != nil {
			return
		}
		got, err := shunt.Tokenize(shunt.Render(want))
		if err != nil {
			t.Fatalf("%q: rendering %q doesn't tokenize: %v", s, shunt.Render(want), err)
		}
		if len(got) != len(want) {
			t.Fatalf("%q: rendering %q has %d tokens, want %d", s, shunt.Render(want), len(got), len(want))
		}
		for i := range want {
			if got[i].Kind != want[i].Kind || got[i].Value != want[i].Value {
				t.Errorf("%q: token %d: want %v, got %v", s, i, want[i], got[i])
			}
		}
	})
}

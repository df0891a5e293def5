package shunt

import (
	"errors"
	"testing"
)

func TestPrecedenceTable(t *testing.T) {
	for _, r := range Operators {
		if _, ok := operators[string(r)]; !ok {
			t.Errorf("no precedence for %c", r)
		}
	}
	for op, p := range operators {
		if p <= precParen {
			t.Errorf("%s has precedence %d, not above parentheses", op, p)
		}
		if p >= precFunc {
			t.Errorf("%s has precedence %d, not below functions", op, p)
		}
	}
	if operators["+"] != operators["-"] || operators["*"] != operators["/"] {
		t.Error("inverse operators have different precedence")
	}
	if !(operators["+"] < operators["*"] && operators["*"] < operators["^"]) {
		t.Errorf("wrong operator order: %v", operators)
	}
}

func TestTranslate(t *testing.T) {
	cases := []struct {
		name string
		src  string
		left string
		// right is the result with RightAssocPow, if different.
		right string
	}{
		{"num", "1", "1", ""},
		{"const", "pi", "pi", ""},
		{"add-mul", "2 + 3 * 4", "2 3 4 * +", ""},
		{"mul-add", "2 * 3 + 4", "2 3 * 4 +", ""},
		{"paren", "(2 + 3) * 4", "2 3 + 4 *", ""},
		{"nested", "((1))", "1", ""},
		{"sub", "1 - 2 - 3", "1 2 - 3 -", ""},
		{"div", "8 / 4 / 2", "8 4 / 2 /", ""},
		{"pow", "2 ^ 3 ^ 2", "2 3 ^ 2 ^", "2 3 2 ^ ^"},
		{"pow-mul", "2 * 3 ^ 2 * 4", "2 3 2 ^ * 4 *", ""},
		{"neg", "-5 + 3", "0 5 - 3 +", ""},
		{"neg-paren", "2 * (-3)", "2 0 3 - *", ""},
		{"call", "sin(0)", "0 sin", ""},
		{"call-bare", "sin 0", "0 sin", ""},
		{"call-pow", "sin 2 ^ 2", "2 sin 2 ^", ""},
		{"call-nest", "sin cos 1", "1 cos sin", ""},
		{"call-nest-paren", "log(cos(1) + 2)", "1 cos 2 + log", ""},
		{"call-add", "tan(1) + log(2)", "1 tan 2 log +", ""},
		{"adjacent", "2 3", "2 3", ""},
	}
	right := TranslatingPreset(RightAssocPow())
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tokens, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("%q failed to tokenize: %v", c.src, err)
			}
			l, err := Translate(tokens)
			if err != nil {
				t.Fatalf("%q failed to translate: %v", c.src, err)
			}
			if got := Render(l); got != c.left {
				t.Errorf("%q gave wrong postfix: want %q, got %q", c.src, c.left, got)
			}
			want := c.right
			if want == "" {
				want = c.left
			}
			r, err := Translate(tokens, right)
			if err != nil {
				t.Fatalf("%q failed to translate right-associatively: %v", c.src, err)
			}
			if got := Render(r); got != want {
				t.Errorf("%q gave wrong right-associative postfix: want %q, got %q", c.src, want, got)
			}
		})
	}
}

func TestTranslateNoParens(t *testing.T) {
	tokens, err := Tokenize("((1 + (2)) * (sin(3)))")
	if err != nil {
		t.Fatal(err)
	}
	postfix, err := Translate(tokens)
	if err != nil {
		t.Fatal(err)
	}
	for _, tok := range postfix {
		if tok.Kind == KindOpen || tok.Kind == KindClose {
			t.Errorf("parenthesis %v in postfix %v", tok, postfix)
		}
	}
}

func TestTranslateErrors(t *testing.T) {
	cases := []struct {
		name  string
		src   string
		paren string
		col   int
	}{
		{"open", "( 1 + 2", "(", 1},
		{"close", "1 + 2 )", ")", 7},
		{"close-empty", "())", ")", 3},
		{"close-extra", "(1))", ")", 4},
		{"close-twice", "1))", ")", 2},
		{"close-reopen", "1 ) + ( 2", ")", 3},
		{"close-open", ")(", ")", 1},
		{"open-extra", "((1)", "(", 1},
		{"open-inner", "(()", "(", 1},
		{"open-twice", "((1", "(", 1},
		{"open-call", "sin(", "(", 4},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tokens, err := Tokenize(c.src)
			if err != nil {
				t.Fatalf("%q failed to tokenize: %v", c.src, err)
			}
			postfix, err := Translate(tokens)
			if err == nil {
				t.Fatalf("%q translated without error to %v", c.src, postfix)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error was %#v, not SyntaxError", err)
			}
			if se.Paren != c.paren {
				t.Errorf("%q: want unmatched %s, got %s", c.src, c.paren, se.Paren)
			}
			if se.Pos() != c.col {
				t.Errorf("%q: want column %d, got %d", c.src, c.col, se.Pos())
			}
		})
	}
}

func TestTranslateUnwrapped(t *testing.T) {
	// Sequences built by hand, without the outer parentheses, report the
	// parenthesis where the mismatch is found.
	cases := []struct {
		name   string
		tokens []Token
		paren  string
		col    int
	}{
		{
			name:   "close",
			tokens: []Token{{Kind: KindNum, Text: "1", Value: 1, Pos: 1}, {Kind: KindClose, Text: ")", Pos: 2}},
			paren:  ")",
			col:    2,
		},
		{
			name:   "open",
			tokens: []Token{{Kind: KindOpen, Text: "(", Pos: 1}, {Kind: KindNum, Text: "1", Value: 1, Pos: 2}},
			paren:  "(",
			col:    1,
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Translate(c.tokens)
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error was %#v, not SyntaxError", err)
			}
			if se.Paren != c.paren || se.Pos() != c.col {
				t.Errorf("want unmatched %s at %d, got %s at %d", c.paren, c.col, se.Paren, se.Pos())
			}
		})
	}
}

func TestTranslateInvalidTokens(t *testing.T) {
	one := Token{Kind: KindNum, Text: "1", Value: 1, Pos: 1}
	two := Token{Kind: KindNum, Text: "2", Value: 2, Pos: 5}
	cases := []struct {
		name   string
		tokens []Token
		text   string
		col    int
	}{
		{"op", []Token{one, {Kind: KindOp, Text: "%", Pos: 3}, two}, "%", 3},
		{"func", []Token{{Kind: KindFunc, Text: "sqrt", Pos: 1}, two}, "sqrt", 1},
		{"none", []Token{one, {Kind: KindNone, Text: "?", Pos: 3}, two}, "?", 3},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			postfix, err := Translate(c.tokens)
			if err == nil {
				t.Fatalf("translated without error to %v", postfix)
			}
			var se *SyntaxError
			if !errors.As(err, &se) {
				t.Fatalf("error was %#v, not SyntaxError", err)
			}
			if se.Paren != "" || se.Token != c.text || se.Pos() != c.col {
				t.Errorf("want invalid %q at %d, got %+v", c.text, c.col, se)
			}
		})
	}
}

func TestTranslatingPreset(t *testing.T) {
	tokens, err := Tokenize("2^3^2")
	if err != nil {
		t.Fatal(err)
	}
	preset := TranslatingPreset(RightAssocPow())
	// A preset composed with another option must not leak into the preset.
	for i := 0; i < 2; i++ {
		r, err := Translate(tokens, preset, RightAssocPow())
		if err != nil {
			t.Fatal(err)
		}
		if got := Render(r); got != "2 3 2 ^ ^" {
			t.Errorf("pass %d: want right-associative postfix, got %q", i, got)
		}
	}
	l, err := Translate(tokens, TranslatingPreset())
	if err != nil {
		t.Fatal(err)
	}
	if got := Render(l); got != "2 3 ^ 2 ^" {
		t.Errorf("empty preset: want left-associative postfix, got %q", got)
	}
}

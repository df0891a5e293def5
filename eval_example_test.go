package shunt_test

import (
	"fmt"

	"github.com/zephyrtronium/shunt"
)

func ExampleEval() {
	for _, src := range []string{"2 + 3 * 4", "(2 + 3) * 4", "-5 + 3", "4 / 0"} {
		r, err := shunt.Eval(src)
		if err != nil {
			fmt.Println(src, "->", err)
			continue
		}
		fmt.Println(src, "->", r)
	}

	// Output:
	// 2 + 3 * 4 -> 14
	// (2 + 3) * 4 -> 20
	// -5 + 3 -> -2
	// 4 / 0 -> 3: division by zero at "/"
}

func ExampleTranslate() {
	tokens, _ := shunt.Tokenize("2 ^ 3 ^ 2")
	l, _ := shunt.Translate(tokens)
	r, _ := shunt.Translate(tokens, shunt.RightAssocPow())
	fmt.Println(shunt.Render(l))
	fmt.Println(shunt.Render(r))

	// Output:
	// 2 3 ^ 2 ^
	// 2 3 2 ^ ^
}

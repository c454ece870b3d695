package calculator_test

import (
	"fmt"
	"math/big"

	"github.com/zephyrtronium/calculator"
)

func ExampleSetFunc() {
	cube := calculator.Monadic(func(out, in *big.Float) *big.Float {
		out.Mul(in, in)
		return out.Mul(out, in)
	})
	ctx := calculator.NewContext(calculator.SetFunc("cube", cube))
	for _, src := range []string{"cube ( 3 )", "cube ( 1 + 1 ) - 1", "sqrt ( cube ( 4 ) )"} {
		fmt.Println(src, "=", calculator.Format(ctx.Eval(src)))
	}

	// Output:
	// cube ( 3 ) = 27.0000
	// cube ( 1 + 1 ) - 1 = 7.0000
	// sqrt ( cube ( 4 ) ) = 8.0000
}

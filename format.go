package calculator

import (
	"math/big"
	"strings"
)

// Format renders a result with exactly four decimal places, the way the
// keypad display shows it. Ties round away from zero. An exact zero is
// "0.0000", and infinities are "Infinity" and "-Infinity".
func Format(x *big.Float) string {
	switch {
	case x.IsInf():
		if x.Signbit() {
			return "-Infinity"
		}
		return "Infinity"
	case x.Sign() == 0:
		return "0.0000"
	}
	// |x|·10⁴ and its fractional part are exact at this precision.
	prec := x.Prec() + 64
	a := new(big.Float).SetPrec(prec).Abs(x)
	a.Mul(a, new(big.Float).SetPrec(prec).SetInt64(10000))
	n, _ := a.Int(nil)
	frac := new(big.Float).SetPrec(prec).SetInt(n)
	frac.Sub(a, frac)
	if frac.Cmp(big.NewFloat(0.5)) >= 0 {
		n.Add(n, big.NewInt(1))
	}

	d := n.String()
	if len(d) < 5 {
		d = strings.Repeat("0", 5-len(d)) + d
	}
	var b strings.Builder
	if x.Signbit() {
		b.WriteByte('-')
	}
	b.WriteString(d[:len(d)-4])
	b.WriteByte('.')
	b.WriteString(d[len(d)-4:])
	return b.String()
}

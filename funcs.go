package calculator

import (
	"errors"
	"math"
	"math/big"

	"github.com/zephyrtronium/bigfloat"
)

// Func is a function from reals to reals. Functions take exactly one
// argument, written in parentheses after the function name.
type Func interface {
	// Call evaluates the function of x. The function must set r to its
	// result and should not use the value of r otherwise. Call must not
	// modify x.
	Call(ctx *Context, x, r *big.Float) error
}

var globalfuncs = map[string]Func{
	"sin":  Degrees(math.Sin),
	"cos":  Degrees(math.Cos),
	"tan":  Degrees(math.Tan),
	"sqrt": Monadic((*big.Float).Sqrt),
}

// DefaultFuncs returns the names of the functions available to every
// context unless disabled.
func DefaultFuncs() []string {
	return []string{"sin", "cos", "tan", "sqrt"}
}

type monadic struct {
	f func(out, in *big.Float) *big.Float
}

func (m monadic) Call(ctx *Context, x, r *big.Float) (err error) {
	defer catchNaN(x, &err)
	r.SetPrec(ctx.Prec())
	m.f(r, x)
	return nil
}

// Monadic wraps a function of one variable into a Func. f must set out to
// its result, to the precision of out; its return value is always ignored.
// If f is called on an argument outside f's domain, it should panic with an
// error of type big.ErrNaN, or that unwraps to it.
func Monadic(f func(out, in *big.Float) *big.Float) Func {
	return monadic{f}
}

type degrees struct {
	f func(float64) float64
}

func (d degrees) Call(ctx *Context, x, r *big.Float) (err error) {
	defer catchNaN(x, &err)
	rad := new(big.Float).SetPrec(ctx.Prec()).Mul(x, ctx.pi())
	rad.Quo(rad, big.NewFloat(180))
	v, _ := rad.Float64()
	r.SetPrec(ctx.Prec()).SetFloat64(d.f(v))
	return nil
}

// Degrees wraps a float64 trigonometric function of radians into a Func
// that takes its argument in degrees. Results that are not a number are
// reported as a DomainError.
func Degrees(f func(float64) float64) Func {
	return degrees{f}
}

// catchNaN recovers a big.ErrNaN panic and reports it through err as a
// DomainError for x. Other panics are not recovered.
func catchNaN(x *big.Float, err *error) {
	r := recover()
	if r == nil {
		return
	}
	e, ok := r.(error)
	if !ok {
		panic(r)
	}
	var nan big.ErrNaN
	if !errors.As(e, &nan) {
		panic(r)
	}
	*err = DomainError{X: new(big.Float).Copy(x)}
}

// pow sets z to x**y. Integer exponents are computed by repeated squaring;
// a positive finite base with a fractional exponent uses bigfloat.Pow.
// Everything else follows math.Pow, so a negative base with a fractional
// exponent panics with big.ErrNaN.
func pow(z, x, y *big.Float) *big.Float {
	if y.IsInt() {
		if n, acc := y.Int64(); acc == big.Exact {
			return powInt(z, x, n)
		}
	}
	a, _ := x.Float64()
	b, _ := y.Float64()
	if x.Sign() > 0 && !x.IsInf() && !y.IsInf() && math.Abs(b*math.Log2(a)) < maxPowExp {
		return bigfloat.Pow(z, x, y)
	}
	return z.SetFloat64(math.Pow(a, b))
}

// maxPowExp bounds the binary exponent of results computed by bigfloat.Pow.
// Larger results go through math.Pow and overflow or underflow there.
const maxPowExp = 1 << 16

// powInt sets z to x**n. z may alias x.
func powInt(z, x *big.Float, n int64) *big.Float {
	var u uint64
	if n < 0 {
		u = uint64(-(n + 1)) + 1
	} else {
		u = uint64(n)
	}
	b := new(big.Float).SetPrec(z.Prec()).Set(x)
	r := new(big.Float).SetPrec(z.Prec()).SetInt64(1)
	for u > 0 {
		if u&1 == 1 {
			r.Mul(r, b)
		}
		u >>= 1
		if u > 0 {
			b.Mul(b, b)
		}
	}
	if n < 0 {
		r.Quo(new(big.Float).SetInt64(1), r)
	}
	return z.Set(r)
}

// DomainError is an error returned when a function or operator is applied
// to arguments outside its domain, i.e. the result would not be a number.
// DomainError unwraps to big.ErrNaN.
type DomainError struct {
	// X is the out-of-domain argument. For binary operators it is the right
	// operand.
	X *big.Float
	// Func is the function or operator.
	Func string
}

func (err DomainError) Error() string {
	r := err.X.String() + " outside domain"
	if err.Func != "" {
		r += " of " + err.Func
	}
	return r
}

func (err DomainError) Unwrap() error {
	return big.ErrNaN{}
}

package calculator

import (
	"math/big"
	"strconv"
	"strings"

	"github.com/zephyrtronium/bigfloat"
)

// Context is a context for evaluating expressions. It is not safe to use a
// Context concurrently; use Clone to get one per goroutine.
type Context struct {
	stack []*big.Float
	nums  map[string]*big.Float
	funcs map[string]Func
	prec  uint
	err   error
	// done is whether the context has evaluated anything.
	done bool
	// piv is π to the context's precision, computed on first use.
	piv *big.Float
}

// ContextOption is an option used when creating a context.
type ContextOption interface {
	ctxOption()
}

type (
	funcopt struct {
		name string
		fn   Func
	}
	precopt uint
)

func (funcopt) ctxOption() {}
func (precopt) ctxOption() {}

// SetFunc adds a unary function to the context, or replaces a default one.
// To disable a function, pass nil for fn; its name then becomes an unknown
// token.
func SetFunc(name string, fn Func) ContextOption {
	return funcopt{name, fn}
}

// Prec sets the precision of calculations in bits. Zero leaves the
// precision unchanged.
func Prec(prec uint) ContextOption {
	return precopt(prec)
}

// NewContext creates a new evaluation context with the default functions.
// If no precision is given, the default is 64.
func NewContext(opts ...ContextOption) *Context {
	ctx := Context{nums: make(map[string]*big.Float), funcs: globalfuncs, prec: 64}
	return ctx.Clone(opts...)
}

// Clone creates a copy of a context and applies options to it. The
// returned context has no Result and is safe to use to evaluate an
// expression.
func (ctx *Context) Clone(opts ...ContextOption) *Context {
	n := Context{
		stack: make([]*big.Float, 0, cap(ctx.stack)),
		nums:  make(map[string]*big.Float, len(ctx.nums)),
		funcs: ctx.funcs,
		prec:  ctx.prec,
	}
	// First, check for a precision setting. Loop backward so we apply the
	// last precision.
	for i := len(opts) - 1; i >= 0; i-- {
		if p, ok := opts[i].(precopt); ok && p != 0 {
			n.prec = uint(p)
			break
		}
	}
	// Copy numbers only if the new precision is no higher than the old, so
	// that we always use the precision we need.
	if n.prec <= ctx.prec {
		for k, v := range ctx.nums {
			n.nums[k] = new(big.Float).SetPrec(n.prec).Set(v)
		}
	}
	if n.prec == ctx.prec {
		n.piv = ctx.piv
	}
	copied := false
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		switch opt := opt.(type) {
		case funcopt:
			if !copied {
				// Never modify the shared function table.
				m := make(map[string]Func, len(n.funcs)+1)
				for k, v := range n.funcs {
					m[k] = v
				}
				n.funcs = m
				copied = true
			}
			if opt.fn == nil {
				delete(n.funcs, opt.name)
			} else {
				n.funcs[opt.name] = opt.fn
			}
		case precopt:
			// Already done. Do nothing.
		default:
			panic("calculator: unknown option type")
		}
	}
	return &n
}

// Prec returns the precision to which values are computed in the context.
func (ctx *Context) Prec() uint {
	return ctx.prec
}

// IsFunc reports whether name is a function in the context.
func (ctx *Context) IsFunc(name string) bool {
	return ctx.funcs[name] != nil
}

// Eval tokenizes, converts, and evaluates an infix expression and returns
// the result. If an error occurs, the result is nil and ctx.Err returns the
// error.
func (ctx *Context) Eval(expr string) *big.Float {
	return ctx.EvalPostfix(ctx.ToPostfix(Tokenize(strings.TrimSpace(expr))))
}

// EvalPostfix evaluates a postfix token sequence and returns the result. If
// an error occurs, e.g. division by zero or a missing operand, then the
// result is nil and ctx.Err returns the error. Evaluation stops at the
// first error.
func (ctx *Context) EvalPostfix(postfix []string) *big.Float {
	if len(ctx.stack) > 0 {
		// The previous result may still be in use by the caller.
		ctx.stack[0] = nil
		ctx.stack = ctx.stack[:0]
	}
	ctx.done = true
	ctx.err = ctx.run(postfix)
	if ctx.err != nil {
		return nil
	}
	return ctx.Result()
}

// Result returns the result obtained after evaluating an expression.
// Panics if ctx has not been used to evaluate an expression. Returns nil if
// an error occurred during evaluation.
func (ctx *Context) Result() *big.Float {
	if !ctx.done {
		panic("calculator: Context.Result called before evaluating any expression")
	}
	if ctx.err != nil {
		return nil
	}
	if len(ctx.stack) != 1 {
		panic("calculator: inconsistent stack: " + strconv.Itoa(len(ctx.stack)) + " items")
	}
	return ctx.stack[0]
}

// Err returns the error from the last evaluation with ctx, if any.
func (ctx *Context) Err() error {
	return ctx.err
}

func (ctx *Context) run(postfix []string) error {
	for i, tok := range postfix {
		col := i + 1
		switch {
		case IsNumber(tok):
			v := ctx.num(tok)
			if v == nil {
				return &TokenError{Col: col, Token: tok}
			}
			ctx.push().Set(v)
		case IsOperator(tok):
			if err := ctx.binary(col, tok); err != nil {
				return err
			}
		case isBracket(tok):
			return &BracketError{Col: col, Bracket: tok}
		default:
			f := ctx.funcs[tok]
			if f == nil {
				return &TokenError{Col: col, Token: tok}
			}
			if err := ctx.call(col, tok, f); err != nil {
				return err
			}
		}
	}
	switch len(ctx.stack) {
	case 0:
		return &EmptyExpressionError{Col: len(postfix) + 1}
	case 1:
		return nil
	default:
		return &MalformedExpressionError{Col: len(postfix) + 1, Want: 1, Have: len(ctx.stack)}
	}
}

// binary applies an operator to the top two values of the stack, leaving
// the result in place of the left operand.
func (ctx *Context) binary(col int, op string) (err error) {
	if len(ctx.stack) < 2 {
		return &MalformedExpressionError{Col: col, Token: op, Want: 2, Have: len(ctx.stack)}
	}
	r := ctx.pop()
	l := ctx.top()
	defer func() {
		if d, ok := err.(DomainError); ok {
			d.Func = op
			err = d
		}
	}()
	// Inf-Inf, 0*Inf, and Inf/Inf panic with big.ErrNaN.
	defer catchNaN(r, &err)
	switch op {
	case "+":
		l.Add(l, r)
	case "-":
		l.Sub(l, r)
	case "*":
		l.Mul(l, r)
	case "/":
		if r.Sign() == 0 {
			return ErrDivideByZero
		}
		l.Quo(l, r)
	case "^":
		pow(l, l, r)
	default:
		panic("calculator: invalid operator " + op)
	}
	return nil
}

// call applies a function to the top value of the stack, replacing it.
func (ctx *Context) call(col int, name string, f Func) error {
	if len(ctx.stack) < 1 {
		return &MalformedExpressionError{Col: col, Token: name, Want: 1, Have: 0}
	}
	x := ctx.top()
	r := new(big.Float).SetPrec(ctx.prec)
	if err := f.Call(ctx, x, r); err != nil {
		if d, ok := err.(DomainError); ok && d.Func == "" {
			d.Func = name
			return d
		}
		return err
	}
	x.Set(r)
	return nil
}

// push ensures a settable value on the stack.
func (ctx *Context) push() *big.Float {
	if len(ctx.stack) < cap(ctx.stack) {
		ctx.stack = ctx.stack[:len(ctx.stack)+1]
		if ctx.stack[len(ctx.stack)-1] == nil {
			ctx.stack[len(ctx.stack)-1] = new(big.Float).SetPrec(ctx.prec)
		}
	} else {
		ctx.stack = append(ctx.stack, new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.stack[len(ctx.stack)-1]
}

// pop removes the top from the stack and returns it. The returned value may
// be modified by future pushes.
func (ctx *Context) pop() *big.Float {
	r := ctx.stack[len(ctx.stack)-1]
	ctx.stack = ctx.stack[:len(ctx.stack)-1]
	return r
}

// top is a shortcut to get the top element of the stack.
func (ctx *Context) top() *big.Float {
	return ctx.stack[len(ctx.stack)-1]
}

// num gets a possibly cached number from its text. Returns nil if the text
// does not parse.
func (ctx *Context) num(s string) *big.Float {
	if r := ctx.nums[s]; r != nil {
		return r
	}
	r, _, err := new(big.Float).SetPrec(ctx.prec).Parse(s, 10)
	switch {
	case err == nil: // do nothing
	case err.Error() == "exponent overflow",
		strings.HasSuffix(err.Error(), ": value out of range"):
		// There isn't realistically any better way to detect this error.
		// N.B. s is non-empty, otherwise we couldn't overflow.
		r = new(big.Float).SetInf(s[0] == '-')
	default:
		return nil
	}
	ctx.nums[s] = r
	return r
}

// pi returns π to the context's precision. The result must not be
// modified.
func (ctx *Context) pi() *big.Float {
	if ctx.piv == nil {
		ctx.piv = bigfloat.Pi(new(big.Float).SetPrec(ctx.prec))
	}
	return ctx.piv
}

// Eval is a shortcut to evaluate an infix expression with a new context.
func Eval(expr string, opts ...ContextOption) (*big.Float, error) {
	ctx := NewContext(opts...)
	r := ctx.Eval(expr)
	return r, ctx.Err()
}

// EvalPostfix is a shortcut to evaluate a postfix token sequence with a new
// context.
func EvalPostfix(postfix []string, opts ...ContextOption) (*big.Float, error) {
	ctx := NewContext(opts...)
	r := ctx.EvalPostfix(postfix)
	return r, ctx.Err()
}

package calculator

import (
	"math"
	"math/big"
	"testing"
)

func TestPow(t *testing.T) {
	cases := []struct {
		name string
		x, y float64
		want float64
	}{
		{"int", 2, 10, 1024},
		{"neg-int", 2, -2, 0.25},
		{"neg-base-odd", -2, 3, -8},
		{"neg-base-even", -2, 2, 4},
		{"zero-zero", 0, 0, 1},
		{"zero-neg", 0, -1, math.Inf(1)},
		{"frac", 4, 0.5, 2},
		{"zero-frac", 0, 0.5, 0},
		{"inf-exp", 2, math.Inf(1), math.Inf(1)},
		{"huge-exp", 10, 1e30, math.Inf(1)},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			x := new(big.Float).SetPrec(64).SetFloat64(c.x)
			y := new(big.Float).SetPrec(64).SetFloat64(c.y)
			z := pow(new(big.Float).SetPrec(64), x, y)
			got, _ := z.Float64()
			if math.IsInf(c.want, 0) {
				if got != c.want {
					t.Errorf("%g^%g: want %g, got %g", c.x, c.y, c.want, got)
				}
				return
			}
			if math.Abs(got-c.want) > 1e-12 {
				t.Errorf("%g^%g: want %g, got %g", c.x, c.y, c.want, got)
			}
		})
	}
}

func TestPowIntAlias(t *testing.T) {
	x := new(big.Float).SetPrec(64).SetInt64(3)
	powInt(x, x, 4)
	if x.Cmp(big.NewFloat(81)) != 0 {
		t.Errorf("3^4 in place gave %g", x)
	}
}

func TestDegrees(t *testing.T) {
	ctx := NewContext()
	cases := []struct {
		name string
		f    func(float64) float64
		x    float64
		want float64
	}{
		{"sin-0", math.Sin, 0, 0},
		{"sin-90", math.Sin, 90, 1},
		{"sin-270", math.Sin, 270, -1},
		{"cos-60", math.Cos, 60, 0.5},
		{"tan-45", math.Tan, 45, 1},
		{"tan-neg-45", math.Tan, -45, -1},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			r := new(big.Float)
			if err := Degrees(c.f).Call(ctx, big.NewFloat(c.x), r); err != nil {
				t.Fatal(err)
			}
			got, _ := r.Float64()
			if math.Abs(got-c.want) > 1e-12 {
				t.Errorf("want %g, got %g", c.want, got)
			}
		})
	}
}

func TestDegreesDomain(t *testing.T) {
	ctx := NewContext()
	x := new(big.Float).SetInf(false)
	err := Degrees(math.Sin).Call(ctx, x, new(big.Float))
	d, ok := err.(DomainError)
	if !ok {
		t.Fatalf("sin of infinity gave %#v, not DomainError", err)
	}
	if !d.X.IsInf() {
		t.Errorf("wrong argument in error: %g", d.X)
	}
}

func TestMonadicPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("non-NaN panic was recovered")
		}
	}()
	f := Monadic(func(out, in *big.Float) *big.Float {
		panic("boom")
	})
	f.Call(NewContext(), new(big.Float), new(big.Float))
}

func TestCustomFunc(t *testing.T) {
	double := Monadic(func(out, in *big.Float) *big.Float {
		return out.Add(in, in)
	})
	r, err := Eval("double ( 21 ) + 1", SetFunc("double", double))
	if err != nil {
		t.Fatal(err)
	}
	if got := Format(r); got != "43.0000" {
		t.Errorf("want 43.0000, got %s", got)
	}
	if _, err := Eval("sin ( 90 )", SetFunc("sin", nil)); err == nil {
		t.Error("disabled function still evaluated")
	}
}

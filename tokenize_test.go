package calculator_test

import (
	"reflect"
	"testing"

	"github.com/zephyrtronium/calculator"
)

func TestTokenize(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want []string
	}{
		{"empty", "", nil},
		{"blank", "    ", nil},
		{"single", "42", []string{"42"}},
		{"spaced", "2 + 3", []string{"2", "+", "3"}},
		{"padded", " sin  ( 90 ) ", []string{"sin", "(", "90", ")"}},
		{"keypad", "12 *  ( 3 -  4 ) ", []string{"12", "*", "(", "3", "-", "4", ")"}},
		{"tabs", "1\t+\n2", []string{"1", "+", "2"}},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := calculator.Tokenize(c.src)
			if len(got) == 0 && len(c.want) == 0 {
				return
			}
			if !reflect.DeepEqual(got, c.want) {
				t.Errorf("%q: want %q, got %q", c.src, c.want, got)
			}
		})
	}
}

func TestTokenizeCollapsesSpaces(t *testing.T) {
	single := calculator.Tokenize("sqrt ( 16 ) + 2 ^ 3")
	multi := calculator.Tokenize("sqrt    (  16   )  +     2  ^   3")
	if !reflect.DeepEqual(single, multi) {
		t.Errorf("repeated spaces changed tokens: %q vs %q", single, multi)
	}
}

func TestIsNumber(t *testing.T) {
	cases := []struct {
		tok  string
		want bool
	}{
		{"0", true},
		{"12", true},
		{"1.5", true},
		{".5", true},
		{"5.", true},
		{"-3", true},
		{"+3", true},
		{"1e3", true},
		{"1E-3", true},
		{"2.5e+10", true},
		{"", false},
		{"-", false},
		{"+", false},
		{".", false},
		{"1.2.3", false},
		{"1e", false},
		{"1e+", false},
		{"e3", false},
		{".e3", false},
		{"1e3e3", false},
		{"1-2", false},
		{"Inf", false},
		{"NaN", false},
		{"0x10", false},
		{"1_000", false},
		{"sin", false},
		{"(", false},
	}
	for _, c := range cases {
		if got := calculator.IsNumber(c.tok); got != c.want {
			t.Errorf("IsNumber(%q) = %t, want %t", c.tok, got, c.want)
		}
	}
}

func TestPrecedence(t *testing.T) {
	cases := []struct {
		tok  string
		prec int
		op   bool
	}{
		{"+", 1, true},
		{"-", 1, true},
		{"*", 2, true},
		{"/", 2, true},
		{"^", 3, true},
		{"sin", 0, false},
		{"(", 0, false},
		{"**", 0, false},
		{"", 0, false},
	}
	for _, c := range cases {
		if got := calculator.Precedence(c.tok); got != c.prec {
			t.Errorf("Precedence(%q) = %d, want %d", c.tok, got, c.prec)
		}
		if got := calculator.IsOperator(c.tok); got != c.op {
			t.Errorf("IsOperator(%q) = %t, want %t", c.tok, got, c.op)
		}
	}
}

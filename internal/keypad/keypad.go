// Package keypad maps calculator button presses onto display text.
//
// A Keypad holds no display state. Each press takes the current display and
// returns the next one, so a front end owns exactly one string per session.
package keypad

import (
	"errors"
	"fmt"
	"strings"

	"github.com/zephyrtronium/calculator"
	"github.com/zephyrtronium/calculator/internal/logger"
)

// Labels of the keys that are not appended to the display.
const (
	Equals = "="
	Clear  = "Clear"
)

// Display texts shown instead of a result.
const (
	ErrorText     = "Error"
	DivByZeroText = "Error: Div by 0"
)

// ErrUnknownKey is returned when a label matches no key.
var ErrUnknownKey = errors.New("unknown key")

// Rows is the keypad layout, top to bottom.
var Rows = [][]string{
	{"sin", "cos", "tan", "sqrt"},
	{"7", "8", "9", "/"},
	{"4", "5", "6", "*"},
	{"1", "2", "3", "-"},
	{"0", ".", "^", "+"},
	{"(", ")", Equals, Clear},
}

// Labels returns every key label in layout order.
func Labels() []string {
	var r []string
	for _, row := range Rows {
		r = append(r, row...)
	}
	return r
}

// Keypad turns key presses into display text. It is safe for concurrent use.
type Keypad struct {
	ctx *calculator.Context
	log *logger.Logger
}

// New creates a keypad that evaluates with copies of ctx. A nil ctx uses
// the default context; a nil log uses the global logger.
func New(ctx *calculator.Context, log *logger.Logger) *Keypad {
	if ctx == nil {
		ctx = calculator.NewContext()
	}
	if log == nil {
		log = logger.Global()
	}
	return &Keypad{ctx: ctx, log: log.WithPrefix("keypad")}
}

// Press applies the key with the given label to display and returns the new
// display. Digits and the decimal point append as typed; operators,
// functions, and parentheses append padded with spaces; Equals evaluates;
// Clear empties the display. An unknown label returns display unchanged
// with ErrUnknownKey.
func (k *Keypad) Press(display, label string) (string, error) {
	switch {
	case label == Equals:
		return k.Evaluate(display), nil
	case label == Clear:
		return "", nil
	case isTyped(label):
		return display + label, nil
	case isPadded(label):
		return display + " " + label + " ", nil
	default:
		return display, fmt.Errorf("%w: %q", ErrUnknownKey, label)
	}
}

// Evaluate evaluates the expression on display. On success the result is
// appended as " = " and four decimal places. On failure the display is
// replaced by DivByZeroText for a division by zero and by ErrorText for
// anything else.
func (k *Keypad) Evaluate(display string) string {
	expr := strings.TrimSpace(display)
	ctx := k.Context()
	r := ctx.Eval(expr)
	if err := ctx.Err(); err != nil {
		k.log.Debug("evaluating %q: %v", expr, err)
		return ErrorDisplay(err)
	}
	return display + " = " + calculator.Format(r)
}

// Context returns a fresh copy of the keypad's evaluation context.
func (k *Keypad) Context() *calculator.Context {
	return k.ctx.Clone()
}

// ErrorDisplay returns the display text for an evaluation error.
func ErrorDisplay(err error) string {
	if errors.Is(err, calculator.ErrDivideByZero) {
		return DivByZeroText
	}
	return ErrorText
}

// IsKey reports whether label names a key.
func IsKey(label string) bool {
	return label == Equals || label == Clear || isTyped(label) || isPadded(label)
}

func isTyped(label string) bool {
	return len(label) == 1 && (label[0] == '.' || '0' <= label[0] && label[0] <= '9')
}

func isPadded(label string) bool {
	switch label {
	case "(", ")":
		return true
	}
	if calculator.IsOperator(label) {
		return true
	}
	for _, f := range calculator.DefaultFuncs() {
		if label == f {
			return true
		}
	}
	return false
}

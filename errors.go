package calculator

import (
	"errors"
	"strconv"
)

// ErrDivideByZero is the error from dividing by zero. Evaluation stops at
// the first division by zero.
var ErrDivideByZero = errors.New("division by zero")

// MalformedExpressionError is an error indicating a token that needed more
// operands than the evaluation stack held, or operands left over at the end
// of an expression. It implements InputError.
type MalformedExpressionError struct {
	// Col is the position of the token in the postfix sequence.
	Col int
	// Token is the operator or function that was short of operands, or the
	// empty string if values were left over at the end.
	Token string
	// Want is the number of operands Token needed, or 1 at the end.
	Want int
	// Have is the number of values that were on the stack.
	Have int
}

func (err *MalformedExpressionError) Error() string {
	if err.Token == "" {
		return errpos(err.Col, "malformed expression: "+strconv.Itoa(err.Have)+" values left over")
	}
	return errpos(err.Col, "malformed expression: "+strconv.Quote(err.Token)+" needs "+strconv.Itoa(err.Want)+" operands, have "+strconv.Itoa(err.Have))
}

func (err *MalformedExpressionError) Pos() int {
	return err.Col
}

// BracketError is an error indicating mismatched parentheses in the input.
// It implements InputError.
type BracketError struct {
	// Col is the position of the parenthesis in the postfix sequence.
	Col int
	// Bracket is the unmatched parenthesis.
	Bracket string
}

func (err *BracketError) Error() string {
	if err.Bracket == ")" {
		return errpos(err.Col, "close bracket ) with no open bracket")
	}
	return errpos(err.Col, "open bracket "+err.Bracket+" with no close bracket")
}

func (err *BracketError) Pos() int {
	return err.Col
}

// TokenError is an error indicating a token that is neither a number, an
// operator, a parenthesis, nor a known function. It implements InputError.
type TokenError struct {
	// Col is the position of the token in the postfix sequence.
	Col int
	// Token is the token that was not understood.
	Token string
}

func (err *TokenError) Error() string {
	return errpos(err.Col, "unknown function or operator "+strconv.Quote(err.Token))
}

func (err *TokenError) Pos() int {
	return err.Col
}

// EmptyExpressionError is an error indicating an expression with no values.
type EmptyExpressionError struct {
	// Col is the position after the last token of the expression.
	Col int
}

func (err *EmptyExpressionError) Error() string {
	if err.Col <= 1 {
		return errpos(err.Col, "no expression")
	}
	return errpos(err.Col, "no value at end of expression")
}

func (err *EmptyExpressionError) Pos() int {
	return err.Col
}

// LexError indicates an invalid token in free-form input. It implements
// InputError.
type LexError struct {
	// Text is the token the lexer was scanning when the invalid rune was
	// encountered, plus the invalid rune.
	Text string
	// Kind is the type of token the lexer was scanning. This is "number" or
	// the empty string if a token kind hadn't been decided.
	Kind string
	// Col is the 1-based position of the invalid rune.
	Col int
}

func (err *LexError) Error() string {
	pos := "column " + strconv.Itoa(err.Col)
	if err.Kind == "" {
		return "invalid token at " + pos + ": " + err.Text
	}
	return "invalid " + err.Kind + " token at " + pos + ": " + err.Text
}

func (err *LexError) Pos() int {
	return err.Col
}

// errpos is a shortcut to create an error message with a position.
func errpos(pos int, msg string) string {
	return strconv.Itoa(pos) + ": " + msg
}

// InputError is an error with position information. Every error resulting
// from invalid input implements InputError. Positions are 1-based; for
// errors found during evaluation they count postfix tokens, and for
// LexError they count runes.
type InputError interface {
	error
	Pos() int
}

var (
	_ InputError = (*MalformedExpressionError)(nil)
	_ InputError = (*BracketError)(nil)
	_ InputError = (*TokenError)(nil)
	_ InputError = (*EmptyExpressionError)(nil)
	_ InputError = (*LexError)(nil)
)

// Package calculator implements a keypad calculator's arithmetic core.
//
// Expressions are whitespace-delimited infix token strings such as
// "( 2 + 3 ) * sin ( 90 )", the text a calculator keypad produces when it
// pads operators and functions with spaces. Evaluation happens in two
// stages: ToPostfix reorders the tokens into reverse Polish notation with a
// shunting-yard pass, then a Context evaluates the postfix sequence on a
// stack of arbitrary-precision floats.
//
// The operators are + - * / and ^, all left-associative, so "2 ^ 3 ^ 2" is
// 64. The functions sin, cos, and tan take degrees; sqrt is the square
// root. Malformed input is reported through typed errors rather than
// partial results, and division by zero is ErrDivideByZero.
//
package calculator

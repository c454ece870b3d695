package calculator

import "strings"

// Operators contains the binary operators, in order of increasing
// precedence by pairs: + and - bind loosest, ^ tightest.
const Operators = "+-*/^"

// Tokenize splits an expression into tokens at whitespace. Runs of
// whitespace count as one separator, so the result never contains empty
// tokens. The result is empty if expr is blank.
func Tokenize(expr string) []string {
	return strings.Fields(expr)
}

// IsOperator reports whether tok is one of the binary operators.
func IsOperator(tok string) bool {
	return len(tok) == 1 && strings.IndexByte(Operators, tok[0]) >= 0
}

// Precedence returns the binding strength of an operator: 1 for + and -, 2
// for * and /, 3 for ^. Any other token has precedence 0.
func Precedence(tok string) int {
	switch tok {
	case "+", "-":
		return 1
	case "*", "/":
		return 2
	case "^":
		return 3
	default:
		return 0
	}
}

// IsNumber reports whether tok is a decimal number literal: an optional
// sign, digits with at most one decimal point, and an optional exponent.
// There must be at least one digit before the exponent. Inf and NaN are not
// numbers.
func IsNumber(tok string) bool {
	if tok == "" {
		return false
	}
	if tok[0] == '+' || tok[0] == '-' {
		tok = tok[1:]
	}
	// le is whether the last byte was an exponent marker, after which a sign
	// may appear.
	var dig, dot, e, le, ed bool
	for i := 0; i < len(tok); i++ {
		c := tok[i]
		switch {
		case '0' <= c && c <= '9':
			if e {
				ed = true
			} else {
				dig = true
			}
			le = false
		case c == '.':
			if dot || e {
				return false
			}
			dot = true
		case c == 'e', c == 'E':
			if !dig || e {
				return false
			}
			e = true
			le = true
		case c == '+', c == '-':
			if !le {
				return false
			}
			le = false
		default:
			return false
		}
	}
	return dig && (!e || ed)
}

func isBracket(tok string) bool {
	return tok == "(" || tok == ")"
}

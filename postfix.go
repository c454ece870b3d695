package calculator

// defaultCtx recognizes the default function names for ToPostfix. It is
// never used to evaluate, so sharing it is safe.
var defaultCtx = &Context{funcs: globalfuncs}

// ToPostfix reorders infix tokens into postfix (reverse Polish) order using
// the default functions. See (*Context).ToPostfix.
func ToPostfix(tokens []string) []string {
	return defaultCtx.ToPostfix(tokens)
}

// ToPostfix reorders infix tokens into postfix (reverse Polish) order with
// a shunting-yard pass. Operators pop every stacked operator of equal or
// higher precedence, so all operators associate to the left, including ^.
// A function waits on the stack until the parenthesized argument after it
// closes.
//
// ToPostfix never fails. Tokens it does not recognize are emitted in place,
// a close parenthesis with no open parenthesis is emitted after the
// operators it flushed, and unclosed open parentheses are emitted at the
// end, so that evaluation reports the problem.
func (ctx *Context) ToPostfix(tokens []string) []string {
	out := make([]string, 0, len(tokens))
	var stack []string
	for _, tok := range tokens {
		switch {
		case IsNumber(tok):
			out = append(out, tok)
		case ctx.IsFunc(tok):
			stack = append(stack, tok)
		case IsOperator(tok):
			p := Precedence(tok)
			for len(stack) > 0 {
				top := stack[len(stack)-1]
				if !IsOperator(top) || Precedence(top) < p {
					break
				}
				out = append(out, top)
				stack = stack[:len(stack)-1]
			}
			stack = append(stack, tok)
		case tok == "(":
			stack = append(stack, tok)
		case tok == ")":
			k := len(stack) - 1
			for k >= 0 && stack[k] != "(" {
				out = append(out, stack[k])
				k--
			}
			if k < 0 {
				stack = stack[:0]
				out = append(out, tok)
				continue
			}
			stack = stack[:k]
			if k > 0 && ctx.IsFunc(stack[k-1]) {
				out = append(out, stack[k-1])
				stack = stack[:k-1]
			}
		default:
			out = append(out, tok)
		}
	}
	for k := len(stack) - 1; k >= 0; k-- {
		out = append(out, stack[k])
	}
	return out
}

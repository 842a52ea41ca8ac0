// Package shunt turns one logical, fully-marked line of Tokens into a
// postfix Stack the evaluator can run straight through (spec §4.8):
// Dijkstra's shunting-yard algorithm, extended with function calls,
// function definitions and statement semicolons.
package shunt

import "github.com/flrdv/pycalc/calc/token"

// Build converts a marked, body-extracted token line into a postfix
// Stack. Parens never reach the output: they're pure grouping structure
// on the operator stack. A semicolon flushes whatever operators are
// pending for the statement just finished and is itself carried into the
// output, where the evaluator treats it as "pop one value, discard it".
func Build(line []token.Token) (token.Stack, *token.CalcError) {
	argCounts, err := scanArgCounts(line)
	if err != nil {
		return nil, err
	}
	queue := argCounts

	var out, ops token.Stack

	i := 0
	for i < len(line) {
		tok := line[i]

		switch {
		case isCallSite(line, i):
			name, _ := tok.Value.(string)
			if len(queue) == 0 {
				return nil, token.NewError(token.InvalidSyntax, tok.Pos, "internal error: argument-count queue exhausted for call to %s", name)
			}
			n := queue[0]
			queue = queue[1:]
			ops.Push(token.Token{
				Kind:  token.KindFunc,
				Type:  token.FUNCCALL,
				Value: &token.CallDescriptor{Name: name, ArgCount: n},
				Pos:   tok.Pos,
			})
			i++ // the call's '(' is handled by the next iteration, like any LPAREN

		case tok.Type == token.LPAREN:
			ops.Push(tok)
			i++

		case tok.Type == token.RPAREN:
			for {
				if ops.Empty() {
					return nil, token.NewError(token.InvalidSyntax, tok.Pos, "unmatched right parenthesis")
				}
				top := ops.Pop()
				if top.Type == token.LPAREN {
					break
				}
				out.Push(top)
			}
			if !ops.Empty() && ops.Top().Type == token.FUNCCALL {
				out.Push(ops.Pop())
			}
			i++

		case tok.Type == token.OP_COMMA:
			for {
				if ops.Empty() {
					return nil, token.NewError(token.InvalidSyntax, tok.Pos, "comma outside any parenthesis")
				}
				if ops.Top().Type == token.LPAREN {
					break
				}
				out.Push(ops.Pop())
			}
			i++

		case tok.Type == token.OP_SEMICOLON:
			for !ops.Empty() {
				top := ops.Pop()
				if top.Type == token.LPAREN {
					return nil, token.NewError(token.InvalidSyntax, top.Pos, "missing closing parenthesis")
				}
				out.Push(top)
			}
			out.Push(tok)
			i++

		case isFuncDefTok(tok):
			def, _ := tok.Value.(*token.FuncDef)
			bodyStack, berr := Build(def.Body)
			if berr != nil {
				return nil, berr
			}
			def.Body = []token.Token(bodyStack)
			out.Push(tok)
			i++

		case tok.Kind == token.KindOperator || tok.Kind == token.KindUnaryOperator:
			prio := token.PrioritiesTable[tok.Type]
			for !ops.Empty() {
				top := ops.Top()
				if top.Type == token.LPAREN || top.Type == token.FUNCCALL {
					break
				}
				topPrio := token.PrioritiesTable[top.Type]
				if topPrio >= prio && top.Type != token.OP_POW {
					out.Push(ops.Pop())
					continue
				}
				break
			}
			ops.Push(tok)
			i++

		default:
			// number, string, attribute name, plain variable reference, or
			// a declaration target: these never touch the operator stack.
			out.Push(tok)
			i++
		}
	}

	for !ops.Empty() {
		top := ops.Pop()
		if top.Type == token.LPAREN {
			return nil, token.NewError(token.InvalidSyntax, top.Pos, "missing closing parenthesis")
		}
		out.Push(top)
	}

	return out, nil
}

func isCallSite(line []token.Token, i int) bool {
	tok := line[i]
	if tok.Kind != token.KindLiteral || tok.Type != token.VAR {
		return false
	}
	return i+1 < len(line) && line[i+1].Type == token.LPAREN
}

func isFuncDefTok(tok token.Token) bool {
	return tok.Kind == token.KindFunc && tok.Type == token.FUNCDEF
}

// scanArgCounts is the pre-scan from spec §4.8: for every "variable ("
// call site, count the top-level comma-separated argument entries inside
// the matching parens. Results are queued in encounter order and drained
// by Build as it emits call tokens, rather than tracked live on the
// operator stack.
func scanArgCounts(line []token.Token) ([]int, *token.CalcError) {
	var counts []int
	for i := range line {
		if !isCallSite(line, i) {
			continue
		}
		n, err := countArgs(line, i+2)
		if err != nil {
			return nil, err
		}
		counts = append(counts, n)
	}
	return counts, nil
}

func countArgs(line []token.Token, start int) (int, *token.CalcError) {
	if start < len(line) && line[start].Type == token.RPAREN {
		return 0, nil
	}
	depth := 0
	count := 1
	for i := start; i < len(line); i++ {
		switch line[i].Type {
		case token.LPAREN:
			depth++
		case token.RPAREN:
			if depth == 0 {
				return count, nil
			}
			depth--
		case token.OP_COMMA:
			if depth == 0 {
				count++
			}
		}
	}
	if start >= len(line) {
		return 0, token.NewError(token.InvalidSyntax, line[len(line)-1].Pos, "missing closing parenthesis in call arguments")
	}
	return 0, token.NewError(token.InvalidSyntax, line[start].Pos, "missing closing parenthesis in call arguments")
}

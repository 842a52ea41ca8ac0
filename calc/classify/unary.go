package classify

import "github.com/flrdv/pycalc/calc/token"

// ResolveUnary walks one logical line left to right, folding runs of
// operator tokens into a binary operator followed by an optional unary
// token (component 4.4). A run at the very start of the line, or right
// after another run's binary operator was already consumed, collapses
// entirely into one unary token: odd number of minuses is UN_NEG, even is
// UN_POS. A run that reaches end of line with nothing after it is
// invalid-syntax, except a lone trailing semicolon, kept as the statement
// terminator.
func ResolveUnary(line []token.Token) ([]token.Token, *token.CalcError) {
	var out []token.Token
	var run []token.Token
	atStart := true

	flush := func(operand token.Token) *token.CalcError {
		if len(run) == 0 {
			out = append(out, operand)
			atStart = false
			return nil
		}
		if atStart {
			u, err := collapseUnary(run)
			if err != nil {
				return err
			}
			out = append(out, u)
		} else {
			out = append(out, run[0])
			if len(run) > 1 {
				u, err := collapseUnary(run[1:])
				if err != nil {
					return err
				}
				out = append(out, u)
			}
		}
		out = append(out, operand)
		run = nil
		atStart = false
		return nil
	}

	for _, tok := range line {
		if tok.Kind == token.KindOperator {
			run = append(run, tok)
			continue
		}
		if err := flush(tok); err != nil {
			return nil, err
		}
	}

	if len(run) > 0 {
		if len(run) == 1 && run[0].Type == token.OP_SEMICOLON {
			out = append(out, run[0])
		} else {
			return nil, token.NewError(token.InvalidSyntax, run[len(run)-1].Pos, "missing operand after %s", run[len(run)-1].Text())
		}
	}
	return out, nil
}

// collapseUnary folds a run of tokens, every one of which must be + or -,
// into a single unary token. Any other operator in the run is invalid:
// only sign operators are allowed to stack.
func collapseUnary(run []token.Token) (token.Token, *token.CalcError) {
	minuses := 0
	for _, tok := range run {
		switch tok.Type {
		case token.OP_ADD:
		case token.OP_SUB:
			minuses++
		default:
			return token.Token{}, token.NewError(token.InvalidSyntax, tok.Pos, "%s cannot be used as a unary operator", tok.Text())
		}
	}
	typ := token.UN_POS
	if minuses%2 == 1 {
		typ = token.UN_NEG
	}
	return token.Token{Kind: token.KindUnaryOperator, Type: typ, Value: typ.String(), Pos: run[0].Pos}, nil
}

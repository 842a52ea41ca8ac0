package classify

import "github.com/flrdv/pycalc/calc/token"

// MarkDefinitions recognises assignment and function-definition shapes in
// one logical line (component 4.5). It first runs a forward pre-pass that
// retypes any identifier right after a dot to ATTR (a literal attribute
// name, never a variable lookup), then splits the line on top-level
// semicolons and runs a right-to-left scan over each statement.
//
// The right-to-left scan is a 5-state machine: OTHER passes tokens through
// until it sees '=', entering SAW_EQ and holding onto that token. SAW_EQ
// expects either a variable (a plain "name = expr" assignment: the
// variable is retyped to DECLTARGET and re-emitted with the held '=') or a
// right-paren (the start of a "(...) = expr" function definition, entering
// ARG). ARG expects a parameter name (collect it, go to ARG_COMMA), a
// left-paren (an empty parameter list, go straight to FUNCNAME), or a
// comma (a double comma, which is invalid). ARG_COMMA expects a comma (go
// back to ARG for the next parameter) or a left-paren (parameter list
// done, go to FUNCNAME). FUNCNAME looks at the token just left of the
// parameter list's '(': if it's a variable, that's the function's name; if
// it's anything else, the definition is an anonymous lambda and that token
// is reprocessed under OTHER instead of being consumed. A parameter list
// that opens the statement, with no token left of its '(', is likewise an
// anonymous lambda.
func MarkDefinitions(line []token.Token) ([]token.Token, *token.CalcError) {
	marked := markDotAttributes(line)

	segments, seps := splitStatements(marked)
	for i, seg := range segments {
		out, err := markAssignment(seg)
		if err != nil {
			return nil, err
		}
		segments[i] = out
	}
	return joinStatements(segments, seps), nil
}

func markDotAttributes(line []token.Token) []token.Token {
	out := make([]token.Token, len(line))
	copy(out, line)
	for i := 1; i < len(out); i++ {
		if out[i-1].Type == token.OP_DOT && out[i].Kind == token.KindLiteral {
			out[i] = token.Token{Kind: token.KindLiteral, Type: token.ATTR, Value: out[i].Value, Pos: out[i].Pos}
		}
	}
	return out
}

// splitStatements divides a line into semicolon-separated statements,
// ignoring semicolons nested inside parens (there shouldn't be any, since
// a semicolon inside a call's argument list is invalid syntax, but a stray
// one at depth > 0 is left for the shunting-yard stage to reject).
func splitStatements(line []token.Token) ([][]token.Token, []token.Token) {
	var segments [][]token.Token
	var seps []token.Token
	var cur []token.Token
	depth := 0

	for _, tok := range line {
		switch {
		case tok.Type == token.LPAREN:
			depth++
			cur = append(cur, tok)
		case tok.Type == token.RPAREN:
			depth--
			cur = append(cur, tok)
		case tok.Type == token.OP_SEMICOLON && depth == 0:
			segments = append(segments, cur)
			seps = append(seps, tok)
			cur = nil
		default:
			cur = append(cur, tok)
		}
	}
	segments = append(segments, cur)
	return segments, seps
}

func joinStatements(segments [][]token.Token, seps []token.Token) []token.Token {
	var out []token.Token
	for i, seg := range segments {
		out = append(out, seg...)
		if i < len(seps) {
			out = append(out, seps[i])
		}
	}
	return out
}

const (
	stOther = iota
	stSawEq
	stArg
	stArgComma
	stFuncName
)

func markAssignment(seg []token.Token) ([]token.Token, *token.CalcError) {
	if len(seg) == 0 {
		return seg, nil
	}

	var outRev []token.Token
	state := stOther
	var eqTok token.Token
	var paramsRev []string
	var lparenPos token.Pos

	i := len(seg) - 1
	for i >= 0 {
		tok := seg[i]
		switch state {
		case stOther:
			if tok.Type == token.OP_EQ {
				eqTok = tok
				state = stSawEq
				i--
				continue
			}
			outRev = append(outRev, tok)
			i--

		case stSawEq:
			switch {
			case tok.Kind == token.KindLiteral && tok.Type == token.VAR:
				target := tok
				target.Type = token.DECLTARGET
				// outRev is built right-to-left and reversed at the end, so
				// this pair is appended as (eqTok, target) to come out as
				// (target, eqTok) once reversed.
				outRev = append(outRev, eqTok, target)
				state = stOther
				i--
			case tok.Type == token.RPAREN:
				paramsRev = nil
				state = stArg
				i--
			default:
				return nil, token.NewError(token.InvalidSyntax, tok.Pos, "cannot assign to %s", tok.Text())
			}

		case stArg:
			switch {
			case tok.Kind == token.KindLiteral && tok.Type == token.VAR:
				name, _ := tok.Value.(string)
				paramsRev = append(paramsRev, name)
				state = stArgComma
				i--
			case tok.Type == token.LPAREN:
				lparenPos = tok.Pos
				state = stFuncName
				i--
			case tok.Type == token.OP_COMMA:
				return nil, token.NewError(token.InvalidSyntax, tok.Pos, "double comma in parameter list")
			default:
				return nil, token.NewError(token.InvalidSyntax, tok.Pos, "expected parameter name, got %s", tok.Text())
			}

		case stArgComma:
			switch {
			case tok.Type == token.OP_COMMA:
				state = stArg
				i--
			case tok.Type == token.LPAREN:
				lparenPos = tok.Pos
				state = stFuncName
				i--
			default:
				return nil, token.NewError(token.InvalidSyntax, tok.Pos, "expected ',' or '(' in parameter list")
			}

		case stFuncName:
			if tok.Kind == token.KindLiteral && tok.Type == token.VAR {
				name, _ := tok.Value.(string)
				def := &token.FuncDef{Name: name, Params: reverseStrings(paramsRev)}
				outRev = append(outRev, token.Token{Kind: token.KindFunc, Type: token.FUNCDEF, Value: def, Pos: tok.Pos})
				state = stOther
				i--
			} else {
				def := &token.FuncDef{Name: "", Params: reverseStrings(paramsRev)}
				outRev = append(outRev, token.Token{Kind: token.KindFunc, Type: token.FUNCDEF, Value: def, Pos: lparenPos})
				state = stOther
				// tok is left unconsumed: reprocessed under stOther next iteration.
			}
		}
	}

	if state == stFuncName {
		def := &token.FuncDef{Name: "", Params: reverseStrings(paramsRev)}
		outRev = append(outRev, token.Token{Kind: token.KindFunc, Type: token.FUNCDEF, Value: def, Pos: lparenPos})
		state = stOther
	}
	if state != stOther {
		return nil, token.NewError(token.InvalidSyntax, seg[0].Pos, "incomplete assignment")
	}

	out := make([]token.Token, len(outRev))
	for j, t := range outRev {
		out[len(outRev)-1-j] = t
	}
	return out, nil
}

func reverseStrings(s []string) []string {
	out := make([]string, len(s))
	for i, v := range s {
		out[len(s)-1-i] = v
	}
	return out
}

package classify

import "github.com/flrdv/pycalc/calc/token"

// ExtractBodies walks a marked, flat token line and, for every FUNCDEF
// token, packs the tokens that make up its body into def.Body (component
// 4.6). A definition's body runs until a comma, right-paren or semicolon at
// the definition's own paren depth: that boundary token belongs to whatever
// enclosing call, parameter list or statement sequence the definition sits
// inside, and is left in place for the caller to see. Nested definitions inside a body are
// extracted recursively before the outer one's extraction returns.
func ExtractBodies(line []token.Token) ([]token.Token, *token.CalcError) {
	var out []token.Token
	i := 0
	for i < len(line) {
		tok := line[i]
		if !isFuncDef(tok) {
			out = append(out, tok)
			i++
			continue
		}
		body, next, err := extractBody(line, i+1)
		if err != nil {
			return nil, err
		}
		if len(body) == 0 {
			return nil, token.NewError(token.InvalidSyntax, tok.Pos, "function has no body")
		}
		def := tok.Value.(*token.FuncDef)
		def.Body = body
		out = append(out, tok)
		i = next
	}
	return out, nil
}

func isFuncDef(tok token.Token) bool {
	return tok.Kind == token.KindFunc && tok.Type == token.FUNCDEF
}

// extractBody grabs line[start:] up to (but not including) the first
// comma, right-paren or semicolon seen at local depth zero, recursing into any
// nested FUNCDEF tokens along the way. next is the index of the boundary
// token (or len(line) if the body ran to the end of input).
func extractBody(line []token.Token, start int) (body []token.Token, next int, err *token.CalcError) {
	depth := 0
	i := start
	for i < len(line) {
		tok := line[i]
		if isFuncDef(tok) {
			nested, ni, nerr := extractBody(line, i+1)
			if nerr != nil {
				return nil, 0, nerr
			}
			if len(nested) == 0 {
				return nil, 0, token.NewError(token.InvalidSyntax, tok.Pos, "function has no body")
			}
			def := tok.Value.(*token.FuncDef)
			def.Body = nested
			body = append(body, tok)
			i = ni
			continue
		}
		switch tok.Type {
		case token.LPAREN:
			depth++
			body = append(body, tok)
			i++
		case token.RPAREN:
			if depth == 0 {
				return body, i, nil
			}
			depth--
			body = append(body, tok)
			i++
		case token.OP_COMMA:
			if depth == 0 {
				return body, i, nil
			}
			body = append(body, tok)
			i++
		case token.OP_SEMICOLON:
			if depth == 0 {
				return body, i, nil
			}
			body = append(body, tok)
			i++
		default:
			body = append(body, tok)
			i++
		}
	}
	if depth != 0 {
		return nil, 0, token.NewError(token.InvalidSyntax, line[start].Pos, "unclosed parenthesis in function body")
	}
	return body, i, nil
}

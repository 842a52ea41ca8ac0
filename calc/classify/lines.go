package classify

import "github.com/flrdv/pycalc/calc/token"

// SplitLines groups a flat classified Token stream into logical lines
// (component 4.7). A newline ends the current line unless it occurs inside
// an open paren, or immediately after a binary operator — in which case it
// is swallowed and the line continues. This runs before unary resolution,
// definition marking and body extraction, since those stages reason about
// "start of line" and need continuation-joined source lines collapsed into
// one token run first.
func SplitLines(tokens []token.Token) [][]token.Token {
	var lines [][]token.Token
	var cur []token.Token
	depth := 0

	for _, tok := range tokens {
		switch tok.Type {
		case token.LPAREN:
			depth++
			cur = append(cur, tok)
		case token.RPAREN:
			depth--
			cur = append(cur, tok)
		case token.NEWLINE:
			if depth > 0 || continuesLine(cur) {
				continue
			}
			if len(cur) > 0 {
				lines = append(lines, cur)
			}
			cur = nil
		default:
			cur = append(cur, tok)
		}
	}
	if len(cur) > 0 {
		lines = append(lines, cur)
	}
	return lines
}

// continuesLine reports whether a newline right after the last emitted
// token should be swallowed because that token is a binary operator with
// its right operand still to come.
func continuesLine(cur []token.Token) bool {
	if len(cur) == 0 {
		return false
	}
	last := cur[len(cur)-1]
	return last.Kind == token.KindOperator && last.Type != token.OP_COMMA
}

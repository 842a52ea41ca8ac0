// Package classify turns the lexer's raw Lexemes into a fully classified,
// line-grouped Token stream ready for the shunting-yard builder: operator
// run splitting, token classification, logical line splitting, unary
// resolution, assignment/definition marking, and function-body extraction
// (spec §4.2-§4.7).
package classify

import "github.com/flrdv/pycalc/calc/token"

// SplitOperatorRuns peels each LexOperatorRun lexeme into one recognised
// operator followed by zero or more single-character trailing lexemes
// (component 4.2). Longest-match-first against token.OperatorsTable.
func SplitOperatorRuns(lexemes []token.Lexeme) ([]token.Lexeme, *token.CalcError) {
	out := make([]token.Lexeme, 0, len(lexemes))
	for _, lx := range lexemes {
		if lx.Kind != token.LexOperatorRun {
			out = append(out, lx)
			continue
		}
		split, err := splitRun(lx)
		if err != nil {
			return nil, err
		}
		out = append(out, split...)
	}
	return out, nil
}

func splitRun(lx token.Lexeme) ([]token.Lexeme, *token.CalcError) {
	text := lx.Text
	n := token.MaxOperatorLen
	if n > len(text) {
		n = len(text)
	}
	for n > 0 {
		if _, ok := token.OperatorsTable[text[:n]]; ok {
			break
		}
		n--
	}
	if n == 0 {
		return nil, token.NewError(token.InvalidSyntax, lx.Pos, "invalid operator: %q", text[:1])
	}

	out := []token.Lexeme{{Kind: token.LexOperatorRun, Text: text[:n], Pos: lx.Pos}}
	for i, r := range text[n:] {
		out = append(out, token.Lexeme{
			Kind: token.LexOperatorRun,
			Text: string(r),
			Pos:  token.NewPos(lx.Pos.Line(), lx.Pos.Col()+n+i),
		})
	}
	return out, nil
}

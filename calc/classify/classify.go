package classify

import (
	"strconv"
	"strings"

	"github.com/flrdv/pycalc/calc/token"
)

// Classify promotes each raw Lexeme to a classified Token (component 4.3):
// numbers are parsed, strings have their escapes decoded, identifiers
// default to VAR (later stages may re-type some of them to DECLTARGET or
// ATTR), and operator-run lexemes are looked up in OperatorsTable.
func Classify(lexemes []token.Lexeme) ([]token.Token, *token.CalcError) {
	out := make([]token.Token, 0, len(lexemes))
	for _, lx := range lexemes {
		tok, err := classifyOne(lx)
		if err != nil {
			return nil, err
		}
		out = append(out, tok)
	}
	return out, nil
}

func classifyOne(lx token.Lexeme) (token.Token, *token.CalcError) {
	switch lx.Kind {
	case token.LexNumber:
		return classifyNumber(lx)
	case token.LexHexNumber:
		v, err := strconv.ParseInt(lx.Text[2:], 16, 64)
		if err != nil {
			return token.Token{}, token.NewError(token.InvalidSyntax, lx.Pos, "invalid hex literal %q", lx.Text)
		}
		return token.Token{Kind: token.KindNumber, Type: token.INTEGER, Value: v, Pos: lx.Pos}, nil
	case token.LexIdentifier:
		return token.Token{Kind: token.KindLiteral, Type: token.VAR, Value: lx.Text, Pos: lx.Pos}, nil
	case token.LexString:
		s, err := decodeEscapes(lx.Text, lx.Pos)
		if err != nil {
			return token.Token{}, err
		}
		return token.Token{Kind: token.KindString, Type: token.STRING, Value: s, Pos: lx.Pos}, nil
	case token.LexLParen:
		return token.Token{Kind: token.KindParen, Type: token.LPAREN, Value: "(", Pos: lx.Pos}, nil
	case token.LexRParen:
		return token.Token{Kind: token.KindParen, Type: token.RPAREN, Value: ")", Pos: lx.Pos}, nil
	case token.LexComma:
		return token.Token{Kind: token.KindOperator, Type: token.OP_COMMA, Value: ",", Pos: lx.Pos}, nil
	case token.LexNewline:
		return token.Token{Kind: token.KindNewline, Type: token.NEWLINE, Value: "\n", Pos: lx.Pos}, nil
	case token.LexOperatorRun:
		typ, ok := token.OperatorsTable[lx.Text]
		if !ok {
			return token.Token{}, token.NewError(token.UnknownToken, lx.Pos, "unknown operator %q", lx.Text)
		}
		kind := token.KindOperator
		if typ == token.OP_SEMICOLON {
			kind = token.KindOther
		}
		return token.Token{Kind: kind, Type: typ, Value: lx.Text, Pos: lx.Pos}, nil
	}
	return token.Token{}, token.NewError(token.UnknownToken, lx.Pos, "unclassifiable lexeme %q", lx.Text)
}

func classifyNumber(lx token.Lexeme) (token.Token, *token.CalcError) {
	if strings.ContainsRune(lx.Text, '.') {
		f, err := strconv.ParseFloat(lx.Text, 64)
		if err != nil {
			return token.Token{}, token.NewError(token.InvalidSyntax, lx.Pos, "invalid float literal %q", lx.Text)
		}
		return token.Token{Kind: token.KindNumber, Type: token.FLOAT, Value: f, Pos: lx.Pos}, nil
	}
	i, err := strconv.ParseInt(lx.Text, 10, 64)
	if err != nil {
		return token.Token{}, token.NewError(token.InvalidSyntax, lx.Pos, "invalid integer literal %q", lx.Text)
	}
	return token.Token{Kind: token.KindNumber, Type: token.INTEGER, Value: i, Pos: lx.Pos}, nil
}

// decodeEscapes un-escapes a string lexeme's raw text. The lexer only found
// where the string ends; this is the one place escapes turn into their
// actual characters.
func decodeEscapes(raw string, pos token.Pos) (string, *token.CalcError) {
	var b strings.Builder
	b.Grow(len(raw))
	for i := 0; i < len(raw); i++ {
		c := raw[i]
		if c != '\\' {
			b.WriteByte(c)
			continue
		}
		i++
		if i >= len(raw) {
			return "", token.NewError(token.InvalidSyntax, pos, "dangling escape in string literal")
		}
		switch raw[i] {
		case '"':
			b.WriteByte('"')
		case '\\':
			b.WriteByte('\\')
		case 'n':
			b.WriteByte('\n')
		case 'r':
			b.WriteByte('\r')
		case 't':
			b.WriteByte('\t')
		case 'b':
			b.WriteByte('\b')
		case 'f':
			b.WriteByte('\f')
		case 'v':
			b.WriteByte('\v')
		case '0':
			b.WriteByte(0)
		default:
			return "", token.NewError(token.InvalidSyntax, pos, "unknown escape sequence \\%c", raw[i])
		}
	}
	return b.String(), nil
}

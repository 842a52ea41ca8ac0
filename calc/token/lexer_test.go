package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func lexAllOK(t *testing.T, input string) []Lexeme {
	t.Helper()
	lexemes, err := LexAll("test", input)
	require.Nil(t, err, "unexpected lexical error: %v", err)
	return lexemes
}

func TestLexer_Numbers(t *testing.T) {
	cases := []struct {
		name string
		in   string
		kind LexemeKind
	}{
		{"integer", "123", LexNumber},
		{"float", "1.5", LexNumber},
		{"float-shorthand", ".5", LexNumber},
		{"hex", "0x1F", LexHexNumber},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			lexemes := lexAllOK(t, c.in)
			require.Len(t, lexemes, 1)
			require.Equal(t, c.kind, lexemes[0].Kind)
			require.Equal(t, c.in, lexemes[0].Text)
		})
	}
}

func TestLexer_InvalidNumbers(t *testing.T) {
	for _, in := range []string{"0x", "1..2", "..5", "1.2.3"} {
		_, err := LexAll("test", in)
		require.NotNil(t, err, "expected lexical error for %q", in)
		require.Equal(t, InvalidSyntax, err.Kind)
	}
}

func TestLexer_OperatorRunKeptWhole(t *testing.T) {
	lexemes := lexAllOK(t, "a---b")
	require.Len(t, lexemes, 3)
	require.Equal(t, LexIdentifier, lexemes[0].Kind)
	require.Equal(t, LexOperatorRun, lexemes[1].Kind)
	require.Equal(t, "---", lexemes[1].Text)
	require.Equal(t, LexIdentifier, lexemes[2].Kind)
}

func TestLexer_ParensAndCommaAlwaysSingle(t *testing.T) {
	lexemes := lexAllOK(t, "f(x,y)")
	kinds := make([]LexemeKind, len(lexemes))
	for i, lx := range lexemes {
		kinds[i] = lx.Kind
	}
	require.Equal(t, []LexemeKind{
		LexIdentifier, LexLParen, LexIdentifier, LexComma, LexIdentifier, LexRParen,
	}, kinds)
}

func TestLexer_DotVsFloat(t *testing.T) {
	lexemes := lexAllOK(t, "a.b")
	require.Len(t, lexemes, 3)
	require.Equal(t, LexOperatorRun, lexemes[1].Kind)
	require.Equal(t, ".", lexemes[1].Text)

	lexemes = lexAllOK(t, ".5")
	require.Len(t, lexemes, 1)
	require.Equal(t, LexNumber, lexemes[0].Kind)
}

func TestLexer_String(t *testing.T) {
	lexemes := lexAllOK(t, `"a\nb"`)
	require.Len(t, lexemes, 1)
	require.Equal(t, LexString, lexemes[0].Kind)
	require.Equal(t, `a\nb`, lexemes[0].Text)
}

func TestLexer_UnterminatedString(t *testing.T) {
	_, err := LexAll("test", `"abc`)
	require.NotNil(t, err)
	require.Equal(t, InvalidSyntax, err.Kind)
}

func TestLexer_Positions(t *testing.T) {
	lexemes := lexAllOK(t, "a = 1\nb")
	require.Equal(t, NewPos(1, 1), lexemes[0].Pos)
	// the newline lexeme
	var newlineIdx int
	for i, lx := range lexemes {
		if lx.Kind == LexNewline {
			newlineIdx = i
		}
	}
	require.Equal(t, 2, lexemes[newlineIdx+1].Pos.Line())
	require.Equal(t, 1, lexemes[newlineIdx+1].Pos.Col())
}

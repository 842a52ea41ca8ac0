package classify

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/flrdv/pycalc/calc/token"
)

func pipeline(t *testing.T, src string) [][]token.Token {
	t.Helper()
	lexemes, err := token.LexAll("test", src)
	require.Nil(t, err)
	lexemes, err = SplitOperatorRuns(lexemes)
	require.Nil(t, err)
	tokens, err := Classify(lexemes)
	require.Nil(t, err)
	lines := SplitLines(tokens)
	out := make([][]token.Token, len(lines))
	for i, line := range lines {
		withUnary, err := ResolveUnary(line)
		require.Nil(t, err, "line %d", i)
		marked, err := MarkDefinitions(withUnary)
		require.Nil(t, err, "line %d", i)
		body, err := ExtractBodies(marked)
		require.Nil(t, err, "line %d", i)
		out[i] = body
	}
	return out
}

func TestSplitOperatorRuns_LongestMatchThenUnaryCandidates(t *testing.T) {
	lexemes, err := token.LexAll("test", "a---b")
	require.Nil(t, err)
	lexemes, err = SplitOperatorRuns(lexemes)
	require.Nil(t, err)
	require.Len(t, lexemes, 5) // a, -, -, -, b
	for _, lx := range lexemes[1:4] {
		require.Equal(t, "-", lx.Text)
	}
}

func TestSplitOperatorRuns_PowIsOneToken(t *testing.T) {
	lexemes, err := token.LexAll("test", "2**3")
	require.Nil(t, err)
	lexemes, err = SplitOperatorRuns(lexemes)
	require.Nil(t, err)
	require.Len(t, lexemes, 3)
	require.Equal(t, "**", lexemes[1].Text)
}

func TestResolveUnary_LeadingMinus(t *testing.T) {
	lines := pipeline(t, "-1")
	require.Len(t, lines, 1)
	require.Equal(t, token.UN_NEG, lines[0][0].Type)
	require.Equal(t, token.INTEGER, lines[0][1].Type)
}

func TestResolveUnary_BinaryMinusThenUnaryMinus(t *testing.T) {
	// a - -1 is a - (-1): the first minus is binary, the single minus left
	// in the run folds to a unary minus.
	lines := pipeline(t, "a - -1")
	toks := lines[0]
	require.Equal(t, token.OP_SUB, toks[1].Type)
	require.Equal(t, token.UN_NEG, toks[2].Type)
}

func TestResolveUnary_TripleMinusBinaryPlusDoubleNegative(t *testing.T) {
	// a---1: binary '-' consumes the first minus, the remaining two fold
	// into a unary run of even parity, i.e. a - (+1).
	lines := pipeline(t, "a---1")
	toks := lines[0]
	require.Equal(t, token.OP_SUB, toks[1].Type)
	require.Equal(t, token.UN_POS, toks[2].Type)
}

func TestResolveUnary_AfterMultiplication(t *testing.T) {
	lines := pipeline(t, "a*-1")
	toks := lines[0]
	require.Equal(t, token.OP_MUL, toks[1].Type)
	require.Equal(t, token.UN_NEG, toks[2].Type)
}

func TestMarkDefinitions_SimpleAssignment(t *testing.T) {
	lines := pipeline(t, "x=1")
	toks := lines[0]
	require.Equal(t, token.DECLTARGET, toks[0].Type)
	require.Equal(t, token.OP_EQ, toks[1].Type)
}

func TestMarkDefinitions_ChainedAssignmentInvalid(t *testing.T) {
	_, err := classifyAndMark(t, "a=1=2")
	require.NotNil(t, err)
	require.Equal(t, token.InvalidSyntax, err.Kind)
}

func TestMarkDefinitions_NamedFunction(t *testing.T) {
	lines := pipeline(t, "f(x,y)=x*y")
	toks := lines[0]
	require.Len(t, toks, 1)
	require.True(t, isFuncDef(toks[0]))
	def := toks[0].Value.(*token.FuncDef)
	require.Equal(t, "f", def.Name)
	require.Equal(t, []string{"x", "y"}, def.Params)
	require.Len(t, def.Body, 3) // x, *, y
}

func TestMarkDefinitions_AnonymousLambdaKeepsSurroundingCall(t *testing.T) {
	lines := pipeline(t, "reduce((x,y)=x+y,m)")
	toks := lines[0]
	// reduce, (, FUNCDEF, comma, m, )
	require.Equal(t, token.VAR, toks[0].Type)
	require.Equal(t, token.LPAREN, toks[1].Type)
	require.True(t, isFuncDef(toks[2]))
	def := toks[2].Value.(*token.FuncDef)
	require.Equal(t, "", def.Name)
	require.Equal(t, []string{"x", "y"}, def.Params)
	require.Len(t, def.Body, 3)
	require.Equal(t, token.OP_COMMA, toks[3].Type)
	require.Equal(t, token.VAR, toks[4].Type)
	require.Equal(t, token.RPAREN, toks[5].Type)
}

func TestMarkDefinitions_EmptyBodyInvalid(t *testing.T) {
	_, err := classifyAndMark(t, "f()=")
	require.NotNil(t, err)
	require.Equal(t, token.InvalidSyntax, err.Kind)
}

func TestMarkDefinitions_DotAttribute(t *testing.T) {
	lines := pipeline(t, "a.b")
	toks := lines[0]
	require.Equal(t, token.VAR, toks[0].Type)
	require.Equal(t, token.OP_DOT, toks[1].Type)
	require.Equal(t, token.ATTR, toks[2].Type)
}

func TestSplitLines_ContinuesInsideParens(t *testing.T) {
	lines := pipeline(t, "f(1,\n2)")
	require.Len(t, lines, 1)
}

func TestSplitLines_ContinuesAfterBinaryOperator(t *testing.T) {
	lines := pipeline(t, "1 +\n2")
	require.Len(t, lines, 1)
}

func TestSplitLines_SemicolonsDoNotSplitLines(t *testing.T) {
	lines := pipeline(t, "x=1;y=2")
	require.Len(t, lines, 1)
}

// classifyAndMark runs the pipeline through MarkDefinitions/ExtractBodies
// on a single-line source, returning the first error encountered instead
// of failing the test, for tests that assert on invalid input.
func classifyAndMark(t *testing.T, src string) ([]token.Token, *token.CalcError) {
	t.Helper()
	lexemes, err := token.LexAll("test", src)
	if err != nil {
		return nil, err
	}
	lexemes, err = SplitOperatorRuns(lexemes)
	if err != nil {
		return nil, err
	}
	tokens, err := Classify(lexemes)
	if err != nil {
		return nil, err
	}
	lines := SplitLines(tokens)
	require.Len(t, lines, 1)
	withUnary, err := ResolveUnary(lines[0])
	if err != nil {
		return nil, err
	}
	marked, err := MarkDefinitions(withUnary)
	if err != nil {
		return nil, err
	}
	return ExtractBodies(marked)
}

// TestPipeline_FunctionDefinitionShape diffs the whole per-line token shape
// against an expected tree rather than asserting field-by-field, since the
// definition-marking/body-extraction pipeline produces a nested structure
// (a FUNCDEF's Value is itself a *token.FuncDef) that's easy to get subtly
// wrong in one field while the rest matches.
func TestPipeline_FunctionDefinitionShape(t *testing.T) {
	lines := pipeline(t, "f(x,y)=x*y")
	require.Len(t, lines, 1)

	want := []token.Token{
		{Kind: token.KindFunc, Type: token.FUNCDEF, Value: &token.FuncDef{
			Name:   "f",
			Params: []string{"x", "y"},
			Body: []token.Token{
				{Kind: token.KindLiteral, Type: token.VAR, Value: "x"},
				{Kind: token.KindOperator, Type: token.OP_MUL, Value: "*"},
				{Kind: token.KindLiteral, Type: token.VAR, Value: "y"},
			},
		}},
	}

	opts := cmp.Comparer(func(a, b token.Pos) bool { return true })
	if diff := cmp.Diff(want, lines[0], opts); diff != "" {
		t.Fatalf("definition shape mismatch (-want +got):\n%s", diff)
	}
}

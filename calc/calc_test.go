package calc

import (
	"testing"

	"github.com/flrdv/pycalc/calc/eval"
	"github.com/flrdv/pycalc/calc/token"
	"github.com/stretchr/testify/require"
)

func TestCompile_EmptyProgramIsNoCode(t *testing.T) {
	_, err := Compile("test", "   \n\t\n")
	require.NotNil(t, err)
	require.Equal(t, token.NoCode, err.Kind)
}

func TestRun_MultiLineProgramSharesBindings(t *testing.T) {
	v, err := Run("test", "a=10\na+5", nil)
	require.Nil(t, err)
	require.Equal(t, int64(15), v)
}

func TestRun_NamedFunctionAcrossLines(t *testing.T) {
	v, err := Run("test", "f(x,y)=x*y\nf(2+5, 3*2)", nil)
	require.Nil(t, err)
	require.Equal(t, int64(42), v)
}

func TestRun_ReturnsLastStatementValue(t *testing.T) {
	v, err := Run("test", "1\n2\n3", nil)
	require.Nil(t, err)
	require.Equal(t, int64(3), v)
}

func TestInterpreter_PersistsBindingsAcrossEvalCalls(t *testing.T) {
	ip := NewInterpreter(nil)

	_, err := ip.Eval("<repl>", "x=10")
	require.Nil(t, err)

	v, err := ip.Eval("<repl>", "x+5")
	require.Nil(t, err)
	require.Equal(t, int64(15), v)
}

func TestInterpreter_ClosureOutlivesDefiningLine(t *testing.T) {
	ip := NewInterpreter(nil)

	_, err := ip.Eval("<repl>", "sq(x)=x*x")
	require.Nil(t, err)

	v, err := ip.Eval("<repl>", "sq(6)")
	require.Nil(t, err)
	require.Equal(t, int64(36), v)
}

func TestInterpreter_ClosureCapturesDefiningScope(t *testing.T) {
	ip := NewInterpreter(eval.Namespace{"x": int64(1)})

	_, err := ip.Eval("<repl>", "f()=x")
	require.Nil(t, err)
	_, err = ip.Eval("<repl>", "x=2")
	require.Nil(t, err)

	v, err := ip.Eval("<repl>", "f()")
	require.Nil(t, err)
	// f captured the frame holding x, not a snapshot of x's value: a
	// later rebind in the same shared frame is still visible (spec's
	// Design Notes: frames are shared structurally with the defining
	// context, distinct from the per-invocation parameter frame).
	require.Equal(t, int64(2), v)
}

func TestRun_InvalidSyntaxCarriesPosition(t *testing.T) {
	_, err := Run("test", "1 = 2", nil)
	require.NotNil(t, err)
	require.Equal(t, token.InvalidSyntax, err.Kind)
	require.True(t, err.Pos.IsValid())
}

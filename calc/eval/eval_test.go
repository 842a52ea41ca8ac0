package eval

import (
	"testing"

	"github.com/flrdv/pycalc/calc/classify"
	"github.com/flrdv/pycalc/calc/shunt"
	"github.com/flrdv/pycalc/calc/token"
	"github.com/stretchr/testify/require"
)

// buildSrc runs a single-line source all the way through the compile
// pipeline and returns its postfix stack, mirroring calc/shunt's helper.
func buildSrc(t *testing.T, src string) token.Stack {
	t.Helper()
	lexemes, err := token.LexAll("test", src)
	require.Nil(t, err)
	lexemes, err = classify.SplitOperatorRuns(lexemes)
	require.Nil(t, err)
	tokens, err := classify.Classify(lexemes)
	require.Nil(t, err)
	lines := classify.SplitLines(tokens)
	require.Len(t, lines, 1)
	withUnary, err := classify.ResolveUnary(lines[0])
	require.Nil(t, err)
	marked, err := classify.MarkDefinitions(withUnary)
	require.Nil(t, err)
	body, err := classify.ExtractBodies(marked)
	require.Nil(t, err)
	return body
}

func run(t *testing.T, src string, globals Namespace) Value {
	t.Helper()
	stack, err := buildStack(t, src)
	require.Nil(t, err)
	ns := NewNamespaceStack(globals)
	v, cerr := Eval(stack, &ns)
	require.Nil(t, cerr)
	return v
}

func buildStack(t *testing.T, src string) (token.Stack, *token.CalcError) {
	t.Helper()
	body := buildSrc(t, src)
	return shunt.Build(body)
}

func TestEval_Arithmetic(t *testing.T) {
	v := run(t, "2+3*4", nil)
	require.Equal(t, int64(14), v)
}

func TestEval_PowRightAssociativeWithUnary(t *testing.T) {
	v := run(t, "-2**2", nil)
	require.Equal(t, int64(-4), v)

	v = run(t, "2**-3", nil)
	require.Equal(t, 0.125, v)
}

func TestEval_FloorDivNegative(t *testing.T) {
	v := run(t, "-7//2", nil)
	require.Equal(t, int64(-4), v)
}

func TestEval_DivAlwaysFloat(t *testing.T) {
	v := run(t, "4/2", nil)
	require.Equal(t, 2.0, v)
}

func TestEval_Comparisons_AreIntZeroOrOne(t *testing.T) {
	require.Equal(t, int64(1), run(t, "3>2", nil))
	require.Equal(t, int64(0), run(t, "3<2", nil))
}

func TestEval_Assignment_CreatesBindingInTopFrame(t *testing.T) {
	stack, err := buildStack(t, "x=5;x*2")
	require.Nil(t, err)
	ns := NewNamespaceStack(nil)
	v, cerr := Eval(stack, &ns)
	require.Nil(t, cerr)
	require.Equal(t, int64(10), v)
}

func TestEval_Assignment_MutatesExistingOuterBinding(t *testing.T) {
	globals := Namespace{"x": int64(1)}
	stack, err := buildStack(t, "x=x+1")
	require.Nil(t, err)
	ns := NewNamespaceStack(globals)
	v, cerr := Eval(stack, &ns)
	require.Nil(t, cerr)
	require.Equal(t, int64(2), v)
	require.Equal(t, int64(2), globals["x"])
}

func TestEval_NameNotFound(t *testing.T) {
	stack, err := buildStack(t, "y+1")
	require.Nil(t, err)
	ns := NewNamespaceStack(nil)
	_, cerr := Eval(stack, &ns)
	require.NotNil(t, cerr)
	require.Equal(t, token.NameNotFound, cerr.Kind)
}

func TestEval_NamedFunctionDefinitionAndCall(t *testing.T) {
	stack, err := buildStack(t, "f(x,y)=x*y;f(3,4)")
	require.Nil(t, err)
	ns := NewNamespaceStack(nil)
	v, cerr := Eval(stack, &ns)
	require.Nil(t, cerr)
	require.Equal(t, int64(12), v)
}

func TestEval_RecursiveClosure(t *testing.T) {
	// The recursive branch is a zero-arg lambda: call arguments are
	// evaluated eagerly, so a bare "n*fact(n-1)" branch would compute it
	// unconditionally on every call and never bottom out at n<=1.
	stack, err := buildStack(t, "fact(n)=if(n<=1,1,()=n*fact(n-1));fact(5)")
	require.Nil(t, err)
	globals := Namespace{
		"if": GoFunc(func(args []Value) (Value, error) {
			cond, _ := args[0].(int64)
			if cond != 0 {
				return args[1], nil
			}
			return Call(args[2], nil)
		}),
	}
	ns := NewNamespaceStack(globals)
	v, cerr := Eval(stack, &ns)
	require.Nil(t, cerr)
	require.Equal(t, int64(120), v)
}

func TestEval_LambdaArity(t *testing.T) {
	stack, err := buildStack(t, "sq=(x)=x*x;sq(4)")
	require.Nil(t, err)
	ns := NewNamespaceStack(nil)
	v, cerr := Eval(stack, &ns)
	require.Nil(t, cerr)
	require.Equal(t, int64(16), v)
}

func TestEval_ArityMismatchErrors(t *testing.T) {
	stack, err := buildStack(t, "f(x,y)=x+y;f(1)")
	require.Nil(t, err)
	ns := NewNamespaceStack(nil)
	_, cerr := Eval(stack, &ns)
	require.NotNil(t, cerr)
	require.Equal(t, token.ArgumentsError, cerr.Kind)
}

func TestEval_SemicolonSequenceReturnsLastStatement(t *testing.T) {
	v := run(t, "1;2;3", nil)
	require.Equal(t, int64(3), v)
}

type point struct{ x, y int64 }

func (p point) Attr(name string) (Value, error) {
	switch name {
	case "x":
		return p.x, nil
	case "y":
		return p.y, nil
	}
	return nil, token.NewError(token.ArgumentsError, 0, "no such attribute: %s", name)
}

func TestEval_DotOperatorOnHostObject(t *testing.T) {
	stack, err := buildStack(t, "p.x")
	require.Nil(t, err)
	ns := NewNamespaceStack(Namespace{"p": point{x: 7, y: 9}})
	v, cerr := Eval(stack, &ns)
	require.Nil(t, cerr)
	require.Equal(t, int64(7), v)
}

func TestEval_DotOperatorOnNonHostErrors(t *testing.T) {
	stack, err := buildStack(t, "p.x")
	require.Nil(t, err)
	ns := NewNamespaceStack(Namespace{"p": int64(5)})
	_, cerr := Eval(stack, &ns)
	require.NotNil(t, cerr)
	require.Equal(t, token.ArgumentsError, cerr.Kind)
}

func TestEval_ExternalFunctionErrorWraps(t *testing.T) {
	stack, err := buildStack(t, "boom()")
	require.Nil(t, err)
	ns := NewNamespaceStack(Namespace{
		"boom": GoFunc(func(args []Value) (Value, error) {
			return nil, errFailure{}
		}),
	})
	_, cerr := Eval(stack, &ns)
	require.NotNil(t, cerr)
	require.Equal(t, token.ExternalFunctionError, cerr.Kind)
}

type errFailure struct{}

func (errFailure) Error() string { return "boom failed" }

// Package std is the host standard namespace (spec §6): the bottom frame
// of every interpreter's namespace stack, supplying the functions and
// constants a calculator program calls into (print, malloc, map, if, …).
// None of these are core-pipeline concerns — the evaluator never
// interprets a GoFunc, it only calls it — so this package is the one
// place the language's "runtime library" lives, grounded on
// original_source/pycalc/std/*.py's stdnamespace table.
package std

import (
	"fmt"
	"io"
	"math"

	"github.com/flrdv/pycalc/calc/eval"
	"github.com/flrdv/pycalc/calc/token"
)

// NewNamespace builds the host standard namespace, the frame every
// calc.Interpreter is seeded with. Output-producing functions (print,
// println) write to out, so REPL, script and test callers can each point
// it wherever they need (os.Stdout, a bytes.Buffer in tests).
func NewNamespace(out io.Writer) eval.Namespace {
	ns := eval.Namespace{
		"pi": math.Pi,

		"sqrt": arity1Float(math.Sqrt),
		"cbrt": eval.GoFunc(cbrt),
		"rt":   eval.GoFunc(root),
		"pow":  eval.GoFunc(power),

		"int":   eval.GoFunc(toInt),
		"float": eval.GoFunc(toFloatFn),
		"str":   eval.GoFunc(toStr),
		"chr":   eval.GoFunc(chr),
		"ord":   eval.GoFunc(ord),

		"print":   eval.GoFunc(printFn(out, "")),
		"println": eval.GoFunc(printFn(out, "\n")),

		"malloc": eval.GoFunc(malloc),
		"get":    eval.GoFunc(memGet),
		"set":    eval.GoFunc(memSet),
		"sizeof": eval.GoFunc(sizeOf),
		"len":    eval.GoFunc(sizeOf),

		"map":    eval.GoFunc(mapFn),
		"filter": eval.GoFunc(filterFn),
		"reduce": eval.GoFunc(reduceFn),

		"if":    eval.GoFunc(ifFn),
		"cond":  eval.GoFunc(ifFn),
		"while": eval.GoFunc(whileFn),
	}
	return ns
}

func argErr(format string, args ...interface{}) error {
	return token.NewError(token.ArgumentsError, 0, format, args...)
}

func toFloat(v eval.Value) (float64, bool) {
	switch n := v.(type) {
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func truthy(v eval.Value) bool {
	switch n := v.(type) {
	case int64:
		return n != 0
	case float64:
		return n != 0
	case string:
		return n != ""
	default:
		return v != nil
	}
}

// arity1Float wraps a float64->float64 Go math function as a GoFunc
// taking exactly one numeric argument (sqrt's shape: original_source
// wires math.sqrt straight into stdnamespace with no extra checking).
func arity1Float(f func(float64) float64) eval.GoFunc {
	return func(args []eval.Value) (eval.Value, error) {
		if len(args) != 1 {
			return nil, argErr("expected 1 argument, got %d", len(args))
		}
		x, ok := toFloat(args[0])
		if !ok {
			return nil, argErr("expected a numeric argument")
		}
		return f(x), nil
	}
}

// cbrt mirrors the original's "cbrt": lambda a, b: a ** (b/3) — two
// arguments, cbrt(a, 1) being the cube root of a. For a >= 0 it is
// computed as Cbrt(a)**b, the same value, so exact cubes stay exact
// (math.Pow(8, 1.0/3) is 1.9999999999999998).
func cbrt(args []eval.Value) (eval.Value, error) {
	if len(args) != 2 {
		return nil, argErr("cbrt expects 2 arguments, got %d", len(args))
	}
	a, aok := toFloat(args[0])
	b, bok := toFloat(args[1])
	if !aok || !bok {
		return nil, argErr("cbrt expects numeric arguments")
	}
	if a >= 0 {
		return math.Pow(math.Cbrt(a), b), nil
	}
	return math.Pow(a, b/3), nil
}

// root implements the nth-root helper listed in spec §6 ("rt"): rt(a, n)
// == a**(1/n), test 9 of spec §8 ("rt(25,2)" == 5.0).
func root(args []eval.Value) (eval.Value, error) {
	if len(args) != 2 {
		return nil, argErr("rt expects 2 arguments, got %d", len(args))
	}
	a, aok := toFloat(args[0])
	n, nok := toFloat(args[1])
	if !aok || !nok {
		return nil, argErr("rt expects numeric arguments")
	}
	return math.Pow(a, 1/n), nil
}

func power(args []eval.Value) (eval.Value, error) {
	if len(args) != 2 {
		return nil, argErr("pow expects 2 arguments, got %d", len(args))
	}
	a, aok := toFloat(args[0])
	b, bok := toFloat(args[1])
	if !aok || !bok {
		return nil, argErr("pow expects numeric arguments")
	}
	return math.Pow(a, b), nil
}

func toInt(args []eval.Value) (eval.Value, error) {
	if len(args) != 1 {
		return nil, argErr("int expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case int64:
		return v, nil
	case float64:
		return int64(v), nil
	default:
		return nil, argErr("int() requires a numeric argument")
	}
}

func toFloatFn(args []eval.Value) (eval.Value, error) {
	if len(args) != 1 {
		return nil, argErr("float expects 1 argument, got %d", len(args))
	}
	f, ok := toFloat(args[0])
	if !ok {
		return nil, argErr("float() requires a numeric argument")
	}
	return f, nil
}

func toStr(args []eval.Value) (eval.Value, error) {
	if len(args) != 1 {
		return nil, argErr("str expects 1 argument, got %d", len(args))
	}
	switch v := args[0].(type) {
	case string:
		return v, nil
	default:
		return fmt.Sprint(v), nil
	}
}

// chr/ord round-trip each other for in-range code points (spec §8's
// round-trip property).
func chr(args []eval.Value) (eval.Value, error) {
	if len(args) != 1 {
		return nil, argErr("chr expects 1 argument, got %d", len(args))
	}
	code, ok := args[0].(int64)
	if !ok {
		return nil, argErr("chr() requires an integer argument")
	}
	return string(rune(code)), nil
}

func ord(args []eval.Value) (eval.Value, error) {
	if len(args) != 1 {
		return nil, argErr("ord expects 1 argument, got %d", len(args))
	}
	s, ok := args[0].(string)
	if !ok || len(s) == 0 {
		return nil, argErr("ord() requires a non-empty string argument")
	}
	for _, r := range s {
		return int64(r), nil
	}
	return nil, argErr("ord() requires a non-empty string argument")
}

// printFn builds print/println: both join their arguments with no
// separator (original_source's print_/println_ pass sep="") and return 0,
// matching stdio.py's "always returns int" convention so the call fits
// into an expression position.
func printFn(out io.Writer, end string) eval.GoFunc {
	return func(args []eval.Value) (eval.Value, error) {
		for _, a := range args {
			fmt.Fprint(out, formatValue(a))
		}
		fmt.Fprint(out, end)
		return int64(0), nil
	}
}

func formatValue(v eval.Value) string {
	switch x := v.(type) {
	case string:
		return x
	case fmt.Stringer:
		return x.String()
	default:
		return fmt.Sprint(x)
	}
}

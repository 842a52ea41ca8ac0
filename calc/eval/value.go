// Package eval implements the stack machine that runs a postfix Stack
// against lexical namespaces (spec §4.9): the evaluator, its namespace
// stack, and the value types that flow through it.
package eval

import (
	"fmt"
	"strings"

	"github.com/flrdv/pycalc/calc/token"
)

// Value is anything that can sit on the operand stack or live in a
// namespace: int64, float64, string, *Closure, GoFunc, or a HostObject.
// There is no separate boolean type (spec.md bounds value types to
// integer/float/string/function/host-value): comparisons produce int64
// 0 or 1, matching the original's reliance on Python bool-as-int.
type Value interface{}

// HostObject lets a host value participate in the dot operator. Numbers,
// strings, closures and GoFuncs don't implement it, so `.` on them is an
// arguments-error rather than exposing Go reflection to user code.
type HostObject interface {
	Attr(name string) (Value, error)
}

// GoFunc is a host function exposed to user code through calc/std. It
// receives already-evaluated arguments; an error it returns becomes
// external-function-error at the call site, unless it's already a
// *token.CalcError, in which case that Kind is preserved.
type GoFunc func(args []Value) (Value, error)

// Closure is a user-defined function value: its declared parameters, its
// body's postfix stack (shared, immutable once built), and a copy of the
// namespace stack taken at definition time whose frames stay shared with
// the defining scope (see NamespaceStack.Copy).
type Closure struct {
	Name   string
	Params []string
	Body   token.Stack
	Env    NamespaceStack
}

// String renders "name(a,b)" or "<lambda>(a,b)", the original's
// _spawn_function display-name convention, used for REPL echoing and
// arity-error messages.
func (c *Closure) String() string {
	name := c.Name
	if name == "" {
		name = "<lambda>"
	}
	return fmt.Sprintf("%s(%s)", name, strings.Join(c.Params, ","))
}

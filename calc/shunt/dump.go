package shunt

import (
	"github.com/davecgh/go-spew/spew"
	"github.com/flrdv/pycalc/calc/token"
)

// Dump renders a postfix Stack for debugging: deep enough to show FuncDef
// bodies and CallDescriptors without the noise of a raw %+v. Nothing in
// this module calls it; neither the -v trace nor the tests use it.
func Dump(stack token.Stack) string {
	return spew.Sdump([]token.Token(stack))
}

// Package calc is the Interpreter facade: it strings together
// calc/token, calc/classify, calc/shunt and calc/eval into the
// lex-classify-build-evaluate pipeline spec.md §2 describes, the role
// the teacher's cmd/cli.go run() helper and the original
// pycalc/interpreter/interpret.py's Interpreter.interpret play.
package calc

import (
	"strings"

	"github.com/flrdv/pycalc/calc/classify"
	"github.com/flrdv/pycalc/calc/eval"
	"github.com/flrdv/pycalc/calc/shunt"
	"github.com/flrdv/pycalc/calc/token"
)

// Program is one compiled source: a postfix Stack per logical line
// (spec §4.7's line splitter output, each independently run through the
// shunting-yard builder).
type Program struct {
	Name  string
	Lines []token.Stack
}

// Compile runs a source string through every compilation stage short of
// evaluation. An empty program (spec §7's no-code) after whitespace is
// stripped fails immediately, before the lexer ever runs.
func Compile(name, src string) (*Program, *token.CalcError) {
	if strings.TrimSpace(src) == "" {
		return nil, token.NoCodeErr
	}

	lexemes, err := token.LexAll(name, src)
	if err != nil {
		return nil, err
	}
	lexemes, err = classify.SplitOperatorRuns(lexemes)
	if err != nil {
		return nil, err
	}
	tokens, err := classify.Classify(lexemes)
	if err != nil {
		return nil, err
	}

	lines := classify.SplitLines(tokens)
	if len(lines) == 0 {
		return nil, token.NoCodeErr
	}

	stacks := make([]token.Stack, len(lines))
	for i, line := range lines {
		withUnary, err := classify.ResolveUnary(line)
		if err != nil {
			return nil, err
		}
		marked, err := classify.MarkDefinitions(withUnary)
		if err != nil {
			return nil, err
		}
		body, err := classify.ExtractBodies(marked)
		if err != nil {
			return nil, err
		}
		stack, err := shunt.Build(body)
		if err != nil {
			return nil, err
		}
		stacks[i] = stack
	}

	return &Program{Name: name, Lines: stacks}, nil
}

// Run evaluates every line of the program in order against a fresh
// namespace stack seeded with globals, returning the value of the last
// top-level statement of the last line (spec §2 step 9). The whole source
// is one program, and the first calculator error terminates it.
func Run(name, src string, globals eval.Namespace) (eval.Value, *token.CalcError) {
	prog, err := Compile(name, src)
	if err != nil {
		return nil, err
	}
	ns := eval.NewNamespaceStack(globals)
	return prog.runOn(&ns)
}

func (p *Program) runOn(ns *eval.NamespaceStack) (eval.Value, *token.CalcError) {
	var result eval.Value
	for _, stack := range p.Lines {
		v, err := eval.Eval(stack, ns)
		if err != nil {
			return nil, err
		}
		result = v
	}
	return result, nil
}

// Interpreter holds a namespace stack that survives across repeated Eval
// calls: the shape the REPL needs (spec §5: "the host standard namespace
// is shared across all evaluations of one interpreter"), one line typed
// at a time, each able to see bindings an earlier line made.
type Interpreter struct {
	ns eval.NamespaceStack
}

// NewInterpreter seeds a fresh Interpreter with a host standard namespace
// as its bottom frame (spec §3: "the bottom frame is the host-provided
// standard namespace") and an empty global frame above it for the
// program's own top-level bindings.
func NewInterpreter(globals eval.Namespace) *Interpreter {
	return &Interpreter{ns: eval.NewNamespaceStack(globals)}
}

// Eval compiles and runs src against the interpreter's persistent
// namespace stack, returning the value of its last top-level statement.
func (ip *Interpreter) Eval(name, src string) (eval.Value, *token.CalcError) {
	prog, err := Compile(name, src)
	if err != nil {
		return nil, err
	}
	return prog.runOn(&ip.ns)
}

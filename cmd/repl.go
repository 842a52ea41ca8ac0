package cmd

import (
	"fmt"
	"os"

	prompt "github.com/c-bata/go-prompt"

	"github.com/flrdv/pycalc/calc"
	"github.com/flrdv/pycalc/calc/diag"
	"github.com/flrdv/pycalc/calc/std"
)

const (
	calcPrefix = "calc> "
	contPrefix = "..... "
)

// replState tracks the current REPL line's continuation status: whether
// an open parenthesis still needs closing before the buffered input is
// worth compiling. Adapted from the teacher's promptState/bracketStack,
// trimmed from three bracket kinds to the one this language has (spec.md
// never uses [] or {}).
var replState struct {
	livePrefix string
	prefixOn   bool
	depth      int
	buffer     string
}

// RunREPL starts an interactive session: one line at a time until
// end-of-input or an interrupt (spec §6), sharing one calc.Interpreter
// (and so one namespace stack) across every line typed.
func RunREPL() {
	ip := calc.NewInterpreter(std.NewNamespace(os.Stdout))
	p := prompt.New(
		makeExecutor(ip),
		completer,
		prompt.OptionPrefix(calcPrefix),
		prompt.OptionLivePrefix(changeLivePrefix),
		prompt.OptionTitle("pycalc"),
	)
	p.Run()
}

func changeLivePrefix() (string, bool) {
	return replState.livePrefix, replState.prefixOn
}

func completer(in prompt.Document) []prompt.Suggest {
	suggestions := []prompt.Suggest{
		{Text: "print", Description: "print(values...)"},
		{Text: "println", Description: "println(values...)"},
		{Text: "map", Description: "map(fn, iterable)"},
		{Text: "filter", Description: "filter(fn, iterable)"},
		{Text: "reduce", Description: "reduce(fn, iterable[, initial])"},
		{Text: "if", Description: "if(cond, then[, else])"},
		{Text: "while", Description: "while(cond, body)"},
		{Text: "malloc", Description: "malloc(size)"},
	}
	return prompt.FilterHasPrefix(suggestions, in.GetWordBeforeCursor(), true)
}

// makeExecutor returns go-prompt's per-line callback. It accumulates
// lines into replState.buffer while parentheses remain unbalanced (a
// newline inside an open paren is a continuation, spec §4.7), and runs
// the buffered program against ip once they close.
func makeExecutor(ip *calc.Interpreter) func(string) {
	return func(line string) {
		replState.depth += parenBalance(line)
		replState.buffer += line + "\n"

		if replState.depth > 0 {
			replState.livePrefix = contPrefix
			replState.prefixOn = true
			return
		}

		replState.prefixOn = false
		src := replState.buffer
		replState.buffer = ""
		replState.depth = 0
		runOnce(ip, src)
	}
}

func parenBalance(line string) int {
	balance := 0
	for _, r := range line {
		switch r {
		case '(':
			balance++
		case ')':
			balance--
		}
	}
	return balance
}

// runOnce evaluates one buffered statement (or continuation-joined block)
// and prints either its value or a formatted diagnostic — the interactive
// front-end's job of catching calculator errors and continuing the
// session (spec §7).
func runOnce(ip *calc.Interpreter, src string) {
	v, cerr := ip.Eval("<repl>", src)
	if cerr != nil {
		fmt.Println(diag.Format("<repl>", src, cerr))
		return
	}
	if v != nil {
		fmt.Println(v)
	}
}

// Package cmd is the CLI surface spec.md §6 sketches: a cobra command
// tree wiring "-e/--execute", "-s/--script" and the REPL fallback onto
// calc.Interpreter, plus a verbose flag for the calc/eval and calc/token
// debug trace. Adapted from the teacher's cmd/cli.go Run(), generalized
// from its single-flag switch to cobra's flag parsing, the convention the
// majority of CLI-shaped repos in the example pack use.
package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/flrdv/pycalc/calc"
	"github.com/flrdv/pycalc/calc/diag"
	"github.com/flrdv/pycalc/calc/std"
)

var (
	executeFlag string
	scriptFlag  string
	verboseFlag bool
)

var rootCmd = &cobra.Command{
	Use:   "pycalc",
	Short: "a small interpreter for a single-expression arithmetic/procedural calculator language",
	RunE: func(cmd *cobra.Command, args []string) error {
		if verboseFlag {
			logrus.SetLevel(logrus.TraceLevel)
		}
		switch {
		case executeFlag != "" && scriptFlag != "":
			return fmt.Errorf("use only one of -e/--execute or -s/--script")
		case executeFlag != "":
			return runExpression(executeFlag)
		case scriptFlag != "":
			return runScript(scriptFlag)
		default:
			RunREPL()
			return nil
		}
	},
}

func init() {
	rootCmd.Flags().StringVarP(&executeFlag, "execute", "e", "", "evaluate one expression and print its result")
	rootCmd.Flags().StringVarP(&scriptFlag, "script", "s", "", "evaluate a .calc script file")
	rootCmd.Flags().BoolVarP(&verboseFlag, "verbose", "v", false, "trace lexing and evaluation to stderr")
}

// Execute runs the command tree and returns the process's exit code.
func Execute() int {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}
	return 0
}

// runExpression backs "-e/--execute": evaluate one string, print the
// result. A calculator error is printed as a diagnostic rather than
// failing the process — spec §7's propagation policy is about the
// evaluator's internals, not about this being the only chance the user
// gets to run something.
func runExpression(src string) error {
	ip := calc.NewInterpreter(std.NewNamespace(os.Stdout))
	v, cerr := ip.Eval("<expr>", src)
	if cerr != nil {
		fmt.Println(diag.Format("<expr>", src, cerr))
		return nil
	}
	fmt.Println(v)
	return nil
}

// runScript backs "-s/--script": evaluate the whole file as one program.
// Refuses any extension but .calc (spec §6), and the first calculator
// error terminates execution (spec §7's script-mode propagation policy).
func runScript(path string) error {
	if filepath.Ext(path) != ".calc" {
		return fmt.Errorf("refusing to run %q: script files must use the .calc extension", path)
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	name := filepath.Base(path)
	src := string(b)

	ip := calc.NewInterpreter(std.NewNamespace(os.Stdout))
	if _, cerr := ip.Eval(name, src); cerr != nil {
		fmt.Println(diag.Format(name, src, cerr))
		os.Exit(1)
	}
	return nil
}

// Package diag renders the source-line-plus-caret diagnostic format
// spec.md §6 specifies for calculator errors, the one user-visible
// failure surface the language ever produces (§7: "never a traceback
// from the implementation").
package diag

import (
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"github.com/flrdv/pycalc/calc/token"
)

var (
	caretColor = color.New(color.FgRed, color.Bold)
	kindColor  = color.New(color.FgRed, color.Bold)
)

func init() {
	// A script piped into a file or another process shouldn't have ANSI
	// codes baked into its output; gate fatih/color behind an isatty
	// check on stdout the way a CLI built on this stack would, rather
	// than always coloring and letting the terminal's own filtering sort
	// it out.
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		color.NoColor = true
	}
}

// Format renders a *token.CalcError as the source line, a caret aligned
// under its column, and "name:line:col: Kind: message" (spec §6). Errors
// without a position — only NoCode carries none — fall back to the
// "source:?:?: ..." form spec §7 reserves for internal errors, since
// there is no offending line to point at.
func Format(name, src string, err *token.CalcError) string {
	if !err.Pos.IsValid() {
		return fmt.Sprintf("%s:?:?: %s: %s", name, err.Kind, err.Msg)
	}

	lines := strings.Split(src, "\n")
	lineIdx := err.Pos.Line() - 1
	var sourceLine string
	if lineIdx >= 0 && lineIdx < len(lines) {
		sourceLine = lines[lineIdx]
	}

	col := err.Pos.Col()
	caret := strings.Repeat(" ", max(col-1, 0)) + caretColor.Sprint("^")

	return fmt.Sprintf("%s\n%s\n%s:%d:%d: %s: %s",
		sourceLine, caret, name, err.Pos.Line(), col, kindColor.Sprint(err.Kind), err.Msg)
}

// InternalError renders the "source:?:?: internal interpreter error: …"
// fallback spec §7 reserves for a host-side panic or bug the calculator
// error taxonomy never anticipated.
func InternalError(name string, err error) string {
	return fmt.Sprintf("%s:?:?: internal interpreter error: %s", name, err)
}

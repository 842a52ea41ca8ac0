package token

import "github.com/davecgh/go-spew/spew"

// DumpLexemes renders a Lexeme slice with go-spew for debugging. Nothing in
// this module calls it; the lexer's -v trace logs each Lexeme through its
// String method.
func DumpLexemes(lexemes []Lexeme) string { return spew.Sdump(lexemes) }

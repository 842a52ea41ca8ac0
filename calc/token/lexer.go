package token

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/sirupsen/logrus"
)

// Lexer turns a source string into a lazy stream of Lexemes. Adapted from
// the teacher's channel-driven scanner (lang/token/lexer.go, itself adapted
// from text/template/parse/lex.go): a goroutine runs a chain of state
// functions and emits Lexemes on a channel; Next is called from the
// consumer's goroutine.
type Lexer struct {
	Name  string
	Input string

	lexemes chan Lexeme

	pos, start, width  int
	line, col, prevCol int

	// tokLine/tokCol are the line/col of l.start: the position of the
	// lexeme currently being scanned. Kept in sync with l.start by ignore
	// and emit, rather than recomputed, since backtracking through
	// multi-rune lookahead makes pos-based recomputation fragile.
	tokLine, tokCol int

	err *CalcError // set once, by errorf; stops the run loop
}

const eof = -1

// Lex starts scanning input in its own goroutine and returns a Lexer ready
// to be drained with Next.
func Lex(name, input string) *Lexer {
	l := &Lexer{
		Name: name, Input: input,
		lexemes: make(chan Lexeme),
		line:    1, col: 1, prevCol: 1,
		tokLine: 1, tokCol: 1,
	}
	go l.run()
	return l
}

// Next returns the next Lexeme, or ok=false once the stream is exhausted.
// Call Err after Next returns ok=false to find out whether exhaustion was
// due to a lexical error.
func (l *Lexer) Next() (lx Lexeme, ok bool) {
	lx, ok = <-l.lexemes
	return
}

// Err returns the first lexical error encountered, if any. Only meaningful
// once Next has returned ok=false.
func (l *Lexer) Err() *CalcError { return l.err }

// Drain discards any buffered lexemes so the scanning goroutine can exit;
// used when a consumer bails out before reaching EOF.
func (l *Lexer) Drain() {
	for range l.lexemes {
	}
}

// LexAll runs the lexer to completion and collects every Lexeme, used by
// callers (and tests) that don't need streaming.
func LexAll(name, input string) ([]Lexeme, *CalcError) {
	l := Lex(name, input)
	var out []Lexeme
	for lx, ok := l.Next(); ok; lx, ok = l.Next() {
		out = append(out, lx)
	}
	return out, l.Err()
}

type stateFunc func(*Lexer) stateFunc

func (l *Lexer) run() {
	for state := lexBetween; state != nil; {
		state = state(l)
	}
	close(l.lexemes)
}

func (l *Lexer) next() rune {
	if l.pos >= len(l.Input) {
		l.width = 0
		return eof
	}
	r, w := utf8.DecodeRuneInString(l.Input[l.pos:])
	l.width = w
	l.pos += w
	if r == '\n' {
		l.line++
		l.prevCol = l.col
		l.col = 1
	} else {
		l.prevCol = l.col
		l.col++
	}
	return r
}

func (l *Lexer) backup() {
	l.pos -= l.width
	if l.width == 1 && l.pos < len(l.Input) && l.Input[l.pos] == '\n' {
		l.line--
	}
	l.col = l.prevCol
}

func (l *Lexer) peek() rune {
	r := l.next()
	l.backup()
	return r
}

func (l *Lexer) startPos() Pos { return NewPos(l.tokLine, l.tokCol) }

func (l *Lexer) emit(kind LexemeKind) {
	lx := Lexeme{Kind: kind, Text: l.Input[l.start:l.pos], Pos: l.startPos()}
	logrus.WithField("name", l.Name).Tracef("lexer: emit %s", lx)
	l.lexemes <- lx
	l.start = l.pos
	l.tokLine, l.tokCol = l.line, l.col
}

func (l *Lexer) ignore() {
	l.start = l.pos
	l.tokLine, l.tokCol = l.line, l.col
}

func (l *Lexer) errorf(format string, args ...interface{}) stateFunc {
	l.err = NewError(InvalidSyntax, l.startPos(), format, args...)
	return nil
}

func isSpace(r rune) bool { return r == ' ' || r == '\t' }
func isDigit(r rune) bool { return '0' <= r && r <= '9' }
func isIdentStart(r rune) bool {
	return r == '_' || unicode.IsLetter(r)
}
func isIdentCont(r rune) bool {
	return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r)
}

// operatorRunChars is the set of characters that can appear in a maximal
// operator run (component 4.1/4.2). '.' and ',' are excluded: they always
// lex as their own single-character lexeme (spec §4.1).
const operatorRunChars = "+-*/%<>=!&|^;"

func isOperatorChar(r rune) bool { return strings.ContainsRune(operatorRunChars, r) }

// lexBetween is the "between-tokens" state: skip whitespace, dispatch on the
// leading character of the next lexeme.
func lexBetween(l *Lexer) stateFunc {
	switch r := l.next(); {
	case r == eof:
		return nil
	case r == '\n':
		l.emit(LexNewline)
		return lexBetween
	case isSpace(r):
		l.ignore()
		return lexBetween
	case r == '(':
		l.emit(LexLParen)
		return lexBetween
	case r == ')':
		l.emit(LexRParen)
		return lexBetween
	case r == ',':
		l.emit(LexComma)
		return lexBetween
	case r == '"':
		l.ignore() // drop the opening quote
		return lexString
	case r == '.':
		// ".5" is a number; ".." is scanned as one, so that "..5" fails
		// as a number with more than one dot.
		if p := l.peek(); isDigit(p) || p == '.' {
			l.backup()
			return lexNumber
		}
		l.emit(LexOperatorRun) // single '.', split stage treats it like any run
		return lexBetween
	case isDigit(r):
		l.backup()
		return lexNumber
	case isIdentStart(r):
		l.backup()
		return lexIdentifier
	case isOperatorChar(r):
		l.backup()
		return lexOperatorRun
	default:
		return l.errorf("unexpected character %q", r)
	}
}

// lexOperatorRun consumes a maximal run of operator characters (component
// 4.1's "in-operator-run" state). Splitting the run into a binary operator
// plus trailing unary candidates is component 4.2's job, done later over
// the Lexeme's Text.
func lexOperatorRun(l *Lexer) stateFunc {
	for isOperatorChar(l.peek()) {
		l.next()
	}
	l.emit(LexOperatorRun)
	return lexBetween
}

// lexIdentifier consumes a run of letters/digits/underscore starting with a
// letter or underscore (component 4.1's "in-non-operator-run" state, the
// identifier case).
func lexIdentifier(l *Lexer) stateFunc {
	for isIdentCont(l.peek()) {
		l.next()
	}
	l.emit(LexIdentifier)
	return lexBetween
}

// lexNumber consumes a decimal integer, decimal float (including the ".5"
// shorthand), or hexadecimal integer. Malformed numbers fail here with
// invalid-syntax, per spec §4.1.
func lexNumber(l *Lexer) stateFunc {
	if l.peek() == '0' {
		l.next()
		if n := l.peek(); n == 'x' || n == 'X' {
			l.next()
			start := l.pos
			for isHexDigit(l.peek()) {
				l.next()
			}
			if l.pos == start {
				return l.errorf("invalid hexadecimal value: %s", l.Input[l.start:l.pos])
			}
			l.emit(LexHexNumber)
			return lexBetween
		}
	}
	dots := 0
	for {
		r := l.peek()
		switch {
		case isDigit(r):
			l.next()
		case r == '.':
			dots++
			l.next()
		default:
			goto done
		}
	}
done:
	text := l.Input[l.start:l.pos]
	if dots > 1 {
		return l.errorf("invalid float: %s", text)
	}
	if dots == 1 && len(text) == countRune(text, '.') {
		return l.errorf("invalid float: %s", text)
	}
	if strings.HasSuffix(text, ".") {
		return l.errorf("invalid float: trailing dot in %s", text)
	}
	l.emit(LexNumber)
	return lexBetween
}

func countRune(s string, r rune) int {
	n := 0
	for _, c := range s {
		if c == r {
			n++
		}
	}
	return n
}

func isHexDigit(r rune) bool {
	return isDigit(r) || ('a' <= r && r <= 'f') || ('A' <= r && r <= 'F')
}

// lexString consumes a quoted string, decoding nothing itself: it only
// recognises where the string ends, honouring backslash-escapes so an
// escaped quote doesn't terminate it early (component 4.1's in-string and
// in-string-escape states). Escape decoding happens in the classifier.
func lexString(l *Lexer) stateFunc {
	for {
		switch r := l.next(); r {
		case eof:
			return l.errorf("unterminated string literal")
		case '\\':
			if l.next() == eof {
				return l.errorf("unterminated string literal")
			}
		case '"':
			l.backup()
			l.emit(LexString)
			l.next()
			l.ignore() // drop the closing quote
			return lexBetween
		}
	}
}

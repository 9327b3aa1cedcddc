// Package lexer turns Mython source text into a token stream,
// tracking indentation the way a Python-style tokenizer does: leading
// whitespace on each logical line becomes Indent/Dedent tokens rather
// than being handed to the parser as ordinary whitespace.
package lexer

import (
	"fmt"
	"strconv"
	"unicode"

	"github.com/mython-lang/mython/pkg/tokens"
	"github.com/mython-lang/mython/pkg/utils"
)

// LexError is returned for any malformed input. It always names the
// offending line and column, per spec.md §4.1.
type LexError struct {
	Line, Col int
	Msg       string
}

func (e *LexError) Error() string {
	return fmt.Sprintf("line %d, col %d: %s", e.Line, e.Col, e.Msg)
}

// Lexer is a cursor over a token stream produced by a single upfront
// scan of the source. Current/Next/Expect/ExpectNext give the pull
// API spec.md §4.1 describes; the scan itself happens once in New.
type Lexer struct {
	toks []tokens.Token
	pos  int
}

// New scans src in full and returns a cursor positioned on the first
// token. The scan fails fast: the first lexical error aborts it.
func New(src string) (*Lexer, error) {
	toks, err := scan(src)
	if err != nil {
		return nil, err
	}
	return &Lexer{toks: toks, pos: 0}, nil
}

// Current returns the token under the cursor without consuming it.
func (l *Lexer) Current() tokens.Token {
	return l.toks[l.pos]
}

// Next advances the cursor past the current token and returns the
// new current token. Calling Next once the cursor is already on Eof
// keeps returning Eof.
func (l *Lexer) Next() tokens.Token {
	if l.toks[l.pos].Type != tokens.Eof {
		l.pos++
	}
	return l.toks[l.pos]
}

// Expect checks that the current token has type t, returning it, or
// a *LexError naming what was found instead.
func (l *Lexer) Expect(t tokens.Type) (tokens.Token, error) {
	cur := l.toks[l.pos]
	if cur.Type != t {
		return cur, &LexError{cur.Line, cur.Col, fmt.Sprintf("expected %s, got %s", t, cur.Type)}
	}
	return cur, nil
}

// ExpectNext advances the cursor and then expects type t on the new
// current token, mirroring the original's ExpectNext<T>.
func (l *Lexer) ExpectNext(t tokens.Type) (tokens.Token, error) {
	l.Next()
	return l.Expect(t)
}

type scanState struct {
	src         []rune
	pos         int
	line, col   int
	indents     *utils.Stack[int]
	toks        []tokens.Token
	atLineStart bool
}

func scan(src string) ([]tokens.Token, error) {
	s := &scanState{src: []rune(src), line: 1, col: 1, indents: utils.NewStack(0), atLineStart: true}

	for {
		if s.atLineStart {
			blank, err := s.handleIndentation()
			if err != nil {
				return nil, err
			}
			if s.isAtEnd() {
				break
			}
			if blank {
				continue
			}
			s.atLineStart = false
		}
		if s.isAtEnd() {
			break
		}
		if err := s.scanToken(); err != nil {
			return nil, err
		}
	}

	if n := len(s.toks); n > 0 && s.toks[n-1].Type != tokens.Newline {
		s.emit(tokens.Newline, s.line, s.col)
	}
	for s.indents.Len() > 1 {
		s.indents.Pop()
		s.emit(tokens.Dedent, s.line, s.col)
	}
	s.emit(tokens.Eof, s.line, s.col)
	return s.toks, nil
}

// handleIndentation measures the leading whitespace of a logical
// line. Blank lines and comment-only lines are fully consumed
// (including their trailing newline) and reported as blank, emitting
// no tokens at all — matching spec.md §4.1's rule that such lines
// never produce a Newline token either.
func (s *scanState) handleIndentation() (blank bool, err error) {
	width := 0
	for !s.isAtEnd() && s.peek() == ' ' {
		s.advance()
		width++
	}
	if s.isAtEnd() || s.peek() == '\n' {
		if !s.isAtEnd() {
			s.advance()
			s.line++
			s.col = 1
		}
		return true, nil
	}
	if s.peek() == '#' {
		for !s.isAtEnd() && s.peek() != '\n' {
			s.advance()
		}
		if !s.isAtEnd() {
			s.advance()
			s.line++
			s.col = 1
		}
		return true, nil
	}
	if width%2 != 0 {
		return false, &LexError{s.line, s.col, "indentation must be a multiple of two spaces"}
	}
	top, _ := s.indents.Top()
	switch {
	case width > top:
		s.indents.Push(width)
		s.emit(tokens.Indent, s.line, s.col)
	case width < top:
		for s.indents.Len() > 1 {
			top, _ = s.indents.Top()
			if top <= width {
				break
			}
			s.indents.Pop()
			s.emit(tokens.Dedent, s.line, s.col)
		}
		top, _ = s.indents.Top()
		if top != width {
			return false, &LexError{s.line, s.col, "unindent does not match any outer indentation level"}
		}
	}
	return false, nil
}

func (s *scanState) scanToken() error {
	startLine, startCol := s.line, s.col
	r := s.advance()
	switch {
	case r == '\n':
		s.emit(tokens.Newline, startLine, startCol)
		s.line++
		s.col = 1
		s.atLineStart = true
	case r == ' ' || r == '\t':
		// intra-line whitespace, no token
	case r == '#':
		for !s.isAtEnd() && s.peek() != '\n' {
			s.advance()
		}
	case r == '(':
		s.emit(tokens.LeftParen, startLine, startCol)
	case r == ')':
		s.emit(tokens.RightParen, startLine, startCol)
	case r == ',':
		s.emit(tokens.Comma, startLine, startCol)
	case r == '.':
		s.emit(tokens.Dot, startLine, startCol)
	case r == ':':
		s.emit(tokens.Colon, startLine, startCol)
	case r == '+':
		s.emit(tokens.Plus, startLine, startCol)
	case r == '-':
		s.emit(tokens.Minus, startLine, startCol)
	case r == '*':
		s.emit(tokens.Star, startLine, startCol)
	case r == '/':
		s.emit(tokens.Slash, startLine, startCol)
	case r == '=':
		if s.match('=') {
			s.emit(tokens.Eq, startLine, startCol)
		} else {
			s.emit(tokens.Assign, startLine, startCol)
		}
	case r == '!':
		if s.match('=') {
			s.emit(tokens.NotEq, startLine, startCol)
		} else {
			return &LexError{startLine, startCol, "unexpected character '!'"}
		}
	case r == '<':
		if s.match('=') {
			s.emit(tokens.LessOrEq, startLine, startCol)
		} else {
			s.emit(tokens.Less, startLine, startCol)
		}
	case r == '>':
		if s.match('=') {
			s.emit(tokens.GreaterOrEq, startLine, startCol)
		} else {
			s.emit(tokens.Greater, startLine, startCol)
		}
	case r == '"' || r == '\'':
		return s.scanString(startLine, startCol, r)
	case unicode.IsDigit(r):
		s.scanNumber(startLine, startCol)
	case unicode.IsLetter(r) || r == '_':
		s.scanIdentifier(startLine, startCol)
	default:
		return &LexError{startLine, startCol, fmt.Sprintf("unexpected character %q", r)}
	}
	return nil
}

func (s *scanState) scanNumber(startLine, startCol int) {
	start := s.pos - 1
	for !s.isAtEnd() && unicode.IsDigit(s.peek()) {
		s.advance()
	}
	text := string(s.src[start:s.pos])
	n, _ := strconv.ParseInt(text, 10, 64)
	s.toks = append(s.toks, tokens.Token{Type: tokens.Number_, Number: n, Line: startLine, Col: startCol})
}

func (s *scanState) scanIdentifier(startLine, startCol int) {
	start := s.pos - 1
	for !s.isAtEnd() && (unicode.IsLetter(s.peek()) || unicode.IsDigit(s.peek()) || s.peek() == '_') {
		s.advance()
	}
	text := string(s.src[start:s.pos])
	if kw, ok := tokens.Keyword(text); ok {
		s.toks = append(s.toks, tokens.Token{Type: kw, Text: text, Line: startLine, Col: startCol})
		return
	}
	s.toks = append(s.toks, tokens.Token{Type: tokens.Id, Text: text, Line: startLine, Col: startCol})
}

// scanString scans a string literal delimited by quote (either ' or
// ", per spec.md §4.1: "the opening quote's kind is the terminator"),
// decoding escapes and stripping the quotes. Both quote kinds produce
// an identical String token - Mython has no separate single-character
// type, matching the original lexer.h's ParseString handling both
// delimiters the same way.
func (s *scanState) scanString(startLine, startCol int, quote rune) error {
	var out []rune
	for {
		if s.isAtEnd() || s.peek() == '\n' {
			return &LexError{startLine, startCol, "unterminated string literal"}
		}
		r := s.advance()
		if r == quote {
			break
		}
		if r == '\\' {
			if s.isAtEnd() {
				return &LexError{startLine, startCol, "unterminated string literal"}
			}
			esc := s.advance()
			decoded, err := decodeEscape(esc)
			if err != nil {
				return &LexError{s.line, s.col, err.Error()}
			}
			out = append(out, decoded)
			continue
		}
		out = append(out, r)
	}
	s.toks = append(s.toks, tokens.Token{Type: tokens.String, Text: string(out), Line: startLine, Col: startCol})
	return nil
}

func decodeEscape(r rune) (rune, error) {
	switch r {
	case 'n':
		return '\n', nil
	case 't':
		return '\t', nil
	case '\'':
		return '\'', nil
	case '"':
		return '"', nil
	case '\\':
		return '\\', nil
	default:
		return 0, fmt.Errorf("unknown escape sequence '\\%c'", r)
	}
}

func (s *scanState) emit(t tokens.Type, line, col int) {
	s.toks = append(s.toks, tokens.Token{Type: t, Line: line, Col: col})
}

func (s *scanState) isAtEnd() bool {
	return s.pos >= len(s.src)
}

func (s *scanState) peek() rune {
	return s.src[s.pos]
}

func (s *scanState) advance() rune {
	r := s.src[s.pos]
	s.pos++
	s.col++
	return r
}

func (s *scanState) match(r rune) bool {
	if s.isAtEnd() || s.peek() != r {
		return false
	}
	s.advance()
	return true
}

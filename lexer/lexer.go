/*
File   : rei/lexer/lexer.go
Package lexer performs lexical analysis (tokenization) of rei source code.
It scans the source one byte at a time, producing a token stream that
always terminates in a synthetic EOF token - scanning never halts on an
error; it records a diagnostic and keeps going (spec.md §4.1: "The lexer
never halts on error; it reports and proceeds so parsing sees a
best-effort stream").

Grounded on the teacher's own lexer/lexer.go: a Lexer struct tracking
Src/Current/Position/Line, with advance/peek/match helpers driving a
character-at-a-time scan loop.
*/
package lexer

import (
	"strings"

	"github.com/rei-lang/rei/diag"
	"github.com/rei-lang/rei/token"
)

// Lexer holds all state needed to scan one source string into tokens.
type Lexer struct {
	src    string
	start  int // index of the first byte of the token being scanned
	pos    int // index of the next byte to examine
	line   int
	sink   *diag.Sink
	tokens []token.Token
}

// New creates a Lexer over src. Diagnostics (unterminated string, unknown
// character, unterminated block comment) are recorded to sink.
func New(src string, sink *diag.Sink) *Lexer {
	return &Lexer{src: src, line: 1, sink: sink}
}

// ScanTokens scans the entire source and returns the resulting token
// sequence, always ending in a single EOF token (spec.md §8: "Lexing is
// total: every input produces a token stream terminated by Eof").
func (l *Lexer) ScanTokens() []token.Token {
	for !l.atEnd() {
		l.start = l.pos
		l.scanToken()
	}
	l.tokens = append(l.tokens, token.New(token.EOF, "", l.line))
	return l.tokens
}

func (l *Lexer) atEnd() bool { return l.pos >= len(l.src) }

func (l *Lexer) advance() byte {
	b := l.src[l.pos]
	l.pos++
	return b
}

func (l *Lexer) peek() byte {
	if l.atEnd() {
		return 0
	}
	return l.src[l.pos]
}

func (l *Lexer) peekNext() byte {
	if l.pos+1 >= len(l.src) {
		return 0
	}
	return l.src[l.pos+1]
}

// match consumes the next byte and returns true if it equals expected;
// otherwise it leaves the position untouched. Used for the two-character
// operators (spec.md §4.1).
func (l *Lexer) match(expected byte) bool {
	if l.atEnd() || l.src[l.pos] != expected {
		return false
	}
	l.pos++
	return true
}

func (l *Lexer) add(kind token.Kind) {
	l.tokens = append(l.tokens, token.New(kind, l.src[l.start:l.pos], l.line))
}

func (l *Lexer) scanToken() {
	c := l.advance()
	switch c {
	case '(':
		l.add(token.LeftParen)
	case ')':
		l.add(token.RightParen)
	case '{':
		l.add(token.LeftBrace)
	case '}':
		l.add(token.RightBrace)
	case ',':
		l.add(token.Comma)
	case '.':
		l.add(token.Dot)
	case ';':
		l.add(token.Semicolon)
	case ':':
		l.add(token.Colon)
	case '?':
		l.add(token.Question)
	case '-':
		l.add(token.Minus)
	case '+':
		l.add(token.Plus)
	case '*':
		l.add(token.Star)
	case '!':
		if l.match('=') {
			l.add(token.BangEqual)
		} else {
			l.add(token.Bang)
		}
	case '=':
		if l.match('=') {
			l.add(token.EqualEqual)
		} else {
			l.add(token.Equal)
		}
	case '<':
		if l.match('=') {
			l.add(token.LessEqual)
		} else {
			l.add(token.Less)
		}
	case '>':
		if l.match('=') {
			l.add(token.GreaterEqual)
		} else {
			l.add(token.Greater)
		}
	case '/':
		switch {
		case l.match('/'):
			l.scanLineComment()
		case l.match('*'):
			l.scanBlockComment()
		default:
			l.add(token.Slash)
		}
	case ' ', '\r', '\t':
		// whitespace ignored
	case '\n':
		l.line++
	case '"':
		l.scanString()
	default:
		switch {
		case isDigit(c):
			l.scanNumber()
		case isAlpha(c):
			l.scanIdentifier()
		default:
			l.sink.Errorf(l.line, "unexpected character '%c'", c)
		}
	}
}

func (l *Lexer) scanLineComment() {
	for l.peek() != '\n' && !l.atEnd() {
		l.advance()
	}
}

// scanBlockComment consumes a /* ... */ comment. Block comments do not
// nest. An unterminated block comment is a warning, not an error - the
// scanner simply stops at end-of-input (spec.md §4.1).
func (l *Lexer) scanBlockComment() {
	for !l.atEnd() {
		if l.peek() == '*' && l.peekNext() == '/' {
			l.advance()
			l.advance()
			return
		}
		if l.peek() == '\n' {
			l.line++
		}
		l.advance()
	}
	l.sink.Warnf(l.line, "unterminated block comment")
}

// scanString consumes a "..." string literal. Strings may span multiple
// lines; an unterminated string is an error (spec.md §4.1).
func (l *Lexer) scanString() {
	var content strings.Builder
	for l.peek() != '"' && !l.atEnd() {
		if l.peek() == '\n' {
			l.line++
		}
		content.WriteByte(l.advance())
	}
	if l.atEnd() {
		l.sink.Errorf(l.line, "unterminated string")
		return
	}
	l.advance() // closing quote
	l.tokens = append(l.tokens, token.NewString(l.src[l.start:l.pos], content.String(), l.line))
}

// scanNumber consumes digits, optionally followed by '.' and more digits.
// All numbers are stored as float64 (spec.md §4.1).
func (l *Lexer) scanNumber() {
	for isDigit(l.peek()) {
		l.advance()
	}
	if l.peek() == '.' && isDigit(l.peekNext()) {
		l.advance()
		for isDigit(l.peek()) {
			l.advance()
		}
	}
	lexeme := l.src[l.start:l.pos]
	value := parseFloat(lexeme)
	l.tokens = append(l.tokens, token.NewNumber(lexeme, value, l.line))
}

func (l *Lexer) scanIdentifier() {
	for isAlphaNumeric(l.peek()) {
		l.advance()
	}
	lexeme := l.src[l.start:l.pos]
	l.add(token.Lookup(lexeme))
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool { return isAlpha(c) || isDigit(c) }

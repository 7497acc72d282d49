/*
File   : rei/parser/parser.go
Package parser implements the recursive-descent grammar in spec.md
§4.2: tokens in, a statement list out, with panic-mode synchronization
so one broken construct doesn't abort the whole parse.

Grounded on the teacher's own parser/parser.go: a Parser{Lex, CurrToken,
NextToken, Errors []string} struct with curr/peek lookahead, advancing
by re-calling the lexer token-by-token. rei's Parser instead holds a
pre-scanned []token.Token slice and an index (the token stream is
already fully materialized by the time the parser runs), but keeps the
teacher's curr/peek naming and one-error-per-bad-declaration recovery
discipline. The grammar itself - precedence-climbing through named
rules rather than the teacher's Pratt-style led-binding tables - follows
spec.md §4.2's named-rule grammar directly, since the spec fixes that
grammar exactly.
*/
package parser

import (
	"github.com/rei-lang/rei/ast"
	"github.com/rei-lang/rei/diag"
	"github.com/rei-lang/rei/token"
)

const maxArgs = 255

// Parser turns a token stream into a statement list.
type Parser struct {
	tokens []token.Token
	curr   int
	sink   *diag.Sink
}

// New creates a Parser over tokens (expected to end in a single Eof
// token, as produced by lexer.ScanTokens). Diagnostics are recorded to
// sink.
func New(tokens []token.Token, sink *diag.Sink) *Parser {
	return &Parser{tokens: tokens, sink: sink}
}

// Parse runs `program := declaration* Eof` and returns every statement
// that parsed successfully; a statement that failed parsing is dropped
// (its diagnostic was already recorded) rather than nil-padded into the
// result, since nothing downstream is indexed by position.
func (p *Parser) Parse() []ast.Stmt {
	var statements []ast.Stmt
	for !p.atEnd() {
		if s := p.declaration(); s != nil {
			statements = append(statements, s)
		}
	}
	return statements
}

// ===========================================================================
// token stream primitives
// ===========================================================================

func (p *Parser) peek() token.Token { return p.tokens[p.curr] }
func (p *Parser) previous() token.Token { return p.tokens[p.curr-1] }
func (p *Parser) atEnd() bool { return p.peek().Kind == token.EOF }

func (p *Parser) advance() token.Token {
	if !p.atEnd() {
		p.curr++
	}
	return p.previous()
}

func (p *Parser) check(kind token.Kind) bool {
	if p.atEnd() {
		return false
	}
	return p.peek().Kind == kind
}

func (p *Parser) match(kinds ...token.Kind) bool {
	for _, k := range kinds {
		if p.check(k) {
			p.advance()
			return true
		}
	}
	return false
}

// parseError is a sentinel signaling "this construct failed to parse, a
// diagnostic was recorded, synchronize and move on" - it never escapes
// the parser package.
type parseError struct{}

func (parseError) Error() string { return "parse error" }

// expect consumes a token of kind or records a diagnostic and panics
// with parseError, unwound by the nearest declaration()'s recover.
func (p *Parser) expect(kind token.Kind, message string) token.Token {
	if p.check(kind) {
		return p.advance()
	}
	p.errorAt(p.peek(), message)
	panic(parseError{})
}

func (p *Parser) errorAt(tok token.Token, message string) {
	if tok.Kind == token.EOF {
		p.sink.Errorf(tok.Line, "at end: %s", message)
		return
	}
	p.sink.Errorf(tok.Line, "at '%s': %s", tok.Lexeme, message)
}

// synchronize discards tokens until it reaches a likely statement
// boundary: just past a semicolon, or just before a statement-starting
// keyword (spec.md §4.2 "Panic-mode recovery"). The token the error was
// reported at is kept when it is itself such a keyword.
func (p *Parser) synchronize() {
	for !p.atEnd() {
		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For,
			token.If, token.While, token.Print, token.Return:
			return
		}
		if p.advance().Kind == token.Semicolon {
			return
		}
	}
}

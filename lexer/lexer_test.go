package lexer

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rei-lang/rei/diag"
	"github.com/rei-lang/rei/token"
)

func scan(t *testing.T, src string) ([]token.Token, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink("lexer")
	toks := New(src, sink).ScanTokens()
	return toks, sink
}

func kinds(toks []token.Token) []token.Kind {
	ks := make([]token.Kind, len(toks))
	for i, tok := range toks {
		ks[i] = tok.Kind
	}
	return ks
}

func TestScanTokens_Punctuation(t *testing.T) {
	toks, sink := scan(t, "(){},.;:? - + * / ! != = == < <= > >=")
	require.False(t, sink.HasErrors())
	require.Equal(t, []token.Kind{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Semicolon, token.Colon, token.Question,
		token.Minus, token.Plus, token.Star, token.Slash,
		token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
		token.Less, token.LessEqual, token.Greater, token.GreaterEqual,
		token.EOF,
	}, kinds(toks))
}

func TestScanTokens_NumberAndString(t *testing.T) {
	toks, sink := scan(t, `123 3.5 "hello world"`)
	require.False(t, sink.HasErrors())
	require.Len(t, toks, 4)
	require.Equal(t, token.Number, toks[0].Kind)
	require.Equal(t, 123.0, toks[0].NumberValue)
	require.Equal(t, 3.5, toks[1].NumberValue)
	require.Equal(t, token.String, toks[2].Kind)
	require.Equal(t, "hello world", toks[2].TextValue)
	require.Equal(t, token.EOF, toks[3].Kind)
}

func TestScanTokens_KeywordsAndIdentifiers(t *testing.T) {
	toks, _ := scan(t, "var x and foo class this")
	require.Equal(t, []token.Kind{
		token.Var, token.Identifier, token.And, token.Identifier,
		token.Class, token.This, token.EOF,
	}, kinds(toks))
}

func TestScanTokens_LineCounting(t *testing.T) {
	toks, _ := scan(t, "var a = 1;\nvar b = 2;")
	require.Equal(t, 1, toks[0].Line)
	// find "b" token's line
	for _, tok := range toks {
		if tok.Kind == token.Identifier && tok.Lexeme == "b" {
			require.Equal(t, 2, tok.Line)
		}
	}
}

func TestScanTokens_UnterminatedStringIsError(t *testing.T) {
	_, sink := scan(t, `"unterminated`)
	require.True(t, sink.HasErrors())
}

func TestScanTokens_UnterminatedBlockCommentIsWarningNotError(t *testing.T) {
	_, sink := scan(t, "/* never closed")
	require.False(t, sink.HasErrors())
	warnings, errors := sink.Counts()
	require.Equal(t, 1, warnings)
	require.Equal(t, 0, errors)
}

func TestScanTokens_UnknownCharacterContinuesScanning(t *testing.T) {
	toks, sink := scan(t, "1 @ 2")
	require.True(t, sink.HasErrors())
	require.Equal(t, []token.Kind{token.Number, token.Number, token.EOF}, kinds(toks))
}

func TestScanTokens_EmptyInputYieldsOnlyEOF(t *testing.T) {
	toks, sink := scan(t, "")
	require.False(t, sink.HasErrors())
	require.Equal(t, []token.Kind{token.EOF}, kinds(toks))
}

func TestScanTokens_CommentsSkipped(t *testing.T) {
	toks, _ := scan(t, "1 // a comment\n2 /* block */ 3")
	require.Equal(t, []token.Kind{token.Number, token.Number, token.Number, token.EOF}, kinds(toks))
}

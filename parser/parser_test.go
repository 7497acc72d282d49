package parser

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rei-lang/rei/ast"
	"github.com/rei-lang/rei/diag"
	"github.com/rei-lang/rei/lexer"
)

func parse(t *testing.T, src string) ([]ast.Stmt, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink("parser")
	toks := lexer.New(src, diag.NewSink("lexer")).ScanTokens()
	stmts := New(toks, sink).Parse()
	return stmts, sink
}

func TestParse_VarDeclaration(t *testing.T) {
	stmts, sink := parse(t, `var x = 1 + 2;`)
	require.False(t, sink.HasErrors())
	require.Len(t, stmts, 1)
	v, ok := stmts[0].(*ast.VarStmt)
	require.True(t, ok)
	require.Equal(t, "x", v.Name.Lexeme)
	bin, ok := v.Initializer.(*ast.Binary)
	require.True(t, ok)
	require.Equal(t, "+", bin.Op.Lexeme)
}

func TestParse_PrintStatement(t *testing.T) {
	stmts, sink := parse(t, `print "hello";`)
	require.False(t, sink.HasErrors())
	require.Len(t, stmts, 1)
	_, ok := stmts[0].(*ast.PrintStmt)
	require.True(t, ok)
}

func TestParse_IfElse(t *testing.T) {
	stmts, sink := parse(t, `if (true) print 1; else print 2;`)
	require.False(t, sink.HasErrors())
	ifs, ok := stmts[0].(*ast.IfStmt)
	require.True(t, ok)
	require.NotNil(t, ifs.Then)
	require.NotNil(t, ifs.Else)
}

func TestParse_WhileLoopWithBreak(t *testing.T) {
	stmts, sink := parse(t, `while (true) { break; }`)
	require.False(t, sink.HasErrors())
	_, ok := stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
}

func TestParse_ForLoopDesugarsToForStmtNode(t *testing.T) {
	stmts, sink := parse(t, `for (var i = 0; i < 10; i = i + 1) print i;`)
	require.False(t, sink.HasErrors())
	f, ok := stmts[0].(*ast.ForStmt)
	require.True(t, ok)
	require.NotNil(t, f.Init)
	require.NotNil(t, f.Cond)
	require.NotNil(t, f.Incr)
}

func TestParse_ForLoopOmittedClauses(t *testing.T) {
	stmts, sink := parse(t, `for (;;) { break; }`)
	require.False(t, sink.HasErrors())
	f, ok := stmts[0].(*ast.ForStmt)
	require.True(t, ok)
	require.Nil(t, f.Init)
	require.Nil(t, f.Incr)
	lit, ok := f.Cond.(*ast.Literal)
	require.True(t, ok)
	require.Equal(t, true, lit.Value)
}

func TestParse_FunctionDeclaration(t *testing.T) {
	stmts, sink := parse(t, `fun add(a, b) { return a + b; }`)
	require.False(t, sink.HasErrors())
	fn, ok := stmts[0].(*ast.FunctionStmt)
	require.True(t, ok)
	require.Equal(t, "add", fn.Name.Lexeme)
	require.Len(t, fn.Params, 2)
}

func TestParse_ClassWithMethods(t *testing.T) {
	stmts, sink := parse(t, `class Greeter { greet() { print this; } }`)
	require.False(t, sink.HasErrors())
	c, ok := stmts[0].(*ast.ClassStmt)
	require.True(t, ok)
	require.Equal(t, "Greeter", c.Name.Lexeme)
	require.Len(t, c.Methods, 1)
	require.Equal(t, "greet", c.Methods[0].Name.Lexeme)
}

func TestParse_TernaryExpression(t *testing.T) {
	stmts, sink := parse(t, `print true ? 1 : 2;`)
	require.False(t, sink.HasErrors())
	p, ok := stmts[0].(*ast.PrintStmt)
	require.True(t, ok)
	_, ok = p.Expression.(*ast.Ternary)
	require.True(t, ok)
}

func TestParse_AssignmentRightAssociative(t *testing.T) {
	stmts, sink := parse(t, `a = b = 1;`)
	require.False(t, sink.HasErrors())
	outer, ok := stmts[0].(*ast.ExpressionStmt).Expression.(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "a", outer.Name.Lexeme)
	inner, ok := outer.Value.(*ast.Assign)
	require.True(t, ok)
	require.Equal(t, "b", inner.Name.Lexeme)
}

func TestParse_SetExpressionFromGetAssignmentTarget(t *testing.T) {
	stmts, sink := parse(t, `obj.field = 1;`)
	require.False(t, sink.HasErrors())
	set, ok := stmts[0].(*ast.ExpressionStmt).Expression.(*ast.Set)
	require.True(t, ok)
	require.Equal(t, "field", set.Name.Lexeme)
}

func TestParse_InvalidAssignmentTargetIsError(t *testing.T) {
	_, sink := parse(t, `1 = 2;`)
	require.True(t, sink.HasErrors())
}

func TestParse_LambdaExpression(t *testing.T) {
	stmts, sink := parse(t, `var f = fun (x) { return x; };`)
	require.False(t, sink.HasErrors())
	v, ok := stmts[0].(*ast.VarStmt)
	require.True(t, ok)
	lambda, ok := v.Initializer.(*ast.Lambda)
	require.True(t, ok)
	require.Len(t, lambda.Params, 1)
}

func TestParse_CallChainedWithGet(t *testing.T) {
	stmts, sink := parse(t, `a.b().c;`)
	require.False(t, sink.HasErrors())
	get, ok := stmts[0].(*ast.ExpressionStmt).Expression.(*ast.Get)
	require.True(t, ok)
	require.Equal(t, "c", get.Name.Lexeme)
	_, ok = get.Object.(*ast.Call)
	require.True(t, ok)
}

func TestParse_MissingSemicolonRecoversAtNextStatement(t *testing.T) {
	stmts, sink := parse(t, "var a = 1\nvar b = 2;")
	require.True(t, sink.HasErrors())
	// the broken declaration is dropped, but parsing continues and
	// recovers the next one.
	require.Len(t, stmts, 1)
	v, ok := stmts[0].(*ast.VarStmt)
	require.True(t, ok)
	require.Equal(t, "b", v.Name.Lexeme)
}

func TestParse_PrecedenceOfArithmetic(t *testing.T) {
	stmts, sink := parse(t, `print 1 + 2 * 3;`)
	require.False(t, sink.HasErrors())
	p := stmts[0].(*ast.PrintStmt)
	bin := p.Expression.(*ast.Binary)
	require.Equal(t, "+", bin.Op.Lexeme)
	_, ok := bin.Right.(*ast.Binary)
	require.True(t, ok) // 2 * 3 binds tighter
}

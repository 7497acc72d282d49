/*
File   : rei/resolver/resolver.go
Package resolver implements the single static pass between parsing and
evaluation: it walks the statement list once, assigns every variable use
a lexical scope distance, and reports static errors that the parser's
grammar cannot catch on its own (redeclaration, use-before-init,
return/break/continue out of context) - spec.md §4.3.

No teacher or pack example repo implements a Lox-style resolver (the
teacher resolves names dynamically by walking its scope.Scope chain at
eval time; kristofer-smog resolves names into compiled VM slot indices,
a different representation for a different execution model entirely).
This package is built directly from spec.md §4.3's scope-stack
description; the stack's field naming still borrows the teacher's own
scope.Scope vocabulary (a map of name bindings per frame) for house
style consistency.
*/
package resolver

import (
	"github.com/rei-lang/rei/ast"
	"github.com/rei-lang/rei/diag"
	"github.com/rei-lang/rei/token"
)

// functionKind tracks what kind of callable body is currently being
// resolved, so `return` outside any function can be flagged (spec.md
// §4.3).
type functionKind int

const (
	noFunction functionKind = iota
	inFunction
	inLambda
	inMethod
)

// scope maps a declared name to whether it has finished its own
// initializer yet: false means declared-but-not-defined (spec.md §4.3
// "declare/define semantics").
type scope map[string]bool

// Resolver walks a parsed program once and produces Locals, the
// expression-identity-keyed side table the interpreter consults for
// every Variable/Assign/ThisKw lookup (spec.md §3, §4.3).
type Resolver struct {
	scopes      []scope
	currentFn   functionKind
	inLoop      bool
	sink        *diag.Sink
	Locals      map[int]int // ast Expr.ID() -> scope depth
}

// New creates a Resolver reporting to sink.
func New(sink *diag.Sink) *Resolver {
	return &Resolver{sink: sink, Locals: make(map[int]int)}
}

// Resolve walks the whole program. It never halts early; like the
// lexer and parser, it accumulates diagnostics and keeps going so a
// single program can report every static error at once.
func (r *Resolver) Resolve(statements []ast.Stmt) {
	r.resolveStmts(statements)
}

func (r *Resolver) resolveStmts(statements []ast.Stmt) {
	for _, s := range statements {
		r.resolveStmt(s)
	}
}

func (r *Resolver) resolveStmt(s ast.Stmt) { s.Accept(r) }
func (r *Resolver) resolveExpr(e ast.Expr) { e.Accept(r) }

func (r *Resolver) beginScope() { r.scopes = append(r.scopes, scope{}) }
func (r *Resolver) endScope()   { r.scopes = r.scopes[:len(r.scopes)-1] }

func (r *Resolver) peek() scope {
	if len(r.scopes) == 0 {
		return nil
	}
	return r.scopes[len(r.scopes)-1]
}

// declare registers name as not-yet-defined in the current scope.
// Redeclaring an existing name in a local (non-global) scope is a
// static error (spec.md §4.3). The global scope is the empty scope
// stack, handled entirely by the interpreter's Environment, so there is
// nothing to redeclare-check at depth zero.
func (r *Resolver) declare(name token.Token) {
	s := r.peek()
	if s == nil {
		return
	}
	if _, ok := s[name.Lexeme]; ok {
		r.sink.Errorf(name.Line, "variable '%s' already declared in this scope", name.Lexeme)
	}
	s[name.Lexeme] = false
}

// define marks name as fully initialized in the current scope.
func (r *Resolver) define(name token.Token) {
	if s := r.peek(); s != nil {
		s[name.Lexeme] = true
	}
}

// resolveLocal walks scopes from innermost outward looking for name. If
// found, it records the hop count in Locals keyed by exprID. Not found
// in any local scope means the name is treated as global at runtime -
// no Locals entry at all (spec.md §4.3).
func (r *Resolver) resolveLocal(exprID int, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.Locals[exprID] = len(r.scopes) - 1 - i
			return
		}
	}
}

// resolveFunction pushes a parameter scope, declares+defines every
// parameter, resolves the body, and restores the previous function
// context and in-loop flag - a function body starts a fresh loop
// context, so `break` cannot leak out of a function into an enclosing
// loop (spec.md §4.3).
func (r *Resolver) resolveFunction(params []token.Token, body []ast.Stmt, kind functionKind) {
	enclosingFn, enclosingLoop := r.currentFn, r.inLoop
	r.currentFn, r.inLoop = kind, false
	defer func() { r.currentFn, r.inLoop = enclosingFn, enclosingLoop }()

	r.beginScope()
	defer r.endScope()
	for _, p := range params {
		r.declare(p)
		r.define(p)
	}
	r.resolveStmts(body)
}

// ===========================================================================
// ast.StmtVisitor
// ===========================================================================

func (r *Resolver) VisitExpressionStmt(s *ast.ExpressionStmt) ast.Value {
	r.resolveExpr(s.Expression)
	return nil
}

func (r *Resolver) VisitPrintStmt(s *ast.PrintStmt) ast.Value {
	r.resolveExpr(s.Expression)
	return nil
}

func (r *Resolver) VisitVarStmt(s *ast.VarStmt) ast.Value {
	r.declare(s.Name)
	if s.Initializer != nil {
		r.resolveExpr(s.Initializer)
	}
	r.define(s.Name)
	return nil
}

func (r *Resolver) VisitBlockStmt(s *ast.BlockStmt) ast.Value {
	r.beginScope()
	r.resolveStmts(s.Statements)
	r.endScope()
	return nil
}

func (r *Resolver) VisitIfStmt(s *ast.IfStmt) ast.Value {
	r.resolveExpr(s.Cond)
	r.resolveStmt(s.Then)
	if s.Else != nil {
		r.resolveStmt(s.Else)
	}
	return nil
}

func (r *Resolver) VisitWhileStmt(s *ast.WhileStmt) ast.Value {
	r.resolveExpr(s.Cond)
	enclosingLoop := r.inLoop
	r.inLoop = true
	r.resolveStmt(s.Body)
	r.inLoop = enclosingLoop
	return nil
}

func (r *Resolver) VisitForStmt(s *ast.ForStmt) ast.Value {
	if s.Init != nil {
		r.resolveStmt(s.Init)
	}
	r.resolveExpr(s.Cond)
	if s.Incr != nil {
		r.resolveExpr(s.Incr)
	}
	enclosingLoop := r.inLoop
	r.inLoop = true
	r.resolveStmt(s.Body)
	r.inLoop = enclosingLoop
	return nil
}

func (r *Resolver) VisitLoopControlStmt(s *ast.LoopControlStmt) ast.Value {
	if !r.inLoop {
		word := "break"
		if s.Kind == ast.ContinueControl {
			word = "continue"
		}
		r.sink.Errorf(s.Token.Line, "'%s' outside any loop", word)
	}
	return nil
}

func (r *Resolver) VisitFunctionStmt(s *ast.FunctionStmt) ast.Value {
	r.declare(s.Name)
	r.define(s.Name)
	r.resolveFunction(s.Params, s.Body, inFunction)
	return nil
}

func (r *Resolver) VisitReturnStmt(s *ast.ReturnStmt) ast.Value {
	if r.currentFn == noFunction {
		r.sink.Errorf(s.Keyword.Line, "'return' outside any function")
	}
	if s.Value != nil {
		r.resolveExpr(s.Value)
	}
	return nil
}

func (r *Resolver) VisitClassStmt(s *ast.ClassStmt) ast.Value {
	r.declare(s.Name)
	r.define(s.Name)

	// Methods resolve in an extra enclosing scope predeclaring "this"
	// (spec.md §4.3 "Function resolution").
	r.beginScope()
	r.peek()["this"] = true
	for _, m := range s.Methods {
		r.resolveFunction(m.Params, m.Body, inMethod)
	}
	r.endScope()
	return nil
}

// ===========================================================================
// ast.ExprVisitor
// ===========================================================================

func (r *Resolver) VisitLiteral(e *ast.Literal) ast.Value { return nil }

func (r *Resolver) VisitGrouping(e *ast.Grouping) ast.Value {
	r.resolveExpr(e.Inner)
	return nil
}

func (r *Resolver) VisitUnary(e *ast.Unary) ast.Value {
	r.resolveExpr(e.Operand)
	return nil
}

func (r *Resolver) VisitBinary(e *ast.Binary) ast.Value {
	r.resolveExpr(e.Left)
	r.resolveExpr(e.Right)
	return nil
}

func (r *Resolver) VisitTernary(e *ast.Ternary) ast.Value {
	r.resolveExpr(e.Cond)
	r.resolveExpr(e.Then)
	r.resolveExpr(e.Else)
	return nil
}

func (r *Resolver) VisitVariable(e *ast.Variable) ast.Value {
	if s := r.peek(); s != nil {
		if defined, ok := s[e.Name.Lexeme]; ok && !defined {
			r.sink.Errorf(e.Name.Line, "cannot read local variable '%s' in its own initializer", e.Name.Lexeme)
		}
	}
	r.resolveLocal(e.ID(), e.Name)
	return nil
}

func (r *Resolver) VisitAssign(e *ast.Assign) ast.Value {
	r.resolveExpr(e.Value)
	r.resolveLocal(e.ID(), e.Name)
	return nil
}

func (r *Resolver) VisitCall(e *ast.Call) ast.Value {
	r.resolveExpr(e.Callee)
	for _, a := range e.Args {
		r.resolveExpr(a)
	}
	return nil
}

func (r *Resolver) VisitLambda(e *ast.Lambda) ast.Value {
	r.resolveFunction(e.Params, e.Body, inLambda)
	return nil
}

func (r *Resolver) VisitGet(e *ast.Get) ast.Value {
	r.resolveExpr(e.Object)
	return nil
}

func (r *Resolver) VisitSet(e *ast.Set) ast.Value {
	r.resolveExpr(e.Value)
	r.resolveExpr(e.Object)
	return nil
}

func (r *Resolver) VisitThis(e *ast.ThisExpr) ast.Value {
	if r.currentFn != inMethod {
		r.sink.Errorf(e.Keyword.Line, "'this' outside any method")
		return nil
	}
	r.resolveLocal(e.ID(), e.Keyword)
	return nil
}

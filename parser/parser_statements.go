/*
File   : rei/parser/parser_statements.go
declaration and statement grammar rules, split out from parser.go
matching the teacher's own habit of one file per grammar layer
(parser_statements.go / parser_expressions.go).
*/
package parser

import (
	"github.com/rei-lang/rei/ast"
	"github.com/rei-lang/rei/token"
)

// declaration := class_decl | fun_decl | var_decl | statement
//
// Wraps the whole rule in a recover so any expect() panic raised deep
// inside this declaration is caught here: one diagnostic was already
// recorded at the failure point, synchronize() discards tokens up to
// the next likely boundary, and this declaration contributes nothing
// to the result (spec.md §4.2 "Panic-mode recovery").
func (p *Parser) declaration() (stmt ast.Stmt) {
	defer func() {
		if r := recover(); r != nil {
			if _, ok := r.(parseError); !ok {
				panic(r)
			}
			p.synchronize()
			stmt = nil
		}
	}()

	switch {
	case p.match(token.Class):
		return p.classDecl()
	case p.match(token.Fun):
		return p.funDecl("function")
	case p.match(token.Var):
		return p.varDecl()
	default:
		return p.statement()
	}
}

// class_decl := "class" IDENT "{" function* "}"
func (p *Parser) classDecl() ast.Stmt {
	line := p.previous().Line
	name := p.expect(token.Identifier, "expected class name")
	p.expect(token.LeftBrace, "expected '{' before class body")

	var methods []*ast.FunctionStmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		methods = append(methods, p.functionBody("method"))
	}
	p.expect(token.RightBrace, "expected '}' after class body")
	return ast.NewClassStmt(line, name, methods)
}

// fun_decl := "fun" function
func (p *Parser) funDecl(kind string) ast.Stmt {
	return p.functionBody(kind)
}

// function := IDENT "(" params? ")" block
func (p *Parser) functionBody(kind string) *ast.FunctionStmt {
	name := p.expect(token.Identifier, "expected "+kind+" name")
	line := name.Line
	p.expect(token.LeftParen, "expected '(' after "+kind+" name")
	params := p.parameterList()
	p.expect(token.LeftBrace, "expected '{' before "+kind+" body")
	body := p.block()
	return ast.NewFunctionStmt(line, name, params, body)
}

// params := IDENT ("," IDENT)* (max 255)
func (p *Parser) parameterList() []token.Token {
	var params []token.Token
	if !p.check(token.RightParen) {
		for {
			if len(params) >= maxArgs {
				p.errorAt(p.peek(), "can't have more than 255 parameters")
			}
			params = append(params, p.expect(token.Identifier, "expected parameter name"))
			if !p.match(token.Comma) {
				break
			}
		}
	}
	p.expect(token.RightParen, "expected ')' after parameters")
	return params
}

// var_decl := "var" IDENT ("=" expression)? ";"
func (p *Parser) varDecl() ast.Stmt {
	line := p.previous().Line
	name := p.expect(token.Identifier, "expected variable name")

	var initializer ast.Expr
	if p.match(token.Equal) {
		initializer = p.expression()
	}
	p.expect(token.Semicolon, "expected ';' after variable declaration")
	return ast.NewVarStmt(line, name, initializer)
}

// statement := expr_stmt | print_stmt | block | if_stmt
//            | while_stmt | for_stmt | return_stmt
//            | "break" ";" | "continue" ";"
func (p *Parser) statement() ast.Stmt {
	switch {
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.LeftBrace):
		line := p.previous().Line
		return ast.NewBlockStmt(line, p.block())
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.While):
		return p.whileStmt()
	case p.match(token.For):
		return p.forStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.match(token.Break):
		tok := p.previous()
		p.expect(token.Semicolon, "expected ';' after 'break'")
		return ast.NewLoopControlStmt(tok.Line, ast.BreakControl, tok)
	case p.match(token.Continue):
		tok := p.previous()
		p.expect(token.Semicolon, "expected ';' after 'continue'")
		return ast.NewLoopControlStmt(tok.Line, ast.ContinueControl, tok)
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() ast.Stmt {
	line := p.previous().Line
	value := p.expression()
	p.expect(token.Semicolon, "expected ';' after value")
	return ast.NewPrintStmt(line, value)
}

func (p *Parser) exprStmt() ast.Stmt {
	expr := p.expression()
	p.expect(token.Semicolon, "expected ';' after expression")
	return ast.NewExpressionStmt(expr.Line(), expr)
}

// block := "{" declaration* "}" - the leading "{" has already been
// consumed by the caller, so block statements, function bodies, and
// lambda bodies can all share this rule.
func (p *Parser) block() []ast.Stmt {
	var statements []ast.Stmt
	for !p.check(token.RightBrace) && !p.atEnd() {
		if s := p.declaration(); s != nil {
			statements = append(statements, s)
		}
	}
	p.expect(token.RightBrace, "expected '}' after block")
	return statements
}

func (p *Parser) ifStmt() ast.Stmt {
	line := p.previous().Line
	p.expect(token.LeftParen, "expected '(' after 'if'")
	cond := p.expression()
	p.expect(token.RightParen, "expected ')' after if condition")

	then := p.statement()
	var els ast.Stmt
	if p.match(token.Else) {
		els = p.statement()
	}
	return ast.NewIfStmt(line, cond, then, els)
}

func (p *Parser) whileStmt() ast.Stmt {
	line := p.previous().Line
	p.expect(token.LeftParen, "expected '(' after 'while'")
	cond := p.expression()
	p.expect(token.RightParen, "expected ')' after while condition")
	body := p.statement()
	return ast.NewWhileStmt(line, cond, body)
}

// for_stmt := "for" "(" (var_decl | expr_stmt | ";") expression? ";" expression? ")" statement
//
// Kept as a dedicated ForStmt node, not desugared to While, so
// `continue` can run the increment before re-testing the condition
// (spec.md §4.2 "For-loop desugaring rationale").
func (p *Parser) forStmt() ast.Stmt {
	line := p.previous().Line
	p.expect(token.LeftParen, "expected '(' after 'for'")

	var init ast.Stmt
	switch {
	case p.match(token.Semicolon):
		// no initializer
	case p.check(token.Var):
		p.advance()
		init = p.varDecl()
	default:
		init = p.exprStmt()
	}

	var cond ast.Expr
	if !p.check(token.Semicolon) {
		cond = p.expression()
	} else {
		cond = ast.NewLiteral(line, true)
	}
	p.expect(token.Semicolon, "expected ';' after loop condition")

	var incr ast.Expr
	if !p.check(token.RightParen) {
		incr = p.expression()
	}
	p.expect(token.RightParen, "expected ')' after for clauses")

	body := p.statement()
	return ast.NewForStmt(line, init, cond, incr, body)
}

func (p *Parser) returnStmt() ast.Stmt {
	keyword := p.previous()
	var value ast.Expr
	if !p.check(token.Semicolon) {
		value = p.expression()
	}
	p.expect(token.Semicolon, "expected ';' after return value")
	return ast.NewReturnStmt(keyword.Line, keyword, value)
}

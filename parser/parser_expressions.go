/*
File   : rei/parser/parser_expressions.go
The expression half of the grammar, from `expression` down through
`primary`, matching spec.md §4.2's precedence chain level for level.
*/
package parser

import (
	"github.com/rei-lang/rei/ast"
	"github.com/rei-lang/rei/token"
)

// expression := assignment
func (p *Parser) expression() ast.Expr {
	return p.assignment()
}

// assignment := ternary ("=" assignment)?  (right-assoc)
//
// Parses the left side as a ternary first, then - only on seeing "=" -
// checks that the left side is a valid assignment target. A Variable
// rewrites to Assign; a Get rewrites to Set; anything else is a static
// error at the "=" token (spec.md §4.2 "Assignment target rule").
func (p *Parser) assignment() ast.Expr {
	left := p.ternary()

	if p.match(token.Equal) {
		equals := p.previous()
		value := p.assignment() // right-associative

		switch target := left.(type) {
		case *ast.Variable:
			return ast.NewAssign(equals.Line, target.Name, value)
		case *ast.Get:
			return ast.NewSet(equals.Line, target.Object, target.Name, value)
		default:
			p.errorAt(equals, "invalid assignment target")
			return left
		}
	}
	return left
}

// ternary := logic_or ("?" ternary ":" ternary)?
func (p *Parser) ternary() ast.Expr {
	cond := p.logicOr()
	if p.match(token.Question) {
		line := p.previous().Line
		then := p.ternary()
		p.expect(token.Colon, "expected ':' in ternary expression")
		els := p.ternary()
		return ast.NewTernary(line, cond, then, els)
	}
	return cond
}

// logic_or := logic_and ("or" logic_and)*
func (p *Parser) logicOr() ast.Expr {
	expr := p.logicAnd()
	for p.match(token.Or) {
		op := p.previous()
		right := p.logicAnd()
		expr = ast.NewBinary(op.Line, expr, op, right)
	}
	return expr
}

// logic_and := equality ("and" equality)*
func (p *Parser) logicAnd() ast.Expr {
	expr := p.equality()
	for p.match(token.And) {
		op := p.previous()
		right := p.equality()
		expr = ast.NewBinary(op.Line, expr, op, right)
	}
	return expr
}

// equality := comparison (("=="|"!=") comparison)*
func (p *Parser) equality() ast.Expr {
	expr := p.comparison()
	for p.match(token.EqualEqual, token.BangEqual) {
		op := p.previous()
		right := p.comparison()
		expr = ast.NewBinary(op.Line, expr, op, right)
	}
	return expr
}

// comparison := addition ((">"|">="|"<"|"<=") addition)*
func (p *Parser) comparison() ast.Expr {
	expr := p.addition()
	for p.match(token.Greater, token.GreaterEqual, token.Less, token.LessEqual) {
		op := p.previous()
		right := p.addition()
		expr = ast.NewBinary(op.Line, expr, op, right)
	}
	return expr
}

// addition := multiplication (("+"|"-") multiplication)*
func (p *Parser) addition() ast.Expr {
	expr := p.multiplication()
	for p.match(token.Plus, token.Minus) {
		op := p.previous()
		right := p.multiplication()
		expr = ast.NewBinary(op.Line, expr, op, right)
	}
	return expr
}

// multiplication := unary (("*"|"/") unary)*
func (p *Parser) multiplication() ast.Expr {
	expr := p.unary()
	for p.match(token.Star, token.Slash) {
		op := p.previous()
		right := p.unary()
		expr = ast.NewBinary(op.Line, expr, op, right)
	}
	return expr
}

// unary := ("-"|"!") unary | call
func (p *Parser) unary() ast.Expr {
	if p.match(token.Minus, token.Bang) {
		op := p.previous()
		operand := p.unary()
		return ast.NewUnary(op.Line, op, operand)
	}
	return p.call()
}

// call := primary ( "(" args? ")" | "." IDENT )*
func (p *Parser) call() ast.Expr {
	expr := p.primary()
	for {
		switch {
		case p.match(token.LeftParen):
			expr = p.finishCall(expr)
		case p.match(token.Dot):
			name := p.expect(token.Identifier, "expected property name after '.'")
			expr = ast.NewGet(name.Line, expr, name)
		default:
			return expr
		}
	}
}

// args := expression ("," expression)* (max 255)
func (p *Parser) finishCall(callee ast.Expr) ast.Expr {
	var args []ast.Expr
	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.errorAt(p.peek(), "can't have more than 255 arguments")
			}
			args = append(args, p.expression())
			if !p.match(token.Comma) {
				break
			}
		}
	}
	paren := p.expect(token.RightParen, "expected ')' after arguments")
	return ast.NewCall(paren.Line, callee, paren, args)
}

// primary := NUMBER | STRING | "true" | "false" | "nil"
//          | "(" expression ")" | IDENT | "this" | "fun" lambda_tail
func (p *Parser) primary() ast.Expr {
	switch {
	case p.match(token.Number):
		tok := p.previous()
		return ast.NewLiteral(tok.Line, tok.NumberValue)
	case p.match(token.String):
		tok := p.previous()
		return ast.NewLiteral(tok.Line, tok.TextValue)
	case p.match(token.True):
		return ast.NewLiteral(p.previous().Line, true)
	case p.match(token.False):
		return ast.NewLiteral(p.previous().Line, false)
	case p.match(token.Nil):
		return ast.NewLiteral(p.previous().Line, nil)
	case p.match(token.This):
		tok := p.previous()
		return ast.NewThisExpr(tok.Line, tok)
	case p.match(token.Identifier):
		tok := p.previous()
		return ast.NewVariable(tok.Line, tok)
	case p.match(token.LeftParen):
		line := p.previous().Line
		inner := p.expression()
		p.expect(token.RightParen, "expected ')' after expression")
		return ast.NewGrouping(line, inner)
	case p.match(token.Fun):
		return p.lambda()
	default:
		p.errorAt(p.peek(), "expected expression")
		panic(parseError{})
	}
}

// lambda_tail := "(" params? ")" block - parsed identically to a named
// function's parameter list and body (spec.md §4.2 "Lambda").
func (p *Parser) lambda() ast.Expr {
	line := p.previous().Line
	p.expect(token.LeftParen, "expected '(' after 'fun'")
	params := p.parameterList()
	p.expect(token.LeftBrace, "expected '{' before lambda body")
	body := p.block()
	return ast.NewLambda(line, params, body)
}

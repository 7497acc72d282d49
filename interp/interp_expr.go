/*
File   : rei/interp/interp_expr.go
ast.ExprVisitor implementation - expression evaluation rules, matching
spec.md §4.5.1 (value semantics) and §4.5.3 (expression evaluation).
*/
package interp

import (
	"github.com/rei-lang/rei/ast"
	"github.com/rei-lang/rei/token"
	"github.com/rei-lang/rei/value"
)

func (in *Interpreter) VisitLiteral(e *ast.Literal) ast.Value {
	return exprResult{value: literalValue(e.Value)}
}

// literalValue converts the Go-native constant a Literal node carries
// (float64, string, bool, or nil) into the tagged value union.
func literalValue(v any) value.Value {
	switch vv := v.(type) {
	case nil:
		return value.Nil{}
	case bool:
		return value.Bool(vv)
	case float64:
		return value.Number(vv)
	case string:
		return value.Text(vv)
	default:
		return value.Nil{}
	}
}

func (in *Interpreter) VisitGrouping(e *ast.Grouping) ast.Value {
	v, err := in.eval(e.Inner)
	return exprResult{value: v, err: err}
}

func (in *Interpreter) VisitUnary(e *ast.Unary) ast.Value {
	operand, err := in.eval(e.Operand)
	if err != nil {
		return exprResult{err: err}
	}
	switch e.Op.Kind {
	case token.Minus:
		n, ok := operand.(value.Number)
		if !ok {
			return exprResult{err: newRuntimeError(e.Op.Line, "operand of unary '-' must be a number, got %s", value.TypeName(operand))}
		}
		return exprResult{value: -n}
	case token.Bang:
		return exprResult{value: value.Bool(!value.Truthy(operand))}
	default:
		return exprResult{err: newRuntimeError(e.Op.Line, "unknown unary operator %q", e.Op.Lexeme)}
	}
}

// VisitBinary implements spec.md §4.5.1's arithmetic, comparison,
// equality, and short-circuit logical rules. `and`/`or` are handled
// here rather than desugared, since they must not evaluate their
// right-hand side unconditionally.
func (in *Interpreter) VisitBinary(e *ast.Binary) ast.Value {
	if e.Op.Kind == token.And || e.Op.Kind == token.Or {
		return in.evalLogical(e)
	}

	left, err := in.eval(e.Left)
	if err != nil {
		return exprResult{err: err}
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return exprResult{err: err}
	}

	switch e.Op.Kind {
	case token.Plus:
		return exprResult{value: evalPlus(left, right)}.orError(e.Op.Line)
	case token.Minus:
		return numericBinary(e.Op.Line, left, right, func(a, b float64) value.Value { return value.Number(a - b) })
	case token.Star:
		return numericBinary(e.Op.Line, left, right, func(a, b float64) value.Value { return value.Number(a * b) })
	case token.Slash:
		l, lok := left.(value.Number)
		r, rok := right.(value.Number)
		if !lok || !rok {
			return exprResult{err: newRuntimeError(e.Op.Line, "operands of '/' must be numbers, got %s and %s", value.TypeName(left), value.TypeName(right))}
		}
		if r == 0 {
			return exprResult{err: newRuntimeError(e.Op.Line, "division by zero")}
		}
		return exprResult{value: value.Number(l / r)}
	case token.Greater:
		return numericCompare(e.Op.Line, left, right, func(a, b float64) bool { return a > b })
	case token.GreaterEqual:
		return numericCompare(e.Op.Line, left, right, func(a, b float64) bool { return a >= b })
	case token.Less:
		return numericCompare(e.Op.Line, left, right, func(a, b float64) bool { return a < b })
	case token.LessEqual:
		return numericCompare(e.Op.Line, left, right, func(a, b float64) bool { return a <= b })
	case token.EqualEqual:
		return exprResult{value: value.Bool(value.Equal(left, right))}
	case token.BangEqual:
		return exprResult{value: value.Bool(!value.Equal(left, right))}
	default:
		return exprResult{err: newRuntimeError(e.Op.Line, "unknown binary operator %q", e.Op.Lexeme)}
	}
}

// evalPlus implements spec.md §4.5.1: number+number sums; any operand
// being text concatenates both operands' displayed forms; anything else
// is an error signaled via a nil return caught by orError.
func evalPlus(left, right value.Value) value.Value {
	ln, lok := left.(value.Number)
	rn, rok := right.(value.Number)
	if lok && rok {
		return ln + rn
	}
	if left.Type() == value.TextType || right.Type() == value.TextType {
		return value.Concat(left, right)
	}
	return nil
}

func (r exprResult) orError(line int) exprResult {
	if r.value == nil && r.err == nil {
		return exprResult{err: newRuntimeError(line, "operands of '+' must both be numbers, or at least one must be text")}
	}
	return r
}

func numericBinary(line int, left, right value.Value, op func(a, b float64) value.Value) exprResult {
	l, lok := left.(value.Number)
	r, rok := right.(value.Number)
	if !lok || !rok {
		return exprResult{err: newRuntimeError(line, "operands must be numbers, got %s and %s", value.TypeName(left), value.TypeName(right))}
	}
	return exprResult{value: op(float64(l), float64(r))}
}

func numericCompare(line int, left, right value.Value, cmp func(a, b float64) bool) exprResult {
	l, lok := left.(value.Number)
	r, rok := right.(value.Number)
	if !lok || !rok {
		return exprResult{err: newRuntimeError(line, "operands must be numbers, got %s and %s", value.TypeName(left), value.TypeName(right))}
	}
	return exprResult{value: value.Bool(cmp(float64(l), float64(r)))}
}

// evalLogical implements short-circuit evaluation that returns coerced
// booleans, not the operand values themselves (spec.md §4.5.1 and §9
// Open Question (a): "this language's operator model" deliberately
// diverges from Lox's operand-passthrough and/or).
func (in *Interpreter) evalLogical(e *ast.Binary) ast.Value {
	left, err := in.eval(e.Left)
	if err != nil {
		return exprResult{err: err}
	}
	if e.Op.Kind == token.And {
		if !value.Truthy(left) {
			return exprResult{value: value.Bool(false)}
		}
		right, err := in.eval(e.Right)
		if err != nil {
			return exprResult{err: err}
		}
		return exprResult{value: value.Bool(value.Truthy(right))}
	}
	// Or.
	if value.Truthy(left) {
		return exprResult{value: value.Bool(true)}
	}
	right, err := in.eval(e.Right)
	if err != nil {
		return exprResult{err: err}
	}
	return exprResult{value: value.Bool(value.Truthy(right))}
}

func (in *Interpreter) VisitTernary(e *ast.Ternary) ast.Value {
	cond, err := in.eval(e.Cond)
	if err != nil {
		return exprResult{err: err}
	}
	if value.Truthy(cond) {
		v, err := in.eval(e.Then)
		return exprResult{value: v, err: err}
	}
	v, err := in.eval(e.Else)
	return exprResult{value: v, err: err}
}

// VisitVariable implements spec.md §4.5.3: consult locals for a scope
// distance; otherwise it's a global lookup.
func (in *Interpreter) VisitVariable(e *ast.Variable) ast.Value {
	v, err := in.lookupVariable(e.Name, e.ID())
	return exprResult{value: v, err: err}
}

func (in *Interpreter) lookupVariable(name token.Token, exprID int) (value.Value, error) {
	if depth, ok := in.locals[exprID]; ok {
		return in.env.LookupAt(depth, name.Lexeme), nil
	}
	v, err := in.Globals.Lookup(name.Lexeme)
	if err != nil {
		return nil, newRuntimeError(name.Line, "undefined variable '%s'", name.Lexeme)
	}
	return v, nil
}

// VisitAssign implements spec.md §4.5.3: resolved locals assign at
// their recorded depth; otherwise it's a global assignment. Assignment
// yields the assigned value.
func (in *Interpreter) VisitAssign(e *ast.Assign) ast.Value {
	v, err := in.eval(e.Value)
	if err != nil {
		return exprResult{err: err}
	}
	if depth, ok := in.locals[e.ID()]; ok {
		in.env.AssignAt(depth, e.Name.Lexeme, v)
		return exprResult{value: v}
	}
	if err := in.Globals.Assign(e.Name.Lexeme, v); err != nil {
		return exprResult{err: newRuntimeError(e.Name.Line, "undefined variable '%s'", e.Name.Lexeme)}
	}
	return exprResult{value: v}
}

// VisitCall implements spec.md §4.5.3: evaluate callee and arguments
// left to right, check arity, and invoke.
func (in *Interpreter) VisitCall(e *ast.Call) ast.Value {
	callee, err := in.eval(e.Callee)
	if err != nil {
		return exprResult{err: err}
	}

	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		v, err := in.eval(a)
		if err != nil {
			return exprResult{err: err}
		}
		args[i] = v
	}

	callable, ok := callee.(value.Callable)
	if !ok {
		return exprResult{err: newRuntimeError(e.Paren.Line, "can only call functions and classes, got %s", value.TypeName(callee))}
	}
	if len(args) != callable.Arity() {
		return exprResult{err: newRuntimeError(e.Paren.Line, "expected %d arguments but got %d", callable.Arity(), len(args))}
	}

	v, err := callable.Call(in, args)
	if err != nil {
		return exprResult{err: err}
	}
	return exprResult{value: v}
}

func (in *Interpreter) VisitLambda(e *ast.Lambda) ast.Value {
	return exprResult{value: value.NewLambda(e, in.env)}
}

// VisitGet implements spec.md §4.5.3: the object must be an instance;
// a matching field wins over a matching method, which is bound to the
// instance on the way out.
func (in *Interpreter) VisitGet(e *ast.Get) ast.Value {
	obj, err := in.eval(e.Object)
	if err != nil {
		return exprResult{err: err}
	}
	instance, ok := obj.(*value.Instance)
	if !ok {
		return exprResult{err: newRuntimeError(e.Name.Line, "only instances have properties, got %s", value.TypeName(obj))}
	}
	v, found := instance.Get(e.Name.Lexeme)
	if !found {
		return exprResult{err: newRuntimeError(e.Name.Line, "undefined property '%s'", e.Name.Lexeme)}
	}
	return exprResult{value: v}
}

func (in *Interpreter) VisitSet(e *ast.Set) ast.Value {
	obj, err := in.eval(e.Object)
	if err != nil {
		return exprResult{err: err}
	}
	instance, ok := obj.(*value.Instance)
	if !ok {
		return exprResult{err: newRuntimeError(e.Name.Line, "only instances have fields, got %s", value.TypeName(obj))}
	}
	v, err := in.eval(e.Value)
	if err != nil {
		return exprResult{err: err}
	}
	instance.Set(e.Name.Lexeme, v)
	return exprResult{value: v}
}

func (in *Interpreter) VisitThis(e *ast.ThisExpr) ast.Value {
	v, err := in.lookupVariable(e.Keyword, e.ID())
	return exprResult{value: v, err: err}
}

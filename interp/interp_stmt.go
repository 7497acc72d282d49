/*
File   : rei/interp/interp_stmt.go
ast.StmtVisitor implementation - statement execution rules, one method
per node kind, matching spec.md §4.5.2.
*/
package interp

import (
	"fmt"

	"github.com/rei-lang/rei/ast"
	"github.com/rei-lang/rei/value"
)

func (in *Interpreter) VisitExpressionStmt(s *ast.ExpressionStmt) ast.Value {
	_, err := in.eval(s.Expression)
	if err != nil {
		return errResult(err)
	}
	return ok()
}

func (in *Interpreter) VisitPrintStmt(s *ast.PrintStmt) ast.Value {
	v, err := in.eval(s.Expression)
	if err != nil {
		return errResult(err)
	}
	fmt.Fprintln(in.Out, v.Display())
	return ok()
}

func (in *Interpreter) VisitVarStmt(s *ast.VarStmt) ast.Value {
	var v value.Value = value.Nil{}
	if s.Initializer != nil {
		var err error
		v, err = in.eval(s.Initializer)
		if err != nil {
			return errResult(err)
		}
	}
	in.env.Define(s.Name.Lexeme, v)
	return ok()
}

func (in *Interpreter) VisitBlockStmt(s *ast.BlockStmt) ast.Value {
	signal, err := in.executeBlock(s.Statements, value.NewEnvironment(in.env))
	if err != nil {
		return errResult(err)
	}
	return sigResult(signal)
}

func (in *Interpreter) VisitIfStmt(s *ast.IfStmt) ast.Value {
	cond, err := in.eval(s.Cond)
	if err != nil {
		return errResult(err)
	}
	if value.Truthy(cond) {
		signal, err := in.exec(s.Then)
		if err != nil {
			return errResult(err)
		}
		return sigResult(signal)
	}
	if s.Else != nil {
		signal, err := in.exec(s.Else)
		if err != nil {
			return errResult(err)
		}
		return sigResult(signal)
	}
	return ok()
}

func (in *Interpreter) VisitWhileStmt(s *ast.WhileStmt) ast.Value {
	for {
		cond, err := in.eval(s.Cond)
		if err != nil {
			return errResult(err)
		}
		if !value.Truthy(cond) {
			return ok()
		}
		signal, err := in.exec(s.Body)
		if err != nil {
			return errResult(err)
		}
		if signal != nil {
			switch signal.Kind {
			case BreakSignal:
				return ok()
			case ContinueSignal:
				continue
			default:
				return sigResult(signal) // Return escapes the loop
			}
		}
	}
}

// VisitForStmt implements spec.md §4.5.2 "ForLoop": the initializer
// runs once, the condition is re-tested each iteration, and - critically
// - `continue` runs the increment before re-testing the condition
// rather than skipping straight back to the condition check.
func (in *Interpreter) VisitForStmt(s *ast.ForStmt) ast.Value {
	if s.Init != nil {
		signal, err := in.exec(s.Init)
		if err != nil {
			return errResult(err)
		}
		if signal != nil {
			return sigResult(signal)
		}
	}

	for {
		cond, err := in.eval(s.Cond)
		if err != nil {
			return errResult(err)
		}
		if !value.Truthy(cond) {
			return ok()
		}

		signal, err := in.exec(s.Body)
		if err != nil {
			return errResult(err)
		}
		if signal != nil {
			switch signal.Kind {
			case BreakSignal:
				return ok()
			case ContinueSignal:
				// fall through to run the increment
			default:
				return sigResult(signal) // Return escapes the loop
			}
		}

		if s.Incr != nil {
			if _, err := in.eval(s.Incr); err != nil {
				return errResult(err)
			}
		}
	}
}

func (in *Interpreter) VisitLoopControlStmt(s *ast.LoopControlStmt) ast.Value {
	kind := BreakSignal
	if s.Kind == ast.ContinueControl {
		kind = ContinueSignal
	}
	return sigResult(&Signal{Kind: kind, Token: s.Token})
}

// VisitFunctionStmt constructs a callable whose closure is the current
// environment and binds it under its declared name (spec.md §4.5.2
// "Function").
func (in *Interpreter) VisitFunctionStmt(s *ast.FunctionStmt) ast.Value {
	fn := value.NewFunction(s, in.env)
	in.env.Define(s.Name.Lexeme, fn)
	return ok()
}

func (in *Interpreter) VisitReturnStmt(s *ast.ReturnStmt) ast.Value {
	var v value.Value = value.Nil{}
	if s.Value != nil {
		var err error
		v, err = in.eval(s.Value)
		if err != nil {
			return errResult(err)
		}
	}
	return sigResult(&Signal{Kind: ReturnSignal, Token: s.Keyword, Value: v})
}

// VisitClassStmt constructs a class object, wrapping each method as a
// callable whose closure is the current environment, and binds the
// class under its name (spec.md §4.5.2 "Klass").
func (in *Interpreter) VisitClassStmt(s *ast.ClassStmt) ast.Value {
	in.env.Define(s.Name.Lexeme, value.Nil{}) // predeclare for recursive self-reference

	methods := make(map[string]value.Function, len(s.Methods))
	for _, m := range s.Methods {
		methods[m.Name.Lexeme] = value.NewFunction(m, in.env)
	}

	class := value.NewClass(s.Name.Lexeme, methods)
	if err := in.env.Assign(s.Name.Lexeme, class); err != nil {
		return errResult(err)
	}
	return ok()
}

/*
File   : rei/interp/signal.go
Non-local control flow (break/continue/return) is threaded through
statement execution as an explicit result value rather than a Go
panic/recover pair - the same choice the teacher makes with its own
ReturnValue wrapper object and GetType() == BreakType/ContinueType
checks after every statement (eval/eval_controls.go, eval/eval_loops.go),
and the option spec.md §9 calls out by name.
*/
package interp

import (
	"github.com/rei-lang/rei/token"
	"github.com/rei-lang/rei/value"
)

// SignalKind distinguishes the three non-local transfers a statement
// can produce (spec.md §4.5.4).
type SignalKind int

const (
	// NoSignal means the statement completed normally.
	NoSignal SignalKind = iota
	BreakSignal
	ContinueSignal
	ReturnSignal
)

// Signal carries a non-local transfer up through nested statement
// execution until the nearest construct that can catch it (a loop for
// Break/Continue, a function call for Return).
type Signal struct {
	Kind  SignalKind
	Token token.Token
	Value value.Value // only meaningful for ReturnSignal
}

// stmtResult is what every StmtVisitor method actually returns,
// smuggled through ast.Stmt.Accept's `any`-typed Value return slot.
type stmtResult struct {
	signal *Signal
	err    error
}

func ok() stmtResult                  { return stmtResult{} }
func errResult(err error) stmtResult  { return stmtResult{err: err} }
func sigResult(s *Signal) stmtResult  { return stmtResult{signal: s} }

// exprResult is what every ExprVisitor method actually returns.
type exprResult struct {
	value value.Value
	err   error
}

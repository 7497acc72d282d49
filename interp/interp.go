/*
File   : rei/interp/interp.go
Package interp is the tree-walking evaluator: a visitor over statements
and expressions that consumes the resolver's `locals` side-table,
creates closures/classes/instances, and threads non-local control flow
through explicit Signal values (spec.md §4.5).

Grounded on the teacher's eval/evaluator.go (an Evaluator holding the
global scope, the current scope, and a Visit-per-node-type dispatch
driving statement/expression execution) generalized to rei's resolver-
aware lookup (lookup_at/assign_at replacing the teacher's pure dynamic
scope walk) and its six-kind value model.
*/
package interp

import (
	"fmt"
	"io"

	"github.com/rei-lang/rei/ast"
	"github.com/rei-lang/rei/diag"
	"github.com/rei-lang/rei/value"
)

// Interpreter walks a resolved program. Out is where `print` writes;
// it is an io.Writer so tests can capture output and the CLI/REPL can
// point it at stdout (spec.md §4.5, grounded on the teacher's own
// io.Writer-threaded CallbackFunc convention in objects/builtins.go).
type Interpreter struct {
	Globals *value.Environment
	env     *value.Environment
	locals  map[int]int
	sink    *diag.Sink
	Out     io.Writer
}

// New creates an Interpreter with an empty global scope; the caller
// registers the standard built-ins into Globals (builtins.Register)
// before Run. locals is the side-table produced by resolver.Resolve.
func New(locals map[int]int, sink *diag.Sink, out io.Writer) *Interpreter {
	globals := value.NewEnvironment(nil)
	return &Interpreter{
		Globals: globals,
		env:     globals,
		locals:  locals,
		sink:    sink,
		Out:     out,
	}
}

// Run executes a resolved program's top-level statements in the global
// environment. A runtime error unwinds the current statement and
// terminates evaluation (spec.md §7 "Inside the interpreter, runtime
// errors unwind the current statement execution and terminate program
// evaluation").
func (in *Interpreter) Run(statements []ast.Stmt) {
	for _, s := range statements {
		signal, err := in.exec(s)
		if err != nil {
			in.sink.Errorf(errLine(err), "%s", err)
			return
		}
		if signal != nil {
			// A Break/Continue/Return escaping every enclosing
			// construct at the top level: the resolver should already
			// have reported this statically, but the interpreter still
			// tolerates it at runtime rather than crashing (spec.md
			// §4.5.4).
			in.sink.Errorf(signal.Token.Line, "%s", uncaughtSignalMessage(signal))
			return
		}
	}
}

// SetLocals replaces the resolver side-table the interpreter consults.
// The REPL calls this before each line: every line is parsed and
// resolved independently, but a persisted interpreter keeps running
// against the same global environment (spec.md §9 Open Question (e)).
func (in *Interpreter) SetLocals(locals map[int]int) { in.locals = locals }

// SetSink replaces the diagnostic sink runtime errors are recorded to.
func (in *Interpreter) SetSink(sink *diag.Sink) { in.sink = sink }

// exec dispatches one statement through the visitor and unwraps its
// stmtResult.
func (in *Interpreter) exec(s ast.Stmt) (*Signal, error) {
	res := s.Accept(in).(stmtResult)
	return res.signal, res.err
}

// eval dispatches one expression through the visitor and unwraps its
// exprResult.
func (in *Interpreter) eval(e ast.Expr) (value.Value, error) {
	res := e.Accept(in).(exprResult)
	return res.value, res.err
}

// ExecuteFunctionBody satisfies value.Interpreter: it runs body as a
// block against env and reports any in-flight return value, matching
// spec.md §4.5.5 function-invocation steps 3-4.
func (in *Interpreter) ExecuteFunctionBody(body []ast.Stmt, env *value.Environment) (value.Value, error) {
	signal, err := in.executeBlock(body, env)
	if err != nil {
		return nil, err
	}
	if signal != nil && signal.Kind == ReturnSignal {
		return signal.Value, nil
	}
	// Falling off the end of the body without a return yields nil
	// (spec.md §4.5.5 step 4). A stray Break/Continue escaping a
	// function body is a runtime error (spec.md §4.5.4); the resolver
	// already flags this statically, so reaching it here only happens
	// if that guarantee was bypassed.
	if signal != nil {
		return nil, fmt.Errorf("line %d: %s", signal.Token.Line, uncaughtSignalMessage(signal))
	}
	return value.Nil{}, nil
}

// executeBlock runs statements with enclosing as the current
// environment (callers pass a freshly created child scope), restoring
// the previous environment on the way out even on non-local exit
// (spec.md §4.5.2 "Block").
func (in *Interpreter) executeBlock(statements []ast.Stmt, enclosing *value.Environment) (*Signal, error) {
	previous := in.env
	in.env = enclosing
	defer func() { in.env = previous }()

	for _, s := range statements {
		signal, err := in.exec(s)
		if err != nil {
			return nil, err
		}
		if signal != nil {
			return signal, nil
		}
	}
	return nil, nil
}

func uncaughtSignalMessage(s *Signal) string {
	switch s.Kind {
	case BreakSignal:
		return "'break' used outside of any enclosing loop"
	case ContinueSignal:
		return "'continue' used outside of any enclosing loop"
	case ReturnSignal:
		return "'return' used outside of any enclosing function"
	default:
		return "uncaught non-local control transfer"
	}
}

// runtimeError pairs a source line with a message so Run can surface it
// through the diagnostic sink with the right line number.
type runtimeError struct {
	line    int
	message string
}

func (e *runtimeError) Error() string { return e.message }

func newRuntimeError(line int, format string, args ...any) error {
	return &runtimeError{line: line, message: fmt.Sprintf(format, args...)}
}

// errLine extracts the source line from a runtime error for diagnostic
// reporting, defaulting to 0 (no line) for errors that didn't originate
// from newRuntimeError.
func errLine(err error) int {
	if re, ok := err.(*runtimeError); ok {
		return re.line
	}
	return 0
}

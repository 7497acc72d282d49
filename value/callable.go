/*
File   : rei/value/callable.go
Callable is the runtime representation of anything that can appear on
the left of a call expression: a declared function, a lambda, a class
(whose call constructs an instance), or a builtin (spec.md §3, §6).

Grounded on the teacher's function/function.go (a Function struct
pairing a declaration node with its closure Scope, implementing a
Callable-shaped Invoke method) and objects/builtins.go (CallbackFunc,
a Go-native function value with a fixed arity). rei generalizes both
into one Callable interface so the interpreter's VisitCall has a single
dispatch path regardless of what's being called.
*/
package value

import "github.com/rei-lang/rei/ast"

// Interpreter is the minimal surface a callable body needs from the
// tree-walking evaluator in order to run itself. Declaring the
// interface here, rather than importing the interp package, keeps the
// dependency direction one-way: interp imports value, never the
// reverse.
type Interpreter interface {
	// ExecuteFunctionBody runs body with env (already holding the
	// parameters) as its scope and reports any in-flight return value.
	// A body that runs off its end without a return statement yields
	// Nil{} with a nil error (spec.md §4.5.8: implicit nil return).
	ExecuteFunctionBody(body []ast.Stmt, env *Environment) (returned Value, err error)
}

// Callable is implemented by every value that can appear as the callee
// of a Call expression.
type Callable interface {
	Value
	Arity() int
	Name() string
	Call(interp Interpreter, args []Value) (Value, error)
}

func (Function) Type() Type { return CallableType }
func (Builtin) Type() Type  { return CallableType }
func (*Class) Type() Type   { return CallableType }

// Function is a user-declared `fun` statement or a class method, paired
// with the environment active at its declaration site - its closure
// (spec.md §3 Function).
type Function struct {
	Declaration *ast.FunctionStmt
	Closure     *Environment
	// IsMethod marks a Function bound to an instance via Bind; its
	// closure's innermost frame defines "this" (spec.md §4.5.6).
	IsMethod bool
}

// NewFunction wraps a parsed function declaration with the closure
// environment active when the `fun` statement executed.
func NewFunction(decl *ast.FunctionStmt, closure *Environment) Function {
	return Function{Declaration: decl, Closure: closure}
}

// Display renders as "<name> :: t -> t1", matching the original's
// Function::toString() (name_ + " :: t -> t1").
func (f Function) Display() string { return f.Declaration.Name.Lexeme + " :: t -> t1" }
func (f Function) Arity() int      { return len(f.Declaration.Params) }
func (f Function) Name() string    { return f.Declaration.Name.Lexeme }

// Call binds each parameter to its argument in a fresh scope nested
// inside the closure, then executes the body (spec.md §4.5.8).
func (f Function) Call(interp Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(f.Closure)
	for i, param := range f.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}
	return interp.ExecuteFunctionBody(f.Declaration.Body, env)
}

// Bind produces the method bound to instance: a new Function whose
// closure is a fresh scope, nested in the original closure, that binds
// "this" to instance (spec.md §4.5.6, grounded on the same pattern the
// teacher uses to bind `self` in bound methods).
func (f Function) Bind(instance *Instance) Function {
	env := NewEnvironment(f.Closure)
	env.Define("this", instance)
	bound := f
	bound.Closure = env
	bound.IsMethod = true
	return bound
}

// Lambda is an anonymous function literal; it behaves exactly like
// Function except it has no name of its own (spec.md §3 Lambda).
type Lambda struct {
	Declaration *ast.Lambda
	Closure     *Environment
}

func NewLambda(decl *ast.Lambda, closure *Environment) Lambda {
	return Lambda{Declaration: decl, Closure: closure}
}

func (l Lambda) Type() Type { return CallableType }

// Display follows the same "<name> :: t -> t1" convention as Function;
// the original models a lambda as a Function named "Lambda".
func (l Lambda) Display() string { return "Lambda :: t -> t1" }
func (l Lambda) Arity() int      { return len(l.Declaration.Params) }
func (l Lambda) Name() string    { return "lambda" }

func (l Lambda) Call(interp Interpreter, args []Value) (Value, error) {
	env := NewEnvironment(l.Closure)
	for i, param := range l.Declaration.Params {
		env.Define(param.Lexeme, args[i])
	}
	return interp.ExecuteFunctionBody(l.Declaration.Body, env)
}

// BuiltinFunc is the Go-native implementation behind a host function
// like num/rand/input (spec.md §6).
type BuiltinFunc func(args []Value) (Value, error)

// Builtin wraps a host-implemented function with a fixed name and
// arity, grounded on the teacher's objects/builtins.go CallbackFunc
// wrapper.
type Builtin struct {
	FuncName string
	Arg      int
	Fn       BuiltinFunc
}

func NewBuiltin(name string, arity int, fn BuiltinFunc) Builtin {
	return Builtin{FuncName: name, Arg: arity, Fn: fn}
}

func (b Builtin) Display() string { return "<native fn " + b.FuncName + ">" }
func (b Builtin) Arity() int      { return b.Arg }
func (b Builtin) Name() string    { return b.FuncName }

func (b Builtin) Call(_ Interpreter, args []Value) (Value, error) {
	return b.Fn(args)
}

// Class is a callable whose invocation constructs an Instance. rei
// classes have a fixed method set, no inheritance, and no user-defined
// initializer (spec.md §9 Open Question (c)): calling a class always
// takes zero arguments and returns a fresh, empty-fielded Instance.
type Class struct {
	ClassName string
	Methods   map[string]Function
}

func NewClass(name string, methods map[string]Function) *Class {
	return &Class{ClassName: name, Methods: methods}
}

// Display renders as just the class's own name, matching the original's
// Klass::toString() (returns name_ verbatim).
func (c *Class) Display() string { return c.ClassName }
func (c *Class) Arity() int      { return 0 }
func (c *Class) Name() string    { return c.ClassName }

func (c *Class) Call(_ Interpreter, _ []Value) (Value, error) {
	return NewInstance(c), nil
}

// FindMethod looks up a method declared directly on c. There is no
// superclass chain to continue the search into (spec.md §9 Open
// Question (c)).
func (c *Class) FindMethod(name string) (Function, bool) {
	m, ok := c.Methods[name]
	return m, ok
}

// Instance is one object created by calling a Class. Fields are set
// lazily by Set; FindMethod backs Get's fall-through (spec.md §3
// Instance, §4.5.6).
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]Value)}
}

func (i *Instance) Type() Type      { return InstanceType }
// Display renders as "<ClassName> instance", matching the original's
// Instance::toString() (klass_->toString() + " instance").
func (i *Instance) Display() string { return i.Class.ClassName + " instance" }

// Get reads a field first, then a bound method; returns ok=false if
// name is neither (spec.md §4.5.6: "property access checks the
// instance's fields, then its class's methods").
func (i *Instance) Get(name string) (Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m, ok := i.Class.FindMethod(name); ok {
		return m.Bind(i), true
	}
	return nil, false
}

// Set always writes (or creates) a field; rei has no field declarations
// to validate against (spec.md §4.5.6).
func (i *Instance) Set(name string, v Value) {
	i.Fields[name] = v
}

package interp

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rei-lang/rei/builtins"
	"github.com/rei-lang/rei/diag"
	"github.com/rei-lang/rei/lexer"
	"github.com/rei-lang/rei/parser"
	"github.com/rei-lang/rei/resolver"
)

// runProgram lexes, parses, resolves, and interprets src end to end,
// returning everything `print` wrote plus the combined diagnostic sink.
// Each phase short-circuits the next on error, mirroring spec.md §7's
// "Fatal marker suppressing later phases" rule.
func runProgram(t *testing.T, src string) (string, *diag.Sink) {
	t.Helper()
	sink := diag.NewSink("program")

	toks := lexer.New(src, sink).ScanTokens()
	if sink.HasErrors() {
		return "", sink
	}

	stmts := parser.New(toks, sink).Parse()
	if sink.HasErrors() {
		return "", sink
	}

	r := resolver.New(sink)
	r.Resolve(stmts)
	if sink.HasErrors() {
		return "", sink
	}

	var out bytes.Buffer
	in := New(r.Locals, sink, &out)
	builtins.Register(in.Globals, strings.NewReader(""))
	in.Run(stmts)

	return out.String(), sink
}

func TestRun_ArithmeticPrecedenceAndPrint(t *testing.T) {
	out, sink := runProgram(t, `print 1 + 2 * 3;`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "7\n", out)
}

func TestRun_NumberDisplayHasNoTrailingZeros(t *testing.T) {
	out, sink := runProgram(t, `print 10 / 2; print 10 / 4;`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "5\n2.5\n", out)
}

func TestRun_StringConcatenationViaPlus(t *testing.T) {
	out, sink := runProgram(t, `print "count: " + 3;`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "count: 3\n", out)
}

func TestRun_DivisionByZeroIsRuntimeError(t *testing.T) {
	_, sink := runProgram(t, `print 1 / 0;`)
	require.True(t, sink.HasErrors())
}

func TestRun_VariableAssignmentAndShadowing(t *testing.T) {
	out, sink := runProgram(t, `
var a = 1;
{
	var a = 2;
	print a;
}
print a;
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "2\n1\n", out)
}

func TestRun_WhileLoopWithBreakAndContinue(t *testing.T) {
	out, sink := runProgram(t, `
var i = 0;
while (i < 10) {
	i = i + 1;
	if (i == 3) continue;
	if (i == 5) break;
	print i;
}
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "1\n2\n4\n", out)
}

func TestRun_ForLoopContinueRunsIncrementFirst(t *testing.T) {
	out, sink := runProgram(t, `
for (var i = 0; i < 5; i = i + 1) {
	if (i == 2) continue;
	print i;
}
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "0\n1\n3\n4\n", out)
}

func TestRun_FunctionClosureCapturesDeclarationEnvironment(t *testing.T) {
	out, sink := runProgram(t, `
fun makeCounter() {
	var count = 0;
	fun increment() {
		count = count + 1;
		return count;
	}
	return increment;
}
var counter = makeCounter();
print counter();
print counter();
print counter();
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "1\n2\n3\n", out)
}

func TestRun_RecursiveFunction(t *testing.T) {
	out, sink := runProgram(t, `
fun fib(n) {
	if (n < 2) return n;
	return fib(n - 1) + fib(n - 2);
}
print fib(10);
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "55\n", out)
}

func TestRun_ClassInstanceFieldsAndMethods(t *testing.T) {
	out, sink := runProgram(t, `
class Counter {
	incr() {
		this.n = this.n + 1;
		return this.n;
	}
}
var c = Counter();
c.n = 0;
print c.incr();
print c.incr();
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "1\n2\n", out)
}

func TestRun_UndefinedPropertyIsRuntimeError(t *testing.T) {
	_, sink := runProgram(t, `
class Empty {}
var e = Empty();
print e.missing;
`)
	require.True(t, sink.HasErrors())
}

func TestRun_ArityMismatchIsRuntimeError(t *testing.T) {
	_, sink := runProgram(t, `
fun f(a, b) { return a + b; }
print f(1);
`)
	require.True(t, sink.HasErrors())
}

func TestRun_TernaryExpression(t *testing.T) {
	out, sink := runProgram(t, `print true ? "yes" : "no";`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "yes\n", out)
}

func TestRun_LogicalOperatorsReturnBooleansNotOperands(t *testing.T) {
	out, sink := runProgram(t, `
print 1 and 2;
print nil or "fallback";
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "true\ntrue\n", out)
}

func TestRun_AndShortCircuitsOnFalsyLeft(t *testing.T) {
	out, sink := runProgram(t, `
fun boom() {
	print "should not run";
	return true;
}
print false and boom();
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "false\n", out)
}

func TestRun_LambdaAsValue(t *testing.T) {
	out, sink := runProgram(t, `
var square = fun (x) { return x * x; };
print square(5);
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "25\n", out)
}

func TestRun_BuiltinNumAndRand(t *testing.T) {
	out, sink := runProgram(t, `
print num("42") + 1;
var r = rand(1, 1);
print r;
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "43\n1\n", out)
}

func TestRun_TruthinessOfZeroAndEmptyString(t *testing.T) {
	out, sink := runProgram(t, `
if (0) print "zero is truthy"; else print "zero is falsy";
if ("") print "empty is truthy"; else print "empty is falsy";
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "zero is truthy\nempty is truthy\n", out)
}

func TestRun_FunctionDisplaysAsNameArrowNotation(t *testing.T) {
	out, sink := runProgram(t, `
fun mk() { return 1; }
print mk;
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "mk :: t -> t1\n", out)
}

func TestRun_LambdaDisplaysAsLambdaArrowNotation(t *testing.T) {
	out, sink := runProgram(t, `
var square = fun (x) { return x * x; };
print square;
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "Lambda :: t -> t1\n", out)
}

func TestRun_ClassDisplaysAsBareName(t *testing.T) {
	out, sink := runProgram(t, `
class C {}
print C;
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "C\n", out)
}

func TestRun_InstanceDisplaysAsClassNameThenInstance(t *testing.T) {
	out, sink := runProgram(t, `
class C {}
print C();
`)
	require.False(t, sink.HasErrors())
	require.Equal(t, "C instance\n", out)
}

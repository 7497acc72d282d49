/*
File   : rei/repl/repl.go
Package repl implements rei's Read-Eval-Print Loop: colored banner,
readline-backed prompt with history, sentinel `q!` to quit, one line
run through the full lex/parse/resolve/interpret pipeline per Enter
(spec.md §6 "CLI").

Grounded on the teacher's own repl/repl.go: a Repl{Banner, Version,
Author, Line, License, Prompt} struct, readline.New for line editing,
fatih/color for banner/diagnostic coloring, and a per-line execution
step so one bad line never kills the session. rei replaces the
teacher's exit command `.exit` with the sentinel the spec names (`q!`)
and its single-shot per-line evaluator with a pipeline that optionally
persists globals across lines (replcfg.Config.PersistGlobals, spec.md
§9 Open Question (e)).
*/
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/rei-lang/rei/builtins"
	"github.com/rei-lang/rei/diag"
	"github.com/rei-lang/rei/interp"
	"github.com/rei-lang/rei/lexer"
	"github.com/rei-lang/rei/parser"
	"github.com/rei-lang/rei/replcfg"
	"github.com/rei-lang/rei/resolver"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

const exitSentinel = "q!"

// Repl is one interactive session's configuration and banner text.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Cfg     replcfg.Config
}

// NewRepl creates a Repl ready to Start.
func NewRepl(banner, version, author, line, license string, cfg replcfg.Config) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Cfg: cfg}
}

// PrintBannerInfo writes the startup banner, matching the teacher's own
// banner layout and section coloring.
func (r *Repl) PrintBannerInfo(writer io.Writer) {
	if !r.Cfg.Color {
		color.NoColor = true
	}
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Welcome to rei!")
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "Type '%s' to quit\n", exitSentinel)
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the REPL loop against writer until the user quits (spec.md
// §6: "With no argument, start a REPL: print a prompt, read a line,
// skip if empty, exit on sentinel 'q!', otherwise run the line as a
// program and loop").
func (r *Repl) Start(writer io.Writer) {
	r.PrintBannerInfo(writer)

	rl, err := readline.New(r.Cfg.Prompt)
	if err != nil {
		panic(err)
	}
	defer rl.Close()

	// In persist-globals mode (the default), one interpreter's global
	// environment lives across every line so a `var` on one line stays
	// visible on the next; otherwise each line gets a fresh one, the
	// teacher's own original per-line behavior.
	var persisted *interp.Interpreter
	if r.Cfg.PersistGlobals {
		persisted = r.newInterpreter(writer)
	}

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good Bye!\n"))
			return
		}

		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if line == exitSentinel {
			writer.Write([]byte("Good Bye!\n"))
			return
		}
		rl.SaveHistory(line)

		current := persisted
		if current == nil {
			current = r.newInterpreter(writer)
		}
		r.runLine(writer, line, current)
	}
}

func (r *Repl) newInterpreter(writer io.Writer) *interp.Interpreter {
	in := interp.New(nil, diag.NewSink("runtime"), writer)
	builtins.Register(in.Globals, strings.NewReader(""))
	return in
}

// runLine drives one line through lex -> parse -> resolve -> interpret,
// printing diagnostics from whichever phase stops first (spec.md §7
// "Propagation": a failing phase's diagnostics are reported and later
// phases are skipped).
func (r *Repl) runLine(writer io.Writer, line string, in *interp.Interpreter) {
	sink := diag.NewSink("repl")

	toks := lexer.New(line, sink).ScanTokens()
	if sink.HasErrors() {
		sink.Fprint(writer)
		return
	}

	stmts := parser.New(toks, sink).Parse()
	if sink.HasErrors() {
		sink.Fprint(writer)
		return
	}

	res := resolver.New(sink)
	res.Resolve(stmts)
	if sink.HasErrors() {
		sink.Fprint(writer)
		return
	}

	in.SetLocals(res.Locals)
	in.SetSink(sink)
	in.Run(stmts)
	if len(sink.Diagnostics()) > 0 {
		sink.Fprint(writer)
	}
}

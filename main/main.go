/*
File   : rei/main/main.go
Command rei is the CLI entry point: zero or one positional argument
selects REPL or file mode (spec.md §6 "CLI").

Grounded on the teacher's own main/main.go (its file-vs-REPL argument
branch and os.Exit convention): read zero or one path argument, dispatch
to repl.Start or a single file run, and exit 0 on success / 1 on a
host-level failure. Compile-time and runtime program errors are
reported via diagnostics and do not affect the exit code (spec.md §6).
*/
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rei-lang/rei/builtins"
	"github.com/rei-lang/rei/diag"
	"github.com/rei-lang/rei/interp"
	"github.com/rei-lang/rei/lexer"
	"github.com/rei-lang/rei/parser"
	"github.com/rei-lang/rei/repl"
	"github.com/rei-lang/rei/replcfg"
	"github.com/rei-lang/rei/resolver"
	"github.com/rei-lang/rei/source"
)

const (
	banner = `   ___ ___ ___
  | _ \ __|_ _|
  |   / _| | |
  |_|_\___|___|`
	version = "0.1.0"
	author  = "rei contributors"
	line    = "------------------------------------------------------------"
	license = "MIT"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// run implements the CLI contract; factored out of main so it can be
// exercised by tests without calling os.Exit. A leading `--config <path>`
// pair selects the REPL config file in place of the default
// ~/.reirc.yaml (spec.md §6, ambient config per SPEC_FULL.md §8); it is
// only meaningful in REPL mode and is stripped before the positional
// argument count is checked.
func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	configPath := ""
	if len(args) >= 2 && args[0] == "--config" {
		configPath = args[1]
		args = args[2:]
	}

	switch len(args) {
	case 0:
		startRepl(stdout, configPath)
		return 0
	case 1:
		return runFile(args[0], stdin, stdout, stderr)
	default:
		fmt.Fprintln(stderr, "usage: rei [--config <path>] [script]")
		return 1
	}
}

func startRepl(stdout io.Writer, configPath string) {
	var cfg replcfg.Config
	if configPath != "" {
		var err error
		if cfg, err = replcfg.Load(configPath); err != nil {
			cfg = replcfg.Default()
		}
	} else {
		cfg = replcfg.LoadDefaultPath()
	}
	r := repl.NewRepl(banner, version, author, line, license, cfg)
	r.Start(stdout)
}

// runFile runs one file to completion (spec.md §6 "With one argument,
// treat it as a file path, read its entire contents, and run"). Only a
// failure to open the file is a host-level error (exit 1); every
// lex/parse/resolve/runtime diagnostic is reported but still exits 0.
func runFile(path string, stdin io.Reader, stdout, stderr io.Writer) int {
	src, err := source.ReadFile(path)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	sink := diag.NewSink("rei")
	defer sink.Fprint(stderr)

	toks := lexer.New(src, sink).ScanTokens()
	if sink.HasErrors() {
		return 0
	}

	stmts := parser.New(toks, sink).Parse()
	if sink.HasErrors() {
		return 0
	}

	res := resolver.New(sink)
	res.Resolve(stmts)
	if sink.HasErrors() {
		return 0
	}

	in := interp.New(res.Locals, sink, stdout)
	builtins.Register(in.Globals, stdin)
	in.Run(stmts)
	return 0
}

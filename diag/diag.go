/*
File   : rei/diag/diag.go
Package diag is the shared diagnostic sink used by the lexer, parser,
resolver, and interpreter. It is deliberately independent of any one
phase: each phase records Diagnostic values to a shared Sink, and the
driver (package main) inspects the sink between phases to decide whether
to continue: a phase has failed once it recorded at least one Error,
which HasErrors reports. No Fatal record is written automatically.

Grounded on krotik-ecal's util/logging.go leveled logger and the teacher's
own accumulate-then-report style (Parser.Errors []string).
*/
package diag

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

// Level is the severity of a Diagnostic.
type Level int

const (
	Debug Level = iota
	Info
	Warning
	Error
	Fatal
)

// String renders a Level's name, used in the lines Sink.Fprint writes
// (the color table there is keyed by the Level itself).
func (l Level) String() string {
	switch l {
	case Debug:
		return "debug"
	case Info:
		return "info"
	case Warning:
		return "warning"
	case Error:
		return "error"
	case Fatal:
		return "fatal"
	default:
		return "unknown"
	}
}

// Diagnostic is a single record: a level, an optional source line (0 means
// "no line", e.g. a host-level diagnostic), and a message.
type Diagnostic struct {
	Level   Level
	Line    int // 0 if not applicable
	Phase   string
	Message string
}

// Sink accumulates diagnostics for one phase (or for the whole run, if the
// caller chooses not to reset between phases). It is not safe for
// concurrent use - the interpreter is single-threaded by design
// (spec.md §5).
type Sink struct {
	Phase       string
	diagnostics []Diagnostic
}

// NewSink creates a Sink labelled with the name of the phase that will
// report into it (e.g. "lexer", "parser", "resolver", "runtime").
func NewSink(phase string) *Sink {
	return &Sink{Phase: phase}
}

// Record appends a Diagnostic at the given level and line.
func (s *Sink) Record(level Level, line int, format string, args ...any) {
	s.diagnostics = append(s.diagnostics, Diagnostic{
		Level:   level,
		Line:    line,
		Phase:   s.Phase,
		Message: fmt.Sprintf(format, args...),
	})
}

func (s *Sink) Debugf(line int, format string, args ...any)   { s.Record(Debug, line, format, args...) }
func (s *Sink) Infof(line int, format string, args ...any)    { s.Record(Info, line, format, args...) }
func (s *Sink) Warnf(line int, format string, args ...any)    { s.Record(Warning, line, format, args...) }
func (s *Sink) Errorf(line int, format string, args ...any)   { s.Record(Error, line, format, args...) }

// Diagnostics returns every record collected so far, in order.
func (s *Sink) Diagnostics() []Diagnostic { return s.diagnostics }

// HasErrors reports whether any Error-level (or worse) diagnostic was
// recorded - the signal the driver uses to decide a phase failed.
func (s *Sink) HasErrors() bool {
	for _, d := range s.diagnostics {
		if d.Level >= Error {
			return true
		}
	}
	return false
}

// Counts returns the number of warnings and errors recorded, for the
// terminal summary spec.md §6 requires ("A terminal summary prints totals
// for warnings and errors").
func (s *Sink) Counts() (warnings, errors int) {
	for _, d := range s.diagnostics {
		switch d.Level {
		case Warning:
			warnings++
		case Error, Fatal:
			errors++
		}
	}
	return
}

// Reset clears accumulated diagnostics, used by the REPL between lines.
func (s *Sink) Reset() { s.diagnostics = nil }

var levelColor = map[Level]*color.Color{
	Debug:   color.New(color.FgHiBlack),
	Info:    color.New(color.FgCyan),
	Warning: color.New(color.FgYellow),
	Error:   color.New(color.FgRed),
	Fatal:   color.New(color.FgRed, color.Bold),
}

// Fprint writes every diagnostic to w, colorized per level, followed by a
// summary line with the warning/error totals.
func (s *Sink) Fprint(w io.Writer) {
	for _, d := range s.diagnostics {
		c := levelColor[d.Level]
		if d.Line > 0 {
			c.Fprintf(w, "[line %d] %s: %s\n", d.Line, d.Level, d.Message)
		} else {
			c.Fprintf(w, "%s: %s\n", d.Level, d.Message)
		}
	}
	warnings, errors := s.Counts()
	if warnings > 0 || errors > 0 {
		fmt.Fprintf(w, "%d warning(s), %d error(s)\n", warnings, errors)
	}
}

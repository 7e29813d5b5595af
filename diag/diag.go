// Package diag collects and prints the diagnostics produced while running a
// program: compile-time errors from the scanner, parser and resolver, and
// runtime errors from the evaluator.
package diag

import (
	"errors"
	"fmt"
	"io"

	"github.com/havrydotdev/treelox/token"
)

// Exit codes reported by ExitCode.
const (
	ExitOK      = 0
	ExitCompile = 65
	ExitRuntime = 70
)

// Error is a compile-time problem tied to a source line.
type Error struct {
	Line    int
	Where   string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[line %d] Error%s: %s", e.Line, e.Where, e.Message)
}

// AtLine builds an error that carries no token context.
func AtLine(line int, message string) *Error {
	return &Error{Line: line, Message: message}
}

// AtToken builds an error located at tok.
func AtToken(tok token.Token, message string) *Error {
	where := fmt.Sprintf(" at '%s'", tok.Lexeme)
	if tok.Kind == token.Eof {
		where = " at end"
	}

	return &Error{Line: tok.Line, Where: where, Message: message}
}

// Located is implemented by runtime errors that know the source line
// they were raised at.
type Located interface {
	error
	Line() int
}

const (
	colorRed   = "\x1b[31m"
	colorReset = "\x1b[0m"
)

type Reporter struct {
	w     io.Writer
	color bool

	hadError        bool
	hadRuntimeError bool
}

func New(w io.Writer) *Reporter {
	return &Reporter{w: w}
}

// Colorize turns ANSI coloring of printed diagnostics on or off.
func (r *Reporter) Colorize(on bool) {
	r.color = on
}

// Report prints a compile-time error.
func (r *Reporter) Report(err error) {
	r.hadError = true
	r.print(err.Error())
}

func (r *Reporter) ReportAll(errs []error) {
	for _, err := range errs {
		r.Report(err)
	}
}

// Runtime prints an error raised while executing, followed by the line it
// came from when known.
func (r *Reporter) Runtime(err error) {
	r.hadRuntimeError = true

	var located Located
	if errors.As(err, &located) {
		r.print(fmt.Sprintf("%s\n[line %d]", located.Error(), located.Line()))
		return
	}

	r.print(err.Error())
}

func (r *Reporter) print(msg string) {
	if r.color {
		msg = colorRed + msg + colorReset
	}

	fmt.Fprintln(r.w, msg)
}

func (r *Reporter) HadError() bool {
	return r.hadError
}

func (r *Reporter) HadRuntimeError() bool {
	return r.hadRuntimeError
}

// Reset forgets previous errors so an interactive session can continue.
func (r *Reporter) Reset() {
	r.hadError = false
	r.hadRuntimeError = false
}

func (r *Reporter) ExitCode() int {
	switch {
	case r.hadError:
		return ExitCompile
	case r.hadRuntimeError:
		return ExitRuntime
	default:
		return ExitOK
	}
}

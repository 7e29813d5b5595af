package main

import (
	"fmt"
	"io"

	"github.com/havrydotdev/treelox/ast"
	"github.com/havrydotdev/treelox/config"
	"github.com/havrydotdev/treelox/diag"
	eval "github.com/havrydotdev/treelox/evaluator"
	"github.com/havrydotdev/treelox/parser"
	"github.com/havrydotdev/treelox/printer"
	"github.com/havrydotdev/treelox/resolver"
	"github.com/havrydotdev/treelox/scanner"
	"github.com/havrydotdev/treelox/token"
)

// session owns the state shared by every piece of source it runs: the
// diagnostics and, for the REPL, the global frame.
type session struct {
	out      io.Writer
	reporter *diag.Reporter
	eval     *eval.Evaluator
}

func newSession(stdout, stderr io.Writer, cfg *config.Config) *session {
	reporter := diag.New(stderr)
	reporter.Colorize(cfg.Color)

	return &session{
		out:      stdout,
		reporter: reporter,
		eval:     eval.New(stdout, eval.WithMaxDepth(cfg.MaxDepth)),
	}
}

// exec runs src in the given mode and returns the process exit code.
func (s *session) exec(mode, src string) (int, error) {
	switch mode {
	case "tokenize":
		s.tokenize(src)
	case "parse":
		s.parse(src)
	case "evaluate":
		s.evaluate(src)
	case "run":
		s.run(src)
	default:
		return 0, fmt.Errorf("unknown command %q", mode)
	}

	return s.reporter.ExitCode(), nil
}

func (s *session) scan(src string) []token.Token {
	tokens, errs := scanner.New(src).Scan()
	s.reporter.ReportAll(errs)

	return tokens
}

func (s *session) tokenize(src string) {
	for _, tok := range s.scan(src) {
		fmt.Fprintln(s.out, tok)
	}
}

// parse prints the tree of src: a single expression when that is all src
// holds, otherwise every statement.
func (s *session) parse(src string) {
	tokens := s.scan(src)
	if s.reporter.HadError() {
		return
	}

	expr, errs := parser.New(tokens, printer.Algebra{}).ParseExpression()
	if len(errs) == 0 {
		fmt.Fprintln(s.out, printer.Print(expr))
		return
	}

	stmts, errs := parser.New(tokens, printer.Algebra{}).Parse()
	if len(errs) != 0 {
		s.reporter.ReportAll(errs)
		return
	}

	for _, stmt := range stmts {
		fmt.Fprintln(s.out, printer.Print(stmt))
	}
}

func (s *session) evaluate(src string) {
	tokens := s.scan(src)
	if s.reporter.HadError() {
		return
	}

	expr, errs := parser.New(tokens, ast.Builder{}).ParseExpression()
	if len(errs) != 0 {
		s.reporter.ReportAll(errs)
		return
	}

	s.evaluateExpr(expr)
}

func (s *session) evaluateExpr(expr ast.Expr) {
	locals, errs := resolver.New().ResolveExpr(expr)
	if len(errs) != 0 {
		s.reporter.ReportAll(errs)
		return
	}

	value, err := s.eval.Evaluate(expr, locals)
	if err != nil {
		s.reporter.Runtime(err)
		return
	}

	fmt.Fprintln(s.out, eval.Stringify(value))
}

func (s *session) run(src string) {
	tokens := s.scan(src)
	if s.reporter.HadError() {
		return
	}

	stmts, errs := parser.New(tokens, ast.Builder{}).Parse()
	if len(errs) != 0 {
		s.reporter.ReportAll(errs)
		return
	}

	s.runStmts(stmts)
}

func (s *session) runStmts(stmts []ast.Stmt) {
	locals, errs := resolver.New().Resolve(stmts)
	if len(errs) != 0 {
		s.reporter.ReportAll(errs)
		return
	}

	if err := s.eval.Interpret(stmts, locals); err != nil {
		s.reporter.Runtime(err)
	}
}

// interactive runs one REPL entry. A lone expression has its value
// printed; anything else runs as a program. Errors never end the session.
func (s *session) interactive(src string) {
	defer s.reporter.Reset()

	tokens := s.scan(src)
	if s.reporter.HadError() {
		return
	}

	if expr, errs := parser.New(tokens, ast.Builder{}).ParseExpression(); len(errs) == 0 {
		s.evaluateExpr(expr)
		return
	}

	stmts, errs := parser.New(tokens, ast.Builder{}).Parse()
	if len(errs) != 0 {
		s.reporter.ReportAll(errs)
		return
	}

	s.runStmts(stmts)
}

package parser

import (
	"strings"
	"testing"

	"github.com/havrydotdev/treelox/ast"
	"github.com/havrydotdev/treelox/printer"
	"github.com/havrydotdev/treelox/scanner"
	"github.com/havrydotdev/treelox/token"
)

func scan(t *testing.T, src string) []token.Token {
	t.Helper()
	tokens, errs := scanner.New(src).Scan()
	if len(errs) != 0 {
		t.Fatalf("scan %q: %v", src, errs)
	}

	return tokens
}

func printProgram(t *testing.T, src string) (string, []error) {
	t.Helper()
	stmts, errs := New(scan(t, src), printer.Algebra{}).Parse()

	lines := make([]string, 0, len(stmts))
	for _, stmt := range stmts {
		lines = append(lines, printer.Print(stmt))
	}

	return strings.Join(lines, "\n"), errs
}

func errorStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}

	return out
}

func TestExpressionPrecedence(t *testing.T) {
	tests := []struct {
		src  string
		want string
	}{
		{"-123 * (45.67)", "(* (- 123) (group 45.67))"},
		{"-1 + 2 * 3", "(+ (- 1) (* 2 3))"},
		{"(1 + 2) * 3", "(* (group (+ 1 2)) 3)"},
		{"1 - 2 - 3", "(- (- 1 2) 3)"},
		{"a or b and c", "(or a (and b c))"},
		{"a and b or c", "(or (and a b) c)"},
		{"1 < 2 == !true", "(== (< 1 2) (! true))"},
		{"a = b = 3", "(= a (= b 3))"},
		{"a.b.c = 1", "(= . c (. b a) 1)"},
		{"f(1)(2).x", "(. x (call (call f 1) 2))"},
		{"super.m(this)", "(call (super m) this)"},
		{`"s" + nil`, "(+ s nil)"},
		{"!!false", "(! (! false))"},
	}

	for _, tt := range tests {
		t.Run(tt.src, func(t *testing.T) {
			expr, errs := New(scan(t, tt.src), printer.Algebra{}).ParseExpression()
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}

			if got := printer.Print(expr); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestStatements(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"var", "var a = 1; var b;", "(var a 1)\n(var b)"},
		{"print", "print 1 + 2;", "(print (+ 1 2))"},
		{"block", "{ var a; a = 2; }", "(block (var a) (; (= a 2)))"},
		{"if else", "if (a) print 1; else print 2;", "(if-else a (print 1) (print 2))"},
		{"while", "while (x) x = x - 1;", "(while x (; (= x (- x 1))))"},
		{"for full", "for (var i = 0; i < 3; i = i + 1) print i;",
			"(block (var i 0) (while (< i 3) (block (print i) (; (= i (+ i 1))))))"},
		{"for empty", "for (;;) print 1;", "(while true (print 1))"},
		{"function", "fun add(a, b) { return a + b; }", "(function add (a b) (return (+ a b)))"},
		{"bare return", "fun f() { return; }", "(function f () (return))"},
		{"class", "class B < A { init(x) { this.x = x; } class make() { return B(1); } area { return 1; } go() {} }",
			"(class B < A (initializer init (x) (; (= . x this x))) (static make () (return (call B 1))) (getter area (return 1)) (method go ()))"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, errs := printProgram(t, tt.src)
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}

			if got != tt.want {
				t.Errorf("got\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"missing expression", "print ;", []string{"[line 1] Error at ';': Expect expression."}},
		{"missing semicolon", "print 1", []string{"[line 1] Error at end: Expect ';' after value."}},
		{"unclosed group", "(1 + 2;", []string{"[line 1] Error at ';': Expect ')' after expression."}},
		{"invalid target", "1 + a = 3;", []string{"[line 1] Error at '=': Invalid assignment target."}},
		{"grouped target", "(a) = 3;", []string{"[line 1] Error at '=': Invalid assignment target."}},
		{"call target", "f() = 3;", []string{"[line 1] Error at '=': Invalid assignment target."}},
		{"synchronize", "var = 1;\nprint 2;\nvar x = ;\nprint 3;", []string{
			"[line 1] Error at '=': Expect variable name.",
			"[line 3] Error at ';': Expect expression.",
		}},
		{"superclass name", "class A < {}", []string{"[line 1] Error at '{': Expect superclass name."}},
		{"super needs dot", "super;", []string{"[line 1] Error at ';': Expect '.' after 'super'."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := printProgram(t, tt.src)
			got := errorStrings(errs)
			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("errors = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSynchronizeKeepsLaterStatements(t *testing.T) {
	stmts, errs := New(scan(t, "print (;\nprint 1;\nprint 2;"), ast.Builder{}).Parse()
	if len(errs) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(errs), errs)
	}

	if len(stmts) != 2 {
		t.Errorf("got %d statements after recovery, want 2", len(stmts))
	}
}

func TestTooManyArguments(t *testing.T) {
	args := make([]string, 256)
	for i := range args {
		args[i] = "1"
	}

	_, errs := printProgram(t, "f("+strings.Join(args, ", ")+");")
	if len(errs) != 1 || !strings.Contains(errs[0].Error(), "Can't have more than 255 arguments.") {
		t.Errorf("errors = %v", errs)
	}
}

func TestParseExpressionTrailingInput(t *testing.T) {
	_, errs := New(scan(t, "1 2"), printer.Algebra{}).ParseExpression()
	if len(errs) != 1 || errs[0].Error() != "[line 1] Error at '2': Expect end of expression." {
		t.Errorf("errors = %v", errs)
	}
}

func TestBuilderNodes(t *testing.T) {
	stmts, errs := New(scan(t, "for (var i = 0; i < 2;) { a.b = i; }"), ast.Builder{}).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	outer, ok := stmts[0].(*ast.Block)
	if !ok || len(outer.Statements) != 2 {
		t.Fatalf("for did not desugar into an outer block: %#v", stmts[0])
	}

	if _, ok := outer.Statements[0].(*ast.Var); !ok {
		t.Errorf("first statement is %T, want *ast.Var", outer.Statements[0])
	}

	loop, ok := outer.Statements[1].(*ast.While)
	if !ok {
		t.Fatalf("second statement is %T, want *ast.While", outer.Statements[1])
	}

	body, ok := loop.Body.(*ast.Block)
	if !ok || len(body.Statements) != 1 {
		t.Fatalf("loop body = %#v", loop.Body)
	}

	stmt := body.Statements[0].(*ast.Expression)
	set, ok := stmt.Expr.(*ast.Set)
	if !ok || set.Name.Lexeme != "b" {
		t.Fatalf("expected property assignment, got %#v", stmt.Expr)
	}

	if v, ok := set.Object.(*ast.Variable); !ok || v.Name.Lexeme != "a" {
		t.Errorf("set object = %#v", set.Object)
	}

	if _, ok := set.Value.(*ast.Variable); !ok {
		t.Errorf("set value = %#v", set.Value)
	}
}

func TestClassNode(t *testing.T) {
	stmts, errs := New(scan(t, "class B < A { init() {} class s() {} g { return 1; } }"), ast.Builder{}).Parse()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	class := stmts[0].(*ast.Class)
	if class.Superclass == nil || class.Superclass.Name.Lexeme != "A" {
		t.Errorf("superclass = %#v", class.Superclass)
	}

	wantKinds := []ast.FunctionKind{ast.KindInitializer, ast.KindStatic, ast.KindGetter}
	if len(class.Methods) != len(wantKinds) {
		t.Fatalf("got %d methods", len(class.Methods))
	}

	for i, m := range class.Methods {
		if m.Kind != wantKinds[i] {
			t.Errorf("method %s kind = %s, want %s", m.Name.Lexeme, m.Kind, wantKinds[i])
		}
	}
}

package resolver

import (
	"strings"
	"testing"

	"github.com/havrydotdev/treelox/ast"
	"github.com/havrydotdev/treelox/parser"
	"github.com/havrydotdev/treelox/scanner"
)

func parse(t *testing.T, src string) []ast.Stmt {
	t.Helper()
	tokens, errs := scanner.New(src).Scan()
	if len(errs) != 0 {
		t.Fatalf("scan: %v", errs)
	}

	stmts, errs := parser.New(tokens, ast.Builder{}).Parse()
	if len(errs) != 0 {
		t.Fatalf("parse: %v", errs)
	}

	return stmts
}

func TestErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []string
	}{
		{"own initializer", "{ var a = a; }", []string{
			"[line 1] Error at 'a': Can't read local variable in its own initializer.",
		}},
		{"global self reference is fine", "var a = a;", nil},
		{"outer shadowed by initializer", "{ var a = 1; { var a = a + 1; } }", []string{
			"[line 1] Error at 'a': Can't read local variable in its own initializer.",
		}},
		{"duplicate local", "{ var a; var a; }", []string{
			"[line 1] Error at 'a': Already a variable with this name in this scope.",
		}},
		{"duplicate parameter", "fun f(a, a) {}", []string{
			"[line 1] Error at 'a': Already a variable with this name in this scope.",
		}},
		{"duplicate global is fine", "var a; var a;", nil},
		{"top-level return", "return 1;", []string{
			"[line 1] Error at 'return': Can't return from top-level code.",
		}},
		{"value from initializer", "class A { init() { return 1; } }", []string{
			"[line 1] Error at 'return': Can't return a value from an initializer.",
		}},
		{"bare return in initializer", "class A { init() { return; } }", nil},
		{"this outside class", "print this;", []string{
			"[line 1] Error at 'this': Can't use 'this' outside of a class.",
		}},
		{"this in nested function", "class A { m() { fun f() { return this; } } }", nil},
		{"super outside class", "super.m();", []string{
			"[line 1] Error at 'super': Can't use 'super' outside of a class.",
		}},
		{"super without superclass", "class A { m() { super.m(); } }", []string{
			"[line 1] Error at 'super': Can't use 'super' in a class with no superclass.",
		}},
		{"inherit from self", "class A < A {}", []string{
			"[line 1] Error at 'A': A class can't inherit from itself.",
		}},
		{"several errors", "return;\nprint this;", []string{
			"[line 1] Error at 'return': Can't return from top-level code.",
			"[line 2] Error at 'this': Can't use 'this' outside of a class.",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, errs := New().Resolve(parse(t, tt.src))

			got := make([]string, 0, len(errs))
			for _, err := range errs {
				got = append(got, err.Error())
			}

			if strings.Join(got, "\n") != strings.Join(tt.want, "\n") {
				t.Errorf("errors = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDistances(t *testing.T) {
	stmts := parse(t, `
var g = 0;
{
  var a = 1;
  {
    print a;
    print g;
    a = 2;
  }
}`)

	locals, errs := New().Resolve(stmts)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	inner := stmts[1].(*ast.Block).Statements[1].(*ast.Block).Statements

	readA := inner[0].(*ast.Print).Expr
	if d, ok := locals[readA]; !ok || d != 1 {
		t.Errorf("distance of a = %d, %v; want 1", d, ok)
	}

	readG := inner[1].(*ast.Print).Expr
	if _, ok := locals[readG]; ok {
		t.Errorf("global g must stay unresolved")
	}

	assignA := inner[2].(*ast.Expression).Expr
	if d, ok := locals[assignA]; !ok || d != 1 {
		t.Errorf("distance of a = 2 is %d, %v; want 1", d, ok)
	}
}

// Two references with the same name and shape are separate keys.
func TestIdentityKeys(t *testing.T) {
	stmts := parse(t, "{ var x; print x; { var x; print x; } }")
	locals, errs := New().Resolve(stmts)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	outer := stmts[0].(*ast.Block).Statements
	first := outer[1].(*ast.Print).Expr
	second := outer[2].(*ast.Block).Statements[1].(*ast.Print).Expr

	if locals[first] != 0 || locals[second] != 0 || len(locals) != 2 {
		t.Errorf("locals = %v", locals)
	}
}

func TestMethodScopes(t *testing.T) {
	stmts := parse(t, "class B < A { m(x) { print this; print super.m; print x; } }")
	locals, errs := New().Resolve(stmts)
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	body := stmts[0].(*ast.Class).Methods[0].Body
	want := []int{1, 2, 0}
	for i, stmt := range body {
		expr := stmt.(*ast.Print).Expr
		if got, ok := locals[expr]; !ok || got != want[i] {
			t.Errorf("statement %d distance = %d, %v; want %d", i, got, ok, want[i])
		}
	}
}

// Package resolver works out, before anything runs, how many scopes lie
// between each local variable use and its declaration. It also rejects
// misplaced return, this and super.
package resolver

import (
	"github.com/havrydotdev/treelox/ast"
	"github.com/havrydotdev/treelox/diag"
	"github.com/havrydotdev/treelox/token"
)

type functionKind uint8

const (
	functionNone functionKind = iota
	functionPlain
	functionMethod
	functionInitializer
	functionStatic
	functionGetter
)

func functionKindOf(kind ast.FunctionKind) functionKind {
	switch kind {
	case ast.KindMethod:
		return functionMethod
	case ast.KindInitializer:
		return functionInitializer
	case ast.KindStatic:
		return functionStatic
	case ast.KindGetter:
		return functionGetter
	default:
		return functionPlain
	}
}

type classKind uint8

const (
	classNone classKind = iota
	classPlain
	classSub
)

// scope maps a name to whether its declaration has finished.
type scope map[string]bool

type Resolver struct {
	scopes []scope
	locals ast.Locals
	errors []error

	currentFunction functionKind
	currentClass    classKind
}

func New() *Resolver {
	return &Resolver{locals: make(ast.Locals)}
}

// Resolve walks a program and returns the distances of every local
// reference. The program must not run if any error is returned.
func (r *Resolver) Resolve(stmts []ast.Stmt) (ast.Locals, []error) {
	r.resolveStmts(stmts)
	return r.locals, r.errors
}

// ResolveExpr is Resolve for a lone expression.
func (r *Resolver) ResolveExpr(expr ast.Expr) (ast.Locals, []error) {
	r.resolveExpr(expr)
	return r.locals, r.errors
}

func (r *Resolver) resolveStmts(stmts []ast.Stmt) {
	for _, stmt := range stmts {
		r.resolveStmt(stmt)
	}
}

func (r *Resolver) resolveStmt(stmt ast.Stmt) {
	switch s := stmt.(type) {
	case *ast.Block:
		r.beginScope()
		r.resolveStmts(s.Statements)
		r.endScope()
	case *ast.Class:
		r.class(s)
	case *ast.Expression:
		r.resolveExpr(s.Expr)
	case *ast.Function:
		r.declare(s.Name)
		r.define(s.Name)
		r.function(s, functionPlain)
	case *ast.If:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.ThenBranch)
		if s.ElseBranch != nil {
			r.resolveStmt(s.ElseBranch)
		}
	case *ast.Print:
		r.resolveExpr(s.Expr)
	case *ast.Return:
		if r.currentFunction == functionNone {
			r.error(s.Keyword, "Can't return from top-level code.")
		}

		if s.Value != nil {
			if r.currentFunction == functionInitializer {
				r.error(s.Keyword, "Can't return a value from an initializer.")
			}

			r.resolveExpr(s.Value)
		}
	case *ast.Var:
		r.declare(s.Name)
		if s.Initializer != nil {
			r.resolveExpr(s.Initializer)
		}
		r.define(s.Name)
	case *ast.While:
		r.resolveExpr(s.Condition)
		r.resolveStmt(s.Body)
	}
}

func (r *Resolver) class(s *ast.Class) {
	enclosingClass := r.currentClass
	r.currentClass = classPlain
	defer func() { r.currentClass = enclosingClass }()

	r.declare(s.Name)
	r.define(s.Name)

	if s.Superclass != nil {
		if s.Superclass.Name.Lexeme == s.Name.Lexeme {
			r.error(s.Superclass.Name, "A class can't inherit from itself.")
		}

		r.currentClass = classSub
		r.resolveExpr(s.Superclass)

		r.beginScope()
		r.peek()["super"] = true
	}

	r.beginScope()
	r.peek()["this"] = true

	for _, method := range s.Methods {
		r.function(method, functionKindOf(method.Kind))
	}

	r.endScope()

	if s.Superclass != nil {
		r.endScope()
	}
}

func (r *Resolver) function(fn *ast.Function, kind functionKind) {
	enclosingFunction := r.currentFunction
	r.currentFunction = kind

	r.beginScope()
	for _, param := range fn.Params {
		r.declare(param)
		r.define(param)
	}

	r.resolveStmts(fn.Body)
	r.endScope()

	r.currentFunction = enclosingFunction
}

func (r *Resolver) resolveExpr(expr ast.Expr) {
	switch e := expr.(type) {
	case *ast.Assign:
		r.resolveExpr(e.Value)
		r.resolveLocal(e, e.Name)
	case *ast.Binary:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Call:
		r.resolveExpr(e.Callee)
		for _, arg := range e.Arguments {
			r.resolveExpr(arg)
		}
	case *ast.Get:
		r.resolveExpr(e.Object)
	case *ast.Grouping:
		r.resolveExpr(e.Inner)
	case *ast.Literal:
	case *ast.Logical:
		r.resolveExpr(e.Left)
		r.resolveExpr(e.Right)
	case *ast.Set:
		r.resolveExpr(e.Value)
		r.resolveExpr(e.Object)
	case *ast.Super:
		switch r.currentClass {
		case classNone:
			r.error(e.Keyword, "Can't use 'super' outside of a class.")
		case classPlain:
			r.error(e.Keyword, "Can't use 'super' in a class with no superclass.")
		}

		r.resolveLocal(e, e.Keyword)
	case *ast.This:
		if r.currentClass == classNone {
			r.error(e.Keyword, "Can't use 'this' outside of a class.")
			return
		}

		r.resolveLocal(e, e.Keyword)
	case *ast.Unary:
		r.resolveExpr(e.Right)
	case *ast.Variable:
		if len(r.scopes) > 0 {
			if defined, ok := r.peek()[e.Name.Lexeme]; ok && !defined {
				r.error(e.Name, "Can't read local variable in its own initializer.")
			}
		}

		r.resolveLocal(e, e.Name)
	}
}

// resolveLocal records how far out name is declared. Names found in no
// scope are left for the global frame.
func (r *Resolver) resolveLocal(expr ast.Expr, name token.Token) {
	for i := len(r.scopes) - 1; i >= 0; i-- {
		if _, ok := r.scopes[i][name.Lexeme]; ok {
			r.locals[expr] = len(r.scopes) - 1 - i
			return
		}
	}
}

func (r *Resolver) declare(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}

	s := r.peek()
	if _, ok := s[name.Lexeme]; ok {
		r.error(name, "Already a variable with this name in this scope.")
	}

	s[name.Lexeme] = false
}

func (r *Resolver) define(name token.Token) {
	if len(r.scopes) == 0 {
		return
	}

	r.peek()[name.Lexeme] = true
}

func (r *Resolver) beginScope() {
	r.scopes = append(r.scopes, make(scope))
}

func (r *Resolver) endScope() {
	r.scopes = r.scopes[:len(r.scopes)-1]
}

func (r *Resolver) peek() scope {
	return r.scopes[len(r.scopes)-1]
}

func (r *Resolver) error(tok token.Token, message string) {
	r.errors = append(r.errors, diag.AtToken(tok, message))
}

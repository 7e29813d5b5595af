// Package ast declares the syntax tree built by the parser and walked by
// the resolver and the evaluator.
//
// Nodes are always handled through pointers: a node's address is its
// identity, which is what the resolution side-table is keyed on.
package ast

import "github.com/havrydotdev/treelox/token"

// Expr is implemented by every expression node.
type Expr interface {
	exprNode()
}

type Assign struct {
	Name  token.Token
	Value Expr
}

type Binary struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

// Call keeps the closing paren so runtime errors can point at the call.
type Call struct {
	Callee    Expr
	Paren     token.Token
	Arguments []Expr
}

type Get struct {
	Object Expr
	Name   token.Token
}

type Grouping struct {
	Inner Expr
}

type Literal struct {
	Value any
}

// Logical is a short-circuiting "and" or "or".
type Logical struct {
	Left     Expr
	Operator token.Token
	Right    Expr
}

type Set struct {
	Object Expr
	Name   token.Token
	Value  Expr
}

type Super struct {
	Keyword token.Token
	Method  token.Token
}

type This struct {
	Keyword token.Token
}

type Unary struct {
	Operator token.Token
	Right    Expr
}

type Variable struct {
	Name token.Token
}

func (*Assign) exprNode()   {}
func (*Binary) exprNode()   {}
func (*Call) exprNode()     {}
func (*Get) exprNode()      {}
func (*Grouping) exprNode() {}
func (*Literal) exprNode()  {}
func (*Logical) exprNode()  {}
func (*Set) exprNode()      {}
func (*Super) exprNode()    {}
func (*This) exprNode()     {}
func (*Unary) exprNode()    {}
func (*Variable) exprNode() {}

// Locals maps a resolved expression to the number of scopes between its
// use and the scope declaring the name. Expressions missing from the map
// refer to globals.
type Locals map[Expr]int

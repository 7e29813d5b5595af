package ast

import "github.com/havrydotdev/treelox/token"

// Stmt is implemented by every statement node.
type Stmt interface {
	stmtNode()
}

// FunctionKind tells how a function declaration was written and, for
// methods, how it is invoked.
type FunctionKind uint8

const (
	KindFunction FunctionKind = iota
	KindMethod
	KindInitializer
	KindStatic
	KindGetter
)

func (k FunctionKind) String() string {
	switch k {
	case KindFunction:
		return "function"
	case KindMethod:
		return "method"
	case KindInitializer:
		return "initializer"
	case KindStatic:
		return "static"
	case KindGetter:
		return "getter"
	}

	return "unknown"
}

type Block struct {
	Statements []Stmt
}

// Class holds every method in declaration order; Kind on each one tells
// instance methods, statics and getters apart.
type Class struct {
	Name       token.Token
	Superclass *Variable
	Methods    []*Function
}

type Expression struct {
	Expr Expr
}

type Function struct {
	Name   token.Token
	Params []token.Token
	Body   []Stmt
	Kind   FunctionKind
}

type If struct {
	Condition  Expr
	ThenBranch Stmt
	ElseBranch Stmt
}

type Print struct {
	Expr Expr
}

type Return struct {
	Keyword token.Token
	Value   Expr
}

type Var struct {
	Name        token.Token
	Initializer Expr
}

type While struct {
	Condition Expr
	Body      Stmt
}

func (*Block) stmtNode()      {}
func (*Class) stmtNode()      {}
func (*Expression) stmtNode() {}
func (*Function) stmtNode()   {}
func (*If) stmtNode()         {}
func (*Print) stmtNode()      {}
func (*Return) stmtNode()     {}
func (*Var) stmtNode()        {}
func (*While) stmtNode()      {}

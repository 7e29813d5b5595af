package ast

import "github.com/havrydotdev/treelox/token"

// Builder is the algebra that turns parser callbacks into tree nodes.
type Builder struct{}

var _ Alg[Expr, Stmt] = Builder{}

func (Builder) Grouping(expr Expr) Expr {
	return &Grouping{Inner: expr}
}

func (Builder) Literal(value any) Expr {
	return &Literal{Value: value}
}

func (Builder) Variable(name token.Token) Expr {
	return &Variable{Name: name}
}

func (Builder) Get(object Expr, name token.Token) Expr {
	return &Get{Object: object, Name: name}
}

func (Builder) Unary(op token.Token, right Expr) Expr {
	return &Unary{Operator: op, Right: right}
}

func (Builder) Assign(name token.Token, value Expr) Expr {
	return &Assign{Name: name, Value: value}
}

func (Builder) Binary(op token.Token, left, right Expr) Expr {
	return &Binary{Left: left, Operator: op, Right: right}
}

func (Builder) Logical(op token.Token, left, right Expr) Expr {
	return &Logical{Left: left, Operator: op, Right: right}
}

func (Builder) Call(callee Expr, paren token.Token, args []Expr) Expr {
	return &Call{Callee: callee, Paren: paren, Arguments: args}
}

func (Builder) Set(object Expr, name token.Token, value Expr) Expr {
	return &Set{Object: object, Name: name, Value: value}
}

func (Builder) This(keyword token.Token) Expr {
	return &This{Keyword: keyword}
}

func (Builder) Super(keyword, method token.Token) Expr {
	return &Super{Keyword: keyword, Method: method}
}

func (Builder) Print(expr Expr) Stmt {
	return &Print{Expr: expr}
}

func (Builder) Block(stmts []Stmt) Stmt {
	return &Block{Statements: stmts}
}

func (Builder) While(cond Expr, body Stmt) Stmt {
	return &While{Condition: cond, Body: body}
}

func (Builder) ExprStatement(expr Expr) Stmt {
	return &Expression{Expr: expr}
}

func (Builder) If(cond Expr, then Stmt, _else Stmt) Stmt {
	return &If{Condition: cond, ThenBranch: then, ElseBranch: _else}
}

func (Builder) Var(name token.Token, init Expr) Stmt {
	return &Var{Name: name, Initializer: init}
}

func (Builder) Return(keyword token.Token, value Expr) Stmt {
	return &Return{Keyword: keyword, Value: value}
}

// Class expects superclass to be nil or a *Variable and every method to be
// a *Function, which is all the parser ever hands it.
func (Builder) Class(name token.Token, superclass Expr, methods []Stmt) Stmt {
	class := &Class{Name: name}
	if v, ok := superclass.(*Variable); ok {
		class.Superclass = v
	}

	for _, m := range methods {
		if fn, ok := m.(*Function); ok {
			class.Methods = append(class.Methods, fn)
		}
	}

	return class
}

func (Builder) Function(name token.Token, params []token.Token, body []Stmt, kind FunctionKind) Stmt {
	return &Function{Name: name, Params: params, Body: body, Kind: kind}
}

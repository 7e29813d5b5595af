package eval

import (
	"fmt"
	"io"
	"maps"

	"github.com/havrydotdev/treelox/ast"
	env "github.com/havrydotdev/treelox/environment"
	"github.com/havrydotdev/treelox/token"
)

// DefaultMaxDepth bounds nested calls unless WithMaxDepth says otherwise.
const DefaultMaxDepth = 10000

type flow uint8

const (
	flowNormal flow = iota
	flowReturn
)

// outcome is what executing a statement produced. A return travels up as
// an outcome through every enclosing block until a function call
// consumes it.
type outcome struct {
	flow  flow
	value any
}

type Evaluator struct {
	globals     *env.Env
	environment *env.Env
	locals      ast.Locals
	out         io.Writer

	depth    int
	maxDepth int
}

type Option func(*Evaluator)

// WithMaxDepth limits how deeply calls may nest; 0 removes the limit.
func WithMaxDepth(n int) Option {
	return func(e *Evaluator) {
		e.maxDepth = n
	}
}

// New returns an evaluator that prints to out. Globals persist across
// calls to Interpret, so one evaluator can serve a whole REPL session.
func New(out io.Writer, opts ...Option) *Evaluator {
	globals := newGlobals()

	e := &Evaluator{
		globals:     globals,
		environment: globals,
		locals:      make(ast.Locals),
		out:         out,
		maxDepth:    DefaultMaxDepth,
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Interpret runs a resolved program and stops at the first runtime error.
func (e *Evaluator) Interpret(stmts []ast.Stmt, locals ast.Locals) error {
	maps.Copy(e.locals, locals)

	for _, stmt := range stmts {
		if _, err := e.execute(stmt); err != nil {
			return err
		}
	}

	return nil
}

// Evaluate computes the value of a single resolved expression.
func (e *Evaluator) Evaluate(expr ast.Expr, locals ast.Locals) (any, error) {
	maps.Copy(e.locals, locals)
	return e.evaluate(expr)
}

func (e *Evaluator) execute(stmt ast.Stmt) (outcome, error) {
	switch s := stmt.(type) {
	case *ast.Block:
		return e.executeBlock(s.Statements, env.NewChild(e.environment))
	case *ast.Class:
		return outcome{}, e.class(s)
	case *ast.Expression:
		_, err := e.evaluate(s.Expr)
		return outcome{}, err
	case *ast.Function:
		e.environment.Define(s.Name.Lexeme, newFunction(s, e.environment))
		return outcome{}, nil
	case *ast.If:
		cond, err := e.evaluate(s.Condition)
		if err != nil {
			return outcome{}, err
		}

		if isTruthy(cond) {
			return e.execute(s.ThenBranch)
		}

		if s.ElseBranch != nil {
			return e.execute(s.ElseBranch)
		}

		return outcome{}, nil
	case *ast.Print:
		value, err := e.evaluate(s.Expr)
		if err != nil {
			return outcome{}, err
		}

		fmt.Fprintln(e.out, Stringify(value))
		return outcome{}, nil
	case *ast.Return:
		var value any
		if s.Value != nil {
			var err error
			value, err = e.evaluate(s.Value)
			if err != nil {
				return outcome{}, err
			}
		}

		return outcome{flow: flowReturn, value: value}, nil
	case *ast.Var:
		var value any
		if s.Initializer != nil {
			var err error
			value, err = e.evaluate(s.Initializer)
			if err != nil {
				return outcome{}, err
			}
		}

		e.environment.Define(s.Name.Lexeme, value)
		return outcome{}, nil
	case *ast.While:
		return e.while(s)
	}

	return outcome{}, fmt.Errorf("internal error: unexpected statement %T", stmt)
}

func (e *Evaluator) while(s *ast.While) (outcome, error) {
	for {
		cond, err := e.evaluate(s.Condition)
		if err != nil {
			return outcome{}, err
		}

		if !isTruthy(cond) {
			return outcome{}, nil
		}

		res, err := e.execute(s.Body)
		if err != nil || res.flow == flowReturn {
			return res, err
		}
	}
}

// executeBlock runs stmts inside environment and restores the previous
// frame however the block is left.
func (e *Evaluator) executeBlock(stmts []ast.Stmt, environment *env.Env) (outcome, error) {
	prev := e.environment
	e.environment = environment
	defer func() { e.environment = prev }()

	for _, stmt := range stmts {
		res, err := e.execute(stmt)
		if err != nil || res.flow == flowReturn {
			return res, err
		}
	}

	return outcome{}, nil
}

func (e *Evaluator) class(s *ast.Class) error {
	var superclass *Class
	if s.Superclass != nil {
		value, err := e.evaluate(s.Superclass)
		if err != nil {
			return err
		}

		class, ok := value.(*Class)
		if !ok {
			return newRuntimeError(s.Superclass.Name, "Superclass must be a class.")
		}

		superclass = class
	}

	e.environment.Define(s.Name.Lexeme, nil)

	if superclass != nil {
		e.environment = env.NewChild(e.environment)
		e.environment.Define("super", superclass)
	}

	methods := make(map[string]*Function)
	statics := make(map[string]*Function)
	for _, method := range s.Methods {
		fn := newFunction(method, e.environment)
		if method.Kind == ast.KindStatic {
			statics[method.Name.Lexeme] = fn
		} else {
			methods[method.Name.Lexeme] = fn
		}
	}

	class := newClass(s.Name.Lexeme, superclass, methods, statics)

	if superclass != nil {
		e.environment = e.environment.Outer()
	}

	e.environment.Define(s.Name.Lexeme, class)
	return nil
}

func (e *Evaluator) evaluate(expr ast.Expr) (any, error) {
	switch x := expr.(type) {
	case *ast.Assign:
		value, err := e.evaluate(x.Value)
		if err != nil {
			return nil, err
		}

		return value, e.assignVariable(x, x.Name, value)
	case *ast.Binary:
		return e.binary(x)
	case *ast.Call:
		return e.call(x)
	case *ast.Get:
		object, err := e.evaluate(x.Object)
		if err != nil {
			return nil, err
		}

		return e.property(object, x.Name)
	case *ast.Grouping:
		return e.evaluate(x.Inner)
	case *ast.Literal:
		return x.Value, nil
	case *ast.Logical:
		return e.logical(x)
	case *ast.Set:
		object, err := e.evaluate(x.Object)
		if err != nil {
			return nil, err
		}

		inst, ok := object.(*Instance)
		if !ok {
			return nil, newRuntimeError(x.Name, "Only instances have fields.")
		}

		value, err := e.evaluate(x.Value)
		if err != nil {
			return nil, err
		}

		inst.Set(x.Name.Lexeme, value)
		return value, nil
	case *ast.Super:
		return e.super(x)
	case *ast.This:
		return e.lookUpVariable(x.Keyword, x)
	case *ast.Unary:
		return e.unary(x)
	case *ast.Variable:
		return e.lookUpVariable(x.Name, x)
	}

	return nil, fmt.Errorf("internal error: unexpected expression %T", expr)
}

// lookUpVariable reads a resolved local by distance; anything the
// resolver left alone lives in the global frame.
func (e *Evaluator) lookUpVariable(name token.Token, expr ast.Expr) (any, error) {
	if distance, ok := e.locals[expr]; ok {
		if value, ok := e.environment.GetAt(distance, name.Lexeme); ok {
			return value, nil
		}
	} else if value, ok := e.globals.Get(name.Lexeme); ok {
		return value, nil
	}

	return nil, newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
}

func (e *Evaluator) assignVariable(expr ast.Expr, name token.Token, value any) error {
	var ok bool
	if distance, resolved := e.locals[expr]; resolved {
		ok = e.environment.AssignAt(distance, name.Lexeme, value)
	} else {
		ok = e.globals.Assign(name.Lexeme, value)
	}

	if !ok {
		return newRuntimeError(name, "Undefined variable '%s'.", name.Lexeme)
	}

	return nil
}

func (e *Evaluator) logical(x *ast.Logical) (any, error) {
	l, err := e.evaluate(x.Left)
	if err != nil {
		return nil, err
	}

	if x.Operator.Kind == token.Or {
		if isTruthy(l) {
			return l, nil
		}
	} else {
		if !isTruthy(l) {
			return l, nil
		}
	}

	return e.evaluate(x.Right)
}

func (e *Evaluator) unary(x *ast.Unary) (any, error) {
	right, err := e.evaluate(x.Right)
	if err != nil {
		return nil, err
	}

	switch x.Operator.Kind {
	case token.Minus:
		n, err := checkNum(x.Operator, right)
		if err != nil {
			return nil, err
		}

		return -n, nil
	case token.Bang:
		return !isTruthy(right), nil
	}

	return nil, newRuntimeError(x.Operator, "Unexpected operator %s.", x.Operator.Lexeme)
}

func (e *Evaluator) binary(x *ast.Binary) (any, error) {
	l, err := e.evaluate(x.Left)
	if err != nil {
		return nil, err
	}

	r, err := e.evaluate(x.Right)
	if err != nil {
		return nil, err
	}

	op := x.Operator
	switch op.Kind {
	case token.BangEqual:
		return !isEqual(l, r), nil
	case token.EqualEqual:
		return isEqual(l, r), nil

	case token.Plus:
		switch lv := l.(type) {
		case float64:
			if rv, ok := r.(float64); ok {
				return lv + rv, nil
			}
		case string:
			if rv, ok := r.(string); ok {
				return lv + rv, nil
			}
		}

		return nil, newRuntimeError(op, "Operands must be two numbers or two strings.")
	}

	lnum, rnum, err := checkNums(op, l, r)
	if err != nil {
		return nil, err
	}

	switch op.Kind {
	case token.Greater:
		return lnum > rnum, nil
	case token.GreaterEqual:
		return lnum >= rnum, nil
	case token.Less:
		return lnum < rnum, nil
	case token.LessEqual:
		return lnum <= rnum, nil
	case token.Minus:
		return lnum - rnum, nil
	case token.Slash:
		return lnum / rnum, nil
	case token.Star:
		return lnum * rnum, nil
	}

	return nil, newRuntimeError(op, "Unexpected operator %s.", op.Lexeme)
}

func (e *Evaluator) call(x *ast.Call) (any, error) {
	callee, err := e.evaluate(x.Callee)
	if err != nil {
		return nil, err
	}

	arguments := make([]any, 0, len(x.Arguments))
	for _, arg := range x.Arguments {
		argValue, err := e.evaluate(arg)
		if err != nil {
			return nil, err
		}

		arguments = append(arguments, argValue)
	}

	fun, ok := callee.(Callable)
	if !ok {
		return nil, newRuntimeError(x.Paren, "Can only call functions and classes.")
	}

	if len(arguments) != int(fun.Arity()) {
		return nil, newRuntimeError(x.Paren, "Expected %d arguments but got %d.", fun.Arity(), len(arguments))
	}

	return e.invoke(fun, arguments, x.Paren)
}

// invoke calls fun while keeping track of how deeply calls are nested.
func (e *Evaluator) invoke(fun Callable, arguments []any, at token.Token) (any, error) {
	if e.maxDepth > 0 && e.depth >= e.maxDepth {
		return nil, newRuntimeError(at, "Stack overflow.")
	}

	e.depth++
	defer func() { e.depth-- }()

	return fun.Call(e, arguments)
}

// property reads name from an instance (fields first, then methods) or a
// static method from a class. Getters run right away.
func (e *Evaluator) property(object any, name token.Token) (any, error) {
	var method *Function

	switch o := object.(type) {
	case *Instance:
		if value, ok := o.Get(name.Lexeme); ok {
			return value, nil
		}

		method = o.class.FindMethod(name.Lexeme)
	case *Class:
		method = o.FindStatic(name.Lexeme)
	default:
		return nil, newRuntimeError(name, "Only instances have properties.")
	}

	if method == nil {
		return nil, newRuntimeError(name, "Undefined property '%s'.", name.Lexeme)
	}

	return e.bind(method, object, name)
}

func (e *Evaluator) super(x *ast.Super) (any, error) {
	distance, ok := e.locals[x]
	if !ok {
		return nil, newRuntimeError(x.Keyword, "Can't use 'super' outside of a class.")
	}

	value, _ := e.environment.GetAt(distance, "super")
	superclass, ok := value.(*Class)
	if !ok {
		return nil, newRuntimeError(x.Keyword, "Superclass must be a class.")
	}

	object, _ := e.environment.GetAt(distance-1, "this")

	var method *Function
	if _, static := object.(*Class); static {
		method = superclass.FindStatic(x.Method.Lexeme)
	} else {
		method = superclass.FindMethod(x.Method.Lexeme)
	}

	if method == nil {
		return nil, newRuntimeError(x.Method, "Undefined property '%s'.", x.Method.Lexeme)
	}

	return e.bind(method, object, x.Method)
}

func (e *Evaluator) bind(method *Function, this any, at token.Token) (any, error) {
	bound := method.Bind(this)
	if bound.IsGetter() {
		return e.invoke(bound, nil, at)
	}

	return bound, nil
}

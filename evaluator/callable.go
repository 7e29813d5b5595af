package eval

import (
	"github.com/havrydotdev/treelox/ast"
	env "github.com/havrydotdev/treelox/environment"
)

type Callable interface {
	Arity() uint8
	Call(e *Evaluator, args []any) (any, error)
}

type NativeFun struct {
	arity uint8
	call  func(e *Evaluator, args []any) (any, error)
}

func NewNativeFun(arity uint8, call func(e *Evaluator, args []any) (any, error)) *NativeFun {
	return &NativeFun{arity, call}
}

func (c *NativeFun) Arity() uint8 {
	return c.arity
}

func (c *NativeFun) Call(e *Evaluator, args []any) (any, error) {
	return c.call(e, args)
}

func (c *NativeFun) String() string {
	return "<native fn>"
}

// Function is a user-defined function or method together with the frame
// it was declared in.
type Function struct {
	declaration   *ast.Function
	closure       *env.Env
	isInitializer bool
}

func newFunction(declaration *ast.Function, closure *env.Env) *Function {
	return &Function{
		declaration:   declaration,
		closure:       closure,
		isInitializer: declaration.Kind == ast.KindInitializer,
	}
}

func (f *Function) Arity() uint8 {
	return uint8(len(f.declaration.Params))
}

// Call runs the body in a fresh frame whose parent is the closure, not the
// caller's frame.
func (f *Function) Call(e *Evaluator, args []any) (any, error) {
	environment := env.NewChild(f.closure)
	for i, param := range f.declaration.Params {
		environment.Define(param.Lexeme, args[i])
	}

	res, err := e.executeBlock(f.declaration.Body, environment)
	if err != nil {
		return nil, err
	}

	// initializers hand back the instance even after a bare return
	if f.isInitializer {
		this, _ := f.closure.GetAt(0, "this")
		return this, nil
	}

	if res.flow == flowReturn {
		return res.value, nil
	}

	return nil, nil
}

// Bind returns a copy of f whose closure defines this.
func (f *Function) Bind(this any) *Function {
	environment := env.NewChild(f.closure)
	environment.Define("this", this)

	return &Function{declaration: f.declaration, closure: environment, isInitializer: f.isInitializer}
}

func (f *Function) IsGetter() bool {
	return f.declaration.Kind == ast.KindGetter
}

func (f *Function) Name() string {
	return f.declaration.Name.Lexeme
}

func (f *Function) String() string {
	return "<fn " + f.Name() + ">"
}

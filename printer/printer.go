// Package printer renders parsed programs as fully parenthesized text, for
// example "-123 * (45.67)" becomes "(* (- 123) (group 45.67))". It is a
// debugging aid and is never consulted when running a program.
package printer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/havrydotdev/treelox/ast"
	"github.com/havrydotdev/treelox/token"
)

type Printer interface {
	Print() string
}

// implements Printer
type PrintFunc func() string

func (fn PrintFunc) Print() string {
	return fn()
}

// Algebra builds printers straight from the parser.
type Algebra struct{}

var _ ast.Alg[Printer, Printer] = Algebra{}

// Print renders p, treating a missing printer as an empty string.
func Print(p Printer) string {
	if p == nil {
		return ""
	}

	return p.Print()
}

func (Algebra) Grouping(expr Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("group", expr)
	})
}

func (Algebra) Literal(value any) Printer {
	return PrintFunc(func() string {
		switch v := value.(type) {
		case nil:
			return "nil"
		case float64:
			return strconv.FormatFloat(v, 'f', -1, 64)
		default:
			return fmt.Sprint(v)
		}
	})
}

func (Algebra) Variable(name token.Token) Printer {
	return PrintFunc(func() string {
		return name.Lexeme
	})
}

func (Algebra) Get(object Printer, name token.Token) Printer {
	return PrintFunc(func() string {
		return parenthesize(". "+name.Lexeme, object)
	})
}

func (Algebra) Unary(op token.Token, right Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize(op.Lexeme, right)
	})
}

func (Algebra) Assign(name token.Token, value Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("= "+name.Lexeme, value)
	})
}

func (Algebra) Binary(op token.Token, left, right Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize(op.Lexeme, left, right)
	})
}

func (Algebra) Logical(op token.Token, left, right Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize(op.Lexeme, left, right)
	})
}

func (Algebra) Call(callee Printer, _ token.Token, args []Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("call", append([]Printer{callee}, args...)...)
	})
}

func (Algebra) Set(object Printer, name token.Token, value Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("= . "+name.Lexeme, object, value)
	})
}

func (Algebra) This(keyword token.Token) Printer {
	return PrintFunc(func() string {
		return keyword.Lexeme
	})
}

func (Algebra) Super(_ token.Token, method token.Token) Printer {
	return PrintFunc(func() string {
		return "(super " + method.Lexeme + ")"
	})
}

func (Algebra) Print(expr Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("print", expr)
	})
}

func (Algebra) Block(stmts []Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("block", stmts...)
	})
}

func (Algebra) While(cond Printer, body Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize("while", cond, body)
	})
}

func (Algebra) ExprStatement(expr Printer) Printer {
	return PrintFunc(func() string {
		return parenthesize(";", expr)
	})
}

func (Algebra) If(cond Printer, then Printer, _else Printer) Printer {
	return PrintFunc(func() string {
		if _else == nil {
			return parenthesize("if", cond, then)
		}

		return parenthesize("if-else", cond, then, _else)
	})
}

func (Algebra) Var(name token.Token, init Printer) Printer {
	return PrintFunc(func() string {
		if init == nil {
			return parenthesize("var " + name.Lexeme)
		}

		return parenthesize("var "+name.Lexeme, init)
	})
}

func (Algebra) Return(_ token.Token, value Printer) Printer {
	return PrintFunc(func() string {
		if value == nil {
			return parenthesize("return")
		}

		return parenthesize("return", value)
	})
}

func (Algebra) Class(name token.Token, superclass Printer, methods []Printer) Printer {
	return PrintFunc(func() string {
		head := "class " + name.Lexeme
		if superclass != nil {
			head += " < " + superclass.Print()
		}

		return parenthesize(head, methods...)
	})
}

func (Algebra) Function(name token.Token, params []token.Token, body []Printer, kind ast.FunctionKind) Printer {
	return PrintFunc(func() string {
		names := make([]string, 0, len(params))
		for _, param := range params {
			names = append(names, param.Lexeme)
		}

		head := fmt.Sprintf("%s %s (%s)", kind, name.Lexeme, strings.Join(names, " "))
		if kind == ast.KindGetter {
			head = fmt.Sprintf("%s %s", kind, name.Lexeme)
		}

		return parenthesize(head, body...)
	})
}

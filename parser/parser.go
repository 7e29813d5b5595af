package parser

import (
	"fmt"
	"slices"

	"github.com/havrydotdev/treelox/ast"
	"github.com/havrydotdev/treelox/diag"
	"github.com/havrydotdev/treelox/token"
)

const maxArgs = 255

type targetKind uint8

const (
	targetNone targetKind = iota
	targetVariable
	targetProperty
)

// target remembers the most recent variable or property access together
// with the token span it covers. An assignment is only valid when that
// span is exactly its left-hand side.
type target[E any] struct {
	kind       targetKind
	start, end int
	name       token.Token
	object     E
}

type Parser[E any, S any] struct {
	current int
	errors  []error
	tokens  []token.Token
	alg     ast.Alg[E, S]
	target  target[E]
}

func New[E any, S any](tokens []token.Token, alg ast.Alg[E, S]) *Parser[E, S] {
	return &Parser[E, S]{tokens: tokens, alg: alg, current: 0}
}

// Parse reads a whole program. A malformed declaration is recorded and
// skipped so that later errors are still found; callers must not run the
// result when any error is returned.
func (p *Parser[E, S]) Parse() ([]S, []error) {
	var stmts []S
	for !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			p.errors = append(p.errors, err)
			p.synchronize()
			continue
		}

		stmts = append(stmts, stmt)
	}

	return stmts, p.errors
}

// ParseExpression reads a single expression that must span the whole
// input.
func (p *Parser[E, S]) ParseExpression() (E, []error) {
	expr, err := p.expression()
	if err != nil {
		p.errors = append(p.errors, err)
		return expr, p.errors
	}

	if !p.isAtEnd() {
		p.errors = append(p.errors, diag.AtToken(p.peek(), "Expect end of expression."))
	}

	return expr, p.errors
}

func (p *Parser[E, S]) declaration() (S, error) {
	switch {
	case p.match(token.Class):
		return p.classDeclaration()
	case p.match(token.Fun):
		return p.function(ast.KindFunction)
	case p.match(token.Var):
		return p.varDeclaration()
	default:
		return p.statement()
	}
}

func (p *Parser[E, S]) classDeclaration() (S, error) {
	var zero S

	name, err := p.consume(token.Identifier, "Expect class name.")
	if err != nil {
		return zero, err
	}

	var superclass E
	if p.match(token.Less) {
		superName, err := p.consume(token.Identifier, "Expect superclass name.")
		if err != nil {
			return zero, err
		}

		superclass = p.alg.Variable(superName)
	}

	_, err = p.consume(token.LeftBrace, "Expect '{' before class body.")
	if err != nil {
		return zero, err
	}

	var methods []S
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		kind := ast.KindMethod
		if p.match(token.Class) {
			kind = ast.KindStatic
		}

		fun, err := p.function(kind)
		if err != nil {
			return zero, err
		}

		methods = append(methods, fun)
	}

	_, err = p.consume(token.RightBrace, "Expect '}' after class body.")
	if err != nil {
		return zero, err
	}

	return p.alg.Class(name, superclass, methods), nil
}

// function parses a function or method declaration after its introducing
// keyword. A plain method written without a parameter list is a getter and
// a method named init is an initializer.
func (p *Parser[E, S]) function(kind ast.FunctionKind) (S, error) {
	var zero S

	noun := "method"
	if kind == ast.KindFunction {
		noun = "function"
	}

	name, err := p.consume(token.Identifier, fmt.Sprintf("Expect %s name.", noun))
	if err != nil {
		return zero, err
	}

	var params []token.Token
	if kind == ast.KindMethod && p.check(token.LeftBrace) {
		kind = ast.KindGetter
	} else {
		_, err = p.consume(token.LeftParen, fmt.Sprintf("Expect '(' after %s name.", noun))
		if err != nil {
			return zero, err
		}

		if !p.check(token.RightParen) {
			for {
				if len(params) >= maxArgs {
					p.report(diag.AtToken(p.peek(), "Can't have more than 255 parameters."))
				}

				paramName, err := p.consume(token.Identifier, "Expect parameter name.")
				if err != nil {
					return zero, err
				}

				params = append(params, paramName)

				if !p.match(token.Comma) {
					break
				}
			}
		}

		_, err = p.consume(token.RightParen, "Expect ')' after parameters.")
		if err != nil {
			return zero, err
		}

		if kind == ast.KindMethod && name.Lexeme == "init" {
			kind = ast.KindInitializer
		}
	}

	_, err = p.consume(token.LeftBrace, fmt.Sprintf("Expect '{' before %s body.", noun))
	if err != nil {
		return zero, err
	}

	body, err := p.blockStmts()
	if err != nil {
		return zero, err
	}

	_, err = p.consume(token.RightBrace, "Expect '}' after block.")
	if err != nil {
		return zero, err
	}

	return p.alg.Function(name, params, body, kind), nil
}

func (p *Parser[E, S]) varDeclaration() (S, error) {
	var zero S

	name, err := p.consume(token.Identifier, "Expect variable name.")
	if err != nil {
		return zero, err
	}

	var init E
	if p.match(token.Equal) {
		init, err = p.expression()
		if err != nil {
			return zero, err
		}
	}

	_, err = p.consume(token.Semicolon, "Expect ';' after variable declaration.")
	if err != nil {
		return zero, err
	}

	return p.alg.Var(name, init), nil
}

func (p *Parser[E, S]) statement() (S, error) {
	switch {
	case p.match(token.For):
		return p.forStatement()
	case p.match(token.If):
		return p.ifStatement()
	case p.match(token.Print):
		return p.printStatement()
	case p.match(token.Return):
		return p.returnStatement()
	case p.match(token.While):
		return p.whileStatement()
	case p.match(token.LeftBrace):
		return p.block()
	default:
		return p.expressionStatement()
	}
}

func (p *Parser[E, S]) printStatement() (S, error) {
	var zero S

	value, err := p.expression()
	if err != nil {
		return zero, err
	}

	_, err = p.consume(token.Semicolon, "Expect ';' after value.")
	if err != nil {
		return zero, err
	}

	return p.alg.Print(value), nil
}

func (p *Parser[E, S]) returnStatement() (S, error) {
	var zero S
	keyword := p.previous()

	var value E
	var err error
	if !p.check(token.Semicolon) {
		value, err = p.expression()
		if err != nil {
			return zero, err
		}
	}

	_, err = p.consume(token.Semicolon, "Expect ';' after return value.")
	if err != nil {
		return zero, err
	}

	return p.alg.Return(keyword, value), nil
}

// forStatement desugars
//
//	for (init; cond; incr) body
//
// into
//
//	{ init; while (cond) { body; incr; } }
func (p *Parser[E, S]) forStatement() (S, error) {
	var zero S

	_, err := p.consume(token.LeftParen, "Expect '(' after 'for'.")
	if err != nil {
		return zero, err
	}

	var init S
	hasInit := true
	switch {
	case p.match(token.Semicolon):
		hasInit = false
	case p.match(token.Var):
		init, err = p.varDeclaration()
	default:
		init, err = p.expressionStatement()
	}

	if err != nil {
		return zero, err
	}

	cond := p.alg.Literal(true)
	if !p.check(token.Semicolon) {
		cond, err = p.expression()
		if err != nil {
			return zero, err
		}
	}

	_, err = p.consume(token.Semicolon, "Expect ';' after loop condition.")
	if err != nil {
		return zero, err
	}

	var incr E
	hasIncr := false
	if !p.check(token.RightParen) {
		incr, err = p.expression()
		if err != nil {
			return zero, err
		}

		hasIncr = true
	}

	_, err = p.consume(token.RightParen, "Expect ')' after for clauses.")
	if err != nil {
		return zero, err
	}

	body, err := p.statement()
	if err != nil {
		return zero, err
	}

	if hasIncr {
		body = p.alg.Block([]S{body, p.alg.ExprStatement(incr)})
	}

	body = p.alg.While(cond, body)

	if hasInit {
		body = p.alg.Block([]S{init, body})
	}

	return body, nil
}

func (p *Parser[E, S]) whileStatement() (S, error) {
	var zero S

	_, err := p.consume(token.LeftParen, "Expect '(' after 'while'.")
	if err != nil {
		return zero, err
	}

	cond, err := p.expression()
	if err != nil {
		return zero, err
	}

	_, err = p.consume(token.RightParen, "Expect ')' after condition.")
	if err != nil {
		return zero, err
	}

	body, err := p.statement()
	if err != nil {
		return zero, err
	}

	return p.alg.While(cond, body), nil
}

func (p *Parser[E, S]) ifStatement() (S, error) {
	var zero S

	_, err := p.consume(token.LeftParen, "Expect '(' after 'if'.")
	if err != nil {
		return zero, err
	}

	cond, err := p.expression()
	if err != nil {
		return zero, err
	}

	_, err = p.consume(token.RightParen, "Expect ')' after if condition.")
	if err != nil {
		return zero, err
	}

	then, err := p.statement()
	if err != nil {
		return zero, err
	}

	var _else S
	if p.match(token.Else) {
		_else, err = p.statement()
		if err != nil {
			return zero, err
		}
	}

	return p.alg.If(cond, then, _else), nil
}

func (p *Parser[E, S]) blockStmts() ([]S, error) {
	var stmts []S
	for !p.check(token.RightBrace) && !p.isAtEnd() {
		stmt, err := p.declaration()
		if err != nil {
			return nil, err
		}

		stmts = append(stmts, stmt)
	}

	return stmts, nil
}

func (p *Parser[E, S]) block() (S, error) {
	var zero S

	stmts, err := p.blockStmts()
	if err != nil {
		return zero, err
	}

	_, err = p.consume(token.RightBrace, "Expect '}' after block.")
	if err != nil {
		return zero, err
	}

	return p.alg.Block(stmts), nil
}

func (p *Parser[E, S]) expressionStatement() (S, error) {
	var zero S

	expr, err := p.expression()
	if err != nil {
		return zero, err
	}

	_, err = p.consume(token.Semicolon, "Expect ';' after expression.")
	if err != nil {
		return zero, err
	}

	return p.alg.ExprStatement(expr), nil
}

func (p *Parser[E, S]) expression() (E, error) {
	return p.assignment()
}

func (p *Parser[E, S]) assignment() (E, error) {
	start := p.current
	expr, err := p.or()
	if err != nil {
		return expr, err
	}

	lhs, end := p.target, p.current
	if !p.match(token.Equal) {
		return expr, nil
	}

	equals := p.previous()
	value, err := p.assignment()
	if err != nil {
		return expr, err
	}

	if lhs.start != start || lhs.end != end {
		// not a variable or property access, report and keep going
		p.report(diag.AtToken(equals, "Invalid assignment target."))
		return expr, nil
	}

	switch lhs.kind {
	case targetVariable:
		return p.alg.Assign(lhs.name, value), nil
	case targetProperty:
		return p.alg.Set(lhs.object, lhs.name, value), nil
	}

	p.report(diag.AtToken(equals, "Invalid assignment target."))
	return expr, nil
}

func (p *Parser[E, S]) or() (E, error) {
	expr, err := p.and()
	if err != nil {
		return expr, err
	}

	for p.match(token.Or) {
		op := p.previous()
		right, err := p.and()
		if err != nil {
			return expr, err
		}

		expr = p.alg.Logical(op, expr, right)
	}

	return expr, nil
}

func (p *Parser[E, S]) and() (E, error) {
	expr, err := p.equality()
	if err != nil {
		return expr, err
	}

	for p.match(token.And) {
		op := p.previous()
		right, err := p.equality()
		if err != nil {
			return expr, err
		}

		expr = p.alg.Logical(op, expr, right)
	}

	return expr, nil
}

func (p *Parser[E, S]) equality() (E, error) {
	return p.binary(p.comparison, token.BangEqual, token.EqualEqual)
}

func (p *Parser[E, S]) comparison() (E, error) {
	return p.binary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser[E, S]) term() (E, error) {
	return p.binary(p.factor, token.Minus, token.Plus)
}

func (p *Parser[E, S]) factor() (E, error) {
	return p.binary(p.unary, token.Slash, token.Star)
}

// binary parses a left-associative chain of operands joined by any of ops.
func (p *Parser[E, S]) binary(operand func() (E, error), ops ...token.Kind) (E, error) {
	expr, err := operand()
	if err != nil {
		return expr, err
	}

	for p.match(ops...) {
		op := p.previous()
		right, err := operand()
		if err != nil {
			return expr, err
		}

		expr = p.alg.Binary(op, expr, right)
	}

	return expr, nil
}

func (p *Parser[E, S]) unary() (E, error) {
	if p.match(token.Bang, token.Minus) {
		op := p.previous()
		right, err := p.unary()
		if err != nil {
			return right, err
		}

		return p.alg.Unary(op, right), nil
	}

	return p.call()
}

func (p *Parser[E, S]) call() (E, error) {
	start := p.current
	expr, err := p.primary()
	if err != nil {
		return expr, err
	}

	for {
		if p.match(token.LeftParen) {
			expr, err = p.finishCall(expr)
			if err != nil {
				return expr, err
			}
		} else if p.match(token.Dot) {
			name, err := p.consume(token.Identifier, "Expect property name after '.'.")
			if err != nil {
				return expr, err
			}

			p.target = target[E]{kind: targetProperty, start: start, end: p.current, name: name, object: expr}
			expr = p.alg.Get(expr, name)
		} else {
			break
		}
	}

	return expr, nil
}

func (p *Parser[E, S]) finishCall(callee E) (E, error) {
	var args []E

	if !p.check(token.RightParen) {
		for {
			if len(args) >= maxArgs {
				p.report(diag.AtToken(p.peek(), "Can't have more than 255 arguments."))
			}

			expr, err := p.expression()
			if err != nil {
				return callee, err
			}

			args = append(args, expr)

			if !p.match(token.Comma) {
				break
			}
		}
	}

	paren, err := p.consume(token.RightParen, "Expect ')' after arguments.")
	if err != nil {
		return callee, err
	}

	return p.alg.Call(callee, paren, args), nil
}

func (p *Parser[E, S]) primary() (E, error) {
	var zero E

	switch {
	case p.match(token.False):
		return p.alg.Literal(false), nil
	case p.match(token.True):
		return p.alg.Literal(true), nil
	case p.match(token.Nil):
		return p.alg.Literal(nil), nil
	case p.match(token.Number, token.String):
		return p.alg.Literal(p.previous().Literal), nil
	case p.match(token.Super):
		keyword := p.previous()
		if _, err := p.consume(token.Dot, "Expect '.' after 'super'."); err != nil {
			return zero, err
		}

		method, err := p.consume(token.Identifier, "Expect superclass method name.")
		if err != nil {
			return zero, err
		}

		return p.alg.Super(keyword, method), nil
	case p.match(token.This):
		return p.alg.This(p.previous()), nil
	case p.match(token.Identifier):
		name := p.previous()
		p.target = target[E]{kind: targetVariable, start: p.current - 1, end: p.current, name: name}
		return p.alg.Variable(name), nil
	case p.match(token.LeftParen):
		expr, err := p.expression()
		if err != nil {
			return zero, err
		}

		_, err = p.consume(token.RightParen, "Expect ')' after expression.")
		if err != nil {
			return zero, err
		}

		return p.alg.Grouping(expr), nil
	}

	return zero, diag.AtToken(p.peek(), "Expect expression.")
}

// synchronize discards tokens until the start of the next statement.
func (p *Parser[E, S]) synchronize() {
	p.advance()

	for !p.isAtEnd() {
		if p.previous().Kind == token.Semicolon {
			return
		}

		switch p.peek().Kind {
		case token.Class, token.Fun, token.Var, token.For, token.If, token.While, token.Print, token.Return:
			return
		}

		p.advance()
	}
}

// report records an error that does not leave the parser confused, so
// parsing carries on without synchronizing.
func (p *Parser[E, S]) report(err error) {
	p.errors = append(p.errors, err)
}

func (p *Parser[E, S]) consume(kind token.Kind, message string) (token.Token, error) {
	if p.check(kind) {
		return p.advance(), nil
	}

	return p.peek(), diag.AtToken(p.peek(), message)
}

func (p *Parser[E, S]) match(kinds ...token.Kind) bool {
	if slices.ContainsFunc(kinds, p.check) {
		p.advance()
		return true
	}

	return false
}

func (p *Parser[E, S]) check(kind token.Kind) bool {
	if p.isAtEnd() {
		return false
	}

	return p.peek().Kind == kind
}

func (p *Parser[E, S]) advance() token.Token {
	if !p.isAtEnd() {
		p.current++
	}

	return p.previous()
}

func (p *Parser[E, S]) isAtEnd() bool {
	return p.peek().Kind == token.Eof
}

func (p *Parser[E, S]) peek() token.Token {
	return p.tokens[p.current]
}

func (p *Parser[E, S]) previous() token.Token {
	return p.tokens[p.current-1]
}

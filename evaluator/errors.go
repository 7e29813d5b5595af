package eval

import (
	"fmt"

	"github.com/havrydotdev/treelox/token"
)

// RuntimeError aborts the running program. Token points at the source
// location that caused it.
type RuntimeError struct {
	Token   token.Token
	Message string
}

func newRuntimeError(tok token.Token, format string, args ...any) *RuntimeError {
	return &RuntimeError{Token: tok, Message: fmt.Sprintf(format, args...)}
}

func (e *RuntimeError) Error() string {
	return e.Message
}

func (e *RuntimeError) Line() int {
	return e.Token.Line
}

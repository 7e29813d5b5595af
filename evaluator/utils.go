package eval

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/havrydotdev/treelox/token"
)

func isTruthy(value any) bool {
	if value == nil {
		return false
	}

	val, ok := value.(bool)
	if ok {
		return val
	}

	return true
}

// isEqual never coerces: values are equal only when they have the same
// runtime type and value. Objects compare by identity.
func isEqual(left, right any) bool {
	if left == nil && right == nil {
		return true
	}

	if left == nil {
		return false
	}

	return left == right
}

func checkNum(op token.Token, operand any) (float64, error) {
	n, ok := operand.(float64)
	if !ok {
		return 0, newRuntimeError(op, "Operand must be a number.")
	}

	return n, nil
}

func checkNums(op token.Token, left, right any) (float64, float64, error) {
	l, okl := left.(float64)
	r, okr := right.(float64)
	if !okl || !okr {
		return 0, 0, newRuntimeError(op, "Operands must be numbers.")
	}

	return l, r, nil
}

// Stringify renders a value the way print shows it.
func Stringify(value any) string {
	switch v := value.(type) {
	case nil:
		return "nil"
	case bool:
		return strconv.FormatBool(v)
	case float64:
		return strings.TrimSuffix(token.FormatNumber(v), ".0")
	case string:
		return v
	case fmt.Stringer:
		return v.String()
	default:
		return fmt.Sprint(v)
	}
}

package token

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

type Token struct {
	Kind    Kind
	Lexeme  string
	Literal any
	Line    int
}

func New(kind Kind, lexeme string, literal any, line int) Token {
	return Token{kind, lexeme, literal, line}
}

// String renders the token as "KIND lexeme literal", the format used by
// the tokenize run mode.
func (t Token) String() string {
	return fmt.Sprintf("%s %s %s", t.Kind, t.Lexeme, formatLiteral(t.Literal))
}

func formatLiteral(literal any) string {
	switch v := literal.(type) {
	case nil:
		return "null"
	case float64:
		return FormatNumber(v)
	default:
		return fmt.Sprint(v)
	}
}

// FormatNumber renders v with the fewest digits that read back as v.
// Exponents below -4 or from 16 up switch to exponent notation, and whole
// numbers written out in full keep one fractional digit: 42.0, 1.5, 1e+22.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "nan"
	case math.IsInf(v, 1):
		return "inf"
	case math.IsInf(v, -1):
		return "-inf"
	}

	e := strconv.FormatFloat(v, 'e', -1, 64)
	exp, _ := strconv.Atoi(e[strings.LastIndexByte(e, 'e')+1:])
	if exp < -4 || exp >= 16 {
		return e
	}

	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}

	return s
}

package token

import (
	"math"
	"testing"
)

func TestString(t *testing.T) {
	tests := []struct {
		name string
		tok  Token
		want string
	}{
		{"punctuation", New(LeftParen, "(", nil, 1), "LEFT_PAREN ( null"},
		{"integral number", New(Number, "42", 42.0, 1), "NUMBER 42 42.0"},
		{"fractional number", New(Number, "1.50", 1.5, 1), "NUMBER 1.50 1.5"},
		{"huge number", New(Number, "1000000000000000000000", 1e21, 1), "NUMBER 1000000000000000000000 1e+21"},
		{"string", New(String, `"hi"`, "hi", 3), `STRING "hi" hi`},
		{"keyword", New(While, "while", nil, 1), "WHILE while null"},
		{"eof", New(Eof, "", nil, 9), "EOF  null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.tok.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestKindNames(t *testing.T) {
	for k := LeftParen; k <= Eof; k++ {
		if k.String() == "" || k.String() == "UNKNOWN" {
			t.Errorf("kind %d has no name", k)
		}
	}

	if got := Kind(200).String(); got != "UNKNOWN" {
		t.Errorf("Kind(200).String() = %q, want UNKNOWN", got)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := map[float64]string{
		0:                  "0.0",
		-1:                 "-1.0",
		1.5:                "1.5",
		0.0001:             "0.0001",
		0.00001:            "1e-05",
		1.5e-7:             "1.5e-07",
		1e15:               "1000000000000000.0",
		1e16:               "1e+16",
		1e22:               "1e+22",
		123456789012345678: "1.2345678901234568e+17",
		math.Inf(1):        "inf",
		math.Inf(-1):       "-inf",
	}

	for v, want := range tests {
		if got := FormatNumber(v); got != want {
			t.Errorf("FormatNumber(%v) = %q, want %q", v, got, want)
		}
	}

	if got := FormatNumber(math.NaN()); got != "nan" {
		t.Errorf("FormatNumber(NaN) = %q, want nan", got)
	}
}

package scanner

import (
	"slices"
	"strings"
	"testing"

	"github.com/havrydotdev/treelox/token"
)

func kinds(tokens []token.Token) []token.Kind {
	out := make([]token.Kind, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Kind)
	}

	return out
}

func TestBasic(t *testing.T) {
	tokens, errs := New("123 * 123").Scan()
	if len(errs) != 0 {
		t.Fatalf("Scanning failed: %v", errs)
	}

	want := []token.Kind{token.Number, token.Star, token.Number, token.Eof}
	if got := kinds(tokens); !slices.Equal(got, want) {
		t.Errorf("kinds = %v, want %v", got, want)
	}

	if tokens[0].Literal != 123.0 {
		t.Errorf("literal = %v, want 123", tokens[0].Literal)
	}
}

func TestKinds(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want []token.Kind
	}{
		{"punctuation", "(){},.-+;*/", []token.Kind{
			token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
			token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
			token.Star, token.Slash, token.Eof,
		}},
		{"two character operators", "! != = == < <= > >=", []token.Kind{
			token.Bang, token.BangEqual, token.Equal, token.EqualEqual,
			token.Less, token.LessEqual, token.Greater, token.GreaterEqual, token.Eof,
		}},
		{"greedy operators", "!==", []token.Kind{token.BangEqual, token.Equal, token.Eof}},
		{"keywords", "and class else false for fun if nil or print return super this true var while", []token.Kind{
			token.And, token.Class, token.Else, token.False, token.For, token.Fun,
			token.If, token.Nil, token.Or, token.Print, token.Return, token.Super,
			token.This, token.True, token.Var, token.While, token.Eof,
		}},
		{"identifiers", "orchid _under x1 classy", []token.Kind{
			token.Identifier, token.Identifier, token.Identifier, token.Identifier, token.Eof,
		}},
		{"line comment", "var // ignored ( ) \n x", []token.Kind{token.Var, token.Identifier, token.Eof}},
		{"block comment", "a /* b \n c */ d", []token.Kind{token.Identifier, token.Identifier, token.Eof}},
		{"trailing dot", "1.", []token.Kind{token.Number, token.Dot, token.Eof}},
		{"leading dot", ".5", []token.Kind{token.Dot, token.Number, token.Eof}},
		{"method call on number", "1.5.abs", []token.Kind{token.Number, token.Dot, token.Identifier, token.Eof}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, errs := New(tt.src).Scan()
			if len(errs) != 0 {
				t.Fatalf("unexpected errors: %v", errs)
			}

			if got := kinds(tokens); !slices.Equal(got, tt.want) {
				t.Errorf("kinds = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestLiterals(t *testing.T) {
	tokens, errs := New(`"hello" 12.75 "multi
line"`).Scan()
	if len(errs) != 0 {
		t.Fatalf("unexpected errors: %v", errs)
	}

	if tokens[0].Literal != "hello" || tokens[0].Lexeme != `"hello"` {
		t.Errorf("string token = %+v", tokens[0])
	}

	if tokens[1].Literal != 12.75 {
		t.Errorf("number literal = %v", tokens[1].Literal)
	}

	if tokens[2].Literal != "multi\nline" || tokens[2].Line != 2 {
		t.Errorf("multi-line string token = %+v", tokens[2])
	}

	if tokens[3].Kind != token.Eof || tokens[3].Line != 2 {
		t.Errorf("eof token = %+v", tokens[3])
	}
}

func TestErrorsContinue(t *testing.T) {
	tokens, errs := New("var @ x;\n# \"open").Scan()

	want := []string{
		"[line 1] Error: Unexpected character: @",
		"[line 2] Error: Unexpected character: #",
		"[line 2] Error: Unterminated string.",
	}

	if len(errs) != len(want) {
		t.Fatalf("got %d errors (%v), want %d", len(errs), errs, len(want))
	}

	for i, err := range errs {
		if err.Error() != want[i] {
			t.Errorf("error %d = %q, want %q", i, err.Error(), want[i])
		}
	}

	wantKinds := []token.Kind{token.Var, token.Identifier, token.Semicolon, token.Eof}
	if got := kinds(tokens); !slices.Equal(got, wantKinds) {
		t.Errorf("kinds = %v, want %v", got, wantKinds)
	}
}

func TestMultiByteUnexpected(t *testing.T) {
	tokens, errs := New("a é b").Scan()
	if len(errs) != 1 || errs[0].Error() != "[line 1] Error: Unexpected character: é" {
		t.Fatalf("errors = %v", errs)
	}

	if len(tokens) != 3 {
		t.Errorf("got %d tokens, want 3", len(tokens))
	}
}

// Rescanning the lexemes of a token stream joined by whitespace yields the
// same stream.
func TestRoundTrip(t *testing.T) {
	sources := []string{
		`var greeting = "hi"; // comment`,
		"fun add(a, b) { return a + b >= 10.25 and !false; }",
		"class B < A { init() { super.init(); this.x = nil; } }",
		"for (var i = 0; i <= 3; i = i - 1) print i != 2 == true;",
	}

	for _, src := range sources {
		original, errs := New(src).Scan()
		if len(errs) != 0 {
			t.Fatalf("scan %q: %v", src, errs)
		}

		lexemes := make([]string, 0, len(original))
		for _, tok := range original {
			lexemes = append(lexemes, tok.Lexeme)
		}

		rescanned, errs := New(strings.Join(lexemes, " ")).Scan()
		if len(errs) != 0 {
			t.Fatalf("rescan %q: %v", src, errs)
		}

		if len(rescanned) != len(original) {
			t.Fatalf("rescan of %q produced %d tokens, want %d", src, len(rescanned), len(original))
		}

		for i := range original {
			a, b := original[i], rescanned[i]
			if a.Kind != b.Kind || a.Lexeme != b.Lexeme || a.Literal != b.Literal {
				t.Errorf("token %d: got %v, want %v", i, b, a)
			}
		}
	}
}

package lexer_test

import (
	"testing"

	"github.com/sysmod-lang/sysmod/internal/lexer"
	"github.com/sysmod-lang/sysmod/internal/token"
)

func tokenize(input string) []token.Token {
	return lexer.New(input).Tokenize()
}

func TestTokenTypes(t *testing.T) {
	testCases := []struct {
		name  string
		input string
		want  []token.Type
	}{
		{"punctuation", "{ } ( ) [ ] ; , .",
			[]token.Type{token.LBRACE, token.RBRACE, token.LPAREN, token.RPAREN,
				token.LBRACKET, token.RBRACKET, token.SEMI, token.COMMA, token.DOT, token.EOF}},
		{"colon_family", ": :: :> :>>",
			[]token.Type{token.COLON, token.SCOPE, token.SPECIALIZES, token.REDEFINES, token.EOF}},
		{"operators", "+ - * / % ** == != < <= > >= = ~ -> ? @ #",
			[]token.Type{token.PLUS, token.MINUS, token.STAR, token.SLASH, token.PERCENT,
				token.POWER, token.EQ, token.NOT_EQ, token.LT, token.LE, token.GT, token.GE,
				token.ASSIGN, token.CONJUGATES, token.ARROW, token.QUESTION, token.AT,
				token.HASH, token.EOF}},
		{"keywords", "package class feature subsets redefines typed by import alias",
			[]token.Type{token.PACKAGE, token.CLASS, token.FEATURE, token.SUBSETS,
				token.REDEFINES_KW, token.TYPED, token.BY, token.IMPORT, token.ALIAS, token.EOF}},
		{"range_vs_real", "1..3",
			[]token.Type{token.INT, token.DOTDOT, token.INT, token.EOF}},
		{"real", "3.14",
			[]token.Type{token.REAL, token.EOF}},
		{"real_exponent", "1.5e-3",
			[]token.Type{token.REAL, token.EOF}},
		{"recursive_import", "P::*::**",
			[]token.Type{token.IDENT, token.SCOPE, token.STAR, token.SCOPE, token.POWER, token.EOF}},
		{"line_comment", "class // rest ignored\nA",
			[]token.Type{token.CLASS, token.IDENT, token.EOF}},
		{"block_comment", "class //* spanning\nlines *// A",
			[]token.Type{token.CLASS, token.IDENT, token.EOF}},
		{"illegal", "!",
			[]token.Type{token.ILLEGAL, token.EOF}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			toks := tokenize(tc.input)
			if len(toks) != len(tc.want) {
				t.Fatalf("got %d tokens, want %d: %v", len(toks), len(tc.want), toks)
			}
			for i, tok := range toks {
				if tok.Type != tc.want[i] {
					t.Errorf("token %d: got %q, want %q", i, tok.Type, tc.want[i])
				}
			}
		})
	}
}

func TestQuotedName(t *testing.T) {
	toks := tokenize("'hello world'")
	if toks[0].Type != token.IDENT {
		t.Fatalf("got %q, want IDENT", toks[0].Type)
	}
	if toks[0].Literal != "hello world" {
		t.Errorf("literal: got %q, want %q", toks[0].Literal, "hello world")
	}
	if toks[0].Lexeme != "'hello world'" {
		t.Errorf("lexeme: got %q, want raw quoted form", toks[0].Lexeme)
	}
}

func TestStringEscapes(t *testing.T) {
	toks := tokenize(`"a\tb\n"`)
	if toks[0].Type != token.STRING {
		t.Fatalf("got %q, want STRING", toks[0].Type)
	}
	if toks[0].Literal != "a\tb\n" {
		t.Errorf("literal: got %q", toks[0].Literal)
	}
}

func TestPositions(t *testing.T) {
	toks := tokenize("class\n  A;")
	if toks[0].Line != 1 || toks[0].Column != 1 {
		t.Errorf("class at %d:%d, want 1:1", toks[0].Line, toks[0].Column)
	}
	if toks[1].Line != 2 || toks[1].Column != 3 {
		t.Errorf("A at %d:%d, want 2:3", toks[1].Line, toks[1].Column)
	}
}

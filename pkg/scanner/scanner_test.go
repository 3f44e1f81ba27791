package scanner

import (
	"errors"
	"testing"

	"github.com/Shah-Siddharth/golox/pkg/token"
)

func tokenTypes(tokens []token.Token) []token.Type {
	out := make([]token.Type, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, tok.Type)
	}
	return out
}

func TestScanOperatorsUseMaximalMunch(t *testing.T) {
	tokens, err := Scan("!= == <= >= ! = < > / // trailing comment")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []token.Type{
		token.BangEqual, token.EqualEqual, token.LessEqual, token.GreaterEqual,
		token.Bang, token.Equal, token.Less, token.Greater, token.Slash, token.EOF,
	}
	got := tokenTypes(tokens)
	if len(got) != len(want) {
		t.Fatalf("expected %d tokens, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token %d: expected %s, got %s", i, want[i], got[i])
		}
	}
}

func TestScanLiteralsAndKeywords(t *testing.T) {
	tokens, err := Scan("var answer = 42.5; print \"hi\"; classy class")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Type != token.Var || tokens[1].Type != token.Identifier || tokens[1].Lexeme != "answer" {
		t.Fatalf("unexpected leading tokens %v %v", tokens[0], tokens[1])
	}
	num := tokens[3]
	if num.Type != token.Number || num.Literal.(float64) != 42.5 {
		t.Fatalf("expected number 42.5, got %v", num)
	}
	str := tokens[6]
	if str.Type != token.String || str.Literal.(string) != "hi" || str.Lexeme != "\"hi\"" {
		t.Fatalf("expected string hi, got %v", str)
	}
	if tokens[8].Type != token.Identifier || tokens[9].Type != token.Class {
		t.Fatalf("expected identifier then class keyword, got %v %v", tokens[8], tokens[9])
	}
}

func TestScanTracksLinesAcrossMultilineStrings(t *testing.T) {
	tokens, err := Scan("\"a\nb\"\nx")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Line != 2 {
		t.Fatalf("expected string token to end on line 2, got %d", tokens[0].Line)
	}
	if tokens[1].Line != 3 {
		t.Fatalf("expected identifier on line 3, got %d", tokens[1].Line)
	}
}

func TestScanReportsAllErrors(t *testing.T) {
	tokens, err := Scan("@ var x;\n# \"open")
	if err == nil {
		t.Fatalf("expected scan errors")
	}
	var list ErrorList
	if !errors.As(err, &list) {
		t.Fatalf("expected ErrorList, got %T", err)
	}
	if len(list) != 3 {
		t.Fatalf("expected 3 errors, got %d: %v", len(list), list)
	}
	if list[0].Line != 1 || list[1].Line != 2 || list[2].Message != "Unterminated string." {
		t.Fatalf("unexpected errors: %v", list)
	}
	if tokens[len(tokens)-1].Type != token.EOF {
		t.Fatalf("expected EOF terminator even on error")
	}
}

func TestNumberWithTrailingDotIsNotFractional(t *testing.T) {
	tokens, err := Scan("12.")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tokens[0].Type != token.Number || tokens[1].Type != token.Dot {
		t.Fatalf("expected NUMBER DOT, got %v", tokenTypes(tokens))
	}
}

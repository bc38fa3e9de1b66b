package parser

import "testing"

func lexKinds(input string) []TokenKind {
	lexer := NewLexer([]byte(input), "test.cs")
	var got []TokenKind
	for {
		tok := lexer.NextToken()
		if !tok.Kind.IsTrivia() {
			got = append(got, tok.Kind)
		}
		if tok.Kind == TokenEOF {
			return got
		}
	}
}

func TestLexer(t *testing.T) {
	tests := []struct {
		input    string
		expected []TokenKind
	}{
		{"", []TokenKind{TokenEOF}},
		{"class", []TokenKind{TokenClass, TokenEOF}},
		{"\uFEFFnamespace N;", []TokenKind{TokenNamespace, TokenIdent, TokenSemicolon, TokenEOF}},
		{"\uFEFF", []TokenKind{TokenEOF}},
		{"public class Main {}", []TokenKind{TokenPublic, TokenClass, TokenIdent, TokenLBrace, TokenRBrace, TokenEOF}},
		{"123", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"0xFF", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"10UL", []TokenKind{TokenIntLiteral, TokenEOF}},
		{"3.14", []TokenKind{TokenRealLiteral, TokenEOF}},
		{"1.5m", []TokenKind{TokenRealLiteral, TokenEOF}},
		{"\"hello\"", []TokenKind{TokenStringLiteral, TokenEOF}},
		{`"a \" b"`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{`@"C:\path"`, []TokenKind{TokenStringLiteral, TokenEOF}},
		{`$"x = {x}"`, []TokenKind{TokenInterpolatedString, TokenEOF}},
		{`$"{(a ? "b" : "c")}"`, []TokenKind{TokenInterpolatedString, TokenEOF}},
		{`"""raw "quoted" text"""`, []TokenKind{TokenRawString, TokenEOF}},
		{"'a'", []TokenKind{TokenCharLiteral, TokenEOF}},
		{`'\''`, []TokenKind{TokenCharLiteral, TokenEOF}},
		{"// comment\nclass", []TokenKind{TokenClass, TokenEOF}},
		{"/* block */ class", []TokenKind{TokenClass, TokenEOF}},
		{"#region Foo\nclass", []TokenKind{TokenClass, TokenEOF}},
		{"@class", []TokenKind{TokenIdent, TokenEOF}},
		{"get set var", []TokenKind{TokenIdent, TokenIdent, TokenIdent, TokenEOF}},
		{"+ - * / %", []TokenKind{TokenPlus, TokenMinus, TokenStar, TokenSlash, TokenPercent, TokenEOF}},
		{"== != < <= > >=", []TokenKind{TokenEQ, TokenNE, TokenLT, TokenLE, TokenGT, TokenGE, TokenEOF}},
		{"&& || !", []TokenKind{TokenAnd, TokenOr, TokenNot, TokenEOF}},
		{"=> -> ::", []TokenKind{TokenArrow, TokenPointerArrow, TokenColonColon, TokenEOF}},
		{"?. ?? ??=", []TokenKind{TokenQuestionDot, TokenCoalesce, TokenCoalesceAssign, TokenEOF}},
		{">>", []TokenKind{TokenGT, TokenGT, TokenEOF}},
		{"List<List<int>>", []TokenKind{TokenIdent, TokenLT, TokenIdent, TokenLT, TokenInt, TokenGT, TokenGT, TokenEOF}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := lexKinds(tt.input)
			if len(got) != len(tt.expected) {
				t.Fatalf("got %v, want %v", got, tt.expected)
			}
			for i := range got {
				if got[i] != tt.expected[i] {
					t.Errorf("token %d: got %v, want %v", i, got[i], tt.expected[i])
				}
			}
		})
	}
}

func TestLexerPositions(t *testing.T) {
	lexer := NewLexer([]byte("class\n  Foo"), "test.cs")
	var idents []Token
	for {
		tok := lexer.NextToken()
		if tok.Kind == TokenEOF {
			break
		}
		if !tok.Kind.IsTrivia() {
			idents = append(idents, tok)
		}
	}
	if len(idents) != 2 {
		t.Fatalf("got %d tokens, want 2", len(idents))
	}
	foo := idents[1]
	if foo.Literal != "Foo" {
		t.Errorf("literal = %q, want %q", foo.Literal, "Foo")
	}
	if foo.Span.Start.Line != 2 || foo.Span.Start.Column != 3 {
		t.Errorf("position = %s, want 2:3", foo.Span.Start)
	}
}

func TestLexerSkipsByteOrderMark(t *testing.T) {
	input := "\uFEFFclass A"
	tok := NewLexer([]byte(input), "test.cs").NextToken()
	if tok.Kind != TokenClass || tok.Literal != "class" {
		t.Fatalf("first token = %v %q, want class", tok.Kind, tok.Literal)
	}
	if tok.Span.Start.Offset != 3 || tok.Span.Start.Line != 1 || tok.Span.Start.Column != 1 {
		t.Errorf("start = %+v, want offset 3 at 1:1", tok.Span.Start)
	}
	if input[tok.Span.Start.Offset:tok.Span.End.Offset] != "class" {
		t.Errorf("offsets do not index the input: %+v", tok.Span)
	}
}

func TestLexerDirectiveOnlyAtLineStart(t *testing.T) {
	got := lexKinds("x #y")
	for _, kind := range got {
		if kind == TokenDirective {
			t.Fatalf("got directive in %v", got)
		}
	}
}

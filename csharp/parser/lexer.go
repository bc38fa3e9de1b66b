package parser

import (
	"bytes"
	"unicode/utf8"
)

var byteOrderMark = []byte{0xEF, 0xBB, 0xBF}

type Lexer struct {
	input  []byte
	file   string
	pos    int
	line   int
	column int
}

// NewLexer returns a lexer over input. A leading UTF-8 byte order mark is
// skipped; offsets still index into input.
func NewLexer(input []byte, file string) *Lexer {
	l := &Lexer{
		input:  input,
		file:   file,
		line:   1,
		column: 1,
	}
	if bytes.HasPrefix(input, byteOrderMark) {
		l.pos = len(byteOrderMark)
	}
	return l
}

func (l *Lexer) Position() Position {
	return Position{
		File:   l.file,
		Offset: l.pos,
		Line:   l.line,
		Column: l.column,
	}
}

func (l *Lexer) peek() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	return l.input[l.pos]
}

func (l *Lexer) peekN(n int) byte {
	if l.pos+n >= len(l.input) {
		return 0
	}
	return l.input[l.pos+n]
}

func (l *Lexer) atEOF() bool {
	return l.pos >= len(l.input)
}

func (l *Lexer) advance() byte {
	if l.pos >= len(l.input) {
		return 0
	}
	ch := l.input[l.pos]
	l.pos++
	if ch == '\n' {
		l.line++
		l.column = 1
	} else {
		l.column++
	}
	return ch
}

func (l *Lexer) advanceN(n int) {
	for i := 0; i < n; i++ {
		l.advance()
	}
}

func (l *Lexer) NextToken() Token {
	startPos := l.Position()

	if l.atEOF() {
		return Token{Kind: TokenEOF, Span: Span{Start: startPos, End: startPos}}
	}

	ch := l.peek()

	if ch == '/' && l.peekN(1) == '/' {
		return l.scanLineComment(startPos)
	}
	if ch == '/' && l.peekN(1) == '*' {
		return l.scanBlockComment(startPos)
	}

	if isWhitespace(ch) {
		return l.scanWhitespace(startPos)
	}

	if ch == '#' && l.atLineStart() {
		return l.scanDirective(startPos)
	}

	if ch == '@' {
		switch {
		case l.peekN(1) == '"':
			l.advance()
			return l.scanVerbatimString(startPos, TokenStringLiteral)
		case l.peekN(1) == '$' && l.peekN(2) == '"':
			l.advanceN(2)
			return l.scanVerbatimString(startPos, TokenInterpolatedString)
		case isIdentStart(l.peekN(1)):
			l.advance()
			return l.scanIdentOrKeyword(startPos)
		}
	}

	if ch == '$' {
		n := 0
		for l.peekN(n) == '$' {
			n++
		}
		switch {
		case l.peekN(n) == '"' && l.peekN(n+1) == '"' && l.peekN(n+2) == '"':
			l.advanceN(n)
			return l.scanRawString(startPos, TokenInterpolatedString)
		case n == 1 && l.peekN(1) == '"':
			l.advance()
			return l.scanInterpolatedString(startPos)
		case n == 1 && l.peekN(1) == '@' && l.peekN(2) == '"':
			l.advanceN(2)
			return l.scanVerbatimString(startPos, TokenInterpolatedString)
		}
	}

	if isIdentStart(ch) {
		return l.scanIdentOrKeyword(startPos)
	}

	if isDigit(ch) || (ch == '.' && isDigit(l.peekN(1))) {
		return l.scanNumber(startPos)
	}

	if ch == '\'' {
		return l.scanCharLiteral(startPos)
	}

	if ch == '"' {
		if l.peekN(1) == '"' && l.peekN(2) == '"' {
			return l.scanRawString(startPos, TokenRawString)
		}
		return l.scanStringLiteral(startPos)
	}

	return l.scanOperator(startPos)
}

// atLineStart reports whether only whitespace precedes the current
// position on its line. Preprocessor directives must start a line.
func (l *Lexer) atLineStart() bool {
	for i := l.pos - 1; i >= 0; i-- {
		switch l.input[i] {
		case '\n':
			return true
		case ' ', '\t', '\r':
			continue
		default:
			return false
		}
	}
	return true
}

func (l *Lexer) scanWhitespace(start Position) Token {
	for isWhitespace(l.peek()) {
		l.advance()
	}
	return l.token(TokenWhitespace, start)
}

func (l *Lexer) scanLineComment(start Position) Token {
	l.advanceN(2)
	for !l.atEOF() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenLineComment, start)
}

func (l *Lexer) scanBlockComment(start Position) Token {
	l.advanceN(2)
	for !l.atEOF() {
		if l.peek() == '*' && l.peekN(1) == '/' {
			l.advanceN(2)
			break
		}
		l.advance()
	}
	return l.token(TokenComment, start)
}

func (l *Lexer) scanDirective(start Position) Token {
	for !l.atEOF() && l.peek() != '\n' {
		l.advance()
	}
	return l.token(TokenDirective, start)
}

func (l *Lexer) scanIdentOrKeyword(start Position) Token {
	for isIdentPart(l.peek()) {
		l.advance()
	}
	tok := l.token(TokenIdent, start)
	if tok.Literal[0] != '@' {
		tok.Kind = LookupKeyword(tok.Literal)
	}
	return tok
}

func (l *Lexer) scanNumber(start Position) Token {
	if l.peek() == '0' && (l.peekN(1) == 'x' || l.peekN(1) == 'X') {
		l.advanceN(2)
		for isHexDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
		l.scanIntegerSuffix()
		return l.token(TokenIntLiteral, start)
	}
	if l.peek() == '0' && (l.peekN(1) == 'b' || l.peekN(1) == 'B') {
		l.advanceN(2)
		for l.peek() == '0' || l.peek() == '1' || l.peek() == '_' {
			l.advance()
		}
		l.scanIntegerSuffix()
		return l.token(TokenIntLiteral, start)
	}

	isReal := false
	for isDigit(l.peek()) || l.peek() == '_' {
		l.advance()
	}

	if l.peek() == '.' && isDigit(l.peekN(1)) {
		isReal = true
		l.advance()
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	if l.peek() == 'e' || l.peek() == 'E' {
		isReal = true
		l.advance()
		if l.peek() == '+' || l.peek() == '-' {
			l.advance()
		}
		for isDigit(l.peek()) || l.peek() == '_' {
			l.advance()
		}
	}

	switch l.peek() {
	case 'f', 'F', 'd', 'D', 'm', 'M':
		isReal = true
		l.advance()
	default:
		l.scanIntegerSuffix()
	}

	if isReal {
		return l.token(TokenRealLiteral, start)
	}
	return l.token(TokenIntLiteral, start)
}

func (l *Lexer) scanIntegerSuffix() {
	for i := 0; i < 2; i++ {
		switch l.peek() {
		case 'u', 'U', 'l', 'L':
			l.advance()
		default:
			return
		}
	}
}

func (l *Lexer) scanCharLiteral(start Position) Token {
	l.advance()
	for !l.atEOF() && l.peek() != '\'' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '\'' {
		l.advance()
	}
	return l.token(TokenCharLiteral, start)
}

func (l *Lexer) scanStringLiteral(start Position) Token {
	l.skipRegularString()
	return l.token(TokenStringLiteral, start)
}

// skipRegularString consumes a "..." literal starting at the opening quote.
func (l *Lexer) skipRegularString() {
	l.advance()
	for !l.atEOF() && l.peek() != '"' && l.peek() != '\n' {
		if l.peek() == '\\' {
			l.advance()
		}
		l.advance()
	}
	if l.peek() == '"' {
		l.advance()
	}
}

// scanVerbatimString consumes @"..." where "" escapes a quote and
// newlines are allowed. The lexer must be positioned on the opening quote.
func (l *Lexer) scanVerbatimString(start Position, kind TokenKind) Token {
	l.advance()
	for !l.atEOF() {
		if l.peek() == '"' {
			if l.peekN(1) == '"' {
				l.advanceN(2)
				continue
			}
			l.advance()
			break
		}
		if kind == TokenInterpolatedString && l.peek() == '{' {
			if l.peekN(1) == '{' {
				l.advanceN(2)
				continue
			}
			l.advance()
			l.skipInterpolation()
			continue
		}
		l.advance()
	}
	return l.token(kind, start)
}

func (l *Lexer) scanInterpolatedString(start Position) Token {
	l.advance()
	for !l.atEOF() && l.peek() != '"' && l.peek() != '\n' {
		switch l.peek() {
		case '\\':
			l.advanceN(2)
		case '{':
			if l.peekN(1) == '{' {
				l.advanceN(2)
				continue
			}
			l.advance()
			l.skipInterpolation()
		default:
			l.advance()
		}
	}
	if l.peek() == '"' {
		l.advance()
	}
	return l.token(TokenInterpolatedString, start)
}

// skipInterpolation consumes an interpolation hole up to and including
// its closing brace. Nested strings and braces are balanced.
func (l *Lexer) skipInterpolation() {
	depth := 1
	for !l.atEOF() && depth > 0 {
		switch ch := l.peek(); ch {
		case '{':
			depth++
			l.advance()
		case '}':
			depth--
			l.advance()
		case '"':
			if l.peekN(1) == '"' && l.peekN(2) == '"' {
				l.scanRawString(l.Position(), TokenRawString)
			} else {
				l.skipRegularString()
			}
		case '@':
			if l.peekN(1) == '"' {
				l.advance()
				l.scanVerbatimString(l.Position(), TokenStringLiteral)
			} else {
				l.advance()
			}
		case '$':
			if l.peekN(1) == '"' {
				l.advance()
				l.scanInterpolatedString(l.Position())
			} else {
				l.advance()
			}
		case '\'':
			l.scanCharLiteral(l.Position())
		default:
			l.advance()
		}
	}
}

// scanRawString consumes a """...""" literal. The closing delimiter must
// repeat the opening quote count.
func (l *Lexer) scanRawString(start Position, kind TokenKind) Token {
	quotes := 0
	for l.peek() == '"' {
		quotes++
		l.advance()
	}
	for !l.atEOF() {
		if l.peek() == '"' {
			run := 0
			for l.peekN(run) == '"' {
				run++
			}
			l.advanceN(run)
			if run >= quotes {
				break
			}
			continue
		}
		l.advance()
	}
	return l.token(kind, start)
}

var operators = []struct {
	literal string
	kind    TokenKind
}{
	{"??=", TokenCoalesceAssign},
	{"<<=", TokenShlAssign},
	{"=>", TokenArrow},
	{"==", TokenEQ},
	{"!=", TokenNE},
	{"<=", TokenLE},
	{">=", TokenGE},
	{"&&", TokenAnd},
	{"||", TokenOr},
	{"++", TokenIncrement},
	{"--", TokenDecrement},
	{"+=", TokenPlusAssign},
	{"-=", TokenMinusAssign},
	{"*=", TokenStarAssign},
	{"/=", TokenSlashAssign},
	{"%=", TokenPercentAssign},
	{"&=", TokenAndAssign},
	{"|=", TokenOrAssign},
	{"^=", TokenXorAssign},
	{"<<", TokenShl},
	{"??", TokenCoalesce},
	{"?.", TokenQuestionDot},
	{"::", TokenColonColon},
	{"->", TokenPointerArrow},
	{"..", TokenDotDot},
	{"(", TokenLParen},
	{")", TokenRParen},
	{"{", TokenLBrace},
	{"}", TokenRBrace},
	{"[", TokenLBracket},
	{"]", TokenRBracket},
	{";", TokenSemicolon},
	{",", TokenComma},
	{".", TokenDot},
	{":", TokenColon},
	{"?", TokenQuestion},
	{"=", TokenAssign},
	{"<", TokenLT},
	{">", TokenGT},
	{"!", TokenNot},
	{"&", TokenBitAnd},
	{"|", TokenBitOr},
	{"^", TokenBitXor},
	{"~", TokenBitNot},
	{"+", TokenPlus},
	{"-", TokenMinus},
	{"*", TokenStar},
	{"/", TokenSlash},
	{"%", TokenPercent},
}

// scanOperator matches the longest operator at the current position.
// '>' is always a single token so that nested generic argument lists
// close one level at a time.
func (l *Lexer) scanOperator(start Position) Token {
	rest := l.input[l.pos:]
	for _, op := range operators {
		if len(rest) < len(op.literal) || string(rest[:len(op.literal)]) != op.literal {
			continue
		}
		if op.kind == TokenQuestionDot && len(rest) > 2 && isDigit(rest[2]) {
			continue
		}
		l.advanceN(len(op.literal))
		return l.token(op.kind, start)
	}

	l.advance()
	return l.token(TokenError, start)
}

func (l *Lexer) token(kind TokenKind, start Position) Token {
	end := l.Position()
	return Token{
		Kind:    kind,
		Span:    Span{Start: start, End: end},
		Literal: string(l.input[start.Offset:end.Offset]),
	}
}

func isWhitespace(ch byte) bool {
	return ch == ' ' || ch == '\t' || ch == '\r' || ch == '\n' || ch == '\f' || ch == '\v'
}

func isDigit(ch byte) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch byte) bool {
	return (ch >= '0' && ch <= '9') || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}

func isIdentStart(ch byte) bool {
	if ch >= utf8.RuneSelf {
		return true
	}
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isIdentPart(ch byte) bool {
	if ch >= utf8.RuneSelf {
		return true
	}
	return isIdentStart(ch) || isDigit(ch)
}

package parser

import "io"

type Option func(*Parser)

func WithFile(path string) Option {
	return func(p *Parser) {
		p.file = path
	}
}

func WithComments() Option {
	return func(p *Parser) {
		p.includeComments = true
	}
}

func WithPositions() Option {
	return func(p *Parser) {
		p.includePositions = true
	}
}

type parseFunc func(*Parser) *Node

type Parser struct {
	file             string
	includeComments  bool
	includePositions bool
	reader           io.Reader
	input            []byte
	lexer            *Lexer
	tokens           []Token
	comments         []Token
	pos              int
	entry            parseFunc
	incomplete       bool
}

func (p *Parser) IncludesPositions() bool {
	return p.includePositions
}

func (p *Parser) Comments() []Token {
	return p.comments
}

// File returns the file name given with WithFile.
func (p *Parser) File() string {
	return p.file
}

// ParseCompilationUnit prepares a parser for a whole source file. Nothing
// is read from r until Finish is called.
func ParseCompilationUnit(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		reader: r,
		entry:  (*Parser).parseCompilationUnit,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseMemberDecl prepares a parser for a single class member.
func ParseMemberDecl(r io.Reader, opts ...Option) *Parser {
	p := &Parser{
		reader: r,
		entry:  (*Parser).parseMemberDecl,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

func (p *Parser) readAll() error {
	if p.input != nil {
		return nil
	}
	data, err := io.ReadAll(p.reader)
	if err != nil {
		return err
	}
	p.input = data
	return nil
}

// Finish parses the input and returns the root node. It returns nil when
// the input is empty, cannot be read, or ends in the middle of a
// construct.
func (p *Parser) Finish() *Node {
	if err := p.readAll(); err != nil {
		return nil
	}
	if len(p.input) == 0 {
		return nil
	}
	p.lexer = NewLexer(p.input, p.file)
	p.tokens = nil
	p.comments = nil
	p.pos = 0
	p.incomplete = false
	p.tokenize()
	result := p.entry(p)
	if p.incomplete {
		return nil
	}
	return result
}

func (p *Parser) Reset(r io.Reader) {
	p.reader = r
	p.input = nil
	p.lexer = nil
	p.tokens = nil
	p.comments = nil
	p.pos = 0
	p.incomplete = false
}

func (p *Parser) tokenize() {
	for {
		tok := p.lexer.NextToken()
		if tok.Kind.IsTrivia() {
			if p.includeComments && (tok.Kind == TokenComment || tok.Kind == TokenLineComment) {
				p.comments = append(p.comments, tok)
			}
			continue
		}
		p.tokens = append(p.tokens, tok)
		if tok.Kind == TokenEOF {
			break
		}
	}
}

func (p *Parser) peek() Token {
	return p.peekN(0)
}

func (p *Parser) peekN(n int) Token {
	if p.pos+n >= len(p.tokens) {
		return Token{Kind: TokenEOF}
	}
	return p.tokens[p.pos+n]
}

func (p *Parser) advance() Token {
	tok := p.peek()
	if p.pos < len(p.tokens) && tok.Kind != TokenEOF {
		p.pos++
	}
	return tok
}

func (p *Parser) expect(kind TokenKind) *Token {
	tok := p.peek()
	if tok.Kind == kind {
		p.advance()
		return &tok
	}
	if tok.Kind == TokenEOF {
		p.incomplete = true
	}
	return nil
}

func (p *Parser) check(kind TokenKind) bool {
	return p.peek().Kind == kind
}

func (p *Parser) checkContextual(word string) bool {
	tok := p.peek()
	return tok.Kind == TokenIdent && tok.Literal == word
}

func (p *Parser) match(kinds ...TokenKind) bool {
	for _, kind := range kinds {
		if p.check(kind) {
			return true
		}
	}
	return false
}

// mustProgress returns a function that checks if the parser has advanced.
// Call it at the start of a loop iteration, then call the returned function
// at the end to break if no progress was made.
func (p *Parser) mustProgress() func() bool {
	saved := p.pos
	return func() bool {
		if p.pos == saved {
			if !p.check(TokenEOF) {
				p.advance()
			}
			return false
		}
		return true
	}
}

func (p *Parser) startNode(kind NodeKind) *Node {
	return &Node{
		Kind: kind,
		Span: Span{Start: p.peek().Span.Start},
	}
}

func (p *Parser) finishNode(n *Node) *Node {
	if p.pos > 0 && p.pos <= len(p.tokens) {
		n.Span.End = p.tokens[p.pos-1].Span.End
	} else if len(p.tokens) > 0 {
		n.Span.End = p.tokens[len(p.tokens)-1].Span.End
	}
	return n
}

// identNode wraps the current token in a KindIdentifier node and consumes it.
func (p *Parser) identNode() *Node {
	tok := p.advance()
	return &Node{Kind: KindIdentifier, Token: &tok, Span: tok.Span}
}

// rawNode returns a node whose token literal is the verbatim source text
// of tokens[from:to].
func (p *Parser) rawNode(kind NodeKind, from, to int) *Node {
	if to <= from || from >= len(p.tokens) {
		pos := p.peek().Span.Start
		return &Node{Kind: kind, Span: Span{Start: pos, End: pos}, Token: &Token{Kind: TokenRaw, Span: Span{Start: pos, End: pos}}}
	}
	span := Span{Start: p.tokens[from].Span.Start, End: p.tokens[to-1].Span.End}
	return &Node{
		Kind: kind,
		Span: span,
		Token: &Token{
			Kind:    TokenRaw,
			Span:    span,
			Literal: string(p.input[span.Start.Offset:span.End.Offset]),
		},
	}
}

func (p *Parser) errorNode(msg string, recoverTo []TokenKind, expected ...TokenKind) *Node {
	tok := p.peek()
	if tok.Kind == TokenEOF {
		p.incomplete = true
	}
	node := &Node{
		Kind: KindError,
		Span: Span{Start: tok.Span.Start, End: tok.Span.End},
		Error: &Error{
			Message:  msg,
			Expected: expected,
			Got:      &tok,
		},
	}
	p.recoverTo(recoverTo)
	return node
}

func (p *Parser) recoverTo(kinds []TokenKind) {
	if !p.check(TokenEOF) {
		p.advance()
	}
	if len(kinds) == 0 {
		return
	}
	for !p.check(TokenEOF) {
		for _, kind := range kinds {
			if p.check(kind) {
				return
			}
		}
		p.advance()
	}
}

func (p *Parser) parseCompilationUnit() *Node {
	node := p.startNode(KindCompilationUnit)
	p.parseNamespaceBody(node, false)
	return p.finishNode(node)
}

// parseNamespaceBody parses namespace members into node until the closing
// brace (braced) or end of input.
func (p *Parser) parseNamespaceBody(node *Node, braced bool) {
	for !p.check(TokenEOF) {
		if braced && p.check(TokenRBrace) {
			return
		}
		progressed := p.mustProgress()

		switch {
		case p.check(TokenSemicolon):
			p.advance()
		case p.check(TokenExtern) && p.peekN(1).Kind == TokenIdent && p.peekN(1).Literal == "alias":
			node.AddChild(p.parseExternAlias())
		case p.isUsingDirective():
			node.AddChild(p.parseUsingDirective())
		case p.check(TokenNamespace):
			node.AddChild(p.parseNamespaceDecl())
		case p.isGlobalAttributeList():
			node.AddChild(p.parseAttributeList())
		case p.isTypeDeclStart():
			node.AddChild(p.parseMemberDecl())
		default:
			node.AddChild(p.parseGlobalStatement())
		}

		// a stuck token has been skipped; keep going
		progressed()
	}
	if braced {
		p.incomplete = true
	}
}

func (p *Parser) isUsingDirective() bool {
	n := 0
	if p.checkContextual("global") && p.peekN(1).Kind == TokenUsing {
		n = 1
	}
	if p.peekN(n).Kind != TokenUsing {
		return false
	}
	// using (...) and using var are statements
	next := p.peekN(n + 1)
	if next.Kind == TokenLParen {
		return false
	}
	if next.Kind == TokenIdent && next.Literal == "var" {
		return false
	}
	return true
}

func (p *Parser) parseExternAlias() *Node {
	start := p.pos
	for !p.match(TokenSemicolon, TokenEOF) {
		p.advance()
	}
	p.expect(TokenSemicolon)
	return p.rawNode(KindExternAlias, start, p.pos)
}

func (p *Parser) parseUsingDirective() *Node {
	start := p.pos
	for !p.match(TokenSemicolon, TokenEOF) {
		p.advance()
	}
	p.expect(TokenSemicolon)
	return p.rawNode(KindUsingDirective, start, p.pos)
}

func (p *Parser) parseNamespaceDecl() *Node {
	node := p.startNode(KindNamespaceDecl)
	p.expect(TokenNamespace)

	name := p.parseQualifiedName()
	if name == nil {
		node.AddChild(p.errorNode("expected namespace name", []TokenKind{TokenLBrace, TokenSemicolon}, TokenIdent))
	} else {
		node.AddChild(name)
	}

	switch {
	case p.check(TokenSemicolon):
		// file-scoped: the rest of the input belongs to this namespace
		p.advance()
		p.parseNamespaceBody(node, false)
	case p.check(TokenLBrace):
		p.advance()
		p.parseNamespaceBody(node, true)
		p.expect(TokenRBrace)
		if p.check(TokenSemicolon) {
			p.advance()
		}
	default:
		node.AddChild(p.errorNode("expected { or ;", nil, TokenLBrace, TokenSemicolon))
	}

	return p.finishNode(node)
}

func (p *Parser) parseQualifiedName() *Node {
	start := p.pos
	if !p.check(TokenIdent) {
		return nil
	}
	p.advance()
	for p.match(TokenDot, TokenColonColon) && p.peekN(1).Kind == TokenIdent {
		p.advanceN(2)
	}
	return p.rawNode(KindQualifiedName, start, p.pos)
}

func (p *Parser) advanceN(n int) {
	for i := 0; i < n; i++ {
		p.advance()
	}
}

func (p *Parser) parseGlobalStatement() *Node {
	start := p.pos
	if !p.skipStatement() {
		return p.errorNode("unexpected "+p.peek().Kind.String(), []TokenKind{TokenSemicolon, TokenRBrace})
	}
	return p.rawNode(KindGlobalStatement, start, p.pos)
}

// isGlobalAttributeList reports whether the next attribute list targets
// the assembly or module rather than a declaration.
func (p *Parser) isGlobalAttributeList() bool {
	if !p.check(TokenLBracket) {
		return false
	}
	target := p.peekN(1)
	if target.Kind != TokenIdent || p.peekN(2).Kind != TokenColon {
		return false
	}
	return target.Literal == "assembly" || target.Literal == "module"
}

// isTypeDeclStart looks past attributes and modifiers for a type
// declaration keyword without consuming anything.
func (p *Parser) isTypeDeclStart() bool {
	save := p.pos
	defer func() { p.pos = save }()

	for p.check(TokenLBracket) {
		if !p.skipBalanced(TokenLBracket, TokenRBracket) {
			return false
		}
	}
	for p.isModifier() {
		p.advance()
	}
	return p.typeDeclKind() != KindError
}

// typeDeclKind classifies the type declaration keyword at the current
// position, or returns KindError.
func (p *Parser) typeDeclKind() NodeKind {
	switch p.peek().Kind {
	case TokenClass:
		return KindClassDecl
	case TokenStruct:
		return KindStructDecl
	case TokenInterface:
		return KindInterfaceDecl
	case TokenEnum:
		return KindEnumDecl
	case TokenDelegate:
		if p.peekN(1).Kind != TokenLParen && p.peekN(1).Kind != TokenLBrace {
			return KindDelegateDecl
		}
	case TokenIdent:
		if p.peek().Literal == "record" {
			switch p.peekN(1).Kind {
			case TokenIdent, TokenClass, TokenStruct:
				return KindRecordDecl
			}
		}
	}
	return KindError
}

var modifierKinds = map[TokenKind]bool{
	TokenPublic:    true,
	TokenPrivate:   true,
	TokenProtected: true,
	TokenInternal:  true,
	TokenStatic:    true,
	TokenAbstract:  true,
	TokenSealed:    true,
	TokenVirtual:   true,
	TokenOverride:  true,
	TokenReadonly:  true,
	TokenConst:     true,
	TokenNew:       true,
	TokenExtern:    true,
	TokenUnsafe:    true,
	TokenVolatile:  true,
	TokenFixed:     true,
	TokenRef:       true,
}

var contextualModifiers = map[string]bool{
	"partial":  true,
	"async":    true,
	"required": true,
	"file":     true,
}

func (p *Parser) isModifier() bool {
	tok := p.peek()
	if modifierKinds[tok.Kind] {
		// new() and new T[] are expressions, not modifiers
		return tok.Kind != TokenNew || p.peekN(1).Kind != TokenLParen
	}
	if tok.Kind == TokenIdent && contextualModifiers[tok.Literal] {
		next := p.peekN(1)
		if next.Kind == TokenIdent {
			return true
		}
		_, isKeyword := keywords[next.Literal]
		return isKeyword && next.Kind != TokenTrue && next.Kind != TokenFalse && next.Kind != TokenNull
	}
	return false
}

func (p *Parser) parseModifiers() *Node {
	node := p.startNode(KindModifiers)
	for p.isModifier() {
		tok := p.advance()
		node.AddChild(&Node{Kind: KindModifier, Token: &tok, Span: tok.Span})
	}
	return p.finishNode(node)
}

func (p *Parser) parseAttributeLists() []*Node {
	var lists []*Node
	for p.check(TokenLBracket) {
		progressed := p.mustProgress()
		lists = append(lists, p.parseAttributeList())
		if !progressed() {
			break
		}
	}
	return lists
}

// parseAttributeList parses [target: Name(args), Other]. The target, when
// present, is stored as the list's token.
func (p *Parser) parseAttributeList() *Node {
	node := p.startNode(KindAttributeList)
	p.expect(TokenLBracket)

	if p.peek().Kind != TokenEOF && p.peekN(1).Kind == TokenColon && (p.check(TokenIdent) || p.check(TokenReturn)) {
		tok := p.advance()
		node.Token = &tok
		p.advance()
	}

	for !p.match(TokenRBracket, TokenEOF) {
		progressed := p.mustProgress()
		node.AddChild(p.parseAttribute())
		if p.check(TokenComma) {
			p.advance()
		}
		if !progressed() {
			break
		}
	}
	if p.expect(TokenRBracket) == nil && !p.incomplete {
		node.AddChild(p.errorNode("expected ]", nil, TokenRBracket))
	}
	return p.finishNode(node)
}

func (p *Parser) parseAttribute() *Node {
	node := p.startNode(KindAttribute)
	start := p.pos
	if p.parseTypeName() == nil {
		return p.errorNode("expected attribute name", []TokenKind{TokenComma, TokenRBracket}, TokenIdent)
	}
	name := p.rawNode(KindIdentifier, start, p.pos)
	node.Token = name.Token

	if p.check(TokenLParen) {
		p.advance()
		for !p.match(TokenRParen, TokenEOF) {
			progressed := p.mustProgress()
			from, to := p.scanUntil(TokenComma, TokenRParen)
			node.AddChild(p.rawNode(KindAttributeArgument, from, to))
			if p.check(TokenComma) {
				p.advance()
			}
			if !progressed() {
				break
			}
		}
		p.expect(TokenRParen)
	}
	return p.finishNode(node)
}

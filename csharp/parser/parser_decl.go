package parser

var memberRecovery = []TokenKind{TokenSemicolon, TokenRBrace}

// parseMemberDecl parses one type or member declaration, including its
// leading attribute lists and modifiers.
func (p *Parser) parseMemberDecl() *Node {
	start := p.peek().Span.Start
	attrs := p.parseAttributeLists()
	mods := p.parseModifiers()

	var node *Node
	switch kind := p.typeDeclKind(); {
	case kind == KindDelegateDecl:
		node = p.parseDelegateDecl()
	case kind == KindEnumDecl:
		node = p.parseEnumDecl()
	case kind != KindError:
		node = p.parseTypeDecl(kind)
	case p.check(TokenEvent):
		node = p.parseEventDecl()
	case p.check(TokenBitNot):
		node = p.parseDestructorDecl()
	case p.match(TokenImplicit, TokenExplicit):
		node = p.parseOperatorDecl(nil)
	case p.check(TokenIdent) && p.peekN(1).Kind == TokenLParen:
		node = p.parseConstructorDecl()
	default:
		node = p.parseTypedMember()
	}

	if node.IsError() {
		return node
	}
	node.Children = append(append(attrs, mods), node.Children...)
	node.Span.Start = start
	return node
}

// parseTypeDecl parses class, struct, interface and record declarations.
func (p *Parser) parseTypeDecl(kind NodeKind) *Node {
	node := p.startNode(kind)
	if kind == KindRecordDecl {
		p.advance()
		if p.match(TokenClass, TokenStruct) {
			tok := p.advance()
			node.Token = &tok
		}
	} else {
		p.advance()
	}

	if !p.check(TokenIdent) {
		return p.errorNode("expected type name", memberRecovery, TokenIdent)
	}
	node.AddChild(p.identNode())

	if p.check(TokenLT) {
		node.AddChild(p.parseTypeParameters())
	}
	if kind == KindRecordDecl && p.check(TokenLParen) {
		node.AddChild(p.parseParameters(TokenLParen, TokenRParen))
	}
	if p.check(TokenColon) {
		node.AddChild(p.parseBaseList())
	}
	for p.checkContextual("where") {
		node.AddChild(p.parseConstraintClause())
	}

	switch {
	case p.check(TokenLBrace):
		p.advance()
		p.parseClassBody(node)
		if p.expect(TokenRBrace) == nil {
			return p.finishNode(node)
		}
		if p.check(TokenSemicolon) {
			p.advance()
		}
	case p.check(TokenSemicolon):
		p.advance()
	default:
		node.AddChild(p.errorNode("expected type body", memberRecovery, TokenLBrace))
	}
	return p.finishNode(node)
}

func (p *Parser) parseClassBody(node *Node) {
	for !p.match(TokenRBrace, TokenEOF) {
		progressed := p.mustProgress()
		if p.check(TokenSemicolon) {
			p.advance()
			continue
		}
		node.AddChild(p.parseMemberDecl())
		progressed()
	}
	if p.check(TokenEOF) {
		p.incomplete = true
	}
}

func (p *Parser) parseTypeParameters() *Node {
	start := p.pos
	end, ok := p.typeArgumentsEnd(p.pos)
	if !ok {
		return p.errorNode("malformed type parameter list", []TokenKind{TokenLBrace, TokenColon, TokenLParen}, TokenGT)
	}
	p.pos = end + 1
	return p.rawNode(KindTypeParameters, start, p.pos)
}

func (p *Parser) parseBaseList() *Node {
	node := p.startNode(KindBaseList)
	p.expect(TokenColon)
	for {
		progressed := p.mustProgress()
		start := p.pos
		if p.parseType() == nil {
			node.AddChild(p.errorNode("expected base type", []TokenKind{TokenLBrace, TokenComma}, TokenIdent))
		} else {
			// record primary constructor arguments: record B(int X) : A(X)
			if p.check(TokenLParen) {
				p.skipBalanced(TokenLParen, TokenRParen)
			}
			node.AddChild(p.rawNode(KindBaseType, start, p.pos))
		}
		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !progressed() {
			break
		}
	}
	return p.finishNode(node)
}

func (p *Parser) parseConstraintClause() *Node {
	start := p.pos
	p.advance()
	for !p.match(TokenLBrace, TokenSemicolon, TokenArrow, TokenEOF) && !p.checkContextual("where") {
		if p.check(TokenLParen) {
			p.skipBalanced(TokenLParen, TokenRParen)
			continue
		}
		p.advance()
	}
	return p.rawNode(KindConstraintClause, start, p.pos)
}

func (p *Parser) parseEnumDecl() *Node {
	node := p.startNode(KindEnumDecl)
	p.expect(TokenEnum)
	if !p.check(TokenIdent) {
		return p.errorNode("expected enum name", memberRecovery, TokenIdent)
	}
	node.AddChild(p.identNode())

	if p.check(TokenColon) {
		node.AddChild(p.parseBaseList())
	}
	if p.expect(TokenLBrace) == nil {
		node.AddChild(p.errorNode("expected {", memberRecovery, TokenLBrace))
		return p.finishNode(node)
	}

	for !p.match(TokenRBrace, TokenEOF) {
		progressed := p.mustProgress()
		node.AddChild(p.parseEnumMember())
		if p.check(TokenComma) {
			p.advance()
		}
		if !progressed() {
			break
		}
	}
	p.expect(TokenRBrace)
	if p.check(TokenSemicolon) {
		p.advance()
	}
	return p.finishNode(node)
}

func (p *Parser) parseEnumMember() *Node {
	node := p.startNode(KindEnumMember)
	for _, attrs := range p.parseAttributeLists() {
		node.AddChild(attrs)
	}
	if !p.check(TokenIdent) {
		return p.errorNode("expected enum member", []TokenKind{TokenComma, TokenRBrace}, TokenIdent)
	}
	node.AddChild(p.identNode())
	if p.check(TokenAssign) {
		p.advance()
		from, to := p.scanUntil(TokenComma, TokenRBrace)
		node.AddChild(p.rawNode(KindInitializer, from, to))
	}
	return p.finishNode(node)
}

func (p *Parser) parseDelegateDecl() *Node {
	node := p.startNode(KindDelegateDecl)
	p.expect(TokenDelegate)
	if p.parseType() == nil {
		return p.errorNode("expected return type", memberRecovery)
	}
	if !p.check(TokenIdent) {
		return p.errorNode("expected delegate name", memberRecovery, TokenIdent)
	}
	node.AddChild(p.identNode())
	p.skipToMemberEnd()
	return p.finishNode(node)
}

func (p *Parser) parseEventDecl() *Node {
	node := p.startNode(KindEventDecl)
	p.expect(TokenEvent)
	if t := p.parseType(); t != nil {
		node.AddChild(t)
	}
	if p.check(TokenIdent) {
		node.AddChild(p.identNode())
	}
	p.skipToMemberEnd()
	return p.finishNode(node)
}

func (p *Parser) parseDestructorDecl() *Node {
	node := p.startNode(KindDestructorDecl)
	p.expect(TokenBitNot)
	if p.check(TokenIdent) {
		node.AddChild(p.identNode())
	}
	p.skipToMemberEnd()
	return p.finishNode(node)
}

// parseOperatorDecl skips an operator or conversion operator declaration;
// returnType is nil for conversion operators.
func (p *Parser) parseOperatorDecl(returnType *Node) *Node {
	node := p.startNode(KindOperatorDecl)
	node.AddChild(returnType)
	p.skipToMemberEnd()
	return p.finishNode(node)
}

// skipToMemberEnd consumes tokens through the end of the current member:
// a terminating semicolon or the block closing its body.
func (p *Parser) skipToMemberEnd() {
	for !p.check(TokenEOF) {
		switch p.peek().Kind {
		case TokenSemicolon:
			p.advance()
			return
		case TokenLBrace:
			p.skipBalanced(TokenLBrace, TokenRBrace)
			if p.check(TokenSemicolon) || p.check(TokenAssign) {
				// property initializers follow the accessor block
				continue
			}
			return
		case TokenLParen:
			p.skipBalanced(TokenLParen, TokenRParen)
		case TokenLBracket:
			p.skipBalanced(TokenLBracket, TokenRBracket)
		case TokenRBrace:
			return
		default:
			p.advance()
		}
	}
	p.incomplete = true
}

func (p *Parser) parseConstructorDecl() *Node {
	node := p.startNode(KindConstructorDecl)
	node.AddChild(p.identNode())
	node.AddChild(p.parseParameters(TokenLParen, TokenRParen))

	if p.check(TokenColon) {
		init := p.startNode(KindConstructorInitializer)
		p.advance()
		if !p.match(TokenBase, TokenThis) {
			node.AddChild(p.errorNode("expected base or this", []TokenKind{TokenLBrace, TokenSemicolon, TokenArrow}, TokenBase, TokenThis))
		} else {
			tok := p.advance()
			init.Token = &tok
			init.AddChild(p.parseArguments())
			node.AddChild(p.finishNode(init))
		}
	}

	node.AddChild(p.parseBody())
	return p.finishNode(node)
}

// parseArguments captures a parenthesized argument list as verbatim text
// without the parentheses.
func (p *Parser) parseArguments() *Node {
	if p.expect(TokenLParen) == nil {
		return p.errorNode("expected (", []TokenKind{TokenLBrace, TokenSemicolon}, TokenLParen)
	}
	from, to := p.scanUntil(TokenRParen)
	node := p.rawNode(KindArguments, from, to)
	p.expect(TokenRParen)
	return node
}

// parseTypedMember parses members that start with a type: fields,
// properties, methods, indexers and operators.
func (p *Parser) parseTypedMember() *Node {
	start := p.peek().Span.Start
	typ := p.parseType()
	if typ == nil {
		return p.errorNode("expected member declaration", memberRecovery)
	}

	if p.check(TokenOperator) {
		return p.parseOperatorDecl(typ)
	}

	name, typeParams, isIndexer := p.parseMemberName()
	if isIndexer {
		node := &Node{Kind: KindIndexerDecl, Span: Span{Start: start}}
		node.AddChild(typ)
		p.skipToMemberEnd()
		return p.finishNode(node)
	}
	if name == nil {
		return p.errorNode("expected member name", memberRecovery, TokenIdent)
	}

	switch {
	case p.check(TokenLParen):
		node := &Node{Kind: KindMethodDecl, Span: Span{Start: start}}
		node.AddChild(typ)
		node.AddChild(name)
		node.AddChild(typeParams)
		node.AddChild(p.parseParameters(TokenLParen, TokenRParen))
		for p.checkContextual("where") {
			node.AddChild(p.parseConstraintClause())
		}
		node.AddChild(p.parseBody())
		return p.finishNode(node)
	case p.match(TokenLBrace, TokenArrow):
		node := &Node{Kind: KindPropertyDecl, Span: Span{Start: start}}
		node.AddChild(typ)
		node.AddChild(name)
		p.parsePropertyBody(node)
		return p.finishNode(node)
	default:
		node := &Node{Kind: KindFieldDecl, Span: Span{Start: start}}
		node.AddChild(typ)
		p.parseVariableDeclarators(node, name)
		return p.finishNode(node)
	}
}

// parseMemberName parses a possibly interface-qualified member name such
// as Foo, Foo<T>, IBar.Foo or IBar.this. The returned identifier is the
// last simple name.
func (p *Parser) parseMemberName() (name, typeParams *Node, isIndexer bool) {
	for {
		switch {
		case p.check(TokenThis):
			p.advance()
			return nil, nil, true
		case p.check(TokenIdent):
			name = p.identNode()
			typeParams = nil
			if p.check(TokenLT) {
				if _, ok := p.typeArgumentsEnd(p.pos); ok {
					typeParams = p.parseTypeParameters()
				}
			}
		default:
			return name, typeParams, false
		}
		if !p.match(TokenDot, TokenColonColon) {
			return name, typeParams, false
		}
		p.advance()
	}
}

func (p *Parser) parsePropertyBody(node *Node) {
	if p.check(TokenArrow) {
		node.AddChild(p.parseExpressionBody())
		return
	}

	list := p.startNode(KindAccessorList)
	p.expect(TokenLBrace)
	for !p.match(TokenRBrace, TokenEOF) {
		progressed := p.mustProgress()
		list.AddChild(p.parseAccessor())
		progressed()
	}
	p.expect(TokenRBrace)
	node.AddChild(p.finishNode(list))

	if p.check(TokenAssign) {
		p.advance()
		from, to := p.scanUntil(TokenSemicolon)
		node.AddChild(p.rawNode(KindInitializer, from, to))
		p.expect(TokenSemicolon)
	}
}

func (p *Parser) parseAccessor() *Node {
	node := p.startNode(KindAccessor)
	for _, attrs := range p.parseAttributeLists() {
		node.AddChild(attrs)
	}
	node.AddChild(p.parseModifiers())
	if !p.check(TokenIdent) {
		return p.errorNode("expected accessor", []TokenKind{TokenSemicolon, TokenRBrace}, TokenIdent)
	}
	tok := p.advance()
	node.Token = &tok
	node.AddChild(p.parseBody())
	return p.finishNode(node)
}

// parseBody parses a member body: a block, an expression body, or a bare
// semicolon (abstract and interface members), which yields nil.
func (p *Parser) parseBody() *Node {
	switch {
	case p.check(TokenLBrace):
		return p.parseBlock()
	case p.check(TokenArrow):
		return p.parseExpressionBody()
	case p.check(TokenSemicolon):
		p.advance()
		return nil
	}
	return p.errorNode("expected member body", memberRecovery, TokenLBrace, TokenArrow, TokenSemicolon)
}

func (p *Parser) parseExpressionBody() *Node {
	p.expect(TokenArrow)
	from, to := p.scanUntil(TokenSemicolon)
	node := p.rawNode(KindExpressionBody, from, to)
	p.expect(TokenSemicolon)
	return node
}

// parseVariableDeclarators parses "a = 1, b" after the field type. The
// first declarator's name has already been consumed. Each declarator's
// token literal is its verbatim text.
func (p *Parser) parseVariableDeclarators(node *Node, first *Node) {
	name := first
	for {
		start := p.pos - 1
		decl := &Node{Kind: KindVariableDeclarator, Span: name.Span}
		decl.AddChild(name)
		if p.check(TokenLBracket) {
			p.skipBalanced(TokenLBracket, TokenRBracket)
		}
		if p.check(TokenAssign) {
			p.advance()
			from, to := p.scanUntil(TokenComma, TokenSemicolon)
			decl.AddChild(p.rawNode(KindInitializer, from, to))
		}
		raw := p.rawNode(KindVariableDeclarator, start, p.pos)
		decl.Token = raw.Token
		decl.Span = raw.Span
		node.AddChild(decl)

		if !p.check(TokenComma) {
			break
		}
		p.advance()
		if !p.check(TokenIdent) {
			node.AddChild(p.errorNode("expected variable name", memberRecovery, TokenIdent))
			return
		}
		name = p.identNode()
	}
	if p.expect(TokenSemicolon) == nil && !p.incomplete {
		node.AddChild(p.errorNode("expected ;", memberRecovery, TokenSemicolon))
		if p.check(TokenSemicolon) {
			p.advance()
		}
	}
}

// parseParameters parses a parameter list delimited by open and close
// (parentheses for methods, brackets for indexers).
func (p *Parser) parseParameters(open, close TokenKind) *Node {
	node := p.startNode(KindParameters)
	if p.expect(open) == nil {
		return p.errorNode("expected parameter list", memberRecovery, open)
	}
	for !p.match(close, TokenEOF) {
		progressed := p.mustProgress()
		node.AddChild(p.parseParameter(close))
		if p.check(TokenComma) {
			p.advance()
		}
		if !progressed() {
			break
		}
	}
	p.expect(close)
	return p.finishNode(node)
}

var parameterModifiers = map[TokenKind]bool{
	TokenRef:      true,
	TokenOut:      true,
	TokenIn:       true,
	TokenParams:   true,
	TokenThis:     true,
	TokenReadonly: true,
}

func (p *Parser) parseParameter(close TokenKind) *Node {
	node := p.startNode(KindParameter)
	for _, attrs := range p.parseAttributeLists() {
		node.AddChild(attrs)
	}

	mods := p.startNode(KindModifiers)
	for parameterModifiers[p.peek().Kind] || p.checkContextual("scoped") {
		tok := p.advance()
		mods.AddChild(&Node{Kind: KindModifier, Token: &tok, Span: tok.Span})
	}
	node.AddChild(p.finishNode(mods))

	if p.checkContextual("__arglist") {
		node.AddChild(p.identNode())
		return p.finishNode(node)
	}

	typ := p.parseType()
	if typ == nil {
		return p.errorNode("expected parameter type", []TokenKind{TokenComma, close}, TokenIdent)
	}
	node.AddChild(typ)
	if !p.check(TokenIdent) {
		return p.errorNode("expected parameter name", []TokenKind{TokenComma, close}, TokenIdent)
	}
	node.AddChild(p.identNode())

	if p.check(TokenAssign) {
		p.advance()
		from, to := p.scanUntil(TokenComma, close)
		node.AddChild(p.rawNode(KindInitializer, from, to))
	}
	return p.finishNode(node)
}

package parser

// Statements and expressions are not parsed into trees. The parser only
// finds their extent and keeps the verbatim source text, which is all the
// translator needs.

func (p *Parser) parseBlock() *Node {
	node := p.startNode(KindBlock)
	p.expect(TokenLBrace)
	for !p.match(TokenRBrace, TokenEOF) {
		start := p.pos
		if !p.skipStatement() {
			if p.pos == start {
				node.AddChild(p.errorNode("unexpected "+p.peek().Kind.String(), nil))
			}
			continue
		}
		node.AddChild(p.rawNode(KindStatement, start, p.pos))
	}
	if p.expect(TokenRBrace) == nil {
		p.incomplete = true
	}
	return p.finishNode(node)
}

// skipStatement consumes one statement, including nested embedded
// statements and else/catch/finally clauses.
func (p *Parser) skipStatement() bool {
	switch tok := p.peek(); tok.Kind {
	case TokenEOF:
		p.incomplete = true
		return false
	case TokenLBrace:
		return p.skipBalanced(TokenLBrace, TokenRBrace)
	case TokenSemicolon:
		p.advance()
		return true
	case TokenIf:
		p.advance()
		if !p.skipParenthesized() || !p.skipStatement() {
			return false
		}
		if p.check(TokenElse) {
			p.advance()
			return p.skipStatement()
		}
		return true
	case TokenWhile, TokenFor, TokenForeach, TokenLock, TokenFixed:
		p.advance()
		if !p.skipParenthesized() {
			return false
		}
		return p.skipStatement()
	case TokenUsing:
		if p.peekN(1).Kind == TokenLParen {
			p.advance()
			p.skipParenthesized()
			return p.skipStatement()
		}
	case TokenDo:
		p.advance()
		if !p.skipStatement() || p.expect(TokenWhile) == nil || !p.skipParenthesized() {
			return false
		}
		return p.expect(TokenSemicolon) != nil
	case TokenSwitch:
		if p.peekN(1).Kind == TokenLParen {
			p.advance()
			if !p.skipParenthesized() || !p.check(TokenLBrace) {
				return false
			}
			return p.skipBalanced(TokenLBrace, TokenRBrace)
		}
	case TokenTry:
		p.advance()
		if !p.skipBalanced(TokenLBrace, TokenRBrace) {
			return false
		}
		for p.check(TokenCatch) {
			p.advance()
			if p.check(TokenLParen) {
				p.skipParenthesized()
			}
			if p.checkContextual("when") {
				p.advance()
				p.skipParenthesized()
			}
			if !p.skipBalanced(TokenLBrace, TokenRBrace) {
				return false
			}
		}
		if p.check(TokenFinally) {
			p.advance()
			return p.skipBalanced(TokenLBrace, TokenRBrace)
		}
		return true
	case TokenUnsafe, TokenChecked, TokenUnchecked:
		if p.peekN(1).Kind == TokenLBrace {
			p.advance()
			return p.skipBalanced(TokenLBrace, TokenRBrace)
		}
	case TokenIdent:
		if p.peekN(1).Kind == TokenColon {
			// labeled statement
			p.advanceN(2)
			return p.skipStatement()
		}
		if tok.Literal == "await" {
			next := p.peekN(1)
			if next.Kind == TokenForeach || (next.Kind == TokenUsing && p.peekN(2).Kind == TokenLParen) {
				p.advance()
				return p.skipStatement()
			}
		}
	}

	if body, ok := p.localFunctionBody(); ok {
		p.pos = body
		return p.skipBalanced(TokenLBrace, TokenRBrace)
	}
	return p.skipSimpleStatement()
}

// localFunctionBody reports whether a block-bodied local function
// declaration starts here and returns the index of its opening brace.
func (p *Parser) localFunctionBody() (int, bool) {
	save := p.pos
	defer func() { p.pos = save }()

	for p.isModifier() {
		p.advance()
	}
	if !p.skipType() || !p.check(TokenIdent) {
		return 0, false
	}
	p.advance()
	if p.check(TokenLT) {
		end, ok := p.typeArgumentsEnd(p.pos)
		if !ok {
			return 0, false
		}
		p.pos = end + 1
	}
	if !p.check(TokenLParen) || !p.skipBalanced(TokenLParen, TokenRParen) {
		return 0, false
	}
	for p.checkContextual("where") {
		p.parseConstraintClause()
	}
	return p.pos, p.check(TokenLBrace)
}

// skipSimpleStatement consumes tokens through the first semicolon outside
// any brackets. A closing bracket that belongs to an enclosing construct
// ends the statement early.
func (p *Parser) skipSimpleStatement() bool {
	start := p.pos
	depth := 0
	for !p.check(TokenEOF) {
		switch p.peek().Kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth == 0 {
				return p.pos > start
			}
			depth--
		case TokenSemicolon:
			if depth == 0 {
				p.advance()
				return true
			}
		}
		p.advance()
	}
	p.incomplete = true
	return false
}

func (p *Parser) skipParenthesized() bool {
	if !p.check(TokenLParen) {
		return false
	}
	return p.skipBalanced(TokenLParen, TokenRParen)
}

// skipBalanced consumes an open token through its matching close token.
func (p *Parser) skipBalanced(open, close TokenKind) bool {
	if !p.check(open) {
		return false
	}
	depth := 0
	for !p.check(TokenEOF) {
		switch p.advance().Kind {
		case open:
			depth++
		case close:
			depth--
			if depth == 0 {
				return true
			}
		}
	}
	p.incomplete = true
	return false
}

// scanUntil advances to the first stop token outside brackets and returns
// the token range that was skipped. An unmatched closing bracket also
// ends the scan. Generic argument lists are skipped as a unit so that
// their commas do not stop the scan.
func (p *Parser) scanUntil(stops ...TokenKind) (from, to int) {
	from = p.pos
	depth := 0
	for !p.check(TokenEOF) {
		kind := p.peek().Kind
		if depth == 0 {
			for _, stop := range stops {
				if kind == stop {
					return from, p.pos
				}
			}
		}
		switch kind {
		case TokenLParen, TokenLBracket, TokenLBrace:
			depth++
		case TokenRParen, TokenRBracket, TokenRBrace:
			if depth == 0 {
				return from, p.pos
			}
			depth--
		case TokenLT:
			if p.pos > from && p.tokens[p.pos-1].Kind == TokenIdent {
				if end, ok := p.typeArgumentsEnd(p.pos); ok {
					p.pos = end + 1
					continue
				}
			}
		}
		p.advance()
	}
	p.incomplete = true
	return from, p.pos
}

// typeArgumentsEnd returns the index of the '>' closing the type argument
// list that opens at tokens[i], or false if the tokens cannot form one.
func (p *Parser) typeArgumentsEnd(i int) (int, bool) {
	depth := 0
	for j := i; j < len(p.tokens); j++ {
		tok := p.tokens[j]
		switch tok.Kind {
		case TokenLT:
			depth++
		case TokenGT:
			depth--
			if depth == 0 {
				return j, true
			}
		case TokenIdent, TokenComma, TokenDot, TokenColonColon, TokenQuestion,
			TokenStar, TokenLBracket, TokenRBracket, TokenLParen, TokenRParen,
			TokenIn, TokenOut:
		default:
			if !tok.Kind.IsPredefinedType() {
				return 0, false
			}
		}
	}
	return 0, false
}

func (p *Parser) parseType() *Node {
	start := p.pos
	if !p.skipType() {
		p.pos = start
		return nil
	}
	return p.rawNode(KindType, start, p.pos)
}

// skipType consumes a type: a predefined type, a possibly generic and
// qualified name, or a tuple, followed by nullable, pointer and array
// suffixes.
func (p *Parser) skipType() bool {
	switch {
	case p.check(TokenLParen):
		if !p.skipBalanced(TokenLParen, TokenRParen) {
			return false
		}
	case p.peek().Kind.IsPredefinedType():
		p.advance()
	case p.check(TokenDelegate) && p.peekN(1).Kind == TokenStar:
		p.advanceN(2)
		if p.check(TokenLT) {
			end, ok := p.typeArgumentsEnd(p.pos)
			if !ok {
				return false
			}
			p.pos = end + 1
		}
	case p.check(TokenIdent):
		p.skipTypeName()
	default:
		return false
	}

	for {
		switch {
		case p.check(TokenQuestion), p.check(TokenStar):
			p.advance()
		case p.check(TokenLBracket) && p.isRankSpecifier():
			p.skipBalanced(TokenLBracket, TokenRBracket)
		default:
			return true
		}
	}
}

func (p *Parser) isRankSpecifier() bool {
	for n := 1; ; n++ {
		switch p.peekN(n).Kind {
		case TokenComma:
			continue
		case TokenRBracket:
			return true
		default:
			return false
		}
	}
}

func (p *Parser) parseTypeName() *Node {
	start := p.pos
	if !p.check(TokenIdent) {
		return nil
	}
	p.skipTypeName()
	return p.rawNode(KindType, start, p.pos)
}

// skipTypeName consumes Name, Name<Args>, alias::Name and dotted
// combinations of those.
func (p *Parser) skipTypeName() {
	p.advance()
	for {
		if p.check(TokenLT) {
			if end, ok := p.typeArgumentsEnd(p.pos); ok {
				p.pos = end + 1
			}
		}
		if p.match(TokenDot, TokenColonColon) && p.peekN(1).Kind == TokenIdent {
			p.advanceN(2)
			continue
		}
		return
	}
}

package parser

import (
	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/token"
)

// parsePattern parses a match or destructuring pattern with curToken on
// its first token. Or-patterns bind loosest: p1 | p2 | p3.
func (p *Parser) parsePattern() ast.Pattern {
	first := p.parseSinglePattern()
	if first == nil {
		return nil
	}

	if !p.peekTokenIs(token.PIPE) {
		return first
	}

	or := &ast.OrPattern{Token: first.GetToken(), Alternatives: []ast.Pattern{first}}
	for p.peekTokenIs(token.PIPE) {
		p.nextToken()
		p.nextToken()
		alt := p.parseSinglePattern()
		if alt != nil {
			or.Alternatives = append(or.Alternatives, alt)
		}
	}
	return or
}

func (p *Parser) parseSinglePattern() ast.Pattern {
	switch p.curToken.Type {
	case token.UNDERSCORE:
		return &ast.WildcardPattern{Token: p.curToken}

	case token.INT:
		if p.peekTokenIs(token.RANGE) || p.peekTokenIs(token.RANGE_EQ) {
			return p.parseRangePattern()
		}
		v, _ := p.curToken.Literal.(int64)
		return &ast.LiteralPattern{Token: p.curToken, Value: v}

	case token.FLOAT:
		v, _ := p.curToken.Literal.(float64)
		return &ast.LiteralPattern{Token: p.curToken, Value: v}

	case token.STRING:
		return &ast.LiteralPattern{Token: p.curToken, Value: p.curToken.Lexeme}

	case token.CHAR:
		v, _ := p.curToken.Literal.(rune)
		return &ast.LiteralPattern{Token: p.curToken, Value: v}

	case token.TRUE:
		return &ast.LiteralPattern{Token: p.curToken, Value: true}

	case token.FALSE:
		return &ast.LiteralPattern{Token: p.curToken, Value: false}

	case token.MINUS:
		// Negative literal pattern
		tok := p.curToken
		if p.peekTokenIs(token.INT) {
			p.nextToken()
			v, _ := p.curToken.Literal.(int64)
			return &ast.LiteralPattern{Token: tok, Value: -v}
		}
		if p.peekTokenIs(token.FLOAT) {
			p.nextToken()
			v, _ := p.curToken.Literal.(float64)
			return &ast.LiteralPattern{Token: tok, Value: -v}
		}
		return nil

	case token.SOME:
		op := &ast.OptionPattern{Token: p.curToken, IsSome: true}
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		p.nextToken()
		op.Inner = p.parsePattern()
		p.expectPeek(token.RPAREN)
		return op

	case token.NONE:
		return &ast.OptionPattern{Token: p.curToken, IsSome: false}

	case token.OK, token.ERR:
		// Ok(p) / Err(p) match Result values through the variant form.
		ep := &ast.EnumVariantPattern{
			Token:   p.curToken,
			Variant: &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
		}
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			p.nextToken()
			ep.Elements = append(ep.Elements, p.parsePattern())
			p.expectPeek(token.RPAREN)
		}
		return ep

	case token.LPAREN:
		tp := &ast.TuplePattern{Token: p.curToken}
		for !p.peekTokenIs(token.RPAREN) && !p.peekTokenIs(token.EOF) {
			p.nextToken()
			el := p.parsePattern()
			if el != nil {
				tp.Elements = append(tp.Elements, el)
			}
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
			}
		}
		p.expectPeek(token.RPAREN)
		return tp

	case token.LBRACKET:
		return p.parseArrayPattern()

	case token.IDENT:
		return p.parseNamePattern()

	default:
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
}

func (p *Parser) parseRangePattern() ast.Pattern {
	start := &ast.IntegerLiteral{Token: p.curToken}
	if v, ok := p.curToken.Literal.(int64); ok {
		start.Value = v
	}
	p.nextToken() // .. or ..=
	rp := &ast.RangePattern{
		Token:     p.curToken,
		Start:     start,
		Inclusive: p.curTokenIs(token.RANGE_EQ),
	}
	p.nextToken()
	end := &ast.IntegerLiteral{Token: p.curToken}
	if v, ok := p.curToken.Literal.(int64); ok {
		end.Value = v
	}
	rp.End = end
	return rp
}

func (p *Parser) parseArrayPattern() ast.Pattern {
	ap := &ast.ArrayPattern{Token: p.curToken}

	for !p.peekTokenIs(token.RBRACKET) && !p.peekTokenIs(token.EOF) {
		p.nextToken()

		// ..rest or bare .. as the final element
		if p.curTokenIs(token.RANGE) {
			ap.HasRest = true
			if p.peekTokenIs(token.IDENT) {
				p.nextToken()
				ap.RestName = p.curToken
			}
			break
		}

		el := p.parsePattern()
		if el != nil {
			ap.Elements = append(ap.Elements, el)
		}
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expectPeek(token.RBRACKET)
	return ap
}

// parseNamePattern disambiguates identifier bindings, bare enum
// variants, Enum::Variant / Enum.Variant forms, constructor patterns
// with payloads, and struct destructuring.
func (p *Parser) parseNamePattern() ast.Pattern {
	tok := p.curToken
	name := p.curToken.Lexeme

	// Qualified variant: Enum::Variant or Enum.Variant
	if p.peekTokenIs(token.COLON_COLON) || p.peekTokenIs(token.DOT) {
		p.nextToken()
		p.nextToken()
		ep := &ast.EnumVariantPattern{
			Token:    tok,
			EnumName: &ast.Identifier{Token: tok, Value: name},
			Variant:  &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme},
		}
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			for !p.peekTokenIs(token.RPAREN) && !p.peekTokenIs(token.EOF) {
				p.nextToken()
				el := p.parsePattern()
				if el != nil {
					ep.Elements = append(ep.Elements, el)
				}
				if p.peekTokenIs(token.COMMA) {
					p.nextToken()
				}
			}
			p.expectPeek(token.RPAREN)
		}
		return ep
	}

	// Struct destructuring: Name { field, other: pat }
	if p.peekTokenIs(token.LBRACE) && isTypeName(name) {
		sp := &ast.StructPattern{
			Token: tok,
			Name:  &ast.Identifier{Token: tok, Value: name},
		}
		p.nextToken()
		for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
			if !p.expectPeek(token.IDENT) {
				return sp
			}
			field := ast.StructPatternField{Name: p.curToken}
			if p.peekTokenIs(token.COLON) {
				p.nextToken()
				p.nextToken()
				field.Pattern = p.parsePattern()
			}
			sp.Fields = append(sp.Fields, field)
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
			}
		}
		p.expectPeek(token.RBRACE)
		return sp
	}

	// Constructor with payload: Variant(p1, p2)
	if p.peekTokenIs(token.LPAREN) && isTypeName(name) {
		ep := &ast.EnumVariantPattern{
			Token:   tok,
			Variant: &ast.Identifier{Token: tok, Value: name},
		}
		p.nextToken()
		for !p.peekTokenIs(token.RPAREN) && !p.peekTokenIs(token.EOF) {
			p.nextToken()
			el := p.parsePattern()
			if el != nil {
				ep.Elements = append(ep.Elements, el)
			}
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
			}
		}
		p.expectPeek(token.RPAREN)
		return ep
	}

	// Bare uppercase names read as variant references, lowercase as
	// bindings.
	if isTypeName(name) {
		return &ast.EnumVariantPattern{
			Token:   tok,
			Variant: &ast.Identifier{Token: tok, Value: name},
		}
	}

	return &ast.IdentifierPattern{Token: tok, Value: name}
}

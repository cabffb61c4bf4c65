package parser

import (
	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/token"
)

// parseTypeExpr parses a type annotation with curToken on its first
// token. Handles unions (T | U), optional suffixes (T?), arrays,
// function types, and generic applications.
func (p *Parser) parseTypeExpr() ast.TypeExpr {
	first := p.parseTypeAtom()
	if first == nil {
		return nil
	}

	if !p.peekTokenIs(token.PIPE) {
		return first
	}

	union := &ast.UnionType{Token: first.GetToken(), Members: []ast.TypeExpr{first}}
	for p.peekTokenIs(token.PIPE) {
		p.nextToken()
		p.nextToken()
		member := p.parseTypeAtom()
		if member != nil {
			union.Members = append(union.Members, member)
		}
	}
	return union
}

func (p *Parser) parseTypeAtom() ast.TypeExpr {
	var base ast.TypeExpr

	switch p.curToken.Type {
	case token.LBRACKET:
		at := &ast.ArrayType{Token: p.curToken}
		p.nextToken()
		at.Elem = p.parseTypeExpr()
		p.expectPeek(token.RBRACKET)
		base = at

	case token.FN:
		ft := &ast.FunctionType{Token: p.curToken}
		if !p.expectPeek(token.LPAREN) {
			return nil
		}
		for !p.peekTokenIs(token.RPAREN) && !p.peekTokenIs(token.EOF) {
			p.nextToken()
			if p.curTokenIs(token.ELLIPSIS) {
				ft.IsVariadic = true
				break
			}
			param := p.parseTypeExpr()
			if param != nil {
				ft.Params = append(ft.Params, param)
			}
			if p.peekTokenIs(token.COMMA) {
				p.nextToken()
			}
		}
		p.expectPeek(token.RPAREN)
		if p.peekTokenIs(token.ARROW) {
			p.nextToken()
			p.nextToken()
			ft.ReturnType = p.parseTypeExpr()
		}
		base = ft

	case token.IDENT:
		nameTok := p.curToken
		name := p.curToken.Lexeme

		// Qualified type reference: mod::Type
		for p.peekTokenIs(token.COLON_COLON) {
			p.nextToken()
			p.nextToken()
			name += "::" + p.curToken.Lexeme
		}

		if name == "Result" && p.peekTokenIs(token.LT) {
			rt := &ast.ResultTypeExpr{Token: nameTok}
			p.nextToken() // <
			p.nextToken()
			rt.Ok = p.parseTypeExpr()
			if !p.expectPeek(token.COMMA) {
				return rt
			}
			p.nextToken()
			rt.Err = p.parseTypeExpr()
			p.expectPeek(token.GT)
			base = rt
		} else {
			nt := &ast.NamedType{Token: nameTok, Name: name}
			if p.peekTokenIs(token.LT) {
				p.nextToken() // <
				for {
					p.nextToken()
					arg := p.parseTypeExpr()
					if arg != nil {
						nt.Args = append(nt.Args, arg)
					}
					if p.peekTokenIs(token.COMMA) {
						p.nextToken()
						continue
					}
					break
				}
				p.expectPeek(token.GT)
			}
			base = nt
		}

	default:
		p.noPrefixParseFnError(p.curToken)
		return nil
	}

	// Optional suffix, possibly repeated through aliasing
	for p.peekTokenIs(token.QUESTION) {
		p.nextToken()
		base = &ast.OptionalType{Token: p.curToken, Inner: base}
	}

	return base
}

package parser

import (
	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/token"
)

func (p *Parser) parseStatement() ast.Statement {
	switch p.curToken.Type {
	case token.VAR:
		return p.parseVarStatement()
	case token.CONST:
		return p.parseConstStatement()
	case token.RETURN:
		return p.parseReturnStatement()
	case token.FN:
		// A bare fn at statement level is a declaration; lambdas reach
		// the expression parser through expression position only.
		if p.peekTokenIs(token.IDENT) {
			return p.parseFunctionStatement(false)
		}
		return p.parseExpressionStatement()
	case token.PUB:
		return p.parsePubStatement()
	case token.STRUCT:
		return p.parseStructStatement(false)
	case token.OBJECT:
		return p.parseObjectStatement()
	case token.ENUM:
		return p.parseEnumStatement(false)
	case token.IMPL:
		return p.parseImplStatement()
	case token.TRAIT:
		return p.parseTraitStatement()
	case token.TYPEDEF:
		return p.parseTypeAliasStatement()
	case token.IMPORT:
		return p.parseImportStatement()
	case token.EXPORT:
		return p.parseExportStatement()
	case token.EXTERN:
		return p.parseExternStatement()
	case token.MACRO:
		return p.parseMacroStatement()
	case token.IF:
		return p.parseIfStatement()
	case token.WHILE:
		return p.parseWhileStatement()
	case token.FOR:
		return p.parseForStatement()
	case token.MATCH:
		return p.parseMatchStatement()
	case token.TRY:
		return p.parseTryStatement()
	case token.THROW:
		return p.parseThrowStatement()
	case token.BREAK:
		stmt := &ast.BreakStatement{Token: p.curToken}
		p.skipSemis()
		return stmt
	case token.CONTINUE:
		stmt := &ast.ContinueStatement{Token: p.curToken}
		p.skipSemis()
		return stmt
	case token.DEFER:
		return p.parseDeferStatement()
	case token.UNSAFE:
		return p.parseUnsafeStatement()
	case token.TEST:
		return p.parseTestStatement()
	case token.SPAWN:
		return p.parseSpawnStatement()
	case token.LBRACE:
		return p.parseBlockStatement()
	case token.SEMI:
		return nil
	default:
		return p.parseExpressionStatement()
	}
}

func (p *Parser) parsePubStatement() ast.Statement {
	// pub fn / pub struct / pub enum
	switch p.peekToken.Type {
	case token.FN:
		p.nextToken()
		return p.parseFunctionStatement(true)
	case token.STRUCT:
		p.nextToken()
		return p.parseStructStatement(true)
	case token.ENUM:
		p.nextToken()
		return p.parseEnumStatement(true)
	default:
		p.peekError(token.FN)
		return nil
	}
}

func (p *Parser) parseVarStatement() ast.Statement {
	stmt := &ast.VarStatement{Token: p.curToken}

	// Destructuring forms: var (a, b) = pair / var [x, ..rest] = arr /
	// var Point { x, y } = pt
	structPattern := false
	if p.peekTokenIs(token.IDENT) && isTypeName(p.peekToken.Lexeme) {
		toks := p.stream.Peek(1)
		structPattern = len(toks) == 1 && toks[0].Type == token.LBRACE
	}
	if p.peekTokenIs(token.LPAREN) || p.peekTokenIs(token.LBRACKET) || structPattern {
		p.nextToken()
		stmt.Pattern = p.parsePattern()
	} else {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			stmt.Type = p.parseTypeExpr()
		}
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)

	p.skipSemis()
	return stmt
}

func (p *Parser) parseConstStatement() ast.Statement {
	stmt := &ast.ConstStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.COLON) {
		p.nextToken()
		p.nextToken()
		stmt.Type = p.parseTypeExpr()
	}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)

	p.skipSemis()
	return stmt
}

func (p *Parser) parseReturnStatement() ast.Statement {
	stmt := &ast.ReturnStatement{Token: p.curToken}

	// A bare return is allowed right before a closing brace.
	if p.peekTokenIs(token.RBRACE) || p.peekTokenIs(token.SEMI) || p.peekTokenIs(token.EOF) {
		p.skipSemis()
		return stmt
	}

	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.skipSemis()
	return stmt
}

func (p *Parser) parseExpressionStatement() ast.Statement {
	stmt := &ast.ExpressionStatement{Token: p.curToken}
	stmt.Expression = p.parseExpression(LOWEST)
	if stmt.Expression == nil {
		return nil
	}
	p.skipSemis()
	return stmt
}

func (p *Parser) parseBlockStatement() *ast.BlockStatement {
	block := &ast.BlockStatement{Token: p.curToken}
	p.nextToken()

	for !p.curTokenIs(token.RBRACE) && !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			block.Statements = append(block.Statements, stmt)
		}
		p.nextToken()
	}

	return block
}

func (p *Parser) parseFunctionStatement(isPublic bool) ast.Statement {
	stmt := &ast.FunctionStatement{Token: p.curToken, IsPublic: isPublic}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	// Generic parameters: fn id<T>(x: T) -> T
	if p.peekTokenIs(token.LT) {
		p.nextToken()
		stmt.TypeParams = p.parseTypeParams()
	}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.Params = p.parseParams()

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		stmt.ReturnType = p.parseTypeExpr()
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

// parseTypeParams parses <T, U: Bound> with curToken on '<'.
func (p *Parser) parseTypeParams() []ast.TypeParam {
	var params []ast.TypeParam
	for {
		if !p.expectPeek(token.IDENT) {
			return params
		}
		param := ast.TypeParam{Name: p.curToken}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			for {
				if !p.expectPeek(token.IDENT) {
					return params
				}
				param.Bounds = append(param.Bounds, p.curToken)
				if !p.peekTokenIs(token.PLUS) {
					break
				}
				p.nextToken()
			}
		}
		params = append(params, param)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	p.expectPeek(token.GT)
	return params
}

// parseParams parses (a: Int, b: String, rest...) with curToken on '('.
func (p *Parser) parseParams() []ast.Param {
	var params []ast.Param

	if p.peekTokenIs(token.RPAREN) {
		p.nextToken()
		return params
	}

	for {
		// self receivers carry no annotation
		if p.peekTokenIs(token.SELF) {
			p.nextToken()
			params = append(params, ast.Param{Name: p.curToken})
		} else {
			if !p.expectPeek(token.IDENT) {
				return params
			}
			param := ast.Param{Name: p.curToken}
			if p.peekTokenIs(token.COLON) {
				p.nextToken()
				p.nextToken()
				param.Type = p.parseTypeExpr()
			}
			params = append(params, param)
		}

		if p.peekTokenIs(token.ELLIPSIS) {
			p.nextToken()
		}
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}

	p.expectPeek(token.RPAREN)
	return params
}

func (p *Parser) parseStructStatement(isPublic bool) ast.Statement {
	stmt := &ast.StructStatement{Token: p.curToken, IsPublic: isPublic}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.LT) {
		p.nextToken()
		stmt.TypeParams = p.parseTypeParams()
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.IDENT) {
			return stmt
		}
		field := ast.StructFieldDecl{Name: p.curToken}
		if !p.expectPeek(token.COLON) {
			return stmt
		}
		p.nextToken()
		field.Type = p.parseTypeExpr()
		stmt.Fields = append(stmt.Fields, field)
		if p.peekTokenIs(token.COMMA) || p.peekTokenIs(token.SEMI) {
			p.nextToken()
		}
	}
	p.expectPeek(token.RBRACE)

	return stmt
}

func (p *Parser) parseObjectStatement() ast.Statement {
	stmt := &ast.ObjectStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if p.peekTokenIs(token.FN) {
			p.nextToken()
			if fn, ok := p.parseFunctionStatement(false).(*ast.FunctionStatement); ok {
				stmt.Methods = append(stmt.Methods, fn)
			}
			continue
		}
		if !p.expectPeek(token.IDENT) {
			return stmt
		}
		field := ast.StructFieldDecl{Name: p.curToken}
		if !p.expectPeek(token.COLON) {
			return stmt
		}
		p.nextToken()
		field.Type = p.parseTypeExpr()
		stmt.Fields = append(stmt.Fields, field)
		if p.peekTokenIs(token.COMMA) || p.peekTokenIs(token.SEMI) {
			p.nextToken()
		}
	}
	p.expectPeek(token.RBRACE)

	return stmt
}

func (p *Parser) parseEnumStatement(isPublic bool) ast.Statement {
	stmt := &ast.EnumStatement{Token: p.curToken, IsPublic: isPublic}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.IDENT) {
			return stmt
		}
		variant := ast.EnumVariantDecl{Name: p.curToken}
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			for !p.peekTokenIs(token.RPAREN) && !p.peekTokenIs(token.EOF) {
				p.nextToken()
				variant.Params = append(variant.Params, p.parseTypeExpr())
				if p.peekTokenIs(token.COMMA) {
					p.nextToken()
				}
			}
			p.expectPeek(token.RPAREN)
		}
		stmt.Variants = append(stmt.Variants, variant)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expectPeek(token.RBRACE)

	return stmt
}

func (p *Parser) parseImplStatement() ast.Statement {
	stmt := &ast.ImplStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	first := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	// impl Trait for Type { ... } vs impl Type { ... }
	if p.peekTokenIs(token.FOR) {
		stmt.Trait = first
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.TypeName = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	} else {
		stmt.TypeName = first
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.FN) {
			return stmt
		}
		if fn, ok := p.parseFunctionStatement(false).(*ast.FunctionStatement); ok {
			fn.Receiver = &ast.NamedType{Token: stmt.TypeName.Token, Name: stmt.TypeName.Value}
			stmt.Methods = append(stmt.Methods, fn)
		}
	}
	p.expectPeek(token.RBRACE)

	return stmt
}

func (p *Parser) parseTraitStatement() ast.Statement {
	stmt := &ast.TraitStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.FN) {
			return stmt
		}
		if !p.expectPeek(token.IDENT) {
			return stmt
		}
		method := ast.TraitMethodDecl{Name: p.curToken}
		if !p.expectPeek(token.LPAREN) {
			return stmt
		}
		method.Params = p.parseParams()
		if p.peekTokenIs(token.ARROW) {
			p.nextToken()
			p.nextToken()
			method.ReturnType = p.parseTypeExpr()
		}
		stmt.Methods = append(stmt.Methods, method)
		p.skipSemis()
	}
	p.expectPeek(token.RBRACE)

	return stmt
}

func (p *Parser) parseTypeAliasStatement() ast.Statement {
	stmt := &ast.TypeAliasStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.ASSIGN) {
		return nil
	}
	p.nextToken()
	stmt.Type = p.parseTypeExpr()

	p.skipSemis()
	return stmt
}

// parseImportStatement handles import math, import geometry::math as m,
// and import "path/to/file".
func (p *Parser) parseImportStatement() ast.Statement {
	stmt := &ast.ImportStatement{Token: p.curToken}

	if p.peekTokenIs(token.STRING) {
		p.nextToken()
		stmt.Path = p.curToken.Lexeme
	} else {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		path := p.curToken.Lexeme
		for p.peekTokenIs(token.COLON_COLON) {
			p.nextToken()
			if !p.expectPeek(token.IDENT) {
				return nil
			}
			path += "/" + p.curToken.Lexeme
		}
		stmt.Path = path
	}

	if p.peekTokenIs(token.AS) {
		p.nextToken()
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Alias = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
	}

	p.skipSemis()
	return stmt
}

func (p *Parser) parseExportStatement() ast.Statement {
	stmt := &ast.ExportStatement{Token: p.curToken}
	p.nextToken()
	stmt.Decl = p.parseStatement()
	return stmt
}

func (p *Parser) parseExternStatement() ast.Statement {
	stmt := &ast.ExternStatement{Token: p.curToken}

	if !p.expectPeek(token.FN) {
		return nil
	}
	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	// Extern parameter lists may end with ... for C varargs.
	if p.peekTokenIs(token.ELLIPSIS) {
		p.nextToken()
		stmt.IsVariadic = true
		p.expectPeek(token.RPAREN)
	} else {
		stmt.Params = p.parseParams()
	}

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		stmt.ReturnType = p.parseTypeExpr()
	}

	p.skipSemis()
	return stmt
}

func (p *Parser) parseMacroStatement() ast.Statement {
	stmt := &ast.MacroStatement{Token: p.curToken}

	if !p.expectPeek(token.IDENT) {
		return nil
	}
	stmt.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	stmt.Params = p.parseParams()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseIfStatement() ast.Statement {
	stmt := &ast.IfStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseHeaderExpression()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Consequence = p.parseBlockStatement()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			stmt.Alternative = p.parseIfStatement()
		} else {
			if !p.expectPeek(token.LBRACE) {
				return nil
			}
			stmt.Alternative = p.parseBlockStatement()
		}
	}

	return stmt
}

func (p *Parser) parseWhileStatement() ast.Statement {
	stmt := &ast.WhileStatement{Token: p.curToken}

	p.nextToken()
	stmt.Condition = p.parseHeaderExpression()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseForStatement() ast.Statement {
	stmt := &ast.ForStatement{Token: p.curToken}

	// C-style: for (var i = 0; i < n; i = i + 1) { }
	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		p.nextToken()
		stmt.Init = p.parseStatement()
		// The init statement consumed its terminator; step onto the
		// condition.
		p.nextToken()
		stmt.Condition = p.parseExpression(LOWEST)
		if p.peekTokenIs(token.SEMI) {
			p.nextToken()
		}
		p.nextToken()
		stmt.Post = p.parseExpression(LOWEST)
		p.expectPeek(token.RPAREN)
	} else {
		// Range form: for item in iterable { }
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		stmt.Variable = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		if !p.expectPeek(token.IN) {
			return nil
		}
		p.nextToken()
		stmt.Iterable = p.parseHeaderExpression()
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	return stmt
}

func (p *Parser) parseMatchStatement() ast.Statement {
	stmt := &ast.MatchStatement{Token: p.curToken}

	p.nextToken()
	stmt.Subject = p.parseHeaderExpression()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		arm := ast.MatchStmtArm{}
		arm.Pattern = p.parsePattern()

		if p.peekTokenIs(token.IF) {
			p.nextToken()
			p.nextToken()
			arm.Guard = p.parseExpression(LOWEST)
		}

		if !p.expectPeek(token.FAT_ARROW) {
			return stmt
		}
		p.nextToken()
		arm.Body = p.parseStatement()
		stmt.Arms = append(stmt.Arms, arm)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expectPeek(token.RBRACE)

	return stmt
}

func (p *Parser) parseTryStatement() ast.Statement {
	stmt := &ast.TryStatement{Token: p.curToken}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()

	for p.peekTokenIs(token.CATCH) {
		p.nextToken()
		clause := ast.CatchClause{Token: p.curToken}
		if p.peekTokenIs(token.LPAREN) {
			p.nextToken()
			p.nextToken()
			// catch (e) or catch (Type e)
			if p.peekTokenIs(token.RPAREN) {
				clause.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
			} else {
				clause.Type = p.parseTypeExpr()
				if !p.expectPeek(token.IDENT) {
					return stmt
				}
				clause.Name = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
			}
			p.expectPeek(token.RPAREN)
		}
		if !p.expectPeek(token.LBRACE) {
			return stmt
		}
		clause.Body = p.parseBlockStatement()
		stmt.Catches = append(stmt.Catches, clause)
	}

	if p.peekTokenIs(token.FINALLY) {
		p.nextToken()
		if !p.expectPeek(token.LBRACE) {
			return stmt
		}
		stmt.Finally = p.parseBlockStatement()
	}

	return stmt
}

func (p *Parser) parseThrowStatement() ast.Statement {
	stmt := &ast.ThrowStatement{Token: p.curToken}
	p.nextToken()
	stmt.Value = p.parseExpression(LOWEST)
	p.skipSemis()
	return stmt
}

func (p *Parser) parseDeferStatement() ast.Statement {
	stmt := &ast.DeferStatement{Token: p.curToken}
	p.nextToken()
	stmt.Call = p.parseExpression(LOWEST)
	p.skipSemis()
	return stmt
}

func (p *Parser) parseUnsafeStatement() ast.Statement {
	stmt := &ast.UnsafeStatement{Token: p.curToken}
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseTestStatement() ast.Statement {
	stmt := &ast.TestStatement{Token: p.curToken}
	if !p.expectPeek(token.STRING) {
		return nil
	}
	stmt.Name = p.curToken.Lexeme
	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	stmt.Body = p.parseBlockStatement()
	return stmt
}

func (p *Parser) parseSpawnStatement() ast.Statement {
	stmt := &ast.SpawnStatement{Token: p.curToken}
	p.nextToken()
	stmt.Call = p.parseExpression(LOWEST)
	p.skipSemis()
	return stmt
}

// parseHeaderExpression parses the condition/subject of if, while, for
// and match headers, where a '{' must open the body rather than a
// struct initializer.
func (p *Parser) parseHeaderExpression() ast.Expression {
	p.noStructLiteral = true
	expr := p.parseExpression(LOWEST)
	p.noStructLiteral = false
	return expr
}

package parser

import (
	"strconv"
	"strings"

	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/lexer"
	"github.com/wynlang/wyn/internal/token"
)

func (p *Parser) parseExpression(precedence int) ast.Expression {
	prefix := p.prefixParseFns[p.curToken.Type]
	if prefix == nil {
		p.noPrefixParseFnError(p.curToken)
		return nil
	}
	leftExp := prefix()

	for precedence < p.peekPrecedence() {
		infix := p.infixParseFns[p.peekToken.Type]
		if infix == nil {
			return leftExp
		}
		p.nextToken()
		leftExp = infix(leftExp)
	}

	return leftExp
}

// parseIdentifier also folds module-qualified references (m::pi) into a
// single identifier and recognizes struct initializers (Name { ... }).
func (p *Parser) parseIdentifier() ast.Expression {
	tok := p.curToken
	value := p.curToken.Lexeme

	for p.peekTokenIs(token.COLON_COLON) {
		p.nextToken()
		p.nextToken()
		value += "::" + p.curToken.Lexeme
	}

	if p.peekTokenIs(token.LBRACE) && !p.noStructLiteral && isTypeName(value) {
		return p.parseStructInit(tok, value)
	}

	// Explicit generic call: id<Int>(x). Only commit when the shape
	// really is <types>( to keep comparisons unambiguous.
	if p.peekTokenIs(token.LT) && !isTypeName(value) && p.looksLikeTypeArgs() {
		return p.parseCallWithTypeArgs(tok, value)
	}

	return &ast.Identifier{Token: tok, Value: value}
}

func (p *Parser) parseSelfIdentifier() ast.Expression {
	return &ast.Identifier{Token: p.curToken, Value: "self"}
}

// looksLikeTypeArgs peeks past '<' for an identifier followed by '>' or
// ',' — the only shapes explicit instantiations take.
func (p *Parser) looksLikeTypeArgs() bool {
	toks := p.stream.Peek(3)
	if len(toks) < 3 {
		return false
	}
	if toks[0].Type != token.IDENT {
		return false
	}
	return toks[1].Type == token.GT && toks[2].Type == token.LPAREN ||
		toks[1].Type == token.COMMA
}

func (p *Parser) parseCallWithTypeArgs(tok token.Token, name string) ast.Expression {
	call := &ast.CallExpression{
		Token:  tok,
		Callee: &ast.Identifier{Token: tok, Value: name},
	}

	p.nextToken() // <
	for {
		p.nextToken()
		call.TypeArgs = append(call.TypeArgs, p.parseTypeExpr())
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
			continue
		}
		break
	}
	if !p.expectPeek(token.GT) {
		return call
	}
	if !p.expectPeek(token.LPAREN) {
		return call
	}
	call.Arguments = p.parseExpressionList(token.RPAREN)
	return call
}

func isTypeName(s string) bool {
	base := s
	if idx := strings.LastIndex(s, "::"); idx >= 0 {
		base = s[idx+2:]
	}
	return len(base) > 0 && base[0] >= 'A' && base[0] <= 'Z'
}

func (p *Parser) parseStructInit(tok token.Token, name string) ast.Expression {
	init := &ast.StructInitExpression{
		Token: tok,
		Name:  &ast.Identifier{Token: tok, Value: name},
	}

	p.nextToken() // {
	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.IDENT) {
			return init
		}
		field := ast.StructInitField{Name: p.curToken}
		if !p.expectPeek(token.COLON) {
			return init
		}
		p.nextToken()
		field.Value = p.parseExpression(LOWEST)
		init.Fields = append(init.Fields, field)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expectPeek(token.RBRACE)

	return init
}

func (p *Parser) parseIntegerLiteral() ast.Expression {
	lit := &ast.IntegerLiteral{Token: p.curToken}
	if v, ok := p.curToken.Literal.(int64); ok {
		lit.Value = v
		return lit
	}
	v, err := strconv.ParseInt(p.curToken.Lexeme, 0, 64)
	if err != nil {
		p.errors = append(p.errors, diagnostics.NewPhaseError(
			diagnostics.PhaseParser, diagnostics.ErrP003, p.curToken,
			p.curToken.Lexeme, "an integer"))
		return nil
	}
	lit.Value = v
	return lit
}

func (p *Parser) parseFloatLiteral() ast.Expression {
	lit := &ast.FloatLiteral{Token: p.curToken}
	if v, ok := p.curToken.Literal.(float64); ok {
		lit.Value = v
		return lit
	}
	v, err := strconv.ParseFloat(p.curToken.Lexeme, 64)
	if err != nil {
		p.errors = append(p.errors, diagnostics.NewPhaseError(
			diagnostics.PhaseParser, diagnostics.ErrP003, p.curToken,
			p.curToken.Lexeme, "a float"))
		return nil
	}
	lit.Value = v
	return lit
}

func (p *Parser) parseStringLiteral() ast.Expression {
	return &ast.StringLiteral{Token: p.curToken, Value: p.curToken.Lexeme}
}

// parseInterpolatedString splits "a ${x} b" into literal and expression
// parts; each ${...} fragment is re-lexed and parsed as an expression.
func (p *Parser) parseInterpolatedString() ast.Expression {
	node := &ast.InterpolatedString{Token: p.curToken}
	content := p.curToken.Lexeme

	var text strings.Builder
	for i := 0; i < len(content); i++ {
		if content[i] == '$' && i+1 < len(content) && content[i+1] == '{' {
			if text.Len() > 0 {
				node.Parts = append(node.Parts, &ast.StringLiteral{Token: p.curToken, Value: text.String()})
				text.Reset()
			}
			depth := 1
			j := i + 2
			for j < len(content) && depth > 0 {
				switch content[j] {
				case '{':
					depth++
				case '}':
					depth--
				}
				j++
			}
			inner := content[i+2 : j-1]
			sub := New(lexer.NewTokenStream(lexer.New(inner)))
			expr := sub.parseExpression(LOWEST)
			p.errors = append(p.errors, sub.errors...)
			if expr != nil {
				node.Parts = append(node.Parts, expr)
			}
			i = j - 1
			continue
		}
		text.WriteByte(content[i])
	}
	if text.Len() > 0 {
		node.Parts = append(node.Parts, &ast.StringLiteral{Token: p.curToken, Value: text.String()})
	}

	return node
}

func (p *Parser) parseCharLiteral() ast.Expression {
	lit := &ast.CharLiteral{Token: p.curToken}
	if v, ok := p.curToken.Literal.(rune); ok {
		lit.Value = v
	}
	return lit
}

func (p *Parser) parseBoolean() ast.Expression {
	return &ast.BooleanLiteral{Token: p.curToken, Value: p.curTokenIs(token.TRUE)}
}

func (p *Parser) parseUnaryExpression() ast.Expression {
	expr := &ast.UnaryExpression{
		Token:    p.curToken,
		Operator: p.curToken.Lexeme,
	}
	p.nextToken()
	expr.Right = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseBinaryExpression(left ast.Expression) ast.Expression {
	expr := &ast.BinaryExpression{
		Token:    p.curToken,
		Left:     left,
		Operator: p.curToken.Lexeme,
	}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseGroupedOrTuple() ast.Expression {
	tok := p.curToken
	p.nextToken()

	if p.curTokenIs(token.RPAREN) {
		// () — an empty tuple
		return &ast.TupleLiteral{Token: tok}
	}

	first := p.parseExpression(LOWEST)

	if p.peekTokenIs(token.COMMA) {
		tuple := &ast.TupleLiteral{Token: tok, Elements: []ast.Expression{first}}
		for p.peekTokenIs(token.COMMA) {
			p.nextToken()
			p.nextToken()
			tuple.Elements = append(tuple.Elements, p.parseExpression(LOWEST))
		}
		p.expectPeek(token.RPAREN)
		return tuple
	}

	p.expectPeek(token.RPAREN)
	return first
}

// parseArrayLiteralOrComprehension parses [1, 2, 3] and
// [x * 2 for x in xs if x > 0].
func (p *Parser) parseArrayLiteralOrComprehension() ast.Expression {
	tok := p.curToken

	if p.peekTokenIs(token.RBRACKET) {
		p.nextToken()
		return &ast.ArrayLiteral{Token: tok}
	}

	p.nextToken()
	first := p.parseExpression(LOWEST)

	if p.peekTokenIs(token.FOR) {
		comp := &ast.ListComprehension{Token: tok, Element: first}
		p.nextToken() // for
		if !p.expectPeek(token.IDENT) {
			return comp
		}
		comp.Variable = &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}
		if !p.expectPeek(token.IN) {
			return comp
		}
		p.nextToken()
		comp.Iterable = p.parseExpression(LOWEST)
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			p.nextToken()
			comp.Condition = p.parseExpression(LOWEST)
		}
		p.expectPeek(token.RBRACKET)
		return comp
	}

	arr := &ast.ArrayLiteral{Token: tok, Elements: []ast.Expression{first}}
	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		arr.Elements = append(arr.Elements, p.parseExpression(LOWEST))
	}
	p.expectPeek(token.RBRACKET)
	return arr
}

// parseMapLiteral parses { key: value, ... }; a bare '{' in expression
// position is always a map. The parser has no set-literal syntax.
func (p *Parser) parseMapLiteral() ast.Expression {
	ml := &ast.MapLiteral{Token: p.curToken}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		key := p.parseExpression(LOWEST)
		if !p.expectPeek(token.COLON) {
			return ml
		}
		p.nextToken()
		value := p.parseExpression(LOWEST)
		ml.Pairs = append(ml.Pairs, struct{ Key, Value ast.Expression }{key, value})
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expectPeek(token.RBRACE)

	return ml
}

func (p *Parser) parseIfExpression() ast.Expression {
	expr := &ast.IfExpression{Token: p.curToken}

	p.nextToken()
	expr.Condition = p.parseHeaderExpression()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	expr.Consequence = p.parseBlockValue()

	if p.peekTokenIs(token.ELSE) {
		p.nextToken()
		if p.peekTokenIs(token.IF) {
			p.nextToken()
			expr.Alternative = p.parseIfExpression()
		} else {
			if !p.expectPeek(token.LBRACE) {
				return expr
			}
			expr.Alternative = p.parseBlockValue()
		}
	}

	return expr
}

// parseBlockValue parses a brace block in expression position and wraps
// it so its final expression statement provides the value.
func (p *Parser) parseBlockValue() ast.Expression {
	tok := p.curToken
	block := p.parseBlockStatement()
	return &ast.BlockExpression{Token: tok, Block: block}
}

func (p *Parser) parseMatchExpression() ast.Expression {
	expr := &ast.MatchExpression{Token: p.curToken}

	p.nextToken()
	expr.Subject = p.parseHeaderExpression()

	if !p.expectPeek(token.LBRACE) {
		return nil
	}

	for !p.peekTokenIs(token.RBRACE) && !p.peekTokenIs(token.EOF) {
		p.nextToken()
		arm := ast.MatchArm{}
		arm.Pattern = p.parsePattern()

		if p.peekTokenIs(token.IF) {
			p.nextToken()
			p.nextToken()
			arm.Guard = p.parseExpression(LOWEST)
		}

		if !p.expectPeek(token.FAT_ARROW) {
			return expr
		}
		p.nextToken()
		if p.curTokenIs(token.LBRACE) {
			arm.Body = p.parseBlockValue()
		} else {
			arm.Body = p.parseExpression(LOWEST)
		}
		expr.Arms = append(expr.Arms, arm)

		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	p.expectPeek(token.RBRACE)

	return expr
}

// parseLambda parses fn(x, y: Int) -> T { body }
func (p *Parser) parseLambda() ast.Expression {
	lambda := &ast.LambdaExpression{Token: p.curToken}

	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	lambda.Params = p.parseParams()

	if p.peekTokenIs(token.ARROW) {
		p.nextToken()
		p.nextToken()
		p.parseTypeExpr() // declared lambda returns are re-inferred from the body
	}

	if !p.expectPeek(token.LBRACE) {
		return nil
	}
	lambda.Body = p.parseBlockStatement()

	return lambda
}

// parseShortLambda parses |x, y| expr
func (p *Parser) parseShortLambda() ast.Expression {
	lambda := &ast.LambdaExpression{Token: p.curToken}

	for !p.peekTokenIs(token.PIPE) && !p.peekTokenIs(token.EOF) {
		if !p.expectPeek(token.IDENT) {
			return nil
		}
		param := ast.Param{Name: p.curToken}
		if p.peekTokenIs(token.COLON) {
			p.nextToken()
			p.nextToken()
			param.Type = p.parseTypeExpr()
		}
		lambda.Params = append(lambda.Params, param)
		if p.peekTokenIs(token.COMMA) {
			p.nextToken()
		}
	}
	if !p.expectPeek(token.PIPE) {
		return nil
	}

	p.nextToken()
	body := p.parseExpression(LOWEST)
	lambda.Body = &ast.ExpressionStatement{Token: p.curToken, Expression: body}

	return lambda
}

func (p *Parser) parseCallExpression(callee ast.Expression) ast.Expression {
	call := &ast.CallExpression{Token: p.curToken, Callee: callee}
	call.Arguments = p.parseExpressionList(token.RPAREN)
	return call
}

func (p *Parser) parseExpressionList(end token.TokenType) []ast.Expression {
	var list []ast.Expression

	if p.peekTokenIs(end) {
		p.nextToken()
		return list
	}

	p.nextToken()
	list = append(list, p.parseExpression(LOWEST))

	for p.peekTokenIs(token.COMMA) {
		p.nextToken()
		p.nextToken()
		list = append(list, p.parseExpression(LOWEST))
	}

	p.expectPeek(end)
	return list
}

func (p *Parser) parseIndexExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	index := p.parseExpression(LOWEST)
	if !p.expectPeek(token.RBRACKET) {
		return nil
	}

	// arr[i] = value becomes an index-assign node
	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		return &ast.IndexAssignExpression{
			Token: tok,
			Left:  left,
			Index: index,
			Value: p.parseExpression(LOWEST),
		}
	}

	return &ast.IndexExpression{Token: tok, Left: left, Index: index}
}

// parseDotExpression covers method calls, field access, tuple indexing
// and field assignment.
func (p *Parser) parseDotExpression(left ast.Expression) ast.Expression {
	tok := p.curToken

	// Tuple index: pair.0
	if p.peekTokenIs(token.INT) {
		p.nextToken()
		idx := 0
		if v, ok := p.curToken.Literal.(int64); ok {
			idx = int(v)
		}
		return &ast.TupleIndexExpression{Token: tok, Left: left, Index: idx}
	}

	p.nextToken()
	// Keywords double as method names (opt.some(), res.err())
	member := &ast.Identifier{Token: p.curToken, Value: p.curToken.Lexeme}

	if p.peekTokenIs(token.LPAREN) {
		p.nextToken()
		call := &ast.MethodCallExpression{
			Token:    tok,
			Receiver: left,
			Method:   member,
		}
		call.Arguments = p.parseExpressionList(token.RPAREN)
		return call
	}

	if p.peekTokenIs(token.ASSIGN) {
		p.nextToken()
		p.nextToken()
		return &ast.FieldAssignExpression{
			Token:  tok,
			Object: left,
			Field:  member,
			Value:  p.parseExpression(LOWEST),
		}
	}

	return &ast.FieldAccessExpression{Token: tok, Left: left, Field: member}
}

func (p *Parser) parseTryExpression(left ast.Expression) ast.Expression {
	return &ast.TryExpression{Token: p.curToken, Value: left}
}

func (p *Parser) parseRangeExpression(left ast.Expression) ast.Expression {
	expr := &ast.RangeExpression{
		Token:     p.curToken,
		Start:     left,
		Inclusive: p.curTokenIs(token.RANGE_EQ),
	}
	p.nextToken()
	expr.End = p.parseExpression(RANGE_PREC)
	return expr
}

func (p *Parser) parsePipelineExpression(left ast.Expression) ast.Expression {
	expr := &ast.PipelineExpression{Token: p.curToken, Left: left}
	precedence := p.curPrecedence()
	p.nextToken()
	expr.Right = p.parseExpression(precedence)
	return expr
}

func (p *Parser) parseAssignExpression(left ast.Expression) ast.Expression {
	tok := p.curToken
	p.nextToken()
	value := p.parseExpression(LOWEST)

	switch target := left.(type) {
	case *ast.Identifier:
		return &ast.AssignExpression{Token: tok, Name: target, Value: value}
	case *ast.FieldAccessExpression:
		return &ast.FieldAssignExpression{Token: tok, Object: target.Left, Field: target.Field, Value: value}
	case *ast.IndexExpression:
		return &ast.IndexAssignExpression{Token: tok, Left: target.Left, Index: target.Index, Value: value}
	default:
		p.errors = append(p.errors, diagnostics.NewPhaseError(
			diagnostics.PhaseParser, diagnostics.ErrP002, tok, tok.Lexeme))
		return nil
	}
}

// parseCompoundAssign desugars x += e into x = x + e.
func (p *Parser) parseCompoundAssign(left ast.Expression) ast.Expression {
	tok := p.curToken
	op := strings.TrimSuffix(tok.Lexeme, "=")
	p.nextToken()
	value := p.parseExpression(LOWEST)

	combined := &ast.BinaryExpression{Token: tok, Left: left, Operator: op, Right: value}

	if target, ok := left.(*ast.Identifier); ok {
		return &ast.AssignExpression{Token: tok, Name: target, Value: combined}
	}
	p.errors = append(p.errors, diagnostics.NewPhaseError(
		diagnostics.PhaseParser, diagnostics.ErrP002, tok, tok.Lexeme))
	return nil
}

func (p *Parser) parseSomeExpression() ast.Expression {
	expr := &ast.SomeExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	expr.Value = p.parseExpression(LOWEST)
	p.expectPeek(token.RPAREN)
	return expr
}

func (p *Parser) parseNoneExpression() ast.Expression {
	return &ast.NoneExpression{Token: p.curToken}
}

func (p *Parser) parseOkExpression() ast.Expression {
	expr := &ast.OkExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	expr.Value = p.parseExpression(LOWEST)
	p.expectPeek(token.RPAREN)
	return expr
}

func (p *Parser) parseErrExpression() ast.Expression {
	expr := &ast.ErrExpression{Token: p.curToken}
	if !p.expectPeek(token.LPAREN) {
		return nil
	}
	p.nextToken()
	expr.Value = p.parseExpression(LOWEST)
	p.expectPeek(token.RPAREN)
	return expr
}

func (p *Parser) parseAwaitExpression() ast.Expression {
	expr := &ast.AwaitExpression{Token: p.curToken}
	p.nextToken()
	expr.Value = p.parseExpression(PREFIX)
	return expr
}

func (p *Parser) parseSpawnExpression() ast.Expression {
	expr := &ast.SpawnExpression{Token: p.curToken}
	p.nextToken()
	expr.Call = p.parseExpression(PREFIX)
	return expr
}

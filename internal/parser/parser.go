package parser

import (
	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/pipeline"
	"github.com/wynlang/wyn/internal/token"
)

// Parser holds the state of our parser.
type Parser struct {
	stream    pipeline.TokenStream
	curToken  token.Token
	peekToken token.Token
	errors    []*diagnostics.DiagnosticError

	prefixParseFns map[token.TokenType]prefixParseFn
	infixParseFns  map[token.TokenType]infixParseFn

	// noStructLiteral disables TypeName { ... } initializers while
	// parsing if/while/for/match headers, where '{' opens the body.
	noStructLiteral bool
}

type (
	prefixParseFn func() ast.Expression
	infixParseFn  func(ast.Expression) ast.Expression
)

// Precedence constants
const (
	LOWEST       = iota
	ASSIGN_PREC  // =
	PIPE_PREC    // |>
	COALESCE     // ??
	LOGIC_OR     // ||
	LOGIC_AND    // &&
	EQUALS       // == !=
	LESSGREATER  // > < >= <=
	BITWISE_OR   // | ^
	BITWISE_AND  // &
	SHIFT        // << >>
	RANGE_PREC   // .. ..=
	SUM          // + -
	PRODUCT      // * / %
	PREFIX       // -x !x ~x
	POSTFIX      // x?
	CALL         // f(x) obj.m
	INDEX        // a[i]
)

var precedences = map[token.TokenType]int{
	token.ASSIGN:          ASSIGN_PREC,
	token.PLUS_ASSIGN:     ASSIGN_PREC,
	token.MINUS_ASSIGN:    ASSIGN_PREC,
	token.ASTERISK_ASSIGN: ASSIGN_PREC,
	token.SLASH_ASSIGN:    ASSIGN_PREC,
	token.PERCENT_ASSIGN:  ASSIGN_PREC,
	token.PIPE_GT:         PIPE_PREC,
	token.NULL_COALESCE:   COALESCE,
	token.OR:              LOGIC_OR,
	token.AND:             LOGIC_AND,
	token.EQ:              EQUALS,
	token.NOT_EQ:          EQUALS,
	token.LT:              LESSGREATER,
	token.GT:              LESSGREATER,
	token.LTE:             LESSGREATER,
	token.GTE:             LESSGREATER,
	token.PIPE:            BITWISE_OR,
	token.CARET:           BITWISE_OR,
	token.AMPERSAND:       BITWISE_AND,
	token.LSHIFT:          SHIFT,
	token.RSHIFT:          SHIFT,
	token.RANGE:           RANGE_PREC,
	token.RANGE_EQ:        RANGE_PREC,
	token.PLUS:            SUM,
	token.MINUS:           SUM,
	token.SLASH:           PRODUCT,
	token.ASTERISK:        PRODUCT,
	token.PERCENT:         PRODUCT,
	token.QUESTION:        POSTFIX,
	token.LPAREN:          CALL,
	token.DOT:             CALL,
	token.LBRACKET:        INDEX,
}

func New(stream pipeline.TokenStream) *Parser {
	p := &Parser{stream: stream}

	p.prefixParseFns = make(map[token.TokenType]prefixParseFn)
	p.registerPrefix(token.IDENT, p.parseIdentifier)
	p.registerPrefix(token.INT, p.parseIntegerLiteral)
	p.registerPrefix(token.FLOAT, p.parseFloatLiteral)
	p.registerPrefix(token.STRING, p.parseStringLiteral)
	p.registerPrefix(token.INTERP_STRING, p.parseInterpolatedString)
	p.registerPrefix(token.CHAR, p.parseCharLiteral)
	p.registerPrefix(token.TRUE, p.parseBoolean)
	p.registerPrefix(token.FALSE, p.parseBoolean)
	p.registerPrefix(token.BANG, p.parseUnaryExpression)
	p.registerPrefix(token.MINUS, p.parseUnaryExpression)
	p.registerPrefix(token.TILDE, p.parseUnaryExpression)
	p.registerPrefix(token.LPAREN, p.parseGroupedOrTuple)
	p.registerPrefix(token.LBRACKET, p.parseArrayLiteralOrComprehension)
	p.registerPrefix(token.LBRACE, p.parseMapLiteral)
	p.registerPrefix(token.IF, p.parseIfExpression)
	p.registerPrefix(token.MATCH, p.parseMatchExpression)
	p.registerPrefix(token.FN, p.parseLambda)
	p.registerPrefix(token.PIPE, p.parseShortLambda)
	p.registerPrefix(token.SOME, p.parseSomeExpression)
	p.registerPrefix(token.NONE, p.parseNoneExpression)
	p.registerPrefix(token.OK, p.parseOkExpression)
	p.registerPrefix(token.ERR, p.parseErrExpression)
	p.registerPrefix(token.AWAIT, p.parseAwaitExpression)
	p.registerPrefix(token.SPAWN, p.parseSpawnExpression)
	p.registerPrefix(token.SELF, p.parseSelfIdentifier)

	p.infixParseFns = make(map[token.TokenType]infixParseFn)
	for _, t := range []token.TokenType{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH, token.PERCENT,
		token.EQ, token.NOT_EQ, token.LT, token.GT, token.LTE, token.GTE,
		token.AND, token.OR, token.NULL_COALESCE,
		token.PIPE, token.CARET, token.AMPERSAND, token.LSHIFT, token.RSHIFT,
	} {
		p.registerInfix(t, p.parseBinaryExpression)
	}
	p.registerInfix(token.LPAREN, p.parseCallExpression)
	p.registerInfix(token.LBRACKET, p.parseIndexExpression)
	p.registerInfix(token.DOT, p.parseDotExpression)
	p.registerInfix(token.QUESTION, p.parseTryExpression)
	p.registerInfix(token.RANGE, p.parseRangeExpression)
	p.registerInfix(token.RANGE_EQ, p.parseRangeExpression)
	p.registerInfix(token.PIPE_GT, p.parsePipelineExpression)
	p.registerInfix(token.ASSIGN, p.parseAssignExpression)
	for _, t := range []token.TokenType{
		token.PLUS_ASSIGN, token.MINUS_ASSIGN, token.ASTERISK_ASSIGN,
		token.SLASH_ASSIGN, token.PERCENT_ASSIGN,
	} {
		p.registerInfix(t, p.parseCompoundAssign)
	}

	// Read two tokens so curToken and peekToken are both set
	p.nextToken()
	p.nextToken()

	return p
}

func (p *Parser) registerPrefix(tokenType token.TokenType, fn prefixParseFn) {
	p.prefixParseFns[tokenType] = fn
}

func (p *Parser) registerInfix(tokenType token.TokenType, fn infixParseFn) {
	p.infixParseFns[tokenType] = fn
}

func (p *Parser) nextToken() {
	p.curToken = p.peekToken
	p.peekToken = p.stream.Next()
}

func (p *Parser) curTokenIs(t token.TokenType) bool  { return p.curToken.Type == t }
func (p *Parser) peekTokenIs(t token.TokenType) bool { return p.peekToken.Type == t }

func (p *Parser) expectPeek(t token.TokenType) bool {
	if p.peekTokenIs(t) {
		p.nextToken()
		return true
	}
	p.peekError(t)
	return false
}

func (p *Parser) peekError(t token.TokenType) {
	p.errors = append(p.errors, diagnostics.NewPhaseError(
		diagnostics.PhaseParser, diagnostics.ErrP005, p.peekToken,
		string(t), p.peekToken.Lexeme))
}

func (p *Parser) noPrefixParseFnError(t token.Token) {
	p.errors = append(p.errors, diagnostics.NewPhaseError(
		diagnostics.PhaseParser, diagnostics.ErrP004, t, t.Lexeme))
}

// Errors returns the accumulated parse diagnostics.
func (p *Parser) Errors() []*diagnostics.DiagnosticError {
	return p.errors
}

func (p *Parser) peekPrecedence() int {
	if prec, ok := precedences[p.peekToken.Type]; ok {
		return prec
	}
	return LOWEST
}

func (p *Parser) curPrecedence() int {
	if prec, ok := precedences[p.curToken.Type]; ok {
		return prec
	}
	return LOWEST
}

// ParseProgram parses the whole token stream into a Program.
func (p *Parser) ParseProgram() *ast.Program {
	program := &ast.Program{}

	for !p.curTokenIs(token.EOF) {
		stmt := p.parseStatement()
		if stmt != nil {
			program.Statements = append(program.Statements, stmt)
		}
		p.nextToken()
	}

	return program
}

// skipSemis consumes optional statement terminators.
func (p *Parser) skipSemis() {
	for p.peekTokenIs(token.SEMI) {
		p.nextToken()
	}
}

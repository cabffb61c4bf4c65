package lexer

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wynlang/wyn/internal/token"
)

func TestNextToken(t *testing.T) {
	input := `fn add(x: Int, y: Int) -> Int { return x + y }`

	expected := []struct {
		typ    token.TokenType
		lexeme string
	}{
		{token.FN, "fn"},
		{token.IDENT, "add"},
		{token.LPAREN, "("},
		{token.IDENT, "x"},
		{token.COLON, ":"},
		{token.IDENT, "Int"},
		{token.COMMA, ","},
		{token.IDENT, "y"},
		{token.COLON, ":"},
		{token.IDENT, "Int"},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.IDENT, "Int"},
		{token.LBRACE, "{"},
		{token.RETURN, "return"},
		{token.IDENT, "x"},
		{token.PLUS, "+"},
		{token.IDENT, "y"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		assert.Equal(t, want.typ, tok.Type, "token %d", i)
		assert.Equal(t, want.lexeme, tok.Lexeme, "token %d", i)
	}
}

func TestOperators(t *testing.T) {
	input := `== != <= >= && || ?? :: |> .. ..= => -> ? ...`
	types := []token.TokenType{
		token.EQ, token.NOT_EQ, token.LTE, token.GTE, token.AND, token.OR,
		token.NULL_COALESCE, token.COLON_COLON, token.PIPE_GT,
		token.RANGE, token.RANGE_EQ, token.FAT_ARROW, token.ARROW,
		token.QUESTION, token.ELLIPSIS, token.EOF,
	}

	l := New(input)
	for i, want := range types {
		tok := l.NextToken()
		assert.Equal(t, want, tok.Type, "token %d", i)
	}
}

func TestNumberLiterals(t *testing.T) {
	l := New(`42 3.14 0xFF 0b1010`)

	tok := l.NextToken()
	assert.Equal(t, token.INT, tok.Type)
	assert.Equal(t, int64(42), tok.Literal)

	tok = l.NextToken()
	assert.Equal(t, token.FLOAT, tok.Type)
	assert.Equal(t, 3.14, tok.Literal)

	tok = l.NextToken()
	assert.Equal(t, token.INT, tok.Type)
	assert.Equal(t, int64(255), tok.Literal)

	tok = l.NextToken()
	assert.Equal(t, token.INT, tok.Type)
	assert.Equal(t, int64(10), tok.Literal)
}

func TestRangeDoesNotSwallowFloatDot(t *testing.T) {
	l := New(`1..5`)
	assert.Equal(t, token.INT, l.NextToken().Type)
	assert.Equal(t, token.RANGE, l.NextToken().Type)
	assert.Equal(t, token.INT, l.NextToken().Type)
}

func TestStringsAndInterpolation(t *testing.T) {
	l := New(`"plain" "hi ${name}!" 'c'`)

	tok := l.NextToken()
	assert.Equal(t, token.STRING, tok.Type)
	assert.Equal(t, "plain", tok.Lexeme)

	tok = l.NextToken()
	assert.Equal(t, token.INTERP_STRING, tok.Type)
	assert.Equal(t, "hi ${name}!", tok.Lexeme)

	tok = l.NextToken()
	assert.Equal(t, token.CHAR, tok.Type)
	assert.Equal(t, 'c', tok.Literal)
}

func TestCommentsAreSkipped(t *testing.T) {
	l := New("// line comment\nvar /* block */ x")
	assert.Equal(t, token.VAR, l.NextToken().Type)
	tok := l.NextToken()
	assert.Equal(t, token.IDENT, tok.Type)
	assert.Equal(t, "x", tok.Lexeme)
}

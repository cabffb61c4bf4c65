package ast

import (
	"github.com/wynlang/wyn/internal/token"
	"github.com/wynlang/wyn/internal/typesystem"
)

// TokenProvider is an interface for any AST node that can provide its
// primary token. This is useful for error reporting.
type TokenProvider interface {
	GetToken() token.Token
}

// Node is the base interface for all AST nodes.
type Node interface {
	TokenLiteral() string
}

// Statement is a Node that represents a statement.
type Statement interface {
	Node
	statementNode()
	GetToken() token.Token
}

// Expression is a Node that represents an expression. Every expression
// carries a resolved-type slot populated by the analyzer.
type Expression interface {
	Node
	expressionNode()
	GetToken() token.Token
	ResolvedType() typesystem.Type
	SetResolvedType(typesystem.Type)
}

// typed is embedded in every expression node to hold the analyzer's
// verdict. The slot is written once; later writes are ignored so that
// error recovery never clobbers an earlier successful resolution.
type typed struct {
	resolved typesystem.Type
}

func (t *typed) ResolvedType() typesystem.Type { return t.resolved }

func (t *typed) SetResolvedType(typ typesystem.Type) {
	if t.resolved == nil {
		t.resolved = typ
	}
}

// Program is the root node of every AST our parser produces.
type Program struct {
	Path       string // canonical source path, empty for the entry file
	Statements []Statement
}

func (p *Program) TokenLiteral() string {
	if len(p.Statements) > 0 {
		return p.Statements[0].TokenLiteral()
	}
	return ""
}

// Param is one declared function or lambda parameter.
type Param struct {
	Name token.Token
	Type TypeExpr // nil when untyped (lambdas default to Int)
}

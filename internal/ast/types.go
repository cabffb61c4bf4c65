package ast

import "github.com/wynlang/wyn/internal/token"

// TypeExpr is the syntactic form of a type annotation. The analyzer's
// type builder resolves these against the type registry.
type TypeExpr interface {
	Node
	typeExprNode()
	GetToken() token.Token
}

// NamedType is a bare or generic-applied type name: Int, Color,
// Map<String, Int>, Box<T>.
type NamedType struct {
	Token token.Token
	Name  string
	Args  []TypeExpr
}

func (nt *NamedType) typeExprNode()         {}
func (nt *NamedType) TokenLiteral() string  { return nt.Token.Lexeme }
func (nt *NamedType) GetToken() token.Token { return nt.Token }

// ArrayType is [Elem]
type ArrayType struct {
	Token token.Token
	Elem  TypeExpr
}

func (at *ArrayType) typeExprNode()         {}
func (at *ArrayType) TokenLiteral() string  { return at.Token.Lexeme }
func (at *ArrayType) GetToken() token.Token { return at.Token }

// FunctionType is fn(T1, T2) -> R
type FunctionType struct {
	Token      token.Token
	Params     []TypeExpr
	ReturnType TypeExpr
	IsVariadic bool
}

func (ft *FunctionType) typeExprNode()         {}
func (ft *FunctionType) TokenLiteral() string  { return ft.Token.Lexeme }
func (ft *FunctionType) GetToken() token.Token { return ft.Token }

// OptionalType is T?
type OptionalType struct {
	Token token.Token
	Inner TypeExpr
}

func (ot *OptionalType) typeExprNode()         {}
func (ot *OptionalType) TokenLiteral() string  { return ot.Token.Lexeme }
func (ot *OptionalType) GetToken() token.Token { return ot.Token }

// UnionType is T | U | V
type UnionType struct {
	Token   token.Token
	Members []TypeExpr
}

func (ut *UnionType) typeExprNode()         {}
func (ut *UnionType) TokenLiteral() string  { return ut.Token.Lexeme }
func (ut *UnionType) GetToken() token.Token { return ut.Token }

// ResultTypeExpr is Result<T, E>
type ResultTypeExpr struct {
	Token token.Token
	Ok    TypeExpr
	Err   TypeExpr
}

func (rt *ResultTypeExpr) typeExprNode()         {}
func (rt *ResultTypeExpr) TokenLiteral() string  { return rt.Token.Lexeme }
func (rt *ResultTypeExpr) GetToken() token.Token { return rt.Token }

package ast

import "github.com/wynlang/wyn/internal/token"

// Pattern is the interface for all match and destructuring patterns.
// Patterns are created by the parser and consumed by the analyzer to
// bind names into arm scopes; they are never mutated.
type Pattern interface {
	Node
	patternNode()
	GetToken() token.Token
}

// WildcardPattern matches anything and binds nothing: _
type WildcardPattern struct {
	Token token.Token
}

func (wp *WildcardPattern) patternNode()          {}
func (wp *WildcardPattern) TokenLiteral() string  { return wp.Token.Lexeme }
func (wp *WildcardPattern) GetToken() token.Token { return wp.Token }

// IdentifierPattern binds the matched value to a name.
type IdentifierPattern struct {
	Token token.Token
	Value string
}

func (ip *IdentifierPattern) patternNode()          {}
func (ip *IdentifierPattern) TokenLiteral() string  { return ip.Token.Lexeme }
func (ip *IdentifierPattern) GetToken() token.Token { return ip.Token }

// LiteralPattern matches a literal value (int, float, string, char, bool).
type LiteralPattern struct {
	Token token.Token
	Value interface{}
}

func (lp *LiteralPattern) patternNode()          {}
func (lp *LiteralPattern) TokenLiteral() string  { return lp.Token.Lexeme }
func (lp *LiteralPattern) GetToken() token.Token { return lp.Token }

// TuplePattern destructures a tuple: (a, b, _)
type TuplePattern struct {
	Token    token.Token
	Elements []Pattern
}

func (tp *TuplePattern) patternNode()          {}
func (tp *TuplePattern) TokenLiteral() string  { return tp.Token.Lexeme }
func (tp *TuplePattern) GetToken() token.Token { return tp.Token }

// ArrayPattern destructures an array, with an optional trailing rest
// binding: [first, second, ..rest]
type ArrayPattern struct {
	Token    token.Token
	Elements []Pattern
	HasRest  bool
	RestName token.Token // valid only when HasRest
}

func (ap *ArrayPattern) patternNode()          {}
func (ap *ArrayPattern) TokenLiteral() string  { return ap.Token.Lexeme }
func (ap *ArrayPattern) GetToken() token.Token { return ap.Token }

// StructPatternField pairs a field name with its sub-pattern. A nil
// Pattern is shorthand binding: Point { x } binds x.
type StructPatternField struct {
	Name    token.Token
	Pattern Pattern
}

// StructPattern destructures a struct: Point { x, y: captured }
type StructPattern struct {
	Token  token.Token
	Name   *Identifier
	Fields []StructPatternField
}

func (sp *StructPattern) patternNode()          {}
func (sp *StructPattern) TokenLiteral() string  { return sp.Token.Lexeme }
func (sp *StructPattern) GetToken() token.Token { return sp.Token }

// EnumVariantPattern matches an enum variant: Color::Red, Shape.Circle(r),
// or a bare variant name when the enum is inferable from the subject.
type EnumVariantPattern struct {
	Token    token.Token
	EnumName *Identifier // nil for bare variant references
	Variant  *Identifier
	Elements []Pattern // payload sub-patterns for data-carrying variants
}

func (ep *EnumVariantPattern) patternNode()          {}
func (ep *EnumVariantPattern) TokenLiteral() string  { return ep.Token.Lexeme }
func (ep *EnumVariantPattern) GetToken() token.Token { return ep.Token }

// OptionPattern matches Some(p) or None.
type OptionPattern struct {
	Token  token.Token
	IsSome bool
	Inner  Pattern // nil for None
}

func (op *OptionPattern) patternNode()          {}
func (op *OptionPattern) TokenLiteral() string  { return op.Token.Lexeme }
func (op *OptionPattern) GetToken() token.Token { return op.Token }

// RangePattern matches a value within start..end (or ..= inclusive).
type RangePattern struct {
	Token     token.Token
	Start     Expression
	End       Expression
	Inclusive bool
}

func (rp *RangePattern) patternNode()          {}
func (rp *RangePattern) TokenLiteral() string  { return rp.Token.Lexeme }
func (rp *RangePattern) GetToken() token.Token { return rp.Token }

// OrPattern matches when any alternative matches: p1 | p2 | p3
type OrPattern struct {
	Token        token.Token
	Alternatives []Pattern
}

func (op *OrPattern) patternNode()          {}
func (op *OrPattern) TokenLiteral() string  { return op.Token.Lexeme }
func (op *OrPattern) GetToken() token.Token { return op.Token }

// GuardPattern wraps a pattern with a boolean guard: p if cond.
// The guard is checked after the pattern's bindings are in scope.
type GuardPattern struct {
	Token   token.Token
	Pattern Pattern
	Guard   Expression
}

func (gp *GuardPattern) patternNode()          {}
func (gp *GuardPattern) TokenLiteral() string  { return gp.Token.Lexeme }
func (gp *GuardPattern) GetToken() token.Token { return gp.Token }

package ast

import "github.com/wynlang/wyn/internal/token"

// Identifier represents an identifier, e.g. a variable name. Qualified
// references (mod::fn) arrive from the parser as a single identifier
// whose Value contains the separator.
type Identifier struct {
	typed
	Token token.Token
	Value string
}

func (i *Identifier) expressionNode()       {}
func (i *Identifier) TokenLiteral() string  { return i.Token.Lexeme }
func (i *Identifier) GetToken() token.Token { return i.Token }

// IntegerLiteral represents an integer literal.
type IntegerLiteral struct {
	typed
	Token token.Token
	Value int64
}

func (il *IntegerLiteral) expressionNode()       {}
func (il *IntegerLiteral) TokenLiteral() string  { return il.Token.Lexeme }
func (il *IntegerLiteral) GetToken() token.Token { return il.Token }

// FloatLiteral represents a floating point literal.
type FloatLiteral struct {
	typed
	Token token.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()       {}
func (fl *FloatLiteral) TokenLiteral() string  { return fl.Token.Lexeme }
func (fl *FloatLiteral) GetToken() token.Token { return fl.Token }

// StringLiteral represents a string, e.g. "hello"
type StringLiteral struct {
	typed
	Token token.Token
	Value string
}

func (sl *StringLiteral) expressionNode()       {}
func (sl *StringLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *StringLiteral) GetToken() token.Token { return sl.Token }

// InterpolatedString represents a string with embedded expressions,
// e.g. "Hello, ${name}!". Parts alternate between StringLiteral text
// and interpolation expressions.
type InterpolatedString struct {
	typed
	Token token.Token
	Parts []Expression
}

func (is *InterpolatedString) expressionNode()       {}
func (is *InterpolatedString) TokenLiteral() string  { return is.Token.Lexeme }
func (is *InterpolatedString) GetToken() token.Token { return is.Token }

// CharLiteral represents a character, e.g. 'c'
type CharLiteral struct {
	typed
	Token token.Token
	Value rune
}

func (cl *CharLiteral) expressionNode()       {}
func (cl *CharLiteral) TokenLiteral() string  { return cl.Token.Lexeme }
func (cl *CharLiteral) GetToken() token.Token { return cl.Token }

// BooleanLiteral represents boolean literals true/false.
type BooleanLiteral struct {
	typed
	Token token.Token
	Value bool
}

func (b *BooleanLiteral) expressionNode()       {}
func (b *BooleanLiteral) TokenLiteral() string  { return b.Token.Lexeme }
func (b *BooleanLiteral) GetToken() token.Token { return b.Token }

// UnaryExpression represents a prefix operation, e.g. !ok or -x
type UnaryExpression struct {
	typed
	Token    token.Token // the operator token
	Operator string
	Right    Expression
}

func (ue *UnaryExpression) expressionNode()       {}
func (ue *UnaryExpression) TokenLiteral() string  { return ue.Token.Lexeme }
func (ue *UnaryExpression) GetToken() token.Token { return ue.Token }

// BinaryExpression represents an infix operation, e.g. a + b
type BinaryExpression struct {
	typed
	Token    token.Token // the operator token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpression) expressionNode()       {}
func (be *BinaryExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BinaryExpression) GetToken() token.Token { return be.Token }

// CallExpression represents a call, e.g. f(1, 2)
type CallExpression struct {
	typed
	Token     token.Token // the '(' token
	Callee    Expression
	Arguments []Expression
	// TypeArgs carries explicit generic arguments, e.g. id<Int>(x)
	TypeArgs []TypeExpr
	// Mangled records the emission name picked by overload resolution.
	Mangled string
}

func (ce *CallExpression) expressionNode()       {}
func (ce *CallExpression) TokenLiteral() string  { return ce.Token.Lexeme }
func (ce *CallExpression) GetToken() token.Token { return ce.Token }

// MethodCallExpression represents obj.m(args)
type MethodCallExpression struct {
	typed
	Token     token.Token // the '.' token
	Receiver  Expression
	Method    *Identifier
	Arguments []Expression
	// CFunc and ByRef record the dispatch-table verdict for code gen.
	CFunc string
	ByRef bool
}

func (mc *MethodCallExpression) expressionNode()       {}
func (mc *MethodCallExpression) TokenLiteral() string  { return mc.Token.Lexeme }
func (mc *MethodCallExpression) GetToken() token.Token { return mc.Token }

// FieldAccessExpression represents dot access, e.g. obj.field or Enum.Variant
type FieldAccessExpression struct {
	typed
	Token token.Token // the '.' token
	Left  Expression
	Field *Identifier
}

func (fa *FieldAccessExpression) expressionNode()       {}
func (fa *FieldAccessExpression) TokenLiteral() string  { return fa.Token.Lexeme }
func (fa *FieldAccessExpression) GetToken() token.Token { return fa.Token }

// TupleIndexExpression represents positional access, e.g. pair.0
type TupleIndexExpression struct {
	typed
	Token token.Token
	Left  Expression
	Index int
}

func (ti *TupleIndexExpression) expressionNode()       {}
func (ti *TupleIndexExpression) TokenLiteral() string  { return ti.Token.Lexeme }
func (ti *TupleIndexExpression) GetToken() token.Token { return ti.Token }

// ArrayLiteral represents an array, e.g. [1, 2, 3]
type ArrayLiteral struct {
	typed
	Token    token.Token // the '[' token
	Elements []Expression
}

func (al *ArrayLiteral) expressionNode()       {}
func (al *ArrayLiteral) TokenLiteral() string  { return al.Token.Lexeme }
func (al *ArrayLiteral) GetToken() token.Token { return al.Token }

// MapLiteral represents a map literal, e.g. { "key": value }
type MapLiteral struct {
	typed
	Token token.Token
	Pairs []struct{ Key, Value Expression }
}

func (ml *MapLiteral) expressionNode()       {}
func (ml *MapLiteral) TokenLiteral() string  { return ml.Token.Lexeme }
func (ml *MapLiteral) GetToken() token.Token { return ml.Token }

// SetLiteral represents a set literal, e.g. #{1, 2, 3}
type SetLiteral struct {
	typed
	Token    token.Token
	Elements []Expression
}

func (sl *SetLiteral) expressionNode()       {}
func (sl *SetLiteral) TokenLiteral() string  { return sl.Token.Lexeme }
func (sl *SetLiteral) GetToken() token.Token { return sl.Token }

// IndexExpression represents indexing, e.g. arr[i]
type IndexExpression struct {
	typed
	Token token.Token // the '[' token
	Left  Expression
	Index Expression
}

func (ie *IndexExpression) expressionNode()       {}
func (ie *IndexExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IndexExpression) GetToken() token.Token { return ie.Token }

// IndexAssignExpression represents arr[i] = value
type IndexAssignExpression struct {
	typed
	Token token.Token
	Left  Expression
	Index Expression
	Value Expression
}

func (ia *IndexAssignExpression) expressionNode()       {}
func (ia *IndexAssignExpression) TokenLiteral() string  { return ia.Token.Lexeme }
func (ia *IndexAssignExpression) GetToken() token.Token { return ia.Token }

// AssignExpression represents name = value
type AssignExpression struct {
	typed
	Token token.Token
	Name  *Identifier
	Value Expression
}

func (ae *AssignExpression) expressionNode()       {}
func (ae *AssignExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AssignExpression) GetToken() token.Token { return ae.Token }

// FieldAssignExpression represents obj.field = value
type FieldAssignExpression struct {
	typed
	Token  token.Token
	Object Expression
	Field  *Identifier
	Value  Expression
}

func (fa *FieldAssignExpression) expressionNode()       {}
func (fa *FieldAssignExpression) TokenLiteral() string  { return fa.Token.Lexeme }
func (fa *FieldAssignExpression) GetToken() token.Token { return fa.Token }

// StructInitField is one field: value entry in a struct initializer.
type StructInitField struct {
	Name  token.Token
	Value Expression
}

// StructInitExpression represents TypeName { field: value, ... }
type StructInitExpression struct {
	typed
	Token  token.Token // the type name token
	Name   *Identifier
	Fields []StructInitField
}

func (si *StructInitExpression) expressionNode()       {}
func (si *StructInitExpression) TokenLiteral() string  { return si.Token.Lexeme }
func (si *StructInitExpression) GetToken() token.Token { return si.Token }

// RangeExpression represents start..end or start..=end
type RangeExpression struct {
	typed
	Token     token.Token
	Start     Expression
	End       Expression
	Inclusive bool
}

func (re *RangeExpression) expressionNode()       {}
func (re *RangeExpression) TokenLiteral() string  { return re.Token.Lexeme }
func (re *RangeExpression) GetToken() token.Token { return re.Token }

// LambdaExpression represents fn(x, y) { ... } or |x| x + 1.
// Captures is filled by the analyzer's capture analysis; capture is by
// reference by default.
type LambdaExpression struct {
	typed
	Token    token.Token
	Params   []Param
	Body     Statement // a *BlockStatement or a wrapped expression
	Captures []string
}

func (le *LambdaExpression) expressionNode()       {}
func (le *LambdaExpression) TokenLiteral() string  { return le.Token.Lexeme }
func (le *LambdaExpression) GetToken() token.Token { return le.Token }

// BlockExpression represents a block used in expression position; its
// value is the value of the final expression statement.
type BlockExpression struct {
	typed
	Token token.Token
	Block *BlockStatement
}

func (be *BlockExpression) expressionNode()       {}
func (be *BlockExpression) TokenLiteral() string  { return be.Token.Lexeme }
func (be *BlockExpression) GetToken() token.Token { return be.Token }

// IfExpression represents if cond { ... } else { ... } in expression
// position; both branches must agree on a type.
type IfExpression struct {
	typed
	Token       token.Token
	Condition   Expression
	Consequence Expression
	Alternative Expression // nil when there is no else branch
}

func (ie *IfExpression) expressionNode()       {}
func (ie *IfExpression) TokenLiteral() string  { return ie.Token.Lexeme }
func (ie *IfExpression) GetToken() token.Token { return ie.Token }

// MatchArm is one arm of a match expression or statement.
type MatchArm struct {
	Pattern Pattern
	Guard   Expression // nil without a guard
	Body    Expression
}

// MatchExpression represents match value { pattern => result, ... }
type MatchExpression struct {
	typed
	Token   token.Token
	Subject Expression
	Arms    []MatchArm
}

func (me *MatchExpression) expressionNode()       {}
func (me *MatchExpression) TokenLiteral() string  { return me.Token.Lexeme }
func (me *MatchExpression) GetToken() token.Token { return me.Token }

// AwaitExpression represents await expr
type AwaitExpression struct {
	typed
	Token token.Token
	Value Expression
}

func (ae *AwaitExpression) expressionNode()       {}
func (ae *AwaitExpression) TokenLiteral() string  { return ae.Token.Lexeme }
func (ae *AwaitExpression) GetToken() token.Token { return ae.Token }

// SpawnExpression represents spawn f(args)
type SpawnExpression struct {
	typed
	Token token.Token
	Call  Expression
}

func (se *SpawnExpression) expressionNode()       {}
func (se *SpawnExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SpawnExpression) GetToken() token.Token { return se.Token }

// PipelineExpression represents value |> f |> g
type PipelineExpression struct {
	typed
	Token token.Token
	Left  Expression
	Right Expression
}

func (pe *PipelineExpression) expressionNode()       {}
func (pe *PipelineExpression) TokenLiteral() string  { return pe.Token.Lexeme }
func (pe *PipelineExpression) GetToken() token.Token { return pe.Token }

// TryExpression represents expr? — unwraps a Result, returning the
// error case from the enclosing function at runtime.
type TryExpression struct {
	typed
	Token token.Token
	Value Expression
}

func (te *TryExpression) expressionNode()       {}
func (te *TryExpression) TokenLiteral() string  { return te.Token.Lexeme }
func (te *TryExpression) GetToken() token.Token { return te.Token }

// SomeExpression represents Some(value)
type SomeExpression struct {
	typed
	Token token.Token
	Value Expression
}

func (se *SomeExpression) expressionNode()       {}
func (se *SomeExpression) TokenLiteral() string  { return se.Token.Lexeme }
func (se *SomeExpression) GetToken() token.Token { return se.Token }

// NoneExpression represents None
type NoneExpression struct {
	typed
	Token token.Token
}

func (ne *NoneExpression) expressionNode()       {}
func (ne *NoneExpression) TokenLiteral() string  { return ne.Token.Lexeme }
func (ne *NoneExpression) GetToken() token.Token { return ne.Token }

// OkExpression represents Ok(value)
type OkExpression struct {
	typed
	Token token.Token
	Value Expression
}

func (oe *OkExpression) expressionNode()       {}
func (oe *OkExpression) TokenLiteral() string  { return oe.Token.Lexeme }
func (oe *OkExpression) GetToken() token.Token { return oe.Token }

// ErrExpression represents Err(value)
type ErrExpression struct {
	typed
	Token token.Token
	Value Expression
}

func (ee *ErrExpression) expressionNode()       {}
func (ee *ErrExpression) TokenLiteral() string  { return ee.Token.Lexeme }
func (ee *ErrExpression) GetToken() token.Token { return ee.Token }

// TupleLiteral represents a tuple, e.g. (1, "two")
type TupleLiteral struct {
	typed
	Token    token.Token
	Elements []Expression
}

func (tl *TupleLiteral) expressionNode()       {}
func (tl *TupleLiteral) TokenLiteral() string  { return tl.Token.Lexeme }
func (tl *TupleLiteral) GetToken() token.Token { return tl.Token }

// ListComprehension represents [expr for name in iterable if cond]
type ListComprehension struct {
	typed
	Token     token.Token
	Element   Expression
	Variable  *Identifier
	Iterable  Expression
	Condition Expression // nil without a filter
}

func (lc *ListComprehension) expressionNode()       {}
func (lc *ListComprehension) TokenLiteral() string  { return lc.Token.Lexeme }
func (lc *ListComprehension) GetToken() token.Token { return lc.Token }

// TypeLiteralExpression wraps a type expression appearing in value
// position, e.g. the argument of typeof-like builtins.
type TypeLiteralExpression struct {
	typed
	Token token.Token
	Type  TypeExpr
}

func (tl *TypeLiteralExpression) expressionNode()       {}
func (tl *TypeLiteralExpression) TokenLiteral() string  { return tl.Token.Lexeme }
func (tl *TypeLiteralExpression) GetToken() token.Token { return tl.Token }

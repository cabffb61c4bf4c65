package ast

import "github.com/wynlang/wyn/internal/token"

// VarStatement represents a variable declaration:
// var x = 1, var x: Int = 1, or a destructuring var (a, b) = pair.
type VarStatement struct {
	Token   token.Token // the 'var' token
	Name    *Identifier // nil when Pattern is set
	Pattern Pattern     // destructuring form; mutually exclusive with Name
	Type    TypeExpr    // optional annotation
	Value   Expression
}

func (vs *VarStatement) statementNode()        {}
func (vs *VarStatement) TokenLiteral() string  { return vs.Token.Lexeme }
func (vs *VarStatement) GetToken() token.Token { return vs.Token }

// ConstStatement represents const NAME = literal.
type ConstStatement struct {
	Token token.Token
	Name  *Identifier
	Type  TypeExpr
	Value Expression
}

func (cs *ConstStatement) statementNode()        {}
func (cs *ConstStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ConstStatement) GetToken() token.Token { return cs.Token }

// ExpressionStatement wraps an expression used for its effect.
type ExpressionStatement struct {
	Token      token.Token
	Expression Expression
}

func (es *ExpressionStatement) statementNode()        {}
func (es *ExpressionStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExpressionStatement) GetToken() token.Token { return es.Token }

// ReturnStatement represents return [expr]
type ReturnStatement struct {
	Token token.Token
	Value Expression // nil for a bare return
}

func (rs *ReturnStatement) statementNode()        {}
func (rs *ReturnStatement) TokenLiteral() string  { return rs.Token.Lexeme }
func (rs *ReturnStatement) GetToken() token.Token { return rs.Token }

// BlockStatement represents { stmt... }
type BlockStatement struct {
	Token      token.Token
	Statements []Statement
}

func (bs *BlockStatement) statementNode()        {}
func (bs *BlockStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BlockStatement) GetToken() token.Token { return bs.Token }

// IfStatement represents if cond { } else if ... else { }
type IfStatement struct {
	Token       token.Token
	Condition   Expression
	Consequence *BlockStatement
	Alternative Statement // *BlockStatement or a chained *IfStatement, nil when absent
}

func (is *IfStatement) statementNode()        {}
func (is *IfStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *IfStatement) GetToken() token.Token { return is.Token }

// WhileStatement represents while cond { }
type WhileStatement struct {
	Token     token.Token
	Condition Expression
	Body      *BlockStatement
}

func (ws *WhileStatement) statementNode()        {}
func (ws *WhileStatement) TokenLiteral() string  { return ws.Token.Lexeme }
func (ws *WhileStatement) GetToken() token.Token { return ws.Token }

// ForStatement covers both forms: the C-style for (init; cond; post)
// and the range form for item in iterable. Exactly one of Init/Variable
// is set.
type ForStatement struct {
	Token token.Token

	// C-style
	Init      Statement
	Condition Expression
	Post      Expression

	// Range form
	Variable *Identifier
	Iterable Expression

	Body *BlockStatement
}

func (fs *ForStatement) statementNode()        {}
func (fs *ForStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *ForStatement) GetToken() token.Token { return fs.Token }

// IsRange reports whether this is the for-in form.
func (fs *ForStatement) IsRange() bool { return fs.Variable != nil }

// TypeParam is one declared generic parameter with optional trait bounds.
type TypeParam struct {
	Name   token.Token
	Bounds []token.Token
}

// FunctionStatement represents fn name(params) -> ret { body }.
// Generic functions carry TypeParams and are registered as templates.
type FunctionStatement struct {
	Token      token.Token
	Name       *Identifier
	TypeParams []TypeParam
	Params     []Param
	ReturnType TypeExpr // nil means Void
	Body       *BlockStatement
	IsPublic   bool
	// Receiver is set for methods declared inside impl blocks.
	Receiver TypeExpr
}

func (fs *FunctionStatement) statementNode()        {}
func (fs *FunctionStatement) TokenLiteral() string  { return fs.Token.Lexeme }
func (fs *FunctionStatement) GetToken() token.Token { return fs.Token }

// IsGeneric reports whether the function declares type parameters.
func (fs *FunctionStatement) IsGeneric() bool { return len(fs.TypeParams) > 0 }

// ExternStatement represents extern fn name(params) -> ret
type ExternStatement struct {
	Token      token.Token
	Name       *Identifier
	Params     []Param
	ReturnType TypeExpr
	IsVariadic bool
}

func (es *ExternStatement) statementNode()        {}
func (es *ExternStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExternStatement) GetToken() token.Token { return es.Token }

// MacroStatement represents macro name(params) { body }. Macros are
// registered as functions; expansion is out of scope.
type MacroStatement struct {
	Token  token.Token
	Name   *Identifier
	Params []Param
	Body   *BlockStatement
}

func (ms *MacroStatement) statementNode()        {}
func (ms *MacroStatement) TokenLiteral() string  { return ms.Token.Lexeme }
func (ms *MacroStatement) GetToken() token.Token { return ms.Token }

// StructFieldDecl is one declared field of a struct.
type StructFieldDecl struct {
	Name token.Token
	Type TypeExpr
}

// StructStatement represents struct Name { field: Type, ... }
type StructStatement struct {
	Token      token.Token
	Name       *Identifier
	TypeParams []TypeParam
	Fields     []StructFieldDecl
	IsPublic   bool
}

func (ss *StructStatement) statementNode()        {}
func (ss *StructStatement) TokenLiteral() string  { return ss.Token.Lexeme }
func (ss *StructStatement) GetToken() token.Token { return ss.Token }

// IsGeneric reports whether the struct declares type parameters.
func (ss *StructStatement) IsGeneric() bool { return len(ss.TypeParams) > 0 }

// ObjectStatement represents object Name { field: Type, ... fn m() {} }.
// Objects are structs with inline methods.
type ObjectStatement struct {
	Token   token.Token
	Name    *Identifier
	Fields  []StructFieldDecl
	Methods []*FunctionStatement
}

func (os *ObjectStatement) statementNode()        {}
func (os *ObjectStatement) TokenLiteral() string  { return os.Token.Lexeme }
func (os *ObjectStatement) GetToken() token.Token { return os.Token }

// ImplStatement represents impl TypeName { fn m(self) { } ... } or
// impl Trait for TypeName { ... }
type ImplStatement struct {
	Token    token.Token
	Trait    *Identifier // nil for inherent impls
	TypeName *Identifier
	Methods  []*FunctionStatement
}

func (is *ImplStatement) statementNode()        {}
func (is *ImplStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *ImplStatement) GetToken() token.Token { return is.Token }

// TraitMethodDecl is one required method signature in a trait.
type TraitMethodDecl struct {
	Name       token.Token
	Params     []Param
	ReturnType TypeExpr
}

// TraitStatement represents trait Name { fn m(self) -> T ... }
type TraitStatement struct {
	Token   token.Token
	Name    *Identifier
	Methods []TraitMethodDecl
}

func (ts *TraitStatement) statementNode()        {}
func (ts *TraitStatement) TokenLiteral() string  { return ts.Token.Lexeme }
func (ts *TraitStatement) GetToken() token.Token { return ts.Token }

// EnumVariantDecl is one declared variant; Params is empty for nullary
// variants.
type EnumVariantDecl struct {
	Name   token.Token
	Params []TypeExpr
}

// EnumStatement represents enum Name { A, B(Int), ... }
type EnumStatement struct {
	Token    token.Token
	Name     *Identifier
	Variants []EnumVariantDecl
	IsPublic bool
}

func (es *EnumStatement) statementNode()        {}
func (es *EnumStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *EnumStatement) GetToken() token.Token { return es.Token }

// TypeAliasStatement represents type Name = TypeExpr
type TypeAliasStatement struct {
	Token token.Token
	Name  *Identifier
	Type  TypeExpr
}

func (ta *TypeAliasStatement) statementNode()        {}
func (ta *TypeAliasStatement) TokenLiteral() string  { return ta.Token.Lexeme }
func (ta *TypeAliasStatement) GetToken() token.Token { return ta.Token }

// ImportStatement represents import path [as alias]
type ImportStatement struct {
	Token token.Token
	Path  string
	Alias *Identifier // optional
}

func (is *ImportStatement) statementNode()        {}
func (is *ImportStatement) TokenLiteral() string  { return is.Token.Lexeme }
func (is *ImportStatement) GetToken() token.Token { return is.Token }

// ShortName returns the name call sites use to qualify references:
// the alias when present, else the final path component.
func (is *ImportStatement) ShortName() string {
	if is.Alias != nil {
		return is.Alias.Value
	}
	path := is.Path
	for i := len(path) - 1; i >= 0; i-- {
		if path[i] == '/' || path[i] == ':' {
			return path[i+1:]
		}
	}
	return path
}

// ExportStatement represents export fn ... or export a declaration list.
type ExportStatement struct {
	Token token.Token
	Decl  Statement
}

func (es *ExportStatement) statementNode()        {}
func (es *ExportStatement) TokenLiteral() string  { return es.Token.Lexeme }
func (es *ExportStatement) GetToken() token.Token { return es.Token }

// MatchStatement represents match value { pattern => { ... } ... } in
// statement position.
type MatchStatement struct {
	Token   token.Token
	Subject Expression
	Arms    []MatchStmtArm
}

// MatchStmtArm is one arm of a match statement; the body is a statement.
type MatchStmtArm struct {
	Pattern Pattern
	Guard   Expression
	Body    Statement
}

func (ms *MatchStatement) statementNode()        {}
func (ms *MatchStatement) TokenLiteral() string  { return ms.Token.Lexeme }
func (ms *MatchStatement) GetToken() token.Token { return ms.Token }

// CatchClause is one catch (Type name) { ... } arm.
type CatchClause struct {
	Token token.Token
	Type  TypeExpr // optional error type filter
	Name  *Identifier
	Body  *BlockStatement
}

// TryStatement represents try { } catch (T e) { } finally { }
type TryStatement struct {
	Token   token.Token
	Body    *BlockStatement
	Catches []CatchClause
	Finally *BlockStatement // nil when absent
}

func (ts *TryStatement) statementNode()        {}
func (ts *TryStatement) TokenLiteral() string  { return ts.Token.Lexeme }
func (ts *TryStatement) GetToken() token.Token { return ts.Token }

// ThrowStatement represents throw expr
type ThrowStatement struct {
	Token token.Token
	Value Expression
}

func (ts *ThrowStatement) statementNode()        {}
func (ts *ThrowStatement) TokenLiteral() string  { return ts.Token.Lexeme }
func (ts *ThrowStatement) GetToken() token.Token { return ts.Token }

// BreakStatement represents break
type BreakStatement struct {
	Token token.Token
}

func (bs *BreakStatement) statementNode()        {}
func (bs *BreakStatement) TokenLiteral() string  { return bs.Token.Lexeme }
func (bs *BreakStatement) GetToken() token.Token { return bs.Token }

// ContinueStatement represents continue
type ContinueStatement struct {
	Token token.Token
}

func (cs *ContinueStatement) statementNode()        {}
func (cs *ContinueStatement) TokenLiteral() string  { return cs.Token.Lexeme }
func (cs *ContinueStatement) GetToken() token.Token { return cs.Token }

// DeferStatement represents defer expr
type DeferStatement struct {
	Token token.Token
	Call  Expression
}

func (ds *DeferStatement) statementNode()        {}
func (ds *DeferStatement) TokenLiteral() string  { return ds.Token.Lexeme }
func (ds *DeferStatement) GetToken() token.Token { return ds.Token }

// UnsafeStatement represents unsafe { ... }
type UnsafeStatement struct {
	Token token.Token
	Body  *BlockStatement
}

func (us *UnsafeStatement) statementNode()        {}
func (us *UnsafeStatement) TokenLiteral() string  { return us.Token.Lexeme }
func (us *UnsafeStatement) GetToken() token.Token { return us.Token }

// TestStatement represents test "name" { ... }
type TestStatement struct {
	Token token.Token
	Name  string
	Body  *BlockStatement
}

func (ts *TestStatement) statementNode()        {}
func (ts *TestStatement) TokenLiteral() string  { return ts.Token.Lexeme }
func (ts *TestStatement) GetToken() token.Token { return ts.Token }

// SpawnStatement represents spawn f(args) in statement position.
type SpawnStatement struct {
	Token token.Token
	Call  Expression
}

func (ss *SpawnStatement) statementNode()        {}
func (ss *SpawnStatement) TokenLiteral() string  { return ss.Token.Lexeme }
func (ss *SpawnStatement) GetToken() token.Token { return ss.Token }

package prettyprinter

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/wynlang/wyn/internal/ast"
)

// --- Tree Printer (Output looks like a tree structure) ---

// TreePrinter renders a program as an indented node tree, with resolved
// types when the analyzer has filled them in. Used by `wyn check --ast`.
type TreePrinter struct {
	buf    bytes.Buffer
	indent int
}

func NewTreePrinter() *TreePrinter {
	return &TreePrinter{}
}

func (p *TreePrinter) String() string {
	return p.buf.String()
}

func (p *TreePrinter) write(s string) {
	p.buf.WriteString(s)
}

func (p *TreePrinter) line(s string) {
	p.write(strings.Repeat("  ", p.indent))
	p.write(s)
	p.write("\n")
}

func (p *TreePrinter) nested(fn func()) {
	p.indent++
	fn()
	p.indent--
}

// Print renders the whole program.
func (p *TreePrinter) Print(program *ast.Program) string {
	for _, stmt := range program.Statements {
		p.printStmt(stmt)
	}
	return p.String()
}

func (p *TreePrinter) printStmt(stmt ast.Statement) {
	switch s := stmt.(type) {
	case nil:
		return

	case *ast.VarStatement:
		name := "<pattern>"
		if s.Name != nil {
			name = s.Name.Value
		}
		p.line("Var: " + name)
		p.nested(func() { p.printExpr(s.Value) })

	case *ast.ConstStatement:
		p.line("Const: " + s.Name.Value)
		p.nested(func() { p.printExpr(s.Value) })

	case *ast.ExpressionStatement:
		p.printExpr(s.Expression)

	case *ast.ReturnStatement:
		p.line("Return")
		if s.Value != nil {
			p.nested(func() { p.printExpr(s.Value) })
		}

	case *ast.BlockStatement:
		p.line("Block")
		p.nested(func() {
			for _, inner := range s.Statements {
				p.printStmt(inner)
			}
		})

	case *ast.IfStatement:
		p.line("If")
		p.nested(func() {
			p.printExpr(s.Condition)
			p.printStmt(s.Consequence)
			p.printStmt(s.Alternative)
		})

	case *ast.WhileStatement:
		p.line("While")
		p.nested(func() {
			p.printExpr(s.Condition)
			p.printStmt(s.Body)
		})

	case *ast.ForStatement:
		if s.IsRange() {
			p.line("For: " + s.Variable.Value + " in")
			p.nested(func() {
				p.printExpr(s.Iterable)
				p.printStmt(s.Body)
			})
		} else {
			p.line("For")
			p.nested(func() {
				p.printStmt(s.Init)
				p.printExpr(s.Condition)
				p.printExpr(s.Post)
				p.printStmt(s.Body)
			})
		}

	case *ast.FunctionStatement:
		header := "Fn: " + s.Name.Value
		if s.IsGeneric() {
			var params []string
			for _, tp := range s.TypeParams {
				params = append(params, tp.Name.Lexeme)
			}
			header += "<" + strings.Join(params, ", ") + ">"
		}
		if s.IsPublic {
			header = "Pub " + header
		}
		p.line(header)
		p.nested(func() {
			for _, param := range s.Params {
				p.line("Param: " + param.Name.Lexeme)
			}
			p.printStmt(s.Body)
		})

	case *ast.StructStatement:
		p.line("Struct: " + s.Name.Value)
		p.nested(func() {
			for _, f := range s.Fields {
				p.line("Field: " + f.Name.Lexeme)
			}
		})

	case *ast.EnumStatement:
		p.line("Enum: " + s.Name.Value)
		p.nested(func() {
			for _, v := range s.Variants {
				if len(v.Params) > 0 {
					p.line(fmt.Sprintf("Variant: %s(%d)", v.Name.Lexeme, len(v.Params)))
				} else {
					p.line("Variant: " + v.Name.Lexeme)
				}
			}
		})

	case *ast.ImplStatement:
		header := "Impl: " + s.TypeName.Value
		if s.Trait != nil {
			header = "Impl: " + s.Trait.Value + " for " + s.TypeName.Value
		}
		p.line(header)
		p.nested(func() {
			for _, m := range s.Methods {
				p.printStmt(m)
			}
		})

	case *ast.TraitStatement:
		p.line("Trait: " + s.Name.Value)
		p.nested(func() {
			for _, m := range s.Methods {
				p.line("Method: " + m.Name.Lexeme)
			}
		})

	case *ast.ImportStatement:
		p.line("Import: " + s.Path + " as " + s.ShortName())

	case *ast.MatchStatement:
		p.line("Match")
		p.nested(func() {
			p.printExpr(s.Subject)
			for _, arm := range s.Arms {
				p.line("Arm: " + arm.Pattern.TokenLiteral())
				p.nested(func() { p.printStmt(arm.Body) })
			}
		})

	case *ast.TryStatement:
		p.line("Try")
		p.nested(func() {
			p.printStmt(s.Body)
			for _, clause := range s.Catches {
				name := ""
				if clause.Name != nil {
					name = clause.Name.Value
				}
				p.line("Catch: " + name)
				p.nested(func() { p.printStmt(clause.Body) })
			}
			if s.Finally != nil {
				p.line("Finally")
				p.nested(func() { p.printStmt(s.Finally) })
			}
		})

	case *ast.ThrowStatement:
		p.line("Throw")
		p.nested(func() { p.printExpr(s.Value) })

	case *ast.BreakStatement:
		p.line("Break")
	case *ast.ContinueStatement:
		p.line("Continue")
	case *ast.DeferStatement:
		p.line("Defer")
		p.nested(func() { p.printExpr(s.Call) })
	case *ast.SpawnStatement:
		p.line("Spawn")
		p.nested(func() { p.printExpr(s.Call) })

	default:
		p.line(fmt.Sprintf("%T", stmt))
	}
}

func (p *TreePrinter) printExpr(expr ast.Expression) {
	if expr == nil {
		return
	}

	label := ""
	switch e := expr.(type) {
	case *ast.Identifier:
		label = "Ident: " + e.Value
	case *ast.IntegerLiteral:
		label = fmt.Sprintf("Int: %d", e.Value)
	case *ast.FloatLiteral:
		label = fmt.Sprintf("Float: %g", e.Value)
	case *ast.StringLiteral:
		label = fmt.Sprintf("String: %q", e.Value)
	case *ast.CharLiteral:
		label = fmt.Sprintf("Char: %q", e.Value)
	case *ast.BooleanLiteral:
		label = fmt.Sprintf("Bool: %t", e.Value)
	case *ast.BinaryExpression:
		label = "Binary: " + e.Operator
	case *ast.UnaryExpression:
		label = "Unary: " + e.Operator
	case *ast.CallExpression:
		label = "Call"
	case *ast.MethodCallExpression:
		label = "MethodCall: " + e.Method.Value
	case *ast.FieldAccessExpression:
		label = "Field: " + e.Field.Value
	case *ast.StructInitExpression:
		label = "StructInit: " + e.Name.Value
	case *ast.LambdaExpression:
		label = fmt.Sprintf("Lambda (captures: %s)", strings.Join(e.Captures, ", "))
	case *ast.MatchExpression:
		label = "MatchExpr"
	case *ast.IfExpression:
		label = "IfExpr"
	case *ast.TryExpression:
		label = "Try?"
	default:
		label = strings.TrimPrefix(fmt.Sprintf("%T", expr), "*ast.")
	}

	if t := expr.ResolvedType(); t != nil {
		label += " :: " + t.String()
	}
	p.line(label)

	// Children for composite nodes.
	switch e := expr.(type) {
	case *ast.BinaryExpression:
		p.nested(func() {
			p.printExpr(e.Left)
			p.printExpr(e.Right)
		})
	case *ast.UnaryExpression:
		p.nested(func() { p.printExpr(e.Right) })
	case *ast.CallExpression:
		p.nested(func() {
			p.printExpr(e.Callee)
			for _, arg := range e.Arguments {
				p.printExpr(arg)
			}
		})
	case *ast.MethodCallExpression:
		p.nested(func() {
			p.printExpr(e.Receiver)
			for _, arg := range e.Arguments {
				p.printExpr(arg)
			}
		})
	case *ast.FieldAccessExpression:
		p.nested(func() { p.printExpr(e.Left) })
	case *ast.StructInitExpression:
		p.nested(func() {
			for _, f := range e.Fields {
				p.printExpr(f.Value)
			}
		})
	case *ast.ArrayLiteral:
		p.nested(func() {
			for _, el := range e.Elements {
				p.printExpr(el)
			}
		})
	case *ast.IndexExpression:
		p.nested(func() {
			p.printExpr(e.Left)
			p.printExpr(e.Index)
		})
	case *ast.AssignExpression:
		p.nested(func() {
			p.printExpr(e.Value)
		})
	case *ast.LambdaExpression:
		p.nested(func() { p.printStmt(e.Body) })
	case *ast.IfExpression:
		p.nested(func() {
			p.printExpr(e.Condition)
			p.printExpr(e.Consequence)
			p.printExpr(e.Alternative)
		})
	case *ast.MatchExpression:
		p.nested(func() {
			p.printExpr(e.Subject)
			for _, arm := range e.Arms {
				p.printExpr(arm.Body)
			}
		})
	case *ast.TryExpression:
		p.nested(func() { p.printExpr(e.Value) })
	case *ast.InterpolatedString:
		p.nested(func() {
			for _, part := range e.Parts {
				p.printExpr(part)
			}
		})
	}
}

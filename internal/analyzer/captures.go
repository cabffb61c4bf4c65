package analyzer

import (
	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/symbols"
	"github.com/wynlang/wyn/internal/typesystem"
)

// checkLambda creates a child scope, binds parameters (untyped
// parameters default to Int), checks the body, then runs capture
// analysis. The lambda's type is built from its parameters and the
// body's result type.
func (a *Analyzer) checkLambda(e *ast.LambdaExpression, scope *symbols.Scope) typesystem.Type {
	child := symbols.NewEnclosedScope(scope)

	fn := typesystem.TFunc{}
	paramNames := make(map[string]bool, len(e.Params))
	for _, p := range e.Params {
		var t typesystem.Type = typesystem.Int
		if p.Type != nil {
			t = a.buildType(p.Type, nil)
		}
		child.Define(p.Name.Lexeme, t, true)
		paramNames[p.Name.Lexeme] = true
		fn.Params = append(fn.Params, t)
	}

	prevLambda := a.inLambda
	a.inLambda = true

	// Returns inside the lambda belong to the lambda, whose return type
	// is inferred from the body; the enclosing function's declared
	// return must not see them.
	prevReturn := a.currentFunctionReturn
	a.currentFunctionReturn = typesystem.TGeneric{Name: "r"}

	var bodyType typesystem.Type = typesystem.Void
	switch body := e.Body.(type) {
	case *ast.BlockStatement:
		for _, stmt := range body.Statements {
			a.checkStmt(stmt, child)
		}
		bodyType = blockResultType(body)
	case *ast.ExpressionStatement:
		bodyType = a.checkExpr(body.Expression, child)
	default:
		a.checkStmt(e.Body, child)
	}

	a.currentFunctionReturn = prevReturn
	a.inLambda = prevLambda

	e.Captures = collectCaptures(e.Body, paramNames)

	fn.ReturnType = bodyType
	return fn
}

// blockResultType reads the lambda body's result: an explicit return
// wins, otherwise the final expression statement.
func blockResultType(body *ast.BlockStatement) typesystem.Type {
	var result typesystem.Type = typesystem.Void
	for _, stmt := range body.Statements {
		switch s := stmt.(type) {
		case *ast.ReturnStatement:
			if s.Value != nil {
				if t := s.Value.ResolvedType(); t != nil {
					return t
				}
			}
			return typesystem.Void
		case *ast.ExpressionStatement:
			if t := s.Expression.ResolvedType(); t != nil {
				result = t
			}
		}
	}
	return result
}

// collectCaptures walks a lambda body and gathers every identifier that
// is neither a parameter nor locally declared inside the body. Capture
// is by reference by default; downstream code gen may refine the class
// from mutation patterns, the analyzer only produces the list.
func collectCaptures(body ast.Statement, params map[string]bool) []string {
	locals := make(map[string]bool, len(params))
	for name := range params {
		locals[name] = true
	}

	var captures []string
	seen := make(map[string]bool)

	var walkStmt func(ast.Statement)
	var walkExpr func(ast.Expression)

	capture := func(name string) {
		if locals[name] || seen[name] || name == "self" {
			return
		}
		seen[name] = true
		captures = append(captures, name)
	}

	walkExpr = func(expr ast.Expression) {
		switch e := expr.(type) {
		case nil:
			return
		case *ast.Identifier:
			capture(e.Value)
		case *ast.UnaryExpression:
			walkExpr(e.Right)
		case *ast.BinaryExpression:
			walkExpr(e.Left)
			walkExpr(e.Right)
		case *ast.CallExpression:
			walkExpr(e.Callee)
			for _, arg := range e.Arguments {
				walkExpr(arg)
			}
		case *ast.MethodCallExpression:
			walkExpr(e.Receiver)
			for _, arg := range e.Arguments {
				walkExpr(arg)
			}
		case *ast.FieldAccessExpression:
			walkExpr(e.Left)
		case *ast.TupleIndexExpression:
			walkExpr(e.Left)
		case *ast.ArrayLiteral:
			for _, el := range e.Elements {
				walkExpr(el)
			}
		case *ast.SetLiteral:
			for _, el := range e.Elements {
				walkExpr(el)
			}
		case *ast.TupleLiteral:
			for _, el := range e.Elements {
				walkExpr(el)
			}
		case *ast.MapLiteral:
			for _, pair := range e.Pairs {
				walkExpr(pair.Key)
				walkExpr(pair.Value)
			}
		case *ast.IndexExpression:
			walkExpr(e.Left)
			walkExpr(e.Index)
		case *ast.IndexAssignExpression:
			walkExpr(e.Left)
			walkExpr(e.Index)
			walkExpr(e.Value)
		case *ast.AssignExpression:
			capture(e.Name.Value)
			walkExpr(e.Value)
		case *ast.FieldAssignExpression:
			walkExpr(e.Object)
			walkExpr(e.Value)
		case *ast.StructInitExpression:
			for _, f := range e.Fields {
				walkExpr(f.Value)
			}
		case *ast.RangeExpression:
			walkExpr(e.Start)
			walkExpr(e.End)
		case *ast.LambdaExpression:
			// Nested lambda: its own parameters shadow, the rest
			// propagates outward.
			nestedParams := make(map[string]bool)
			for _, p := range e.Params {
				nestedParams[p.Name.Lexeme] = true
			}
			for _, name := range collectCaptures(e.Body, nestedParams) {
				capture(name)
			}
		case *ast.BlockExpression:
			walkStmt(e.Block)
		case *ast.IfExpression:
			walkExpr(e.Condition)
			walkExpr(e.Consequence)
			walkExpr(e.Alternative)
		case *ast.MatchExpression:
			walkExpr(e.Subject)
			for _, arm := range e.Arms {
				walkExpr(arm.Guard)
				walkExpr(arm.Body)
			}
		case *ast.InterpolatedString:
			for _, part := range e.Parts {
				walkExpr(part)
			}
		case *ast.AwaitExpression:
			walkExpr(e.Value)
		case *ast.SpawnExpression:
			walkExpr(e.Call)
		case *ast.PipelineExpression:
			walkExpr(e.Left)
			walkExpr(e.Right)
		case *ast.TryExpression:
			walkExpr(e.Value)
		case *ast.SomeExpression:
			walkExpr(e.Value)
		case *ast.OkExpression:
			walkExpr(e.Value)
		case *ast.ErrExpression:
			walkExpr(e.Value)
		case *ast.ListComprehension:
			walkExpr(e.Iterable)
			prev := locals[e.Variable.Value]
			locals[e.Variable.Value] = true
			walkExpr(e.Condition)
			walkExpr(e.Element)
			locals[e.Variable.Value] = prev
		}
	}

	walkStmt = func(stmt ast.Statement) {
		switch s := stmt.(type) {
		case nil:
			return
		case *ast.VarStatement:
			walkExpr(s.Value)
			if s.Name != nil {
				locals[s.Name.Value] = true
			}
		case *ast.ConstStatement:
			walkExpr(s.Value)
			locals[s.Name.Value] = true
		case *ast.ExpressionStatement:
			walkExpr(s.Expression)
		case *ast.ReturnStatement:
			walkExpr(s.Value)
		case *ast.BlockStatement:
			for _, inner := range s.Statements {
				walkStmt(inner)
			}
		case *ast.IfStatement:
			walkExpr(s.Condition)
			walkStmt(s.Consequence)
			walkStmt(s.Alternative)
		case *ast.WhileStatement:
			walkExpr(s.Condition)
			walkStmt(s.Body)
		case *ast.ForStatement:
			walkStmt(s.Init)
			walkExpr(s.Condition)
			walkExpr(s.Post)
			walkExpr(s.Iterable)
			if s.Variable != nil {
				locals[s.Variable.Value] = true
			}
			walkStmt(s.Body)
		case *ast.MatchStatement:
			walkExpr(s.Subject)
			for _, arm := range s.Arms {
				walkExpr(arm.Guard)
				walkStmt(arm.Body)
			}
		case *ast.TryStatement:
			walkStmt(s.Body)
			for _, clause := range s.Catches {
				if clause.Name != nil {
					locals[clause.Name.Value] = true
				}
				walkStmt(clause.Body)
			}
			walkStmt(s.Finally)
		case *ast.ThrowStatement:
			walkExpr(s.Value)
		case *ast.DeferStatement:
			walkExpr(s.Call)
		case *ast.UnsafeStatement:
			walkStmt(s.Body)
		case *ast.SpawnStatement:
			walkExpr(s.Call)
		}
	}

	walkStmt(body)
	return captures
}

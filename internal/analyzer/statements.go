package analyzer

import (
	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/symbols"
	"github.com/wynlang/wyn/internal/typesystem"
)

// checkBodies is pass 2: check every function body in a fresh scope
// parented to the global scope, then every remaining top-level
// statement directly in the global scope.
func (a *Analyzer) checkBodies(program *ast.Program) {
	for _, stmt := range program.Statements {
		switch s := unwrapExport(stmt).(type) {
		case *ast.FunctionStatement:
			a.checkFunctionBody(s, nil)
		case *ast.ImplStatement:
			receiver, _ := a.types.Lookup(s.TypeName.Value)
			for _, m := range s.Methods {
				a.checkFunctionBody(m, receiver)
			}
		case *ast.ObjectStatement:
			receiver, _ := a.types.Lookup(s.Name.Value)
			for _, m := range s.Methods {
				a.checkFunctionBody(m, receiver)
			}
		case *ast.StructStatement, *ast.EnumStatement, *ast.TraitStatement,
			*ast.ExternStatement, *ast.MacroStatement, *ast.TypeAliasStatement,
			*ast.ImportStatement, *ast.ConstStatement:
			// handled by passes 0 and 1
		default:
			a.checkStmt(stmt, a.global)
		}
	}
}

func (a *Analyzer) checkFunctionBody(s *ast.FunctionStatement, receiver typesystem.Type) {
	if a.checkedFns[s] {
		return
	}
	a.checkedFns[s] = true
	if s.Body == nil {
		return
	}

	params := typeParamSet(s.TypeParams)
	scope := symbols.NewEnclosedScope(a.global)

	for _, p := range s.Params {
		if p.Name.Lexeme == "self" {
			if receiver != nil {
				scope.Define("self", receiver, false)
			}
			continue
		}
		var t typesystem.Type = typesystem.Int
		if p.Type != nil {
			t = a.buildType(p.Type, params)
		}
		scope.Define(p.Name.Lexeme, t, true)
	}

	prevReturn := a.currentFunctionReturn
	if s.ReturnType != nil {
		a.currentFunctionReturn = a.buildType(s.ReturnType, params)
	} else {
		a.currentFunctionReturn = typesystem.Void
	}

	for _, stmt := range s.Body.Statements {
		a.checkStmt(stmt, scope)
	}

	a.currentFunctionReturn = prevReturn
}

func (a *Analyzer) checkStmt(stmt ast.Statement, scope *symbols.Scope) {
	switch s := stmt.(type) {
	case *ast.VarStatement:
		a.checkVarStatement(s, scope)

	case *ast.ConstStatement:
		t := a.checkExpr(s.Value, scope)
		if s.Type != nil {
			declared := a.buildType(s.Type, nil)
			a.requireCompatible(declared, t, s.GetToken(), "constant declaration of "+s.Name.Value)
			t = declared
		}
		scope.Define(s.Name.Value, t, false)

	case *ast.ExpressionStatement:
		a.checkExpr(s.Expression, scope)

	case *ast.ReturnStatement:
		a.checkReturn(s, scope)

	case *ast.BlockStatement:
		child := symbols.NewEnclosedScope(scope)
		for _, inner := range s.Statements {
			a.checkStmt(inner, child)
		}

	case *ast.IfStatement:
		a.checkCondition(s.Condition, scope)
		a.checkStmt(s.Consequence, scope)
		if s.Alternative != nil {
			a.checkStmt(s.Alternative, scope)
		}

	case *ast.WhileStatement:
		a.checkCondition(s.Condition, scope)
		prevLoop := a.inLoop
		a.inLoop = true
		child := symbols.NewEnclosedScope(scope)
		for _, inner := range s.Body.Statements {
			a.checkStmt(inner, child)
		}
		a.inLoop = prevLoop

	case *ast.ForStatement:
		a.checkForStatement(s, scope)

	case *ast.MatchStatement:
		a.checkMatchStatement(s, scope)

	case *ast.TryStatement:
		a.checkTryStatement(s, scope)

	case *ast.ThrowStatement:
		a.checkExpr(s.Value, scope)

	case *ast.BreakStatement:
		if !a.inLoop {
			a.errorf(diagnostics.ErrA011, s.GetToken(), "break outside of a loop")
		}

	case *ast.ContinueStatement:
		if !a.inLoop {
			a.errorf(diagnostics.ErrA011, s.GetToken(), "continue outside of a loop")
		}

	case *ast.DeferStatement:
		a.checkExpr(s.Call, scope)

	case *ast.UnsafeStatement:
		a.checkStmt(s.Body, scope)

	case *ast.TestStatement:
		child := symbols.NewEnclosedScope(scope)
		for _, inner := range s.Body.Statements {
			a.checkStmt(inner, child)
		}

	case *ast.SpawnStatement:
		a.checkExpr(s.Call, scope)

	case *ast.FunctionStatement:
		if scope != a.global {
			a.errorf(diagnostics.ErrA011, s.GetToken(), "nested function declaration "+s.Name.Value)
			return
		}
		a.checkFunctionBody(s, nil)

	case *ast.ImportStatement, *ast.ExportStatement, *ast.StructStatement,
		*ast.EnumStatement, *ast.ImplStatement, *ast.TraitStatement,
		*ast.ExternStatement, *ast.MacroStatement, *ast.TypeAliasStatement:
		// top-level constructs, handled by earlier passes
	}
}

func (a *Analyzer) checkVarStatement(s *ast.VarStatement, scope *symbols.Scope) {
	inferred := a.checkExpr(s.Value, scope)

	// Destructuring lowers into one binding per element.
	if s.Pattern != nil {
		a.bindPattern(s.Pattern, inferred, scope)
		return
	}

	if s.Type != nil {
		declared := a.buildType(s.Type, nil)
		if !typesystem.Compatible(declared, inferred) {
			if isOptionalMismatch(declared, inferred) {
				a.errorf(diagnostics.ErrA010, s.GetToken(), inferred.String(), declared.String())
			} else {
				a.typeMismatch(s.GetToken(), declared, inferred, "variable declaration of "+s.Name.Value)
			}
		}
		scope.Define(s.Name.Value, declared, true)
		return
	}

	// Empty array literals land on [Int]; later uses do not narrow it.
	scope.Define(s.Name.Value, inferred, true)
}

// isOptionalMismatch detects the assignment of an optional into a
// non-optional slot of the matching inner type, which has its own
// diagnostic.
func isOptionalMismatch(declared, inferred typesystem.Type) bool {
	opt, ok := inferred.(typesystem.TOptional)
	if !ok {
		return false
	}
	if _, declaredOpt := declared.(typesystem.TOptional); declaredOpt {
		return false
	}
	return typesystem.Compatible(declared, opt.Inner)
}

func (a *Analyzer) checkReturn(s *ast.ReturnStatement, scope *symbols.Scope) {
	expected := a.currentFunctionReturn
	if expected == nil {
		expected = typesystem.Void
	}

	if s.Value == nil {
		if !typesystem.Void.Equals(expected) {
			a.typeMismatch(s.GetToken(), expected, typesystem.Void, "return")
		}
		return
	}

	actual := a.checkExpr(s.Value, scope)
	if !typesystem.Compatible(expected, actual) {
		if isOptionalMismatch(expected, actual) {
			a.errorf(diagnostics.ErrA010, s.GetToken(), actual.String(), expected.String())
		} else {
			a.typeMismatch(s.GetToken(), expected, actual, "return")
		}
	}
}

func (a *Analyzer) checkCondition(cond ast.Expression, scope *symbols.Scope) {
	t := a.checkExpr(cond, scope)
	if !typesystem.IsBoolLike(t) {
		a.typeMismatch(getNodeToken(cond), typesystem.Bool, t, "condition")
	}
}

func (a *Analyzer) checkForStatement(s *ast.ForStatement, scope *symbols.Scope) {
	child := symbols.NewEnclosedScope(scope)

	if s.IsRange() {
		iterable := a.checkExpr(s.Iterable, child)
		var elem typesystem.Type = sentinel()
		switch it := iterable.(type) {
		case typesystem.TArray:
			elem = it.Elem
		case typesystem.TSet:
			elem = it.Elem
		case typesystem.TMap:
			elem = it.Key
		case typesystem.TPrim:
			if it.Name == "String" {
				elem = typesystem.String
			} else {
				a.typeMismatch(s.GetToken(), typesystem.TArray{Elem: typesystem.Int}, iterable, "for-in iterable")
			}
		default:
			a.typeMismatch(s.GetToken(), typesystem.TArray{Elem: typesystem.Int}, iterable, "for-in iterable")
		}
		child.Define(s.Variable.Value, elem, true)
	} else {
		if s.Init != nil {
			a.checkStmt(s.Init, child)
		}
		if s.Condition != nil {
			a.checkCondition(s.Condition, child)
		}
		if s.Post != nil {
			a.checkExpr(s.Post, child)
		}
	}

	prevLoop := a.inLoop
	a.inLoop = true
	for _, inner := range s.Body.Statements {
		a.checkStmt(inner, child)
	}
	a.inLoop = prevLoop
}

// checkTryStatement checks the body in a child scope; each catch clause
// binds its exception variable as String (the error representation) in
// its own child scope; the finally block checks in the parent scope.
func (a *Analyzer) checkTryStatement(s *ast.TryStatement, scope *symbols.Scope) {
	body := symbols.NewEnclosedScope(scope)
	for _, inner := range s.Body.Statements {
		a.checkStmt(inner, body)
	}

	for _, clause := range s.Catches {
		catchScope := symbols.NewEnclosedScope(scope)
		if clause.Type != nil {
			a.buildType(clause.Type, nil)
		}
		if clause.Name != nil {
			catchScope.Define(clause.Name.Value, typesystem.String, false)
		}
		for _, inner := range clause.Body.Statements {
			a.checkStmt(inner, catchScope)
		}
	}

	if s.Finally != nil {
		for _, inner := range s.Finally.Statements {
			a.checkStmt(inner, scope)
		}
	}
}

func (a *Analyzer) checkMatchStatement(s *ast.MatchStatement, scope *symbols.Scope) {
	subject := a.checkExpr(s.Subject, scope)

	for _, arm := range s.Arms {
		armScope := symbols.NewEnclosedScope(scope)
		a.bindPattern(arm.Pattern, subject, armScope)
		if arm.Guard != nil {
			a.checkCondition(arm.Guard, armScope)
		}
		a.checkStmt(arm.Body, armScope)
	}

	patterns := make([]ast.Pattern, len(s.Arms))
	for i, arm := range s.Arms {
		patterns[i] = arm.Pattern
	}
	a.checkExhaustiveness(s.GetToken(), subject, patterns)
}

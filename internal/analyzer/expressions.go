package analyzer

import (
	"strings"

	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/symbols"
	"github.com/wynlang/wyn/internal/typesystem"
)

// checkExpr infers the type of an expression, stores it in the node's
// resolved-type slot, and returns it. On error a diagnostic is recorded
// and the sentinel type comes back so checking continues.
func (a *Analyzer) checkExpr(expr ast.Expression, scope *symbols.Scope) typesystem.Type {
	if expr == nil {
		return sentinel()
	}
	t := a.inferExpr(expr, scope)
	if t == nil {
		t = sentinel()
	}
	expr.SetResolvedType(t)
	return t
}

func (a *Analyzer) inferExpr(expr ast.Expression, scope *symbols.Scope) typesystem.Type {
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return typesystem.Int
	case *ast.FloatLiteral:
		return typesystem.Float
	case *ast.StringLiteral:
		return typesystem.String
	case *ast.CharLiteral:
		return typesystem.Char
	case *ast.BooleanLiteral:
		return typesystem.Bool

	case *ast.InterpolatedString:
		for _, part := range e.Parts {
			a.checkExpr(part, scope)
		}
		return typesystem.String

	case *ast.Identifier:
		return a.checkIdentifier(e, scope)

	case *ast.UnaryExpression:
		return a.checkUnary(e, scope)

	case *ast.BinaryExpression:
		return a.checkBinary(e, scope)

	case *ast.CallExpression:
		return a.checkCall(e, scope)

	case *ast.MethodCallExpression:
		return a.checkMethodCall(e, scope)

	case *ast.FieldAccessExpression:
		return a.checkFieldAccess(e, scope)

	case *ast.TupleIndexExpression:
		a.checkExpr(e.Left, scope)
		return sentinel()

	case *ast.ArrayLiteral:
		return a.checkArrayLiteral(e, scope)

	case *ast.MapLiteral:
		return a.checkMapLiteral(e, scope)

	case *ast.SetLiteral:
		return a.checkSetLiteral(e, scope)

	case *ast.TupleLiteral:
		for _, el := range e.Elements {
			a.checkExpr(el, scope)
		}
		return sentinel()

	case *ast.IndexExpression:
		return a.checkIndex(e, scope)

	case *ast.IndexAssignExpression:
		return a.checkIndexAssign(e, scope)

	case *ast.AssignExpression:
		return a.checkAssign(e, scope)

	case *ast.FieldAssignExpression:
		return a.checkFieldAssign(e, scope)

	case *ast.StructInitExpression:
		return a.checkStructInit(e, scope)

	case *ast.RangeExpression:
		a.requireCompatible(typesystem.Int, a.checkExpr(e.Start, scope), e.GetToken(), "range start")
		a.requireCompatible(typesystem.Int, a.checkExpr(e.End, scope), e.GetToken(), "range end")
		return typesystem.TArray{Elem: typesystem.Int}

	case *ast.LambdaExpression:
		return a.checkLambda(e, scope)

	case *ast.BlockExpression:
		return a.checkBlockValue(e, scope)

	case *ast.IfExpression:
		return a.checkIfExpression(e, scope)

	case *ast.MatchExpression:
		return a.checkMatchExpression(e, scope)

	case *ast.AwaitExpression:
		return a.checkExpr(e.Value, scope)

	case *ast.SpawnExpression:
		a.checkExpr(e.Call, scope)
		return typesystem.Void

	case *ast.PipelineExpression:
		return a.checkPipeline(e, scope)

	case *ast.TryExpression:
		return a.checkTry(e, scope)

	case *ast.SomeExpression:
		inner := a.checkExpr(e.Value, scope)
		return typesystem.TOptional{Inner: inner}

	case *ast.NoneExpression:
		return typesystem.TOptional{Inner: typesystem.TGeneric{Name: "t"}}

	case *ast.OkExpression:
		ok := a.checkExpr(e.Value, scope)
		if expected, isResult := a.currentFunctionReturn.(typesystem.TResult); isResult {
			return typesystem.TResult{Ok: ok, Err: expected.Err}
		}
		return typesystem.TResult{Ok: ok, Err: typesystem.TGeneric{Name: "e"}}

	case *ast.ErrExpression:
		errT := a.checkExpr(e.Value, scope)
		if expected, isResult := a.currentFunctionReturn.(typesystem.TResult); isResult {
			return typesystem.TResult{Ok: expected.Ok, Err: errT}
		}
		return typesystem.TResult{Ok: typesystem.TGeneric{Name: "t"}, Err: errT}

	case *ast.ListComprehension:
		return a.checkComprehension(e, scope)

	case *ast.TypeLiteralExpression:
		return a.buildType(e.Type, nil)

	default:
		a.errorf(diagnostics.ErrA011, getNodeToken(expr), "unsupported expression")
		return sentinel()
	}
}

// checkIdentifier resolves a name through the scope chain. Unresolved
// names with module-qualifier markers are accepted with deferred
// resolution; everything else reports an undefined identifier with
// fuzzy suggestions.
func (a *Analyzer) checkIdentifier(e *ast.Identifier, scope *symbols.Scope) typesystem.Type {
	if sym, ok := scope.Lookup(e.Value); ok {
		return sym.Type
	}

	if idx := strings.Index(e.Value, "::"); idx >= 0 {
		short := e.Value[:idx]
		member := e.Value[idx+2:]
		return a.checkQualifiedReference(e, short, member, scope)
	}

	// A registered import alias used bare resolves as a deferred
	// module reference.
	if _, ok := a.imports.Lookup(e.Value); ok {
		return sentinel()
	}

	a.reportUndefined(e, scope)
	return sentinel()
}

// checkQualifiedReference handles mod::name references: import
// ambiguity first, then visibility, then the symbol itself under its
// qualified or bare name.
func (a *Analyzer) checkQualifiedReference(e *ast.Identifier, short, member string, scope *symbols.Scope) typesystem.Type {
	if first, second, ambiguous := a.imports.Ambiguous(short); ambiguous {
		a.errorf(diagnostics.ErrA007, e.Token, short,
			first.Path, first.Line, second.Path, second.Line)
		return sentinel()
	}

	if entry, ok := a.imports.Lookup(short); ok {
		moduleName := moduleNameOf(entry.Path)
		if public, known := a.visibility.IsPublic(moduleName, member); known && !public {
			a.errorf(diagnostics.ErrA008, e.Token, member, short)
			return sentinel()
		}
		if sym, ok := a.global.Lookup(member); ok {
			return sym.Type
		}
	}

	// Builtin module namespaces (File::read) are seeded under their
	// qualified names.
	if sym, ok := a.global.Lookup(short+"::"+member); ok {
		return sym.Type
	}

	// Module-qualified with deferred resolution.
	return sentinel()
}

func moduleNameOf(path string) string {
	if idx := strings.LastIndex(path, "/"); idx >= 0 {
		return path[idx+1:]
	}
	return path
}

func (a *Analyzer) checkUnary(e *ast.UnaryExpression, scope *symbols.Scope) typesystem.Type {
	operand := a.checkExpr(e.Right, scope)

	switch e.Operator {
	case "!", "not":
		if !typesystem.IsBoolLike(operand) {
			a.typeMismatch(e.GetToken(), typesystem.Bool, operand, "operand of !")
		}
		return typesystem.Bool
	case "-":
		if !typesystem.IsNumeric(operand) {
			a.typeMismatch(e.GetToken(), typesystem.Int, operand, "operand of unary -")
			return sentinel()
		}
		return operand
	case "~":
		if !typesystem.Int.Equals(operand) {
			a.typeMismatch(e.GetToken(), typesystem.Int, operand, "operand of ~")
		}
		return typesystem.Int
	default:
		a.errorf(diagnostics.ErrA011, e.GetToken(), "unknown unary operator "+e.Operator)
		return sentinel()
	}
}

func (a *Analyzer) checkBinary(e *ast.BinaryExpression, scope *symbols.Scope) typesystem.Type {
	left := a.checkExpr(e.Left, scope)
	right := a.checkExpr(e.Right, scope)

	switch e.Operator {
	case "&&", "||", "and", "or":
		if !typesystem.IsBoolLike(left) {
			a.typeMismatch(e.GetToken(), typesystem.Bool, left, "left operand of "+e.Operator)
		}
		if !typesystem.IsBoolLike(right) {
			a.typeMismatch(e.GetToken(), typesystem.Bool, right, "right operand of "+e.Operator)
		}
		return typesystem.Bool

	case "==", "!=", "<", ">", "<=", ">=":
		if !comparable(left, right) {
			a.typeMismatch(e.GetToken(), left, right, "comparison "+e.Operator)
		}
		return typesystem.Bool

	case "??":
		opt, isOpt := left.(typesystem.TOptional)
		if !isOpt {
			a.typeMismatch(e.GetToken(), typesystem.TOptional{Inner: right}, left, "left operand of ??")
			return right
		}
		if !typesystem.Compatible(opt.Inner, right) {
			a.typeMismatch(e.GetToken(), opt.Inner, right, "right operand of ??")
		}
		return opt.Inner

	case "+":
		// String concatenation wins when either side is a string; the
		// other side may be a string or an int.
		if typesystem.String.Equals(left) || typesystem.String.Equals(right) {
			if stringConcatOperand(left) && stringConcatOperand(right) {
				return typesystem.String
			}
			a.typeMismatch(e.GetToken(), typesystem.String, pickNonString(left, right), "operand of +")
			return typesystem.String
		}
		return a.checkArithmetic(e, left, right)

	case "-", "*", "/", "%":
		return a.checkArithmetic(e, left, right)

	case "&", "|", "^", "<<", ">>":
		if !typesystem.Int.Equals(left) {
			a.typeMismatch(e.GetToken(), typesystem.Int, left, "left operand of "+e.Operator)
		}
		if !typesystem.Int.Equals(right) {
			a.typeMismatch(e.GetToken(), typesystem.Int, right, "right operand of "+e.Operator)
		}
		return typesystem.Int

	default:
		a.errorf(diagnostics.ErrA011, e.GetToken(), "unknown binary operator "+e.Operator)
		return sentinel()
	}
}

// comparable holds for same-kind operands, {Int, Bool} pairs, and
// {Enum, Int} pairs (enums are representable as integers). A generic
// placeholder on either side compares with anything.
func comparable(left, right typesystem.Type) bool {
	if left.Equals(right) {
		return true
	}
	if typesystem.IsBoolLike(left) && typesystem.IsBoolLike(right) {
		return true
	}
	_, leftEnum := left.(typesystem.TEnum)
	_, rightEnum := right.(typesystem.TEnum)
	if leftEnum && typesystem.Int.Equals(right) {
		return true
	}
	if rightEnum && typesystem.Int.Equals(left) {
		return true
	}
	if leftEnum && rightEnum {
		return left.Equals(right)
	}
	if _, ok := left.(typesystem.TGeneric); ok {
		return true
	}
	if _, ok := right.(typesystem.TGeneric); ok {
		return true
	}
	return false
}

func stringConcatOperand(t typesystem.Type) bool {
	return typesystem.String.Equals(t) || typesystem.Int.Equals(t)
}

func pickNonString(left, right typesystem.Type) typesystem.Type {
	if typesystem.String.Equals(left) {
		return right
	}
	return left
}

// checkArithmetic enforces same-kind operands. No coercion is inserted:
// Int + Float is a mismatch unless an overloaded operator exists.
func (a *Analyzer) checkArithmetic(e *ast.BinaryExpression, left, right typesystem.Type) typesystem.Type {
	if _, ok := left.(typesystem.TGeneric); ok {
		return right
	}
	if _, ok := right.(typesystem.TGeneric); ok {
		return left
	}
	if !left.Equals(right) {
		a.typeMismatch(e.GetToken(), left, right, "operand of "+e.Operator)
		return sentinel()
	}
	if !typesystem.IsNumeric(left) {
		a.typeMismatch(e.GetToken(), typesystem.Int, left, "operand of "+e.Operator)
		return sentinel()
	}
	return left
}

func (a *Analyzer) checkArrayLiteral(e *ast.ArrayLiteral, scope *symbols.Scope) typesystem.Type {
	// Empty literals get the default placeholder element type.
	if len(e.Elements) == 0 {
		return typesystem.TArray{Elem: typesystem.Int}
	}

	elem := a.checkExpr(e.Elements[0], scope)
	for _, el := range e.Elements[1:] {
		t := a.checkExpr(el, scope)
		if !typesystem.Compatible(elem, t) {
			a.typeMismatch(getNodeToken(el), elem, t, "array element")
		}
	}
	return typesystem.TArray{Elem: elem}
}

func (a *Analyzer) checkMapLiteral(e *ast.MapLiteral, scope *symbols.Scope) typesystem.Type {
	if len(e.Pairs) == 0 {
		return typesystem.TMap{Key: typesystem.String, Value: typesystem.Int}
	}

	key := a.checkExpr(e.Pairs[0].Key, scope)
	value := a.checkExpr(e.Pairs[0].Value, scope)
	for _, pair := range e.Pairs[1:] {
		k := a.checkExpr(pair.Key, scope)
		v := a.checkExpr(pair.Value, scope)
		if !typesystem.Compatible(key, k) {
			a.typeMismatch(getNodeToken(pair.Key), key, k, "map key")
		}
		if !typesystem.Compatible(value, v) {
			a.typeMismatch(getNodeToken(pair.Value), value, v, "map value")
		}
	}
	return typesystem.TMap{Key: key, Value: value}
}

func (a *Analyzer) checkSetLiteral(e *ast.SetLiteral, scope *symbols.Scope) typesystem.Type {
	if len(e.Elements) == 0 {
		return typesystem.TSet{Elem: typesystem.Int}
	}
	elem := a.checkExpr(e.Elements[0], scope)
	for _, el := range e.Elements[1:] {
		t := a.checkExpr(el, scope)
		if !typesystem.Compatible(elem, t) {
			a.typeMismatch(getNodeToken(el), elem, t, "set element")
		}
	}
	return typesystem.TSet{Elem: elem}
}

// checkIndex allows indexing on String (Int index, one-char String
// result), Map (key-typed index), and Array (Int index).
func (a *Analyzer) checkIndex(e *ast.IndexExpression, scope *symbols.Scope) typesystem.Type {
	target := a.checkExpr(e.Left, scope)
	index := a.checkExpr(e.Index, scope)

	switch t := target.(type) {
	case typesystem.TPrim:
		if t.Name == "String" {
			a.requireCompatible(typesystem.Int, index, e.GetToken(), "string index")
			return typesystem.String
		}
	case typesystem.TArray:
		a.requireCompatible(typesystem.Int, index, e.GetToken(), "array index")
		return t.Elem
	case typesystem.TMap:
		a.requireCompatible(t.Key, index, e.GetToken(), "map key")
		return t.Value
	case typesystem.TGeneric:
		return sentinel()
	}

	a.errorf(diagnostics.ErrA003, e.GetToken(), "type "+target.String()+" is not indexable")
	return sentinel()
}

func (a *Analyzer) checkIndexAssign(e *ast.IndexAssignExpression, scope *symbols.Scope) typesystem.Type {
	target := a.checkExpr(e.Left, scope)
	index := a.checkExpr(e.Index, scope)
	value := a.checkExpr(e.Value, scope)

	switch t := target.(type) {
	case typesystem.TArray:
		a.requireCompatible(typesystem.Int, index, e.GetToken(), "array index")
		a.requireCompatible(t.Elem, value, e.GetToken(), "array element assignment")
		return t.Elem
	case typesystem.TMap:
		a.requireCompatible(t.Key, index, e.GetToken(), "map key")
		a.requireCompatible(t.Value, value, e.GetToken(), "map value assignment")
		return t.Value
	}

	a.errorf(diagnostics.ErrA003, e.GetToken(), "type "+target.String()+" does not support index assignment")
	return sentinel()
}

func (a *Analyzer) checkAssign(e *ast.AssignExpression, scope *symbols.Scope) typesystem.Type {
	value := a.checkExpr(e.Value, scope)

	sym, ok := scope.Lookup(e.Name.Value)
	if !ok {
		a.reportUndefined(e.Name, scope)
		return sentinel()
	}
	if !sym.IsMutable {
		a.errorf(diagnostics.ErrA011, e.GetToken(), "cannot assign to constant "+e.Name.Value)
	}
	if !typesystem.Compatible(sym.Type, value) {
		if isOptionalMismatch(sym.Type, value) {
			a.errorf(diagnostics.ErrA010, e.GetToken(), value.String(), sym.Type.String())
		} else {
			a.typeMismatch(e.GetToken(), sym.Type, value, "assignment to "+e.Name.Value)
		}
	}
	return sym.Type
}

func (a *Analyzer) checkFieldAssign(e *ast.FieldAssignExpression, scope *symbols.Scope) typesystem.Type {
	object := a.checkExpr(e.Object, scope)
	value := a.checkExpr(e.Value, scope)

	st, ok := object.(typesystem.TStruct)
	if !ok {
		a.errorf(diagnostics.ErrA003, e.GetToken(), "field assignment on non-struct type "+object.String())
		return sentinel()
	}

	// The registry carries the authoritative field list.
	if resolved, found := a.types.LookupStruct(st.Name); found {
		st = resolved
	}

	fieldType, found := st.FieldType(e.Field.Value)
	if !found {
		a.errorf(diagnostics.ErrA001, e.Field.Token, st.Name+"."+e.Field.Value)
		return sentinel()
	}
	a.requireCompatible(fieldType, value, e.GetToken(), "assignment to field "+e.Field.Value)
	return fieldType
}

// checkFieldAccess resolves, in order: enum variant access
// (Enum.Variant), struct field lookup, then module-qualified constant
// lookup (mod.name).
func (a *Analyzer) checkFieldAccess(e *ast.FieldAccessExpression, scope *symbols.Scope) typesystem.Type {
	// Enum variant access via the type name: Color.Red
	if ident, ok := e.Left.(*ast.Identifier); ok {
		if enum, found := a.types.LookupEnum(ident.Value); found {
			if _, isVariant := enum.Variant(e.Field.Value); isVariant {
				e.Left.SetResolvedType(enum)
				return enum
			}
			a.errorf(diagnostics.ErrA001, e.Field.Token, ident.Value+"."+e.Field.Value)
			return sentinel()
		}

		// Module-qualified constant: mod.name. A struct value of the same
		// name in scope takes the struct field path instead.
		_, isImport := a.imports.Lookup(ident.Value)
		if sym, local := scope.Lookup(ident.Value); local {
			if _, isStruct := sym.Type.(typesystem.TStruct); isStruct {
				isImport = false
			}
		}
		if isImport {
			if _, _, ambiguous := a.imports.Ambiguous(ident.Value); ambiguous {
				first, second, _ := a.imports.Ambiguous(ident.Value)
				a.errorf(diagnostics.ErrA007, e.GetToken(), ident.Value,
					first.Path, first.Line, second.Path, second.Line)
				return sentinel()
			}
			if sym, found := a.global.Lookup(e.Field.Value); found {
				return sym.Type
			}
			return sentinel()
		}
	}

	object := a.checkExpr(e.Left, scope)

	st, ok := object.(typesystem.TStruct)
	if !ok {
		a.errorf(diagnostics.ErrA003, e.GetToken(),
			"cannot access field "+e.Field.Value+" on type "+object.String())
		return sentinel()
	}
	if resolved, found := a.types.LookupStruct(st.Name); found {
		st = resolved
	}
	if fieldType, found := st.FieldType(e.Field.Value); found {
		return fieldType
	}
	a.errorf(diagnostics.ErrA001, e.Field.Token, st.Name+"."+e.Field.Value)
	return sentinel()
}

func (a *Analyzer) checkBlockValue(e *ast.BlockExpression, scope *symbols.Scope) typesystem.Type {
	child := symbols.NewEnclosedScope(scope)
	var last typesystem.Type = typesystem.Void
	for _, stmt := range e.Block.Statements {
		a.checkStmt(stmt, child)
		if es, ok := stmt.(*ast.ExpressionStatement); ok {
			if t := es.Expression.ResolvedType(); t != nil {
				last = t
			}
		}
	}
	return last
}

// checkIfExpression requires both branches to agree on a type.
func (a *Analyzer) checkIfExpression(e *ast.IfExpression, scope *symbols.Scope) typesystem.Type {
	a.checkCondition(e.Condition, scope)

	consequence := a.checkExpr(e.Consequence, scope)
	if e.Alternative == nil {
		return consequence
	}

	alternative := a.checkExpr(e.Alternative, scope)
	if !typesystem.Compatible(consequence, alternative) && !typesystem.Compatible(alternative, consequence) {
		a.typeMismatch(e.GetToken(), consequence, alternative, "else branch")
	}
	return consequence
}

// checkMatchExpression computes every arm's type and requires agreement;
// the common type becomes the expression's type.
func (a *Analyzer) checkMatchExpression(e *ast.MatchExpression, scope *symbols.Scope) typesystem.Type {
	subject := a.checkExpr(e.Subject, scope)

	var result typesystem.Type
	for _, arm := range e.Arms {
		armScope := symbols.NewEnclosedScope(scope)
		a.bindPattern(arm.Pattern, subject, armScope)
		if arm.Guard != nil {
			a.checkCondition(arm.Guard, armScope)
		}
		armType := a.checkExpr(arm.Body, armScope)
		if result == nil {
			result = armType
		} else if !typesystem.Compatible(result, armType) && !typesystem.Compatible(armType, result) {
			a.typeMismatch(getNodeToken(arm.Body), result, armType, "match arm")
		}
	}

	patterns := make([]ast.Pattern, len(e.Arms))
	for i, arm := range e.Arms {
		patterns[i] = arm.Pattern
	}
	a.checkExhaustiveness(e.GetToken(), subject, patterns)

	if result == nil {
		return typesystem.Void
	}
	return result
}

// checkPipeline types value |> f as f(value).
func (a *Analyzer) checkPipeline(e *ast.PipelineExpression, scope *symbols.Scope) typesystem.Type {
	value := a.checkExpr(e.Left, scope)

	switch target := e.Right.(type) {
	case *ast.CallExpression:
		// value |> f(args) calls f with value prepended.
		callee := a.checkExpr(target.Callee, scope)
		if fn, ok := callee.(typesystem.TFunc); ok && len(fn.Params) > 0 {
			a.requireCompatible(fn.Params[0], value, e.GetToken(), "pipeline operand")
			for i, arg := range target.Arguments {
				argType := a.checkExpr(arg, scope)
				if i+1 < len(fn.Params) {
					a.requireCompatible(fn.Params[i+1], argType, getNodeToken(arg), "pipeline argument")
				}
			}
			return fn.ReturnType
		}
		for _, arg := range target.Arguments {
			a.checkExpr(arg, scope)
		}
		return sentinel()
	default:
		callee := a.checkExpr(e.Right, scope)
		if fn, ok := callee.(typesystem.TFunc); ok {
			if len(fn.Params) > 0 {
				a.requireCompatible(fn.Params[0], value, e.GetToken(), "pipeline operand")
			}
			return fn.ReturnType
		}
		a.errorf(diagnostics.ErrA003, e.GetToken(), "right side of |> is not callable")
		return sentinel()
	}
}

// checkTry requires a Result operand and yields its success type; the
// error case returns from the enclosing function at runtime.
func (a *Analyzer) checkTry(e *ast.TryExpression, scope *symbols.Scope) typesystem.Type {
	operand := a.checkExpr(e.Value, scope)

	result, ok := operand.(typesystem.TResult)
	if !ok {
		a.errorf(diagnostics.ErrA003, e.GetToken(),
			"the ? operator requires a Result, got "+operand.String())
		return sentinel()
	}
	return result.Ok
}

func (a *Analyzer) checkComprehension(e *ast.ListComprehension, scope *symbols.Scope) typesystem.Type {
	iterable := a.checkExpr(e.Iterable, scope)

	child := symbols.NewEnclosedScope(scope)
	var elem typesystem.Type = sentinel()
	switch it := iterable.(type) {
	case typesystem.TArray:
		elem = it.Elem
	case typesystem.TSet:
		elem = it.Elem
	default:
		a.typeMismatch(e.GetToken(), typesystem.TArray{Elem: typesystem.Int}, iterable, "comprehension iterable")
	}
	child.Define(e.Variable.Value, elem, false)

	if e.Condition != nil {
		a.checkCondition(e.Condition, child)
	}
	result := a.checkExpr(e.Element, child)
	return typesystem.TArray{Elem: result}
}

func (a *Analyzer) checkStructInit(e *ast.StructInitExpression, scope *symbols.Scope) typesystem.Type {
	name := e.Name.Value

	// Generic struct initializer: the first field's resolved type picks
	// the type argument, and the instantiation is recorded.
	if tmpl, ok := a.generics.Struct(name); ok {
		return a.checkGenericStructInit(e, tmpl, scope)
	}

	st, found := a.types.LookupStruct(name)
	if !found {
		a.errorf(diagnostics.ErrA012, e.GetToken(), name)
		for _, f := range e.Fields {
			a.checkExpr(f.Value, scope)
		}
		return sentinel()
	}

	for _, f := range e.Fields {
		value := a.checkExpr(f.Value, scope)
		fieldType, ok := st.FieldType(f.Name.Lexeme)
		if !ok {
			a.errorf(diagnostics.ErrA001, f.Name, st.Name+"."+f.Name.Lexeme)
			continue
		}
		a.requireCompatible(fieldType, value, f.Name, "field "+f.Name.Lexeme+" of "+st.Name)
	}

	return st
}

func (a *Analyzer) checkGenericStructInit(e *ast.StructInitExpression, tmpl *GenericStruct, scope *symbols.Scope) typesystem.Type {
	bindings := make(map[string]typesystem.Type)

	for _, f := range e.Fields {
		value := a.checkExpr(f.Value, scope)
		for _, field := range tmpl.Fields {
			if field.Name == f.Name.Lexeme {
				typesystem.Bind(field.Type, value, bindings)
				break
			}
		}
	}

	args := make([]typesystem.Type, len(tmpl.TypeParams))
	for i, param := range tmpl.TypeParams {
		if bound, ok := bindings[param]; ok {
			args[i] = bound
		} else {
			args[i] = typesystem.Int
		}
	}

	concrete := a.instantiateStruct(tmpl, e.Name.Value, args)
	if st, ok := concrete.(typesystem.TStruct); ok {
		for _, f := range e.Fields {
			if fieldType, found := st.FieldType(f.Name.Lexeme); found {
				if t := f.Value.ResolvedType(); t != nil {
					a.requireCompatible(fieldType, t, f.Name, "field "+f.Name.Lexeme+" of "+e.Name.Value)
				}
			} else {
				a.errorf(diagnostics.ErrA001, f.Name, e.Name.Value+"."+f.Name.Lexeme)
			}
		}
	}
	return concrete
}

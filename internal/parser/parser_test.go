package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/lexer"
)

func parseSource(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := New(lexer.NewTokenStream(lexer.New(src)))
	program := p.ParseProgram()
	require.Empty(t, p.Errors(), "parse errors")
	return program
}

func TestParseFunction(t *testing.T) {
	program := parseSource(t, `fn add(x: Int, y: Int) -> Int { return x + y }`)
	require.Len(t, program.Statements, 1)

	fn, ok := program.Statements[0].(*ast.FunctionStatement)
	require.True(t, ok)
	assert.Equal(t, "add", fn.Name.Value)
	require.Len(t, fn.Params, 2)
	assert.Equal(t, "x", fn.Params[0].Name.Lexeme)
	require.NotNil(t, fn.ReturnType)
	require.Len(t, fn.Body.Statements, 1)

	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	require.True(t, ok)
	bin, ok := ret.Value.(*ast.BinaryExpression)
	require.True(t, ok)
	assert.Equal(t, "+", bin.Operator)
}

func TestParseGenericFunction(t *testing.T) {
	program := parseSource(t, `fn id<T>(x: T) -> T { return x }`)
	fn := program.Statements[0].(*ast.FunctionStatement)
	require.Len(t, fn.TypeParams, 1)
	assert.Equal(t, "T", fn.TypeParams[0].Name.Lexeme)
	assert.True(t, fn.IsGeneric())
}

func TestParseVarForms(t *testing.T) {
	program := parseSource(t, `
		var x = 1
		var y: Float = 2.0
		var (a, b) = pair
		var [head, ..tail] = xs
	`)
	require.Len(t, program.Statements, 4)

	plain := program.Statements[0].(*ast.VarStatement)
	assert.Equal(t, "x", plain.Name.Value)
	assert.Nil(t, plain.Type)

	annotated := program.Statements[1].(*ast.VarStatement)
	require.NotNil(t, annotated.Type)

	tuple := program.Statements[2].(*ast.VarStatement)
	_, ok := tuple.Pattern.(*ast.TuplePattern)
	assert.True(t, ok)

	arr := program.Statements[3].(*ast.VarStatement)
	arrPat, ok := arr.Pattern.(*ast.ArrayPattern)
	require.True(t, ok)
	assert.True(t, arrPat.HasRest)
	assert.Equal(t, "tail", arrPat.RestName.Lexeme)
}

func TestParseEnum(t *testing.T) {
	program := parseSource(t, `enum Shape { Circle(Float), Square(Float), Dot }`)
	enum := program.Statements[0].(*ast.EnumStatement)
	require.Len(t, enum.Variants, 3)
	assert.Equal(t, "Circle", enum.Variants[0].Name.Lexeme)
	assert.Len(t, enum.Variants[0].Params, 1)
	assert.Empty(t, enum.Variants[2].Params)
}

func TestParseStructInitializer(t *testing.T) {
	program := parseSource(t, `var p = Point { x: 1, y: 2 }`)
	v := program.Statements[0].(*ast.VarStatement)
	init, ok := v.Value.(*ast.StructInitExpression)
	require.True(t, ok)
	assert.Equal(t, "Point", init.Name.Value)
	assert.Len(t, init.Fields, 2)
}

func TestMatchHeaderDoesNotParseStructInit(t *testing.T) {
	// In a match header, '{' opens the arm block even after an
	// uppercase identifier.
	program := parseSource(t, `
		fn f(c: Color) {
			match Red {
				Red => print(1),
				_ => print(2)
			}
		}
	`)
	fn := program.Statements[0].(*ast.FunctionStatement)
	m, ok := fn.Body.Statements[0].(*ast.MatchStatement)
	require.True(t, ok)
	require.Len(t, m.Arms, 2)

	_, ok = m.Arms[0].Pattern.(*ast.EnumVariantPattern)
	assert.True(t, ok)
	_, ok = m.Arms[1].Pattern.(*ast.WildcardPattern)
	assert.True(t, ok)
}

func TestParseImports(t *testing.T) {
	program := parseSource(t, `
		import math
		import geometry::math as m
	`)
	first := program.Statements[0].(*ast.ImportStatement)
	assert.Equal(t, "math", first.Path)
	assert.Equal(t, "math", first.ShortName())

	second := program.Statements[1].(*ast.ImportStatement)
	assert.Equal(t, "geometry/math", second.Path)
	assert.Equal(t, "m", second.ShortName())
}

func TestParseQualifiedIdentifier(t *testing.T) {
	program := parseSource(t, `var x = m::pi`)
	v := program.Statements[0].(*ast.VarStatement)
	ident, ok := v.Value.(*ast.Identifier)
	require.True(t, ok)
	assert.Equal(t, "m::pi", ident.Value)
}

func TestParseTryAndResultTypes(t *testing.T) {
	program := parseSource(t, `
		fn g() -> Result<Int, String> {
			var v = f()?
			return Ok(v + 1)
		}
	`)
	fn := program.Statements[0].(*ast.FunctionStatement)
	_, ok := fn.ReturnType.(*ast.ResultTypeExpr)
	assert.True(t, ok)

	v := fn.Body.Statements[0].(*ast.VarStatement)
	tryExpr, ok := v.Value.(*ast.TryExpression)
	require.True(t, ok)
	_, ok = tryExpr.Value.(*ast.CallExpression)
	assert.True(t, ok)
}

func TestParseLambdas(t *testing.T) {
	program := parseSource(t, `
		var f = fn(x: Int) { return x * 2 }
		var g = |x, y| x + y
	`)
	long := program.Statements[0].(*ast.VarStatement)
	lambda, ok := long.Value.(*ast.LambdaExpression)
	require.True(t, ok)
	assert.Len(t, lambda.Params, 1)

	short := program.Statements[1].(*ast.VarStatement)
	shortLambda, ok := short.Value.(*ast.LambdaExpression)
	require.True(t, ok)
	assert.Len(t, shortLambda.Params, 2)
}

func TestParseOptionalAndUnionTypes(t *testing.T) {
	program := parseSource(t, `
		fn f(a: Int?, b: Int | String) { }
	`)
	fn := program.Statements[0].(*ast.FunctionStatement)
	_, ok := fn.Params[0].Type.(*ast.OptionalType)
	assert.True(t, ok)
	union, ok := fn.Params[1].Type.(*ast.UnionType)
	require.True(t, ok)
	assert.Len(t, union.Members, 2)
}

func TestParseTryCatchFinally(t *testing.T) {
	program := parseSource(t, `
		fn main() {
			try {
				risky()
			} catch (IoError e) {
				print(e)
			} finally {
				cleanup()
			}
		}
	`)
	fn := program.Statements[0].(*ast.FunctionStatement)
	try, ok := fn.Body.Statements[0].(*ast.TryStatement)
	require.True(t, ok)
	require.Len(t, try.Catches, 1)
	assert.Equal(t, "e", try.Catches[0].Name.Value)
	assert.NotNil(t, try.Catches[0].Type)
	assert.NotNil(t, try.Finally)
}

func TestParseInterpolatedString(t *testing.T) {
	program := parseSource(t, `var s = "total: ${n + 1}!"`)
	v := program.Statements[0].(*ast.VarStatement)
	interp, ok := v.Value.(*ast.InterpolatedString)
	require.True(t, ok)
	// text, expression, text
	require.Len(t, interp.Parts, 3)
	_, ok = interp.Parts[1].(*ast.BinaryExpression)
	assert.True(t, ok)
}

func TestParsePipelineAndRange(t *testing.T) {
	program := parseSource(t, `
		var r = 1..10
		var piped = xs |> transform
	`)
	v := program.Statements[0].(*ast.VarStatement)
	_, ok := v.Value.(*ast.RangeExpression)
	assert.True(t, ok)

	piped := program.Statements[1].(*ast.VarStatement)
	_, ok = piped.Value.(*ast.PipelineExpression)
	assert.True(t, ok)
}

func TestParseImplAndTrait(t *testing.T) {
	program := parseSource(t, `
		trait Area {
			fn area(self) -> Float
		}
		impl Area for Circle {
			fn area(self) -> Float { return 3.14 }
		}
	`)
	tr, ok := program.Statements[0].(*ast.TraitStatement)
	require.True(t, ok)
	require.Len(t, tr.Methods, 1)

	impl, ok := program.Statements[1].(*ast.ImplStatement)
	require.True(t, ok)
	assert.Equal(t, "Area", impl.Trait.Value)
	assert.Equal(t, "Circle", impl.TypeName.Value)
	require.Len(t, impl.Methods, 1)
}

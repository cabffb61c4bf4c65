package analyzer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/modules"
	"github.com/wynlang/wyn/internal/typesystem"
)

func analyze(t *testing.T, src string) (*Analyzer, *ast.Program, []*diagnostics.DiagnosticError) {
	t.Helper()
	program, parseErrs := modules.Parse(src)
	require.Empty(t, parseErrs, "parse errors in test source")

	a, err := New()
	require.NoError(t, err)
	errs := a.Check(program)
	return a, program, errs
}

func codes(errs []*diagnostics.DiagnosticError) []diagnostics.ErrorCode {
	var out []diagnostics.ErrorCode
	for _, e := range errs {
		out = append(out, e.Code)
	}
	return out
}

func TestSimpleFunctionAnalyzesClean(t *testing.T) {
	a, _, errs := analyze(t, `
		fn f(x: Int) -> Int { return x + 1 }
		fn main() { print(f(3)) }
	`)
	assert.Empty(t, errs)
	assert.False(t, a.HadError())

	sym, ok := a.GlobalScope().Lookup("f")
	require.True(t, ok)
	fn, ok := sym.Type.(typesystem.TFunc)
	require.True(t, ok)
	require.Len(t, fn.Params, 1)
	assert.True(t, typesystem.Int.Equals(fn.Params[0]))
	assert.True(t, typesystem.Int.Equals(fn.ReturnType))
}

func TestGenericInstantiationsRecorded(t *testing.T) {
	a, program, errs := analyze(t, `
		fn id<T>(x: T) -> T { return x }
		fn main() {
			var a = id(1)
			var b = id("hi")
		}
	`)
	require.Empty(t, errs)

	insts := a.Generics().Instantiations()
	require.Len(t, insts, 2)
	assert.Equal(t, "id", insts[0].Template)
	assert.True(t, typesystem.Int.Equals(insts[0].Args[0]))
	assert.True(t, typesystem.String.Equals(insts[1].Args[0]))

	// var a: Int, var b: String via the calls' resolved types.
	main := findFunction(program, "main")
	require.NotNil(t, main)
	varA := main.Body.Statements[0].(*ast.VarStatement)
	varB := main.Body.Statements[1].(*ast.VarStatement)
	assert.True(t, typesystem.Int.Equals(varA.Value.ResolvedType()))
	assert.True(t, typesystem.String.Equals(varB.Value.ResolvedType()))
}

func TestNonExhaustiveMatch(t *testing.T) {
	a, _, errs := analyze(t, `
		enum Color { Red, Green, Blue }
		fn main() {
			var c = Red
			match c {
				Red => print(1),
				Green => print(2)
			}
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.ErrA009, errs[0].Code)
	assert.Contains(t, errs[0].Error(), "missing case: Blue")
	assert.True(t, a.HadError())
}

func TestWildcardSatisfiesExhaustiveness(t *testing.T) {
	_, _, errs := analyze(t, `
		enum Color { Red, Green, Blue }
		fn main() {
			var c = Green
			match c {
				Red => print(1),
				_ => print(0)
			}
		}
	`)
	assert.Empty(t, errs)
}

func TestOverloadResolutionPrefersExact(t *testing.T) {
	_, program, errs := analyze(t, `
		fn f(x: Int) -> Int { }
		fn f(x: Float) -> Int { }
		fn main() { var r = f(3) }
	`)
	require.Empty(t, errs)

	main := findFunction(program, "main")
	call := main.Body.Statements[0].(*ast.VarStatement).Value.(*ast.CallExpression)
	assert.Equal(t, "f_Int", call.Mangled)
	assert.True(t, typesystem.Int.Equals(call.ResolvedType()))
}

func TestDuplicateSignatureRejected(t *testing.T) {
	_, _, errs := analyze(t, `
		fn f(x: Int) -> Int { return 1 }
		fn f(x: Int) -> Float { return 2.0 }
	`)
	require.NotEmpty(t, errs)
	assert.Contains(t, codes(errs), diagnostics.ErrA005)
}

func TestAmbiguousImports(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "math.wyn", `const pi = 3.14`)
	writeFile(t, dir, "geometry/math.wyn", `const pi = 3.15`)

	program, parseErrs := modules.Parse(`
		import math as m
		import geometry::math as m
		fn main() { print(m::pi) }
	`)
	require.Empty(t, parseErrs)

	a, err := New()
	require.NoError(t, err)
	a.SetLoader(modules.NewLoader(dir))

	errs := a.Check(program)
	require.NotEmpty(t, errs)
	assert.Contains(t, codes(errs), diagnostics.ErrA007)
	assert.Contains(t, errs[0].Error(), "math")
}

func TestResultAndTryOperator(t *testing.T) {
	_, program, errs := analyze(t, `
		fn f() -> Result<Int, String> { return Err("x") }
		fn g() -> Result<Int, String> {
			var v = f()?
			return Ok(v + 1)
		}
	`)
	assert.Empty(t, errs)

	g := findFunction(program, "g")
	varV := g.Body.Statements[0].(*ast.VarStatement)
	assert.True(t, typesystem.Int.Equals(varV.Value.ResolvedType()))
}

func TestTryOnNonResult(t *testing.T) {
	_, _, errs := analyze(t, `
		fn main() {
			var x = 1
			var y = x?
		}
	`)
	require.NotEmpty(t, errs)
	assert.Equal(t, diagnostics.ErrA003, errs[0].Code)
}

func TestVisibilityEnforced(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.wyn", `
		pub fn visible() -> Int { return 1 }
		fn hidden() -> Int { return 2 }
	`)

	program, parseErrs := modules.Parse(`
		import lib
		fn main() {
			var a = lib::visible()
			var b = lib::hidden()
		}
	`)
	require.Empty(t, parseErrs)

	a, err := New()
	require.NoError(t, err)
	a.SetLoader(modules.NewLoader(dir))

	errs := a.Check(program)
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.ErrA008, errs[0].Code)
}

func TestUndefinedIdentifierSuggestions(t *testing.T) {
	_, _, errs := analyze(t, `
		fn main() {
			var counter = 1
			print(countr)
		}
	`)
	require.NotEmpty(t, errs)
	assert.Equal(t, diagnostics.ErrA001, errs[0].Code)
	assert.Contains(t, errs[0].Hint, "counter")
}

func TestEmptyBodyWithDeclaredReturnIsAllowed(t *testing.T) {
	// Fall-through is permitted; the code generator inserts a zero return.
	_, _, errs := analyze(t, `fn f() -> Int { }`)
	assert.Empty(t, errs)
}

func TestEmptyArrayDefaultsToIntElements(t *testing.T) {
	_, program, errs := analyze(t, `fn main() { var x = [] }`)
	require.Empty(t, errs)

	main := findFunction(program, "main")
	varX := main.Body.Statements[0].(*ast.VarStatement)
	arr, ok := varX.Value.ResolvedType().(typesystem.TArray)
	require.True(t, ok)
	assert.True(t, typesystem.Int.Equals(arr.Elem))
}

func TestBinaryOperatorsDoNotCoerce(t *testing.T) {
	_, _, errs := analyze(t, `
		fn main() {
			var a = 1 + 2
			var b = 1 + 2.0
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.ErrA003, errs[0].Code)
}

func TestIntWidensInCallArguments(t *testing.T) {
	_, _, errs := analyze(t, `
		fn f(x: Float) -> Float { return x }
		fn main() { var r = f(3) }
	`)
	assert.Empty(t, errs)
}

func TestComparisonResultAssignsToBoolAndInt(t *testing.T) {
	// The source accepts comparison results in both Bool and Int slots.
	_, _, errs := analyze(t, `
		fn main() {
			var b: Bool = 1 < 2
			var i: Int = 1 < 2
		}
	`)
	assert.Empty(t, errs)
}

func TestOptionalNullability(t *testing.T) {
	_, _, errs := analyze(t, `
		fn main() {
			var x: Int? = Some(5)
			var y: Int = Some(5)
		}
	`)
	require.Len(t, errs, 1)
	assert.Equal(t, diagnostics.ErrA010, errs[0].Code)
}

func TestNilCoalescing(t *testing.T) {
	_, program, errs := analyze(t, `
		fn main() {
			var x: Int? = Some(5)
			var y = x ?? 0
		}
	`)
	require.Empty(t, errs)

	main := findFunction(program, "main")
	varY := main.Body.Statements[1].(*ast.VarStatement)
	assert.True(t, typesystem.Int.Equals(varY.Value.ResolvedType()))
}

func TestStructInitAndFieldAccess(t *testing.T) {
	_, _, errs := analyze(t, `
		struct Point { x: Int, y: Int }
		fn main() {
			var p = Point { x: 1, y: 2 }
			print(p.x)
		}
	`)
	assert.Empty(t, errs)
}

func TestStructFieldTypeMismatch(t *testing.T) {
	_, _, errs := analyze(t, `
		struct Point { x: Int, y: Int }
		fn main() { var p = Point { x: "no", y: 2 } }
	`)
	require.NotEmpty(t, errs)
	assert.Equal(t, diagnostics.ErrA003, errs[0].Code)
}

func TestGenericStructInstantiation(t *testing.T) {
	a, _, errs := analyze(t, `
		struct Box<T> { value: T }
		fn main() {
			var b = Box { value: 42 }
			print(b.value)
		}
	`)
	require.Empty(t, errs)

	insts := a.Generics().Instantiations()
	require.Len(t, insts, 1)
	assert.Equal(t, "Box", insts[0].Template)
	assert.True(t, typesystem.Int.Equals(insts[0].Args[0]))
}

func TestEnumWithPayloadAndMatch(t *testing.T) {
	_, _, errs := analyze(t, `
		enum Shape { Circle(Float), Square(Float) }
		fn area(s: Shape) -> Float {
			match s {
				Circle(r) => return r * r * 3.14,
				Square(a) => return a * a
			}
			return 0.0
		}
		fn main() { print(area(Shape_Circle(2.0))) }
	`)
	assert.Empty(t, errs)
}

func TestEnumToStringHelperRegistered(t *testing.T) {
	a, _, errs := analyze(t, `
		enum Color { Red, Green, Blue }
		fn main() { print(Color_toString(Red)) }
	`)
	assert.Empty(t, errs)

	sym, ok := a.GlobalScope().Lookup("Color_toString")
	require.True(t, ok)
	fn := sym.Type.(typesystem.TFunc)
	assert.True(t, typesystem.String.Equals(fn.ReturnType))
}

func TestLambdaCaptures(t *testing.T) {
	_, program, errs := analyze(t, `
		fn main() {
			var n = 10
			var add = fn(x: Int) { return x + n }
			print(add(5))
		}
	`)
	require.Empty(t, errs)

	main := findFunction(program, "main")
	lambda := main.Body.Statements[1].(*ast.VarStatement).Value.(*ast.LambdaExpression)
	assert.Equal(t, []string{"n"}, lambda.Captures)

	fn, ok := lambda.ResolvedType().(typesystem.TFunc)
	require.True(t, ok)
	assert.True(t, typesystem.Int.Equals(fn.ReturnType))
}

func TestMethodCallsOnBuiltinReceivers(t *testing.T) {
	_, program, errs := analyze(t, `
		fn main() {
			var s = "hello".upper()
			var xs = [1, 2, 3]
			var n = xs.len()
			var first = xs.first()
		}
	`)
	require.Empty(t, errs)

	main := findFunction(program, "main")
	varS := main.Body.Statements[0].(*ast.VarStatement)
	assert.True(t, typesystem.String.Equals(varS.Value.ResolvedType()))

	varFirst := main.Body.Statements[3].(*ast.VarStatement)
	opt, ok := varFirst.Value.ResolvedType().(typesystem.TOptional)
	require.True(t, ok)
	assert.True(t, typesystem.Int.Equals(opt.Inner))
}

func TestBuiltinModuleMethodDesugar(t *testing.T) {
	_, program, errs := analyze(t, `
		fn main() {
			var content = File.read("data.txt")
		}
	`)
	require.Empty(t, errs)

	main := findFunction(program, "main")
	varC := main.Body.Statements[0].(*ast.VarStatement)
	assert.True(t, typesystem.String.Equals(varC.Value.ResolvedType()))
}

func TestExtensionMethodsThroughImpl(t *testing.T) {
	_, _, errs := analyze(t, `
		struct Point { x: Int, y: Int }
		impl Point {
			fn sum(self) -> Int { return self.x + self.y }
		}
		fn main() {
			var p = Point { x: 1, y: 2 }
			print(p.sum())
		}
	`)
	assert.Empty(t, errs)
}

func TestWrongArgumentCount(t *testing.T) {
	_, _, errs := analyze(t, `
		fn f(x: Int) -> Int { return x }
		fn main() { var r = f(1, 2) }
	`)
	require.NotEmpty(t, errs)
	assert.Equal(t, diagnostics.ErrA004, errs[0].Code)
}

func TestNestedFunctionIsIllegal(t *testing.T) {
	_, _, errs := analyze(t, `
		fn outer() {
			fn inner() { }
		}
	`)
	require.NotEmpty(t, errs)
	assert.Equal(t, diagnostics.ErrA011, errs[0].Code)
}

func TestBreakOutsideLoop(t *testing.T) {
	_, _, errs := analyze(t, `fn main() { break }`)
	require.NotEmpty(t, errs)
	assert.Equal(t, diagnostics.ErrA011, errs[0].Code)
}

func TestCatchBindsErrorAsString(t *testing.T) {
	_, _, errs := analyze(t, `
		fn main() {
			try {
				throw "boom"
			} catch (e) {
				print(e.upper())
			} finally {
				print("done")
			}
		}
	`)
	assert.Empty(t, errs)
}

func TestForLoopBindings(t *testing.T) {
	_, _, errs := analyze(t, `
		fn total_of(xs: [Int]) -> Int {
			var total = 0
			for x in xs {
				total = total + x
			}
			for (var i = 0; i < 3; i = i + 1) {
				total = total + i
			}
			return total
		}
	`)
	assert.Empty(t, errs)
}

func TestMatchExpressionArmsMustAgree(t *testing.T) {
	_, _, errs := analyze(t, `
		enum Color { Red, Green }
		fn main() {
			var c = Red
			var v = match c {
				Red => 1,
				Green => "two"
			}
		}
	`)
	require.NotEmpty(t, errs)
	assert.Equal(t, diagnostics.ErrA003, errs[0].Code)
}

func TestIfExpression(t *testing.T) {
	_, _, errs := analyze(t, `
		fn main() {
			var x = 5
			var v = if x > 0 { 1 } else { 2 }
		}
	`)
	assert.Empty(t, errs)
}

func TestModuleLoaderCachesPrograms(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "lib.wyn", `pub fn one() -> Int { return 1 }`)

	loader := modules.NewLoader(dir)
	first, err := loader.Load("lib")
	require.NoError(t, err)
	second, err := loader.Load("lib")
	require.NoError(t, err)
	assert.Same(t, first, second, "loading the same path twice returns the same instance")
	assert.Same(t, first.Program, second.Program)
}

func TestDestructuringDeclaration(t *testing.T) {
	_, _, errs := analyze(t, `
		fn main() {
			var xs = [1, 2, 3]
			var [first, second, ..rest] = xs
			var total = first + second
			print(rest.len())
		}
	`)
	assert.Empty(t, errs)
}

func findFunction(program *ast.Program, name string) *ast.FunctionStatement {
	for _, stmt := range program.Statements {
		if fn, ok := stmt.(*ast.FunctionStatement); ok && fn.Name.Value == name {
			return fn
		}
	}
	return nil
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

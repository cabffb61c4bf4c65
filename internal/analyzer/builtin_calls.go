package analyzer

import (
	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/config"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/typesystem"
)

// checkBuiltinCall applies the hardcoded arity and argument contracts
// of the core builtins. The second result reports whether the name was
// handled here; unhandled names fall through to generic instantiation
// and overload resolution.
func (a *Analyzer) checkBuiltinCall(e *ast.CallExpression, name string, argTypes []typesystem.Type) (typesystem.Type, bool) {
	switch name {
	case config.PrintFuncName, config.PrintlnFuncName:
		// Variadic, accepts anything.
		return typesystem.Void, true

	case config.AssertFuncName:
		if !a.requireArity(e, name, argTypes, 1) {
			return typesystem.Void, true
		}
		if !typesystem.IsBoolLike(argTypes[0]) {
			a.typeMismatch(getNodeToken(e.Arguments[0]), typesystem.Bool, argTypes[0], "argument 1 of assert")
		}
		return typesystem.Void, true

	case config.LenFuncName:
		if !a.requireArity(e, name, argTypes, 1) {
			return typesystem.Int, true
		}
		switch t := argTypes[0].(type) {
		case typesystem.TArray, typesystem.TMap, typesystem.TSet, typesystem.TGeneric:
			// measurable
		case typesystem.TPrim:
			if t.Name != "String" {
				a.errorf(diagnostics.ErrA003, e.GetToken(), "len does not apply to "+t.String())
			}
		default:
			a.errorf(diagnostics.ErrA003, e.GetToken(), "len does not apply to "+argTypes[0].String())
		}
		return typesystem.Int, true

	case config.TypeofFuncName:
		a.requireArity(e, name, argTypes, 1)
		return typesystem.String, true

	case config.ExitFuncName:
		if a.requireArity(e, name, argTypes, 1) {
			a.requireCompatible(typesystem.Int, argTypes[0], e.GetToken(), "argument 1 of exit")
		}
		return typesystem.Void, true

	case config.PanicFuncName:
		if a.requireArity(e, name, argTypes, 1) {
			a.requireCompatible(typesystem.String, argTypes[0], e.GetToken(), "argument 1 of panic")
		}
		return typesystem.Void, true

	case config.SleepFuncName:
		if a.requireArity(e, name, argTypes, 1) {
			a.requireCompatible(typesystem.Int, argTypes[0], e.GetToken(), "argument 1 of sleep")
		}
		return typesystem.Void, true

	case config.SomeFuncName:
		if !a.requireArity(e, name, argTypes, 1) {
			return typesystem.TOptional{Inner: sentinel()}, true
		}
		return typesystem.TOptional{Inner: argTypes[0]}, true

	case config.NoneFuncName:
		a.requireArity(e, name, argTypes, 0)
		return typesystem.TOptional{Inner: typesystem.TGeneric{Name: "t"}}, true

	case config.OkFuncName:
		if !a.requireArity(e, name, argTypes, 1) {
			return typesystem.TResult{Ok: sentinel(), Err: typesystem.TGeneric{Name: "e"}}, true
		}
		if expected, isResult := a.currentFunctionReturn.(typesystem.TResult); isResult {
			return typesystem.TResult{Ok: argTypes[0], Err: expected.Err}, true
		}
		return typesystem.TResult{Ok: argTypes[0], Err: typesystem.TGeneric{Name: "e"}}, true

	case config.ErrFuncName:
		if !a.requireArity(e, name, argTypes, 1) {
			return typesystem.TResult{Ok: typesystem.TGeneric{Name: "t"}, Err: sentinel()}, true
		}
		if expected, isResult := a.currentFunctionReturn.(typesystem.TResult); isResult {
			return typesystem.TResult{Ok: expected.Ok, Err: argTypes[0]}, true
		}
		return typesystem.TResult{Ok: typesystem.TGeneric{Name: "t"}, Err: argTypes[0]}, true
	}

	return nil, false
}

func (a *Analyzer) requireArity(e *ast.CallExpression, name string, argTypes []typesystem.Type, want int) bool {
	if len(argTypes) == want {
		return true
	}
	a.errorf(diagnostics.ErrA004, e.GetToken(), name, want, len(argTypes))
	return false
}

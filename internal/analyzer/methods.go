package analyzer

import (
	"strconv"

	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/config"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/symbols"
	"github.com/wynlang/wyn/internal/typesystem"
)

// checkMethodCall resolves obj.m(args) in three steps: builtin module
// desugar (File.read -> File::read), the per-receiver-kind dispatch
// table, then user extension methods named TypeName_method.
func (a *Analyzer) checkMethodCall(e *ast.MethodCallExpression, scope *symbols.Scope) typesystem.Type {
	// 1. Builtin module namespace: the receiver is a module identifier,
	// not a value.
	if ident, ok := e.Receiver.(*ast.Identifier); ok && config.BuiltinModules[ident.Value] {
		return a.checkModuleCall(e, ident.Value, scope)
	}

	receiver := a.checkExpr(e.Receiver, scope)

	argTypes := make([]typesystem.Type, len(e.Arguments))
	for i, arg := range e.Arguments {
		argTypes[i] = a.checkExpr(arg, scope)
	}

	// 2. Static method-signature table per receiver kind.
	if kind := ReceiverKind(receiver); kind != "" {
		if sig, ok := a.methods.Lookup(kind, e.Method.Value); ok {
			bindings := receiverBindings(receiver)
			if len(argTypes) != len(sig.Params) {
				a.errorf(diagnostics.ErrA004, e.GetToken(), e.Method.Value, len(sig.Params), len(argTypes))
			} else {
				for i, param := range sig.Params {
					concrete := typesystem.Substitute(param, bindings)
					a.requireCompatible(concrete, argTypes[i], getNodeToken(e.Arguments[i]),
						"argument "+strconv.Itoa(i+1)+" of "+e.Method.Value)
				}
			}
			e.CFunc = sig.CFunc
			e.ByRef = sig.ByRef
			return typesystem.Substitute(sig.ReturnType, bindings)
		}
	}

	// 3. User extension method: TypeName_method in the global scope.
	typeName := nominalName(receiver)
	if typeName != "" {
		extName := typeName + "_" + e.Method.Value
		if overloads := a.global.LookupOverloads(extName); overloads != nil {
			fullArgs := append([]typesystem.Type{receiver}, argTypes...)
			return a.resolveExtension(e, extName, overloads, fullArgs)
		}
	}

	if _, isGeneric := receiver.(typesystem.TGeneric); isGeneric {
		return sentinel()
	}

	a.errorf(diagnostics.ErrA002, e.Method.Token,
		receiver.String()+"."+e.Method.Value)
	return sentinel()
}

// checkModuleCall desugars Module.m(args) to the Module::m builtin.
func (a *Analyzer) checkModuleCall(e *ast.MethodCallExpression, module string, scope *symbols.Scope) typesystem.Type {
	argTypes := make([]typesystem.Type, len(e.Arguments))
	for i, arg := range e.Arguments {
		argTypes[i] = a.checkExpr(arg, scope)
	}

	qualified := module + "::" + e.Method.Value
	sym, ok := a.global.Lookup(qualified)
	if !ok {
		a.errorf(diagnostics.ErrA002, e.Method.Token, qualified)
		return sentinel()
	}
	fn, ok := sym.Type.(typesystem.TFunc)
	if !ok {
		a.errorf(diagnostics.ErrA003, e.Method.Token, qualified+" is not a function")
		return sentinel()
	}

	if fn.IsVariadic {
		if len(argTypes) < len(fn.Params)-1 {
			a.errorf(diagnostics.ErrA004, e.GetToken(), qualified, len(fn.Params)-1, len(argTypes))
		}
	} else if len(argTypes) != len(fn.Params) {
		a.errorf(diagnostics.ErrA004, e.GetToken(), qualified, len(fn.Params), len(argTypes))
	} else {
		for i, param := range fn.Params {
			a.requireCompatible(param, argTypes[i], getNodeToken(e.Arguments[i]),
				"argument "+strconv.Itoa(i+1)+" of "+qualified)
		}
	}

	e.CFunc = symbols.MangleName(qualified, fn)
	return fn.ReturnType
}

// resolveExtension scores extension overloads with the receiver
// prepended to the argument list.
func (a *Analyzer) resolveExtension(e *ast.MethodCallExpression, name string, overloads []*symbols.Symbol, argTypes []typesystem.Type) typesystem.Type {
	bestScore := scoreNoMatch
	var best *symbols.Symbol
	tie := false

	for _, candidate := range overloads {
		fn, ok := candidate.Type.(typesystem.TFunc)
		if !ok {
			continue
		}
		score := matchScore(fn, argTypes)
		if score < 0 {
			continue
		}
		if score > bestScore {
			bestScore = score
			best = candidate
			tie = false
		} else if score == bestScore {
			tie = true
		}
	}

	if best == nil {
		a.errorf(diagnostics.ErrA002, e.Method.Token, name)
		return sentinel()
	}
	if tie {
		a.errorf(diagnostics.ErrA006, e.Method.Token, name)
		return sentinel()
	}

	e.CFunc = best.MangledName
	fn := best.Type.(typesystem.TFunc)
	return fn.ReturnType
}

// nominalName extracts the registry name of a nominal receiver.
func nominalName(t typesystem.Type) string {
	switch typ := t.(type) {
	case typesystem.TStruct:
		return typ.Name
	case typesystem.TEnum:
		return typ.Name
	case typesystem.TPrim:
		return typ.Name
	default:
		return ""
	}
}

package analyzer

import (
	"strconv"
	"strings"

	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/config"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/symbols"
	"github.com/wynlang/wyn/internal/typesystem"
)

const (
	scoreExact   = 10
	scoreWidened = 5
	scoreNoMatch = -1
)

// checkCall resolves a call through three paths in priority order:
// the builtin shortcut, generic instantiation, then overload
// resolution over the identifier's overload group.
func (a *Analyzer) checkCall(e *ast.CallExpression, scope *symbols.Scope) typesystem.Type {
	ident, isIdent := e.Callee.(*ast.Identifier)

	argTypes := make([]typesystem.Type, len(e.Arguments))
	for i, arg := range e.Arguments {
		argTypes[i] = a.checkExpr(arg, scope)
	}

	if !isIdent {
		// Calling an arbitrary expression: it must be function-typed.
		callee := a.checkExpr(e.Callee, scope)
		fn, ok := callee.(typesystem.TFunc)
		if !ok {
			if _, generic := callee.(typesystem.TGeneric); generic {
				return sentinel()
			}
			a.errorf(diagnostics.ErrA003, e.GetToken(), "type "+callee.String()+" is not callable")
			return sentinel()
		}
		return a.checkDirectCall(e, "", fn, argTypes)
	}

	name := ident.Value

	// 1. Builtin shortcut with hardcoded contracts.
	if t, handled := a.checkBuiltinCall(e, name, argTypes); handled {
		ident.SetResolvedType(typesystem.TFunc{Params: argTypes, ReturnType: t})
		return t
	}

	// 2. Generic instantiation.
	if tmpl, ok := a.generics.Function(name); ok {
		return a.checkGenericCall(e, name, tmpl, argTypes)
	}

	// Module-qualified call: ambiguity and visibility gates first.
	if idx := strings.Index(name, "::"); idx >= 0 {
		short := name[:idx]
		member := name[idx+2:]
		if !config.BuiltinModules[short] {
			if first, second, ambiguous := a.imports.Ambiguous(short); ambiguous {
				a.errorf(diagnostics.ErrA007, ident.Token, short,
					first.Path, first.Line, second.Path, second.Line)
				return sentinel()
			}
			if entry, ok := a.imports.Lookup(short); ok {
				moduleName := moduleNameOf(entry.Path)
				if public, known := a.visibility.IsPublic(moduleName, member); known && !public {
					a.errorf(diagnostics.ErrA008, ident.Token, member, short)
					return sentinel()
				}
			}
			// Merged module functions resolve under their bare name.
			if overloads := scope.LookupOverloads(member); overloads != nil {
				return a.resolveOverloads(e, member, overloads, argTypes)
			}
		}
	}

	// 3. Overload resolution.
	overloads := scope.LookupOverloads(name)
	if overloads == nil {
		// A lambda-typed variable called directly.
		if sym, ok := scope.Lookup(name); ok {
			if fn, isFn := sym.Type.(typesystem.TFunc); isFn {
				return a.checkDirectCall(e, name, fn, argTypes)
			}
		}
		a.errorf(diagnostics.ErrA002, getNodeToken(e.Callee), name)
		return sentinel()
	}

	// A variable holding a function value shadows overload scoring.
	if len(overloads) == 1 {
		if fn, ok := overloads[0].Type.(typesystem.TFunc); ok {
			if overloads[0].MangledName == "" {
				return a.checkDirectCall(e, name, fn, argTypes)
			}
		} else {
			a.errorf(diagnostics.ErrA003, getNodeToken(e.Callee), name+" is not a function")
			return sentinel()
		}
	}

	return a.resolveOverloads(e, name, overloads, argTypes)
}

// checkDirectCall checks a call against a single known signature with
// arity and per-argument compatibility.
func (a *Analyzer) checkDirectCall(e *ast.CallExpression, name string, fn typesystem.TFunc, argTypes []typesystem.Type) typesystem.Type {
	if fn.IsVariadic {
		if len(argTypes) < len(fn.Params)-1 {
			a.errorf(diagnostics.ErrA004, e.GetToken(), name, len(fn.Params)-1, len(argTypes))
			return fn.ReturnType
		}
	} else if len(argTypes) != len(fn.Params) {
		a.errorf(diagnostics.ErrA004, e.GetToken(), name, len(fn.Params), len(argTypes))
		return fn.ReturnType
	}

	for i, argType := range argTypes {
		if i >= len(fn.Params) {
			break
		}
		context := "argument " + strconv.Itoa(i+1)
		if name != "" {
			context += " of " + name
		}
		a.requireCompatible(fn.Params[i], argType, getNodeToken(e.Arguments[i]), context)
	}
	return fn.ReturnType
}

// resolveOverloads scores each overload against the argument types:
// +10 per exact match, +5 per Int->Float widening or other compatible
// pair, no-match disqualifies. Variadic candidates need an argument for
// every parameter but the last and get a +1 tiebreaker. A score tie
// among the best is an ambiguity error.
func (a *Analyzer) resolveOverloads(e *ast.CallExpression, name string, overloads []*symbols.Symbol, argTypes []typesystem.Type) typesystem.Type {
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
		// Arity-only diagnostics read better when one candidate exists.
		if len(overloads) == 1 {
			if fn, ok := overloads[0].Type.(typesystem.TFunc); ok {
				return a.checkDirectCall(e, name, fn, argTypes)
			}
		}
		a.errorf(diagnostics.ErrA002, e.GetToken(), name)
		return sentinel()
	}
	if tie {
		a.errorf(diagnostics.ErrA006, e.GetToken(), name)
		return sentinel()
	}

	e.Mangled = best.MangledName
	fn := best.Type.(typesystem.TFunc)
	return fn.ReturnType
}

func matchScore(fn typesystem.TFunc, argTypes []typesystem.Type) int {
	if fn.IsVariadic {
		if len(argTypes) < len(fn.Params)-1 {
			return scoreNoMatch
		}
	} else if len(fn.Params) != len(argTypes) {
		return scoreNoMatch
	}

	score := 0
	for i, param := range fn.Params {
		if i >= len(argTypes) {
			break
		}
		arg := argTypes[i]
		switch {
		case param.Equals(arg):
			score += scoreExact
		case typesystem.Float.Equals(param) && typesystem.Int.Equals(arg):
			score += scoreWidened
		case typesystem.Compatible(param, arg):
			score += scoreWidened
		default:
			return scoreNoMatch
		}
	}

	if fn.IsVariadic {
		score++
	}
	return score
}

// checkGenericCall infers concrete type arguments from the call's
// argument types. The first occurrence of each parameter in the
// argument list picks its binding; later occurrences do not revisit it.
func (a *Analyzer) checkGenericCall(e *ast.CallExpression, name string, tmpl *GenericFunction, argTypes []typesystem.Type) typesystem.Type {
	if len(argTypes) != len(tmpl.Params) {
		a.errorf(diagnostics.ErrA004, e.GetToken(), name, len(tmpl.Params), len(argTypes))
		return sentinel()
	}

	bindings := make(map[string]typesystem.Type)

	// Explicit type arguments win over inference.
	if len(e.TypeArgs) > 0 {
		for i, param := range tmpl.TypeParams {
			if i < len(e.TypeArgs) {
				bindings[param] = a.buildType(e.TypeArgs[i], nil)
			}
		}
	} else {
		for i, param := range tmpl.Params {
			typesystem.Bind(param, argTypes[i], bindings)
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

	// Constraint check: each bound type must implement the parameter's
	// declared trait bounds.
	for i, declared := range tmpl.Decl.TypeParams {
		for _, bound := range declared.Bounds {
			if !a.typeSatisfiesTrait(args[i], bound.Lexeme) {
				a.errorf(diagnostics.ErrA003, e.GetToken(),
					"type "+args[i].String()+" does not implement trait "+bound.Lexeme)
			}
		}
	}

	for i, param := range tmpl.Params {
		concrete := typesystem.Substitute(param, bindings)
		a.requireCompatible(concrete, argTypes[i], getNodeToken(e.Arguments[i]),
			"argument "+strconv.Itoa(i+1)+" of "+name)
	}

	a.generics.RecordInstantiation(name, args)

	return typesystem.Substitute(tmpl.ReturnType, bindings)
}

func (a *Analyzer) typeSatisfiesTrait(t typesystem.Type, trait string) bool {
	name := ""
	switch typ := t.(type) {
	case typesystem.TStruct:
		name = typ.Name
	case typesystem.TEnum:
		name = typ.Name
	case typesystem.TPrim:
		name = typ.Name
	default:
		return true
	}
	if !a.traits.Exists(trait) {
		return true
	}
	// Primitive types satisfy the standard traits implicitly.
	if _, isPrim := t.(typesystem.TPrim); isPrim {
		switch trait {
		case "Display", "Eq", "Ord", "Clone", "Hash":
			return true
		}
	}
	return a.traits.Implements(name, trait)
}


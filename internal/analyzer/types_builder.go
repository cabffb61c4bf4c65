package analyzer

import (
	"strings"
	"unicode"

	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/typesystem"
)

// buildType resolves a type expression against the type registry.
// typeParams names the generic parameters in scope, which resolve to
// placeholders. Unknown names are reported and yield the sentinel.
func (a *Analyzer) buildType(expr ast.TypeExpr, typeParams map[string]bool) typesystem.Type {
	if expr == nil {
		return typesystem.Void
	}

	switch t := expr.(type) {
	case *ast.NamedType:
		return a.buildNamedType(t, typeParams)

	case *ast.ArrayType:
		return typesystem.TArray{Elem: a.buildType(t.Elem, typeParams)}

	case *ast.FunctionType:
		fn := typesystem.TFunc{IsVariadic: t.IsVariadic}
		for _, p := range t.Params {
			fn.Params = append(fn.Params, a.buildType(p, typeParams))
		}
		if t.ReturnType != nil {
			fn.ReturnType = a.buildType(t.ReturnType, typeParams)
		} else {
			fn.ReturnType = typesystem.Void
		}
		return fn

	case *ast.OptionalType:
		return typesystem.TOptional{Inner: a.buildType(t.Inner, typeParams)}

	case *ast.UnionType:
		if len(t.Members) < 2 {
			a.errorf(diagnostics.ErrA011, t.GetToken(), "union type needs at least 2 members")
			return sentinel()
		}
		members := make([]typesystem.Type, len(t.Members))
		for i, m := range t.Members {
			members[i] = a.buildType(m, typeParams)
		}
		return typesystem.NormalizeUnion(members)

	case *ast.ResultTypeExpr:
		return typesystem.TResult{
			Ok:  a.buildType(t.Ok, typeParams),
			Err: a.buildType(t.Err, typeParams),
		}

	default:
		a.errorf(diagnostics.ErrA012, getNodeToken(expr), expr.TokenLiteral())
		return sentinel()
	}
}

func (a *Analyzer) buildNamedType(t *ast.NamedType, typeParams map[string]bool) typesystem.Type {
	name := t.Name

	// Module-qualified type names resolve by their base name; imported
	// declarations are merged into the current unit.
	if idx := strings.LastIndex(name, "::"); idx >= 0 {
		name = name[idx+2:]
	}

	switch name {
	case "Map":
		if len(t.Args) == 2 {
			return typesystem.TMap{
				Key:   a.buildType(t.Args[0], typeParams),
				Value: a.buildType(t.Args[1], typeParams),
			}
		}
		a.errorf(diagnostics.ErrA011, t.Token, "Map takes exactly two type arguments")
		return sentinel()
	case "Set":
		if len(t.Args) == 1 {
			return typesystem.TSet{Elem: a.buildType(t.Args[0], typeParams)}
		}
		a.errorf(diagnostics.ErrA011, t.Token, "Set takes exactly one type argument")
		return sentinel()
	case "HashMap":
		if len(t.Args) == 2 {
			return typesystem.TMap{
				Key:   a.buildType(t.Args[0], typeParams),
				Value: a.buildType(t.Args[1], typeParams),
			}
		}
	case "HashSet":
		if len(t.Args) == 1 {
			return typesystem.TSet{Elem: a.buildType(t.Args[0], typeParams)}
		}
	case "Option":
		if len(t.Args) == 1 {
			return typesystem.TOptional{Inner: a.buildType(t.Args[0], typeParams)}
		}
	}

	if typeParams != nil && typeParams[name] {
		return typesystem.TGeneric{Name: name}
	}

	// Generic struct application: Box<Int>
	if len(t.Args) > 0 {
		if tmpl, ok := a.generics.Struct(name); ok {
			args := make([]typesystem.Type, len(t.Args))
			for i, arg := range t.Args {
				args[i] = a.buildType(arg, typeParams)
			}
			return a.instantiateStruct(tmpl, name, args)
		}
	}

	if resolved, ok := a.types.Lookup(name); ok {
		return resolved
	}

	// Lowercase names in annotation position are rigid type variables
	// of an enclosing template.
	if r := rune(name[0]); unicode.IsLower(r) {
		return typesystem.TGeneric{Name: name}
	}

	a.errorf(diagnostics.ErrA012, t.Token, name)
	return sentinel()
}

// instantiateStruct monomorphizes a generic struct template for the
// given arguments and records the instantiation.
func (a *Analyzer) instantiateStruct(tmpl *GenericStruct, name string, args []typesystem.Type) typesystem.Type {
	bindings := make(map[string]typesystem.Type)
	for i, param := range tmpl.TypeParams {
		if i < len(args) {
			bindings[param] = args[i]
		}
	}

	fields := make([]typesystem.StructField, len(tmpl.Fields))
	for i, f := range tmpl.Fields {
		fields[i] = typesystem.StructField{Name: f.Name, Type: typesystem.Substitute(f.Type, bindings)}
	}

	a.generics.RecordInstantiation(name, args)

	concrete := typesystem.TStruct{Name: mangleInstanceName(name, args), Fields: fields}
	a.types.Register(concrete.Name, concrete)
	return concrete
}

func mangleInstanceName(name string, args []typesystem.Type) string {
	var b strings.Builder
	b.WriteString(name)
	for _, arg := range args {
		b.WriteByte('_')
		for _, r := range arg.String() {
			if unicode.IsLetter(r) || unicode.IsDigit(r) {
				b.WriteRune(r)
			}
		}
	}
	return b.String()
}

// typeParamSet builds the lookup set for a declaration's generic
// parameters.
func typeParamSet(params []ast.TypeParam) map[string]bool {
	if len(params) == 0 {
		return nil
	}
	set := make(map[string]bool, len(params))
	for _, p := range params {
		set[p.Name.Lexeme] = true
	}
	return set
}

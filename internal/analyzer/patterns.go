package analyzer

import (
	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/symbols"
	"github.com/wynlang/wyn/internal/typesystem"
)

// bindPattern checks a pattern against the matched value's type and
// binds its variables into the arm scope.
func (a *Analyzer) bindPattern(pat ast.Pattern, subject typesystem.Type, scope *symbols.Scope) {
	switch p := pat.(type) {
	case nil:
		return

	case *ast.WildcardPattern:
		// matches anything, binds nothing

	case *ast.IdentifierPattern:
		scope.Define(p.Value, subject, false)

	case *ast.LiteralPattern:
		litType := literalPatternType(p.Value)
		if litType != nil && !typesystem.Compatible(subject, litType) && !typesystem.Compatible(litType, subject) {
			a.typeMismatch(p.GetToken(), subject, litType, "pattern")
		}

	case *ast.TuplePattern:
		// Tuples surface as destructuring only; element types are not
		// tracked past the subject, so elements bind loosely.
		for _, el := range p.Elements {
			a.bindPattern(el, sentinel(), scope)
		}

	case *ast.ArrayPattern:
		elem := typesystem.Type(sentinel())
		if arr, ok := subject.(typesystem.TArray); ok {
			elem = arr.Elem
		} else if _, generic := subject.(typesystem.TGeneric); !generic {
			a.typeMismatch(p.GetToken(), typesystem.TArray{Elem: typesystem.Int}, subject, "array pattern")
		}
		for _, el := range p.Elements {
			a.bindPattern(el, elem, scope)
		}
		if p.HasRest && p.RestName.Lexeme != "" {
			scope.Define(p.RestName.Lexeme, typesystem.TArray{Elem: elem}, false)
		}

	case *ast.StructPattern:
		st, ok := a.types.LookupStruct(p.Name.Value)
		if !ok {
			a.errorf(diagnostics.ErrA012, p.GetToken(), p.Name.Value)
			return
		}
		if subj, isStruct := subject.(typesystem.TStruct); isStruct && subj.Name != st.Name {
			a.typeMismatch(p.GetToken(), subject, st, "struct pattern")
		}
		for _, field := range p.Fields {
			fieldType, found := st.FieldType(field.Name.Lexeme)
			if !found {
				a.errorf(diagnostics.ErrA001, field.Name, st.Name+"."+field.Name.Lexeme)
				fieldType = sentinel()
			}
			if field.Pattern == nil {
				// Shorthand: Point { x } binds x to the field's type.
				scope.Define(field.Name.Lexeme, fieldType, false)
			} else {
				a.bindPattern(field.Pattern, fieldType, scope)
			}
		}

	case *ast.EnumVariantPattern:
		a.bindEnumVariantPattern(p, subject, scope)

	case *ast.OptionPattern:
		inner := typesystem.Type(sentinel())
		if opt, ok := subject.(typesystem.TOptional); ok {
			inner = opt.Inner
		} else if _, generic := subject.(typesystem.TGeneric); !generic {
			a.typeMismatch(p.GetToken(), typesystem.TOptional{Inner: typesystem.Int}, subject, "option pattern")
		}
		if p.IsSome && p.Inner != nil {
			a.bindPattern(p.Inner, inner, scope)
		}

	case *ast.RangePattern:
		if !typesystem.Int.Equals(subject) && !typesystem.Char.Equals(subject) {
			a.typeMismatch(p.GetToken(), typesystem.Int, subject, "range pattern")
		}

	case *ast.OrPattern:
		// Alternatives bind into the same scope; a well-formed
		// or-pattern binds the same names in each alternative.
		for _, alt := range p.Alternatives {
			a.bindPattern(alt, subject, scope)
		}

	case *ast.GuardPattern:
		a.bindPattern(p.Pattern, subject, scope)
		if p.Guard != nil {
			a.checkCondition(p.Guard, scope)
		}
	}
}

func (a *Analyzer) bindEnumVariantPattern(p *ast.EnumVariantPattern, subject typesystem.Type, scope *symbols.Scope) {
	// Result patterns: Ok(p) / Err(p)
	if result, ok := subject.(typesystem.TResult); ok {
		switch p.Variant.Value {
		case "Ok":
			if len(p.Elements) == 1 {
				a.bindPattern(p.Elements[0], result.Ok, scope)
			}
			return
		case "Err":
			if len(p.Elements) == 1 {
				a.bindPattern(p.Elements[0], result.Err, scope)
			}
			return
		}
	}

	enum, ok := subject.(typesystem.TEnum)
	if !ok {
		// Qualified patterns name their enum; fall back to the registry.
		if p.EnumName != nil {
			if resolved, found := a.types.LookupEnum(p.EnumName.Value); found {
				enum = resolved
				ok = true
			}
		}
		if !ok {
			if _, generic := subject.(typesystem.TGeneric); !generic {
				a.errorf(diagnostics.ErrA003, p.GetToken(),
					"variant pattern "+p.Variant.Value+" does not apply to "+subject.String())
			}
			for _, el := range p.Elements {
				a.bindPattern(el, sentinel(), scope)
			}
			return
		}
	}

	if p.EnumName != nil && p.EnumName.Value != enum.Name {
		a.typeMismatch(p.GetToken(), enum, typesystem.TEnum{Name: p.EnumName.Value}, "enum pattern")
		return
	}

	variant, found := enum.Variant(p.Variant.Value)
	if !found {
		a.errorf(diagnostics.ErrA001, p.Variant.Token, enum.Name+"::"+p.Variant.Value)
		return
	}

	if len(p.Elements) != len(variant.Params) {
		a.errorf(diagnostics.ErrA004, p.GetToken(), enum.Name+"::"+variant.Name,
			len(variant.Params), len(p.Elements))
	}
	for i, el := range p.Elements {
		if i < len(variant.Params) {
			a.bindPattern(el, variant.Params[i], scope)
		} else {
			a.bindPattern(el, sentinel(), scope)
		}
	}
}

func literalPatternType(value interface{}) typesystem.Type {
	switch value.(type) {
	case int64:
		return typesystem.Int
	case float64:
		return typesystem.Float
	case string:
		return typesystem.String
	case rune:
		return typesystem.Char
	case bool:
		return typesystem.Bool
	default:
		return nil
	}
}

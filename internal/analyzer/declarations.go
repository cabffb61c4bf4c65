package analyzer

import (
	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/config"
	"github.com/wynlang/wyn/internal/diagnostics"
	"github.com/wynlang/wyn/internal/typesystem"
)

// declareTypes is pass 0: register every name-introducing construct so
// later passes see forward references. Struct and enum names land in
// the registry first, then field lists resolve, so mutually recursive
// nominal types work without owning pointers.
func (a *Analyzer) declareTypes(program *ast.Program) {
	// First sweep: names only.
	for _, stmt := range program.Statements {
		switch s := unwrapExport(stmt).(type) {
		case *ast.StructStatement:
			if s.IsGeneric() {
				continue
			}
			a.types.Register(s.Name.Value, typesystem.TStruct{Name: s.Name.Value})
		case *ast.EnumStatement:
			a.types.Register(s.Name.Value, typesystem.TEnum{Name: s.Name.Value})
		case *ast.ObjectStatement:
			a.types.Register(s.Name.Value, typesystem.TStruct{Name: s.Name.Value})
		}
	}

	// Second sweep: full declarations.
	for _, stmt := range program.Statements {
		switch s := unwrapExport(stmt).(type) {
		case *ast.StructStatement:
			a.declareStruct(s)
		case *ast.ObjectStatement:
			a.declareObject(s)
		case *ast.EnumStatement:
			a.declareEnum(s)
		case *ast.ExternStatement:
			a.declareExtern(s)
		case *ast.MacroStatement:
			a.declareMacro(s)
		case *ast.ConstStatement:
			a.declareConst(s)
		case *ast.TypeAliasStatement:
			a.types.Register(s.Name.Value, a.buildType(s.Type, nil))
		}
	}
}

func unwrapExport(stmt ast.Statement) ast.Statement {
	if exp, ok := stmt.(*ast.ExportStatement); ok {
		return exp.Decl
	}
	return stmt
}

func (a *Analyzer) declareStruct(s *ast.StructStatement) {
	if s.IsGeneric() {
		params := typeParamSet(s.TypeParams)
		tmpl := &GenericStruct{Decl: s}
		for _, p := range s.TypeParams {
			tmpl.TypeParams = append(tmpl.TypeParams, p.Name.Lexeme)
		}
		for _, f := range s.Fields {
			tmpl.Fields = append(tmpl.Fields, typesystem.StructField{
				Name: f.Name.Lexeme,
				Type: a.buildType(f.Type, params),
			})
		}
		a.generics.RegisterStruct(s.Name.Value, tmpl)
		return
	}

	st := typesystem.TStruct{Name: s.Name.Value}
	for _, f := range s.Fields {
		st.Fields = append(st.Fields, typesystem.StructField{
			Name: f.Name.Lexeme,
			Type: a.buildType(f.Type, nil),
		})
	}
	a.types.Register(st.Name, st)
	a.global.Define(st.Name, st, false)
}

func (a *Analyzer) declareObject(s *ast.ObjectStatement) {
	st := typesystem.TStruct{Name: s.Name.Value}
	for _, f := range s.Fields {
		st.Fields = append(st.Fields, typesystem.StructField{
			Name: f.Name.Lexeme,
			Type: a.buildType(f.Type, nil),
		})
	}
	a.types.Register(st.Name, st)
	a.global.Define(st.Name, st, false)
	// Object methods are registered in pass 1 alongside impl methods.
}

// declareEnum registers the enum type, its variants under bare and
// qualified names, constructor functions for data-carrying variants,
// and the implicit <EnumName>_toString helper.
func (a *Analyzer) declareEnum(s *ast.EnumStatement) {
	enum := typesystem.TEnum{Name: s.Name.Value}
	hasData := false
	for _, v := range s.Variants {
		variant := typesystem.EnumVariant{Name: v.Name.Lexeme}
		for _, paramType := range v.Params {
			variant.Params = append(variant.Params, a.buildType(paramType, nil))
		}
		if len(variant.Params) > 0 {
			hasData = true
		}
		enum.Variants = append(enum.Variants, variant)
	}

	a.types.Register(enum.Name, enum)
	a.global.Define(enum.Name, enum, false)

	for _, v := range enum.Variants {
		// Bare and qualified variant constants: Red, Color::Red
		a.global.Define(v.Name, enum, false)
		a.global.Define(enum.Name+"::"+v.Name, enum, false)

		// Data-carrying enums get a constructor per variant so both
		// payload and nullary cases build tagged values uniformly.
		if hasData {
			ctor := typesystem.TFunc{Params: v.Params, ReturnType: enum}
			if _, err := a.global.DefineFunction(enum.Name+"_"+v.Name, ctor); err != nil {
				a.errorf(diagnostics.ErrA005, s.GetToken(), enum.Name+"_"+v.Name, ctor.String())
			}
		}
	}

	toString := typesystem.TFunc{
		Params:     []typesystem.Type{enum},
		ReturnType: typesystem.String,
	}
	if _, err := a.global.DefineFunction(enum.Name+config.EnumToStringSuffix, toString); err != nil {
		a.errorf(diagnostics.ErrA005, s.GetToken(), enum.Name+config.EnumToStringSuffix, toString.String())
	}
}

func (a *Analyzer) declareExtern(s *ast.ExternStatement) {
	fn := typesystem.TFunc{IsVariadic: s.IsVariadic}
	for _, p := range s.Params {
		fn.Params = append(fn.Params, a.buildType(p.Type, nil))
	}
	if s.ReturnType != nil {
		fn.ReturnType = a.buildType(s.ReturnType, nil)
	} else {
		fn.ReturnType = typesystem.Void
	}

	if _, err := a.global.DefineFunction(s.Name.Value, fn); err != nil {
		a.errorf(diagnostics.ErrA005, s.GetToken(), s.Name.Value, fn.String())
	}
}

// declareMacro registers a macro as a callable function; expansion is a
// later concern.
func (a *Analyzer) declareMacro(s *ast.MacroStatement) {
	fn := typesystem.TFunc{ReturnType: typesystem.Void}
	for _, p := range s.Params {
		if p.Type != nil {
			fn.Params = append(fn.Params, a.buildType(p.Type, nil))
		} else {
			fn.Params = append(fn.Params, typesystem.Int)
		}
	}
	if _, err := a.global.DefineFunction(s.Name.Value, fn); err != nil {
		a.errorf(diagnostics.ErrA005, s.GetToken(), s.Name.Value, fn.String())
	}
}

// declareConst registers a module-level constant; its type is read from
// the literal form of the initializer.
func (a *Analyzer) declareConst(s *ast.ConstStatement) {
	var t typesystem.Type = typesystem.Int
	if s.Type != nil {
		t = a.buildType(s.Type, nil)
	} else if s.Value != nil {
		switch s.Value.(type) {
		case *ast.StringLiteral, *ast.InterpolatedString:
			t = typesystem.String
		case *ast.FloatLiteral:
			t = typesystem.Float
		case *ast.BooleanLiteral:
			t = typesystem.Bool
		case *ast.CharLiteral:
			t = typesystem.Char
		}
	}
	a.global.Define(s.Name.Value, t, false)
}

// declareSignatures is pass 1: resolve every function signature, record
// overload-aware symbols in the global scope, register generic
// templates, traits, and impl methods, and process imports.
func (a *Analyzer) declareSignatures(program *ast.Program) {
	for _, stmt := range program.Statements {
		isExported := false
		inner := stmt
		if exp, ok := stmt.(*ast.ExportStatement); ok {
			isExported = true
			inner = exp.Decl
		}

		switch s := inner.(type) {
		case *ast.FunctionStatement:
			a.declareFunction(s, s.IsPublic || isExported)
		case *ast.ImplStatement:
			a.declareImpl(s)
		case *ast.ObjectStatement:
			for _, m := range s.Methods {
				a.declareMethod(s.Name.Value, m)
			}
		case *ast.TraitStatement:
			a.declareTrait(s)
		case *ast.ImportStatement:
			a.processImport(s, program)
		}
	}
}

func (a *Analyzer) declareFunction(s *ast.FunctionStatement, public bool) {
	if s.IsGeneric() {
		params := typeParamSet(s.TypeParams)
		tmpl := &GenericFunction{Decl: s}
		for _, p := range s.TypeParams {
			tmpl.TypeParams = append(tmpl.TypeParams, p.Name.Lexeme)
		}
		for _, p := range s.Params {
			tmpl.Params = append(tmpl.Params, a.buildType(p.Type, params))
		}
		if s.ReturnType != nil {
			tmpl.ReturnType = a.buildType(s.ReturnType, params)
		} else {
			tmpl.ReturnType = typesystem.Void
		}
		a.generics.RegisterFunction(s.Name.Value, tmpl)
		a.visibility.Register(a.currentModule, s.Name.Value, public)
		return
	}

	fn := a.functionSignature(s)
	if _, err := a.global.DefineFunction(s.Name.Value, fn); err != nil {
		a.errorf(diagnostics.ErrA005, s.GetToken(), s.Name.Value, fn.String())
	}
	a.visibility.Register(a.currentModule, s.Name.Value, public)
}

func (a *Analyzer) functionSignature(s *ast.FunctionStatement) typesystem.TFunc {
	fn := typesystem.TFunc{}
	for _, p := range s.Params {
		if p.Name.Lexeme == "self" {
			continue
		}
		if p.Type != nil {
			fn.Params = append(fn.Params, a.buildType(p.Type, nil))
		} else {
			fn.Params = append(fn.Params, typesystem.Int)
		}
	}
	if s.ReturnType != nil {
		fn.ReturnType = a.buildType(s.ReturnType, nil)
	} else {
		fn.ReturnType = typesystem.Void
	}
	return fn
}

// declareImpl registers each method as TypeName_method so method calls
// on user types resolve through the extension-method path. Trait impls
// are additionally recorded against the trait registry.
func (a *Analyzer) declareImpl(s *ast.ImplStatement) {
	if s.Trait != nil && !a.traits.Exists(s.Trait.Value) {
		a.errorf(diagnostics.ErrA012, s.Trait.Token, s.Trait.Value)
	}

	for _, m := range s.Methods {
		sig := a.declareMethod(s.TypeName.Value, m)
		if s.Trait != nil {
			a.traits.RegisterImpl(s.TypeName.Value, s.Trait.Value, m.Name.Value, sig)
		}
	}

	if s.Trait != nil {
		a.checkTraitImplComplete(s)
	}
}

func (a *Analyzer) declareMethod(typeName string, m *ast.FunctionStatement) typesystem.TFunc {
	receiver, hasReceiver := a.types.Lookup(typeName)
	if !hasReceiver {
		a.errorf(diagnostics.ErrA012, m.GetToken(), typeName)
		receiver = sentinel()
	}

	sig := typesystem.TFunc{}
	// Extension methods carry the receiver as an explicit first
	// parameter at the call boundary.
	sig.Params = append(sig.Params, receiver)
	for _, p := range m.Params {
		if p.Name.Lexeme == "self" {
			continue
		}
		if p.Type != nil {
			sig.Params = append(sig.Params, a.buildType(p.Type, nil))
		} else {
			sig.Params = append(sig.Params, typesystem.Int)
		}
	}
	if m.ReturnType != nil {
		sig.ReturnType = a.buildType(m.ReturnType, nil)
	} else {
		sig.ReturnType = typesystem.Void
	}

	name := typeName + "_" + m.Name.Value
	if _, err := a.global.DefineFunction(name, sig); err != nil {
		a.errorf(diagnostics.ErrA005, m.GetToken(), name, sig.String())
	}
	return sig
}

func (a *Analyzer) declareTrait(s *ast.TraitStatement) {
	var methods []TraitMethodSig
	for _, m := range s.Methods {
		sig := typesystem.TFunc{}
		for _, p := range m.Params {
			if p.Name.Lexeme == "self" {
				continue
			}
			if p.Type != nil {
				sig.Params = append(sig.Params, a.buildType(p.Type, nil))
			} else {
				sig.Params = append(sig.Params, typesystem.Int)
			}
		}
		if m.ReturnType != nil {
			sig.ReturnType = a.buildType(m.ReturnType, nil)
		} else {
			sig.ReturnType = typesystem.Void
		}
		methods = append(methods, TraitMethodSig{Name: m.Name.Lexeme, Type: sig})
	}
	a.traits.Define(s.Name.Value, methods)
}

func (a *Analyzer) checkTraitImplComplete(s *ast.ImplStatement) {
	required, ok := a.traits.Methods(s.Trait.Value)
	if !ok {
		return
	}
	declared := make(map[string]bool, len(s.Methods))
	for _, m := range s.Methods {
		declared[m.Name.Value] = true
	}
	for _, req := range required {
		if !declared[req.Name] {
			a.errorf(diagnostics.ErrA011, s.GetToken(),
				"impl of trait "+s.Trait.Value+" for "+s.TypeName.Value+" is missing method "+req.Name)
		}
	}
}

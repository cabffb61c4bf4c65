package analyzer

import (
	"fmt"

	"github.com/wynlang/wyn/internal/config"
	"github.com/wynlang/wyn/internal/typesystem"
)

// registerBuiltins seeds the global scope with the standard library
// surface from the embedded signature table.
func (a *Analyzer) registerBuiltins() error {
	sigs, err := config.Builtins()
	if err != nil {
		return err
	}

	for _, sig := range sigs {
		fn, err := buildSignature(sig, a.types)
		if err != nil {
			return fmt.Errorf("builtin %s: %w", sig.Name, err)
		}
		if _, err := a.global.DefineFunction(sig.Name, fn); err != nil {
			return fmt.Errorf("builtin %s: %w", sig.Name, err)
		}
	}
	return nil
}

func buildSignature(sig config.BuiltinSignature, reg *typesystem.Registry) (typesystem.TFunc, error) {
	fn := typesystem.TFunc{IsVariadic: sig.Variadic}
	for _, p := range sig.Params {
		t, err := typesystem.Parse(p, reg)
		if err != nil {
			return fn, err
		}
		fn.Params = append(fn.Params, t)
	}
	ret, err := typesystem.Parse(sig.Return, reg)
	if err != nil {
		return fn, err
	}
	fn.ReturnType = ret
	return fn, nil
}

// MethodKey identifies one method on a built-in receiver kind.
type MethodKey struct {
	Receiver string
	Name     string
}

// MethodSig is the dispatch-table verdict for a method call: the
// signature, the backing function, and the receiver-passing convention.
type MethodSig struct {
	Params     []typesystem.Type
	ReturnType typesystem.Type
	CFunc      string
	ByRef      bool
}

// MethodTable is the per-receiver-kind method surface, loaded from the
// embedded table rather than hand-coded switches.
type MethodTable struct {
	sigs map[MethodKey]MethodSig
}

func loadMethodTable(reg *typesystem.Registry) (*MethodTable, error) {
	entries, err := config.Methods()
	if err != nil {
		return nil, err
	}

	table := &MethodTable{sigs: make(map[MethodKey]MethodSig)}
	for _, e := range entries {
		sig := MethodSig{CFunc: e.CFunc, ByRef: e.ByRef}
		for _, p := range e.Params {
			t, err := typesystem.Parse(p, reg)
			if err != nil {
				return nil, fmt.Errorf("method %s.%s: %w", e.Receiver, e.Name, err)
			}
			sig.Params = append(sig.Params, t)
		}
		ret, err := typesystem.Parse(e.Return, reg)
		if err != nil {
			return nil, fmt.Errorf("method %s.%s: %w", e.Receiver, e.Name, err)
		}
		sig.ReturnType = ret
		table.sigs[MethodKey{Receiver: e.Receiver, Name: e.Name}] = sig
	}
	return table, nil
}

// Lookup resolves a method for a receiver kind.
func (t *MethodTable) Lookup(receiver, name string) (MethodSig, bool) {
	sig, ok := t.sigs[MethodKey{Receiver: receiver, Name: name}]
	return sig, ok
}

// ReceiverKind maps a receiver type to its dispatch-table key; empty
// when the type has no built-in method surface.
func ReceiverKind(t typesystem.Type) string {
	switch typ := t.(type) {
	case typesystem.TPrim:
		switch typ.Name {
		case "Int", "Float", "String", "Bool":
			return typ.Name
		}
		return ""
	case typesystem.TArray:
		return "Array"
	case typesystem.TMap:
		return "Map"
	case typesystem.TSet:
		return "Set"
	case typesystem.TOptional:
		return "Optional"
	case typesystem.TResult:
		return "Result"
	case typesystem.TStruct:
		if typ.Name == "Json" {
			return "Json"
		}
		return ""
	default:
		return ""
	}
}

// receiverBindings maps dispatch-table placeholders to the concrete
// receiver's element/inner types, so generic method signatures
// specialize per call.
func receiverBindings(receiver typesystem.Type) map[string]typesystem.Type {
	bindings := make(map[string]typesystem.Type)
	switch r := receiver.(type) {
	case typesystem.TArray:
		bindings["a"] = r.Elem
	case typesystem.TSet:
		bindings["a"] = r.Elem
	case typesystem.TMap:
		bindings["a"] = r.Key
		bindings["b"] = r.Value
	case typesystem.TOptional:
		bindings["a"] = r.Inner
	case typesystem.TResult:
		bindings["a"] = r.Ok
		bindings["b"] = r.Err
	}
	return bindings
}

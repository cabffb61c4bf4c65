package symbols

import (
	"fmt"
	"strings"

	"github.com/wynlang/wyn/internal/typesystem"
)

// Symbol is one named binding: a variable, constant, function overload,
// or registered type constant. Functions sharing a name in one scope
// form an overload group; MangledName records the emission name chosen
// during overload resolution.
type Symbol struct {
	Name        string
	Type        typesystem.Type
	IsMutable   bool
	MangledName string
}

// Scope maps identifiers to symbols and chains to its parent. Lookup
// walks outward; insertion always targets the receiver.
type Scope struct {
	store map[string][]*Symbol
	outer *Scope
}

func NewScope() *Scope {
	return &Scope{store: make(map[string][]*Symbol)}
}

func NewEnclosedScope(outer *Scope) *Scope {
	s := NewScope()
	s.outer = outer
	return s
}

// Outer returns the parent scope, nil at the global level.
func (s *Scope) Outer() *Scope { return s.outer }

// Define inserts a variable or constant binding into this scope,
// shadowing any same-named binding in outer scopes. A same-scope
// redefinition replaces the previous binding.
func (s *Scope) Define(name string, t typesystem.Type, mutable bool) *Symbol {
	sym := &Symbol{Name: name, Type: t, IsMutable: mutable}
	s.store[name] = []*Symbol{sym}
	return sym
}

// DefineFunction inserts a function symbol, appending to the overload
// group when the signature differs from every existing overload.
// An identical signature is a redefinition.
func (s *Scope) DefineFunction(name string, fn typesystem.TFunc) (*Symbol, error) {
	group := s.store[name]
	for _, existing := range group {
		if existingFn, ok := existing.Type.(typesystem.TFunc); ok {
			if typesystem.SignaturesEqual(existingFn, fn) {
				return nil, fmt.Errorf("duplicate signature %s for '%s'", fn, name)
			}
		}
	}
	sym := &Symbol{Name: name, Type: fn, MangledName: MangleName(name, fn)}
	s.store[name] = append(group, sym)
	return sym, nil
}

// Lookup resolves name by walking the scope chain and returns the first
// symbol of the nearest group.
func (s *Scope) Lookup(name string) (*Symbol, bool) {
	for scope := s; scope != nil; scope = scope.outer {
		if group, ok := scope.store[name]; ok && len(group) > 0 {
			return group[0], true
		}
	}
	return nil, false
}

// LookupOverloads resolves name and returns the whole overload group of
// the nearest scope that defines it.
func (s *Scope) LookupOverloads(name string) []*Symbol {
	for scope := s; scope != nil; scope = scope.outer {
		if group, ok := scope.store[name]; ok && len(group) > 0 {
			return group
		}
	}
	return nil
}

// LookupLocal resolves name in this scope only.
func (s *Scope) LookupLocal(name string) (*Symbol, bool) {
	group, ok := s.store[name]
	if !ok || len(group) == 0 {
		return nil, false
	}
	return group[0], true
}

// IsDefined reports whether name resolves anywhere in the chain.
func (s *Scope) IsDefined(name string) bool {
	_, ok := s.Lookup(name)
	return ok
}

// AllNames returns every name visible from this scope, innermost first.
// Used for fuzzy suggestions on undefined identifiers.
func (s *Scope) AllNames() []string {
	seen := make(map[string]bool)
	var names []string
	for scope := s; scope != nil; scope = scope.outer {
		for name := range scope.store {
			if !seen[name] {
				seen[name] = true
				names = append(names, name)
			}
		}
	}
	return names
}

// LocalSymbols returns the symbols defined directly in this scope.
func (s *Scope) LocalSymbols() map[string][]*Symbol {
	return s.store
}

// MangleName derives the emission name for an overload: the base name
// followed by each parameter type, with punctuation flattened.
func MangleName(name string, fn typesystem.TFunc) string {
	var b strings.Builder
	b.WriteString(name)
	for _, p := range fn.Params {
		b.WriteByte('_')
		b.WriteString(flattenTypeName(p.String()))
	}
	return b.String()
}

func flattenTypeName(s string) string {
	replacer := strings.NewReplacer(
		"[", "Array_", "]", "",
		"<", "_", ">", "",
		", ", "_", ",", "_",
		" ", "", "?", "_opt",
		"(", "fn_", ")", "", "->", "_to_",
		"|", "_or_",
	)
	return replacer.Replace(s)
}

package analyzer

import (
	"github.com/wynlang/wyn/internal/ast"
	"github.com/wynlang/wyn/internal/typesystem"
)

// TraitMethodSig is one declared method of a trait.
type TraitMethodSig struct {
	Name string
	Type typesystem.TFunc
}

// TraitRegistry maps trait names to their method signatures and records
// which (type, trait) pairs carry an implementation.
type TraitRegistry struct {
	traits map[string][]TraitMethodSig
	// impls: type name -> trait name -> method name -> signature
	impls map[string]map[string]map[string]typesystem.TFunc
}

func NewTraitRegistry() *TraitRegistry {
	return &TraitRegistry{
		traits: make(map[string][]TraitMethodSig),
		impls:  make(map[string]map[string]map[string]typesystem.TFunc),
	}
}

func (r *TraitRegistry) Define(name string, methods []TraitMethodSig) {
	r.traits[name] = methods
}

func (r *TraitRegistry) Exists(name string) bool {
	_, ok := r.traits[name]
	return ok
}

func (r *TraitRegistry) Methods(name string) ([]TraitMethodSig, bool) {
	m, ok := r.traits[name]
	return m, ok
}

func (r *TraitRegistry) RegisterImpl(typeName, traitName, method string, sig typesystem.TFunc) {
	if r.impls[typeName] == nil {
		r.impls[typeName] = make(map[string]map[string]typesystem.TFunc)
	}
	if r.impls[typeName][traitName] == nil {
		r.impls[typeName][traitName] = make(map[string]typesystem.TFunc)
	}
	r.impls[typeName][traitName][method] = sig
}

// Implements reports whether the named type carries an implementation
// of the named trait.
func (r *TraitRegistry) Implements(typeName, traitName string) bool {
	traits, ok := r.impls[typeName]
	if !ok {
		return false
	}
	_, ok = traits[traitName]
	return ok
}

// GenericFunction is a registered generic function template.
type GenericFunction struct {
	Decl       *ast.FunctionStatement
	TypeParams []string
	Params     []typesystem.Type // with TGeneric placeholders
	ReturnType typesystem.Type
}

// GenericStruct is a registered generic struct template.
type GenericStruct struct {
	Decl       *ast.StructStatement
	TypeParams []string
	Fields     []typesystem.StructField // with TGeneric placeholders
}

// Instantiation records one observed (template, concrete args) pair so
// a later pass can monomorphize.
type Instantiation struct {
	Template string
	Args     []typesystem.Type
}

// GenericRegistry stores generic templates and every instantiation
// observed during analysis.
type GenericRegistry struct {
	functions map[string]*GenericFunction
	structs   map[string]*GenericStruct

	instantiations []Instantiation
	seen           map[string]bool
}

func NewGenericRegistry() *GenericRegistry {
	return &GenericRegistry{
		functions: make(map[string]*GenericFunction),
		structs:   make(map[string]*GenericStruct),
		seen:      make(map[string]bool),
	}
}

func (r *GenericRegistry) RegisterFunction(name string, fn *GenericFunction) {
	r.functions[name] = fn
}

func (r *GenericRegistry) Function(name string) (*GenericFunction, bool) {
	fn, ok := r.functions[name]
	return fn, ok
}

func (r *GenericRegistry) RegisterStruct(name string, s *GenericStruct) {
	r.structs[name] = s
}

func (r *GenericRegistry) Struct(name string) (*GenericStruct, bool) {
	s, ok := r.structs[name]
	return s, ok
}

// RecordInstantiation remembers a (template, args) pair once.
func (r *GenericRegistry) RecordInstantiation(template string, args []typesystem.Type) {
	key := template
	for _, arg := range args {
		key += "|" + arg.String()
	}
	if r.seen[key] {
		return
	}
	r.seen[key] = true
	r.instantiations = append(r.instantiations, Instantiation{Template: template, Args: args})
}

// Instantiations returns every recorded pair in observation order.
func (r *GenericRegistry) Instantiations() []Instantiation {
	return r.instantiations
}

// ImportEntry is one registered import: the short name call sites use,
// the full path, and the line of the import statement.
type ImportEntry struct {
	Short string
	Path  string
	Line  int
}

// ImportTable tracks imports per compilation so short-name collisions
// can be reported lazily at use sites.
type ImportTable struct {
	entries []ImportEntry
}

func NewImportTable() *ImportTable {
	return &ImportTable{}
}

func (t *ImportTable) Register(short, path string, line int) {
	t.entries = append(t.entries, ImportEntry{Short: short, Path: path, Line: line})
}

// Ambiguous reports whether short resolves to two distinct full paths,
// returning both entries for the diagnostic. Duplicate imports of the
// same path are not ambiguous.
func (t *ImportTable) Ambiguous(short string) (ImportEntry, ImportEntry, bool) {
	var first *ImportEntry
	for i := range t.entries {
		e := &t.entries[i]
		if e.Short != short {
			continue
		}
		if first == nil {
			first = e
			continue
		}
		if e.Path != first.Path {
			return *first, *e, true
		}
	}
	return ImportEntry{}, ImportEntry{}, false
}

// Lookup returns the first registered entry for a short name; it does
// not check for ambiguity (see Ambiguous).
func (t *ImportTable) Lookup(short string) (ImportEntry, bool) {
	for _, e := range t.entries {
		if e.Short == short {
			return e, true
		}
	}
	return ImportEntry{}, false
}

// VisibilityTable records (module, function) -> public.
type VisibilityTable struct {
	entries map[string]map[string]bool
}

func NewVisibilityTable() *VisibilityTable {
	return &VisibilityTable{entries: make(map[string]map[string]bool)}
}

func (t *VisibilityTable) Register(module, fn string, public bool) {
	if t.entries[module] == nil {
		t.entries[module] = make(map[string]bool)
	}
	t.entries[module][fn] = public
}

// IsPublic reports the visibility of a function. The second result is
// false when the pair was never registered.
func (t *VisibilityTable) IsPublic(module, fn string) (bool, bool) {
	fns, ok := t.entries[module]
	if !ok {
		return false, false
	}
	public, ok := fns[fn]
	return public, ok
}

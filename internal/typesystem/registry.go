package typesystem

// Registry is the store of named types for a compilation unit. Nominal
// types reference each other by name through it, so recursive structs
// need no owning pointers between Type values: a field stores a handle
// that resolves here.
type Registry struct {
	types map[string]Type
}

func NewRegistry() *Registry {
	r := &Registry{types: make(map[string]Type)}
	r.seedBuiltins()
	return r
}

func (r *Registry) seedBuiltins() {
	r.types["Int"] = Int
	r.types["Float"] = Float
	r.types["String"] = String
	r.types["Bool"] = Bool
	r.types["Void"] = Void
	r.types["Char"] = Char
}

// Register stores t under name, replacing any previous entry. Pass 0
// re-registers structs once their field lists resolve.
func (r *Registry) Register(name string, t Type) {
	r.types[name] = t
}

// Lookup resolves a type handle by name.
func (r *Registry) Lookup(name string) (Type, bool) {
	t, ok := r.types[name]
	return t, ok
}

// LookupStruct resolves name and narrows to a struct type.
func (r *Registry) LookupStruct(name string) (TStruct, bool) {
	t, ok := r.types[name]
	if !ok {
		return TStruct{}, false
	}
	s, ok := t.(TStruct)
	return s, ok
}

// LookupEnum resolves name and narrows to an enum type.
func (r *Registry) LookupEnum(name string) (TEnum, bool) {
	t, ok := r.types[name]
	if !ok {
		return TEnum{}, false
	}
	e, ok := t.(TEnum)
	return e, ok
}

// Names returns every registered name. Used for error suggestions.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	return names
}

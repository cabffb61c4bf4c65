package typesystem

import (
	"fmt"
	"sort"
	"strings"
)

// Type is the interface for all types in our system.
type Type interface {
	String() string
	Equals(Type) bool
}

// TPrim represents a primitive built-in type (Int, Float, String, Bool, Void, Char).
type TPrim struct {
	Name string
}

func (t TPrim) String() string { return t.Name }

func (t TPrim) Equals(other Type) bool {
	o, ok := other.(TPrim)
	return ok && o.Name == t.Name
}

// Singleton primitives. Comparisons go through Equals, so sharing these
// values is a convenience, not a requirement.
var (
	Int    = TPrim{Name: "Int"}
	Float  = TPrim{Name: "Float"}
	String = TPrim{Name: "String"}
	Bool   = TPrim{Name: "Bool"}
	Void   = TPrim{Name: "Void"}
	Char   = TPrim{Name: "Char"}
)

// TArray represents an array type [T].
type TArray struct {
	Elem Type
}

func (t TArray) String() string { return fmt.Sprintf("[%s]", t.Elem) }

func (t TArray) Equals(other Type) bool {
	o, ok := other.(TArray)
	return ok && t.Elem.Equals(o.Elem)
}

// TMap represents a map type Map<K, V>.
type TMap struct {
	Key   Type
	Value Type
}

func (t TMap) String() string { return fmt.Sprintf("Map<%s, %s>", t.Key, t.Value) }

func (t TMap) Equals(other Type) bool {
	o, ok := other.(TMap)
	return ok && t.Key.Equals(o.Key) && t.Value.Equals(o.Value)
}

// TSet represents a set type Set<T>.
type TSet struct {
	Elem Type
}

func (t TSet) String() string { return fmt.Sprintf("Set<%s>", t.Elem) }

func (t TSet) Equals(other Type) bool {
	o, ok := other.(TSet)
	return ok && t.Elem.Equals(o.Elem)
}

// TOptional represents an optional type T?.
// Optionals never nest implicitly; the analyzer constructs them only
// through Some/None and explicit annotations.
type TOptional struct {
	Inner Type
}

func (t TOptional) String() string { return fmt.Sprintf("%s?", t.Inner) }

func (t TOptional) Equals(other Type) bool {
	o, ok := other.(TOptional)
	return ok && t.Inner.Equals(o.Inner)
}

// TResult represents Result<T, E>.
type TResult struct {
	Ok  Type
	Err Type
}

func (t TResult) String() string { return fmt.Sprintf("Result<%s, %s>", t.Ok, t.Err) }

func (t TResult) Equals(other Type) bool {
	o, ok := other.(TResult)
	return ok && t.Ok.Equals(o.Ok) && t.Err.Equals(o.Err)
}

// TUnion represents a structural union type T | U | V.
// Members are normalized: flattened, deduplicated, and sorted, so
// equality is order-irrelevant.
type TUnion struct {
	Members []Type
}

func (t TUnion) String() string {
	parts := make([]string, len(t.Members))
	for i, m := range t.Members {
		parts[i] = m.String()
	}
	return strings.Join(parts, " | ")
}

func (t TUnion) Equals(other Type) bool {
	o, ok := other.(TUnion)
	if !ok || len(o.Members) != len(t.Members) {
		return false
	}
	// Members are kept sorted by NormalizeUnion, so positional comparison holds.
	for i, m := range t.Members {
		if !m.Equals(o.Members[i]) {
			return false
		}
	}
	return true
}

// NormalizeUnion flattens nested unions, removes duplicates, and sorts
// members. A single surviving member collapses to that member.
func NormalizeUnion(members []Type) Type {
	flat := []Type{}
	for _, m := range members {
		if u, ok := m.(TUnion); ok {
			flat = append(flat, u.Members...)
		} else {
			flat = append(flat, m)
		}
	}

	seen := make(map[string]bool)
	unique := []Type{}
	for _, m := range flat {
		s := m.String()
		if !seen[s] {
			seen[s] = true
			unique = append(unique, m)
		}
	}

	if len(unique) == 1 {
		return unique[0]
	}

	sort.Slice(unique, func(i, j int) bool {
		return unique[i].String() < unique[j].String()
	})

	return TUnion{Members: unique}
}

// StructField is one named field of a struct type.
type StructField struct {
	Name string
	Type Type
}

// TStruct represents a nominal struct type. Identity is the name; the
// field list is carried for member lookup, never for equality.
type TStruct struct {
	Name   string
	Fields []StructField
}

func (t TStruct) String() string { return t.Name }

func (t TStruct) Equals(other Type) bool {
	o, ok := other.(TStruct)
	return ok && o.Name == t.Name
}

// FieldType returns the type of the named field.
func (t TStruct) FieldType(name string) (Type, bool) {
	for _, f := range t.Fields {
		if f.Name == name {
			return f.Type, true
		}
	}
	return nil, false
}

// EnumVariant is one variant of an enum; Params is empty for nullary
// variants and holds the payload types for data-carrying ones.
type EnumVariant struct {
	Name   string
	Params []Type
}

// TEnum represents a nominal enum type with its declared variants.
type TEnum struct {
	Name     string
	Variants []EnumVariant
}

func (t TEnum) String() string { return t.Name }

func (t TEnum) Equals(other Type) bool {
	o, ok := other.(TEnum)
	return ok && o.Name == t.Name
}

// Variant returns the named variant.
func (t TEnum) Variant(name string) (EnumVariant, bool) {
	for _, v := range t.Variants {
		if v.Name == name {
			return v, true
		}
	}
	return EnumVariant{}, false
}

// TFunc represents a function type (T1, T2) -> R.
// Anonymous function types compare structurally.
type TFunc struct {
	Params     []Type
	ReturnType Type
	IsVariadic bool
}

func (t TFunc) String() string {
	params := make([]string, len(t.Params))
	for i, p := range t.Params {
		params[i] = p.String()
	}
	if t.IsVariadic {
		if len(params) > 0 {
			params[len(params)-1] += "..."
		} else {
			params = append(params, "...")
		}
	}
	return fmt.Sprintf("(%s) -> %s", strings.Join(params, ", "), t.ReturnType)
}

func (t TFunc) Equals(other Type) bool {
	o, ok := other.(TFunc)
	if !ok || len(o.Params) != len(t.Params) || o.IsVariadic != t.IsVariadic {
		return false
	}
	for i, p := range t.Params {
		if !p.Equals(o.Params[i]) {
			return false
		}
	}
	return t.ReturnType.Equals(o.ReturnType)
}

// TGeneric is a placeholder type parameter inside a generic template.
// It unifies with anything during instantiation and compatibility checks.
type TGeneric struct {
	Name string
}

func (t TGeneric) String() string { return t.Name }

func (t TGeneric) Equals(other Type) bool {
	o, ok := other.(TGeneric)
	return ok && o.Name == t.Name
}

// IsNumeric reports whether t is Int or Float.
func IsNumeric(t Type) bool {
	return Int.Equals(t) || Float.Equals(t)
}

// IsBoolLike reports whether t satisfies boolean contexts. Comparison
// operators produce Int at runtime, so Int passes.
func IsBoolLike(t Type) bool {
	return Bool.Equals(t) || Int.Equals(t)
}

// Substitute replaces generic placeholders in t according to bindings.
// Types without placeholders are returned unchanged.
func Substitute(t Type, bindings map[string]Type) Type {
	switch typ := t.(type) {
	case TGeneric:
		if bound, ok := bindings[typ.Name]; ok {
			return bound
		}
		return typ
	case TArray:
		return TArray{Elem: Substitute(typ.Elem, bindings)}
	case TMap:
		return TMap{Key: Substitute(typ.Key, bindings), Value: Substitute(typ.Value, bindings)}
	case TSet:
		return TSet{Elem: Substitute(typ.Elem, bindings)}
	case TOptional:
		return TOptional{Inner: Substitute(typ.Inner, bindings)}
	case TResult:
		return TResult{Ok: Substitute(typ.Ok, bindings), Err: Substitute(typ.Err, bindings)}
	case TUnion:
		members := make([]Type, len(typ.Members))
		for i, m := range typ.Members {
			members[i] = Substitute(m, bindings)
		}
		return NormalizeUnion(members)
	case TFunc:
		params := make([]Type, len(typ.Params))
		for i, p := range typ.Params {
			params[i] = Substitute(p, bindings)
		}
		return TFunc{
			Params:     params,
			ReturnType: Substitute(typ.ReturnType, bindings),
			IsVariadic: typ.IsVariadic,
		}
	case TStruct:
		fields := make([]StructField, len(typ.Fields))
		for i, f := range typ.Fields {
			fields[i] = StructField{Name: f.Name, Type: Substitute(f.Type, bindings)}
		}
		return TStruct{Name: typ.Name, Fields: fields}
	default:
		return t
	}
}

// CollectGenerics appends the names of generic placeholders appearing in
// t, outermost first, skipping names already seen.
func CollectGenerics(t Type, seen map[string]bool, out *[]string) {
	switch typ := t.(type) {
	case TGeneric:
		if !seen[typ.Name] {
			seen[typ.Name] = true
			*out = append(*out, typ.Name)
		}
	case TArray:
		CollectGenerics(typ.Elem, seen, out)
	case TMap:
		CollectGenerics(typ.Key, seen, out)
		CollectGenerics(typ.Value, seen, out)
	case TSet:
		CollectGenerics(typ.Elem, seen, out)
	case TOptional:
		CollectGenerics(typ.Inner, seen, out)
	case TResult:
		CollectGenerics(typ.Ok, seen, out)
		CollectGenerics(typ.Err, seen, out)
	case TUnion:
		for _, m := range typ.Members {
			CollectGenerics(m, seen, out)
		}
	case TFunc:
		for _, p := range typ.Params {
			CollectGenerics(p, seen, out)
		}
		CollectGenerics(typ.ReturnType, seen, out)
	}
}

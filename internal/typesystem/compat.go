package typesystem

// Compatible reports whether a value of type actual may flow into a slot
// expecting expected. The rules are deliberately narrow:
//
//   - equal types (per the per-kind equality rules)
//   - Int widens to Float
//   - Bool and Int satisfy each other (comparisons produce Int at
//     runtime but fill Bool contexts)
//   - a generic placeholder on either side matches anything
//
// Optionals never absorb their inner type: assigning T to T? (or the
// reverse) is reported by the caller as a nullability error, not fixed
// up here.
func Compatible(expected, actual Type) bool {
	if expected == nil || actual == nil {
		return false
	}
	if _, ok := expected.(TGeneric); ok {
		return true
	}
	if _, ok := actual.(TGeneric); ok {
		return true
	}
	if expected.Equals(actual) {
		return true
	}
	if Float.Equals(expected) && Int.Equals(actual) {
		return true
	}
	if IsBoolLike(expected) && IsBoolLike(actual) {
		return true
	}

	switch exp := expected.(type) {
	case TOptional:
		// None literals surface as Optional with a generic inner.
		if act, ok := actual.(TOptional); ok {
			return Compatible(exp.Inner, act.Inner)
		}
	case TResult:
		if act, ok := actual.(TResult); ok {
			return Compatible(exp.Ok, act.Ok) && Compatible(exp.Err, act.Err)
		}
	case TArray:
		if act, ok := actual.(TArray); ok {
			return Compatible(exp.Elem, act.Elem)
		}
	case TMap:
		if act, ok := actual.(TMap); ok {
			return Compatible(exp.Key, act.Key) && Compatible(exp.Value, act.Value)
		}
	case TSet:
		if act, ok := actual.(TSet); ok {
			return Compatible(exp.Elem, act.Elem)
		}
	case TFunc:
		if act, ok := actual.(TFunc); ok {
			if len(exp.Params) != len(act.Params) || exp.IsVariadic != act.IsVariadic {
				return false
			}
			for i := range exp.Params {
				if !Compatible(exp.Params[i], act.Params[i]) {
					return false
				}
			}
			return Compatible(exp.ReturnType, act.ReturnType)
		}
	case TUnion:
		// A union absorbs any of its members.
		for _, m := range exp.Members {
			if Compatible(m, actual) {
				return true
			}
		}
		if act, ok := actual.(TUnion); ok {
			for _, m := range act.Members {
				if !Compatible(expected, m) {
					return false
				}
			}
			return true
		}
	}

	return false
}

// Bind matches a template type against a concrete type and records the
// first binding observed for each generic placeholder. Later occurrences
// of an already-bound placeholder are not revisited.
func Bind(template, concrete Type, bindings map[string]Type) {
	switch tmpl := template.(type) {
	case TGeneric:
		if _, bound := bindings[tmpl.Name]; !bound && concrete != nil {
			bindings[tmpl.Name] = concrete
		}
	case TArray:
		if c, ok := concrete.(TArray); ok {
			Bind(tmpl.Elem, c.Elem, bindings)
		}
	case TMap:
		if c, ok := concrete.(TMap); ok {
			Bind(tmpl.Key, c.Key, bindings)
			Bind(tmpl.Value, c.Value, bindings)
		}
	case TSet:
		if c, ok := concrete.(TSet); ok {
			Bind(tmpl.Elem, c.Elem, bindings)
		}
	case TOptional:
		if c, ok := concrete.(TOptional); ok {
			Bind(tmpl.Inner, c.Inner, bindings)
		}
	case TResult:
		if c, ok := concrete.(TResult); ok {
			Bind(tmpl.Ok, c.Ok, bindings)
			Bind(tmpl.Err, c.Err, bindings)
		}
	case TFunc:
		if c, ok := concrete.(TFunc); ok {
			for i := range tmpl.Params {
				if i < len(c.Params) {
					Bind(tmpl.Params[i], c.Params[i], bindings)
				}
			}
			Bind(tmpl.ReturnType, c.ReturnType, bindings)
		}
	}
}

// SignaturesEqual reports whether two function types declare the same
// parameter list. Return types do not participate: overloads may not
// differ by return type alone.
func SignaturesEqual(a, b TFunc) bool {
	if len(a.Params) != len(b.Params) || a.IsVariadic != b.IsVariadic {
		return false
	}
	for i := range a.Params {
		if !a.Params[i].Equals(b.Params[i]) {
			return false
		}
	}
	return true
}

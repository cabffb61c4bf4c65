package symbols

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wynlang/wyn/internal/typesystem"
)

func TestLookupWalksParents(t *testing.T) {
	global := NewScope()
	global.Define("x", typesystem.Int, true)

	inner := NewEnclosedScope(global)
	sym, ok := inner.Lookup("x")
	require.True(t, ok)
	assert.True(t, typesystem.Int.Equals(sym.Type))

	// Insertion targets the innermost scope and shadows.
	inner.Define("x", typesystem.String, true)
	sym, _ = inner.Lookup("x")
	assert.True(t, typesystem.String.Equals(sym.Type))

	// The outer binding is untouched.
	sym, _ = global.Lookup("x")
	assert.True(t, typesystem.Int.Equals(sym.Type))
}

func TestOverloadInsertion(t *testing.T) {
	scope := NewScope()

	intFn := typesystem.TFunc{Params: []typesystem.Type{typesystem.Int}, ReturnType: typesystem.Int}
	floatFn := typesystem.TFunc{Params: []typesystem.Type{typesystem.Float}, ReturnType: typesystem.Int}

	_, err := scope.DefineFunction("f", intFn)
	require.NoError(t, err)
	_, err = scope.DefineFunction("f", floatFn)
	require.NoError(t, err, "differing signatures extend the overload group")

	overloads := scope.LookupOverloads("f")
	assert.Len(t, overloads, 2)

	// No two overloads may share a signature; return type is not enough.
	dup := typesystem.TFunc{Params: []typesystem.Type{typesystem.Int}, ReturnType: typesystem.Float}
	_, err = scope.DefineFunction("f", dup)
	assert.Error(t, err)
	assert.Len(t, scope.LookupOverloads("f"), 2)
}

func TestMangledNames(t *testing.T) {
	scope := NewScope()
	fn := typesystem.TFunc{Params: []typesystem.Type{typesystem.Int, typesystem.String}, ReturnType: typesystem.Void}
	sym, err := scope.DefineFunction("f", fn)
	require.NoError(t, err)
	assert.Equal(t, "f_Int_String", sym.MangledName)
}

func TestAllNames(t *testing.T) {
	global := NewScope()
	global.Define("alpha", typesystem.Int, true)
	inner := NewEnclosedScope(global)
	inner.Define("beta", typesystem.Int, true)

	names := inner.AllNames()
	assert.Contains(t, names, "alpha")
	assert.Contains(t, names, "beta")
}

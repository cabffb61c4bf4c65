package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinsTableLoads(t *testing.T) {
	sigs, err := Builtins()
	require.NoError(t, err)
	assert.Greater(t, len(sigs), 150, "the standard library surface is substantial")

	byName := make(map[string]BuiltinSignature, len(sigs))
	for _, sig := range sigs {
		_, dup := byName[sig.Name]
		assert.False(t, dup, "duplicate builtin %s", sig.Name)
		byName[sig.Name] = sig
	}

	print, ok := byName["print"]
	require.True(t, ok)
	assert.True(t, print.Variadic)
	assert.Equal(t, "Void", print.Return)

	read, ok := byName["File::read"]
	require.True(t, ok)
	assert.Equal(t, []string{"String"}, read.Params)
	assert.Equal(t, "String", read.Return)
}

func TestMethodTableLoads(t *testing.T) {
	methods, err := Methods()
	require.NoError(t, err)
	assert.Greater(t, len(methods), 80)

	found := false
	for _, m := range methods {
		if m.Receiver == "Array" && m.Name == "push" {
			found = true
			assert.Equal(t, "vec_push", m.CFunc)
			assert.True(t, m.ByRef, "push mutates its receiver")
		}
	}
	assert.True(t, found, "Array.push present in the dispatch table")
}

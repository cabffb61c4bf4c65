package typesystem

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringRoundTrip(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Point", TStruct{Name: "Point", Fields: []StructField{{Name: "x", Type: Int}}})

	cases := []Type{
		Int,
		Float,
		String,
		Bool,
		Void,
		Char,
		TArray{Elem: Int},
		TArray{Elem: TArray{Elem: String}},
		TMap{Key: String, Value: Int},
		TSet{Elem: Float},
		TOptional{Inner: Int},
		TOptional{Inner: TArray{Elem: String}},
		TResult{Ok: Int, Err: String},
		TFunc{Params: []Type{Int, String}, ReturnType: Bool},
		TFunc{Params: []Type{}, ReturnType: Void},
		NormalizeUnion([]Type{Int, String}),
		TGeneric{Name: "t"},
	}

	for _, typ := range cases {
		parsed, err := Parse(typ.String(), reg)
		require.NoError(t, err, "parsing %q", typ.String())
		assert.True(t, typ.Equals(parsed), "round trip of %q produced %q", typ.String(), parsed.String())
	}
}

func TestParseNominal(t *testing.T) {
	reg := NewRegistry()
	reg.Register("Point", TStruct{Name: "Point", Fields: []StructField{{Name: "x", Type: Int}}})

	parsed, err := Parse("Point", reg)
	require.NoError(t, err)
	st, ok := parsed.(TStruct)
	require.True(t, ok)
	assert.Equal(t, "Point", st.Name)
	// The registry entry carries the field list.
	fieldType, found := st.FieldType("x")
	require.True(t, found)
	assert.True(t, Int.Equals(fieldType))
}

func TestNominalVsStructuralEquality(t *testing.T) {
	// Nominal types compare by name, never by shape.
	a := TStruct{Name: "A", Fields: []StructField{{Name: "x", Type: Int}}}
	b := TStruct{Name: "B", Fields: []StructField{{Name: "x", Type: Int}}}
	assert.False(t, a.Equals(b))
	assert.True(t, a.Equals(TStruct{Name: "A"}))

	e1 := TEnum{Name: "Color"}
	e2 := TEnum{Name: "Shape"}
	assert.False(t, e1.Equals(e2))

	// Structural types compare by shape.
	f1 := TFunc{Params: []Type{Int}, ReturnType: Bool}
	f2 := TFunc{Params: []Type{Int}, ReturnType: Bool}
	assert.True(t, f1.Equals(f2))
}

func TestUnionNormalization(t *testing.T) {
	u1 := NormalizeUnion([]Type{Int, String, Int})
	u2 := NormalizeUnion([]Type{String, Int})
	assert.True(t, u1.Equals(u2), "unions are deduplicated and order-irrelevant")

	// A single surviving member collapses.
	collapsed := NormalizeUnion([]Type{Int, Int})
	assert.True(t, Int.Equals(collapsed))

	// Nested unions flatten.
	nested := NormalizeUnion([]Type{u1, Bool})
	union, ok := nested.(TUnion)
	require.True(t, ok)
	assert.Len(t, union.Members, 3)
}

func TestCompatible(t *testing.T) {
	assert.True(t, Compatible(Int, Int))
	assert.True(t, Compatible(Float, Int), "Int widens to Float")
	assert.False(t, Compatible(Int, Float), "Float does not narrow to Int")
	assert.True(t, Compatible(Bool, Int), "comparisons return Int but satisfy Bool contexts")
	assert.True(t, Compatible(Int, Bool))
	assert.False(t, Compatible(String, Int))

	// Generic placeholders match anything.
	assert.True(t, Compatible(TGeneric{Name: "t"}, String))
	assert.True(t, Compatible(String, TGeneric{Name: "t"}))

	// Optionals never absorb their inner type silently.
	assert.False(t, Compatible(TOptional{Inner: Int}, Int))
	assert.False(t, Compatible(Int, TOptional{Inner: Int}))
	assert.True(t, Compatible(TOptional{Inner: Int}, TOptional{Inner: Int}))

	// Result compatibility is componentwise.
	assert.True(t, Compatible(TResult{Ok: Int, Err: String}, TResult{Ok: Int, Err: String}))
	assert.False(t, Compatible(TResult{Ok: Int, Err: String}, TResult{Ok: String, Err: String}))

	// A union absorbs its members.
	u := NormalizeUnion([]Type{Int, String})
	assert.True(t, Compatible(u, Int))
	assert.True(t, Compatible(u, String))
	assert.False(t, Compatible(u, Float))
}

func TestSignaturesEqual(t *testing.T) {
	a := TFunc{Params: []Type{Int, String}, ReturnType: Bool}
	b := TFunc{Params: []Type{Int, String}, ReturnType: Int}
	c := TFunc{Params: []Type{Int}, ReturnType: Bool}

	assert.True(t, SignaturesEqual(a, b), "return types do not distinguish overloads")
	assert.False(t, SignaturesEqual(a, c))
	assert.False(t, SignaturesEqual(a, TFunc{Params: []Type{Int, String}, ReturnType: Bool, IsVariadic: true}))
}

func TestBindFirstOccurrenceWins(t *testing.T) {
	bindings := make(map[string]Type)
	Bind(TGeneric{Name: "t"}, Int, bindings)
	Bind(TGeneric{Name: "t"}, String, bindings)
	assert.True(t, Int.Equals(bindings["t"]), "later occurrences do not revisit a binding")
}

func TestSubstitute(t *testing.T) {
	bindings := map[string]Type{"t": Int}
	result := Substitute(TArray{Elem: TGeneric{Name: "t"}}, bindings)
	assert.True(t, TArray{Elem: Int}.Equals(result))

	fn := Substitute(TFunc{Params: []Type{TGeneric{Name: "t"}}, ReturnType: TGeneric{Name: "t"}}, bindings)
	assert.Equal(t, "(Int) -> Int", fn.String())
}

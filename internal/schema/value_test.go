package schema

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	language "github.com/hanpama/clientschema/internal/language"
)

func coerceLiteral(t *testing.T, types map[string]*Type, src string, ref *TypeRef) (any, error) {
	t.Helper()
	node, err := language.ParseValue(src)
	require.NoError(t, err)
	return NewDefaultValueResolver(types).Coerce(node, ref)
}

func TestCoerceScalars(t *testing.T) {
	cases := []struct {
		src  string
		ref  *TypeRef
		want any
	}{
		{"42", NamedType("Int"), 42},
		{"4.5", NamedType("Float"), 4.5},
		{"7", NamedType("Float"), 7.0},
		{`"hello"`, NamedType("String"), "hello"},
		{"true", NamedType("Boolean"), true},
		{`"4"`, NamedType("ID"), "4"},
		{"4", NamedType("ID"), "4"},
	}
	for _, tc := range cases {
		got, err := coerceLiteral(t, nil, tc.src, tc.ref)
		require.NoError(t, err, "coercing %s", tc.src)
		require.Equal(t, tc.want, got, "coercing %s", tc.src)
	}
}

func TestCoerceScalarMismatch(t *testing.T) {
	_, err := coerceLiteral(t, nil, `"nope"`, NamedType("Int"))
	require.Error(t, err)
	_, err = coerceLiteral(t, nil, "1.5", NamedType("Int"))
	require.Error(t, err)
	_, err = coerceLiteral(t, nil, "true", NamedType("String"))
	require.Error(t, err)
}

func TestCoerceNullAgainstNonNull(t *testing.T) {
	// A declared null default is accepted even against a non-null type.
	got, err := coerceLiteral(t, nil, "null", NonNullType(NamedType("Int")))
	require.NoError(t, err)
	require.Equal(t, Null, got)
}

func TestCoerceListWrapsSingleItem(t *testing.T) {
	ref := ListType(NamedType("Int"))
	got, err := coerceLiteral(t, nil, "3", ref)
	require.NoError(t, err)
	require.Equal(t, []any{3}, got)

	got, err = coerceLiteral(t, nil, "[1, 2, 3]", ref)
	require.NoError(t, err)
	require.Equal(t, []any{1, 2, 3}, got)
}

func TestCoerceEnum(t *testing.T) {
	types := map[string]*Type{
		"Status": NewType("Status", TypeKindEnum, "").
			AddEnumValue(NewEnumValue("DRAFT", "")).
			AddEnumValue(NewEnumValue("PUBLISHED", "")),
	}
	got, err := coerceLiteral(t, types, "DRAFT", NamedType("Status"))
	require.NoError(t, err)
	require.Equal(t, EnumLiteral("DRAFT"), got)

	_, err = coerceLiteral(t, types, "REMOVED", NamedType("Status"))
	var unknown *UnknownEnumValueError
	require.ErrorAs(t, err, &unknown)
	require.Equal(t, "Status", unknown.Enum)
	require.Equal(t, "REMOVED", unknown.Value)

	// A quoted string is not an enum literal.
	_, err = coerceLiteral(t, types, `"DRAFT"`, NamedType("Status"))
	require.Error(t, err)
}

func TestCoerceInputObjectFillsDefaults(t *testing.T) {
	limit := NewInputValue("limit", "", NamedType("Int")).SetDefault(10)
	term := NewInputValue("term", "", NamedType("String"))
	types := map[string]*Type{
		"Filter": NewType("Filter", TypeKindInputObject, "").
			AddInputField(limit).
			AddInputField(term),
	}
	got, err := coerceLiteral(t, types, `{term: "go"}`, NamedType("Filter"))
	require.NoError(t, err)
	want := map[string]any{"limit": 10, "term": "go"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("coerced object mismatch (-want +got):\n%s", diff)
	}

	_, err = coerceLiteral(t, types, `{bogus: 1}`, NamedType("Filter"))
	require.Error(t, err)
}

func TestCoerceCustomScalarPassesThrough(t *testing.T) {
	types := map[string]*Type{
		"JSON": NewType("JSON", TypeKindScalar, ""),
	}
	got, err := coerceLiteral(t, types, `{nested: [1, "two", null]}`, NamedType("JSON"))
	require.NoError(t, err)
	want := map[string]any{"nested": []any{1, "two", Null}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("raw value mismatch (-want +got):\n%s", diff)
	}
}

func TestResolverCyclicDefault(t *testing.T) {
	a := NewInputValue("a", "", NamedType("Loop"))
	types := map[string]*Type{
		"Loop": NewType("Loop", TypeKindInputObject, "").AddInputField(a),
	}
	r := NewDefaultValueResolver(types)
	node, err := language.ParseValue("{}")
	require.NoError(t, err)
	r.Record(a, node)

	err = r.Resolve()
	require.Error(t, err)
	require.Contains(t, err.Error(), "cyclic")
}

func TestRenderValue(t *testing.T) {
	cases := []struct {
		value any
		want  string
	}{
		{nil, "null"},
		{Null, "null"},
		{EnumLiteral("DRAFT"), "DRAFT"},
		{"hi", `"hi"`},
		{42, "42"},
		{4.5, "4.5"},
		{true, "true"},
		{[]any{1, 2}, "[1, 2]"},
		{map[string]any{"b": 2, "a": 1}, "{a: 1, b: 2}"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, RenderValue(tc.value))
	}
}

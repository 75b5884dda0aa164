package language

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseValue(t *testing.T) {
	cases := []struct {
		src  string
		kind ValueKind
		raw  string
	}{
		{"42", IntValue, "42"},
		{"4.5", FloatValue, "4.5"},
		{`"hello"`, StringValue, "hello"},
		{"true", BooleanValue, "true"},
		{"null", NullValue, "null"},
		{"DRAFT", EnumValue, "DRAFT"},
	}
	for _, tc := range cases {
		node, err := ParseValue(tc.src)
		require.NoError(t, err, "parsing %s", tc.src)
		require.Equal(t, tc.kind, node.Kind, "parsing %s", tc.src)
		require.Equal(t, tc.raw, node.Raw, "parsing %s", tc.src)
	}
}

func TestParseValueCompound(t *testing.T) {
	node, err := ParseValue(`[1, 2, 3]`)
	require.NoError(t, err)
	require.Equal(t, ListValue, node.Kind)
	require.Len(t, node.Children, 3)

	node, err = ParseValue(`{limit: 5, term: "go"}`)
	require.NoError(t, err)
	require.Equal(t, ObjectValue, node.Kind)
	require.Len(t, node.Children, 2)
	require.Equal(t, "limit", node.Children[0].Name)
}

func TestParseValueMalformed(t *testing.T) {
	for _, src := range []string{"", "[1,", "{a:", "1 2"} {
		_, err := ParseValue(src)
		require.Error(t, err, "parsing %q", src)
	}
}

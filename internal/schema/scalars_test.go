package schema

import (
	"encoding/json"
	"testing"

	language "github.com/hanpama/gqlcore/internal/language"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScalars_Serialize(t *testing.T) {
	s := mustBuild(t, `type Query { a: Int }`)
	cases := []struct {
		scalar string
		in     any
		want   any
		err    string
	}{
		{"Int", 42, 42, ""},
		{"Int", int64(7), 7, ""},
		{"Int", 3.0, 3, ""},
		{"Int", true, 1, ""},
		{"Int", "12", 12, ""},
		{"Int", 1.5, nil, "Int cannot represent non-integer value: 1.5"},
		{"Int", int64(1) << 40, nil, "Int cannot represent non 32-bit signed integer value: 1.099511627776e+12"},
		{"Int", "abc", nil, `Int cannot represent non-integer value: "abc"`},
		{"Float", 2, 2.0, ""},
		{"Float", json.Number("1.25"), 1.25, ""},
		{"Float", "x", nil, `Float cannot represent non numeric value: "x"`},
		{"String", "hi", "hi", ""},
		{"String", true, "true", ""},
		{"String", 12, "12", ""},
		{"String", []int{1}, nil, "String cannot represent value: [1]"},
		{"Boolean", false, false, ""},
		{"Boolean", 0, false, ""},
		{"Boolean", "yes", nil, `Boolean cannot represent a non boolean value: "yes"`},
		{"ID", "abc", "abc", ""},
		{"ID", 5, "5", ""},
		{"ID", 1.5, nil, "ID cannot represent value: 1.5"},
	}
	for _, tc := range cases {
		got, err := s.Type(tc.scalar).Serialize(tc.in)
		if tc.err != "" {
			require.EqualError(t, err, tc.err, "%s(%v)", tc.scalar, tc.in)
			continue
		}
		require.NoError(t, err, "%s(%v)", tc.scalar, tc.in)
		assert.Equal(t, tc.want, got, "%s(%v)", tc.scalar, tc.in)
	}
}

func TestScalars_ParseValue(t *testing.T) {
	s := mustBuild(t, `type Query { a: Int }`)

	v, err := s.Type("Int").ParseValue(float64(10))
	require.NoError(t, err)
	assert.Equal(t, 10, v)

	_, err = s.Type("String").ParseValue(10)
	assert.EqualError(t, err, "String cannot represent a non string value: 10")

	_, err = s.Type("Boolean").ParseValue("true")
	assert.Error(t, err)

	v, err = s.Type("ID").ParseValue(float64(4))
	require.NoError(t, err)
	assert.Equal(t, "4", v)
}

func TestScalars_ParseLiteral(t *testing.T) {
	s := mustBuild(t, `type Query { a: Int } scalar JSON`)
	vars := map[string]any{"n": 3}
	cases := []struct {
		scalar  string
		literal string
		want    any
		err     string
	}{
		{"Int", `12`, 12, ""},
		{"Int", `$n`, 3, ""},
		{"Int", `"12"`, nil, `Int cannot represent value: "12"`},
		{"Int", `2147483648`, nil, "Int cannot represent non 32-bit signed integer value: 2.147483648e+09"},
		{"Float", `1`, 1.0, ""},
		{"Float", `1.5e1`, 15.0, ""},
		{"String", `"s"`, "s", ""},
		{"String", `ENUM`, nil, "String cannot represent value: ENUM"},
		{"Boolean", `true`, true, ""},
		{"ID", `7`, "7", ""},
		{"ID", `1.5`, nil, "ID cannot represent value: 1.5"},
		{"JSON", `{a: [1, "b"]}`, map[string]any{"a": []any{int64(1), "b"}}, ""},
	}
	for _, tc := range cases {
		lit, err := language.ParseValue(tc.literal)
		require.NoError(t, err)
		got, err := s.Type(tc.scalar).ParseLiteral(lit, vars)
		if tc.err != "" {
			require.EqualError(t, err, tc.err, "%s(%s)", tc.scalar, tc.literal)
			continue
		}
		require.NoError(t, err, "%s(%s)", tc.scalar, tc.literal)
		assert.Equal(t, tc.want, got, "%s(%s)", tc.scalar, tc.literal)
	}
}

func TestScalars_CustomCoercion(t *testing.T) {
	b := sdlBuilder(t, `type Query { a: Date } scalar Date`)
	b.ScalarCoercion("Date", func(v any) (any, error) { return "date:" + v.(string), nil }, nil, nil)
	s, err := b.Build()
	require.NoError(t, err)

	out, err := s.Type("Date").Serialize("x")
	require.NoError(t, err)
	assert.Equal(t, "date:x", out)

	in, err := s.Type("Date").ParseValue(map[string]any{"y": 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"y": 1}, in)
}

package gqlcore_test

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	gqlcore "github.com/hanpama/gqlcore"
)

func buildSchema(t *testing.T) *gqlcore.Schema {
	t.Helper()
	b := gqlcore.NewBuilder()
	require.NoError(t, b.AddSDL("schema.graphql", `
		type Query { hello(name: String = "world"): String! }
		type Subscription { count(to: Int!): Int! }
	`))
	b.Resolve("Query", "hello", func(_ context.Context, p gqlcore.ResolveParams) (any, error) {
		return "hello " + p.Args["name"].(string), nil
	})
	b.Subscribe("Subscription", "count", func(ctx context.Context, p gqlcore.ResolveParams, sink gqlcore.EventSink) error {
		for i := 1; i <= p.Args["to"].(int); i++ {
			if err := sink.Send(ctx, i); err != nil {
				return err
			}
		}
		return nil
	})
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func marshal(t *testing.T, v any) string {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return string(b)
}

func TestDo(t *testing.T) {
	s := buildSchema(t)
	res := gqlcore.Do(context.Background(), gqlcore.Params{
		Schema:    s,
		Query:     `query Greet($n: String) { hello(name: $n) }`,
		Variables: map[string]any{"n": "gopher"},
	})
	assert.Equal(t, `{"data":{"hello":"hello gopher"}}`, marshal(t, res))
}

func TestDo_SyntaxError(t *testing.T) {
	res := gqlcore.Do(context.Background(), gqlcore.Params{Schema: buildSchema(t), Query: "{ hello"})
	require.Len(t, res.Errors, 1)
	assert.Nil(t, res.Data)
	assert.True(t, strings.HasPrefix(res.Errors[0].Message, "Syntax Error: "), res.Errors[0].Message)
	require.Len(t, res.Errors[0].Locations, 1)
	assert.Equal(t, 1, res.Errors[0].Locations[0].Line)
}

func TestDo_ValidationError(t *testing.T) {
	res := gqlcore.Do(context.Background(), gqlcore.Params{Schema: buildSchema(t), Query: "{ goodbye }"})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, `Cannot query field "goodbye" on type "Query".`, res.Errors[0].Message)
}

func TestDo_Introspection(t *testing.T) {
	s := buildSchema(t)
	res := gqlcore.Do(context.Background(), gqlcore.Params{Schema: s, Query: `{ __schema { queryType { name } subscriptionType { name } } }`})
	assert.Equal(t, `{"data":{"__schema":{"queryType":{"name":"Query"},"subscriptionType":{"name":"Subscription"}}}}`, marshal(t, res))

	res = gqlcore.Do(context.Background(), gqlcore.Params{
		Schema:  s,
		Query:   `{ __type(name: "Query") { name } }`,
		Options: []gqlcore.Option{gqlcore.WithIntrospection(false)},
	})
	require.Len(t, res.Errors, 1)
	assert.Equal(t, "GraphQL introspection is not allowed", res.Errors[0].Message)
}

func TestSubscribe(t *testing.T) {
	var got []string
	for res := range gqlcore.Subscribe(context.Background(), gqlcore.Params{
		Schema: buildSchema(t),
		Query:  `subscription { count(to: 3) }`,
	}) {
		got = append(got, marshal(t, res))
	}
	assert.Equal(t, []string{
		`{"data":{"count":1}}`,
		`{"data":{"count":2}}`,
		`{"data":{"count":3}}`,
	}, got)
}

func TestSubscribe_Break(t *testing.T) {
	n := 0
	for range gqlcore.Subscribe(context.Background(), gqlcore.Params{
		Schema: buildSchema(t),
		Query:  `subscription { count(to: 100) }`,
	}) {
		n++
		if n == 2 {
			break
		}
	}
	assert.Equal(t, 2, n)
}

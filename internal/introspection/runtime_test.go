package introspection

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	executor "github.com/hanpama/gqlcore/internal/executor"
	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

const testSDL = `
"The root."
type Query {
  hello(name: String = "world"): String
  old: Int @deprecated(reason: "use hello")
  pet: Pet
}

interface Pet { name: String! }
type Dog implements Pet { name: String! tags: [String!]! }
type Cat implements Pet { name: String! }

enum Mood { HAPPY SAD @deprecated }
input Filter @oneOf { id: ID mood: Mood }
scalar Date @specifiedBy(url: "https://example.com/date")
`

func buildSchema(t *testing.T) *schema.Schema {
	t.Helper()
	b := schema.NewBuilder()
	require.NoError(t, b.AddSDL("test.graphql", testSDL))
	b.Resolve("Query", "hello", func(_ context.Context, p schema.ResolveParams) (any, error) {
		return "hello " + p.Args["name"].(string), nil
	})
	sch, err := b.Build()
	require.NoError(t, err)
	return sch
}

func run(t *testing.T, query string) (string, []string) {
	t.Helper()
	sch := buildSchema(t)
	exec := executor.New(Wrap(executor.DefaultRuntime{}), sch)
	defer exec.Close()
	doc, err := language.ParseExecutableDocument(query)
	require.NoError(t, err)
	res := exec.ExecuteRequest(context.Background(), executor.Request{Document: doc})
	var msgs []string
	for _, e := range res.Errors {
		msgs = append(msgs, e.Message)
	}
	b, err := json.Marshal(res.Data)
	require.NoError(t, err)
	return string(b), msgs
}

func TestIntrospection_QueryType(t *testing.T) {
	data, errs := run(t, `{ __schema { queryType { name description } mutationType { name } subscriptionType { name } } }`)
	require.Empty(t, errs)
	assert.JSONEq(t, `{"__schema":{"queryType":{"name":"Query","description":"The root."},"mutationType":null,"subscriptionType":null}}`, data)
}

func TestIntrospection_DelegatesOrdinaryFields(t *testing.T) {
	data, errs := run(t, `{ hello __typename }`)
	require.Empty(t, errs)
	assert.JSONEq(t, `{"hello":"hello world","__typename":"Query"}`, data)
}

func TestIntrospection_FieldsAndTypes(t *testing.T) {
	data, errs := run(t, `{
		__type(name: "Query") {
			kind
			fields { name isDeprecated args { name defaultValue type { name kind } } }
			all: fields(includeDeprecated: true) { name deprecationReason }
		}
	}`)
	require.Empty(t, errs)
	assert.JSONEq(t, `{"__type":{
		"kind":"OBJECT",
		"fields":[
			{"name":"hello","isDeprecated":false,"args":[{"name":"name","defaultValue":"\"world\"","type":{"name":"String","kind":"SCALAR"}}]},
			{"name":"pet","isDeprecated":false,"args":[]}
		],
		"all":[
			{"name":"hello","deprecationReason":null},
			{"name":"old","deprecationReason":"use hello"},
			{"name":"pet","deprecationReason":null}
		]
	}}`, data)
}

func TestIntrospection_WrappedTypes(t *testing.T) {
	data, errs := run(t, `{
		__type(name: "Dog") {
			interfaces { name }
			fields { name type { kind name ofType { kind name ofType { kind name ofType { kind name } } } } }
		}
	}`)
	require.Empty(t, errs)
	assert.JSONEq(t, `{"__type":{
		"interfaces":[{"name":"Pet"}],
		"fields":[
			{"name":"name","type":{"kind":"NON_NULL","name":null,"ofType":{"kind":"SCALAR","name":"String","ofType":null}}},
			{"name":"tags","type":{"kind":"NON_NULL","name":null,"ofType":{"kind":"LIST","name":null,"ofType":{"kind":"NON_NULL","name":null,"ofType":{"kind":"SCALAR","name":"String"}}}}}
		]
	}}`, data)
}

func TestIntrospection_AbstractEnumInputScalar(t *testing.T) {
	data, errs := run(t, `{
		pet: __type(name: "Pet") { possibleTypes { name } enumValues { name } }
		mood: __type(name: "Mood") { enumValues { name } all: enumValues(includeDeprecated: true) { name isDeprecated } }
		filter: __type(name: "Filter") { isOneOf inputFields { name type { name } } fields { name } }
		date: __type(name: "Date") { kind specifiedByURL isOneOf }
		missing: __type(name: "Nope") { name }
	}`)
	require.Empty(t, errs)
	assert.JSONEq(t, `{
		"pet":{"possibleTypes":[{"name":"Cat"},{"name":"Dog"}],"enumValues":null},
		"mood":{"enumValues":[{"name":"HAPPY"}],"all":[{"name":"HAPPY","isDeprecated":false},{"name":"SAD","isDeprecated":true}]},
		"filter":{"isOneOf":true,"inputFields":[{"name":"id","type":{"name":"ID"}},{"name":"mood","type":{"name":"Mood"}}],"fields":null},
		"date":{"kind":"SCALAR","specifiedByURL":"https://example.com/date","isOneOf":null},
		"missing":null
	}`, data)
}

func TestIntrospection_Directives(t *testing.T) {
	data, errs := run(t, `{ __schema { directives { name isRepeatable locations args { name } } } }`)
	require.Empty(t, errs)

	var got struct {
		Schema struct {
			Directives []struct {
				Name      string   `json:"name"`
				Locations []string `json:"locations"`
			} `json:"directives"`
		} `json:"__schema"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &got))
	var names []string
	for _, d := range got.Schema.Directives {
		names = append(names, d.Name)
		if d.Name == "skip" {
			assert.Equal(t, []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"}, d.Locations)
		}
	}
	assert.Equal(t, []string{"deprecated", "include", "oneOf", "skip", "specifiedBy"}, names)
}

func TestIntrospection_SchemaTypesIncludeMetaTypes(t *testing.T) {
	data, errs := run(t, `{ __schema { types { name } } }`)
	require.Empty(t, errs)

	var got struct {
		Schema struct {
			Types []struct{ Name string } `json:"types"`
		} `json:"__schema"`
	}
	require.NoError(t, json.Unmarshal([]byte(data), &got))
	var names []string
	for _, tt := range got.Schema.Types {
		names = append(names, tt.Name)
	}
	assert.Contains(t, names, "Query")
	assert.Contains(t, names, "__Schema")
	assert.Contains(t, names, "Boolean")
	assert.IsIncreasing(t, names)
}

func TestIntrospection_Disabled(t *testing.T) {
	sch := buildSchema(t)
	exec := executor.New(Wrap(executor.DefaultRuntime{}), sch, executor.WithIntrospection(false))
	defer exec.Close()
	doc, err := language.ParseExecutableDocument(`{ __type(name: "Query") { name } hello }`)
	require.NoError(t, err)

	res := exec.ExecuteRequest(context.Background(), executor.Request{Document: doc})
	require.Len(t, res.Errors, 1)
	assert.ErrorIs(t, res.Errors[0], executor.ErrIntrospectionDisabled)
	b, err := json.Marshal(res.Data)
	require.NoError(t, err)
	assert.JSONEq(t, `{"__type":null,"hello":"hello world"}`, string(b))
}

package executor

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

const petsSDL = `
	interface Pet { name: String! }
	type Dog implements Pet { name: String! barks: Boolean }
	type Cat implements Pet { name: String! lives: Int }
	union Animal = Dog | Cat
	type Query { pets: [Pet] animals: [Animal] pet: Pet }
`

var petsRoot = map[string]any{
	"pets": []any{
		map[string]any{"__typename": "Dog", "name": "rex", "barks": true},
		map[string]any{"__typename": "Cat", "name": "tom", "lives": 9},
	},
}

func TestAbstract_TypenameFromMaps(t *testing.T) {
	s := mustBuild(t, petsSDL)
	e := newExecutor(t, s)
	query := `{
		pets {
			__typename
			name
			... on Dog { barks }
			...CatFields
		}
	}
	fragment CatFields on Cat { lives }`
	res := e.ExecuteRequest(context.Background(), Request{Document: mustParseQuery(t, query), RootValue: petsRoot})

	require.Empty(t, res.Errors)
	assert.Equal(t,
		`{"pets":[{"__typename":"Dog","name":"rex","barks":true},{"__typename":"Cat","name":"tom","lives":9}]}`,
		dataJSON(t, res))
}

func TestAbstract_FragmentOnInterface(t *testing.T) {
	s := mustBuild(t, petsSDL)
	e := newExecutor(t, s)
	root := map[string]any{"animals": petsRoot["pets"]}
	query := `{ animals { ... on Pet { name } ... on Cat { lives } } }`
	res := e.ExecuteRequest(context.Background(), Request{Document: mustParseQuery(t, query), RootValue: root})

	require.Empty(t, res.Errors)
	assert.Equal(t, `{"animals":[{"name":"rex"},{"name":"tom","lives":9}]}`, dataJSON(t, res))
}

type dog struct {
	Name  string `json:"name"`
	Barks bool
}

type cat struct {
	Name  string
	Lives *int `json:"lives"`
}

func TestAbstract_IsTypeOfWithStructs(t *testing.T) {
	nine := 9
	s := mustBuild(t, petsSDL, func(b *schema.Builder) {
		b.IsTypeOf("Dog", func(v any) bool { _, ok := v.(*dog); return ok })
		b.IsTypeOf("Cat", func(v any) bool { _, ok := v.(cat); return ok })
		b.Resolve("Query", "pets", returns([]any{&dog{Name: "rex", Barks: true}, cat{Name: "tom", Lives: &nine}}))
	})
	res := execute(t, newExecutor(t, s), `{ pets { __typename name ... on Dog { barks } ... on Cat { lives } } }`, nil)

	require.Empty(t, res.Errors)
	assert.Equal(t,
		`{"pets":[{"__typename":"Dog","name":"rex","barks":true},{"__typename":"Cat","name":"tom","lives":9}]}`,
		dataJSON(t, res))
}

func TestAbstract_IsTypeOfMismatch(t *testing.T) {
	sdl := `type Query { dog: Dog } type Dog { name: String }`
	s := mustBuild(t, sdl, func(b *schema.Builder) {
		b.IsTypeOf("Dog", func(v any) bool { _, ok := v.(*dog); return ok })
		b.Resolve("Query", "dog", returns("not a dog"))
	})
	res := execute(t, newExecutor(t, s), `{ dog { name } }`, nil)

	assert.Equal(t, `{"dog":null}`, dataJSON(t, res))
	assert.Equal(t, []string{`Expected value of type "Dog" but got: "not a dog".`}, errorMessages(res))
}

func TestAbstract_ResolveTypeErrors(t *testing.T) {
	tests := []struct {
		name     string
		typeName string
		err      error
		want     string
	}{
		{
			name: "empty",
			want: `Abstract type "Pet" must resolve to an Object type at runtime for field "Query.pet". Either the "Pet" type should provide a "resolveType" function or each possible type should provide an "isTypeOf" function.`,
		},
		{
			name:     "unknown",
			typeName: "Fish",
			want:     `Abstract type "Pet" was resolved to a type "Fish" that does not exist inside the schema.`,
		},
		{
			name:     "not an object",
			typeName: "Animal",
			want:     `Abstract type "Pet" was resolved to a non-object type "Animal".`,
		},
		{
			name:     "not possible",
			typeName: "Query",
			want:     `Runtime Object type "Query" is not a possible type for "Pet".`,
		},
		{
			name: "resolver error",
			err:  errors.New("cannot tell"),
			want: "cannot tell",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := mustBuild(t, petsSDL, func(b *schema.Builder) {
				b.Resolve("Query", "pet", returns(map[string]any{"name": "x"}))
				b.ResolveType("Pet", func(context.Context, any, schema.ResolveInfo) (string, error) {
					return tt.typeName, tt.err
				})
			})
			res := execute(t, newExecutor(t, s), `{ pet { name } }`, nil)
			assert.Equal(t, `{"pet":null}`, dataJSON(t, res))
			assert.Equal(t, []string{tt.want}, errorMessages(res))
		})
	}
}

func TestDirectives_SkipAndInclude(t *testing.T) {
	s := mustBuild(t, `type Query { a: Int b: Int c: Int d: Int }`, func(b *schema.Builder) {
		b.Resolve("Query", "a", returns(1))
		b.Resolve("Query", "b", returns(2))
		b.Resolve("Query", "c", returns(3))
		b.Resolve("Query", "d", returns(4))
	})
	e := newExecutor(t, s)
	query := `query ($yes: Boolean!, $no: Boolean!) {
		a @skip(if: $yes)
		b @include(if: $yes)
		... @include(if: $no) { c }
		d @skip(if: false) @include(if: true)
	}`
	res := execute(t, e, query, map[string]any{"yes": true, "no": false})

	require.Empty(t, res.Errors)
	assert.Equal(t, `{"b":2,"d":4}`, dataJSON(t, res))
}

func TestFragments_SpreadOnceAndNested(t *testing.T) {
	sdl := `
		type Query { user: User }
		type User { id: ID name: String friend: User }
	`
	s := mustBuild(t, sdl)
	root := map[string]any{"user": map[string]any{
		"id": 1, "name": "ann",
		"friend": map[string]any{"id": 2, "name": "bob"},
	}}
	query := `{
		user { ...U friend { ...U } ...U }
	}
	fragment U on User { id name }`
	res := newExecutor(t, s).ExecuteRequest(context.Background(), Request{Document: mustParseQuery(t, query), RootValue: root})

	require.Empty(t, res.Errors)
	assert.Equal(t, `{"user":{"id":"1","name":"ann","friend":{"id":"2","name":"bob"}}}`, dataJSON(t, res))
}

type color int

func (c color) String() string { return [...]string{"RED", "GREEN", "PURPLE"}[c] }

func TestEnum_Serialization(t *testing.T) {
	sdl := `enum Color { RED GREEN } type Query { first: Color second: Color third: Color }`
	s := mustBuild(t, sdl, func(b *schema.Builder) {
		b.Resolve("Query", "first", returns("GREEN"))
		b.Resolve("Query", "second", returns(color(0)))
		b.Resolve("Query", "third", returns(color(2)))
	})
	res := execute(t, newExecutor(t, s), `{ first second third }`, nil)

	assert.Equal(t, `{"first":"GREEN","second":"RED","third":null}`, dataJSON(t, res))
	assert.Equal(t, []string{`Enum "Color" cannot represent value: "PURPLE"`}, errorMessages(res))
}

func TestCustomScalar(t *testing.T) {
	sdl := `scalar Upper type Query { shout(word: Upper): Upper }`
	s := mustBuild(t, sdl, func(b *schema.Builder) {
		b.ScalarCoercion("Upper",
			func(v any) (any, error) { return "<" + v.(string) + ">", nil },
			func(v any) (any, error) { return v, nil },
			func(v language.Value, _ map[string]any) (any, error) {
				return schema.LiteralValue(v, nil)
			})
		b.Resolve("Query", "shout", func(_ context.Context, p schema.ResolveParams) (any, error) {
			return p.Args["word"], nil
		})
	})
	res := execute(t, newExecutor(t, s), `{ shout(word: "hey") }`, nil)

	require.Empty(t, res.Errors)
	assert.Equal(t, `{"shout":"<hey>"}`, dataJSON(t, res))
}

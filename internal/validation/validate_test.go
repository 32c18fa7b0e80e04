package validation

import (
	"sync"
	"testing"

	language "github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSDL = `
interface Pet { name: String }

type Dog implements Pet {
  name: String
  nickname: String
  barkVolume: Int
  doesKnowCommand(dogCommand: DogCommand!): Boolean!
  isHouseTrained(atOtherHomes: Boolean = true): Boolean!
  owner: Human
}

type Cat implements Pet { name: String meowVolume: Int }

union CatOrDog = Cat | Dog

type Human { name: String pets: [Pet] }

enum DogCommand { SIT HEEL DOWN }

input ComplexInput { requiredField: Boolean! intField: Int stringListField: [String] }

input OneOfInput @oneOf { a: String b: Int }

type Query {
  dog: Dog
  pet: Pet
  catOrDog: CatOrDog
  human(id: ID!): Human
  complex(arg: ComplexInput, one: OneOfInput): String
  scalars(i: Int, f: Float, s: String, b: Boolean, id: ID, list: [Int!]): String
}

type Mutation { mutateDog: Dog }

type Subscription { newDog: Dog newCat: Cat }

directive @onField on FIELD
directive @onQuery on QUERY
directive @tag(name: String!) repeatable on FIELD
`

var testSchema = sync.OnceValue(func() *schema.Schema {
	b := schema.NewBuilder()
	if err := b.AddSDL("test.graphql", testSDL); err != nil {
		panic(err)
	}
	s, err := b.Build()
	if err != nil {
		panic(err)
	}
	return s
})

func validate(t *testing.T, query string, rules ...Rule) []*Error {
	t.Helper()
	doc, err := language.ParseExecutableDocument(query)
	require.NoError(t, err)
	return Validate(testSchema(), doc, rules...)
}

func messages(errs []*Error) []string {
	out := make([]string, 0, len(errs))
	for _, e := range errs {
		out = append(out, e.Message)
	}
	return out
}

func expectValid(t *testing.T, rule Rule, query string) {
	t.Helper()
	assert.Empty(t, messages(validate(t, query, rule)))
}

func expectErrors(t *testing.T, rule Rule, query string, want ...string) {
	t.Helper()
	assert.Equal(t, want, messages(validate(t, query, rule)))
}

func TestValidate_KitchenSinkIsValid(t *testing.T) {
	errs := validate(t, `
		query Q($cmd: DogCommand!, $id: ID!, $skip: Boolean = false) @onQuery {
			dog {
				...DogFields
				doesKnowCommand(dogCommand: $cmd)
				isHouseTrained
				owner @skip(if: $skip) { name }
			}
			pet { name ... on Dog { barkVolume } ... on Cat { meowVolume } }
			catOrDog { __typename ... on Pet { name } }
			human(id: $id) { pets { name } }
			complex(arg: {requiredField: true, stringListField: ["a", "b"]}, one: {a: "x"})
			scalars(i: 1, f: 1, s: "s", b: false, id: 4, list: [1, 2])
			__schema { queryType { name } }
			__type(name: "Dog") { name }
		}
		fragment DogFields on Dog { name nickname @onField @tag(name: "a") @tag(name: "b") }
		mutation M { mutateDog { name } }
		subscription S { newDog { name } }
	`)
	assert.Empty(t, messages(errs))
}

func TestValidate_CollectsEveryViolation(t *testing.T) {
	errs := validate(t, `
		query X { dog { unknown } }
		query X { cat }
	`)
	assert.Equal(t, []string{
		`Cannot query field "unknown" on type "Dog".`,
		`Cannot query field "cat" on type "Query".`,
		`There can be only one operation named "X".`,
	}, messages(errs))
	assert.Equal(t, "FieldsOnCorrectType", errs[0].Rule)
	assert.Equal(t, []string{"dog", "unknown"}, errs[0].Path)
	assert.Equal(t, []language.SourceLocation{{Line: 2, Column: 19}}, errs[0].Locations)
	assert.Equal(t, "UniqueOperationNames", errs[2].Rule)
}

func TestValidate_RulesAreReusable(t *testing.T) {
	query := `query X { dog { name } } query X { dog { name } }`
	first := validate(t, query, UniqueOperationNames)
	second := validate(t, query, UniqueOperationNames)
	assert.Len(t, first, 1)
	assert.Len(t, second, 1)
}

func TestError_String(t *testing.T) {
	e := &Error{
		Message:   "Unknown type \"Foo\".",
		Locations: []language.SourceLocation{{Line: 1, Column: 12}, {Line: 3, Column: 4}},
	}
	assert.Equal(t, "Unknown type \"Foo\". (1:12) (3:4)", e.Error())
}

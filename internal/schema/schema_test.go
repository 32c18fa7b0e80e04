package schema

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustBuild(t *testing.T, sdl ...string) *Schema {
	t.Helper()
	b := NewBuilder()
	for _, s := range sdl {
		require.NoError(t, b.AddSDL("test.graphql", s))
	}
	s, err := b.Build()
	require.NoError(t, err)
	return s
}

func buildErrors(t *testing.T, b *Builder) BuildErrors {
	t.Helper()
	s, err := b.Build()
	require.Error(t, err)
	assert.Nil(t, s)
	var errs BuildErrors
	require.True(t, errors.As(err, &errs))
	return errs
}

func sdlBuilder(t *testing.T, sdl string) *Builder {
	t.Helper()
	b := NewBuilder()
	require.NoError(t, b.AddSDL("test.graphql", sdl))
	return b
}

func TestBuild_CircularLinkage(t *testing.T) {
	b := sdlBuilder(t, `
		type Query { a: Object1 }
		type Object1 { field: Object2 }
		type Object2 { field: Object1 }
	`)
	s1, err := b.Build()
	require.NoError(t, err)

	o1, o2 := s1.Type("Object1"), s1.Type("Object2")
	require.NotNil(t, o1)
	require.NotNil(t, o2)
	assert.Same(t, o2, s1.GetField("Object1", "field").Type.NamedType())
	assert.Same(t, o1, s1.GetField("Object2", "field").Type.NamedType())
	assert.Same(t, s1.QueryType, s1.Type("Query"))

	s2, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, s1.TypeNames(), s2.TypeNames())
	assert.NotSame(t, o1, s2.Type("Object1"))
	assert.Same(t, s2.Type("Object1"), s2.GetField("Object2", "field").Type.NamedType())
}

func TestBuild_Builtins(t *testing.T) {
	s := mustBuild(t, `type Query { ok: Boolean }`)
	for _, name := range []string{"Int", "Float", "String", "Boolean", "ID", "__Schema", "__Type", "__TypeKind", "__Field", "__InputValue", "__EnumValue", "__Directive", "__DirectiveLocation"} {
		assert.NotNil(t, s.Type(name), name)
	}
	for _, name := range []string{"include", "skip", "deprecated", "specifiedBy"} {
		assert.NotNil(t, s.Directive(name), name)
	}
	assert.Equal(t, []string{"FIELD", "FRAGMENT_SPREAD", "INLINE_FRAGMENT"}, s.Directive("skip").Locations)
	assert.Nil(t, s.MutationType)
	assert.Nil(t, s.SubscriptionType)
}

func TestBuild_Extensions(t *testing.T) {
	s := mustBuild(t, `
		interface Node { id: ID! }
		type Query { user: User }
		type User { name: String }
		enum Role { ADMIN }
		union Result = User
		input Filter { q: String }
		scalar Date
	`, `
		extend type User implements Node @cached { id: ID! }
		extend enum Role { GUEST }
		extend union Result = Post
		extend input Filter { limit: Int = 10 }
		extend scalar Date @specifiedBy(url: "https://example.com/date")
		type Post { title: String }
	`)

	user := s.Type("User")
	require.Len(t, user.Fields, 2)
	assert.Equal(t, "name", user.Fields[0].Name)
	assert.Equal(t, "id", user.Fields[1].Name)
	require.Len(t, user.Interfaces, 1)
	assert.Same(t, s.Type("Node"), user.Interfaces[0])
	require.Len(t, user.Directives, 1)

	assert.Equal(t, []*Type{user}, s.Type("Node").PossibleTypes)
	assert.True(t, s.IsPossibleType(s.Type("Node"), user))
	assert.False(t, s.IsPossibleType(s.Type("Node"), s.Type("Post")))
	assert.Equal(t, []*Type{user, s.Type("Post")}, s.PossibleTypes(s.Type("Result")))

	assert.NotNil(t, s.Type("Role").EnumValue("GUEST"))
	assert.NotNil(t, s.Type("Filter").InputField("limit").DefaultValue)
	require.NotNil(t, s.Type("Date").SpecifiedByURL)
	assert.Equal(t, "https://example.com/date", *s.Type("Date").SpecifiedByURL)
}

func TestBuild_SchemaDefinition(t *testing.T) {
	s := mustBuild(t, `
		"Root schema."
		schema { query: Root mutation: Change }
		type Root { a: Int }
		type Change { b: Int }
		type Query { unused: Int }
	`)
	assert.Equal(t, "Root", s.QueryType.Name)
	assert.Equal(t, "Change", s.MutationType.Name)
	assert.Equal(t, "Root schema.", s.Description)
}

func TestBuild_Deprecation(t *testing.T) {
	s := mustBuild(t, `
		type Query {
			old: Int @deprecated
			older(arg: Int @deprecated(reason: "gone")): Int @deprecated(reason: "use new")
		}
		enum E { A @deprecated B }
	`)
	old := s.GetField("Query", "old")
	assert.True(t, old.IsDeprecated)
	assert.Equal(t, "No longer supported", old.DeprecationReason)
	older := s.GetField("Query", "older")
	assert.Equal(t, "use new", older.DeprecationReason)
	assert.Equal(t, "gone", older.Argument("arg").DeprecationReason)
	assert.True(t, s.Type("E").EnumValue("A").IsDeprecated)
	assert.False(t, s.Type("E").EnumValue("B").IsDeprecated)
}

func TestBuild_Errors(t *testing.T) {
	cases := []struct {
		name     string
		sdl      string
		sentinel error
		message  string
	}{
		{"unknown field type", `type Query { a: Missing }`, ErrUnknownType, `Unknown type "Missing".`},
		{"unknown argument type", `type Query { a(x: Nope): Int }`, ErrUnknownType, `Unknown type "Nope".`},
		{"unknown interface", `type Query implements Node { a: Int }`, ErrUnknownType, `Unknown type "Node".`},
		{"unknown union member", `type Query { a: Int } union U = Ghost`, ErrUnknownType, `Unknown type "Ghost".`},
		{"incompatible redeclaration", `type Query { a: Int } type A { a: Int } enum A { X }`, ErrDuplicateType, `There can be only one type named "A".`},
		{"same kind redeclaration", `type Query { a: Int } type A { a: Int } type A { b: Int }`, ErrDuplicateType, `There can be only one type named "A".`},
		{"builtin as other kind", `type Query { a: Int } type String { a: Int }`, ErrDuplicateType, `There can be only one type named "String".`},
		{"extension of missing type", `type Query { a: Int } extend type Ghost { a: Int }`, ErrInvalidExtension, `Cannot extend type "Ghost" because it is not defined.`},
		{"extension of other kind", `type Query { a: Int } enum E { A } extend type E { a: Int }`, ErrInvalidExtension, `Cannot extend non-object type "E".`},
		{"missing query", `type Foo { a: Int }`, ErrInvalidDefinition, `Query root type must be provided.`},
		{"input as output", `type Query { a: In } input In { x: Int }`, ErrInvalidDefinition, `The type of "Query.a" must be Output Type but got: In.`},
		{"output as input", `type Query { a(x: Query): Int }`, ErrInvalidDefinition, `The type of "Query.a(x:)" must be Input Type but got: Query.`},
		{"implements object", `type Query implements Other { a: Int } type Other { a: Int }`, ErrInvalidDefinition, `Type "Query" must only implement Interface types, it cannot implement "Other".`},
		{"missing interface field", `type Query implements Node { a: Int } interface Node { id: ID! }`, ErrInvalidDefinition, `Interface field "Node.id" expected but "Query" does not provide it.`},
		{"wrong interface field type", `type Query implements Node { id: String } interface Node { id: ID! }`, ErrInvalidDefinition, `Interface field "Node.id" expects type ID! but "Query.id" is type String.`},
		{"union of scalar", `type Query { a: Int } union U = String`, ErrInvalidDefinition, `Union type "U" can only include Object types, it cannot include "String".`},
		{"duplicate field", `type Query { a: Int a: String }`, ErrInvalidDefinition, `Field "Query.a" can only be defined once.`},
		{"reserved name", `type Query { a: Int } type __Mine { a: Int }`, ErrInvalidDefinition, `Name "__Mine" must not begin with "__", which is reserved by GraphQL introspection.`},
		{"non object root", `schema { query: Q } interface Q { a: Int }`, ErrInvalidDefinition, `Query root type must be Object type, it cannot be Q.`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			errs := buildErrors(t, sdlBuilder(t, tc.sdl))
			var messages []string
			for _, e := range errs {
				messages = append(messages, e.Message)
			}
			assert.Contains(t, messages, tc.message)
			assert.True(t, errors.Is(errs, tc.sentinel))
		})
	}
}

func TestBuild_CollectsAllErrors(t *testing.T) {
	errs := buildErrors(t, sdlBuilder(t, `
		type Query { a: A b: B }
		extend type Nope { c: Int }
	`))
	require.Len(t, errs, 3)
	assert.Equal(t, InvalidExtension, errs[0].Kind)
	assert.Equal(t, UnknownType, errs[1].Kind)
	assert.Equal(t, "A", errs[1].Name)
	assert.Equal(t, "B", errs[2].Name)
	require.NotNil(t, errs[1].Location)
	assert.Equal(t, 2, errs[1].Location.Line)
	assert.Contains(t, errs.Error(), "test.graphql:2:")
}

func TestBuild_AllowsBuiltinRedeclaration(t *testing.T) {
	s := mustBuild(t, `
		scalar String
		directive @skip(if: Boolean!) on FIELD | FRAGMENT_SPREAD | INLINE_FRAGMENT
		type Query { a: String }
	`)
	assert.NotNil(t, s.Type("String").Serialize)
}

func TestBuilder_Programmatic(t *testing.T) {
	hello := func(ctx context.Context, p ResolveParams) (any, error) { return "hi " + p.Args["name"].(string), nil }
	slow := func(ctx context.Context, p ResolveParams) (any, error) { return 1, nil }

	b := NewBuilder()
	b.Interface("Node").Field("id", "ID!", nil)
	b.Object("User").Implements("Node").
		Field("id", "ID!", nil).
		Field("friends(first: Int = 10)", "[User!]!", nil)
	b.Object("Query").
		Field("hello(name: String!)", "String", hello).
		AsyncField("slow", "Int", slow).
		Field("node(id: ID!)", "Node", nil)
	b.Object("Query").Field("me", "User", nil)
	b.Enum("Color", "RED", "GREEN")
	b.Union("Anything", "User")
	b.InputObject("Page").InputField("size", "Int = 20")
	b.Scalar("Date").Coercion(func(v any) (any, error) { return "date", nil }, nil, nil)
	b.ResolveType("Node", func(ctx context.Context, v any, info ResolveInfo) (string, error) { return "User", nil })

	s, err := b.Build()
	require.NoError(t, err)

	q := s.QueryType
	require.NotNil(t, q)
	assert.Equal(t, []string{"hello", "slow", "node", "me"}, fieldNames(q))
	assert.NotNil(t, q.Field("hello").Resolve)
	assert.False(t, q.Field("hello").Async)
	assert.True(t, q.Field("slow").Async)
	assert.Equal(t, "String!", q.Field("hello").Argument("name").Type.String())
	assert.Same(t, s.Type("User"), q.Field("me").Type.NamedType())

	friends := s.GetField("User", "friends")
	assert.Equal(t, "[User!]!", friends.Type.String())
	assert.Equal(t, "Int", friends.Argument("first").Type.String())

	assert.Len(t, s.Type("Color").EnumValues, 2)
	assert.Equal(t, []*Type{s.Type("User")}, s.Type("Anything").PossibleTypes)
	assert.NotNil(t, s.Type("Page").InputField("size").DefaultValue)
	assert.NotNil(t, s.Type("Node").ResolveType)

	out, err := s.Type("Date").Serialize("anything")
	require.NoError(t, err)
	assert.Equal(t, "date", out)
}

func TestBuilder_ProgrammaticExtendsSDL(t *testing.T) {
	b := sdlBuilder(t, `type Query { a: Int }`)
	b.Object("Query").Field("b", "String", nil)
	b.Resolve("Query", "a", func(ctx context.Context, p ResolveParams) (any, error) { return 1, nil })

	s, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, fieldNames(s.QueryType))
	assert.NotNil(t, s.GetField("Query", "a").Resolve)
}

func TestBuilder_Errors(t *testing.T) {
	t.Run("redeclared with other kind", func(t *testing.T) {
		b := NewBuilder()
		b.Object("Query").Field("a", "Int", nil)
		b.Enum("Query", "A")
		errs := buildErrors(t, b)
		assert.True(t, errors.Is(errs, ErrDuplicateType))
	})
	t.Run("same kind returns existing declaration", func(t *testing.T) {
		b := NewBuilder()
		assert.Same(t, b.Object("Query"), b.Object("Query"))
	})
	t.Run("invalid field declaration", func(t *testing.T) {
		b := NewBuilder()
		b.Object("Query").Field("a(", "Int", nil)
		errs := buildErrors(t, b)
		assert.True(t, errors.Is(errs, ErrInvalidDefinition))
	})
	t.Run("resolver for unknown field", func(t *testing.T) {
		b := sdlBuilder(t, `type Query { a: Int }`)
		b.Resolve("Query", "zzz", nil)
		errs := buildErrors(t, b)
		assert.Equal(t, `Cannot attach a resolver to undefined field "Query.zzz".`, errs[0].Message)
	})
	t.Run("type resolver for unknown type", func(t *testing.T) {
		b := sdlBuilder(t, `type Query { a: Int }`)
		b.ResolveType("Ghost", func(ctx context.Context, v any, info ResolveInfo) (string, error) { return "", nil })
		errs := buildErrors(t, b)
		assert.True(t, errors.Is(errs, ErrUnknownType))
	})
	t.Run("members on object", func(t *testing.T) {
		b := NewBuilder()
		b.Object("Query").Field("a", "Int", nil).Members("X")
		errs := buildErrors(t, b)
		assert.Equal(t, `Members is not supported on OBJECT type "Query".`, errs[0].Message)
	})
}

func TestBuilder_Roots(t *testing.T) {
	b := NewBuilder()
	b.Object("Q").Field("a", "Int", nil)
	b.Object("S").Field("ev", "Int", nil)
	b.Roots("Q", "", "S")
	s, err := b.Build()
	require.NoError(t, err)
	assert.Equal(t, "Q", s.QueryType.Name)
	assert.Nil(t, s.MutationType)
	assert.Equal(t, "S", s.SubscriptionType.Name)
}

func fieldNames(t *Type) []string {
	out := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		out[i] = f.Name
	}
	return out
}

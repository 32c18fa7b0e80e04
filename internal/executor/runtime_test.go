package executor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	schema "github.com/hanpama/gqlcore/internal/schema"
)

type account struct {
	ID       string `json:"id,omitempty"`
	FullName string `json:"name"`
	Email    *string
	internal string
}

type labels map[string]string

func TestPropertyValue(t *testing.T) {
	email := "ann@example.com"
	acct := &account{ID: "1", FullName: "Ann", Email: &email, internal: "x"}

	tests := []struct {
		name   string
		source any
		field  string
		want   any
	}{
		{"map key", map[string]any{"a": 1}, "a", 1},
		{"missing map key", map[string]any{}, "a", nil},
		{"typed map", labels{"env": "prod"}, "env", "prod"},
		{"json tag with options", acct, "id", "1"},
		{"json tag", acct, "name", "Ann"},
		{"field name", acct, "email", &email},
		{"unexported", acct, "internal", nil},
		{"value struct", *acct, "name", "Ann"},
		{"nil pointer", (*account)(nil), "name", nil},
		{"nil", nil, "name", nil},
		{"scalar", 42, "name", nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PropertyValue(tt.source, tt.field))
		})
	}
}

func TestDefaultRuntime_StructValues(t *testing.T) {
	s := mustBuild(t, `type Query { me: Account } type Account { id: ID! name: String email: String }`,
		func(b *schema.Builder) {
			email := "ann@example.com"
			b.Resolve("Query", "me", returns(&account{ID: "1", FullName: "Ann", Email: &email}))
		})
	res := execute(t, newExecutor(t, s), `{ me { id name email } }`, nil)

	assert.Empty(t, res.Errors)
	assert.Equal(t, `{"me":{"id":"1","name":"Ann","email":"ann@example.com"}}`, dataJSON(t, res))
}

func TestDefaultRuntime_SubscriptionFieldReturnsEvent(t *testing.T) {
	s := mustBuild(t, `type Query { noop: Int } type Subscription { greeting: String }`,
		func(b *schema.Builder) {
			b.Subscribe("Subscription", "greeting", func(context.Context, schema.ResolveParams, schema.EventSink) error { return nil })
		})
	field := s.SubscriptionType.Field("greeting")
	v, err := DefaultRuntime{}.ResolveField(context.Background(), field, schema.ResolveParams{Source: "hi"})
	assert.NoError(t, err)
	assert.Equal(t, "hi", v)
}

func TestDefaultRuntime_SerializeLeafValue(t *testing.T) {
	s := mustBuild(t, `enum Mood { HAPPY } type Query { mood: Mood n: Int }`)
	rt := DefaultRuntime{}
	ctx := context.Background()

	v, err := rt.SerializeLeafValue(ctx, s.Type("Mood"), "HAPPY")
	assert.NoError(t, err)
	assert.Equal(t, "HAPPY", v)

	_, err = rt.SerializeLeafValue(ctx, s.Type("Mood"), 3)
	assert.EqualError(t, err, `Enum "Mood" cannot represent value: 3`)

	v, err = rt.SerializeLeafValue(ctx, s.Type("Int"), int64(7))
	assert.NoError(t, err)
	assert.Equal(t, 7, v)
}

package executor

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"strings"

	schema "github.com/hanpama/gqlcore/internal/schema"
)

// Runtime is the host integration surface the Executor resolves through.
//
// General contract
//   - ResolveField is called once per grouped field, possibly concurrently
//     for sibling fields declared Async. Implementations must be safe for
//     concurrent use and must not mutate p.Source or p.Args.
//   - Errors returned from any method become located errors. When the field
//     is Non-Null the null propagates to the nearest nullable ancestor.
//   - ctx carries the execution's cancellation signal; long-running work
//     should return when it is done.
//
// Abstract types and leaf values
//   - ResolveType returns the concrete object type name of an interface or
//     union value. The Executor checks that the name is a possible type.
//   - SerializeLeafValue turns a scalar or enum value into a JSON-safe Go
//     value. Enums serialize to their value name.
type Runtime interface {
	// ResolveField produces the raw value of field. The Executor completes
	// the value against the field type, including nested selections.
	// Return (nil, nil) for a GraphQL null.
	ResolveField(ctx context.Context, field *schema.Field, p schema.ResolveParams) (any, error)

	// Subscribe runs the event source of a subscription root field. It
	// hands events to sink and returns when the source ends.
	Subscribe(ctx context.Context, field *schema.Field, p schema.ResolveParams, sink schema.EventSink) error

	// ResolveType determines the concrete object type name of value for the
	// abstract type.
	ResolveType(ctx context.Context, abstract *schema.Type, value any, info schema.ResolveInfo) (string, error)

	// SerializeLeafValue serializes a scalar or enum value.
	SerializeLeafValue(ctx context.Context, typ *schema.Type, value any) (any, error)
}

// DefaultRuntime resolves fields with the resolvers attached to the schema.
// Fields without one read the parent value: a map key, or an exported
// struct field matched by its json tag or name.
type DefaultRuntime struct{}

var _ Runtime = DefaultRuntime{}

// ErrNoEventSource is returned for a subscription field without an event source.
var ErrNoEventSource = errors.New("subscription field has no event source")

func (DefaultRuntime) ResolveField(ctx context.Context, field *schema.Field, p schema.ResolveParams) (any, error) {
	if field.Resolve != nil {
		return field.Resolve(ctx, p)
	}
	if field.Subscribe != nil {
		// The source of a subscription root field is the event itself.
		return p.Source, nil
	}
	return PropertyValue(p.Source, field.Name), nil
}

func (DefaultRuntime) Subscribe(ctx context.Context, field *schema.Field, p schema.ResolveParams, sink schema.EventSink) error {
	if field.Subscribe == nil {
		return fmt.Errorf("%w: %s.%s", ErrNoEventSource, p.Info.ParentType.Name, field.Name)
	}
	return field.Subscribe(ctx, p, sink)
}

func (DefaultRuntime) ResolveType(ctx context.Context, abstract *schema.Type, value any, info schema.ResolveInfo) (string, error) {
	if abstract.ResolveType != nil {
		return abstract.ResolveType(ctx, value, info)
	}
	for _, pt := range info.Schema.PossibleTypes(abstract) {
		if pt.IsTypeOf != nil && pt.IsTypeOf(value) {
			return pt.Name, nil
		}
	}
	if m, ok := value.(map[string]any); ok {
		if name, ok := m["__typename"].(string); ok {
			return name, nil
		}
	}
	return "", nil
}

func (DefaultRuntime) SerializeLeafValue(ctx context.Context, typ *schema.Type, value any) (any, error) {
	if typ.Kind == schema.TypeKindEnum {
		return serializeEnum(typ, value)
	}
	if typ.Serialize == nil {
		return value, nil
	}
	return typ.Serialize(value)
}

func serializeEnum(typ *schema.Type, value any) (any, error) {
	var name string
	switch v := value.(type) {
	case string:
		name = v
	case fmt.Stringer:
		name = v.String()
	default:
		return nil, fmt.Errorf("Enum %q cannot represent value: %v", typ.Name, value)
	}
	if typ.EnumValue(name) == nil {
		return nil, fmt.Errorf("Enum %q cannot represent value: %q", typ.Name, name)
	}
	return name, nil
}

// PropertyValue reads name from source: a map key, or an exported struct
// field whose json tag or name matches. Pointers are dereferenced. Missing
// properties read as nil.
func PropertyValue(source any, name string) any {
	switch s := source.(type) {
	case nil:
		return nil
	case map[string]any:
		return s[name]
	}
	rv := reflect.ValueOf(source)
	for rv.Kind() == reflect.Pointer || rv.Kind() == reflect.Interface {
		if rv.IsNil() {
			return nil
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.Map:
		if rv.Type().Key().Kind() != reflect.String {
			return nil
		}
		v := rv.MapIndex(reflect.ValueOf(name).Convert(rv.Type().Key()))
		if !v.IsValid() {
			return nil
		}
		return v.Interface()
	case reflect.Struct:
		if f, ok := structField(rv, name); ok {
			return f.Interface()
		}
	}
	return nil
}

func structField(rv reflect.Value, name string) (reflect.Value, bool) {
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}
		if tag, _, _ := strings.Cut(sf.Tag.Get("json"), ","); tag == name {
			return rv.Field(i), true
		}
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if sf.IsExported() && strings.EqualFold(sf.Name, name) {
			return rv.Field(i), true
		}
	}
	return reflect.Value{}, false
}

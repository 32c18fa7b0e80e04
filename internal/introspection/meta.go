package introspection

import (
	"slices"
	"strings"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

// resolver computes one field of an introspection type from its source.
type resolver func(source any, args map[string]any) any

// metaFields maps introspection type and field names to resolvers.
var metaFields = map[string]map[string]resolver{
	"__Schema": {
		"description":      onSchema(func(s *schema.Schema) any { return nullable(s.Description) }),
		"types":            onSchema(schemaTypes),
		"queryType":        onSchema(func(s *schema.Schema) any { return typeOrNull(s.QueryType) }),
		"mutationType":     onSchema(func(s *schema.Schema) any { return typeOrNull(s.MutationType) }),
		"subscriptionType": onSchema(func(s *schema.Schema) any { return typeOrNull(s.SubscriptionType) }),
		"directives":       onSchema(schemaDirectives),
	},
	"__Type": {
		"kind": onType(
			func(t *schema.Type, _ map[string]any) any { return string(t.Kind) },
			func(ref *schema.TypeRef) any { return string(ref.Kind) }),
		"name":        onType(func(t *schema.Type, _ map[string]any) any { return t.Name }, nil),
		"description": onType(func(t *schema.Type, _ map[string]any) any { return nullable(t.Description) }, nil),
		"specifiedByURL": onType(func(t *schema.Type, _ map[string]any) any {
			if t.SpecifiedByURL == nil {
				return nil
			}
			return *t.SpecifiedByURL
		}, nil),
		"fields":        onType(typeFields, nil),
		"interfaces":    onType(typeInterfaces, nil),
		"possibleTypes": onType(typePossibleTypes, nil),
		"enumValues":    onType(typeEnumValues, nil),
		"inputFields":   onType(typeInputFields, nil),
		"isOneOf": onType(func(t *schema.Type, _ map[string]any) any {
			if t.Kind != schema.TypeKindInputObject {
				return nil
			}
			return t.OneOf
		}, nil),
		"ofType": onType(nil, func(ref *schema.TypeRef) any { return typeOf(ref.OfType) }),
	},
	"__Field": {
		"name":              on(func(f *schema.Field, _ map[string]any) any { return f.Name }),
		"description":       on(func(f *schema.Field, _ map[string]any) any { return nullable(f.Description) }),
		"args":              on(func(f *schema.Field, args map[string]any) any { return visibleInputValues(f.Arguments, args) }),
		"type":              on(func(f *schema.Field, _ map[string]any) any { return typeOf(f.Type) }),
		"isDeprecated":      on(func(f *schema.Field, _ map[string]any) any { return f.IsDeprecated }),
		"deprecationReason": on(func(f *schema.Field, _ map[string]any) any { return reason(f.IsDeprecated, f.DeprecationReason) }),
	},
	"__InputValue": {
		"name":        on(func(v *schema.InputValue, _ map[string]any) any { return v.Name }),
		"description": on(func(v *schema.InputValue, _ map[string]any) any { return nullable(v.Description) }),
		"type":        on(func(v *schema.InputValue, _ map[string]any) any { return typeOf(v.Type) }),
		"defaultValue": on(func(v *schema.InputValue, _ map[string]any) any {
			if v.DefaultValue == nil {
				return nil
			}
			return language.Print(v.DefaultValue)
		}),
		"isDeprecated":      on(func(v *schema.InputValue, _ map[string]any) any { return v.IsDeprecated }),
		"deprecationReason": on(func(v *schema.InputValue, _ map[string]any) any { return reason(v.IsDeprecated, v.DeprecationReason) }),
	},
	"__EnumValue": {
		"name":              on(func(v *schema.EnumValue, _ map[string]any) any { return v.Name }),
		"description":       on(func(v *schema.EnumValue, _ map[string]any) any { return nullable(v.Description) }),
		"isDeprecated":      on(func(v *schema.EnumValue, _ map[string]any) any { return v.IsDeprecated }),
		"deprecationReason": on(func(v *schema.EnumValue, _ map[string]any) any { return reason(v.IsDeprecated, v.DeprecationReason) }),
	},
	"__Directive": {
		"name":         on(func(d *schema.Directive, _ map[string]any) any { return d.Name }),
		"description":  on(func(d *schema.Directive, _ map[string]any) any { return nullable(d.Description) }),
		"isRepeatable": on(func(d *schema.Directive, _ map[string]any) any { return d.IsRepeatable }),
		"locations":    on(func(d *schema.Directive, _ map[string]any) any { return slices.Clone(d.Locations) }),
		"args":         on(func(d *schema.Directive, args map[string]any) any { return visibleInputValues(d.Arguments, args) }),
	},
}

// on adapts fn to a resolver for sources of type T. Other sources resolve
// to null.
func on[T any](fn func(T, map[string]any) any) resolver {
	return func(source any, args map[string]any) any {
		v, ok := source.(T)
		if !ok {
			return nil
		}
		return fn(v, args)
	}
}

func onSchema(fn func(*schema.Schema) any) resolver {
	return on(func(s *schema.Schema, _ map[string]any) any { return fn(s) })
}

// onType builds a __Type resolver. A __Type is either a named type or a
// LIST or NON_NULL wrapper; a nil function resolves that form to null.
func onType(named func(*schema.Type, map[string]any) any, wrapper func(*schema.TypeRef) any) resolver {
	return func(source any, args map[string]any) any {
		switch t := source.(type) {
		case *schema.Type:
			if named != nil {
				return named(t, args)
			}
		case *schema.TypeRef:
			if wrapper != nil {
				return wrapper(t)
			}
		}
		return nil
	}
}

// typeOf returns the __Type source of a reference: the type itself for a
// named reference, the reference for a wrapper.
func typeOf(ref *schema.TypeRef) any {
	if ref == nil {
		return nil
	}
	if ref.Kind == schema.TypeRefKindNamed {
		return typeOrNull(ref.Type)
	}
	return ref
}

func typeOrNull(t *schema.Type) any {
	if t == nil {
		return nil
	}
	return t
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

func reason(deprecated bool, r string) any {
	if !deprecated {
		return nil
	}
	return r
}

func includeDeprecated(args map[string]any) bool {
	b, _ := args["includeDeprecated"].(bool)
	return b
}

func schemaTypes(s *schema.Schema) any {
	names := s.TypeNames()
	types := make([]*schema.Type, len(names))
	for i, name := range names {
		types[i] = s.Types[name]
	}
	return types
}

func schemaDirectives(s *schema.Schema) any {
	dirs := make([]*schema.Directive, 0, len(s.Directives))
	for _, d := range s.Directives {
		dirs = append(dirs, d)
	}
	slices.SortFunc(dirs, func(a, b *schema.Directive) int { return strings.Compare(a.Name, b.Name) })
	return dirs
}

func hasFields(t *schema.Type) bool {
	return t.Kind == schema.TypeKindObject || t.Kind == schema.TypeKindInterface
}

func typeFields(t *schema.Type, args map[string]any) any {
	if !hasFields(t) {
		return nil
	}
	all := includeDeprecated(args)
	fields := make([]*schema.Field, 0, len(t.Fields))
	for _, f := range t.Fields {
		if all || !f.IsDeprecated {
			fields = append(fields, f)
		}
	}
	return fields
}

func typeInterfaces(t *schema.Type, _ map[string]any) any {
	if !hasFields(t) {
		return nil
	}
	return append(make([]*schema.Type, 0, len(t.Interfaces)), t.Interfaces...)
}

func typePossibleTypes(t *schema.Type, _ map[string]any) any {
	if !t.IsAbstract() {
		return nil
	}
	types := append(make([]*schema.Type, 0, len(t.PossibleTypes)), t.PossibleTypes...)
	slices.SortFunc(types, func(a, b *schema.Type) int { return strings.Compare(a.Name, b.Name) })
	return types
}

func typeEnumValues(t *schema.Type, args map[string]any) any {
	if t.Kind != schema.TypeKindEnum {
		return nil
	}
	all := includeDeprecated(args)
	values := make([]*schema.EnumValue, 0, len(t.EnumValues))
	for _, v := range t.EnumValues {
		if all || !v.IsDeprecated {
			values = append(values, v)
		}
	}
	return values
}

func typeInputFields(t *schema.Type, args map[string]any) any {
	if t.Kind != schema.TypeKindInputObject {
		return nil
	}
	return visibleInputValues(t.InputFields, args)
}

func visibleInputValues(values []*schema.InputValue, args map[string]any) []*schema.InputValue {
	all := includeDeprecated(args)
	out := make([]*schema.InputValue, 0, len(values))
	for _, v := range values {
		if all || !v.IsDeprecated {
			out = append(out, v)
		}
	}
	return out
}

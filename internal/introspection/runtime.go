// Package introspection answers the __schema and __type meta fields and
// the fields of the introspection types (__Schema, __Type, __Field, ...)
// from a built schema.
package introspection

import (
	"context"

	executor "github.com/hanpama/gqlcore/internal/executor"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

// Wrap returns a Runtime that resolves introspection fields itself and
// delegates everything else to base.
func Wrap(base executor.Runtime) executor.Runtime {
	return &runtime{base: base}
}

type runtime struct {
	base executor.Runtime
}

func (r *runtime) ResolveField(ctx context.Context, field *schema.Field, p schema.ResolveParams) (any, error) {
	info := p.Info
	if info.Schema != nil && info.ParentType == info.Schema.QueryType {
		switch field.Name {
		case "__schema":
			return info.Schema, nil
		case "__type":
			name, _ := p.Args["name"].(string)
			if t := info.Schema.Type(name); t != nil {
				return t, nil
			}
			return nil, nil
		}
	}
	if info.ParentType != nil {
		if fields, ok := metaFields[info.ParentType.Name]; ok {
			if resolve, ok := fields[field.Name]; ok {
				return resolve(p.Source, p.Args), nil
			}
		}
	}
	return r.base.ResolveField(ctx, field, p)
}

func (r *runtime) Subscribe(ctx context.Context, field *schema.Field, p schema.ResolveParams, sink schema.EventSink) error {
	return r.base.Subscribe(ctx, field, p, sink)
}

func (r *runtime) ResolveType(ctx context.Context, abstract *schema.Type, value any, info schema.ResolveInfo) (string, error) {
	return r.base.ResolveType(ctx, abstract, value, info)
}

func (r *runtime) SerializeLeafValue(ctx context.Context, typ *schema.Type, value any) (any, error) {
	return r.base.SerializeLeafValue(ctx, typ, value)
}

package schema

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

// Builder accumulates SDL documents and programmatic declarations and links
// them into a Schema. Declarations may reference types that are declared
// later or not at all until Build; names are resolved only when Build runs.
//
// A Builder is not safe for concurrent use. Build may be called more than
// once and never mutates the Builder.
type Builder struct {
	docs     []*language.TypeSystemDocument
	decls    []language.Definition
	declared map[string]*TypeBuilder
	roots    *language.SchemaDefinition

	fieldHooks map[fieldKey]*fieldHooks
	fieldOrder []fieldKey
	typeHooks  map[string]*typeHooks
	typeOrder  []string

	errs BuildErrors
}

type fieldKey struct{ typeName, fieldName string }

type fieldHooks struct {
	resolve   ResolveFunc
	subscribe SubscribeFunc
	async     bool
}

type typeHooks struct {
	resolveType ResolveTypeFunc
	isTypeOf    IsTypeOfFunc
	coercion    *scalarCoercion
}

func NewBuilder() *Builder {
	return &Builder{
		declared:   make(map[string]*TypeBuilder),
		fieldHooks: make(map[fieldKey]*fieldHooks),
		typeHooks:  make(map[string]*typeHooks),
	}
}

// AddSDL parses text as a type-system document and adds it.
func (b *Builder) AddSDL(name, text string) error {
	doc, err := language.ParseTypeSystemSource(language.NewSource(name, text))
	if err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	b.AddDocument(doc)
	return nil
}

// AddDocument adds a parsed type-system document.
func (b *Builder) AddDocument(doc *language.TypeSystemDocument) *Builder {
	b.docs = append(b.docs, doc)
	return b
}

// Roots names the root operation types. Empty names are left undefined.
// Without Roots or a schema definition, the types named Query, Mutation and
// Subscription are used.
func (b *Builder) Roots(query, mutation, subscription string) *Builder {
	def := &language.SchemaDefinition{}
	roots := []struct {
		op   language.OperationType
		name string
	}{{language.Query, query}, {language.Mutation, mutation}, {language.Subscription, subscription}}
	for _, r := range roots {
		if r.name == "" {
			continue
		}
		def.OperationTypes = append(def.OperationTypes, &language.OperationTypeDefinition{
			Operation: r.op,
			Type:      &language.NamedType{Name: &language.Name{Value: r.name}},
		})
	}
	b.roots = def
	return b
}

func (b *Builder) Object(name string) *TypeBuilder {
	return b.declare(name, TypeKindObject, func(n *language.Name) language.Definition {
		return &language.ObjectTypeDefinition{Name: n}
	})
}

func (b *Builder) Interface(name string) *TypeBuilder {
	return b.declare(name, TypeKindInterface, func(n *language.Name) language.Definition {
		return &language.InterfaceTypeDefinition{Name: n}
	})
}

func (b *Builder) Union(name string, members ...string) *TypeBuilder {
	return b.declare(name, TypeKindUnion, func(n *language.Name) language.Definition {
		return &language.UnionTypeDefinition{Name: n}
	}).Members(members...)
}

func (b *Builder) Enum(name string, values ...string) *TypeBuilder {
	return b.declare(name, TypeKindEnum, func(n *language.Name) language.Definition {
		return &language.EnumTypeDefinition{Name: n}
	}).Values(values...)
}

func (b *Builder) Scalar(name string) *TypeBuilder {
	return b.declare(name, TypeKindScalar, func(n *language.Name) language.Definition {
		return &language.ScalarTypeDefinition{Name: n}
	})
}

func (b *Builder) InputObject(name string) *TypeBuilder {
	return b.declare(name, TypeKindInputObject, func(n *language.Name) language.Definition {
		return &language.InputObjectTypeDefinition{Name: n}
	})
}

// declare returns the builder of an earlier declaration of the same name
// and kind. A different kind is a DuplicateType error.
func (b *Builder) declare(name string, kind TypeKind, newDef func(*language.Name) language.Definition) *TypeBuilder {
	if tb, ok := b.declared[name]; ok {
		if tb.kind != kind {
			b.errs = append(b.errs, errDuplicateType(name, nil))
			return &TypeBuilder{b: b, name: name, kind: kind, def: newDef(&language.Name{Value: name})}
		}
		return tb
	}
	tb := &TypeBuilder{b: b, name: name, kind: kind, def: newDef(&language.Name{Value: name})}
	b.declared[name] = tb
	b.decls = append(b.decls, tb.def)
	return tb
}

// Resolve attaches a synchronous resolver to typeName.fieldName.
func (b *Builder) Resolve(typeName, fieldName string, fn ResolveFunc) *Builder {
	h := b.field(typeName, fieldName)
	h.resolve, h.async = fn, false
	return b
}

// ResolveAsync attaches a resolver that the executor dispatches concurrently
// with its sibling fields.
func (b *Builder) ResolveAsync(typeName, fieldName string, fn ResolveFunc) *Builder {
	h := b.field(typeName, fieldName)
	h.resolve, h.async = fn, true
	return b
}

// Subscribe attaches the event source of a subscription root field.
func (b *Builder) Subscribe(typeName, fieldName string, fn SubscribeFunc) *Builder {
	b.field(typeName, fieldName).subscribe = fn
	return b
}

// ResolveType attaches the concrete type resolver of an interface or union.
func (b *Builder) ResolveType(typeName string, fn ResolveTypeFunc) *Builder {
	b.typ(typeName).resolveType = fn
	return b
}

// IsTypeOf attaches the membership predicate of an object type.
func (b *Builder) IsTypeOf(typeName string, fn IsTypeOfFunc) *Builder {
	b.typ(typeName).isTypeOf = fn
	return b
}

// ScalarCoercion replaces the coercion functions of a scalar. Nil functions
// keep the scalar's default.
func (b *Builder) ScalarCoercion(name string, serialize SerializeFunc, parseValue ParseValueFunc, parseLiteral ParseLiteralFunc) *Builder {
	b.typ(name).coercion = &scalarCoercion{serialize: serialize, parseValue: parseValue, parseLiteral: parseLiteral}
	return b
}

func (b *Builder) field(typeName, fieldName string) *fieldHooks {
	key := fieldKey{typeName, fieldName}
	h, ok := b.fieldHooks[key]
	if !ok {
		h = &fieldHooks{}
		b.fieldHooks[key] = h
		b.fieldOrder = append(b.fieldOrder, key)
	}
	return h
}

func (b *Builder) typ(name string) *typeHooks {
	h, ok := b.typeHooks[name]
	if !ok {
		h = &typeHooks{}
		b.typeHooks[name] = h
		b.typeOrder = append(b.typeOrder, name)
	}
	return h
}

// TypeBuilder declares one type programmatically. Field and argument types
// are written in SDL notation and resolved when the schema is built.
type TypeBuilder struct {
	b    *Builder
	name string
	kind TypeKind
	def  language.Definition
}

func (t *TypeBuilder) Description(text string) *TypeBuilder {
	desc := &language.StringValue{Value: text, Block: true}
	switch d := t.def.(type) {
	case *language.ObjectTypeDefinition:
		d.Description = desc
	case *language.InterfaceTypeDefinition:
		d.Description = desc
	case *language.UnionTypeDefinition:
		d.Description = desc
	case *language.EnumTypeDefinition:
		d.Description = desc
	case *language.ScalarTypeDefinition:
		d.Description = desc
	case *language.InputObjectTypeDefinition:
		d.Description = desc
	}
	return t
}

// Implements adds interfaces to an object or interface type.
func (t *TypeBuilder) Implements(names ...string) *TypeBuilder {
	switch d := t.def.(type) {
	case *language.ObjectTypeDefinition:
		d.Interfaces = append(d.Interfaces, namedTypes(names)...)
	case *language.InterfaceTypeDefinition:
		d.Interfaces = append(d.Interfaces, namedTypes(names)...)
	default:
		t.misuse("Implements")
	}
	return t
}

// Field declares a field. decl is the field name optionally followed by an
// argument list, e.g. "user(id: ID!)"; typeRef is e.g. "[User!]!".
func (t *TypeBuilder) Field(decl, typeRef string, resolve ResolveFunc) *TypeBuilder {
	if t.addField(decl, typeRef) && resolve != nil {
		t.b.Resolve(t.name, fieldName(decl), resolve)
	}
	return t
}

// AsyncField is Field with a resolver dispatched concurrently.
func (t *TypeBuilder) AsyncField(decl, typeRef string, resolve ResolveFunc) *TypeBuilder {
	if t.addField(decl, typeRef) && resolve != nil {
		t.b.ResolveAsync(t.name, fieldName(decl), resolve)
	}
	return t
}

// SubscriptionField declares a subscription root field with its event source.
// resolve maps each event to the field value; nil uses the event itself.
func (t *TypeBuilder) SubscriptionField(decl, typeRef string, subscribe SubscribeFunc, resolve ResolveFunc) *TypeBuilder {
	if t.addField(decl, typeRef) {
		t.b.Subscribe(t.name, fieldName(decl), subscribe)
		if resolve != nil {
			t.b.Resolve(t.name, fieldName(decl), resolve)
		}
	}
	return t
}

func (t *TypeBuilder) addField(decl, typeRef string) bool {
	fd, err := language.ParseFieldDefinition(decl + ": " + typeRef)
	if err != nil {
		t.b.errs = append(t.b.errs, errDefinition(t.name, nil, "Invalid field %q on type %q: %v", decl, t.name, err))
		return false
	}
	switch d := t.def.(type) {
	case *language.ObjectTypeDefinition:
		d.Fields = append(d.Fields, fd)
	case *language.InterfaceTypeDefinition:
		d.Fields = append(d.Fields, fd)
	default:
		t.misuse("Field")
		return false
	}
	return true
}

// InputField declares an input object field; typeRef may carry a default,
// e.g. "Int = 10".
func (t *TypeBuilder) InputField(name, typeRef string) *TypeBuilder {
	d, ok := t.def.(*language.InputObjectTypeDefinition)
	if !ok {
		t.misuse("InputField")
		return t
	}
	iv, err := language.ParseInputValueDefinition(name + ": " + typeRef)
	if err != nil {
		t.b.errs = append(t.b.errs, errDefinition(t.name, nil, "Invalid input field %q on type %q: %v", name, t.name, err))
		return t
	}
	d.Fields = append(d.Fields, iv)
	return t
}

// Members adds member types to a union.
func (t *TypeBuilder) Members(names ...string) *TypeBuilder {
	if len(names) == 0 {
		return t
	}
	d, ok := t.def.(*language.UnionTypeDefinition)
	if !ok {
		t.misuse("Members")
		return t
	}
	d.Types = append(d.Types, namedTypes(names)...)
	return t
}

// Values adds values to an enum.
func (t *TypeBuilder) Values(names ...string) *TypeBuilder {
	if len(names) == 0 {
		return t
	}
	d, ok := t.def.(*language.EnumTypeDefinition)
	if !ok {
		t.misuse("Values")
		return t
	}
	for _, n := range names {
		d.Values = append(d.Values, &language.EnumValueDefinition{Name: &language.Name{Value: n}})
	}
	return t
}

func (t *TypeBuilder) ResolveType(fn ResolveTypeFunc) *TypeBuilder {
	t.b.ResolveType(t.name, fn)
	return t
}

func (t *TypeBuilder) IsTypeOf(fn IsTypeOfFunc) *TypeBuilder {
	t.b.IsTypeOf(t.name, fn)
	return t
}

func (t *TypeBuilder) Coercion(serialize SerializeFunc, parseValue ParseValueFunc, parseLiteral ParseLiteralFunc) *TypeBuilder {
	t.b.ScalarCoercion(t.name, serialize, parseValue, parseLiteral)
	return t
}

func (t *TypeBuilder) misuse(method string) {
	t.b.errs = append(t.b.errs, errDefinition(t.name, nil, "%s is not supported on %s type %q.", method, t.kind, t.name))
}

func namedTypes(names []string) []*language.NamedType {
	out := make([]*language.NamedType, len(names))
	for i, n := range names {
		out[i] = &language.NamedType{Name: &language.Name{Value: n}}
	}
	return out
}

// fieldName strips the argument list from a field declaration.
func fieldName(decl string) string {
	for i := 0; i < len(decl); i++ {
		if decl[i] == '(' || decl[i] == ' ' {
			return decl[:i]
		}
	}
	return decl
}

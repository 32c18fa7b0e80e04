package schema

import (
	"fmt"

	language "github.com/hanpama/gqlcore/internal/language"
)

// buildState is the arena of one Build call. Types are registered as named
// slots first and linked by pointer afterwards, so circular references
// between types never require recursive construction.
type buildState struct {
	b      *Builder
	schema *Schema

	types      map[string]*Type
	order      []string
	parts      map[string][]language.Definition // definition first, then extensions
	builtin    map[string]bool
	extensions []language.Definition

	directiveDefs  map[string]*language.DirectiveDefinition
	directiveOrder []string

	schemaDef  *language.SchemaDefinition
	schemaExts []*language.SchemaExtension

	errs BuildErrors
}

// Build links every declaration into a Schema. On failure it returns
// BuildErrors listing every violation found and no schema.
func (b *Builder) Build() (*Schema, error) {
	st := &buildState{
		b:             b,
		schema:        &Schema{Types: make(map[string]*Type), Directives: make(map[string]*Directive)},
		types:         make(map[string]*Type),
		parts:         make(map[string][]language.Definition),
		builtin:       make(map[string]bool),
		directiveDefs: make(map[string]*language.DirectiveDefinition),
	}
	st.errs = append(st.errs, b.errs...)

	// Registration
	for _, def := range builtinDocument().Definitions {
		st.register(def, true, false)
	}
	for _, doc := range b.docs {
		for _, def := range doc.Definitions {
			st.register(def, false, false)
		}
	}
	for _, def := range b.decls {
		st.register(def, false, true)
	}
	if b.roots != nil {
		st.register(b.roots, false, true)
	}

	// Extension merge
	st.mergeExtensions()

	// Linking
	for _, name := range st.order {
		st.linkType(st.types[name])
	}
	for _, name := range st.directiveOrder {
		st.linkDirective(st.directiveDefs[name])
	}
	st.linkRoots()

	st.schema.Types = st.types
	st.schema.index()
	st.populatePossibleTypes()

	// Checks
	for _, name := range st.order {
		st.checkType(st.types[name])
	}
	for _, name := range st.directiveOrder {
		st.checkDirective(st.schema.Directives[name])
	}

	st.attachHooks()

	if len(st.errs) > 0 {
		return nil, st.errs
	}
	return st.schema, nil
}

func (st *buildState) addError(err ...*BuildError) {
	st.errs = append(st.errs, err...)
}

func (st *buildState) register(def language.Definition, builtin, programmatic bool) {
	switch d := def.(type) {
	case *language.SchemaExtension:
		st.schemaExts = append(st.schemaExts, d)
	case *language.ScalarTypeExtension, *language.ObjectTypeExtension, *language.InterfaceTypeExtension,
		*language.UnionTypeExtension, *language.EnumTypeExtension, *language.InputObjectTypeExtension:
		st.extensions = append(st.extensions, d)
	case *language.SchemaDefinition:
		if st.schemaDef != nil {
			st.addError(errDefinition("schema", d, "Must provide only one schema definition."))
			return
		}
		st.schemaDef = d
	case *language.DirectiveDefinition:
		name := d.Name.Value
		if _, exists := st.directiveDefs[name]; exists {
			if st.builtin["@"+name] && !builtin {
				return
			}
			st.addError(errDefinition("@"+name, d, "There can be only one directive named %q.", "@"+name))
			return
		}
		st.directiveDefs[name] = d
		st.directiveOrder = append(st.directiveOrder, name)
		st.builtin["@"+name] = builtin
	case language.TypeDefinition:
		name := d.TypeName()
		kind := definitionKind(d)
		if t, exists := st.types[name]; exists {
			switch {
			case t.Kind == kind && st.builtin[name]:
				// redeclaring a built-in is allowed and has no effect
			case t.Kind == kind && programmatic:
				st.extensions = append(st.extensions, d)
			default:
				st.addError(errDuplicateType(name, d))
			}
			return
		}
		if !builtin && IsIntrospectionType(name) {
			st.addError(errDefinition(name, d, "Name %q must not begin with \"__\", which is reserved by GraphQL introspection.", name))
			return
		}
		st.types[name] = &Type{Name: name, Kind: kind, Description: description(definitionDescription(d))}
		st.order = append(st.order, name)
		st.parts[name] = []language.Definition{d}
		st.builtin[name] = builtin
	}
}

func (st *buildState) mergeExtensions() {
	for _, ext := range st.extensions {
		name := ext.(language.TypeDefinition).TypeName()
		t := st.types[name]
		if t == nil {
			st.addError(errExtensionNotFound(name, ext))
			continue
		}
		if definitionKind(ext) != t.Kind {
			st.addError(errExtensionKind(name, ext))
			continue
		}
		st.parts[name] = append(st.parts[name], ext)
	}
}

func (st *buildState) linkType(t *Type) {
	fields := make(map[string]bool)
	seen := make(map[string]bool)
	for _, part := range st.parts[t.Name] {
		switch d := underlying(part).(type) {
		case *language.ScalarTypeDefinition:
			t.Directives = append(t.Directives, d.Directives...)
			if url, ok := directiveStringArg(d.Directives, "specifiedBy", "url"); ok {
				t.SpecifiedByURL = &url
			}
		case *language.ObjectTypeDefinition:
			t.Directives = append(t.Directives, d.Directives...)
			t.Interfaces = append(t.Interfaces, st.linkNamed(t.Name, d.Interfaces, seen, "Type %q can only implement %q once.")...)
			t.Fields = append(t.Fields, st.linkFields(t, d.Fields, fields)...)
		case *language.InterfaceTypeDefinition:
			t.Directives = append(t.Directives, d.Directives...)
			t.Interfaces = append(t.Interfaces, st.linkNamed(t.Name, d.Interfaces, seen, "Type %q can only implement %q once.")...)
			t.Fields = append(t.Fields, st.linkFields(t, d.Fields, fields)...)
		case *language.UnionTypeDefinition:
			t.Directives = append(t.Directives, d.Directives...)
			t.PossibleTypes = append(t.PossibleTypes, st.linkNamed(t.Name, d.Types, seen, "Union type %q can only include type %q once.")...)
		case *language.EnumTypeDefinition:
			t.Directives = append(t.Directives, d.Directives...)
			for _, v := range d.Values {
				if seen[v.Name.Value] {
					st.addError(errDefinition(t.Name, v, "Enum value \"%s.%s\" can only be defined once.", t.Name, v.Name.Value))
					continue
				}
				seen[v.Name.Value] = true
				deprecated, reason := deprecation(v.Directives)
				t.EnumValues = append(t.EnumValues, &EnumValue{
					Name:              v.Name.Value,
					Description:       description(v.Description),
					IsDeprecated:      deprecated,
					DeprecationReason: reason,
					Directives:        v.Directives,
				})
			}
		case *language.InputObjectTypeDefinition:
			t.Directives = append(t.Directives, d.Directives...)
			if hasDirective(d.Directives, "oneOf") {
				t.OneOf = true
			}
			for _, f := range d.Fields {
				if fields[f.Name.Value] {
					st.addError(errDefinition(t.Name, f, "Input field \"%s.%s\" can only be defined once.", t.Name, f.Name.Value))
					continue
				}
				fields[f.Name.Value] = true
				t.InputFields = append(t.InputFields, st.linkInputValue(f))
			}
		}
	}
}

func (st *buildState) linkNamed(owner string, refs []*language.NamedType, seen map[string]bool, dupFormat string) []*Type {
	var out []*Type
	for _, ref := range refs {
		name := ref.Name.Value
		if seen[name] {
			st.addError(errDefinition(owner, ref, dupFormat, owner, name))
			continue
		}
		seen[name] = true
		t := st.types[name]
		if t == nil {
			st.addError(errUnknownType(name, ref))
			continue
		}
		out = append(out, t)
	}
	return out
}

func (st *buildState) linkFields(owner *Type, defs []*language.FieldDefinition, seen map[string]bool) []*Field {
	out := make([]*Field, 0, len(defs))
	for _, fd := range defs {
		name := fd.Name.Value
		if seen[name] {
			st.addError(errDefinition(owner.Name, fd, "Field \"%s.%s\" can only be defined once.", owner.Name, name))
			continue
		}
		seen[name] = true
		deprecated, reason := deprecation(fd.Directives)
		f := &Field{
			Name:              name,
			Description:       description(fd.Description),
			Type:              st.linkTypeRef(fd.Type),
			IsDeprecated:      deprecated,
			DeprecationReason: reason,
			Directives:        fd.Directives,
		}
		for _, arg := range fd.Arguments {
			if f.Argument(arg.Name.Value) != nil {
				st.addError(errDefinition(owner.Name, arg, "Argument \"%s.%s(%s:)\" can only be defined once.", owner.Name, name, arg.Name.Value))
				continue
			}
			f.Arguments = append(f.Arguments, st.linkInputValue(arg))
		}
		out = append(out, f)
	}
	return out
}

func (st *buildState) linkInputValue(def *language.InputValueDefinition) *InputValue {
	deprecated, reason := deprecation(def.Directives)
	return &InputValue{
		Name:              def.Name.Value,
		Description:       description(def.Description),
		Type:              st.linkTypeRef(def.Type),
		DefaultValue:      def.DefaultValue,
		IsDeprecated:      deprecated,
		DeprecationReason: reason,
		Directives:        def.Directives,
	}
}

func (st *buildState) linkTypeRef(t language.Type) *TypeRef {
	switch t := t.(type) {
	case *language.NonNullType:
		return NonNullType(st.linkTypeRef(t.Type))
	case *language.ListType:
		return ListType(st.linkTypeRef(t.Type))
	case *language.NamedType:
		ref := &TypeRef{Kind: TypeRefKindNamed, Named: t.Name.Value, Type: st.types[t.Name.Value]}
		if ref.Type == nil {
			st.addError(errUnknownType(t.Name.Value, t))
		}
		return ref
	}
	panic(fmt.Sprintf("schema: unexpected type reference %T", t))
}

func (st *buildState) linkDirective(def *language.DirectiveDefinition) {
	d := &Directive{
		Name:         def.Name.Value,
		Description:  description(def.Description),
		IsRepeatable: def.Repeatable,
	}
	for _, loc := range def.Locations {
		d.Locations = append(d.Locations, loc.Value)
	}
	for _, arg := range def.Arguments {
		if d.Argument(arg.Name.Value) != nil {
			st.addError(errDefinition("@"+d.Name, arg, "Argument \"@%s(%s:)\" can only be defined once.", d.Name, arg.Name.Value))
			continue
		}
		d.Arguments = append(d.Arguments, st.linkInputValue(arg))
	}
	st.schema.Directives[d.Name] = d
}

func (st *buildState) linkRoots() {
	var defs []*language.OperationTypeDefinition
	if st.schemaDef != nil {
		st.schema.Description = description(st.schemaDef.Description)
		defs = append(defs, st.schemaDef.OperationTypes...)
	}
	for _, ext := range st.schemaExts {
		defs = append(defs, ext.OperationTypes...)
	}
	if st.schemaDef == nil && len(defs) == 0 {
		st.schema.QueryType = st.defaultRoot("Query")
		st.schema.MutationType = st.defaultRoot("Mutation")
		st.schema.SubscriptionType = st.defaultRoot("Subscription")
	}
	for _, def := range defs {
		name := def.Type.Name.Value
		t := st.types[name]
		if t == nil {
			st.addError(errUnknownType(name, def.Type))
			continue
		}
		slot := st.rootSlot(def.Operation)
		if *slot != nil {
			st.addError(errDefinition("schema", def, "Type for %s already defined in the schema.", def.Operation))
			continue
		}
		if t.Kind != TypeKindObject {
			st.addError(errDefinition(name, def, "%s root type must be Object type, it cannot be %s.", rootLabel(def.Operation), name))
			continue
		}
		*slot = t
	}
	if st.schema.QueryType == nil {
		st.addError(errDefinition("schema", nil, "Query root type must be provided."))
	}
}

func (st *buildState) defaultRoot(name string) *Type {
	t := st.types[name]
	if t == nil || t.Kind != TypeKindObject {
		return nil
	}
	return t
}

func (st *buildState) rootSlot(op language.OperationType) **Type {
	switch op {
	case language.Mutation:
		return &st.schema.MutationType
	case language.Subscription:
		return &st.schema.SubscriptionType
	}
	return &st.schema.QueryType
}

func rootLabel(op language.OperationType) string {
	switch op {
	case language.Mutation:
		return "Mutation"
	case language.Subscription:
		return "Subscription"
	}
	return "Query"
}

func (st *buildState) populatePossibleTypes() {
	for _, name := range st.order {
		t := st.types[name]
		if t.Kind != TypeKindObject {
			continue
		}
		for _, iface := range t.Interfaces {
			if iface.Kind == TypeKindInterface {
				iface.PossibleTypes = append(iface.PossibleTypes, t)
			}
		}
	}
}

func (st *buildState) attachHooks() {
	for _, name := range st.order {
		t := st.types[name]
		if t.Kind != TypeKindScalar {
			continue
		}
		c, ok := builtinScalars[name]
		if !ok || !st.builtin[name] {
			c = customScalar
		}
		t.Serialize, t.ParseValue, t.ParseLiteral = c.serialize, c.parseValue, c.parseLiteral
	}

	for _, name := range st.b.typeOrder {
		h := st.b.typeHooks[name]
		t := st.types[name]
		if t == nil {
			st.addError(errUnknownType(name, nil))
			continue
		}
		if h.resolveType != nil {
			if !t.IsAbstract() {
				st.addError(errDefinition(name, nil, "Cannot attach a type resolver to %s type %q.", t.Kind, name))
			}
			t.ResolveType = h.resolveType
		}
		if h.isTypeOf != nil {
			if t.Kind != TypeKindObject {
				st.addError(errDefinition(name, nil, "Cannot attach IsTypeOf to %s type %q.", t.Kind, name))
			}
			t.IsTypeOf = h.isTypeOf
		}
		if c := h.coercion; c != nil {
			if t.Kind != TypeKindScalar {
				st.addError(errDefinition(name, nil, "Cannot attach scalar coercion to %s type %q.", t.Kind, name))
				continue
			}
			if c.serialize != nil {
				t.Serialize = c.serialize
			}
			if c.parseValue != nil {
				t.ParseValue = c.parseValue
				if c.parseLiteral == nil {
					t.ParseLiteral = literalParser(c.parseValue)
				}
			}
			if c.parseLiteral != nil {
				t.ParseLiteral = c.parseLiteral
			}
		}
	}

	for _, key := range st.b.fieldOrder {
		h := st.b.fieldHooks[key]
		t := st.types[key.typeName]
		if t == nil {
			st.addError(errUnknownType(key.typeName, nil))
			continue
		}
		f := t.Field(key.fieldName)
		if f == nil {
			st.addError(errDefinition(key.typeName, nil, "Cannot attach a resolver to undefined field \"%s.%s\".", key.typeName, key.fieldName))
			continue
		}
		f.Resolve, f.Subscribe, f.Async = h.resolve, h.subscribe, h.async
	}
}

// underlying returns the definition an extension wraps.
func underlying(def language.Definition) language.Definition {
	switch d := def.(type) {
	case *language.ScalarTypeExtension:
		return &d.ScalarTypeDefinition
	case *language.ObjectTypeExtension:
		return &d.ObjectTypeDefinition
	case *language.InterfaceTypeExtension:
		return &d.InterfaceTypeDefinition
	case *language.UnionTypeExtension:
		return &d.UnionTypeDefinition
	case *language.EnumTypeExtension:
		return &d.EnumTypeDefinition
	case *language.InputObjectTypeExtension:
		return &d.InputObjectTypeDefinition
	}
	return def
}

func definitionKind(def language.Definition) TypeKind {
	switch underlying(def).(type) {
	case *language.ScalarTypeDefinition:
		return TypeKindScalar
	case *language.ObjectTypeDefinition:
		return TypeKindObject
	case *language.InterfaceTypeDefinition:
		return TypeKindInterface
	case *language.UnionTypeDefinition:
		return TypeKindUnion
	case *language.EnumTypeDefinition:
		return TypeKindEnum
	case *language.InputObjectTypeDefinition:
		return TypeKindInputObject
	}
	return ""
}

func definitionDescription(def language.Definition) *language.StringValue {
	switch d := def.(type) {
	case *language.ScalarTypeDefinition:
		return d.Description
	case *language.ObjectTypeDefinition:
		return d.Description
	case *language.InterfaceTypeDefinition:
		return d.Description
	case *language.UnionTypeDefinition:
		return d.Description
	case *language.EnumTypeDefinition:
		return d.Description
	case *language.InputObjectTypeDefinition:
		return d.Description
	}
	return nil
}

func description(s *language.StringValue) string {
	if s == nil {
		return ""
	}
	return s.Value
}

func hasDirective(dirs []*language.Directive, name string) bool {
	for _, d := range dirs {
		if d.Name.Value == name {
			return true
		}
	}
	return false
}

func directiveStringArg(dirs []*language.Directive, name, arg string) (string, bool) {
	for _, d := range dirs {
		if d.Name.Value != name {
			continue
		}
		for _, a := range d.Arguments {
			if s, ok := a.Value.(*language.StringValue); ok && a.Name.Value == arg {
				return s.Value, true
			}
		}
	}
	return "", false
}

func deprecation(dirs []*language.Directive) (bool, string) {
	if !hasDirective(dirs, "deprecated") {
		return false, ""
	}
	if reason, ok := directiveStringArg(dirs, "deprecated", "reason"); ok {
		return true, reason
	}
	return true, "No longer supported"
}

package schema

import (
	"sort"
	"strings"

	language "github.com/hanpama/gqlcore/internal/language"
)

// Schema is a fully linked type graph. It is never mutated after Build and
// may be shared by any number of concurrent executions.
type Schema struct {
	Description      string
	QueryType        *Type
	MutationType     *Type
	SubscriptionType *Type
	Types            map[string]*Type // All named types keyed by name
	Directives       map[string]*Directive

	typeNames  []string
	metaFields map[string]*Field
}

// Type returns the named type, or nil.
func (s *Schema) Type(name string) *Type { return s.Types[name] }

// Directive returns the directive definition, or nil.
func (s *Schema) Directive(name string) *Directive { return s.Directives[name] }

// GetField returns the field of an object or interface type, or nil.
func (s *Schema) GetField(typeName, fieldName string) *Field {
	t := s.Types[typeName]
	if t == nil {
		return nil
	}
	return t.Field(fieldName)
}

// FieldFor returns the field definition a selection named name refers to on
// parent, including the meta fields __typename on every composite type and
// __schema and __type on the query root.
func (s *Schema) FieldFor(parent *Type, name string) *Field {
	if parent == nil {
		return nil
	}
	switch name {
	case "__typename":
		if parent.IsComposite() {
			return s.metaFields[name]
		}
		return nil
	case "__schema", "__type":
		if parent == s.QueryType {
			return s.metaFields[name]
		}
		return nil
	}
	return parent.Field(name)
}

// TypeFromAST links a type reference written in a document, such as a
// variable type. It returns nil when the named type is unknown.
func (s *Schema) TypeFromAST(t language.Type) *TypeRef {
	switch t := t.(type) {
	case *language.NonNullType:
		if inner := s.TypeFromAST(t.Type); inner != nil {
			return NonNullType(inner)
		}
	case *language.ListType:
		if inner := s.TypeFromAST(t.Type); inner != nil {
			return ListType(inner)
		}
	case *language.NamedType:
		if named := s.Types[t.Name.Value]; named != nil {
			return NamedType(named)
		}
	}
	return nil
}

// TypeNames returns all type names in lexical order.
func (s *Schema) TypeNames() []string { return s.typeNames }

// RootType returns the root type for an operation kind, or nil.
func (s *Schema) RootType(op language.OperationType) *Type {
	switch op {
	case language.Query:
		return s.QueryType
	case language.Mutation:
		return s.MutationType
	case language.Subscription:
		return s.SubscriptionType
	}
	return nil
}

// PossibleTypes returns the object types an abstract type may resolve to.
// For an object type it returns the type itself.
func (s *Schema) PossibleTypes(t *Type) []*Type {
	if t == nil {
		return nil
	}
	if t.Kind == TypeKindObject {
		return []*Type{t}
	}
	return t.PossibleTypes
}

// IsPossibleType reports whether object is a member of abstract.
func (s *Schema) IsPossibleType(abstract, object *Type) bool {
	if abstract == object {
		return true
	}
	for _, pt := range s.PossibleTypes(abstract) {
		if pt == object {
			return true
		}
	}
	return false
}

// IsSubType reports whether maybeSub is abstract itself, one of its possible
// types, or an interface implementing it.
func (s *Schema) IsSubType(abstract, maybeSub *Type) bool {
	if s.IsPossibleType(abstract, maybeSub) {
		return true
	}
	if maybeSub.Kind == TypeKindInterface && abstract.Kind == TypeKindInterface {
		for _, iface := range maybeSub.Interfaces {
			if iface == abstract {
				return true
			}
		}
	}
	return false
}

// Type is a named type: object, interface, union, scalar, enum or input.
type Type struct {
	Name           string
	Kind           TypeKind
	Description    string
	Fields         []*Field      // For OBJECT and INTERFACE
	Interfaces     []*Type       // For OBJECT and INTERFACE (implemented/extended)
	PossibleTypes  []*Type       // For INTERFACE and UNION
	EnumValues     []*EnumValue  // For ENUM
	InputFields    []*InputValue // For INPUT_OBJECT
	SpecifiedByURL *string
	OneOf          bool
	Directives     []*language.Directive

	// Scalar coercion. Built-in scalars always carry all three.
	Serialize    SerializeFunc
	ParseValue   ParseValueFunc
	ParseLiteral ParseLiteralFunc

	// ResolveType picks the concrete object type of an abstract value.
	ResolveType ResolveTypeFunc
	// IsTypeOf is consulted when an abstract type has no ResolveType.
	IsTypeOf IsTypeOfFunc

	fieldIndex map[string]*Field
	inputIndex map[string]*InputValue
	enumIndex  map[string]*EnumValue
}

// Field returns the named field, or nil.
func (t *Type) Field(name string) *Field { return t.fieldIndex[name] }

// InputField returns the named input field, or nil.
func (t *Type) InputField(name string) *InputValue { return t.inputIndex[name] }

// EnumValue returns the named enum value, or nil.
func (t *Type) EnumValue(name string) *EnumValue { return t.enumIndex[name] }

func (t *Type) IsLeaf() bool { return t.Kind == TypeKindScalar || t.Kind == TypeKindEnum }

func (t *Type) IsAbstract() bool { return t.Kind == TypeKindInterface || t.Kind == TypeKindUnion }

func (t *Type) IsComposite() bool {
	return t.Kind == TypeKindObject || t.Kind == TypeKindInterface || t.Kind == TypeKindUnion
}

func (t *Type) IsInputType() bool {
	return t.Kind == TypeKindScalar || t.Kind == TypeKindEnum || t.Kind == TypeKindInputObject
}

func (t *Type) IsOutputType() bool { return t.Kind != TypeKindInputObject }

// Field represents a field on an object or interface
type Field struct {
	Name              string
	Description       string
	Type              *TypeRef
	Arguments         []*InputValue
	Async             bool
	IsDeprecated      bool
	DeprecationReason string
	Directives        []*language.Directive

	// Resolve produces the field value. Nil means the runtime's default
	// property lookup on the parent value.
	Resolve ResolveFunc
	// Subscribe produces the event stream of a subscription root field.
	Subscribe SubscribeFunc
}

// Argument returns the named argument definition, or nil.
func (f *Field) Argument(name string) *InputValue {
	for _, a := range f.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// TypeKind represents the kind of a named type
type TypeKind string

const (
	TypeKindScalar      TypeKind = "SCALAR"
	TypeKindObject      TypeKind = "OBJECT"
	TypeKindInterface   TypeKind = "INTERFACE"
	TypeKindUnion       TypeKind = "UNION"
	TypeKindEnum        TypeKind = "ENUM"
	TypeKindInputObject TypeKind = "INPUT_OBJECT"
)

// TypeRef represents a reference to a type (can be wrapped). After Build a
// NAMED reference always carries the linked *Type.
type TypeRef struct {
	Kind   TypeRefKind
	OfType *TypeRef // For List and NonNull
	Named  string   // For named types
	Type   *Type    // For named types
}

type TypeRefKind string

const (
	TypeRefKindNamed   TypeRefKind = "NAMED"
	TypeRefKindList    TypeRefKind = "LIST"
	TypeRefKindNonNull TypeRefKind = "NON_NULL"
)

func (t *TypeRef) IsNonNull() bool {
	return t != nil && t.Kind == TypeRefKindNonNull
}

func (t *TypeRef) IsList() bool {
	if t.Kind == TypeRefKindList {
		return true
	}
	if t.Kind == TypeRefKindNonNull && t.OfType != nil {
		return t.OfType.Kind == TypeRefKindList
	}
	return false
}

func (t *TypeRef) Unwrap() *TypeRef {
	if t.Kind == TypeRefKindNonNull || t.Kind == TypeRefKindList {
		return t.OfType
	}
	return t
}

// Nullable strips a Non-Null wrapper if present.
func (t *TypeRef) Nullable() *TypeRef {
	if t.Kind == TypeRefKindNonNull {
		return t.OfType
	}
	return t
}

func (t *TypeRef) GetNamedType() string {
	current := t
	for current != nil {
		if current.Named != "" {
			return current.Named
		}
		current = current.OfType
	}
	return ""
}

// NamedType returns the linked innermost type.
func (t *TypeRef) NamedType() *Type {
	current := t
	for current != nil {
		if current.Kind == TypeRefKindNamed {
			return current.Type
		}
		current = current.OfType
	}
	return nil
}

func (t *TypeRef) String() string {
	switch t.Kind {
	case TypeRefKindList:
		return "[" + t.OfType.String() + "]"
	case TypeRefKindNonNull:
		return t.OfType.String() + "!"
	}
	return t.Named
}

// Equal reports structural equality of two references.
func (t *TypeRef) Equal(o *TypeRef) bool {
	if t == nil || o == nil {
		return t == o
	}
	if t.Kind != o.Kind {
		return false
	}
	if t.Kind == TypeRefKindNamed {
		return t.Named == o.Named
	}
	return t.OfType.Equal(o.OfType)
}

type EnumValue struct {
	Name              string
	Description       string
	IsDeprecated      bool
	DeprecationReason string
	Directives        []*language.Directive
}

// InputValue is an argument or an input object field. DefaultValue keeps
// the literal as written; nil means no default.
type InputValue struct {
	Name              string
	Description       string
	Type              *TypeRef
	DefaultValue      language.Value
	IsDeprecated      bool
	DeprecationReason string
	Directives        []*language.Directive
}

type Directive struct {
	Name         string
	Description  string
	Locations    []string
	Arguments    []*InputValue
	IsRepeatable bool
}

// Argument returns the named argument definition, or nil.
func (d *Directive) Argument(name string) *InputValue {
	for _, a := range d.Arguments {
		if a.Name == name {
			return a
		}
	}
	return nil
}

// HasLocation reports whether the directive may appear at loc.
func (d *Directive) HasLocation(loc string) bool {
	for _, l := range d.Locations {
		if l == loc {
			return true
		}
	}
	return false
}

func NonNullType(t *TypeRef) *TypeRef { return &TypeRef{Kind: TypeRefKindNonNull, OfType: t} }
func ListType(t *TypeRef) *TypeRef    { return &TypeRef{Kind: TypeRefKindList, OfType: t} }
func NamedType(t *Type) *TypeRef      { return &TypeRef{Kind: TypeRefKindNamed, Named: t.Name, Type: t} }

// IsNonNull reports whether the type is wrapped with Non-Null.
func IsNonNull(t *TypeRef) bool { return t != nil && t.IsNonNull() }

// IsList reports whether the type is (or is wrapped by) a list type.
func IsList(t *TypeRef) bool { return t != nil && t.IsList() }

// IsIntrospectionType reports whether name belongs to the reserved "__" namespace.
func IsIntrospectionType(name string) bool { return strings.HasPrefix(name, "__") }

func (s *Schema) index() {
	s.typeNames = make([]string, 0, len(s.Types))
	for name, t := range s.Types {
		s.typeNames = append(s.typeNames, name)
		t.fieldIndex = make(map[string]*Field, len(t.Fields))
		for _, f := range t.Fields {
			t.fieldIndex[f.Name] = f
		}
		t.inputIndex = make(map[string]*InputValue, len(t.InputFields))
		for _, f := range t.InputFields {
			t.inputIndex[f.Name] = f
		}
		t.enumIndex = make(map[string]*EnumValue, len(t.EnumValues))
		for _, v := range t.EnumValues {
			t.enumIndex[v.Name] = v
		}
	}
	sort.Strings(s.typeNames)
	s.metaFields = newMetaFields(s.Types)
}

func newMetaFields(types map[string]*Type) map[string]*Field {
	str, schemaType, typeType := types["String"], types["__Schema"], types["__Type"]
	if str == nil || schemaType == nil || typeType == nil {
		return nil
	}
	return map[string]*Field{
		"__typename": {
			Name:        "__typename",
			Description: "The name of the current Object type at runtime.",
			Type:        NonNullType(NamedType(str)),
		},
		"__schema": {
			Name:        "__schema",
			Description: "Access the current type schema of this server.",
			Type:        NonNullType(NamedType(schemaType)),
		},
		"__type": {
			Name:        "__type",
			Description: "Request the type information of a single type.",
			Type:        NamedType(typeType),
			Arguments:   []*InputValue{{Name: "name", Type: NonNullType(NamedType(str))}},
		},
	}
}

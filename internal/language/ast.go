package language

// Kind tags every AST node.
type Kind string

const (
	KindName                    Kind = "Name"
	KindExecutableDocument      Kind = "ExecutableDocument"
	KindTypeSystemDocument      Kind = "TypeSystemDocument"
	KindOperationDefinition     Kind = "OperationDefinition"
	KindVariableDefinition      Kind = "VariableDefinition"
	KindVariable                Kind = "Variable"
	KindSelectionSet            Kind = "SelectionSet"
	KindField                   Kind = "Field"
	KindArgument                Kind = "Argument"
	KindFragmentSpread          Kind = "FragmentSpread"
	KindInlineFragment          Kind = "InlineFragment"
	KindFragmentDefinition      Kind = "FragmentDefinition"
	KindIntValue                Kind = "IntValue"
	KindFloatValue              Kind = "FloatValue"
	KindStringValue             Kind = "StringValue"
	KindBooleanValue            Kind = "BooleanValue"
	KindNullValue               Kind = "NullValue"
	KindEnumValue               Kind = "EnumValue"
	KindListValue               Kind = "ListValue"
	KindObjectValue             Kind = "ObjectValue"
	KindObjectField             Kind = "ObjectField"
	KindDirective               Kind = "Directive"
	KindNamedType               Kind = "NamedType"
	KindListType                Kind = "ListType"
	KindNonNullType             Kind = "NonNullType"
	KindSchemaDefinition        Kind = "SchemaDefinition"
	KindOperationTypeDefinition Kind = "OperationTypeDefinition"
	KindScalarTypeDefinition    Kind = "ScalarTypeDefinition"
	KindObjectTypeDefinition    Kind = "ObjectTypeDefinition"
	KindFieldDefinition         Kind = "FieldDefinition"
	KindInputValueDefinition    Kind = "InputValueDefinition"
	KindInterfaceTypeDefinition Kind = "InterfaceTypeDefinition"
	KindUnionTypeDefinition     Kind = "UnionTypeDefinition"
	KindEnumTypeDefinition      Kind = "EnumTypeDefinition"
	KindEnumValueDefinition     Kind = "EnumValueDefinition"
	KindInputObjectDefinition   Kind = "InputObjectTypeDefinition"
	KindDirectiveDefinition     Kind = "DirectiveDefinition"
	KindSchemaExtension         Kind = "SchemaExtension"
	KindScalarTypeExtension     Kind = "ScalarTypeExtension"
	KindObjectTypeExtension     Kind = "ObjectTypeExtension"
	KindInterfaceTypeExtension  Kind = "InterfaceTypeExtension"
	KindUnionTypeExtension      Kind = "UnionTypeExtension"
	KindEnumTypeExtension       Kind = "EnumTypeExtension"
	KindInputObjectExtension    Kind = "InputObjectTypeExtension"
)

// Node is implemented by every AST element.
type Node interface {
	GetKind() Kind
	GetLoc() Location
}

// Definition is a top-level definition of either document kind.
type Definition interface {
	Node
	isDefinition()
}

// Selection is a Field, FragmentSpread or InlineFragment.
type Selection interface {
	Node
	isSelection()
}

// Value is a literal or variable input value.
type Value interface {
	Node
	isValue()
}

// Type is a NamedType, ListType or NonNullType reference.
type Type interface {
	Node
	isType()
	String() string
}

// TypeDefinition is a named type definition or extension in SDL.
type TypeDefinition interface {
	Definition
	TypeName() string
}

// OperationType is query, mutation or subscription.
type OperationType string

const (
	Query        OperationType = "query"
	Mutation     OperationType = "mutation"
	Subscription OperationType = "subscription"
)

type Name struct {
	Value string
	Loc   Location
}

type ExecutableDocument struct {
	Definitions []Definition
	Loc         Location
}

// Operations returns the operation definitions in document order.
func (d *ExecutableDocument) Operations() []*OperationDefinition {
	var ops []*OperationDefinition
	for _, def := range d.Definitions {
		if op, ok := def.(*OperationDefinition); ok {
			ops = append(ops, op)
		}
	}
	return ops
}

// Fragments returns the fragment definitions in document order.
func (d *ExecutableDocument) Fragments() []*FragmentDefinition {
	var frags []*FragmentDefinition
	for _, def := range d.Definitions {
		if f, ok := def.(*FragmentDefinition); ok {
			frags = append(frags, f)
		}
	}
	return frags
}

// Fragment returns the first fragment definition with the given name.
func (d *ExecutableDocument) Fragment(name string) *FragmentDefinition {
	for _, def := range d.Definitions {
		if f, ok := def.(*FragmentDefinition); ok && f.Name.Value == name {
			return f
		}
	}
	return nil
}

type TypeSystemDocument struct {
	Definitions []Definition
	Loc         Location
}

type OperationDefinition struct {
	Operation           OperationType
	Name                *Name
	VariableDefinitions []*VariableDefinition
	Directives          []*Directive
	SelectionSet        *SelectionSet
	Loc                 Location
}

// OperationName returns the operation's name or "" when anonymous.
func (o *OperationDefinition) OperationName() string {
	if o.Name == nil {
		return ""
	}
	return o.Name.Value
}

type VariableDefinition struct {
	Variable     *Variable
	Type         Type
	DefaultValue Value
	Directives   []*Directive
	Loc          Location
}

type Variable struct {
	Name *Name
	Loc  Location
}

type SelectionSet struct {
	Selections []Selection
	Loc        Location
}

type Field struct {
	Alias        *Name
	Name         *Name
	Arguments    []*Argument
	Directives   []*Directive
	SelectionSet *SelectionSet
	Loc          Location
}

// ResponseKey is the alias when present and the field name otherwise.
func (f *Field) ResponseKey() string {
	if f.Alias != nil {
		return f.Alias.Value
	}
	return f.Name.Value
}

type Argument struct {
	Name  *Name
	Value Value
	Loc   Location
}

type FragmentSpread struct {
	Name       *Name
	Directives []*Directive
	Loc        Location
}

type InlineFragment struct {
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
	Loc           Location
}

type FragmentDefinition struct {
	Name          *Name
	TypeCondition *NamedType
	Directives    []*Directive
	SelectionSet  *SelectionSet
	Loc           Location
}

// IntValue and FloatValue keep the literal text; conversion happens during
// coercion against a schema type.
type IntValue struct {
	Value string
	Loc   Location
}

type FloatValue struct {
	Value string
	Loc   Location
}

type StringValue struct {
	Value string
	Block bool
	Loc   Location
}

type BooleanValue struct {
	Value bool
	Loc   Location
}

type NullValue struct {
	Loc Location
}

type EnumValue struct {
	Value string
	Loc   Location
}

type ListValue struct {
	Values []Value
	Loc    Location
}

type ObjectValue struct {
	Fields []*ObjectField
	Loc    Location
}

type ObjectField struct {
	Name  *Name
	Value Value
	Loc   Location
}

type Directive struct {
	Name      *Name
	Arguments []*Argument
	Loc       Location
}

type NamedType struct {
	Name *Name
	Loc  Location
}

type ListType struct {
	Type Type
	Loc  Location
}

// NonNullType wraps a NamedType or ListType.
type NonNullType struct {
	Type Type
	Loc  Location
}

func (t *NamedType) String() string   { return t.Name.Value }
func (t *ListType) String() string    { return "[" + t.Type.String() + "]" }
func (t *NonNullType) String() string { return t.Type.String() + "!" }

type SchemaDefinition struct {
	Description    *StringValue
	Directives     []*Directive
	OperationTypes []*OperationTypeDefinition
	Loc            Location
}

type OperationTypeDefinition struct {
	Operation OperationType
	Type      *NamedType
	Loc       Location
}

type ScalarTypeDefinition struct {
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Loc         Location
}

type ObjectTypeDefinition struct {
	Description *StringValue
	Name        *Name
	Interfaces  []*NamedType
	Directives  []*Directive
	Fields      []*FieldDefinition
	Loc         Location
}

type FieldDefinition struct {
	Description *StringValue
	Name        *Name
	Arguments   []*InputValueDefinition
	Type        Type
	Directives  []*Directive
	Loc         Location
}

type InputValueDefinition struct {
	Description  *StringValue
	Name         *Name
	Type         Type
	DefaultValue Value
	Directives   []*Directive
	Loc          Location
}

type InterfaceTypeDefinition struct {
	Description *StringValue
	Name        *Name
	Interfaces  []*NamedType
	Directives  []*Directive
	Fields      []*FieldDefinition
	Loc         Location
}

type UnionTypeDefinition struct {
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Types       []*NamedType
	Loc         Location
}

type EnumTypeDefinition struct {
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Values      []*EnumValueDefinition
	Loc         Location
}

type EnumValueDefinition struct {
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Loc         Location
}

type InputObjectTypeDefinition struct {
	Description *StringValue
	Name        *Name
	Directives  []*Directive
	Fields      []*InputValueDefinition
	Loc         Location
}

type DirectiveDefinition struct {
	Description *StringValue
	Name        *Name
	Arguments   []*InputValueDefinition
	Repeatable  bool
	Locations   []*Name
	Loc         Location
}

// Extensions share the shape of the definition they extend. Descriptions are
// never set on extensions.
type (
	SchemaExtension          struct{ SchemaDefinition }
	ScalarTypeExtension      struct{ ScalarTypeDefinition }
	ObjectTypeExtension      struct{ ObjectTypeDefinition }
	InterfaceTypeExtension   struct{ InterfaceTypeDefinition }
	UnionTypeExtension       struct{ UnionTypeDefinition }
	EnumTypeExtension        struct{ EnumTypeDefinition }
	InputObjectTypeExtension struct{ InputObjectTypeDefinition }
)

func (*Name) GetKind() Kind                      { return KindName }
func (*ExecutableDocument) GetKind() Kind        { return KindExecutableDocument }
func (*TypeSystemDocument) GetKind() Kind        { return KindTypeSystemDocument }
func (*OperationDefinition) GetKind() Kind       { return KindOperationDefinition }
func (*VariableDefinition) GetKind() Kind        { return KindVariableDefinition }
func (*Variable) GetKind() Kind                  { return KindVariable }
func (*SelectionSet) GetKind() Kind              { return KindSelectionSet }
func (*Field) GetKind() Kind                     { return KindField }
func (*Argument) GetKind() Kind                  { return KindArgument }
func (*FragmentSpread) GetKind() Kind            { return KindFragmentSpread }
func (*InlineFragment) GetKind() Kind            { return KindInlineFragment }
func (*FragmentDefinition) GetKind() Kind        { return KindFragmentDefinition }
func (*IntValue) GetKind() Kind                  { return KindIntValue }
func (*FloatValue) GetKind() Kind                { return KindFloatValue }
func (*StringValue) GetKind() Kind               { return KindStringValue }
func (*BooleanValue) GetKind() Kind              { return KindBooleanValue }
func (*NullValue) GetKind() Kind                 { return KindNullValue }
func (*EnumValue) GetKind() Kind                 { return KindEnumValue }
func (*ListValue) GetKind() Kind                 { return KindListValue }
func (*ObjectValue) GetKind() Kind               { return KindObjectValue }
func (*ObjectField) GetKind() Kind               { return KindObjectField }
func (*Directive) GetKind() Kind                 { return KindDirective }
func (*NamedType) GetKind() Kind                 { return KindNamedType }
func (*ListType) GetKind() Kind                  { return KindListType }
func (*NonNullType) GetKind() Kind               { return KindNonNullType }
func (*SchemaDefinition) GetKind() Kind          { return KindSchemaDefinition }
func (*OperationTypeDefinition) GetKind() Kind   { return KindOperationTypeDefinition }
func (*ScalarTypeDefinition) GetKind() Kind      { return KindScalarTypeDefinition }
func (*ObjectTypeDefinition) GetKind() Kind      { return KindObjectTypeDefinition }
func (*FieldDefinition) GetKind() Kind           { return KindFieldDefinition }
func (*InputValueDefinition) GetKind() Kind      { return KindInputValueDefinition }
func (*InterfaceTypeDefinition) GetKind() Kind   { return KindInterfaceTypeDefinition }
func (*UnionTypeDefinition) GetKind() Kind       { return KindUnionTypeDefinition }
func (*EnumTypeDefinition) GetKind() Kind        { return KindEnumTypeDefinition }
func (*EnumValueDefinition) GetKind() Kind       { return KindEnumValueDefinition }
func (*InputObjectTypeDefinition) GetKind() Kind { return KindInputObjectDefinition }
func (*DirectiveDefinition) GetKind() Kind       { return KindDirectiveDefinition }
func (*SchemaExtension) GetKind() Kind           { return KindSchemaExtension }
func (*ScalarTypeExtension) GetKind() Kind       { return KindScalarTypeExtension }
func (*ObjectTypeExtension) GetKind() Kind       { return KindObjectTypeExtension }
func (*InterfaceTypeExtension) GetKind() Kind    { return KindInterfaceTypeExtension }
func (*UnionTypeExtension) GetKind() Kind        { return KindUnionTypeExtension }
func (*EnumTypeExtension) GetKind() Kind         { return KindEnumTypeExtension }
func (*InputObjectTypeExtension) GetKind() Kind  { return KindInputObjectExtension }

func (n *Name) GetLoc() Location                      { return n.Loc }
func (n *ExecutableDocument) GetLoc() Location        { return n.Loc }
func (n *TypeSystemDocument) GetLoc() Location        { return n.Loc }
func (n *OperationDefinition) GetLoc() Location       { return n.Loc }
func (n *VariableDefinition) GetLoc() Location        { return n.Loc }
func (n *Variable) GetLoc() Location                  { return n.Loc }
func (n *SelectionSet) GetLoc() Location              { return n.Loc }
func (n *Field) GetLoc() Location                     { return n.Loc }
func (n *Argument) GetLoc() Location                  { return n.Loc }
func (n *FragmentSpread) GetLoc() Location            { return n.Loc }
func (n *InlineFragment) GetLoc() Location            { return n.Loc }
func (n *FragmentDefinition) GetLoc() Location        { return n.Loc }
func (n *IntValue) GetLoc() Location                  { return n.Loc }
func (n *FloatValue) GetLoc() Location                { return n.Loc }
func (n *StringValue) GetLoc() Location               { return n.Loc }
func (n *BooleanValue) GetLoc() Location              { return n.Loc }
func (n *NullValue) GetLoc() Location                 { return n.Loc }
func (n *EnumValue) GetLoc() Location                 { return n.Loc }
func (n *ListValue) GetLoc() Location                 { return n.Loc }
func (n *ObjectValue) GetLoc() Location               { return n.Loc }
func (n *ObjectField) GetLoc() Location               { return n.Loc }
func (n *Directive) GetLoc() Location                 { return n.Loc }
func (n *NamedType) GetLoc() Location                 { return n.Loc }
func (n *ListType) GetLoc() Location                  { return n.Loc }
func (n *NonNullType) GetLoc() Location               { return n.Loc }
func (n *SchemaDefinition) GetLoc() Location          { return n.Loc }
func (n *OperationTypeDefinition) GetLoc() Location   { return n.Loc }
func (n *ScalarTypeDefinition) GetLoc() Location      { return n.Loc }
func (n *ObjectTypeDefinition) GetLoc() Location      { return n.Loc }
func (n *FieldDefinition) GetLoc() Location           { return n.Loc }
func (n *InputValueDefinition) GetLoc() Location      { return n.Loc }
func (n *InterfaceTypeDefinition) GetLoc() Location   { return n.Loc }
func (n *UnionTypeDefinition) GetLoc() Location       { return n.Loc }
func (n *EnumTypeDefinition) GetLoc() Location        { return n.Loc }
func (n *EnumValueDefinition) GetLoc() Location       { return n.Loc }
func (n *InputObjectTypeDefinition) GetLoc() Location { return n.Loc }
func (n *DirectiveDefinition) GetLoc() Location       { return n.Loc }

func (*OperationDefinition) isDefinition()       {}
func (*FragmentDefinition) isDefinition()        {}
func (*SchemaDefinition) isDefinition()          {}
func (*ScalarTypeDefinition) isDefinition()      {}
func (*ObjectTypeDefinition) isDefinition()      {}
func (*InterfaceTypeDefinition) isDefinition()   {}
func (*UnionTypeDefinition) isDefinition()       {}
func (*EnumTypeDefinition) isDefinition()        {}
func (*InputObjectTypeDefinition) isDefinition() {}
func (*DirectiveDefinition) isDefinition()       {}

func (t *ScalarTypeDefinition) TypeName() string      { return t.Name.Value }
func (t *ObjectTypeDefinition) TypeName() string      { return t.Name.Value }
func (t *InterfaceTypeDefinition) TypeName() string   { return t.Name.Value }
func (t *UnionTypeDefinition) TypeName() string       { return t.Name.Value }
func (t *EnumTypeDefinition) TypeName() string        { return t.Name.Value }
func (t *InputObjectTypeDefinition) TypeName() string { return t.Name.Value }

func (*Field) isSelection()          {}
func (*FragmentSpread) isSelection() {}
func (*InlineFragment) isSelection() {}

func (*Variable) isValue()     {}
func (*IntValue) isValue()     {}
func (*FloatValue) isValue()   {}
func (*StringValue) isValue()  {}
func (*BooleanValue) isValue() {}
func (*NullValue) isValue()    {}
func (*EnumValue) isValue()    {}
func (*ListValue) isValue()    {}
func (*ObjectValue) isValue()  {}

func (*NamedType) isType()   {}
func (*ListType) isType()    {}
func (*NonNullType) isType() {}

var (
	_ Definition     = (*OperationDefinition)(nil)
	_ Definition     = (*FragmentDefinition)(nil)
	_ Definition     = (*SchemaExtension)(nil)
	_ TypeDefinition = (*ScalarTypeDefinition)(nil)
	_ TypeDefinition = (*ObjectTypeDefinition)(nil)
	_ TypeDefinition = (*InterfaceTypeDefinition)(nil)
	_ TypeDefinition = (*UnionTypeDefinition)(nil)
	_ TypeDefinition = (*EnumTypeDefinition)(nil)
	_ TypeDefinition = (*InputObjectTypeDefinition)(nil)
	_ TypeDefinition = (*ScalarTypeExtension)(nil)
	_ TypeDefinition = (*ObjectTypeExtension)(nil)
	_ TypeDefinition = (*InterfaceTypeExtension)(nil)
	_ TypeDefinition = (*UnionTypeExtension)(nil)
	_ TypeDefinition = (*EnumTypeExtension)(nil)
	_ TypeDefinition = (*InputObjectTypeExtension)(nil)
	_ Selection      = (*Field)(nil)
	_ Selection      = (*FragmentSpread)(nil)
	_ Selection      = (*InlineFragment)(nil)
	_ Value          = (*Variable)(nil)
	_ Value          = (*ListValue)(nil)
	_ Value          = (*ObjectValue)(nil)
	_ Type           = (*NamedType)(nil)
	_ Type           = (*ListType)(nil)
	_ Type           = (*NonNullType)(nil)
)

package language

// DirectiveLocations lists every location a directive may be declared for.
var DirectiveLocations = map[string]bool{
	"QUERY":                  true,
	"MUTATION":               true,
	"SUBSCRIPTION":           true,
	"FIELD":                  true,
	"FRAGMENT_DEFINITION":    true,
	"FRAGMENT_SPREAD":        true,
	"INLINE_FRAGMENT":        true,
	"VARIABLE_DEFINITION":    true,
	"SCHEMA":                 true,
	"SCALAR":                 true,
	"OBJECT":                 true,
	"FIELD_DEFINITION":       true,
	"ARGUMENT_DEFINITION":    true,
	"INTERFACE":              true,
	"UNION":                  true,
	"ENUM":                   true,
	"ENUM_VALUE":             true,
	"INPUT_OBJECT":           true,
	"INPUT_FIELD_DEFINITION": true,
}

//	TypeSystemDocument :: TypeSystemDefinitionOrExtension+
func (p *parser) parseTypeSystemDocument() (*TypeSystemDocument, error) {
	start := p.token()
	var defs []Definition
	for {
		def, err := p.parseTypeSystemDefinition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
		if p.peek(EOF) {
			break
		}
	}
	return &TypeSystemDocument{Definitions: defs, Loc: p.loc(start)}, nil
}

func (p *parser) parseTypeSystemDefinition() (Definition, error) {
	start := p.token()
	desc, err := p.parseDescription()
	if err != nil {
		return nil, err
	}
	tok := p.token()
	if tok.Kind != NameToken {
		return nil, p.unexpected(tok)
	}
	switch tok.Value {
	case "schema":
		return p.parseSchemaDefinition(start, desc)
	case "scalar":
		return p.parseScalarTypeDefinition(start, desc)
	case "type":
		return p.parseObjectTypeDefinition(start, desc)
	case "interface":
		return p.parseInterfaceTypeDefinition(start, desc)
	case "union":
		return p.parseUnionTypeDefinition(start, desc)
	case "enum":
		return p.parseEnumTypeDefinition(start, desc)
	case "input":
		return p.parseInputObjectTypeDefinition(start, desc)
	case "directive":
		return p.parseDirectiveDefinition(start, desc)
	case "extend":
		if desc != nil {
			return nil, p.errorAt(start, "Unexpected description, descriptions are not supported on type extensions.")
		}
		return p.parseTypeSystemExtension()
	}
	return nil, p.unexpected(tok)
}

//	Description :: StringValue
func (p *parser) parseDescription() (*StringValue, error) {
	if p.peek(StringToken) || p.peek(BlockStringToken) {
		return p.parseStringLiteral()
	}
	return nil, nil
}

//	SchemaDefinition :: Description? schema Directives[Const]? { RootOperationTypeDefinition+ }
func (p *parser) parseSchemaDefinition(start Token, desc *StringValue) (*SchemaDefinition, error) {
	if err := p.expectKeyword("schema"); err != nil {
		return nil, err
	}
	def := &SchemaDefinition{Description: desc}
	var err error
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.OperationTypes, err = many(p, BraceL, p.parseOperationTypeDefinition, BraceR); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

//	RootOperationTypeDefinition :: OperationType : NamedType
func (p *parser) parseOperationTypeDefinition() (*OperationTypeDefinition, error) {
	start := p.token()
	op, err := p.parseOperationType()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Colon); err != nil {
		return nil, err
	}
	t, err := p.parseNamedType()
	if err != nil {
		return nil, err
	}
	return &OperationTypeDefinition{Operation: op, Type: t, Loc: p.loc(start)}, nil
}

//	ScalarTypeDefinition :: Description? scalar Name Directives[Const]?
func (p *parser) parseScalarTypeDefinition(start Token, desc *StringValue) (*ScalarTypeDefinition, error) {
	if err := p.expectKeyword("scalar"); err != nil {
		return nil, err
	}
	def := &ScalarTypeDefinition{Description: desc}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

//	ObjectTypeDefinition ::
//	  Description? type Name ImplementsInterfaces? Directives[Const]? FieldsDefinition?
func (p *parser) parseObjectTypeDefinition(start Token, desc *StringValue) (*ObjectTypeDefinition, error) {
	if err := p.expectKeyword("type"); err != nil {
		return nil, err
	}
	def := &ObjectTypeDefinition{Description: desc}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Interfaces, err = p.parseImplementsInterfaces(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Fields, err = optionalMany(p, BraceL, p.parseFieldDefinition, BraceR); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

//	ImplementsInterfaces :: implements &? NamedType (& NamedType)*
func (p *parser) parseImplementsInterfaces() ([]*NamedType, error) {
	ok, err := p.skipKeyword("implements")
	if err != nil || !ok {
		return nil, err
	}
	return delimitedMany(p, Amp, p.parseNamedType)
}

//	FieldDefinition :: Description? Name ArgumentsDefinition? : Type Directives[Const]?
func (p *parser) parseFieldDefinition() (*FieldDefinition, error) {
	start := p.token()
	desc, err := p.parseDescription()
	if err != nil {
		return nil, err
	}
	def := &FieldDefinition{Description: desc}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Arguments, err = optionalMany(p, ParenL, p.parseInputValueDefinition, ParenR); err != nil {
		return nil, err
	}
	if _, err := p.expect(Colon); err != nil {
		return nil, err
	}
	if def.Type, err = p.parseTypeReference(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

//	InputValueDefinition :: Description? Name : Type DefaultValue? Directives[Const]?
func (p *parser) parseInputValueDefinition() (*InputValueDefinition, error) {
	start := p.token()
	desc, err := p.parseDescription()
	if err != nil {
		return nil, err
	}
	def := &InputValueDefinition{Description: desc}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if _, err := p.expect(Colon); err != nil {
		return nil, err
	}
	if def.Type, err = p.parseTypeReference(); err != nil {
		return nil, err
	}
	if ok, err := p.skip(Equals); err != nil {
		return nil, err
	} else if ok {
		if def.DefaultValue, err = p.parseValueLiteral(true); err != nil {
			return nil, err
		}
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

//	InterfaceTypeDefinition ::
//	  Description? interface Name ImplementsInterfaces? Directives[Const]? FieldsDefinition?
func (p *parser) parseInterfaceTypeDefinition(start Token, desc *StringValue) (*InterfaceTypeDefinition, error) {
	if err := p.expectKeyword("interface"); err != nil {
		return nil, err
	}
	def := &InterfaceTypeDefinition{Description: desc}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Interfaces, err = p.parseImplementsInterfaces(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Fields, err = optionalMany(p, BraceL, p.parseFieldDefinition, BraceR); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

//	UnionTypeDefinition :: Description? union Name Directives[Const]? UnionMemberTypes?
func (p *parser) parseUnionTypeDefinition(start Token, desc *StringValue) (*UnionTypeDefinition, error) {
	if err := p.expectKeyword("union"); err != nil {
		return nil, err
	}
	def := &UnionTypeDefinition{Description: desc}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if ok, err := p.skip(Equals); err != nil {
		return nil, err
	} else if ok {
		if def.Types, err = delimitedMany(p, Pipe, p.parseNamedType); err != nil {
			return nil, err
		}
	}
	def.Loc = p.loc(start)
	return def, nil
}

//	EnumTypeDefinition :: Description? enum Name Directives[Const]? EnumValuesDefinition?
func (p *parser) parseEnumTypeDefinition(start Token, desc *StringValue) (*EnumTypeDefinition, error) {
	if err := p.expectKeyword("enum"); err != nil {
		return nil, err
	}
	def := &EnumTypeDefinition{Description: desc}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Values, err = optionalMany(p, BraceL, p.parseEnumValueDefinition, BraceR); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

//	EnumValueDefinition :: Description? EnumValue Directives[Const]?
func (p *parser) parseEnumValueDefinition() (*EnumValueDefinition, error) {
	start := p.token()
	desc, err := p.parseDescription()
	if err != nil {
		return nil, err
	}
	tok := p.token()
	switch tok.Value {
	case "true", "false", "null":
		if tok.Kind == NameToken {
			return nil, p.errorAt(tok, "%s is reserved and cannot be used for an enum value.", tok)
		}
	}
	def := &EnumValueDefinition{Description: desc}
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

//	InputObjectTypeDefinition :: Description? input Name Directives[Const]? InputFieldsDefinition?
func (p *parser) parseInputObjectTypeDefinition(start Token, desc *StringValue) (*InputObjectTypeDefinition, error) {
	if err := p.expectKeyword("input"); err != nil {
		return nil, err
	}
	def := &InputObjectTypeDefinition{Description: desc}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(true); err != nil {
		return nil, err
	}
	if def.Fields, err = optionalMany(p, BraceL, p.parseInputValueDefinition, BraceR); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

//	DirectiveDefinition ::
//	  Description? directive @ Name ArgumentsDefinition? repeatable? on DirectiveLocations
func (p *parser) parseDirectiveDefinition(start Token, desc *StringValue) (*DirectiveDefinition, error) {
	if err := p.expectKeyword("directive"); err != nil {
		return nil, err
	}
	if _, err := p.expect(At); err != nil {
		return nil, err
	}
	def := &DirectiveDefinition{Description: desc}
	var err error
	if def.Name, err = p.parseName(); err != nil {
		return nil, err
	}
	if def.Arguments, err = optionalMany(p, ParenL, p.parseInputValueDefinition, ParenR); err != nil {
		return nil, err
	}
	if def.Repeatable, err = p.skipKeyword("repeatable"); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	if def.Locations, err = delimitedMany(p, Pipe, p.parseDirectiveLocation); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

func (p *parser) parseDirectiveLocation() (*Name, error) {
	tok := p.token()
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if !DirectiveLocations[name.Value] {
		return nil, p.unexpected(tok)
	}
	return name, nil
}

//	TypeSystemExtension :: SchemaExtension | TypeExtension
func (p *parser) parseTypeSystemExtension() (Definition, error) {
	start := p.token()
	if err := p.expectKeyword("extend"); err != nil {
		return nil, err
	}
	tok := p.token()
	if tok.Kind != NameToken {
		return nil, p.unexpected(tok)
	}
	var (
		def   Definition
		empty bool
		err   error
	)
	switch tok.Value {
	case "schema":
		def, empty, err = p.parseSchemaExtension(start)
	case "scalar":
		var d *ScalarTypeDefinition
		if d, err = p.parseScalarTypeDefinition(start, nil); err == nil {
			def, empty = &ScalarTypeExtension{*d}, len(d.Directives) == 0
		}
	case "type":
		var d *ObjectTypeDefinition
		if d, err = p.parseObjectTypeDefinition(start, nil); err == nil {
			def = &ObjectTypeExtension{*d}
			empty = len(d.Interfaces) == 0 && len(d.Directives) == 0 && len(d.Fields) == 0
		}
	case "interface":
		var d *InterfaceTypeDefinition
		if d, err = p.parseInterfaceTypeDefinition(start, nil); err == nil {
			def = &InterfaceTypeExtension{*d}
			empty = len(d.Interfaces) == 0 && len(d.Directives) == 0 && len(d.Fields) == 0
		}
	case "union":
		var d *UnionTypeDefinition
		if d, err = p.parseUnionTypeDefinition(start, nil); err == nil {
			def, empty = &UnionTypeExtension{*d}, len(d.Directives) == 0 && len(d.Types) == 0
		}
	case "enum":
		var d *EnumTypeDefinition
		if d, err = p.parseEnumTypeDefinition(start, nil); err == nil {
			def, empty = &EnumTypeExtension{*d}, len(d.Directives) == 0 && len(d.Values) == 0
		}
	case "input":
		var d *InputObjectTypeDefinition
		if d, err = p.parseInputObjectTypeDefinition(start, nil); err == nil {
			def, empty = &InputObjectTypeExtension{*d}, len(d.Directives) == 0 && len(d.Fields) == 0
		}
	default:
		return nil, p.unexpected(tok)
	}
	if err != nil {
		return nil, err
	}
	if empty {
		return nil, p.unexpected(p.token())
	}
	return def, nil
}

//	SchemaExtension ::
//	  - extend schema Directives[Const]? { RootOperationTypeDefinition+ }
//	  - extend schema Directives[Const]
func (p *parser) parseSchemaExtension(start Token) (Definition, bool, error) {
	if err := p.expectKeyword("schema"); err != nil {
		return nil, false, err
	}
	ext := &SchemaExtension{}
	var err error
	if ext.Directives, err = p.parseDirectives(true); err != nil {
		return nil, false, err
	}
	if ext.OperationTypes, err = optionalMany(p, BraceL, p.parseOperationTypeDefinition, BraceR); err != nil {
		return nil, false, err
	}
	ext.Loc = p.loc(start)
	return ext, len(ext.Directives) == 0 && len(ext.OperationTypes) == 0, nil
}

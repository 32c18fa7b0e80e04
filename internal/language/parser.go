package language

import "fmt"

// ParseExecutableDocument parses operations and fragments.
func ParseExecutableDocument(text string) (*ExecutableDocument, error) {
	return ParseExecutableSource(NewSource("", text))
}

// ParseExecutableSource is ParseExecutableDocument over a named Source.
func ParseExecutableSource(source *Source) (*ExecutableDocument, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, err
	}
	return p.parseExecutableDocument()
}

// ParseTypeSystemDocument parses SDL: schema, type and directive definitions
// and their extensions.
func ParseTypeSystemDocument(text string) (*TypeSystemDocument, error) {
	return ParseTypeSystemSource(NewSource("", text))
}

// ParseTypeSystemSource is ParseTypeSystemDocument over a named Source.
func ParseTypeSystemSource(source *Source) (*TypeSystemDocument, error) {
	p, err := newParser(source)
	if err != nil {
		return nil, err
	}
	return p.parseTypeSystemDocument()
}

// ParseValue parses a single value literal, variables allowed.
func ParseValue(text string) (Value, error) {
	p, err := newParser(NewSource("", text))
	if err != nil {
		return nil, err
	}
	v, err := p.parseValueLiteral(false)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EOF); err != nil {
		return nil, err
	}
	return v, nil
}

// ParseType parses a type reference such as "[String!]!".
func ParseType(text string) (Type, error) {
	p, err := newParser(NewSource("", text))
	if err != nil {
		return nil, err
	}
	t, err := p.parseTypeReference()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EOF); err != nil {
		return nil, err
	}
	return t, nil
}

// ParseFieldDefinition parses a single SDL field such as
// "user(id: ID!): User @deprecated".
func ParseFieldDefinition(text string) (*FieldDefinition, error) {
	p, err := newParser(NewSource("", text))
	if err != nil {
		return nil, err
	}
	f, err := p.parseFieldDefinition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EOF); err != nil {
		return nil, err
	}
	return f, nil
}

// ParseInputValueDefinition parses a single argument or input field such as
// "limit: Int = 10".
func ParseInputValueDefinition(text string) (*InputValueDefinition, error) {
	p, err := newParser(NewSource("", text))
	if err != nil {
		return nil, err
	}
	v, err := p.parseInputValueDefinition()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(EOF); err != nil {
		return nil, err
	}
	return v, nil
}

type parser struct {
	lexer   *Lexer
	source  *Source
	prevEnd int
}

func newParser(source *Source) (*parser, error) {
	p := &parser{lexer: NewLexer(source), source: source}
	if _, err := p.lexer.Advance(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *parser) token() Token { return p.lexer.Token() }

func (p *parser) peek(kind TokenKind) bool { return p.token().Kind == kind }

func (p *parser) peekKeyword(value string) bool {
	tok := p.token()
	return tok.Kind == NameToken && tok.Value == value
}

func (p *parser) advance() error {
	p.prevEnd = p.token().End
	_, err := p.lexer.Advance()
	return err
}

// loc spans from start to the end of the last consumed token.
func (p *parser) loc(start Token) Location {
	return Location{Start: start.Start, End: p.prevEnd, Line: start.Line, Column: start.Column, Source: p.source}
}

func (p *parser) errorAt(tok Token, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Message:  fmt.Sprintf(format, args...),
		Location: Location{Start: tok.Start, End: tok.End, Line: tok.Line, Column: tok.Column, Source: p.source},
	}
}

// expect consumes a token of the given kind or fails.
func (p *parser) expect(kind TokenKind) (Token, error) {
	tok := p.token()
	if tok.Kind != kind {
		return tok, p.errorAt(tok, "Expected %s, found %s.", describeKind(kind), tok)
	}
	return tok, p.advance()
}

// skip consumes the token if it has the given kind.
func (p *parser) skip(kind TokenKind) (bool, error) {
	if !p.peek(kind) {
		return false, nil
	}
	return true, p.advance()
}

func (p *parser) expectKeyword(value string) error {
	tok := p.token()
	if tok.Kind != NameToken || tok.Value != value {
		return p.errorAt(tok, "Expected %q, found %s.", value, tok)
	}
	return p.advance()
}

func (p *parser) skipKeyword(value string) (bool, error) {
	if !p.peekKeyword(value) {
		return false, nil
	}
	return true, p.advance()
}

func (p *parser) unexpected(tok Token) *SyntaxError {
	return p.errorAt(tok, "Unexpected %s.", tok)
}

func describeKind(kind TokenKind) string {
	if kind.isPunctuator() || kind == EOF || kind == SOF {
		return fmt.Sprintf("%q", kind.String())
	}
	return kind.String()
}

// many parses open item+ close.
func many[T any](p *parser, open TokenKind, item func() (T, error), close TokenKind) ([]T, error) {
	if _, err := p.expect(open); err != nil {
		return nil, err
	}
	var items []T
	for {
		it, err := item()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
		done, err := p.skip(close)
		if err != nil {
			return nil, err
		}
		if done {
			return items, nil
		}
	}
}

// optionalMany is many when the open token is present and nil otherwise.
func optionalMany[T any](p *parser, open TokenKind, item func() (T, error), close TokenKind) ([]T, error) {
	if !p.peek(open) {
		return nil, nil
	}
	return many(p, open, item, close)
}

// zeroOrMore parses open item* close.
func zeroOrMore[T any](p *parser, open TokenKind, item func() (T, error), close TokenKind) ([]T, error) {
	if _, err := p.expect(open); err != nil {
		return nil, err
	}
	items := []T{}
	for {
		done, err := p.skip(close)
		if err != nil {
			return nil, err
		}
		if done {
			return items, nil
		}
		it, err := item()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
}

// delimitedMany parses delim? item (delim item)*.
func delimitedMany[T any](p *parser, delim TokenKind, item func() (T, error)) ([]T, error) {
	if _, err := p.skip(delim); err != nil {
		return nil, err
	}
	var items []T
	for {
		it, err := item()
		if err != nil {
			return nil, err
		}
		items = append(items, it)
		more, err := p.skip(delim)
		if err != nil {
			return nil, err
		}
		if !more {
			return items, nil
		}
	}
}

//	Name :: /[_A-Za-z][_0-9A-Za-z]*/
func (p *parser) parseName() (*Name, error) {
	tok, err := p.expect(NameToken)
	if err != nil {
		return nil, err
	}
	return &Name{Value: tok.Value, Loc: p.loc(tok)}, nil
}

//	ExecutableDocument :: ExecutableDefinition+
func (p *parser) parseExecutableDocument() (*ExecutableDocument, error) {
	start := p.token()
	var defs []Definition
	for {
		def, err := p.parseExecutableDefinition()
		if err != nil {
			return nil, err
		}
		defs = append(defs, def)
		if p.peek(EOF) {
			break
		}
	}
	return &ExecutableDocument{Definitions: defs, Loc: p.loc(start)}, nil
}

func (p *parser) parseExecutableDefinition() (Definition, error) {
	tok := p.token()
	if tok.Kind == BraceL {
		return p.parseOperationDefinition()
	}
	if tok.Kind == NameToken {
		switch tok.Value {
		case "query", "mutation", "subscription":
			return p.parseOperationDefinition()
		case "fragment":
			return p.parseFragmentDefinition()
		}
	}
	return nil, p.unexpected(tok)
}

//	OperationDefinition ::
//	  - SelectionSet
//	  - OperationType Name? VariableDefinitions? Directives? SelectionSet
func (p *parser) parseOperationDefinition() (*OperationDefinition, error) {
	start := p.token()
	if p.peek(BraceL) {
		sel, err := p.parseSelectionSet()
		if err != nil {
			return nil, err
		}
		return &OperationDefinition{Operation: Query, SelectionSet: sel, Loc: p.loc(start)}, nil
	}
	op, err := p.parseOperationType()
	if err != nil {
		return nil, err
	}
	def := &OperationDefinition{Operation: op}
	if p.peek(NameToken) {
		if def.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}
	if def.VariableDefinitions, err = optionalMany(p, ParenL, p.parseVariableDefinition, ParenR); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if def.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

//	OperationType : one of query mutation subscription
func (p *parser) parseOperationType() (OperationType, error) {
	tok, err := p.expect(NameToken)
	if err != nil {
		return "", err
	}
	switch tok.Value {
	case "query":
		return Query, nil
	case "mutation":
		return Mutation, nil
	case "subscription":
		return Subscription, nil
	}
	return "", p.unexpected(tok)
}

//	VariableDefinition :: Variable : Type DefaultValue? Directives[Const]?
func (p *parser) parseVariableDefinition() (*VariableDefinition, error) {
	start := p.token()
	v, err := p.parseVariable()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Colon); err != nil {
		return nil, err
	}
	def := &VariableDefinition{Variable: v}
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

//	Variable :: $ Name
func (p *parser) parseVariable() (*Variable, error) {
	start := p.token()
	if _, err := p.expect(Dollar); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &Variable{Name: name, Loc: p.loc(start)}, nil
}

//	SelectionSet :: { Selection+ }
func (p *parser) parseSelectionSet() (*SelectionSet, error) {
	start := p.token()
	sels, err := many(p, BraceL, p.parseSelection, BraceR)
	if err != nil {
		return nil, err
	}
	return &SelectionSet{Selections: sels, Loc: p.loc(start)}, nil
}

func (p *parser) parseSelection() (Selection, error) {
	if p.peek(Spread) {
		return p.parseFragment()
	}
	return p.parseField()
}

//	Field :: Alias? Name Arguments? Directives? SelectionSet?
func (p *parser) parseField() (*Field, error) {
	start := p.token()
	nameOrAlias, err := p.parseName()
	if err != nil {
		return nil, err
	}
	f := &Field{Name: nameOrAlias}
	if ok, err := p.skip(Colon); err != nil {
		return nil, err
	} else if ok {
		f.Alias = nameOrAlias
		if f.Name, err = p.parseName(); err != nil {
			return nil, err
		}
	}
	if f.Arguments, err = p.parseArguments(false); err != nil {
		return nil, err
	}
	if f.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if p.peek(BraceL) {
		if f.SelectionSet, err = p.parseSelectionSet(); err != nil {
			return nil, err
		}
	}
	f.Loc = p.loc(start)
	return f, nil
}

//	Arguments[Const] :: ( Argument[?Const]+ )
func (p *parser) parseArguments(isConst bool) ([]*Argument, error) {
	return optionalMany(p, ParenL, func() (*Argument, error) { return p.parseArgument(isConst) }, ParenR)
}

//	Argument[Const] :: Name : Value[?Const]
func (p *parser) parseArgument(isConst bool) (*Argument, error) {
	start := p.token()
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Colon); err != nil {
		return nil, err
	}
	value, err := p.parseValueLiteral(isConst)
	if err != nil {
		return nil, err
	}
	return &Argument{Name: name, Value: value, Loc: p.loc(start)}, nil
}

//	FragmentSpread :: ... FragmentName Directives?
//	InlineFragment :: ... TypeCondition? Directives? SelectionSet
func (p *parser) parseFragment() (Selection, error) {
	start := p.token()
	if _, err := p.expect(Spread); err != nil {
		return nil, err
	}
	hasTypeCondition, err := p.skipKeyword("on")
	if err != nil {
		return nil, err
	}
	if !hasTypeCondition && p.peek(NameToken) {
		name, err := p.parseFragmentName()
		if err != nil {
			return nil, err
		}
		directives, err := p.parseDirectives(false)
		if err != nil {
			return nil, err
		}
		return &FragmentSpread{Name: name, Directives: directives, Loc: p.loc(start)}, nil
	}
	frag := &InlineFragment{}
	if hasTypeCondition {
		if frag.TypeCondition, err = p.parseNamedType(); err != nil {
			return nil, err
		}
	}
	if frag.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if frag.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}
	frag.Loc = p.loc(start)
	return frag, nil
}

//	FragmentDefinition :: fragment FragmentName TypeCondition Directives? SelectionSet
func (p *parser) parseFragmentDefinition() (*FragmentDefinition, error) {
	start := p.token()
	if err := p.expectKeyword("fragment"); err != nil {
		return nil, err
	}
	def := &FragmentDefinition{}
	var err error
	if def.Name, err = p.parseFragmentName(); err != nil {
		return nil, err
	}
	if err := p.expectKeyword("on"); err != nil {
		return nil, err
	}
	if def.TypeCondition, err = p.parseNamedType(); err != nil {
		return nil, err
	}
	if def.Directives, err = p.parseDirectives(false); err != nil {
		return nil, err
	}
	if def.SelectionSet, err = p.parseSelectionSet(); err != nil {
		return nil, err
	}
	def.Loc = p.loc(start)
	return def, nil
}

//	FragmentName :: Name but not `on`
func (p *parser) parseFragmentName() (*Name, error) {
	if p.peekKeyword("on") {
		return nil, p.unexpected(p.token())
	}
	return p.parseName()
}

//	Value[Const] ::
//	  - [~Const] Variable
//	  - IntValue
//	  - FloatValue
//	  - StringValue
//	  - BooleanValue
//	  - NullValue
//	  - EnumValue
//	  - ListValue[?Const]
//	  - ObjectValue[?Const]
func (p *parser) parseValueLiteral(isConst bool) (Value, error) {
	tok := p.token()
	switch tok.Kind {
	case BracketL:
		values, err := zeroOrMore(p, BracketL, func() (Value, error) { return p.parseValueLiteral(isConst) }, BracketR)
		if err != nil {
			return nil, err
		}
		return &ListValue{Values: values, Loc: p.loc(tok)}, nil
	case BraceL:
		fields, err := zeroOrMore(p, BraceL, func() (*ObjectField, error) { return p.parseObjectField(isConst) }, BraceR)
		if err != nil {
			return nil, err
		}
		return &ObjectValue{Fields: fields, Loc: p.loc(tok)}, nil
	case IntToken:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &IntValue{Value: tok.Value, Loc: p.loc(tok)}, nil
	case FloatToken:
		if err := p.advance(); err != nil {
			return nil, err
		}
		return &FloatValue{Value: tok.Value, Loc: p.loc(tok)}, nil
	case StringToken, BlockStringToken:
		return p.parseStringLiteral()
	case NameToken:
		if err := p.advance(); err != nil {
			return nil, err
		}
		switch tok.Value {
		case "true", "false":
			return &BooleanValue{Value: tok.Value == "true", Loc: p.loc(tok)}, nil
		case "null":
			return &NullValue{Loc: p.loc(tok)}, nil
		}
		return &EnumValue{Value: tok.Value, Loc: p.loc(tok)}, nil
	case Dollar:
		if isConst {
			if err := p.advance(); err != nil {
				return nil, err
			}
			name := p.token()
			if name.Kind == NameToken {
				return nil, p.errorAt(tok, "Unexpected variable \"$%s\" in constant value.", name.Value)
			}
			return nil, p.unexpected(tok)
		}
		return p.parseVariable()
	}
	return nil, p.unexpected(tok)
}

func (p *parser) parseStringLiteral() (*StringValue, error) {
	tok := p.token()
	if tok.Kind != StringToken && tok.Kind != BlockStringToken {
		return nil, p.errorAt(tok, "Expected String, found %s.", tok)
	}
	if err := p.advance(); err != nil {
		return nil, err
	}
	return &StringValue{Value: tok.Value, Block: tok.Kind == BlockStringToken, Loc: p.loc(tok)}, nil
}

//	ObjectField[Const] :: Name : Value[?Const]
func (p *parser) parseObjectField(isConst bool) (*ObjectField, error) {
	start := p.token()
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(Colon); err != nil {
		return nil, err
	}
	value, err := p.parseValueLiteral(isConst)
	if err != nil {
		return nil, err
	}
	return &ObjectField{Name: name, Value: value, Loc: p.loc(start)}, nil
}

//	Directives[Const] :: Directive[?Const]+
func (p *parser) parseDirectives(isConst bool) ([]*Directive, error) {
	var directives []*Directive
	for p.peek(At) {
		d, err := p.parseDirective(isConst)
		if err != nil {
			return nil, err
		}
		directives = append(directives, d)
	}
	return directives, nil
}

//	Directive[Const] :: @ Name Arguments[?Const]?
func (p *parser) parseDirective(isConst bool) (*Directive, error) {
	start := p.token()
	if _, err := p.expect(At); err != nil {
		return nil, err
	}
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	args, err := p.parseArguments(isConst)
	if err != nil {
		return nil, err
	}
	return &Directive{Name: name, Arguments: args, Loc: p.loc(start)}, nil
}

//	Type ::
//	  - NamedType
//	  - ListType
//	  - NonNullType
func (p *parser) parseTypeReference() (Type, error) {
	start := p.token()
	var t Type
	if ok, err := p.skip(BracketL); err != nil {
		return nil, err
	} else if ok {
		inner, err := p.parseTypeReference()
		if err != nil {
			return nil, err
		}
		if _, err := p.expect(BracketR); err != nil {
			return nil, err
		}
		t = &ListType{Type: inner, Loc: p.loc(start)}
	} else {
		named, err := p.parseNamedType()
		if err != nil {
			return nil, err
		}
		t = named
	}
	if ok, err := p.skip(Bang); err != nil {
		return nil, err
	} else if ok {
		return &NonNullType{Type: t, Loc: p.loc(start)}, nil
	}
	return t, nil
}

//	NamedType :: Name
func (p *parser) parseNamedType() (*NamedType, error) {
	start := p.token()
	name, err := p.parseName()
	if err != nil {
		return nil, err
	}
	return &NamedType{Name: name, Loc: p.loc(start)}, nil
}

package schema

import (
	"slices"

	language "github.com/hanpama/gqlcore/internal/language"
)

// Render produces SDL from the Schema. Types and directives are sorted by
// name. Built-in scalars, directives and introspection types are omitted,
// and the schema definition only appears when root names are not the
// conventional ones or the schema has a description.
func Render(s *Schema) string {
	if s == nil {
		return ""
	}
	return language.Print(ToAST(s)) + "\n"
}

// ToAST converts the Schema into a type system document.
func ToAST(s *Schema) *language.TypeSystemDocument {
	doc := &language.TypeSystemDocument{}
	if def := schemaDefinitionAST(s); def != nil {
		doc.Definitions = append(doc.Definitions, def)
	}
	for _, name := range s.TypeNames() {
		if IsBuiltinType(name) {
			continue
		}
		if def := typeDefinitionAST(s.Types[name]); def != nil {
			doc.Definitions = append(doc.Definitions, def)
		}
	}
	names := make([]string, 0, len(s.Directives))
	for name := range s.Directives {
		if !IsBuiltinDirective(name) {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	for _, name := range names {
		doc.Definitions = append(doc.Definitions, directiveDefinitionAST(s.Directives[name]))
	}
	return doc
}

func schemaDefinitionAST(s *Schema) *language.SchemaDefinition {
	conventional := (s.QueryType == nil || s.QueryType.Name == "Query") &&
		(s.MutationType == nil || s.MutationType.Name == "Mutation") &&
		(s.SubscriptionType == nil || s.SubscriptionType.Name == "Subscription")
	if conventional && s.Description == "" {
		return nil
	}
	def := &language.SchemaDefinition{Description: descriptionAST(s.Description)}
	for _, root := range []struct {
		op  language.OperationType
		typ *Type
	}{
		{language.Query, s.QueryType},
		{language.Mutation, s.MutationType},
		{language.Subscription, s.SubscriptionType},
	} {
		if root.typ != nil {
			def.OperationTypes = append(def.OperationTypes, &language.OperationTypeDefinition{
				Operation: root.op,
				Type:      namedTypeAST(root.typ.Name),
			})
		}
	}
	return def
}

func typeDefinitionAST(t *Type) language.Definition {
	desc, name := descriptionAST(t.Description), nameAST(t.Name)
	switch t.Kind {
	case TypeKindScalar:
		return &language.ScalarTypeDefinition{Description: desc, Name: name, Directives: t.Directives}
	case TypeKindObject:
		return &language.ObjectTypeDefinition{
			Description: desc,
			Name:        name,
			Interfaces:  namedTypesAST(t.Interfaces),
			Directives:  t.Directives,
			Fields:      fieldsAST(t.Fields),
		}
	case TypeKindInterface:
		return &language.InterfaceTypeDefinition{
			Description: desc,
			Name:        name,
			Interfaces:  namedTypesAST(t.Interfaces),
			Directives:  t.Directives,
			Fields:      fieldsAST(t.Fields),
		}
	case TypeKindUnion:
		return &language.UnionTypeDefinition{
			Description: desc,
			Name:        name,
			Directives:  t.Directives,
			Types:       namedTypesAST(t.PossibleTypes),
		}
	case TypeKindEnum:
		values := make([]*language.EnumValueDefinition, len(t.EnumValues))
		for i, v := range t.EnumValues {
			values[i] = &language.EnumValueDefinition{
				Description: descriptionAST(v.Description),
				Name:        nameAST(v.Name),
				Directives:  v.Directives,
			}
		}
		return &language.EnumTypeDefinition{Description: desc, Name: name, Directives: t.Directives, Values: values}
	case TypeKindInputObject:
		return &language.InputObjectTypeDefinition{
			Description: desc,
			Name:        name,
			Directives:  t.Directives,
			Fields:      inputValuesAST(t.InputFields),
		}
	}
	return nil
}

func directiveDefinitionAST(d *Directive) *language.DirectiveDefinition {
	locations := make([]*language.Name, len(d.Locations))
	for i, l := range d.Locations {
		locations[i] = nameAST(l)
	}
	return &language.DirectiveDefinition{
		Description: descriptionAST(d.Description),
		Name:        nameAST(d.Name),
		Arguments:   inputValuesAST(d.Arguments),
		Repeatable:  d.IsRepeatable,
		Locations:   locations,
	}
}

func fieldsAST(fields []*Field) []*language.FieldDefinition {
	out := make([]*language.FieldDefinition, len(fields))
	for i, f := range fields {
		out[i] = &language.FieldDefinition{
			Description: descriptionAST(f.Description),
			Name:        nameAST(f.Name),
			Arguments:   inputValuesAST(f.Arguments),
			Type:        TypeRefToAST(f.Type),
			Directives:  f.Directives,
		}
	}
	return out
}

func inputValuesAST(values []*InputValue) []*language.InputValueDefinition {
	out := make([]*language.InputValueDefinition, len(values))
	for i, v := range values {
		out[i] = &language.InputValueDefinition{
			Description:  descriptionAST(v.Description),
			Name:         nameAST(v.Name),
			Type:         TypeRefToAST(v.Type),
			DefaultValue: v.DefaultValue,
			Directives:   v.Directives,
		}
	}
	return out
}

// TypeRefToAST converts a type reference into a type node.
func TypeRefToAST(t *TypeRef) language.Type {
	switch t.Kind {
	case TypeRefKindList:
		return &language.ListType{Type: TypeRefToAST(t.OfType)}
	case TypeRefKindNonNull:
		return &language.NonNullType{Type: TypeRefToAST(t.OfType)}
	}
	return namedTypeAST(t.Named)
}

func namedTypesAST(types []*Type) []*language.NamedType {
	out := make([]*language.NamedType, len(types))
	for i, t := range types {
		out[i] = namedTypeAST(t.Name)
	}
	return out
}

func namedTypeAST(name string) *language.NamedType { return &language.NamedType{Name: nameAST(name)} }

func nameAST(value string) *language.Name { return &language.Name{Value: value} }

func descriptionAST(desc string) *language.StringValue {
	if desc == "" {
		return nil
	}
	return &language.StringValue{Value: desc, Block: true}
}

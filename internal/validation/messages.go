package validation

import (
	"fmt"
	"strings"

	language "github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/schema"
)

// Message templates. Keep them stable, tests and clients match on them.

func msgDuplicateOperationName(name string) string {
	return fmt.Sprintf("There can be only one operation named %q.", name)
}

func msgAnonymousOperationNotAlone() string {
	return "This anonymous operation must be the only defined operation."
}

func msgSubscriptionSingleField(op *language.OperationDefinition) string {
	if op.Name == nil {
		return "Anonymous Subscription must select only one top level field."
	}
	return fmt.Sprintf("Subscription %q must select only one top level field.", op.Name.Value)
}

func msgSubscriptionIntrospection(op *language.OperationDefinition) string {
	if op.Name == nil {
		return "Anonymous Subscription must not select an introspection top level field."
	}
	return fmt.Sprintf("Subscription %q must not select an introspection top level field.", op.Name.Value)
}

func msgUnknownType(name string) string {
	return fmt.Sprintf("Unknown type %q.", name)
}

func msgInlineFragmentOnNonComposite(typeName string) string {
	return fmt.Sprintf("Fragment cannot condition on non composite type %q.", typeName)
}

func msgFragmentOnNonComposite(fragment, typeName string) string {
	return fmt.Sprintf("Fragment %q cannot condition on non composite type %q.", fragment, typeName)
}

func msgNonInputVariable(variable, typeName string) string {
	return fmt.Sprintf("Variable \"$%s\" cannot be non-input type %q.", variable, typeName)
}

func msgLeafWithSelection(field string, t *schema.TypeRef) string {
	return fmt.Sprintf("Field %q must not have a selection since type %q has no subfields.", field, t.String())
}

func msgCompositeWithoutSelection(field string, t *schema.TypeRef) string {
	return fmt.Sprintf("Field %q of type %q must have a selection of subfields. Did you mean \"%s { ... }\"?", field, t.String(), field)
}

func msgUndefinedField(field, typeName string) string {
	return fmt.Sprintf("Cannot query field %q on type %q.", field, typeName)
}

func msgDuplicateFragmentName(name string) string {
	return fmt.Sprintf("There can be only one fragment named %q.", name)
}

func msgUnknownFragment(name string) string {
	return fmt.Sprintf("Unknown fragment %q.", name)
}

func msgUnusedFragment(name string) string {
	return fmt.Sprintf("Fragment %q is never used.", name)
}

func msgFragmentCycle(name string, via []string) string {
	if len(via) == 0 {
		return fmt.Sprintf("Cannot spread fragment %q within itself.", name)
	}
	quoted := make([]string, len(via))
	for i, v := range via {
		quoted[i] = fmt.Sprintf("%q", v)
	}
	return fmt.Sprintf("Cannot spread fragment %q within itself via %s.", name, strings.Join(quoted, ", "))
}

func msgImpossibleInlineSpread(parent, fragType string) string {
	return fmt.Sprintf("Fragment cannot be spread here as objects of type %q can never be of type %q.", parent, fragType)
}

func msgImpossibleSpread(fragment, parent, fragType string) string {
	return fmt.Sprintf("Fragment %q cannot be spread here as objects of type %q can never be of type %q.", fragment, parent, fragType)
}

func msgUnknownDirective(name string) string {
	return fmt.Sprintf("Unknown directive \"@%s\".", name)
}

func msgMisplacedDirective(name, location string) string {
	return fmt.Sprintf("Directive \"@%s\" may not be used on %s.", name, location)
}

func msgDuplicateDirective(name string) string {
	return fmt.Sprintf("The directive \"@%s\" can only be used once at this location.", name)
}

func msgUnknownDirectiveArgument(arg, directive string) string {
	return fmt.Sprintf("Unknown argument %q on directive \"@%s\".", arg, directive)
}

func msgUnknownFieldArgument(arg, typeName, field string) string {
	return fmt.Sprintf("Unknown argument %q on field \"%s.%s\".", arg, typeName, field)
}

func msgDuplicateArgument(name string) string {
	return fmt.Sprintf("There can be only one argument named %q.", name)
}

func msgMissingFieldArgument(field string, arg *schema.InputValue) string {
	return fmt.Sprintf("Field %q argument %q of type %q is required, but it was not provided.", field, arg.Name, arg.Type.String())
}

func msgMissingDirectiveArgument(directive string, arg *schema.InputValue) string {
	return fmt.Sprintf("Directive \"@%s\" argument %q of type %q is required, but it was not provided.", directive, arg.Name, arg.Type.String())
}

func msgDuplicateVariable(name string) string {
	return fmt.Sprintf("There can be only one variable named \"$%s\".", name)
}

func msgUndefinedVariable(name string, op *language.OperationDefinition) string {
	if op.Name == nil {
		return fmt.Sprintf("Variable \"$%s\" is not defined.", name)
	}
	return fmt.Sprintf("Variable \"$%s\" is not defined by operation %q.", name, op.Name.Value)
}

func msgUnusedVariable(name string, op *language.OperationDefinition) string {
	if op.Name == nil {
		return fmt.Sprintf("Variable \"$%s\" is never used.", name)
	}
	return fmt.Sprintf("Variable \"$%s\" is never used in operation %q.", name, op.Name.Value)
}

func msgExpectedType(t *schema.TypeRef, v language.Value) string {
	return fmt.Sprintf("Expected value of type %q, found %s.", t.String(), language.Print(v))
}

func msgExpectedTypeBecause(t *schema.TypeRef, v language.Value, err error) string {
	return fmt.Sprintf("Expected value of type %q, found %s; %v", t.String(), language.Print(v), err)
}

func msgNonEnumValue(enum string, v language.Value) string {
	return fmt.Sprintf("Enum %q cannot represent non-enum value: %s.", enum, language.Print(v))
}

func msgUnknownEnumValue(value, enum string) string {
	return fmt.Sprintf("Value %q does not exist in %q enum.", value, enum)
}

func msgMissingInputField(typeName string, f *schema.InputValue) string {
	return fmt.Sprintf("Field \"%s.%s\" of required type %q was not provided.", typeName, f.Name, f.Type.String())
}

func msgUnknownInputField(field, typeName string) string {
	return fmt.Sprintf("Field %q is not defined by type %q.", field, typeName)
}

func msgOneOfKeyCount(typeName string) string {
	return fmt.Sprintf("OneOf Input Object %q must specify exactly one key.", typeName)
}

func msgOneOfNull(typeName, field string) string {
	return fmt.Sprintf("Field \"%s.%s\" must be non-null.", typeName, field)
}

func msgBadVariablePosition(variable string, varType, expected *schema.TypeRef) string {
	return fmt.Sprintf("Variable \"$%s\" of type %q used in position expecting type %q.", variable, varType.String(), expected.String())
}

func msgDuplicateInputField(name string) string {
	return fmt.Sprintf("There can be only one input field named %q.", name)
}

func msgFieldConflict(responseKey, reason string) string {
	return fmt.Sprintf("Fields %q conflict because %s. Use different aliases on the fields to fetch both if this was intentional.", responseKey, reason)
}

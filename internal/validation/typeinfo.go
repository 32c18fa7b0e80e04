package validation

import (
	language "github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/schema"
)

// typeInfo tracks the schema elements that correspond to the node being
// visited. It is updated before rules enter a node and after they leave it.
type typeInfo struct {
	parentTypes []*schema.Type
	outputTypes []*schema.TypeRef
	fieldDefs   []*schema.Field
	inputTypes  []*schema.TypeRef

	directiveNode *language.Directive
	directive     *schema.Directive
	argument      *schema.InputValue
	location      string
}

// ParentType is the composite type owning the current selection set.
func (ti *typeInfo) ParentType() *schema.Type { return top(ti.parentTypes) }

// Type is the output type of the current field, operation or fragment.
func (ti *typeInfo) Type() *schema.TypeRef { return top(ti.outputTypes) }

// FieldDef is the definition of the current field.
func (ti *typeInfo) FieldDef() *schema.Field { return top(ti.fieldDefs) }

// InputType is the type expected for the current input value.
func (ti *typeInfo) InputType() *schema.TypeRef { return top(ti.inputTypes) }

// ParentInputType is the type expected for the value enclosing the current one.
func (ti *typeInfo) ParentInputType() *schema.TypeRef {
	if len(ti.inputTypes) < 2 {
		return nil
	}
	return ti.inputTypes[len(ti.inputTypes)-2]
}

// Directive is the definition of the directive being visited.
func (ti *typeInfo) Directive() *schema.Directive { return ti.directive }

// Argument is the definition of the argument being visited.
func (ti *typeInfo) Argument() *schema.InputValue { return ti.argument }

// DirectiveLocation is the location name of the directives being visited.
func (ti *typeInfo) DirectiveLocation() string { return ti.location }

func (ti *typeInfo) enter(s *schema.Schema, n language.Node) {
	switch n := n.(type) {
	case *language.SelectionSet:
		named := ti.Type().NamedType()
		if named != nil && !named.IsComposite() {
			named = nil
		}
		ti.parentTypes = append(ti.parentTypes, named)
	case *language.Field:
		def := s.FieldFor(ti.ParentType(), n.Name.Value)
		ti.fieldDefs = append(ti.fieldDefs, def)
		var t *schema.TypeRef
		if def != nil {
			t = def.Type
		}
		ti.outputTypes = append(ti.outputTypes, t)
	case *language.Directive:
		ti.directiveNode = n
		ti.directive = s.Directive(n.Name.Value)
	case *language.OperationDefinition:
		ti.outputTypes = append(ti.outputTypes, namedRef(s.RootType(n.Operation)))
	case *language.InlineFragment:
		if n.TypeCondition != nil {
			ti.outputTypes = append(ti.outputTypes, namedRef(s.Type(n.TypeCondition.Name.Value)))
		} else {
			ti.outputTypes = append(ti.outputTypes, namedRef(ti.ParentType()))
		}
	case *language.FragmentDefinition:
		ti.outputTypes = append(ti.outputTypes, namedRef(s.Type(n.TypeCondition.Name.Value)))
	case *language.VariableDefinition:
		ti.inputTypes = append(ti.inputTypes, s.TypeFromAST(n.Type))
	case *language.Argument:
		var def *schema.InputValue
		if ti.directiveNode != nil {
			if ti.directive != nil {
				def = ti.directive.Argument(n.Name.Value)
			}
		} else if fd := ti.FieldDef(); fd != nil {
			def = fd.Argument(n.Name.Value)
		}
		ti.argument = def
		var t *schema.TypeRef
		if def != nil {
			t = def.Type
		}
		ti.inputTypes = append(ti.inputTypes, t)
	case *language.ObjectField:
		var t *schema.TypeRef
		if obj := ti.InputType().NamedType(); obj != nil && obj.Kind == schema.TypeKindInputObject {
			if f := obj.InputField(n.Name.Value); f != nil {
				t = f.Type
			}
		}
		ti.inputTypes = append(ti.inputTypes, t)
	}
}

func (ti *typeInfo) leave(n language.Node) {
	switch n.(type) {
	case *language.SelectionSet:
		ti.parentTypes = pop(ti.parentTypes)
	case *language.Field:
		ti.fieldDefs = pop(ti.fieldDefs)
		ti.outputTypes = pop(ti.outputTypes)
	case *language.Directive:
		ti.directiveNode = nil
		ti.directive = nil
	case *language.OperationDefinition, *language.InlineFragment, *language.FragmentDefinition:
		ti.outputTypes = pop(ti.outputTypes)
	case *language.VariableDefinition, *language.ObjectField:
		ti.inputTypes = pop(ti.inputTypes)
	case *language.Argument:
		ti.argument = nil
		ti.inputTypes = pop(ti.inputTypes)
	}
}

func top[T any](stack []*T) *T {
	if len(stack) == 0 {
		return nil
	}
	return stack[len(stack)-1]
}

func pop[T any](stack []T) []T {
	if len(stack) == 0 {
		return stack
	}
	return stack[:len(stack)-1]
}

func namedRef(t *schema.Type) *schema.TypeRef {
	if t == nil {
		return nil
	}
	return schema.NamedType(t)
}

// listItemType is the item type of a list input type, or nil when t does
// not describe a list.
func listItemType(t *schema.TypeRef) *schema.TypeRef {
	if t == nil {
		return nil
	}
	if n := t.Nullable(); n.Kind == schema.TypeRefKindList {
		return n.OfType
	}
	return nil
}

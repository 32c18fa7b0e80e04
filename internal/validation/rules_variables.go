package validation

import (
	language "github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/schema"
)

// UniqueVariableNames rejects a variable declared twice by one operation.
var UniqueVariableNames Rule = uniqueVariableNames{}

type uniqueVariableNames struct{ enterOnly }

func (uniqueVariableNames) Name() string { return "UniqueVariableNames" }

func (uniqueVariableNames) Enter(w *Walk, n language.Node) {
	op, ok := n.(*language.OperationDefinition)
	if !ok {
		return
	}
	seen := make(map[string]*language.Name, len(op.VariableDefinitions))
	for _, v := range op.VariableDefinitions {
		name := v.Variable.Name
		if prev, ok := seen[name.Value]; ok {
			w.Report(msgDuplicateVariable(name.Value), prev, name)
			continue
		}
		seen[name.Value] = name
	}
}

// NoUndefinedVariables requires every variable used by an operation,
// including through fragments, to be declared by it.
var NoUndefinedVariables Rule = noUndefinedVariables{}

type noUndefinedVariables struct{ enterOnly }

func (noUndefinedVariables) Name() string { return "NoUndefinedVariables" }

func (noUndefinedVariables) Enter(w *Walk, n language.Node) {
	op, ok := n.(*language.OperationDefinition)
	if !ok {
		return
	}
	defined := make(map[string]bool, len(op.VariableDefinitions))
	for _, v := range op.VariableDefinitions {
		defined[v.Variable.Name.Value] = true
	}
	for _, usage := range variableUsages(w.Document, op) {
		if !defined[usage.Name.Value] {
			w.Report(msgUndefinedVariable(usage.Name.Value, op), usage, op)
		}
	}
}

// NoUnusedVariables requires every declared variable to be used.
var NoUnusedVariables Rule = noUnusedVariables{}

type noUnusedVariables struct{ enterOnly }

func (noUnusedVariables) Name() string { return "NoUnusedVariables" }

func (noUnusedVariables) Enter(w *Walk, n language.Node) {
	op, ok := n.(*language.OperationDefinition)
	if !ok {
		return
	}
	used := make(map[string]bool)
	for _, usage := range variableUsages(w.Document, op) {
		used[usage.Name.Value] = true
	}
	for _, v := range op.VariableDefinitions {
		if !used[v.Variable.Name.Value] {
			w.Report(msgUnusedVariable(v.Variable.Name.Value, op), v)
		}
	}
}

// VariablesInAllowedPosition requires each variable usage to fit the type
// expected where it appears. A nullable variable may fill a non-null
// position only when the variable or the argument has a default.
var VariablesInAllowedPosition Rule = variablesInAllowedPosition{}

type variablesInAllowedPosition struct{}

// variableUsage is one variable reference and the type expected for it.
type variableUsage struct {
	node       *language.Variable
	expected   *schema.TypeRef
	hasDefault bool
}

type variablePositions struct {
	current language.Node
	usages  map[language.Node][]variableUsage
}

func (variablesInAllowedPosition) Name() string { return "VariablesInAllowedPosition" }

func (variablesInAllowedPosition) Enter(w *Walk, n language.Node) {
	st := ruleState(w, func() *variablePositions {
		return &variablePositions{usages: make(map[language.Node][]variableUsage)}
	})
	switch n := n.(type) {
	case *language.OperationDefinition, *language.FragmentDefinition:
		st.current = n
	case *language.Variable:
		expected := w.InputType()
		if st.current == nil || expected == nil {
			return
		}
		// Argument defaults only count when the variable is the whole value.
		direct := len(w.inputTypes) == 1 && w.Argument() != nil
		st.usages[st.current] = append(st.usages[st.current], variableUsage{
			node:       n,
			expected:   expected,
			hasDefault: direct && w.Argument().DefaultValue != nil,
		})
	}
}

func (variablesInAllowedPosition) Leave(w *Walk, n language.Node) {
	if _, ok := n.(*language.ExecutableDocument); !ok {
		return
	}
	st := ruleState(w, func() *variablePositions {
		return &variablePositions{usages: make(map[language.Node][]variableUsage)}
	})
	for _, def := range w.Document.Definitions {
		op, ok := def.(*language.OperationDefinition)
		if !ok {
			continue
		}
		defs := make(map[string]*language.VariableDefinition, len(op.VariableDefinitions))
		for _, v := range op.VariableDefinitions {
			defs[v.Variable.Name.Value] = v
		}
		usages := st.usages[op]
		for _, frag := range referencedFragments(w.Document, op.SelectionSet) {
			usages = append(usages, st.usages[frag]...)
		}
		for _, u := range usages {
			def, ok := defs[u.node.Name.Value]
			if !ok {
				continue
			}
			varType := w.Schema.TypeFromAST(def.Type)
			if varType == nil || varType.NamedType() == nil {
				continue
			}
			if !allowedVariableUsage(varType, def.DefaultValue, u) {
				w.Report(msgBadVariablePosition(u.node.Name.Value, varType, u.expected), def, u.node)
			}
		}
	}
}

func allowedVariableUsage(varType *schema.TypeRef, varDefault language.Value, u variableUsage) bool {
	expected := u.expected
	if expected.IsNonNull() && !varType.IsNonNull() {
		_, isNull := varDefault.(*language.NullValue)
		if (varDefault == nil || isNull) && !u.hasDefault {
			return false
		}
		expected = expected.OfType
	}
	return isTypeSubTypeOf(varType, expected)
}

// isTypeSubTypeOf reports whether a value of type sub is accepted where
// super is expected. Input types have no abstract members, so only the
// wrappers matter.
func isTypeSubTypeOf(sub, super *schema.TypeRef) bool {
	switch {
	case sub.Equal(super):
		return true
	case super.Kind == schema.TypeRefKindNonNull:
		return sub.Kind == schema.TypeRefKindNonNull && isTypeSubTypeOf(sub.OfType, super.OfType)
	case sub.Kind == schema.TypeRefKindNonNull:
		return isTypeSubTypeOf(sub.OfType, super)
	case super.Kind == schema.TypeRefKindList:
		return sub.Kind == schema.TypeRefKindList && isTypeSubTypeOf(sub.OfType, super.OfType)
	}
	return false
}

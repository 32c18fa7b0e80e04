package validation

import (
	language "github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/schema"
)

// KnownTypeNames requires every type named in the document to exist.
var KnownTypeNames Rule = knownTypeNames{}

type knownTypeNames struct{ enterOnly }

func (knownTypeNames) Name() string { return "KnownTypeNames" }

func (knownTypeNames) Enter(w *Walk, n language.Node) {
	if t, ok := n.(*language.NamedType); ok && w.Schema.Type(t.Name.Value) == nil {
		w.Report(msgUnknownType(t.Name.Value), t)
	}
}

// FragmentsOnCompositeTypes requires type conditions to name composite types.
var FragmentsOnCompositeTypes Rule = fragmentsOnCompositeTypes{}

type fragmentsOnCompositeTypes struct{ enterOnly }

func (fragmentsOnCompositeTypes) Name() string { return "FragmentsOnCompositeTypes" }

func (fragmentsOnCompositeTypes) Enter(w *Walk, n language.Node) {
	switch n := n.(type) {
	case *language.InlineFragment:
		if n.TypeCondition == nil {
			return
		}
		if t := w.Schema.Type(n.TypeCondition.Name.Value); t != nil && !t.IsComposite() {
			w.Report(msgInlineFragmentOnNonComposite(t.Name), n.TypeCondition)
		}
	case *language.FragmentDefinition:
		if t := w.Schema.Type(n.TypeCondition.Name.Value); t != nil && !t.IsComposite() {
			w.Report(msgFragmentOnNonComposite(n.Name.Value, t.Name), n.TypeCondition)
		}
	}
}

// VariablesAreInputTypes requires variables to be declared with input types.
var VariablesAreInputTypes Rule = variablesAreInputTypes{}

type variablesAreInputTypes struct{ enterOnly }

func (variablesAreInputTypes) Name() string { return "VariablesAreInputTypes" }

func (variablesAreInputTypes) Enter(w *Walk, n language.Node) {
	v, ok := n.(*language.VariableDefinition)
	if !ok {
		return
	}
	if t := w.Schema.TypeFromAST(v.Type); t != nil && !t.NamedType().IsInputType() {
		w.Report(msgNonInputVariable(v.Variable.Name.Value, v.Type.String()), v.Type)
	}
}

// ScalarLeafs requires selections on composite fields and forbids them on
// leaf fields.
var ScalarLeafs Rule = scalarLeafs{}

type scalarLeafs struct{ enterOnly }

func (scalarLeafs) Name() string { return "ScalarLeafs" }

func (scalarLeafs) Enter(w *Walk, n language.Node) {
	f, ok := n.(*language.Field)
	if !ok {
		return
	}
	t := w.Type()
	named := t.NamedType()
	if named == nil {
		return
	}
	switch {
	case named.IsLeaf() && f.SelectionSet != nil:
		w.Report(msgLeafWithSelection(f.Name.Value, t), f.SelectionSet)
	case !named.IsLeaf() && f.SelectionSet == nil:
		w.Report(msgCompositeWithoutSelection(f.Name.Value, t), f)
	}
}

// FieldsOnCorrectType requires selected fields to be defined on the parent type.
var FieldsOnCorrectType Rule = fieldsOnCorrectType{}

type fieldsOnCorrectType struct{ enterOnly }

func (fieldsOnCorrectType) Name() string { return "FieldsOnCorrectType" }

func (fieldsOnCorrectType) Enter(w *Walk, n language.Node) {
	f, ok := n.(*language.Field)
	if !ok {
		return
	}
	if parent := w.ParentType(); parent != nil && w.FieldDef() == nil {
		w.Report(msgUndefinedField(f.Name.Value, parent.Name), f)
	}
}

// PossibleFragmentSpreads rejects fragments whose type condition can never
// apply to the parent type.
var PossibleFragmentSpreads Rule = possibleFragmentSpreads{}

type possibleFragmentSpreads struct{ enterOnly }

func (possibleFragmentSpreads) Name() string { return "PossibleFragmentSpreads" }

func (possibleFragmentSpreads) Enter(w *Walk, n language.Node) {
	parent := w.ParentType()
	switch n := n.(type) {
	case *language.InlineFragment:
		frag := w.Type().NamedType()
		if n.TypeCondition == nil || frag == nil || parent == nil || !frag.IsComposite() {
			return
		}
		if !typesOverlap(w.Schema, frag, parent) {
			w.Report(msgImpossibleInlineSpread(parent.Name, frag.Name), n)
		}
	case *language.FragmentSpread:
		def := w.Document.Fragment(n.Name.Value)
		if def == nil || parent == nil {
			return
		}
		frag := w.Schema.Type(def.TypeCondition.Name.Value)
		if frag == nil || !frag.IsComposite() {
			return
		}
		if !typesOverlap(w.Schema, frag, parent) {
			w.Report(msgImpossibleSpread(n.Name.Value, parent.Name, frag.Name), n)
		}
	}
}

func typesOverlap(s *schema.Schema, a, b *schema.Type) bool {
	if a == b {
		return true
	}
	if a.IsAbstract() {
		if b.IsAbstract() {
			for _, t := range s.PossibleTypes(a) {
				if s.IsPossibleType(b, t) {
					return true
				}
			}
			return false
		}
		return s.IsPossibleType(a, b)
	}
	if b.IsAbstract() {
		return s.IsPossibleType(b, a)
	}
	return false
}

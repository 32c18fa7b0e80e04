package validation

import (
	language "github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/schema"
)

// ValuesOfCorrectType checks every literal against the input type expected
// at its position. Variables are checked at coercion time instead.
var ValuesOfCorrectType Rule = valuesOfCorrectType{}

type valuesOfCorrectType struct{ enterOnly }

func (valuesOfCorrectType) Name() string { return "ValuesOfCorrectType" }

func (valuesOfCorrectType) Enter(w *Walk, n language.Node) {
	switch v := n.(type) {
	case *language.NullValue:
		if t := w.InputType(); t.IsNonNull() {
			w.Report(msgExpectedType(t, v), v)
		}
	case *language.ListValue:
		t := w.InputType()
		if t != nil && t.Nullable().Kind != schema.TypeRefKindList {
			checkLeafLiteral(w, v, t)
		}
	case *language.ObjectValue:
		t := w.InputType()
		named := t.NamedType()
		if named == nil {
			return
		}
		if named.Kind != schema.TypeKindInputObject {
			checkLeafLiteral(w, v, t)
			return
		}
		given := make(map[string]*language.ObjectField, len(v.Fields))
		for _, f := range v.Fields {
			given[f.Name.Value] = f
		}
		for _, def := range named.InputFields {
			if _, ok := given[def.Name]; !ok && def.Type.IsNonNull() && def.DefaultValue == nil {
				w.Report(msgMissingInputField(named.Name, def), v)
			}
		}
		if named.OneOf {
			if len(v.Fields) != 1 {
				w.Report(msgOneOfKeyCount(named.Name), v)
			} else if _, isNull := v.Fields[0].Value.(*language.NullValue); isNull {
				w.Report(msgOneOfNull(named.Name, v.Fields[0].Name.Value), v)
			}
		}
	case *language.ObjectField:
		parent := w.ParentInputType().NamedType()
		if parent != nil && parent.Kind == schema.TypeKindInputObject && parent.InputField(v.Name.Value) == nil {
			w.Report(msgUnknownInputField(v.Name.Value, parent.Name), v)
		}
	case *language.IntValue, *language.FloatValue, *language.StringValue, *language.BooleanValue, *language.EnumValue:
		if t := w.InputType(); t != nil {
			checkLeafLiteral(w, v.(language.Value), t)
		}
	}
}

// checkLeafLiteral validates a literal that must be accepted by a scalar or
// enum type.
func checkLeafLiteral(w *Walk, v language.Value, t *schema.TypeRef) {
	named := t.NamedType()
	if named == nil {
		return
	}
	if !named.IsLeaf() {
		w.Report(msgExpectedType(t, v), v)
		return
	}
	if named.Kind == schema.TypeKindEnum {
		ev, ok := v.(*language.EnumValue)
		if !ok {
			w.Report(msgNonEnumValue(named.Name, v), v)
			return
		}
		if named.EnumValue(ev.Value) == nil {
			w.Report(msgUnknownEnumValue(ev.Value, named.Name), v)
		}
		return
	}
	if named.ParseLiteral == nil {
		return
	}
	if _, err := named.ParseLiteral(v, nil); err != nil {
		w.Report(msgExpectedTypeBecause(t, v, err), v)
	}
}

// UniqueInputFieldNames rejects an input object literal naming a field twice.
var UniqueInputFieldNames Rule = uniqueInputFieldNames{}

type uniqueInputFieldNames struct{ enterOnly }

func (uniqueInputFieldNames) Name() string { return "UniqueInputFieldNames" }

func (uniqueInputFieldNames) Enter(w *Walk, n language.Node) {
	obj, ok := n.(*language.ObjectValue)
	if !ok {
		return
	}
	seen := make(map[string]*language.Name, len(obj.Fields))
	for _, f := range obj.Fields {
		if prev, ok := seen[f.Name.Value]; ok {
			w.Report(msgDuplicateInputField(f.Name.Value), prev, f.Name)
			continue
		}
		seen[f.Name.Value] = f.Name
	}
}

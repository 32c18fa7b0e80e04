package executor

import (
	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

// collectedFieldMap preserves field order from the original query
type collectedFieldMap struct {
	fields []collectedField
	index  map[string]int
}

type collectedField struct {
	ResponseName string
	Fields       []*language.Field
}

func newCollectedFieldMap() *collectedFieldMap {
	return &collectedFieldMap{index: make(map[string]int)}
}

func (cfm *collectedFieldMap) add(responseName string, field *language.Field) {
	if idx, exists := cfm.index[responseName]; exists {
		cfm.fields[idx].Fields = append(cfm.fields[idx].Fields, field)
		return
	}
	cfm.index[responseName] = len(cfm.fields)
	cfm.fields = append(cfm.fields, collectedField{
		ResponseName: responseName,
		Fields:       []*language.Field{field},
	})
}

func (cfm *collectedFieldMap) orderedFields() []collectedField {
	return cfm.fields
}

// collectFields groups the selections that apply to objectType by response
// key, in first-occurrence order.
func (x *execution) collectFields(objectType *schema.Type, selectionSet *language.SelectionSet) *collectedFieldMap {
	grouped := newCollectedFieldMap()
	x.collectFieldsImpl(objectType, selectionSet, grouped, make(map[string]bool))
	return grouped
}

// collectSubfields merges the sub-selections of every field node of one
// grouped field.
func (x *execution) collectSubfields(objectType *schema.Type, fields []*language.Field) *collectedFieldMap {
	grouped := newCollectedFieldMap()
	visited := make(map[string]bool)
	for _, f := range fields {
		x.collectFieldsImpl(objectType, f.SelectionSet, grouped, visited)
	}
	return grouped
}

func (x *execution) collectFieldsImpl(objectType *schema.Type, selectionSet *language.SelectionSet, grouped *collectedFieldMap, visitedFragments map[string]bool) {
	if selectionSet == nil {
		return
	}
	for _, selection := range selectionSet.Selections {
		switch sel := selection.(type) {
		case *language.Field:
			if !x.shouldIncludeNode(sel.Directives) {
				continue
			}
			grouped.add(sel.ResponseKey(), sel)

		case *language.InlineFragment:
			if !x.shouldIncludeNode(sel.Directives) {
				continue
			}
			if !x.doesFragmentConditionMatch(sel.TypeCondition, objectType) {
				continue
			}
			x.collectFieldsImpl(objectType, sel.SelectionSet, grouped, visitedFragments)

		case *language.FragmentSpread:
			name := sel.Name.Value
			if visitedFragments[name] || !x.shouldIncludeNode(sel.Directives) {
				continue
			}
			visitedFragments[name] = true

			fragmentDef := x.doc.Fragment(name)
			if fragmentDef == nil {
				continue
			}
			if !x.doesFragmentConditionMatch(fragmentDef.TypeCondition, objectType) {
				continue
			}
			x.collectFieldsImpl(objectType, fragmentDef.SelectionSet, grouped, visitedFragments)
		}
	}
}

// doesFragmentConditionMatch reports whether a fragment typed cond applies
// to objectType: the same type, or an interface or union it belongs to.
func (x *execution) doesFragmentConditionMatch(cond *language.NamedType, objectType *schema.Type) bool {
	if cond == nil {
		return true
	}
	condType := x.schema.Type(cond.Name.Value)
	if condType == nil {
		return false
	}
	if condType == objectType {
		return true
	}
	if condType.IsAbstract() {
		return x.schema.IsPossibleType(condType, objectType)
	}
	return false
}

// shouldIncludeNode evaluates @skip and @include.
func (x *execution) shouldIncludeNode(directives []*language.Directive) bool {
	for _, d := range directives {
		var def *schema.Directive
		switch d.Name.Value {
		case "skip", "include":
			def = x.schema.Directive(d.Name.Value)
		default:
			continue
		}
		if def == nil {
			continue
		}
		args, err := coerceArgumentValues(def.Arguments, d.Arguments, x.variables)
		if err != nil {
			continue
		}
		cond, _ := args["if"].(bool)
		if d.Name.Value == "skip" && cond {
			return false
		}
		if d.Name.Value == "include" && !cond {
			return false
		}
	}
	return true
}

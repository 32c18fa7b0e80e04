package validation

import (
	language "github.com/hanpama/gqlcore/internal/language"
)

// SpecifiedRules is the rule set Validate applies by default, in reporting
// order.
var SpecifiedRules = []Rule{
	UniqueOperationNames,
	LoneAnonymousOperation,
	SingleFieldSubscriptions,
	KnownTypeNames,
	FragmentsOnCompositeTypes,
	VariablesAreInputTypes,
	ScalarLeafs,
	FieldsOnCorrectType,
	UniqueFragmentNames,
	KnownFragmentNames,
	NoUnusedFragments,
	PossibleFragmentSpreads,
	NoFragmentCycles,
	UniqueVariableNames,
	NoUndefinedVariables,
	NoUnusedVariables,
	VariablesInAllowedPosition,
	KnownDirectives,
	UniqueDirectivesPerLocation,
	KnownArgumentNames,
	UniqueArgumentNames,
	ValuesOfCorrectType,
	ProvidedRequiredArguments,
	OverlappingFieldsCanBeMerged,
	UniqueInputFieldNames,
}

// enterOnly gives a rule a no-op Leave.
type enterOnly struct{}

func (enterOnly) Leave(*Walk, language.Node) {}

// leaveOnly gives a rule a no-op Enter.
type leaveOnly struct{}

func (leaveOnly) Enter(*Walk, language.Node) {}

func directivesOf(n language.Node) []*language.Directive {
	switch n := n.(type) {
	case *language.OperationDefinition:
		return n.Directives
	case *language.Field:
		return n.Directives
	case *language.FragmentSpread:
		return n.Directives
	case *language.InlineFragment:
		return n.Directives
	case *language.FragmentDefinition:
		return n.Directives
	case *language.VariableDefinition:
		return n.Directives
	}
	return nil
}

// fragmentSpreads lists the spreads written directly in ss, including those
// nested in fields and inline fragments but not inside spread fragments.
func fragmentSpreads(ss *language.SelectionSet) []*language.FragmentSpread {
	var out []*language.FragmentSpread
	var walk func(*language.SelectionSet)
	walk = func(ss *language.SelectionSet) {
		if ss == nil {
			return
		}
		for _, sel := range ss.Selections {
			switch sel := sel.(type) {
			case *language.Field:
				walk(sel.SelectionSet)
			case *language.InlineFragment:
				walk(sel.SelectionSet)
			case *language.FragmentSpread:
				out = append(out, sel)
			}
		}
	}
	walk(ss)
	return out
}

// referencedFragments returns every fragment reachable from ss, each once,
// in discovery order.
func referencedFragments(doc *language.ExecutableDocument, ss *language.SelectionSet) []*language.FragmentDefinition {
	var out []*language.FragmentDefinition
	seen := make(map[string]bool)
	queue := []*language.SelectionSet{ss}
	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]
		for _, spread := range fragmentSpreads(current) {
			name := spread.Name.Value
			if seen[name] {
				continue
			}
			seen[name] = true
			if frag := doc.Fragment(name); frag != nil {
				out = append(out, frag)
				queue = append(queue, frag.SelectionSet)
			}
		}
	}
	return out
}

// variableUsages returns every variable referenced by op, including those
// inside fragments it reaches.
func variableUsages(doc *language.ExecutableDocument, op *language.OperationDefinition) []*language.Variable {
	var out []*language.Variable
	var inValue func(language.Value)
	inValue = func(v language.Value) {
		switch v := v.(type) {
		case *language.Variable:
			out = append(out, v)
		case *language.ListValue:
			for _, x := range v.Values {
				inValue(x)
			}
		case *language.ObjectValue:
			for _, f := range v.Fields {
				inValue(f.Value)
			}
		}
	}
	inDirectives := func(dirs []*language.Directive) {
		for _, d := range dirs {
			for _, a := range d.Arguments {
				inValue(a.Value)
			}
		}
	}
	var inSelections func(*language.SelectionSet)
	inSelections = func(ss *language.SelectionSet) {
		if ss == nil {
			return
		}
		for _, sel := range ss.Selections {
			switch sel := sel.(type) {
			case *language.Field:
				for _, a := range sel.Arguments {
					inValue(a.Value)
				}
				inDirectives(sel.Directives)
				inSelections(sel.SelectionSet)
			case *language.InlineFragment:
				inDirectives(sel.Directives)
				inSelections(sel.SelectionSet)
			case *language.FragmentSpread:
				inDirectives(sel.Directives)
			}
		}
	}
	inDirectives(op.Directives)
	inSelections(op.SelectionSet)
	for _, frag := range referencedFragments(doc, op.SelectionSet) {
		inDirectives(frag.Directives)
		inSelections(frag.SelectionSet)
	}
	return out
}

// skippedByLiteral reports whether a selection is excluded by @skip or
// @include with a literal condition.
func skippedByLiteral(dirs []*language.Directive) bool {
	for _, d := range dirs {
		if d.Name.Value != "skip" && d.Name.Value != "include" {
			continue
		}
		for _, a := range d.Arguments {
			b, ok := a.Value.(*language.BooleanValue)
			if a.Name.Value != "if" || !ok {
				continue
			}
			if b.Value == (d.Name.Value == "skip") {
				return true
			}
		}
	}
	return false
}

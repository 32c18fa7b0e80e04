package validation

import (
	"fmt"
	"strings"

	language "github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/schema"
)

// OverlappingFieldsCanBeMerged requires fields sharing a response key to be
// executable as one: the same field with the same arguments unless their
// parents are distinct object types, compatible return types, and mergeable
// sub-selections.
var OverlappingFieldsCanBeMerged Rule = overlappingFieldsCanBeMerged{}

type overlappingFieldsCanBeMerged struct{ enterOnly }

type fieldPair [2]*language.Field

func (overlappingFieldsCanBeMerged) Name() string { return "OverlappingFieldsCanBeMerged" }

func (overlappingFieldsCanBeMerged) Enter(w *Walk, n language.Node) {
	ss, ok := n.(*language.SelectionSet)
	if !ok {
		return
	}
	compared := *ruleState(w, func() *map[fieldPair]bool {
		m := make(map[fieldPair]bool)
		return &m
	})
	groups := collectFieldGroups(w, w.ParentType(), ss)
	for _, key := range groups.keys {
		fields := groups.byKey[key]
		for i := 0; i < len(fields); i++ {
			for j := i + 1; j < len(fields); j++ {
				a, b := fields[i], fields[j]
				if a.node == b.node || compared[fieldPair{a.node, b.node}] || compared[fieldPair{b.node, a.node}] {
					continue
				}
				compared[fieldPair{a.node, b.node}] = true
				if c := findConflict(w, a, b, false, make(map[fieldPair]bool)); c != nil {
					w.Report(msgFieldConflict(key, c.reason), c.nodes...)
				}
			}
		}
	}
}

type fieldAndParent struct {
	parent *schema.Type
	node   *language.Field
	def    *schema.Field
}

type fieldGroups struct {
	keys  []string
	byKey map[string][]fieldAndParent
}

func collectFieldGroups(w *Walk, parent *schema.Type, ss *language.SelectionSet) *fieldGroups {
	g := &fieldGroups{byKey: make(map[string][]fieldAndParent)}
	visited := make(map[string]bool)
	var collect func(*schema.Type, *language.SelectionSet)
	collect = func(parent *schema.Type, ss *language.SelectionSet) {
		if ss == nil {
			return
		}
		for _, sel := range ss.Selections {
			switch sel := sel.(type) {
			case *language.Field:
				key := sel.ResponseKey()
				if _, ok := g.byKey[key]; !ok {
					g.keys = append(g.keys, key)
				}
				g.byKey[key] = append(g.byKey[key], fieldAndParent{
					parent: parent,
					node:   sel,
					def:    w.Schema.FieldFor(parent, sel.Name.Value),
				})
			case *language.InlineFragment:
				cond := parent
				if sel.TypeCondition != nil {
					cond = w.Schema.Type(sel.TypeCondition.Name.Value)
				}
				collect(cond, sel.SelectionSet)
			case *language.FragmentSpread:
				name := sel.Name.Value
				if visited[name] {
					continue
				}
				visited[name] = true
				if frag := w.Document.Fragment(name); frag != nil {
					collect(w.Schema.Type(frag.TypeCondition.Name.Value), frag.SelectionSet)
				}
			}
		}
	}
	collect(parent, ss)
	return g
}

type conflict struct {
	reason string
	nodes  []language.Node
}

// findConflict compares two fields with the same response key. inProgress
// holds the pairs being compared further up, which breaks cycles through
// mutually recursive fragments.
func findConflict(w *Walk, a, b fieldAndParent, parentsExclusive bool, inProgress map[fieldPair]bool) *conflict {
	pair := fieldPair{a.node, b.node}
	if a.node == b.node || inProgress[pair] {
		return nil
	}
	inProgress[pair] = true
	defer delete(inProgress, pair)

	exclusive := parentsExclusive || (a.parent != b.parent &&
		a.parent != nil && a.parent.Kind == schema.TypeKindObject &&
		b.parent != nil && b.parent.Kind == schema.TypeKindObject)
	nodes := []language.Node{a.node, b.node}

	if !exclusive {
		if a.node.Name.Value != b.node.Name.Value {
			return &conflict{
				reason: fmt.Sprintf("%q and %q are different fields", a.node.Name.Value, b.node.Name.Value),
				nodes:  nodes,
			}
		}
		if !sameArguments(a.node.Arguments, b.node.Arguments) {
			return &conflict{reason: "they have differing arguments", nodes: nodes}
		}
	}

	var ta, tb *schema.TypeRef
	if a.def != nil {
		ta = a.def.Type
	}
	if b.def != nil {
		tb = b.def.Type
	}
	if ta != nil && tb != nil && typesConflict(ta, tb) {
		return &conflict{
			reason: fmt.Sprintf("they return conflicting types %q and %q", ta.String(), tb.String()),
			nodes:  nodes,
		}
	}

	if a.node.SelectionSet == nil || b.node.SelectionSet == nil {
		return nil
	}
	subA := collectFieldGroups(w, ta.NamedType(), a.node.SelectionSet)
	subB := collectFieldGroups(w, tb.NamedType(), b.node.SelectionSet)
	var reasons []string
	for _, key := range subA.keys {
		for _, x := range subA.byKey[key] {
			for _, y := range subB.byKey[key] {
				if c := findConflict(w, x, y, exclusive, inProgress); c != nil {
					reasons = append(reasons, fmt.Sprintf("subfields %q conflict because %s", key, c.reason))
					nodes = append(nodes, c.nodes...)
				}
			}
		}
	}
	if len(reasons) == 0 {
		return nil
	}
	return &conflict{reason: strings.Join(reasons, " and "), nodes: nodes}
}

func sameArguments(a, b []*language.Argument) bool {
	if len(a) != len(b) {
		return false
	}
	for _, x := range a {
		found := false
		for _, y := range b {
			if x.Name.Value == y.Name.Value {
				found = language.Print(x.Value) == language.Print(y.Value)
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

// typesConflict reports whether two field types cannot share a response key.
func typesConflict(a, b *schema.TypeRef) bool {
	if a.Kind == schema.TypeRefKindList {
		if b.Kind != schema.TypeRefKindList {
			return true
		}
		return typesConflict(a.OfType, b.OfType)
	}
	if b.Kind == schema.TypeRefKindList {
		return true
	}
	if a.Kind == schema.TypeRefKindNonNull {
		if b.Kind != schema.TypeRefKindNonNull {
			return true
		}
		return typesConflict(a.OfType, b.OfType)
	}
	if b.Kind == schema.TypeRefKindNonNull {
		return true
	}
	if a.Type.IsLeaf() || b.Type.IsLeaf() {
		return a.Type != b.Type
	}
	return false
}

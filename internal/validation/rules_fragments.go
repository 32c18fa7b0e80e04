package validation

import (
	language "github.com/hanpama/gqlcore/internal/language"
)

// UniqueFragmentNames reports fragments defined more than once.
var UniqueFragmentNames Rule = uniqueFragmentNames{}

type uniqueFragmentNames struct{ enterOnly }

func (uniqueFragmentNames) Name() string { return "UniqueFragmentNames" }

func (uniqueFragmentNames) Enter(w *Walk, n language.Node) {
	frag, ok := n.(*language.FragmentDefinition)
	if !ok {
		return
	}
	first := *ruleState(w, func() *map[string]*language.Name {
		m := make(map[string]*language.Name)
		return &m
	})
	if prev, seen := first[frag.Name.Value]; seen {
		w.Report(msgDuplicateFragmentName(frag.Name.Value), prev, frag.Name)
		return
	}
	first[frag.Name.Value] = frag.Name
}

// KnownFragmentNames requires spread fragments to be defined.
var KnownFragmentNames Rule = knownFragmentNames{}

type knownFragmentNames struct{ enterOnly }

func (knownFragmentNames) Name() string { return "KnownFragmentNames" }

func (knownFragmentNames) Enter(w *Walk, n language.Node) {
	if spread, ok := n.(*language.FragmentSpread); ok && w.Document.Fragment(spread.Name.Value) == nil {
		w.Report(msgUnknownFragment(spread.Name.Value), spread.Name)
	}
}

// NoUnusedFragments requires every fragment to be reachable from an operation.
var NoUnusedFragments Rule = noUnusedFragments{}

type noUnusedFragments struct{ leaveOnly }

func (noUnusedFragments) Name() string { return "NoUnusedFragments" }

func (noUnusedFragments) Leave(w *Walk, n language.Node) {
	if _, ok := n.(*language.ExecutableDocument); !ok {
		return
	}
	used := make(map[string]bool)
	for _, op := range w.Document.Operations() {
		for _, frag := range referencedFragments(w.Document, op.SelectionSet) {
			used[frag.Name.Value] = true
		}
	}
	for _, frag := range w.Document.Fragments() {
		if !used[frag.Name.Value] {
			w.Report(msgUnusedFragment(frag.Name.Value), frag)
		}
	}
}

// NoFragmentCycles rejects fragments that spread themselves, directly or
// through other fragments.
var NoFragmentCycles Rule = noFragmentCycles{}

type noFragmentCycles struct{ enterOnly }

type cycleSearch struct {
	visited   map[string]bool
	path      []*language.FragmentSpread
	pathIndex map[string]int
}

func (noFragmentCycles) Name() string { return "NoFragmentCycles" }

func (noFragmentCycles) Enter(w *Walk, n language.Node) {
	frag, ok := n.(*language.FragmentDefinition)
	if !ok {
		return
	}
	st := ruleState(w, func() *cycleSearch {
		return &cycleSearch{visited: make(map[string]bool), pathIndex: make(map[string]int)}
	})
	st.detect(w, frag)
}

func (st *cycleSearch) detect(w *Walk, frag *language.FragmentDefinition) {
	name := frag.Name.Value
	if st.visited[name] {
		return
	}
	st.visited[name] = true

	spreads := fragmentSpreads(frag.SelectionSet)
	if len(spreads) == 0 {
		return
	}
	st.pathIndex[name] = len(st.path)
	for _, spread := range spreads {
		target := spread.Name.Value
		cycleIndex, inPath := st.pathIndex[target]
		st.path = append(st.path, spread)
		if !inPath {
			if next := w.Document.Fragment(target); next != nil {
				st.detect(w, next)
			}
		} else {
			cycle := st.path[cycleIndex:]
			via := make([]string, 0, len(cycle)-1)
			nodes := make([]language.Node, 0, len(cycle))
			for i, s := range cycle {
				if i < len(cycle)-1 {
					via = append(via, s.Name.Value)
				}
				nodes = append(nodes, s)
			}
			w.Report(msgFragmentCycle(target, via), nodes...)
		}
		st.path = st.path[:len(st.path)-1]
	}
	delete(st.pathIndex, name)
}

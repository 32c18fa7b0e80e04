package validation

import (
	"strings"

	language "github.com/hanpama/gqlcore/internal/language"
)

// UniqueOperationNames reports each repeated occurrence of an operation name
// once the whole document has been seen.
var UniqueOperationNames Rule = uniqueOperationNames{}

type uniqueOperationNames struct{}

type operationNames struct {
	first   map[string]*language.Name
	repeats []*language.Name
}

func (uniqueOperationNames) Name() string { return "UniqueOperationNames" }

func (uniqueOperationNames) state(w *Walk) *operationNames {
	return ruleState(w, func() *operationNames {
		return &operationNames{first: make(map[string]*language.Name)}
	})
}

func (r uniqueOperationNames) Enter(w *Walk, n language.Node) {
	op, ok := n.(*language.OperationDefinition)
	if !ok || op.Name == nil {
		return
	}
	st := r.state(w)
	if _, seen := st.first[op.Name.Value]; seen {
		st.repeats = append(st.repeats, op.Name)
		return
	}
	st.first[op.Name.Value] = op.Name
}

func (r uniqueOperationNames) Leave(w *Walk, n language.Node) {
	if _, ok := n.(*language.ExecutableDocument); !ok {
		return
	}
	st := r.state(w)
	for _, name := range st.repeats {
		w.Report(msgDuplicateOperationName(name.Value), st.first[name.Value], name)
	}
}

// LoneAnonymousOperation rejects an anonymous operation next to others.
var LoneAnonymousOperation Rule = loneAnonymousOperation{}

type loneAnonymousOperation struct{ enterOnly }

func (loneAnonymousOperation) Name() string { return "LoneAnonymousOperation" }

func (loneAnonymousOperation) Enter(w *Walk, n language.Node) {
	op, ok := n.(*language.OperationDefinition)
	if !ok || op.Name != nil {
		return
	}
	if len(w.Document.Operations()) > 1 {
		w.Report(msgAnonymousOperationNotAlone(), op)
	}
}

// SingleFieldSubscriptions requires a subscription to select exactly one
// root field, which must not be an introspection field.
var SingleFieldSubscriptions Rule = singleFieldSubscriptions{}

type singleFieldSubscriptions struct{ enterOnly }

func (singleFieldSubscriptions) Name() string { return "SingleFieldSubscriptions" }

func (singleFieldSubscriptions) Enter(w *Walk, n language.Node) {
	op, ok := n.(*language.OperationDefinition)
	if !ok || op.Operation != language.Subscription {
		return
	}
	fields := rootFields(w.Document, op.SelectionSet)
	if len(fields) > 1 {
		extra := make([]language.Node, 0, len(fields)-1)
		for _, f := range fields[1:] {
			extra = append(extra, f)
		}
		w.Report(msgSubscriptionSingleField(op), extra...)
	}
	for _, f := range fields {
		if strings.HasPrefix(f.Name.Value, "__") {
			w.Report(msgSubscriptionIntrospection(op), f)
		}
	}
}

// rootFields returns the first field of every response key selected by ss,
// following fragments and honoring literal @skip and @include.
func rootFields(doc *language.ExecutableDocument, ss *language.SelectionSet) []*language.Field {
	var out []*language.Field
	seen := make(map[string]bool)
	visited := make(map[string]bool)
	var collect func(*language.SelectionSet)
	collect = func(ss *language.SelectionSet) {
		if ss == nil {
			return
		}
		for _, sel := range ss.Selections {
			switch sel := sel.(type) {
			case *language.Field:
				if skippedByLiteral(sel.Directives) || seen[sel.ResponseKey()] {
					continue
				}
				seen[sel.ResponseKey()] = true
				out = append(out, sel)
			case *language.InlineFragment:
				if !skippedByLiteral(sel.Directives) {
					collect(sel.SelectionSet)
				}
			case *language.FragmentSpread:
				name := sel.Name.Value
				if skippedByLiteral(sel.Directives) || visited[name] {
					continue
				}
				visited[name] = true
				if frag := doc.Fragment(name); frag != nil {
					collect(frag.SelectionSet)
				}
			}
		}
	}
	collect(ss)
	return out
}

package validation

import (
	"fmt"
	"slices"
	"strings"

	language "github.com/hanpama/gqlcore/internal/language"
	"github.com/hanpama/gqlcore/internal/schema"
)

// Error is one rule violation. Path lists the response keys from the
// enclosing operation or fragment down to the offending node.
type Error struct {
	Rule      string                    `json:"rule"`
	Message   string                    `json:"message"`
	Locations []language.SourceLocation `json:"locations,omitempty"`
	Path      []string                  `json:"path,omitempty"`
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.Message)
	for _, loc := range e.Locations {
		fmt.Fprintf(&b, " (%d:%d)", loc.Line, loc.Column)
	}
	return b.String()
}

// Rule inspects nodes while the driver walks a document. Enter is called on
// descent and Leave on ascent. Rules keep no state of their own; whatever
// they accumulate during a run lives in the Walk.
type Rule interface {
	Name() string
	Enter(w *Walk, n language.Node)
	Leave(w *Walk, n language.Node)
}

// Walk is the state of one validation run shared by every rule.
type Walk struct {
	Schema   *schema.Schema
	Document *language.ExecutableDocument

	typeInfo

	rule   Rule
	errs   []*Error
	states map[string]any
	path   []string
}

// Validate checks doc against s with the given rules, or with SpecifiedRules
// when none are given. An empty result authorizes execution.
func Validate(s *schema.Schema, doc *language.ExecutableDocument, rules ...Rule) []*Error {
	if len(rules) == 0 {
		rules = SpecifiedRules
	}
	w := &Walk{Schema: s, Document: doc, states: make(map[string]any)}
	d := &driver{w: w, rules: rules}
	d.document(doc)
	return w.errs
}

// Report records a violation of the rule currently being invoked.
func (w *Walk) Report(message string, nodes ...language.Node) {
	e := &Error{Rule: w.rule.Name(), Message: message}
	for _, n := range nodes {
		e.Locations = append(e.Locations, n.GetLoc().SourceLocation())
	}
	if len(w.path) > 0 {
		e.Path = slices.Clone(w.path)
	}
	w.errs = append(w.errs, e)
}

// ruleState returns the run-scoped state of the current rule, creating it
// with init on first use.
func ruleState[T any](w *Walk, init func() *T) *T {
	key := w.rule.Name()
	if st, ok := w.states[key].(*T); ok {
		return st
	}
	st := init()
	w.states[key] = st
	return st
}

type driver struct {
	w     *Walk
	rules []Rule
}

func (d *driver) enter(n language.Node) {
	d.w.typeInfo.enter(d.w.Schema, n)
	for _, r := range d.rules {
		d.w.rule = r
		r.Enter(d.w, n)
	}
}

func (d *driver) leave(n language.Node) {
	for _, r := range d.rules {
		d.w.rule = r
		r.Leave(d.w, n)
	}
	d.w.typeInfo.leave(n)
}

func (d *driver) document(doc *language.ExecutableDocument) {
	d.enter(doc)
	for _, def := range doc.Definitions {
		d.w.path = d.w.path[:0]
		switch def := def.(type) {
		case *language.OperationDefinition:
			d.operation(def)
		case *language.FragmentDefinition:
			d.fragment(def)
		}
	}
	d.w.path = d.w.path[:0]
	d.leave(doc)
}

func (d *driver) operation(op *language.OperationDefinition) {
	d.enter(op)
	for _, v := range op.VariableDefinitions {
		d.variableDefinition(v)
	}
	d.directives(op.Directives, operationLocation(op.Operation))
	d.selectionSet(op.SelectionSet)
	d.leave(op)
}

func (d *driver) fragment(f *language.FragmentDefinition) {
	d.enter(f)
	d.typeRef(f.TypeCondition)
	d.directives(f.Directives, "FRAGMENT_DEFINITION")
	d.selectionSet(f.SelectionSet)
	d.leave(f)
}

func (d *driver) variableDefinition(v *language.VariableDefinition) {
	d.enter(v)
	d.typeRef(v.Type)
	if v.DefaultValue != nil {
		d.value(v.DefaultValue)
	}
	d.directives(v.Directives, "VARIABLE_DEFINITION")
	d.leave(v)
}

func (d *driver) typeRef(t language.Type) {
	d.enter(t)
	switch t := t.(type) {
	case *language.ListType:
		d.typeRef(t.Type)
	case *language.NonNullType:
		d.typeRef(t.Type)
	}
	d.leave(t)
}

func (d *driver) selectionSet(ss *language.SelectionSet) {
	if ss == nil {
		return
	}
	d.enter(ss)
	for _, sel := range ss.Selections {
		switch sel := sel.(type) {
		case *language.Field:
			d.field(sel)
		case *language.FragmentSpread:
			d.enter(sel)
			d.directives(sel.Directives, "FRAGMENT_SPREAD")
			d.leave(sel)
		case *language.InlineFragment:
			d.enter(sel)
			if sel.TypeCondition != nil {
				d.typeRef(sel.TypeCondition)
			}
			d.directives(sel.Directives, "INLINE_FRAGMENT")
			d.selectionSet(sel.SelectionSet)
			d.leave(sel)
		}
	}
	d.leave(ss)
}

func (d *driver) field(f *language.Field) {
	d.w.path = append(d.w.path, f.ResponseKey())
	d.enter(f)
	for _, arg := range f.Arguments {
		d.argument(arg)
	}
	d.directives(f.Directives, "FIELD")
	d.selectionSet(f.SelectionSet)
	d.leave(f)
	d.w.path = d.w.path[:len(d.w.path)-1]
}

func (d *driver) directives(dirs []*language.Directive, location string) {
	for _, dir := range dirs {
		d.w.location = location
		d.enter(dir)
		for _, arg := range dir.Arguments {
			d.argument(arg)
		}
		d.leave(dir)
	}
}

func (d *driver) argument(arg *language.Argument) {
	d.enter(arg)
	d.value(arg.Value)
	d.leave(arg)
}

func (d *driver) value(v language.Value) {
	d.enter(v)
	switch v := v.(type) {
	case *language.ListValue:
		item := listItemType(d.w.InputType())
		for _, x := range v.Values {
			d.w.inputTypes = append(d.w.inputTypes, item)
			d.value(x)
			d.w.inputTypes = d.w.inputTypes[:len(d.w.inputTypes)-1]
		}
	case *language.ObjectValue:
		for _, f := range v.Fields {
			d.enter(f)
			d.value(f.Value)
			d.leave(f)
		}
	}
	d.leave(v)
}

func operationLocation(op language.OperationType) string {
	switch op {
	case language.Mutation:
		return "MUTATION"
	case language.Subscription:
		return "SUBSCRIPTION"
	}
	return "QUERY"
}

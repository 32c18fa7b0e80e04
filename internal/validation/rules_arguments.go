package validation

import (
	language "github.com/hanpama/gqlcore/internal/language"
)

// KnownDirectives requires directives to be defined and used at one of
// their declared locations.
var KnownDirectives Rule = knownDirectives{}

type knownDirectives struct{ enterOnly }

func (knownDirectives) Name() string { return "KnownDirectives" }

func (knownDirectives) Enter(w *Walk, n language.Node) {
	d, ok := n.(*language.Directive)
	if !ok {
		return
	}
	def := w.Directive()
	if def == nil {
		w.Report(msgUnknownDirective(d.Name.Value), d)
		return
	}
	if loc := w.DirectiveLocation(); !def.HasLocation(loc) {
		w.Report(msgMisplacedDirective(d.Name.Value, loc), d)
	}
}

// UniqueDirectivesPerLocation rejects a non-repeatable directive applied
// twice to the same node.
var UniqueDirectivesPerLocation Rule = uniqueDirectivesPerLocation{}

type uniqueDirectivesPerLocation struct{ enterOnly }

func (uniqueDirectivesPerLocation) Name() string { return "UniqueDirectivesPerLocation" }

func (uniqueDirectivesPerLocation) Enter(w *Walk, n language.Node) {
	dirs := directivesOf(n)
	if len(dirs) < 2 {
		return
	}
	seen := make(map[string]*language.Directive)
	for _, d := range dirs {
		def := w.Schema.Directive(d.Name.Value)
		if def == nil || def.IsRepeatable {
			continue
		}
		if prev, ok := seen[d.Name.Value]; ok {
			w.Report(msgDuplicateDirective(d.Name.Value), prev, d)
			continue
		}
		seen[d.Name.Value] = d
	}
}

// KnownArgumentNames requires arguments to be defined by their field or
// directive.
var KnownArgumentNames Rule = knownArgumentNames{}

type knownArgumentNames struct{ enterOnly }

func (knownArgumentNames) Name() string { return "KnownArgumentNames" }

func (knownArgumentNames) Enter(w *Walk, n language.Node) {
	arg, ok := n.(*language.Argument)
	if !ok || w.Argument() != nil {
		return
	}
	if w.directiveNode != nil {
		if w.Directive() != nil {
			w.Report(msgUnknownDirectiveArgument(arg.Name.Value, w.directiveNode.Name.Value), arg)
		}
		return
	}
	if fd := w.FieldDef(); fd != nil {
		w.Report(msgUnknownFieldArgument(arg.Name.Value, w.ParentType().Name, fd.Name), arg)
	}
}

// UniqueArgumentNames rejects an argument given twice to one field or directive.
var UniqueArgumentNames Rule = uniqueArgumentNames{}

type uniqueArgumentNames struct{ enterOnly }

func (uniqueArgumentNames) Name() string { return "UniqueArgumentNames" }

func (uniqueArgumentNames) Enter(w *Walk, n language.Node) {
	var args []*language.Argument
	switch n := n.(type) {
	case *language.Field:
		args = n.Arguments
	case *language.Directive:
		args = n.Arguments
	default:
		return
	}
	seen := make(map[string]*language.Argument, len(args))
	for _, a := range args {
		if prev, ok := seen[a.Name.Value]; ok {
			w.Report(msgDuplicateArgument(a.Name.Value), prev.Name, a.Name)
			continue
		}
		seen[a.Name.Value] = a
	}
}

// ProvidedRequiredArguments requires every non-null argument without a
// default to be given.
var ProvidedRequiredArguments Rule = providedRequiredArguments{}

type providedRequiredArguments struct{ leaveOnly }

func (providedRequiredArguments) Name() string { return "ProvidedRequiredArguments" }

func (providedRequiredArguments) Leave(w *Walk, n language.Node) {
	switch n := n.(type) {
	case *language.Field:
		fd := w.FieldDef()
		if fd == nil {
			return
		}
		for _, def := range fd.Arguments {
			if def.Type.IsNonNull() && def.DefaultValue == nil && !hasArgument(n.Arguments, def.Name) {
				w.Report(msgMissingFieldArgument(n.Name.Value, def), n)
			}
		}
	case *language.Directive:
		dd := w.Directive()
		if dd == nil {
			return
		}
		for _, def := range dd.Arguments {
			if def.Type.IsNonNull() && def.DefaultValue == nil && !hasArgument(n.Arguments, def.Name) {
				w.Report(msgMissingDirectiveArgument(n.Name.Value, def), n)
			}
		}
	}
}

func hasArgument(args []*language.Argument, name string) bool {
	for _, a := range args {
		if a.Name.Value == name {
			return true
		}
	}
	return false
}

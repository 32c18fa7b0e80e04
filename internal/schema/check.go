package schema

func (st *buildState) checkType(t *Type) {
	if st.builtin[t.Name] {
		return
	}
	switch t.Kind {
	case TypeKindObject, TypeKindInterface:
		if len(t.Fields) == 0 {
			st.addError(errDefinition(t.Name, nil, "Type %q must define one or more fields.", t.Name))
		}
		for _, f := range t.Fields {
			st.checkField(t, f)
		}
		st.checkInterfaces(t)
	case TypeKindUnion:
		if len(t.PossibleTypes) == 0 {
			st.addError(errDefinition(t.Name, nil, "Union type %q must define one or more member types.", t.Name))
		}
		for _, member := range t.PossibleTypes {
			if member.Kind != TypeKindObject {
				st.addError(errDefinition(t.Name, nil, "Union type %q can only include Object types, it cannot include %q.", t.Name, member.Name))
			}
		}
	case TypeKindEnum:
		if len(t.EnumValues) == 0 {
			st.addError(errDefinition(t.Name, nil, "Enum type %q must define one or more values.", t.Name))
		}
		for _, v := range t.EnumValues {
			if v.Name == "true" || v.Name == "false" || v.Name == "null" {
				st.addError(errDefinition(t.Name, nil, "Enum type %q cannot include value: %s.", t.Name, v.Name))
			}
		}
	case TypeKindInputObject:
		if len(t.InputFields) == 0 {
			st.addError(errDefinition(t.Name, nil, "Input Object type %q must define one or more fields.", t.Name))
		}
		for _, f := range t.InputFields {
			if nt := f.Type.NamedType(); nt != nil && !nt.IsInputType() {
				st.addError(errDefinition(t.Name, nil, "The type of \"%s.%s\" must be Input Type but got: %s.", t.Name, f.Name, f.Type))
			}
			if t.OneOf && (f.Type.IsNonNull() || f.DefaultValue != nil) {
				st.addError(errDefinition(t.Name, nil, "OneOf input field \"%s.%s\" must be nullable and have no default value.", t.Name, f.Name))
			}
		}
	}
}

func (st *buildState) checkField(owner *Type, f *Field) {
	if IsIntrospectionType(f.Name) {
		st.addError(errDefinition(owner.Name, nil, "Name \"%s.%s\" must not begin with \"__\", which is reserved by GraphQL introspection.", owner.Name, f.Name))
	}
	if nt := f.Type.NamedType(); nt != nil && !nt.IsOutputType() {
		st.addError(errDefinition(owner.Name, nil, "The type of \"%s.%s\" must be Output Type but got: %s.", owner.Name, f.Name, f.Type))
	}
	for _, arg := range f.Arguments {
		if nt := arg.Type.NamedType(); nt != nil && !nt.IsInputType() {
			st.addError(errDefinition(owner.Name, nil, "The type of \"%s.%s(%s:)\" must be Input Type but got: %s.", owner.Name, f.Name, arg.Name, arg.Type))
		}
	}
}

func (st *buildState) checkInterfaces(t *Type) {
	for _, iface := range t.Interfaces {
		if iface.Kind != TypeKindInterface {
			st.addError(errDefinition(t.Name, nil, "Type %q must only implement Interface types, it cannot implement %q.", t.Name, iface.Name))
			continue
		}
		if iface == t {
			st.addError(errDefinition(t.Name, nil, "Type %q cannot implement itself because it would create a circular reference.", t.Name))
			continue
		}
		for _, transitive := range iface.Interfaces {
			if !implements(t, transitive) {
				st.addError(errDefinition(t.Name, nil, "Type %q must implement %q because it is implemented by %q.", t.Name, transitive.Name, iface.Name))
			}
		}
		for _, want := range iface.Fields {
			got := t.Field(want.Name)
			if got == nil {
				st.addError(errDefinition(t.Name, nil, "Interface field \"%s.%s\" expected but %q does not provide it.", iface.Name, want.Name, t.Name))
				continue
			}
			if !st.isSubTypeRef(got.Type, want.Type) {
				st.addError(errDefinition(t.Name, nil, "Interface field \"%s.%s\" expects type %s but \"%s.%s\" is type %s.", iface.Name, want.Name, want.Type, t.Name, got.Name, got.Type))
			}
			for _, wantArg := range want.Arguments {
				gotArg := got.Argument(wantArg.Name)
				if gotArg == nil {
					st.addError(errDefinition(t.Name, nil, "Interface field argument \"%s.%s(%s:)\" expected but \"%s.%s\" does not provide it.", iface.Name, want.Name, wantArg.Name, t.Name, got.Name))
					continue
				}
				if !gotArg.Type.Equal(wantArg.Type) {
					st.addError(errDefinition(t.Name, nil, "Interface field argument \"%s.%s(%s:)\" expects type %s but \"%s.%s(%s:)\" is type %s.", iface.Name, want.Name, wantArg.Name, wantArg.Type, t.Name, got.Name, gotArg.Name, gotArg.Type))
				}
			}
			for _, gotArg := range got.Arguments {
				if want.Argument(gotArg.Name) == nil && gotArg.Type.IsNonNull() && gotArg.DefaultValue == nil {
					st.addError(errDefinition(t.Name, nil, "Argument \"%s.%s(%s:)\" must not be required type %s if not provided by the Interface field \"%s.%s\".", t.Name, got.Name, gotArg.Name, gotArg.Type, iface.Name, want.Name))
				}
			}
		}
	}
}

func (st *buildState) checkDirective(d *Directive) {
	if st.builtin["@"+d.Name] {
		return
	}
	for _, arg := range d.Arguments {
		if nt := arg.Type.NamedType(); nt != nil && !nt.IsInputType() {
			st.addError(errDefinition("@"+d.Name, nil, "The type of \"@%s(%s:)\" must be Input Type but got: %s.", d.Name, arg.Name, arg.Type))
		}
	}
}

// isSubTypeRef reports whether a field of type sub may stand in for a field
// of type super.
func (st *buildState) isSubTypeRef(sub, super *TypeRef) bool {
	if sub == nil || super == nil {
		return false
	}
	if super.IsNonNull() {
		return sub.IsNonNull() && st.isSubTypeRef(sub.OfType, super.OfType)
	}
	if sub.IsNonNull() {
		return st.isSubTypeRef(sub.OfType, super)
	}
	if super.Kind == TypeRefKindList {
		return sub.Kind == TypeRefKindList && st.isSubTypeRef(sub.OfType, super.OfType)
	}
	if sub.Kind == TypeRefKindList {
		return false
	}
	if sub.Type == nil || super.Type == nil {
		return sub.Named == super.Named
	}
	return sub.Type == super.Type || (super.Type.IsAbstract() && st.schema.IsSubType(super.Type, sub.Type))
}

func implements(t, iface *Type) bool {
	for _, i := range t.Interfaces {
		if i == iface {
			return true
		}
	}
	return t == iface
}

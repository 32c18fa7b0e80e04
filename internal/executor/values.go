package executor

import (
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strings"

	language "github.com/hanpama/gqlcore/internal/language"
	schema "github.com/hanpama/gqlcore/internal/schema"
)

// CoercionError reports an input value that does not fit its type. Path
// locates the offending part inside the value.
type CoercionError struct {
	Path    Path
	Value   any
	Message string
}

func (e *CoercionError) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return fmt.Sprintf("%s (at %q)", e.Message, e.Path.String())
}

// ErrInvalidVariables wraps every variable coercion failure.
var ErrInvalidVariables = errors.New("invalid variables")

// coerceVariableValues coerces the request variables against the variable
// definitions of operation. Every failing variable yields one error.
func coerceVariableValues(s *schema.Schema, operation *language.OperationDefinition, inputs map[string]any) (map[string]any, []*Error) {
	coerced := make(map[string]any)
	var errs []*Error
	fail := func(node *language.VariableDefinition, err error, format string, args ...any) {
		errs = append(errs, &Error{
			Message:   fmt.Sprintf(format, args...),
			Locations: []language.SourceLocation{node.Loc.SourceLocation()},
			Err:       errors.Join(ErrInvalidVariables, err),
		})
	}
	for _, varDef := range operation.VariableDefinitions {
		name := varDef.Variable.Name.Value
		typeText := language.Print(varDef.Type)
		t := s.TypeFromAST(varDef.Type)
		if t == nil || !t.NamedType().IsInputType() {
			fail(varDef, nil, "Variable \"$%s\" expected value of type %q which cannot be used as an input type.", name, typeText)
			continue
		}
		value, has := inputs[name]
		if !has && varDef.DefaultValue != nil {
			v, err := valueFromAST(varDef.DefaultValue, t, nil)
			if err != nil {
				fail(varDef, err, "Variable \"$%s\" has invalid default value: %v", name, err)
				continue
			}
			coerced[name] = v
			continue
		}
		if (!has || value == nil) && t.IsNonNull() {
			if !has {
				fail(varDef, nil, "Variable \"$%s\" of required type %q was not provided.", name, typeText)
			} else {
				fail(varDef, nil, "Variable \"$%s\" of non-null type %q must not be null.", name, typeText)
			}
			continue
		}
		if !has {
			continue
		}
		v, err := coerceInputValue(value, t, nil)
		if err != nil {
			var ce *CoercionError
			if errors.As(err, &ce) && len(ce.Path) > 0 {
				fail(varDef, err, "Variable \"$%s\" got invalid value %s at %q; %s", name, inspect(ce.Value), append(Path{name}, ce.Path...).String(), ce.Message)
			} else {
				fail(varDef, err, "Variable \"$%s\" got invalid value %s; %s", name, inspect(value), messageOf(err))
			}
			continue
		}
		coerced[name] = v
	}
	return coerced, errs
}

func messageOf(err error) string {
	var ce *CoercionError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}

// coerceInputValue coerces an external input value, such as a decoded JSON
// variable, to t.
func coerceInputValue(value any, t *schema.TypeRef, path Path) (any, error) {
	if t.IsNonNull() {
		if isNullish(value) {
			return nil, &CoercionError{Path: path, Value: value, Message: fmt.Sprintf("Expected non-nullable type %q not to be null.", t.String())}
		}
		return coerceInputValue(value, t.OfType, path)
	}
	if isNullish(value) {
		return nil, nil
	}
	if t.Kind == schema.TypeRefKindList {
		items, ok := listItems(value)
		if !ok {
			item, err := coerceInputValue(value, t.OfType, path)
			if err != nil {
				return nil, err
			}
			return []any{item}, nil
		}
		out := make([]any, len(items))
		for i, item := range items {
			v, err := coerceInputValue(item, t.OfType, appendPath(path, i))
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	}

	named := t.Type
	switch named.Kind {
	case schema.TypeKindInputObject:
		obj, ok := value.(map[string]any)
		if !ok {
			return nil, &CoercionError{Path: path, Value: value, Message: fmt.Sprintf("Expected type %q to be an object.", named.Name)}
		}
		out := make(map[string]any, len(named.InputFields))
		for _, field := range named.InputFields {
			fv, has := obj[field.Name]
			if !has {
				if field.DefaultValue != nil {
					v, err := valueFromAST(field.DefaultValue, field.Type, nil)
					if err != nil {
						return nil, err
					}
					out[field.Name] = v
				} else if field.Type.IsNonNull() {
					return nil, &CoercionError{Path: path, Value: value, Message: fmt.Sprintf("Field %q of required type %q was not provided.", field.Name, field.Type.String())}
				}
				continue
			}
			v, err := coerceInputValue(fv, field.Type, appendPath(path, field.Name))
			if err != nil {
				return nil, err
			}
			out[field.Name] = v
		}
		for key := range obj {
			if named.InputField(key) == nil {
				return nil, &CoercionError{Path: path, Value: value, Message: fmt.Sprintf("Field %q is not defined by type %q.", key, named.Name)}
			}
		}
		if named.OneOf {
			if err := checkOneOf(named, obj, path); err != nil {
				return nil, err
			}
		}
		return out, nil

	case schema.TypeKindEnum:
		name, ok := value.(string)
		if !ok {
			return nil, &CoercionError{Path: path, Value: value, Message: fmt.Sprintf("Enum %q cannot represent non-string value: %s.", named.Name, inspect(value))}
		}
		if named.EnumValue(name) == nil {
			return nil, &CoercionError{Path: path, Value: value, Message: fmt.Sprintf("Value %q does not exist in %q enum.", name, named.Name)}
		}
		return name, nil

	case schema.TypeKindScalar:
		if named.ParseValue == nil {
			return value, nil
		}
		v, err := named.ParseValue(value)
		if err != nil {
			return nil, &CoercionError{Path: path, Value: value, Message: err.Error()}
		}
		return v, nil
	}
	return nil, &CoercionError{Path: path, Value: value, Message: fmt.Sprintf("Type %q is not an input type.", named.Name)}
}

func checkOneOf(named *schema.Type, obj map[string]any, path Path) error {
	if len(obj) != 1 {
		return &CoercionError{Path: path, Value: obj, Message: fmt.Sprintf("Exactly one key must be specified for OneOf type %q.", named.Name)}
	}
	for key, v := range obj {
		if isNullish(v) {
			return &CoercionError{Path: path, Value: obj, Message: fmt.Sprintf("Field %q must be non-null.", key)}
		}
	}
	return nil
}

// valueFromAST coerces a literal to t. Variables are read from variables,
// which hold already coerced values.
func valueFromAST(value language.Value, t *schema.TypeRef, variables map[string]any) (any, error) {
	if v, ok := value.(*language.Variable); ok {
		name := v.Name.Value
		val, has := variables[name]
		if !has {
			return nil, fmt.Errorf("variable \"$%s\" was not provided", name)
		}
		if val == nil && t.IsNonNull() {
			return nil, fmt.Errorf("variable \"$%s\" must not be null", name)
		}
		return val, nil
	}
	if t.IsNonNull() {
		if _, isNull := value.(*language.NullValue); isNull {
			return nil, fmt.Errorf("expected non-null value of type %q", t.String())
		}
		return valueFromAST(value, t.OfType, variables)
	}
	if _, isNull := value.(*language.NullValue); isNull {
		return nil, nil
	}
	if t.Kind == schema.TypeRefKindList {
		list, ok := value.(*language.ListValue)
		if !ok {
			item, err := valueFromAST(value, t.OfType, variables)
			if err != nil {
				return nil, err
			}
			return []any{item}, nil
		}
		out := make([]any, len(list.Values))
		for i, item := range list.Values {
			if v, ok := item.(*language.Variable); ok {
				if _, has := variables[v.Name.Value]; !has {
					if t.OfType.IsNonNull() {
						return nil, fmt.Errorf("variable \"$%s\" was not provided", v.Name.Value)
					}
					continue
				}
			}
			x, err := valueFromAST(item, t.OfType, variables)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	}

	named := t.Type
	switch named.Kind {
	case schema.TypeKindInputObject:
		obj, ok := value.(*language.ObjectValue)
		if !ok {
			return nil, fmt.Errorf("expected an object of type %q, found %s", named.Name, language.Print(value))
		}
		given := make(map[string]language.Value, len(obj.Fields))
		for _, f := range obj.Fields {
			given[f.Name.Value] = f.Value
		}
		out := make(map[string]any, len(named.InputFields))
		for _, field := range named.InputFields {
			fv, has := given[field.Name]
			if v, ok := fv.(*language.Variable); ok {
				if _, provided := variables[v.Name.Value]; !provided {
					has = false
				}
			}
			if !has {
				if field.DefaultValue != nil {
					v, err := valueFromAST(field.DefaultValue, field.Type, nil)
					if err != nil {
						return nil, err
					}
					out[field.Name] = v
				} else if field.Type.IsNonNull() {
					return nil, fmt.Errorf("field %q of required type %q was not provided", field.Name, field.Type.String())
				}
				continue
			}
			v, err := valueFromAST(fv, field.Type, variables)
			if err != nil {
				return nil, err
			}
			out[field.Name] = v
		}
		for name := range given {
			if named.InputField(name) == nil {
				return nil, fmt.Errorf("field %q is not defined by type %q", name, named.Name)
			}
		}
		if named.OneOf {
			if err := checkOneOf(named, out, nil); err != nil {
				return nil, err
			}
		}
		return out, nil

	case schema.TypeKindEnum:
		ev, ok := value.(*language.EnumValue)
		if !ok || named.EnumValue(ev.Value) == nil {
			return nil, fmt.Errorf("expected a value of enum %q, found %s", named.Name, language.Print(value))
		}
		return ev.Value, nil

	case schema.TypeKindScalar:
		if named.ParseLiteral == nil {
			return schema.LiteralValue(value, variables)
		}
		return named.ParseLiteral(value, variables)
	}
	return nil, fmt.Errorf("type %q is not an input type", named.Name)
}

// coerceArgumentValues coerces the arguments given at a field or directive
// against their definitions, applying defaults.
func coerceArgumentValues(defs []*schema.InputValue, nodes []*language.Argument, variables map[string]any) (map[string]any, error) {
	coerced := make(map[string]any, len(defs))
	for _, def := range defs {
		name := def.Name
		var node *language.Argument
		for _, a := range nodes {
			if a.Name.Value == name {
				node = a
				break
			}
		}
		hasValue := node != nil
		isNull := false
		if node != nil {
			if v, ok := node.Value.(*language.Variable); ok {
				val, provided := variables[v.Name.Value]
				hasValue = provided
				isNull = provided && val == nil
			} else {
				_, isNull = node.Value.(*language.NullValue)
			}
		}
		if !hasValue {
			if def.DefaultValue != nil {
				v, err := valueFromAST(def.DefaultValue, def.Type, nil)
				if err != nil {
					return nil, err
				}
				coerced[name] = v
			} else if def.Type.IsNonNull() {
				if node != nil {
					return nil, fmt.Errorf("Argument %q of required type %q was provided the variable %q which was not provided a runtime value.",
						name, def.Type.String(), "$"+node.Value.(*language.Variable).Name.Value)
				}
				return nil, fmt.Errorf("Argument %q of required type %q was not provided.", name, def.Type.String())
			}
			continue
		}
		if isNull && def.Type.IsNonNull() {
			return nil, fmt.Errorf("Argument %q of non-null type %q must not be null.", name, def.Type.String())
		}
		v, err := valueFromAST(node.Value, def.Type, variables)
		if err != nil {
			return nil, fmt.Errorf("Argument %q has invalid value %s.", name, language.Print(node.Value))
		}
		coerced[name] = v
	}
	return coerced, nil
}

// listItems returns the elements of a slice or array value. Strings and
// byte slices are not lists.
func listItems(value any) ([]any, bool) {
	if items, ok := value.([]any); ok {
		return items, true
	}
	rv := reflect.ValueOf(value)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return nil, false
		}
		items := make([]any, rv.Len())
		for i := range items {
			items[i] = rv.Index(i).Interface()
		}
		return items, true
	}
	return nil, false
}

// inspect renders an input value for error messages.
func inspect(v any) string {
	switch v := v.(type) {
	case nil:
		return "null"
	case string:
		return fmt.Sprintf("%q", v)
	case []any:
		parts := make([]string, len(v))
		for i, item := range v {
			parts[i] = inspect(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case map[string]any:
		if b, err := json.Marshal(v); err == nil {
			return string(b)
		}
	}
	return fmt.Sprint(v)
}

// isNullish returns true for nil interfaces and typed nils (map, slice, ptr, interface)
func isNullish(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Interface, reflect.Pointer, reflect.Slice, reflect.Map, reflect.Func, reflect.Chan:
		return rv.IsNil()
	default:
		return false
	}
}

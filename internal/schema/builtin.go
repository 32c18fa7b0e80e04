package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"sync"

	language "github.com/hanpama/gqlcore/internal/language"
)

//go:embed builtin.graphql
var builtinSDL string

var builtinDocument = sync.OnceValue(func() *language.TypeSystemDocument {
	doc, err := language.ParseTypeSystemSource(language.NewSource("builtin.graphql", builtinSDL))
	if err != nil {
		panic(fmt.Sprintf("schema: built-in definitions: %v", err))
	}
	return doc
})

// builtinNames lists every type and directive declared by builtin.graphql.
var builtinNames = sync.OnceValue(func() map[string]bool {
	names := make(map[string]bool)
	for _, def := range builtinDocument().Definitions {
		switch d := def.(type) {
		case language.TypeDefinition:
			names[d.TypeName()] = true
		case *language.DirectiveDefinition:
			names["@"+d.Name.Value] = true
		}
	}
	return names
})

// IsBuiltinType reports whether name is a built-in scalar or introspection type.
func IsBuiltinType(name string) bool { return builtinNames()[name] }

// IsBuiltinDirective reports whether name is a built-in directive.
func IsBuiltinDirective(name string) bool { return builtinNames()["@"+name] }

type scalarCoercion struct {
	serialize    SerializeFunc
	parseValue   ParseValueFunc
	parseLiteral ParseLiteralFunc
}

var builtinScalars = map[string]scalarCoercion{
	"Int":     {serializeInt, parseInt, typedLiteralParser("Int", parseInt, language.KindIntValue)},
	"Float":   {serializeFloat, parseFloat, typedLiteralParser("Float", parseFloat, language.KindIntValue, language.KindFloatValue)},
	"String":  {serializeString, parseString, typedLiteralParser("String", parseString, language.KindStringValue)},
	"Boolean": {serializeBoolean, parseBoolean, typedLiteralParser("Boolean", parseBoolean, language.KindBooleanValue)},
	"ID":      {serializeID, parseID, typedLiteralParser("ID", parseID, language.KindStringValue, language.KindIntValue)},
}

// customScalar passes values through unchanged.
var customScalar = scalarCoercion{
	serialize:    func(v any) (any, error) { return v, nil },
	parseValue:   func(v any) (any, error) { return v, nil },
	parseLiteral: literalParser(func(v any) (any, error) { return v, nil }),
}

// typedLiteralParser accepts only literals of the given kinds, plus variables.
func typedLiteralParser(name string, parse ParseValueFunc, kinds ...language.Kind) ParseLiteralFunc {
	return func(v language.Value, variables map[string]any) (any, error) {
		if vr, ok := v.(*language.Variable); ok {
			return parse(variables[vr.Name.Value])
		}
		for _, k := range kinds {
			if v.GetKind() == k {
				raw, err := LiteralValue(v, variables)
				if err != nil {
					return nil, err
				}
				return parse(raw)
			}
		}
		return nil, fmt.Errorf("%s cannot represent value: %s", name, language.Print(v))
	}
}

// literalParser adapts a ParseValueFunc to literals of any kind.
func literalParser(parse ParseValueFunc) ParseLiteralFunc {
	return func(v language.Value, variables map[string]any) (any, error) {
		raw, err := LiteralValue(v, variables)
		if err != nil {
			return nil, err
		}
		return parse(raw)
	}
}

// LiteralValue converts a literal to a plain Go value without a type:
// Int becomes int64 (float64 when out of range), Float float64, lists []any
// and objects map[string]any. Variables are looked up in variables.
func LiteralValue(v language.Value, variables map[string]any) (any, error) {
	switch v := v.(type) {
	case *language.Variable:
		return variables[v.Name.Value], nil
	case *language.IntValue:
		if n, err := strconv.ParseInt(v.Value, 10, 64); err == nil {
			return n, nil
		}
		f, err := strconv.ParseFloat(v.Value, 64)
		if err != nil {
			return nil, err
		}
		return f, nil
	case *language.FloatValue:
		return strconv.ParseFloat(v.Value, 64)
	case *language.StringValue:
		return v.Value, nil
	case *language.BooleanValue:
		return v.Value, nil
	case *language.NullValue:
		return nil, nil
	case *language.EnumValue:
		return v.Value, nil
	case *language.ListValue:
		out := make([]any, len(v.Values))
		for i, item := range v.Values {
			x, err := LiteralValue(item, variables)
			if err != nil {
				return nil, err
			}
			out[i] = x
		}
		return out, nil
	case *language.ObjectValue:
		out := make(map[string]any, len(v.Fields))
		for _, f := range v.Fields {
			x, err := LiteralValue(f.Value, variables)
			if err != nil {
				return nil, err
			}
			out[f.Name.Value] = x
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported literal %T", v)
}

func serializeInt(v any) (any, error) {
	if b, ok := v.(bool); ok {
		if b {
			return 1, nil
		}
		return 0, nil
	}
	if s, ok := v.(string); ok {
		n, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("Int cannot represent non-integer value: %q", s)
		}
		v = n
	}
	return parseInt(v)
}

func parseInt(v any) (any, error) {
	var n float64
	switch x := v.(type) {
	case int:
		n = float64(x)
	case int8:
		n = float64(x)
	case int16:
		n = float64(x)
	case int32:
		n = float64(x)
	case int64:
		n = float64(x)
	case uint:
		n = float64(x)
	case uint8:
		n = float64(x)
	case uint16:
		n = float64(x)
	case uint32:
		n = float64(x)
	case uint64:
		n = float64(x)
	case float32:
		n = float64(x)
	case float64:
		n = x
	case json.Number:
		f, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("Int cannot represent non-integer value: %s", x)
		}
		n = f
	default:
		return nil, fmt.Errorf("Int cannot represent non-integer value: %s", describe(v))
	}
	if n != math.Trunc(n) {
		return nil, fmt.Errorf("Int cannot represent non-integer value: %v", n)
	}
	if n > math.MaxInt32 || n < math.MinInt32 {
		return nil, fmt.Errorf("Int cannot represent non 32-bit signed integer value: %v", n)
	}
	return int(n), nil
}

func serializeFloat(v any) (any, error) {
	if b, ok := v.(bool); ok {
		if b {
			return 1.0, nil
		}
		return 0.0, nil
	}
	if s, ok := v.(string); ok {
		f, err := strconv.ParseFloat(s, 64)
		if err != nil {
			return nil, fmt.Errorf("Float cannot represent non numeric value: %q", s)
		}
		return f, nil
	}
	return parseFloat(v)
}

func parseFloat(v any) (any, error) {
	var f float64
	switch x := v.(type) {
	case int:
		f = float64(x)
	case int8:
		f = float64(x)
	case int16:
		f = float64(x)
	case int32:
		f = float64(x)
	case int64:
		f = float64(x)
	case uint:
		f = float64(x)
	case uint8:
		f = float64(x)
	case uint16:
		f = float64(x)
	case uint32:
		f = float64(x)
	case uint64:
		f = float64(x)
	case float32:
		f = float64(x)
	case float64:
		f = x
	case json.Number:
		n, err := x.Float64()
		if err != nil {
			return nil, fmt.Errorf("Float cannot represent non numeric value: %s", x)
		}
		f = n
	default:
		return nil, fmt.Errorf("Float cannot represent non numeric value: %s", describe(v))
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, fmt.Errorf("Float cannot represent non numeric value: %v", f)
	}
	return f, nil
}

func serializeString(v any) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return strconv.FormatBool(x), nil
	case fmt.Stringer:
		return x.String(), nil
	case []byte:
		return string(x), nil
	}
	if n, err := parseFloat(v); err == nil {
		return strconv.FormatFloat(n.(float64), 'f', -1, 64), nil
	}
	return nil, fmt.Errorf("String cannot represent value: %s", describe(v))
}

func parseString(v any) (any, error) {
	if s, ok := v.(string); ok {
		return s, nil
	}
	return nil, fmt.Errorf("String cannot represent a non string value: %s", describe(v))
}

func serializeBoolean(v any) (any, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	if n, err := parseFloat(v); err == nil {
		return n.(float64) != 0, nil
	}
	return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %s", describe(v))
}

func parseBoolean(v any) (any, error) {
	if b, ok := v.(bool); ok {
		return b, nil
	}
	return nil, fmt.Errorf("Boolean cannot represent a non boolean value: %s", describe(v))
}

func serializeID(v any) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case fmt.Stringer:
		return x.String(), nil
	}
	n, err := parseInt(v)
	if err != nil {
		if f, ferr := parseFloat(v); ferr == nil && f.(float64) == math.Trunc(f.(float64)) {
			return strconv.FormatFloat(f.(float64), 'f', -1, 64), nil
		}
		return nil, fmt.Errorf("ID cannot represent value: %s", describe(v))
	}
	return strconv.Itoa(n.(int)), nil
}

func parseID(v any) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case json.Number:
		if _, err := x.Int64(); err == nil {
			return x.String(), nil
		}
	case float64:
		if x == math.Trunc(x) && !math.IsInf(x, 0) {
			return strconv.FormatFloat(x, 'f', -1, 64), nil
		}
	case int, int8, int16, int32, int64, uint, uint8, uint16, uint32, uint64:
		return fmt.Sprint(x), nil
	}
	return nil, fmt.Errorf("ID cannot represent value: %s", describe(v))
}

func describe(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return strconv.Quote(x)
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Sprint(v)
	}
	return string(b)
}

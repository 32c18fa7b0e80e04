package language

import (
	"fmt"
	"strings"
)

// Print renders an AST node as canonical GraphQL text. Parsing the output
// yields a document structurally equal to the one printed.
func Print(node Node) string {
	switch n := node.(type) {
	case nil:
		return ""
	case *Name:
		return n.Value
	case *ExecutableDocument:
		return printDefinitions(n.Definitions)
	case *TypeSystemDocument:
		return printDefinitions(n.Definitions)

	case *OperationDefinition:
		varDefs := wrap("(", join(printEach(n.VariableDefinitions), ", "), ")")
		prefix := join([]string{
			string(n.Operation),
			join([]string{printName(n.Name), varDefs}, ""),
			printDirectives(n.Directives),
		}, " ")
		if prefix == "query" {
			return Print(n.SelectionSet)
		}
		return prefix + " " + Print(n.SelectionSet)
	case *VariableDefinition:
		return Print(n.Variable) + ": " + Print(n.Type) +
			wrap(" = ", printValue(n.DefaultValue), "") +
			wrap(" ", printDirectives(n.Directives), "")
	case *Variable:
		return "$" + n.Name.Value
	case *SelectionSet:
		return block(printEach(n.Selections))
	case *Field:
		prefix := wrap("", printName(n.Alias), ": ") + n.Name.Value
		return join([]string{
			prefix + wrap("(", join(printEach(n.Arguments), ", "), ")"),
			printDirectives(n.Directives),
			printOptional(n.SelectionSet),
		}, " ")
	case *Argument:
		return n.Name.Value + ": " + Print(n.Value)
	case *FragmentSpread:
		return "..." + n.Name.Value + wrap(" ", printDirectives(n.Directives), "")
	case *InlineFragment:
		var cond string
		if n.TypeCondition != nil {
			cond = "on " + Print(n.TypeCondition)
		}
		return join([]string{"...", cond, printDirectives(n.Directives), Print(n.SelectionSet)}, " ")
	case *FragmentDefinition:
		return "fragment " + n.Name.Value + " on " + Print(n.TypeCondition) + " " +
			wrap("", printDirectives(n.Directives), " ") + Print(n.SelectionSet)

	case *IntValue:
		return n.Value
	case *FloatValue:
		return n.Value
	case *StringValue:
		if n.Block {
			return printBlockString(n.Value)
		}
		return printString(n.Value)
	case *BooleanValue:
		if n.Value {
			return "true"
		}
		return "false"
	case *NullValue:
		return "null"
	case *EnumValue:
		return n.Value
	case *ListValue:
		return "[" + join(printEach(n.Values), ", ") + "]"
	case *ObjectValue:
		return "{" + join(printEach(n.Fields), ", ") + "}"
	case *ObjectField:
		return n.Name.Value + ": " + Print(n.Value)
	case *Directive:
		return "@" + n.Name.Value + wrap("(", join(printEach(n.Arguments), ", "), ")")

	case *NamedType:
		return n.Name.Value
	case *ListType:
		return "[" + Print(n.Type) + "]"
	case *NonNullType:
		return Print(n.Type) + "!"

	case *SchemaDefinition:
		return printDescription(n.Description) + join([]string{
			"schema",
			printDirectives(n.Directives),
			block(printEach(n.OperationTypes)),
		}, " ")
	case *OperationTypeDefinition:
		return string(n.Operation) + ": " + Print(n.Type)
	case *ScalarTypeDefinition:
		return printDescription(n.Description) + join([]string{"scalar", n.Name.Value, printDirectives(n.Directives)}, " ")
	case *ObjectTypeDefinition:
		return printDescription(n.Description) + join([]string{
			"type",
			n.Name.Value,
			wrap("implements ", join(printEach(n.Interfaces), " & "), ""),
			printDirectives(n.Directives),
			block(printEach(n.Fields)),
		}, " ")
	case *FieldDefinition:
		return printDescription(n.Description) + n.Name.Value + printArgumentDefinitions(n.Arguments) +
			": " + Print(n.Type) + wrap(" ", printDirectives(n.Directives), "")
	case *InputValueDefinition:
		return printDescription(n.Description) + join([]string{
			n.Name.Value + ": " + Print(n.Type),
			wrap("= ", printValue(n.DefaultValue), ""),
			printDirectives(n.Directives),
		}, " ")
	case *InterfaceTypeDefinition:
		return printDescription(n.Description) + join([]string{
			"interface",
			n.Name.Value,
			wrap("implements ", join(printEach(n.Interfaces), " & "), ""),
			printDirectives(n.Directives),
			block(printEach(n.Fields)),
		}, " ")
	case *UnionTypeDefinition:
		return printDescription(n.Description) + join([]string{
			"union",
			n.Name.Value,
			printDirectives(n.Directives),
			wrap("= ", join(printEach(n.Types), " | "), ""),
		}, " ")
	case *EnumTypeDefinition:
		return printDescription(n.Description) + join([]string{
			"enum",
			n.Name.Value,
			printDirectives(n.Directives),
			block(printEach(n.Values)),
		}, " ")
	case *EnumValueDefinition:
		return printDescription(n.Description) + join([]string{n.Name.Value, printDirectives(n.Directives)}, " ")
	case *InputObjectTypeDefinition:
		return printDescription(n.Description) + join([]string{
			"input",
			n.Name.Value,
			printDirectives(n.Directives),
			block(printEach(n.Fields)),
		}, " ")
	case *DirectiveDefinition:
		locations := make([]string, len(n.Locations))
		for i, l := range n.Locations {
			locations[i] = l.Value
		}
		repeatable := ""
		if n.Repeatable {
			repeatable = " repeatable"
		}
		return printDescription(n.Description) + "directive @" + n.Name.Value +
			printArgumentDefinitions(n.Arguments) + repeatable + " on " + strings.Join(locations, " | ")

	case *SchemaExtension:
		return join([]string{"extend schema", printDirectives(n.Directives), block(printEach(n.OperationTypes))}, " ")
	case *ScalarTypeExtension:
		return "extend " + Print(&n.ScalarTypeDefinition)
	case *ObjectTypeExtension:
		return "extend " + Print(&n.ObjectTypeDefinition)
	case *InterfaceTypeExtension:
		return "extend " + Print(&n.InterfaceTypeDefinition)
	case *UnionTypeExtension:
		return "extend " + Print(&n.UnionTypeDefinition)
	case *EnumTypeExtension:
		return "extend " + Print(&n.EnumTypeDefinition)
	case *InputObjectTypeExtension:
		return "extend " + Print(&n.InputObjectTypeDefinition)
	}
	panic(fmt.Sprintf("language: cannot print %T", node))
}

func printDefinitions(defs []Definition) string {
	return join(printEach(defs), "\n\n")
}

func printEach[T Node](nodes []T) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = Print(n)
	}
	return out
}

func printName(n *Name) string {
	if n == nil {
		return ""
	}
	return n.Value
}

func printOptional(s *SelectionSet) string {
	if s == nil {
		return ""
	}
	return Print(s)
}

func printValue(v Value) string {
	if v == nil {
		return ""
	}
	return Print(v)
}

func printDirectives(ds []*Directive) string {
	return join(printEach(ds), " ")
}

func printDescription(d *StringValue) string {
	if d == nil {
		return ""
	}
	return Print(d) + "\n"
}

func printArgumentDefinitions(args []*InputValueDefinition) string {
	printed := printEach(args)
	for _, a := range printed {
		if strings.Contains(a, "\n") {
			return wrap("(\n", indent(join(printed, "\n")), "\n)")
		}
	}
	return wrap("(", join(printed, ", "), ")")
}

// join concatenates the non-empty parts with sep.
func join(parts []string, sep string) string {
	var b strings.Builder
	first := true
	for _, p := range parts {
		if p == "" {
			continue
		}
		if !first {
			b.WriteString(sep)
		}
		b.WriteString(p)
		first = false
	}
	return b.String()
}

// wrap surrounds s with start and end unless s is empty.
func wrap(start, s, end string) string {
	if s == "" {
		return ""
	}
	return start + s + end
}

func block(lines []string) string {
	return wrap("{\n", indent(join(lines, "\n")), "\n}")
}

func indent(s string) string {
	return wrap("  ", strings.ReplaceAll(s, "\n", "\n  "), "")
}

func printString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			b.WriteString(`\"`)
		case '\\':
			b.WriteString(`\\`)
		case '\b':
			b.WriteString(`\b`)
		case '\f':
			b.WriteString(`\f`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		default:
			if r < 0x20 || (r >= 0x7F && r <= 0x9F) {
				fmt.Fprintf(&b, `\u%04X`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// printBlockString renders value as a block string that lexes back to value.
func printBlockString(value string) string {
	escaped := strings.ReplaceAll(value, `"""`, `\"""`)
	lines := splitLines(escaped)
	singleLine := len(lines) == 1

	forceLeadingNewLine := len(lines) > 1
	for _, line := range lines[1:] {
		if line != "" && !isWhiteSpace(line[0]) {
			forceLeadingNewLine = false
			break
		}
	}

	hasTrailingTripleQuotes := strings.HasSuffix(escaped, `\"""`)
	hasTrailingQuote := strings.HasSuffix(value, `"`) && !hasTrailingTripleQuotes
	hasTrailingSlash := strings.HasSuffix(value, `\`)
	forceTrailingNewLine := hasTrailingQuote || hasTrailingSlash

	multiline := !singleLine || len(value) > 70 || forceTrailingNewLine || forceLeadingNewLine || hasTrailingTripleQuotes
	skipLeadingNewLine := singleLine && value != "" && isWhiteSpace(value[0])

	var b strings.Builder
	b.WriteString(`"""`)
	if (multiline && !skipLeadingNewLine) || forceLeadingNewLine {
		b.WriteByte('\n')
	}
	b.WriteString(escaped)
	if multiline || forceTrailingNewLine {
		b.WriteByte('\n')
	}
	b.WriteString(`"""`)
	return b.String()
}

func isWhiteSpace(c byte) bool { return c == ' ' || c == '\t' }

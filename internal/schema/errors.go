package schema

import (
	"errors"
	"fmt"
	"strings"

	language "github.com/hanpama/gqlcore/internal/language"
)

var (
	ErrUnknownType       = errors.New("unknown type")
	ErrDuplicateType     = errors.New("duplicate type")
	ErrInvalidExtension  = errors.New("invalid extension")
	ErrInvalidDefinition = errors.New("invalid definition")
)

// BuildErrorKind classifies a schema build failure.
type BuildErrorKind string

const (
	UnknownType       BuildErrorKind = "UnknownType"
	DuplicateType     BuildErrorKind = "DuplicateType"
	InvalidExtension  BuildErrorKind = "InvalidExtension"
	InvalidDefinition BuildErrorKind = "InvalidDefinition"
)

// BuildError is one violation found while building a schema.
type BuildError struct {
	Kind     BuildErrorKind
	Name     string // type or directive the violation is about
	Message  string
	Location *language.Location
}

func (e *BuildError) Error() string {
	if e.Location != nil && e.Location.Source != nil {
		return fmt.Sprintf("%s (%s)", e.Message, e.Location)
	}
	return e.Message
}

// Is matches the sentinel of the error's kind.
func (e *BuildError) Is(target error) bool {
	switch e.Kind {
	case UnknownType:
		return target == ErrUnknownType
	case DuplicateType:
		return target == ErrDuplicateType
	case InvalidExtension:
		return target == ErrInvalidExtension
	case InvalidDefinition:
		return target == ErrInvalidDefinition
	}
	return false
}

// BuildErrors is every violation of one Build call, in discovery order.
type BuildErrors []*BuildError

func (e BuildErrors) Error() string {
	if len(e) == 1 {
		return e[0].Error()
	}
	var b strings.Builder
	b.WriteString("schema build failed:")
	for _, v := range e {
		b.WriteString("\n- ")
		b.WriteString(v.Error())
	}
	return b.String()
}

func (e BuildErrors) Unwrap() []error {
	out := make([]error, len(e))
	for i, v := range e {
		out[i] = v
	}
	return out
}

func locationOf(n language.Node) *language.Location {
	if n == nil {
		return nil
	}
	loc := n.GetLoc()
	if loc.Source == nil {
		return nil
	}
	return &loc
}

func errUnknownType(name string, at language.Node) *BuildError {
	return &BuildError{Kind: UnknownType, Name: name, Message: fmt.Sprintf("Unknown type %q.", name), Location: locationOf(at)}
}

func errDuplicateType(name string, at language.Node) *BuildError {
	return &BuildError{Kind: DuplicateType, Name: name, Message: fmt.Sprintf("There can be only one type named %q.", name), Location: locationOf(at)}
}

func errExtensionNotFound(name string, at language.Node) *BuildError {
	return &BuildError{Kind: InvalidExtension, Name: name, Message: fmt.Sprintf("Cannot extend type %q because it is not defined.", name), Location: locationOf(at)}
}

func errExtensionKind(name string, at language.Node) *BuildError {
	return &BuildError{
		Kind:     InvalidExtension,
		Name:     name,
		Message:  fmt.Sprintf("Cannot extend non-%s type %q.", extensionKindName(at), name),
		Location: locationOf(at),
	}
}

func errDefinition(name string, at language.Node, format string, args ...any) *BuildError {
	return &BuildError{Kind: InvalidDefinition, Name: name, Message: fmt.Sprintf(format, args...), Location: locationOf(at)}
}

func extensionKindName(n language.Node) string {
	switch n.(type) {
	case *language.ScalarTypeExtension:
		return "scalar"
	case *language.ObjectTypeExtension:
		return "object"
	case *language.InterfaceTypeExtension:
		return "interface"
	case *language.UnionTypeExtension:
		return "union"
	case *language.EnumTypeExtension:
		return "enum"
	case *language.InputObjectTypeExtension:
		return "input object"
	}
	return "type"
}

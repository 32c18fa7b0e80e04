package language

import "fmt"

// Source is a named body of GraphQL text.
type Source struct {
	Name string
	Body string
}

// NewSource wraps body in a Source. An empty name becomes "GraphQL request".
func NewSource(name, body string) *Source {
	if name == "" {
		name = "GraphQL request"
	}
	return &Source{Name: name, Body: body}
}

// Location is a span of a Source. Line and Column are 1-based and describe
// the start of the span.
type Location struct {
	Start  int
	End    int
	Line   int
	Column int
	Source *Source
}

// Text returns the exact source text covered by the location.
func (l Location) Text() string {
	if l.Source == nil || l.Start < 0 || l.End > len(l.Source.Body) || l.Start > l.End {
		return ""
	}
	return l.Source.Body[l.Start:l.End]
}

func (l Location) String() string {
	name := "<unknown>"
	if l.Source != nil {
		name = l.Source.Name
	}
	return fmt.Sprintf("%s:%d:%d", name, l.Line, l.Column)
}

// SourceLocation is the line and column pair reported in errors.
type SourceLocation struct {
	Line   int `json:"line"`
	Column int `json:"column"`
}

// SourceLocation drops the span and keeps the start position.
func (l Location) SourceLocation() SourceLocation {
	return SourceLocation{Line: l.Line, Column: l.Column}
}

package language

import "fmt"

// SyntaxError is returned by the lexer and parser. Parsing stops at the first
// syntax error and no partial document is returned.
type SyntaxError struct {
	Message  string
	Location Location
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax Error: %s (%s)", e.Message, e.Location)
}

func syntaxErrorAt(src *Source, offset, line, column int, format string, args ...any) *SyntaxError {
	return &SyntaxError{
		Message: fmt.Sprintf(format, args...),
		Location: Location{
			Start:  offset,
			End:    offset,
			Line:   line,
			Column: column,
			Source: src,
		},
	}
}

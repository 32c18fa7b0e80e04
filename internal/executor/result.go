package executor

import (
	"bytes"
	"encoding/json"
	"errors"
	"strconv"
	"strings"

	language "github.com/hanpama/gqlcore/internal/language"
)

// Path is a response path: string keys and int list indexes.
type Path []any

func (p Path) String() string {
	var sb strings.Builder
	for i, elem := range p {
		switch v := elem.(type) {
		case int:
			sb.WriteString("[" + strconv.Itoa(v) + "]")
		case string:
			if i > 0 {
				sb.WriteByte('.')
			}
			sb.WriteString(v)
		}
	}
	return sb.String()
}

func appendPath(path Path, elem any) Path {
	out := make(Path, len(path)+1)
	copy(out, path)
	out[len(path)] = elem
	return out
}

// Error is an error located in the response. Path is empty for request
// errors raised before execution starts.
type Error struct {
	Message    string                    `json:"message"`
	Locations  []language.SourceLocation `json:"locations,omitempty"`
	Path       Path                      `json:"path,omitempty"`
	Extensions map[string]any            `json:"extensions,omitempty"`

	// Err is the underlying error, if any.
	Err error `json:"-"`
}

func (e *Error) Error() string {
	if len(e.Path) == 0 {
		return e.Message
	}
	return e.Message + " (at " + e.Path.String() + ")"
}

func (e *Error) Unwrap() error { return e.Err }

// ExtendedError lets resolver errors contribute response extensions.
type ExtendedError interface {
	error
	Extensions() map[string]any
}

// locatedError turns err into an *Error at path. An *Error that already
// carries a path keeps it, so a bubbled error is reported where it happened.
func locatedError(err error, fields []*language.Field, path Path) *Error {
	var located *Error
	if errors.As(err, &located) && len(located.Path) > 0 {
		return located
	}
	out := &Error{Message: err.Error(), Path: path, Err: err}
	if located != nil {
		out.Message = located.Message
		out.Extensions = located.Extensions
		out.Err = located.Err
	}
	var ext ExtendedError
	if errors.As(err, &ext) {
		out.Extensions = ext.Extensions()
	}
	for _, f := range fields {
		out.Locations = append(out.Locations, f.Loc.SourceLocation())
	}
	return out
}

func requestError(err error) *Error {
	var located *Error
	if errors.As(err, &located) {
		return located
	}
	return &Error{Message: err.Error(), Err: err}
}

// ExecutionResult is one response. A nil Data serializes as null and the
// errors key is left out when there are no errors.
type ExecutionResult struct {
	Data       Map            `json:"data"`
	Errors     []*Error       `json:"errors,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

// Entry is one response key and its completed value.
type Entry struct {
	Key   string
	Value any
}

// Map is a completed object. Keys keep the order of the selection set,
// which the JSON encoding preserves. Values are nil, leaf values, []any or
// Map.
type Map []Entry

// Get returns the value of key.
func (m Map) Get(key string) (any, bool) {
	for _, e := range m {
		if e.Key == key {
			return e.Value, true
		}
	}
	return nil, false
}

// Keys returns the response keys in order.
func (m Map) Keys() []string {
	keys := make([]string, len(m))
	for i, e := range m {
		keys[i] = e.Key
	}
	return keys
}

// Plain converts m into nested map[string]any values, dropping key order.
func (m Map) Plain() map[string]any {
	if m == nil {
		return nil
	}
	out := make(map[string]any, len(m))
	for _, e := range m {
		out[e.Key] = plain(e.Value)
	}
	return out
}

func plain(v any) any {
	switch v := v.(type) {
	case Map:
		return v.Plain()
	case []any:
		out := make([]any, len(v))
		for i, item := range v {
			out[i] = plain(item)
		}
		return out
	}
	return v
}

func (m Map) MarshalJSON() ([]byte, error) {
	if m == nil {
		return []byte("null"), nil
	}
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, e := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := encodeJSON(&buf, e.Key); err != nil {
			return nil, err
		}
		buf.WriteByte(':')
		if err := encodeJSON(&buf, e.Value); err != nil {
			return nil, err
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// encodeJSON appends v to buf without HTML escaping and without the
// encoder's trailing newline.
func encodeJSON(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	buf.Truncate(buf.Len() - 1)
	return nil
}

package language

import "fmt"

// TokenKind identifies the lexical class of a token.
type TokenKind int

const (
	SOF TokenKind = iota
	EOF
	Bang
	Dollar
	Amp
	ParenL
	ParenR
	Spread
	Colon
	Equals
	At
	BracketL
	BracketR
	BraceL
	Pipe
	BraceR
	NameToken
	IntToken
	FloatToken
	StringToken
	BlockStringToken
)

var tokenDescriptions = [...]string{
	SOF:              "<SOF>",
	EOF:              "<EOF>",
	Bang:             "!",
	Dollar:           "$",
	Amp:              "&",
	ParenL:           "(",
	ParenR:           ")",
	Spread:           "...",
	Colon:            ":",
	Equals:           "=",
	At:               "@",
	BracketL:         "[",
	BracketR:         "]",
	BraceL:           "{",
	Pipe:             "|",
	BraceR:           "}",
	NameToken:        "Name",
	IntToken:         "Int",
	FloatToken:       "Float",
	StringToken:      "String",
	BlockStringToken: "BlockString",
}

func (k TokenKind) String() string {
	if int(k) < len(tokenDescriptions) {
		return tokenDescriptions[k]
	}
	return fmt.Sprintf("TokenKind(%d)", int(k))
}

// isPunctuator reports whether tokens of this kind carry no value.
func (k TokenKind) isPunctuator() bool {
	return k >= Bang && k <= BraceR
}

// Token is a single lexical unit. Start and End are byte offsets into the
// source body; Value holds the decoded text for names, numbers and strings.
type Token struct {
	Kind   TokenKind
	Start  int
	End    int
	Line   int
	Column int
	Value  string
}

// String describes the token the way syntax errors quote it.
func (t Token) String() string {
	if t.Kind.isPunctuator() || t.Kind == EOF || t.Kind == SOF {
		return fmt.Sprintf("%q", t.Kind.String())
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Value)
}

package language

import (
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Lexer produces tokens from a Source on demand. It holds exactly one token,
// the current one, which the parser uses as its lookahead.
type Lexer struct {
	source    *Source
	body      string
	pos       int
	line      int
	lineStart int
	token     Token
}

// NewLexer returns a lexer positioned on the SOF token.
func NewLexer(source *Source) *Lexer {
	return &Lexer{
		source: source,
		body:   source.Body,
		line:   1,
		token:  Token{Kind: SOF, Line: 1, Column: 1},
	}
}

// Token returns the current token.
func (l *Lexer) Token() Token { return l.token }

// Advance reads the next token and makes it current. Once EOF is reached,
// Advance keeps returning EOF.
func (l *Lexer) Advance() (Token, error) {
	if l.token.Kind == EOF {
		return l.token, nil
	}
	tok, err := l.readToken()
	if err != nil {
		return Token{}, err
	}
	l.token = tok
	return tok, nil
}

func (l *Lexer) at(i int) byte {
	if i < len(l.body) {
		return l.body[i]
	}
	return 0
}

func (l *Lexer) errorAt(pos int, format string, args ...any) *SyntaxError {
	return syntaxErrorAt(l.source, pos, l.line, pos-l.lineStart+1, format, args...)
}

func (l *Lexer) newline(next int) {
	l.line++
	l.lineStart = next
}

func (l *Lexer) skipIgnored() {
	for l.pos < len(l.body) {
		switch c := l.body[l.pos]; c {
		case ' ', '\t', ',':
			l.pos++
		case '\n':
			l.pos++
			l.newline(l.pos)
		case '\r':
			if l.at(l.pos+1) == '\n' {
				l.pos += 2
			} else {
				l.pos++
			}
			l.newline(l.pos)
		case '#':
			for l.pos < len(l.body) && l.body[l.pos] != '\n' && l.body[l.pos] != '\r' {
				l.pos++
			}
		case 0xEF:
			if strings.HasPrefix(l.body[l.pos:], "\uFEFF") {
				l.pos += len("\uFEFF")
				continue
			}
			return
		default:
			return
		}
	}
}

func (l *Lexer) readToken() (Token, error) {
	l.skipIgnored()
	start := l.pos
	tok := Token{Start: start, End: start, Line: l.line, Column: start - l.lineStart + 1}
	if start >= len(l.body) {
		tok.Kind = EOF
		return tok, nil
	}

	punct := func(kind TokenKind, width int) (Token, error) {
		l.pos += width
		tok.Kind = kind
		tok.End = l.pos
		return tok, nil
	}

	c := l.body[start]
	switch c {
	case '!':
		return punct(Bang, 1)
	case '$':
		return punct(Dollar, 1)
	case '&':
		return punct(Amp, 1)
	case '(':
		return punct(ParenL, 1)
	case ')':
		return punct(ParenR, 1)
	case ':':
		return punct(Colon, 1)
	case '=':
		return punct(Equals, 1)
	case '@':
		return punct(At, 1)
	case '[':
		return punct(BracketL, 1)
	case ']':
		return punct(BracketR, 1)
	case '{':
		return punct(BraceL, 1)
	case '|':
		return punct(Pipe, 1)
	case '}':
		return punct(BraceR, 1)
	case '.':
		if l.at(start+1) == '.' && l.at(start+2) == '.' {
			return punct(Spread, 3)
		}
	case '"':
		if l.at(start+1) == '"' && l.at(start+2) == '"' {
			return l.readBlockString(tok)
		}
		return l.readString(tok)
	}

	if isNameStart(c) {
		end := start + 1
		for end < len(l.body) && isNameContinue(l.body[end]) {
			end++
		}
		l.pos = end
		tok.Kind = NameToken
		tok.End = end
		tok.Value = intern(l.body[start:end])
		return tok, nil
	}
	if c == '-' || isDigit(c) {
		return l.readNumber(tok)
	}
	return Token{}, l.unexpectedCharacter(start)
}

func (l *Lexer) unexpectedCharacter(pos int) *SyntaxError {
	c := l.body[pos]
	if c == '\'' {
		return l.errorAt(pos, `Unexpected single quote character ('), did you mean to use a double quote (")?`)
	}
	r, size := utf8.DecodeRuneInString(l.body[pos:])
	if r == utf8.RuneError && size <= 1 {
		return l.errorAt(pos, "Invalid UTF-8 sequence.")
	}
	if r < 0x20 && r != '\t' && r != '\n' && r != '\r' {
		return l.errorAt(pos, "Invalid character: %U.", r)
	}
	return l.errorAt(pos, "Unexpected character: %q.", r)
}

func (l *Lexer) readNumber(tok Token) (Token, error) {
	pos := tok.Start
	isFloat := false
	if l.at(pos) == '-' {
		pos++
	}
	if l.at(pos) == '0' {
		pos++
		if isDigit(l.at(pos)) {
			return Token{}, l.errorAt(pos, "Invalid number, unexpected digit after 0: %s.", describeByte(l.at(pos)))
		}
	} else {
		var err error
		if pos, err = l.readDigits(pos); err != nil {
			return Token{}, err
		}
	}
	if l.at(pos) == '.' {
		isFloat = true
		var err error
		if pos, err = l.readDigits(pos + 1); err != nil {
			return Token{}, err
		}
	}
	if c := l.at(pos); c == 'e' || c == 'E' {
		isFloat = true
		pos++
		if c := l.at(pos); c == '+' || c == '-' {
			pos++
		}
		var err error
		if pos, err = l.readDigits(pos); err != nil {
			return Token{}, err
		}
	}
	if c := l.at(pos); c == '.' || isNameStart(c) {
		return Token{}, l.errorAt(pos, "Invalid number, expected digit but got: %s.", describeByte(c))
	}

	l.pos = pos
	tok.End = pos
	tok.Value = l.body[tok.Start:pos]
	tok.Kind = IntToken
	if isFloat {
		tok.Kind = FloatToken
	}
	return tok, nil
}

func (l *Lexer) readDigits(pos int) (int, error) {
	if !isDigit(l.at(pos)) {
		return pos, l.errorAt(pos, "Invalid number, expected digit but got: %s.", describeByte(l.at(pos)))
	}
	for isDigit(l.at(pos)) {
		pos++
	}
	return pos, nil
}

func (l *Lexer) readString(tok Token) (Token, error) {
	var sb strings.Builder
	pos := tok.Start + 1
	chunk := pos
	for pos < len(l.body) {
		c := l.body[pos]
		switch {
		case c == '"':
			sb.WriteString(l.body[chunk:pos])
			l.pos = pos + 1
			tok.Kind = StringToken
			tok.End = l.pos
			tok.Value = sb.String()
			return tok, nil
		case c == '\\':
			sb.WriteString(l.body[chunk:pos])
			n, err := l.readEscape(pos, &sb)
			if err != nil {
				return Token{}, err
			}
			pos += n
			chunk = pos
		case c == '\n' || c == '\r':
			return Token{}, l.errorAt(pos, "Unterminated string.")
		case c < 0x20 && c != '\t':
			return Token{}, l.errorAt(pos, "Invalid character within String: %U.", rune(c))
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.body[pos:])
			if r == utf8.RuneError && size == 1 {
				return Token{}, l.errorAt(pos, "Invalid UTF-8 sequence within String.")
			}
			pos += size
		default:
			pos++
		}
	}
	return Token{}, l.errorAt(pos, "Unterminated string.")
}

// readEscape decodes the escape sequence at pos and returns its width.
func (l *Lexer) readEscape(pos int, sb *strings.Builder) (int, error) {
	switch c := l.at(pos + 1); c {
	case '"', '\\', '/':
		sb.WriteByte(c)
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'u':
		return l.readUnicodeEscape(pos, sb)
	default:
		end := min(pos+2, len(l.body))
		return 0, l.errorAt(pos, "Invalid character escape sequence: %q.", l.body[pos:end])
	}
	return 2, nil
}

func (l *Lexer) readUnicodeEscape(pos int, sb *strings.Builder) (int, error) {
	if l.at(pos+2) == '{' {
		end := strings.IndexByte(l.body[pos:], '}')
		if end < 0 {
			return 0, l.errorAt(pos, "Invalid Unicode escape sequence.")
		}
		digits := l.body[pos+3 : pos+end]
		v, err := strconv.ParseUint(digits, 16, 32)
		if err != nil || digits == "" || v > utf8.MaxRune || isSurrogate(rune(v)) {
			return 0, l.errorAt(pos, "Invalid Unicode escape sequence: %q.", l.body[pos:pos+end+1])
		}
		sb.WriteRune(rune(v))
		return end + 1, nil
	}

	lead, ok := l.hex4(pos + 2)
	if !ok {
		end := min(pos+6, len(l.body))
		return 0, l.errorAt(pos, "Invalid Unicode escape sequence: %q.", l.body[pos:end])
	}
	if !isSurrogate(lead) {
		sb.WriteRune(lead)
		return 6, nil
	}
	if lead <= 0xDBFF && l.at(pos+6) == '\\' && l.at(pos+7) == 'u' {
		if trail, ok := l.hex4(pos + 8); ok && trail >= 0xDC00 && trail <= 0xDFFF {
			sb.WriteRune((lead-0xD800)<<10 + (trail - 0xDC00) + 0x10000)
			return 12, nil
		}
	}
	return 0, l.errorAt(pos, "Invalid Unicode escape sequence: %q.", l.body[pos:pos+6])
}

func (l *Lexer) hex4(pos int) (rune, bool) {
	if pos+4 > len(l.body) {
		return 0, false
	}
	v, err := strconv.ParseUint(l.body[pos:pos+4], 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func (l *Lexer) readBlockString(tok Token) (Token, error) {
	var raw strings.Builder
	pos := tok.Start + 3
	chunk := pos
	for pos < len(l.body) {
		c := l.body[pos]
		switch {
		case c == '"' && strings.HasPrefix(l.body[pos:], `"""`):
			raw.WriteString(l.body[chunk:pos])
			l.pos = pos + 3
			tok.Kind = BlockStringToken
			tok.End = l.pos
			tok.Value = BlockStringValue(raw.String())
			return tok, nil
		case c == '\\' && strings.HasPrefix(l.body[pos:], `\"""`):
			raw.WriteString(l.body[chunk:pos])
			raw.WriteString(`"""`)
			pos += 4
			chunk = pos
		case c == '\n':
			pos++
			l.newline(pos)
		case c == '\r':
			if l.at(pos+1) == '\n' {
				pos += 2
			} else {
				pos++
			}
			l.newline(pos)
		case c < 0x20 && c != '\t':
			return Token{}, l.errorAt(pos, "Invalid character within String: %U.", rune(c))
		case c >= utf8.RuneSelf:
			r, size := utf8.DecodeRuneInString(l.body[pos:])
			if r == utf8.RuneError && size == 1 {
				return Token{}, l.errorAt(pos, "Invalid UTF-8 sequence within String.")
			}
			pos += size
		default:
			pos++
		}
	}
	return Token{}, l.errorAt(pos, "Unterminated string.")
}

// BlockStringValue applies the block string indentation rules to the raw
// text between triple quotes: common indentation is removed from all lines
// but the first, and leading and trailing blank lines are dropped.
func BlockStringValue(raw string) string {
	lines := splitLines(raw)

	commonIndent := math.MaxInt
	first, last := -1, -1
	for i, line := range lines {
		indent := leadingWhitespace(line)
		if indent == len(line) {
			continue
		}
		if first == -1 {
			first = i
		}
		last = i
		if i != 0 && indent < commonIndent {
			commonIndent = indent
		}
	}
	if first == -1 {
		return ""
	}
	for i := 1; i < len(lines); i++ {
		if commonIndent > len(lines[i]) {
			lines[i] = ""
		} else {
			lines[i] = lines[i][commonIndent:]
		}
	}
	return strings.Join(lines[first:last+1], "\n")
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '\n':
			lines = append(lines, s[start:i])
			start = i + 1
		case '\r':
			lines = append(lines, s[start:i])
			if i+1 < len(s) && s[i+1] == '\n' {
				i++
			}
			start = i + 1
		}
	}
	return append(lines, s[start:])
}

func leadingWhitespace(s string) int {
	i := 0
	for i < len(s) && (s[i] == ' ' || s[i] == '\t') {
		i++
	}
	return i
}

func isSurrogate(r rune) bool { return r >= 0xD800 && r <= 0xDFFF }

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z')
}

func isNameContinue(c byte) bool { return isNameStart(c) || isDigit(c) }

func describeByte(c byte) string {
	if c == 0 {
		return "<EOF>"
	}
	return strconv.QuoteRune(rune(c))
}

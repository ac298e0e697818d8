package ml_parser

import (
	"fmt"
	"html"
	"regexp"
	"strings"

	"ngc-lite/packages/compiler/util"
)

// TokenType is the type of a template token
type TokenType int

const (
	TokenTypeTagOpenStart TokenType = iota
	TokenTypeTagOpenEnd
	TokenTypeTagOpenEndVoid
	TokenTypeTagClose
	TokenTypeAttrName
	TokenTypeAttrValue
	TokenTypeText
	TokenTypeComment
	TokenTypeEOF
)

func (t TokenType) String() string {
	switch t {
	case TokenTypeTagOpenStart:
		return "TAG_OPEN_START"
	case TokenTypeTagOpenEnd:
		return "TAG_OPEN_END"
	case TokenTypeTagOpenEndVoid:
		return "TAG_OPEN_END_VOID"
	case TokenTypeTagClose:
		return "TAG_CLOSE"
	case TokenTypeAttrName:
		return "ATTR_NAME"
	case TokenTypeAttrValue:
		return "ATTR_VALUE"
	case TokenTypeText:
		return "TEXT"
	case TokenTypeComment:
		return "COMMENT"
	case TokenTypeEOF:
		return "EOF"
	}
	return "UNKNOWN"
}

// Token is a lexical unit of a template
type Token struct {
	Type       TokenType
	Parts      []string
	SourceSpan *util.ParseSourceSpan
}

// NGSP_UNICODE stands in for the &ngsp; pseudo-entity until whitespace
// processing turns it into a plain space.
const NGSP_UNICODE = "\uE500"

// TokenizeOptions represents options for tokenization
type TokenizeOptions struct {
	InterpolationConfig *InterpolationConfig
}

// TokenizeResult represents the result of tokenization
type TokenizeResult struct {
	Tokens []*Token
	Errors []*util.ParseError
}

var icuStartRe = regexp.MustCompile(`^\{\s*[^{},]+,\s*(plural|select|selectordinal)\s*,`)

// Tokenize splits a template into tokens. Control flow blocks and ICU
// expansions are reported as errors.
func Tokenize(source, url string, getTagDefinition func(string) TagDefinition, options *TokenizeOptions) *TokenizeResult {
	config := DefaultInterpolationConfig
	if options != nil && options.InterpolationConfig != nil {
		config = options.InterpolationConfig
	}
	t := &Tokenizer{
		file:             util.NewParseSourceFile(source, url),
		input:            source,
		interpolation:    config,
		getTagDefinition: getTagDefinition,
	}
	t.tokenize()
	return &TokenizeResult{Tokens: t.tokens, Errors: t.errors}
}

// Tokenizer tokenizes template source
type Tokenizer struct {
	file             *util.ParseSourceFile
	input            string
	pos              int
	interpolation    *InterpolationConfig
	getTagDefinition func(string) TagDefinition
	tokens           []*Token
	errors           []*util.ParseError
}

func (t *Tokenizer) tokenize() {
	for t.pos < len(t.input) {
		start := t.pos
		switch {
		case t.startsWith("<!--"):
			t.consumeComment(start)
		case t.startsWith("<!"):
			t.consumeDocType()
		case t.startsWith("</") && isNameStart(t.at(t.pos+2)):
			t.consumeTagClose(start)
		case t.at(t.pos) == '<' && isNameStart(t.at(t.pos+1)):
			t.consumeTagOpen(start)
		default:
			t.consumeText()
		}
	}
	t.emit(TokenTypeEOF, t.pos, t.pos)
}

func (t *Tokenizer) at(i int) byte {
	if i >= len(t.input) {
		return 0
	}
	return t.input[i]
}

func (t *Tokenizer) startsWith(s string) bool {
	return strings.HasPrefix(t.input[t.pos:], s)
}

func (t *Tokenizer) span(start, end int) *util.ParseSourceSpan {
	return util.NewParseSourceSpan(t.file.LocationAt(start), t.file.LocationAt(end))
}

func (t *Tokenizer) emit(typ TokenType, start, end int, parts ...string) *Token {
	tok := &Token{Type: typ, Parts: parts, SourceSpan: t.span(start, end)}
	t.tokens = append(t.tokens, tok)
	return tok
}

func (t *Tokenizer) error(start, end int, msg string) {
	t.errors = append(t.errors, util.NewParseError(t.span(start, end), msg))
}

func (t *Tokenizer) unexpectedEOF() {
	t.error(t.pos, t.pos, `Unexpected character "EOF"`)
}

func (t *Tokenizer) skipWhitespace() {
	for t.pos < len(t.input) && isWhitespace(t.input[t.pos]) {
		t.pos++
	}
}

func (t *Tokenizer) consumeComment(start int) {
	t.pos += len("<!--")
	end := strings.Index(t.input[t.pos:], "-->")
	if end < 0 {
		t.pos = len(t.input)
		t.unexpectedEOF()
		return
	}
	value := t.input[t.pos : t.pos+end]
	t.pos += end + len("-->")
	t.emit(TokenTypeComment, start, t.pos, value)
}

func (t *Tokenizer) consumeDocType() {
	end := strings.IndexByte(t.input[t.pos:], '>')
	if end < 0 {
		t.pos = len(t.input)
		t.unexpectedEOF()
		return
	}
	t.pos += end + 1
}

func (t *Tokenizer) consumeName() string {
	start := t.pos
	for t.pos < len(t.input) && isNameChar(t.input[t.pos]) {
		t.pos++
	}
	return t.input[start:t.pos]
}

func (t *Tokenizer) consumeTagClose(start int) {
	t.pos += len("</")
	name := t.consumeName()
	t.skipWhitespace()
	if t.at(t.pos) != '>' {
		if t.pos >= len(t.input) {
			t.unexpectedEOF()
		} else {
			t.error(t.pos, t.pos+1, fmt.Sprintf("Unexpected character %q", string(t.input[t.pos])))
		}
		t.emit(TokenTypeTagClose, start, t.pos, name)
		return
	}
	t.pos++
	t.emit(TokenTypeTagClose, start, t.pos, name)
}

func (t *Tokenizer) consumeTagOpen(start int) {
	t.pos++
	name := t.consumeName()
	t.emit(TokenTypeTagOpenStart, start, t.pos, name)

	for {
		t.skipWhitespace()
		if t.pos >= len(t.input) {
			t.unexpectedEOF()
			return
		}
		if t.startsWith("/>") {
			t.pos += 2
			t.emit(TokenTypeTagOpenEndVoid, t.pos-2, t.pos)
			return
		}
		if t.at(t.pos) == '>' {
			t.pos++
			t.emit(TokenTypeTagOpenEnd, t.pos-1, t.pos)
			break
		}
		t.consumeAttribute()
	}

	if def := t.getTagDefinition(name); def.ContentType != TagContentTypeParsableData {
		t.consumeRawText(name, def.ContentType == TagContentTypeEscapableRawText)
	}
}

func (t *Tokenizer) consumeAttribute() {
	nameStart := t.pos
	for t.pos < len(t.input) {
		c := t.input[t.pos]
		if isWhitespace(c) || c == '=' || c == '>' || c == '"' || c == '\'' || c == '<' || (c == '/' && t.at(t.pos+1) == '>') {
			break
		}
		t.pos++
	}
	if t.pos == nameStart {
		t.error(t.pos, t.pos+1, fmt.Sprintf("Unexpected character %q", string(t.input[t.pos])))
		t.pos++
		return
	}
	t.emit(TokenTypeAttrName, nameStart, t.pos, t.input[nameStart:t.pos])

	save := t.pos
	t.skipWhitespace()
	if t.at(t.pos) != '=' {
		t.pos = save
		return
	}
	t.pos++
	t.skipWhitespace()

	if quote := t.at(t.pos); quote == '"' || quote == '\'' {
		valueStart := t.pos + 1
		end := strings.IndexByte(t.input[valueStart:], quote)
		if end < 0 {
			t.pos = len(t.input)
			t.unexpectedEOF()
			return
		}
		t.pos = valueStart + end + 1
		t.emit(TokenTypeAttrValue, valueStart, valueStart+end, decodeEntities(t.input[valueStart:valueStart+end]))
		return
	}
	valueStart := t.pos
	for t.pos < len(t.input) && !isWhitespace(t.input[t.pos]) && t.input[t.pos] != '>' {
		t.pos++
	}
	t.emit(TokenTypeAttrValue, valueStart, t.pos, decodeEntities(t.input[valueStart:t.pos]))
}

// consumeRawText reads the content of script, style, textarea and title up to
// the matching end tag.
func (t *Tokenizer) consumeRawText(name string, escapable bool) {
	start := t.pos
	end := strings.Index(strings.ToLower(t.input[t.pos:]), "</"+strings.ToLower(name))
	if end < 0 {
		end = len(t.input) - t.pos
	}
	t.pos += end
	if t.pos == start {
		return
	}
	value := t.input[start:t.pos]
	if escapable {
		value = decodeEntities(value)
	}
	t.emit(TokenTypeText, start, t.pos, value)
}

func (t *Tokenizer) consumeText() {
	start := t.pos
	var sb strings.Builder
	for t.pos < len(t.input) {
		if t.startsWith(t.interpolation.Start) {
			exprStart := t.pos + len(t.interpolation.Start)
			end := strings.Index(t.input[exprStart:], t.interpolation.End)
			if end < 0 {
				sb.WriteString(t.input[t.pos:])
				t.pos = len(t.input)
				break
			}
			next := exprStart + end + len(t.interpolation.End)
			sb.WriteString(t.input[t.pos:next])
			t.pos = next
			continue
		}

		c := t.input[t.pos]
		if c == '<' && (t.startsWith("<!") || isNameStart(t.at(t.pos+1)) || (t.at(t.pos+1) == '/' && isNameStart(t.at(t.pos+2)))) {
			break
		}
		switch {
		case c == '@' && isAsciiLetter(t.at(t.pos+1)):
			blockStart := t.pos
			t.pos++
			name := t.consumeName()
			t.error(blockStart, t.pos, fmt.Sprintf("Control flow block \"@%s\" is not supported", blockName(name)))
			sb.WriteString(t.input[blockStart:t.pos])
			continue
		case c == '{' && icuStartRe.MatchString(t.input[t.pos:]):
			t.error(t.pos, t.pos+1, "ICU expressions are not supported")
		case c == '&':
			if entity, n := t.entity(); n > 0 {
				sb.WriteString(entity)
				t.pos += n
				continue
			}
		}
		sb.WriteByte(c)
		t.pos++
	}
	if t.pos > start {
		t.emit(TokenTypeText, start, t.pos, sb.String())
	}
}

// blockName trims a block name at the first non-letter, e.g. "if(" -> "if".
func blockName(name string) string {
	for i := 0; i < len(name); i++ {
		if !isAsciiLetter(name[i]) {
			return name[:i]
		}
	}
	return name
}

// entity decodes a character reference at the cursor and returns the number
// of bytes it spans, or 0 when there is none.
func (t *Tokenizer) entity() (string, int) {
	end := strings.IndexByte(t.input[t.pos:], ';')
	if end < 2 || end > 32 {
		return "", 0
	}
	ref := t.input[t.pos : t.pos+end+1]
	if ref == "&ngsp;" {
		return NGSP_UNICODE, len(ref)
	}
	decoded := html.UnescapeString(ref)
	if decoded == ref {
		return "", 0
	}
	return decoded, len(ref)
}

func decodeEntities(s string) string {
	if !strings.Contains(s, "&") {
		return s
	}
	return html.UnescapeString(strings.ReplaceAll(s, "&ngsp;", NGSP_UNICODE))
}

func isWhitespace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f' || c == '\v'
}

func isAsciiLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNameStart(c byte) bool {
	return isAsciiLetter(c) || c == '_' || c == ':'
}

func isNameChar(c byte) bool {
	if c == 0 || isWhitespace(c) {
		return false
	}
	switch c {
	case '>', '<', '/', '\'', '"', '=':
		return false
	}
	return true
}

package util

import (
	"fmt"
	"strings"
)

// contextChars bounds the source excerpt quoted around an error.
const contextChars = 40

// ParseSourceFile is a template or host-binding source the errors point into.
type ParseSourceFile struct {
	Content string
	URL     string
}

// NewParseSourceFile creates a new ParseSourceFile
func NewParseSourceFile(content, url string) *ParseSourceFile {
	return &ParseSourceFile{Content: content, URL: url}
}

// LocationAt computes the zero-based line and column of a byte offset.
func (f *ParseSourceFile) LocationAt(offset int) *ParseLocation {
	offset = max(0, min(offset, len(f.Content)))
	before := f.Content[:offset]
	col := offset
	if i := strings.LastIndexByte(before, '\n'); i >= 0 {
		col = offset - i - 1
	}
	return &ParseLocation{File: f, Offset: offset, Line: strings.Count(before, "\n"), Col: col}
}

// ParseLocation is a position in a ParseSourceFile.
type ParseLocation struct {
	File   *ParseSourceFile
	Offset int
	Line   int
	Col    int
}

func (p *ParseLocation) String() string {
	return fmt.Sprintf("%s@%d:%d", p.File.URL, p.Line, p.Col)
}

// excerpt returns the text on the same line around the location, cut at
// contextChars on each side.
func (p *ParseLocation) excerpt() (string, string) {
	content := p.File.Content
	start := max(0, p.Offset-contextChars)
	if i := strings.LastIndexByte(content[start:p.Offset], '\n'); i >= 0 {
		start += i + 1
	}
	end := min(len(content), p.Offset+contextChars)
	if i := strings.IndexByte(content[p.Offset:end], '\n'); i >= 0 {
		end = p.Offset + i
	}
	return content[start:p.Offset], content[p.Offset:end]
}

// ParseSourceSpan is the source range of a node or of an error.
type ParseSourceSpan struct {
	Start *ParseLocation
	End   *ParseLocation
}

// NewParseSourceSpan creates a new ParseSourceSpan
func NewParseSourceSpan(start, end *ParseLocation) *ParseSourceSpan {
	return &ParseSourceSpan{Start: start, End: end}
}

// String returns the source text covered by the span.
func (p *ParseSourceSpan) String() string {
	return p.Start.File.Content[p.Start.Offset:p.End.Offset]
}

// ParseErrorLevel tells warnings from errors.
type ParseErrorLevel int

const (
	ParseErrorLevelWarning ParseErrorLevel = iota
	ParseErrorLevelError
)

func (l ParseErrorLevel) String() string {
	if l == ParseErrorLevelWarning {
		return "WARNING"
	}
	return "ERROR"
}

// ParseError is a problem found while reading a template or a host binding.
// Only ParseErrorLevelError entries make a compilation fail.
type ParseError struct {
	Span  *ParseSourceSpan
	Msg   string
	Level ParseErrorLevel
}

// NewParseError creates a new ParseError
func NewParseError(span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{Span: span, Msg: msg, Level: ParseErrorLevelError}
}

// NewParseWarning creates a ParseError at warning level.
func NewParseWarning(span *ParseSourceSpan, msg string) *ParseError {
	return &ParseError{Span: span, Msg: msg, Level: ParseErrorLevelWarning}
}

func (p *ParseError) Error() string {
	return p.String()
}

// ContextualMessage quotes the source around the error start, with a marker
// at the error position: `msg ("<div [ERROR ->]>")`.
func (p *ParseError) ContextualMessage() string {
	if p.Span == nil || p.Span.Start == nil {
		return p.Msg
	}
	before, after := p.Span.Start.excerpt()
	return fmt.Sprintf(`%s ("%s[%s ->]%s")`, p.Msg, before, p.Level, after)
}

func (p *ParseError) String() string {
	if p.Span == nil || p.Span.Start == nil {
		return p.Msg
	}
	return fmt.Sprintf("%s: %s", p.ContextualMessage(), p.Span.Start)
}

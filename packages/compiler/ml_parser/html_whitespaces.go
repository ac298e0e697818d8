package ml_parser

import (
	"regexp"
	"strings"
)

const PreserveWsAttrName = "ngPreserveWhitespaces"

var skipWsTrimTags = map[string]bool{
	"pre":      true,
	"template": true,
	"textarea": true,
	"script":   true,
	"style":    true,
}

// Equivalent to \s with \u00a0 (non-breaking space) excluded
const wsChars = " \f\n\r\t\v\u1680\u180e\u2000-\u200a\u2028\u2029\u202f\u205f\u3000\ufeff"

var (
	noWsRegexp      = regexp.MustCompile(`[^` + wsChars + `]`)
	wsReplaceRegexp = regexp.MustCompile(`[` + wsChars + `]{2,}`)
)

// ReplaceNgsp replaces &ngsp; pseudo-entity with a space
func ReplaceNgsp(value string) string {
	return strings.ReplaceAll(value, NGSP_UNICODE, " ")
}

// HasPreserveWhitespacesAttr checks if attributes contain preserve whitespaces attribute
func HasPreserveWhitespacesAttr(attrs []*Attribute) bool {
	for _, attr := range attrs {
		if attr.Name == PreserveWsAttrName {
			return true
		}
	}
	return false
}

// WhitespaceVisitor removes blank text nodes and collapses runs of
// whitespace in the remaining ones.
//
// Elements listed in skipWsTrimTags and elements carrying
// ngPreserveWhitespaces keep their content as written.
type WhitespaceVisitor struct{}

// VisitElement visits an element node
func (w *WhitespaceVisitor) VisitElement(element *Element, context interface{}) interface{} {
	attrs := make([]*Attribute, 0, len(element.Attrs))
	for _, attr := range element.Attrs {
		if attr.Name != PreserveWsAttrName {
			attrs = append(attrs, attr)
		}
	}
	children := element.Children
	if !skipWsTrimTags[element.Name] && !HasPreserveWhitespacesAttr(element.Attrs) {
		children = visitNodes(w, element.Children)
	}
	return NewElement(element.Name, attrs, children, element.IsSelfClosing, element.IsVoid,
		element.SourceSpan(), element.StartSourceSpan, element.EndSourceSpan)
}

// VisitAttribute visits an attribute node
func (w *WhitespaceVisitor) VisitAttribute(attribute *Attribute, context interface{}) interface{} {
	return attribute
}

// VisitText drops blank text and collapses whitespace runs to one space
func (w *WhitespaceVisitor) VisitText(text *Text, context interface{}) interface{} {
	if !noWsRegexp.MatchString(text.Value) {
		return nil
	}
	value := wsReplaceRegexp.ReplaceAllString(ReplaceNgsp(text.Value), " ")
	return NewText(value, text.SourceSpan())
}

// VisitComment drops comments
func (w *WhitespaceVisitor) VisitComment(comment *Comment, context interface{}) interface{} {
	return nil
}

func visitNodes(visitor Visitor, nodes []Node) []Node {
	result := []Node{}
	for _, r := range VisitAll(visitor, nodes, nil) {
		result = append(result, r.(Node))
	}
	return result
}

// RemoveWhitespaces returns the tree with insignificant whitespace removed
func RemoveWhitespaces(result *ParseTreeResult) *ParseTreeResult {
	return &ParseTreeResult{
		RootNodes: visitNodes(&WhitespaceVisitor{}, result.RootNodes),
		Errors:    result.Errors,
	}
}

package tsparser

import (
	"strconv"
	"strings"
	"unicode/utf8"

	sitter "github.com/smacker/go-tree-sitter"
)

// Property is one entry of an object literal.
type Property struct {
	Key   string
	Node  *sitter.Node
	Value *sitter.Node
}

// ObjectProperties returns the entries of an object literal in source order.
// Spread elements, methods and computed keys are skipped.
func (f *File) ObjectProperties(obj *sitter.Node) []Property {
	obj = Unwrap(obj)
	if obj == nil || obj.Type() != "object" {
		return nil
	}
	var props []Property
	for _, child := range NamedChildren(obj) {
		switch child.Type() {
		case "pair":
			keyNode := child.ChildByFieldName("key")
			key, ok := f.propertyKey(keyNode)
			if !ok {
				continue
			}
			props = append(props, Property{Key: key, Node: child, Value: child.ChildByFieldName("value")})
		case "shorthand_property_identifier":
			props = append(props, Property{Key: f.Text(child), Node: child, Value: child})
		}
	}
	return props
}

func (f *File) propertyKey(n *sitter.Node) (string, bool) {
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "property_identifier", "identifier", "number", "private_property_identifier":
		return f.Text(n), true
	case "string":
		return f.StringValue(n)
	}
	return "", false
}

// StringValue decodes a string literal or a template string without
// substitutions.
func (f *File) StringValue(n *sitter.Node) (string, bool) {
	n = Unwrap(n)
	if n == nil {
		return "", false
	}
	switch n.Type() {
	case "string":
		text := f.Text(n)
		if len(text) < 2 {
			return "", false
		}
		return unescape(text[1 : len(text)-1]), true
	case "template_string":
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if n.NamedChild(i).Type() == "template_substitution" {
				return "", false
			}
		}
		text := f.Text(n)
		return unescape(text[1 : len(text)-1]), true
	}
	return "", false
}

// BoolValue decodes `true` or `false`.
func (f *File) BoolValue(n *sitter.Node) (bool, bool) {
	n = Unwrap(n)
	if n == nil {
		return false, false
	}
	switch n.Type() {
	case "true":
		return true, true
	case "false":
		return false, true
	}
	return false, false
}

// ArrayElements returns the elements of an array literal.
func (f *File) ArrayElements(n *sitter.Node) ([]*sitter.Node, bool) {
	n = Unwrap(n)
	if n == nil || n.Type() != "array" {
		return nil, false
	}
	return NamedChildren(n), true
}

// IsStringLiteral reports whether n is a plain string literal.
func IsStringLiteral(n *sitter.Node) bool {
	n = Unwrap(n)
	return n != nil && n.Type() == "string"
}

// IsPrimary reports whether n binds as tightly as an identifier, so its text
// can be spliced anywhere without parentheses.
func IsPrimary(n *sitter.Node) bool {
	switch n.Type() {
	case "identifier", "this", "member_expression", "subscript_expression", "call_expression",
		"array", "object", "string", "template_string", "number", "true", "false", "null",
		"undefined", "parenthesized_expression", "regex", "property_identifier":
		return true
	}
	return false
}

// unescape decodes the escape sequences of a JavaScript string body. Unknown
// escapes yield the escaped character itself.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			sb.WriteByte(c)
			continue
		}
		i++
		switch s[i] {
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case 'b':
			sb.WriteByte('\b')
		case 'f':
			sb.WriteByte('\f')
		case 'v':
			sb.WriteByte('\v')
		case '0':
			sb.WriteByte(0)
		case '\n':
			// line continuation
		case 'x':
			if i+2 < len(s) {
				if v, err := strconv.ParseUint(s[i+1:i+3], 16, 8); err == nil {
					sb.WriteRune(rune(v))
					i += 2
					continue
				}
			}
			sb.WriteByte('x')
		case 'u':
			if r, n := parseUnicodeEscape(s[i+1:]); n > 0 {
				sb.WriteRune(r)
				i += n
				continue
			}
			sb.WriteByte('u')
		default:
			r, size := utf8.DecodeRuneInString(s[i:])
			sb.WriteRune(r)
			i += size - 1
		}
	}
	return sb.String()
}

func parseUnicodeEscape(s string) (rune, int) {
	if strings.HasPrefix(s, "{") {
		end := strings.IndexByte(s, '}')
		if end < 0 {
			return 0, 0
		}
		v, err := strconv.ParseUint(s[1:end], 16, 32)
		if err != nil {
			return 0, 0
		}
		return rune(v), end + 1
	}
	if len(s) < 4 {
		return 0, 0
	}
	v, err := strconv.ParseUint(s[:4], 16, 16)
	if err != nil {
		return 0, 0
	}
	return rune(v), 4
}

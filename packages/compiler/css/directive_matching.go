// Package css parses the CSS selectors components and directives are declared
// under and matches them against template elements.
package css

import (
	"fmt"
	"regexp"
	"strings"

	"ngc-lite/packages/compiler/core"
)

// Go regexp has no backreferences, so double-quoted, single-quoted and
// unquoted attribute values have their own groups.
var selectorRegexp = regexp.MustCompile(
	`(\:not\()|` + // 1: ":not("
		`(([\.\#]?)[-\w]+)|` + // 2: "tag"; 3: "."/"#"
		// 4: attribute; 5: double-quoted value; 6: single-quoted value;
		// 7: unquoted value; 8: no value
		`(?:\[([-.\w*\\$]+)(?:="([^\]"]*)"|='([^\]']*)'|=([^\]\s]+)|())\])|` +
		`(\))|` + // 9: ")"
		`(\s*,\s*)`, // 10: ","
)

const (
	groupNot = 1 + iota
	groupTag
	groupPrefix
	groupAttribute
	groupDoubleQuoted
	groupSingleQuoted
	groupUnquoted
	groupNoValue
	groupNotEnd
	groupSeparator
)

// CssSelector is one simple selector: an optional element name, classes,
// attributes and `:not()` parts.
type CssSelector struct {
	Element    string
	ClassNames []string
	// Attrs holds name/value pairs: [name, value, name, value, ...].
	Attrs        []string
	NotSelectors []*CssSelector
}

// ParseCssSelector parses a comma separated selector list.
func ParseCssSelector(selector string) ([]*CssSelector, error) {
	var results []*CssSelector
	addResult := func(sel *CssSelector) {
		if len(sel.NotSelectors) > 0 && sel.Element == "" && len(sel.ClassNames) == 0 && len(sel.Attrs) == 0 {
			sel.Element = "*"
		}
		results = append(results, sel)
	}

	cssSelector := &CssSelector{}
	current := cssSelector
	inNot := false
	for _, match := range selectorRegexp.FindAllStringSubmatchIndex(selector, -1) {
		group := func(i int) (string, bool) {
			if match[2*i] < 0 {
				return "", false
			}
			return selector[match[2*i]:match[2*i+1]], true
		}

		if _, ok := group(groupNot); ok {
			if inNot {
				return nil, fmt.Errorf("nesting :not in a selector is not allowed")
			}
			inNot = true
			current = &CssSelector{}
			cssSelector.NotSelectors = append(cssSelector.NotSelectors, current)
		}
		if tag, ok := group(groupTag); ok {
			prefix, _ := group(groupPrefix)
			switch prefix {
			case "#":
				current.AddAttribute("id", tag[1:])
			case ".":
				current.AddClassName(tag[1:])
			default:
				current.Element = tag
			}
		}
		if attr, ok := group(groupAttribute); ok {
			name, err := unescapeAttribute(attr)
			if err != nil {
				return nil, err
			}
			value := ""
			for _, g := range []int{groupDoubleQuoted, groupSingleQuoted, groupUnquoted} {
				if v, ok := group(g); ok {
					value = v
					break
				}
			}
			current.AddAttribute(name, value)
		}
		if _, ok := group(groupNotEnd); ok {
			inNot = false
			current = cssSelector
		}
		if _, ok := group(groupSeparator); ok {
			if inNot {
				return nil, fmt.Errorf("multiple selectors in :not are not supported")
			}
			addResult(cssSelector)
			cssSelector = &CssSelector{}
			current = cssSelector
		}
	}
	addResult(cssSelector)
	return results, nil
}

// unescapeAttribute removes the `\` escapes of an attribute name. An
// unescaped `$` is rejected.
func unescapeAttribute(attr string) (string, error) {
	var sb strings.Builder
	escaping := false
	for i := 0; i < len(attr); i++ {
		c := attr[i]
		if c == '\\' && !escaping {
			escaping = true
			continue
		}
		if c == '$' && !escaping {
			return "", fmt.Errorf(`error in attribute selector "%s". unescaped "$" is not supported. please escape with "\$"`, attr)
		}
		escaping = false
		sb.WriteByte(c)
	}
	return sb.String(), nil
}

func escapeAttribute(attr string) string {
	return strings.ReplaceAll(strings.ReplaceAll(attr, `\`, `\\`), "$", `\$`)
}

// AddAttribute adds an attribute. Values are matched case-insensitively, so
// they are stored lower-cased.
func (cs *CssSelector) AddAttribute(name, value string) {
	cs.Attrs = append(cs.Attrs, name, strings.ToLower(value))
}

// AddClassName adds a class name
func (cs *CssSelector) AddClassName(name string) {
	cs.ClassNames = append(cs.ClassNames, strings.ToLower(name))
}

// IsElementSelector reports whether the selector is a bare element name.
func (cs *CssSelector) IsElementSelector() bool {
	return cs.Element != "" && len(cs.ClassNames) == 0 && len(cs.Attrs) == 0 && len(cs.NotSelectors) == 0
}

// GetAttrs returns the attributes a host element needs to match the
// selector, classes folded into one `class` entry.
func (cs *CssSelector) GetAttrs() []string {
	var result []string
	if len(cs.ClassNames) > 0 {
		result = append(result, "class", strings.Join(cs.ClassNames, " "))
	}
	return append(result, cs.Attrs...)
}

func (cs *CssSelector) String() string {
	var sb strings.Builder
	sb.WriteString(cs.Element)
	for _, klass := range cs.ClassNames {
		sb.WriteString("." + klass)
	}
	for i := 0; i < len(cs.Attrs); i += 2 {
		name := escapeAttribute(cs.Attrs[i])
		if value := cs.Attrs[i+1]; value != "" {
			fmt.Fprintf(&sb, "[%s=%s]", name, value)
		} else {
			fmt.Fprintf(&sb, "[%s]", name)
		}
	}
	for _, not := range cs.NotSelectors {
		fmt.Fprintf(&sb, ":not(%s)", not)
	}
	return sb.String()
}

// ParseSelectorToR3Selector converts a selector list into the array form the
// runtime matches against, e.g. `app-x, [dir]` becomes
// [["app-x"], ["", "dir", ""]].
func ParseSelectorToR3Selector(selector string) (core.R3CssSelectorList, error) {
	if selector == "" {
		return core.R3CssSelectorList{}, nil
	}
	parsed, err := ParseCssSelector(selector)
	if err != nil {
		return nil, err
	}
	list := make(core.R3CssSelectorList, len(parsed))
	for i, sel := range parsed {
		list[i] = toR3Selector(sel)
	}
	return list, nil
}

func classFlags(names []string) []interface{} {
	if len(names) == 0 {
		return nil
	}
	out := []interface{}{core.SelectorFlagsCLASS}
	for _, n := range names {
		out = append(out, n)
	}
	return out
}

func attrValues(attrs []string) []interface{} {
	out := make([]interface{}, len(attrs))
	for i, a := range attrs {
		out[i] = a
	}
	return out
}

func toR3Selector(sel *CssSelector) core.R3CssSelector {
	element := sel.Element
	if element == "*" {
		element = ""
	}
	result := core.R3CssSelector{element}
	result = append(result, attrValues(sel.Attrs)...)
	result = append(result, classFlags(sel.ClassNames)...)
	for _, not := range sel.NotSelectors {
		result = append(result, toNegativeR3Selector(not)...)
	}
	return result
}

func toNegativeR3Selector(sel *CssSelector) []interface{} {
	switch {
	case sel.Element != "":
		out := []interface{}{core.SelectorFlagsNOT | core.SelectorFlagsELEMENT, sel.Element}
		out = append(out, attrValues(sel.Attrs)...)
		return append(out, classFlags(sel.ClassNames)...)
	case len(sel.Attrs) > 0:
		out := []interface{}{core.SelectorFlagsNOT | core.SelectorFlagsATTRIBUTE}
		out = append(out, attrValues(sel.Attrs)...)
		return append(out, classFlags(sel.ClassNames)...)
	case len(sel.ClassNames) > 0:
		out := []interface{}{core.SelectorFlagsNOT | core.SelectorFlagsCLASS}
		for _, n := range sel.ClassNames {
			out = append(out, n)
		}
		return out
	}
	return nil
}

// SelectorMatcher finds the selectables whose selector matches an element.
type SelectorMatcher[T any] struct {
	entries []selectorEntry[T]
}

type selectorEntry[T any] struct {
	selectors []*CssSelector
	value     T
}

// NewSelectorMatcher creates an empty SelectorMatcher
func NewSelectorMatcher[T any]() *SelectorMatcher[T] {
	return &SelectorMatcher[T]{}
}

// AddSelectables registers value under a selector list. The value matches
// when any selector of the list does.
func (sm *SelectorMatcher[T]) AddSelectables(selectors []*CssSelector, value T) {
	sm.entries = append(sm.entries, selectorEntry[T]{selectors: selectors, value: value})
}

// Match calls cb once for every registered value matching element, in
// registration order, and reports whether anything matched.
func (sm *SelectorMatcher[T]) Match(element *CssSelector, cb func(*CssSelector, T)) bool {
	matched := false
	for _, entry := range sm.entries {
		for _, sel := range entry.selectors {
			if sel.Matches(element) {
				matched = true
				if cb != nil {
					cb(sel, entry.value)
				}
				break
			}
		}
	}
	return matched
}

// Matches reports whether the selector matches an element described as a
// CssSelector (element name, its classes and its attributes).
func (cs *CssSelector) Matches(element *CssSelector) bool {
	if cs.Element != "" && cs.Element != "*" && !strings.EqualFold(cs.Element, element.Element) {
		return false
	}
	for _, klass := range cs.ClassNames {
		if !contains(element.ClassNames, klass) {
			return false
		}
	}
	for i := 0; i < len(cs.Attrs); i += 2 {
		if !hasAttr(element.Attrs, cs.Attrs[i], cs.Attrs[i+1]) {
			return false
		}
	}
	for _, not := range cs.NotSelectors {
		if not.Matches(element) {
			return false
		}
	}
	return true
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func hasAttr(attrs []string, name, value string) bool {
	for i := 0; i < len(attrs); i += 2 {
		if attrs[i] == name && (value == "" || attrs[i+1] == value) {
			return true
		}
	}
	return false
}

// CreateElementCssSelector describes an element as a CssSelector so it can
// be matched. attrs holds name/value pairs; the class attribute is split into
// class names.
func CreateElementCssSelector(elementName string, attrs []string) *CssSelector {
	sel := &CssSelector{Element: elementName}
	for i := 0; i+1 < len(attrs); i += 2 {
		name, value := attrs[i], attrs[i+1]
		sel.AddAttribute(name, value)
		if strings.ToLower(name) == "class" {
			for _, klass := range strings.Fields(value) {
				sel.AddClassName(klass)
			}
		}
	}
	return sel
}

package ml_parser

import "strings"

// TagContentType describes how the content of an element is tokenized
type TagContentType int

const (
	TagContentTypeParsableData TagContentType = iota
	TagContentTypeRawText
	TagContentTypeEscapableRawText
)

// TagDefinition describes the parsing rules of an HTML tag
type TagDefinition struct {
	IsVoid bool
	// IgnoreFirstLf drops a newline directly after the start tag.
	IgnoreFirstLf bool
	ContentType   TagContentType
	// ClosedByParent allows the end tag of the parent to close the element.
	ClosedByParent   bool
	closedByChildren map[string]bool
}

// IsClosedByChild reports whether opening name implicitly closes the element.
func (d TagDefinition) IsClosedByChild(name string) bool {
	return d.IsVoid || d.closedByChildren[strings.ToLower(name)]
}

func set(names ...string) map[string]bool {
	m := make(map[string]bool, len(names))
	for _, n := range names {
		m[n] = true
	}
	return m
}

var voidElements = set("area", "base", "br", "col", "embed", "hr", "img", "input",
	"link", "meta", "param", "source", "track", "wbr")

var tagDefinitions = map[string]TagDefinition{
	"p": {
		ClosedByParent: true,
		closedByChildren: set("address", "article", "aside", "blockquote", "div", "dl", "fieldset",
			"footer", "form", "h1", "h2", "h3", "h4", "h5", "h6", "header", "hgroup", "hr", "main",
			"nav", "ol", "p", "pre", "section", "table", "ul"),
	},
	"thead":    {closedByChildren: set("tbody", "tfoot")},
	"tbody":    {ClosedByParent: true, closedByChildren: set("tbody", "tfoot")},
	"tfoot":    {ClosedByParent: true, closedByChildren: set("tbody")},
	"tr":       {ClosedByParent: true, closedByChildren: set("tr")},
	"td":       {ClosedByParent: true, closedByChildren: set("td", "th")},
	"th":       {ClosedByParent: true, closedByChildren: set("td", "th")},
	"li":       {ClosedByParent: true, closedByChildren: set("li")},
	"dt":       {closedByChildren: set("dt", "dd")},
	"dd":       {ClosedByParent: true, closedByChildren: set("dt", "dd")},
	"option":   {ClosedByParent: true, closedByChildren: set("option", "optgroup")},
	"optgroup": {ClosedByParent: true, closedByChildren: set("optgroup")},
	"pre":      {IgnoreFirstLf: true},
	"listing":  {IgnoreFirstLf: true},
	"textarea": {IgnoreFirstLf: true, ContentType: TagContentTypeEscapableRawText},
	"title":    {ContentType: TagContentTypeEscapableRawText},
	"script":   {ContentType: TagContentTypeRawText},
	"style":    {ContentType: TagContentTypeRawText},
}

// GetHtmlTagDefinition returns the parsing rules for a tag name
func GetHtmlTagDefinition(tagName string) TagDefinition {
	name := strings.ToLower(tagName)
	if voidElements[name] {
		return TagDefinition{IsVoid: true}
	}
	return tagDefinitions[name]
}

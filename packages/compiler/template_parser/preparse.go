package template_parser

import (
	"strings"

	"ngc-lite/packages/compiler/ml_parser"
)

const (
	NG_CONTENT_ELEMENT   = "ng-content"
	LINK_ELEMENT         = "link"
	LINK_STYLE_REL_ATTR  = "rel"
	LINK_STYLE_REL_VALUE = "stylesheet"
	STYLE_ELEMENT        = "style"
	SCRIPT_ELEMENT       = "script"
	NG_NON_BINDABLE_ATTR = "ngNonBindable"
)

// PreparsedElementType is the role an element plays before any binding is
// read from it.
type PreparsedElementType int

const (
	PreparsedElementTypeOther PreparsedElementType = iota
	PreparsedElementTypeNgContent
	PreparsedElementTypeStyle
	PreparsedElementTypeStylesheet
	PreparsedElementTypeScript
)

// PreparsedElement is what the template compiler needs to know about an
// element before compiling it.
type PreparsedElement struct {
	Type PreparsedElementType
	// NonBindable is set by the ngNonBindable attribute: the element's
	// attributes and content are taken as plain text.
	NonBindable bool
}

// Skipped reports whether the element produces no instruction at all.
// Scripts are never rendered; styles and stylesheet links belong to the
// component styles, not to its view.
func (p *PreparsedElement) Skipped() bool {
	switch p.Type {
	case PreparsedElementTypeScript, PreparsedElementTypeStyle, PreparsedElementTypeStylesheet:
		return true
	}
	return false
}

// PreparseElement classifies an element from its name and attributes.
func PreparseElement(element *ml_parser.Element) *PreparsedElement {
	var rel string
	nonBindable := false
	for _, attr := range element.Attrs {
		switch {
		case strings.ToLower(attr.Name) == LINK_STYLE_REL_ATTR:
			rel = attr.Value
		case attr.Name == NG_NON_BINDABLE_ATTR:
			nonBindable = true
		}
	}

	elementType := PreparsedElementTypeOther
	switch strings.ToLower(element.Name) {
	case NG_CONTENT_ELEMENT:
		elementType = PreparsedElementTypeNgContent
	case STYLE_ELEMENT:
		elementType = PreparsedElementTypeStyle
	case SCRIPT_ELEMENT:
		elementType = PreparsedElementTypeScript
	case LINK_ELEMENT:
		if rel == LINK_STYLE_REL_VALUE {
			elementType = PreparsedElementTypeStylesheet
		}
	}
	return &PreparsedElement{Type: elementType, NonBindable: nonBindable}
}

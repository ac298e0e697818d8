package ml_parser

import (
	"fmt"
	"strings"

	"ngc-lite/packages/compiler/util"
)

// TreeError represents a tree parsing error
type TreeError struct {
	*util.ParseError
	ElementName string
}

// NewTreeError creates a new TreeError
func NewTreeError(elementName string, span *util.ParseSourceSpan, msg string) *TreeError {
	return &TreeError{
		ParseError:  util.NewParseError(span, msg),
		ElementName: elementName,
	}
}

// ParseTreeResult represents the result of parsing a tree
type ParseTreeResult struct {
	RootNodes []Node
	Errors    []*util.ParseError
}

// Parser parses template source into an AST
type Parser struct {
	GetTagDefinition func(tagName string) TagDefinition
}

// NewParser creates a new Parser
func NewParser(getTagDefinition func(tagName string) TagDefinition) *Parser {
	return &Parser{GetTagDefinition: getTagDefinition}
}

// HtmlParser is a Parser using the HTML tag rules
type HtmlParser struct {
	*Parser
}

// NewHtmlParser creates a new HtmlParser
func NewHtmlParser() *HtmlParser {
	return &HtmlParser{Parser: NewParser(GetHtmlTagDefinition)}
}

// Parse parses source code into a ParseTreeResult
func (p *Parser) Parse(source, url string, options *TokenizeOptions) *ParseTreeResult {
	tokenized := Tokenize(source, url, p.GetTagDefinition, options)
	tb := newTreeBuilder(tokenized.Tokens, p.GetTagDefinition)
	tb.build()

	errors := tokenized.Errors
	for _, err := range tb.errors {
		errors = append(errors, err.ParseError)
	}
	return &ParseTreeResult{RootNodes: tb.rootNodes, Errors: errors}
}

type treeBuilder struct {
	tokens           []*Token
	index            int
	stack            []*Element
	rootNodes        []Node
	errors           []*TreeError
	getTagDefinition func(string) TagDefinition
}

func newTreeBuilder(tokens []*Token, getTagDefinition func(string) TagDefinition) *treeBuilder {
	return &treeBuilder{tokens: tokens, getTagDefinition: getTagDefinition}
}

func (tb *treeBuilder) peek() *Token {
	if tb.index >= len(tb.tokens) {
		return nil
	}
	return tb.tokens[tb.index]
}

func (tb *treeBuilder) advance() *Token {
	tok := tb.peek()
	if tok != nil {
		tb.index++
	}
	return tok
}

func (tb *treeBuilder) build() {
	for tok := tb.peek(); tok != nil && tok.Type != TokenTypeEOF; tok = tb.peek() {
		switch tok.Type {
		case TokenTypeTagOpenStart:
			tb.consumeStartTag(tb.advance())
		case TokenTypeTagClose:
			tb.consumeEndTag(tb.advance())
		case TokenTypeText:
			tb.consumeText(tb.advance())
		case TokenTypeComment:
			tok := tb.advance()
			tb.addToParent(NewComment(tok.Parts[0], tok.SourceSpan))
		default:
			tb.advance()
		}
	}
}

func (tb *treeBuilder) parent() *Element {
	if len(tb.stack) == 0 {
		return nil
	}
	return tb.stack[len(tb.stack)-1]
}

func (tb *treeBuilder) addToParent(node Node) {
	if parent := tb.parent(); parent != nil {
		parent.Children = append(parent.Children, node)
		return
	}
	tb.rootNodes = append(tb.rootNodes, node)
}

func (tb *treeBuilder) consumeText(tok *Token) {
	value := tok.Parts[0]
	if parent := tb.parent(); parent != nil && len(parent.Children) == 0 &&
		tb.getTagDefinition(parent.Name).IgnoreFirstLf && strings.HasPrefix(value, "\n") {
		value = value[1:]
	}
	if value == "" {
		return
	}
	if parent := tb.parent(); parent != nil && len(parent.Children) > 0 {
		if prev, ok := parent.Children[len(parent.Children)-1].(*Text); ok {
			prev.Value += value
			prev.sourceSpan = util.NewParseSourceSpan(prev.sourceSpan.Start, tok.SourceSpan.End)
			return
		}
	}
	tb.addToParent(NewText(value, tok.SourceSpan))
}

func (tb *treeBuilder) consumeStartTag(start *Token) {
	name := start.Parts[0]
	var attrs []*Attribute
	for tok := tb.peek(); tok != nil && tok.Type == TokenTypeAttrName; tok = tb.peek() {
		attrs = append(attrs, tb.consumeAttr(tb.advance()))
	}

	end := start.SourceSpan.End
	selfClosing := false
	if tok := tb.peek(); tok != nil {
		switch tok.Type {
		case TokenTypeTagOpenEndVoid:
			tb.advance()
			end = tok.SourceSpan.End
			selfClosing = true
			def := tb.getTagDefinition(name)
			if !def.IsVoid && !strings.Contains(name, "-") && !strings.Contains(name, ":") {
				tb.errors = append(tb.errors, NewTreeError(name, start.SourceSpan,
					fmt.Sprintf("Only void, custom and foreign elements can be self closed %q", name)))
			}
		case TokenTypeTagOpenEnd:
			tb.advance()
			end = tok.SourceSpan.End
		}
	}

	span := util.NewParseSourceSpan(start.SourceSpan.Start, end)
	def := tb.getTagDefinition(name)
	el := NewElement(name, attrs, nil, selfClosing, def.IsVoid, span, span, nil)

	if parent := tb.parent(); parent != nil && tb.getTagDefinition(parent.Name).IsClosedByChild(name) {
		tb.stack = tb.stack[:len(tb.stack)-1]
	}
	tb.addToParent(el)
	if selfClosing || def.IsVoid {
		el.EndSourceSpan = span
		return
	}
	tb.stack = append(tb.stack, el)
}

func (tb *treeBuilder) consumeAttr(nameTok *Token) *Attribute {
	name := nameTok.Parts[0]
	value := ""
	var valueSpan *util.ParseSourceSpan
	end := nameTok.SourceSpan.End
	if tok := tb.peek(); tok != nil && tok.Type == TokenTypeAttrValue {
		tb.advance()
		value = tok.Parts[0]
		valueSpan = tok.SourceSpan
		end = tok.SourceSpan.End
	}
	return NewAttribute(name, value, util.NewParseSourceSpan(nameTok.SourceSpan.Start, end), valueSpan)
}

func (tb *treeBuilder) consumeEndTag(tok *Token) {
	name := tok.Parts[0]
	if tb.getTagDefinition(name).IsVoid {
		tb.errors = append(tb.errors, NewTreeError(name, tok.SourceSpan,
			fmt.Sprintf("Void elements do not have end tags %q", name)))
		return
	}
	if !tb.popElement(name, tok.SourceSpan) {
		tb.errors = append(tb.errors, NewTreeError(name, tok.SourceSpan,
			fmt.Sprintf("Unexpected closing tag %q. It may happen when the tag has already been closed by another tag.", name)))
	}
}

// popElement closes the innermost open element called name. Elements opened
// after it are closed implicitly when their tag allows it.
func (tb *treeBuilder) popElement(name string, endSpan *util.ParseSourceSpan) bool {
	for i := len(tb.stack) - 1; i >= 0; i-- {
		el := tb.stack[i]
		if strings.EqualFold(el.Name, name) {
			el.EndSourceSpan = endSpan
			el.sourceSpan = util.NewParseSourceSpan(el.sourceSpan.Start, endSpan.End)
			tb.stack = tb.stack[:i]
			return true
		}
		if !tb.getTagDefinition(el.Name).ClosedByParent {
			return false
		}
	}
	return false
}

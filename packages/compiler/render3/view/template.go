package view

import (
	"fmt"
	"strings"

	"ngc-lite/packages/compiler/core"
	"ngc-lite/packages/compiler/css"
	"ngc-lite/packages/compiler/ml_parser"
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/pool"
	"ngc-lite/packages/compiler/render3/r3_identifiers"
	"ngc-lite/packages/compiler/template_parser"
	"ngc-lite/packages/compiler/util"
)

// TemplateOptions configures the compilation of one component template.
type TemplateOptions struct {
	// ComponentName prefixes the generated function names.
	ComponentName string
	Template      string
	// TemplateURL is the url errors are reported against.
	TemplateURL         string
	PreserveWhitespaces bool
	// Matcher holds the selectors of the classes declared in the same file.
	Matcher *css.SelectorMatcher[string]
	// Imported holds the names listed in the component's imports.
	Imported map[string]bool
}

// TemplateResult is a compiled template.
type TemplateResult struct {
	Fn     *output.FunctionExpr
	Decls  int
	Vars   int
	Consts []output.Expression
	// Matched lists the same-file classes whose selector matched an element,
	// in first-match order.
	Matched []string
	// Errors holds template errors and warnings.
	Errors []*util.ParseError
}

// HasErrors reports whether the result carries errors, warnings aside.
func (r *TemplateResult) HasErrors() bool {
	for _, err := range r.Errors {
		if err.Level == util.ParseErrorLevelError {
			return true
		}
	}
	return false
}

// TemplateFnName is the name of the template function of a component.
func TemplateFnName(componentName string) string {
	return componentName + "_Template"
}

// CompileTemplate turns a component template into its template function.
// Bindings are parsed with bindingParser; its errors raised while compiling
// the template are reported in the result.
func CompileTemplate(opts TemplateOptions, bindingParser *template_parser.BindingParser) *TemplateResult {
	url := opts.TemplateURL
	if url == "" {
		url = opts.ComponentName
	}
	parsed := ml_parser.NewHtmlParser().Parse(opts.Template, url, nil)
	if !opts.PreserveWhitespaces {
		parsed = ml_parser.RemoveWhitespaces(parsed)
	}
	result := &TemplateResult{Errors: parsed.Errors}
	fnName := TemplateFnName(opts.ComponentName)
	if result.HasErrors() {
		result.Fn = output.Fn(output.Params(RENDER_FLAGS, CONTEXT_NAME), nil, fnName)
		return result
	}

	known := len(bindingParser.Errors)
	b := &templateBuilder{
		opts:      opts,
		fnName:    fnName,
		bp:        bindingParser,
		constKeys: map[string]int{},
		matched:   map[string]bool{},
	}
	ml_parser.VisitAll(b, parsed.RootNodes, nil)

	result.Fn = output.Fn(output.Params(RENDER_FLAGS, CONTEXT_NAME), RenderFunctionBody(b.create, b.update), fnName)
	result.Decls = b.slot
	result.Vars = b.vars
	result.Consts = b.consts
	result.Matched = b.matchOrder
	result.Errors = append(result.Errors, b.errors...)
	result.Errors = append(result.Errors, bindingParser.Errors[known:]...)
	return result
}

type templateBuilder struct {
	opts   TemplateOptions
	fnName string
	bp     *template_parser.BindingParser

	slot       int
	vars       int
	updateSlot int
	create     []output.Statement
	update     []output.Statement

	consts    []output.Expression
	constKeys map[string]int

	matched    map[string]bool
	matchOrder []string
	errors     []*util.ParseError

	// nonBindable is the depth of ngNonBindable elements around the
	// current node.
	nonBindable int
}

func (b *templateBuilder) reportError(span *util.ParseSourceSpan, format string, args ...interface{}) {
	b.errors = append(b.errors, util.NewParseError(span, fmt.Sprintf(format, args...)))
}

func (b *templateBuilder) reportWarning(span *util.ParseSourceSpan, format string, args ...interface{}) {
	b.errors = append(b.errors, util.NewParseWarning(span, fmt.Sprintf(format, args...)))
}

// elementAttributes are the attributes of an element sorted by role.
type elementAttributes struct {
	static   []string
	classes  []string
	styles   []string
	bindings []string
	props    []*template_parser.ParsedProperty
	events   []*template_parser.ParsedEvent
}

func (b *templateBuilder) VisitElement(element *ml_parser.Element, _ interface{}) interface{} {
	preparsed := template_parser.PreparseElement(element)
	if preparsed.Skipped() {
		return nil
	}
	switch element.Name {
	case "ng-template", "ng-container", "ng-content":
		b.reportError(element.StartSourceSpan, "<%s> is not supported", element.Name)
		return nil
	}

	attrs := b.readAttributes(element)
	if b.nonBindable == 0 {
		b.matchElement(element, attrs)
	}

	slot := b.slot
	b.slot++
	args := []output.Expression{output.Literal(slot), output.Literal(element.Name)}
	if constIndex, ok := b.addConst(attrs); ok {
		args = append(args, output.Literal(constIndex))
	}

	var listeners []output.Statement
	for _, event := range attrs.events {
		name := fmt.Sprintf("%s_%s_%s_%d_listener", b.fnName, element.Name, event.Name, slot)
		listeners = append(listeners, ListenerInstruction(event, name))
	}

	var ops []UpdateOp
	for _, prop := range attrs.props {
		ops = append(ops, PropertyUpdate(prop, false))
	}
	b.addUpdates(slot, ops)

	if len(element.Children) == 0 && len(listeners) == 0 {
		b.create = append(b.create, Instruction(r3_identifiers.Element, args...))
		return nil
	}
	b.create = append(b.create, Instruction(r3_identifiers.ElementStart, args...))
	b.create = append(b.create, listeners...)
	if preparsed.NonBindable {
		b.nonBindable++
	}
	ml_parser.VisitAll(b, element.Children, nil)
	if preparsed.NonBindable {
		b.nonBindable--
	}
	b.create = append(b.create, Instruction(r3_identifiers.ElementEnd))
	return nil
}

func (b *templateBuilder) VisitAttribute(attribute *ml_parser.Attribute, _ interface{}) interface{} {
	return nil
}

func (b *templateBuilder) VisitText(text *ml_parser.Text, _ interface{}) interface{} {
	slot := b.slot
	b.slot++
	var interpolation *template_parser.Interpolation
	if b.nonBindable == 0 {
		interpolation = b.bp.ParseInterpolation(text.Value, text.SourceSpan())
	}
	if interpolation == nil {
		b.create = append(b.create, Instruction(r3_identifiers.Text, output.Literal(slot), output.Literal(text.Value)))
		return nil
	}
	b.create = append(b.create, Instruction(r3_identifiers.Text, output.Literal(slot)))
	b.addUpdates(slot, []UpdateOp{{Stmt: TextInterpolation(interpolation), Vars: len(interpolation.Expressions)}})
	return nil
}

func (b *templateBuilder) VisitComment(comment *ml_parser.Comment, _ interface{}) interface{} {
	return nil
}

// addUpdates appends the update instructions of a slot, advancing the
// selected slot first when needed.
func (b *templateBuilder) addUpdates(slot int, ops []UpdateOp) {
	if len(ops) == 0 {
		return
	}
	if delta := slot - b.updateSlot; delta == 1 {
		b.update = append(b.update, Instruction(r3_identifiers.Advance))
	} else if delta > 1 {
		b.update = append(b.update, Instruction(r3_identifiers.Advance, output.Literal(delta)))
	}
	b.updateSlot = slot
	for _, op := range OrderUpdates(ops) {
		b.update = append(b.update, op.Stmt)
		b.vars += op.Vars
	}
}

func (b *templateBuilder) readAttributes(element *ml_parser.Element) *elementAttributes {
	attrs := &elementAttributes{}
	for _, attr := range element.Attrs {
		name, span := attr.Name, attr.SourceSpan()
		if b.nonBindable > 0 {
			attrs.addStatic(name, attr.Value)
			continue
		}
		switch {
		case strings.HasPrefix(name, "[(") && strings.HasSuffix(name, ")]"), strings.HasPrefix(name, "bindon-"):
			b.reportError(span, "Two-way bindings are not supported: %s", name)
		case strings.HasPrefix(name, "[@"), strings.HasPrefix(name, "@"), strings.HasPrefix(name, "animate-"):
			b.reportError(span, "Animation bindings are not supported: %s", name)
		case strings.HasPrefix(name, "*"):
			b.reportError(span, "Structural directives are not supported: %s", name)
		case strings.HasPrefix(name, "#"), strings.HasPrefix(name, "ref-"), strings.HasPrefix(name, "let-"):
			b.reportError(span, "Template references are not supported: %s", name)
		case name == "i18n", strings.HasPrefix(name, "i18n-"):
			b.reportError(span, "Internationalized templates are not supported: %s", name)
		case strings.HasPrefix(name, "[") && strings.HasSuffix(name, "]"):
			b.addProperty(attrs, b.bp.ParsePropertyBinding(name[1:len(name)-1], attr.Value, span))
		case strings.HasPrefix(name, "bind-"):
			b.addProperty(attrs, b.bp.ParsePropertyBinding(strings.TrimPrefix(name, "bind-"), attr.Value, span))
		case strings.HasPrefix(name, "(") && strings.HasSuffix(name, ")"):
			b.addEvent(attrs, b.bp.ParseEvent(name[1:len(name)-1], attr.Value, span))
		case strings.HasPrefix(name, "on-"):
			b.addEvent(attrs, b.bp.ParseEvent(strings.TrimPrefix(name, "on-"), attr.Value, span))
		default:
			if prop := b.bp.ParseInterpolatedProperty(name, attr.Value, span); prop != nil {
				b.addProperty(attrs, prop)
				continue
			}
			attrs.addStatic(name, attr.Value)
		}
	}
	return attrs
}

func (attrs *elementAttributes) addStatic(name, value string) {
	switch name {
	case "class":
		attrs.classes = append(attrs.classes, strings.Fields(value)...)
	case "style":
		attrs.styles = append(attrs.styles, ParseStyle(value)...)
	default:
		attrs.static = append(attrs.static, name, value)
	}
}

func (b *templateBuilder) addProperty(attrs *elementAttributes, prop *template_parser.ParsedProperty) {
	if prop == nil {
		return
	}
	attrs.props = append(attrs.props, prop)
	if prop.Type == template_parser.BindingTypeProperty {
		attrs.bindings = append(attrs.bindings, prop.Name)
	}
}

func (b *templateBuilder) addEvent(attrs *elementAttributes, event *template_parser.ParsedEvent) {
	if event == nil {
		return
	}
	attrs.events = append(attrs.events, event)
	if event.Target == "" {
		attrs.bindings = append(attrs.bindings, event.Name)
	}
}

// addConst adds the attribute array of an element to the consts, reusing an
// equal entry.
func (b *templateBuilder) addConst(attrs *elementAttributes) (int, bool) {
	var entries []interface{}
	for _, v := range attrs.static {
		entries = append(entries, v)
	}
	if len(attrs.classes) > 0 {
		entries = append(entries, core.AttributeMarkerClasses)
		for _, v := range attrs.classes {
			entries = append(entries, v)
		}
	}
	if len(attrs.styles) > 0 {
		entries = append(entries, core.AttributeMarkerStyles)
		for _, v := range attrs.styles {
			entries = append(entries, v)
		}
	}
	if len(attrs.bindings) > 0 {
		entries = append(entries, core.AttributeMarkerBindings)
		for _, v := range attrs.bindings {
			entries = append(entries, v)
		}
	}
	if len(entries) == 0 {
		return 0, false
	}
	literal := AsLiteral(entries)
	key := pool.GenericKeyFnInstance.KeyOf(literal)
	if index, ok := b.constKeys[key]; ok {
		return index, true
	}
	b.consts = append(b.consts, literal)
	b.constKeys[key] = len(b.consts) - 1
	return len(b.consts) - 1, true
}

// matchElement checks the element against the selectors declared in the
// same file. A match on a class that is not imported is reported.
func (b *templateBuilder) matchElement(element *ml_parser.Element, attrs *elementAttributes) {
	if b.opts.Matcher == nil {
		return
	}
	matchable := append([]string{}, attrs.static...)
	if len(attrs.classes) > 0 {
		matchable = append(matchable, "class", strings.Join(attrs.classes, " "))
	}
	for _, name := range attrs.bindings {
		matchable = append(matchable, name, "")
	}
	b.opts.Matcher.Match(css.CreateElementCssSelector(element.Name, matchable), func(_ *css.CssSelector, className string) {
		if !b.matched[className] {
			b.matched[className] = true
			b.matchOrder = append(b.matchOrder, className)
		}
		if !b.opts.Imported[className] {
			b.reportWarning(element.StartSourceSpan,
				"<%s> matches the selector of %s, which is declared in this file but not listed in imports",
				element.Name, className)
		}
	})
}

// ParseStyle splits a style attribute into name/value pairs.
func ParseStyle(value string) []string {
	var styles []string
	for _, decl := range strings.Split(value, ";") {
		name, val, found := strings.Cut(decl, ":")
		name, val = strings.TrimSpace(name), strings.TrimSpace(val)
		if !found || name == "" || val == "" {
			continue
		}
		styles = append(styles, name, val)
	}
	return styles
}

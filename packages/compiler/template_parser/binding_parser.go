// Package template_parser parses the expressions of template and host
// bindings. Expressions are read with the TypeScript grammar and rewritten so
// that names resolve against the component instance.
package template_parser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"ngc-lite/packages/compiler/ml_parser"
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/tsast"
	"ngc-lite/packages/compiler/tsparser"
	"ngc-lite/packages/compiler/util"
)

const PROPERTY_PARTS_SEPARATOR = "."
const ATTRIBUTE_PREFIX = "attr"
const CLASS_PREFIX = "class"
const STYLE_PREFIX = "style"

// ImplicitReceiver is the variable free names are read from.
const ImplicitReceiver = "ctx"

// EventName is the variable holding the DOM event inside a listener.
const EventName = "$event"

// BindingType is the kind of target a property binding writes to.
type BindingType int

const (
	// BindingTypeProperty binds to an element or directive property: `[value]`.
	BindingTypeProperty BindingType = iota
	// BindingTypeAttribute binds to an attribute: `[attr.role]`.
	BindingTypeAttribute
	// BindingTypeClass toggles one class: `[class.active]`.
	BindingTypeClass
	// BindingTypeStyle sets one style property: `[style.width.px]`.
	BindingTypeStyle
	// BindingTypeClassMap binds the whole class list: `[class]`.
	BindingTypeClassMap
	// BindingTypeStyleMap binds the whole style: `[style]`.
	BindingTypeStyleMap
)

// ParsedProperty is a property binding with its parsed value.
type ParsedProperty struct {
	Name string
	Type BindingType
	// Unit is the unit suffix of a style binding, e.g. `px`.
	Unit string
	// Value is either a single expression or an Interpolation.
	Value         output.Expression
	Interpolation *Interpolation
	SourceSpan    *util.ParseSourceSpan
}

// Interpolation is a text with embedded expressions. Strings has one more
// entry than Expressions.
type Interpolation struct {
	Strings     []string
	Expressions []output.Expression
}

// ParsedEvent is an event binding. Handler holds the statements of the
// handler in order, each an expression.
type ParsedEvent struct {
	Name string
	// Target is the global target of the event (`window`, `document` or
	// `body`), empty for the element itself.
	Target     string
	Handler    []output.Expression
	UsesEvent  bool
	SourceSpan *util.ParseSourceSpan
}

// BindingParser parses bindings in templates and in the directive host area.
type BindingParser struct {
	ctx    context.Context
	Errors []*util.ParseError
}

// NewBindingParser creates a BindingParser. ctx bounds every expression parse.
func NewBindingParser(ctx context.Context) *BindingParser {
	if ctx == nil {
		ctx = context.Background()
	}
	return &BindingParser{ctx: ctx}
}

// GetErrors returns the errors
func (bp *BindingParser) GetErrors() []*util.ParseError {
	return bp.Errors
}

func (bp *BindingParser) reportError(message string, sourceSpan *util.ParseSourceSpan) {
	bp.Errors = append(bp.Errors, util.NewParseError(sourceSpan, message))
}

// ParseBinding parses the expression of a property binding. It returns nil
// and records an error when the expression is invalid.
func (bp *BindingParser) ParseBinding(value string, sourceSpan *util.ParseSourceSpan) output.Expression {
	expr, _, ok := bp.parse(value, false, sourceSpan)
	if !ok {
		return nil
	}
	return expr
}

// ParseAction parses an event handler: one or more expressions separated by
// semicolons. usesEvent reports whether any of them reads `$event`.
func (bp *BindingParser) ParseAction(value string, sourceSpan *util.ParseSourceSpan) (handler []output.Expression, usesEvent bool, ok bool) {
	for _, part := range splitStatements(value) {
		if strings.TrimSpace(part) == "" {
			continue
		}
		expr, event, valid := bp.parse(part, true, sourceSpan)
		if !valid {
			return nil, false, false
		}
		handler = append(handler, expr)
		usesEvent = usesEvent || event
	}
	if len(handler) == 0 {
		bp.reportError("Empty expressions are not allowed", sourceSpan)
		return nil, false, false
	}
	return handler, usesEvent, true
}

// ParseInterpolation parses `text {{ expr }} text`. It returns nil without
// error when the value contains no interpolation.
func (bp *BindingParser) ParseInterpolation(value string, sourceSpan *util.ParseSourceSpan) *Interpolation {
	split, errors := ml_parser.SplitInterpolationText(value, ml_parser.DefaultInterpolationConfig, sourceSpan)
	if len(errors) > 0 {
		bp.Errors = append(bp.Errors, errors...)
		return nil
	}
	if split == nil {
		return nil
	}
	result := &Interpolation{Strings: split.Strings}
	for _, source := range split.Expressions {
		expr := bp.ParseBinding(source, sourceSpan)
		if expr == nil {
			return nil
		}
		result.Expressions = append(result.Expressions, expr)
	}
	return result
}

// ParsePropertyBinding parses a `[name]="value"` binding. name is the text
// between the brackets.
func (bp *BindingParser) ParsePropertyBinding(name, value string, sourceSpan *util.ParseSourceSpan) *ParsedProperty {
	prop := &ParsedProperty{SourceSpan: sourceSpan}
	prop.Name, prop.Type, prop.Unit = parsePropertyName(name)
	if prop.Name == "" {
		bp.reportError(fmt.Sprintf("Invalid property name '%s'", name), sourceSpan)
		return nil
	}
	if prop.Value = bp.ParseBinding(value, sourceSpan); prop.Value == nil {
		return nil
	}
	return prop
}

// ParseInterpolatedProperty parses a plain attribute whose value contains
// an interpolation. It returns nil when there is none.
func (bp *BindingParser) ParseInterpolatedProperty(name, value string, sourceSpan *util.ParseSourceSpan) *ParsedProperty {
	interpolation := bp.ParseInterpolation(value, sourceSpan)
	if interpolation == nil {
		return nil
	}
	prop := &ParsedProperty{Interpolation: interpolation, SourceSpan: sourceSpan}
	prop.Name, prop.Type, prop.Unit = parsePropertyName(name)
	return prop
}

// ParseEvent parses a `(name)="handler"` binding. name may carry a global
// target: `window:resize`.
func (bp *BindingParser) ParseEvent(name, value string, sourceSpan *util.ParseSourceSpan) *ParsedEvent {
	event := &ParsedEvent{Name: name, SourceSpan: sourceSpan}
	if parts := util.SplitAtColon(name, nil); parts != nil {
		target, eventName := parts[0], parts[1]
		switch target {
		case "window", "document", "body":
			event.Target, event.Name = target, eventName
		default:
			bp.reportError(fmt.Sprintf("Unsupported event target '%s' for event '%s'", target, eventName), sourceSpan)
			return nil
		}
	}
	handler, usesEvent, ok := bp.ParseAction(value, sourceSpan)
	if !ok {
		return nil
	}
	event.Handler, event.UsesEvent = handler, usesEvent
	return event
}

// parsePropertyName splits `attr.x`, `class.x` and `style.x.unit`.
func parsePropertyName(name string) (string, BindingType, string) {
	parts := strings.Split(name, PROPERTY_PARTS_SEPARATOR)
	switch {
	case len(parts) == 1 && parts[0] == CLASS_PREFIX:
		return name, BindingTypeClassMap, ""
	case len(parts) == 1 && parts[0] == STYLE_PREFIX:
		return name, BindingTypeStyleMap, ""
	case len(parts) > 1 && parts[0] == ATTRIBUTE_PREFIX:
		return strings.Join(parts[1:], PROPERTY_PARTS_SEPARATOR), BindingTypeAttribute, ""
	case len(parts) > 1 && parts[0] == CLASS_PREFIX:
		return strings.Join(parts[1:], PROPERTY_PARTS_SEPARATOR), BindingTypeClass, ""
	case len(parts) > 1 && parts[0] == STYLE_PREFIX:
		unit := ""
		if len(parts) > 2 {
			unit = parts[2]
		}
		return parts[1], BindingTypeStyle, unit
	}
	return name, BindingTypeProperty, ""
}

// splitStatements splits an action on the semicolons outside of strings,
// brackets and template literals.
func splitStatements(value string) []string {
	var parts []string
	depth := 0
	var quote byte
	start := 0
	for i := 0; i < len(value); i++ {
		c := value[i]
		if quote != 0 {
			if c == '\\' {
				i++
			} else if c == quote {
				quote = 0
			}
			continue
		}
		switch c {
		case '\'', '"', '`':
			quote = c
		case '(', '[', '{':
			depth++
		case ')', ']', '}':
			depth--
		case ';':
			if depth == 0 {
				parts = append(parts, value[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, value[start:])
}

// parse reads one expression and rewrites it against the implicit receiver.
func (bp *BindingParser) parse(value string, isAction bool, sourceSpan *util.ParseSourceSpan) (output.Expression, bool, bool) {
	source := strings.TrimSpace(value)
	if source == "" {
		bp.reportError("Empty expressions are not allowed", sourceSpan)
		return nil, false, false
	}
	f, node, err := tsparser.ParseExpression(bp.ctx, source)
	if err != nil {
		bp.reportError(fmt.Sprintf("Parser Error: Unexpected token in [%s]", source), sourceSpan)
		return nil, false, false
	}
	defer f.Close()

	r := &rewriter{file: f, isAction: isAction}
	r.visit(node, map[string]bool{})
	if r.err != "" {
		bp.reportError(fmt.Sprintf("Parser Error: %s in [%s]", r.err, source), sourceSpan)
		return nil, false, false
	}
	return output.Wrap(&tsast.Raw{Text: r.apply(node), Primary: tsparser.IsPrimary(node)}), r.usesEvent, true
}

type edit struct {
	start, end uint32
	text       string
}

// rewriter prefixes the free names of an expression with the implicit
// receiver.
type rewriter struct {
	file      *tsparser.File
	isAction  bool
	edits     []edit
	usesEvent bool
	err       string
}

func (r *rewriter) fail(message string) {
	if r.err == "" {
		r.err = message
	}
}

func (r *rewriter) visit(n *sitter.Node, locals map[string]bool) {
	switch n.Type() {
	case "identifier":
		name := r.file.Text(n)
		switch {
		case locals[name]:
		case name == EventName && r.isAction:
			r.usesEvent = true
		default:
			r.edits = append(r.edits, edit{n.StartByte(), n.EndByte(), ImplicitReceiver + "." + name})
		}
		return
	case "this":
		r.edits = append(r.edits, edit{n.StartByte(), n.EndByte(), ImplicitReceiver})
		return
	case "shorthand_property_identifier":
		name := r.file.Text(n)
		value := ImplicitReceiver + "." + name
		if locals[name] || (name == EventName && r.isAction) {
			value = name
			r.usesEvent = r.usesEvent || name == EventName
		}
		r.edits = append(r.edits, edit{n.StartByte(), n.EndByte(), name + ": " + value})
		return
	case "binary_expression":
		if op := n.ChildByFieldName("operator"); op != nil && op.Type() == "|" {
			r.fail("pipes are not supported")
			return
		}
	case "assignment_expression", "augmented_assignment_expression", "update_expression":
		if !r.isAction {
			r.fail("Bindings cannot contain assignments")
			return
		}
	case "arrow_function", "function_expression", "function":
		r.visitFunction(n, locals)
		return
	}
	for _, child := range tsparser.NamedChildren(n) {
		r.visit(child, locals)
	}
}

// visitFunction rewrites a function body with the parameters bound.
func (r *rewriter) visitFunction(n *sitter.Node, locals map[string]bool) {
	scope := make(map[string]bool, len(locals))
	for name := range locals {
		scope[name] = true
	}
	var params *sitter.Node
	if p := n.ChildByFieldName("parameter"); p != nil {
		params = p
	} else {
		params = n.ChildByFieldName("parameters")
	}
	r.collectNames(params, scope)
	if body := n.ChildByFieldName("body"); body != nil {
		r.visit(body, scope)
	}
}

func (r *rewriter) collectNames(n *sitter.Node, scope map[string]bool) {
	if n == nil {
		return
	}
	switch n.Type() {
	case "identifier", "shorthand_property_identifier_pattern":
		scope[r.file.Text(n)] = true
		return
	case "type_annotation":
		return
	}
	for _, child := range tsparser.NamedChildren(n) {
		r.collectNames(child, scope)
	}
}

// apply returns the text of n with the edits applied. Edits are in source
// order and never overlap.
func (r *rewriter) apply(n *sitter.Node) string {
	var sb strings.Builder
	pos := n.StartByte()
	for _, e := range r.edits {
		sb.Write(r.file.Source[pos:e.start])
		sb.WriteString(e.text)
		pos = e.end
	}
	sb.Write(r.file.Source[pos:n.EndByte()])
	return sb.String()
}

package render3

import (
	"fmt"
	"strings"

	"ngc-lite/packages/compiler/core"
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/render3/view"
	"ngc-lite/packages/compiler/template_parser"
)

// ParsedHostBindings holds the entries of a `host` object sorted by kind.
type ParsedHostBindings struct {
	// Attributes are static attributes other than class and style.
	Attributes []HostEntry
	// Listeners are keyed by event name, Properties by property name.
	Listeners  []HostEntry
	Properties []HostEntry
	ClassAttr  string
	StyleAttr  string
}

// ParseHostBindings sorts host entries: `(event)` keys are listeners,
// `[prop]` keys are property bindings and the rest are static attributes.
func ParseHostBindings(host []HostEntry) *ParsedHostBindings {
	parsed := &ParsedHostBindings{}
	for _, entry := range host {
		key := entry.Key
		switch {
		case strings.HasPrefix(key, "[") && strings.HasSuffix(key, "]") && len(key) > 2:
			parsed.Properties = append(parsed.Properties, HostEntry{Key: key[1 : len(key)-1], Value: entry.Value})
		case strings.HasPrefix(key, "(") && strings.HasSuffix(key, ")") && len(key) > 2:
			parsed.Listeners = append(parsed.Listeners, HostEntry{Key: key[1 : len(key)-1], Value: entry.Value})
		case key == "class":
			parsed.ClassAttr = entry.Value
		case key == "style":
			parsed.StyleAttr = entry.Value
		default:
			parsed.Attributes = append(parsed.Attributes, entry)
		}
	}
	return parsed
}

// hostAttrs builds the static host attribute array, e.g.
// `["role", "button", 1, "a", "b"]`.
func (h *ParsedHostBindings) hostAttrs() output.Expression {
	var attrs []interface{}
	for _, attr := range h.Attributes {
		attrs = append(attrs, attr.Key, attr.Value)
	}
	if classes := strings.Fields(h.ClassAttr); len(classes) > 0 {
		attrs = append(attrs, core.AttributeMarkerClasses)
		for _, c := range classes {
			attrs = append(attrs, c)
		}
	}
	if styles := view.ParseStyle(h.StyleAttr); len(styles) > 0 {
		attrs = append(attrs, core.AttributeMarkerStyles)
		for _, s := range styles {
			attrs = append(attrs, s)
		}
	}
	if len(attrs) == 0 {
		return nil
	}
	return view.AsLiteral(attrs)
}

// createHostBindings adds `hostAttrs`, `hostVars` and `hostBindings` to the
// definition of a directive.
func createHostBindings(definitionMap *view.DefinitionMap, meta *R3DirectiveMetadata, bindingParser *template_parser.BindingParser) {
	host := ParseHostBindings(meta.Host)
	definitionMap.Set("hostAttrs", host.hostAttrs())

	var createStatements []output.Statement
	for _, listener := range host.Listeners {
		event := bindingParser.ParseEvent(listener.Key, listener.Value, nil)
		if event == nil {
			continue
		}
		fnName := fmt.Sprintf("%s_%s_HostBindingHandler", meta.Name, event.Name)
		createStatements = append(createStatements, view.ListenerInstruction(event, fnName))
	}

	var ops []view.UpdateOp
	for _, property := range host.Properties {
		prop := bindingParser.ParsePropertyBinding(property.Key, property.Value, nil)
		if prop == nil {
			continue
		}
		ops = append(ops, view.PropertyUpdate(prop, true))
	}
	vars := 0
	var updateStatements []output.Statement
	for _, op := range view.OrderUpdates(ops) {
		updateStatements = append(updateStatements, op.Stmt)
		vars += op.Vars
	}

	if len(createStatements) == 0 && len(updateStatements) == 0 {
		return
	}
	if vars > 0 {
		definitionMap.Set("hostVars", output.Literal(vars))
	}
	definitionMap.Set("hostBindings", output.Fn(
		output.Params(view.RENDER_FLAGS, view.CONTEXT_NAME),
		view.RenderFunctionBody(createStatements, updateStatements),
		meta.Name+"_HostBindings",
	))
}

// Package annotations reads the framework decorators of a class: the
// metadata record of a decorator call, the signal declarations among the
// class members, and the external resources a component references.
package annotations

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"ngc-lite/packages/compiler/core"
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/tsast"
	"ngc-lite/packages/compiler/tsparser"
	"ngc-lite/packages/compiler/util"
)

// Kind identifies a framework decorator.
type Kind int

const (
	KindUnknown Kind = iota
	KindComponent
	KindDirective
	KindPipe
	KindInjectable
)

// KindOf maps the call target of a decorator to its kind. The match is on the
// full call-target text, so `core.Component` is not recognized.
func KindOf(name string) Kind {
	switch name {
	case "Component":
		return KindComponent
	case "Directive":
		return KindDirective
	case "Pipe":
		return KindPipe
	case "Injectable":
		return KindInjectable
	}
	return KindUnknown
}

func (k Kind) String() string {
	switch k {
	case KindComponent:
		return "Component"
	case KindDirective:
		return "Directive"
	case KindPipe:
		return "Pipe"
	case KindInjectable:
		return "Injectable"
	}
	return "Unknown"
}

// DefinitionField is the static member holding the compiled definition.
func (k Kind) DefinitionField() string {
	switch k {
	case KindComponent:
		return "ɵcmp"
	case KindDirective:
		return "ɵdir"
	case KindPipe:
		return "ɵpipe"
	case KindInjectable:
		return "ɵprov"
	}
	return ""
}

// FactoryTarget is the factory flavor for classes of this kind.
func (k Kind) FactoryTarget() core.FactoryTarget {
	switch k {
	case KindComponent:
		return core.FactoryTargetComponent
	case KindDirective:
		return core.FactoryTargetDirective
	case KindPipe:
		return core.FactoryTargetPipe
	}
	return core.FactoryTargetInjectable
}

// Binding maps a class property to its public binding name, as declared in a
// decorator's `inputs` or `outputs` array.
type Binding struct {
	Property string
	Name     string
	Required bool
}

// HostEntry is one key of the `host` object, values are raw text.
type HostEntry struct {
	Key   string
	Value string
}

// Reference is an element of an array of class references such as
// `imports`. Name is set when the element is a plain identifier.
type Reference struct {
	Name string
	Expr output.Expression
}

// Metadata is the normalized content of a decorator call.
type Metadata struct {
	Selector    string
	HasSelector bool

	// Template is nil when no inline template was given.
	Template    *string
	TemplateURL string
	Styles      []string
	StyleURLs   []string

	Imports []Reference
	// Providers, ViewProviders and Animations pass the argument through
	// untouched. Nil when absent.
	Providers     output.Expression
	ViewProviders output.Expression
	Animations    output.Expression

	Host    []HostEntry
	Inputs  []Binding
	Outputs []Binding

	ExportAs []string

	// Pipe name.
	Name string
	Pure bool

	ProvidedIn string

	Standalone          bool
	PreserveWhitespaces bool
	ChangeDetection     core.ChangeDetectionStrategy
	Encapsulation       core.ViewEncapsulation

	// Extra holds unrecognized keys as raw text with quotes stripped.
	Extra map[string]string
}

// DefaultMetadata returns the record used when a decorator has no object
// argument.
func DefaultMetadata() *Metadata {
	return &Metadata{
		Pure:            true,
		ProvidedIn:      "root",
		Standalone:      true,
		ChangeDetection: core.ChangeDetectionStrategyDefault,
		Encapsulation:   core.ViewEncapsulationEmulated,
		Extra:           map[string]string{},
	}
}

var quoteStripper = strings.NewReplacer("'", "", `"`, "", "`", "")

func stripQuotes(s string) string {
	return quoteStripper.Replace(s)
}

// ExtractMetadata reads the object literal passed to a decorator. Arguments
// of an unexpected shape are skipped and leave the default in place.
func ExtractMetadata(f *tsparser.File, d *tsparser.Decorator) *Metadata {
	return ExtractMetadataInto(f, d, DefaultMetadata())
}

// ExtractMetadataInto reads a decorator argument over a record whose fields
// hold the defaults.
func ExtractMetadataInto(f *tsparser.File, d *tsparser.Decorator, meta *Metadata) *Metadata {
	if meta.Extra == nil {
		meta.Extra = map[string]string{}
	}
	if d == nil || len(d.Args) == 0 {
		return meta
	}
	for _, prop := range f.ObjectProperties(d.Args[0]) {
		meta.set(f, prop.Key, prop.Value)
	}
	return meta
}

func (m *Metadata) set(f *tsparser.File, key string, value *sitter.Node) {
	text := f.Text(value)
	switch key {
	case "selector":
		m.Selector = stringOrText(f, value)
		m.HasSelector = true
	case "template":
		tpl := stringOrText(f, value)
		m.Template = &tpl
	case "templateUrl":
		m.TemplateURL = stringOrText(f, value)
	case "styles":
		m.Styles = stringList(f, value)
	case "styleUrls":
		m.StyleURLs = stringList(f, value)
	case "styleUrl":
		m.StyleURLs = []string{stringOrText(f, value)}
	case "imports":
		m.Imports = references(f, value)
	case "providers":
		m.Providers = Passthrough(f, value)
	case "viewProviders":
		m.ViewProviders = Passthrough(f, value)
	case "animations":
		m.Animations = Passthrough(f, value)
	case "host":
		for _, hp := range f.ObjectProperties(value) {
			m.Host = append(m.Host, HostEntry{Key: hp.Key, Value: stringOrText(f, hp.Value)})
		}
	case "inputs":
		m.Inputs = bindings(f, value)
	case "outputs":
		m.Outputs = bindings(f, value)
	case "exportAs":
		for _, name := range strings.Split(stringOrText(f, value), ",") {
			if name = strings.TrimSpace(name); name != "" {
				m.ExportAs = append(m.ExportAs, name)
			}
		}
	case "name":
		m.Name = stringOrText(f, value)
	case "pure":
		m.Pure = boolOr(f, value, m.Pure)
	case "standalone":
		m.Standalone = boolOr(f, value, m.Standalone)
	case "preserveWhitespaces":
		m.PreserveWhitespaces = boolOr(f, value, m.PreserveWhitespaces)
	case "providedIn":
		m.ProvidedIn = stringOrText(f, value)
	case "changeDetection":
		if strings.Contains(text, "OnPush") {
			m.ChangeDetection = core.ChangeDetectionStrategyOnPush
		} else {
			m.ChangeDetection = core.ChangeDetectionStrategyDefault
		}
	case "encapsulation":
		switch {
		case strings.Contains(text, "None"):
			m.Encapsulation = core.ViewEncapsulationNone
		case strings.Contains(text, "IsolatedShadowDom"):
			m.Encapsulation = core.ViewEncapsulationExperimentalIsolatedShadowDom
		case strings.Contains(text, "ShadowDom"):
			m.Encapsulation = core.ViewEncapsulationShadowDom
		default:
			m.Encapsulation = core.ViewEncapsulationEmulated
		}
	default:
		m.Extra[key] = stripQuotes(text)
	}
}

// Passthrough wraps a source expression so it is emitted verbatim.
func Passthrough(f *tsparser.File, n *sitter.Node) output.Expression {
	return output.Wrap(&tsast.Raw{Text: f.Dedented(n), Primary: tsparser.IsPrimary(n)})
}

func stringOrText(f *tsparser.File, n *sitter.Node) string {
	if s, ok := f.StringValue(n); ok {
		return s
	}
	return stripQuotes(f.Text(n))
}

func boolOr(f *tsparser.File, n *sitter.Node, def bool) bool {
	if b, ok := f.BoolValue(n); ok {
		return b
	}
	return def
}

// stringList accepts an array of strings or a single string.
func stringList(f *tsparser.File, n *sitter.Node) []string {
	elements, ok := f.ArrayElements(n)
	if !ok {
		return []string{stringOrText(f, n)}
	}
	list := make([]string, 0, len(elements))
	for _, e := range elements {
		list = append(list, stringOrText(f, e))
	}
	return list
}

func references(f *tsparser.File, n *sitter.Node) []Reference {
	elements, ok := f.ArrayElements(n)
	if !ok {
		return nil
	}
	refs := make([]Reference, 0, len(elements))
	for _, e := range elements {
		ref := Reference{Expr: Passthrough(f, e)}
		if e.Type() == "identifier" {
			ref.Name = f.Text(e)
		}
		refs = append(refs, ref)
	}
	return refs
}

// bindings reads `['prop', 'prop: alias', {name: 'prop', alias: 'x'}]`.
func bindings(f *tsparser.File, n *sitter.Node) []Binding {
	elements, ok := f.ArrayElements(n)
	if !ok {
		return nil
	}
	var list []Binding
	for _, e := range elements {
		if e.Type() == "object" {
			var b Binding
			for _, p := range f.ObjectProperties(e) {
				switch p.Key {
				case "name":
					b.Property = stringOrText(f, p.Value)
				case "alias":
					b.Name = stringOrText(f, p.Value)
				case "required":
					b.Required = boolOr(f, p.Value, false)
				}
			}
			if b.Property == "" {
				continue
			}
			if b.Name == "" {
				b.Name = b.Property
			}
			list = append(list, b)
			continue
		}
		prop, alias := splitBinding(stringOrText(f, e))
		if prop != "" {
			list = append(list, Binding{Property: prop, Name: alias})
		}
	}
	return list
}

func splitBinding(s string) (string, string) {
	s = strings.TrimSpace(s)
	parts := util.SplitAtColon(s, []string{s, s})
	return parts[0], parts[1]
}

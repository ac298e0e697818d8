package annotations

import (
	"fmt"

	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/tsast"
)

// DefaultRawSuffix asks the bundler for the raw text of an imported file.
const DefaultRawSuffix = "?raw"

// Resources are the imports synthesized for a component's external template
// and stylesheets.
type Resources struct {
	Imports []*tsast.ImportDeclaration
	// StyleSymbols are the identifiers bound to the imported stylesheets, in
	// source order.
	StyleSymbols []string
	// TemplateVar is the identifier bound to the external template. Empty
	// when the template is inline.
	TemplateVar string
}

// ResolveResources names one default import per external resource:
// `<Class>_Template` for templateUrl, imported with rawSuffix appended to the
// URL, and `<Class>_Style_<i>` for each stylesheet URL.
func ResolveResources(meta *Metadata, className, rawSuffix string) *Resources {
	res := &Resources{}
	if meta.TemplateURL != "" {
		res.TemplateVar = className + "_Template"
		res.Imports = append(res.Imports, &tsast.ImportDeclaration{
			Default: res.TemplateVar,
			Module:  meta.TemplateURL + rawSuffix,
		})
	}
	for i, url := range meta.StyleURLs {
		sym := fmt.Sprintf("%s_Style_%d", className, i)
		res.StyleSymbols = append(res.StyleSymbols, sym)
		res.Imports = append(res.Imports, &tsast.ImportDeclaration{Default: sym, Module: url})
	}
	return res
}

// Styles lists the inline styles as literals followed by the imported
// stylesheets as variable reads.
func (r *Resources) Styles(inline []string) []output.Expression {
	styles := make([]output.Expression, 0, len(inline)+len(r.StyleSymbols))
	for _, s := range inline {
		styles = append(styles, output.Literal(s))
	}
	for _, sym := range r.StyleSymbols {
		styles = append(styles, output.Variable(sym))
	}
	return styles
}

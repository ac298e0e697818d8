package render3

import (
	"fmt"

	"ngc-lite/packages/compiler/core"
	"ngc-lite/packages/compiler/css"
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/render3/r3_identifiers"
	"ngc-lite/packages/compiler/render3/view"
	"ngc-lite/packages/compiler/util"
)

// CompileDirectiveFromMetadata compiles a directive definition from metadata
func CompileDirectiveFromMetadata(meta *R3DirectiveMetadata, ctx *Context) R3CompiledExpression {
	known := len(ctx.BindingParser.Errors)
	definitionMap, errors := baseDirectiveFields(meta, ctx)
	addFeatures(definitionMap, meta.Providers, nil)
	errors = append(errors, ctx.BindingParser.Errors[known:]...)
	return R3CompiledExpression{
		Expression: output.Call(output.ImportExpr(r3_identifiers.DefineDirective), definitionMap.ToLiteralMap()),
		Errors:     errors,
	}
}

// CompileComponentFromMetadata compiles a component definition from
// metadata, template included.
func CompileComponentFromMetadata(meta *R3ComponentMetadata, ctx *Context) R3CompiledExpression {
	known := len(ctx.BindingParser.Errors)
	definitionMap, errors := baseDirectiveFields(&meta.R3DirectiveMetadata, ctx)
	addFeatures(definitionMap, meta.Providers, meta.ViewProviders)
	errors = append(errors, ctx.BindingParser.Errors[known:]...)

	imported := map[string]bool{}
	for _, declaration := range meta.Declarations {
		if declaration.Name != "" {
			imported[declaration.Name] = true
		}
	}
	var matcher *css.SelectorMatcher[string]
	if ctx.Registry != nil && ctx.Registry.Len() > 0 {
		matcher = ctx.Registry.Matcher()
	}
	template := view.CompileTemplate(view.TemplateOptions{
		ComponentName:       meta.Name,
		Template:            meta.Template.Source,
		TemplateURL:         meta.Template.URL,
		PreserveWhitespaces: meta.Template.PreserveWhitespaces,
		Matcher:             matcher,
		Imported:            imported,
	}, ctx.BindingParser)
	errors = append(errors, template.Errors...)

	// e.g. `decls: 2`
	definitionMap.Set("decls", output.Literal(template.Decls))
	// e.g. `vars: 2`
	definitionMap.Set("vars", output.Literal(template.Vars))
	if len(template.Consts) > 0 {
		definitionMap.Set("consts", output.LiteralArr(template.Consts...))
	}
	definitionMap.Set("template", template.Fn)

	if len(meta.Declarations) > 0 {
		dependencies := make([]output.Expression, len(meta.Declarations))
		for i, declaration := range meta.Declarations {
			dependencies[i] = declaration.Expr
		}
		definitionMap.Set("dependencies", output.LiteralArr(dependencies...))
	}

	encapsulation := meta.Encapsulation
	if len(meta.Styles) > 0 {
		definitionMap.Set("styles", output.LiteralArr(meta.Styles...))
	} else if encapsulation == core.ViewEncapsulationEmulated {
		// Without styles there is nothing to scope.
		encapsulation = core.ViewEncapsulationNone
	}
	// Only set view encapsulation if it's not the default value
	if encapsulation != core.ViewEncapsulationEmulated {
		definitionMap.Set("encapsulation", output.Literal(int(encapsulation)))
	}

	// e.g. `data: {animation: [trigger('123', [])]}`
	if meta.Animations != nil {
		definitionMap.Set("data", output.LiteralMap(output.Entry("animation", meta.Animations)))
	}

	// Only set the change detection flag if it's defined and it's not the default.
	if meta.ChangeDetection != core.ChangeDetectionStrategyDefault {
		definitionMap.Set("changeDetection", output.Literal(int(meta.ChangeDetection)))
	}

	return R3CompiledExpression{
		Expression: output.Call(output.ImportExpr(r3_identifiers.DefineComponent), definitionMap.ToLiteralMap()),
		Errors:     errors,
	}
}

// baseDirectiveFields creates the definition fields shared by directives and
// components.
func baseDirectiveFields(meta *R3DirectiveMetadata, ctx *Context) (*view.DefinitionMap, []*util.ParseError) {
	var errors []*util.ParseError
	definitionMap := view.NewDefinitionMap()

	// e.g. `type: MyDirective`
	definitionMap.Set("type", meta.Type.Value)

	// e.g. `selectors: [['', 'someDir', '']]`
	if meta.Selector != "" {
		selectors, err := css.ParseSelectorToR3Selector(meta.Selector)
		if err != nil {
			errors = append(errors, util.NewParseError(nil, fmt.Sprintf("%s: invalid selector %q: %v", meta.Name, meta.Selector, err)))
		} else {
			definitionMap.Set("selectors", view.AsLiteral(selectors))
		}
	}

	// e.g. `contentQueries: (rf, ctx, dirIndex) => { ... }`
	if len(meta.Queries) > 0 {
		definitionMap.Set("contentQueries", CreateContentQueriesFunction(meta.Queries, ctx.ConstantPool, meta.Name))
	}

	// e.g. `viewQuery: (rf, ctx) => { ... }`
	if len(meta.ViewQueries) > 0 {
		definitionMap.Set("viewQuery", CreateViewQueriesFunction(meta.ViewQueries, ctx.ConstantPool, meta.Name))
	}

	// e.g. `hostBindings: (rf, ctx) => { ... }`
	createHostBindings(definitionMap, meta, ctx.BindingParser)

	// e.g. `inputs: {a: 'a'}`
	definitionMap.Set("inputs", createInputsLiteral(meta.Inputs))

	// e.g. `outputs: {a: 'a'}`
	definitionMap.Set("outputs", createOutputsLiteral(meta.Outputs))

	if len(meta.ExportAs) > 0 {
		definitionMap.Set("exportAs", view.AsLiteral(meta.ExportAs))
	}

	if !meta.IsStandalone {
		definitionMap.Set("standalone", output.Literal(false))
	}
	return definitionMap, errors
}

// addFeatures adds the `features` field, e.g.
// `features: [ɵɵProvidersFeature([MyService])]`.
func addFeatures(definitionMap *view.DefinitionMap, providers, viewProviders output.Expression) {
	if providers == nil && viewProviders == nil {
		return
	}
	args := []output.Expression{}
	if providers != nil {
		args = append(args, providers)
	} else {
		args = append(args, output.LiteralArr())
	}
	if viewProviders != nil {
		args = append(args, viewProviders)
	}
	feature := output.Call(output.ImportExpr(r3_identifiers.ProvidersFeature), args...)
	definitionMap.Set("features", output.LiteralArr(feature))
}

func bindingKey(name string) *output.LiteralMapEntry {
	return &output.LiteralMapEntry{Key: name, Quoted: view.UNSAFE_OBJECT_KEY_NAME_REGEXP.MatchString(name)}
}

// createInputsLiteral maps each input's class property to its public name.
// Signal and aliased inputs carry flags: `prop: [1, "public", "prop"]`.
func createInputsLiteral(inputs []R3InputMetadata) output.Expression {
	if len(inputs) == 0 {
		return nil
	}
	entries := make([]*output.LiteralMapEntry, len(inputs))
	for i, input := range inputs {
		entry := bindingKey(input.ClassPropertyName)
		differentDeclaringName := input.BindingPropertyName != input.ClassPropertyName
		flags := core.InputFlagsNone
		if input.IsSignal {
			flags |= core.InputFlagsSignalBased
		}
		if differentDeclaringName || flags != core.InputFlagsNone {
			value := []output.Expression{output.Literal(int(flags)), output.Literal(input.BindingPropertyName)}
			if differentDeclaringName {
				value = append(value, output.Literal(input.ClassPropertyName))
			}
			entry.Value = output.LiteralArr(value...)
		} else {
			entry.Value = output.Literal(input.BindingPropertyName)
		}
		entries[i] = entry
	}
	return output.LiteralMap(entries...)
}

// createOutputsLiteral maps each output's class property to its public name.
func createOutputsLiteral(outputs []R3OutputMetadata) output.Expression {
	if len(outputs) == 0 {
		return nil
	}
	entries := make([]*output.LiteralMapEntry, len(outputs))
	for i, out := range outputs {
		entry := bindingKey(out.ClassPropertyName)
		entry.Value = output.Literal(out.BindingPropertyName)
		entries[i] = entry
	}
	return output.LiteralMap(entries...)
}

package compiler

import (
	"ngc-lite/packages/compiler/annotations"
	"ngc-lite/packages/compiler/render3"
)

// mergeInputs lays signal inputs over the decorator's `inputs` array. On the
// same class property the signal entry wins and keeps the earlier position.
func mergeInputs(declared []annotations.Binding, signals []*annotations.InputSignal) []render3.R3InputMetadata {
	var inputs []render3.R3InputMetadata
	index := map[string]int{}
	put := func(input render3.R3InputMetadata) {
		if i, ok := index[input.ClassPropertyName]; ok {
			inputs[i] = input
			return
		}
		index[input.ClassPropertyName] = len(inputs)
		inputs = append(inputs, input)
	}
	for _, b := range declared {
		put(render3.R3InputMetadata{ClassPropertyName: b.Property, BindingPropertyName: b.Name, Required: b.Required})
	}
	for _, s := range signals {
		put(render3.R3InputMetadata{
			ClassPropertyName:   s.ClassPropertyName,
			BindingPropertyName: s.BindingPropertyName,
			Required:            s.Required,
			IsSignal:            s.IsSignal,
		})
	}
	return inputs
}

// mergeOutputs lays signal outputs over the decorator's `outputs` array, the
// same way mergeInputs does.
func mergeOutputs(declared []annotations.Binding, signals []*annotations.OutputSignal) []render3.R3OutputMetadata {
	var outputs []render3.R3OutputMetadata
	index := map[string]int{}
	put := func(out render3.R3OutputMetadata) {
		if i, ok := index[out.ClassPropertyName]; ok {
			outputs[i] = out
			return
		}
		index[out.ClassPropertyName] = len(outputs)
		outputs = append(outputs, out)
	}
	for _, b := range declared {
		put(render3.R3OutputMetadata{ClassPropertyName: b.Property, BindingPropertyName: b.Name})
	}
	for _, s := range signals {
		put(render3.R3OutputMetadata{ClassPropertyName: s.ClassPropertyName, BindingPropertyName: s.BindingPropertyName})
	}
	return outputs
}

func queries(signals []*annotations.QuerySignal) []render3.R3QueryMetadata {
	var queries []render3.R3QueryMetadata
	for _, q := range signals {
		queries = append(queries, render3.R3QueryMetadata{
			PropertyName:            q.PropertyName,
			First:                   q.First,
			Predicate:               q.Predicate,
			PredicateExpr:           q.PredicateExpr,
			Descendants:             q.Descendants,
			Read:                    q.Read,
			EmitDistinctChangesOnly: true,
		})
	}
	return queries
}

// directiveMetadata assembles the directive part of a definition. Only
// components have a view, so view queries are kept for them alone.
func directiveMetadata(name string, ref render3.R3Reference, meta *annotations.Metadata, signals *annotations.Signals, withView bool) *render3.R3DirectiveMetadata {
	directive := &render3.R3DirectiveMetadata{
		Name:         name,
		Type:         ref,
		Selector:     meta.Selector,
		Queries:      queries(signals.ContentQueries),
		Inputs:       mergeInputs(meta.Inputs, signals.Inputs),
		Outputs:      mergeOutputs(meta.Outputs, signals.Outputs),
		ExportAs:     meta.ExportAs,
		IsStandalone: meta.Standalone,
		Providers:    meta.Providers,
	}
	if withView {
		directive.ViewQueries = queries(signals.ViewQueries)
	}
	for _, entry := range meta.Host {
		directive.Host = append(directive.Host, render3.HostEntry{Key: entry.Key, Value: entry.Value})
	}
	return directive
}

func componentMetadata(name string, ref render3.R3Reference, meta *annotations.Metadata, signals *annotations.Signals, resources *annotations.Resources) *render3.R3ComponentMetadata {
	component := &render3.R3ComponentMetadata{
		R3DirectiveMetadata: *directiveMetadata(name, ref, meta, signals, true),
		Template: render3.R3TemplateMetadata{
			URL:                 meta.TemplateURL,
			PreserveWhitespaces: meta.PreserveWhitespaces,
		},
		Styles:          resources.Styles(meta.Styles),
		Encapsulation:   meta.Encapsulation,
		ChangeDetection: meta.ChangeDetection,
		Animations:      meta.Animations,
		ViewProviders:   meta.ViewProviders,
	}
	if meta.Template != nil && meta.TemplateURL == "" {
		component.Template.Source = *meta.Template
	}
	for _, ref := range meta.Imports {
		component.Declarations = append(component.Declarations, render3.R3Declaration{Name: ref.Name, Expr: ref.Expr})
	}
	return component
}

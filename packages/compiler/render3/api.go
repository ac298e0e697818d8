// Package render3 compiles normalized class metadata into the static
// definitions the framework runtime reads: factories, component, directive,
// pipe and injectable definitions.
package render3

import (
	"ngc-lite/packages/compiler/core"
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/pool"
	"ngc-lite/packages/compiler/template_parser"
)

// R3InputMetadata describes one input of a directive.
type R3InputMetadata struct {
	ClassPropertyName   string
	BindingPropertyName string
	Required            bool
	// IsSignal marks inputs declared with `input()` or `model()`.
	IsSignal bool
}

// R3OutputMetadata describes one output of a directive.
type R3OutputMetadata struct {
	ClassPropertyName   string
	BindingPropertyName string
}

// R3QueryMetadata describes a signal-based view or content query.
type R3QueryMetadata struct {
	PropertyName string
	// First is true for single-result queries (`viewChild`).
	First bool
	// Predicate holds string predicates, PredicateExpr a type predicate.
	// Exactly one of them is set.
	Predicate     []string
	PredicateExpr output.Expression
	Descendants   bool
	Read          output.Expression
	// EmitDistinctChangesOnly is always on for signal queries.
	EmitDistinctChangesOnly bool
}

// HostEntry is one key of a `host` object with its raw value.
type HostEntry struct {
	Key   string
	Value string
}

// R3DirectiveMetadata is the information needed to compile a directive.
type R3DirectiveMetadata struct {
	Name     string
	Type     R3Reference
	Selector string

	Queries     []R3QueryMetadata
	ViewQueries []R3QueryMetadata

	Host []HostEntry

	Inputs  []R3InputMetadata
	Outputs []R3OutputMetadata

	ExportAs     []string
	IsStandalone bool
	// Providers is nil when the directive has no providers.
	Providers output.Expression
}

// R3TemplateMetadata is the template of a component.
type R3TemplateMetadata struct {
	Source string
	// URL is set when the template lives in its own file. The source is
	// then unknown at compile time.
	URL                 string
	PreserveWhitespaces bool
}

// R3Declaration is an entry of a component's imports.
type R3Declaration struct {
	// Name is set when the entry is a plain class name.
	Name string
	Expr output.Expression
}

// R3ComponentMetadata is the information needed to compile a component.
type R3ComponentMetadata struct {
	R3DirectiveMetadata

	Template     R3TemplateMetadata
	Declarations []R3Declaration
	// Styles are the inline and imported styles, in order.
	Styles          []output.Expression
	Encapsulation   core.ViewEncapsulation
	ChangeDetection core.ChangeDetectionStrategy
	Animations      output.Expression
	ViewProviders   output.Expression
}

// R3PipeMetadata contains metadata for a pipe
type R3PipeMetadata struct {
	// Name of the pipe type
	Name string
	Type R3Reference
	// PipeName is the name templates use, defaults to Name.
	PipeName     string
	Pure         bool
	IsStandalone bool
}

// R3InjectableMetadata contains metadata for an injectable
type R3InjectableMetadata struct {
	Name string
	Type R3Reference
	// ProvidedIn is nil for `providedIn: null`.
	ProvidedIn output.Expression
}

// R3FactoryMetadata describes the factory of a class. The class takes no
// constructor dependencies.
type R3FactoryMetadata struct {
	Name   string
	Type   R3Reference
	Target core.FactoryTarget
}

// Context carries the per-file state shared by every compilation of one
// source file.
type Context struct {
	ConstantPool  *pool.ConstantPool
	BindingParser *template_parser.BindingParser
	Registry      *SelectorRegistry
}

// MetadataCompiler turns normalized metadata into definition expressions.
type MetadataCompiler interface {
	CompileFactory(meta *R3FactoryMetadata, ctx *Context) R3CompiledExpression
	CompileComponent(meta *R3ComponentMetadata, ctx *Context) R3CompiledExpression
	CompileDirective(meta *R3DirectiveMetadata, ctx *Context) R3CompiledExpression
	CompilePipe(meta *R3PipeMetadata, ctx *Context) R3CompiledExpression
	CompileInjectable(meta *R3InjectableMetadata, ctx *Context) R3CompiledExpression
}

// DefaultCompiler is the built-in MetadataCompiler.
type DefaultCompiler struct{}

var _ MetadataCompiler = DefaultCompiler{}

func (DefaultCompiler) CompileFactory(meta *R3FactoryMetadata, ctx *Context) R3CompiledExpression {
	return CompileFactoryFunction(meta)
}

func (DefaultCompiler) CompileComponent(meta *R3ComponentMetadata, ctx *Context) R3CompiledExpression {
	return CompileComponentFromMetadata(meta, ctx)
}

func (DefaultCompiler) CompileDirective(meta *R3DirectiveMetadata, ctx *Context) R3CompiledExpression {
	return CompileDirectiveFromMetadata(meta, ctx)
}

func (DefaultCompiler) CompilePipe(meta *R3PipeMetadata, ctx *Context) R3CompiledExpression {
	return CompilePipeFromMetadata(meta)
}

func (DefaultCompiler) CompileInjectable(meta *R3InjectableMetadata, ctx *Context) R3CompiledExpression {
	return CompileInjectable(meta)
}

package compiler

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ngc-lite/packages/compiler/annotations"
	"ngc-lite/packages/compiler/core"
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/pool"
	"ngc-lite/packages/compiler/render3"
	"ngc-lite/packages/compiler/template_parser"
	"ngc-lite/packages/compiler/tsast"
	"ngc-lite/packages/compiler/tsparser"
	"ngc-lite/packages/compiler/util"
)

// compileContext is the state of one Compile call. Nothing in it outlives
// the call.
type compileContext struct {
	ctx      context.Context
	compiler *Compiler
	file     *tsparser.File
	logger   *zap.Logger

	constantPool *pool.ConstantPool
	registry     *render3.SelectorRegistry

	imports []*tsast.ImportDeclaration
	classes []ClassSummary
	errors  []*util.ParseError
}

func isClassDeclaration(class *tsparser.Class) bool {
	return class.Name != "" && class.Node.Type() != "class"
}

// buildRegistry records the selector of the first decorator of every
// top-level decorated class. Only the first token of a selector list is kept.
func (cc *compileContext) buildRegistry() {
	for _, class := range cc.file.Classes() {
		if !class.TopLevel || !isClassDeclaration(class) || len(class.Decorators) == 0 {
			continue
		}
		meta := annotations.ExtractMetadata(cc.file, class.Decorators[0])
		if !meta.HasSelector {
			continue
		}
		selector, _, _ := strings.Cut(meta.Selector, ",")
		cc.registry.Register(class.Name, strings.TrimSpace(selector))
	}
}

// rewrite replaces every decorated class with its compiled form. The rest of
// the source is carried through as it is. A decorated class nested in
// another decorated class is left alone, as the outer class keeps its members
// as source text.
func (cc *compileContext) rewrite() (*tsast.SourceFile, error) {
	source := cc.file.Source
	body := &tsast.SourceFile{Statements: []tsast.Statement{
		&tsast.ImportDeclaration{Namespace: cc.compiler.config.CoreAlias, Module: cc.compiler.config.CoreModule},
	}}
	pos := uint32(0)
	for _, class := range cc.file.Classes() {
		if !isClassDeclaration(class) || len(class.Decorators) == 0 {
			continue
		}
		start, end := class.Outer.StartByte(), class.Outer.EndByte()
		if start < pos {
			continue
		}
		rewritten, err := cc.rewriteClass(class)
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", class.Name, err)
		}
		if start > pos {
			body.Statements = append(body.Statements, &tsast.RawStatement{Text: string(source[pos:start])})
		}
		body.Statements = append(body.Statements, rewritten)
		pos = end
		// The printed class ends its own line.
		if strings.HasPrefix(string(source[pos:]), "\r\n") {
			pos += 2
		} else if pos < uint32(len(source)) && source[pos] == '\n' {
			pos++
		}
	}
	if pos < uint32(len(source)) {
		body.Statements = append(body.Statements, &tsast.RawStatement{Text: string(source[pos:])})
	}
	return body, nil
}

// rewriteClass compiles every decorator of a class and returns the class
// without its decorators, followed by the generated static members. The
// factory comes first.
func (cc *compileContext) rewriteClass(class *tsparser.Class) (*tsast.ClassDeclaration, error) {
	logger := cc.logger.With(zap.String("class", class.Name))
	metadataCompiler := cc.compiler.config.MetadataCompiler
	signals := annotations.DetectSignals(cc.file, class.Members)
	ref := render3.NewR3Reference(class.Name)
	summary := ClassSummary{Name: class.Name}
	target := core.FactoryTargetInjectable

	var generated []tsast.ClassElement
	for _, decorator := range class.Decorators {
		kind := annotations.KindOf(decorator.Name)
		if kind == annotations.KindUnknown {
			logger.Debug("ignoring decorator", zap.String("decorator", decorator.Name))
			continue
		}
		meta := annotations.ExtractMetadataInto(cc.file, decorator, cc.defaultMetadata())
		ctx := cc.renderContext()

		var compiled render3.R3CompiledExpression
		switch kind {
		case annotations.KindComponent:
			resources := annotations.ResolveResources(meta, class.Name, cc.compiler.config.RawSuffix)
			cc.imports = append(cc.imports, resources.Imports...)
			compiled = metadataCompiler.CompileComponent(componentMetadata(class.Name, ref, meta, signals, resources), ctx)
			if resources.TemplateVar != "" {
				replaceTemplate(compiled.Expression, resources.TemplateVar)
			}
		case annotations.KindDirective:
			compiled = metadataCompiler.CompileDirective(directiveMetadata(class.Name, ref, meta, signals, false), ctx)
		case annotations.KindPipe:
			compiled = metadataCompiler.CompilePipe(&render3.R3PipeMetadata{
				Name:         class.Name,
				Type:         ref,
				PipeName:     meta.Name,
				Pure:         meta.Pure,
				IsStandalone: meta.Standalone,
			}, ctx)
		case annotations.KindInjectable:
			compiled = metadataCompiler.CompileInjectable(&render3.R3InjectableMetadata{
				Name:       class.Name,
				Type:       ref,
				ProvidedIn: providedIn(meta.ProvidedIn),
			}, ctx)
		}
		target = kind.FactoryTarget()
		summary.add(kind, meta, signals)

		cc.report(logger, kind, compiled.Errors)
		if compiled.HasErrors() {
			continue
		}
		member, err := cc.staticMember(kind.DefinitionField(), compiled)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", kind, err)
		}
		generated = append(generated, member)
	}

	factory := metadataCompiler.CompileFactory(&render3.R3FactoryMetadata{Name: class.Name, Type: ref, Target: target}, cc.renderContext())
	member, err := cc.staticMember("ɵfac", factory)
	if err != nil {
		return nil, fmt.Errorf("factory: %w", err)
	}
	generated = append([]tsast.ClassElement{member}, generated...)
	cc.classes = append(cc.classes, summary)

	members := make([]tsast.ClassElement, 0, len(class.Members)+len(generated))
	for _, m := range class.Members {
		members = append(members, &tsast.RawMember{Text: m.Text})
	}
	return &tsast.ClassDeclaration{
		Modifiers:      class.Modifiers,
		Name:           class.Name,
		TypeParameters: class.TypeParameters,
		Heritage:       class.Heritage,
		Members:        append(members, generated...),
	}, nil
}

// renderContext gives each decorator its own binding parser over the shared
// pool and registry.
func (cc *compileContext) renderContext() *render3.Context {
	return &render3.Context{
		ConstantPool:  cc.constantPool,
		BindingParser: template_parser.NewBindingParser(cc.ctx),
		Registry:      cc.registry,
	}
}

func (cc *compileContext) staticMember(name string, compiled render3.R3CompiledExpression) (*tsast.PropertyDeclaration, error) {
	for _, stmt := range compiled.Statements {
		cc.constantPool.AddStatement(stmt)
	}
	init, err := cc.compiler.translator.TranslateExpression(compiled.Expression)
	if err != nil {
		return nil, err
	}
	return &tsast.PropertyDeclaration{Static: true, Name: name, Init: init}, nil
}

// report logs the errors of one decorator and keeps them for the result.
func (cc *compileContext) report(logger *zap.Logger, kind annotations.Kind, errs []*util.ParseError) {
	for _, err := range errs {
		fields := []zap.Field{zap.String("decorator", kind.String())}
		if err.Span != nil && err.Span.Start != nil {
			fields = append(fields, zap.String("location", err.Span.Start.String()))
		}
		if err.Level == util.ParseErrorLevelWarning {
			logger.Warn(err.Msg, fields...)
		} else {
			logger.Error(err.Msg, fields...)
		}
	}
	cc.errors = append(cc.errors, errs...)
}

// defaultMetadata is the record decorator arguments are read over.
func (cc *compileContext) defaultMetadata() *annotations.Metadata {
	meta := annotations.DefaultMetadata()
	meta.Encapsulation = cc.compiler.config.DefaultEncapsulation
	meta.PreserveWhitespaces = cc.compiler.config.PreserveWhitespaces
	return meta
}

func (s *ClassSummary) add(kind annotations.Kind, meta *annotations.Metadata, signals *annotations.Signals) {
	s.Kinds = append(s.Kinds, kind.String())
	if kind != annotations.KindComponent && kind != annotations.KindDirective {
		return
	}
	if s.Selector == "" {
		s.Selector = meta.Selector
	}
	for _, input := range mergeInputs(meta.Inputs, signals.Inputs) {
		s.Inputs = append(s.Inputs, input.BindingPropertyName)
	}
	for _, out := range mergeOutputs(meta.Outputs, signals.Outputs) {
		s.Outputs = append(s.Outputs, out.BindingPropertyName)
	}
	if kind == annotations.KindComponent {
		s.TemplateURL = meta.TemplateURL
		s.StyleURLs = meta.StyleURLs
	}
}

// providedIn maps the raw `providedIn` text to an expression. `null` gives
// nil.
func providedIn(value string) output.Expression {
	switch value {
	case "null":
		return nil
	case "":
		return output.Literal("root")
	}
	return output.Literal(value)
}

// replaceTemplate points the `template` entry of a compiled definition at the
// identifier holding the external template. The definition is either the
// object literal itself or a call taking it.
func replaceTemplate(expr output.Expression, templateVar string) {
	definition, ok := expr.(*output.LiteralMapExpr)
	if call, isCall := expr.(*output.InvokeFunctionExpr); isCall {
		for _, arg := range call.Args {
			if definition, ok = arg.(*output.LiteralMapExpr); ok {
				break
			}
		}
	}
	if !ok {
		return
	}
	if entry := definition.Get("template"); entry != nil {
		entry.Value = output.Variable(templateVar)
	}
}

package compiler

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"ngc-lite/packages/compiler/config"
	"ngc-lite/packages/compiler/pool"
	"ngc-lite/packages/compiler/render3"
	"ngc-lite/packages/compiler/render3/r3_identifiers"
	"ngc-lite/packages/compiler/translator"
	"ngc-lite/packages/compiler/tsast"
	"ngc-lite/packages/compiler/tsparser"
	"ngc-lite/packages/compiler/util"
)

// Option configures a Compiler.
type Option = config.CompilerConfigOption

var (
	WithLogger               = config.WithLogger
	WithMetadataCompiler     = config.WithMetadataCompiler
	WithCoreModule           = config.WithCoreModule
	WithDefaultEncapsulation = config.WithDefaultEncapsulation
	WithPreserveWhitespaces  = config.WithPreserveWhitespaces
	WithRawSuffix            = config.WithRawSuffix
)

// Compiler compiles source files. It keeps no state between calls and is
// safe for concurrent use.
type Compiler struct {
	config     *config.CompilerConfig
	translator *translator.Translator
}

// New creates a Compiler.
func New(opts ...Option) *Compiler {
	cfg := config.NewCompilerConfig(opts...)
	return &Compiler{
		config:     cfg,
		translator: translator.New(map[string]string{r3_identifiers.CORE: cfg.CoreAlias}),
	}
}

// ClassSummary describes one rewritten class.
type ClassSummary struct {
	Name string `yaml:"name"`
	// Kinds lists the recognized decorators in source order.
	Kinds       []string `yaml:"kinds"`
	Selector    string   `yaml:"selector,omitempty"`
	Inputs      []string `yaml:"inputs,omitempty"`
	Outputs     []string `yaml:"outputs,omitempty"`
	TemplateURL string   `yaml:"templateUrl,omitempty"`
	StyleURLs   []string `yaml:"styleUrls,omitempty"`
}

// Result is the outcome of compiling one file.
type Result struct {
	FileName string
	// Code is empty when the file has template errors.
	Code     string
	Classes  []ClassSummary
	Registry []render3.RegistryEntry
	// Errors holds the template and binding errors and warnings of every
	// class in the file.
	Errors []*util.ParseError
}

// HasErrors reports whether the file failed to compile, warnings aside.
func (r *Result) HasErrors() bool {
	for _, err := range r.Errors {
		if err.Level == util.ParseErrorLevelError {
			return true
		}
	}
	return false
}

// Compile compiles the source of one file. Template errors are logged and
// yield an empty output with a nil error; a non-nil error means the
// definitions could not be lowered.
func (c *Compiler) Compile(source, fileName string) (string, error) {
	result, err := c.CompileFile(context.Background(), []byte(source), fileName)
	if err != nil {
		return "", err
	}
	return result.Code, nil
}

// CompileFile compiles the source of one file and reports what it found.
func (c *Compiler) CompileFile(ctx context.Context, source []byte, fileName string) (*Result, error) {
	logger := c.config.Logger.With(zap.String("file", fileName))

	file, err := tsparser.Parse(ctx, source, fileName)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	defer file.Close()

	for _, node := range file.SyntaxErrors() {
		line, col := tsparser.Position(node)
		logger.Warn("syntax error in input", zap.Int("line", line), zap.Int("column", col))
	}

	cc := &compileContext{
		ctx:          ctx,
		compiler:     c,
		file:         file,
		logger:       logger,
		constantPool: pool.NewConstantPool(),
		registry:     render3.NewSelectorRegistry(),
	}
	cc.buildRegistry()
	body, err := cc.rewrite()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}

	result := &Result{
		FileName: fileName,
		Classes:  cc.classes,
		Registry: cc.registry.Entries(),
		Errors:   cc.errors,
	}
	if result.HasErrors() {
		logger.Error("template errors; emitting empty output", zap.Int("errors", len(result.Errors)))
		return result, nil
	}
	result.Code, err = cc.serialize(body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fileName, err)
	}
	return result, nil
}

// serialize prints the resource imports, the rewritten file and the pooled
// constants, separated by blank lines.
func (cc *compileContext) serialize(body *tsast.SourceFile) (string, error) {
	var imports strings.Builder
	for _, imp := range cc.imports {
		imports.WriteString(tsast.PrintStatement(imp) + "\n")
	}

	var constants strings.Builder
	for _, stmt := range cc.constantPool.Statements() {
		lowered, err := cc.compiler.translator.TranslateStatement(stmt)
		if err != nil {
			return "", fmt.Errorf("constant pool: %w", err)
		}
		constants.WriteString(tsast.PrintStatement(lowered) + "\n")
	}

	var sections []string
	for _, section := range []string{imports.String(), tsast.PrintFile(body), constants.String()} {
		if section = strings.TrimRight(section, "\n"); section != "" {
			sections = append(sections, section)
		}
	}
	return strings.Join(sections, "\n\n") + "\n", nil
}

var defaultCompiler = New()

// Compile compiles one file with the default options.
func Compile(source, fileName string) (string, error) {
	return defaultCompiler.Compile(source, fileName)
}

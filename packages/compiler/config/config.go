// Package config holds the compiler options and the project configuration
// read by the command line driver.
package config

import (
	"go.uber.org/zap"

	"ngc-lite/packages/compiler/annotations"
	"ngc-lite/packages/compiler/core"
	"ngc-lite/packages/compiler/render3"
	"ngc-lite/packages/compiler/translator"
)

// CompilerConfig represents the compiler configuration
type CompilerConfig struct {
	Logger           *zap.Logger
	MetadataCompiler render3.MetadataCompiler

	// CoreModule is imported under CoreAlias at the top of every output file.
	CoreModule string
	CoreAlias  string

	DefaultEncapsulation core.ViewEncapsulation
	// PreserveWhitespaces applies to components that do not set the flag.
	PreserveWhitespaces bool
	// RawSuffix is appended to template URLs in the synthesized imports.
	RawSuffix string
}

// NewCompilerConfig creates a new CompilerConfig with optional parameters
func NewCompilerConfig(opts ...CompilerConfigOption) *CompilerConfig {
	config := &CompilerConfig{
		Logger:               zap.NewNop(),
		MetadataCompiler:     render3.DefaultCompiler{},
		CoreModule:           translator.CoreModule,
		CoreAlias:            translator.CoreAlias,
		DefaultEncapsulation: core.ViewEncapsulationEmulated,
		PreserveWhitespaces:  false,
		RawSuffix:            annotations.DefaultRawSuffix,
	}

	for _, opt := range opts {
		opt(config)
	}

	return config
}

// CompilerConfigOption is a function that modifies CompilerConfig
type CompilerConfigOption func(*CompilerConfig)

// WithLogger sets the logger. A nil logger discards everything.
func WithLogger(logger *zap.Logger) CompilerConfigOption {
	return func(c *CompilerConfig) {
		if logger == nil {
			logger = zap.NewNop()
		}
		c.Logger = logger
	}
}

// WithMetadataCompiler replaces the compiler turning metadata into
// definitions.
func WithMetadataCompiler(compiler render3.MetadataCompiler) CompilerConfigOption {
	return func(c *CompilerConfig) {
		if compiler != nil {
			c.MetadataCompiler = compiler
		}
	}
}

// WithCoreModule sets the runtime module and the alias it is imported under.
func WithCoreModule(module, alias string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.CoreModule = module
		c.CoreAlias = alias
	}
}

// WithDefaultEncapsulation sets the default encapsulation
func WithDefaultEncapsulation(encapsulation core.ViewEncapsulation) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.DefaultEncapsulation = encapsulation
	}
}

// WithPreserveWhitespaces sets whether to preserve whitespaces
func WithPreserveWhitespaces(preserve bool) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.PreserveWhitespaces = preserve
	}
}

// WithRawSuffix sets the suffix marking template imports as raw text.
func WithRawSuffix(suffix string) CompilerConfigOption {
	return func(c *CompilerConfig) {
		c.RawSuffix = suffix
	}
}

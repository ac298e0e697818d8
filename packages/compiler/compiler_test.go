package compiler_test

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"ngc-lite/packages/compiler"
	"ngc-lite/packages/compiler/render3"
	"ngc-lite/packages/compiler/util"
)

const counterSource = `import { Component, input, output } from '@angular/core';

@Component({
  selector: 'app-counter, counter',
  template: '<button (click)="inc()">{{ count() }}</button>',
})
export class Counter {
  count = input(0);
  changed = output<number>();
  inc() {}
}
`

func compile(t *testing.T, c *compiler.Compiler, source string) string {
	t.Helper()
	code, err := c.Compile(source, "test.ts")
	require.NoError(t, err)
	return code
}

func TestCompileComponent(t *testing.T) {
	c := compiler.New(compiler.WithLogger(zaptest.NewLogger(t)))

	t.Run("should replace the decorator with static definitions", func(t *testing.T) {
		code := compile(t, c, counterSource)
		assert.True(t, strings.HasPrefix(code, "import * as i0 from \"@angular/core\";\nimport { Component, input, output } from '@angular/core';\n"))
		assert.NotContains(t, code, "@Component")
		assert.Contains(t, code, "export class Counter {\n    count = input(0);\n    changed = output<number>();\n    inc() {}\n    static ɵfac = ")
		assert.Contains(t, code, "static ɵcmp = i0.ɵɵdefineComponent({")
		assert.Less(t, strings.Index(code, "ɵfac"), strings.Index(code, "ɵcmp"))
	})

	t.Run("should emit signal inputs and outputs", func(t *testing.T) {
		code := compile(t, c, counterSource)
		assert.Contains(t, code, `count: [1, "count"]`)
		assert.Contains(t, code, `changed: "changed"`)
		assert.Contains(t, code, `["app-counter"]`)
	})

	t.Run("should import external resources ahead of the file", func(t *testing.T) {
		code := compile(t, c, `import { Component } from '@angular/core';

@Component({selector: 'app-w', templateUrl: './w.html', styleUrl: './w.css'})
export class W {}
`)
		expectedHead := "import W_Template from \"./w.html?raw\";\n" +
			"import W_Style_0 from \"./w.css\";\n" +
			"\n" +
			"import * as i0 from \"@angular/core\";\n"
		assert.True(t, strings.HasPrefix(code, expectedHead), code)
		assert.Contains(t, code, "template: W_Template,")
		assert.Contains(t, code, "styles: [W_Style_0]")
		assert.NotContains(t, code, "W_Template(rf, ctx)")
	})

	t.Run("should honor a custom raw suffix", func(t *testing.T) {
		custom := compiler.New(compiler.WithRawSuffix("?inline"))
		code := compile(t, custom, `@Component({selector: 'app-w', templateUrl: './w.html'})
export class W {}
`)
		assert.Contains(t, code, `import W_Template from "./w.html?inline";`)
	})
}

func TestCompileFile(t *testing.T) {
	t.Run("should summarize classes and the selector registry", func(t *testing.T) {
		result, err := compiler.New().CompileFile(context.Background(), []byte(counterSource), "counter.ts")
		require.NoError(t, err)
		assert.False(t, result.HasErrors())
		assert.Equal(t, "counter.ts", result.FileName)

		expectedClasses := []compiler.ClassSummary{{
			Name:     "Counter",
			Kinds:    []string{"Component"},
			Selector: "app-counter, counter",
			Inputs:   []string{"count"},
			Outputs:  []string{"changed"},
		}}
		if diff := cmp.Diff(expectedClasses, result.Classes); diff != "" {
			t.Errorf("Classes mismatch (-want +got):\n%s", diff)
		}
		expectedRegistry := []render3.RegistryEntry{{ClassName: "Counter", Selector: "app-counter"}}
		if diff := cmp.Diff(expectedRegistry, result.Registry); diff != "" {
			t.Errorf("Registry mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should merge decorator inputs with signal inputs", func(t *testing.T) {
		source := `@Directive({selector: '[appTip]', inputs: ['text', 'label: appTip']})
export class Tip {
  label = input('');
}
`
		result, err := compiler.New().CompileFile(context.Background(), []byte(source), "tip.ts")
		require.NoError(t, err)
		require.Len(t, result.Classes, 1)
		assert.Equal(t, []string{"text", "label"}, result.Classes[0].Inputs)
		assert.Contains(t, result.Code, `label: [1, "label"]`)
		assert.Contains(t, result.Code, "static ɵdir = i0.ɵɵdefineDirective({")
	})
}

func TestCompileTemplateErrors(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	c := compiler.New(compiler.WithLogger(zap.New(core)))

	code, err := c.Compile(`@Component({selector: 'app-f', template: '<input [(ngModel)]="name">'})
export class Form {}
`, "form.ts")
	require.NoError(t, err)
	assert.Empty(t, code)

	errors := logs.FilterLevelExact(zapcore.ErrorLevel).All()
	require.GreaterOrEqual(t, len(errors), 2)
	assert.Equal(t, "Two-way bindings are not supported: [(ngModel)]", errors[0].Message)
	assert.Equal(t, "Form", errors[0].ContextMap()["class"])
	assert.Equal(t, "template errors; emitting empty output", errors[len(errors)-1].Message)
}

func TestCompileIsolation(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	c := compiler.New(compiler.WithLogger(zap.New(core)))

	first, err := c.CompileFile(context.Background(), []byte(`@Directive({selector: '[appTip]'})
export class Tip {}

@Component({selector: 'app-a', template: '<span appTip>a</span>'})
export class A {}
`), "a.ts")
	require.NoError(t, err)
	require.Len(t, first.Errors, 1)
	assert.Equal(t, util.ParseErrorLevelWarning, first.Errors[0].Level)
	assert.NotEmpty(t, first.Code)
	assert.Equal(t, 1, logs.Len())

	second, err := c.CompileFile(context.Background(), []byte(`@Component({selector: 'app-b', template: '<span appTip>b</span>'})
export class B {}
`), "b.ts")
	require.NoError(t, err)
	assert.Empty(t, second.Errors)
	assert.Equal(t, []render3.RegistryEntry{{ClassName: "B", Selector: "app-b"}}, second.Registry)
	assert.Equal(t, 1, logs.Len())
}

func TestCompileDecorators(t *testing.T) {
	c := compiler.New()

	t.Run("should strip unknown decorators and still emit a factory", func(t *testing.T) {
		code := compile(t, c, "@Sealed()\nexport class Plain {}\n")
		expected := "import * as i0 from \"@angular/core\";\n" +
			"export class Plain {\n" +
			"    static ɵfac = function Plain_Factory(__ngFactoryType__) {\n" +
			"        return new (__ngFactoryType__ || Plain)();\n" +
			"    };\n" +
			"}\n"
		if diff := cmp.Diff(expected, code); diff != "" {
			t.Errorf("output mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should leave undecorated classes alone", func(t *testing.T) {
		code := compile(t, c, "export class Plain {}\n")
		assert.Equal(t, "import * as i0 from \"@angular/core\";\nexport class Plain {}\n", code)
	})

	t.Run("should emit null for providedIn null", func(t *testing.T) {
		code := compile(t, c, "@Injectable({providedIn: null})\nexport class Local {}\n")
		assert.Contains(t, code, "providedIn: null")
	})

	t.Run("should indent a class nested in a function", func(t *testing.T) {
		code := compile(t, c, `export function make() {
    @Injectable()
    class Inner {}
    return Inner;
}
`)
		assert.Contains(t, code, "export function make() {\n    class Inner {\n        static ɵfac = function Inner_Factory(__ngFactoryType__) {\n")
		assert.Contains(t, code, "    }\n    return Inner;\n}\n")
	})

	t.Run("should use a custom core module alias", func(t *testing.T) {
		custom := compiler.New(compiler.WithCoreModule("@ng/rt", "rt"))
		code := compile(t, custom, "@Injectable()\nexport class S {}\n")
		assert.True(t, strings.HasPrefix(code, "import * as rt from \"@ng/rt\";\n"))
		assert.Contains(t, code, "rt.ɵɵdefineInjectable(")
	})
}

// countingCompiler records the definitions it is asked for.
type countingCompiler struct {
	render3.DefaultCompiler
	calls []string
}

func (c *countingCompiler) CompilePipe(meta *render3.R3PipeMetadata, ctx *render3.Context) render3.R3CompiledExpression {
	c.calls = append(c.calls, "pipe:"+meta.PipeName)
	return c.DefaultCompiler.CompilePipe(meta, ctx)
}

func (c *countingCompiler) CompileFactory(meta *render3.R3FactoryMetadata, ctx *render3.Context) render3.R3CompiledExpression {
	c.calls = append(c.calls, "factory:"+meta.Name)
	return c.DefaultCompiler.CompileFactory(meta, ctx)
}

func TestWithMetadataCompiler(t *testing.T) {
	counting := &countingCompiler{}
	c := compiler.New(compiler.WithMetadataCompiler(counting))
	compile(t, c, "@Pipe({name: 'upper'})\nexport class UpperPipe {}\n")
	assert.Equal(t, []string{"pipe:upper", "factory:UpperPipe"}, counting.calls)
}

func TestCompileGolden(t *testing.T) {
	source, err := os.ReadFile("testdata/shared.ts")
	require.NoError(t, err)
	code, err := compiler.Compile(string(source), "shared.ts")
	require.NoError(t, err)

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, "shared", []byte(code))
}

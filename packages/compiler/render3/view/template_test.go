package view_test

import (
	"context"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngc-lite/packages/compiler/css"
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/render3/view"
	"ngc-lite/packages/compiler/template_parser"
	"ngc-lite/packages/compiler/translator"
	"ngc-lite/packages/compiler/tsast"
	"ngc-lite/packages/compiler/util"
)

func emit(t *testing.T, e output.Expression) string {
	t.Helper()
	lowered, err := translator.New(nil).TranslateExpression(e)
	require.NoError(t, err)
	return tsast.PrintExpression(lowered)
}

func compile(t *testing.T, template string) *view.TemplateResult {
	t.Helper()
	return view.CompileTemplate(view.TemplateOptions{ComponentName: "Counter", Template: template},
		template_parser.NewBindingParser(context.Background()))
}

func messages(errs []*util.ParseError) []string {
	var msgs []string
	for _, err := range errs {
		msgs = append(msgs, err.Msg)
	}
	return msgs
}

func TestCompileTemplate(t *testing.T) {
	t.Run("should compile an empty template", func(t *testing.T) {
		result := compile(t, "")
		require.Empty(t, result.Errors)
		assert.Equal(t, 0, result.Decls)
		assert.Equal(t, 0, result.Vars)
		assert.Equal(t, "function Counter_Template(rf, ctx) { }", emit(t, result.Fn))
	})

	t.Run("should compile elements, listeners and interpolations", func(t *testing.T) {
		result := compile(t, `<button (click)="inc()">+</button><span>{{ count() }}</span>`)
		require.Empty(t, result.Errors)
		expected := strings.Join([]string{
			"function Counter_Template(rf, ctx) {",
			"    if (rf & 1) {",
			`        i0.ɵɵelementStart(0, "button", 0);`,
			`        i0.ɵɵlistener("click", function Counter_Template_button_click_0_listener() {`,
			"            return ctx.inc();",
			"        });",
			`        i0.ɵɵtext(1, "+");`,
			"        i0.ɵɵelementEnd();",
			`        i0.ɵɵelementStart(2, "span");`,
			"        i0.ɵɵtext(3);",
			"        i0.ɵɵelementEnd();",
			"    }",
			"    if (rf & 2) {",
			"        i0.ɵɵadvance(3);",
			"        i0.ɵɵtextInterpolate(ctx.count());",
			"    }",
			"}",
		}, "\n")
		if diff := cmp.Diff(expected, emit(t, result.Fn)); diff != "" {
			t.Errorf("template function mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, 4, result.Decls)
		assert.Equal(t, 1, result.Vars)
		require.Len(t, result.Consts, 1)
		assert.Equal(t, `[3, "click"]`, emit(t, result.Consts[0]))
	})

	t.Run("should declare $event only when the handler reads it", func(t *testing.T) {
		result := compile(t, `<input (input)="value = $event.target.value">`)
		require.Empty(t, result.Errors)
		assert.Contains(t, emit(t, result.Fn), "function Counter_Template_input_input_0_listener($event) {")
		assert.Contains(t, emit(t, result.Fn), "return ctx.value = $event.target.value;")
	})

	t.Run("should use a single element instruction for leaf elements", func(t *testing.T) {
		result := compile(t, `<br><img src="a.png" alt="x">`)
		require.Empty(t, result.Errors)
		code := emit(t, result.Fn)
		assert.Contains(t, code, `i0.ɵɵelement(0, "br");`)
		assert.Contains(t, code, `i0.ɵɵelement(1, "img", 0);`)
		require.Len(t, result.Consts, 1)
		assert.Equal(t, `["src", "a.png", "alt", "x"]`, emit(t, result.Consts[0]))
	})

	t.Run("should collect classes, styles and bindings into consts", func(t *testing.T) {
		result := compile(t, `<div id="a" class="x y" style="color: red; width: 1px" [title]="t" (click)="go()"></div>`)
		require.Empty(t, result.Errors)
		require.Len(t, result.Consts, 1)
		assert.Equal(t, `["id", "a", 1, "x", "y", 2, "color", "red", "width", "1px", 3, "title", "click"]`, emit(t, result.Consts[0]))
	})

	t.Run("should reuse equal consts", func(t *testing.T) {
		result := compile(t, `<p class="a"></p><p class="a"></p>`)
		require.Empty(t, result.Errors)
		require.Len(t, result.Consts, 1)
		code := emit(t, result.Fn)
		assert.Contains(t, code, `i0.ɵɵelement(0, "p", 0);`)
		assert.Contains(t, code, `i0.ɵɵelement(1, "p", 0);`)
	})

	t.Run("should order styling before properties and count vars", func(t *testing.T) {
		result := compile(t, `<div [title]="t" [class.on]="on" [style.width.px]="w" [attr.role]="r"></div>`)
		require.Empty(t, result.Errors)
		code := emit(t, result.Fn)
		update := code[strings.Index(code, "if (rf & 2)"):]
		expected := []string{
			`i0.ɵɵstyleProp("width", ctx.w, "px");`,
			`i0.ɵɵclassProp("on", ctx.on);`,
			`i0.ɵɵproperty("title", ctx.t);`,
			`i0.ɵɵattribute("role", ctx.r);`,
		}
		last := -1
		for _, instruction := range expected {
			idx := strings.Index(update, instruction)
			require.Greater(t, idx, last, "expected %s after the previous instruction in\n%s", instruction, update)
			last = idx
		}
		assert.NotContains(t, update, "ɵɵadvance")
		assert.Equal(t, 6, result.Vars)
	})

	t.Run("should advance between bound slots", func(t *testing.T) {
		result := compile(t, `<span [title]="a"></span><span></span><span [title]="b"></span><span [title]="c"></span>`)
		require.Empty(t, result.Errors)
		code := emit(t, result.Fn)
		assert.Contains(t, code, "i0.ɵɵadvance(2);\n        i0.ɵɵproperty(\"title\", ctx.b);\n        i0.ɵɵadvance();\n        i0.ɵɵproperty(\"title\", ctx.c);")
		assert.Equal(t, 3, result.Vars)
	})

	t.Run("should interpolate text and attributes", func(t *testing.T) {
		result := compile(t, `<a title="Hi {{name}}!">{{a}} and {{b}}</a>`)
		require.Empty(t, result.Errors)
		code := emit(t, result.Fn)
		assert.Contains(t, code, `i0.ɵɵproperty("title", i0.ɵɵinterpolate1("Hi ", ctx.name, "!"));`)
		assert.Contains(t, code, `i0.ɵɵtextInterpolate2("", ctx.a, " and ", ctx.b);`)
		assert.Equal(t, 3, result.Vars)
	})

	t.Run("should remove whitespace unless preserved", func(t *testing.T) {
		template := "<p>\n  hi\n</p>"
		collapsed := compile(t, template)
		assert.Contains(t, emit(t, collapsed.Fn), `i0.ɵɵtext(1, " hi ");`)

		preserved := view.CompileTemplate(view.TemplateOptions{ComponentName: "Counter", Template: template, PreserveWhitespaces: true},
			template_parser.NewBindingParser(context.Background()))
		assert.Contains(t, emit(t, preserved.Fn), `i0.ɵɵtext(1, "\n  hi\n");`)
	})

	t.Run("should skip scripts, styles and stylesheet links", func(t *testing.T) {
		result := compile(t, `<p>a</p><script>run()</script><style>p { color: red; }</style><link rel="stylesheet" href="a.css">`)
		require.Empty(t, result.Errors)
		assert.Equal(t, 2, result.Decls)
		code := emit(t, result.Fn)
		assert.NotContains(t, code, "script")
		assert.NotContains(t, code, "link")
	})

	t.Run("should keep the content of ngNonBindable elements as text", func(t *testing.T) {
		result := compile(t, `<div ngNonBindable>{{ x }}<b [title]="t">y</b></div>`)
		require.Empty(t, result.Errors)
		assert.Equal(t, 0, result.Vars)
		code := emit(t, result.Fn)
		assert.Contains(t, code, `i0.ɵɵtext(1, "{{ x }}");`)
		assert.NotContains(t, code, "ctx.")
		require.Len(t, result.Consts, 2)
		assert.Equal(t, `["ngNonBindable", ""]`, emit(t, result.Consts[0]))
		assert.Equal(t, `["[title]", "t"]`, emit(t, result.Consts[1]))
	})

	t.Run("should report unsupported template features", func(t *testing.T) {
		cases := map[string]string{
			`<ng-template></ng-template>`:    "<ng-template> is not supported",
			`<li *ngFor="let x of xs"></li>`: "Structural directives are not supported: *ngFor",
			`<input #box>`:                   "Template references are not supported: #box",
			`<input [(ngModel)]="v">`:        "Two-way bindings are not supported: [(ngModel)]",
			`<div [@fade]="s"></div>`:        "Animation bindings are not supported: [@fade]",
		}
		for template, expected := range cases {
			result := compile(t, template)
			assert.True(t, result.HasErrors(), template)
			assert.Equal(t, []string{expected}, messages(result.Errors), template)
		}
	})

	t.Run("should report control flow blocks", func(t *testing.T) {
		result := compile(t, `@if (on) { <b></b> }`)
		require.True(t, result.HasErrors())
		assert.Equal(t, `function Counter_Template(rf, ctx) { }`, emit(t, result.Fn))
	})

	t.Run("should report binding errors", func(t *testing.T) {
		result := compile(t, `<b [title]="a |"></b>`)
		require.True(t, result.HasErrors())
	})

	t.Run("should warn about same-file components that are not imported", func(t *testing.T) {
		matcher := css.NewSelectorMatcher[string]()
		for selector, class := range map[string]string{"app-child": "Child", "[appTip]": "Tip"} {
			parsed, err := css.ParseCssSelector(selector)
			require.NoError(t, err)
			matcher.AddSelectables(parsed, class)
		}
		result := view.CompileTemplate(view.TemplateOptions{
			ComponentName: "Parent",
			Template:      `<app-child appTip></app-child>`,
			Matcher:       matcher,
			Imported:      map[string]bool{"Child": true},
		}, template_parser.NewBindingParser(context.Background()))
		require.False(t, result.HasErrors())
		assert.ElementsMatch(t, []string{"Child", "Tip"}, result.Matched)
		assert.Equal(t, []string{"<app-child> matches the selector of Tip, which is declared in this file but not listed in imports"},
			messages(result.Errors))
		assert.Equal(t, util.ParseErrorLevelWarning, result.Errors[0].Level)
	})
}

func TestParseStyle(t *testing.T) {
	got := view.ParseStyle("color: red;; width:10px ; bad")
	if diff := cmp.Diff([]string{"color", "red", "width", "10px"}, got); diff != "" {
		t.Errorf("ParseStyle() mismatch (-want +got):\n%s", diff)
	}
}

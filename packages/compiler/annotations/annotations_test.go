package annotations_test

import (
	"context"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngc-lite/packages/compiler/annotations"
	"ngc-lite/packages/compiler/core"
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/tsast"
	"ngc-lite/packages/compiler/tsparser"
)

func firstClass(t *testing.T, source string) (*tsparser.File, *tsparser.Class) {
	t.Helper()
	f, err := tsparser.Parse(context.Background(), []byte(source), "x.ts")
	require.NoError(t, err)
	t.Cleanup(f.Close)
	classes := f.Classes()
	require.NotEmpty(t, classes)
	return f, classes[0]
}

func rawText(t *testing.T, e output.Expression) string {
	t.Helper()
	wrapped, ok := e.(*output.WrappedNodeExpr)
	require.True(t, ok, "expected a wrapped node, got %T", e)
	raw, ok := wrapped.Node.(*tsast.Raw)
	require.True(t, ok, "expected raw syntax, got %T", wrapped.Node)
	return raw.Text
}

func TestKindOf(t *testing.T) {
	cases := []struct {
		name  string
		kind  annotations.Kind
		field string
	}{
		{"Component", annotations.KindComponent, "ɵcmp"},
		{"Directive", annotations.KindDirective, "ɵdir"},
		{"Pipe", annotations.KindPipe, "ɵpipe"},
		{"Injectable", annotations.KindInjectable, "ɵprov"},
		{"NgModule", annotations.KindUnknown, ""},
		{"core.Component", annotations.KindUnknown, ""},
	}
	for _, c := range cases {
		t.Run("should classify "+c.name, func(t *testing.T) {
			kind := annotations.KindOf(c.name)
			assert.Equal(t, c.kind, kind)
			assert.Equal(t, c.field, kind.DefinitionField())
		})
	}

	t.Run("should map kinds to factory targets", func(t *testing.T) {
		assert.Equal(t, core.FactoryTargetComponent, annotations.KindComponent.FactoryTarget())
		assert.Equal(t, core.FactoryTargetDirective, annotations.KindDirective.FactoryTarget())
		assert.Equal(t, core.FactoryTargetPipe, annotations.KindPipe.FactoryTarget())
		assert.Equal(t, core.FactoryTargetInjectable, annotations.KindInjectable.FactoryTarget())
	})
}

func TestExtractMetadata(t *testing.T) {
	t.Run("should return defaults without an argument", func(t *testing.T) {
		f, c := firstClass(t, `@Injectable() class S {}`)
		meta := annotations.ExtractMetadata(f, c.Decorators[0])
		if diff := cmp.Diff(annotations.DefaultMetadata(), meta); diff != "" {
			t.Errorf("ExtractMetadata() mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, "root", meta.ProvidedIn)
		assert.True(t, meta.Standalone)
		assert.True(t, meta.Pure)
		assert.Equal(t, core.ChangeDetectionStrategyDefault, meta.ChangeDetection)
		assert.Equal(t, core.ViewEncapsulationEmulated, meta.Encapsulation)
	})

	t.Run("should tolerate a non-object argument", func(t *testing.T) {
		f, c := firstClass(t, `@Component(config) class X {}`)
		meta := annotations.ExtractMetadata(f, c.Decorators[0])
		assert.False(t, meta.HasSelector)
		assert.Nil(t, meta.Template)
	})

	t.Run("should read component metadata", func(t *testing.T) {
		f, c := firstClass(t, `@Component({
  selector: 'app-x, x-alt',
  template: '<p>hi</p>',
  styles: ['p { color: red; }'],
  styleUrl: './x.css',
  imports: [Child, forwardRef(() => Other)],
  providers: [Svc],
  host: {'class': 'box', '(click)': 'onClick($event)', '[attr.role]': "role"},
  inputs: ['a', 'b: bee'],
  outputs: [{name: 'changed', alias: 'change'}],
  exportAs: 'x, y',
  changeDetection: ChangeDetectionStrategy.OnPush,
  encapsulation: ViewEncapsulation.ShadowDom,
  preserveWhitespaces: true,
  standalone: false,
  jit: true,
})
class X {}`)
		meta := annotations.ExtractMetadata(f, c.Decorators[0])

		assert.True(t, meta.HasSelector)
		assert.Equal(t, "app-x, x-alt", meta.Selector)
		require.NotNil(t, meta.Template)
		assert.Equal(t, "<p>hi</p>", *meta.Template)
		assert.Equal(t, []string{"p { color: red; }"}, meta.Styles)
		assert.Equal(t, []string{"./x.css"}, meta.StyleURLs)

		require.Len(t, meta.Imports, 2)
		assert.Equal(t, "Child", meta.Imports[0].Name)
		assert.Equal(t, "", meta.Imports[1].Name)
		assert.Equal(t, "forwardRef(() => Other)", rawText(t, meta.Imports[1].Expr))
		assert.Equal(t, "[Svc]", rawText(t, meta.Providers))
		assert.Nil(t, meta.ViewProviders)

		wantHost := []annotations.HostEntry{
			{Key: "class", Value: "box"},
			{Key: "(click)", Value: "onClick($event)"},
			{Key: "[attr.role]", Value: "role"},
		}
		if diff := cmp.Diff(wantHost, meta.Host); diff != "" {
			t.Errorf("host mismatch (-want +got):\n%s", diff)
		}
		wantInputs := []annotations.Binding{{Property: "a", Name: "a"}, {Property: "b", Name: "bee"}}
		if diff := cmp.Diff(wantInputs, meta.Inputs); diff != "" {
			t.Errorf("inputs mismatch (-want +got):\n%s", diff)
		}
		assert.Equal(t, []annotations.Binding{{Property: "changed", Name: "change"}}, meta.Outputs)

		assert.Equal(t, []string{"x", "y"}, meta.ExportAs)
		assert.Equal(t, core.ChangeDetectionStrategyOnPush, meta.ChangeDetection)
		assert.Equal(t, core.ViewEncapsulationShadowDom, meta.Encapsulation)
		assert.True(t, meta.PreserveWhitespaces)
		assert.False(t, meta.Standalone)
		assert.Equal(t, map[string]string{"jit": "true"}, meta.Extra)
	})

	t.Run("should read encapsulation variants", func(t *testing.T) {
		cases := map[string]core.ViewEncapsulation{
			"ViewEncapsulation.None":                          core.ViewEncapsulationNone,
			"ViewEncapsulation.Emulated":                      core.ViewEncapsulationEmulated,
			"ViewEncapsulation.ExperimentalIsolatedShadowDom": core.ViewEncapsulationExperimentalIsolatedShadowDom,
		}
		for text, want := range cases {
			f, c := firstClass(t, `@Component({encapsulation: `+text+`}) class X {}`)
			assert.Equal(t, want, annotations.ExtractMetadata(f, c.Decorators[0]).Encapsulation, text)
		}
	})

	t.Run("should read pipe and injectable metadata", func(t *testing.T) {
		f, c := firstClass(t, `@Pipe({name: 'trim', pure: false}) class T {}`)
		meta := annotations.ExtractMetadata(f, c.Decorators[0])
		assert.Equal(t, "trim", meta.Name)
		assert.False(t, meta.Pure)

		f, c = firstClass(t, `@Injectable({providedIn: 'platform'}) class S {}`)
		assert.Equal(t, "platform", annotations.ExtractMetadata(f, c.Decorators[0]).ProvidedIn)
	})

	t.Run("should accept a single style string", func(t *testing.T) {
		f, c := firstClass(t, "@Component({styles: `:host { display: block }`}) class X {}")
		assert.Equal(t, []string{":host { display: block }"}, annotations.ExtractMetadata(f, c.Decorators[0]).Styles)
	})
}

const signalSource = `class X {
  name = input();
  req = input.required<string>();
  aliased = input(0, {alias: 'renamed'});
  changed = output();
  count = model(0);
  one = viewChild('ref');
  many = contentChildren(Item, {descendants: false, read: ElementRef});
  bare = viewChild();
  plain = signal(0);
  derived = computed(() => 1);
  untyped;
  method() {}
}`

func TestDetectSignals(t *testing.T) {
	f, c := firstClass(t, signalSource)
	sigs := annotations.DetectSignals(f, c.Members)

	t.Run("should detect inputs", func(t *testing.T) {
		want := []*annotations.InputSignal{
			{ClassPropertyName: "name", BindingPropertyName: "name", IsSignal: true},
			{ClassPropertyName: "req", BindingPropertyName: "req", Required: true, IsSignal: true},
			{ClassPropertyName: "aliased", BindingPropertyName: "renamed", IsSignal: true},
			{ClassPropertyName: "count", BindingPropertyName: "count", IsSignal: true},
		}
		if diff := cmp.Diff(want, sigs.Inputs); diff != "" {
			t.Errorf("inputs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should detect outputs and the change output of a model", func(t *testing.T) {
		want := []*annotations.OutputSignal{
			{ClassPropertyName: "changed", BindingPropertyName: "changed"},
			{ClassPropertyName: "countChange", BindingPropertyName: "countChange"},
		}
		if diff := cmp.Diff(want, sigs.Outputs); diff != "" {
			t.Errorf("outputs mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should detect a single view query with a string predicate", func(t *testing.T) {
		require.Len(t, sigs.ViewQueries, 1)
		q := sigs.ViewQueries[0]
		assert.Equal(t, "one", q.PropertyName)
		assert.True(t, q.First)
		assert.Equal(t, []string{"ref"}, q.Predicate)
		assert.Nil(t, q.PredicateExpr)
		assert.True(t, q.Descendants)
		assert.True(t, q.IsSignal)
	})

	t.Run("should detect a multi-result content query with a type predicate", func(t *testing.T) {
		require.Len(t, sigs.ContentQueries, 1)
		q := sigs.ContentQueries[0]
		assert.Equal(t, "many", q.PropertyName)
		assert.False(t, q.First)
		assert.Nil(t, q.Predicate)
		assert.Equal(t, "Item", rawText(t, q.PredicateExpr))
		assert.False(t, q.Descendants)
		assert.Equal(t, "ElementRef", rawText(t, q.Read))
	})

	t.Run("should ignore a class without signals", func(t *testing.T) {
		f, c := firstClass(t, `class Counter { count = signal(0); show = computed(() => this.count() > 5); }`)
		sigs := annotations.DetectSignals(f, c.Members)
		assert.Empty(t, sigs.Inputs)
		assert.Empty(t, sigs.Outputs)
		assert.Empty(t, sigs.ViewQueries)
		assert.Empty(t, sigs.ContentQueries)
	})
}

func TestResolveResources(t *testing.T) {
	t.Run("should import an external template with the raw suffix", func(t *testing.T) {
		meta := annotations.DefaultMetadata()
		meta.TemplateURL = "./x.html"
		res := annotations.ResolveResources(meta, "X", annotations.DefaultRawSuffix)

		assert.Equal(t, "X_Template", res.TemplateVar)
		want := []*tsast.ImportDeclaration{{Default: "X_Template", Module: "./x.html?raw"}}
		if diff := cmp.Diff(want, res.Imports); diff != "" {
			t.Errorf("imports mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should import stylesheets after inline styles", func(t *testing.T) {
		meta := annotations.DefaultMetadata()
		meta.StyleURLs = []string{"./a.css", "./b.css"}
		res := annotations.ResolveResources(meta, "X", annotations.DefaultRawSuffix)

		assert.Empty(t, res.TemplateVar)
		assert.Equal(t, []string{"X_Style_0", "X_Style_1"}, res.StyleSymbols)
		require.Len(t, res.Imports, 2)
		assert.Equal(t, "./b.css", res.Imports[1].Module)

		styles := res.Styles([]string{"p {}"})
		want := []output.Expression{output.Literal("p {}"), output.Variable("X_Style_0"), output.Variable("X_Style_1")}
		assert.True(t, output.AreAllEquivalent(want, styles))
	})

	t.Run("should produce nothing for inline resources", func(t *testing.T) {
		res := annotations.ResolveResources(annotations.DefaultMetadata(), "X", annotations.DefaultRawSuffix)
		assert.Empty(t, res.Imports)
		assert.Empty(t, res.TemplateVar)
	})
}

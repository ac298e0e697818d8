package tsparser_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngc-lite/packages/compiler/tsparser"
)

const componentSource = `import { Component } from '@angular/core';

@Component({selector: 'app-a', template: '<p>hi</p>'})
export class A<T> extends B implements C {
  @Input() x = 1;
  count = signal(0);

  @HostListener('click')
  onClick() {
    return 1;
  }
}

function factory() {
  @Injectable()
  class Inner {}
  return Inner;
}
`

func parse(t *testing.T, source string) *tsparser.File {
	t.Helper()
	f, err := tsparser.Parse(context.Background(), []byte(source), "a.ts")
	require.NoError(t, err)
	t.Cleanup(f.Close)
	return f
}

func TestClasses(t *testing.T) {
	f := parse(t, componentSource)
	classes := f.Classes()
	require.Len(t, classes, 2)

	t.Run("should read the class header", func(t *testing.T) {
		a := classes[0]
		assert.Equal(t, "A", a.Name)
		assert.Equal(t, "<T>", a.TypeParameters)
		assert.Equal(t, "extends B implements C", a.Heritage)
		assert.Equal(t, []string{"export"}, a.Modifiers)
		assert.True(t, a.TopLevel)
		assert.Equal(t, "export_statement", a.Outer.Type())
	})

	t.Run("should read decorators attached to the export", func(t *testing.T) {
		a := classes[0]
		require.Len(t, a.Decorators, 1)
		d := a.Decorators[0]
		assert.Equal(t, "Component", d.Name)
		assert.True(t, d.IsCall)
		require.Len(t, d.Args, 1)
		assert.Equal(t, "object", d.Args[0].Type())
	})

	t.Run("should group members with their decorators and semicolons", func(t *testing.T) {
		members := classes[0].Members
		require.Len(t, members, 3)
		assert.Equal(t, "x", members[0].Name)
		assert.Equal(t, "@Input() x = 1;", members[0].Text)
		assert.Equal(t, "count", members[1].Name)
		assert.Equal(t, "count = signal(0);", members[1].Text)
		require.NotNil(t, members[1].Initializer)
		assert.Equal(t, "call_expression", members[1].Initializer.Type())
		assert.Equal(t, "onClick", members[2].Name)
		assert.Equal(t, "@HostListener('click')\nonClick() {\n  return 1;\n}", members[2].Text)
	})

	t.Run("should find nested classes", func(t *testing.T) {
		inner := classes[1]
		assert.Equal(t, "Inner", inner.Name)
		assert.False(t, inner.TopLevel)
		require.Len(t, inner.Decorators, 1)
		assert.Equal(t, "Injectable", inner.Decorators[0].Name)
		assert.Empty(t, inner.Decorators[0].Args)
	})
}

func TestLiterals(t *testing.T) {
	f := parse(t, `const o = {a: 'x\'y', "b": "A\n", c: true, d: ['p', 'q'], e, f: `+"`t`"+`};`)
	obj := f.Root.NamedChild(0).NamedChild(0).ChildByFieldName("value")
	props := f.ObjectProperties(obj)
	require.Len(t, props, 6)

	keys := make([]string, len(props))
	for i, p := range props {
		keys[i] = p.Key
	}
	assert.Equal(t, []string{"a", "b", "c", "d", "e", "f"}, keys)

	s, ok := f.StringValue(props[0].Value)
	assert.True(t, ok)
	assert.Equal(t, "x'y", s)

	s, ok = f.StringValue(props[1].Value)
	assert.True(t, ok)
	assert.Equal(t, "A\n", s)

	b, ok := f.BoolValue(props[2].Value)
	assert.True(t, ok)
	assert.True(t, b)

	elements, ok := f.ArrayElements(props[3].Value)
	assert.True(t, ok)
	assert.Len(t, elements, 2)

	assert.Equal(t, "e", f.Text(props[4].Value))

	s, ok = f.StringValue(props[5].Value)
	assert.True(t, ok)
	assert.Equal(t, "t", s)
}

func TestParseExpression(t *testing.T) {
	t.Run("should return the expression node", func(t *testing.T) {
		f, expr, err := tsparser.ParseExpression(context.Background(), "a + b.c")
		require.NoError(t, err)
		defer f.Close()
		assert.Equal(t, "binary_expression", expr.Type())
		assert.Equal(t, "a + b.c", f.Text(expr))
	})

	t.Run("should reject invalid expressions", func(t *testing.T) {
		_, _, err := tsparser.ParseExpression(context.Background(), "a +")
		assert.Error(t, err)
	})
}

func TestSyntaxErrors(t *testing.T) {
	assert.Empty(t, parse(t, "class A {}").SyntaxErrors())
	assert.NotEmpty(t, parse(t, "class A {").SyntaxErrors())
}

package template_parser_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngc-lite/packages/compiler/ml_parser"
	"ngc-lite/packages/compiler/template_parser"
)

func parseElement(t *testing.T, source string) *ml_parser.Element {
	t.Helper()
	parsed := ml_parser.NewHtmlParser().Parse(source, "test.html", nil)
	require.Empty(t, parsed.Errors)
	require.Len(t, parsed.RootNodes, 1)
	element, ok := parsed.RootNodes[0].(*ml_parser.Element)
	require.True(t, ok)
	return element
}

func TestPreparseElement(t *testing.T) {
	cases := []struct {
		source  string
		kind    template_parser.PreparsedElementType
		skipped bool
	}{
		{`<div></div>`, template_parser.PreparsedElementTypeOther, false},
		{`<ng-content></ng-content>`, template_parser.PreparsedElementTypeNgContent, false},
		{`<style>p {}</style>`, template_parser.PreparsedElementTypeStyle, true},
		{`<script>x()</script>`, template_parser.PreparsedElementTypeScript, true},
		{`<link rel="stylesheet" href="a.css">`, template_parser.PreparsedElementTypeStylesheet, true},
		{`<link rel="icon" href="a.png">`, template_parser.PreparsedElementTypeOther, false},
	}
	for _, c := range cases {
		t.Run("should classify "+c.source, func(t *testing.T) {
			preparsed := template_parser.PreparseElement(parseElement(t, c.source))
			assert.Equal(t, c.kind, preparsed.Type)
			assert.Equal(t, c.skipped, preparsed.Skipped())
		})
	}

	t.Run("should detect ngNonBindable", func(t *testing.T) {
		assert.True(t, template_parser.PreparseElement(parseElement(t, `<p ngNonBindable>{{ x }}</p>`)).NonBindable)
		assert.False(t, template_parser.PreparseElement(parseElement(t, `<p>{{ x }}</p>`)).NonBindable)
	})
}

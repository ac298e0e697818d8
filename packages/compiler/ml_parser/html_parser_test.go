package ml_parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-lite/packages/compiler/ml_parser"
)

func TestHtmlParser(t *testing.T) {
	parser := ml_parser.NewHtmlParser()
	parse := func(template string) *ml_parser.ParseTreeResult {
		return parser.Parse(template, "TestComp", nil)
	}

	t.Run("should parse elements, attributes and text", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "div", 0},
			[]interface{}{"Attribute", "class", "a"},
			[]interface{}{"Attribute", "(click)", "go($event)"},
			[]interface{}{"Text", "Hi {{ name }}", 1},
			[]interface{}{"Element", "br", 0},
			[]interface{}{"Element", "input", 0, "#selfClosing"},
			[]interface{}{"Attribute", "[value]", "v"},
		}
		result := humanizeDom(t, parse(`<div class="a" (click)="go($event)">Hi {{ name }}</div><br><input [value]="v"/>`))
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should keep markup characters inside interpolations", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "p", 0},
			[]interface{}{"Text", "{{ a<b }}", 1},
		}
		result := humanizeDom(t, parse(`<p>{{ a<b }}</p>`))
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should support attributes without values and unquoted values", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "input", 0},
			[]interface{}{"Attribute", "disabled", ""},
			[]interface{}{"Attribute", "type", "text"},
		}
		result := humanizeDom(t, parse(`<input disabled type=text>`))
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should close elements implicitly", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "ul", 0},
			[]interface{}{"Element", "li", 1},
			[]interface{}{"Text", "a", 2},
			[]interface{}{"Element", "li", 1},
			[]interface{}{"Text", "b", 2},
		}
		result := humanizeDom(t, parse(`<ul><li>a<li>b</ul>`))
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should decode entities", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "p", 0},
			[]interface{}{"Attribute", "title", "<x>"},
			[]interface{}{"Text", "a & b" + ml_parser.NGSP_UNICODE + "c", 1},
		}
		result := humanizeDom(t, parse(`<p title="&lt;x&gt;">a &amp; b&ngsp;c</p>`))
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should read raw text elements", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "textarea", 0},
			[]interface{}{"Text", "a<b <", 1},
			[]interface{}{"Element", "style", 0},
			[]interface{}{"Text", "p > a { }", 1},
		}
		result := humanizeDom(t, parse("<textarea>\na<b &lt;</textarea><style>p > a { }</style>"))
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should keep comments", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Comment", " note ", 0},
			[]interface{}{"Element", "b", 0},
		}
		result := humanizeDom(t, parse(`<!-- note --><b></b>`))
		if diff := cmp.Diff(expected, result); diff != "" {
			t.Errorf("Parse() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should track source spans", func(t *testing.T) {
		result := parse("<div>\n  <span>x</span>\n</div>")
		div := result.RootNodes[0].(*ml_parser.Element)
		span := div.Children[1].(*ml_parser.Element)
		if got := span.StartSourceSpan.String(); got != "<span>" {
			t.Errorf("start span = %q", got)
		}
		if got := span.StartSourceSpan.Start.Line; got != 1 {
			t.Errorf("line = %d, want 1", got)
		}
		if got := div.SourceSpan().String(); got != "<div>\n  <span>x</span>\n</div>" {
			t.Errorf("element span = %q", got)
		}
	})
}

func TestHtmlParserErrors(t *testing.T) {
	parser := ml_parser.NewHtmlParser()
	cases := []struct {
		name     string
		template string
		errors   []string
	}{
		{
			"should report control flow blocks",
			"@if (x) {<p>a</p>}",
			[]string{`Control flow block "@if" is not supported`},
		},
		{
			"should report ICU expressions",
			"{count, plural, =0 {none}}",
			[]string{"ICU expressions are not supported"},
		},
		{
			"should report unexpected closing tags",
			"<div><span></div>",
			[]string{`Unexpected closing tag "div". It may happen when the tag has already been closed by another tag.`},
		},
		{
			"should report end tags of void elements",
			"<br></br>",
			[]string{`Void elements do not have end tags "br"`},
		},
		{
			"should report self-closed plain elements",
			"<div/><app-item/>",
			[]string{`Only void, custom and foreign elements can be self closed "div"`},
		},
		{
			"should report an unterminated tag",
			"<div",
			[]string{`Unexpected character "EOF"`},
		},
		{
			"should not report plain at signs and braces",
			"mail me @ home { ok }",
			[]string{},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			result := humanizeErrors(parser.Parse(c.template, "TestComp", nil))
			if diff := cmp.Diff(c.errors, result); diff != "" {
				t.Errorf("errors mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSplitInterpolationText(t *testing.T) {
	t.Run("should split text around interpolations", func(t *testing.T) {
		split, errs := ml_parser.SplitInterpolationText("Hi {{ a }} and {{ '}}' }}!", nil, nil)
		if len(errs) != 0 {
			t.Fatalf("unexpected errors: %v", errs)
		}
		expected := &ml_parser.SplitInterpolation{
			Strings:     []string{"Hi ", " and ", "!"},
			Expressions: []string{" a ", " '}}' "},
		}
		if diff := cmp.Diff(expected, split); diff != "" {
			t.Errorf("SplitInterpolationText() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should return nil without interpolation", func(t *testing.T) {
		split, _ := ml_parser.SplitInterpolationText("plain {{ text", nil, nil)
		if split != nil {
			t.Errorf("expected nil, got %+v", split)
		}
	})

	t.Run("should report blank expressions", func(t *testing.T) {
		_, errs := ml_parser.SplitInterpolationText("{{ }}", nil, nil)
		if len(errs) != 1 || errs[0].Msg != "Blank expressions are not allowed in interpolated strings" {
			t.Errorf("unexpected errors: %v", errs)
		}
	})
}

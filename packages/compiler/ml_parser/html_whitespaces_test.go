package ml_parser_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"ngc-lite/packages/compiler/ml_parser"
)

func TestRemoveWhitespaces(t *testing.T) {
	parseAndRemoveWS := func(t *testing.T, template string) []interface{} {
		return humanizeDom(t, ml_parser.RemoveWhitespaces(ml_parser.NewHtmlParser().Parse(template, "TestComp", nil)))
	}

	t.Run("should remove blank text nodes", func(t *testing.T) {
		expected := []interface{}{}
		for _, template := range []string{" ", "\n", "\t", "    \t    \n "} {
			if diff := cmp.Diff(expected, parseAndRemoveWS(t, template)); diff != "" {
				t.Errorf("parseAndRemoveWS(%q) mismatch (-want +got):\n%s", template, diff)
			}
		}
	})

	t.Run("should remove whitespaces (space, tab, new line) between elements", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "br", 0},
			[]interface{}{"Element", "br", 0},
			[]interface{}{"Element", "br", 0},
			[]interface{}{"Element", "br", 0},
		}
		if diff := cmp.Diff(expected, parseAndRemoveWS(t, "<br>  <br>\t<br>\n<br>")); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should replace multiple whitespaces with one space", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "div", 0},
			[]interface{}{"Element", "span", 1},
			[]interface{}{"Text", " a b ", 2},
		}
		if diff := cmp.Diff(expected, parseAndRemoveWS(t, "<div>\n  <span> a   b </span>\n</div>")); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should replace &ngsp; with a space", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Text", "a b", 0},
		}
		if diff := cmp.Diff(expected, parseAndRemoveWS(t, "a&ngsp;b")); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should not touch the content of pre", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "pre", 0},
			[]interface{}{"Text", "  x  ", 1},
		}
		if diff := cmp.Diff(expected, parseAndRemoveWS(t, "<pre>\n  x  </pre>")); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should preserve whitespaces under ngPreserveWhitespaces and drop the marker", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "div", 0},
			[]interface{}{"Attribute", "id", "a"},
			[]interface{}{"Text", "  a   b  ", 1},
		}
		if diff := cmp.Diff(expected, parseAndRemoveWS(t, `<div ngPreserveWhitespaces id="a">  a   b  </div>`)); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("should remove comments", func(t *testing.T) {
		expected := []interface{}{
			[]interface{}{"Element", "b", 0},
		}
		if diff := cmp.Diff(expected, parseAndRemoveWS(t, "<!--x--><b></b>")); diff != "" {
			t.Errorf("parseAndRemoveWS() mismatch (-want +got):\n%s", diff)
		}
	})
}

package ml_parser_test

import (
	"testing"

	"ngc-lite/packages/compiler/ml_parser"
)

func humanizeDom(t *testing.T, parseResult *ml_parser.ParseTreeResult) []interface{} {
	t.Helper()
	if len(parseResult.Errors) > 0 {
		errorString := ""
		for _, err := range parseResult.Errors {
			errorString += err.String() + "\n"
		}
		t.Fatalf("Unexpected parse errors:\n%s", errorString)
	}
	return humanizeNodes(parseResult.RootNodes)
}

func humanizeNodes(nodes []ml_parser.Node) []interface{} {
	h := &humanizer{Result: []interface{}{}}
	ml_parser.VisitAll(h, nodes, nil)
	return h.Result
}

func humanizeErrors(result *ml_parser.ParseTreeResult) []string {
	msgs := []string{}
	for _, err := range result.Errors {
		msgs = append(msgs, err.Msg)
	}
	return msgs
}

type humanizer struct {
	Result  []interface{}
	elDepth int
}

func (h *humanizer) VisitElement(element *ml_parser.Element, context interface{}) interface{} {
	res := []interface{}{"Element", element.Name, h.elDepth}
	if element.IsSelfClosing {
		res = append(res, "#selfClosing")
	}
	h.Result = append(h.Result, res)
	h.elDepth++
	for _, attr := range element.Attrs {
		attr.Visit(h, nil)
	}
	ml_parser.VisitAll(h, element.Children, nil)
	h.elDepth--
	return nil
}

func (h *humanizer) VisitAttribute(attribute *ml_parser.Attribute, context interface{}) interface{} {
	h.Result = append(h.Result, []interface{}{"Attribute", attribute.Name, attribute.Value})
	return nil
}

func (h *humanizer) VisitText(text *ml_parser.Text, context interface{}) interface{} {
	h.Result = append(h.Result, []interface{}{"Text", text.Value, h.elDepth})
	return nil
}

func (h *humanizer) VisitComment(comment *ml_parser.Comment, context interface{}) interface{} {
	h.Result = append(h.Result, []interface{}{"Comment", comment.Value, h.elDepth})
	return nil
}

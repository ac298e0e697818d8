package annotations

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"

	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/tsparser"
)

// InputSignal is an input declared through an initializer call.
type InputSignal struct {
	ClassPropertyName   string
	BindingPropertyName string
	Required            bool
	IsSignal            bool
}

// OutputSignal is an output declared through an initializer call.
type OutputSignal struct {
	ClassPropertyName   string
	BindingPropertyName string
}

// QuerySignal is a view or content query declared through an initializer
// call.
type QuerySignal struct {
	PropertyName string
	First        bool
	// Predicate holds the string selector when one was given, otherwise
	// PredicateExpr carries the argument through untouched.
	Predicate     []string
	PredicateExpr output.Expression
	Descendants   bool
	Read          output.Expression
	IsSignal      bool
}

// Signals groups the signal declarations of a class.
type Signals struct {
	Inputs         []*InputSignal
	Outputs        []*OutputSignal
	ViewQueries    []*QuerySignal
	ContentQueries []*QuerySignal
}

// DetectSignals recognizes signal declarations by the name of the function
// called in a field initializer. The match is a case-sensitive substring test
// on the callee text, not a resolution of what the callee is:
//
//	input  -> input, required when the callee contains ".required"
//	output -> output
//	model  -> input plus an output named <prop>Change
//	Child  -> query, a single result unless the callee ends in "ren",
//	          a view query when the callee contains "view"
//
// Fields without a call initializer are ignored.
func DetectSignals(f *tsparser.File, members []*tsparser.Member) *Signals {
	s := &Signals{}
	for _, m := range members {
		if m.Kind != "public_field_definition" || m.Initializer == nil || m.Name == "" {
			continue
		}
		call := tsparser.Unwrap(m.Initializer)
		if call.Type() != "call_expression" {
			continue
		}
		callee := f.Text(call.ChildByFieldName("function"))
		args := tsparser.NamedChildren(call.ChildByFieldName("arguments"))
		name := m.Name
		alias := aliasOption(f, args)
		if alias == "" {
			alias = name
		}

		if strings.Contains(callee, "input") {
			s.addInput(&InputSignal{
				ClassPropertyName:   name,
				BindingPropertyName: alias,
				Required:            strings.Contains(callee, ".required"),
				IsSignal:            true,
			})
		}
		if strings.Contains(callee, "output") {
			s.addOutput(&OutputSignal{ClassPropertyName: name, BindingPropertyName: alias})
		}
		if strings.Contains(callee, "model") {
			s.addInput(&InputSignal{
				ClassPropertyName:   name,
				BindingPropertyName: alias,
				Required:            strings.Contains(callee, ".required"),
				IsSignal:            true,
			})
			s.addOutput(&OutputSignal{ClassPropertyName: name + "Change", BindingPropertyName: alias + "Change"})
		}
		if strings.Contains(callee, "Child") {
			q := readQuery(f, name, callee, args)
			if q == nil {
				continue
			}
			if strings.Contains(callee, "view") {
				s.ViewQueries = append(s.ViewQueries, q)
			} else {
				s.ContentQueries = append(s.ContentQueries, q)
			}
		}
	}
	return s
}

// addInput replaces an earlier input for the same property.
func (s *Signals) addInput(in *InputSignal) {
	for i, prev := range s.Inputs {
		if prev.ClassPropertyName == in.ClassPropertyName {
			s.Inputs[i] = in
			return
		}
	}
	s.Inputs = append(s.Inputs, in)
}

func (s *Signals) addOutput(out *OutputSignal) {
	for i, prev := range s.Outputs {
		if prev.ClassPropertyName == out.ClassPropertyName {
			s.Outputs[i] = out
			return
		}
	}
	s.Outputs = append(s.Outputs, out)
}

// readQuery returns nil for a query call without a predicate.
func readQuery(f *tsparser.File, name, callee string, args []*sitter.Node) *QuerySignal {
	if len(args) == 0 {
		return nil
	}
	q := &QuerySignal{
		PropertyName: name,
		First:        !strings.HasSuffix(callee, "ren"),
		Descendants:  true,
		IsSignal:     true,
	}
	if s, ok := f.StringValue(args[0]); ok && tsparser.IsStringLiteral(args[0]) {
		q.Predicate = []string{s}
	} else {
		q.PredicateExpr = Passthrough(f, args[0])
	}
	if len(args) > 1 {
		for _, p := range f.ObjectProperties(args[1]) {
			switch p.Key {
			case "read":
				q.Read = Passthrough(f, p.Value)
			case "descendants":
				q.Descendants = boolOr(f, p.Value, q.Descendants)
			}
		}
	}
	return q
}

// aliasOption finds `{alias: '...'}` among the call arguments.
func aliasOption(f *tsparser.File, args []*sitter.Node) string {
	for _, arg := range args {
		for _, p := range f.ObjectProperties(arg) {
			if p.Key != "alias" {
				continue
			}
			if s, ok := f.StringValue(p.Value); ok {
				return s
			}
		}
	}
	return ""
}

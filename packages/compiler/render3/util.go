package render3

import (
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/util"
)

// R3Reference represents a reference with value and type
type R3Reference struct {
	Value output.Expression
	Type  output.Expression
}

// NewR3Reference references a class declared in the compiled file.
func NewR3Reference(name string) R3Reference {
	return R3Reference{Value: output.Variable(name), Type: output.Variable(name)}
}

// R3CompiledExpression represents the result of compilation of a render3 code unit
type R3CompiledExpression struct {
	Expression output.Expression
	Statements []output.Statement
	// Errors holds the template and binding errors met while compiling,
	// warnings included.
	Errors []*util.ParseError
}

// HasErrors reports whether the compilation produced errors, warnings aside.
func (r R3CompiledExpression) HasErrors() bool {
	for _, err := range r.Errors {
		if err.Level == util.ParseErrorLevelError {
			return true
		}
	}
	return false
}

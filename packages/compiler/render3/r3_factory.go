package render3

import (
	"ngc-lite/packages/compiler/output"
)

// FactoryTypeParam is the parameter of a factory holding the type to
// instantiate, set when a subclass reuses the factory.
const FactoryTypeParam = "__ngFactoryType__"

// CompileFactoryFunction constructs a factory function for the class, e.g.
// `function X_Factory(t) { return new (t || X)(); }`.
func CompileFactoryFunction(meta *R3FactoryMetadata) R3CompiledExpression {
	ctor := output.Binary(output.BinaryOperatorOr, output.Variable(FactoryTypeParam), meta.Type.Value)
	body := []output.Statement{output.Return(output.New(ctor))}
	return R3CompiledExpression{
		Expression: output.Fn(output.Params(FactoryTypeParam), body, meta.Name+"_Factory"),
	}
}

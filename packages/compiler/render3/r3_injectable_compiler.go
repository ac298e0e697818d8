package render3

import (
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/render3/r3_identifiers"
	"ngc-lite/packages/compiler/render3/view"
)

// CompileInjectable compiles the provider definition of an injectable. The
// class is built by its own factory.
func CompileInjectable(meta *R3InjectableMetadata) R3CompiledExpression {
	definitionMap := view.NewDefinitionMap()
	definitionMap.Set("token", meta.Type.Value)
	definitionMap.Set("factory", output.Prop(meta.Type.Value, "ɵfac"))
	providedIn := meta.ProvidedIn
	if providedIn == nil {
		providedIn = output.NullExpr
	}
	definitionMap.Set("providedIn", providedIn)
	return R3CompiledExpression{
		Expression: output.Call(output.ImportExpr(r3_identifiers.DefineInjectable), definitionMap.ToLiteralMap()),
	}
}

package render3

import (
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/render3/r3_identifiers"
	"ngc-lite/packages/compiler/render3/view"
)

// CompilePipeFromMetadata compiles a pipe definition from metadata
func CompilePipeFromMetadata(metadata *R3PipeMetadata) R3CompiledExpression {
	definitionMap := view.NewDefinitionMap()

	// e.g. `name: 'myPipe'`
	pipeName := metadata.PipeName
	if pipeName == "" {
		pipeName = metadata.Name
	}
	definitionMap.Set("name", output.Literal(pipeName))

	// e.g. `type: MyPipe`
	definitionMap.Set("type", metadata.Type.Value)

	// e.g. `pure: true`
	definitionMap.Set("pure", output.Literal(metadata.Pure))

	// Only add standalone if it's false (true is the default)
	if !metadata.IsStandalone {
		definitionMap.Set("standalone", output.Literal(false))
	}

	return R3CompiledExpression{
		Expression: output.Call(output.ImportExpr(r3_identifiers.DefinePipe), definitionMap.ToLiteralMap()),
	}
}

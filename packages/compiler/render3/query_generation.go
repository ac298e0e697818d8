package render3

import (
	"strings"

	"ngc-lite/packages/compiler/core"
	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/pool"
	"ngc-lite/packages/compiler/render3/r3_identifiers"
	"ngc-lite/packages/compiler/render3/view"
)

// ToQueryFlags translates a query into the flags the runtime reads.
func ToQueryFlags(query R3QueryMetadata) core.QueryFlags {
	flags := core.QueryFlagsNone
	if query.Descendants {
		flags |= core.QueryFlagsDescendants
	}
	if query.EmitDistinctChangesOnly {
		flags |= core.QueryFlagsEmitDistinctChangesOnly
	}
	return flags
}

// GetQueryPredicate gets the query predicate expression. String predicates
// are hoisted into the constant pool.
func GetQueryPredicate(query R3QueryMetadata, constantPool *pool.ConstantPool) output.Expression {
	if query.PredicateExpr != nil {
		return query.PredicateExpr
	}
	var predicate []output.Expression
	for _, selector := range query.Predicate {
		// Each item may hold comma-separated refs ('ref, ref1, ..., refN').
		for _, part := range strings.Split(selector, ",") {
			predicate = append(predicate, output.Literal(strings.TrimSpace(part)))
		}
	}
	return constantPool.GetConstLiteral(output.LiteralArr(predicate...), true)
}

// createQueryCreateCall creates e.g. `ɵɵviewQuerySignal(ctx.prop, _c0, 5)`.
func createQueryCreateCall(query R3QueryMetadata, constantPool *pool.ConstantPool, fn output.ExternalReference, prependParams ...output.Expression) output.Statement {
	parameters := append([]output.Expression{}, prependParams...)
	parameters = append(parameters,
		output.Prop(output.Variable(view.CONTEXT_NAME), query.PropertyName),
		GetQueryPredicate(query, constantPool),
		output.Literal(int(ToQueryFlags(query))),
	)
	if query.Read != nil {
		parameters = append(parameters, query.Read)
	}
	return view.Instruction(fn, parameters...)
}

// queryAdvance advances the query index past count signal queries, e.g.
// three sibling queries collapse into `ɵɵqueryAdvance(3)`.
func queryAdvance(count int) []output.Statement {
	if count == 1 {
		return []output.Statement{view.Instruction(r3_identifiers.QueryAdvance)}
	}
	return []output.Statement{view.Instruction(r3_identifiers.QueryAdvance, output.Literal(count))}
}

// CreateViewQueriesFunction defines and updates any view queries
func CreateViewQueriesFunction(viewQueries []R3QueryMetadata, constantPool *pool.ConstantPool, name string) *output.FunctionExpr {
	var createStatements []output.Statement
	for _, query := range viewQueries {
		createStatements = append(createStatements, createQueryCreateCall(query, constantPool, r3_identifiers.ViewQuerySignal))
	}
	return output.Fn(
		output.Params(view.RENDER_FLAGS, view.CONTEXT_NAME),
		view.RenderFunctionBody(createStatements, queryAdvance(len(viewQueries))),
		name+"_Query",
	)
}

// CreateContentQueriesFunction defines and updates any content queries
func CreateContentQueriesFunction(queries []R3QueryMetadata, constantPool *pool.ConstantPool, name string) *output.FunctionExpr {
	var createStatements []output.Statement
	for _, query := range queries {
		createStatements = append(createStatements,
			createQueryCreateCall(query, constantPool, r3_identifiers.ContentQuerySignal, output.Variable("dirIndex")))
	}
	return output.Fn(
		output.Params(view.RENDER_FLAGS, view.CONTEXT_NAME, "dirIndex"),
		view.RenderFunctionBody(createStatements, queryAdvance(len(queries))),
		name+"_ContentQueries",
	)
}

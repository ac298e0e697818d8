package view

import (
	"regexp"

	"ngc-lite/packages/compiler/core"
	"ngc-lite/packages/compiler/output"
)

// UNSAFE_OBJECT_KEY_NAME_REGEXP checks whether an object key contains potentially unsafe chars
var UNSAFE_OBJECT_KEY_NAME_REGEXP = regexp.MustCompile(`[-.]`)

// CONTEXT_NAME is the name of the context parameter passed into a template function
const CONTEXT_NAME = "ctx"

// RENDER_FLAGS is the name of the RenderFlag passed into a template function
const RENDER_FLAGS = "rf"

// EVENT_NAME is the name of the event parameter of a listener
const EVENT_NAME = "$event"

// AsLiteral converts a value to a literal expression. Slices become array
// literals; attribute markers and selector flags become numbers.
func AsLiteral(value interface{}) output.Expression {
	switch v := value.(type) {
	case []interface{}:
		literals := make([]output.Expression, len(v))
		for i, item := range v {
			literals[i] = AsLiteral(item)
		}
		return output.LiteralArr(literals...)
	case []string:
		literals := make([]output.Expression, len(v))
		for i, item := range v {
			literals[i] = output.Literal(item)
		}
		return output.LiteralArr(literals...)
	case core.R3CssSelector:
		return AsLiteral([]interface{}(v))
	case core.R3CssSelectorList:
		literals := make([]output.Expression, len(v))
		for i, item := range v {
			literals[i] = AsLiteral(item)
		}
		return output.LiteralArr(literals...)
	case core.SelectorFlags:
		return output.Literal(int(v))
	case core.AttributeMarker:
		return output.Literal(int(v))
	}
	return output.Literal(value)
}

// DefinitionMapEntry represents an entry in a DefinitionMap
type DefinitionMapEntry struct {
	Key    string
	Quoted bool
	Value  output.Expression
}

// DefinitionMap is an ordered object literal under construction, used for
// the definition objects of components, directives and pipes.
type DefinitionMap struct {
	Values []DefinitionMapEntry
}

// NewDefinitionMap creates a new DefinitionMap
func NewDefinitionMap() *DefinitionMap {
	return &DefinitionMap{}
}

// Set sets a key-value pair in the map. An existing key keeps its position.
// A nil value is ignored.
func (dm *DefinitionMap) Set(key string, value output.Expression) {
	if value == nil {
		return
	}
	for i := range dm.Values {
		if dm.Values[i].Key == key {
			dm.Values[i].Value = value
			return
		}
	}
	dm.Values = append(dm.Values, DefinitionMapEntry{Key: key, Value: value})
}

// ToLiteralMap converts the DefinitionMap to a LiteralMapExpr
func (dm *DefinitionMap) ToLiteralMap() *output.LiteralMapExpr {
	entries := make([]*output.LiteralMapEntry, len(dm.Values))
	for i, entry := range dm.Values {
		entries[i] = &output.LiteralMapEntry{Key: entry.Key, Value: entry.Value, Quoted: entry.Quoted}
	}
	return output.LiteralMap(entries...)
}

// RenderFlagCheckIfStmt creates `if (rf & flags) { ... }`.
func RenderFlagCheckIfStmt(flags core.RenderFlags, statements []output.Statement) *output.IfStmt {
	return output.If(
		output.Binary(output.BinaryOperatorBitwiseAnd, output.Variable(RENDER_FLAGS), output.Literal(int(flags))),
		statements,
	)
}

// RenderFunctionBody builds the creation and update blocks of a template,
// host or query function, leaving out the empty ones.
func RenderFunctionBody(create, update []output.Statement) []output.Statement {
	body := []output.Statement{}
	if len(create) > 0 {
		body = append(body, RenderFlagCheckIfStmt(core.RenderFlagsCreate, create))
	}
	if len(update) > 0 {
		body = append(body, RenderFlagCheckIfStmt(core.RenderFlagsUpdate, update))
	}
	return body
}

// Instruction creates a statement calling a runtime instruction.
func Instruction(ref output.ExternalReference, args ...output.Expression) output.Statement {
	return output.Stmt(output.Call(output.ImportExpr(ref), args...))
}

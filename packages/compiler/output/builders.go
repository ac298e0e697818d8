package output

// NullExpr is the `null` literal
var NullExpr = Literal(nil)

// Variable creates a variable read
func Variable(name string) *ReadVarExpr {
	return &ReadVarExpr{Name: name}
}

// Literal creates a primitive literal
func Literal(value interface{}) *LiteralExpr {
	return &LiteralExpr{Value: value}
}

// LiteralArr creates an array literal
func LiteralArr(entries ...Expression) *LiteralArrayExpr {
	return &LiteralArrayExpr{Entries: entries}
}

// LiteralMap creates an object literal
func LiteralMap(entries ...*LiteralMapEntry) *LiteralMapExpr {
	return &LiteralMapExpr{Entries: entries}
}

// Entry creates an unquoted object-literal entry
func Entry(key string, value Expression) *LiteralMapEntry {
	return &LiteralMapEntry{Key: key, Value: value}
}

// QuotedEntry creates a quoted object-literal entry
func QuotedEntry(key string, value Expression) *LiteralMapEntry {
	return &LiteralMapEntry{Key: key, Value: value, Quoted: true}
}

// ImportExpr references an external symbol
func ImportExpr(ref ExternalReference) *ExternalExpr {
	return &ExternalExpr{Value: ref}
}

// Params creates a parameter list from names
func Params(names ...string) []*FnParam {
	params := make([]*FnParam, len(names))
	for i, name := range names {
		params[i] = &FnParam{Name: name}
	}
	return params
}

// Fn creates a function literal
func Fn(params []*FnParam, body []Statement, name string) *FunctionExpr {
	return &FunctionExpr{Params: params, Statements: body, Name: name}
}

// ArrowFn creates an arrow function with an expression body
func ArrowFn(params []*FnParam, body Expression) *ArrowFunctionExpr {
	return &ArrowFunctionExpr{Params: params, Body: body}
}

// Prop reads a named property
func Prop(receiver Expression, name string) *ReadPropExpr {
	return &ReadPropExpr{Receiver: receiver, Name: name}
}

// Key reads an indexed property
func Key(receiver, index Expression) *ReadKeyExpr {
	return &ReadKeyExpr{Receiver: receiver, Index: index}
}

// Call invokes a function value
func Call(fn Expression, args ...Expression) *InvokeFunctionExpr {
	if args == nil {
		args = []Expression{}
	}
	return &InvokeFunctionExpr{Fn: fn, Args: args}
}

// CallMethod invokes a named method
func CallMethod(receiver Expression, name string, args ...Expression) *InvokeMethodExpr {
	if args == nil {
		args = []Expression{}
	}
	return &InvokeMethodExpr{Receiver: receiver, Name: name, Args: args}
}

// New instantiates a class
func New(classExpr Expression, args ...Expression) *InstantiateExpr {
	if args == nil {
		args = []Expression{}
	}
	return &InstantiateExpr{ClassExpr: classExpr, Args: args}
}

// Binary creates a binary operator expression
func Binary(op BinaryOperator, lhs, rhs Expression) *BinaryOperatorExpr {
	return &BinaryOperatorExpr{Operator: op, Lhs: lhs, Rhs: rhs}
}

// Not negates an expression
func Not(expr Expression) *NotExpr {
	return &NotExpr{Condition: expr}
}

// Conditional creates a ternary
func Conditional(cond, trueCase, falseCase Expression) *ConditionalExpr {
	return &ConditionalExpr{Condition: cond, TrueCase: trueCase, FalseCase: falseCase}
}

// Paren wraps an expression in parentheses
func Paren(expr Expression) *ParenthesizedExpr {
	return &ParenthesizedExpr{Expr: expr}
}

// Wrap creates an opaque passthrough of an already-lowered node
func Wrap(node interface{}) *WrappedNodeExpr {
	return &WrappedNodeExpr{Node: node}
}

// Template creates a template literal from its static chunks and
// interpolations.
func Template(chunks []string, expressions ...Expression) *TemplateLiteralExpr {
	elements := make([]*TemplateLiteralElement, len(chunks))
	for i, chunk := range chunks {
		elements[i] = &TemplateLiteralElement{Text: chunk}
	}
	return &TemplateLiteralExpr{Elements: elements, Expressions: expressions}
}

// DeclareConst creates a `const` declaration
func DeclareConst(name string, value Expression) *DeclareVarStmt {
	return &DeclareVarStmt{StatementBase: StatementBase{Modifiers: StmtModifierFinal}, Name: name, Value: value}
}

// DeclareLet creates a `let` declaration
func DeclareLet(name string, value Expression) *DeclareVarStmt {
	return &DeclareVarStmt{Name: name, Value: value}
}

// Stmt wraps an expression into a statement
func Stmt(expr Expression) *ExpressionStatement {
	return &ExpressionStatement{Expr: expr}
}

// Return creates a return statement
func Return(value Expression) *ReturnStatement {
	return &ReturnStatement{Value: value}
}

// If creates a conditional statement
func If(cond Expression, trueCase []Statement, falseCase ...Statement) *IfStmt {
	return &IfStmt{Condition: cond, TrueCase: trueCase, FalseCase: falseCase}
}

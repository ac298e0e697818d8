// Package tsast is the concrete TypeScript syntax the compiler emits, plus a
// printer that turns it into source text.
//
// Only the node kinds the lowering pass produces are modelled. Source text
// that is carried through untouched is held in Raw nodes.
package tsast

// Node is any syntax node.
type Node interface {
	isNode()
}

// Expression is an expression node.
type Expression interface {
	Node
	isExpression()
}

// Statement is a statement node.
type Statement interface {
	Node
	isStatement()
}

// ClassElement is a member of a class body.
type ClassElement interface {
	Node
	isClassElement()
}

type Identifier struct {
	Name string
}

type StringLiteral struct {
	Value string
}

// NumericLiteral holds a non-negative number. Negative values are expressed
// as a PrefixUnary minus over a NumericLiteral.
type NumericLiteral struct {
	Value float64
}

type BooleanLiteral struct {
	Value bool
}

type NullLiteral struct{}

type RegexLiteral struct {
	Pattern string
	Flags   string
}

// PrefixUnary is a prefix operator: "-", "+", "!", "typeof" or "void".
type PrefixUnary struct {
	Operator string
	Operand  Expression
}

// Binary is a binary operator. Operator is the token text, including "," for
// comma sequences.
type Binary struct {
	Left     Expression
	Operator string
	Right    Expression
}

type Conditional struct {
	Condition Expression
	WhenTrue  Expression
	WhenFalse Expression
}

type Call struct {
	Callee Expression
	Args   []Expression
}

type New struct {
	Callee Expression
	Args   []Expression
}

type PropertyAccess struct {
	Expr Expression
	Name string
}

type ElementAccess struct {
	Expr  Expression
	Index Expression
}

// ArrowFunction has either an expression Body or a block Block.
type ArrowFunction struct {
	Params []string
	Body   Expression
	Block  *Block
}

type FunctionExpression struct {
	Name   string
	Params []string
	Body   *Block
}

type PropertyAssignment struct {
	Name   string
	Quoted bool
	Value  Expression
}

type ObjectLiteral struct {
	Properties []*PropertyAssignment
}

type ArrayLiteral struct {
	Elements []Expression
}

// TemplateSpan pairs an interpolated expression with the literal text that
// follows it. Tail marks the last span.
type TemplateSpan struct {
	Expr    Expression
	Literal string
	Tail    bool
}

type TemplateExpression struct {
	Head  string
	Spans []*TemplateSpan
}

type NoSubstitutionTemplate struct {
	Text string
}

// TaggedTemplate applies Tag to a TemplateExpression or NoSubstitutionTemplate.
type TaggedTemplate struct {
	Tag      Expression
	Template Expression
}

type Parenthesized struct {
	Expr Expression
}

// Raw is source text emitted verbatim. Primary marks text that binds as
// tightly as an identifier, so it never needs surrounding parentheses.
type Raw struct {
	Text    string
	Primary bool
}

func (*Identifier) isNode()             {}
func (*StringLiteral) isNode()          {}
func (*NumericLiteral) isNode()         {}
func (*BooleanLiteral) isNode()         {}
func (*NullLiteral) isNode()            {}
func (*RegexLiteral) isNode()           {}
func (*PrefixUnary) isNode()            {}
func (*Binary) isNode()                 {}
func (*Conditional) isNode()            {}
func (*Call) isNode()                   {}
func (*New) isNode()                    {}
func (*PropertyAccess) isNode()         {}
func (*ElementAccess) isNode()          {}
func (*ArrowFunction) isNode()          {}
func (*FunctionExpression) isNode()     {}
func (*ObjectLiteral) isNode()          {}
func (*ArrayLiteral) isNode()           {}
func (*TemplateExpression) isNode()     {}
func (*NoSubstitutionTemplate) isNode() {}
func (*TaggedTemplate) isNode()         {}
func (*Parenthesized) isNode()          {}
func (*Raw) isNode()                    {}

func (*Identifier) isExpression()             {}
func (*StringLiteral) isExpression()          {}
func (*NumericLiteral) isExpression()         {}
func (*BooleanLiteral) isExpression()         {}
func (*NullLiteral) isExpression()            {}
func (*RegexLiteral) isExpression()           {}
func (*PrefixUnary) isExpression()            {}
func (*Binary) isExpression()                 {}
func (*Conditional) isExpression()            {}
func (*Call) isExpression()                   {}
func (*New) isExpression()                    {}
func (*PropertyAccess) isExpression()         {}
func (*ElementAccess) isExpression()          {}
func (*ArrowFunction) isExpression()          {}
func (*FunctionExpression) isExpression()     {}
func (*ObjectLiteral) isExpression()          {}
func (*ArrayLiteral) isExpression()           {}
func (*TemplateExpression) isExpression()     {}
func (*NoSubstitutionTemplate) isExpression() {}
func (*TaggedTemplate) isExpression()         {}
func (*Parenthesized) isExpression()          {}
func (*Raw) isExpression()                    {}

// VariableStatement declares one variable. Keyword is "const" or "let".
type VariableStatement struct {
	Keyword string
	Name    string
	Init    Expression
}

type FunctionDeclaration struct {
	Name   string
	Params []string
	Body   *Block
}

type ExpressionStatement struct {
	Expr Expression
}

type ReturnStatement struct {
	Expr Expression
}

// IfStatement omits the else branch when Else is nil.
type IfStatement struct {
	Condition Expression
	Then      *Block
	Else      *Block
}

type Block struct {
	Statements []Statement
}

// ImportDeclaration is either a default import (Default set) or a namespace
// import (Namespace set).
type ImportDeclaration struct {
	Default   string
	Namespace string
	Module    string
}

// ClassDeclaration is a class rebuilt by the compiler. Modifiers, TypeParameters
// and Heritage are carried as source text.
type ClassDeclaration struct {
	Modifiers      []string
	Name           string
	TypeParameters string
	Heritage       string
	Members        []ClassElement
}

// RawStatement is a statement-level chunk of source text emitted verbatim.
type RawStatement struct {
	Text string
}

func (*VariableStatement) isNode()   {}
func (*FunctionDeclaration) isNode() {}
func (*ExpressionStatement) isNode() {}
func (*ReturnStatement) isNode()     {}
func (*IfStatement) isNode()         {}
func (*Block) isNode()               {}
func (*ImportDeclaration) isNode()   {}
func (*ClassDeclaration) isNode()    {}
func (*RawStatement) isNode()        {}

func (*VariableStatement) isStatement()   {}
func (*FunctionDeclaration) isStatement() {}
func (*ExpressionStatement) isStatement() {}
func (*ReturnStatement) isStatement()     {}
func (*IfStatement) isStatement()         {}
func (*Block) isStatement()               {}
func (*ImportDeclaration) isStatement()   {}
func (*ClassDeclaration) isStatement()    {}
func (*RawStatement) isStatement()        {}

// PropertyDeclaration is a generated class field.
type PropertyDeclaration struct {
	Static bool
	Name   string
	Init   Expression
}

// RawMember is an original class member carried through as source text.
type RawMember struct {
	Text string
}

func (*PropertyDeclaration) isNode() {}
func (*RawMember) isNode()           {}

func (*PropertyDeclaration) isClassElement() {}
func (*RawMember) isClassElement()           {}

// SourceFile is a sequence of statements printed one after another. Raw
// statements are emitted exactly as captured, including their whitespace.
type SourceFile struct {
	Statements []Statement
}

// Helpers used by the lowering pass and the rewriter.

func NewIdentifier(name string) *Identifier {
	return &Identifier{Name: name}
}

func NewStringLiteral(value string) *StringLiteral {
	return &StringLiteral{Value: value}
}

func NewPropertyAccess(expr Expression, name string) *PropertyAccess {
	return &PropertyAccess{Expr: expr, Name: name}
}

func NewCall(callee Expression, args ...Expression) *Call {
	return &Call{Callee: callee, Args: args}
}

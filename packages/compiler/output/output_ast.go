// Package output defines the intermediate representation handed back by the
// metadata compiler: a closed set of expression and statement nodes.
//
// The set is sealed through unexported marker methods, so consumers dispatch
// with exhaustive type switches instead of visitor interfaces.
package output

import (
	"ngc-lite/packages/compiler/util"
)

// UnaryOperator represents unary operators
type UnaryOperator int

const (
	UnaryOperatorMinus UnaryOperator = iota
	UnaryOperatorPlus
)

// BinaryOperator represents binary operators
type BinaryOperator int

const (
	BinaryOperatorEquals BinaryOperator = iota
	BinaryOperatorNotEquals
	BinaryOperatorAssign
	BinaryOperatorIdentical
	BinaryOperatorNotIdentical
	BinaryOperatorMinus
	BinaryOperatorPlus
	BinaryOperatorDivide
	BinaryOperatorMultiply
	BinaryOperatorModulo
	BinaryOperatorAnd
	BinaryOperatorOr
	BinaryOperatorBitwiseOr
	BinaryOperatorBitwiseAnd
	BinaryOperatorLower
	BinaryOperatorLowerEquals
	BinaryOperatorBigger
	BinaryOperatorBiggerEquals
	BinaryOperatorNullishCoalesce
	BinaryOperatorExponentiation
	BinaryOperatorIn
	BinaryOperatorAdditionAssignment
	BinaryOperatorSubtractionAssignment
	BinaryOperatorMultiplicationAssignment
	BinaryOperatorDivisionAssignment
	BinaryOperatorRemainderAssignment
	BinaryOperatorExponentiationAssignment
	BinaryOperatorAndAssignment
	BinaryOperatorOrAssignment
	BinaryOperatorNullishCoalesceAssignment
)

// Expression is an IR expression node.
type Expression interface {
	GetSourceSpan() *util.ParseSourceSpan
	IsEquivalent(e Expression) bool
	IsConstant() bool
	isExpression()
}

// ExpressionBase carries the fields shared by every expression.
type ExpressionBase struct {
	SourceSpan *util.ParseSourceSpan
}

// GetSourceSpan returns the source span of the expression
func (e *ExpressionBase) GetSourceSpan() *util.ParseSourceSpan {
	return e.SourceSpan
}

// LiteralExpr is a primitive literal. Value is one of nil, bool, string,
// int or float64.
type LiteralExpr struct {
	ExpressionBase
	Value interface{}
}

// ReadVarExpr reads a variable
type ReadVarExpr struct {
	ExpressionBase
	Name string
}

// ReadPropExpr reads a named property of a receiver
type ReadPropExpr struct {
	ExpressionBase
	Receiver Expression
	Name     string
}

// ReadKeyExpr reads an indexed property of a receiver
type ReadKeyExpr struct {
	ExpressionBase
	Receiver Expression
	Index    Expression
}

// WritePropExpr assigns a named property of a receiver
type WritePropExpr struct {
	ExpressionBase
	Receiver Expression
	Name     string
	Value    Expression
}

// WriteKeyExpr assigns an indexed property of a receiver
type WriteKeyExpr struct {
	ExpressionBase
	Receiver Expression
	Index    Expression
	Value    Expression
}

// InvokeFunctionExpr calls a function value
type InvokeFunctionExpr struct {
	ExpressionBase
	Fn   Expression
	Args []Expression
	Pure bool
}

// InvokeMethodExpr calls a named method on a receiver
type InvokeMethodExpr struct {
	ExpressionBase
	Receiver Expression
	Name     string
	Args     []Expression
}

// InstantiateExpr invokes a constructor
type InstantiateExpr struct {
	ExpressionBase
	ClassExpr Expression
	Args      []Expression
}

// BinaryOperatorExpr represents a binary operator expression
type BinaryOperatorExpr struct {
	ExpressionBase
	Operator BinaryOperator
	Lhs      Expression
	Rhs      Expression
}

// UnaryOperatorExpr represents a unary operator expression
type UnaryOperatorExpr struct {
	ExpressionBase
	Operator UnaryOperator
	Expr     Expression
}

// NotExpr is a logical negation
type NotExpr struct {
	ExpressionBase
	Condition Expression
}

// ConditionalExpr is a ternary. FalseCase is required by the time the
// expression is lowered.
type ConditionalExpr struct {
	ExpressionBase
	Condition Expression
	TrueCase  Expression
	FalseCase Expression
}

// TypeofExpr is a `typeof` query
type TypeofExpr struct {
	ExpressionBase
	Expr Expression
}

// FnParam is a function parameter. Parameters carry a name only.
type FnParam struct {
	Name string
}

// FunctionExpr is a function literal
type FunctionExpr struct {
	ExpressionBase
	Params     []*FnParam
	Statements []Statement
	Name       string
}

// ArrowFunctionExpr is an arrow function. Exactly one of Body and Statements
// is set: Body for an expression body, Statements for a block body.
type ArrowFunctionExpr struct {
	ExpressionBase
	Params     []*FnParam
	Body       Expression
	Statements []Statement
}

// LiteralArrayExpr is an array literal. A nil entry is a hole.
type LiteralArrayExpr struct {
	ExpressionBase
	Entries []Expression
}

// LiteralMapEntry is a single key/value pair of a LiteralMapExpr. A nil Value
// is a hole.
type LiteralMapEntry struct {
	Key    string
	Value  Expression
	Quoted bool
}

// LiteralMapExpr is an object literal
type LiteralMapExpr struct {
	ExpressionBase
	Entries []*LiteralMapEntry
}

// TemplateLiteralElement is one static chunk of a template literal.
type TemplateLiteralElement struct {
	Text string
}

// TemplateLiteralExpr is a template literal. Elements always holds one more
// entry than Expressions.
type TemplateLiteralExpr struct {
	ExpressionBase
	Elements    []*TemplateLiteralElement
	Expressions []Expression
}

// TaggedTemplateLiteralExpr is a tagged template literal
type TaggedTemplateLiteralExpr struct {
	ExpressionBase
	Tag      Expression
	Template *TemplateLiteralExpr
}

// ParenthesizedExpr wraps an expression in explicit parentheses
type ParenthesizedExpr struct {
	ExpressionBase
	Expr Expression
}

// CommaExpr is a comma sequence
type CommaExpr struct {
	ExpressionBase
	Parts []Expression
}

// VoidExpr is a `void` expression
type VoidExpr struct {
	ExpressionBase
	Expr Expression
}

// RegularExpressionLiteral is a regular expression literal
type RegularExpressionLiteral struct {
	ExpressionBase
	Body  string
	Flags string
}

// DynamicImportExpr is an `import(url)` call
type DynamicImportExpr struct {
	ExpressionBase
	URL string
}

// ExternalReference names a symbol exported by a module
type ExternalReference struct {
	ModuleName string
	Name       string
}

// ExternalExpr references a symbol from another module
type ExternalExpr struct {
	ExpressionBase
	Value ExternalReference
}

// WrappedNodeExpr wraps a node that is already expressed in target syntax.
// It is emitted verbatim.
type WrappedNodeExpr struct {
	ExpressionBase
	Node interface{}
}

// LocalizedStringExpr is a `$localize` tagged message. Lowering does not
// support it.
type LocalizedStringExpr struct {
	ExpressionBase
	MessageParts []string
	Placeholders []string
	Expressions  []Expression
}

func (*LiteralExpr) isExpression()               {}
func (*ReadVarExpr) isExpression()               {}
func (*ReadPropExpr) isExpression()              {}
func (*ReadKeyExpr) isExpression()               {}
func (*WritePropExpr) isExpression()             {}
func (*WriteKeyExpr) isExpression()              {}
func (*InvokeFunctionExpr) isExpression()        {}
func (*InvokeMethodExpr) isExpression()          {}
func (*InstantiateExpr) isExpression()           {}
func (*BinaryOperatorExpr) isExpression()        {}
func (*UnaryOperatorExpr) isExpression()         {}
func (*NotExpr) isExpression()                   {}
func (*ConditionalExpr) isExpression()           {}
func (*TypeofExpr) isExpression()                {}
func (*FunctionExpr) isExpression()              {}
func (*ArrowFunctionExpr) isExpression()         {}
func (*LiteralArrayExpr) isExpression()          {}
func (*LiteralMapExpr) isExpression()            {}
func (*TemplateLiteralExpr) isExpression()       {}
func (*TaggedTemplateLiteralExpr) isExpression() {}
func (*ParenthesizedExpr) isExpression()         {}
func (*CommaExpr) isExpression()                 {}
func (*VoidExpr) isExpression()                  {}
func (*RegularExpressionLiteral) isExpression()  {}
func (*DynamicImportExpr) isExpression()         {}
func (*ExternalExpr) isExpression()              {}
func (*WrappedNodeExpr) isExpression()           {}
func (*LocalizedStringExpr) isExpression()       {}

// NullSafeIsEquivalent compares two possibly-nil expressions
func NullSafeIsEquivalent(base, other Expression) bool {
	if base == nil || other == nil {
		return base == other
	}
	return base.IsEquivalent(other)
}

// AreAllEquivalent compares two expression lists element-wise
func AreAllEquivalent(base, other []Expression) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !NullSafeIsEquivalent(base[i], other[i]) {
			return false
		}
	}
	return true
}

func (l *LiteralExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*LiteralExpr)
	return ok && l.Value == other.Value
}

func (l *LiteralExpr) IsConstant() bool { return true }

func (r *ReadVarExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*ReadVarExpr)
	return ok && r.Name == other.Name
}

func (r *ReadVarExpr) IsConstant() bool { return false }

func (r *ReadPropExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*ReadPropExpr)
	return ok && r.Name == other.Name && NullSafeIsEquivalent(r.Receiver, other.Receiver)
}

func (r *ReadPropExpr) IsConstant() bool { return false }

func (r *ReadKeyExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*ReadKeyExpr)
	return ok && NullSafeIsEquivalent(r.Receiver, other.Receiver) && NullSafeIsEquivalent(r.Index, other.Index)
}

func (r *ReadKeyExpr) IsConstant() bool { return false }

func (w *WritePropExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*WritePropExpr)
	return ok && w.Name == other.Name &&
		NullSafeIsEquivalent(w.Receiver, other.Receiver) &&
		NullSafeIsEquivalent(w.Value, other.Value)
}

func (w *WritePropExpr) IsConstant() bool { return false }

func (w *WriteKeyExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*WriteKeyExpr)
	return ok && NullSafeIsEquivalent(w.Receiver, other.Receiver) &&
		NullSafeIsEquivalent(w.Index, other.Index) &&
		NullSafeIsEquivalent(w.Value, other.Value)
}

func (w *WriteKeyExpr) IsConstant() bool { return false }

func (i *InvokeFunctionExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*InvokeFunctionExpr)
	return ok && i.Pure == other.Pure && NullSafeIsEquivalent(i.Fn, other.Fn) && AreAllEquivalent(i.Args, other.Args)
}

func (i *InvokeFunctionExpr) IsConstant() bool { return false }

func (i *InvokeMethodExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*InvokeMethodExpr)
	return ok && i.Name == other.Name && NullSafeIsEquivalent(i.Receiver, other.Receiver) && AreAllEquivalent(i.Args, other.Args)
}

func (i *InvokeMethodExpr) IsConstant() bool { return false }

func (i *InstantiateExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*InstantiateExpr)
	return ok && NullSafeIsEquivalent(i.ClassExpr, other.ClassExpr) && AreAllEquivalent(i.Args, other.Args)
}

func (i *InstantiateExpr) IsConstant() bool { return false }

func (b *BinaryOperatorExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*BinaryOperatorExpr)
	return ok && b.Operator == other.Operator &&
		NullSafeIsEquivalent(b.Lhs, other.Lhs) &&
		NullSafeIsEquivalent(b.Rhs, other.Rhs)
}

func (b *BinaryOperatorExpr) IsConstant() bool { return false }

func (u *UnaryOperatorExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*UnaryOperatorExpr)
	return ok && u.Operator == other.Operator && NullSafeIsEquivalent(u.Expr, other.Expr)
}

func (u *UnaryOperatorExpr) IsConstant() bool { return false }

func (n *NotExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*NotExpr)
	return ok && NullSafeIsEquivalent(n.Condition, other.Condition)
}

func (n *NotExpr) IsConstant() bool { return false }

func (c *ConditionalExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*ConditionalExpr)
	return ok && NullSafeIsEquivalent(c.Condition, other.Condition) &&
		NullSafeIsEquivalent(c.TrueCase, other.TrueCase) &&
		NullSafeIsEquivalent(c.FalseCase, other.FalseCase)
}

func (c *ConditionalExpr) IsConstant() bool { return false }

func (t *TypeofExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*TypeofExpr)
	return ok && NullSafeIsEquivalent(t.Expr, other.Expr)
}

func (t *TypeofExpr) IsConstant() bool { return t.Expr != nil && t.Expr.IsConstant() }

func (f *FunctionExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*FunctionExpr)
	return ok && f.Name == other.Name && areAllEquivalentParams(f.Params, other.Params) &&
		AreAllStatementsEquivalent(f.Statements, other.Statements)
}

func (f *FunctionExpr) IsConstant() bool { return false }

// ToDeclStmt converts the function literal into a function declaration
func (f *FunctionExpr) ToDeclStmt(name string) *DeclareFunctionStmt {
	return &DeclareFunctionStmt{Name: name, Params: f.Params, Statements: f.Statements}
}

func (a *ArrowFunctionExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*ArrowFunctionExpr)
	return ok && areAllEquivalentParams(a.Params, other.Params) &&
		NullSafeIsEquivalent(a.Body, other.Body) &&
		AreAllStatementsEquivalent(a.Statements, other.Statements)
}

func (a *ArrowFunctionExpr) IsConstant() bool { return false }

func (l *LiteralArrayExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*LiteralArrayExpr)
	return ok && AreAllEquivalent(l.Entries, other.Entries)
}

func (l *LiteralArrayExpr) IsConstant() bool {
	for _, entry := range l.Entries {
		if entry != nil && !entry.IsConstant() {
			return false
		}
	}
	return true
}

func (l *LiteralMapExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*LiteralMapExpr)
	if !ok || len(l.Entries) != len(other.Entries) {
		return false
	}
	for i, entry := range l.Entries {
		o := other.Entries[i]
		if entry.Key != o.Key || entry.Quoted != o.Quoted || !NullSafeIsEquivalent(entry.Value, o.Value) {
			return false
		}
	}
	return true
}

func (l *LiteralMapExpr) IsConstant() bool {
	for _, entry := range l.Entries {
		if entry.Value != nil && !entry.Value.IsConstant() {
			return false
		}
	}
	return true
}

// Get returns the entry with the given key, or nil.
func (l *LiteralMapExpr) Get(key string) *LiteralMapEntry {
	for _, entry := range l.Entries {
		if entry.Key == key {
			return entry
		}
	}
	return nil
}

func (t *TemplateLiteralExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*TemplateLiteralExpr)
	if !ok || len(t.Elements) != len(other.Elements) {
		return false
	}
	for i, el := range t.Elements {
		if el.Text != other.Elements[i].Text {
			return false
		}
	}
	return AreAllEquivalent(t.Expressions, other.Expressions)
}

func (t *TemplateLiteralExpr) IsConstant() bool { return false }

func (t *TaggedTemplateLiteralExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*TaggedTemplateLiteralExpr)
	return ok && NullSafeIsEquivalent(t.Tag, other.Tag) && t.Template.IsEquivalent(other.Template)
}

func (t *TaggedTemplateLiteralExpr) IsConstant() bool { return false }

func (p *ParenthesizedExpr) IsEquivalent(e Expression) bool {
	// Parentheses do not change the value.
	if other, ok := e.(*ParenthesizedExpr); ok {
		return NullSafeIsEquivalent(p.Expr, other.Expr)
	}
	return NullSafeIsEquivalent(p.Expr, e)
}

func (p *ParenthesizedExpr) IsConstant() bool { return p.Expr != nil && p.Expr.IsConstant() }

func (c *CommaExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*CommaExpr)
	return ok && AreAllEquivalent(c.Parts, other.Parts)
}

func (c *CommaExpr) IsConstant() bool { return false }

func (v *VoidExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*VoidExpr)
	return ok && NullSafeIsEquivalent(v.Expr, other.Expr)
}

func (v *VoidExpr) IsConstant() bool { return v.Expr != nil && v.Expr.IsConstant() }

func (r *RegularExpressionLiteral) IsEquivalent(e Expression) bool {
	other, ok := e.(*RegularExpressionLiteral)
	return ok && r.Body == other.Body && r.Flags == other.Flags
}

func (r *RegularExpressionLiteral) IsConstant() bool { return true }

func (d *DynamicImportExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*DynamicImportExpr)
	return ok && d.URL == other.URL
}

func (d *DynamicImportExpr) IsConstant() bool { return false }

func (x *ExternalExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*ExternalExpr)
	return ok && x.Value == other.Value
}

func (x *ExternalExpr) IsConstant() bool { return false }

func (w *WrappedNodeExpr) IsEquivalent(e Expression) bool {
	other, ok := e.(*WrappedNodeExpr)
	return ok && w.Node == other.Node
}

func (w *WrappedNodeExpr) IsConstant() bool { return false }

func (l *LocalizedStringExpr) IsEquivalent(e Expression) bool {
	// Always false: messages are never shared.
	return false
}

func (l *LocalizedStringExpr) IsConstant() bool { return false }

func areAllEquivalentParams(base, other []*FnParam) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if base[i].Name != other[i].Name {
			return false
		}
	}
	return true
}

package output

import "ngc-lite/packages/compiler/util"

// StmtModifier represents statement modifiers
type StmtModifier int

const (
	StmtModifierNone     StmtModifier = 0
	StmtModifierFinal    StmtModifier = 1 << 0
	StmtModifierExported StmtModifier = 1 << 1
)

// Statement is an IR statement node.
type Statement interface {
	GetSourceSpan() *util.ParseSourceSpan
	IsEquivalent(s Statement) bool
	HasModifier(modifier StmtModifier) bool
	isStatement()
}

// StatementBase carries the fields shared by every statement.
type StatementBase struct {
	Modifiers  StmtModifier
	SourceSpan *util.ParseSourceSpan
}

// GetSourceSpan returns the source span of the statement
func (s *StatementBase) GetSourceSpan() *util.ParseSourceSpan {
	return s.SourceSpan
}

// HasModifier checks if the statement has a modifier
func (s *StatementBase) HasModifier(modifier StmtModifier) bool {
	return s.Modifiers&modifier != 0
}

// DeclareVarStmt declares a variable. StmtModifierFinal selects `const`,
// otherwise `let`. Value may be nil.
type DeclareVarStmt struct {
	StatementBase
	Name  string
	Value Expression
}

// DeclareFunctionStmt declares a named function
type DeclareFunctionStmt struct {
	StatementBase
	Name       string
	Params     []*FnParam
	Statements []Statement
}

// ExpressionStatement evaluates an expression for its side effects
type ExpressionStatement struct {
	StatementBase
	Expr Expression
}

// ReturnStatement returns a value. Value is required by the time the
// statement is lowered.
type ReturnStatement struct {
	StatementBase
	Value Expression
}

// IfStmt is a conditional. An empty FalseCase means no else branch.
type IfStmt struct {
	StatementBase
	Condition Expression
	TrueCase  []Statement
	FalseCase []Statement
}

func (*DeclareVarStmt) isStatement()      {}
func (*DeclareFunctionStmt) isStatement() {}
func (*ExpressionStatement) isStatement() {}
func (*ReturnStatement) isStatement()     {}
func (*IfStmt) isStatement()              {}

// AreAllStatementsEquivalent compares two statement lists element-wise
func AreAllStatementsEquivalent(base, other []Statement) bool {
	if len(base) != len(other) {
		return false
	}
	for i := range base {
		if !base[i].IsEquivalent(other[i]) {
			return false
		}
	}
	return true
}

func (d *DeclareVarStmt) IsEquivalent(s Statement) bool {
	other, ok := s.(*DeclareVarStmt)
	return ok && d.Name == other.Name && d.Modifiers == other.Modifiers && NullSafeIsEquivalent(d.Value, other.Value)
}

func (d *DeclareFunctionStmt) IsEquivalent(s Statement) bool {
	other, ok := s.(*DeclareFunctionStmt)
	return ok && d.Name == other.Name && areAllEquivalentParams(d.Params, other.Params) &&
		AreAllStatementsEquivalent(d.Statements, other.Statements)
}

func (e *ExpressionStatement) IsEquivalent(s Statement) bool {
	other, ok := s.(*ExpressionStatement)
	return ok && NullSafeIsEquivalent(e.Expr, other.Expr)
}

func (r *ReturnStatement) IsEquivalent(s Statement) bool {
	other, ok := s.(*ReturnStatement)
	return ok && NullSafeIsEquivalent(r.Value, other.Value)
}

func (i *IfStmt) IsEquivalent(s Statement) bool {
	other, ok := s.(*IfStmt)
	return ok && NullSafeIsEquivalent(i.Condition, other.Condition) &&
		AreAllStatementsEquivalent(i.TrueCase, other.TrueCase) &&
		AreAllStatementsEquivalent(i.FalseCase, other.FalseCase)
}

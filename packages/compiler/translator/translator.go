// Package translator lowers IR expressions and statements into TypeScript
// syntax.
package translator

import (
	"errors"
	"fmt"

	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/tsast"
)

var (
	// ErrUnsupportedOperator is returned for an operator that has no token.
	ErrUnsupportedOperator = errors.New("unsupported operator")
	// ErrLocalizedStringUnsupported is returned for i18n messages.
	ErrLocalizedStringUnsupported = errors.New("i18n is not supported")
	// ErrMalformedNode is returned when a node lacks a required child or is not
	// a known variant.
	ErrMalformedNode = errors.New("malformed node")
	// ErrUnresolvedModule is returned for an external reference to a module
	// that has no namespace alias.
	ErrUnresolvedModule = errors.New("unresolved module")
)

// CoreModule is the module every generated definition refers to.
const CoreModule = "@angular/core"

// CoreAlias is the namespace alias CoreModule is imported under.
const CoreAlias = "i0"

var binaryOperators = map[output.BinaryOperator]string{
	output.BinaryOperatorAnd:                       "&&",
	output.BinaryOperatorBigger:                    ">",
	output.BinaryOperatorBiggerEquals:              ">=",
	output.BinaryOperatorBitwiseOr:                 "|",
	output.BinaryOperatorBitwiseAnd:                "&",
	output.BinaryOperatorDivide:                    "/",
	output.BinaryOperatorAssign:                    "=",
	output.BinaryOperatorEquals:                    "==",
	output.BinaryOperatorIdentical:                 "===",
	output.BinaryOperatorLower:                     "<",
	output.BinaryOperatorLowerEquals:               "<=",
	output.BinaryOperatorMinus:                     "-",
	output.BinaryOperatorModulo:                    "%",
	output.BinaryOperatorExponentiation:            "**",
	output.BinaryOperatorMultiply:                  "*",
	output.BinaryOperatorNotEquals:                 "!=",
	output.BinaryOperatorNotIdentical:              "!==",
	output.BinaryOperatorNullishCoalesce:           "??",
	output.BinaryOperatorOr:                        "||",
	output.BinaryOperatorPlus:                      "+",
	output.BinaryOperatorIn:                        "in",
	output.BinaryOperatorAdditionAssignment:        "+=",
	output.BinaryOperatorSubtractionAssignment:     "-=",
	output.BinaryOperatorMultiplicationAssignment:  "*=",
	output.BinaryOperatorDivisionAssignment:        "/=",
	output.BinaryOperatorRemainderAssignment:       "%=",
	output.BinaryOperatorExponentiationAssignment:  "**=",
	output.BinaryOperatorAndAssignment:             "&&=",
	output.BinaryOperatorOrAssignment:              "||=",
	output.BinaryOperatorNullishCoalesceAssignment: "??=",
}

var unaryOperators = map[output.UnaryOperator]string{
	output.UnaryOperatorMinus: "-",
	output.UnaryOperatorPlus:  "+",
}

// BinaryOperatorToken returns the token for op.
func BinaryOperatorToken(op output.BinaryOperator) (string, error) {
	token, ok := binaryOperators[op]
	if !ok {
		return "", fmt.Errorf("%w: binary operator %d", ErrUnsupportedOperator, op)
	}
	return token, nil
}

// Translator lowers IR into syntax. It holds no state besides the module
// alias table, so one value can be shared freely.
type Translator struct {
	aliases map[string]string
}

// New creates a Translator. aliases maps module names to the namespace
// identifiers they are imported under; when empty, CoreModule maps to
// CoreAlias.
func New(aliases map[string]string) *Translator {
	if len(aliases) == 0 {
		aliases = map[string]string{CoreModule: CoreAlias}
	}
	return &Translator{aliases: aliases}
}

// TranslateExpression lowers an IR expression.
func (t *Translator) TranslateExpression(e output.Expression) (tsast.Expression, error) {
	switch e := e.(type) {
	case nil:
		return nil, fmt.Errorf("%w: missing expression", ErrMalformedNode)
	case *output.LiteralExpr:
		return translateLiteral(e)
	case *output.ReadVarExpr:
		return tsast.NewIdentifier(e.Name), nil
	case *output.ReadPropExpr:
		receiver, err := t.TranslateExpression(e.Receiver)
		if err != nil {
			return nil, err
		}
		return tsast.NewPropertyAccess(receiver, e.Name), nil
	case *output.ReadKeyExpr:
		receiver, index, err := t.pair(e.Receiver, e.Index)
		if err != nil {
			return nil, err
		}
		return &tsast.ElementAccess{Expr: receiver, Index: index}, nil
	case *output.WritePropExpr:
		receiver, value, err := t.pair(e.Receiver, e.Value)
		if err != nil {
			return nil, err
		}
		return &tsast.Binary{Left: tsast.NewPropertyAccess(receiver, e.Name), Operator: "=", Right: value}, nil
	case *output.WriteKeyExpr:
		receiver, index, err := t.pair(e.Receiver, e.Index)
		if err != nil {
			return nil, err
		}
		value, err := t.TranslateExpression(e.Value)
		if err != nil {
			return nil, err
		}
		return &tsast.Binary{Left: &tsast.ElementAccess{Expr: receiver, Index: index}, Operator: "=", Right: value}, nil
	case *output.InvokeFunctionExpr:
		fn, err := t.TranslateExpression(e.Fn)
		if err != nil {
			return nil, err
		}
		args, err := t.list(e.Args)
		if err != nil {
			return nil, err
		}
		return &tsast.Call{Callee: fn, Args: args}, nil
	case *output.InvokeMethodExpr:
		receiver, err := t.TranslateExpression(e.Receiver)
		if err != nil {
			return nil, err
		}
		args, err := t.list(e.Args)
		if err != nil {
			return nil, err
		}
		return &tsast.Call{Callee: tsast.NewPropertyAccess(receiver, e.Name), Args: args}, nil
	case *output.InstantiateExpr:
		ctor, err := t.TranslateExpression(e.ClassExpr)
		if err != nil {
			return nil, err
		}
		args, err := t.list(e.Args)
		if err != nil {
			return nil, err
		}
		return &tsast.New{Callee: ctor, Args: args}, nil
	case *output.BinaryOperatorExpr:
		token, err := BinaryOperatorToken(e.Operator)
		if err != nil {
			return nil, err
		}
		lhs, rhs, err := t.pair(e.Lhs, e.Rhs)
		if err != nil {
			return nil, err
		}
		return &tsast.Binary{Left: lhs, Operator: token, Right: rhs}, nil
	case *output.UnaryOperatorExpr:
		token, ok := unaryOperators[e.Operator]
		if !ok {
			return nil, fmt.Errorf("%w: unary operator %d", ErrUnsupportedOperator, e.Operator)
		}
		return t.prefix(token, e.Expr)
	case *output.NotExpr:
		return t.prefix("!", e.Condition)
	case *output.TypeofExpr:
		return t.prefix("typeof", e.Expr)
	case *output.VoidExpr:
		return t.prefix("void", e.Expr)
	case *output.ConditionalExpr:
		if e.FalseCase == nil {
			return nil, fmt.Errorf("%w: conditional without a false case", ErrMalformedNode)
		}
		cond, whenTrue, err := t.pair(e.Condition, e.TrueCase)
		if err != nil {
			return nil, err
		}
		whenFalse, err := t.TranslateExpression(e.FalseCase)
		if err != nil {
			return nil, err
		}
		return &tsast.Conditional{Condition: cond, WhenTrue: whenTrue, WhenFalse: whenFalse}, nil
	case *output.FunctionExpr:
		body, err := t.block(e.Statements)
		if err != nil {
			return nil, err
		}
		return &tsast.FunctionExpression{Name: e.Name, Params: paramNames(e.Params), Body: body}, nil
	case *output.ArrowFunctionExpr:
		arrow := &tsast.ArrowFunction{Params: paramNames(e.Params)}
		if e.Body != nil {
			body, err := t.TranslateExpression(e.Body)
			if err != nil {
				return nil, err
			}
			arrow.Body = body
			return arrow, nil
		}
		block, err := t.block(e.Statements)
		if err != nil {
			return nil, err
		}
		arrow.Block = block
		return arrow, nil
	case *output.LiteralArrayExpr:
		elements := make([]tsast.Expression, len(e.Entries))
		for i, entry := range e.Entries {
			if entry == nil {
				elements[i] = &tsast.NullLiteral{}
				continue
			}
			el, err := t.TranslateExpression(entry)
			if err != nil {
				return nil, err
			}
			elements[i] = el
		}
		return &tsast.ArrayLiteral{Elements: elements}, nil
	case *output.LiteralMapExpr:
		props := make([]*tsast.PropertyAssignment, len(e.Entries))
		for i, entry := range e.Entries {
			var value tsast.Expression = &tsast.NullLiteral{}
			if entry.Value != nil {
				v, err := t.TranslateExpression(entry.Value)
				if err != nil {
					return nil, fmt.Errorf("%s: %w", entry.Key, err)
				}
				value = v
			}
			props[i] = &tsast.PropertyAssignment{Name: entry.Key, Quoted: entry.Quoted, Value: value}
		}
		return &tsast.ObjectLiteral{Properties: props}, nil
	case *output.TemplateLiteralExpr:
		return t.template(e)
	case *output.TaggedTemplateLiteralExpr:
		tag, err := t.TranslateExpression(e.Tag)
		if err != nil {
			return nil, err
		}
		if e.Template == nil {
			return nil, fmt.Errorf("%w: tagged template without a template", ErrMalformedNode)
		}
		tmpl, err := t.template(e.Template)
		if err != nil {
			return nil, err
		}
		return &tsast.TaggedTemplate{Tag: tag, Template: tmpl}, nil
	case *output.ParenthesizedExpr:
		inner, err := t.TranslateExpression(e.Expr)
		if err != nil {
			return nil, err
		}
		return &tsast.Parenthesized{Expr: inner}, nil
	case *output.CommaExpr:
		if len(e.Parts) == 0 {
			return nil, fmt.Errorf("%w: empty comma expression", ErrMalformedNode)
		}
		parts, err := t.list(e.Parts)
		if err != nil {
			return nil, err
		}
		result := parts[0]
		for _, part := range parts[1:] {
			result = &tsast.Binary{Left: result, Operator: ",", Right: part}
		}
		return result, nil
	case *output.RegularExpressionLiteral:
		return &tsast.RegexLiteral{Pattern: e.Body, Flags: e.Flags}, nil
	case *output.DynamicImportExpr:
		return tsast.NewCall(tsast.NewIdentifier("import"), tsast.NewStringLiteral(e.URL)), nil
	case *output.ExternalExpr:
		alias, ok := t.aliases[e.Value.ModuleName]
		if !ok {
			return nil, fmt.Errorf("%w: %q", ErrUnresolvedModule, e.Value.ModuleName)
		}
		return tsast.NewPropertyAccess(tsast.NewIdentifier(alias), e.Value.Name), nil
	case *output.WrappedNodeExpr:
		node, ok := e.Node.(tsast.Expression)
		if !ok {
			return nil, fmt.Errorf("%w: wrapped node of type %T", ErrMalformedNode, e.Node)
		}
		return node, nil
	case *output.LocalizedStringExpr:
		return nil, ErrLocalizedStringUnsupported
	}
	return nil, fmt.Errorf("%w: unknown expression %T", ErrMalformedNode, e)
}

// TranslateStatement lowers an IR statement.
func (t *Translator) TranslateStatement(s output.Statement) (tsast.Statement, error) {
	switch s := s.(type) {
	case *output.DeclareVarStmt:
		keyword := "let"
		if s.HasModifier(output.StmtModifierFinal) {
			keyword = "const"
		}
		decl := &tsast.VariableStatement{Keyword: keyword, Name: s.Name}
		if s.Value != nil {
			init, err := t.TranslateExpression(s.Value)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", s.Name, err)
			}
			decl.Init = init
		}
		return decl, nil
	case *output.DeclareFunctionStmt:
		body, err := t.block(s.Statements)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", s.Name, err)
		}
		return &tsast.FunctionDeclaration{Name: s.Name, Params: paramNames(s.Params), Body: body}, nil
	case *output.ExpressionStatement:
		expr, err := t.TranslateExpression(s.Expr)
		if err != nil {
			return nil, err
		}
		return &tsast.ExpressionStatement{Expr: expr}, nil
	case *output.ReturnStatement:
		if s.Value == nil {
			return nil, fmt.Errorf("%w: return without a value", ErrMalformedNode)
		}
		value, err := t.TranslateExpression(s.Value)
		if err != nil {
			return nil, err
		}
		return &tsast.ReturnStatement{Expr: value}, nil
	case *output.IfStmt:
		cond, err := t.TranslateExpression(s.Condition)
		if err != nil {
			return nil, err
		}
		then, err := t.block(s.TrueCase)
		if err != nil {
			return nil, err
		}
		stmt := &tsast.IfStatement{Condition: cond, Then: then}
		if len(s.FalseCase) > 0 {
			if stmt.Else, err = t.block(s.FalseCase); err != nil {
				return nil, err
			}
		}
		return stmt, nil
	}
	return nil, fmt.Errorf("%w: unknown statement %T", ErrMalformedNode, s)
}

// TranslateStatements lowers a statement list.
func (t *Translator) TranslateStatements(stmts []output.Statement) ([]tsast.Statement, error) {
	result := make([]tsast.Statement, 0, len(stmts))
	for _, s := range stmts {
		lowered, err := t.TranslateStatement(s)
		if err != nil {
			return nil, err
		}
		result = append(result, lowered)
	}
	return result, nil
}

func translateLiteral(e *output.LiteralExpr) (tsast.Expression, error) {
	switch v := e.Value.(type) {
	case nil:
		return &tsast.NullLiteral{}, nil
	case bool:
		return &tsast.BooleanLiteral{Value: v}, nil
	case string:
		return tsast.NewStringLiteral(v), nil
	case int:
		return numeric(float64(v)), nil
	case int64:
		return numeric(float64(v)), nil
	case float64:
		return numeric(v), nil
	}
	return nil, fmt.Errorf("%w: literal of type %T", ErrMalformedNode, e.Value)
}

// numeric keeps the sign out of the numeric literal itself.
func numeric(v float64) tsast.Expression {
	if v < 0 {
		return &tsast.PrefixUnary{Operator: "-", Operand: &tsast.NumericLiteral{Value: -v}}
	}
	return &tsast.NumericLiteral{Value: v}
}

func (t *Translator) template(e *output.TemplateLiteralExpr) (tsast.Expression, error) {
	if len(e.Elements) != len(e.Expressions)+1 {
		return nil, fmt.Errorf("%w: template literal with %d chunks and %d expressions",
			ErrMalformedNode, len(e.Elements), len(e.Expressions))
	}
	if len(e.Expressions) == 0 {
		return &tsast.NoSubstitutionTemplate{Text: e.Elements[0].Text}, nil
	}
	spans := make([]*tsast.TemplateSpan, len(e.Expressions))
	for i, expr := range e.Expressions {
		lowered, err := t.TranslateExpression(expr)
		if err != nil {
			return nil, err
		}
		spans[i] = &tsast.TemplateSpan{
			Expr:    lowered,
			Literal: e.Elements[i+1].Text,
			Tail:    i == len(e.Expressions)-1,
		}
	}
	return &tsast.TemplateExpression{Head: e.Elements[0].Text, Spans: spans}, nil
}

func (t *Translator) prefix(op string, operand output.Expression) (tsast.Expression, error) {
	inner, err := t.TranslateExpression(operand)
	if err != nil {
		return nil, err
	}
	return &tsast.PrefixUnary{Operator: op, Operand: inner}, nil
}

func (t *Translator) pair(a, b output.Expression) (tsast.Expression, tsast.Expression, error) {
	first, err := t.TranslateExpression(a)
	if err != nil {
		return nil, nil, err
	}
	second, err := t.TranslateExpression(b)
	if err != nil {
		return nil, nil, err
	}
	return first, second, nil
}

func (t *Translator) list(exprs []output.Expression) ([]tsast.Expression, error) {
	result := make([]tsast.Expression, len(exprs))
	for i, e := range exprs {
		lowered, err := t.TranslateExpression(e)
		if err != nil {
			return nil, err
		}
		result[i] = lowered
	}
	return result, nil
}

func (t *Translator) block(stmts []output.Statement) (*tsast.Block, error) {
	lowered, err := t.TranslateStatements(stmts)
	if err != nil {
		return nil, err
	}
	return &tsast.Block{Statements: lowered}, nil
}

func paramNames(params []*output.FnParam) []string {
	names := make([]string, len(params))
	for i, p := range params {
		names[i] = p.Name
	}
	return names
}

package tsast

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
)

var legalIdentifierRe = regexp.MustCompile(`^[$A-Za-z_\x{80}-\x{10FFFF}][0-9A-Za-z_$\x{80}-\x{10FFFF}]*$`)

// PrintExpression prints a single expression.
func PrintExpression(e Expression) string {
	p := &printer{ctx: NewEmitterContext(0)}
	p.expr(e, precLowest)
	return p.ctx.ToSource()
}

// PrintStatement prints a single statement.
func PrintStatement(s Statement) string {
	p := &printer{ctx: NewEmitterContext(0)}
	p.stmt(s)
	return p.ctx.ToSource()
}

// PrintFile prints a source file. Raw statements are copied through as they
// are; any other statement is printed on lines of its own, its continuation
// lines indented to match the column it starts at.
func PrintFile(f *SourceFile) string {
	var sb strings.Builder
	for _, s := range f.Statements {
		if raw, ok := s.(*RawStatement); ok {
			sb.WriteString(raw.Text)
			continue
		}
		text := PrintStatement(s)
		if lead := trailingIndent(sb.String()); lead != "" {
			text = strings.ReplaceAll(text, "\n", "\n"+lead)
		}
		sb.WriteString(text)
		sb.WriteByte('\n')
	}
	return sb.String()
}

func trailingIndent(s string) string {
	start := strings.LastIndexByte(s, '\n') + 1
	tail := s[start:]
	if strings.TrimLeft(tail, " \t") != "" {
		return ""
	}
	return tail
}

type printer struct {
	ctx *EmitterContext
}

func (p *printer) print(s string) { p.ctx.Print(s) }

func (p *printer) expr(e Expression, level precedence) {
	wrap := precedenceOf(e) < level
	if wrap {
		p.print("(")
		level = precLowest
	}
	switch e := e.(type) {
	case *Identifier:
		p.print(e.Name)
	case *StringLiteral:
		p.print(QuoteString(e.Value))
	case *NumericLiteral:
		p.print(FormatNumber(e.Value))
	case *BooleanLiteral:
		p.print(strconv.FormatBool(e.Value))
	case *NullLiteral:
		p.print("null")
	case *RegexLiteral:
		p.print("/" + e.Pattern + "/" + e.Flags)
	case *PrefixUnary:
		p.prefixUnary(e)
	case *Binary:
		p.binary(e)
	case *Conditional:
		p.expr(e.Condition, precConditional+1)
		p.print(" ? ")
		p.expr(e.WhenTrue, precYield)
		p.print(" : ")
		p.expr(e.WhenFalse, precYield)
	case *Call:
		p.expr(e.Callee, precPostfix)
		p.args(e.Args)
	case *New:
		p.print("new ")
		if containsCall(e.Callee) {
			p.print("(")
			p.expr(e.Callee, precLowest)
			p.print(")")
		} else {
			p.expr(e.Callee, precMember)
		}
		p.args(e.Args)
	case *PropertyAccess:
		if n, ok := e.Expr.(*NumericLiteral); ok && !strings.ContainsAny(FormatNumber(n.Value), ".e") {
			p.print("(")
			p.expr(e.Expr, precLowest)
			p.print(")")
		} else {
			p.expr(e.Expr, precPostfix)
		}
		p.print("." + e.Name)
	case *ElementAccess:
		p.expr(e.Expr, precPostfix)
		p.print("[")
		p.expr(e.Index, precLowest)
		p.print("]")
	case *ArrowFunction:
		p.print("(" + strings.Join(e.Params, ", ") + ") => ")
		if e.Block != nil {
			p.block(e.Block)
		} else if startsWithBrace(e.Body) {
			p.print("(")
			p.expr(e.Body, precLowest)
			p.print(")")
		} else {
			p.expr(e.Body, precYield)
		}
	case *FunctionExpression:
		p.print("function ")
		if e.Name != "" {
			p.print(e.Name)
		}
		p.print("(" + strings.Join(e.Params, ", ") + ") ")
		p.block(e.Body)
	case *ObjectLiteral:
		p.object(e)
	case *ArrayLiteral:
		p.print("[")
		for i, el := range e.Elements {
			if i > 0 {
				p.print(", ")
			}
			p.expr(el, precYield)
		}
		p.print("]")
	case *TemplateExpression:
		p.print("`" + escapeTemplate(e.Head))
		for _, span := range e.Spans {
			p.print("${")
			p.expr(span.Expr, precLowest)
			p.print("}" + escapeTemplate(span.Literal))
		}
		p.print("`")
	case *NoSubstitutionTemplate:
		p.print("`" + escapeTemplate(e.Text) + "`")
	case *TaggedTemplate:
		p.expr(e.Tag, precPostfix)
		p.expr(e.Template, precLowest)
	case *Parenthesized:
		p.print("(")
		p.expr(e.Expr, precLowest)
		p.print(")")
	case *Raw:
		p.printLines(e.Text)
	default:
		panic(fmt.Sprintf("tsast: unexpected expression %T", e))
	}
	if wrap {
		p.print(")")
	}
}

func (p *printer) prefixUnary(e *PrefixUnary) {
	switch e.Operator {
	case "typeof", "void":
		p.print(e.Operator + " ")
	default:
		p.print(e.Operator)
		// Keep "- -x" and "+ +x" from fusing into a decrement or increment.
		if inner, ok := e.Operand.(*PrefixUnary); ok && (e.Operator == "-" || e.Operator == "+") && inner.Operator == e.Operator {
			p.print(" ")
		}
	}
	p.expr(e.Operand, precPrefix)
}

func (p *printer) binary(e *Binary) {
	prec := binaryPrecedence(e.Operator)
	leftLevel, rightLevel := prec, prec+1
	switch {
	case e.Operator == "**":
		// A unary operand on the left of "**" is a syntax error.
		leftLevel, rightLevel = precPostfix, prec
	case isAssignment(e.Operator):
		leftLevel, rightLevel = prec+1, prec
	}
	p.operand(e.Left, e.Operator, leftLevel)
	if e.Operator == "," {
		p.print(", ")
	} else {
		p.print(" " + e.Operator + " ")
	}
	p.operand(e.Right, e.Operator, rightLevel)
}

// operand prints one side of a binary expression. Mixing "??" with "||" or
// "&&" without parentheses is a syntax error, so such operands are wrapped.
func (p *printer) operand(e Expression, op string, level precedence) {
	if inner, ok := e.(*Binary); ok && mixesNullish(op, inner.Operator) {
		p.print("(")
		p.expr(e, precLowest)
		p.print(")")
		return
	}
	p.expr(e, level)
}

func mixesNullish(outer, inner string) bool {
	logical := func(op string) bool { return op == "||" || op == "&&" }
	return (outer == "??" && logical(inner)) || (logical(outer) && inner == "??")
}

func (p *printer) args(args []Expression) {
	p.print("(")
	for i, arg := range args {
		if i > 0 {
			p.print(", ")
		}
		p.expr(arg, precYield)
	}
	p.print(")")
}

func (p *printer) object(e *ObjectLiteral) {
	if len(e.Properties) == 0 {
		p.print("{}")
		return
	}
	p.ctx.Println("{")
	p.ctx.IncIndent()
	for i, prop := range e.Properties {
		p.print(PropertyName(prop.Name, prop.Quoted) + ": ")
		p.expr(prop.Value, precYield)
		if i < len(e.Properties)-1 {
			p.ctx.Println(",")
		} else {
			p.ctx.Println("")
		}
	}
	p.ctx.DecIndent()
	p.print("}")
}

func (p *printer) block(b *Block) {
	if b == nil || len(b.Statements) == 0 {
		p.print("{ }")
		return
	}
	p.ctx.Println("{")
	p.ctx.IncIndent()
	for _, s := range b.Statements {
		p.stmt(s)
	}
	p.ctx.DecIndent()
	p.print("}")
}

func (p *printer) printLines(text string) {
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		if i > 0 {
			p.ctx.Println("")
		}
		p.print(line)
	}
}

func (p *printer) stmt(s Statement) {
	switch s := s.(type) {
	case *VariableStatement:
		p.print(s.Keyword + " " + s.Name)
		if s.Init != nil {
			p.print(" = ")
			p.expr(s.Init, precYield)
		}
		p.ctx.Println(";")
	case *FunctionDeclaration:
		p.print("function " + s.Name + "(" + strings.Join(s.Params, ", ") + ") ")
		p.block(s.Body)
		p.ctx.Println("")
	case *ExpressionStatement:
		if startsWithBrace(s.Expr) || startsWithFunction(s.Expr) {
			p.print("(")
			p.expr(s.Expr, precLowest)
			p.print(")")
		} else {
			p.expr(s.Expr, precLowest)
		}
		p.ctx.Println(";")
	case *ReturnStatement:
		p.print("return")
		if s.Expr != nil {
			p.print(" ")
			p.expr(s.Expr, precLowest)
		}
		p.ctx.Println(";")
	case *IfStatement:
		p.print("if (")
		p.expr(s.Condition, precLowest)
		p.print(") ")
		p.block(s.Then)
		if s.Else != nil {
			p.print(" else ")
			p.block(s.Else)
		}
		p.ctx.Println("")
	case *Block:
		p.block(s)
		p.ctx.Println("")
	case *ImportDeclaration:
		switch {
		case s.Namespace != "":
			p.print("import * as " + s.Namespace + " from ")
		case s.Default != "":
			p.print("import " + s.Default + " from ")
		default:
			p.print("import ")
		}
		p.ctx.Println(QuoteString(s.Module) + ";")
	case *ClassDeclaration:
		p.class(s)
		p.ctx.Println("")
	case *RawStatement:
		p.printLines(s.Text)
		p.ctx.Println("")
	default:
		panic(fmt.Sprintf("tsast: unexpected statement %T", s))
	}
}

func (p *printer) class(c *ClassDeclaration) {
	for _, m := range c.Modifiers {
		p.print(m + " ")
	}
	p.print("class")
	if c.Name != "" {
		p.print(" " + c.Name)
	}
	p.print(c.TypeParameters)
	if c.Heritage != "" {
		p.print(" " + c.Heritage)
	}
	if len(c.Members) == 0 {
		p.ctx.Println(" {")
		p.print("}")
		return
	}
	p.ctx.Println(" {")
	p.ctx.IncIndent()
	for _, m := range c.Members {
		switch m := m.(type) {
		case *RawMember:
			p.printLines(m.Text)
			p.ctx.Println("")
		case *PropertyDeclaration:
			if m.Static {
				p.print("static ")
			}
			p.print(PropertyName(m.Name, false))
			if m.Init != nil {
				p.print(" = ")
				p.expr(m.Init, precYield)
			}
			p.ctx.Println(";")
		}
	}
	p.ctx.DecIndent()
	p.print("}")
}

// QuoteString returns s as a double-quoted string literal.
func QuoteString(s string) string {
	var sb strings.Builder
	sb.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\u2028', '\u2029':
			fmt.Fprintf(&sb, `\u%04X`, r)
		default:
			if r < 0x20 {
				fmt.Fprintf(&sb, `\u%04X`, r)
			} else {
				sb.WriteRune(r)
			}
		}
	}
	sb.WriteByte('"')
	return sb.String()
}

// PropertyName prints an object or class property key, quoting it when it is
// not a valid identifier.
func PropertyName(name string, quoted bool) string {
	if quoted || !legalIdentifierRe.MatchString(name) {
		return QuoteString(name)
	}
	return name
}

// FormatNumber prints a number the way JavaScript does.
func FormatNumber(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	if v == math.Trunc(v) && math.Abs(v) < 1e21 {
		return strconv.FormatFloat(v, 'f', -1, 64)
	}
	s := strconv.FormatFloat(v, 'g', -1, 64)
	if i := strings.IndexByte(s, 'e'); i >= 0 {
		mantissa, exp := s[:i], s[i+1:]
		sign := exp[:1]
		digits := strings.TrimLeft(exp[1:], "0")
		if digits == "" {
			digits = "0"
		}
		s = mantissa + "e" + sign + digits
	}
	return s
}

func escapeTemplate(s string) string {
	var sb strings.Builder
	for i := 0; i < len(s); i++ {
		switch c := s[i]; c {
		case '`', '\\':
			sb.WriteByte('\\')
			sb.WriteByte(c)
		case '$':
			if i+1 < len(s) && s[i+1] == '{' {
				sb.WriteString(`\$`)
			} else {
				sb.WriteByte(c)
			}
		default:
			sb.WriteByte(c)
		}
	}
	return sb.String()
}

// leftmost returns the expression whose first token starts e.
func leftmost(e Expression) Expression {
	for {
		switch x := e.(type) {
		case *Binary:
			e = x.Left
		case *Call:
			e = x.Callee
		case *PropertyAccess:
			e = x.Expr
		case *ElementAccess:
			e = x.Expr
		case *Conditional:
			e = x.Condition
		case *TaggedTemplate:
			e = x.Tag
		default:
			return e
		}
	}
}

func startsWithBrace(e Expression) bool {
	switch x := leftmost(e).(type) {
	case *ObjectLiteral:
		return true
	case *Raw:
		return strings.HasPrefix(strings.TrimSpace(x.Text), "{")
	}
	return false
}

func startsWithFunction(e Expression) bool {
	_, ok := leftmost(e).(*FunctionExpression)
	return ok
}

// containsCall reports whether a `new` callee has a call in its member chain,
// which would otherwise be parsed as the constructor call itself.
func containsCall(e Expression) bool {
	for {
		switch x := e.(type) {
		case *Call:
			return true
		case *PropertyAccess:
			e = x.Expr
		case *ElementAccess:
			e = x.Expr
		default:
			return false
		}
	}
}

// Package pool hoists shared literal constants out of generated definitions.
package pool

import (
	"fmt"
	"strings"

	"ngc-lite/packages/compiler/output"
)

const (
	constantPrefix = "_c"
	// PoolInclusionLengthThresholdForStrings defines the length threshold for strings
	// Generally all primitive values are excluded from the ConstantPool, but there is an exclusion
	// for strings that reach a certain length threshold.
	PoolInclusionLengthThresholdForStrings = 50
)

type pooledLiteral struct {
	literal output.Expression
	usage   *output.ReadVarExpr
}

// ConstantPool is a pool of constants that can be reused. A pool belongs to
// exactly one compilation and is flushed once, after the file is rewritten.
type ConstantPool struct {
	statements   []output.Statement
	literals     map[string]*pooledLiteral
	claimedNames map[string]int
}

// NewConstantPool creates a new ConstantPool
func NewConstantPool() *ConstantPool {
	return &ConstantPool{
		literals:     make(map[string]*pooledLiteral),
		claimedNames: make(map[string]int),
	}
}

// GetConstLiteral returns a constant literal, potentially shared.
//
// The first request for a literal returns it unchanged unless forceShared is
// set. Any later request for an equal literal declares a `const` in the pool
// and returns a reference to it.
func (cp *ConstantPool) GetConstLiteral(literal output.Expression, forceShared bool) output.Expression {
	if isLiteralExpr(literal) && !isLongStringLiteral(literal) {
		// Do not put simple literals into the constant pool.
		return literal
	}
	key := GenericKeyFnInstance.KeyOf(literal)
	entry, exists := cp.literals[key]
	if !exists {
		entry = &pooledLiteral{literal: literal}
		cp.literals[key] = entry
	}
	if entry.usage != nil {
		return entry.usage
	}
	if exists || forceShared {
		name := cp.freshName()
		cp.statements = append(cp.statements, output.DeclareConst(name, literal))
		entry.usage = output.Variable(name)
		return entry.usage
	}
	return literal
}

// UniqueName produces a unique name in the context of this pool.
// The name might be unique among different prefixes if any of the prefixes end in
// a digit so the prefix should be a constant string (not based on user input) and
// must not end in a digit.
func (cp *ConstantPool) UniqueName(name string, alwaysIncludeSuffix bool) string {
	count := cp.claimedNames[name]
	result := name
	if count != 0 || alwaysIncludeSuffix {
		result = fmt.Sprintf("%s%d", name, count)
	}
	cp.claimedNames[name] = count + 1
	return result
}

func (cp *ConstantPool) freshName() string {
	return cp.UniqueName(constantPrefix, true)
}

// Statements returns all statements in the pool, in declaration order
func (cp *ConstantPool) Statements() []output.Statement {
	return cp.statements
}

// AddStatement adds a statement to the pool
func (cp *ConstantPool) AddStatement(stmt output.Statement) {
	cp.statements = append(cp.statements, stmt)
}

// ExpressionKeyFn is an interface for generating keys from expressions
type ExpressionKeyFn interface {
	KeyOf(expr output.Expression) string
}

// GenericKeyFn generates keys for expressions
type GenericKeyFn struct{}

var GenericKeyFnInstance = &GenericKeyFn{}

func (g *GenericKeyFn) KeyOf(expr output.Expression) string {
	switch e := expr.(type) {
	case nil:
		return "null"
	case *output.LiteralExpr:
		if str, ok := e.Value.(string); ok {
			return fmt.Sprintf("%q", str)
		}
		return fmt.Sprintf("%v", e.Value)
	case *output.RegularExpressionLiteral:
		return fmt.Sprintf("/%s/%s", e.Body, e.Flags)
	case *output.LiteralArrayExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			entries[i] = g.KeyOf(entry)
		}
		return "[" + strings.Join(entries, ",") + "]"
	case *output.LiteralMapExpr:
		entries := make([]string, len(e.Entries))
		for i, entry := range e.Entries {
			key := entry.Key
			if entry.Quoted {
				key = fmt.Sprintf("%q", key)
			}
			entries[i] = key + ":" + g.KeyOf(entry.Value)
		}
		return "{" + strings.Join(entries, ",") + "}"
	case *output.ExternalExpr:
		return fmt.Sprintf("import(%q, %q)", e.Value.ModuleName, e.Value.Name)
	case *output.ReadVarExpr:
		return fmt.Sprintf("read(%s)", e.Name)
	case *output.TypeofExpr:
		return fmt.Sprintf("typeof(%s)", g.KeyOf(e.Expr))
	case *output.WrappedNodeExpr:
		return fmt.Sprintf("wrapped(%p)", e)
	}
	panic(fmt.Sprintf("GenericKeyFn does not handle expressions of type %T", expr))
}

func isLongStringLiteral(expr output.Expression) bool {
	if lit, ok := expr.(*output.LiteralExpr); ok {
		if str, ok := lit.Value.(string); ok {
			return len(str) >= PoolInclusionLengthThresholdForStrings
		}
	}
	return false
}

func isLiteralExpr(expr output.Expression) bool {
	_, ok := expr.(*output.LiteralExpr)
	return ok
}

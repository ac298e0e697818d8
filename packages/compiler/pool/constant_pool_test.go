package pool

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ngc-lite/packages/compiler/output"
)

func TestConstantPool(t *testing.T) {
	t.Run("should keep simple literals inline", func(t *testing.T) {
		cp := NewConstantPool()
		lit := output.Literal("a")
		assert.Same(t, lit, cp.GetConstLiteral(lit, true))
		assert.Empty(t, cp.Statements())
	})

	t.Run("should share a literal on its second use", func(t *testing.T) {
		cp := NewConstantPool()
		first := cp.GetConstLiteral(output.LiteralArr(output.Literal("a"), output.Literal(1)), false)
		_, isArray := first.(*output.LiteralArrayExpr)
		assert.True(t, isArray)
		assert.Empty(t, cp.Statements())

		second := cp.GetConstLiteral(output.LiteralArr(output.Literal("a"), output.Literal(1)), false)
		third := cp.GetConstLiteral(output.LiteralArr(output.Literal("a"), output.Literal(1)), false)
		ref, ok := second.(*output.ReadVarExpr)
		require.True(t, ok)
		assert.Equal(t, "_c0", ref.Name)
		assert.Same(t, second, third)
		require.Len(t, cp.Statements(), 1)
		assert.Equal(t, "_c0", cp.Statements()[0].(*output.DeclareVarStmt).Name)
	})

	t.Run("should share a literal at once when forced", func(t *testing.T) {
		cp := NewConstantPool()
		first := cp.GetConstLiteral(output.LiteralArr(output.Literal("x")), true)
		second := cp.GetConstLiteral(output.LiteralArr(output.Literal("y")), true)
		assert.Equal(t, "_c0", first.(*output.ReadVarExpr).Name)
		assert.Equal(t, "_c1", second.(*output.ReadVarExpr).Name)
	})

	t.Run("should pool long strings", func(t *testing.T) {
		cp := NewConstantPool()
		long := strings.Repeat("x", PoolInclusionLengthThresholdForStrings)
		assert.Same(t, cp.GetConstLiteral(output.Literal(long), true), cp.GetConstLiteral(output.Literal(long), false))
		assert.Len(t, cp.Statements(), 1)
	})
}

func TestUniqueName(t *testing.T) {
	cp := NewConstantPool()
	assert.Equal(t, "Cmp_Template", cp.UniqueName("Cmp_Template", false))
	assert.Equal(t, "Cmp_Template1", cp.UniqueName("Cmp_Template", false))
	assert.Equal(t, "_t0", cp.UniqueName("_t", true))
}

func TestKeyOf(t *testing.T) {
	tests := []struct {
		name string
		expr output.Expression
		want string
	}{
		{"null", nil, "null"},
		{"string", output.Literal("a"), `"a"`},
		{"number", output.Literal(1), "1"},
		{"array", output.LiteralArr(output.Literal("a"), output.Literal(true)), `["a",true]`},
		{"map", output.LiteralMap(output.Entry("a", output.Literal(1)), output.QuotedEntry("b-c", output.Literal(2))), `{a:1,"b-c":2}`},
		{"variable", output.Variable("ctx"), "read(ctx)"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GenericKeyFnInstance.KeyOf(tt.expr))
		})
	}
}

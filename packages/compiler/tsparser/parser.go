// Package tsparser reads TypeScript source with tree-sitter and exposes the
// pieces the compiler rewrites: decorated classes, their decorators and their
// members.
package tsparser

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"
)

// File is a parsed source file. Nodes handed out by a File are only valid
// until Close is called.
type File struct {
	Name   string
	Source []byte
	Root   *sitter.Node
	tree   *sitter.Tree
}

// Parse parses TypeScript source. Files ending in .tsx use the TSX grammar.
func Parse(ctx context.Context, source []byte, fileName string) (*File, error) {
	parser := sitter.NewParser()
	if strings.HasSuffix(fileName, ".tsx") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}
	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		return nil, fmt.Errorf("tree-sitter parse failed: %w", err)
	}
	return &File{
		Name:   fileName,
		Source: source,
		Root:   tree.RootNode(),
		tree:   tree,
	}, nil
}

// ParseExpression parses a standalone expression, as found in a template
// binding. The returned node is the expression itself.
func ParseExpression(ctx context.Context, expr string) (*File, *sitter.Node, error) {
	// Parenthesize so object literals are not read as blocks.
	source := []byte("(" + expr + "\n);")
	f, err := Parse(ctx, source, "expression.ts")
	if err != nil {
		return nil, nil, err
	}
	stmt := f.Root.NamedChild(0)
	if f.Root.HasError() || f.Root.NamedChildCount() != 1 || stmt == nil || stmt.Type() != "expression_statement" {
		f.Close()
		return nil, nil, fmt.Errorf("invalid expression %q", expr)
	}
	paren := stmt.NamedChild(0)
	if paren == nil || paren.Type() != "parenthesized_expression" || paren.NamedChildCount() != 1 {
		f.Close()
		return nil, nil, fmt.Errorf("invalid expression %q", expr)
	}
	return f, paren.NamedChild(0), nil
}

// Close releases the syntax tree.
func (f *File) Close() {
	if f.tree != nil {
		f.tree.Close()
		f.tree = nil
	}
}

// Text returns the source text of n.
func (f *File) Text(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return string(f.Source[n.StartByte():n.EndByte()])
}

// SyntaxErrors returns the ERROR and MISSING nodes of the tree, in source order.
func (f *File) SyntaxErrors() []*sitter.Node {
	var errs []*sitter.Node
	if !f.Root.HasError() {
		return nil
	}
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		if n.Type() == "ERROR" || n.IsMissing() {
			errs = append(errs, n)
			return
		}
		if !n.HasError() {
			return
		}
		for i := 0; i < int(n.ChildCount()); i++ {
			walk(n.Child(i))
		}
	}
	walk(f.Root)
	return errs
}

// Position returns the 1-based line and column of n.
func Position(n *sitter.Node) (line, col int) {
	p := n.StartPoint()
	return int(p.Row) + 1, int(p.Column) + 1
}

// NamedChildren returns the named children of n, skipping comments.
func NamedChildren(n *sitter.Node) []*sitter.Node {
	if n == nil {
		return nil
	}
	children := make([]*sitter.Node, 0, n.NamedChildCount())
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			continue
		}
		children = append(children, child)
	}
	return children
}

// Unwrap strips parentheses and type assertions (`x as T`, `x satisfies T`,
// `x!`) around an expression.
func Unwrap(n *sitter.Node) *sitter.Node {
	for n != nil {
		switch n.Type() {
		case "parenthesized_expression", "as_expression", "satisfies_expression", "non_null_expression":
			inner := n.NamedChild(0)
			if inner == nil {
				return n
			}
			n = inner
		default:
			return n
		}
	}
	return n
}

package tsparser

import (
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
)

// Class is a class declaration or class expression.
type Class struct {
	// Node is the class node itself.
	Node *sitter.Node
	// Outer is the node the class occupies in the file: the export statement
	// when the class is exported, otherwise Node.
	Outer *sitter.Node

	Name           string
	TypeParameters string
	Heritage       string
	Modifiers      []string
	Decorators     []*Decorator
	Members        []*Member
	// TopLevel is set for classes that are direct statements of the file,
	// optionally exported.
	TopLevel bool
}

// Decorator is one `@...` annotation.
type Decorator struct {
	Node *sitter.Node
	// Name is the source text of the call target, e.g. "Component" or
	// "core.Component".
	Name string
	// Args are the call arguments. Empty for a decorator that is not a call.
	Args   []*sitter.Node
	IsCall bool
}

// Member is one element of a class body.
type Member struct {
	Node *sitter.Node
	// Kind is the tree-sitter node type, e.g. "public_field_definition".
	Kind string
	Name string
	// Initializer is the value of a field, if any.
	Initializer *sitter.Node
	// Text is the source text of the member including its decorators and
	// trailing semicolon, with continuation lines dedented to the member's
	// own column.
	Text string
}

// Classes returns every class in the file in source order, outer classes
// before the classes nested in them.
func (f *File) Classes() []*Class {
	var classes []*Class
	var walk func(n *sitter.Node)
	walk = func(n *sitter.Node) {
		switch n.Type() {
		case "class_declaration", "abstract_class_declaration", "class":
			classes = append(classes, f.readClass(n))
		}
		for i := 0; i < int(n.NamedChildCount()); i++ {
			walk(n.NamedChild(i))
		}
	}
	walk(f.Root)
	return classes
}

func (f *File) readClass(n *sitter.Node) *Class {
	c := &Class{Node: n, Outer: n}
	if name := n.ChildByFieldName("name"); name != nil {
		c.Name = f.Text(name)
	}
	if tp := n.ChildByFieldName("type_parameters"); tp != nil {
		c.TypeParameters = f.Text(tp)
	}

	parent := n.Parent()
	if parent != nil && parent.Type() == "export_statement" {
		c.Outer = parent
		for i := 0; i < int(parent.ChildCount()); i++ {
			child := parent.Child(i)
			switch child.Type() {
			case "decorator":
				c.Decorators = append(c.Decorators, f.readDecorator(child))
			case "export", "default":
				c.Modifiers = append(c.Modifiers, child.Type())
			}
		}
		grand := parent.Parent()
		c.TopLevel = grand != nil && grand.Type() == "program"
	} else {
		c.TopLevel = parent != nil && parent.Type() == "program"
	}

	var body *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch child.Type() {
		case "decorator":
			c.Decorators = append(c.Decorators, f.readDecorator(child))
		case "abstract", "declare":
			c.Modifiers = append(c.Modifiers, child.Type())
		case "class_heritage":
			c.Heritage = f.Text(child)
		case "class_body":
			body = child
		}
	}
	if body != nil {
		c.Members = f.readMembers(body)
	}
	return c
}

func (f *File) readDecorator(n *sitter.Node) *Decorator {
	d := &Decorator{Node: n}
	expr := n.NamedChild(0)
	expr = Unwrap(expr)
	if expr == nil {
		return d
	}
	if expr.Type() == "call_expression" {
		d.IsCall = true
		d.Name = f.Text(expr.ChildByFieldName("function"))
		d.Args = NamedChildren(expr.ChildByFieldName("arguments"))
		return d
	}
	d.Name = f.Text(expr)
	return d
}

// readMembers groups the children of a class body into members. Method
// decorators are siblings of the method in the body, so they are folded into
// the member that follows them.
func (f *File) readMembers(body *sitter.Node) []*Member {
	var members []*Member
	pendingStart := -1
	var pendingNode *sitter.Node
	for i := 0; i < int(body.ChildCount()); i++ {
		child := body.Child(i)
		switch child.Type() {
		case "{", "}":
			continue
		case ";", ",":
			if len(members) > 0 && pendingStart < 0 {
				last := members[len(members)-1]
				if last.Node.EndByte() == child.StartByte() {
					last.Text += f.Text(child)
				}
			}
			continue
		case "decorator":
			if pendingStart < 0 {
				pendingStart = int(child.StartByte())
				pendingNode = child
			}
			continue
		}

		start := int(child.StartByte())
		startNode := child
		if pendingStart >= 0 {
			start = pendingStart
			startNode = pendingNode
			pendingStart = -1
			pendingNode = nil
		}
		m := &Member{
			Node: child,
			Kind: child.Type(),
			Text: dedent(string(f.Source[start:child.EndByte()]), int(startNode.StartPoint().Column)),
		}
		if name := child.ChildByFieldName("name"); name != nil {
			m.Name = f.Text(name)
		}
		if child.Type() == "public_field_definition" {
			m.Initializer = child.ChildByFieldName("value")
		}
		members = append(members, m)
	}
	return members
}

// Dedented returns the source text of n with continuation lines dedented to
// the column n starts at.
func (f *File) Dedented(n *sitter.Node) string {
	if n == nil {
		return ""
	}
	return dedent(f.Text(n), int(n.StartPoint().Column))
}

// dedent removes up to col leading blanks from every line after the first.
func dedent(text string, col int) string {
	if col == 0 || !strings.Contains(text, "\n") {
		return text
	}
	lines := strings.Split(text, "\n")
	for i := 1; i < len(lines); i++ {
		line := lines[i]
		n := 0
		for n < col && n < len(line) && (line[n] == ' ' || line[n] == '\t') {
			n++
		}
		lines[i] = line[n:]
	}
	return strings.Join(lines, "\n")
}

package tsast

import "strings"

const indentWith = "    "

// emittedLine represents a line being emitted
type emittedLine struct {
	parts  []string
	indent int
}

// EmitterContext accumulates printed output line by line and tracks the
// current indentation.
type EmitterContext struct {
	lines  []*emittedLine
	indent int
}

// NewEmitterContext creates a new EmitterContext
func NewEmitterContext(indent int) *EmitterContext {
	return &EmitterContext{
		lines:  []*emittedLine{{indent: indent}},
		indent: indent,
	}
}

func (ctx *EmitterContext) currentLine() *emittedLine {
	return ctx.lines[len(ctx.lines)-1]
}

// Print appends part to the current line
func (ctx *EmitterContext) Print(part string) {
	if part != "" {
		line := ctx.currentLine()
		line.parts = append(line.parts, part)
	}
}

// Println appends part and starts a new line
func (ctx *EmitterContext) Println(part string) {
	ctx.Print(part)
	ctx.lines = append(ctx.lines, &emittedLine{indent: ctx.indent})
}

// LineIsEmpty checks if the current line is empty
func (ctx *EmitterContext) LineIsEmpty() bool {
	return len(ctx.currentLine().parts) == 0
}

// IncIndent increases the indent
func (ctx *EmitterContext) IncIndent() {
	ctx.indent++
	if ctx.LineIsEmpty() {
		ctx.currentLine().indent = ctx.indent
	}
}

// DecIndent decreases the indent
func (ctx *EmitterContext) DecIndent() {
	ctx.indent--
	if ctx.LineIsEmpty() {
		ctx.currentLine().indent = ctx.indent
	}
}

// ToSource converts the context to source code
func (ctx *EmitterContext) ToSource() string {
	lines := ctx.lines
	if len(lines) > 0 && len(lines[len(lines)-1].parts) == 0 {
		lines = lines[:len(lines)-1]
	}
	result := make([]string, 0, len(lines))
	for _, line := range lines {
		if len(line.parts) > 0 {
			result = append(result, strings.Repeat(indentWith, line.indent)+strings.Join(line.parts, ""))
		} else {
			result = append(result, "")
		}
	}
	return strings.Join(result, "\n")
}

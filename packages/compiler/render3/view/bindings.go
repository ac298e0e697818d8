package view

import (
	"sort"

	"ngc-lite/packages/compiler/output"
	"ngc-lite/packages/compiler/render3/r3_identifiers"
	"ngc-lite/packages/compiler/template_parser"
	"ngc-lite/packages/compiler/util"
)

// ListenerFn builds the handler function of an event binding. `$event` is a
// parameter only when the handler reads it; the last statement is returned.
func ListenerFn(name string, event *template_parser.ParsedEvent) *output.FunctionExpr {
	body := make([]output.Statement, len(event.Handler))
	for i, expr := range event.Handler {
		if i == len(event.Handler)-1 {
			body[i] = output.Return(expr)
		} else {
			body[i] = output.Stmt(expr)
		}
	}
	var params []*output.FnParam
	if event.UsesEvent {
		params = output.Params(EVENT_NAME)
	}
	return output.Fn(params, body, util.SanitizeIdentifier(name))
}

// ListenerInstruction creates the `ɵɵlistener` call of an event binding.
func ListenerInstruction(event *template_parser.ParsedEvent, fnName string) output.Statement {
	args := []output.Expression{output.Literal(event.Name), ListenerFn(fnName, event)}
	switch event.Target {
	case "window":
		args = append(args, output.ImportExpr(r3_identifiers.ResolveWindow))
	case "document":
		args = append(args, output.ImportExpr(r3_identifiers.ResolveDocument))
	case "body":
		args = append(args, output.ImportExpr(r3_identifiers.ResolveBody))
	}
	return Instruction(r3_identifiers.Listener, args...)
}

// interpolationArgs flattens an interpolation into `s0, e0, s1, ..., sN`,
// dropping a trailing empty string.
func interpolationArgs(interpolation *template_parser.Interpolation) []output.Expression {
	var args []output.Expression
	for i, expr := range interpolation.Expressions {
		args = append(args, output.Literal(interpolation.Strings[i]), expr)
	}
	if last := interpolation.Strings[len(interpolation.Strings)-1]; last != "" {
		args = append(args, output.Literal(last))
	}
	return args
}

func isSingleton(interpolation *template_parser.Interpolation) bool {
	return len(interpolation.Expressions) == 1 && interpolation.Strings[0] == "" && interpolation.Strings[1] == ""
}

// InterpolationExpr builds the value of an interpolated property, e.g.
// `ɵɵinterpolate1("Hi ", ctx.name)`.
func InterpolationExpr(interpolation *template_parser.Interpolation) output.Expression {
	if isSingleton(interpolation) {
		return output.Call(output.ImportExpr(r3_identifiers.Interpolate), interpolation.Expressions[0])
	}
	args := interpolationArgs(interpolation)
	ref, variadic := r3_identifiers.InterpolateFor(len(interpolation.Expressions))
	if variadic {
		return output.Call(output.ImportExpr(ref), output.LiteralArr(args...))
	}
	return output.Call(output.ImportExpr(ref), args...)
}

// TextInterpolation creates the update instruction of an interpolated text
// node.
func TextInterpolation(interpolation *template_parser.Interpolation) output.Statement {
	if isSingleton(interpolation) {
		return Instruction(r3_identifiers.TextInterpolate, interpolation.Expressions[0])
	}
	args := interpolationArgs(interpolation)
	ref, variadic := r3_identifiers.TextInterpolateFor(len(interpolation.Expressions))
	if variadic {
		return Instruction(ref, output.LiteralArr(args...))
	}
	return Instruction(ref, args...)
}

// UpdateOp is one update instruction of a slot with its ordering rank and
// the binding slots it consumes.
type UpdateOp struct {
	Stmt output.Statement
	Rank int
	Vars int
}

// Update ranks follow the order the runtime expects styling and property
// instructions in.
func templateRank(prop *template_parser.ParsedProperty) int {
	interpolated := prop.Interpolation != nil
	switch prop.Type {
	case template_parser.BindingTypeStyleMap:
		return 0
	case template_parser.BindingTypeClassMap:
		return 1
	case template_parser.BindingTypeStyle:
		return 2
	case template_parser.BindingTypeClass:
		return 3
	case template_parser.BindingTypeAttribute:
		if interpolated {
			return 4
		}
		return 7
	}
	if interpolated {
		return 5
	}
	return 6
}

func hostRank(prop *template_parser.ParsedProperty) int {
	switch prop.Type {
	case template_parser.BindingTypeProperty:
		if prop.Interpolation != nil {
			return 0
		}
		return 1
	case template_parser.BindingTypeAttribute:
		return 2
	case template_parser.BindingTypeStyleMap:
		return 3
	case template_parser.BindingTypeClassMap:
		return 4
	case template_parser.BindingTypeStyle:
		return 5
	}
	return 6
}

// PropertyUpdate creates the update instruction of a property binding. Host
// bindings write DOM properties directly.
func PropertyUpdate(prop *template_parser.ParsedProperty, host bool) UpdateOp {
	value, vars := prop.Value, 1
	if prop.Interpolation != nil {
		value, vars = InterpolationExpr(prop.Interpolation), len(prop.Interpolation.Expressions)
	}
	op := UpdateOp{Rank: templateRank(prop), Vars: vars}
	if host {
		op.Rank = hostRank(prop)
	}
	switch prop.Type {
	case template_parser.BindingTypeAttribute:
		op.Stmt = Instruction(r3_identifiers.Attribute, output.Literal(prop.Name), value)
	case template_parser.BindingTypeClass:
		op.Stmt, op.Vars = Instruction(r3_identifiers.ClassProp, output.Literal(prop.Name), value), 2
	case template_parser.BindingTypeStyle:
		args := []output.Expression{output.Literal(prop.Name), value}
		if prop.Unit != "" {
			args = append(args, output.Literal(prop.Unit))
		}
		op.Stmt, op.Vars = Instruction(r3_identifiers.StyleProp, args...), 2
	case template_parser.BindingTypeClassMap:
		op.Stmt, op.Vars = Instruction(r3_identifiers.ClassMap, value), 2
	case template_parser.BindingTypeStyleMap:
		op.Stmt, op.Vars = Instruction(r3_identifiers.StyleMap, value), 2
	default:
		ref := r3_identifiers.Property
		if host {
			ref = r3_identifiers.DomProperty
		}
		op.Stmt = Instruction(ref, output.Literal(prop.Name), value)
	}
	return op
}

// OrderUpdates sorts the update instructions of one slot by rank, keeping
// the source order within a rank.
func OrderUpdates(ops []UpdateOp) []UpdateOp {
	sort.SliceStable(ops, func(i, j int) bool { return ops[i].Rank < ops[j].Rank })
	return ops
}

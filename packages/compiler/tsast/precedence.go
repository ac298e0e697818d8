package tsast

type precedence int

const (
	precLowest precedence = iota
	precComma
	precYield
	precAssign
	precConditional
	precNullishCoalescing
	precLogicalOr
	precLogicalAnd
	precBitwiseOr
	precBitwiseXor
	precBitwiseAnd
	precEquals
	precCompare
	precShift
	precAdd
	precMultiply
	precExponentiation
	precPrefix
	precPostfix
	precNew
	precCall
	precMember
	precPrimary
)

var binaryPrecedences = map[string]precedence{
	",":          precComma,
	"=":          precAssign,
	"+=":         precAssign,
	"-=":         precAssign,
	"*=":         precAssign,
	"/=":         precAssign,
	"%=":         precAssign,
	"**=":        precAssign,
	"&&=":        precAssign,
	"||=":        precAssign,
	"??=":        precAssign,
	"??":         precNullishCoalescing,
	"||":         precLogicalOr,
	"&&":         precLogicalAnd,
	"|":          precBitwiseOr,
	"^":          precBitwiseXor,
	"&":          precBitwiseAnd,
	"==":         precEquals,
	"!=":         precEquals,
	"===":        precEquals,
	"!==":        precEquals,
	"<":          precCompare,
	"<=":         precCompare,
	">":          precCompare,
	">=":         precCompare,
	"in":         precCompare,
	"instanceof": precCompare,
	"<<":         precShift,
	">>":         precShift,
	">>>":        precShift,
	"+":          precAdd,
	"-":          precAdd,
	"*":          precMultiply,
	"/":          precMultiply,
	"%":          precMultiply,
	"**":         precExponentiation,
}

func binaryPrecedence(op string) precedence {
	if p, ok := binaryPrecedences[op]; ok {
		return p
	}
	return precLowest
}

func isAssignment(op string) bool {
	return binaryPrecedence(op) == precAssign
}

func precedenceOf(e Expression) precedence {
	switch e := e.(type) {
	case *Binary:
		return binaryPrecedence(e.Operator)
	case *Conditional:
		return precConditional
	case *ArrowFunction:
		return precAssign
	case *PrefixUnary:
		return precPrefix
	case *Call, *TaggedTemplate:
		return precCall
	case *New:
		return precNew
	case *PropertyAccess, *ElementAccess:
		return precMember
	case *Raw:
		if e.Primary {
			return precPrimary
		}
		return precAssign
	}
	return precPrimary
}

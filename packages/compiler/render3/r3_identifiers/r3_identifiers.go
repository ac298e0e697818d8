// Package r3_identifiers lists the runtime symbols generated definitions
// refer to.
package r3_identifiers

import (
	"ngc-lite/packages/compiler/output"
)

// CORE is the logical module every runtime symbol belongs to. The compiler
// maps it to the namespace import it injects into each file.
const CORE = "@angular/core"

func ref(name string) output.ExternalReference {
	return output.ExternalReference{ModuleName: CORE, Name: name}
}

// Definitions
var (
	DefineComponent  = ref("ɵɵdefineComponent")
	DefineDirective  = ref("ɵɵdefineDirective")
	DefinePipe       = ref("ɵɵdefinePipe")
	DefineInjectable = ref("ɵɵdefineInjectable")

	ProvidersFeature = ref("ɵɵProvidersFeature")
)

// Instructions
var (
	ElementStart = ref("ɵɵelementStart")
	ElementEnd   = ref("ɵɵelementEnd")
	Element      = ref("ɵɵelement")

	Advance = ref("ɵɵadvance")

	Text             = ref("ɵɵtext")
	TextInterpolate  = ref("ɵɵtextInterpolate")
	TextInterpolate1 = ref("ɵɵtextInterpolate1")
	TextInterpolate2 = ref("ɵɵtextInterpolate2")
	TextInterpolate3 = ref("ɵɵtextInterpolate3")
	TextInterpolate4 = ref("ɵɵtextInterpolate4")
	TextInterpolate5 = ref("ɵɵtextInterpolate5")
	TextInterpolate6 = ref("ɵɵtextInterpolate6")
	TextInterpolate7 = ref("ɵɵtextInterpolate7")
	TextInterpolate8 = ref("ɵɵtextInterpolate8")
	TextInterpolateV = ref("ɵɵtextInterpolateV")

	Interpolate  = ref("ɵɵinterpolate")
	Interpolate1 = ref("ɵɵinterpolate1")
	Interpolate2 = ref("ɵɵinterpolate2")
	Interpolate3 = ref("ɵɵinterpolate3")
	Interpolate4 = ref("ɵɵinterpolate4")
	Interpolate5 = ref("ɵɵinterpolate5")
	Interpolate6 = ref("ɵɵinterpolate6")
	Interpolate7 = ref("ɵɵinterpolate7")
	Interpolate8 = ref("ɵɵinterpolate8")
	InterpolateV = ref("ɵɵinterpolateV")

	Property    = ref("ɵɵproperty")
	DomProperty = ref("ɵɵdomProperty")
	Attribute   = ref("ɵɵattribute")
	ClassProp   = ref("ɵɵclassProp")
	StyleProp   = ref("ɵɵstyleProp")
	ClassMap    = ref("ɵɵclassMap")
	StyleMap    = ref("ɵɵstyleMap")

	Listener        = ref("ɵɵlistener")
	ResolveWindow   = ref("ɵɵresolveWindow")
	ResolveDocument = ref("ɵɵresolveDocument")
	ResolveBody     = ref("ɵɵresolveBody")

	ViewQuerySignal    = ref("ɵɵviewQuerySignal")
	ContentQuerySignal = ref("ɵɵcontentQuerySignal")
	QueryAdvance       = ref("ɵɵqueryAdvance")
)

// TextInterpolateFor returns the text interpolation instruction for a given
// number of expressions, and whether it takes its arguments as one array.
func TextInterpolateFor(count int) (output.ExternalReference, bool) {
	switch count {
	case 1:
		return TextInterpolate1, false
	case 2:
		return TextInterpolate2, false
	case 3:
		return TextInterpolate3, false
	case 4:
		return TextInterpolate4, false
	case 5:
		return TextInterpolate5, false
	case 6:
		return TextInterpolate6, false
	case 7:
		return TextInterpolate7, false
	case 8:
		return TextInterpolate8, false
	}
	return TextInterpolateV, true
}

// InterpolateFor returns the value interpolation instruction for a given
// number of expressions, and whether it takes its arguments as one array.
func InterpolateFor(count int) (output.ExternalReference, bool) {
	switch count {
	case 1:
		return Interpolate1, false
	case 2:
		return Interpolate2, false
	case 3:
		return Interpolate3, false
	case 4:
		return Interpolate4, false
	case 5:
		return Interpolate5, false
	case 6:
		return Interpolate6, false
	case 7:
		return Interpolate7, false
	case 8:
		return Interpolate8, false
	}
	return InterpolateV, true
}

package core

// ViewEncapsulation represents the encapsulation strategy for component styles
type ViewEncapsulation int

const (
	ViewEncapsulationEmulated ViewEncapsulation = iota
	// Historically the 1 value was for Native encapsulation which has been removed as of v11.
	_ // Reserved for historical Native
	ViewEncapsulationNone
	ViewEncapsulationShadowDom
	ViewEncapsulationExperimentalIsolatedShadowDom
)

// ChangeDetectionStrategy represents the change detection strategy
type ChangeDetectionStrategy int

const (
	ChangeDetectionStrategyOnPush ChangeDetectionStrategy = iota
	ChangeDetectionStrategyDefault
)

// InputFlags describes flags for an input
type InputFlags int

const (
	InputFlagsNone                       InputFlags = 0
	InputFlagsSignalBased                InputFlags = 1 << 0
	InputFlagsHasDecoratorInputTransform InputFlags = 1 << 1
)

// FactoryTarget represents the type of target being created by a factory
type FactoryTarget int

const (
	FactoryTargetDirective FactoryTarget = iota
	FactoryTargetComponent
	FactoryTargetInjectable
	FactoryTargetPipe
	FactoryTargetNgModule
)

// String returns the decorator name for the target.
func (t FactoryTarget) String() string {
	switch t {
	case FactoryTargetDirective:
		return "Directive"
	case FactoryTargetComponent:
		return "Component"
	case FactoryTargetInjectable:
		return "Injectable"
	case FactoryTargetPipe:
		return "Pipe"
	case FactoryTargetNgModule:
		return "NgModule"
	}
	return "Unknown"
}

// SelectorFlags are flags used to generate R3-style CSS Selectors
type SelectorFlags int

const (
	SelectorFlagsNOT       SelectorFlags = 0b0001 // Beginning of a new negative selector
	SelectorFlagsATTRIBUTE SelectorFlags = 0b0010 // Mode for matching attributes
	SelectorFlagsELEMENT   SelectorFlags = 0b0100 // Mode for matching tag names
	SelectorFlagsCLASS     SelectorFlags = 0b1000 // Mode for matching class names
)

// R3CssSelector represents an R3 CSS selector
type R3CssSelector []interface{} // string | SelectorFlags

// R3CssSelectorList represents a list of R3 CSS selectors
type R3CssSelectorList []R3CssSelector

// RenderFlags are flags passed into template functions to determine which blocks should be executed
type RenderFlags int

const (
	RenderFlagsCreate RenderFlags = 0b01 // Whether to run the creation block
	RenderFlagsUpdate RenderFlags = 0b10 // Whether to run the update block
)

// AttributeMarker is a set of marker values to be used in the attributes arrays
type AttributeMarker int

const (
	AttributeMarkerNamespaceURI AttributeMarker = iota
	AttributeMarkerClasses
	AttributeMarkerStyles
	AttributeMarkerBindings
	AttributeMarkerTemplate
	AttributeMarkerProjectAs
	AttributeMarkerI18n
)

// QueryFlags describe how a query collects its results.
type QueryFlags int

const (
	QueryFlagsNone                    QueryFlags = 0b0000
	QueryFlagsDescendants             QueryFlags = 0b0001
	QueryFlagsIsStatic                QueryFlags = 0b0010
	QueryFlagsEmitDistinctChangesOnly QueryFlags = 0b0100
)

// EmitDistinctChangesOnlyDefaultValue stores the default value of emitDistinctChangesOnly
const EmitDistinctChangesOnlyDefaultValue = true

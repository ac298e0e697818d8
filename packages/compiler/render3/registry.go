package render3

import (
	"ngc-lite/packages/compiler/css"
)

// RegistryEntry is a class and the selector it is addressable under.
type RegistryEntry struct {
	ClassName string
	Selector  string
}

// SelectorRegistry maps the classes declared in one file to their selectors.
// A registry belongs to a single compilation.
type SelectorRegistry struct {
	entries []RegistryEntry
	index   map[string]int
}

// NewSelectorRegistry creates an empty SelectorRegistry
func NewSelectorRegistry() *SelectorRegistry {
	return &SelectorRegistry{index: map[string]int{}}
}

// Register records the selector of a class. Registering a class again
// replaces its selector.
func (r *SelectorRegistry) Register(className, selector string) {
	if i, ok := r.index[className]; ok {
		r.entries[i].Selector = selector
		return
	}
	r.index[className] = len(r.entries)
	r.entries = append(r.entries, RegistryEntry{ClassName: className, Selector: selector})
}

// Lookup returns the selector of a class.
func (r *SelectorRegistry) Lookup(className string) (string, bool) {
	i, ok := r.index[className]
	if !ok {
		return "", false
	}
	return r.entries[i].Selector, true
}

// Entries returns the registered classes in registration order.
func (r *SelectorRegistry) Entries() []RegistryEntry {
	return append([]RegistryEntry(nil), r.entries...)
}

// Len returns the number of registered classes.
func (r *SelectorRegistry) Len() int {
	return len(r.entries)
}

// Matcher builds a selector matcher over the registered classes. Selectors
// that do not parse are skipped.
func (r *SelectorRegistry) Matcher() *css.SelectorMatcher[string] {
	matcher := css.NewSelectorMatcher[string]()
	for _, entry := range r.entries {
		selectors, err := css.ParseCssSelector(entry.Selector)
		if err != nil {
			continue
		}
		matcher.AddSelectables(selectors, entry.ClassName)
	}
	return matcher
}

package native

import (
	"sort"
	"strings"
)

// Registry holds filters by element name.
type Registry struct {
	filters map[string]Filter
}

// NewRegistry creates an empty filter registry.
func NewRegistry() *Registry {
	return &Registry{
		filters: make(map[string]Filter),
	}
}

// Register adds a filter under both its plural and singular element names.
func (r *Registry) Register(f Filter) {
	r.filters[strings.ToLower(f.PluralElementName())] = f
	r.filters[strings.ToLower(f.SingularElementName())] = f
}

// Get retrieves the filter handling an element name.
func (r *Registry) Get(element string) (Filter, bool) {
	f, ok := r.filters[strings.ToLower(element)]
	return f, ok
}

// List returns the display names of registered filters, sorted.
func (r *Registry) List() []string {
	seen := make(map[Filter]bool)
	var names []string
	for _, f := range r.filters {
		if seen[f] {
			continue
		}
		seen[f] = true
		names = append(names, f.DisplayName())
	}
	sort.Strings(names)
	return names
}

package job

import (
	"sort"
	"strings"
	"sync"
)

const CategoryOther = "other"

var baseCategories = []string{
	"technology",
	"finance",
	"healthcare",
	"marketing",
	"sales",
	"hr",
	"education",
	"retail",
	"hospitality",
	"construction",
	"manufacturing",
	"consulting",
	"legal",
	"office_support",
	"drivers_operators",
	"technical_engineering",
	"production_workers",
	"transport_logistics",
	"mining_resources",
	"sales_marketing",
	"fundraising",
	"executive",
	CategoryOther,
}

// CategoryRegistry is the closed set of posting categories. Sources that
// classify into a niche bucket extend the registry at construction time
// instead of patching a shared list.
type CategoryRegistry struct {
	mu    sync.RWMutex
	names map[string]struct{}
}

func NewCategoryRegistry() *CategoryRegistry {
	r := &CategoryRegistry{names: make(map[string]struct{}, len(baseCategories))}
	for _, c := range baseCategories {
		r.names[c] = struct{}{}
	}
	return r
}

func (r *CategoryRegistry) Valid(name string) bool {
	if r == nil {
		return false
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.names[strings.TrimSpace(strings.ToLower(name))]
	return ok
}

func (r *CategoryRegistry) Extend(names ...string) {
	if r == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, n := range names {
		n = strings.TrimSpace(strings.ToLower(n))
		if n == "" {
			continue
		}
		r.names[n] = struct{}{}
	}
}

func (r *CategoryRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.names))
	for n := range r.names {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Normalize maps an arbitrary category label onto the registry,
// falling back to "other" for anything unknown.
func (r *CategoryRegistry) Normalize(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	if r.Valid(name) {
		return name
	}
	return CategoryOther
}

// Package catalog loads and serves the read-only template catalog.
package catalog

import (
	"sort"
	"sync"

	"github.com/AtRiskMedia/microsite-go/internal/domain/entities/catalog"
)

// Registry holds the loaded template catalog. Templates are read-only after
// startup, but the registry is still guarded for callers that hot-reload.
type Registry struct {
	mu        sync.RWMutex
	templates map[string]*catalog.Template
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		templates: make(map[string]*catalog.Template),
	}
}

// Register adds or replaces a template by ID
func (r *Registry) Register(t *catalog.Template) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[t.ID] = t
}

// Get returns the template with the given ID, or false when unknown
func (r *Registry) Get(id string) (*catalog.Template, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.templates[id]
	return t, ok
}

// List returns all templates sorted by ID
func (r *Registry) List() []*catalog.Template {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*catalog.Template, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Count returns the number of registered templates
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.templates)
}

package runlog

import (
	"sort"
	"sync"
)

// Registry owns the process-wide map from module name to its session.
// It is populated lazily by Open and cleared only at process exit.
type Registry struct {
	mu       sync.RWMutex
	sessions map[string]*Session
}

// defaultRegistry backs the package-level Open.
var defaultRegistry = NewRegistry()

// NewRegistry constructs an empty session registry.
func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
	}
}

// Lookup returns the session registered for a module name, if any.
func (r *Registry) Lookup(module string) (*Session, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.sessions[module]
	return s, ok
}

// Names returns the registered module names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.sessions))
	for name := range r.sessions {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Default returns the registry behind the package-level Open.
func Default() *Registry {
	return defaultRegistry
}

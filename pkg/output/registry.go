package output

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds an adapter bound to a context.
type Factory func(ctx Context) (Adapter, error)

// Registry stores adapter factories by format name, providing discovery and
// duplication safeguards.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// Register adds a factory under name. Duplicate names return an error.
func (r *Registry) Register(name string, factory Factory) error {
	if factory == nil {
		return fmt.Errorf("output: factory is required")
	}
	key := normalizeName(name)
	if key == "" {
		return fmt.Errorf("output: adapter name is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[key]; exists {
		return fmt.Errorf("output: adapter %q already registered", key)
	}

	r.factories[key] = factory
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(name string, factory Factory) {
	if err := r.Register(name, factory); err != nil {
		panic(err)
	}
}

// New builds the adapter registered under name.
func (r *Registry) New(name string, ctx Context) (Adapter, error) {
	key := normalizeName(name)

	r.mu.RLock()
	factory, ok := r.factories[key]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("output: adapter %q not found (available: %s)", key, strings.Join(r.List(), ", "))
	}
	adapter, err := factory(ctx)
	if err != nil {
		return nil, fmt.Errorf("output: build adapter %q: %w", key, err)
	}
	return adapter, nil
}

// List returns a sorted list of adapter names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has reports whether an adapter is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, ok := r.factories[normalizeName(name)]
	return ok
}

func normalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

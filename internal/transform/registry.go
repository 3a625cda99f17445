package transform

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages scaling backends.
type Registry struct {
	mu      sync.RWMutex
	scalers map[string]Scaler
}

// NewRegistry creates a new scaler registry.
func NewRegistry() *Registry {
	return &Registry{
		scalers: make(map[string]Scaler),
	}
}

// Register adds a scaler to the registry.
func (r *Registry) Register(s Scaler) error {
	if s == nil {
		return fmt.Errorf("cannot register nil scaler")
	}
	name := s.Name()
	if name == "" {
		return fmt.Errorf("scaler name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.scalers[name]; exists {
		return fmt.Errorf("scaler already registered: %s", name)
	}

	r.scalers[name] = s
	return nil
}

// Get returns a scaler by name.
func (r *Registry) Get(name string) (Scaler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.scalers[name]
	if !ok {
		return nil, fmt.Errorf("scaler not found: %s", name)
	}
	return s, nil
}

// List returns all registered scaler names (sorted).
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.scalers))
	for name := range r.scalers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if a scaler is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.scalers[name]
	return ok
}

// Count returns the number of registered scalers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.scalers)
}

// Unregister removes a scaler from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.scalers[name]; !ok {
		return fmt.Errorf("scaler not found: %s", name)
	}
	delete(r.scalers, name)
	return nil
}

// DefaultRegistry holds the built-in backends.
var DefaultRegistry = NewRegistry()

func init() {
	for _, s := range []Scaler{XDrawScaler{}, NfntScaler{}, GiftScaler{}} {
		if err := DefaultRegistry.Register(s); err != nil {
			panic(err)
		}
	}
}

// Register adds a scaler to the default registry.
func Register(s Scaler) error {
	return DefaultRegistry.Register(s)
}

// Get returns a scaler from the default registry.
func Get(name string) (Scaler, error) {
	return DefaultRegistry.Get(name)
}

// List returns all scaler names from the default registry.
func List() []string {
	return DefaultRegistry.List()
}

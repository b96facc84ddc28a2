package httpclient

import (
	"fmt"
	"slices"
	"sync"
)

// Registry holds named client configurations, typically loaded with
// [LoadConfig]. It is safe for concurrent use.
type Registry struct {
	configs map[string]ClientConfig
	mu      sync.Mutex
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{configs: make(map[string]ClientConfig)}
}

// Add validates cc and stores it under name, replacing any previous entry.
func (r *Registry) Add(name string, cc ClientConfig) error {
	if _, err := BuildOptions(&cc); err != nil {
		return fmt.Errorf("httpclient: client %q: %w", name, err)
	}

	r.mu.Lock()
	r.configs[name] = cc
	r.mu.Unlock()

	return nil
}

// Config returns the configuration stored under name.
func (r *Registry) Config(name string) (ClientConfig, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	cc, ok := r.configs[name]

	return cc, ok
}

// Names returns the sorted names of all stored configurations.
func (r *Registry) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.configs))
	for name := range r.configs {
		names = append(names, name)
	}

	slices.Sort(names)

	return names
}

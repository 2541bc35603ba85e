// Package registry keeps named providers and resolves the configured fallback order.
package registry

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Named is anything identified by a provider name.
type Named interface {
	Name() string
}

// Registry holds providers of one kind in registration order.
type Registry[P Named] struct {
	mu        sync.RWMutex
	providers map[string]P
	order     []string
}

// NewRegistry creates a new provider registry.
func NewRegistry[P Named]() *Registry[P] {
	return &Registry[P]{
		mu:        sync.RWMutex{},
		providers: make(map[string]P),
	}
}

// Register adds a provider to the registry.
func (r *Registry[P]) Register(_ context.Context, provider P) error {
	if any(provider) == nil {
		return errors.New("provider cannot be nil")
	}

	name := provider.Name()
	if name == "" {
		return errors.New("provider name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.providers[name]; exists {
		return fmt.Errorf("provider %s already registered", name)
	}

	r.providers[name] = provider
	r.order = append(r.order, name)

	return nil
}

// Get retrieves a provider by name.
func (r *Registry[P]) Get(_ context.Context, providerName string) (P, error) {
	var zero P
	if providerName == "" {
		return zero, errors.New("provider name cannot be empty")
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	provider, exists := r.providers[providerName]
	if !exists {
		return zero, fmt.Errorf("provider %s not found", providerName)
	}

	return provider, nil
}

// List returns provider names in registration order.
func (r *Registry[P]) List(_ context.Context) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// Ordered returns providers in the given name order. An empty order yields every
// provider in registration order. Unknown or repeated names are errors.
func (r *Registry[P]) Ordered(ctx context.Context, names []string) ([]P, error) {
	if len(names) == 0 {
		names = r.List(ctx)
	}

	seen := make(map[string]bool, len(names))
	providers := make([]P, 0, len(names))
	for _, raw := range names {
		name := strings.TrimSpace(raw)
		if seen[name] {
			return nil, fmt.Errorf("provider %s listed twice", name)
		}
		seen[name] = true

		provider, err := r.Get(ctx, name)
		if err != nil {
			return nil, err
		}
		providers = append(providers, provider)
	}

	if len(providers) == 0 {
		return nil, errors.New("no providers available")
	}

	return providers, nil
}

package services

import (
	"fmt"
	"strings"
	"sync"

	"github.com/custodia-labs/brander/internal/core/domain"
	"github.com/custodia-labs/brander/internal/core/ports/driven"
)

// Registry maps type strings to providers.
//
// Built-in providers load lazily on the first call of any method, at most
// once. Calling Clear before anything else opts out of the built-ins.
type Registry[T any] struct {
	mu       sync.Mutex
	keyOf    func(T) string
	builtins func() []T
	loaded   bool

	providers map[string]T
	order     []string
}

// NewRegistry creates a registry. builtins may be nil.
func NewRegistry[T any](keyOf func(T) string, builtins func() []T) *Registry[T] {
	return &Registry[T]{
		keyOf:     keyOf,
		builtins:  builtins,
		providers: make(map[string]T),
	}
}

// NewDocumentRegistry creates a registry of document providers.
func NewDocumentRegistry(builtins func() []driven.DocumentProvider) *Registry[driven.DocumentProvider] {
	return NewRegistry(func(p driven.DocumentProvider) string { return p.Type() }, builtins)
}

// NewTaskRegistry creates a registry of tasks keyed by task type.
func NewTaskRegistry(builtins func() []driven.Task) *Registry[driven.Task] {
	return NewRegistry(func(t driven.Task) string { return t.Type().String() }, builtins)
}

func normaliseType(typ string) string {
	return strings.ToLower(strings.TrimSpace(typ))
}

// ensureLoaded installs the built-ins once (caller must hold lock).
func (r *Registry[T]) ensureLoaded() {
	if r.loaded {
		return
	}
	r.loaded = true
	if r.builtins == nil {
		return
	}
	for _, p := range r.builtins() {
		r.add(p)
	}
}

// add installs p, replacing any provider of the same type (caller must hold lock).
func (r *Registry[T]) add(p T) {
	key := normaliseType(r.keyOf(p))
	if _, exists := r.providers[key]; !exists {
		r.order = append(r.order, key)
	}
	r.providers[key] = p
}

// Add registers a provider. A later provider for the same type replaces
// the earlier one.
func (r *Registry[T]) Add(p T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded()
	r.add(p)
}

// Remove unregisters the provider registered for p's type.
func (r *Registry[T]) Remove(p T) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded()
	key := normaliseType(r.keyOf(p))
	if _, ok := r.providers[key]; !ok {
		return
	}
	delete(r.providers, key)
	for i, k := range r.order {
		if k == key {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

// FindByType returns the provider for typ. Matching ignores case and
// surrounding whitespace.
func (r *Registry[T]) FindByType(typ string) (T, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded()
	p, ok := r.providers[normaliseType(typ)]
	if !ok {
		var zero T
		return zero, fmt.Errorf("%w: %q", domain.ErrProviderNotFound, typ)
	}
	return p, nil
}

// All returns providers in registration order.
func (r *Registry[T]) All() []T {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded()
	out := make([]T, 0, len(r.order))
	for _, k := range r.order {
		out = append(out, r.providers[k])
	}
	return out
}

// Types returns registered type identifiers in registration order.
func (r *Registry[T]) Types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ensureLoaded()
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Clear removes every provider and disables built-in loading.
func (r *Registry[T]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.loaded = true
	r.providers = make(map[string]T)
	r.order = nil
}

package ai

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
)

type ProviderFactory func(ctx context.Context, opts ProviderOptions) (Provider, error)

// ErrUnknownProvider is returned by Registry.Get for names nobody registered.
type ErrUnknownProvider struct {
	Name  string
	Known []string
}

func (e *ErrUnknownProvider) Error() string {
	return fmt.Sprintf("unknown ai provider %q (known: %s)", e.Name, strings.Join(e.Known, ", "))
}

type Registry struct {
	mu        sync.RWMutex
	factories map[string]ProviderFactory
}

func NewRegistry() *Registry {
	return &Registry{factories: make(map[string]ProviderFactory)}
}

func (r *Registry) Register(name string, f ProviderFactory) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.Lock()
	defer r.mu.Unlock()
	r.factories[name] = f
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.factories))
	for name := range r.factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

func (r *Registry) Get(ctx context.Context, name string, opts ProviderOptions) (Provider, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	r.mu.RLock()
	f, ok := r.factories[name]
	r.mu.RUnlock()
	if !ok {
		return nil, &ErrUnknownProvider{Name: name, Known: r.Names()}
	}
	return f(ctx, opts)
}

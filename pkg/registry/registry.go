package registry

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"sync"

	"github.com/aretw0/wizard/pkg/domain"
)

// Function computes a value from descriptor params and the answers collected so far.
// The same signature serves defaults, option lists, function questions and
// remote validations.
type Function func(ctx context.Context, params map[string]any, answers domain.AnswerStore) (any, error)

// Registry is an in-process RemoteResolver backed by named functions.
type Registry struct {
	mu    sync.RWMutex
	funcs map[string]Function
}

// NewRegistry creates a new empty registry.
func NewRegistry() *Registry {
	return &Registry{
		funcs: make(map[string]Function),
	}
}

// Register adds a function to the registry.
// If a function with the same name exists, it is overwritten.
func (r *Registry) Register(method string, fn Function) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.funcs[method] = fn
}

// Methods returns the registered names, sorted.
func (r *Registry) Methods() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Sorted(maps.Keys(r.funcs))
}

// Resolve looks up fn.Method and executes it.
func (r *Registry) Resolve(ctx context.Context, fn domain.FuncDescriptor, answers domain.AnswerStore) (any, error) {
	r.mu.RLock()
	impl, ok := r.funcs[fn.Method]
	r.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrFunctionNotFound, fn.Method)
	}

	params := fn.Params
	if params == nil {
		params = map[string]any{}
	}
	return impl(ctx, params, answers)
}

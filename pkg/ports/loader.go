package ports

import (
	"context"

	"github.com/aretw0/wizard/pkg/domain"
)

// TreeLoader produces the static question tree for a traversal.
// This allows tree sources (YAML files, the Go DSL, remote registries) to be decoupled.
type TreeLoader interface {
	LoadTree(ctx context.Context) (*domain.Node, error)
}

// TreeLoaderFunc adapts a function to the TreeLoader interface.
type TreeLoaderFunc func(ctx context.Context) (*domain.Node, error)

// LoadTree calls f.
func (f TreeLoaderFunc) LoadTree(ctx context.Context) (*domain.Node, error) {
	return f(ctx)
}

package dsl

import (
	"errors"
	"fmt"

	"github.com/aretw0/wizard/internal/runtime"
	"github.com/aretw0/wizard/pkg/domain"
)

// Builder manages the tree construction. Its root is a group.
type Builder struct {
	*NodeBuilder
	errs []error
}

// New creates a builder whose root group carries the given name.
func New(name string) *Builder {
	b := &Builder{}
	b.NodeBuilder = &NodeBuilder{node: domain.NewGroup(name), builder: b}
	return b
}

// Build returns the root node after checking the tree structure.
func (b *Builder) Build() (*domain.Node, error) {
	if len(b.errs) > 0 {
		return nil, errors.Join(b.errs...)
	}
	if err := runtime.CheckTree(b.node); err != nil {
		return nil, err
	}
	return b.node, nil
}

// MustBuild is like Build but panics on error. Intended for static trees.
func (b *Builder) MustBuild() *domain.Node {
	root, err := b.Build()
	if err != nil {
		panic(err)
	}
	return root
}

func (b *Builder) fail(format string, args ...any) {
	b.errs = append(b.errs, fmt.Errorf(format, args...))
}

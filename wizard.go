package wizard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/aretw0/wizard/internal/logging"
	"github.com/aretw0/wizard/internal/runtime"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
)

// Version is the release of the module, overridden at build time with
// -ldflags "-X github.com/aretw0/wizard.Version=...".
var Version = "dev"

// TraversalError reports why a traversal stopped before completing.
type TraversalError = runtime.TraversalError

// Wizard is the high-level entry point for the library.
// It wraps the internal runtime and provides a simplified API for consumers.
type Wizard struct {
	runtime  *runtime.Engine
	prompter ports.Prompter
	resolver ports.RemoteResolver
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
	Name     string
}

// Option defines a functional option for configuring the Wizard.
type Option func(*Wizard)

// WithResolver sets the collaborator that evaluates function descriptors.
func WithResolver(r ports.RemoteResolver) Option {
	return func(w *Wizard) {
		w.resolver = r
	}
}

// WithLifecycleHooks registers observability hooks. Repeated calls merge.
func WithLifecycleHooks(hooks domain.LifecycleHooks) Option {
	return func(w *Wizard) {
		w.hooks = w.hooks.Merge(hooks)
	}
}

// WithLogger sets a custom structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Wizard) {
		w.logger = logger
	}
}

// WithName labels the wizard in logs.
func WithName(name string) Option {
	return func(w *Wizard) {
		w.Name = name
	}
}

// New initializes a Wizard that asks questions through prompter.
func New(prompter ports.Prompter, opts ...Option) (*Wizard, error) {
	if prompter == nil {
		return nil, errors.New("a prompter is required")
	}

	w := &Wizard{prompter: prompter}
	for _, opt := range opts {
		opt(w)
	}

	if w.logger == nil {
		w.logger = logging.NewNop()
	}
	if w.Name != "" {
		w.logger = w.logger.With("wizard", w.Name)
	}

	w.runtime = runtime.NewEngine(w.prompter, w.resolver,
		runtime.WithLifecycleHooks(w.hooks),
		runtime.WithLogger(w.logger),
	)
	return w, nil
}

// Traverse walks root and returns the accumulated answers. seed pre-fills
// answers that are then not asked again; it is not modified.
func (w *Wizard) Traverse(ctx context.Context, root *domain.Node, seed domain.AnswerStore) (domain.AnswerStore, error) {
	return w.runtime.Traverse(ctx, root, seed)
}

// Run loads the tree through loader and traverses it.
func (w *Wizard) Run(ctx context.Context, loader ports.TreeLoader, seed domain.AnswerStore) (domain.AnswerStore, error) {
	root, err := loader.LoadTree(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load question tree: %w", err)
	}
	return w.Traverse(ctx, root, seed)
}

// Check reports structural problems of a tree without prompting.
func Check(root *domain.Node) error {
	return runtime.CheckTree(root)
}

// Questions lists the questions of a tree in declaration order.
func Questions(root *domain.Node) []*domain.Question {
	return runtime.Flatten(root)
}

// IsCancelled reports whether err ended a traversal by user cancellation.
func IsCancelled(err error) bool {
	return runtime.ResultOf(err) == domain.ResultCancel
}

// IsBack reports whether err ended a traversal by going back past the first question.
func IsBack(err error) bool {
	return runtime.ResultOf(err) == domain.ResultBack
}

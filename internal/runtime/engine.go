package runtime

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/aretw0/wizard/internal/logging"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/aretw0/wizard/pkg/validation"
	"github.com/google/uuid"
)

// Engine walks question trees, driving a Prompter and a RemoteResolver until
// every reachable leaf is answered.
// An Engine holds no per-traversal state and may run concurrent traversals.
type Engine struct {
	prompter ports.Prompter
	resolver ports.RemoteResolver
	hooks    domain.LifecycleHooks
	logger   *slog.Logger
}

// EngineOption configures the Engine.
type EngineOption func(*Engine)

// WithLifecycleHooks registers observability hooks.
func WithLifecycleHooks(hooks domain.LifecycleHooks) EngineOption {
	return func(e *Engine) {
		e.hooks = hooks
	}
}

// WithLogger sets the structured logger.
func WithLogger(logger *slog.Logger) EngineOption {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// NewEngine creates an engine. resolver may be nil when no question uses
// function descriptors.
func NewEngine(prompter ports.Prompter, resolver ports.RemoteResolver, opts ...EngineOption) *Engine {
	e := &Engine{
		prompter: prompter,
		resolver: resolver,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// run is the state of a single traversal.
type run struct {
	e  *Engine
	id string

	answers domain.AnswerStore
	seeded  map[string]bool

	stack   []*domain.Node
	history []*domain.Node
	parent  map[*domain.Node]*domain.Node

	values  map[*domain.Node]any
	skipped map[*domain.Node]bool // accepted without prompting
	prompts int

	current   *domain.Node
	validator *validation.Validator
	logger    *slog.Logger
}

// Traverse walks root depth-first and returns the collected answers.
//
// seed pre-fills the store: leaves whose name is already present are accepted
// without prompting. The seed map itself is not modified.
//
// On cancel, navigational underflow or failure the answers are discarded and
// a *TraversalError is returned; use errors.Is with domain.ErrCancelled,
// domain.ErrBackUnderflow, domain.ErrEmptySelectOption and friends.
func (e *Engine) Traverse(ctx context.Context, root *domain.Node, seed domain.AnswerStore) (domain.AnswerStore, error) {
	parent, err := indexTree(root)
	if err != nil {
		return nil, &TraversalError{Kind: domain.ResultError, Err: err}
	}

	r := e.newRun(parent, seed)
	r.logger.Debug("traversal started", "root", root.Label(), "seeded", len(r.seeded))

	start := time.Now()
	answers, err := r.walk(ctx, root)

	kind := ResultOf(err)
	r.logger.Debug("traversal finished", "result", kind, "answers", len(r.answers), "err", err)
	e.emitTraversalEnd(ctx, r, kind, time.Since(start))
	return answers, err
}

func (e *Engine) newRun(parent map[*domain.Node]*domain.Node, seed domain.AnswerStore) *run {
	r := &run{
		e:       e,
		id:      uuid.NewString(),
		answers: seed.Clone(),
		seeded:  make(map[string]bool, len(seed)),
		parent:  parent,
		values:  make(map[*domain.Node]any),
		skipped: make(map[*domain.Node]bool),
	}
	for name := range seed {
		r.seeded[name] = true
	}
	r.logger = e.logger.With("run_id", r.id)

	opts := []validation.Option{validation.WithLogger(r.logger)}
	if e.resolver != nil {
		opts = append(opts, validation.WithResolver(validationResolver{r}))
	}
	r.validator = validation.New(opts...)
	return r
}

func (r *run) walk(ctx context.Context, root *domain.Node) (domain.AnswerStore, error) {
	r.push(root)

	for len(r.stack) > 0 {
		curr := r.pop()
		r.current = curr

		if err := ctx.Err(); err != nil {
			return nil, &TraversalError{Kind: domain.ResultError, Question: curr.Label(), Err: err}
		}

		r.e.emitQuestionEnter(ctx, r, curr)
		res := r.visit(ctx, curr)
		r.e.emitQuestionLeave(ctx, r, curr, res)

		switch res.Kind {
		case domain.ResultSuccess, domain.ResultPass:
			r.accept(ctx, curr, res)

		case domain.ResultCancel:
			r.logger.Debug("cancelled", "node", curr.Label())
			return nil, &TraversalError{Kind: domain.ResultCancel, Question: curr.Label(), Err: domain.ErrCancelled}

		case domain.ResultBack:
			if !r.backtrack(ctx, curr) {
				return nil, &TraversalError{Kind: domain.ResultBack, Question: curr.Label(), Err: domain.ErrBackUnderflow}
			}

		case domain.ResultError:
			err := res.Err
			if err == nil {
				err = errors.New("unspecified error")
			}
			return nil, &TraversalError{Kind: domain.ResultError, Question: curr.Label(), Err: err}

		default:
			return nil, &TraversalError{
				Kind:     domain.ResultError,
				Question: curr.Label(),
				Err:      fmt.Errorf("unknown navigation result %q", res.Kind),
			}
		}
	}

	return r.answers, nil
}

// visit resolves a single node without touching the stacks.
func (r *run) visit(ctx context.Context, n *domain.Node) domain.NavigationResult {
	switch n.Kind {
	case domain.KindGroup:
		return domain.Success(nil)
	case domain.KindLeaf:
		return r.visitLeaf(ctx, n)
	}
	return domain.Failure(fmt.Errorf("%w: node kind %q", domain.ErrUnsupportedNodeType, n.Kind))
}

func (r *run) visitLeaf(ctx context.Context, n *domain.Node) domain.NavigationResult {
	q := n.Question

	if r.seeded[q.Name] {
		r.logger.Debug("pre-filled", "question", q.Name)
		return domain.Pass(r.answers[q.Name])
	}
	if !q.Type.Known() {
		return domain.Failure(fmt.Errorf("%w: %q", domain.ErrUnsupportedNodeType, q.Type))
	}

	parentValue := r.valueOf(r.parent[n])

	if q.Type == domain.TypeFunction {
		v, err := r.call(ctx, n, "func", *q.Func)
		if err != nil {
			return domain.Failure(err)
		}
		return domain.Success(v)
	}

	def, err := r.resolveDefault(ctx, n, parentValue)
	if err != nil {
		return domain.Failure(fmt.Errorf("resolve default: %w", err))
	}

	var options []domain.OptionItem
	if q.Type.IsSelect() {
		options, err = r.resolveOptions(ctx, n)
		if err != nil {
			return domain.Failure(fmt.Errorf("resolve options: %w", err))
		}
		if len(options) == 0 {
			return domain.Failure(domain.ErrEmptySelectOption)
		}
		if q.Type == domain.TypeSingleSelect && len(options) == 1 {
			r.logger.Debug("single option auto-selected", "question", q.Name, "option", options[0].ID)
			return domain.Pass(selection(q, options[0]))
		}
	}

	req := &ports.PromptRequest{
		Question:    q,
		Options:     options,
		Default:     def,
		ParentValue: parentValue,
		Answers:     r.answers.Clone(),
		CanGoBack:   r.prompts > 0,
		Validate: func(ctx context.Context, value any) string {
			return r.validator.Validate(ctx, q.Validation, value, r.answers)
		},
	}
	r.prompts++

	r.logger.Debug("prompting", "question", q.Name, "type", q.Type, "options", len(options), "can_go_back", req.CanGoBack)
	res, err := r.e.prompter.Ask(ctx, req)
	if err != nil {
		return domain.Failure(err)
	}
	return res
}

// accept records an answer and queues the eligible children.
func (r *run) accept(ctx context.Context, n *domain.Node, res domain.NavigationResult) {
	if n.Kind == domain.KindLeaf {
		r.answers.Set(n.Question.Name, res.Value)
		r.values[n] = res.Value
	}
	r.skipped[n] = res.Kind == domain.ResultPass
	r.history = append(r.history, n)

	pv := r.valueOf(n)
	eligible := make([]*domain.Node, 0, len(n.Children))
	for _, child := range n.Children {
		if len(child.Condition) > 0 && !r.validator.Passes(ctx, child.Condition, pv, r.answers) {
			r.logger.Debug("branch pruned", "parent", n.Label(), "child", child.Label())
			continue
		}
		eligible = append(eligible, child)
	}
	for i := len(eligible) - 1; i >= 0; i-- {
		r.push(eligible[i])
	}
}

// valueOf returns the value of the nearest answered leaf at or above n.
// Groups are transparent.
func (r *run) valueOf(n *domain.Node) any {
	for ; n != nil; n = r.parent[n] {
		if n.Kind == domain.KindLeaf {
			return r.values[n]
		}
	}
	return nil
}

func (r *run) push(n *domain.Node) {
	r.stack = append(r.stack, n)
}

func (r *run) pop() *domain.Node {
	n := r.stack[len(r.stack)-1]
	r.stack = r.stack[:len(r.stack)-1]
	return n
}

func selection(q *domain.Question, item domain.OptionItem) any {
	if q.ReturnObject {
		return item
	}
	return item.ID
}

package runtime

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"
	"time"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/mitchellh/mapstructure"
)

// resolveDefault evaluates a question's default: a remote descriptor first,
// then a "$parent" reference, then the literal.
func (r *run) resolveDefault(ctx context.Context, n *domain.Node, parentValue any) (any, error) {
	q := n.Question
	if q.DefaultFunc != nil {
		return r.call(ctx, n, "default", *q.DefaultFunc)
	}
	if prop, ok := domain.ParentProperty(q.Default); ok {
		if prop == "" {
			return parentValue, nil
		}
		return lookupProperty(parentValue, prop)
	}
	return q.Default, nil
}

func (r *run) resolveOptions(ctx context.Context, n *domain.Node) ([]domain.OptionItem, error) {
	q := n.Question
	if q.OptionsFunc == nil {
		return slices.Clone(q.Options), nil
	}
	raw, err := r.call(ctx, n, "options", *q.OptionsFunc)
	if err != nil {
		return nil, err
	}
	return domain.ToOptionItems(raw)
}

// call invokes the resolver and reports the round-trip to the hooks.
func (r *run) call(ctx context.Context, n *domain.Node, purpose string, fn domain.FuncDescriptor) (any, error) {
	if r.e.resolver == nil {
		return nil, fmt.Errorf("function '%s': no resolver configured", fn.Method)
	}

	start := time.Now()
	v, err := r.e.resolver.Resolve(ctx, fn, r.answers.Clone())
	r.e.emitResolve(ctx, r, n, fn.Method, purpose, time.Since(start), err)
	if err != nil {
		r.logger.Debug("resolver call failed", "method", fn.Method, "purpose", purpose, "err", err)
		return nil, fmt.Errorf("function '%s': %w", fn.Method, err)
	}
	return v, nil
}

// validationResolver routes RemoteFunc rules through the run so that they are
// observed like any other resolver call.
type validationResolver struct {
	r *run
}

func (v validationResolver) Resolve(ctx context.Context, fn domain.FuncDescriptor, answers domain.AnswerStore) (any, error) {
	start := time.Now()
	out, err := v.r.e.resolver.Resolve(ctx, fn, answers)
	v.r.e.emitResolve(ctx, v.r, v.r.current, fn.Method, "validation", time.Since(start), err)
	return out, err
}

// lookupProperty walks a dotted path through maps and structs.
func lookupProperty(v any, path string) (any, error) {
	cur := v
	for _, key := range strings.Split(path, ".") {
		if cur == nil {
			return nil, nil
		}
		m, err := asMap(cur)
		if err != nil {
			return nil, fmt.Errorf("$parent.%s: %w", path, err)
		}
		cur = lookupKey(m, key)
	}
	return cur, nil
}

func asMap(v any) (map[string]any, error) {
	if m, ok := v.(map[string]any); ok {
		return m, nil
	}
	var out map[string]any
	if err := mapstructure.Decode(v, &out); err != nil {
		return nil, fmt.Errorf("cannot read properties of %T", v)
	}
	return out, nil
}

// lookupKey matches exactly first, then case-insensitively so that struct
// field names ("Label") answer to tag-style keys ("label").
func lookupKey(m map[string]any, key string) any {
	if v, ok := m[key]; ok {
		return v
	}
	for _, k := range slices.Sorted(maps.Keys(m)) {
		if strings.EqualFold(k, key) {
			return m[k]
		}
	}
	return nil
}

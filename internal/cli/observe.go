package cli

import (
	"context"
	"time"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
)

// ObserveResolver reports every call of r to the OnResolve hook with the
// given purpose. The function server uses it to feed its metrics.
func ObserveResolver(r ports.RemoteResolver, purpose string, hooks domain.LifecycleHooks) ports.RemoteResolver {
	if hooks.OnResolve == nil {
		return r
	}
	return observedResolver{next: r, purpose: purpose, hooks: hooks}
}

type observedResolver struct {
	next    ports.RemoteResolver
	purpose string
	hooks   domain.LifecycleHooks
}

func (o observedResolver) Resolve(ctx context.Context, fn domain.FuncDescriptor, answers domain.AnswerStore) (any, error) {
	start := time.Now()
	v, err := o.next.Resolve(ctx, fn, answers)
	o.hooks.OnResolve(ctx, &domain.ResolveEvent{
		EventBase: domain.EventBase{Timestamp: start, Type: domain.EventResolve},
		Method:    fn.Method,
		Purpose:   o.purpose,
		Duration:  time.Since(start),
		Err:       err,
	})
	return v, err
}

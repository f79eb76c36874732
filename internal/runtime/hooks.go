package runtime

import (
	"context"
	"time"

	"github.com/aretw0/wizard/pkg/domain"
)

func (e *Engine) base(r *run, typ domain.EventType) domain.EventBase {
	return domain.EventBase{Timestamp: time.Now(), Type: typ, RunID: r.id}
}

func (e *Engine) emitQuestionEnter(ctx context.Context, r *run, n *domain.Node) {
	if e.hooks.OnQuestionEnter == nil {
		return
	}
	ev := questionEvent(n)
	ev.EventBase = e.base(r, domain.EventQuestionEnter)
	e.hooks.OnQuestionEnter(ctx, ev)
}

func (e *Engine) emitQuestionLeave(ctx context.Context, r *run, n *domain.Node, res domain.NavigationResult) {
	if e.hooks.OnQuestionLeave == nil {
		return
	}
	ev := questionEvent(n)
	ev.EventBase = e.base(r, domain.EventQuestionLeave)
	ev.Result = res.Kind
	ev.Value = res.Value
	e.hooks.OnQuestionLeave(ctx, ev)
}

func questionEvent(n *domain.Node) *domain.QuestionEvent {
	ev := &domain.QuestionEvent{Node: n.Label(), Kind: n.Kind}
	if n.Question != nil {
		ev.Question = n.Question.Name
		ev.QuestionType = n.Question.Type
	}
	return ev
}

func (e *Engine) emitResolve(ctx context.Context, r *run, n *domain.Node, method, purpose string, d time.Duration, err error) {
	if e.hooks.OnResolve == nil {
		return
	}
	ev := &domain.ResolveEvent{
		EventBase: e.base(r, domain.EventResolve),
		Method:    method,
		Purpose:   purpose,
		Duration:  d,
		Err:       err,
	}
	if n != nil {
		ev.Node = n.Label()
	}
	e.hooks.OnResolve(ctx, ev)
}

func (e *Engine) emitBacktrack(ctx context.Context, r *run, from, to *domain.Node) {
	if e.hooks.OnBacktrack == nil {
		return
	}
	ev := &domain.BacktrackEvent{
		EventBase: e.base(r, domain.EventBacktrack),
		From:      from.Label(),
	}
	if to != nil {
		ev.To = to.Label()
	}
	e.hooks.OnBacktrack(ctx, ev)
}

func (e *Engine) emitTraversalEnd(ctx context.Context, r *run, kind domain.ResultKind, d time.Duration) {
	if e.hooks.OnTraversalEnd == nil {
		return
	}
	e.hooks.OnTraversalEnd(ctx, &domain.TraversalEvent{
		EventBase: e.base(r, domain.EventTraversalEnd),
		Result:    kind,
		Answers:   len(r.answers),
		Duration:  d,
	})
}

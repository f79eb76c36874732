package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventQuestionEnter EventType = "question_enter"
	EventQuestionLeave EventType = "question_leave"
	EventResolve       EventType = "resolve"
	EventBacktrack     EventType = "backtrack"
	EventTraversalEnd  EventType = "traversal_end"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	// RunID correlates the events of one traversal.
	RunID string `json:"run_id"`
}

// QuestionEvent represents entry into or exit from a node.
type QuestionEvent struct {
	EventBase
	Node         string       `json:"node"`
	Kind         NodeKind     `json:"kind"`
	Question     string       `json:"question,omitempty"`
	QuestionType QuestionType `json:"question_type,omitempty"`
	// Result and Value are set on leave.
	Result ResultKind `json:"result,omitempty"`
	Value  any        `json:"value,omitempty"`
}

// ResolveEvent represents one RemoteResolver call.
type ResolveEvent struct {
	EventBase
	Node     string        `json:"node"`
	Method   string        `json:"method"`
	Purpose  string        `json:"purpose"` // default, options, func or validation
	Duration time.Duration `json:"duration"`
	Err      error         `json:"-"`
}

// BacktrackEvent reports where a "back" request landed.
type BacktrackEvent struct {
	EventBase
	From string `json:"from"`
	// To is empty when the request underflowed.
	To string `json:"to,omitempty"`
}

// TraversalEvent closes a run.
type TraversalEvent struct {
	EventBase
	Result   ResultKind    `json:"result"`
	Answers  int           `json:"answers"`
	Duration time.Duration `json:"duration"`
}

// LifecycleHooks defines callbacks for engine observability.
type LifecycleHooks struct {
	OnQuestionEnter func(context.Context, *QuestionEvent)
	OnQuestionLeave func(context.Context, *QuestionEvent)
	OnResolve       func(context.Context, *ResolveEvent)
	OnBacktrack     func(context.Context, *BacktrackEvent)
	OnTraversalEnd  func(context.Context, *TraversalEvent)
}

// Merge returns hooks that call h first and then other.
func (h LifecycleHooks) Merge(other LifecycleHooks) LifecycleHooks {
	return LifecycleHooks{
		OnQuestionEnter: chain(h.OnQuestionEnter, other.OnQuestionEnter),
		OnQuestionLeave: chain(h.OnQuestionLeave, other.OnQuestionLeave),
		OnResolve:       chain(h.OnResolve, other.OnResolve),
		OnBacktrack:     chain(h.OnBacktrack, other.OnBacktrack),
		OnTraversalEnd:  chain(h.OnTraversalEnd, other.OnTraversalEnd),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}

package runtime_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
)

// reply is one scripted prompter response.
type reply struct {
	question string
	respond  func(req *ports.PromptRequest) domain.NavigationResult
}

func answer(question string, v any) reply {
	return reply{question, func(*ports.PromptRequest) domain.NavigationResult { return domain.Success(v) }}
}

func acceptDefault(question string) reply {
	return reply{question, func(req *ports.PromptRequest) domain.NavigationResult { return domain.Success(req.Default) }}
}

func back(question string) reply {
	return reply{question, func(*ports.PromptRequest) domain.NavigationResult { return domain.Back() }}
}

func cancel(question string) reply {
	return reply{question, func(*ports.PromptRequest) domain.NavigationResult { return domain.Cancel() }}
}

// scriptedPrompter replays replies in order and records what was asked.
type scriptedPrompter struct {
	t       *testing.T
	replies []reply

	asked     []string
	canGoBack []bool
	requests  []*ports.PromptRequest
}

func newScript(t *testing.T, replies ...reply) *scriptedPrompter {
	return &scriptedPrompter{t: t, replies: replies}
}

func (s *scriptedPrompter) Ask(_ context.Context, req *ports.PromptRequest) (domain.NavigationResult, error) {
	s.t.Helper()
	name := req.Question.Name
	s.asked = append(s.asked, name)
	s.canGoBack = append(s.canGoBack, req.CanGoBack)
	s.requests = append(s.requests, req)

	if len(s.replies) == 0 {
		s.t.Fatalf("unexpected prompt for %q", name)
	}
	next := s.replies[0]
	s.replies = s.replies[1:]
	if next.question != name {
		s.t.Fatalf("expected prompt for %q, got %q", next.question, name)
	}
	return next.respond(req), nil
}

// fakeResolver dispatches on the descriptor method.
type fakeResolver struct {
	mu    sync.Mutex
	funcs map[string]func(params map[string]any, answers domain.AnswerStore) (any, error)
	calls map[string]int
}

func newResolver() *fakeResolver {
	return &fakeResolver{
		funcs: map[string]func(map[string]any, domain.AnswerStore) (any, error){},
		calls: map[string]int{},
	}
}

func (f *fakeResolver) on(method string, fn func(params map[string]any, answers domain.AnswerStore) (any, error)) *fakeResolver {
	f.funcs[method] = fn
	return f
}

func (f *fakeResolver) Resolve(_ context.Context, fn domain.FuncDescriptor, answers domain.AnswerStore) (any, error) {
	f.mu.Lock()
	f.calls[fn.Method]++
	impl, ok := f.funcs[fn.Method]
	f.mu.Unlock()
	if !ok {
		return nil, fmt.Errorf("unknown method %q", fn.Method)
	}
	return impl(fn.Params, answers)
}

func text(name string) *domain.Question {
	return &domain.Question{Name: name, Type: domain.TypeText, Title: name}
}

func singleSelect(name string, ids ...string) *domain.Question {
	return &domain.Question{Name: name, Type: domain.TypeSingleSelect, Options: domain.Options(ids...)}
}

func function(name, method string) *domain.Question {
	return &domain.Question{Name: name, Type: domain.TypeFunction, Func: &domain.FuncDescriptor{Method: method}}
}

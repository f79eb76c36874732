package middleware

import (
	"context"
	"regexp"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
)

// Mask replaces nested values whose key matches a PII pattern.
const Mask = "***"

type piiMiddleware struct {
	next     ports.AnswerRepository
	patterns []*regexp.Regexp
}

// NewPIIMiddleware creates a middleware that keeps sensitive answers out of
// storage. Answers whose name matches a pattern are not saved at all, so a
// resumed session asks for them again. Matching keys inside object answers
// are masked. It panics on an invalid pattern.
func NewPIIMiddleware(patternStrings []string) Middleware {
	patterns := make([]*regexp.Regexp, len(patternStrings))
	for i, p := range patternStrings {
		patterns[i] = regexp.MustCompile(p)
	}
	return func(next ports.AnswerRepository) ports.AnswerRepository {
		return &piiMiddleware{next: next, patterns: patterns}
	}
}

func (m *piiMiddleware) Save(ctx context.Context, sessionID string, answers domain.AnswerStore) error {
	// The engine keeps using the caller's map; work on a copy.
	cloned := make(domain.AnswerStore, len(answers))
	for name, v := range answers {
		if matchAny(name, m.patterns) {
			continue
		}
		cloned[name] = deepCopy(v)
	}
	for _, v := range cloned {
		mask(v, m.patterns)
	}

	return m.next.Save(ctx, sessionID, cloned)
}

func (m *piiMiddleware) Load(ctx context.Context, sessionID string) (domain.AnswerStore, error) {
	return m.next.Load(ctx, sessionID)
}

func (m *piiMiddleware) Delete(ctx context.Context, sessionID string) error {
	return m.next.Delete(ctx, sessionID)
}

func (m *piiMiddleware) List(ctx context.Context) ([]string, error) {
	return m.next.List(ctx)
}

func matchAny(key string, patterns []*regexp.Regexp) bool {
	for _, p := range patterns {
		if p.MatchString(key) {
			return true
		}
	}
	return false
}

func deepCopy(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, sub := range t {
			out[k] = deepCopy(sub)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, sub := range t {
			out[i] = deepCopy(sub)
		}
		return out
	default:
		return v
	}
}

func mask(v any, patterns []*regexp.Regexp) {
	switch t := v.(type) {
	case map[string]any:
		for k, sub := range t {
			if matchAny(k, patterns) {
				t[k] = Mask
				continue
			}
			mask(sub, patterns)
		}
	case []any:
		for _, sub := range t {
			mask(sub, patterns)
		}
	}
}

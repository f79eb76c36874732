package ports

import (
	"context"

	"github.com/aretw0/wizard/pkg/domain"
)

// PromptRequest is everything a Prompter needs to render one question.
type PromptRequest struct {
	Question *domain.Question

	// Options holds the resolved option list for select questions.
	Options []domain.OptionItem
	// Default is the resolved default value (nil when none).
	Default any

	ParentValue any
	Answers     domain.AnswerStore

	// CanGoBack is false only for the first question asked in a traversal.
	CanGoBack bool

	// Validate checks a candidate answer and returns an empty string when it
	// is valid. Prompters should re-ask until it passes.
	Validate func(ctx context.Context, value any) string
}

// Prompter renders a question and collects the user's decision.
// Implementations return domain.Back or domain.Cancel for navigation; a non-nil
// error is treated as an Error outcome.
type Prompter interface {
	Ask(ctx context.Context, req *PromptRequest) (domain.NavigationResult, error)
}

// PrompterFunc adapts a function to the Prompter interface.
type PrompterFunc func(ctx context.Context, req *PromptRequest) (domain.NavigationResult, error)

// Ask calls f.
func (f PrompterFunc) Ask(ctx context.Context, req *PromptRequest) (domain.NavigationResult, error) {
	return f(ctx, req)
}

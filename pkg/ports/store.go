package ports

import (
	"context"

	"github.com/aretw0/wizard/pkg/domain"
)

// AnswerRepository persists answer sets so a traversal can be resumed or pre-filled.
type AnswerRepository interface {
	// Save persists the answers for a given session ID.
	Save(ctx context.Context, sessionID string, answers domain.AnswerStore) error

	// Load retrieves the answers for a given session ID.
	// Returns domain.ErrAnswersNotFound if the session does not exist.
	Load(ctx context.Context, sessionID string) (domain.AnswerStore, error)

	// Delete removes the answers for a given session ID.
	Delete(ctx context.Context, sessionID string) error

	// List returns the IDs of stored sessions.
	List(ctx context.Context) ([]string, error)
}

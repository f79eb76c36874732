package ports

import (
	"context"

	"github.com/aretw0/wizard/pkg/domain"
)

// RemoteResolver evaluates function descriptors: defaults, dynamic option
// lists, function questions and remote validations.
// Implementations may be network bound; the engine awaits each call.
type RemoteResolver interface {
	Resolve(ctx context.Context, fn domain.FuncDescriptor, answers domain.AnswerStore) (any, error)
}

package session

import (
	"context"
	"maps"
	"slices"

	"github.com/aretw0/wizard/pkg/domain"
)

type checkpointKey struct{}

// checkpoint is the partial answer set of one running traversal.
// It is only touched from the traversal goroutine.
type checkpoint struct {
	sessionID string
	answers   domain.AnswerStore
}

func withCheckpoint(ctx context.Context, cp *checkpoint) context.Context {
	return context.WithValue(ctx, checkpointKey{}, cp)
}

func checkpointFrom(ctx context.Context) *checkpoint {
	cp, _ := ctx.Value(checkpointKey{}).(*checkpoint)
	return cp
}

// Hooks returns lifecycle hooks that persist answers as they are accepted.
// They act only inside Run with checkpointing enabled, so they can be merged
// into an engine shared with other callers.
func (m *Manager) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQuestionLeave: func(ctx context.Context, e *domain.QuestionEvent) {
			cp := checkpointFrom(ctx)
			if cp == nil || e.Question == "" {
				return
			}
			if e.Result != domain.ResultSuccess && e.Result != domain.ResultPass {
				return
			}

			next := cp.answers.Clone()
			next.Set(e.Question, e.Value)
			delta := domain.DiffAnswers(cp.answers, next)
			if delta == nil {
				return
			}
			cp.answers = next

			// The session lock is held by Run.
			if err := m.repo.Save(ctx, cp.sessionID, next); err != nil {
				m.logger.Warn("checkpoint failed", "session_id", cp.sessionID, "err", err)
				return
			}
			m.logger.Debug("checkpoint saved", "session_id", cp.sessionID, "changed", slices.Sorted(maps.Keys(delta)))
		},
	}
}

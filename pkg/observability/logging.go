package observability

import (
	"context"
	"log/slog"

	"github.com/aretw0/wizard/pkg/domain"
)

// LogHooks writes one structured line per lifecycle event.
// Answer values are not logged.
func LogHooks(logger *slog.Logger) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQuestionEnter: func(ctx context.Context, e *domain.QuestionEvent) {
			logger.DebugContext(ctx, "enter", "run_id", e.RunID, "node", e.Node, "kind", e.Kind)
		},
		OnQuestionLeave: func(ctx context.Context, e *domain.QuestionEvent) {
			logger.DebugContext(ctx, "leave", "run_id", e.RunID, "node", e.Node, "result", e.Result)
		},
		OnResolve: func(ctx context.Context, e *domain.ResolveEvent) {
			level := slog.LevelDebug
			if e.Err != nil {
				level = slog.LevelWarn
			}
			logger.Log(ctx, level, "resolve",
				"run_id", e.RunID,
				"node", e.Node,
				"method", e.Method,
				"purpose", e.Purpose,
				"duration", e.Duration,
				"err", e.Err,
			)
		},
		OnBacktrack: func(ctx context.Context, e *domain.BacktrackEvent) {
			logger.InfoContext(ctx, "back", "run_id", e.RunID, "from", e.From, "to", e.To)
		},
		OnTraversalEnd: func(ctx context.Context, e *domain.TraversalEvent) {
			logger.InfoContext(ctx, "traversal finished",
				"run_id", e.RunID,
				"result", e.Result,
				"answers", e.Answers,
				"duration", e.Duration,
			)
		},
	}
}

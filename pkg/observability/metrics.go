package observability

import (
	"context"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
)

// Namespace prefixes every metric name.
const Namespace = "wizard"

// Metrics holds the collectors fed by Hooks.
type Metrics struct {
	Questions         *prometheus.CounterVec
	Resolves          *prometheus.HistogramVec
	ResolveErrors     *prometheus.CounterVec
	Backtracks        *prometheus.CounterVec
	Traversals        *prometheus.CounterVec
	TraversalDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Questions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "questions_total",
			Help:      "Questions resolved, by question type and outcome.",
		}, []string{"type", "result"}),
		Resolves: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "resolve_duration_seconds",
			Help:      "Latency of remote function calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "purpose"}),
		ResolveErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "resolve_errors_total",
			Help:      "Failed remote function calls.",
		}, []string{"method", "purpose"}),
		Backtracks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "backtracks_total",
			Help:      "Back requests, by whether they found an earlier question.",
		}, []string{"landed"}),
		Traversals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: Namespace,
			Name:      "traversals_total",
			Help:      "Finished traversals, by outcome.",
		}, []string{"result"}),
		TraversalDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: Namespace,
			Name:      "traversal_duration_seconds",
			Help:      "Wall time of whole traversals, prompts included.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}
	if reg != nil {
		reg.MustRegister(m.Questions, m.Resolves, m.ResolveErrors, m.Backtracks, m.Traversals, m.TraversalDuration)
	}
	return m
}

// Hooks returns lifecycle hooks that update the collectors.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnQuestionLeave: func(_ context.Context, e *domain.QuestionEvent) {
			if e.Kind != domain.KindLeaf {
				return
			}
			m.Questions.WithLabelValues(string(e.QuestionType), string(e.Result)).Inc()
		},
		OnResolve: func(_ context.Context, e *domain.ResolveEvent) {
			m.Resolves.WithLabelValues(e.Method, e.Purpose).Observe(e.Duration.Seconds())
			if e.Err != nil {
				m.ResolveErrors.WithLabelValues(e.Method, e.Purpose).Inc()
			}
		},
		OnBacktrack: func(_ context.Context, e *domain.BacktrackEvent) {
			landed := "true"
			if e.To == "" {
				landed = "false"
			}
			m.Backtracks.WithLabelValues(landed).Inc()
		},
		OnTraversalEnd: func(_ context.Context, e *domain.TraversalEvent) {
			m.Traversals.WithLabelValues(string(e.Result)).Inc()
			m.TraversalDuration.Observe(e.Duration.Seconds())
		},
	}
}

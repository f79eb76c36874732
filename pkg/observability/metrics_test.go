package observability_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/aretw0/wizard/internal/runtime"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/dsl"
	"github.com/aretw0/wizard/pkg/observability"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/aretw0/wizard/pkg/registry"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func traverse(t *testing.T, hooks domain.LifecycleHooks, replies ...domain.NavigationResult) error {
	t.Helper()
	b := dsl.New("app")
	b.Text("name")
	b.Select("env", "dev")
	b.Text("owner")
	b.Func("stamp", "now", nil)
	tree := b.MustBuild()

	reg := registry.NewRegistry()
	reg.Register("now", func(context.Context, map[string]any, domain.AnswerStore) (any, error) {
		return nil, errors.New("clock unavailable")
	})

	prompter := ports.PrompterFunc(func(context.Context, *ports.PromptRequest) (domain.NavigationResult, error) {
		next := replies[0]
		replies = replies[1:]
		return next, nil
	})
	_, err := runtime.NewEngine(prompter, reg, runtime.WithLifecycleHooks(hooks)).Traverse(context.Background(), tree, nil)
	return err
}

func TestMetrics_Hooks(t *testing.T) {
	m := observability.NewMetrics(prometheus.NewRegistry())

	err := traverse(t, m.Hooks(),
		domain.Success("a"),
		domain.Back(),
		domain.Success("b"),
		domain.Success("ana"),
	)
	require.Error(t, err)

	assert.Equal(t, 3.0, testutil.ToFloat64(m.Questions.WithLabelValues("text", "success")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Questions.WithLabelValues("text", "back")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.Questions.WithLabelValues("single_select", "pass")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Backtracks.WithLabelValues("true")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ResolveErrors.WithLabelValues("now", "func")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.Traversals.WithLabelValues("error")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.TraversalDuration))
}

func TestMetrics_Registration(t *testing.T) {
	reg := prometheus.NewRegistry()
	observability.NewMetrics(reg)

	assert.Panics(t, func() { observability.NewMetrics(reg) }, "duplicate registration must fail loudly")
	assert.NotPanics(t, func() { observability.NewMetrics(nil) })
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	err := traverse(t, observability.LogHooks(logger),
		domain.Success("secret-name"),
		domain.Cancel(),
	)

	assert.ErrorIs(t, err, domain.ErrCancelled)
	out := buf.String()
	assert.Contains(t, out, "traversal finished")
	assert.Contains(t, out, "result=cancel")
	assert.NotContains(t, out, "secret-name")
}

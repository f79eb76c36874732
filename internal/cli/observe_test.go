package cli

import (
	"context"
	"testing"

	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/observability"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveResolver(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	r := ObserveResolver(Builtins(), "remote", metrics.Hooks())

	_, err := r.Resolve(context.Background(), domain.FuncDescriptor{Method: "uuid"}, nil)
	require.NoError(t, err)
	_, err = r.Resolve(context.Background(), domain.FuncDescriptor{Method: "missing"}, nil)
	require.Error(t, err)

	assert.Equal(t, 2, testutil.CollectAndCount(metrics.Resolves))
	assert.Equal(t, 1.0, testutil.ToFloat64(metrics.ResolveErrors.WithLabelValues("missing", "remote")))
}

func TestObserveResolver_NoHook(t *testing.T) {
	b := Builtins()
	assert.Same(t, b, ObserveResolver(b, "remote", domain.LifecycleHooks{}))
}

package http_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	wizhttp "github.com/aretw0/wizard/pkg/adapters/http"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRegistry() *registry.Registry {
	reg := registry.NewRegistry()
	reg.Register("greet", func(_ context.Context, params map[string]any, answers domain.AnswerStore) (any, error) {
		return params["greeting"].(string) + ", " + answers["name"].(string), nil
	})
	reg.Register("fail", func(context.Context, map[string]any, domain.AnswerStore) (any, error) {
		return nil, errors.New("boom")
	})
	return reg
}

func TestServer_Call(t *testing.T) {
	h := wizhttp.NewHandler(newRegistry())

	req := httptest.NewRequest(http.MethodPost, "/functions/greet",
		strings.NewReader(`{"params":{"greeting":"Hi"},"answers":{"name":"Ana"}}`))
	w := httptest.NewRecorder()
	h.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"result":"Hi, Ana"}`, w.Body.String())
}

func TestServer_Errors(t *testing.T) {
	h := wizhttp.NewHandler(newRegistry())

	tests := []struct {
		name   string
		path   string
		body   string
		status int
		msg    string
	}{
		{"unknown method", "/functions/nope", `{}`, http.StatusNotFound, "function not found"},
		{"function error", "/functions/fail", `{}`, http.StatusInternalServerError, "boom"},
		{"bad body", "/functions/greet", `{`, http.StatusBadRequest, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodPost, tt.path, strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, w.Code)
			assert.Contains(t, w.Body.String(), tt.msg)
		})
	}
}

func TestServer_HealthAndMetrics(t *testing.T) {
	metrics := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("wizard_up 1\n"))
	})
	h := wizhttp.NewHandler(newRegistry(), wizhttp.WithMetricsHandler(metrics))

	w := httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())

	w = httptest.NewRecorder()
	h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, "wizard_up 1\n", w.Body.String())

	w = httptest.NewRecorder()
	wizhttp.NewHandler(newRegistry()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestServer_RoundTrip(t *testing.T) {
	srv := httptest.NewServer(wizhttp.NewHandler(newRegistry()))
	defer srv.Close()
	client := wizhttp.NewResolver(srv.URL + "/")

	v, err := client.Resolve(context.Background(),
		domain.FuncDescriptor{Method: "greet", Params: map[string]any{"greeting": "Hello"}},
		domain.AnswerStore{"name": "Bo"})
	require.NoError(t, err)
	assert.Equal(t, "Hello, Bo", v)

	_, err = client.Resolve(context.Background(), domain.FuncDescriptor{Method: "nope"}, nil)
	assert.ErrorIs(t, err, domain.ErrFunctionNotFound)

	_, err = client.Resolve(context.Background(), domain.FuncDescriptor{Method: "fail"}, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "boom")
}

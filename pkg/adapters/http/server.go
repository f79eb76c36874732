// Package http exposes RemoteResolver functions over HTTP and provides the
// matching client.
//
// Wire format:
//
//	POST /functions/{method}
//	{"params": {...}, "answers": {...}}
//
//	200 {"result": ...}
//	404 {"error": "function not found: ..."}
//	500 {"error": "..."}
package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/wizard/internal/logging"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
	"github.com/go-chi/chi/v5"
)

// CallRequest is the body of a function call.
type CallRequest struct {
	Params  map[string]any     `json:"params,omitempty"`
	Answers domain.AnswerStore `json:"answers,omitempty"`
}

// CallResponse carries either a result or an error message.
type CallResponse struct {
	Result any    `json:"result,omitempty"`
	Error  string `json:"error,omitempty"`
}

// Server dispatches function calls to a resolver.
type Server struct {
	resolver ports.RemoteResolver
	metrics  http.Handler
	logger   *slog.Logger
}

// ServerOption configures the Server.
type ServerOption func(*Server)

// WithMetricsHandler mounts h at GET /metrics.
func WithMetricsHandler(h http.Handler) ServerOption {
	return func(s *Server) {
		s.metrics = h
	}
}

// WithServerLogger sets the request logger.
func WithServerLogger(logger *slog.Logger) ServerOption {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewHandler creates the HTTP handler serving resolver.
func NewHandler(resolver ports.RemoteResolver, opts ...ServerOption) http.Handler {
	s := &Server{resolver: resolver, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Get("/healthz", s.health)
	r.Post("/functions/{method}", s.call)
	if s.metrics != nil {
		r.Method(http.MethodGet, "/metrics", s.metrics)
	}
	return enableCORS(r)
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"}, s.logger)
}

func (s *Server) call(w http.ResponseWriter, r *http.Request) {
	method := chi.URLParam(r, "method")

	var body CallRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		s.logger.Warn("invalid request body", "method", method, "err", err)
		writeJSON(w, http.StatusBadRequest, CallResponse{Error: "invalid request body"}, s.logger)
		return
	}
	if body.Answers == nil {
		body.Answers = domain.NewAnswerStore()
	}

	result, err := s.resolver.Resolve(r.Context(), domain.FuncDescriptor{Method: method, Params: body.Params}, body.Answers)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, domain.ErrFunctionNotFound) {
			status = http.StatusNotFound
		}
		s.logger.Warn("function failed", "method", method, "status", status, "err", err)
		writeJSON(w, status, CallResponse{Error: err.Error()}, s.logger)
		return
	}

	s.logger.Debug("function resolved", "method", method)
	writeJSON(w, http.StatusOK, CallResponse{Result: result}, s.logger)
}

func writeJSON(w http.ResponseWriter, status int, v any, logger *slog.Logger) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("response encode failed", "err", err)
	}
}

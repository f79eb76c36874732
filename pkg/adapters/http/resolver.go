package http

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/aretw0/wizard/internal/logging"
	"github.com/aretw0/wizard/pkg/domain"
	"golang.org/x/sync/singleflight"
)

// DefaultTimeout bounds one function call.
const DefaultTimeout = 10 * time.Second

// Resolver is a ports.RemoteResolver that calls a function server.
// Requests never overlap: a call waits for the previous one and for the
// configured minimum spacing. Identical concurrent calls share one request.
type Resolver struct {
	baseURL  string
	client   *http.Client
	interval time.Duration
	logger   *slog.Logger

	mu   sync.Mutex // held for the whole request
	last time.Time

	flights singleflight.Group
}

// ResolverOption configures the Resolver.
type ResolverOption func(*Resolver)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) ResolverOption {
	return func(r *Resolver) {
		r.client = c
	}
}

// WithMinInterval sets the minimum time between the end of one request and
// the start of the next.
func WithMinInterval(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.interval = d
	}
}

// WithLogger sets the client logger.
func WithLogger(logger *slog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a client for the function server at baseURL.
func NewResolver(baseURL string, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: DefaultTimeout},
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve implements ports.RemoteResolver.
func (r *Resolver) Resolve(ctx context.Context, fn domain.FuncDescriptor, answers domain.AnswerStore) (any, error) {
	body, err := json.Marshal(CallRequest{Params: fn.Params, Answers: answers})
	if err != nil {
		return nil, fmt.Errorf("failed to encode call: %w", err)
	}

	key := fn.Method + "\x00" + string(body)
	v, err, shared := r.flights.Do(key, func() (any, error) {
		return r.call(ctx, fn.Method, body)
	})
	if shared {
		r.logger.Debug("shared in-flight call", "method", fn.Method)
	}
	return v, err
}

func (r *Resolver) call(ctx context.Context, method string, body []byte) (any, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if wait := time.Until(r.last.Add(r.interval)); wait > 0 {
		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}
	defer func() { r.last = time.Now() }()

	endpoint := r.baseURL + "/functions/" + url.PathEscape(method)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	start := time.Now()
	resp, err := r.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("call %s: %w", method, err)
	}
	defer resp.Body.Close()

	var out CallResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("call %s: invalid response (status %d): %w", method, resp.StatusCode, err)
	}
	r.logger.Debug("remote call", "method", method, "status", resp.StatusCode, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", domain.ErrFunctionNotFound, method)
	case resp.StatusCode >= 300:
		return nil, fmt.Errorf("call %s: status %d: %s", method, resp.StatusCode, out.Error)
	case out.Error != "":
		return nil, fmt.Errorf("call %s: %s", method, out.Error)
	}
	return out.Result, nil
}

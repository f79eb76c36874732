package cli

import (
	"context"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/aretw0/wizard/pkg/adapters/file"
	wizhttp "github.com/aretw0/wizard/pkg/adapters/http"
	"github.com/aretw0/wizard/pkg/adapters/memory"
	"github.com/aretw0/wizard/pkg/adapters/process"
	"github.com/aretw0/wizard/pkg/adapters/redis"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/persistence/middleware"
	"github.com/aretw0/wizard/pkg/ports"
)

// Store kinds accepted by --store.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
)

// StoreOptions selects and configures the answer repository.
type StoreOptions struct {
	Kind          string
	Dir           string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TTL           time.Duration
	// EncryptionKey is a 32 byte key, hex or base64 encoded. Empty disables encryption.
	EncryptionKey string
	FallbackKeys  []string
	// Redact lists answer-name patterns kept out of storage.
	Redact []string
}

// Persistence bundles the repository with the optional distributed locker.
type Persistence struct {
	Repo   ports.AnswerRepository
	Locker ports.DistributedLocker
	close  func() error
}

// Close releases backend connections.
func (p *Persistence) Close() error {
	if p.close == nil {
		return nil
	}
	return p.close()
}

// OpenRepository builds the repository described by opts, wrapped with the
// configured middlewares.
func OpenRepository(opts StoreOptions) (*Persistence, error) {
	p := &Persistence{}

	switch opts.Kind {
	case StoreMemory:
		p.Repo = memory.NewStore()
	case "", StoreFile:
		dir := opts.Dir
		if dir == "" {
			dir = file.DefaultBasePath
		}
		p.Repo = file.New(dir)
	case StoreRedis:
		if opts.RedisAddr == "" {
			return nil, errors.New("redis store requires --redis-addr")
		}
		var storeOpts []redis.Option
		if opts.TTL > 0 {
			storeOpts = append(storeOpts, redis.WithTTL(opts.TTL))
		}
		store := redis.New(opts.RedisAddr, opts.RedisPassword, opts.RedisDB, storeOpts...)
		p.Repo = store
		p.Locker = redis.NewLocker(store.Client(), redis.DefaultPrefix)
		p.close = store.Close
	default:
		return nil, fmt.Errorf("unknown store %q (memory, file, redis)", opts.Kind)
	}

	var mws []middleware.Middleware
	if len(opts.Redact) > 0 {
		mw, err := redactMiddleware(opts.Redact)
		if err != nil {
			return nil, err
		}
		mws = append(mws, mw)
	}
	if opts.EncryptionKey != "" {
		cfg, err := encryptionConfig(opts.EncryptionKey, opts.FallbackKeys)
		if err != nil {
			return nil, err
		}
		mws = append(mws, middleware.NewEncryptionMiddleware(cfg))
	}
	p.Repo = middleware.Chain(p.Repo, mws...)

	return p, nil
}

func redactMiddleware(patterns []string) (mw middleware.Middleware, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("invalid --redact pattern: %v", r)
		}
	}()
	return middleware.NewPIIMiddleware(patterns), nil
}

func encryptionConfig(active string, fallbacks []string) (middleware.EncryptionConfig, error) {
	var cfg middleware.EncryptionConfig
	key, err := decodeKey(active)
	if err != nil {
		return cfg, fmt.Errorf("encryption key: %w", err)
	}
	cfg.ActiveKey = key
	for i, s := range fallbacks {
		k, err := decodeKey(s)
		if err != nil {
			return cfg, fmt.Errorf("fallback key %d: %w", i, err)
		}
		cfg.FallbackKeys = append(cfg.FallbackKeys, k)
	}
	return cfg, nil
}

// decodeKey accepts 64 hex characters or the base64 form of 32 bytes.
func decodeKey(s string) ([]byte, error) {
	if b, err := hex.DecodeString(s); err == nil && len(b) == 32 {
		return b, nil
	}
	if b, err := base64.StdEncoding.DecodeString(s); err == nil && len(b) == 32 {
		return b, nil
	}
	return nil, errors.New("must be 32 bytes, hex or base64 encoded")
}

// ResolverOptions selects where tree functions are evaluated.
type ResolverOptions struct {
	// URL of a function server. Takes precedence over local functions.
	URL         string
	MinInterval time.Duration
	// FunctionsPath is a YAML or JSON list of allow-listed commands.
	FunctionsPath string
}

// NewResolver builds the resolver chain: the function server or the command
// functions first, then the builtins.
func NewResolver(opts ResolverOptions, logger *slog.Logger) (ports.RemoteResolver, error) {
	chain := chainResolver{}

	if opts.URL != "" {
		var httpOpts []wizhttp.ResolverOption
		httpOpts = append(httpOpts, wizhttp.WithLogger(logger))
		if opts.MinInterval > 0 {
			httpOpts = append(httpOpts, wizhttp.WithMinInterval(opts.MinInterval))
		}
		chain = append(chain, wizhttp.NewResolver(opts.URL, httpOpts...))
	}

	if opts.FunctionsPath != "" {
		functions, err := process.LoadFunctions(opts.FunctionsPath)
		if err != nil {
			return nil, err
		}
		logger.Debug("command functions loaded", "path", opts.FunctionsPath, "count", len(functions))
		chain = append(chain, process.NewResolver(
			process.WithFunctions(functions),
			process.WithBaseDir(filepath.Dir(opts.FunctionsPath)),
		))
	}

	return append(chain, Builtins()), nil
}

// chainResolver tries each resolver in turn, moving on only when a method is
// unknown to the current one.
type chainResolver []ports.RemoteResolver

func (c chainResolver) Resolve(ctx context.Context, fn domain.FuncDescriptor, answers domain.AnswerStore) (any, error) {
	err := fmt.Errorf("%w: %s", domain.ErrFunctionNotFound, fn.Method)
	for _, r := range c {
		var v any
		v, err = r.Resolve(ctx, fn, answers)
		if !errors.Is(err, domain.ErrFunctionNotFound) {
			return v, err
		}
	}
	return nil, err
}

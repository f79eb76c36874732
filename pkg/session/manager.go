package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/aretw0/wizard/internal/logging"
	"github.com/aretw0/wizard/pkg/domain"
	"github.com/aretw0/wizard/pkg/ports"
)

// DefaultLockTTL bounds how long a crashed holder can block a session.
const DefaultLockTTL = 30 * time.Second

// Traverser runs one traversal. *runtime.Engine and *wizard.Wizard satisfy it.
type Traverser interface {
	Traverse(ctx context.Context, root *domain.Node, seed domain.AnswerStore) (domain.AnswerStore, error)
}

// lockEntry holds the mutex and the reference count.
type lockEntry struct {
	mu   sync.Mutex
	refs int
}

// Manager orchestrates session access, ensuring safe concurrent operations.
// Unused lock entries are dropped by reference counting.
type Manager struct {
	repo ports.AnswerRepository

	mu    sync.Mutex
	locks map[string]*lockEntry

	locker     ports.DistributedLocker
	lockTTL    time.Duration
	checkpoint bool
	logger     *slog.Logger
}

// Option configures the Manager.
type Option func(*Manager)

// WithLocker enables distributed locking.
func WithLocker(locker ports.DistributedLocker) Option {
	return func(m *Manager) {
		m.locker = locker
	}
}

// WithLockTTL sets the distributed lock expiry.
func WithLockTTL(ttl time.Duration) Option {
	return func(m *Manager) {
		if ttl > 0 {
			m.lockTTL = ttl
		}
	}
}

// WithCheckpoint saves answers after every accepted question. The engine must
// be built with the manager's Hooks for this to take effect.
func WithCheckpoint(enabled bool) Option {
	return func(m *Manager) {
		m.checkpoint = enabled
	}
}

// WithLogger configures a logger for the Manager.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		m.logger = logger
	}
}

// NewManager creates a new session manager over repo.
func NewManager(repo ports.AnswerRepository, opts ...Option) *Manager {
	m := &Manager{
		repo:    repo,
		locks:   make(map[string]*lockEntry),
		lockTTL: DefaultLockTTL,
		logger:  logging.NewNop(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Run traverses root for sessionID. Stored answers seed the traversal and the
// completed answer set replaces them. On cancel, back or error nothing is
// saved beyond what checkpoints already wrote.
func (m *Manager) Run(ctx context.Context, sessionID string, root *domain.Node, t Traverser) (domain.AnswerStore, error) {
	var answers domain.AnswerStore
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		seed, err := m.loadSeed(ctx, sessionID)
		if err != nil {
			return err
		}
		m.logger.Debug("session run", "session_id", sessionID, "seeded", len(seed))

		if m.checkpoint {
			ctx = withCheckpoint(ctx, &checkpoint{sessionID: sessionID, answers: seed.Clone()})
		}

		answers, err = t.Traverse(ctx, root, seed)
		if err != nil {
			return err
		}
		if err := m.repo.Save(ctx, sessionID, answers); err != nil {
			return fmt.Errorf("failed to save answers: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return answers, nil
}

func (m *Manager) loadSeed(ctx context.Context, sessionID string) (domain.AnswerStore, error) {
	seed, err := m.repo.Load(ctx, sessionID)
	if errors.Is(err, domain.ErrAnswersNotFound) {
		return domain.NewAnswerStore(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load answers: %w", err)
	}
	return seed, nil
}

// Load retrieves the stored answers of a session.
func (m *Manager) Load(ctx context.Context, sessionID string) (domain.AnswerStore, error) {
	var answers domain.AnswerStore
	err := m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		var err error
		answers, err = m.repo.Load(ctx, sessionID)
		return err
	})
	return answers, err
}

// Save replaces the stored answers of a session.
func (m *Manager) Save(ctx context.Context, sessionID string, answers domain.AnswerStore) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.repo.Save(ctx, sessionID, answers)
	})
}

// Delete removes the session from the repository.
func (m *Manager) Delete(ctx context.Context, sessionID string) error {
	return m.WithLock(ctx, sessionID, func(ctx context.Context) error {
		return m.repo.Delete(ctx, sessionID)
	})
}

// List delegates to the repository.
func (m *Manager) List(ctx context.Context) ([]string, error) {
	return m.repo.List(ctx)
}

// acquire gets or creates a lock entry and increments its reference count.
// The caller must lock entry.mu and call release after unlocking.
func (m *Manager) acquire(sessionID string) *lockEntry {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[sessionID]
	if !ok {
		entry = &lockEntry{}
		m.locks[sessionID] = entry
	}
	entry.refs++
	return entry
}

func (m *Manager) release(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	entry, ok := m.locks[sessionID]
	if !ok {
		return
	}
	entry.refs--
	if entry.refs <= 0 {
		delete(m.locks, sessionID)
	}
}

// WithLock executes fn while holding the lock for the session.
func (m *Manager) WithLock(ctx context.Context, sessionID string, fn func(context.Context) error) error {
	entry := m.acquire(sessionID)
	entry.mu.Lock()
	defer func() {
		entry.mu.Unlock()
		m.release(sessionID)
	}()

	if m.locker != nil {
		unlock, err := m.locker.Lock(ctx, sessionID, m.lockTTL)
		if err != nil {
			return fmt.Errorf("failed to acquire distributed lock: %w", err)
		}
		defer func() {
			// The run context may be done by now; unlock regardless.
			if err := unlock(context.WithoutCancel(ctx)); err != nil {
				m.logger.Warn("failed to release distributed lock (will expire via TTL)",
					"session_id", sessionID,
					"err", err,
				)
			}
		}()
	}

	return fn(ctx)
}

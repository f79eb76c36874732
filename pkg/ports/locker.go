package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a lock obtained from a DistributedLocker.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker serializes access to a session across processes.
type DistributedLocker interface {
	// Lock blocks until the lock for key is held, ctx is done, or acquisition fails.
	// The lock expires after ttl if it is never released.
	// The returned UnlockFunc MUST be called to release it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}

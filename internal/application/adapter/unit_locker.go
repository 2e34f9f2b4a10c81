package adapter

import (
	"context"
	"time"
)

// UnitLocker claims a batch unit (a lease or a property-month) so that
// concurrent scheduler replicas do not process it at the same time.
type UnitLocker interface {
	// TryLock claims key for ttl. ok is false when another holder owns it.
	TryLock(ctx context.Context, key string, ttl time.Duration) (token string, ok bool, err error)

	// Release frees key if it is still held with token.
	Release(ctx context.Context, key, token string) error
}

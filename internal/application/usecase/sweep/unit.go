// Package sweep runs the ledger use cases over every lease or property.
package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// DefaultLockTTL is used when a sweep is built with a locker but no TTL.
const DefaultLockTTL = 5 * time.Minute

// unitRunner executes one unit of a batch, optionally claiming it first.
type unitRunner struct {
	locker  adapter.UnitLocker
	lockTTL time.Duration
}

// run executes fn for id and records the outcome in result. A unit claimed
// by another worker is recorded as skipped.
func (r unitRunner) run(
	ctx context.Context,
	result *entity.BatchResult,
	id uuid.UUID,
	key string,
	fn func(ctx context.Context) error,
) {
	logger := slog.With("job", result.Job, "unit", key)

	if r.locker != nil {
		ttl := r.lockTTL
		if ttl <= 0 {
			ttl = DefaultLockTTL
		}

		token, ok, err := r.locker.TryLock(ctx, key, ttl)
		if err != nil {
			logger.Error("Failed to claim unit", "error", err)
			result.RecordFailure(id, fmt.Errorf("claim %s: %w", key, err))
			return
		}
		if !ok {
			logger.Debug("Unit claimed by another worker")
			result.RecordSkip(id)
			return
		}
		defer func() {
			if err := r.locker.Release(context.WithoutCancel(ctx), key, token); err != nil {
				logger.Warn("Failed to release unit", "error", err)
			}
		}()
	}

	if err := fn(ctx); err != nil {
		logger.Error("Unit failed", "error", err)
		result.RecordFailure(id, err)
		return
	}
	result.RecordSuccess(id)
}

package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// RentRollRepository stores monthly rent roll snapshots.
type RentRollRepository interface {
	// Upsert inserts roll or, when a roll for the same property, month and
	// year exists, replaces every metric of it. Returns the stored roll.
	Upsert(ctx context.Context, roll *entity.RentRoll) (*entity.RentRoll, error)

	// Find retrieves the roll of a property for a month.
	// Returns nil, nil when none was generated yet.
	Find(ctx context.Context, propertyID uuid.UUID, month, year int) (*entity.RentRoll, error)

	// Count returns the number of stored rolls for a property.
	Count(ctx context.Context, propertyID uuid.UUID) (int64, error)
}

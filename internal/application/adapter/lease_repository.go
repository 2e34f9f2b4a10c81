package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// LeaseRepository defines the interface for lease persistence operations.
// Leases are always returned with their charges loaded.
type LeaseRepository interface {
	// Create stores a lease together with its charges.
	Create(ctx context.Context, lease *entity.Lease) error

	// FindByID retrieves a lease by its ID.
	// Returns domainerror.ErrLeaseNotFound when it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Lease, error)

	// FindActive retrieves every ACTIVE lease, ordered by ID.
	FindActive(ctx context.Context) ([]*entity.Lease, error)

	// FindForRentRoll retrieves the leases of a property that count towards
	// the given month: those whose window intersects the period, plus those
	// that started on or before the period end and are still ACTIVE.
	FindForRentRoll(ctx context.Context, propertyID uuid.UUID, period valueobject.Period) ([]*entity.Lease, error)

	// ApplyIncrease stores the escalated rent and next increase date of lease
	// and appends entry, in one transaction. The update only happens while
	// the stored next increase date still equals previousIncreaseDate.
	// Returns false when another writer got there first.
	ApplyIncrease(ctx context.Context, lease *entity.Lease, previousIncreaseDate time.Time, entry *entity.Transaction) (bool, error)
}

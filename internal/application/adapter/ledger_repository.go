package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// LedgerRepository gives append-only access to the transaction ledger.
// Entries are never updated or deleted.
type LedgerRepository interface {
	// Append stores a new ledger entry.
	Append(ctx context.Context, entry *entity.Transaction) error

	// FindByProperty retrieves the entries of a property dated within
	// period, ends included, ordered by date.
	FindByProperty(ctx context.Context, propertyID uuid.UUID, period valueobject.Period) ([]*entity.Transaction, error)

	// FindByReference retrieves the entries derived from a record.
	FindByReference(ctx context.Context, referenceID uuid.UUID) ([]*entity.Transaction, error)
}

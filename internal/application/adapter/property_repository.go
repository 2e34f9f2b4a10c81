package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// PropertyRepository reads properties. Listing management lives in another
// service; Create exists for seeding and tests.
type PropertyRepository interface {
	// Create stores a property.
	Create(ctx context.Context, property *entity.Property) error

	// FindByID retrieves a property by its ID.
	// Returns domainerror.ErrPropertyNotFound when it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error)

	// FindByOwner retrieves every property of a landlord, ordered by title.
	FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Property, error)

	// FindAll retrieves every property, ordered by ID.
	FindAll(ctx context.Context) ([]*entity.Property, error)
}

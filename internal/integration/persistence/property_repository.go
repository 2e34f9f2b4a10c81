// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/persistence/model"
)

// propertyRepository implements the adapter.PropertyRepository interface.
type propertyRepository struct {
	db *gorm.DB
}

// NewPropertyRepository creates a new property repository instance.
func NewPropertyRepository(db *gorm.DB) adapter.PropertyRepository {
	return &propertyRepository{
		db: db,
	}
}

// Create creates a new property in the database.
func (r *propertyRepository) Create(ctx context.Context, property *entity.Property) error {
	return r.db.WithContext(ctx).Create(model.PropertyFromEntity(property)).Error
}

// FindByID retrieves a property by its ID.
func (r *propertyRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Property, error) {
	var propertyModel model.PropertyModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&propertyModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrPropertyNotFound
		}
		return nil, result.Error
	}
	return propertyModel.ToEntity(), nil
}

// FindByOwner retrieves all properties of a landlord.
func (r *propertyRepository) FindByOwner(ctx context.Context, ownerID uuid.UUID) ([]*entity.Property, error) {
	var propertyModels []model.PropertyModel
	result := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("title ASC, id ASC").
		Find(&propertyModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toProperties(propertyModels), nil
}

// FindAll retrieves every property.
func (r *propertyRepository) FindAll(ctx context.Context) ([]*entity.Property, error) {
	var propertyModels []model.PropertyModel
	if err := r.db.WithContext(ctx).Order("id ASC").Find(&propertyModels).Error; err != nil {
		return nil, err
	}
	return toProperties(propertyModels), nil
}

func toProperties(models []model.PropertyModel) []*entity.Property {
	properties := make([]*entity.Property, len(models))
	for i := range models {
		properties[i] = models[i].ToEntity()
	}
	return properties
}

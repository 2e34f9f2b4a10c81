package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/integration/persistence/model"
)

// rentRollMetricColumns are replaced on every regeneration.
var rentRollMetricColumns = []string{
	"total_units",
	"occupied_units",
	"vacant_units",
	"occupancy_rate",
	"potential_rent",
	"actual_rent",
	"loss_to_vacancy",
	"other_income",
	"total_income",
	"total_expenses",
	"net_operating_income",
	"updated_at",
}

// rentRollRepository implements the adapter.RentRollRepository interface.
type rentRollRepository struct {
	db *gorm.DB
}

// NewRentRollRepository creates a new rent roll repository instance.
func NewRentRollRepository(db *gorm.DB) adapter.RentRollRepository {
	return &rentRollRepository{
		db: db,
	}
}

// Upsert inserts or fully replaces the roll keyed by property, month and year.
func (r *rentRollRepository) Upsert(ctx context.Context, roll *entity.RentRoll) (*entity.RentRoll, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "property_id"}, {Name: "month"}, {Name: "year"}},
			DoUpdates: clause.AssignmentColumns(rentRollMetricColumns),
		}).
		Create(model.RentRollFromEntity(roll))
	if result.Error != nil {
		return nil, result.Error
	}

	stored, err := r.Find(ctx, roll.PropertyID, roll.Month, roll.Year)
	if err != nil {
		return nil, err
	}
	if stored == nil {
		return nil, errors.New("rent roll missing after upsert")
	}
	return stored, nil
}

// Find retrieves the roll of a property for a month, or nil.
func (r *rentRollRepository) Find(ctx context.Context, propertyID uuid.UUID, month, year int) (*entity.RentRoll, error) {
	var rollModel model.RentRollModel
	result := r.db.WithContext(ctx).
		Where("property_id = ? AND month = ? AND year = ?", propertyID, month, year).
		First(&rollModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return rollModel.ToEntity(), nil
}

// Count returns the number of rolls stored for a property.
func (r *rentRollRepository) Count(ctx context.Context, propertyID uuid.UUID) (int64, error) {
	var count int64
	result := r.db.WithContext(ctx).
		Model(&model.RentRollModel{}).
		Where("property_id = ?", propertyID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}
	return count, nil
}

package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
	"github.com/property-ledger/backend/internal/integration/persistence/model"
)

// leaseRepository implements the adapter.LeaseRepository interface.
type leaseRepository struct {
	db *gorm.DB
}

// NewLeaseRepository creates a new lease repository instance.
func NewLeaseRepository(db *gorm.DB) adapter.LeaseRepository {
	return &leaseRepository{
		db: db,
	}
}

// Create creates a lease and its charges.
func (r *leaseRepository) Create(ctx context.Context, lease *entity.Lease) error {
	return r.db.WithContext(ctx).Create(model.LeaseFromEntity(lease)).Error
}

// FindByID retrieves a lease with its charges.
func (r *leaseRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Lease, error) {
	var leaseModel model.LeaseModel
	result := r.db.WithContext(ctx).
		Preload("Charges", orderCharges).
		Where("id = ?", id).
		First(&leaseModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrLeaseNotFound
		}
		return nil, result.Error
	}
	return leaseModel.ToEntity(), nil
}

// FindActive retrieves all ACTIVE leases.
func (r *leaseRepository) FindActive(ctx context.Context) ([]*entity.Lease, error) {
	var leaseModels []model.LeaseModel
	result := r.db.WithContext(ctx).
		Preload("Charges", orderCharges).
		Where("status = ?", string(entity.LeaseStatusActive)).
		Order("id ASC").
		Find(&leaseModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toLeases(leaseModels), nil
}

// FindForRentRoll retrieves the leases of a property counting towards period.
// A lease without an end date only matches through the ACTIVE branch.
func (r *leaseRepository) FindForRentRoll(
	ctx context.Context,
	propertyID uuid.UUID,
	period valueobject.Period,
) ([]*entity.Lease, error) {
	var leaseModels []model.LeaseModel
	result := r.db.WithContext(ctx).
		Preload("Charges", orderCharges).
		Where("property_id = ?", propertyID).
		Where(
			"((start_date <= ? AND end_date >= ?) OR (start_date <= ? AND status = ?))",
			period.End, period.Start, period.End, string(entity.LeaseStatusActive),
		).
		Order("start_date ASC, id ASC").
		Find(&leaseModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toLeases(leaseModels), nil
}

// ApplyIncrease stores an escalated rent with its ledger entry.
func (r *leaseRepository) ApplyIncrease(
	ctx context.Context,
	lease *entity.Lease,
	previousIncreaseDate time.Time,
	entry *entity.Transaction,
) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.LeaseModel{}).
			Where("id = ? AND next_increase_date = ?", lease.ID, previousIncreaseDate).
			Updates(map[string]any{
				"monthly_rent":       lease.MonthlyRent,
				"next_increase_date": lease.NextIncreaseDate,
				"updated_at":         lease.UpdatedAt,
			})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		if err := tx.Create(model.TransactionFromEntity(entry)).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	if err != nil {
		return false, err
	}
	return applied, nil
}

func orderCharges(db *gorm.DB) *gorm.DB {
	return db.Order("start_date ASC, id ASC")
}

func toLeases(models []model.LeaseModel) []*entity.Lease {
	leases := make([]*entity.Lease, len(models))
	for i := range models {
		leases[i] = models[i].ToEntity()
	}
	return leases
}

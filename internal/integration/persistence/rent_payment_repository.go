package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
	"github.com/property-ledger/backend/internal/integration/persistence/model"
)

// rentPaymentRepository implements the adapter.RentPaymentRepository interface.
type rentPaymentRepository struct {
	db *gorm.DB
}

// NewRentPaymentRepository creates a new rent payment repository instance.
func NewRentPaymentRepository(db *gorm.DB) adapter.RentPaymentRepository {
	return &rentPaymentRepository{
		db: db,
	}
}

// Create creates a new rent payment in the database.
func (r *rentPaymentRepository) Create(ctx context.Context, payment *entity.RentPayment) error {
	return r.db.WithContext(ctx).Create(model.RentPaymentFromEntity(payment)).Error
}

// CreateIfAbsent inserts payment unless (lease_id, due_date) is taken.
func (r *rentPaymentRepository) CreateIfAbsent(ctx context.Context, payment *entity.RentPayment) (bool, error) {
	result := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "lease_id"}, {Name: "due_date"}},
			DoNothing: true,
		}).
		Create(model.RentPaymentFromEntity(payment))
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// FindByID retrieves a rent payment by its ID.
func (r *rentPaymentRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.RentPayment, error) {
	return findRentPayment(r.db.WithContext(ctx), id)
}

// FindByLease retrieves the payments of a lease, optionally filtered by status.
func (r *rentPaymentRepository) FindByLease(
	ctx context.Context,
	leaseID uuid.UUID,
	statuses ...entity.RentPaymentStatus,
) ([]*entity.RentPayment, error) {
	query := r.db.WithContext(ctx).Where("lease_id = ?", leaseID)
	if len(statuses) > 0 {
		query = query.Where("status IN ?", statusStrings(statuses))
	}

	var paymentModels []model.RentPaymentModel
	if err := query.Order("due_date ASC").Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toRentPayments(paymentModels), nil
}

// FindDueInPeriod retrieves the payments of leaseIDs due within period.
func (r *rentPaymentRepository) FindDueInPeriod(
	ctx context.Context,
	leaseIDs []uuid.UUID,
	period valueobject.Period,
) ([]*entity.RentPayment, error) {
	if len(leaseIDs) == 0 {
		return []*entity.RentPayment{}, nil
	}

	var paymentModels []model.RentPaymentModel
	result := r.db.WithContext(ctx).
		Where("lease_id IN ?", leaseIDs).
		Where("due_date >= ? AND due_date <= ?", period.Start, period.End).
		Order("due_date ASC, lease_id ASC").
		Find(&paymentModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toRentPayments(paymentModels), nil
}

// MarkOverdue flags outstanding payments due before today.
func (r *rentPaymentRepository) MarkOverdue(ctx context.Context, leaseID uuid.UUID, today time.Time) (int64, error) {
	outstanding := []entity.RentPaymentStatus{
		entity.RentPaymentStatusPending,
		entity.RentPaymentStatusPartiallyPaid,
	}

	result := r.db.WithContext(ctx).
		Model(&model.RentPaymentModel{}).
		Where("lease_id = ? AND status IN ? AND due_date < ?", leaseID, statusStrings(outstanding), valueobject.DateOnly(today)).
		Updates(map[string]any{
			"status":     string(entity.RentPaymentStatusOverdue),
			"updated_at": today.UTC(),
		})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// ApplyLateFee stores the late fee of payment and its ledger entry.
func (r *rentPaymentRepository) ApplyLateFee(
	ctx context.Context,
	payment *entity.RentPayment,
	entry *entity.Transaction,
) (bool, error) {
	applied := false
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&model.RentPaymentModel{}).
			Where("id = ? AND late_fee_applied = ?", payment.ID, false).
			Updates(map[string]any{
				"late_fees":        payment.LateFees,
				"amount":           payment.Amount,
				"days_late":        payment.DaysLate,
				"late_fee_applied": true,
				"updated_at":       payment.UpdatedAt,
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

// RecordSettlement applies a captured payment and appends its ledger entry.
// The ledger's unique external reference makes redelivery a no-op.
func (r *rentPaymentRepository) RecordSettlement(
	ctx context.Context,
	settlement adapter.Settlement,
	entry *entity.Transaction,
) (*entity.RentPayment, bool, error) {
	var payment *entity.RentPayment
	recorded := false

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		payment, err = findRentPayment(tx, settlement.PaymentID)
		if err != nil {
			return err
		}

		entry.ReferenceID = &payment.ID
		entry.ReferenceType = entity.ReferenceTypeRentPayment
		entry.ExternalReference = &settlement.ExternalReference

		result := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "external_reference"}},
			DoNothing: true,
		}).Create(model.TransactionFromEntity(entry))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}

		payment.ApplySettlement(settlement.Amount, settlement.PaidAt, settlement.Method, settlement.ExternalReference)
		update := tx.Model(&model.RentPaymentModel{}).
			Where("id = ?", payment.ID).
			Updates(map[string]any{
				"amount_paid":        payment.AmountPaid,
				"status":             string(payment.Status),
				"paid_date":          payment.PaidDate,
				"payment_method":     payment.PaymentMethod,
				"external_reference": payment.ExternalReference,
				"updated_at":         payment.UpdatedAt,
			})
		if update.Error != nil {
			return update.Error
		}
		recorded = true
		return nil
	})
	if err != nil {
		return nil, false, err
	}
	return payment, recorded, nil
}

// MarkFailed flags a payment as FAILED unless it is PAID.
func (r *rentPaymentRepository) MarkFailed(ctx context.Context, id uuid.UUID) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&model.RentPaymentModel{}).
		Where("id = ? AND status NOT IN ?", id, []string{
			string(entity.RentPaymentStatusPaid),
			string(entity.RentPaymentStatusFailed),
		}).
		Updates(map[string]any{
			"status":     string(entity.RentPaymentStatusFailed),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return true, nil
	}

	if _, err := r.FindByID(ctx, id); err != nil {
		return false, err
	}
	return false, nil
}

func findRentPayment(db *gorm.DB, id uuid.UUID) (*entity.RentPayment, error) {
	var paymentModel model.RentPaymentModel
	result := db.Where("id = ?", id).First(&paymentModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, domainerror.ErrRentPaymentNotFound
		}
		return nil, result.Error
	}
	return paymentModel.ToEntity(), nil
}

func statusStrings(statuses []entity.RentPaymentStatus) []string {
	out := make([]string, len(statuses))
	for i, s := range statuses {
		out[i] = string(s)
	}
	return out
}

func toRentPayments(models []model.RentPaymentModel) []*entity.RentPayment {
	payments := make([]*entity.RentPayment, len(models))
	for i := range models {
		payments[i] = models[i].ToEntity()
	}
	return payments
}

package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
	"github.com/property-ledger/backend/internal/integration/persistence/model"
)

// ledgerRepository implements the adapter.LedgerRepository interface.
type ledgerRepository struct {
	db *gorm.DB
}

// NewLedgerRepository creates a new ledger repository instance.
func NewLedgerRepository(db *gorm.DB) adapter.LedgerRepository {
	return &ledgerRepository{
		db: db,
	}
}

// Append inserts a ledger entry.
func (r *ledgerRepository) Append(ctx context.Context, entry *entity.Transaction) error {
	return r.db.WithContext(ctx).Create(model.TransactionFromEntity(entry)).Error
}

// FindByProperty retrieves the entries of a property within period.
func (r *ledgerRepository) FindByProperty(
	ctx context.Context,
	propertyID uuid.UUID,
	period valueobject.Period,
) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("property_id = ?", propertyID).
		Where("date >= ? AND date <= ?", period.Start, period.End).
		Order("date ASC, created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactions(transactionModels), nil
}

// FindByReference retrieves the entries derived from referenceID.
func (r *ledgerRepository) FindByReference(ctx context.Context, referenceID uuid.UUID) ([]*entity.Transaction, error) {
	var transactionModels []model.TransactionModel
	result := r.db.WithContext(ctx).
		Where("reference_id = ?", referenceID).
		Order("created_at ASC").
		Find(&transactionModels)
	if result.Error != nil {
		return nil, result.Error
	}
	return toTransactions(transactionModels), nil
}

func toTransactions(models []model.TransactionModel) []*entity.Transaction {
	transactions := make([]*entity.Transaction, len(models))
	for i := range models {
		transactions[i] = models[i].ToEntity()
	}
	return transactions
}

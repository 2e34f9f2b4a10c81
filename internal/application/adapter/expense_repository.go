package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// ExpenseRepository reads property expenses.
type ExpenseRepository interface {
	// Create stores an expense.
	Create(ctx context.Context, expense *entity.Expense) error

	// FindByProperty retrieves the expenses of a property dated within
	// period, ends included, ordered by date.
	FindByProperty(ctx context.Context, propertyID uuid.UUID, period valueobject.Period) ([]*entity.Expense, error)
}

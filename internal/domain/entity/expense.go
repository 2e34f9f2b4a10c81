// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Expense is a cost recorded against a property. Expenses are entered
// outside the engine and only read by the aggregations.
type Expense struct {
	ID            uuid.UUID
	PropertyID    uuid.UUID
	Category      string
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	TaxDeductible bool
	CreatedAt     time.Time
}

// ExpenseCategoryTotal is the sum of expenses of one category.
type ExpenseCategoryTotal struct {
	Category string
	Amount   decimal.Decimal
}

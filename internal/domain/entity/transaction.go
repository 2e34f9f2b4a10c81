// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// TransactionType represents the direction of a ledger entry.
type TransactionType string

const (
	TransactionTypeIncome  TransactionType = "INCOME"
	TransactionTypeExpense TransactionType = "EXPENSE"
)

// Ledger categories written by the engine.
const (
	CategoryRent         = "Rent"
	CategoryLateFees     = "Late Fees"
	CategoryRentIncrease = "Rent Increase"
)

// RentIncomeCategories are the categories reported as rent income on an
// income statement. Every other INCOME category is "other" income.
var RentIncomeCategories = []string{CategoryRent, CategoryLateFees}

// ReferenceType names the kind of record a ledger entry originates from.
type ReferenceType string

const (
	ReferenceTypeRentPayment ReferenceType = "RENT_PAYMENT"
	ReferenceTypeLease       ReferenceType = "LEASE"
)

// Transaction is an immutable ledger entry. Corrections are made by
// appending offsetting entries, never by editing.
type Transaction struct {
	ID            uuid.UUID
	PropertyID    uuid.UUID
	LeaseID       *uuid.UUID
	Type          TransactionType
	Category      string
	Description   string
	Amount        decimal.Decimal
	Date          time.Time
	ReferenceID   *uuid.UUID
	ReferenceType ReferenceType

	// ExternalReference is the payment processor id of a settlement.
	// At most one entry carries a given value.
	ExternalReference *string
	CreatedAt         time.Time
}

// NewIncomeTransaction creates an INCOME ledger entry for a lease.
func NewIncomeTransaction(
	propertyID uuid.UUID,
	leaseID uuid.UUID,
	category string,
	description string,
	amount decimal.Decimal,
	date time.Time,
) *Transaction {
	return &Transaction{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		LeaseID:     &leaseID,
		Type:        TransactionTypeIncome,
		Category:    category,
		Description: description,
		Amount:      amount,
		Date:        valueobject.DateOnly(date),
		CreatedAt:   time.Now().UTC(),
	}
}

// WithReference links the entry to the record it was derived from.
func (t *Transaction) WithReference(id uuid.UUID, refType ReferenceType) *Transaction {
	t.ReferenceID = &id
	t.ReferenceType = refType
	return t
}

// IsRentIncome reports whether the entry counts as rent income.
func (t *Transaction) IsRentIncome() bool {
	if t.Type != TransactionTypeIncome {
		return false
	}
	for _, category := range RentIncomeCategories {
		if t.Category == category {
			return true
		}
	}
	return false
}

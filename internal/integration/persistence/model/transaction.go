package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// TransactionModel represents the append-only transactions ledger table.
type TransactionModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PropertyID        uuid.UUID       `gorm:"type:uuid;not null;index:idx_transactions_property_date"`
	LeaseID           *uuid.UUID      `gorm:"type:uuid;index"`
	Type              string          `gorm:"type:varchar(10);not null"`
	Category          string          `gorm:"type:varchar(100);not null"`
	Description       string          `gorm:"type:varchar(255)"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date              time.Time       `gorm:"type:date;not null;index:idx_transactions_property_date"`
	ReferenceID       *uuid.UUID      `gorm:"type:uuid;index"`
	ReferenceType     string          `gorm:"type:varchar(20)"`
	ExternalReference *string         `gorm:"type:varchar(255);uniqueIndex"`
	CreatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the TransactionModel.
func (TransactionModel) TableName() string {
	return "transactions"
}

// ToEntity converts a TransactionModel to a domain Transaction entity.
func (m *TransactionModel) ToEntity() *entity.Transaction {
	return &entity.Transaction{
		ID:                m.ID,
		PropertyID:        m.PropertyID,
		LeaseID:           m.LeaseID,
		Type:              entity.TransactionType(m.Type),
		Category:          m.Category,
		Description:       m.Description,
		Amount:            m.Amount,
		Date:              m.Date.UTC(),
		ReferenceID:       m.ReferenceID,
		ReferenceType:     entity.ReferenceType(m.ReferenceType),
		ExternalReference: m.ExternalReference,
		CreatedAt:         m.CreatedAt,
	}
}

// TransactionFromEntity creates a TransactionModel from a domain Transaction entity.
func TransactionFromEntity(t *entity.Transaction) *TransactionModel {
	return &TransactionModel{
		ID:                t.ID,
		PropertyID:        t.PropertyID,
		LeaseID:           t.LeaseID,
		Type:              string(t.Type),
		Category:          t.Category,
		Description:       t.Description,
		Amount:            t.Amount,
		Date:              valueobject.DateOnly(t.Date),
		ReferenceID:       t.ReferenceID,
		ReferenceType:     string(t.ReferenceType),
		ExternalReference: t.ExternalReference,
		CreatedAt:         t.CreatedAt,
	}
}

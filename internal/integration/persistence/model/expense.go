package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// ExpenseModel represents the expenses table in the database.
type ExpenseModel struct {
	ID            uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PropertyID    uuid.UUID       `gorm:"type:uuid;not null;index:idx_expenses_property_date"`
	Category      string          `gorm:"type:varchar(100);not null"`
	Description   string          `gorm:"type:varchar(255)"`
	Amount        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Date          time.Time       `gorm:"type:date;not null;index:idx_expenses_property_date"`
	TaxDeductible bool            `gorm:"not null"`
	CreatedAt     time.Time       `gorm:"not null"`
}

// TableName returns the table name for the ExpenseModel.
func (ExpenseModel) TableName() string {
	return "expenses"
}

// ToEntity converts an ExpenseModel to a domain Expense entity.
func (m *ExpenseModel) ToEntity() *entity.Expense {
	return &entity.Expense{
		ID:            m.ID,
		PropertyID:    m.PropertyID,
		Category:      m.Category,
		Description:   m.Description,
		Amount:        m.Amount,
		Date:          m.Date.UTC(),
		TaxDeductible: m.TaxDeductible,
		CreatedAt:     m.CreatedAt,
	}
}

// ExpenseFromEntity creates an ExpenseModel from a domain Expense entity.
func ExpenseFromEntity(e *entity.Expense) *ExpenseModel {
	return &ExpenseModel{
		ID:            e.ID,
		PropertyID:    e.PropertyID,
		Category:      e.Category,
		Description:   e.Description,
		Amount:        e.Amount,
		Date:          valueobject.DateOnly(e.Date),
		TaxDeductible: e.TaxDeductible,
		CreatedAt:     e.CreatedAt,
	}
}

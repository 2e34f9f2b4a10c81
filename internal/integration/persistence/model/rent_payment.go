package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// RentPaymentModel represents the rent_payments table in the database.
// (lease_id, due_date) is unique; generation relies on it to stay idempotent.
type RentPaymentModel struct {
	ID                uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LeaseID           uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_rent_payments_lease_due"`
	DueDate           time.Time       `gorm:"type:date;not null;uniqueIndex:idx_rent_payments_lease_due;index"`
	BaseRent          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Amount            decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	AmountPaid        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Status            string          `gorm:"type:varchar(20);not null;index"`
	PaidDate          *time.Time      `gorm:"type:timestamp"`
	LateFees          decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	OtherCharges      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	DaysLate          int             `gorm:"not null"`
	LateFeeApplied    bool            `gorm:"not null"`
	PaymentMethod     *string         `gorm:"type:varchar(50)"`
	ExternalReference *string         `gorm:"type:varchar(255)"`
	CreatedAt         time.Time       `gorm:"not null"`
	UpdatedAt         time.Time       `gorm:"not null"`
}

// TableName returns the table name for the RentPaymentModel.
func (RentPaymentModel) TableName() string {
	return "rent_payments"
}

// ToEntity converts a RentPaymentModel to a domain RentPayment entity.
func (m *RentPaymentModel) ToEntity() *entity.RentPayment {
	return &entity.RentPayment{
		ID:                m.ID,
		LeaseID:           m.LeaseID,
		DueDate:           m.DueDate.UTC(),
		BaseRent:          m.BaseRent,
		Amount:            m.Amount,
		AmountPaid:        m.AmountPaid,
		Status:            entity.RentPaymentStatus(m.Status),
		PaidDate:          utcPtr(m.PaidDate),
		LateFees:          m.LateFees,
		OtherCharges:      m.OtherCharges,
		DaysLate:          m.DaysLate,
		LateFeeApplied:    m.LateFeeApplied,
		PaymentMethod:     m.PaymentMethod,
		ExternalReference: m.ExternalReference,
		CreatedAt:         m.CreatedAt,
		UpdatedAt:         m.UpdatedAt,
	}
}

// RentPaymentFromEntity creates a RentPaymentModel from a domain RentPayment entity.
func RentPaymentFromEntity(p *entity.RentPayment) *RentPaymentModel {
	return &RentPaymentModel{
		ID:                p.ID,
		LeaseID:           p.LeaseID,
		DueDate:           valueobject.DateOnly(p.DueDate),
		BaseRent:          p.BaseRent,
		Amount:            p.Amount,
		AmountPaid:        p.AmountPaid,
		Status:            string(p.Status),
		PaidDate:          p.PaidDate,
		LateFees:          p.LateFees,
		OtherCharges:      p.OtherCharges,
		DaysLate:          p.DaysLate,
		LateFeeApplied:    p.LateFeeApplied,
		PaymentMethod:     p.PaymentMethod,
		ExternalReference: p.ExternalReference,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}

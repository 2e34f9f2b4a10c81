package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// LeaseModel represents the leases table in the database.
type LeaseModel struct {
	ID               uuid.UUID        `gorm:"type:uuid;primaryKey"`
	PropertyID       uuid.UUID        `gorm:"type:uuid;not null;index"`
	TenantID         uuid.UUID        `gorm:"type:uuid;not null;index"`
	Status           string           `gorm:"type:varchar(20);not null;index"`
	MonthlyRent      decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	StartDate        time.Time        `gorm:"type:date;not null"`
	EndDate          *time.Time       `gorm:"type:date"`
	RentDueDay       int              `gorm:"not null"`
	RentIncreaseRate *decimal.Decimal `gorm:"type:decimal(7,4)"`
	NextIncreaseDate *time.Time       `gorm:"type:date"`
	LateFeeGraceDays int              `gorm:"not null"`
	LateFeeAmount    decimal.Decimal  `gorm:"type:decimal(15,2);not null"`
	CreatedAt        time.Time        `gorm:"not null"`
	UpdatedAt        time.Time        `gorm:"not null"`

	// Relationships
	Charges []LeaseChargeModel `gorm:"foreignKey:LeaseID;references:ID"`
}

// TableName returns the table name for the LeaseModel.
func (LeaseModel) TableName() string {
	return "leases"
}

// LeaseChargeModel represents the lease_charges table in the database.
type LeaseChargeModel struct {
	ID          uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LeaseID     uuid.UUID       `gorm:"type:uuid;not null;index"`
	Description string          `gorm:"type:varchar(255)"`
	Amount      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	Frequency   string          `gorm:"type:varchar(20);not null"`
	StartDate   time.Time       `gorm:"type:date;not null"`
	EndDate     *time.Time      `gorm:"type:date"`
	IsActive    bool            `gorm:"not null"`
	CreatedAt   time.Time       `gorm:"not null"`
	UpdatedAt   time.Time       `gorm:"not null"`
}

// TableName returns the table name for the LeaseChargeModel.
func (LeaseChargeModel) TableName() string {
	return "lease_charges"
}

// ToEntity converts a LeaseModel, with its preloaded charges, to a domain Lease entity.
func (m *LeaseModel) ToEntity() *entity.Lease {
	charges := make([]*entity.LeaseCharge, len(m.Charges))
	for i := range m.Charges {
		charges[i] = m.Charges[i].ToEntity()
	}

	return &entity.Lease{
		ID:               m.ID,
		PropertyID:       m.PropertyID,
		TenantID:         m.TenantID,
		Status:           entity.LeaseStatus(m.Status),
		MonthlyRent:      m.MonthlyRent,
		StartDate:        m.StartDate.UTC(),
		EndDate:          utcPtr(m.EndDate),
		RentDueDay:       m.RentDueDay,
		RentIncreaseRate: m.RentIncreaseRate,
		NextIncreaseDate: utcPtr(m.NextIncreaseDate),
		LateFeeGraceDays: m.LateFeeGraceDays,
		LateFeeAmount:    m.LateFeeAmount,
		Charges:          charges,
		CreatedAt:        m.CreatedAt,
		UpdatedAt:        m.UpdatedAt,
	}
}

// LeaseFromEntity creates a LeaseModel, including its charges, from a domain Lease entity.
func LeaseFromEntity(l *entity.Lease) *LeaseModel {
	charges := make([]LeaseChargeModel, len(l.Charges))
	for i, c := range l.Charges {
		charges[i] = *LeaseChargeFromEntity(c)
		charges[i].LeaseID = l.ID
	}

	return &LeaseModel{
		ID:               l.ID,
		PropertyID:       l.PropertyID,
		TenantID:         l.TenantID,
		Status:           string(l.Status),
		MonthlyRent:      l.MonthlyRent,
		StartDate:        valueobject.DateOnly(l.StartDate),
		EndDate:          dateOnlyPtr(l.EndDate),
		RentDueDay:       l.RentDueDay,
		RentIncreaseRate: l.RentIncreaseRate,
		NextIncreaseDate: dateOnlyPtr(l.NextIncreaseDate),
		LateFeeGraceDays: l.LateFeeGraceDays,
		LateFeeAmount:    l.LateFeeAmount,
		Charges:          charges,
		CreatedAt:        l.CreatedAt,
		UpdatedAt:        l.UpdatedAt,
	}
}

// ToEntity converts a LeaseChargeModel to a domain LeaseCharge entity.
func (m *LeaseChargeModel) ToEntity() *entity.LeaseCharge {
	return &entity.LeaseCharge{
		ID:          m.ID,
		LeaseID:     m.LeaseID,
		Description: m.Description,
		Amount:      m.Amount,
		Frequency:   entity.ChargeFrequency(m.Frequency),
		StartDate:   m.StartDate.UTC(),
		EndDate:     utcPtr(m.EndDate),
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

// LeaseChargeFromEntity creates a LeaseChargeModel from a domain LeaseCharge entity.
func LeaseChargeFromEntity(c *entity.LeaseCharge) *LeaseChargeModel {
	return &LeaseChargeModel{
		ID:          c.ID,
		LeaseID:     c.LeaseID,
		Description: c.Description,
		Amount:      c.Amount,
		Frequency:   string(c.Frequency),
		StartDate:   valueobject.DateOnly(c.StartDate),
		EndDate:     dateOnlyPtr(c.EndDate),
		IsActive:    c.IsActive,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

// dateOnlyPtr normalises an optional calendar date before it is stored.
func dateOnlyPtr(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	d := valueobject.DateOnly(*t)
	return &d
}

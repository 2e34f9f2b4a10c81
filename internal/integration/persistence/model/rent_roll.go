package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
)

// RentRollModel represents the rent_rolls table in the database.
type RentRollModel struct {
	ID                 uuid.UUID       `gorm:"type:uuid;primaryKey"`
	PropertyID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_rent_rolls_property_month"`
	Month              int             `gorm:"not null;uniqueIndex:idx_rent_rolls_property_month"`
	Year               int             `gorm:"not null;uniqueIndex:idx_rent_rolls_property_month"`
	TotalUnits         int             `gorm:"not null"`
	OccupiedUnits      int             `gorm:"not null"`
	VacantUnits        int             `gorm:"not null"`
	OccupancyRate      decimal.Decimal `gorm:"type:decimal(7,4);not null"`
	PotentialRent      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	ActualRent         decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	LossToVacancy      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	OtherIncome        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalIncome        decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	TotalExpenses      decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	NetOperatingIncome decimal.Decimal `gorm:"type:decimal(15,2);not null"`
	CreatedAt          time.Time       `gorm:"not null"`
	UpdatedAt          time.Time       `gorm:"not null"`
}

// TableName returns the table name for the RentRollModel.
func (RentRollModel) TableName() string {
	return "rent_rolls"
}

// ToEntity converts a RentRollModel to a domain RentRoll entity.
func (m *RentRollModel) ToEntity() *entity.RentRoll {
	return &entity.RentRoll{
		ID:                 m.ID,
		PropertyID:         m.PropertyID,
		Month:              m.Month,
		Year:               m.Year,
		TotalUnits:         m.TotalUnits,
		OccupiedUnits:      m.OccupiedUnits,
		VacantUnits:        m.VacantUnits,
		OccupancyRate:      m.OccupancyRate,
		PotentialRent:      m.PotentialRent,
		ActualRent:         m.ActualRent,
		LossToVacancy:      m.LossToVacancy,
		OtherIncome:        m.OtherIncome,
		TotalIncome:        m.TotalIncome,
		TotalExpenses:      m.TotalExpenses,
		NetOperatingIncome: m.NetOperatingIncome,
		CreatedAt:          m.CreatedAt,
		UpdatedAt:          m.UpdatedAt,
	}
}

// RentRollFromEntity creates a RentRollModel from a domain RentRoll entity.
func RentRollFromEntity(r *entity.RentRoll) *RentRollModel {
	return &RentRollModel{
		ID:                 r.ID,
		PropertyID:         r.PropertyID,
		Month:              r.Month,
		Year:               r.Year,
		TotalUnits:         r.TotalUnits,
		OccupiedUnits:      r.OccupiedUnits,
		VacantUnits:        r.VacantUnits,
		OccupancyRate:      r.OccupancyRate,
		PotentialRent:      r.PotentialRent,
		ActualRent:         r.ActualRent,
		LossToVacancy:      r.LossToVacancy,
		OtherIncome:        r.OtherIncome,
		TotalIncome:        r.TotalIncome,
		TotalExpenses:      r.TotalExpenses,
		NetOperatingIncome: r.NetOperatingIncome,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
	}
}

// All returns every model of the ledger schema in migration order.
func All() []any {
	return []any{
		&PropertyModel{},
		&LeaseModel{},
		&LeaseChargeModel{},
		&RentPaymentModel{},
		&TransactionModel{},
		&ExpenseModel{},
		&RentRollModel{},
	}
}

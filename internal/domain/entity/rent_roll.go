// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentRoll is the occupancy and income snapshot of one property for one
// calendar month. It is a derived cache: regenerating it from the same
// ledger state yields the same values.
type RentRoll struct {
	ID                 uuid.UUID
	PropertyID         uuid.UUID
	Month              int
	Year               int
	TotalUnits         int
	OccupiedUnits      int
	VacantUnits        int
	OccupancyRate      decimal.Decimal
	PotentialRent      decimal.Decimal
	ActualRent         decimal.Decimal
	LossToVacancy      decimal.Decimal // negative when collections exceed potential rent
	OtherIncome        decimal.Decimal
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	NetOperatingIncome decimal.Decimal
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// SameFigures reports whether two rolls carry identical metrics.
func (r *RentRoll) SameFigures(other *RentRoll) bool {
	return r.PropertyID == other.PropertyID &&
		r.Month == other.Month &&
		r.Year == other.Year &&
		r.TotalUnits == other.TotalUnits &&
		r.OccupiedUnits == other.OccupiedUnits &&
		r.VacantUnits == other.VacantUnits &&
		r.OccupancyRate.Equal(other.OccupancyRate) &&
		r.PotentialRent.Equal(other.PotentialRent) &&
		r.ActualRent.Equal(other.ActualRent) &&
		r.LossToVacancy.Equal(other.LossToVacancy) &&
		r.OtherIncome.Equal(other.OtherIncome) &&
		r.TotalIncome.Equal(other.TotalIncome) &&
		r.TotalExpenses.Equal(other.TotalExpenses) &&
		r.NetOperatingIncome.Equal(other.NetOperatingIncome)
}

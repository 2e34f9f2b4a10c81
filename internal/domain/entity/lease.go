// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// LeaseStatus represents the lifecycle state of a lease.
type LeaseStatus string

const (
	LeaseStatusActive  LeaseStatus = "ACTIVE"
	LeaseStatusEnded   LeaseStatus = "ENDED"
	LeaseStatusPending LeaseStatus = "PENDING"
)

// ChargeFrequency represents how often a recurring lease charge is billed.
type ChargeFrequency string

const (
	ChargeFrequencyMonthly   ChargeFrequency = "MONTHLY"
	ChargeFrequencyQuarterly ChargeFrequency = "QUARTERLY"
	ChargeFrequencyAnnually  ChargeFrequency = "ANNUALLY"
)

// Lease is a tenancy contract between one tenant and one property.
type Lease struct {
	ID               uuid.UUID
	PropertyID       uuid.UUID
	TenantID         uuid.UUID
	Status           LeaseStatus
	MonthlyRent      decimal.Decimal
	StartDate        time.Time
	EndDate          *time.Time // nil for open-ended leases
	RentDueDay       int
	RentIncreaseRate *decimal.Decimal // percent, e.g. 5 for 5%
	NextIncreaseDate *time.Time
	LateFeeGraceDays int
	LateFeeAmount    decimal.Decimal
	Charges          []*LeaseCharge
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LeaseCharge is a recurring fee attached to a lease (parking, storage, ...).
type LeaseCharge struct {
	ID          uuid.UUID
	LeaseID     uuid.UUID
	Description string
	Amount      decimal.Decimal
	Frequency   ChargeFrequency
	StartDate   time.Time
	EndDate     *time.Time
	IsActive    bool
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// NewLease creates an ACTIVE lease with dates normalised to calendar days.
func NewLease(
	propertyID uuid.UUID,
	tenantID uuid.UUID,
	monthlyRent decimal.Decimal,
	startDate time.Time,
	endDate *time.Time,
	rentDueDay int,
) *Lease {
	now := time.Now().UTC()

	var end *time.Time
	if endDate != nil {
		e := valueobject.DateOnly(*endDate)
		end = &e
	}

	return &Lease{
		ID:          uuid.New(),
		PropertyID:  propertyID,
		TenantID:    tenantID,
		Status:      LeaseStatusActive,
		MonthlyRent: monthlyRent,
		StartDate:   valueobject.DateOnly(startDate),
		EndDate:     end,
		RentDueDay:  rentDueDay,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
}

// IsActive reports whether the lease status is ACTIVE.
func (l *Lease) IsActive() bool {
	return l.Status == LeaseStatusActive
}

// Validate checks the lease invariants.
func (l *Lease) Validate() error {
	if !l.MonthlyRent.IsPositive() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidMonthlyRent,
			"monthly rent must be greater than zero",
			domainerror.ErrInvalidMonthlyRent,
		)
	}
	if l.EndDate != nil && l.EndDate.Before(l.StartDate) {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidLeaseDates,
			"lease end date must not be before its start date",
			domainerror.ErrInvalidLeaseDates,
		)
	}
	if l.RentDueDay < 1 || l.RentDueDay > 31 {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidRentDueDay,
			"rent due day must be between 1 and 31",
			domainerror.ErrInvalidRentDueDay,
		)
	}
	if l.LateFeeGraceDays < 0 || l.LateFeeAmount.IsNegative() {
		return domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidLateFeePolicy,
			"late fee grace days and amount must not be negative",
			domainerror.ErrInvalidLateFeePolicy,
		)
	}
	return nil
}

// DueDateIn returns the rent due date within the given month. Due days past
// the end of a short month fall on its last day.
func (l *Lease) DueDateIn(year int, month time.Month) time.Time {
	return valueobject.DateOn(year, month, l.RentDueDay)
}

// MonthlyChargeTotal returns the rent plus every active charge billed in the
// month of the given date.
func (l *Lease) MonthlyChargeTotal(month time.Time) decimal.Decimal {
	total := l.MonthlyRent
	for _, charge := range l.Charges {
		if charge.AppliesTo(month) {
			total = total.Add(charge.Amount)
		}
	}
	return total
}

// AppliesTo reports whether the charge is billed for the given date. The
// charge must be active with a window covering the date, and its frequency
// must match the calendar month: quarterly charges bill in January, April,
// July and October regardless of when the lease started, annual charges in
// January.
func (c *LeaseCharge) AppliesTo(month time.Time) bool {
	if !c.IsActive || c.StartDate.After(month) {
		return false
	}
	if c.EndDate != nil && c.EndDate.Before(month) {
		return false
	}

	switch c.Frequency {
	case ChargeFrequencyMonthly:
		return true
	case ChargeFrequencyQuarterly:
		return (int(month.Month())-1)%3 == 0
	case ChargeFrequencyAnnually:
		return month.Month() == time.January
	default:
		return false
	}
}

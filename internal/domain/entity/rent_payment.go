// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// RentPaymentStatus represents the settlement state of a rent obligation.
type RentPaymentStatus string

const (
	RentPaymentStatusPending       RentPaymentStatus = "PENDING"
	RentPaymentStatusPaid          RentPaymentStatus = "PAID"
	RentPaymentStatusPartiallyPaid RentPaymentStatus = "PARTIALLY_PAID"
	RentPaymentStatusOverdue       RentPaymentStatus = "OVERDUE"
	RentPaymentStatusFailed        RentPaymentStatus = "FAILED"
)

// RentPayment is one rent obligation of a lease for a single due date.
// There is at most one RentPayment per (LeaseID, DueDate).
type RentPayment struct {
	ID                uuid.UUID
	LeaseID           uuid.UUID
	DueDate           time.Time
	BaseRent          decimal.Decimal
	Amount            decimal.Decimal // total owed, including fees
	AmountPaid        decimal.Decimal
	Status            RentPaymentStatus
	PaidDate          *time.Time
	LateFees          decimal.Decimal
	OtherCharges      decimal.Decimal
	DaysLate          int
	LateFeeApplied    bool // once true, never reset
	PaymentMethod     *string
	ExternalReference *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// NewRentPayment creates a PENDING obligation.
func NewRentPayment(leaseID uuid.UUID, dueDate time.Time, baseRent, amount decimal.Decimal) *RentPayment {
	now := time.Now().UTC()

	return &RentPayment{
		ID:           uuid.New(),
		LeaseID:      leaseID,
		DueDate:      dueDate,
		BaseRent:     baseRent,
		Amount:       amount,
		AmountPaid:   decimal.Zero,
		Status:       RentPaymentStatusPending,
		LateFees:     decimal.Zero,
		OtherCharges: decimal.Zero,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
}

// IsSettled reports whether the obligation has been paid in full.
func (p *RentPayment) IsSettled() bool {
	return p.Status == RentPaymentStatusPaid
}

// IsOutstanding reports whether the obligation can still become overdue.
func (p *RentPayment) IsOutstanding() bool {
	return p.Status == RentPaymentStatusPending || p.Status == RentPaymentStatusPartiallyPaid
}

// OutstandingAmount returns what remains to be paid.
func (p *RentPayment) OutstandingAmount() decimal.Decimal {
	remaining := p.Amount.Sub(p.AmountPaid)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// ApplyLateFee adds fee to the amount owed and latches the late fee flag.
func (p *RentPayment) ApplyLateFee(fee decimal.Decimal, daysLate int, at time.Time) {
	p.LateFees = fee
	p.Amount = p.Amount.Add(fee)
	p.DaysLate = daysLate
	p.LateFeeApplied = true
	p.UpdatedAt = at
}

// ApplySettlement adds a settled amount and derives the resulting status:
// PAID once the paid total covers the amount owed, PARTIALLY_PAID before.
func (p *RentPayment) ApplySettlement(amount decimal.Decimal, paidAt time.Time, method, reference string) {
	p.AmountPaid = p.AmountPaid.Add(amount)
	if p.AmountPaid.GreaterThanOrEqual(p.Amount) {
		p.Status = RentPaymentStatusPaid
	} else {
		p.Status = RentPaymentStatusPartiallyPaid
	}

	paid := paidAt.UTC()
	p.PaidDate = &paid
	if method != "" {
		p.PaymentMethod = &method
	}
	if reference != "" {
		p.ExternalReference = &reference
	}
	p.UpdatedAt = paid
}

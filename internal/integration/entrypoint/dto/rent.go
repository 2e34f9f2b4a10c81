package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/usecase/latefee"
	"github.com/property-ledger/backend/internal/application/usecase/rent"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// ProratedRentResponse represents a prorated rent quote.
type ProratedRentResponse struct {
	MonthlyRent  decimal.Decimal `json:"monthly_rent"`
	DaysInMonth  int             `json:"days_in_month"`
	DaysOccupied int             `json:"days_occupied"`
	Amount       decimal.Decimal `json:"amount"`
}

// ToProratedRentResponse converts a proration output to its DTO.
func ToProratedRentResponse(o *rent.CalculateProratedRentOutput) ProratedRentResponse {
	return ProratedRentResponse{
		MonthlyRent:  o.MonthlyRent,
		DaysInMonth:  o.DaysInMonth,
		DaysOccupied: o.DaysOccupied,
		Amount:       o.Amount,
	}
}

// ChargeLineResponse is one recurring charge billed in the month.
type ChargeLineResponse struct {
	ID          string          `json:"id"`
	Description string          `json:"description"`
	Frequency   string          `json:"frequency"`
	Amount      decimal.Decimal `json:"amount"`
}

// MonthlyChargesResponse represents the monthly total of a lease.
type MonthlyChargesResponse struct {
	LeaseID     string               `json:"lease_id"`
	Month       string               `json:"month"`
	MonthlyRent decimal.Decimal      `json:"monthly_rent"`
	Charges     []ChargeLineResponse `json:"charges"`
	Total       decimal.Decimal      `json:"total"`
}

// ToMonthlyChargesResponse converts a monthly charges output to its DTO.
func ToMonthlyChargesResponse(o *rent.CalculateMonthlyChargesOutput) MonthlyChargesResponse {
	charges := make([]ChargeLineResponse, len(o.Charges))
	for i, line := range o.Charges {
		charges[i] = ChargeLineResponse{
			ID:          line.ID.String(),
			Description: line.Description,
			Frequency:   line.Frequency,
			Amount:      line.Amount,
		}
	}

	return MonthlyChargesResponse{
		LeaseID:     o.LeaseID.String(),
		Month:       o.Month.Format("2006-01"),
		MonthlyRent: o.MonthlyRent,
		Charges:     charges,
		Total:       o.Total,
	}
}

// RentIncreaseResponse represents the result of a rent escalation.
type RentIncreaseResponse struct {
	LeaseID          string          `json:"lease_id"`
	Applied          bool            `json:"applied"`
	Reason           string          `json:"reason,omitempty"`
	PreviousRent     decimal.Decimal `json:"previous_rent"`
	NewRent          decimal.Decimal `json:"new_rent"`
	IncreaseDate     *string         `json:"increase_date,omitempty"`
	NextIncreaseDate *string         `json:"next_increase_date,omitempty"`
}

// ToRentIncreaseResponse converts an escalation output to its DTO.
func ToRentIncreaseResponse(o *rent.ApplyRentIncreaseOutput) RentIncreaseResponse {
	return RentIncreaseResponse{
		LeaseID:          o.LeaseID.String(),
		Applied:          o.Applied,
		Reason:           o.Reason,
		PreviousRent:     o.PreviousRent,
		NewRent:          o.NewRent,
		IncreaseDate:     formatDate(o.IncreaseDate),
		NextIncreaseDate: formatDate(o.NextIncreaseDate),
	}
}

// RecurringPaymentsResponse lists the due dates created by a generation run.
type RecurringPaymentsResponse struct {
	LeaseID  string   `json:"lease_id"`
	Created  []string `json:"created"`
	Existing []string `json:"existing"`
	Reason   string   `json:"reason,omitempty"`
}

// ToRecurringPaymentsResponse converts a generation output to its DTO.
func ToRecurringPaymentsResponse(o *rent.GenerateRecurringPaymentsOutput) RecurringPaymentsResponse {
	return RecurringPaymentsResponse{
		LeaseID:  o.LeaseID.String(),
		Created:  formatDates(o.Created),
		Existing: formatDates(o.Existing),
		Reason:   o.Reason,
	}
}

// DiscountResponse represents an early payment quote.
type DiscountResponse struct {
	LeaseID    string          `json:"lease_id"`
	Amount     decimal.Decimal `json:"amount"`
	Discounted decimal.Decimal `json:"discounted"`
	Rate       decimal.Decimal `json:"rate"`
	Applied    bool            `json:"applied"`
}

// ToDiscountResponse converts a discount output to its DTO.
func ToDiscountResponse(o *rent.ApplyEarlyPaymentDiscountOutput) DiscountResponse {
	return DiscountResponse{
		LeaseID:    o.LeaseID.String(),
		Amount:     o.Amount,
		Discounted: o.Discounted,
		Rate:       o.Rate,
		Applied:    o.Applied,
	}
}

// AssessedFeeResponse is one late fee charged during a pass.
type AssessedFeeResponse struct {
	PaymentID string          `json:"payment_id"`
	DueDate   string          `json:"due_date"`
	DaysLate  int             `json:"days_late"`
	Fee       decimal.Decimal `json:"fee"`
}

// FailureResponse is a unit that could not be processed.
type FailureResponse struct {
	ID    string `json:"id"`
	Error string `json:"error"`
}

// LateFeesResponse represents the result of a late fee pass.
type LateFeesResponse struct {
	LeaseID string                `json:"lease_id"`
	Applied []AssessedFeeResponse `json:"applied"`
	InGrace []string              `json:"in_grace"`
	Failed  []FailureResponse     `json:"failed"`
}

// ToLateFeesResponse converts a late fee output to its DTO.
func ToLateFeesResponse(o *latefee.CalculateLateFeesOutput) LateFeesResponse {
	applied := make([]AssessedFeeResponse, len(o.Applied))
	for i, fee := range o.Applied {
		applied[i] = AssessedFeeResponse{
			PaymentID: fee.PaymentID.String(),
			DueDate:   fee.DueDate.Format(time.DateOnly),
			DaysLate:  fee.DaysLate,
			Fee:       fee.Fee,
		}
	}

	inGrace := make([]string, len(o.InGrace))
	for i, id := range o.InGrace {
		inGrace[i] = id.String()
	}

	failed := make([]FailureResponse, len(o.Failed))
	for i, failure := range o.Failed {
		failed[i] = FailureResponse{
			ID:    failure.PaymentID.String(),
			Error: failure.Error,
		}
	}

	return LateFeesResponse{
		LeaseID: o.LeaseID.String(),
		Applied: applied,
		InGrace: inGrace,
		Failed:  failed,
	}
}

// OverdueResponse reports how many payments became overdue.
type OverdueResponse struct {
	LeaseID string `json:"lease_id"`
	Marked  int64  `json:"marked"`
}

// RecordSettlementRequest represents the request body for a settled payment.
type RecordSettlementRequest struct {
	Amount            decimal.Decimal `json:"amount"`
	PaidAt            *time.Time      `json:"paid_at,omitempty"`
	Method            string          `json:"method" binding:"required"`
	ExternalReference string          `json:"external_reference" binding:"required"`
}

// RentPaymentResponse represents a rent obligation in API responses.
type RentPaymentResponse struct {
	ID                string          `json:"id"`
	LeaseID           string          `json:"lease_id"`
	DueDate           string          `json:"due_date"`
	BaseRent          decimal.Decimal `json:"base_rent"`
	Amount            decimal.Decimal `json:"amount"`
	AmountPaid        decimal.Decimal `json:"amount_paid"`
	Status            string          `json:"status"`
	PaidDate          *string         `json:"paid_date,omitempty"`
	LateFees          decimal.Decimal `json:"late_fees"`
	DaysLate          int             `json:"days_late"`
	PaymentMethod     *string         `json:"payment_method,omitempty"`
	ExternalReference *string         `json:"external_reference,omitempty"`
}

// SettlementResponse represents the state after a settlement.
type SettlementResponse struct {
	Recorded bool                `json:"recorded"`
	Payment  RentPaymentResponse `json:"payment"`
}

// ToRentPaymentResponse converts a domain RentPayment to its DTO.
func ToRentPaymentResponse(p *entity.RentPayment) RentPaymentResponse {
	return RentPaymentResponse{
		ID:                p.ID.String(),
		LeaseID:           p.LeaseID.String(),
		DueDate:           p.DueDate.Format(time.DateOnly),
		BaseRent:          p.BaseRent,
		Amount:            p.Amount,
		AmountPaid:        p.AmountPaid,
		Status:            string(p.Status),
		PaidDate:          formatDate(p.PaidDate),
		LateFees:          p.LateFees,
		DaysLate:          p.DaysLate,
		PaymentMethod:     p.PaymentMethod,
		ExternalReference: p.ExternalReference,
	}
}

// PaymentFailureResponse reports whether a failed capture changed the payment.
type PaymentFailureResponse struct {
	PaymentID string `json:"payment_id"`
	Marked    bool   `json:"marked"`
}

// LedgerEntryResponse represents a ledger entry in API responses.
type LedgerEntryResponse struct {
	ID                string          `json:"id"`
	Type              string          `json:"type"`
	Category          string          `json:"category"`
	Description       string          `json:"description"`
	Amount            decimal.Decimal `json:"amount"`
	Date              string          `json:"date"`
	ExternalReference *string         `json:"external_reference,omitempty"`
}

// PaymentLedgerResponse is a rent payment with its ledger trail.
type PaymentLedgerResponse struct {
	Payment RentPaymentResponse   `json:"payment"`
	Entries []LedgerEntryResponse `json:"entries"`
}

// ToPaymentLedgerResponse converts a payment ledger output to its DTO.
func ToPaymentLedgerResponse(o *rent.GetPaymentLedgerOutput) PaymentLedgerResponse {
	entries := make([]LedgerEntryResponse, len(o.Entries))
	for i, tx := range o.Entries {
		entries[i] = LedgerEntryResponse{
			ID:                tx.ID.String(),
			Type:              string(tx.Type),
			Category:          tx.Category,
			Description:       tx.Description,
			Amount:            tx.Amount,
			Date:              tx.Date.Format(time.DateOnly),
			ExternalReference: tx.ExternalReference,
		}
	}
	return PaymentLedgerResponse{
		Payment: ToRentPaymentResponse(o.Payment),
		Entries: entries,
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.DateOnly)
	return &s
}

func formatDates(dates []time.Time) []string {
	out := make([]string, len(dates))
	for i, d := range dates {
		out[i] = d.Format(time.DateOnly)
	}
	return out
}

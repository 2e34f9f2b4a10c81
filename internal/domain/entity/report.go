// Package entity defines the core business entities for the domain layer.
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// StatementPeriod holds the inclusive bounds of a statement.
type StatementPeriod struct {
	Start time.Time
	End   time.Time
}

// IncomeBreakdown splits income into rent and other income.
type IncomeBreakdown struct {
	Rent  decimal.Decimal
	Other decimal.Decimal
	Total decimal.Decimal
}

// IncomeStatement is the income and expense summary of one property over a
// caller-supplied range.
type IncomeStatement struct {
	PropertyID         uuid.UUID
	Period             StatementPeriod
	Income             IncomeBreakdown
	Expenses           []ExpenseCategoryTotal
	TotalExpenses      decimal.Decimal
	NetOperatingIncome decimal.Decimal
}

// TaxReportRow is one property's line in a landlord's tax report.
// When Error is set the figures are zero and excluded from the summary.
type TaxReportRow struct {
	PropertyID         uuid.UUID
	Property           string
	Address            string
	Income             decimal.Decimal
	Expenses           decimal.Decimal
	NetIncome          decimal.Decimal
	DeductibleExpenses decimal.Decimal
	Error              string
}

// Failed reports whether the row could not be computed.
func (r TaxReportRow) Failed() bool {
	return r.Error != ""
}

// TaxReportSummary holds portfolio-wide totals.
type TaxReportSummary struct {
	TotalIncome        decimal.Decimal
	TotalExpenses      decimal.Decimal
	DeductibleExpenses decimal.Decimal
	NetIncome          decimal.Decimal
}

// TaxReport aggregates a landlord's properties over one calendar year.
type TaxReport struct {
	LandlordID uuid.UUID
	Year       int
	Properties []TaxReportRow
	Summary    TaxReportSummary
	Failures   []uuid.UUID
}

// IsPartial reports whether at least one property failed.
func (r *TaxReport) IsPartial() bool {
	return len(r.Failures) > 0
}

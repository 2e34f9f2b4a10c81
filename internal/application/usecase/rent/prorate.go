// Package rent contains rent calculation and rent obligation use cases.
package rent

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// CalculateProratedRent returns the share of monthlyRent owed for the days
// occupied in the month of moveIn. Without moveOut the tenant occupies
// through month end. At least one day is always counted. The result is not
// rounded.
func CalculateProratedRent(monthlyRent decimal.Decimal, moveIn time.Time, moveOut *time.Time) decimal.Decimal {
	end := valueobject.MonthEnd(moveIn)
	if moveOut != nil {
		end = *moveOut
	}

	daysInMonth := valueobject.DaysInMonth(moveIn)
	daysOccupied := valueobject.DaysBetweenInclusive(moveIn, end)
	if daysOccupied < 1 {
		daysOccupied = 1
	}

	// Multiply first so a full month yields monthlyRent exactly.
	return monthlyRent.
		Mul(decimal.NewFromInt(int64(daysOccupied))).
		Div(decimal.NewFromInt(int64(daysInMonth)))
}

// CalculateProratedRentInput represents the input for rent proration.
type CalculateProratedRentInput struct {
	MonthlyRent decimal.Decimal
	MoveIn      time.Time
	MoveOut     *time.Time
}

// CalculateProratedRentOutput represents the output of rent proration.
type CalculateProratedRentOutput struct {
	MonthlyRent  decimal.Decimal
	DaysInMonth  int
	DaysOccupied int
	Amount       decimal.Decimal
}

// CalculateProratedRentUseCase validates and runs CalculateProratedRent.
type CalculateProratedRentUseCase struct{}

// NewCalculateProratedRentUseCase creates a new CalculateProratedRentUseCase instance.
func NewCalculateProratedRentUseCase() *CalculateProratedRentUseCase {
	return &CalculateProratedRentUseCase{}
}

// Execute performs the proration.
func (uc *CalculateProratedRentUseCase) Execute(_ context.Context, input CalculateProratedRentInput) (*CalculateProratedRentOutput, error) {
	if !input.MonthlyRent.IsPositive() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidMonthlyRent,
			"monthly rent must be greater than zero",
			domainerror.ErrInvalidMonthlyRent,
		)
	}

	end := valueobject.MonthEnd(input.MoveIn)
	if input.MoveOut != nil {
		end = *input.MoveOut
	}
	daysOccupied := valueobject.DaysBetweenInclusive(input.MoveIn, end)
	if daysOccupied < 1 {
		daysOccupied = 1
	}

	return &CalculateProratedRentOutput{
		MonthlyRent:  input.MonthlyRent,
		DaysInMonth:  valueobject.DaysInMonth(input.MoveIn),
		DaysOccupied: daysOccupied,
		Amount:       CalculateProratedRent(input.MonthlyRent, input.MoveIn, input.MoveOut),
	}, nil
}

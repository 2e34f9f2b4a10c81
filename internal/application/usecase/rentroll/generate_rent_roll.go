// Package rentroll contains the monthly rent roll use case.
package rentroll

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// occupancyRateScale is the number of decimal places kept for occupancy.
const occupancyRateScale = 4

// GenerateRentRollInput represents the input for rent roll generation.
type GenerateRentRollInput struct {
	PropertyID uuid.UUID
	Month      int
	Year       int
}

// GenerateRentRollUseCase builds and stores a property's monthly rent roll.
type GenerateRentRollUseCase struct {
	propertyRepo adapter.PropertyRepository
	leaseRepo    adapter.LeaseRepository
	paymentRepo  adapter.RentPaymentRepository
	expenseRepo  adapter.ExpenseRepository
	rollRepo     adapter.RentRollRepository
	clock        adapter.Clock
}

// NewGenerateRentRollUseCase creates a new GenerateRentRollUseCase instance.
func NewGenerateRentRollUseCase(
	propertyRepo adapter.PropertyRepository,
	leaseRepo adapter.LeaseRepository,
	paymentRepo adapter.RentPaymentRepository,
	expenseRepo adapter.ExpenseRepository,
	rollRepo adapter.RentRollRepository,
	clock adapter.Clock,
) *GenerateRentRollUseCase {
	return &GenerateRentRollUseCase{
		propertyRepo: propertyRepo,
		leaseRepo:    leaseRepo,
		paymentRepo:  paymentRepo,
		expenseRepo:  expenseRepo,
		rollRepo:     rollRepo,
		clock:        clock,
	}
}

// Execute computes the roll from current ledger state and upserts it.
// Running it twice without ledger changes stores identical figures.
func (uc *GenerateRentRollUseCase) Execute(ctx context.Context, input GenerateRentRollInput) (*entity.RentRoll, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidMonth,
		)
	}
	if input.Year < 1 {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidYear,
			"year must be positive",
			domainerror.ErrInvalidYear,
		)
	}

	property, err := uc.propertyRepo.FindByID(ctx, input.PropertyID)
	if err != nil {
		if errors.Is(err, domainerror.ErrPropertyNotFound) {
			return nil, domainerror.NewPropertyNotFoundError()
		}
		return nil, fmt.Errorf("failed to load property: %w", err)
	}

	period := valueobject.MonthPeriod(input.Year, time.Month(input.Month))

	leases, err := uc.leaseRepo.FindForRentRoll(ctx, property.ID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load leases: %w", err)
	}

	leaseIDs := make([]uuid.UUID, len(leases))
	for i, lease := range leases {
		leaseIDs[i] = lease.ID
	}
	payments, err := uc.paymentRepo.FindDueInPeriod(ctx, leaseIDs, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load rent payments: %w", err)
	}

	expenses, err := uc.expenseRepo.FindByProperty(ctx, property.ID, period)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses: %w", err)
	}

	roll := Compute(property, leases, payments, expenses)
	roll.Month = input.Month
	roll.Year = input.Year
	now := uc.clock.Now().UTC()
	roll.CreatedAt = now
	roll.UpdatedAt = now

	stored, err := uc.rollRepo.Upsert(ctx, roll)
	if err != nil {
		return nil, fmt.Errorf("failed to store rent roll: %w", err)
	}

	slog.Info("Rent roll generated",
		"property_id", property.ID,
		"month", input.Month,
		"year", input.Year,
		"occupied_units", stored.OccupiedUnits,
		"net_operating_income", stored.NetOperatingIncome.String(),
	)
	return stored, nil
}

// Compute derives the rent roll figures of a property from the leases
// selected for the month and the payments and expenses dated within it.
func Compute(
	property *entity.Property,
	leases []*entity.Lease,
	payments []*entity.RentPayment,
	expenses []*entity.Expense,
) *entity.RentRoll {
	roll := &entity.RentRoll{
		ID:         uuid.New(),
		PropertyID: property.ID,
		TotalUnits: property.TotalUnits,
	}

	potentialRent := decimal.Zero
	for _, lease := range leases {
		if lease.IsActive() {
			roll.OccupiedUnits++
		}
		potentialRent = potentialRent.Add(lease.MonthlyRent)
	}
	roll.VacantUnits = roll.TotalUnits - roll.OccupiedUnits

	roll.OccupancyRate = decimal.Zero
	if roll.TotalUnits > 0 {
		roll.OccupancyRate = decimal.NewFromInt(int64(roll.OccupiedUnits)).
			DivRound(decimal.NewFromInt(int64(roll.TotalUnits)), occupancyRateScale)
	}

	actualRent := decimal.Zero
	otherIncome := decimal.Zero
	for _, payment := range payments {
		if payment.Status == entity.RentPaymentStatusPaid {
			actualRent = actualRent.Add(payment.Amount)
		}
		otherIncome = otherIncome.Add(payment.LateFees).Add(payment.OtherCharges)
	}

	totalExpenses := decimal.Zero
	for _, expense := range expenses {
		totalExpenses = totalExpenses.Add(expense.Amount)
	}

	roll.PotentialRent = potentialRent
	roll.ActualRent = actualRent
	roll.LossToVacancy = potentialRent.Sub(actualRent)
	roll.OtherIncome = otherIncome
	roll.TotalIncome = actualRent.Add(otherIncome)
	roll.TotalExpenses = totalExpenses
	roll.NetOperatingIncome = roll.TotalIncome.Sub(totalExpenses)
	return roll
}

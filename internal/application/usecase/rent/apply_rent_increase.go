package rent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// Reasons an escalation was not applied.
const (
	SkipNoIncreaseScheduled = "no increase scheduled"
	SkipIncreaseNotDue      = "increase not yet due"
	SkipNoIncreaseRate      = "no increase rate"
	SkipAlreadyApplied      = "already applied"
)

// ApplyRentIncreaseInput represents the input for a rent escalation.
type ApplyRentIncreaseInput struct {
	LeaseID uuid.UUID
}

// ApplyRentIncreaseOutput represents the result of a rent escalation.
type ApplyRentIncreaseOutput struct {
	LeaseID          uuid.UUID
	Applied          bool
	Reason           string // set when Applied is false
	PreviousRent     decimal.Decimal
	NewRent          decimal.Decimal
	IncreaseDate     *time.Time
	NextIncreaseDate *time.Time
}

// ApplyRentIncreaseUseCase escalates a lease's rent once its increase date passed.
type ApplyRentIncreaseUseCase struct {
	leaseRepo adapter.LeaseRepository
	clock     adapter.Clock
}

// NewApplyRentIncreaseUseCase creates a new ApplyRentIncreaseUseCase instance.
func NewApplyRentIncreaseUseCase(leaseRepo adapter.LeaseRepository, clock adapter.Clock) *ApplyRentIncreaseUseCase {
	return &ApplyRentIncreaseUseCase{
		leaseRepo: leaseRepo,
		clock:     clock,
	}
}

// Execute applies at most one increase. Calling it before the increase date,
// or again after it was applied, changes nothing.
func (uc *ApplyRentIncreaseUseCase) Execute(ctx context.Context, input ApplyRentIncreaseInput) (*ApplyRentIncreaseOutput, error) {
	lease, err := uc.leaseRepo.FindByID(ctx, input.LeaseID)
	if err != nil {
		return nil, leaseLookupError(err)
	}

	output := &ApplyRentIncreaseOutput{
		LeaseID:          lease.ID,
		PreviousRent:     lease.MonthlyRent,
		NewRent:          lease.MonthlyRent,
		NextIncreaseDate: lease.NextIncreaseDate,
	}

	now := uc.clock.Now().UTC()
	today := valueobject.DateOnly(now)
	switch {
	case lease.NextIncreaseDate == nil:
		output.Reason = SkipNoIncreaseScheduled
		return output, nil
	case lease.NextIncreaseDate.After(today):
		output.Reason = SkipIncreaseNotDue
		return output, nil
	case lease.RentIncreaseRate == nil:
		output.Reason = SkipNoIncreaseRate
		return output, nil
	}

	increaseDate := valueobject.DateOnly(*lease.NextIncreaseDate)
	rate := *lease.RentIncreaseRate
	newRent := lease.MonthlyRent.
		Mul(decimal.NewFromInt(1).Add(rate.Div(decimal.NewFromInt(100)))).
		Round(2)
	delta := newRent.Sub(lease.MonthlyRent)
	next := valueobject.AddMonths(increaseDate, 12)

	entry := entity.NewIncomeTransaction(
		lease.PropertyID,
		lease.ID,
		entity.CategoryRentIncrease,
		fmt.Sprintf("Rent increased by %s%% to %s", rate.String(), newRent.StringFixed(2)),
		delta,
		increaseDate,
	).WithReference(lease.ID, entity.ReferenceTypeLease)

	lease.MonthlyRent = newRent
	lease.NextIncreaseDate = &next
	lease.UpdatedAt = now

	applied, err := uc.leaseRepo.ApplyIncrease(ctx, lease, increaseDate, entry)
	if err != nil {
		return nil, fmt.Errorf("failed to apply rent increase: %w", err)
	}
	if !applied {
		output.Reason = SkipAlreadyApplied
		return output, nil
	}

	slog.Info("Rent increase applied",
		"lease_id", lease.ID,
		"previous_rent", output.PreviousRent.String(),
		"new_rent", newRent.String(),
		"increase_date", increaseDate.Format(time.DateOnly),
	)

	output.Applied = true
	output.NewRent = newRent
	output.IncreaseDate = &increaseDate
	output.NextIncreaseDate = &next
	return output, nil
}

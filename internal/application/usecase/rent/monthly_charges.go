package rent

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// CalculateMonthlyChargesInput represents the input for a monthly charge total.
type CalculateMonthlyChargesInput struct {
	LeaseID uuid.UUID
	Month   time.Time
}

// ChargeLine is one lease charge billed in the month.
type ChargeLine struct {
	ID          uuid.UUID
	Description string
	Frequency   string
	Amount      decimal.Decimal
}

// CalculateMonthlyChargesOutput represents the monthly charge total of a lease.
type CalculateMonthlyChargesOutput struct {
	LeaseID     uuid.UUID
	Month       time.Time
	MonthlyRent decimal.Decimal
	Charges     []ChargeLine
	Total       decimal.Decimal
}

// CalculateMonthlyChargesUseCase totals rent and recurring charges for a month.
type CalculateMonthlyChargesUseCase struct {
	leaseRepo adapter.LeaseRepository
}

// NewCalculateMonthlyChargesUseCase creates a new CalculateMonthlyChargesUseCase instance.
func NewCalculateMonthlyChargesUseCase(leaseRepo adapter.LeaseRepository) *CalculateMonthlyChargesUseCase {
	return &CalculateMonthlyChargesUseCase{
		leaseRepo: leaseRepo,
	}
}

// Execute performs the calculation.
func (uc *CalculateMonthlyChargesUseCase) Execute(ctx context.Context, input CalculateMonthlyChargesInput) (*CalculateMonthlyChargesOutput, error) {
	lease, err := uc.leaseRepo.FindByID(ctx, input.LeaseID)
	if err != nil {
		return nil, leaseLookupError(err)
	}

	output := &CalculateMonthlyChargesOutput{
		LeaseID:     lease.ID,
		Month:       input.Month,
		MonthlyRent: lease.MonthlyRent,
		Charges:     []ChargeLine{},
		Total:       lease.MonthlyChargeTotal(input.Month),
	}
	for _, charge := range lease.Charges {
		if !charge.AppliesTo(input.Month) {
			continue
		}
		output.Charges = append(output.Charges, ChargeLine{
			ID:          charge.ID,
			Description: charge.Description,
			Frequency:   string(charge.Frequency),
			Amount:      charge.Amount,
		})
	}

	return output, nil
}

// leaseLookupError maps a repository lookup failure to the ledger taxonomy.
func leaseLookupError(err error) error {
	if errors.Is(err, domainerror.ErrLeaseNotFound) {
		return domainerror.NewLeaseNotFoundError()
	}
	return fmt.Errorf("failed to load lease: %w", err)
}

package rent

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// ApplyEarlyPaymentDiscountInput represents the input for an early payment quote.
type ApplyEarlyPaymentDiscountInput struct {
	LeaseID uuid.UUID
	Amount  decimal.Decimal
}

// ApplyEarlyPaymentDiscountOutput represents the amount to charge.
type ApplyEarlyPaymentDiscountOutput struct {
	LeaseID    uuid.UUID
	Amount     decimal.Decimal
	Discounted decimal.Decimal
	Rate       decimal.Decimal
	Applied    bool
}

// ApplyEarlyPaymentDiscountUseCase discounts payments made before this
// month's due date.
type ApplyEarlyPaymentDiscountUseCase struct {
	leaseRepo adapter.LeaseRepository
	clock     adapter.Clock
	rate      decimal.Decimal
}

// NewApplyEarlyPaymentDiscountUseCase creates a new ApplyEarlyPaymentDiscountUseCase
// instance. rate is a fraction, e.g. 0.02 for 2%.
func NewApplyEarlyPaymentDiscountUseCase(
	leaseRepo adapter.LeaseRepository,
	clock adapter.Clock,
	rate decimal.Decimal,
) *ApplyEarlyPaymentDiscountUseCase {
	return &ApplyEarlyPaymentDiscountUseCase{
		leaseRepo: leaseRepo,
		clock:     clock,
		rate:      rate,
	}
}

// Execute quotes the amount due for a payment made today.
func (uc *ApplyEarlyPaymentDiscountUseCase) Execute(
	ctx context.Context,
	input ApplyEarlyPaymentDiscountInput,
) (*ApplyEarlyPaymentDiscountOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}

	lease, err := uc.leaseRepo.FindByID(ctx, input.LeaseID)
	if err != nil {
		return nil, leaseLookupError(err)
	}

	output := &ApplyEarlyPaymentDiscountOutput{
		LeaseID:    lease.ID,
		Amount:     input.Amount,
		Discounted: input.Amount,
		Rate:       uc.rate,
	}

	now := uc.clock.Now().UTC()
	dueDate := lease.DueDateIn(now.Year(), now.Month())
	if valueobject.DateOnly(now).Before(dueDate) {
		output.Discounted = input.Amount.Mul(decimal.NewFromInt(1).Sub(uc.rate))
		output.Applied = true
	}
	return output, nil
}

package rent

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// GetPaymentLedgerInput selects the rent payment to audit.
type GetPaymentLedgerInput struct {
	PaymentID uuid.UUID
}

// GetPaymentLedgerOutput is a rent payment with the ledger entries derived
// from it: its settlements and its late fee.
type GetPaymentLedgerOutput struct {
	Payment *entity.RentPayment
	Entries []*entity.Transaction
}

// GetPaymentLedgerUseCase lists the ledger trail of a rent payment.
type GetPaymentLedgerUseCase struct {
	paymentRepo adapter.RentPaymentRepository
	ledgerRepo  adapter.LedgerRepository
}

// NewGetPaymentLedgerUseCase creates a new GetPaymentLedgerUseCase instance.
func NewGetPaymentLedgerUseCase(
	paymentRepo adapter.RentPaymentRepository,
	ledgerRepo adapter.LedgerRepository,
) *GetPaymentLedgerUseCase {
	return &GetPaymentLedgerUseCase{
		paymentRepo: paymentRepo,
		ledgerRepo:  ledgerRepo,
	}
}

// Execute loads the payment and its entries in the order they were written.
func (uc *GetPaymentLedgerUseCase) Execute(ctx context.Context, input GetPaymentLedgerInput) (*GetPaymentLedgerOutput, error) {
	payment, err := uc.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, paymentLookupError(err)
	}

	entries, err := uc.ledgerRepo.FindByReference(ctx, payment.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger entries: %w", err)
	}

	return &GetPaymentLedgerOutput{
		Payment: payment,
		Entries: entries,
	}, nil
}

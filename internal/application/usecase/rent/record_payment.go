package rent

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// RecordPaymentInput represents a payment captured by the payment processor.
type RecordPaymentInput struct {
	PaymentID         uuid.UUID
	Amount            decimal.Decimal
	PaidAt            *time.Time // defaults to now
	Method            string
	ExternalReference string
}

// RecordPaymentOutput represents the resulting state of the rent payment.
type RecordPaymentOutput struct {
	Payment  *entity.RentPayment
	Recorded bool // false when the settlement was already recorded
}

// RecordPaymentUseCase reflects a settled payment in the rent payment and
// the ledger.
type RecordPaymentUseCase struct {
	paymentRepo adapter.RentPaymentRepository
	leaseRepo   adapter.LeaseRepository
	clock       adapter.Clock
}

// NewRecordPaymentUseCase creates a new RecordPaymentUseCase instance.
func NewRecordPaymentUseCase(
	paymentRepo adapter.RentPaymentRepository,
	leaseRepo adapter.LeaseRepository,
	clock adapter.Clock,
) *RecordPaymentUseCase {
	return &RecordPaymentUseCase{
		paymentRepo: paymentRepo,
		leaseRepo:   leaseRepo,
		clock:       clock,
	}
}

// Execute records the settlement. Redelivering the same external reference
// changes nothing.
func (uc *RecordPaymentUseCase) Execute(ctx context.Context, input RecordPaymentInput) (*RecordPaymentOutput, error) {
	if !input.Amount.IsPositive() {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidAmount,
			"amount must be greater than zero",
			domainerror.ErrInvalidAmount,
		)
	}
	reference := strings.TrimSpace(input.ExternalReference)
	if reference == "" {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeMissingParameters,
			"external reference is required",
			nil,
		)
	}

	payment, err := uc.paymentRepo.FindByID(ctx, input.PaymentID)
	if err != nil {
		return nil, paymentLookupError(err)
	}
	lease, err := uc.leaseRepo.FindByID(ctx, payment.LeaseID)
	if err != nil {
		return nil, leaseLookupError(err)
	}

	paidAt := uc.clock.Now().UTC()
	if input.PaidAt != nil {
		paidAt = input.PaidAt.UTC()
	}

	entry := entity.NewIncomeTransaction(
		lease.PropertyID,
		lease.ID,
		entity.CategoryRent,
		fmt.Sprintf("Rent payment due %s", payment.DueDate.Format(time.DateOnly)),
		input.Amount,
		paidAt,
	)

	stored, recorded, err := uc.paymentRepo.RecordSettlement(ctx, adapter.Settlement{
		PaymentID:         payment.ID,
		Amount:            input.Amount,
		PaidAt:            paidAt,
		Method:            input.Method,
		ExternalReference: reference,
	}, entry)
	if err != nil {
		if errors.Is(err, domainerror.ErrRentPaymentNotFound) {
			return nil, domainerror.NewRentPaymentNotFoundError()
		}
		return nil, fmt.Errorf("failed to record payment: %w", err)
	}

	if recorded {
		slog.Info("Rent payment recorded",
			"payment_id", stored.ID,
			"lease_id", stored.LeaseID,
			"amount", input.Amount.String(),
			"status", stored.Status,
		)
	} else {
		slog.Debug("Duplicate settlement ignored",
			"payment_id", stored.ID,
			"external_reference", reference,
		)
	}

	return &RecordPaymentOutput{
		Payment:  stored,
		Recorded: recorded,
	}, nil
}

// RecordPaymentFailureInput represents a failed capture attempt.
type RecordPaymentFailureInput struct {
	PaymentID uuid.UUID
}

// RecordPaymentFailureOutput reports whether the status changed.
type RecordPaymentFailureOutput struct {
	PaymentID uuid.UUID
	Marked    bool
}

// RecordPaymentFailureUseCase marks a rent payment as FAILED. A PAID payment
// is never downgraded.
type RecordPaymentFailureUseCase struct {
	paymentRepo adapter.RentPaymentRepository
}

// NewRecordPaymentFailureUseCase creates a new RecordPaymentFailureUseCase instance.
func NewRecordPaymentFailureUseCase(paymentRepo adapter.RentPaymentRepository) *RecordPaymentFailureUseCase {
	return &RecordPaymentFailureUseCase{
		paymentRepo: paymentRepo,
	}
}

// Execute performs the status change.
func (uc *RecordPaymentFailureUseCase) Execute(ctx context.Context, input RecordPaymentFailureInput) (*RecordPaymentFailureOutput, error) {
	marked, err := uc.paymentRepo.MarkFailed(ctx, input.PaymentID)
	if err != nil {
		return nil, paymentLookupError(err)
	}

	if marked {
		slog.Warn("Rent payment failed", "payment_id", input.PaymentID)
	}
	return &RecordPaymentFailureOutput{
		PaymentID: input.PaymentID,
		Marked:    marked,
	}, nil
}

func paymentLookupError(err error) error {
	if errors.Is(err, domainerror.ErrRentPaymentNotFound) {
		return domainerror.NewRentPaymentNotFoundError()
	}
	return fmt.Errorf("failed to load rent payment: %w", err)
}

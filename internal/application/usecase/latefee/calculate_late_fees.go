// Package latefee contains overdue detection and late fee use cases.
package latefee

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

// CalculateLateFeesInput represents the input for a late fee pass.
type CalculateLateFeesInput struct {
	LeaseID uuid.UUID
}

// AssessedFee is a late fee applied during the pass.
type AssessedFee struct {
	PaymentID uuid.UUID
	DueDate   time.Time
	DaysLate  int
	Fee       decimal.Decimal
}

// PaymentFailure is a payment the pass could not process.
type PaymentFailure struct {
	PaymentID uuid.UUID
	Error     string
}

// CalculateLateFeesOutput represents the result of one late fee pass.
type CalculateLateFeesOutput struct {
	LeaseID uuid.UUID
	Applied []AssessedFee
	// InGrace holds overdue payments still within the grace period.
	InGrace []uuid.UUID
	Failed  []PaymentFailure
}

// HasFailures reports whether any payment failed.
func (o *CalculateLateFeesOutput) HasFailures() bool {
	return len(o.Failed) > 0
}

// CalculateLateFeesUseCase charges the lease's late fee on overdue payments
// past the grace period. A payment is charged at most once.
type CalculateLateFeesUseCase struct {
	leaseRepo   adapter.LeaseRepository
	paymentRepo adapter.RentPaymentRepository
	clock       adapter.Clock
}

// NewCalculateLateFeesUseCase creates a new CalculateLateFeesUseCase instance.
func NewCalculateLateFeesUseCase(
	leaseRepo adapter.LeaseRepository,
	paymentRepo adapter.RentPaymentRepository,
	clock adapter.Clock,
) *CalculateLateFeesUseCase {
	return &CalculateLateFeesUseCase{
		leaseRepo:   leaseRepo,
		paymentRepo: paymentRepo,
		clock:       clock,
	}
}

// Execute processes every overdue, unflagged payment of the lease. A failure
// on one payment is collected and the remaining payments are still processed.
func (uc *CalculateLateFeesUseCase) Execute(ctx context.Context, input CalculateLateFeesInput) (*CalculateLateFeesOutput, error) {
	lease, err := uc.leaseRepo.FindByID(ctx, input.LeaseID)
	if err != nil {
		if errors.Is(err, domainerror.ErrLeaseNotFound) {
			return nil, domainerror.NewLeaseNotFoundError()
		}
		return nil, fmt.Errorf("failed to load lease: %w", err)
	}

	overdue, err := uc.paymentRepo.FindByLease(ctx, lease.ID, entity.RentPaymentStatusOverdue)
	if err != nil {
		return nil, fmt.Errorf("failed to load overdue payments: %w", err)
	}

	output := &CalculateLateFeesOutput{
		LeaseID: lease.ID,
		Applied: []AssessedFee{},
		InGrace: []uuid.UUID{},
		Failed:  []PaymentFailure{},
	}
	logger := slog.With("lease_id", lease.ID)

	now := uc.clock.Now().UTC()
	for _, payment := range overdue {
		if payment.LateFeeApplied {
			continue
		}
		if err := ctx.Err(); err != nil {
			return output, err
		}

		daysLate := valueobject.DaysElapsed(payment.DueDate, now)
		if daysLate <= lease.LateFeeGraceDays {
			output.InGrace = append(output.InGrace, payment.ID)
			continue
		}

		payment.ApplyLateFee(lease.LateFeeAmount, daysLate, now)
		entry := entity.NewIncomeTransaction(
			lease.PropertyID,
			lease.ID,
			entity.CategoryLateFees,
			fmt.Sprintf("Late fee for rent due %s (%d days late)", payment.DueDate.Format(time.DateOnly), daysLate),
			lease.LateFeeAmount,
			now,
		).WithReference(payment.ID, entity.ReferenceTypeRentPayment)

		applied, err := uc.paymentRepo.ApplyLateFee(ctx, payment, entry)
		if err != nil {
			logger.Error("Failed to apply late fee", "payment_id", payment.ID, "error", err)
			output.Failed = append(output.Failed, PaymentFailure{PaymentID: payment.ID, Error: err.Error()})
			continue
		}
		if !applied {
			continue
		}

		output.Applied = append(output.Applied, AssessedFee{
			PaymentID: payment.ID,
			DueDate:   payment.DueDate,
			DaysLate:  daysLate,
			Fee:       lease.LateFeeAmount,
		})
	}

	if len(output.Applied) > 0 {
		logger.Info("Late fees applied", "count", len(output.Applied))
	}
	return output, nil
}

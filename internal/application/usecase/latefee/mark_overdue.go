package latefee

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// MarkOverdueInput represents the input for overdue detection.
type MarkOverdueInput struct {
	LeaseID uuid.UUID
}

// MarkOverdueOutput reports how many payments became overdue.
type MarkOverdueOutput struct {
	LeaseID uuid.UUID
	Marked  int64
}

// MarkOverdueUseCase moves unpaid obligations past their due date to OVERDUE.
type MarkOverdueUseCase struct {
	leaseRepo   adapter.LeaseRepository
	paymentRepo adapter.RentPaymentRepository
	clock       adapter.Clock
}

// NewMarkOverdueUseCase creates a new MarkOverdueUseCase instance.
func NewMarkOverdueUseCase(
	leaseRepo adapter.LeaseRepository,
	paymentRepo adapter.RentPaymentRepository,
	clock adapter.Clock,
) *MarkOverdueUseCase {
	return &MarkOverdueUseCase{
		leaseRepo:   leaseRepo,
		paymentRepo: paymentRepo,
		clock:       clock,
	}
}

// Execute performs the status change.
func (uc *MarkOverdueUseCase) Execute(ctx context.Context, input MarkOverdueInput) (*MarkOverdueOutput, error) {
	if _, err := uc.leaseRepo.FindByID(ctx, input.LeaseID); err != nil {
		if errors.Is(err, domainerror.ErrLeaseNotFound) {
			return nil, domainerror.NewLeaseNotFoundError()
		}
		return nil, fmt.Errorf("failed to load lease: %w", err)
	}

	marked, err := uc.paymentRepo.MarkOverdue(ctx, input.LeaseID, uc.clock.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to mark overdue payments: %w", err)
	}

	if marked > 0 {
		slog.Info("Rent payments overdue", "lease_id", input.LeaseID, "count", marked)
	}
	return &MarkOverdueOutput{
		LeaseID: input.LeaseID,
		Marked:  marked,
	}, nil
}

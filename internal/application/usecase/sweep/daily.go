package sweep

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/usecase/latefee"
	"github.com/property-ledger/backend/internal/application/usecase/rent"
	"github.com/property-ledger/backend/internal/domain/entity"
)

// JobDaily names the daily lease sweep.
const JobDaily = "daily_lease_sweep"

// DailySweepUseCase runs, for every ACTIVE lease and in this order: rent
// escalation, recurring payment generation, overdue detection and late fees.
// Each lease is an independent unit; every step is safe to repeat.
type DailySweepUseCase struct {
	leaseRepo        adapter.LeaseRepository
	applyIncrease    *rent.ApplyRentIncreaseUseCase
	generatePayments *rent.GenerateRecurringPaymentsUseCase
	markOverdue      *latefee.MarkOverdueUseCase
	lateFees         *latefee.CalculateLateFeesUseCase
	clock            adapter.Clock
	units            unitRunner
}

// NewDailySweepUseCase creates a new DailySweepUseCase instance. locker may
// be nil when a single scheduler runs.
func NewDailySweepUseCase(
	leaseRepo adapter.LeaseRepository,
	applyIncrease *rent.ApplyRentIncreaseUseCase,
	generatePayments *rent.GenerateRecurringPaymentsUseCase,
	markOverdue *latefee.MarkOverdueUseCase,
	lateFees *latefee.CalculateLateFeesUseCase,
	clock adapter.Clock,
	locker adapter.UnitLocker,
	lockTTL time.Duration,
) *DailySweepUseCase {
	return &DailySweepUseCase{
		leaseRepo:        leaseRepo,
		applyIncrease:    applyIncrease,
		generatePayments: generatePayments,
		markOverdue:      markOverdue,
		lateFees:         lateFees,
		clock:            clock,
		units:            unitRunner{locker: locker, lockTTL: lockTTL},
	}
}

// Execute sweeps every ACTIVE lease. Once ctx is done no new lease is
// started and the result is marked canceled; finished leases stay committed.
func (uc *DailySweepUseCase) Execute(ctx context.Context) (*entity.BatchResult, error) {
	leases, err := uc.leaseRepo.FindActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list active leases: %w", err)
	}

	result := entity.NewBatchResult(JobDaily, uc.clock.Now().UTC())
	for _, lease := range leases {
		if ctx.Err() != nil {
			result.Canceled = true
			break
		}

		leaseID := lease.ID
		uc.units.run(ctx, result, leaseID, "lease:"+leaseID.String(), func(ctx context.Context) error {
			return uc.processLease(ctx, leaseID)
		})
	}
	result.FinishedAt = uc.clock.Now().UTC()

	slog.Info("Daily lease sweep finished",
		"leases", len(leases),
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
		"skipped", len(result.Skipped),
		"canceled", result.Canceled,
	)
	return result, nil
}

func (uc *DailySweepUseCase) processLease(ctx context.Context, leaseID uuid.UUID) error {
	if _, err := uc.applyIncrease.Execute(ctx, rent.ApplyRentIncreaseInput{LeaseID: leaseID}); err != nil {
		return fmt.Errorf("rent increase: %w", err)
	}
	if _, err := uc.generatePayments.Execute(ctx, rent.GenerateRecurringPaymentsInput{LeaseID: leaseID}); err != nil {
		return fmt.Errorf("recurring payments: %w", err)
	}
	if _, err := uc.markOverdue.Execute(ctx, latefee.MarkOverdueInput{LeaseID: leaseID}); err != nil {
		return fmt.Errorf("mark overdue: %w", err)
	}

	fees, err := uc.lateFees.Execute(ctx, latefee.CalculateLateFeesInput{LeaseID: leaseID})
	if err != nil {
		return fmt.Errorf("late fees: %w", err)
	}
	if fees.HasFailures() {
		errs := make([]error, len(fees.Failed))
		for i, failure := range fees.Failed {
			errs[i] = fmt.Errorf("payment %s: %s", failure.PaymentID, failure.Error)
		}
		return fmt.Errorf("late fees: %w", errors.Join(errs...))
	}
	return nil
}

package sweep

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/usecase/rentroll"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

// JobRentRoll names the monthly rent roll sweep.
const JobRentRoll = "rent_roll_sweep"

// RentRollSweepInput selects the month to roll up.
type RentRollSweepInput struct {
	Month int
	Year  int
}

// RentRollSweepUseCase generates the rent roll of every property for a month.
type RentRollSweepUseCase struct {
	propertyRepo adapter.PropertyRepository
	generate     *rentroll.GenerateRentRollUseCase
	clock        adapter.Clock
	units        unitRunner
}

// NewRentRollSweepUseCase creates a new RentRollSweepUseCase instance. locker
// may be nil when a single scheduler runs.
func NewRentRollSweepUseCase(
	propertyRepo adapter.PropertyRepository,
	generate *rentroll.GenerateRentRollUseCase,
	clock adapter.Clock,
	locker adapter.UnitLocker,
	lockTTL time.Duration,
) *RentRollSweepUseCase {
	return &RentRollSweepUseCase{
		propertyRepo: propertyRepo,
		generate:     generate,
		clock:        clock,
		units:        unitRunner{locker: locker, lockTTL: lockTTL},
	}
}

// Execute rolls up every property. A failing property does not stop the
// others; cancellation stops before the next property.
func (uc *RentRollSweepUseCase) Execute(ctx context.Context, input RentRollSweepInput) (*entity.BatchResult, error) {
	if input.Month < 1 || input.Month > 12 {
		return nil, domainerror.NewLedgerError(
			domainerror.ErrCodeInvalidMonth,
			"month must be between 1 and 12",
			domainerror.ErrInvalidMonth,
		)
	}

	properties, err := uc.propertyRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list properties: %w", err)
	}

	result := entity.NewBatchResult(JobRentRoll, uc.clock.Now().UTC())
	for _, property := range properties {
		if ctx.Err() != nil {
			result.Canceled = true
			break
		}

		propertyID := property.ID
		key := fmt.Sprintf("rentroll:%s:%04d-%02d", propertyID, input.Year, input.Month)
		uc.units.run(ctx, result, propertyID, key, func(ctx context.Context) error {
			_, err := uc.generate.Execute(ctx, rentroll.GenerateRentRollInput{
				PropertyID: propertyID,
				Month:      input.Month,
				Year:       input.Year,
			})
			return err
		})
	}
	result.FinishedAt = uc.clock.Now().UTC()

	slog.Info("Rent roll sweep finished",
		"month", input.Month,
		"year", input.Year,
		"properties", len(properties),
		"succeeded", len(result.Succeeded),
		"failed", len(result.Failed),
		"skipped", len(result.Skipped),
		"canceled", result.Canceled,
	)
	return result, nil
}

// PreviousMonth returns the month and year before now, the period a monthly
// rent roll sweep closes.
func PreviousMonth(now time.Time) RentRollSweepInput {
	prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
	return RentRollSweepInput{Month: int(prev.Month()), Year: prev.Year()}
}

package rent

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// GenerationHorizonMonths bounds how far ahead obligations are created.
const GenerationHorizonMonths = 12

// SkipLeaseNotActive is reported when generation is requested for a lease
// that is not ACTIVE.
const SkipLeaseNotActive = "lease not active"

// GenerateRecurringPaymentsInput represents the input for payment generation.
type GenerateRecurringPaymentsInput struct {
	LeaseID uuid.UUID
}

// GenerateRecurringPaymentsOutput reports which due dates were created and
// which already had an obligation.
type GenerateRecurringPaymentsOutput struct {
	LeaseID  uuid.UUID
	Created  []time.Time
	Existing []time.Time
	Reason   string // set when the lease was skipped
}

// GenerateRecurringPaymentsUseCase creates the upcoming rent obligations of a lease.
type GenerateRecurringPaymentsUseCase struct {
	leaseRepo   adapter.LeaseRepository
	paymentRepo adapter.RentPaymentRepository
	clock       adapter.Clock
}

// NewGenerateRecurringPaymentsUseCase creates a new GenerateRecurringPaymentsUseCase instance.
func NewGenerateRecurringPaymentsUseCase(
	leaseRepo adapter.LeaseRepository,
	paymentRepo adapter.RentPaymentRepository,
	clock adapter.Clock,
) *GenerateRecurringPaymentsUseCase {
	return &GenerateRecurringPaymentsUseCase{
		leaseRepo:   leaseRepo,
		paymentRepo: paymentRepo,
		clock:       clock,
	}
}

// Execute walks the due dates from the current month up to the lease end or
// the generation horizon, whichever comes first, and creates the missing
// obligations. Re-running it creates nothing new.
func (uc *GenerateRecurringPaymentsUseCase) Execute(
	ctx context.Context,
	input GenerateRecurringPaymentsInput,
) (*GenerateRecurringPaymentsOutput, error) {
	lease, err := uc.leaseRepo.FindByID(ctx, input.LeaseID)
	if err != nil {
		return nil, leaseLookupError(err)
	}

	output := &GenerateRecurringPaymentsOutput{
		LeaseID:  lease.ID,
		Created:  []time.Time{},
		Existing: []time.Time{},
	}
	if !lease.IsActive() {
		output.Reason = SkipLeaseNotActive
		return output, nil
	}

	today := valueobject.DateOnly(uc.clock.Now())
	for _, dueDate := range DueDates(lease, today) {
		if err := ctx.Err(); err != nil {
			return output, err
		}

		payment := entity.NewRentPayment(lease.ID, dueDate, lease.MonthlyRent, lease.MonthlyChargeTotal(dueDate))
		created, err := uc.paymentRepo.CreateIfAbsent(ctx, payment)
		if err != nil {
			return output, fmt.Errorf("failed to create rent payment due %s: %w", dueDate.Format(time.DateOnly), err)
		}
		if created {
			output.Created = append(output.Created, dueDate)
		} else {
			output.Existing = append(output.Existing, dueDate)
		}
	}

	if len(output.Created) > 0 {
		slog.Info("Recurring rent payments generated",
			"lease_id", lease.ID,
			"created", len(output.Created),
			"existing", len(output.Existing),
		)
	}
	return output, nil
}

// DueDates lists the due dates of lease from the month of today up to
// min(lease end, today + horizon). A due day past the end of a month falls
// on that month's last day.
func DueDates(lease *entity.Lease, today time.Time) []time.Time {
	limit := valueobject.AddMonths(valueobject.DateOnly(today), GenerationHorizonMonths)
	if lease.EndDate != nil && lease.EndDate.Before(limit) {
		limit = valueobject.DateOnly(*lease.EndDate)
	}

	dates := []time.Time{}
	month := valueobject.MonthStart(today)
	for {
		dueDate := lease.DueDateIn(month.Year(), month.Month())
		if dueDate.After(limit) {
			break
		}
		dates = append(dates, dueDate)
		month = month.AddDate(0, 1, 0)
	}
	return dates
}

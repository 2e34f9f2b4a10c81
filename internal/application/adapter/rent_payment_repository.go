package adapter

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/domain/valueobject"
)

// RentPaymentRepository defines the interface for rent payment persistence.
type RentPaymentRepository interface {
	// Create stores a rent payment.
	Create(ctx context.Context, payment *entity.RentPayment) error

	// CreateIfAbsent stores payment unless one already exists for the same
	// lease and due date. Returns true when a row was inserted.
	CreateIfAbsent(ctx context.Context, payment *entity.RentPayment) (bool, error)

	// FindByID retrieves a rent payment by its ID.
	// Returns domainerror.ErrRentPaymentNotFound when it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.RentPayment, error)

	// FindByLease retrieves the payments of a lease ordered by due date.
	// With statuses set, only payments in one of them are returned.
	FindByLease(ctx context.Context, leaseID uuid.UUID, statuses ...entity.RentPaymentStatus) ([]*entity.RentPayment, error)

	// FindDueInPeriod retrieves the payments of the given leases whose due
	// date falls within period, ends included.
	FindDueInPeriod(ctx context.Context, leaseIDs []uuid.UUID, period valueobject.Period) ([]*entity.RentPayment, error)

	// MarkOverdue moves PENDING and PARTIALLY_PAID payments of a lease due
	// before today to OVERDUE. Returns the number of payments moved.
	MarkOverdue(ctx context.Context, leaseID uuid.UUID, today time.Time) (int64, error)

	// ApplyLateFee stores the fee fields of payment and appends entry, in one
	// transaction. The update only happens while the stored late fee latch
	// is still unset. Returns false when the fee was already applied.
	ApplyLateFee(ctx context.Context, payment *entity.RentPayment, entry *entity.Transaction) (bool, error)

	// RecordSettlement adds amount to the paid total of a payment, derives
	// its status and appends entry, in one transaction. Returns false when
	// a settlement with the same external reference was already recorded.
	RecordSettlement(ctx context.Context, settlement Settlement, entry *entity.Transaction) (*entity.RentPayment, bool, error)

	// MarkFailed flags a payment as FAILED unless it is already PAID.
	// Returns false when nothing changed.
	MarkFailed(ctx context.Context, id uuid.UUID) (bool, error)
}

// Settlement is a payment that was captured elsewhere and must be
// reflected in the ledger.
type Settlement struct {
	PaymentID         uuid.UUID
	Amount            decimal.Decimal
	PaidAt            time.Time
	Method            string
	ExternalReference string
}

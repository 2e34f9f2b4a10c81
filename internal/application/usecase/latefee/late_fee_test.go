package latefee

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/adapters"
	"github.com/property-ledger/backend/internal/integration/persistence"
	"github.com/property-ledger/backend/internal/integration/persistence/persistencetest"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type lateFeeFixture struct {
	clock    *adapters.FixedClock
	leases   adapter.LeaseRepository
	payments adapter.RentPaymentRepository
	ledger   adapter.LedgerRepository
	lease    *entity.Lease
}

// newLateFeeFixture seeds a lease with 5 grace days and a fee of 50.
func newLateFeeFixture(t *testing.T, now time.Time) *lateFeeFixture {
	t.Helper()
	ctx := context.Background()

	db := persistencetest.NewDB(t)
	f := &lateFeeFixture{
		clock:    adapters.NewFixedClock(now),
		leases:   persistence.NewLeaseRepository(db),
		payments: persistence.NewRentPaymentRepository(db),
		ledger:   persistence.NewLedgerRepository(db),
	}

	property := entity.NewProperty(uuid.New(), "Maple", "1 Maple Street")
	require.NoError(t, persistence.NewPropertyRepository(db).Create(ctx, property))

	f.lease = entity.NewLease(property.ID, uuid.New(), decimal.NewFromInt(1000), date(2024, time.January, 1), nil, 1)
	f.lease.LateFeeGraceDays = 5
	f.lease.LateFeeAmount = decimal.NewFromInt(50)
	require.NoError(t, f.leases.Create(ctx, f.lease))
	return f
}

func (f *lateFeeFixture) payment(t *testing.T, due time.Time, status entity.RentPaymentStatus) *entity.RentPayment {
	t.Helper()

	payment := entity.NewRentPayment(f.lease.ID, due, decimal.NewFromInt(1000), decimal.NewFromInt(1000))
	payment.Status = status
	require.NoError(t, f.payments.Create(context.Background(), payment))
	return payment
}

func TestMarkOverdueUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	f := newLateFeeFixture(t, time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC))
	pastDue := f.payment(t, date(2024, time.March, 1), entity.RentPaymentStatusPending)
	partial := f.payment(t, date(2024, time.February, 1), entity.RentPaymentStatusPartiallyPaid)
	paid := f.payment(t, date(2024, time.January, 1), entity.RentPaymentStatusPaid)
	dueToday := f.payment(t, date(2024, time.March, 10), entity.RentPaymentStatusPending)
	upcoming := f.payment(t, date(2024, time.April, 1), entity.RentPaymentStatusPending)
	uc := NewMarkOverdueUseCase(f.leases, f.payments, f.clock)

	out, err := uc.Execute(ctx, MarkOverdueInput{LeaseID: f.lease.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(2), out.Marked)

	statuses := map[uuid.UUID]entity.RentPaymentStatus{}
	all, err := f.payments.FindByLease(ctx, f.lease.ID)
	require.NoError(t, err)
	for _, p := range all {
		statuses[p.ID] = p.Status
	}
	assert.Equal(t, entity.RentPaymentStatusOverdue, statuses[pastDue.ID])
	assert.Equal(t, entity.RentPaymentStatusOverdue, statuses[partial.ID])
	assert.Equal(t, entity.RentPaymentStatusPaid, statuses[paid.ID])
	assert.Equal(t, entity.RentPaymentStatusPending, statuses[dueToday.ID])
	assert.Equal(t, entity.RentPaymentStatusPending, statuses[upcoming.ID])

	again, err := uc.Execute(ctx, MarkOverdueInput{LeaseID: f.lease.ID})
	require.NoError(t, err)
	assert.Zero(t, again.Marked)

	_, err = uc.Execute(ctx, MarkOverdueInput{LeaseID: uuid.New()})
	assert.True(t, domainerror.IsNotFound(err))
}

func TestCalculateLateFeesUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("charges once after the grace period", func(t *testing.T) {
		f := newLateFeeFixture(t, time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC))
		payment := f.payment(t, date(2024, time.March, 1), entity.RentPaymentStatusOverdue)
		uc := NewCalculateLateFeesUseCase(f.leases, f.payments, f.clock)

		out, err := uc.Execute(ctx, CalculateLateFeesInput{LeaseID: f.lease.ID})
		require.NoError(t, err)
		require.Len(t, out.Applied, 1)
		assert.Equal(t, payment.ID, out.Applied[0].PaymentID)
		assert.Equal(t, 9, out.Applied[0].DaysLate)
		assert.True(t, out.Applied[0].Fee.Equal(decimal.NewFromInt(50)))
		assert.False(t, out.HasFailures())

		stored, err := f.payments.FindByID(ctx, payment.ID)
		require.NoError(t, err)
		assert.True(t, stored.LateFeeApplied)
		assert.True(t, stored.LateFees.Equal(decimal.NewFromInt(50)))
		assert.True(t, stored.Amount.Equal(decimal.NewFromInt(1050)))
		assert.Equal(t, 9, stored.DaysLate)

		// A later run must not charge again.
		f.clock.Advance(24 * time.Hour)
		again, err := uc.Execute(ctx, CalculateLateFeesInput{LeaseID: f.lease.ID})
		require.NoError(t, err)
		assert.Empty(t, again.Applied)

		stored, err = f.payments.FindByID(ctx, payment.ID)
		require.NoError(t, err)
		assert.True(t, stored.LateFees.Equal(decimal.NewFromInt(50)), stored.LateFees.String())
		assert.True(t, stored.Amount.Equal(decimal.NewFromInt(1050)), stored.Amount.String())

		entries, err := f.ledger.FindByReference(ctx, payment.ID)
		require.NoError(t, err)
		require.Len(t, entries, 1)
		assert.Equal(t, entity.CategoryLateFees, entries[0].Category)
		assert.True(t, entries[0].Amount.Equal(decimal.NewFromInt(50)))
	})

	t.Run("a failing payment does not stop the others", func(t *testing.T) {
		f := newLateFeeFixture(t, date(2024, time.March, 20))
		first := f.payment(t, date(2024, time.February, 1), entity.RentPaymentStatusOverdue)
		second := f.payment(t, date(2024, time.March, 1), entity.RentPaymentStatusOverdue)
		flaky := &failingLateFeeRepo{RentPaymentRepository: f.payments, failFor: first.ID}
		uc := NewCalculateLateFeesUseCase(f.leases, flaky, f.clock)

		out, err := uc.Execute(ctx, CalculateLateFeesInput{LeaseID: f.lease.ID})
		require.NoError(t, err)
		require.Len(t, out.Applied, 1)
		assert.Equal(t, second.ID, out.Applied[0].PaymentID)
		require.Len(t, out.Failed, 1)
		assert.Equal(t, first.ID, out.Failed[0].PaymentID)
		assert.Contains(t, out.Failed[0].Error, "connection reset")

		// The next pass charges the payment that failed.
		flaky.failFor = uuid.Nil
		retry, err := uc.Execute(ctx, CalculateLateFeesInput{LeaseID: f.lease.ID})
		require.NoError(t, err)
		require.Len(t, retry.Applied, 1)
		assert.Equal(t, first.ID, retry.Applied[0].PaymentID)
		assert.False(t, retry.HasFailures())

		for _, id := range []uuid.UUID{first.ID, second.ID} {
			entries, err := f.ledger.FindByReference(ctx, id)
			require.NoError(t, err)
			assert.Len(t, entries, 1)
		}
	})

	t.Run("grace period boundary", func(t *testing.T) {
		// Five days after the due date is still within five grace days.
		f := newLateFeeFixture(t, time.Date(2024, time.March, 6, 23, 0, 0, 0, time.UTC))
		payment := f.payment(t, date(2024, time.March, 1), entity.RentPaymentStatusOverdue)

		out, err := NewCalculateLateFeesUseCase(f.leases, f.payments, f.clock).
			Execute(ctx, CalculateLateFeesInput{LeaseID: f.lease.ID})
		require.NoError(t, err)

		assert.Empty(t, out.Applied)
		assert.Equal(t, []uuid.UUID{payment.ID}, out.InGrace)
	})

	t.Run("only overdue payments are charged", func(t *testing.T) {
		f := newLateFeeFixture(t, date(2024, time.March, 20))
		f.payment(t, date(2024, time.March, 1), entity.RentPaymentStatusPending)
		f.payment(t, date(2024, time.February, 1), entity.RentPaymentStatusPaid)

		out, err := NewCalculateLateFeesUseCase(f.leases, f.payments, f.clock).
			Execute(ctx, CalculateLateFeesInput{LeaseID: f.lease.ID})
		require.NoError(t, err)

		assert.Empty(t, out.Applied)
		assert.Empty(t, out.InGrace)
	})

	t.Run("canceled context stops the pass", func(t *testing.T) {
		f := newLateFeeFixture(t, date(2024, time.March, 20))
		f.payment(t, date(2024, time.March, 1), entity.RentPaymentStatusOverdue)
		canceled, cancel := context.WithCancel(ctx)
		cancel()

		out, err := NewCalculateLateFeesUseCase(f.leases, f.payments, f.clock).
			Execute(canceled, CalculateLateFeesInput{LeaseID: f.lease.ID})

		assert.ErrorIs(t, err, context.Canceled)
		if out != nil {
			assert.Empty(t, out.Applied)
		}
	})
}

// failingLateFeeRepo fails ApplyLateFee for one payment.
type failingLateFeeRepo struct {
	adapter.RentPaymentRepository
	failFor uuid.UUID
}

func (r *failingLateFeeRepo) ApplyLateFee(ctx context.Context, payment *entity.RentPayment, entry *entity.Transaction) (bool, error) {
	if payment.ID == r.failFor {
		return false, errors.New("connection reset")
	}
	return r.RentPaymentRepository.ApplyLateFee(ctx, payment, entry)
}

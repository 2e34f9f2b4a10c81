package sweep

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/application/usecase/latefee"
	"github.com/property-ledger/backend/internal/application/usecase/rent"
	"github.com/property-ledger/backend/internal/application/usecase/rentroll"
	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/integration/adapters"
	"github.com/property-ledger/backend/internal/integration/persistence"
	"github.com/property-ledger/backend/internal/integration/persistence/persistencetest"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// fakeLocker grants every key except those in held.
type fakeLocker struct {
	mu       sync.Mutex
	held     map[string]bool
	failOn   map[string]error
	locked   []string
	released []string
	onLock   func(key string)
}

func newFakeLocker() *fakeLocker {
	return &fakeLocker{held: map[string]bool{}, failOn: map[string]error{}}
}

func (l *fakeLocker) TryLock(_ context.Context, key string, _ time.Duration) (string, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.onLock != nil {
		l.onLock(key)
	}
	if err := l.failOn[key]; err != nil {
		return "", false, err
	}
	if l.held[key] {
		return "", false, nil
	}
	l.locked = append(l.locked, key)
	return "token-" + key, true, nil
}

func (l *fakeLocker) Release(_ context.Context, key, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if token != "token-"+key {
		return errors.New("token mismatch")
	}
	l.released = append(l.released, key)
	return nil
}

type sweepFixture struct {
	db         *gorm.DB
	clock      *adapters.FixedClock
	properties adapter.PropertyRepository
	leases     adapter.LeaseRepository
	payments   adapter.RentPaymentRepository
	ledger     adapter.LedgerRepository
	rolls      adapter.RentRollRepository
	property   *entity.Property
}

func newSweepFixture(t *testing.T, now time.Time) *sweepFixture {
	t.Helper()

	db := persistencetest.NewDB(t)
	f := &sweepFixture{
		db:         db,
		clock:      adapters.NewFixedClock(now),
		properties: persistence.NewPropertyRepository(db),
		leases:     persistence.NewLeaseRepository(db),
		payments:   persistence.NewRentPaymentRepository(db),
		ledger:     persistence.NewLedgerRepository(db),
		rolls:      persistence.NewRentRollRepository(db),
	}

	f.property = entity.NewProperty(uuid.New(), "Maple", "1 Maple Street")
	require.NoError(t, f.properties.Create(context.Background(), f.property))
	return f
}

// addLease stores an ACTIVE lease from Jan 1 to Apr 30 2024 with 5 grace
// days and a late fee of 50.
func (f *sweepFixture) addLease(t *testing.T) *entity.Lease {
	t.Helper()

	end := date(2024, time.April, 30)
	lease := entity.NewLease(f.property.ID, uuid.New(), decimal.NewFromInt(1000), date(2024, time.January, 1), &end, 1)
	lease.LateFeeGraceDays = 5
	lease.LateFeeAmount = decimal.NewFromInt(50)
	require.NoError(t, f.leases.Create(context.Background(), lease))
	return lease
}

func (f *sweepFixture) daily(locker adapter.UnitLocker) *DailySweepUseCase {
	return NewDailySweepUseCase(
		f.leases,
		rent.NewApplyRentIncreaseUseCase(f.leases, f.clock),
		rent.NewGenerateRecurringPaymentsUseCase(f.leases, f.payments, f.clock),
		latefee.NewMarkOverdueUseCase(f.leases, f.payments, f.clock),
		latefee.NewCalculateLateFeesUseCase(f.leases, f.payments, f.clock),
		f.clock,
		locker,
		time.Minute,
	)
}

func (f *sweepFixture) rentRolls(locker adapter.UnitLocker) *RentRollSweepUseCase {
	generate := rentroll.NewGenerateRentRollUseCase(
		f.properties,
		f.leases,
		f.payments,
		persistence.NewExpenseRepository(f.db),
		f.rolls,
		f.clock,
	)
	return NewRentRollSweepUseCase(f.properties, generate, f.clock, locker, time.Minute)
}

func TestDailySweepUseCase_Execute(t *testing.T) {
	ctx := context.Background()

	t.Run("bills, flags and charges every active lease", func(t *testing.T) {
		f := newSweepFixture(t, time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC))
		lease := f.addLease(t)
		locker := newFakeLocker()

		result, err := f.daily(locker).Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, JobDaily, result.Job)
		assert.Equal(t, []uuid.UUID{lease.ID}, result.Succeeded)
		assert.False(t, result.HasFailures())
		assert.Equal(t, []string{"lease:" + lease.ID.String()}, locker.locked)
		assert.Equal(t, locker.locked, locker.released)

		payments, err := f.payments.FindByLease(ctx, lease.ID)
		require.NoError(t, err)
		require.Len(t, payments, 2)

		overdue, err := f.payments.FindByLease(ctx, lease.ID, entity.RentPaymentStatusOverdue)
		require.NoError(t, err)
		require.Len(t, overdue, 1)
		assert.True(t, overdue[0].LateFeeApplied)

		// A second run changes nothing.
		_, err = f.daily(locker).Execute(ctx)
		require.NoError(t, err)

		payments, err = f.payments.FindByLease(ctx, lease.ID)
		require.NoError(t, err)
		assert.Len(t, payments, 2)

		fees, err := f.ledger.FindByReference(ctx, overdue[0].ID)
		require.NoError(t, err)
		assert.Len(t, fees, 1)
	})

	t.Run("units claimed elsewhere are skipped", func(t *testing.T) {
		f := newSweepFixture(t, date(2024, time.March, 10))
		lease := f.addLease(t)
		locker := newFakeLocker()
		locker.held["lease:"+lease.ID.String()] = true

		result, err := f.daily(locker).Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{lease.ID}, result.Skipped)
		assert.Empty(t, result.Succeeded)

		payments, err := f.payments.FindByLease(ctx, lease.ID)
		require.NoError(t, err)
		assert.Empty(t, payments)
	})

	t.Run("claim errors fail the unit only", func(t *testing.T) {
		f := newSweepFixture(t, date(2024, time.March, 10))
		broken := f.addLease(t)
		healthy := f.addLease(t)
		locker := newFakeLocker()
		locker.failOn["lease:"+broken.ID.String()] = errors.New("redis down")

		result, err := f.daily(locker).Execute(ctx)
		require.NoError(t, err)

		require.Len(t, result.Failed, 1)
		assert.Equal(t, broken.ID, result.Failed[0].ID)
		assert.Contains(t, result.Failed[0].Error, "redis down")
		assert.Equal(t, []uuid.UUID{healthy.ID}, result.Succeeded)
	})

	t.Run("cancellation stops before the next unit", func(t *testing.T) {
		f := newSweepFixture(t, date(2024, time.March, 10))
		f.addLease(t)
		f.addLease(t)

		runCtx, cancel := context.WithCancel(ctx)
		defer cancel()
		locker := newFakeLocker()
		locker.onLock = func(string) { cancel() }

		result, err := f.daily(locker).Execute(runCtx)
		require.NoError(t, err)

		assert.True(t, result.Canceled)
		assert.Equal(t, 1, result.Total())
	})

	t.Run("runs without a locker", func(t *testing.T) {
		f := newSweepFixture(t, date(2024, time.March, 10))
		lease := f.addLease(t)

		result, err := f.daily(nil).Execute(ctx)
		require.NoError(t, err)

		assert.Equal(t, []uuid.UUID{lease.ID}, result.Succeeded)
	})
}

func TestRentRollSweepUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	f := newSweepFixture(t, date(2024, time.April, 1))
	f.addLease(t)
	other := entity.NewProperty(uuid.New(), "Oak", "2 Oak Street")
	require.NoError(t, f.properties.Create(ctx, other))
	locker := newFakeLocker()

	result, err := f.rentRolls(locker).Execute(ctx, RentRollSweepInput{Month: 3, Year: 2024})
	require.NoError(t, err)

	assert.Len(t, result.Succeeded, 2)
	assert.Contains(t, locker.locked, "rentroll:"+f.property.ID.String()+":2024-03")

	for _, id := range []uuid.UUID{f.property.ID, other.ID} {
		count, err := f.rolls.Count(ctx, id)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	}

	// Regenerating keeps one roll per property and month.
	_, err = f.rentRolls(locker).Execute(ctx, RentRollSweepInput{Month: 3, Year: 2024})
	require.NoError(t, err)
	count, err := f.rolls.Count(ctx, f.property.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	_, err = f.rentRolls(locker).Execute(ctx, RentRollSweepInput{Month: 13, Year: 2024})
	assert.Error(t, err)
}

func TestPreviousMonth(t *testing.T) {
	assert.Equal(t, RentRollSweepInput{Month: 2, Year: 2024}, PreviousMonth(date(2024, time.March, 31)))
	assert.Equal(t, RentRollSweepInput{Month: 12, Year: 2023}, PreviousMonth(date(2024, time.January, 1)))
}

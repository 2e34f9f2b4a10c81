package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/property-ledger/backend/internal/application/usecase/latefee"
	"github.com/property-ledger/backend/internal/application/usecase/rent"
	"github.com/property-ledger/backend/internal/application/usecase/rentroll"
	"github.com/property-ledger/backend/internal/application/usecase/sweep"
	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/integration/adapters"
	"github.com/property-ledger/backend/internal/integration/persistence"
	"github.com/property-ledger/backend/internal/integration/persistence/persistencetest"
)

type recordingObserver struct {
	mu   sync.Mutex
	jobs []string
}

func (o *recordingObserver) ObserveBatch(result *entity.BatchResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.jobs = append(o.jobs, result.Job)
}

func (o *recordingObserver) seen() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return append([]string(nil), o.jobs...)
}

func newTestWorker(t *testing.T, now time.Time) (*Worker, *adapters.FixedClock, *recordingObserver, func(month, year int) bool) {
	t.Helper()
	ctx := context.Background()

	db := persistencetest.NewDB(t)
	clock := adapters.NewFixedClock(now)
	properties := persistence.NewPropertyRepository(db)
	leases := persistence.NewLeaseRepository(db)
	payments := persistence.NewRentPaymentRepository(db)
	rolls := persistence.NewRentRollRepository(db)

	property := entity.NewProperty(uuid.New(), "Maple", "1 Maple Street")
	require.NoError(t, properties.Create(ctx, property))
	lease := entity.NewLease(property.ID, uuid.New(), decimal.NewFromInt(1000), time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), nil, 1)
	require.NoError(t, leases.Create(ctx, lease))

	daily := sweep.NewDailySweepUseCase(
		leases,
		rent.NewApplyRentIncreaseUseCase(leases, clock),
		rent.NewGenerateRecurringPaymentsUseCase(leases, payments, clock),
		latefee.NewMarkOverdueUseCase(leases, payments, clock),
		latefee.NewCalculateLateFeesUseCase(leases, payments, clock),
		clock,
		nil,
		0,
	)
	generate := rentroll.NewGenerateRentRollUseCase(properties, leases, payments, persistence.NewExpenseRepository(db), rolls, clock)
	rentRolls := sweep.NewRentRollSweepUseCase(properties, generate, clock, nil, 0)

	observer := &recordingObserver{}
	worker := NewWorker(daily, rentRolls, clock, observer, DefaultWorkerConfig())

	hasRoll := func(month, year int) bool {
		roll, err := rolls.Find(ctx, property.ID, month, year)
		return err == nil && roll != nil
	}
	return worker, clock, observer, hasRoll
}

func TestWorker_RunOnce(t *testing.T) {
	ctx := context.Background()
	worker, clock, observer, hasRoll := newTestWorker(t, time.Date(2024, time.March, 10, 6, 0, 0, 0, time.UTC))

	worker.RunOnce(ctx)

	assert.Equal(t, []string{sweep.JobDaily, sweep.JobRentRoll}, observer.seen())
	assert.Equal(t, "2024-02", worker.lastRollMonth)
	assert.True(t, hasRoll(2, 2024))

	// Same month: only the daily sweep runs.
	clock.Advance(24 * time.Hour)
	worker.RunOnce(ctx)
	assert.Equal(t, []string{sweep.JobDaily, sweep.JobRentRoll, sweep.JobDaily}, observer.seen())

	// A new month closes March.
	clock.Set(time.Date(2024, time.April, 1, 6, 0, 0, 0, time.UTC))
	worker.RunOnce(ctx)
	assert.Equal(t, "2024-03", worker.lastRollMonth)
	assert.True(t, hasRoll(3, 2024))
	assert.Len(t, observer.seen(), 5)
}

func TestWorker_RunOnceCanceled(t *testing.T) {
	worker, _, observer, _ := newTestWorker(t, time.Date(2024, time.March, 10, 6, 0, 0, 0, time.UTC))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	worker.RunOnce(ctx)

	assert.NotContains(t, observer.seen(), sweep.JobRentRoll)
	assert.Empty(t, worker.lastRollMonth)
}

func TestWorker_StartStopsOnCancel(t *testing.T) {
	worker, _, observer, _ := newTestWorker(t, time.Date(2024, time.March, 10, 6, 0, 0, 0, time.UTC))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(done)
	}()

	require.Eventually(t, func() bool {
		return len(observer.seen()) >= 2
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("worker did not stop")
	}
}

func TestNewWorker_DefaultsInterval(t *testing.T) {
	worker := NewWorker(nil, nil, adapters.NewSystemClock(), nil, WorkerConfig{})
	assert.Equal(t, time.Hour, worker.interval)
}

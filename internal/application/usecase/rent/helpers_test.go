package rent

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/property-ledger/backend/internal/application/adapter"
	"github.com/property-ledger/backend/internal/domain/entity"
	"github.com/property-ledger/backend/internal/integration/adapters"
	"github.com/property-ledger/backend/internal/integration/persistence"
	"github.com/property-ledger/backend/internal/integration/persistence/persistencetest"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type fixture struct {
	db         *gorm.DB
	clock      *adapters.FixedClock
	properties adapter.PropertyRepository
	leases     adapter.LeaseRepository
	payments   adapter.RentPaymentRepository
	ledger     adapter.LedgerRepository
	propertyID uuid.UUID
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()

	db := persistencetest.NewDB(t)
	f := &fixture{
		db:         db,
		clock:      adapters.NewFixedClock(now),
		properties: persistence.NewPropertyRepository(db),
		leases:     persistence.NewLeaseRepository(db),
		payments:   persistence.NewRentPaymentRepository(db),
		ledger:     persistence.NewLedgerRepository(db),
	}

	property := entity.NewProperty(uuid.New(), "Maple", "1 Maple Street")
	require.NoError(t, f.properties.Create(context.Background(), property))
	f.propertyID = property.ID
	return f
}

func (f *fixture) lease(t *testing.T, rent int64, start time.Time, end *time.Time, mutate ...func(*entity.Lease)) *entity.Lease {
	t.Helper()

	lease := entity.NewLease(f.propertyID, uuid.New(), decimal.NewFromInt(rent), start, end, 1)
	for _, m := range mutate {
		m(lease)
	}
	require.NoError(t, f.leases.Create(context.Background(), lease))
	return lease
}

func (f *fixture) payment(t *testing.T, leaseID uuid.UUID, due time.Time, amount int64) *entity.RentPayment {
	t.Helper()

	payment := entity.NewRentPayment(leaseID, due, decimal.NewFromInt(amount), decimal.NewFromInt(amount))
	require.NoError(t, f.payments.Create(context.Background(), payment))
	return payment
}

func settlementFor(paymentID uuid.UUID, amount int64, reference string) adapter.Settlement {
	return adapter.Settlement{
		PaymentID:         paymentID,
		Amount:            decimal.NewFromInt(amount),
		PaidAt:            date(2024, time.February, 1),
		Method:            "card",
		ExternalReference: reference,
	}
}

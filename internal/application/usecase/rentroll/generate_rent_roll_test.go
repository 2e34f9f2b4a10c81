package rentroll

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/property-ledger/backend/internal/domain/entity"
	domainerror "github.com/property-ledger/backend/internal/domain/error"
	"github.com/property-ledger/backend/internal/integration/adapters"
	"github.com/property-ledger/backend/internal/integration/persistence"
	"github.com/property-ledger/backend/internal/integration/persistence/persistencetest"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestCompute(t *testing.T) {
	property := entity.NewProperty(uuid.New(), "Maple", "1 Maple Street")

	t.Run("single paid unit with late fee", func(t *testing.T) {
		lease := entity.NewLease(property.ID, uuid.New(), dec("1000"), date(2024, time.January, 1), nil, 1)
		payment := entity.NewRentPayment(lease.ID, date(2024, time.March, 1), dec("1000"), dec("1000"))
		payment.Status = entity.RentPaymentStatusPaid
		payment.LateFees = dec("50")

		roll := Compute(property, []*entity.Lease{lease}, []*entity.RentPayment{payment}, nil)

		assert.Equal(t, 1, roll.TotalUnits)
		assert.Equal(t, 1, roll.OccupiedUnits)
		assert.Equal(t, 0, roll.VacantUnits)
		assert.True(t, roll.OccupancyRate.Equal(dec("1")))
		assert.True(t, roll.PotentialRent.Equal(dec("1000")))
		assert.True(t, roll.ActualRent.Equal(dec("1000")))
		assert.True(t, roll.LossToVacancy.IsZero())
		assert.True(t, roll.OtherIncome.Equal(dec("50")))
		assert.True(t, roll.TotalIncome.Equal(dec("1050")))
		assert.True(t, roll.NetOperatingIncome.Equal(dec("1050")))
	})

	t.Run("unpaid rent is lost and expenses reduce income", func(t *testing.T) {
		multi := entity.NewProperty(uuid.New(), "Oak", "2 Oak Street")
		multi.TotalUnits = 3

		paid := entity.NewLease(multi.ID, uuid.New(), dec("1000"), date(2024, time.January, 1), nil, 1)
		open := entity.NewLease(multi.ID, uuid.New(), dec("800"), date(2024, time.January, 1), nil, 1)
		paidPayment := entity.NewRentPayment(paid.ID, date(2024, time.March, 1), dec("1000"), dec("1000"))
		paidPayment.Status = entity.RentPaymentStatusPaid
		openPayment := entity.NewRentPayment(open.ID, date(2024, time.March, 1), dec("800"), dec("800"))
		openPayment.Status = entity.RentPaymentStatusPartiallyPaid
		openPayment.OtherCharges = dec("20")

		expenses := []*entity.Expense{
			{Category: "Repairs", Amount: dec("200")},
			{Category: "Insurance", Amount: dec("100")},
		}

		roll := Compute(multi, []*entity.Lease{paid, open}, []*entity.RentPayment{paidPayment, openPayment}, expenses)

		assert.Equal(t, 2, roll.OccupiedUnits)
		assert.Equal(t, 1, roll.VacantUnits)
		assert.True(t, roll.OccupancyRate.Equal(dec("0.6667")), "got %s", roll.OccupancyRate)
		assert.True(t, roll.PotentialRent.Equal(dec("1800")))
		assert.True(t, roll.ActualRent.Equal(dec("1000")))
		assert.True(t, roll.LossToVacancy.Equal(dec("800")))
		assert.True(t, roll.OtherIncome.Equal(dec("20")))
		assert.True(t, roll.TotalExpenses.Equal(dec("300")))
		assert.True(t, roll.NetOperatingIncome.Equal(dec("720")))
	})

	t.Run("no units yields zero occupancy", func(t *testing.T) {
		empty := entity.NewProperty(uuid.New(), "Lot", "3 Lot Street")
		empty.TotalUnits = 0

		roll := Compute(empty, nil, nil, nil)

		assert.True(t, roll.OccupancyRate.IsZero())
		assert.True(t, roll.TotalIncome.IsZero())
	})
}

func TestGenerateRentRollUseCase_Execute(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.NewDB(t)
	clock := adapters.NewFixedClock(date(2024, time.April, 1))

	propertyRepo := persistence.NewPropertyRepository(db)
	leaseRepo := persistence.NewLeaseRepository(db)
	paymentRepo := persistence.NewRentPaymentRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	rollRepo := persistence.NewRentRollRepository(db)
	uc := NewGenerateRentRollUseCase(propertyRepo, leaseRepo, paymentRepo, expenseRepo, rollRepo, clock)

	property := entity.NewProperty(uuid.New(), "Maple", "1 Maple Street")
	require.NoError(t, propertyRepo.Create(ctx, property))
	lease := entity.NewLease(property.ID, uuid.New(), dec("1000"), date(2024, time.January, 1), nil, 1)
	require.NoError(t, leaseRepo.Create(ctx, lease))

	payment := entity.NewRentPayment(lease.ID, date(2024, time.March, 1), dec("1000"), dec("1000"))
	payment.Status = entity.RentPaymentStatusPaid
	payment.LateFees = dec("50")
	require.NoError(t, paymentRepo.Create(ctx, payment))

	// Outside March; must not count.
	require.NoError(t, expenseRepo.Create(ctx, &entity.Expense{
		ID: uuid.New(), PropertyID: property.ID, Category: "Repairs", Amount: dec("75"), Date: date(2024, time.April, 2),
	}))

	input := GenerateRentRollInput{PropertyID: property.ID, Month: 3, Year: 2024}

	first, err := uc.Execute(ctx, input)
	require.NoError(t, err)
	assert.True(t, first.PotentialRent.Equal(dec("1000")))
	assert.True(t, first.ActualRent.Equal(dec("1000")))
	assert.True(t, first.OtherIncome.Equal(dec("50")))
	assert.True(t, first.TotalIncome.Equal(dec("1050")))
	assert.True(t, first.TotalExpenses.IsZero())

	second, err := uc.Execute(ctx, input)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.True(t, first.SameFigures(second))

	count, err := rollRepo.Count(ctx, property.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)

	t.Run("rejects invalid months", func(t *testing.T) {
		_, err := uc.Execute(ctx, GenerateRentRollInput{PropertyID: property.ID, Month: 13, Year: 2024})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidMonth))

		_, err = uc.Execute(ctx, GenerateRentRollInput{PropertyID: property.ID, Month: 0, Year: 2024})
		assert.True(t, errors.Is(err, domainerror.ErrInvalidMonth))
	})

	t.Run("unknown property", func(t *testing.T) {
		_, err := uc.Execute(ctx, GenerateRentRollInput{PropertyID: uuid.New(), Month: 3, Year: 2024})
		assert.True(t, domainerror.IsNotFound(err))
	})
}

func TestGenerateRentRollUseCase_LeaseSelection(t *testing.T) {
	ctx := context.Background()
	db := persistencetest.NewDB(t)

	propertyRepo := persistence.NewPropertyRepository(db)
	leaseRepo := persistence.NewLeaseRepository(db)
	paymentRepo := persistence.NewRentPaymentRepository(db)
	expenseRepo := persistence.NewExpenseRepository(db)
	uc := NewGenerateRentRollUseCase(propertyRepo, leaseRepo, paymentRepo, expenseRepo,
		persistence.NewRentRollRepository(db), adapters.NewFixedClock(date(2024, time.February, 1)))

	property := entity.NewProperty(uuid.New(), "Birch", "4 Birch Street")
	property.TotalUnits = 3
	require.NoError(t, propertyRepo.Create(ctx, property))

	addLease := func(rent string, start time.Time, end *time.Time, status entity.LeaseStatus) *entity.Lease {
		lease := entity.NewLease(property.ID, uuid.New(), dec(rent), start, end, 1)
		lease.Status = status
		require.NoError(t, leaseRepo.Create(ctx, lease))
		return lease
	}

	endedOn := date(2024, time.January, 15)
	// Ended mid-month: its window overlaps January.
	addLease("500", date(2023, time.June, 1), &endedOn, entity.LeaseStatusEnded)
	// Open-ended but not ACTIVE.
	addLease("700", date(2023, time.December, 1), nil, entity.LeaseStatusPending)
	// Starts after January.
	addLease("900", date(2024, time.February, 1), nil, entity.LeaseStatusActive)
	active := addLease("1000", date(2023, time.January, 1), nil, entity.LeaseStatusActive)

	// Due on the last day of the period.
	payment := entity.NewRentPayment(active.ID, date(2024, time.January, 31), dec("1000"), dec("1000"))
	payment.Status = entity.RentPaymentStatusPaid
	require.NoError(t, paymentRepo.Create(ctx, payment))

	require.NoError(t, expenseRepo.Create(ctx, &entity.Expense{
		ID:         uuid.New(),
		PropertyID: property.ID,
		Category:   "Utilities",
		Amount:     dec("10"),
		Date:       time.Date(2024, time.January, 31, 18, 0, 0, 0, time.UTC),
	}))

	roll, err := uc.Execute(ctx, GenerateRentRollInput{PropertyID: property.ID, Month: 1, Year: 2024})
	require.NoError(t, err)

	assert.Equal(t, 1, roll.OccupiedUnits)
	assert.Equal(t, 2, roll.VacantUnits)
	assert.True(t, roll.PotentialRent.Equal(dec("1500")), "got %s", roll.PotentialRent)
	assert.True(t, roll.ActualRent.Equal(dec("1000")), "got %s", roll.ActualRent)
	assert.True(t, roll.LossToVacancy.Equal(dec("500")), "got %s", roll.LossToVacancy)
	assert.True(t, roll.TotalExpenses.Equal(dec("10")), "got %s", roll.TotalExpenses)
	assert.True(t, roll.OccupancyRate.Equal(dec("0.3333")), "got %s", roll.OccupancyRate)
	assert.True(t, roll.NetOperatingIncome.Equal(dec("990")), "got %s", roll.NetOperatingIncome)
}

package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newTestLease() *Lease {
	return NewLease(uuid.New(), uuid.New(), decimal.NewFromInt(1000), day(2024, time.January, 1), nil, 1)
}

func TestNewLease_NormalisesDates(t *testing.T) {
	start := time.Date(2024, time.January, 1, 15, 30, 0, 0, time.UTC)
	end := time.Date(2024, time.December, 31, 8, 0, 0, 0, time.UTC)

	lease := NewLease(uuid.New(), uuid.New(), decimal.NewFromInt(1000), start, &end, 5)

	assert.Equal(t, day(2024, time.January, 1), lease.StartDate)
	assert.Equal(t, day(2024, time.December, 31), *lease.EndDate)
	assert.True(t, lease.IsActive())
	assert.NoError(t, lease.Validate())
}

func TestLease_Validate(t *testing.T) {
	before := day(2023, time.December, 31)

	tests := []struct {
		name    string
		mutate  func(l *Lease)
		wantErr error
	}{
		{"zero rent", func(l *Lease) { l.MonthlyRent = decimal.Zero }, domainerror.ErrInvalidMonthlyRent},
		{"negative rent", func(l *Lease) { l.MonthlyRent = decimal.NewFromInt(-1) }, domainerror.ErrInvalidMonthlyRent},
		{"end before start", func(l *Lease) { l.EndDate = &before }, domainerror.ErrInvalidLeaseDates},
		{"due day zero", func(l *Lease) { l.RentDueDay = 0 }, domainerror.ErrInvalidRentDueDay},
		{"due day 32", func(l *Lease) { l.RentDueDay = 32 }, domainerror.ErrInvalidRentDueDay},
		{"negative grace", func(l *Lease) { l.LateFeeGraceDays = -1 }, domainerror.ErrInvalidLateFeePolicy},
		{"negative fee", func(l *Lease) { l.LateFeeAmount = decimal.NewFromInt(-5) }, domainerror.ErrInvalidLateFeePolicy},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lease := newTestLease()
			tt.mutate(lease)

			err := lease.Validate()

			assert.True(t, errors.Is(err, tt.wantErr), "got %v", err)
			var ledgerErr *domainerror.LedgerError
			assert.True(t, errors.As(err, &ledgerErr))
		})
	}
}

func TestLease_DueDateIn(t *testing.T) {
	lease := newTestLease()
	lease.RentDueDay = 31

	assert.Equal(t, day(2024, time.February, 29), lease.DueDateIn(2024, time.February))
	assert.Equal(t, day(2024, time.March, 31), lease.DueDateIn(2024, time.March))
	assert.Equal(t, day(2024, time.April, 30), lease.DueDateIn(2024, time.April))
}

func TestLeaseCharge_AppliesTo(t *testing.T) {
	end := day(2024, time.June, 30)

	tests := []struct {
		name   string
		charge LeaseCharge
		month  time.Time
		want   bool
	}{
		{
			name:   "monthly inside window",
			charge: LeaseCharge{Frequency: ChargeFrequencyMonthly, StartDate: day(2024, time.January, 1), IsActive: true},
			month:  day(2024, time.May, 1),
			want:   true,
		},
		{
			name:   "inactive",
			charge: LeaseCharge{Frequency: ChargeFrequencyMonthly, StartDate: day(2024, time.January, 1)},
			month:  day(2024, time.May, 1),
			want:   false,
		},
		{
			name:   "before start",
			charge: LeaseCharge{Frequency: ChargeFrequencyMonthly, StartDate: day(2024, time.June, 1), IsActive: true},
			month:  day(2024, time.May, 1),
			want:   false,
		},
		{
			name:   "after end",
			charge: LeaseCharge{Frequency: ChargeFrequencyMonthly, StartDate: day(2024, time.January, 1), EndDate: &end, IsActive: true},
			month:  day(2024, time.July, 1),
			want:   false,
		},
		{
			name:   "quarterly in quarter month",
			charge: LeaseCharge{Frequency: ChargeFrequencyQuarterly, StartDate: day(2024, time.February, 1), IsActive: true},
			month:  day(2024, time.April, 1),
			want:   true,
		},
		{
			name:   "quarterly off quarter",
			charge: LeaseCharge{Frequency: ChargeFrequencyQuarterly, StartDate: day(2024, time.February, 1), IsActive: true},
			month:  day(2024, time.May, 1),
			want:   false,
		},
		{
			name:   "annual in january",
			charge: LeaseCharge{Frequency: ChargeFrequencyAnnually, StartDate: day(2023, time.March, 1), IsActive: true},
			month:  day(2024, time.January, 1),
			want:   true,
		},
		{
			name:   "annual outside january",
			charge: LeaseCharge{Frequency: ChargeFrequencyAnnually, StartDate: day(2023, time.March, 1), IsActive: true},
			month:  day(2024, time.March, 1),
			want:   false,
		},
		{
			name:   "unknown frequency",
			charge: LeaseCharge{Frequency: "WEEKLY", StartDate: day(2024, time.January, 1), IsActive: true},
			month:  day(2024, time.March, 1),
			want:   false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.charge.AppliesTo(tt.month))
		})
	}
}

func TestLease_MonthlyChargeTotal(t *testing.T) {
	lease := newTestLease()
	lease.Charges = []*LeaseCharge{
		{Description: "Parking", Amount: decimal.NewFromInt(50), Frequency: ChargeFrequencyMonthly, StartDate: day(2024, time.January, 1), IsActive: true},
		{Description: "Storage", Amount: decimal.NewFromInt(30), Frequency: ChargeFrequencyQuarterly, StartDate: day(2024, time.January, 1), IsActive: true},
		{Description: "Pet", Amount: decimal.NewFromInt(25), Frequency: ChargeFrequencyMonthly, StartDate: day(2024, time.January, 1)},
	}

	assert.True(t, lease.MonthlyChargeTotal(day(2024, time.April, 1)).Equal(decimal.NewFromInt(1080)))
	assert.True(t, lease.MonthlyChargeTotal(day(2024, time.May, 1)).Equal(decimal.NewFromInt(1050)))
}

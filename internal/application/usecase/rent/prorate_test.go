package rent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerror "github.com/property-ledger/backend/internal/domain/error"
)

func TestCalculateProratedRent(t *testing.T) {
	rent := decimal.NewFromInt(1500)
	moveOutMar10 := date(2024, time.March, 10)
	moveOutBefore := date(2024, time.March, 1)

	tests := []struct {
		name    string
		moveIn  time.Time
		moveOut *time.Time
		want    decimal.Decimal
	}{
		{"full month", date(2024, time.March, 1), nil, decimal.NewFromInt(1500)},
		{"second half of june", date(2024, time.June, 16), nil, decimal.NewFromInt(750)},
		{"leap february last day", date(2024, time.February, 29), nil, rent.Div(decimal.NewFromInt(29))},
		{"move out inside month", date(2024, time.March, 1), &moveOutMar10, rent.Mul(decimal.NewFromInt(10)).Div(decimal.NewFromInt(31))},
		{"move out before move in counts one day", date(2024, time.March, 5), &moveOutBefore, rent.Div(decimal.NewFromInt(31))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateProratedRent(rent, tt.moveIn, tt.moveOut)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestCalculateProratedRent_FullMonthIsExact(t *testing.T) {
	// 1000 * 31 / 31 must not drift through an intermediate division.
	rent := decimal.RequireFromString("1000.01")

	for month := time.January; month <= time.December; month++ {
		got := CalculateProratedRent(rent, date(2023, month, 1), nil)
		assert.True(t, rent.Equal(got), "%s: got %s", month, got)
	}
}

func TestCalculateProratedRentUseCase_Execute(t *testing.T) {
	uc := NewCalculateProratedRentUseCase()

	t.Run("reports day counts", func(t *testing.T) {
		out, err := uc.Execute(context.Background(), CalculateProratedRentInput{
			MonthlyRent: decimal.NewFromInt(1200),
			MoveIn:      date(2024, time.April, 21),
		})
		require.NoError(t, err)

		assert.Equal(t, 30, out.DaysInMonth)
		assert.Equal(t, 10, out.DaysOccupied)
		assert.True(t, out.Amount.Equal(decimal.NewFromInt(400)))
	})

	t.Run("rejects non-positive rent", func(t *testing.T) {
		_, err := uc.Execute(context.Background(), CalculateProratedRentInput{
			MonthlyRent: decimal.Zero,
			MoveIn:      date(2024, time.April, 21),
		})

		assert.True(t, errors.Is(err, domainerror.ErrInvalidMonthlyRent))
	})
}

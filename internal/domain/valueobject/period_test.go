package valueobject

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDateOnly(t *testing.T) {
	in := time.Date(2024, time.March, 5, 23, 59, 10, 5, time.UTC)
	assert.Equal(t, date(2024, time.March, 5), DateOnly(in))

	// The calendar day is read in the value's own location.
	loc := time.FixedZone("UTC-5", -5*60*60)
	local := time.Date(2024, time.March, 5, 22, 0, 0, 0, loc)
	assert.Equal(t, date(2024, time.March, 5), DateOnly(local))
}

func TestDateOn_ClampsToMonthLength(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		day   int
		want  time.Time
	}{
		{"regular day", 2024, time.March, 15, date(2024, time.March, 15)},
		{"31st in leap february", 2024, time.February, 31, date(2024, time.February, 29)},
		{"31st in february", 2023, time.February, 31, date(2023, time.February, 28)},
		{"31st in april", 2024, time.April, 31, date(2024, time.April, 30)},
		{"day below one", 2024, time.May, 0, date(2024, time.May, 1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DateOn(tt.year, tt.month, tt.day))
		})
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		month time.Time
		want  int
	}{
		{date(2024, time.January, 10), 31},
		{date(2024, time.February, 1), 29},
		{date(2023, time.February, 28), 28},
		{date(2024, time.April, 30), 30},
		{date(2024, time.December, 31), 31},
	}

	for _, tt := range tests {
		t.Run(tt.month.Format("2006-01"), func(t *testing.T) {
			assert.Equal(t, tt.want, DaysInMonth(tt.month))
		})
	}
}

func TestDaysBetweenInclusive(t *testing.T) {
	assert.Equal(t, 1, DaysBetweenInclusive(date(2024, time.March, 5), date(2024, time.March, 5)))
	assert.Equal(t, 16, DaysBetweenInclusive(date(2024, time.March, 16), date(2024, time.March, 31)))
	assert.Equal(t, 0, DaysBetweenInclusive(date(2024, time.March, 5), date(2024, time.March, 4)))

	// Time of day does not change the count.
	late := time.Date(2024, time.March, 31, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, 31, DaysBetweenInclusive(date(2024, time.March, 1), late))
}

func TestDaysElapsed(t *testing.T) {
	due := date(2024, time.March, 1)

	assert.Equal(t, 0, DaysElapsed(due, time.Date(2024, time.March, 1, 18, 0, 0, 0, time.UTC)))
	assert.Equal(t, 9, DaysElapsed(due, time.Date(2024, time.March, 10, 9, 0, 0, 0, time.UTC)))
	assert.Equal(t, -1, DaysElapsed(due, date(2024, time.February, 29)))
}

func TestAddMonths(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		n    int
		want time.Time
	}{
		{"simple", date(2024, time.January, 15), 1, date(2024, time.February, 15)},
		{"end of month clamps", date(2024, time.January, 31), 1, date(2024, time.February, 29)},
		{"year rollover", date(2024, time.November, 30), 3, date(2025, time.February, 28)},
		{"twelve months", date(2024, time.January, 1), 12, date(2025, time.January, 1)},
		{"backwards", date(2024, time.March, 31), -1, date(2024, time.February, 29)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, AddMonths(tt.in, tt.n))
		})
	}
}

func TestMonthPeriod(t *testing.T) {
	p := MonthPeriod(2024, time.February)

	assert.Equal(t, date(2024, time.February, 1), p.Start)
	assert.True(t, p.Contains(time.Date(2024, time.February, 29, 23, 0, 0, 0, time.UTC)))
	assert.False(t, p.Contains(date(2024, time.March, 1)))
	assert.False(t, p.Contains(date(2024, time.January, 31)))
	assert.True(t, p.IsValid())
}

func TestYearPeriod(t *testing.T) {
	p := YearPeriod(2024)

	assert.True(t, p.Contains(date(2024, time.January, 1)))
	assert.True(t, p.Contains(date(2024, time.December, 31)))
	assert.False(t, p.Contains(date(2025, time.January, 1)))
}

func TestNewPeriod(t *testing.T) {
	p := NewPeriod(date(2024, time.March, 1), date(2024, time.March, 31))

	assert.True(t, p.Contains(time.Date(2024, time.March, 31, 12, 0, 0, 0, time.UTC)))
	assert.True(t, p.IsValid())

	inverted := NewPeriod(date(2024, time.March, 31), date(2024, time.March, 1))
	assert.False(t, inverted.IsValid())
}

package types

import (
	"testing"
	"time"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLastDayOfMonth(t *testing.T) {
	tests := []struct {
		name  string
		year  int
		month time.Month
		want  int
	}{
		{name: "january", year: 2024, month: time.January, want: 31},
		{name: "leap february", year: 2024, month: time.February, want: 29},
		{name: "regular february", year: 2023, month: time.February, want: 28},
		{name: "century non leap", year: 1900, month: time.February, want: 28},
		{name: "quad century leap", year: 2000, month: time.February, want: 29},
		{name: "april", year: 2024, month: time.April, want: 30},
		{name: "december", year: 2024, month: time.December, want: 31},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LastDayOfMonth(tt.year, tt.month))
		})
	}
}

func TestInclusiveDayCount(t *testing.T) {
	tests := []struct {
		name  string
		start time.Time
		end   time.Time
		want  int
	}{
		{
			name:  "same day",
			start: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "same day different times",
			start: time.Date(2024, 3, 15, 23, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 3, 15, 1, 0, 0, 0, time.UTC),
			want:  1,
		},
		{
			name:  "whole leap february",
			start: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
			want:  29,
		},
		{
			name:  "across year boundary",
			start: time.Date(2023, 12, 30, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
			want:  4,
		},
		{
			name:  "longer than a duration can hold",
			start: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2924, 1, 1, 0, 0, 0, 0, time.UTC),
			want:  328719,
		},
		{
			name:  "before the unix epoch",
			start: time.Date(1969, 12, 31, 0, 0, 0, 0, time.UTC),
			end:   time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC),
			want:  2,
		},
		{
			name:  "end before start is not positive",
			start: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
			end:   time.Date(2024, 3, 13, 0, 0, 0, 0, time.UTC),
			want:  -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InclusiveDayCount(tt.start, tt.end))
		})
	}
}

func TestInclusiveDayCountAcrossDST(t *testing.T) {
	loc, err := time.LoadLocation("America/Denver")
	require.NoError(t, err)

	start := time.Date(2024, 3, 9, 0, 0, 0, 0, loc)
	end := time.Date(2024, 3, 11, 0, 0, 0, 0, loc)

	assert.Equal(t, 3, InclusiveDayCount(start, end))
}

func TestValidateDateRange(t *testing.T) {
	start := time.Date(2024, 5, 10, 0, 0, 0, 0, time.UTC)

	require.NoError(t, ValidateDateRange(start, start))
	require.NoError(t, ValidateDateRange(start, start.AddDate(0, 0, 1)))

	err := ValidateDateRange(start, start.AddDate(0, 0, -1))
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestPeriodKey(t *testing.T) {
	tests := []struct {
		name string
		date time.Time
		want string
	}{
		{name: "first of month", date: time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC), want: "2024-02"},
		{name: "last second of month", date: time.Date(2024, 2, 29, 23, 59, 59, 0, time.UTC), want: "2024-02"},
		{name: "december", date: time.Date(2023, 12, 15, 12, 0, 0, 0, time.UTC), want: "2023-12"},
		{name: "small year is padded", date: time.Date(999, 7, 4, 0, 0, 0, 0, time.UTC), want: "0999-07"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PeriodKey(tt.date))
		})
	}
}

func TestPeriodKeyIsStableWithinMonth(t *testing.T) {
	for day := 1; day <= LastDayOfMonth(2024, time.October); day++ {
		d := time.Date(2024, time.October, day, day%24, 0, 0, 0, time.UTC)
		assert.Equal(t, "2024-10", PeriodKey(d))
	}
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-02-10")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("10/02/2024")
	require.Error(t, err)
	assert.True(t, ierr.IsValidation(err))
}

func TestValidatePeriodKey(t *testing.T) {
	require.NoError(t, ValidatePeriodKey("2024-02"))
	assert.True(t, ierr.IsValidation(ValidatePeriodKey("2024-13")))
	assert.True(t, ierr.IsValidation(ValidatePeriodKey("feb-2024")))
}

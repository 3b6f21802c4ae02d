package rental

import (
	"testing"
	"time"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSetEndDate(t *testing.T) {
	r := &Rental{StartDate: time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC)}

	require.NoError(t, r.SetEndDate(lo.ToPtr(time.Date(2024, 3, 9, 15, 30, 0, 0, time.UTC))))
	assert.Equal(t, 29, *r.TotalDays)
	assert.Equal(t, time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC), *r.EndDate)
	assert.False(t, r.IsActive())

	require.NoError(t, r.SetEndDate(lo.ToPtr(r.StartDate)))
	assert.Equal(t, 1, *r.TotalDays)

	err := r.SetEndDate(lo.ToPtr(time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)))
	assert.True(t, ierr.IsValidation(err))
	assert.Equal(t, 1, *r.TotalDays)

	require.NoError(t, r.SetEndDate(nil))
	assert.Nil(t, r.TotalDays)
	assert.True(t, r.IsActive())
}

func TestIsClosed(t *testing.T) {
	today := time.Date(2024, 5, 15, 18, 0, 0, 0, time.UTC)
	r := &Rental{StartDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}

	assert.False(t, r.IsClosed(today))

	r.EndDate = lo.ToPtr(time.Date(2024, 5, 15, 0, 0, 0, 0, time.UTC))
	assert.False(t, r.IsClosed(today), "ending today is still open")

	r.EndDate = lo.ToPtr(time.Date(2024, 5, 14, 0, 0, 0, 0, time.UTC))
	assert.True(t, r.IsClosed(today))
}

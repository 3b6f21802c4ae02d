package validator

import (
	"testing"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	StartDate string           `validate:"required,date"`
	EndDate   *string          `validate:"omitempty,date"`
	Amount    *decimal.Decimal `validate:"omitempty,nonnegative"`
}

func TestValidateRequest(t *testing.T) {
	NewValidator()

	bad := "2024-13-01"
	neg := decimal.NewFromInt(-5)
	pos := decimal.NewFromInt(1200)

	assert.NoError(t, ValidateRequest(sample{StartDate: "2024-02-10"}))
	assert.NoError(t, ValidateRequest(sample{StartDate: "2024-02-10", Amount: &pos}))

	err := ValidateRequest(sample{StartDate: "10/02/2024"})
	assert.True(t, ierr.IsValidation(err))

	err = ValidateRequest(sample{StartDate: "2024-02-10", EndDate: &bad})
	assert.True(t, ierr.IsValidation(err))

	err = ValidateRequest(sample{StartDate: "2024-02-10", Amount: &neg})
	assert.True(t, ierr.IsValidation(err))

	err = ValidateRequest(sample{})
	assert.True(t, ierr.IsValidation(err))
}

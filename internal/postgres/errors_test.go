package postgres

import (
	"database/sql"
	"errors"
	"testing"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, TranslateError(nil, "spot"))

	err := TranslateError(sql.ErrNoRows, "spot")
	assert.True(t, ierr.IsNotFound(err))

	err = TranslateError(&pq.Error{Code: "23505", Constraint: "idx_payments_rental_period"}, "payment")
	assert.True(t, ierr.IsAlreadyExists(err))
	assert.True(t, IsUniqueViolation(err))

	err = TranslateError(&pq.Error{Code: "23503"}, "rental")
	assert.True(t, ierr.IsInvalidOperation(err))

	err = TranslateError(&pq.Error{Code: "23514"}, "payment")
	assert.True(t, ierr.IsValidation(err))

	err = TranslateError(errors.New("connection reset"), "rental")
	assert.True(t, ierr.IsDatabase(err))
}

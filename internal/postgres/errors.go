package postgres

import (
	"database/sql"
	"errors"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/lib/pq"
)

// postgres error codes the repositories care about
const (
	pqUniqueViolation     = pq.ErrorCode("23505")
	pqForeignKeyViolation = pq.ErrorCode("23503")
	pqCheckViolation      = pq.ErrorCode("23514")
)

// IsUniqueViolation reports whether err is a unique constraint violation.
func IsUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqUniqueViolation
}

// TranslateError marks a driver error with the matching sentinel so the
// caller sees NotFound or a conflict instead of a raw database error.
// entity names the record involved in hints.
func TranslateError(err error, entity string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return ierr.WithError(err).
			WithHintf("%s not found", entity).
			Mark(ierr.ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		details := map[string]any{
			"constraint": pqErr.Constraint,
		}
		switch pqErr.Code {
		case pqUniqueViolation:
			return ierr.WithError(err).
				WithHintf("%s already exists", entity).
				WithReportableDetails(details).
				Mark(ierr.ErrAlreadyExists)
		case pqForeignKeyViolation:
			return ierr.WithError(err).
				WithHintf("%s references a missing record or is still referenced", entity).
				WithReportableDetails(details).
				Mark(ierr.ErrInvalidOperation)
		case pqCheckViolation:
			return ierr.WithError(err).
				WithHintf("%s violates a constraint", entity).
				WithReportableDetails(details).
				Mark(ierr.ErrValidation)
		}
	}

	return ierr.WithError(err).
		WithHintf("Failed to access %s", entity).
		Mark(ierr.ErrDatabase)
}

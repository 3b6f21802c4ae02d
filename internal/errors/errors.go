package errors

import (
	"net/http"

	"github.com/cockroachdb/errors"
)

// Sentinel errors. Every error returned by a service is marked with exactly
// one of these so the HTTP layer can pick a status code.
var (
	ErrNotFound         = errors.New(ErrCodeNotFound)
	ErrAlreadyExists    = errors.New(ErrCodeAlreadyExists)
	ErrVersionConflict  = errors.New(ErrCodeVersionConflict)
	ErrValidation       = errors.New(ErrCodeValidation)
	ErrInvalidOperation = errors.New(ErrCodeInvalidOperation)
	ErrUnauthenticated  = errors.New(ErrCodeUnauthenticated)
	ErrPermissionDenied = errors.New(ErrCodePermissionDenied)
	ErrTooManyRequests  = errors.New(ErrCodeTooManyRequests)
	ErrDatabase         = errors.New(ErrCodeDatabase)
	ErrSystem           = errors.New(ErrCodeSystemError)
)

const (
	ErrCodeSystemError      = "system_error"
	ErrCodeNotFound         = "not_found"
	ErrCodeAlreadyExists    = "already_exists"
	ErrCodeVersionConflict  = "version_conflict"
	ErrCodeValidation       = "validation_error"
	ErrCodeInvalidOperation = "invalid_operation"
	ErrCodeUnauthenticated  = "unauthenticated"
	ErrCodePermissionDenied = "permission_denied"
	ErrCodeTooManyRequests  = "too_many_requests"
	ErrCodeDatabase         = "database_error"
)

// statusCodes is ordered; the first matching sentinel wins.
var statusCodes = []struct {
	err    error
	status int
	code   string
}{
	{ErrNotFound, http.StatusNotFound, ErrCodeNotFound},
	{ErrAlreadyExists, http.StatusConflict, ErrCodeAlreadyExists},
	{ErrVersionConflict, http.StatusConflict, ErrCodeVersionConflict},
	{ErrValidation, http.StatusBadRequest, ErrCodeValidation},
	{ErrInvalidOperation, http.StatusBadRequest, ErrCodeInvalidOperation},
	{ErrUnauthenticated, http.StatusUnauthorized, ErrCodeUnauthenticated},
	{ErrPermissionDenied, http.StatusForbidden, ErrCodePermissionDenied},
	{ErrTooManyRequests, http.StatusTooManyRequests, ErrCodeTooManyRequests},
	{ErrDatabase, http.StatusInternalServerError, ErrCodeDatabase},
	{ErrSystem, http.StatusInternalServerError, ErrCodeSystemError},
}

func As(err error, target any) bool {
	return errors.As(err, target)
}

func Is(err, reference error) bool {
	return errors.Is(err, reference)
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return errors.Is(err, ErrAlreadyExists)
}

// IsVersionConflict checks if an error is a version conflict error
func IsVersionConflict(err error) bool {
	return errors.Is(err, ErrVersionConflict)
}

// IsValidation checks if an error is a validation error
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidOperation checks if an error is an invalid operation error
func IsInvalidOperation(err error) bool {
	return errors.Is(err, ErrInvalidOperation)
}

func IsUnauthenticated(err error) bool {
	return errors.Is(err, ErrUnauthenticated)
}

// IsPermissionDenied checks if an error is a permission denied error
func IsPermissionDenied(err error) bool {
	return errors.Is(err, ErrPermissionDenied)
}

// IsDatabase checks if an error is a database error
func IsDatabase(err error) bool {
	return errors.Is(err, ErrDatabase)
}

// HTTPStatusFromErr maps a marked error to its HTTP status code.
// Unmarked errors are treated as internal errors.
func HTTPStatusFromErr(err error) int {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return sc.status
		}
	}
	return http.StatusInternalServerError
}

// CodeFromErr returns the machine readable code of a marked error.
func CodeFromErr(err error) string {
	for _, sc := range statusCodes {
		if errors.Is(err, sc.err) {
			return sc.code
		}
	}
	return ErrCodeSystemError
}

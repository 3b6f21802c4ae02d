package errors

import (
	"database/sql"
	"net/http"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
)

func TestHTTPStatusFromErr(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"not found", NewError("spot not found").Mark(ErrNotFound), http.StatusNotFound, ErrCodeNotFound},
		{"conflict", NewError("spot is not available").Mark(ErrAlreadyExists), http.StatusConflict, ErrCodeAlreadyExists},
		{"validation", NewError("bad date").Mark(ErrValidation), http.StatusBadRequest, ErrCodeValidation},
		{"invalid operation", NewError("rental closed").Mark(ErrInvalidOperation), http.StatusBadRequest, ErrCodeInvalidOperation},
		{"unauthenticated", NewError("bad token").Mark(ErrUnauthenticated), http.StatusUnauthorized, ErrCodeUnauthenticated},
		{"forbidden", NewError("admin only").Mark(ErrPermissionDenied), http.StatusForbidden, ErrCodePermissionDenied},
		{"database", WithError(sql.ErrConnDone).Mark(ErrDatabase), http.StatusInternalServerError, ErrCodeDatabase},
		{"unmarked", errors.New("boom"), http.StatusInternalServerError, ErrCodeSystemError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.status, HTTPStatusFromErr(tt.err))
			assert.Equal(t, tt.code, CodeFromErr(tt.err))
		})
	}
}

func TestMarkSurvivesWrapping(t *testing.T) {
	base := NewError("payment already registered for period").
		WithHint("A payment for 2024-02 already exists").
		Mark(ErrAlreadyExists)
	wrapped := errors.Wrap(base, "register payment")

	assert.True(t, IsAlreadyExists(wrapped))
	assert.False(t, IsNotFound(wrapped))
	assert.Equal(t, []string{"A payment for 2024-02 already exists"}, errors.GetAllHints(wrapped))
}

func TestWithReportableDetails(t *testing.T) {
	err := NewError("invalid date range").
		WithReportableDetails(map[string]any{"start_date": "2024-03-10"}).
		Mark(ErrValidation)

	found := false
	for _, sd := range errors.GetAllSafeDetails(err) {
		for _, payload := range sd.SafeDetails {
			if strings.HasPrefix(payload, "__json__:") && strings.Contains(payload, "2024-03-10") {
				found = true
			}
		}
	}
	assert.True(t, found)
	assert.True(t, IsValidation(err))
}

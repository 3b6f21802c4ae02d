package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/flexprice/rvpark/internal/api/dto"
	"github.com/flexprice/rvpark/internal/config"
	"github.com/flexprice/rvpark/internal/domain/user"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/logger"
	sentryService "github.com/flexprice/rvpark/internal/sentry"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubAuthService struct {
	users map[string]*user.User
}

func (s *stubAuthService) Register(context.Context, dto.RegisterRequest) (*dto.UserResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Login(context.Context, dto.LoginRequest) (*dto.AuthResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Me(context.Context) (*dto.UserResponse, error) {
	return nil, nil
}

func (s *stubAuthService) Authenticate(_ context.Context, token string) (*user.User, error) {
	if u, ok := s.users[token]; ok {
		return u, nil
	}
	return nil, ierr.NewError("invalid token").
		WithHint("Invalid or expired token").
		Mark(ierr.ErrUnauthenticated)
}

func newTestEngine(t *testing.T, handlers ...gin.HandlerFunc) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := config.GetDefaultConfig()
	log := logger.NewNoopLogger()

	r := gin.New()
	r.Use(RequestIDMiddleware, ErrorHandler(log, sentryService.NewSentryService(cfg, log)))
	r.GET("/test", handlers...)
	return r
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) ierr.ErrorResponse {
	t.Helper()
	var resp ierr.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func TestAuthenticateMiddleware(t *testing.T) {
	auth := &stubAuthService{users: map[string]*user.User{
		"admin-token": {ID: "user_admin", Role: types.UserRoleAdmin, RvParkID: lo.ToPtr("park_1"), Active: true},
		"op-token":    {ID: "user_op", Role: types.UserRoleOperator, Active: true},
	}}

	echo := func(c *gin.Context) {
		ctx := c.Request.Context()
		parkID, _ := ctx.Value(types.CtxRvParkID).(string)
		c.JSON(http.StatusOK, gin.H{
			"user_id":    types.GetUserID(ctx),
			"role":       types.GetRole(ctx),
			"rv_park_id": parkID,
		})
	}

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantUserID string
		wantParkID string
	}{
		{name: "missing_header", wantStatus: http.StatusUnauthorized},
		{name: "not_a_bearer", header: "Basic abc", wantStatus: http.StatusUnauthorized},
		{name: "unknown_token", header: "Bearer nope", wantStatus: http.StatusUnauthorized},
		{name: "admin", header: "Bearer admin-token", wantStatus: http.StatusOK, wantUserID: "user_admin", wantParkID: "park_1"},
		{name: "operator", header: "Bearer op-token", wantStatus: http.StatusOK, wantUserID: "user_op"},
	}

	r := newTestEngine(t, AuthenticateMiddleware(auth, logger.NewNoopLogger()), echo)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			if tt.header != "" {
				req.Header.Set(types.HeaderAuthorization, tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus != http.StatusOK {
				resp := decodeError(t, w)
				assert.False(t, resp.Success)
				assert.Equal(t, ierr.ErrCodeUnauthenticated, resp.Error.Code)
				return
			}

			var body map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.wantUserID, body["user_id"])
			assert.Equal(t, tt.wantParkID, body["rv_park_id"])
		})
	}
}

func TestRequireRole(t *testing.T) {
	auth := &stubAuthService{users: map[string]*user.User{
		"admin-token": {ID: "user_admin", Role: types.UserRoleAdmin, Active: true},
		"op-token":    {ID: "user_op", Role: types.UserRoleOperator, Active: true},
	}}
	ok := func(c *gin.Context) { c.Status(http.StatusNoContent) }
	r := newTestEngine(t, AuthenticateMiddleware(auth, logger.NewNoopLogger()), RequireRole(types.UserRoleAdmin), ok)

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(types.HeaderAuthorization, "Bearer admin-token")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set(types.HeaderAuthorization, "Bearer op-token")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusForbidden, w.Code)

	resp := decodeError(t, w)
	assert.Equal(t, ierr.ErrCodePermissionDenied, resp.Error.Code)
	assert.Equal(t, string(types.UserRoleOperator), resp.Error.Details["role"])
}

func TestErrorHandlerHidesInternalDetails(t *testing.T) {
	r := newTestEngine(t, func(c *gin.Context) {
		_ = c.Error(ierr.NewError("connection reset").
			WithReportableDetails(map[string]any{"query": "select 1"}).
			Mark(ierr.ErrDatabase))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeError(t, w)
	assert.Equal(t, ierr.ErrCodeDatabase, resp.Error.Code)
	assert.Equal(t, "An unexpected error occurred", resp.Error.Display)
	assert.Nil(t, resp.Error.Details)
}

func TestErrorHandlerRendersHint(t *testing.T) {
	r := newTestEngine(t, func(c *gin.Context) {
		_ = c.Error(ierr.NewError("spot is occupied").
			WithHint("The spot is not available").
			WithReportableDetails(map[string]any{"spot_id": "spot_1"}).
			Mark(ierr.ErrAlreadyExists))
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))

	require.Equal(t, http.StatusConflict, w.Code)
	assert.NotEmpty(t, w.Header().Get(types.HeaderRequestID))
	resp := decodeError(t, w)
	assert.Equal(t, "The spot is not available", resp.Error.Display)
	assert.Equal(t, "spot_1", resp.Error.Details["spot_id"])
}

func TestLoginRateLimit(t *testing.T) {
	cfg := config.GetDefaultConfig()
	cfg.RateLimit.LoginRPS = 0.001
	cfg.RateLimit.LoginBurst = 2

	gin.SetMode(gin.TestMode)
	log := logger.NewNoopLogger()
	r := gin.New()
	r.Use(ErrorHandler(log, sentryService.NewSentryService(cfg, log)))
	r.GET("/test", LoginRateLimit(cfg), func(c *gin.Context) { c.Status(http.StatusOK) })

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/test", nil))
		codes = append(codes, w.Code)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

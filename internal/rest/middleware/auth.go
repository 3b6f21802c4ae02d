package middleware

import (
	"context"
	"strings"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/logger"
	"github.com/flexprice/rvpark/internal/service"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/gin-gonic/gin"
	"github.com/samber/lo"
)

// AuthenticateMiddleware resolves the bearer token in the Authorization
// header to an active user and puts the user, role and park in the request
// context for downstream handlers.
func AuthenticateMiddleware(authService service.AuthService, logger *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(types.HeaderAuthorization)
		if authHeader == "" {
			abortWithError(c, ierr.NewError("missing authorization header").
				WithHint("Authentication required").
				Mark(ierr.ErrUnauthenticated))
			return
		}

		tokenString, ok := strings.CutPrefix(authHeader, "Bearer ")
		if !ok || tokenString == "" {
			abortWithError(c, ierr.NewError("malformed authorization header").
				WithHint("Invalid authorization header format").
				Mark(ierr.ErrUnauthenticated))
			return
		}

		u, err := authService.Authenticate(c.Request.Context(), tokenString)
		if err != nil {
			logger.Debugw("rejected token", "error", err)
			abortWithError(c, err)
			return
		}

		ctx := c.Request.Context()
		ctx = context.WithValue(ctx, types.CtxUserID, u.ID)
		ctx = context.WithValue(ctx, types.CtxRole, u.Role)
		ctx = context.WithValue(ctx, types.CtxJWT, tokenString)
		if parkID := lo.FromPtr(u.RvParkID); parkID != "" {
			ctx = context.WithValue(ctx, types.CtxRvParkID, parkID)
		}
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

// RequireRole lets the request through only for users holding one of roles
func RequireRole(roles ...types.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		role := types.GetRole(c.Request.Context())
		if !lo.Contains(roles, role) {
			abortWithError(c, ierr.NewErrorf("role %q not allowed", role).
				WithHintf("This action requires one of the roles %v", roles).
				WithReportableDetails(map[string]any{
					"role": role,
				}).
				Mark(ierr.ErrPermissionDenied))
			return
		}
		c.Next()
	}
}

func abortWithError(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

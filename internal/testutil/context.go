package testutil

import (
	"context"

	"github.com/flexprice/rvpark/internal/types"
)

// SetupContext returns a context for an administrator making a request
func SetupContext() context.Context {
	ctx := context.Background()
	ctx = context.WithValue(ctx, types.CtxUserID, types.DefaultUserID)
	ctx = context.WithValue(ctx, types.CtxRole, types.UserRoleAdmin)
	ctx = context.WithValue(ctx, types.CtxRequestID, types.GenerateUUID())
	return ctx
}

// WithRole returns ctx acting as role
func WithRole(ctx context.Context, role types.UserRole) context.Context {
	return types.SetRole(ctx, role)
}

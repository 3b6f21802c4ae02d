package types

import (
	"context"
)

// ContextKey is a type for the keys of values stored in the context
type ContextKey string

const (
	CtxRequestID     ContextKey = "ctx_request_id"
	CtxUserID        ContextKey = "ctx_user_id"
	CtxRole          ContextKey = "ctx_role"
	CtxRvParkID      ContextKey = "ctx_rv_park_id"
	CtxJWT           ContextKey = "ctx_jwt"
	CtxDBTransaction ContextKey = "ctx_db_transaction"

	// Default values
	DefaultUserID = "00000000-0000-0000-0000-000000000000"
)

const (
	HeaderAuthorization = "Authorization"
	HeaderRequestID     = "X-Request-ID"
)

func GetUserID(ctx context.Context) string {
	if userID, ok := ctx.Value(CtxUserID).(string); ok {
		return userID
	}
	return ""
}

func GetRequestID(ctx context.Context) string {
	if requestID, ok := ctx.Value(CtxRequestID).(string); ok {
		return requestID
	}
	return ""
}

func GetJWT(ctx context.Context) string {
	if jwt, ok := ctx.Value(CtxJWT).(string); ok {
		return jwt
	}
	return ""
}

// GetRole returns the role of the authenticated actor, empty when unauthenticated
func GetRole(ctx context.Context) UserRole {
	if role, ok := ctx.Value(CtxRole).(UserRole); ok {
		return role
	}
	return ""
}

func GetRvParkID(ctx context.Context) string {
	if parkID, ok := ctx.Value(CtxRvParkID).(string); ok {
		return parkID
	}
	return ""
}

// SetUserID sets the user ID in the context
func SetUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, CtxUserID, userID)
}

// SetRole sets the actor role in the context
func SetRole(ctx context.Context, role UserRole) context.Context {
	return context.WithValue(ctx, CtxRole, role)
}

// SetRvParkID sets the park the actor belongs to
func SetRvParkID(ctx context.Context, parkID string) context.Context {
	return context.WithValue(ctx, CtxRvParkID, parkID)
}

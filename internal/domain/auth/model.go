package auth

import "github.com/flexprice/rvpark/internal/types"

// Claims are the facts a verified token asserts about its bearer
type Claims struct {
	UserID   string
	Role     types.UserRole
	RvParkID string
}

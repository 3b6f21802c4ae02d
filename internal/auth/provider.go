package auth

import (
	"context"
	"time"

	"github.com/flexprice/rvpark/internal/config"
	"github.com/flexprice/rvpark/internal/domain/auth"
	"github.com/flexprice/rvpark/internal/domain/user"
)

// Token is a signed access token handed to a client after login
type Token struct {
	Value     string
	ExpiresAt time.Time
}

// Provider hashes credentials and issues and verifies access tokens
type Provider interface {
	HashPassword(password string) (string, error)
	// ComparePassword fails with ErrUnauthenticated when password does not match hash
	ComparePassword(hash, password string) error
	GenerateToken(ctx context.Context, u *user.User) (*Token, error)
	ValidateToken(ctx context.Context, token string) (*auth.Claims, error)
}

func NewProvider(cfg *config.Configuration) Provider {
	return NewLocalAuth(cfg)
}

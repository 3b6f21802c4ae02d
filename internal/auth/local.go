package auth

import (
	"context"
	"time"

	"github.com/flexprice/rvpark/internal/config"
	"github.com/flexprice/rvpark/internal/domain/auth"
	"github.com/flexprice/rvpark/internal/domain/user"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"
)

// localAuth keeps bcrypt hashes in the users table and signs HS256 tokens
type localAuth struct {
	AuthConfig config.AuthConfig
	now        func() time.Time
}

func NewLocalAuth(cfg *config.Configuration) *localAuth {
	return &localAuth{
		AuthConfig: cfg.Auth,
		now:        time.Now,
	}
}

func (a *localAuth) HashPassword(password string) (string, error) {
	if password == "" {
		return "", ierr.NewError("password is required").
			WithHint("Password is required").
			Mark(ierr.ErrValidation)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", ierr.WithError(err).
			WithHint("Failed to hash password").
			Mark(ierr.ErrSystem)
	}
	return string(hashed), nil
}

func (a *localAuth) ComparePassword(hash, password string) error {
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)); err != nil {
		return ierr.NewError("invalid credentials").
			WithHint("Invalid username or password").
			Mark(ierr.ErrUnauthenticated)
	}
	return nil
}

func (a *localAuth) GenerateToken(ctx context.Context, u *user.User) (*Token, error) {
	issuedAt := a.now()
	expiration := issuedAt.Add(a.AuthConfig.TokenTTL)

	claims := jwt.MapClaims{
		"user_id": u.ID,
		"role":    string(u.Role),
		"exp":     expiration.Unix(),
		"iat":     issuedAt.Unix(),
	}
	if u.RvParkID != nil {
		claims["rv_park_id"] = *u.RvParkID
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).
		SignedString([]byte(a.AuthConfig.Secret))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to generate token").
			Mark(ierr.ErrSystem)
	}

	return &Token{Value: signed, ExpiresAt: expiration}, nil
}

func (a *localAuth) ValidateToken(ctx context.Context, token string) (*auth.Claims, error) {
	parsedToken, err := jwt.Parse(token, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ierr.NewError("unexpected signing method").
				WithHintf("unexpected signing method: %v", token.Header["alg"]).
				Mark(ierr.ErrUnauthenticated)
		}
		return []byte(a.AuthConfig.Secret), nil
	})
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Invalid or expired token").
			Mark(ierr.ErrUnauthenticated)
	}

	claims, ok := parsedToken.Claims.(jwt.MapClaims)
	if !ok || !parsedToken.Valid {
		return nil, ierr.NewError("invalid token claims").
			WithHint("Invalid token claims").
			Mark(ierr.ErrUnauthenticated)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return nil, ierr.NewError("token missing user ID").
			WithHint("Token missing user ID").
			Mark(ierr.ErrUnauthenticated)
	}

	role, _ := claims["role"].(string)
	if err := types.UserRole(role).Validate(); err != nil {
		return nil, ierr.WithError(err).
			WithHint("Token carries an unknown role").
			Mark(ierr.ErrUnauthenticated)
	}

	parkID, _ := claims["rv_park_id"].(string)

	return &auth.Claims{
		UserID:   userID,
		Role:     types.UserRole(role),
		RvParkID: parkID,
	}, nil
}

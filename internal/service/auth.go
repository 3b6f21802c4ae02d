package service

import (
	"context"

	"github.com/flexprice/rvpark/internal/api/dto"
	"github.com/flexprice/rvpark/internal/cache"
	"github.com/flexprice/rvpark/internal/domain/user"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/samber/lo"
)

type AuthService interface {
	// Register creates a user and the person behind it. Administrators only.
	Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error)
	Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error)
	// Me returns the user calling the API
	Me(ctx context.Context) (*dto.UserResponse, error)
	// Authenticate resolves a bearer token to an active user
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

type authService struct {
	ServiceParams
	cache cache.Cache
}

func NewAuthService(params ServiceParams, cache cache.Cache) AuthService {
	return &authService{
		ServiceParams: params,
		cache:         cache,
	}
}

func (s *authService) Register(ctx context.Context, req dto.RegisterRequest) (*dto.UserResponse, error) {
	if !types.GetRole(ctx).IsAdmin() {
		return nil, ierr.NewError("only administrators can register users").
			WithHint("Only administrators can register users").
			Mark(ierr.ErrPermissionDenied)
	}

	if err := req.Validate(); err != nil {
		return nil, err
	}

	existing, err := s.UserRepo.GetByUsername(ctx, req.Username)
	if err != nil && !ierr.IsNotFound(err) {
		return nil, err
	}
	if existing != nil {
		return nil, ierr.NewErrorf("username %s already exists", req.Username).
			WithHint("Username already taken").
			Mark(ierr.ErrAlreadyExists)
	}

	if req.RvParkID != nil {
		if _, err := s.RvParkRepo.Get(ctx, *req.RvParkID); err != nil {
			return nil, err
		}
	}

	hash, err := s.AuthProvider.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	p := req.Person.ToPerson(ctx)
	u := &user.User{
		ID:           types.GenerateUUIDWithPrefix(types.UUID_PREFIX_USER),
		Username:     req.Username,
		PasswordHash: hash,
		Role:         req.Role,
		RvParkID:     req.RvParkID,
		PersonID:     lo.ToPtr(p.ID),
		Active:       true,
		BaseModel:    types.GetDefaultBaseModel(ctx),
	}
	if err := u.Validate(); err != nil {
		return nil, err
	}

	err = s.DB.WithTx(ctx, func(txCtx context.Context) error {
		if err := s.PersonRepo.Create(txCtx, p); err != nil {
			return err
		}
		return s.UserRepo.Create(txCtx, u)
	})
	if err != nil {
		return nil, err
	}

	s.AuditRecorder.Record(ctx, types.AuditActionCreateUser, types.AuditTableUsers, map[string]any{
		"user_id":   u.ID,
		"username":  u.Username,
		"role":      u.Role,
		"person_id": p.ID,
	})

	return &dto.UserResponse{User: u, Person: p}, nil
}

func (s *authService) Login(ctx context.Context, req dto.LoginRequest) (*dto.AuthResponse, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	u, err := s.UserRepo.GetByUsername(ctx, req.Username)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.NewError("invalid credentials").
				WithHint("Invalid username or password").
				Mark(ierr.ErrUnauthenticated)
		}
		return nil, err
	}

	if !u.Active {
		return nil, ierr.NewErrorf("user %s is inactive", u.ID).
			WithHint("The user is inactive").
			Mark(ierr.ErrPermissionDenied)
	}

	if err := s.AuthProvider.ComparePassword(u.PasswordHash, req.Password); err != nil {
		return nil, err
	}

	token, err := s.AuthProvider.GenerateToken(ctx, u)
	if err != nil {
		return nil, err
	}

	actorCtx := types.SetUserID(ctx, u.ID)
	s.AuditRecorder.Record(actorCtx, types.AuditActionLogin, types.AuditTableUsers, map[string]any{
		"username": u.Username,
	})

	return &dto.AuthResponse{
		Token:     token.Value,
		ExpiresAt: token.ExpiresAt,
		User:      &dto.UserResponse{User: u},
	}, nil
}

func (s *authService) Me(ctx context.Context) (*dto.UserResponse, error) {
	userID := types.GetUserID(ctx)
	if userID == "" {
		return nil, ierr.NewError("no authenticated user").
			WithHint("Authentication required").
			Mark(ierr.ErrUnauthenticated)
	}

	u, err := s.UserRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	resp := &dto.UserResponse{User: u}
	if u.PersonID != nil {
		p, err := s.PersonRepo.Get(ctx, *u.PersonID)
		if err != nil && !ierr.IsNotFound(err) {
			return nil, err
		}
		resp.Person = p
	}
	return resp, nil
}

func (s *authService) Authenticate(ctx context.Context, token string) (*user.User, error) {
	claims, err := s.AuthProvider.ValidateToken(ctx, token)
	if err != nil {
		return nil, err
	}

	key := cache.GenerateKey(cache.PrefixUser, claims.UserID)
	if cached, ok := s.cache.Get(ctx, key); ok {
		if u, ok := cached.(*user.User); ok {
			return u, nil
		}
	}

	u, err := s.UserRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, ierr.WithError(err).
				WithHint("The user of this token no longer exists").
				Mark(ierr.ErrUnauthenticated)
		}
		return nil, err
	}
	if !u.Active {
		return nil, ierr.NewErrorf("user %s is inactive", u.ID).
			WithHint("The user is inactive").
			Mark(ierr.ErrUnauthenticated)
	}

	s.cache.Set(ctx, key, u, 0)
	return u, nil
}

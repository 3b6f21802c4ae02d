package dto

import (
	"time"

	"github.com/flexprice/rvpark/internal/domain/person"
	"github.com/flexprice/rvpark/internal/domain/user"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/flexprice/rvpark/internal/validator"
)

type LoginRequest struct {
	Username string `json:"username" binding:"required" validate:"required"`
	Password string `json:"password" binding:"required" validate:"required"`
}

// RegisterRequest creates a user together with the person behind it
type RegisterRequest struct {
	Username string         `json:"username" binding:"required" validate:"required,min=3,max=100"`
	Password string         `json:"password" binding:"required" validate:"required,min=8"`
	Role     types.UserRole `json:"role" binding:"required" validate:"required"`
	RvParkID *string        `json:"rv_park_id,omitempty"`

	Person CreatePersonRequest `json:"person" validate:"required"`
}

type UserResponse struct {
	*user.User

	Person *person.Person `json:"person,omitempty"`
}

type AuthResponse struct {
	Token     string        `json:"token"`
	ExpiresAt time.Time     `json:"expires_at"`
	User      *UserResponse `json:"user"`
}

func (r *LoginRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *RegisterRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if err := r.Role.Validate(); err != nil {
		return err
	}
	return r.Person.Validate()
}

package user

import (
	"strings"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
)

// User is an account that can sign in
type User struct {
	ID           string         `db:"id" json:"id"`
	Username     string         `db:"username" json:"username"`
	PasswordHash string         `db:"password_hash" json:"-"`
	Role         types.UserRole `db:"role" json:"role"`
	RvParkID     *string        `db:"rv_park_id" json:"rv_park_id,omitempty"`
	PersonID     *string        `db:"person_id" json:"person_id,omitempty"`
	Active       bool           `db:"active" json:"active"`

	types.BaseModel
}

func (u *User) Validate() error {
	if strings.TrimSpace(u.Username) == "" {
		return ierr.NewError("username is required").
			WithHint("Please provide a username").
			Mark(ierr.ErrValidation)
	}
	if u.PasswordHash == "" {
		return ierr.NewError("password hash is required").
			Mark(ierr.ErrValidation)
	}
	return u.Role.Validate()
}

package types

import (
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/samber/lo"
)

// UserRole is the authorization role of a user (rol)
type UserRole string

const (
	UserRoleAdmin    UserRole = "Administrador"
	UserRoleOperator UserRole = "Operador"
	UserRoleClient   UserRole = "Cliente"
)

var UserRoles = []UserRole{
	UserRoleAdmin,
	UserRoleOperator,
	UserRoleClient,
}

func (r UserRole) Validate() error {
	if !lo.Contains(UserRoles, r) {
		return ierr.NewError("invalid role").
			WithHintf("Role must be one of %v", UserRoles).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (r UserRole) IsAdmin() bool {
	return r == UserRoleAdmin
}

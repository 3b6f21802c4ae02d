package types

import (
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/samber/lo"
)

// VehicleType is the kind of vehicle a tenant parks
type VehicleType string

const (
	VehicleTypeCargo     VehicleType = "Carga"
	VehicleTypeMachinery VehicleType = "Maquinaria"
	VehicleTypeCaravan   VehicleType = "Caravana"
	VehicleTypeOther     VehicleType = "Otro"
)

var VehicleTypes = []VehicleType{
	VehicleTypeCargo,
	VehicleTypeMachinery,
	VehicleTypeCaravan,
	VehicleTypeOther,
}

func (v VehicleType) Validate() error {
	if !lo.Contains(VehicleTypes, v) {
		return ierr.NewError("invalid vehicle type").
			WithHintf("Vehicle type must be one of %v", VehicleTypes).
			Mark(ierr.ErrValidation)
	}
	return nil
}

type PersonFilter struct {
	*QueryFilter

	Name  *string `json:"name,omitempty" form:"name"`
	Email *string `json:"email,omitempty" form:"email"`
}

func NewPersonFilter() *PersonFilter {
	return &PersonFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *PersonFilter) Validate() error {
	if f == nil {
		return nil
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return ierr.WithError(err).WithHint(err.Error()).Mark(ierr.ErrValidation)
	}
	return nil
}

package dto

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/person"
	"github.com/flexprice/rvpark/internal/domain/rental"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/flexprice/rvpark/internal/validator"
)

type CreatePersonRequest struct {
	Name        string            `json:"name" binding:"required" validate:"required,max=255"`
	Phone       string            `json:"phone" validate:"omitempty,max=50"`
	Email       string            `json:"email" validate:"omitempty,email"`
	VehicleType types.VehicleType `json:"vehicle_type"`
	Address     string            `json:"address" validate:"omitempty,max=500"`
}

type UpdatePersonRequest struct {
	Name        *string            `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Phone       *string            `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email       *string            `json:"email,omitempty" validate:"omitempty,email"`
	VehicleType *types.VehicleType `json:"vehicle_type,omitempty"`
	Address     *string            `json:"address,omitempty" validate:"omitempty,max=500"`
}

type PersonResponse struct {
	*person.Person

	Rentals []*rental.Rental `json:"rentals,omitempty"`
}

// ListPersonsResponse represents the response for listing persons
type ListPersonsResponse = types.ListResponse[*PersonResponse]

func (r *CreatePersonRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.VehicleType == "" {
		r.VehicleType = types.VehicleTypeOther
	}
	return r.VehicleType.Validate()
}

func (r *CreatePersonRequest) ToPerson(ctx context.Context) *person.Person {
	return &person.Person{
		ID:          types.GenerateUUIDWithPrefix(types.UUID_PREFIX_PERSON),
		Name:        r.Name,
		Phone:       r.Phone,
		Email:       r.Email,
		VehicleType: r.VehicleType,
		Address:     r.Address,
		BaseModel:   types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdatePersonRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.VehicleType != nil {
		return r.VehicleType.Validate()
	}
	return nil
}

// Apply copies the fields present in the request onto p
func (r *UpdatePersonRequest) Apply(p *person.Person) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	if r.Email != nil {
		p.Email = *r.Email
	}
	if r.VehicleType != nil {
		p.VehicleType = *r.VehicleType
	}
	if r.Address != nil {
		p.Address = *r.Address
	}
}

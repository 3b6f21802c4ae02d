package dto

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/rvpark"
	"github.com/flexprice/rvpark/internal/domain/spot"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/flexprice/rvpark/internal/validator"
)

type CreateRvParkRequest struct {
	Name    string `json:"name" binding:"required" validate:"required,max=255"`
	Address string `json:"address" validate:"omitempty,max=500"`
	Phone   string `json:"phone" validate:"omitempty,max=50"`
	Email   string `json:"email" validate:"omitempty,email"`
}

type UpdateRvParkRequest struct {
	Name    *string `json:"name,omitempty" validate:"omitempty,min=1,max=255"`
	Address *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Phone   *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Email   *string `json:"email,omitempty" validate:"omitempty,email"`
}

type RvParkResponse struct {
	*rvpark.RvPark

	// Spots is filled when a single park is fetched
	Spots []*spot.Spot `json:"spots,omitempty"`
}

// ListRvParksResponse represents the response for listing rv parks
type ListRvParksResponse = types.ListResponse[*RvParkResponse]

func (r *CreateRvParkRequest) Validate() error {
	return validator.ValidateRequest(r)
}

func (r *CreateRvParkRequest) ToRvPark(ctx context.Context) *rvpark.RvPark {
	return &rvpark.RvPark{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_RV_PARK),
		Name:      r.Name,
		Address:   r.Address,
		Phone:     r.Phone,
		Email:     r.Email,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateRvParkRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// Apply copies the fields present in the request onto p
func (r *UpdateRvParkRequest) Apply(p *rvpark.RvPark) {
	if r.Name != nil {
		p.Name = *r.Name
	}
	if r.Address != nil {
		p.Address = *r.Address
	}
	if r.Phone != nil {
		p.Phone = *r.Phone
	}
	if r.Email != nil {
		p.Email = *r.Email
	}
}

package dto

import (
	"context"

	"github.com/flexprice/rvpark/internal/domain/rental"
	"github.com/flexprice/rvpark/internal/domain/rvpark"
	"github.com/flexprice/rvpark/internal/domain/spot"
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
	"github.com/flexprice/rvpark/internal/validator"
)

type CreateSpotRequest struct {
	RvParkID string `json:"rv_park_id" binding:"required" validate:"required"`
	Code     string `json:"code" binding:"required" validate:"required,max=50"`
	// Status defaults to Disponible. A hold may be placed at creation.
	Status *types.SpotStatus `json:"status,omitempty"`
	Color  string            `json:"color" validate:"omitempty,max=50"`
}

type UpdateSpotRequest struct {
	RvParkID *string `json:"rv_park_id,omitempty"`
	Code     *string `json:"code,omitempty" validate:"omitempty,min=1,max=50"`
	Color    *string `json:"color,omitempty" validate:"omitempty,max=50"`
	// Status is applied as a manual override
	Status *types.SpotStatus `json:"status,omitempty"`
}

type SpotResponse struct {
	*spot.Spot

	RvPark       *rvpark.RvPark   `json:"rv_park,omitempty"`
	ActiveRental *rental.Rental   `json:"active_rental,omitempty"`
	Rentals      []*rental.Rental `json:"rentals,omitempty"`
}

// ListSpotsResponse represents the response for listing spots
type ListSpotsResponse = types.ListResponse[*SpotResponse]

func (r *CreateSpotRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Status != nil {
		if err := r.Status.Validate(); err != nil {
			return err
		}
		if *r.Status == types.SpotStatusPaid {
			return ierr.NewError("spot cannot be created as paid").
				WithHintf("A spot only becomes %s through a rental", types.SpotStatusPaid).
				Mark(ierr.ErrValidation)
		}
	}
	return nil
}

// ToSpot builds an available spot. A requested hold is applied by the
// service through the state machine.
func (r *CreateSpotRequest) ToSpot(ctx context.Context) *spot.Spot {
	return &spot.Spot{
		ID:        types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SPOT),
		RvParkID:  r.RvParkID,
		Code:      r.Code,
		Status:    types.SpotStatusAvailable,
		Color:     r.Color,
		BaseModel: types.GetDefaultBaseModel(ctx),
	}
}

func (r *UpdateSpotRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Status != nil {
		return r.Status.Validate()
	}
	return nil
}

package spot

import (
	"strings"

	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/flexprice/rvpark/internal/types"
)

// Spot is a physical rentable space within an RV park
type Spot struct {
	// ID is the unique identifier for the spot
	ID string `db:"id" json:"id"`

	// RvParkID is the park the spot belongs to
	RvParkID string `db:"rv_park_id" json:"rv_park_id"`

	// Code is the human label painted on the spot, unique within its park
	Code string `db:"code" json:"code"`

	// Status is the occupancy state, owned by the state machine
	Status types.SpotStatus `db:"status" json:"status"`

	// Color is the map color shown for the spot
	Color string `db:"color" json:"color"`

	types.BaseModel
}

// Validate checks the fields a caller can set
func (s *Spot) Validate() error {
	if strings.TrimSpace(s.Code) == "" {
		return ierr.NewError("spot code is required").
			WithHint("Please provide a code for the spot").
			Mark(ierr.ErrValidation)
	}
	if s.RvParkID == "" {
		return ierr.NewError("rv park is required").
			WithHint("Please provide the RV park of the spot").
			Mark(ierr.ErrValidation)
	}
	return s.Status.Validate()
}

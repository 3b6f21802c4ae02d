package types

import (
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/samber/lo"
)

// SpotStatus is the occupancy state of a spot
type SpotStatus string

const (
	// SpotStatusAvailable is a free spot
	SpotStatusAvailable SpotStatus = "Disponible"
	// SpotStatusPaid is a spot with an active rental whose current period is paid
	SpotStatusPaid SpotStatus = "Pagado"
	// SpotStatusWorker is a manual hold for park staff
	SpotStatusWorker SpotStatus = "Trabajador"
	// SpotStatusCaliche is a manual hold for a spot that cannot be rented
	SpotStatusCaliche SpotStatus = "Caliche"
)

var SpotStatuses = []SpotStatus{
	SpotStatusAvailable,
	SpotStatusPaid,
	SpotStatusWorker,
	SpotStatusCaliche,
}

func (s SpotStatus) String() string {
	return string(s)
}

// IsHold reports whether the status is a manual operational hold
func (s SpotStatus) IsHold() bool {
	return s == SpotStatusWorker || s == SpotStatusCaliche
}

func (s SpotStatus) Validate() error {
	if !lo.Contains(SpotStatuses, s) {
		return ierr.NewError("invalid spot status").
			WithHintf("Spot status must be one of %v", SpotStatuses).
			WithReportableDetails(map[string]any{
				"status": s,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// SpotFilter represents the filter for listing spots
type SpotFilter struct {
	*QueryFilter

	RvParkID *string     `json:"rv_park_id,omitempty" form:"rv_park_id"`
	Status   *SpotStatus `json:"status,omitempty" form:"status"`
}

func NewSpotFilter() *SpotFilter {
	return &SpotFilter{QueryFilter: NewDefaultQueryFilter()}
}

func NewNoLimitSpotFilter() *SpotFilter {
	return &SpotFilter{QueryFilter: NewNoLimitQueryFilter()}
}

func (f *SpotFilter) Validate() error {
	if f == nil {
		return nil
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return ierr.WithError(err).WithHint(err.Error()).Mark(ierr.ErrValidation)
	}
	if f.Status != nil {
		return f.Status.Validate()
	}
	return nil
}

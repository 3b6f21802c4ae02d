package types

import (
	ierr "github.com/flexprice/rvpark/internal/errors"
)

type RvParkFilter struct {
	*QueryFilter

	Name *string `json:"name,omitempty" form:"name"`
}

func NewRvParkFilter() *RvParkFilter {
	return &RvParkFilter{QueryFilter: NewDefaultQueryFilter()}
}

func (f *RvParkFilter) Validate() error {
	if f == nil {
		return nil
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return ierr.WithError(err).WithHint(err.Error()).Mark(ierr.ErrValidation)
	}
	return nil
}

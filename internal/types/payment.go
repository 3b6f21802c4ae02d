package types

import (
	ierr "github.com/flexprice/rvpark/internal/errors"
	"github.com/samber/lo"
)

// PaymentSortDefault lists the most recent payment first
const PaymentSortDefault = "payment_date"

// PaymentFilter represents the filter for listing payments
type PaymentFilter struct {
	*QueryFilter

	RentalID *string `json:"rental_id,omitempty" form:"rental_id"`
	Period   *string `json:"period,omitempty" form:"period"`
}

func NewPaymentFilter() *PaymentFilter {
	f := &PaymentFilter{QueryFilter: NewDefaultQueryFilter()}
	f.Sort = lo.ToPtr(PaymentSortDefault)
	return f
}

// NewNoLimitPaymentFilter creates a new payment filter with no limit
func NewNoLimitPaymentFilter() *PaymentFilter {
	f := &PaymentFilter{QueryFilter: NewNoLimitQueryFilter()}
	f.Sort = lo.ToPtr(PaymentSortDefault)
	return f
}

// Validate validates the payment filter
func (f *PaymentFilter) Validate() error {
	if f == nil {
		return nil
	}
	if err := f.QueryFilter.Validate(); err != nil {
		return ierr.WithError(err).WithHint(err.Error()).Mark(ierr.ErrValidation)
	}
	if f.Period != nil {
		return ValidatePeriodKey(*f.Period)
	}
	return nil
}
